package balance

import (
	"github.com/silicon-weave/netlist/core"
	"github.com/silicon-weave/netlist/core/meta"
	"github.com/silicon-weave/netlist/rewrite"
)

// rewriteXor is chain_and.go's simpler counterpart for single-bit Xor
// chains, per SPEC_FULL.md §4.G.1: no polarity bookkeeping is needed since
// XOR has no "invert" concept, only a flat list of (level, net,
// cumulative_net) entries merged bottom-up with fresh Xor cells.
func (cr *ChainRebalance) rewriteXor(rw *rewrite.Rewriter, metaRef meta.Ref, net1, net2 core.Net, output core.Net) rewrite.Result {
	level1 := cr.levels.Get(net1)
	level2 := cr.levels.Get(net2)

	var netA, netB core.Net
	var levelA, levelB uint32
	switch {
	case level1 < level2:
		netA, netB, levelA, levelB = net2, net1, level2, level1
	case level1 == level2:
		return rewrite.NoMatch()
	default:
		netA, netB, levelA, levelB = net1, net2, level1, level2
	}

	existing, ok := cr.xorChains[netA]
	if !ok {
		chain := xorChain{
			minLevel: levelA - 1,
			fullTrees: []xorFullTree{
				{level: levelA, net: netA, cumulativeNet: output},
				{level: levelA - 1, net: netB, cumulativeNet: netB},
			},
		}
		cr.xorChains[output] = chain
		return rewrite.NoMatch()
	}

	chain := existing.clone()
	if levelB > chain.minLevel {
		chain.minLevel = levelB
	}

	if len(chain.fullTrees) == 1 {
		if chain.fullTrees[0].level > levelB {
			chain.fullTrees[0].cumulativeNet = output
			chain.fullTrees = append(chain.fullTrees, xorFullTree{level: levelB, net: netB, cumulativeNet: netB})
			cr.xorChains[output] = chain
		}
		return rewrite.NoMatch()
	}

	top := chain.fullTrees[len(chain.fullTrees)-1]
	chain.fullTrees = chain.fullTrees[:len(chain.fullTrees)-1]
	for top.level < chain.minLevel {
		n := len(chain.fullTrees)
		if n > 0 && chain.fullTrees[n-1].level <= chain.minLevel {
			nextTop := chain.fullTrees[n-1]
			top.level = nextTop.level + 1
			top.net = nextTop.cumulativeNet
			top.cumulativeNet = nextTop.cumulativeNet
			chain.fullTrees = chain.fullTrees[:n-1]
		} else {
			top.level = chain.minLevel
			break
		}
	}
	chain.fullTrees = append(chain.fullTrees, top)

	levelTop := chain.minLevel
	netTop := netB
	for {
		n := len(chain.fullTrees)
		if n == 0 || chain.fullTrees[n-1].level != levelTop {
			break
		}
		nextTop := chain.fullTrees[n-1]
		chain.fullTrees = chain.fullTrees[:n-1]
		val, err := addXor(rw, metaRef, netTop, nextTop.net)
		if err != nil {
			return rewrite.NoMatch()
		}
		netTop = val
		levelTop++
	}

	cumulativeNet := netTop
	for i := len(chain.fullTrees) - 1; i >= 0; i-- {
		val, err := addXor(rw, metaRef, cumulativeNet, chain.fullTrees[i].net)
		if err != nil {
			return rewrite.NoMatch()
		}
		cumulativeNet = val
		chain.fullTrees[i].cumulativeNet = cumulativeNet
	}
	chain.fullTrees = append(chain.fullTrees, xorFullTree{level: levelTop, net: netTop, cumulativeNet: netTop})
	cr.xorChains[cumulativeNet] = chain
	return rewrite.ReplaceWithValue(core.Value{cumulativeNet})
}
