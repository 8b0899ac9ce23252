package balance

import (
	"github.com/silicon-weave/netlist/core"
	"github.com/silicon-weave/netlist/core/meta"
	"github.com/silicon-weave/netlist/rewrite"
)

// rewriteAig folds one more Aig cell into the AND chain rooted at whichever
// operand is deeper, per SPEC_FULL.md §4.G.1. It either extends an existing
// chain (recomputing cumulative prop/generate pairs bottom-up and emitting
// a single Aig+optional Not) or, the first time the chain's root net is
// seen, seeds a new two-entry chain and declines to rewrite yet.
func (cr *ChainRebalance) rewriteAig(rw *rewrite.Rewriter, metaRef meta.Ref, net1, net2 core.ControlNet, output core.Net) rewrite.Result {
	level1 := cr.levels.Get(net1.Net)
	level2 := cr.levels.Get(net2.Net)

	var netA, netB core.ControlNet
	var levelA, levelB uint32
	switch {
	case level1 < level2:
		netA, netB, levelA, levelB = net2, net1, level2, level1
	case level1 == level2:
		return rewrite.NoMatch()
	default:
		netA, netB, levelA, levelB = net1, net2, level1, level2
	}

	existing, ok := cr.aigChains[netA.Net]
	if !ok {
		var chain aigChain
		if netA.Negated {
			chain = aigChain{
				invert:   true,
				minLevel: levelA - 1,
				fullTrees: []aigFullTree{
					{level: levelA, pg: andPG(netA.Not()), cumulative: propGen{p: netA.Not(), g: netB.Not()}},
					{level: levelA - 1, pg: orPG(netB.Not()), cumulative: orPG(netB.Not())},
				},
			}
		} else {
			chain = aigChain{
				invert:   false,
				minLevel: levelA - 1,
				fullTrees: []aigFullTree{
					{level: levelA, pg: andPG(netA), cumulative: andPG(core.Pos(output))},
					{level: levelA - 1, pg: andPG(netB), cumulative: andPG(netB)},
				},
			}
		}
		cr.aigChains[output] = chain
		return rewrite.NoMatch()
	}

	chain := existing.clone()
	if netA.Negated {
		chain.invert = !chain.invert
	}
	if levelB > chain.minLevel {
		chain.minLevel = levelB
	}

	top := chain.fullTrees[len(chain.fullTrees)-1]
	chain.fullTrees = chain.fullTrees[:len(chain.fullTrees)-1]
	for top.level < chain.minLevel {
		n := len(chain.fullTrees)
		if n > 0 && chain.fullTrees[n-1].level <= chain.minLevel {
			nextTop := chain.fullTrees[n-1]
			top.level = nextTop.level + 1
			top.pg = nextTop.cumulative
			top.cumulative = nextTop.cumulative
			chain.fullTrees = chain.fullTrees[:n-1]
		} else {
			top.level = chain.minLevel
			break
		}
	}
	chain.fullTrees = append(chain.fullTrees, top)

	var pg propGen
	if chain.invert {
		pg = orPG(netB.Not())
	} else {
		pg = andPG(netB)
	}
	newTop := aigFullTree{level: chain.minLevel, pg: pg, cumulative: pg}
	for {
		n := len(chain.fullTrees)
		if n == 0 || chain.fullTrees[n-1].level != newTop.level {
			break
		}
		curTop := chain.fullTrees[n-1]
		chain.fullTrees = chain.fullTrees[:n-1]
		combined, err := combinePG(rw, metaRef, curTop.pg, newTop.pg)
		if err != nil {
			return rewrite.NoMatch()
		}
		newTop.pg = combined
		newTop.cumulative = combined
		newTop.level++
	}

	cumulative := newTop.pg
	for i := len(chain.fullTrees) - 1; i >= 0; i-- {
		combined, err := combinePG(rw, metaRef, chain.fullTrees[i].pg, cumulative)
		if err != nil {
			return rewrite.NoMatch()
		}
		cumulative = combined
		chain.fullTrees[i].cumulative = cumulative
	}
	chain.fullTrees = append(chain.fullTrees, newTop)

	result, err := addControlNet(rw, metaRef, cumulative.p.Not(), cumulative.g.Not())
	if err != nil {
		return rewrite.NoMatch()
	}
	if !chain.invert {
		notResult, err := addNot(rw, metaRef, result)
		if err != nil {
			return rewrite.NoMatch()
		}
		result = notResult
	}

	if fr := rw.FindCell(result); fr.Kind == rewrite.FindCell && fr.Cell.Kind == core.KindNot && len(fr.Cell.A) == 1 {
		invResult := fr.Cell.A[0]
		chain.invert = !chain.invert
		cr.aigChains[invResult] = chain
	} else {
		cr.aigChains[result] = chain
	}
	return rewrite.ReplaceWithValue(core.Value{result})
}
