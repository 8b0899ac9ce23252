package balance

import (
	"github.com/silicon-weave/netlist/core"
	"github.com/silicon-weave/netlist/core/meta"
	"github.com/silicon-weave/netlist/rewrite"
)

// propGen is a propagate/generate pair over ControlNets, the building block
// of the AND-chain's Kogge-Stone-like prefix structure (§4.G.1).
type propGen struct {
	p, g core.ControlNet
}

func orPG(net core.ControlNet) propGen  { return propGen{p: core.Pos(core.OneNet), g: net} }
func andPG(net core.ControlNet) propGen { return propGen{p: net, g: core.Pos(core.ZeroNet)} }

func addControlNet(rw *rewrite.Rewriter, metaRef meta.Ref, a, b core.ControlNet) (core.Net, error) {
	cell, err := core.NewAig(a, b)
	if err != nil {
		return core.Net{}, err
	}
	v, _, err := rw.AddCell(cell, metaRef)
	if err != nil {
		return core.Net{}, err
	}
	return v[0], nil
}

func addNot(rw *rewrite.Rewriter, metaRef meta.Ref, n core.Net) (core.Net, error) {
	cell, err := core.NewNot(core.Value{n})
	if err != nil {
		return core.Net{}, err
	}
	v, _, err := rw.AddCell(cell, metaRef)
	if err != nil {
		return core.Net{}, err
	}
	return v[0], nil
}

func addXor(rw *rewrite.Rewriter, metaRef meta.Ref, a, b core.Net) (core.Net, error) {
	cell, err := core.NewXor(core.Value{a}, core.Value{b})
	if err != nil {
		return core.Net{}, err
	}
	v, _, err := rw.AddCell(cell, metaRef)
	if err != nil {
		return core.Net{}, err
	}
	return v[0], nil
}

// combinePG implements the combine operator (pa,ga)·(pb,gb) from
// SPEC_FULL.md §4.G.1 via three Aig cells.
func combinePG(rw *rewrite.Rewriter, metaRef meta.Ref, a, b propGen) (propGen, error) {
	propVal, err := addControlNet(rw, metaRef, a.p, b.p)
	if err != nil {
		return propGen{}, err
	}
	tmp, err := addControlNet(rw, metaRef, a.g, b.p)
	if err != nil {
		return propGen{}, err
	}
	genrValB, err := addControlNet(rw, metaRef, core.Neg(tmp), b.g.Not())
	if err != nil {
		return propGen{}, err
	}
	return propGen{p: core.Pos(propVal), g: core.Neg(genrValB)}, nil
}

type aigFullTree struct {
	level      uint32
	pg         propGen
	cumulative propGen
}

type aigChain struct {
	invert    bool
	minLevel  uint32
	fullTrees []aigFullTree
}

func (c aigChain) clone() aigChain {
	return aigChain{invert: c.invert, minLevel: c.minLevel, fullTrees: append([]aigFullTree(nil), c.fullTrees...)}
}

type xorFullTree struct {
	level         uint32
	net           core.Net
	cumulativeNet core.Net
}

type xorChain struct {
	minLevel  uint32
	fullTrees []xorFullTree
}

func (c xorChain) clone() xorChain {
	return xorChain{minLevel: c.minLevel, fullTrees: append([]xorFullTree(nil), c.fullTrees...)}
}

// ChainRebalance re-associates AND chains (over Aig) and XOR chains into
// logarithmic-depth prefix trees, ported from chain_rebalance.rs. It must
// run alongside a LevelAnalysis instance sharing the same pass, since it
// reads levels to decide the base/addend split at each Aig/Xor cell.
type ChainRebalance struct {
	levels    *LevelAnalysis
	aigChains map[core.Net]aigChain
	xorChains map[core.Net]xorChain
}

// NewChainRebalance returns a ChainRebalance keyed off levels, which must be
// included in the same rewrite.Run ruleset slice (after Normalize and
// SimpleAigOpt, per SPEC_FULL.md §4.G's ChainRebalancePass wiring).
func NewChainRebalance(levels *LevelAnalysis) *ChainRebalance {
	return &ChainRebalance{levels: levels, aigChains: make(map[core.Net]aigChain), xorChains: make(map[core.Net]xorChain)}
}

func (cr *ChainRebalance) Rewrite(rw *rewrite.Rewriter, cell *core.Cell, metaRef meta.Ref, output core.Value) rewrite.Result {
	if len(output) != 1 {
		return rewrite.NoMatch()
	}
	switch cell.Kind {
	case core.KindAig:
		return cr.rewriteAig(rw, metaRef, cell.CA, cell.CB, output[0])
	case core.KindXor:
		if len(cell.A) != 1 || len(cell.B) != 1 {
			return rewrite.NoMatch()
		}
		return cr.rewriteXor(rw, metaRef, cell.A[0], cell.B[0], output[0])
	}
	return rewrite.NoMatch()
}

func (cr *ChainRebalance) CellAdded(core.CellRef) {}

func (cr *ChainRebalance) NetReplaced(from, to core.Net) {
	if chain, ok := cr.aigChains[from]; ok {
		if _, exists := cr.aigChains[to]; !exists {
			cr.aigChains[to] = chain
		}
	}
	if chain, ok := cr.xorChains[from]; ok {
		if _, exists := cr.xorChains[to]; !exists {
			cr.xorChains[to] = chain
		}
	}
}
