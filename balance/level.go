package balance

import (
	"github.com/silicon-weave/netlist/core"
	"github.com/silicon-weave/netlist/core/meta"
	"github.com/silicon-weave/netlist/rewrite"
)

// LevelAnalysis is a Ruleset that never rewrites anything; it only listens
// to CellAdded/NetReplaced to maintain a running map[core.Net]uint32 of
// logic levels, ported from analysis/level.rs. Constants and the undefined
// net are level 0 by construction (Get never needs to store them); Input,
// Const, Param and any stateful cell (Dff, Memory) are level 0; Not passes
// through its operand's level rather than counting as a gate; every other
// cell is one more than the greatest level among its non-constant operands.
type LevelAnalysis struct {
	levels map[core.Net]uint32
}

// NewLevelAnalysis returns an empty LevelAnalysis ready to be included in a
// rewrite.Run ruleset list.
func NewLevelAnalysis() *LevelAnalysis {
	return &LevelAnalysis{levels: make(map[core.Net]uint32)}
}

// Get returns n's current level, defaulting to 0 for constants, the
// undefined net, and any net this analysis has not yet observed.
func (la *LevelAnalysis) Get(n core.Net) uint32 {
	if n.IsConst() || n.IsUndef() {
		return 0
	}
	return la.levels[n]
}

// Rewrite never matches: LevelAnalysis only observes the cells the driver
// and other rulesets commit, via CellAdded/NetReplaced below.
func (la *LevelAnalysis) Rewrite(rw *rewrite.Rewriter, cell *core.Cell, metaRef meta.Ref, output core.Value) rewrite.Result {
	return rewrite.NoMatch()
}

func (la *LevelAnalysis) CellAdded(ref core.CellRef) {
	cell := ref.Cell()
	output := ref.Output()
	if len(output) == 0 {
		return
	}

	var level uint32
	switch {
	case cell.Kind == core.KindInput || cell.Kind == core.KindConst || cell.Kind == core.KindParam || cell.HasState():
		level = 0
	case cell.Kind == core.KindNot && len(cell.A) == 1:
		level = la.Get(cell.A[0])
	default:
		var maxLevel uint32
		cell.Visit(func(n core.Net) {
			if l := la.Get(n); l > maxLevel {
				maxLevel = l
			}
		})
		level = maxLevel + 1
	}

	for _, n := range output {
		la.levels[n] = level
	}
}

func (la *LevelAnalysis) NetReplaced(from, to core.Net) {
	la.levels[from] = la.Get(to)
}
