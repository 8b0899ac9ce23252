package balance

import (
	"github.com/silicon-weave/netlist/core"
	"github.com/silicon-weave/netlist/rewrite"
	"github.com/silicon-weave/netlist/rules"
)

// ChainRebalancePass runs Normalize, SimpleAigOpt, a fresh LevelAnalysis,
// and ChainRebalance over d in one rewrite.Run, matching spec §4.G's
// top-level chain_rebalance entry point.
func ChainRebalancePass(d *core.Design) (bool, error) {
	levels := NewLevelAnalysis()
	chain := NewChainRebalance(levels)
	return rewrite.Run(d, []rewrite.Ruleset{rules.Normalize{}, rules.SimpleAigOpt{}, levels, chain})
}

// TreeRebalancePass is spec §4.G's top-level tree_rebalance entry point.
// TreeRebalance needs to see d's live cells once up front (to classify
// inner Aig/Xor nodes by use count), so this pass cannot be expressed
// purely as a ruleset list the way ChainRebalancePass is: it first runs
// Normalize and SimpleAigOpt over d so that the cells are already in Aig
// form, then NewTreeRebalance does its scan, and a second rewrite.Run
// applies Normalize, SimpleAigOpt, a fresh LevelAnalysis, and
// TreeRebalance. It reports whether either run changed anything.
func TreeRebalancePass(d *core.Design) (bool, error) {
	normalized, err := rewrite.Run(d, []rewrite.Ruleset{rules.Normalize{}, rules.SimpleAigOpt{}})
	if err != nil {
		return false, err
	}
	levels := NewLevelAnalysis()
	tree := NewTreeRebalance(d, levels)
	changed, err := rewrite.Run(d, []rewrite.Ruleset{rules.Normalize{}, rules.SimpleAigOpt{}, levels, tree})
	return normalized || changed, err
}
