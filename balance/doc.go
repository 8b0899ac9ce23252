// Package balance implements the level-balancing passes described in
// SPEC_FULL.md §4.G: a level-analysis side table, AND/XOR chain rebalancing
// via propagate-generate prefix combination, and use-count-driven tree
// rebalancing via a min-heap rebuild. These run after rules.Normalize and
// rules.SimpleAigOpt have put a design's Boolean fragments into AIG form.
package balance
