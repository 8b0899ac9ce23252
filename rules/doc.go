// Package rules implements the concrete rewrite.Ruleset payloads that turn
// a freshly built or freshly lowered core.Design into a normalized,
// AIG-centric combinational representation: Normalize (commutative operand
// canonicalization), SimpleAigOpt (the AIG local-rewrite rule set), and the
// Lower{Mux,Eq,Lt,Mul,Shift} family that decomposes higher-level cells into
// the bitwise/arithmetic primitives the other two rule sets understand.
package rules
