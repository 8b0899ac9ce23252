// Command netlistc is the CLI dispatch entry point named out-of-scope as
// a sketch in spec §1 and given a concrete home in SPEC_FULL.md's AMBIENT
// STACK section: it wires the textual IR parser/emitter, the generic rule
// sets, and the balancing passes behind a small set of cobra subcommands.
package main

import (
	"os"

	"github.com/silicon-weave/netlist/cmd/netlistc/cmd"
)

func main() {
	os.Exit(cmd.Execute())
}
