package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	// Blank-imported so its init() registers it with the target registry;
	// this is the toplevel driver's explicit plug-in registration point
	// per SPEC_FULL.md §9.
	_ "github.com/silicon-weave/netlist/target/llvmtarget"

	"github.com/silicon-weave/netlist/ir/text"
	"github.com/silicon-weave/netlist/target"
)

func newTargetCmd() *cobra.Command {
	var in, out, name string
	c := &cobra.Command{
		Use:   "target",
		Short: "export a design through a registered target backend",
		RunE: func(cmd *cobra.Command, args []string) error {
			t, ok := target.Lookup(name)
			if !ok {
				return fmt.Errorf("unknown target %q (registered: %s)", name, strings.Join(target.Names(), ", "))
			}

			r, err := openInput(in)
			if err != nil {
				return err
			}
			d, err := text.Parse(r)
			r.Close()
			if err != nil {
				return err
			}
			if err := t.Synthesize(d); err != nil {
				return fmt.Errorf("synthesize: %w", err)
			}

			w, err := openOutput(out)
			if err != nil {
				return err
			}
			defer w.Close()
			return t.Export(w, d)
		},
	}
	c.Flags().StringVar(&in, "in", "", "input file (default: stdin)")
	c.Flags().StringVar(&out, "out", "", "output file (default: stdout)")
	c.Flags().StringVar(&name, "name", "llvm", "registered target name")
	return c
}
