package cmd

import (
	"github.com/spf13/cobra"

	"github.com/silicon-weave/netlist/ir/dot"
	"github.com/silicon-weave/netlist/ir/text"
)

func newDotCmd() *cobra.Command {
	var in, out string
	c := &cobra.Command{
		Use:   "dot",
		Short: "emit a Graphviz rendering of a design's netlist",
		RunE: func(cmd *cobra.Command, args []string) error {
			r, err := openInput(in)
			if err != nil {
				return err
			}
			d, err := text.Parse(r)
			r.Close()
			if err != nil {
				return err
			}

			w, err := openOutput(out)
			if err != nil {
				return err
			}
			defer w.Close()
			return dot.Emit(w, d)
		},
	}
	c.Flags().StringVar(&in, "in", "", "input file (default: stdin)")
	c.Flags().StringVar(&out, "out", "", "output file (default: stdout)")
	return c
}
