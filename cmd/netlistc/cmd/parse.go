package cmd

import (
	"github.com/spf13/cobra"

	"github.com/silicon-weave/netlist/ir/text"
)

func newParseCmd() *cobra.Command {
	var in, out string
	var raw bool
	c := &cobra.Command{
		Use:   "parse",
		Short: "parse the textual IR and re-emit it",
		RunE: func(cmd *cobra.Command, args []string) error {
			r, err := openInput(in)
			if err != nil {
				return err
			}
			defer r.Close()

			d, err := text.Parse(r)
			if err != nil {
				return err
			}
			log.WithField("cells", d.NumCells()).Debug("parsed design")

			w, err := openOutput(out)
			if err != nil {
				return err
			}
			defer w.Close()
			return text.Emit(w, d, raw)
		},
	}
	c.Flags().StringVar(&in, "in", "", "input file (default: stdin)")
	c.Flags().StringVar(&out, "out", "", "output file (default: stdout)")
	c.Flags().BoolVar(&raw, "raw", false, "emit in round-trip-identity form")
	return c
}
