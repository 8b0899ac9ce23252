package cmd

import (
	"fmt"
	"sort"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"

	"github.com/silicon-weave/netlist/ir/text"
)

func newStatsCmd() *cobra.Command {
	var in string
	var debug bool
	c := &cobra.Command{
		Use:   "stats",
		Short: "print a human-readable cell-population summary for a design",
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

			s := d.Stats()
			fmt.Printf("cells:      %s\n", humanize.Comma(int64(s.Total)))
			fmt.Printf("tombstones: %s\n", humanize.Comma(int64(s.Tombstone)))
			fmt.Printf("skip slots: %s\n", humanize.Comma(int64(s.Skip)))

			byName := make(map[string]int, len(s.ByKind))
			names := make([]string, 0, len(s.ByKind))
			for k, n := range s.ByKind {
				byName[k.String()] = n
				names = append(names, k.String())
			}
			sort.Strings(names)
			for _, name := range names {
				fmt.Printf("  %-12s %s\n", name, humanize.Comma(int64(byName[name])))
			}

			if debug {
				fmt.Println(d.Dump())
			}
			return nil
		},
	}
	c.Flags().StringVar(&in, "in", "", "input file (default: stdin)")
	c.Flags().BoolVar(&debug, "debug", false, "also dump full internal design state")
	return c
}
