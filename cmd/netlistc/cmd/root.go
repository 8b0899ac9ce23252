// Package cmd implements netlistc's cobra command tree: parse, opt, dot,
// stats, and target, matching SPEC_FULL.md §6's exit-code contract (0 success, 1
// on any error, diagnostics always to stderr, compiled design to --out or
// stdout).
package cmd

import (
	"fmt"
	"os"

	"github.com/google/uuid"
	"github.com/mattn/go-isatty"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

// log is the package-wide structured logger. The root command's
// PersistentPreRun logs one debug line with a "run" field carrying a
// per-invocation uuid; other log lines do not carry that field.
var log = logrus.New()

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:           "netlistc",
		Short:         "netlist arena, rewrite engine, and AIG balancing CLI",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	var verbose bool
	root.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable debug logging")
	root.PersistentPreRun = func(cmd *cobra.Command, args []string) {
		if verbose {
			log.SetLevel(logrus.DebugLevel)
		}
		log.SetOutput(os.Stderr)
		log.SetFormatter(&logrus.TextFormatter{
			DisableColors: !isatty.IsTerminal(os.Stderr.Fd()),
			FullTimestamp: true,
		})
		log.WithField("run", uuid.NewString()).Debug("netlistc invoked")
	}

	root.AddCommand(newParseCmd())
	root.AddCommand(newOptCmd())
	root.AddCommand(newDotCmd())
	root.AddCommand(newStatsCmd())
	root.AddCommand(newTargetCmd())
	return root
}

// Execute runs the root command and returns the process exit code per
// spec §6: 0 on success, 1 on any returned error (with the error printed
// to stderr by logrus, not cobra's default usage dump).
func Execute() int {
	root := newRootCmd()
	if err := root.Execute(); err != nil {
		log.WithError(err).Error("netlistc failed")
		fmt.Fprintln(os.Stderr, "error:", err)
		return 1
	}
	return 0
}

// openInput returns os.Stdin if path is "" or "-", else opens path.
func openInput(path string) (*os.File, error) {
	if path == "" || path == "-" {
		return os.Stdin, nil
	}
	return os.Open(path)
}

// openOutput returns os.Stdout if path is "" or "-", else creates path.
func openOutput(path string) (*os.File, error) {
	if path == "" || path == "-" {
		return os.Stdout, nil
	}
	return os.Create(path)
}
