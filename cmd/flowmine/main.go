// Command flowmine is the CLI front end for the data-aware
// process-discovery engine: discover an EFSM/DPN from an event log,
// evaluate conformance of a log against a DPN, or simulate a log
// against an already-learned EFSM.
//
// Grounded on codenerd's cmd/nerd/main.go: a cobra root command with a
// PersistentPreRunE that builds the run's *zap.Logger before any
// subcommand executes, and a main() that maps a returned error to
// os.Exit(1) (spec.md §6's exit-code policy).
package main

import (
	"fmt"
	"os"

	"github.com/google/uuid"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/katalvlaran/flowmine/logging"
)

var (
	verbose bool
	logger  *zap.Logger
)

var rootCmd = &cobra.Command{
	Use:   "flowmine",
	Short: "flowmine discovers data-aware process models from event logs",
	Long: `flowmine learns an Extended Finite State Machine with guarded,
updating transitions from an event log, projects it onto a Data-aware
Petri Net, and replays logs against either for conformance.`,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		var err error
		logger, err = logging.New(verbose)
		if err != nil {
			return fmt.Errorf("flowmine: %w", err)
		}
		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		if logger != nil {
			_ = logger.Sync()
		}
	},
}

func init() {
	rootCmd.PersistentFlags().BoolVar(&verbose, "verbose", false, "enable debug-level logging")
	rootCmd.AddCommand(discoverCmd, evaluateCmd, simulateCmd)
}

// newRunID stamps a run-scoped identifier for correlating a command's
// log lines, the way codenerd tags campaign/session identifiers.
func newRunID() string { return uuid.New().String() }

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
