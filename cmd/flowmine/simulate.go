package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/katalvlaran/flowmine/efsm"
)

var maxTraces int

var simulateCmd = &cobra.Command{
	Use:   "simulate <model.json> <log.json>",
	Short: "Replay an event log against a learned EFSM",
	Args:  cobra.ExactArgs(2),
	RunE:  runSimulate,
}

func init() {
	simulateCmd.Flags().IntVar(&maxTraces, "max-traces", 0,
		"limit the number of traces simulated (0 means all)")
}

func runSimulate(cmd *cobra.Command, args []string) error {
	runID := newRunID()
	efsmPath, logPath := args[0], args[1]

	logger.Info("simulate starting", zap.String("run_id", runID), zap.String("model", efsmPath))

	data, err := os.ReadFile(efsmPath)
	if err != nil {
		return fmt.Errorf("simulate: read %s: %w", efsmPath, err)
	}
	var model efsm.Model
	if err := json.Unmarshal(data, &model); err != nil {
		return fmt.Errorf("simulate: parse EFSM: %w", err)
	}

	traces, err := loadLog(logPath)
	if err != nil {
		return err
	}
	if maxTraces > 0 && maxTraces < len(traces) {
		traces = traces[:maxTraces]
	}

	accepted := 0
	for i, tr := range traces {
		res := model.Simulate(tr)
		if res.Accepted {
			accepted++
		}
		if verbose {
			logger.Debug("trace simulated",
				zap.String("run_id", runID),
				zap.Int("trace", i),
				zap.Bool("accepted", res.Accepted),
				zap.Strings("state_path", res.StatePath))
		}
	}

	logger.Info("simulate complete",
		zap.String("run_id", runID),
		zap.Int("traces", len(traces)),
		zap.Int("accepted", accepted))
	fmt.Printf("%d/%d traces accepted\n", accepted, len(traces))
	return nil
}
