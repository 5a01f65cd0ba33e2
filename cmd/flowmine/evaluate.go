package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/katalvlaran/flowmine/align"
	"github.com/katalvlaran/flowmine/conformance"
	"github.com/katalvlaran/flowmine/dpn"
)

var evaluateCmd = &cobra.Command{
	Use:   "evaluate <log.json> <model.pnml> [result.json]",
	Short: "Replay an event log against a DPN and report conformance",
	Args:  cobra.RangeArgs(2, 3),
	RunE:  runEvaluate,
}

func runEvaluate(cmd *cobra.Command, args []string) error {
	runID := newRunID()
	logPath, pnmlPath := args[0], args[1]
	var outputPath string
	if len(args) == 3 {
		outputPath = args[2]
	}

	logger.Info("evaluate starting", zap.String("run_id", runID), zap.String("pnml", pnmlPath))

	pnmlData, err := os.ReadFile(pnmlPath)
	if err != nil {
		return fmt.Errorf("evaluate: read %s: %w", pnmlPath, err)
	}
	net, err := dpn.ImportPNML(pnmlData)
	if err != nil {
		return fmt.Errorf("evaluate: parse PNML: %w", err)
	}

	traces, err := loadLog(logPath)
	if err != nil {
		return err
	}

	result, err := conformance.Evaluate(net, traces, align.New())
	if err != nil {
		return fmt.Errorf("evaluate: %w", err)
	}

	logger.Info("evaluate complete",
		zap.String("run_id", runID),
		zap.Float64("satisfaction_rate", result.GuardSatisfaction.SatisfactionRate),
		zap.Float64("control_flow_fitness", result.ControlFlowFitness))

	data, err := json.MarshalIndent(result, "", "  ")
	if err != nil {
		return fmt.Errorf("evaluate: marshal result: %w", err)
	}
	if outputPath == "" {
		fmt.Println(string(data))
		return nil
	}
	if err := os.WriteFile(outputPath, data, 0o644); err != nil {
		return fmt.Errorf("evaluate: write %s: %w", outputPath, err)
	}
	return nil
}
