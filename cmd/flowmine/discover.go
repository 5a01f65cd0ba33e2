package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/katalvlaran/flowmine/compat"
	"github.com/katalvlaran/flowmine/dpn"
	"github.com/katalvlaran/flowmine/efsm"
	"github.com/katalvlaran/flowmine/eventlog"
	"github.com/katalvlaran/flowmine/guard"
	"github.com/katalvlaran/flowmine/merge"
	"github.com/katalvlaran/flowmine/pta"
)

var (
	divergenceThreshold    float64
	maxConjuncts           int
	bootstrapInductiveMiner bool
	placesPath             string
)

var discoverCmd = &cobra.Command{
	Use:   "discover <log.json> <output.pnml> [efsm.json]",
	Short: "Learn an EFSM and its DPN projection from an event log",
	Args:  cobra.RangeArgs(2, 3),
	RunE:  runDiscover,
}

func init() {
	discoverCmd.Flags().Float64Var(&divergenceThreshold, "divergence-threshold", 0.3,
		"blue-fringe merge divergence threshold (spec.md §4.D)")
	discoverCmd.Flags().IntVar(&maxConjuncts, "max-conjuncts", 3,
		"maximum guard conjunct window length (spec.md §4.E)")
	discoverCmd.Flags().BoolVar(&bootstrapInductiveMiner, "bootstrap-inductive-miner", false,
		"bypass PTA construction and merging, deriving states from --places instead")
	discoverCmd.Flags().StringVar(&placesPath, "places", "",
		"externally-discovered Petri net places (required with --bootstrap-inductive-miner)")
}

func runDiscover(cmd *cobra.Command, args []string) error {
	runID := newRunID()
	logPath, pnmlPath := args[0], args[1]
	var efsmPath string
	if len(args) == 3 {
		efsmPath = args[2]
	}

	logger.Info("discover starting", zap.String("run_id", runID), zap.String("log", logPath))

	traces, err := loadLog(logPath)
	if err != nil {
		return err
	}

	domains, err := eventlog.InferDomains(traces)
	if err != nil {
		return fmt.Errorf("discover: infer domains: %w", err)
	}

	model, err := learnModel(traces, domains)
	if err != nil {
		return fmt.Errorf("discover: learn model: %w", err)
	}
	logger.Info("model learned",
		zap.String("run_id", runID),
		zap.Int("states", len(model.States)),
		zap.Int("transitions", len(model.Transitions)))

	net, err := dpn.Project(model)
	if err != nil {
		return fmt.Errorf("discover: project DPN: %w", err)
	}

	pnmlData, err := dpn.ExportPNML(net)
	if err != nil {
		return fmt.Errorf("discover: export PNML: %w", err)
	}
	if err := os.WriteFile(pnmlPath, pnmlData, 0o644); err != nil {
		return fmt.Errorf("discover: write %s: %w", pnmlPath, err)
	}

	if efsmPath != "" {
		efsmData, err := json.MarshalIndent(model, "", "  ")
		if err != nil {
			return fmt.Errorf("discover: marshal EFSM: %w", err)
		}
		if err := os.WriteFile(efsmPath, efsmData, 0o644); err != nil {
			return fmt.Errorf("discover: write %s: %w", efsmPath, err)
		}
	}

	logger.Info("discover complete", zap.String("run_id", runID), zap.String("pnml", pnmlPath))
	return nil
}

// learnModel runs either the default PTA/blue-fringe/guard-synthesis
// pipeline or, when --bootstrap-inductive-miner is set, the
// places-bootstrap shortcut of spec.md §4.F.
func learnModel(traces []eventlog.Trace, domains map[string]*eventlog.AttributeDomain) (*efsm.Model, error) {
	if bootstrapInductiveMiner {
		if placesPath == "" {
			return nil, fmt.Errorf("--bootstrap-inductive-miner requires --places")
		}
		places, err := loadPlaces(placesPath)
		if err != nil {
			return nil, err
		}
		return efsm.AssembleFromPlaces(places, domains)
	}

	tree, err := pta.Build(traces)
	if err != nil {
		return nil, fmt.Errorf("build PTA: %w", err)
	}

	sm, err := merge.BlueFringe(tree, attrsFromDomains(domains), divergenceThreshold)
	if err != nil {
		return nil, fmt.Errorf("blue-fringe merge: %w", err)
	}

	return efsm.Assemble(tree, sm, domains, maxConjuncts, guard.DirectValidator{})
}

// attrsFromDomains builds the compat.Attr list BlueFringe compares
// states over: numeric domains via mean-gap, categorical domains via
// Jensen-Shannon distance. Free-text (DtypeString) attributes are
// excluded, the same exclusion spec.md §4.A applies to guard
// candidates.
func attrsFromDomains(domains map[string]*eventlog.AttributeDomain) []compat.Attr {
	attrs := make([]compat.Attr, 0, len(domains))
	for name, d := range domains {
		switch d.Dtype {
		case eventlog.DtypeInt, eventlog.DtypeFloat:
			attrs = append(attrs, compat.Attr{Name: name, Kind: compat.AttrNumeric})
		case eventlog.DtypeCat:
			attrs = append(attrs, compat.Attr{Name: name, Kind: compat.AttrCategorical})
		}
	}
	return attrs
}

// jsonPlaces mirrors efsm.ExternalPlaceSet for --places file input.
type jsonPlaces struct {
	Places      []string             `json:"places"`
	Transitions []jsonPlaceTransition `json:"transitions"`
	Initial     string               `json:"initial"`
}

type jsonPlaceTransition struct {
	Source string `json:"source"`
	Label  string `json:"label"`
	Target string `json:"target"`
}

func loadPlaces(path string) (efsm.ExternalPlaceSet, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return efsm.ExternalPlaceSet{}, fmt.Errorf("read %s: %w", path, err)
	}

	var raw jsonPlaces
	if err := json.Unmarshal(data, &raw); err != nil {
		return efsm.ExternalPlaceSet{}, fmt.Errorf("parse %s: %w", path, err)
	}

	transitions := make([]efsm.ExternalTransition, len(raw.Transitions))
	for i, t := range raw.Transitions {
		transitions[i] = efsm.ExternalTransition{Source: t.Source, Label: t.Label, Target: t.Target}
	}
	return efsm.ExternalPlaceSet{Places: raw.Places, Transitions: transitions, Initial: raw.Initial}, nil
}
