package config_test

import (
	"fmt"

	"github.com/katalvlaran/flowmine/config"
)

func ExampleDefaultConfig() {
	cfg := config.DefaultConfig()
	fmt.Println(cfg.DivergenceThreshold, cfg.MaxConjuncts, cfg.UseInductiveMiner, cfg.LogSampleRatio)
	// Output:
	// 0.3 3 false 1
}

// ExampleLoad shows that a missing config file yields the defaults
// rather than an error.
func ExampleLoad() {
	cfg, err := config.Load("/nonexistent/path/flowmine.yaml")
	if err != nil {
		fmt.Println("error:", err)
		return
	}
	fmt.Println(cfg.DivergenceThreshold == config.DefaultDivergenceThreshold)
	// Output:
	// true
}

func ExampleConfig_Validate() {
	cfg := config.DefaultConfig()
	fmt.Println(cfg.Validate())

	cfg.MaxConjuncts = 0
	fmt.Println(cfg.Validate())
	// Output:
	// <nil>
	// config: max_conjuncts 0 must be >= 1
}
