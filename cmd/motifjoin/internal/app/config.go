// Package app wires the motifjoin CLI's positional arguments and
// flags into a run: loading the plan and dataset, driving the batch
// loop, and optionally serving the --inspect status endpoint.
package app

import (
	"fmt"
	"strconv"
)

// Config is the fully-parsed shape of one motifjoin invocation (spec
// §6's command-line shape plus the ambient runtime/inspect flags).
type Config struct {
	BatchSize       int
	NumBatches      int
	BaseSize        int
	PlanFile        string
	VertexLabelFile string // empty if not given
	EdgeLabelFile   string // empty if not given, set via --edge-label-file
	Dataset         string

	Runtime      string // "thread" | "process" | "cluster"
	Threads      int
	ProcessIndex int
	NumProcesses int
	RedisAddr    string
	Inspect      bool
}

// ParseArgs parses the 5 or 6 positional arguments cobra.RangeArgs(5,
// 6) has already bounded: batch_size num_batches base_size plan_file
// [vertex_label_file] dataset.
func ParseArgs(args []string) (*Config, error) {
	batchSize, err := strconv.Atoi(args[0])
	if err != nil {
		return nil, fmt.Errorf("batch_size: %w", err)
	}
	numBatches, err := strconv.Atoi(args[1])
	if err != nil {
		return nil, fmt.Errorf("num_batches: %w", err)
	}
	baseSize, err := strconv.Atoi(args[2])
	if err != nil {
		return nil, fmt.Errorf("base_size: %w", err)
	}

	cfg := &Config{
		BatchSize:  batchSize,
		NumBatches: numBatches,
		BaseSize:   baseSize,
		PlanFile:   args[3],
	}

	if len(args) == 6 {
		cfg.VertexLabelFile = args[4]
		cfg.Dataset = args[5]
	} else {
		cfg.Dataset = args[4]
	}

	return cfg, nil
}
