// Command motifjoin runs an incremental worst-case-optimal join over
// a streaming edge dataset, counting occurrences of the motif
// described by a plan file (spec §6).
package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/katalvlaran/motifjoin/cmd/motifjoin/internal/app"
)

func main() {
	logConfig := zap.NewDevelopmentConfig()
	logConfig.EncoderConfig.EncodeLevel = zapcore.CapitalColorLevelEncoder
	logConfig.DisableStacktrace = true
	log := zap.Must(logConfig.Build())
	defer log.Sync()

	root := newRootCmd(log)
	if err := root.Execute(); err != nil {
		log.Fatal("run failed", zap.Error(err))
	}
}

func newRootCmd(log *zap.Logger) *cobra.Command {
	v := viper.New()
	v.SetDefault("runtime", "thread")
	if err := v.BindEnv("runtime", "MOTIFJOIN_RUNTIME"); err != nil {
		log.Fatal("binding MOTIFJOIN_RUNTIME", zap.Error(err))
	}

	var (
		threads       int
		processIndex  int
		numProcesses  int
		redisAddr     string
		inspect       bool
		edgeLabelFile string
	)

	cmd := &cobra.Command{
		Use:   "motifjoin batch_size num_batches base_size plan_file [vertex_label_file] dataset",
		Short: "Count motif occurrences over a streaming directed graph",
		Args:  cobra.RangeArgs(5, 6),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := app.ParseArgs(args)
			if err != nil {
				return fmt.Errorf("parsing arguments: %w", err)
			}
			cfg.Runtime = v.GetString("runtime")
			cfg.Threads = threads
			cfg.ProcessIndex = processIndex
			cfg.NumProcesses = numProcesses
			cfg.RedisAddr = redisAddr
			cfg.Inspect = inspect
			cfg.EdgeLabelFile = edgeLabelFile

			return app.Run(context.Background(), log, cfg)
		},
	}

	flags := cmd.Flags()
	flags.IntVar(&threads, "threads", 1, "worker goroutines per process (process/cluster runtimes)")
	flags.IntVar(&processIndex, "process-index", 0, "this process's index among its cluster peers")
	flags.IntVar(&numProcesses, "num-processes", 1, "total number of cluster peer processes")
	flags.StringVar(&redisAddr, "redis-addr", "127.0.0.1:6379", "Redis address for the cluster progress barrier")
	flags.BoolVar(&inspect, "inspect", false, "serve a read-only HTTP status endpoint reporting per-batch progress")
	flags.StringVar(&edgeLabelFile, "edge-label-file", "", "edge-label file enforcing per-query-edge label constraints (spec §6)")

	if err := v.BindPFlag("threads", flags.Lookup("threads")); err != nil {
		log.Fatal("binding threads flag", zap.Error(err))
	}

	return cmd
}
