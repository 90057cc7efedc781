// Package main is the entry point of the readmission report tool.
package main

import (
	"flag"
	"fmt"
	"os"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	readmit "github.com/eleanorharrisonn/Diabetic-Readmissions"
	"github.com/eleanorharrisonn/Diabetic-Readmissions/internal/config"
)

func newLogger(level string) (*zap.Logger, error) {

	lvl, err := zapcore.ParseLevel(level)
	if err != nil {
		return nil, fmt.Errorf("unknown log level '%s': %w", level, err)
	}

	zcfg := zap.NewProductionConfig()
	zcfg.Level = zap.NewAtomicLevelAt(lvl)

	return zcfg.Build()
}

func main() {

	configPath := flag.String("config", "config.yaml", "Path to the configuration file")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load configuration: %v\n", err)
		os.Exit(1)
	}

	logger, err := newLogger(cfg.LogLevel)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to build logger: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	rr, err := readmit.Run(cfg, logger)
	if err != nil {
		logger.Error("run failed", zap.Error(err))
		os.Exit(1)
	}

	fmt.Printf("Run %s complete, report written to %s\n", rr.ID, cfg.OutputDir)
}
