// Package config handles run configuration for the readmission report.
package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/eleanorharrisonn/Diabetic-Readmissions/dataset"
)

// Config defines the structure for a full analysis run.
type Config struct {
	InputPath     string  `yaml:"input_path"`
	OutputDir     string  `yaml:"output_dir"`
	Seed          int64   `yaml:"seed"`
	TrainFraction float64 `yaml:"train_fraction"`
	Threshold     float64 `yaml:"threshold"`
	ConfLevel     float64 `yaml:"conf_level"`
	MaxIter       int     `yaml:"max_iter"`
	FitMethod     string  `yaml:"fit_method"`
	InsulinRef    string  `yaml:"insulin_ref"`
	AgeRef        string  `yaml:"age_ref"`
	DropMissing   bool    `yaml:"drop_missing"`
	LogLevel      string  `yaml:"log_level"`
}

// Default returns the configuration used when a field is absent from the
// YAML file.
func Default() *Config {
	return &Config{
		OutputDir:     ".",
		Seed:          42,
		TrainFraction: 0.8,
		Threshold:     0.5,
		ConfLevel:     0.95,
		MaxIter:       100,
		FitMethod:     "irls",
		InsulinRef:    dataset.DoseNo,
		AgeRef:        "[0-10)",
		LogLevel:      "info",
	}
}

// Load loads configuration from the specified YAML file path and
// environment variables.
func Load(configPath string) (*Config, error) {

	cfg := Default()

	file, err := os.ReadFile(configPath)
	if err != nil {
		return nil, err
	}
	if err := yaml.Unmarshal(file, cfg); err != nil {
		return nil, fmt.Errorf("config: %s: %w", configPath, err)
	}

	// Environment overrides
	if input := os.Getenv("READMIT_INPUT"); input != "" {
		cfg.InputPath = input
	}
	if logLevel := os.Getenv("READMIT_LOG_LEVEL"); logLevel != "" {
		cfg.LogLevel = logLevel
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// Validate reports the first problem with the configuration.
func (cfg *Config) Validate() error {

	if cfg.InputPath == "" {
		return fmt.Errorf("config: input_path is required")
	}
	if cfg.TrainFraction <= 0 || cfg.TrainFraction >= 1 {
		return fmt.Errorf("config: train_fraction %v is not in (0, 1)", cfg.TrainFraction)
	}
	if cfg.Threshold < 0 || cfg.Threshold > 1 {
		return fmt.Errorf("config: threshold %v is not in [0, 1]", cfg.Threshold)
	}
	if cfg.ConfLevel <= 0 || cfg.ConfLevel >= 1 {
		return fmt.Errorf("config: conf_level %v is not in (0, 1)", cfg.ConfLevel)
	}
	if cfg.MaxIter <= 0 {
		return fmt.Errorf("config: max_iter must be positive, got %d", cfg.MaxIter)
	}
	if cfg.FitMethod != "irls" && cfg.FitMethod != "gradient" {
		return fmt.Errorf("config: fit_method '%s' is not irls or gradient", cfg.FitMethod)
	}

	if !contains(dataset.DoseLevels(), cfg.InsulinRef) {
		return fmt.Errorf("config: insulin_ref '%s' is not a dose level", cfg.InsulinRef)
	}
	if !contains(dataset.AgeLevels(), cfg.AgeRef) {
		return fmt.Errorf("config: age_ref '%s' is not an age bracket", cfg.AgeRef)
	}

	return nil
}

func contains(levels []string, v string) bool {
	for _, lev := range levels {
		if lev == v {
			return true
		}
	}
	return false
}
