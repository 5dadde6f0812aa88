// Package config loads ptx2llvm's CLI configuration from a YAML file, with
// defaults sensible enough that every field is optional.
package config

import (
	"os"

	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"
)

// Config controls the translator's target, logging, and backend-tool
// settings. It is loaded from an optional YAML file; every field has a
// usable default so an absent or empty file is valid.
type Config struct {
	Target   TargetConfig   `yaml:"target"`
	Logging  LoggingConfig  `yaml:"logging"`
	Backend  BackendConfig  `yaml:"backend"`
}

// TargetConfig names the LLVM target the module emitter stamps onto every
// module it produces.
type TargetConfig struct {
	Triple     string `yaml:"triple"`
	DataLayout string `yaml:"data_layout"`
}

// LoggingConfig controls the zap logger cmd/ptx2llvm builds at startup.
type LoggingConfig struct {
	Level string `yaml:"level"` // debug, info, warn, error
	JSON  bool   `yaml:"json"`
}

// BackendConfig names the external LLVM tools for post-translation
// processing, mirroring the teacher's llc/opt discovery. Only opt is run
// (by `build --optimize`); an empty OptPath falls back to PATH lookup.
// LLCPath is loaded but nothing in the CLI runs llc.
type BackendConfig struct {
	OptPath           string `yaml:"opt_path"`
	LLCPath           string `yaml:"llc_path"`
	OptimizationLevel string `yaml:"optimization_level"`
}

// Default returns the configuration used when no file is given.
func Default() *Config {
	return &Config{
		Target: TargetConfig{
			Triple:     "amdgcn-amd-amdhsa",
			DataLayout: "e-p:64:64-p1:64:64-p2:32:32-p3:32:32-p4:64:64-p5:32:32-p6:32:32-i64:64-v16:16-v24:32-v32:32-v48:64-v96:128-v192:256-v256:256-v512:512-v1024:1024-v2048:2048-n32:64-S32-A5-G1-ni:7",
		},
		Logging: LoggingConfig{Level: "info", JSON: false},
		Backend: BackendConfig{OptimizationLevel: "2"},
	}
}

// Load reads a YAML configuration file and overlays it onto Default(). A
// missing path is not an error: Load silently falls back to defaults, since
// every deployment of ptx2llvm should run without one.
func Load(path string) (*Config, error) {
	cfg := Default()
	if path == "" {
		return cfg, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return nil, errors.Wrapf(err, "reading config file %s", path)
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, errors.Wrapf(err, "parsing config file %s", path)
	}
	return cfg, nil
}
