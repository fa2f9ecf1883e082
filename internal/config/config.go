// Package config loads service settings from an optional YAML file with
// environment overrides. Environment always wins so container deploys can
// skip the file entirely.
package config

import (
	"errors"
	"os"

	"gopkg.in/yaml.v3"
)

type Server struct {
	Port string `yaml:"port"`
}

type Fetch struct {
	TimeoutSec int `yaml:"timeout_sec"`
}

type Paths struct {
	Dataset string `yaml:"dataset"`
	Outputs string `yaml:"outputs"`
}

type Root struct {
	Server Server `yaml:"server"`
	Fetch  Fetch  `yaml:"fetch"`
	Paths  Paths  `yaml:"paths"`
}

func defaults() Root {
	return Root{
		Server: Server{Port: "8080"},
		Fetch:  Fetch{TimeoutSec: 40},
		Paths: Paths{
			Dataset: "recordings.xlsx",
			Outputs: "outputs",
		},
	}
}

// Load reads CONFIG_PATH (default config.yaml) if present, then applies
// env overrides. A missing file is not an error; a malformed or
// unreadable one is.
func Load() (Root, error) {
	cfg := defaults()

	path := os.Getenv("CONFIG_PATH")
	if path == "" {
		path = "config.yaml"
	}
	b, err := os.ReadFile(path)
	switch {
	case err == nil:
		if err := yaml.Unmarshal(b, &cfg); err != nil {
			return Root{}, err
		}
	case !errors.Is(err, os.ErrNotExist):
		// a file that exists but cannot be read is a deploy mistake,
		// not a reason to fall back to defaults silently
		return Root{}, err
	}

	if v := os.Getenv("PORT"); v != "" {
		cfg.Server.Port = v
	}
	if v := os.Getenv("DATASET_PATH"); v != "" {
		cfg.Paths.Dataset = v
	}
	if v := os.Getenv("OUTPUTS_DIR"); v != "" {
		cfg.Paths.Outputs = v
	}
	return cfg, nil
}
