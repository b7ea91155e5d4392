package main

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

// config is the workload profile. It can be loaded from YAML:
//
//	max_size: 67108864
//	workers: 16
//	duration: 30s
//	reads: 85
//	invalidate: 1
//	resources: 50000
//	variants: 3
//	side: 96
//	zipf_s: 1.2
//	zipf_v: 1
type config struct {
	MaxSize       int64         `yaml:"max_size"`
	Workers       int           `yaml:"workers"`
	Duration      time.Duration `yaml:"duration"`
	ReadPct       int           `yaml:"reads"`
	InvalidatePct int           `yaml:"invalidate"`
	Resources     int           `yaml:"resources"`
	Variants      int           `yaml:"variants"`
	Side          int           `yaml:"side"`
	ZipfS         float64       `yaml:"zipf_s"`
	ZipfV         float64       `yaml:"zipf_v"`
}

func defaultConfig() config {
	return config{
		Workers:       8,
		Duration:      10 * time.Second,
		ReadPct:       80,
		InvalidatePct: 1,
		Resources:     100_000,
		Variants:      3,
		Side:          128,
		ZipfS:         1.1,
		ZipfV:         1.0,
	}
}

// loadConfig reads a YAML profile on top of the defaults.
func loadConfig(path string) (config, error) {
	cfg := defaultConfig()
	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, fmt.Errorf("read profile: %w", err)
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("parse profile %s: %w", path, err)
	}
	return cfg, nil
}

func (c config) validate() error {
	switch {
	case c.MaxSize < 0:
		return fmt.Errorf("max_size must be >= 0, got %d", c.MaxSize)
	case c.Workers <= 0:
		return fmt.Errorf("workers must be > 0, got %d", c.Workers)
	case c.Duration <= 0:
		return fmt.Errorf("duration must be > 0, got %v", c.Duration)
	case c.ReadPct < 0 || c.InvalidatePct < 0 || c.ReadPct+c.InvalidatePct > 100:
		return fmt.Errorf("reads (%d) + invalidate (%d) must be within [0..100]", c.ReadPct, c.InvalidatePct)
	case c.Resources < 2:
		return fmt.Errorf("resources must be >= 2, got %d", c.Resources)
	case c.Variants <= 0 || c.Variants > 8:
		return fmt.Errorf("variants must be in [1..8], got %d", c.Variants)
	case c.Side <= 0:
		return fmt.Errorf("side must be > 0, got %d", c.Side)
	case c.ZipfS <= 1 || c.ZipfV < 1:
		return fmt.Errorf("zipf needs s > 1 and v >= 1, got s=%v v=%v", c.ZipfS, c.ZipfV)
	}
	return nil
}
