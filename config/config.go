// Package config loads the collector and worker settings from YAML.
package config

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"

	mandel "github.com/marben/dist_mandel"
)

// Config is the complete collector configuration.
type Config struct {
	TCPAddr  string `yaml:"tcp_addr"`  // workers and clients over plain TCP (default ":8081")
	HTTPAddr string `yaml:"http_addr"` // websocket endpoint at /ws (default ":8080")

	Image  ImageConfig  `yaml:"image"`
	Render RenderConfig `yaml:"render"`
}

// ImageConfig describes the grid and the starting view.
type ImageConfig struct {
	Width  int    `yaml:"width"`
	Height int    `yaml:"height"`
	Region string `yaml:"region"` // "default" or a landmark name

	// Viewport overrides Region when set.
	Viewport *mandel.Viewport `yaml:"viewport,omitempty"`
}

// RenderConfig contains the compute round settings.
type RenderConfig struct {
	Workers        int  `yaml:"workers"`
	MaxIterations  int  `yaml:"max_iterations"`
	GatherTimeoutS int  `yaml:"gather_timeout_s"` // 0 waits forever
	LocalFallback  bool `yaml:"local_fallback"`   // compute in-process when no worker is connected
	LocalShare     bool `yaml:"local_share"`      // compute a share in-process next to the workers
	MinWorkers     int  `yaml:"min_workers"`      // remote workers to wait for before the first round
}

// GatherTimeout returns the gather deadline as a duration.
func (r RenderConfig) GatherTimeout() time.Duration {
	return time.Duration(r.GatherTimeoutS) * time.Second
}

// Default returns the configuration used when no file is given.
func Default() *Config {
	cfg := &Config{Render: RenderConfig{LocalFallback: true}}
	if err := Validate(cfg); err != nil {
		panic(err)
	}
	return cfg
}

// Load reads and parses a YAML configuration file
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}
	return Parse(data)
}

// Parse decodes and validates YAML configuration.
func Parse(data []byte) (*Config, error) {
	cfg := Config{Render: RenderConfig{LocalFallback: true}}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}
	if err := Validate(&cfg); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return &cfg, nil
}

// Validate fills in defaults and rejects values no round could run with.
func Validate(cfg *Config) error {
	if cfg.TCPAddr == "" {
		cfg.TCPAddr = ":8081"
	}
	if cfg.HTTPAddr == "" {
		cfg.HTTPAddr = ":8080"
	}

	if cfg.Image.Width == 0 {
		cfg.Image.Width = 1920
	}
	if cfg.Image.Height == 0 {
		cfg.Image.Height = 1080
	}
	if cfg.Image.Width < 0 || cfg.Image.Height < 0 {
		return fmt.Errorf("image size must be positive, got %dx%d", cfg.Image.Width, cfg.Image.Height)
	}
	if cfg.Image.Region == "" {
		cfg.Image.Region = "default"
	}
	if cfg.Image.Viewport == nil && cfg.Image.Region != "default" {
		if _, ok := mandel.Landmarks[cfg.Image.Region]; !ok {
			return fmt.Errorf("unknown region %q", cfg.Image.Region)
		}
	}

	if cfg.Render.Workers == 0 {
		cfg.Render.Workers = 8
	}
	if cfg.Render.MaxIterations == 0 {
		cfg.Render.MaxIterations = mandel.DefaultMaxIterations
	}
	if cfg.Render.GatherTimeoutS < 0 {
		return fmt.Errorf("render.gather_timeout_s must be >= 0")
	}
	if cfg.Render.MinWorkers < 0 {
		return fmt.Errorf("render.min_workers must be >= 0")
	}

	round := cfg.Round(cfg.StartViewport())
	if err := round.Validate(); err != nil {
		return err
	}
	return nil
}

// StartViewport resolves the configured starting view.
func (cfg *Config) StartViewport() mandel.Viewport {
	if cfg.Image.Viewport != nil {
		return *cfg.Image.Viewport
	}
	if v, ok := mandel.Landmarks[cfg.Image.Region]; ok {
		return v
	}
	return mandel.DefaultViewport(cfg.Image.Width, cfg.Image.Height)
}

// Round builds a compute round over v with the configured parameters.
func (cfg *Config) Round(v mandel.Viewport) mandel.Round {
	return mandel.Round{
		Viewport:      v,
		Width:         cfg.Image.Width,
		Height:        cfg.Image.Height,
		Workers:       cfg.Render.Workers,
		MaxIterations: cfg.Render.MaxIterations,
	}
}
