// Package config loads the gridstage TOML configuration
package config

import (
	"fmt"
	"os"
	"time"

	"github.com/BurntSushi/toml"
)

type Config struct {
	Engine  EngineConfig  `toml:"engine"`
	Content ContentConfig `toml:"content"`
	Audio   AudioConfig   `toml:"audio"`
	Logging LoggingConfig `toml:"logging"`
}

type EngineConfig struct {
	Width         float64       `toml:"width"`  // Logical surface width
	Height        float64       `toml:"height"` // Logical surface height
	FrameInterval time.Duration `toml:"frame_interval"`
	StartStage    int           `toml:"start_stage"`
	Background    string        `toml:"background"` // tcell colour name or #rrggbb
	QueueSize     int           `toml:"queue_size"`
}

type ContentConfig struct {
	Level   string `toml:"level"`
	Scripts string `toml:"scripts"` // Directory of .lua behaviors, optional
}

type AudioConfig struct {
	Enabled      bool    `toml:"enabled"`
	SampleRate   int     `toml:"sample_rate"`
	MasterVolume float64 `toml:"master_volume"` // 0.0-1.0
}

type LoggingConfig struct {
	Level  string `toml:"level"`  // debug, info, warn, error, off
	Format string `toml:"format"` // "json" or "console"
	File   string `toml:"file"`
}

// Load reads path over the defaults
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config %s: %w", path, err)
	}
	cfg := defaults()
	if err := toml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse config %s: %w", path, err)
	}
	if err := cfg.validate(); err != nil {
		return nil, fmt.Errorf("config %s: %w", path, err)
	}
	return cfg, nil
}

// Default returns the configuration used when no file is present
func Default() *Config {
	return defaults()
}

func defaults() *Config {
	return &Config{
		Engine: EngineConfig{
			Width:         960,
			Height:        640,
			FrameInterval: 16 * time.Millisecond,
			Background:    "black",
			QueueSize:     256,
		},
		Content: ContentConfig{
			Level:   "levels/demo.yaml",
			Scripts: "scripts",
		},
		Audio: AudioConfig{
			Enabled:      false,
			SampleRate:   44100,
			MasterVolume: 0.5,
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "console",
			File:   "logs/gridstage.log",
		},
	}
}

func (c *Config) validate() error {
	if c.Engine.Width <= 0 || c.Engine.Height <= 0 {
		return fmt.Errorf("engine size %vx%v must be positive", c.Engine.Width, c.Engine.Height)
	}
	if c.Engine.FrameInterval <= 0 {
		return fmt.Errorf("frame_interval %v must be positive", c.Engine.FrameInterval)
	}
	if c.Engine.StartStage < 0 {
		return fmt.Errorf("start_stage %d is negative", c.Engine.StartStage)
	}
	if c.Audio.MasterVolume < 0 || c.Audio.MasterVolume > 1 {
		return fmt.Errorf("master_volume %v outside 0-1", c.Audio.MasterVolume)
	}
	if c.Content.Level == "" {
		return fmt.Errorf("content level is empty")
	}
	return nil
}
