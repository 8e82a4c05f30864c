// Package config provides configuration helpers and TOML parsing.
package config

import (
	"fmt"
	"os"

	"github.com/BurntSushi/toml"
)

// FileConfig represents the TOML configuration file.
type FileConfig struct {
	Wheel WheelConfig `toml:"wheel"`
}

// WheelConfig maps wheel-related settings.
type WheelConfig struct {
	DefaultWeight *int     `toml:"default-weight"`
	SpinSeconds   *float64 `toml:"spin-seconds"`
	NoticeSeconds *float64 `toml:"notice-seconds"`
	FullSpins     *int     `toml:"full-spins"`
	Fairness      *bool    `toml:"fairness"`
	ExcludeGroup  *string  `toml:"exclude-group"`
	PaletteSize   *int     `toml:"palette-size"`
}

// LoadConfig reads a TOML config from the given path. Missing file is not an error.
func LoadConfig(path string) (FileConfig, error) {
	if path == "" {
		return FileConfig{}, fmt.Errorf("config path is empty")
	}
	if _, err := os.Stat(path); err != nil {
		if os.IsNotExist(err) {
			return FileConfig{}, nil
		}
		return FileConfig{}, fmt.Errorf("failed to stat config: %w", err)
	}
	var cfg FileConfig
	if _, err := toml.DecodeFile(path, &cfg); err != nil {
		return FileConfig{}, fmt.Errorf("failed to decode config: %w", err)
	}
	return cfg, nil
}
