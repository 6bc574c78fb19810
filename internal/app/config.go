// Package app is the application shell: configuration, the ebitengine
// game loop, save states and the headless runner.
package app

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
)

// Config holds all application configuration.
type Config struct {
	Window WindowConfig `json:"window"`
	Video  VideoConfig  `json:"video"`
	Audio  AudioConfig  `json:"audio"`
	Input  InputConfig  `json:"input"`
	Debug  DebugConfig  `json:"debug"`
	Paths  PathsConfig  `json:"paths"`
}

// WindowConfig contains window-related configuration.
type WindowConfig struct {
	Scale      int  `json:"scale"` // NES resolution multiplier
	Fullscreen bool `json:"fullscreen"`
	VSync      bool `json:"vsync"`
}

// VideoConfig selects the presentation backend.
type VideoConfig struct {
	Backend       string `json:"backend"` // "ebitengine", "terminal", "headless"
	TerminalScale int    `json:"terminal_scale"`
}

// AudioConfig contains audio configuration.
type AudioConfig struct {
	Enabled    bool `json:"enabled"`
	SampleRate int  `json:"sample_rate"`
}

// InputConfig maps keyboard keys to the pad.
type InputConfig struct {
	Up     string `json:"up"`
	Down   string `json:"down"`
	Left   string `json:"left"`
	Right  string `json:"right"`
	A      string `json:"a"`
	B      string `json:"b"`
	Start  string `json:"start"`
	Select string `json:"select"`
}

// DebugConfig gates the diagnostic output.
type DebugConfig struct {
	Enabled       bool `json:"enabled"`
	DumpState     bool `json:"dump_state"`
	TraceUnmapped bool `json:"trace_unmapped"`
}

// PathsConfig holds the data directories.
type PathsConfig struct {
	States string `json:"states"`
	SRAM   string `json:"sram"`
}

// DefaultConfig returns the configuration used when no file exists.
func DefaultConfig() *Config {
	return &Config{
		Window: WindowConfig{Scale: 3, VSync: true},
		Video:  VideoConfig{Backend: "ebitengine", TerminalScale: 2},
		Audio:  AudioConfig{Enabled: true, SampleRate: 44100},
		Input: InputConfig{
			Up: "up", Down: "down", Left: "left", Right: "right",
			A: "z", B: "x", Start: "enter", Select: "space",
		},
		Paths: PathsConfig{States: "states", SRAM: "sram"},
	}
}

// DefaultConfigPath is the conventional config location.
func DefaultConfigPath() string {
	return filepath.Join("config", "gnes.json")
}

// LoadConfig reads a config file, falling back to defaults when the file
// does not exist.
func LoadConfig(path string) (*Config, error) {
	config := DefaultConfig()
	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return config, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}
	if err := json.Unmarshal(data, config); err != nil {
		return nil, fmt.Errorf("parse config %s: %w", path, err)
	}
	return config, nil
}

// Save writes the config back to disk.
func (c *Config) Save(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	data, err := json.MarshalIndent(c, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0o644)
}
