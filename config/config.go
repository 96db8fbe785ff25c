// Package config loads command-line tool settings from TOML and the environment
package config

import (
	"encoding/json"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/BurntSushi/toml"
	"go.uber.org/zap/zapcore"

	"github.com/lixenwraith/bpe/cell"
	"github.com/lixenwraith/bpe/palette"
)

type Config struct {
	Log     LogConfig     `toml:"log"`
	Palette PaletteConfig `toml:"palette"`
	Export  ExportConfig  `toml:"export"`
	View    ViewConfig    `toml:"view"`
}

type LogConfig struct {
	Level string `toml:"level"`
	Dir   string `toml:"dir"`
}

// PaletteConfig overrides palette entries, e.g. red = "#c00000" or bright_red = "#ff2020"
type PaletteConfig struct {
	Colors map[string]string `toml:"colors"`
}

type ExportConfig struct {
	// Name is the program name written into tape headers, at most 10 characters
	Name          string `toml:"name"`
	SampleRate    int    `toml:"sample_rate"`
	FallbackColor string `toml:"fallback_color"`
	Scale         int    `toml:"scale"`
}

type ViewConfig struct {
	ShowPanel bool `toml:"show_panel"`
}

func Default() *Config {
	return &Config{
		Log:     LogConfig{Level: "info", Dir: "logs"},
		Palette: PaletteConfig{Colors: map[string]string{}},
		Export: ExportConfig{
			Name:          "picture",
			SampleRate:    44100,
			FallbackColor: "white",
			Scale:         2,
		},
		View: ViewConfig{ShowPanel: true},
	}
}

// Load reads path over the defaults, applies environment overrides and validates
// An empty path skips the file
func Load(path string) (*Config, error) {
	cfg := Default()
	if path != "" {
		md, err := toml.DecodeFile(path, cfg)
		if err != nil {
			return nil, fmt.Errorf("config: %w", err)
		}
		if keys := md.Undecoded(); len(keys) > 0 {
			names := make([]string, len(keys))
			for i, k := range keys {
				names[i] = k.String()
			}
			return nil, fmt.Errorf("config: unknown keys %s", strings.Join(names, ", "))
		}
	}
	ApplyEnv(cfg)
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// ApplyEnv overrides settings from BPE_* variables; unparsable values are ignored
func ApplyEnv(cfg *Config) {
	if level := os.Getenv("BPE_LOG_LEVEL"); level != "" {
		cfg.Log.Level = level
	}

	if rate := os.Getenv("BPE_SAMPLE_RATE"); rate != "" {
		if val, err := strconv.Atoi(rate); err == nil && val > 0 {
			cfg.Export.SampleRate = val
		}
	}

	if fallback := os.Getenv("BPE_FALLBACK_COLOR"); fallback != "" {
		cfg.Export.FallbackColor = fallback
	}

	// Palette entries from JSON, merged over the file's
	if entries := os.Getenv("BPE_PALETTE"); entries != "" {
		var colors map[string]string
		if err := json.Unmarshal([]byte(entries), &colors); err == nil {
			if cfg.Palette.Colors == nil {
				cfg.Palette.Colors = make(map[string]string, len(colors))
			}
			for k, v := range colors {
				cfg.Palette.Colors[k] = v
			}
		}
	}
}

func (c *Config) Validate() error {
	if _, err := c.LogLevel(); err != nil {
		return err
	}
	if c.Export.SampleRate <= 0 {
		return fmt.Errorf("config: sample rate %d", c.Export.SampleRate)
	}
	if c.Export.Scale < 1 {
		return fmt.Errorf("config: scale %d", c.Export.Scale)
	}
	if len(c.Export.Name) > 10 {
		return fmt.Errorf("config: program name %q longer than 10 characters", c.Export.Name)
	}
	if _, err := c.Fallback(); err != nil {
		return err
	}
	_, err := c.BuildPalette()
	return err
}

func (c *Config) LogLevel() (zapcore.Level, error) {
	level, err := zapcore.ParseLevel(c.Log.Level)
	if err != nil {
		return level, fmt.Errorf("config: %w", err)
	}
	return level, nil
}

// Fallback is the color substituted for transparent attributes on export
func (c *Config) Fallback() (cell.Color, error) {
	color, err := cell.ParseColor(strings.ToLower(c.Export.FallbackColor))
	if err != nil {
		return color, fmt.Errorf("config: fallback: %w", err)
	}
	if color.IsTransparent() {
		return color, fmt.Errorf("config: fallback cannot be transparent")
	}
	return color, nil
}

func (c *Config) BuildPalette() (*palette.Palette, error) {
	p := palette.Default()
	if err := p.Override(c.Palette.Colors); err != nil {
		return nil, fmt.Errorf("config: %w", err)
	}
	return p, nil
}
