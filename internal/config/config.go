package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
)

const (
	VariantFull    = "full"
	VariantClassic = "classic"

	DefaultMaxUndo = 128
)

// Config holds the application configuration.
type Config struct {
	CasePath     string
	Variant      string
	MaxUndo      int
	Debug        bool
	DebugLog     string
	GeminiAPIKey string
	Narrate      bool
}

// LoadConfig loads the configuration from environment variables.
func LoadConfig() (*Config, error) {
	cfg := &Config{
		CasePath:     os.Getenv("DETECTIVE_CASE"),
		Variant:      VariantFull,
		MaxUndo:      DefaultMaxUndo,
		DebugLog:     "debug.log",
		GeminiAPIKey: os.Getenv("GEMINI_API_KEY"),
	}

	if v := os.Getenv("DETECTIVE_VARIANT"); v != "" {
		cfg.Variant = strings.ToLower(v)
	}
	if v := os.Getenv("DETECTIVE_MAX_UNDO"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return nil, fmt.Errorf("DETECTIVE_MAX_UNDO: %w", err)
		}
		cfg.MaxUndo = n
	}
	debug := os.Getenv("DEBUG")
	cfg.Debug = debug == "1" || debug == "true"

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks values that may have come from flags after loading.
func (c *Config) Validate() error {
	if c.Variant != VariantFull && c.Variant != VariantClassic {
		return fmt.Errorf("unknown variant %q (want %q or %q)", c.Variant, VariantFull, VariantClassic)
	}
	if c.MaxUndo < 1 {
		return fmt.Errorf("max undo must be at least 1, got %d", c.MaxUndo)
	}
	if c.Narrate && c.GeminiAPIKey == "" {
		return fmt.Errorf("narration needs the GEMINI_API_KEY environment variable")
	}
	return nil
}

// SupportsUndo reports whether the variant allows going back.
func (c *Config) SupportsUndo() bool {
	return c.Variant == VariantFull
}
