package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestValidateDefaults(t *testing.T) {
	cfg := NewDefaultConfig()
	assert.NoError(t, cfg.Validate())
}

func TestValidateFailures(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
		want   string
	}{
		{"empty base url", func(c *Config) { c.Resolver.BaseURL = "" }, "base_url"},
		{"bad scheme", func(c *Config) { c.Resolver.BaseURL = "ftp://pubchem" }, "http"},
		{"zero timeout", func(c *Config) { c.Resolver.Timeout = 0 }, "timeout"},
		{"negative timeout", func(c *Config) { c.Resolver.Timeout = -time.Second }, "timeout"},
		{"zero workers", func(c *Config) { c.Batch.Workers = 0 }, "workers"},
		{"negative interval", func(c *Config) { c.Batch.MinInterval = -time.Millisecond }, "min_interval"},
		{"bad format", func(c *Config) { c.Output.Format = "xlsx" }, "format"},
		{"bad image size", func(c *Config) { c.Image.Size = "big" }, "image.size"},
		{"zero image dim", func(c *Config) { c.Image.Size = "0x400" }, "image.size"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := NewDefaultConfig()
			tt.mutate(cfg)
			err := cfg.Validate()
			assert.Error(t, err)
			assert.Contains(t, err.Error(), tt.want)
		})
	}
}

func TestValidateOutputFormats(t *testing.T) {
	for _, format := range []string{"", "csv", "tsv"} {
		cfg := NewDefaultConfig()
		cfg.Output.Format = format
		assert.NoError(t, cfg.Validate(), "format %q", format)
	}
}
