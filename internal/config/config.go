// Package config defines all configuration structures for chem2smiles.
// No I/O or parsing logic lives here — only plain data types and validation.
package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/turtacn/chem2smiles/internal/infrastructure/monitoring/logging"
)

// ResolverConfig holds parameters for the remote name-lookup service.
type ResolverConfig struct {
	// BaseURL is the PUG REST prefix, without a trailing slash.
	BaseURL string `mapstructure:"base_url"`

	// Timeout is the per-call deadline for one lookup.  Individual calls
	// that exceed it resolve as Timeout; the batch itself has no cap.
	Timeout time.Duration `mapstructure:"timeout"`

	// UserAgent is sent with every request per PubChem usage policy.
	UserAgent string `mapstructure:"user_agent"`
}

// BatchConfig holds concurrency and pacing parameters for batch runs.
type BatchConfig struct {
	// Workers bounds how many resolver calls run concurrently.
	Workers int `mapstructure:"workers"`

	// MinInterval is the minimum spacing between consecutive calls to the
	// remote service across all workers.  Zero disables spacing.
	MinInterval time.Duration `mapstructure:"min_interval"`
}

// OutputConfig holds result-file parameters.
type OutputConfig struct {
	// Format forces the table delimiter: "csv" or "tsv".  Empty selects by
	// destination extension (".tsv" → tab, anything else → comma).
	Format string `mapstructure:"format"`
}

// ImageConfig holds structure-depiction parameters.
type ImageConfig struct {
	// Size is the raster dimensions requested from the depiction service,
	// e.g. "400x400".
	Size string `mapstructure:"size"`
}

// MetricsConfig holds the optional prometheus listener address.
type MetricsConfig struct {
	// Listen is a host:port to expose /metrics on during a run.  Empty
	// disables the listener.
	Listen string `mapstructure:"listen"`
}

// Config aggregates every configurable setting of the tool.
type Config struct {
	Resolver ResolverConfig `mapstructure:"resolver"`
	Batch    BatchConfig    `mapstructure:"batch"`
	Output   OutputConfig   `mapstructure:"output"`
	Image    ImageConfig    `mapstructure:"image"`
	Log      logging.Config `mapstructure:"log"`
	Metrics  MetricsConfig  `mapstructure:"metrics"`
}

// Validate checks cross-field consistency after defaults have been applied.
func (c *Config) Validate() error {
	if c.Resolver.BaseURL == "" {
		return fmt.Errorf("resolver.base_url must not be empty")
	}
	if !strings.HasPrefix(c.Resolver.BaseURL, "http://") && !strings.HasPrefix(c.Resolver.BaseURL, "https://") {
		return fmt.Errorf("resolver.base_url must start with http:// or https://, got %q", c.Resolver.BaseURL)
	}
	if c.Resolver.Timeout <= 0 {
		return fmt.Errorf("resolver.timeout must be positive, got %v", c.Resolver.Timeout)
	}
	if c.Batch.Workers < 1 {
		return fmt.Errorf("batch.workers must be at least 1, got %d", c.Batch.Workers)
	}
	if c.Batch.MinInterval < 0 {
		return fmt.Errorf("batch.min_interval must not be negative, got %v", c.Batch.MinInterval)
	}
	switch c.Output.Format {
	case "", "csv", "tsv":
	default:
		return fmt.Errorf("output.format must be \"csv\" or \"tsv\", got %q", c.Output.Format)
	}
	if err := validateImageSize(c.Image.Size); err != nil {
		return err
	}
	return nil
}

// validateImageSize accepts "<width>x<height>" with positive integers.
func validateImageSize(size string) error {
	var w, h int
	if _, err := fmt.Sscanf(size, "%dx%d", &w, &h); err != nil {
		return fmt.Errorf("image.size must look like \"400x400\", got %q", size)
	}
	if w <= 0 || h <= 0 {
		return fmt.Errorf("image.size dimensions must be positive, got %q", size)
	}
	return nil
}
