package config

import "time"

// Default values applied by ApplyDefaults for any unset field.
const (
	// DefaultBaseURL is the public PubChem PUG REST endpoint.
	DefaultBaseURL = "https://pubchem.ncbi.nlm.nih.gov/rest/pug"

	// DefaultTimeout is the per-call lookup deadline.
	DefaultTimeout = 30 * time.Second

	// DefaultUserAgent identifies the tool to the service.
	DefaultUserAgent = "chem2smiles/1.0"

	// DefaultWorkers keeps resolution sequential unless the user opts in
	// to concurrency.
	DefaultWorkers = 1

	// DefaultMinInterval honours PubChem's fair-use limit of five
	// requests per second.
	DefaultMinInterval = 200 * time.Millisecond

	// DefaultImageSize matches the 400x400 depiction the tool has always
	// produced.
	DefaultImageSize = "400x400"
)

// ApplyDefaults fills every zero-valued field of cfg with its default.
// Explicitly-set values are never overwritten.
func ApplyDefaults(cfg *Config) {
	if cfg.Resolver.BaseURL == "" {
		cfg.Resolver.BaseURL = DefaultBaseURL
	}
	if cfg.Resolver.Timeout == 0 {
		cfg.Resolver.Timeout = DefaultTimeout
	}
	if cfg.Resolver.UserAgent == "" {
		cfg.Resolver.UserAgent = DefaultUserAgent
	}
	if cfg.Batch.Workers == 0 {
		cfg.Batch.Workers = DefaultWorkers
	}
	if cfg.Batch.MinInterval == 0 {
		cfg.Batch.MinInterval = DefaultMinInterval
	}
	if cfg.Image.Size == "" {
		cfg.Image.Size = DefaultImageSize
	}
	if cfg.Log.Level == "" {
		cfg.Log.Level = "info"
	}
	if cfg.Log.Format == "" {
		cfg.Log.Format = "console"
	}
}

// NewDefaultConfig returns a Config populated entirely with defaults.
func NewDefaultConfig() *Config {
	cfg := &Config{}
	ApplyDefaults(cfg)
	return cfg
}
