package config

import (
	"errors"
	"fmt"
	"os"
	"runtime"

	"github.com/rs/zerolog"
	"gopkg.in/yaml.v3"
)

var ErrInvalid = errors.New("invalid config")

// Config holds CLI defaults. Flags given on the command line take precedence.
type Config struct {
	// Format serializes secret images before compression: bmp, png or qoi.
	Format string `yaml:"format"`
	// Kernel resamples secret images that exceed the cover budget.
	Kernel string `yaml:"kernel"`
	// Level is the zstd level, 1 (fastest) to 22.
	Level int `yaml:"level"`
	// ECC is "none" or "golay".
	ECC        string `yaml:"ecc"`
	Terminator bool   `yaml:"terminator"`
	Workers    int    `yaml:"workers"`
	Retries    int    `yaml:"retries"`
	LogLevel   string `yaml:"log_level"`
}

func Default() Config {
	return Config{
		Format:     "bmp",
		Kernel:     "catmullrom",
		Level:      19,
		ECC:        "none",
		Terminator: true,
		Workers:    runtime.NumCPU(),
		Retries:    0,
		LogLevel:   "info",
	}
}

// Load reads a YAML file over Default. An empty path returns Default.
func Load(path string) (Config, error) {
	conf := Default()
	if path == "" {
		return conf, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return conf, fmt.Errorf("failed to read config: %w", err)
	}
	if err := yaml.Unmarshal(data, &conf); err != nil {
		return conf, fmt.Errorf("%w: %w", ErrInvalid, err)
	}
	if err := conf.Validate(); err != nil {
		return conf, err
	}
	return conf, nil
}

// Validate checks the fields that have no meaningful fallback.
// Format, Kernel and ECC names are resolved by the caller.
func (c Config) Validate() error {
	if c.Level < 1 || c.Level > 22 {
		return fmt.Errorf("%w: level %d out of 1-22", ErrInvalid, c.Level)
	}
	if c.Workers < 1 {
		return fmt.Errorf("%w: workers %d", ErrInvalid, c.Workers)
	}
	if c.Retries < 0 {
		return fmt.Errorf("%w: retries %d", ErrInvalid, c.Retries)
	}
	if _, err := zerolog.ParseLevel(c.LogLevel); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalid, err)
	}
	return nil
}
