package config

import (
	"errors"
	"fmt"
	"io/fs"
	"math"
	"os"

	"github.com/caarlos0/env/v11"
	"github.com/uyouii/truncated-density/common"
	"github.com/uyouii/truncated-density/kde"
	"github.com/uyouii/truncated-density/model"
	"github.com/uyouii/truncated-density/render"
	"github.com/uyouii/truncated-density/truncnorm"
	"go.uber.org/multierr"
	"go.uber.org/zap/zapcore"
	"gopkg.in/yaml.v3"
)

// Config describes one run: the distribution to draw from, the truncation,
// and how the resulting chart is evaluated and drawn.
type Config struct {
	Mean       float64 `yaml:"mean" env:"TRUNCDENSITY_MEAN"`
	StdDev     float64 `yaml:"std_dev" env:"TRUNCDENSITY_STD_DEV"`
	SampleSize int     `yaml:"sample_size" env:"TRUNCDENSITY_SAMPLE_SIZE"`
	Seed       uint64  `yaml:"seed" env:"TRUNCDENSITY_SEED"`
	Threshold  float64 `yaml:"threshold" env:"TRUNCDENSITY_THRESHOLD"`

	GridSize      int    `yaml:"grid_size" env:"TRUNCDENSITY_GRID_SIZE"`
	Bins          int    `yaml:"bins" env:"TRUNCDENSITY_BINS"`
	Normalization string `yaml:"normalization" env:"TRUNCDENSITY_NORMALIZATION"`
	KDE           bool   `yaml:"kde" env:"TRUNCDENSITY_KDE"`
	Bandwidth     string `yaml:"bandwidth" env:"TRUNCDENSITY_BANDWIDTH"`

	Format string `yaml:"format" env:"TRUNCDENSITY_FORMAT"`
	Width  int    `yaml:"width" env:"TRUNCDENSITY_WIDTH"`
	Height int    `yaml:"height" env:"TRUNCDENSITY_HEIGHT"`

	LogLevel string `yaml:"log_level" env:"TRUNCDENSITY_LOG_LEVEL"`
}

func Default() *Config {
	return &Config{
		Mean:          0,
		StdDev:        1,
		SampleSize:    10000,
		Seed:          1,
		Threshold:     0.5,
		GridSize:      truncnorm.DefaultGridSize,
		Bins:          50,
		Normalization: truncnorm.NormalizeObservedRange.String(),
		Bandwidth:     kde.BandWidthNormalReference,
		Format:        render.FormatSVG,
		Width:         900,
		Height:        600,
		LogLevel:      "info",
	}
}

// Load applies, in order, the defaults, the YAML file at path (skipped when path
// is empty) and TRUNCDENSITY_* environment variables.
func Load(path string) (*Config, error) {
	cfg := Default()

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				return nil, fmt.Errorf("config file %s not found: %w", path, err)
			}
			return nil, fmt.Errorf("read config %s: %w", path, err)
		}
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parse config %s: %w", path, err)
		}
	}

	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("parse env: %w", err)
	}

	return cfg, nil
}

// Validate reports every invalid field, combined.
func (c *Config) Validate() error {
	var err error
	if math.IsNaN(c.Mean) || math.IsInf(c.Mean, 0) {
		err = multierr.Append(err, invalid("mean %v is not finite", c.Mean))
	}
	if !(c.StdDev > 0) || math.IsInf(c.StdDev, 0) {
		err = multierr.Append(err, invalid("std_dev %v must be positive", c.StdDev))
	}
	if c.SampleSize < 2 {
		err = multierr.Append(err, invalid("sample_size %d must be at least 2", c.SampleSize))
	}
	if math.IsNaN(c.Threshold) || math.IsInf(c.Threshold, 0) {
		err = multierr.Append(err, invalid("threshold %v is not finite", c.Threshold))
	}
	if c.GridSize < 2 {
		err = multierr.Append(err, invalid("grid_size %d must be at least 2", c.GridSize))
	}
	if c.Bins < 1 {
		err = multierr.Append(err, invalid("bins %d must be positive", c.Bins))
	}
	if _, perr := truncnorm.ParseNormalization(c.Normalization); perr != nil {
		err = multierr.Append(err, perr)
	}
	if _, perr := kde.ParseBandWidth(c.Bandwidth); perr != nil {
		err = multierr.Append(err, perr)
	}
	if !render.IsFormat(c.Format) {
		err = multierr.Append(err, invalid("format %q is not one of %v", c.Format, render.Formats()))
	}
	if c.Width <= 0 || c.Height <= 0 {
		err = multierr.Append(err, invalid("chart size %dx%d must be positive", c.Width, c.Height))
	}
	if _, perr := zapcore.ParseLevel(c.LogLevel); perr != nil {
		err = multierr.Append(err, invalid("log_level %q: %v", c.LogLevel, perr))
	}
	return err
}

func (c *Config) Params() model.NormalParameters {
	return model.NormalParameters{
		Mean:   c.Mean,
		StdDev: c.StdDev,
	}
}

// EvaluatorOptions assumes Validate passed.
func (c *Config) EvaluatorOptions() []truncnorm.Option {
	normalization, _ := truncnorm.ParseNormalization(c.Normalization)
	return []truncnorm.Option{
		truncnorm.WithGridSize(c.GridSize),
		truncnorm.WithNormalization(normalization),
	}
}

// KDEOptions assumes Validate passed.
func (c *Config) KDEOptions() []kde.Option {
	bandWidth, _ := kde.ParseBandWidth(c.Bandwidth)
	return []kde.Option{kde.WithBandWidth(bandWidth)}
}

func invalid(format string, args ...any) error {
	return fmt.Errorf(format+": %w", append(args, common.ErrorInvalidValue)...)
}
