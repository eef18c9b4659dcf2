// Package config loads the solitaire configuration with viper.
package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// EnvPrefix is prepended to environment overrides, e.g. SOLITAIRE_LOGGING_LEVEL.
const EnvPrefix = "SOLITAIRE"

// Motion modes.
const (
	MotionImmediate = "immediate"
	MotionQueued    = "queued"
)

// Config is the root configuration.
type Config struct {
	Logging LoggingConfig `mapstructure:"logging"`
	Table   TableConfig   `mapstructure:"table"`
	Motion  MotionConfig  `mapstructure:"motion"`
	Game    GameConfig    `mapstructure:"game"`
	Level   LevelConfig   `mapstructure:"level"`
}

// LoggingConfig selects the zap level and encoder.
type LoggingConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
}

// PointConfig is a 2D coordinate.
type PointConfig struct {
	X float64 `mapstructure:"x"`
	Y float64 `mapstructure:"y"`
}

// TableConfig describes card footprint and stack placement.
type TableConfig struct {
	CardWidth     float64     `mapstructure:"card_width"`
	CardHeight    float64     `mapstructure:"card_height"`
	StackSpacing  float64     `mapstructure:"stack_spacing"`
	ReserveOrigin PointConfig `mapstructure:"reserve_origin"`
	BaseOrigin    PointConfig `mapstructure:"base_origin"`
}

// MotionConfig controls how card motions complete.
type MotionConfig struct {
	Duration time.Duration `mapstructure:"duration"`
	Mode     string        `mapstructure:"mode"`
}

// GameConfig holds engine options.
type GameConfig struct {
	RecordReplay bool `mapstructure:"record_replay"`
	ReplayLimit  int  `mapstructure:"replay_limit"`
}

// LevelConfig points at the level file to load at start.
type LevelConfig struct {
	Path string `mapstructure:"path"`
}

var (
	// ErrInvalidTable is returned when the card footprint or spacing is not positive.
	ErrInvalidTable = errors.New("invalid table configuration")
	// ErrInvalidMotion is returned for an unknown motion mode or negative duration.
	ErrInvalidMotion = errors.New("invalid motion configuration")
)

// Load reads the YAML file at path on top of the defaults. An empty path
// yields the defaults plus environment overrides.
func Load(path string) (*Config, error) {
	v := newViper()
	if path != "" {
		v.SetConfigFile(path)
		v.SetConfigType("yaml")
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("read config %s: %w", path, err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("decode config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate checks value ranges.
func (c *Config) Validate() error {
	if c.Table.CardWidth <= 0 || c.Table.CardHeight <= 0 {
		return fmt.Errorf("%w: card size %.0fx%.0f", ErrInvalidTable, c.Table.CardWidth, c.Table.CardHeight)
	}
	if c.Table.StackSpacing <= 0 {
		return fmt.Errorf("%w: stack spacing %.0f", ErrInvalidTable, c.Table.StackSpacing)
	}
	if c.Motion.Duration < 0 {
		return fmt.Errorf("%w: duration %s", ErrInvalidMotion, c.Motion.Duration)
	}
	switch c.Motion.Mode {
	case MotionImmediate, MotionQueued:
	default:
		return fmt.Errorf("%w: mode %q", ErrInvalidMotion, c.Motion.Mode)
	}
	if c.Game.ReplayLimit < 0 {
		return fmt.Errorf("game.replay_limit must not be negative, got %d", c.Game.ReplayLimit)
	}
	return nil
}

func newViper() *viper.Viper {
	v := viper.New()

	v.SetDefault("logging.level", "info")
	v.SetDefault("logging.format", "console")

	v.SetDefault("table.card_width", 150.0)
	v.SetDefault("table.card_height", 210.0)
	v.SetDefault("table.stack_spacing", 25.0)
	v.SetDefault("table.reserve_origin.x", 200.0)
	v.SetDefault("table.reserve_origin.y", 290.0)
	v.SetDefault("table.base_origin.x", 700.0)
	v.SetDefault("table.base_origin.y", 290.0)

	v.SetDefault("motion.duration", 300*time.Millisecond)
	v.SetDefault("motion.mode", MotionImmediate)

	v.SetDefault("game.record_replay", true)
	v.SetDefault("game.replay_limit", 256)

	v.SetDefault("level.path", "")

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	return v
}
