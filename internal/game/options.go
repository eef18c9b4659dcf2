package game

import (
	"time"

	"go.uber.org/zap"

	"github.com/cardmatch/solitaire-go/internal/config"
	"github.com/cardmatch/solitaire-go/internal/game/motion"
	"github.com/cardmatch/solitaire-go/internal/game/zones"
)

// Options configures table geometry and engine behaviour.
type Options struct {
	CardSize       zones.Size
	StackSpacing   float64
	ReserveOrigin  zones.Vec2
	BaseOrigin     zones.Vec2
	MotionDuration time.Duration
	Scheduler      motion.Scheduler // nil completes motions immediately
	RecordReplay   bool
	ReplayLimit    int // 0 keeps every frame
}

// DefaultOptions mirrors the configuration defaults.
func DefaultOptions() Options {
	return Options{
		CardSize:       zones.DefaultCardSize,
		StackSpacing:   zones.DefaultStackSpacing,
		ReserveOrigin:  zones.Vec2{X: 200, Y: 290},
		BaseOrigin:     zones.Vec2{X: 700, Y: 290},
		MotionDuration: motion.DefaultDuration,
		RecordReplay:   true,
	}
}

// OptionsFromConfig builds engine options from a loaded configuration.
func OptionsFromConfig(cfg *config.Config, logger *zap.Logger) Options {
	opts := Options{
		CardSize:       zones.Size{Width: cfg.Table.CardWidth, Height: cfg.Table.CardHeight},
		StackSpacing:   cfg.Table.StackSpacing,
		ReserveOrigin:  zones.Vec2{X: cfg.Table.ReserveOrigin.X, Y: cfg.Table.ReserveOrigin.Y},
		BaseOrigin:     zones.Vec2{X: cfg.Table.BaseOrigin.X, Y: cfg.Table.BaseOrigin.Y},
		MotionDuration: cfg.Motion.Duration,
		RecordReplay:   cfg.Game.RecordReplay,
		ReplayLimit:    cfg.Game.ReplayLimit,
	}
	if cfg.Motion.Mode == config.MotionQueued {
		opts.Scheduler = motion.NewQueue(logger)
	}
	return opts
}
