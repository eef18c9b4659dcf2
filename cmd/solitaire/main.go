package main

import (
	"bufio"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/cardmatch/solitaire-go/internal/config"
	"github.com/cardmatch/solitaire-go/internal/game"
	"github.com/cardmatch/solitaire-go/internal/level"
)

var (
	configPath = flag.String("config", "config/config.yaml", "path to configuration file")
	levelPath  = flag.String("level", "", "level file to deal, overrides level.path")
	version    = "dev" // set via ldflags during build
)

func main() {
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load configuration: %v\n", err)
		os.Exit(1)
	}

	logger, err := initLogger(cfg.Logging)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	path := cfg.Level.Path
	if *levelPath != "" {
		path = *levelPath
	}
	logger.Info("starting solitaire",
		zap.String("version", version),
		zap.String("config", *configPath),
		zap.String("level", path),
		zap.String("motion_mode", cfg.Motion.Mode),
	)

	engine := game.NewEngine(logger, game.OptionsFromConfig(cfg, logger))
	c := newConsole(engine, os.Stdout, logger)
	engine.Events().Subscribe(c.printEvent)

	// An unreadable level is logged by Load and dealt as the empty level.
	if err := engine.StartLevel(level.Load(path, logger)); err != nil {
		logger.Warn("level rejected", zap.Error(err))
	}
	c.show()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)

	lines := make(chan string)
	go readLines(os.Stdin, lines)

	for {
		c.prompt()
		select {
		case sig := <-sigChan:
			logger.Info("received shutdown signal", zap.String("signal", sig.String()))
			return
		case line, ok := <-lines:
			if !ok {
				logger.Info("input closed")
				return
			}
			if !c.run(line) {
				logger.Info("solitaire stopped", zap.Bool("cleared", engine.IsCleared()))
				return
			}
		}
	}
}

func readLines(r io.Reader, out chan<- string) {
	defer close(out)
	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		out <- scanner.Text()
	}
}

// initLogger initializes the zap logger based on configuration
func initLogger(cfg config.LoggingConfig) (*zap.Logger, error) {
	var level zapcore.Level
	switch cfg.Level {
	case "debug":
		level = zapcore.DebugLevel
	case "info":
		level = zapcore.InfoLevel
	case "warn":
		level = zapcore.WarnLevel
	case "error":
		level = zapcore.ErrorLevel
	default:
		level = zapcore.InfoLevel
	}

	var zapCfg zap.Config
	if cfg.Format == "json" {
		zapCfg = zap.NewProductionConfig()
	} else {
		zapCfg = zap.NewDevelopmentConfig()
		zapCfg.EncoderConfig.EncodeLevel = zapcore.CapitalColorLevelEncoder
	}

	// Logs go to stderr so they do not interleave with the table on stdout.
	zapCfg.OutputPaths = []string{"stderr"}
	zapCfg.Level = zap.NewAtomicLevelAt(level)

	return zapCfg.Build()
}
