// Package level reads level files into plain card records.
//
// A level file lists three groups of cards under the keys "Playfield",
// "Stack" for the reserve pile and "BaseStack" for the base pile. Each card
// carries "CardFace", "CardSuit" and "Position".
package level

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"go.uber.org/zap"
	"gopkg.in/yaml.v3"

	"github.com/cardmatch/solitaire-go/internal/game/cards"
)

// Format is the encoding of a level file.
type Format string

const (
	FormatJSON Format = "json"
	FormatYAML Format = "yaml"
)

// FormatFromPath picks the format from the file extension. Anything that is
// not .yaml or .yml is treated as JSON.
func FormatFromPath(path string) Format {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return FormatYAML
	}
	return FormatJSON
}

// Position is a card's table coordinate.
type Position struct {
	X float64 `json:"x" yaml:"x"`
	Y float64 `json:"y" yaml:"y"`
}

// CardSpec describes one card of a level.
type CardSpec struct {
	Face     int      `json:"CardFace" yaml:"CardFace"`
	Suit     int      `json:"CardSuit" yaml:"CardSuit"`
	Position Position `json:"Position" yaml:"Position"`
}

// Rank returns the face as a card rank.
func (c CardSpec) Rank() cards.Rank { return cards.Rank(c.Face) }

// CardSuit returns the suit as a card suit.
func (c CardSpec) CardSuit() cards.Suit { return cards.Suit(c.Suit) }

// Level is the dealt layout of one game.
type Level struct {
	Playfield []CardSpec `json:"Playfield" yaml:"Playfield"`
	Reserve   []CardSpec `json:"Stack" yaml:"Stack"`
	Base      []CardSpec `json:"BaseStack" yaml:"BaseStack"`
}

// Empty is the level every failed load degrades to.
var Empty = Level{}

// Count returns the number of cards across all groups.
func (l Level) Count() int {
	return len(l.Playfield) + len(l.Reserve) + len(l.Base)
}

// IsEmpty reports whether the level deals no cards.
func (l Level) IsEmpty() bool { return l.Count() == 0 }

// ErrInvalidCard is returned when a card's face or suit is out of range.
var ErrInvalidCard = errors.New("invalid level card")

// Validate checks every card's face and suit.
func (l Level) Validate() error {
	groups := []struct {
		name  string
		cards []CardSpec
	}{
		{"Playfield", l.Playfield},
		{"Stack", l.Reserve},
		{"BaseStack", l.Base},
	}
	for _, g := range groups {
		for i, c := range g.cards {
			if !c.Rank().Valid() {
				return fmt.Errorf("%w: %s[%d] CardFace %d", ErrInvalidCard, g.name, i, c.Face)
			}
			if !c.CardSuit().Valid() {
				return fmt.Errorf("%w: %s[%d] CardSuit %d", ErrInvalidCard, g.name, i, c.Suit)
			}
		}
	}
	return nil
}

// Parse decodes and validates a level. On any failure it returns Empty
// together with the error.
func Parse(data []byte, format Format) (Level, error) {
	var lvl Level
	switch format {
	case FormatYAML:
		if err := yaml.Unmarshal(data, &lvl); err != nil {
			return Empty, fmt.Errorf("decode yaml level: %w", err)
		}
	case FormatJSON:
		if len(bytes.TrimSpace(data)) == 0 {
			return Empty, errors.New("decode json level: empty document")
		}
		if err := json.Unmarshal(data, &lvl); err != nil {
			return Empty, fmt.Errorf("decode json level: %w", err)
		}
	default:
		return Empty, fmt.Errorf("unknown level format %q", format)
	}

	if err := lvl.Validate(); err != nil {
		return Empty, err
	}
	return lvl, nil
}

// Load reads the level at path. Read and parse failures are logged and
// yield Empty; the caller decides whether an empty level is fatal.
func Load(path string, logger *zap.Logger) Level {
	if logger == nil {
		logger = zap.NewNop()
	}
	data, err := os.ReadFile(path)
	if err != nil {
		logger.Warn("level file unreadable, using empty level", zap.String("path", path), zap.Error(err))
		return Empty
	}
	lvl, err := Parse(data, FormatFromPath(path))
	if err != nil {
		logger.Warn("level file rejected, using empty level", zap.String("path", path), zap.Error(err))
		return Empty
	}
	logger.Info("level loaded",
		zap.String("path", path),
		zap.Int("playfield", len(lvl.Playfield)),
		zap.Int("reserve", len(lvl.Reserve)),
		zap.Int("base", len(lvl.Base)),
	)
	return lvl
}
