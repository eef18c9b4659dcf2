package main

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"

	"github.com/cardmatch/solitaire-go/internal/game"
	"github.com/cardmatch/solitaire-go/internal/level"
)

func newTestConsole(t *testing.T) (*console, *bytes.Buffer) {
	t.Helper()
	logger := zaptest.NewLogger(t)
	engine := game.NewEngine(logger, game.DefaultOptions())
	var out bytes.Buffer
	c := newConsole(engine, &out, logger)
	engine.Events().Subscribe(c.printEvent)

	require.NoError(t, engine.StartLevel(level.Level{
		Playfield: []level.CardSpec{{Face: 4, Suit: 1, Position: level.Position{X: 300, Y: 900}}},
		Base:      []level.CardSpec{{Face: 5, Suit: 0}},
	}))
	out.Reset()
	return c, &out
}

func TestConsoleClickAndUndo(t *testing.T) {
	c, out := newTestConsole(t)

	assert.True(t, c.run("click 0"))
	assert.Contains(t, out.String(), "[MOVE_COMMITTED] card 0")
	assert.Contains(t, out.String(), "playfield cleared")

	out.Reset()
	assert.True(t, c.run("undo"))
	assert.Contains(t, out.String(), "[MOVE_UNDONE] card 0")

	out.Reset()
	c.run("undo")
	assert.Contains(t, out.String(), "nothing to undo")
}

func TestConsoleRejectsBadInput(t *testing.T) {
	c, out := newTestConsole(t)

	c.run("click x")
	assert.Contains(t, out.String(), `bad card id "x"`)

	out.Reset()
	c.run("click 7")
	assert.Contains(t, out.String(), "invalid: unknown card")

	out.Reset()
	c.run("dance")
	assert.Contains(t, out.String(), "unknown command")

	out.Reset()
	c.run("tick 100")
	assert.Contains(t, out.String(), "motions complete immediately")

	assert.True(t, c.run("   "))
	assert.False(t, c.run("quit"))
}

func TestConsoleHintAndLoad(t *testing.T) {
	c, out := newTestConsole(t)

	c.run("hint")
	assert.Contains(t, out.String(), "matchable: [0]")

	path := filepath.Join(t.TempDir(), "level.json")
	require.NoError(t, os.WriteFile(path, []byte(`{"Playfield":[],"Stack":[{"CardFace":13,"CardSuit":3,"Position":{"x":0,"y":0}}],"BaseStack":[]}`), 0o644))

	out.Reset()
	c.run("load " + path)
	assert.Contains(t, out.String(), "[LEVEL_STARTED] 1 cards")
	assert.Contains(t, out.String(), "0:K♠*")
}
