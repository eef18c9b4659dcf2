package main

import (
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/cardmatch/solitaire-go/internal/game"
	"github.com/cardmatch/solitaire-go/internal/game/cards"
	"github.com/cardmatch/solitaire-go/internal/game/motion"
	"github.com/cardmatch/solitaire-go/internal/game/rules"
	"github.com/cardmatch/solitaire-go/internal/level"
)

const helpText = `commands:
  click <id>   click a card
  undo         undo the last move
  show         print the table
  hint         list playfield cards matching the base top
  tick <ms>    advance queued motions
  replay       list recorded frames
  load <path>  deal another level
  quit         exit`

// console drives an engine from text commands.
type console struct {
	engine *game.Engine
	out    io.Writer
	logger *zap.Logger
}

func newConsole(engine *game.Engine, out io.Writer, logger *zap.Logger) *console {
	return &console{engine: engine, out: out, logger: logger}
}

func (c *console) prompt() { fmt.Fprint(c.out, "> ") }

// run executes one command line and reports whether to keep reading.
func (c *console) run(line string) bool {
	fields := strings.Fields(line)
	if len(fields) == 0 {
		return true
	}

	switch cmd, args := fields[0], fields[1:]; cmd {
	case "quit", "exit":
		return false
	case "help":
		fmt.Fprintln(c.out, helpText)
	case "show":
		c.show()
	case "click":
		c.click(args)
	case "undo":
		rec := c.engine.HandleUndoRequested()
		if !rec.Valid() {
			fmt.Fprintln(c.out, "nothing to undo")
			return true
		}
		c.show()
	case "hint":
		ids := c.engine.MatchablePlayfieldCards()
		if len(ids) == 0 {
			fmt.Fprintln(c.out, "no playfield card matches the base top")
			return true
		}
		fmt.Fprintf(c.out, "matchable: %v\n", ids)
	case "tick":
		c.tick(args)
	case "replay":
		c.replay()
	case "load":
		if len(args) != 1 {
			fmt.Fprintln(c.out, "usage: load <path>")
			return true
		}
		if err := c.engine.StartLevel(level.Load(args[0], c.logger)); err != nil {
			fmt.Fprintf(c.out, "level rejected: %v\n", err)
		}
		c.show()
	default:
		fmt.Fprintf(c.out, "unknown command %q, try help\n", cmd)
	}
	return true
}

func (c *console) click(args []string) {
	if len(args) != 1 {
		fmt.Fprintln(c.out, "usage: click <id>")
		return
	}
	n, err := strconv.Atoi(args[0])
	if err != nil {
		fmt.Fprintf(c.out, "bad card id %q\n", args[0])
		return
	}

	res := c.engine.HandleCardClicked(cards.ID(n))
	if !res.Committed() {
		fmt.Fprintf(c.out, "%s: %s\n", res.Outcome, res.Reason)
		return
	}
	c.show()
	if c.engine.IsCleared() {
		fmt.Fprintln(c.out, "playfield cleared")
	}
}

func (c *console) tick(args []string) {
	queue, ok := c.engine.Scheduler().(*motion.Queue)
	if !ok {
		fmt.Fprintln(c.out, "motions complete immediately; set motion.mode to queued")
		return
	}
	ms := 0
	if len(args) == 1 {
		var err error
		if ms, err = strconv.Atoi(args[0]); err != nil {
			fmt.Fprintf(c.out, "bad duration %q\n", args[0])
			return
		}
	}
	done := queue.Advance(time.Duration(ms) * time.Millisecond)
	fmt.Fprintf(c.out, "%d motions completed, %d pending\n", done, queue.Pending())
}

func (c *console) replay() {
	r := c.engine.Replay()
	if r.Size() == 0 {
		fmt.Fprintln(c.out, "no frames recorded")
		return
	}
	for _, f := range r.Frames {
		fmt.Fprintf(c.out, "%4d  %-28s %s\n", f.Index, f.Label, f.Checksum[:12])
	}
}

func (c *console) show() {
	v := c.engine.View()
	fmt.Fprintf(c.out, "session %s  undo %d\n", v.SessionID, v.UndoDepth)
	c.printZone("playfield", v.Playfield)
	c.printZone("reserve", v.Reserve)
	c.printZone("base", v.Base)
}

func (c *console) printZone(name string, views []game.CardView) {
	var b strings.Builder
	for _, cv := range views {
		if !cv.Visible {
			continue
		}
		mark := ""
		if cv.Clickable {
			mark = "*"
		}
		fmt.Fprintf(&b, " %d:%s%s", cv.ID, cv.Label, mark)
	}
	fmt.Fprintf(c.out, "  %-10s%s\n", name, b.String())
}

func (c *console) printEvent(e rules.Event) {
	switch e.Type {
	case rules.EventMoveCommitted, rules.EventMoveUndone:
		fmt.Fprintf(c.out, "  [%s] card %d %s %s -> %s\n", e.Type, e.CardID, e.Move, e.From, e.To)
	case rules.EventLevelStarted:
		fmt.Fprintf(c.out, "  [%s] %d cards\n", e.Type, e.Amount)
	case rules.EventMotionScheduled, rules.EventMotionCompleted:
		c.logger.Debug("motion event", zap.String("type", string(e.Type)), zap.Int("card_id", int(e.CardID)))
	default:
		fmt.Fprintf(c.out, "  [%s] card %d %t\n", e.Type, e.CardID, e.Flag)
	}
}
