package game

import (
	"bytes"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
)

// StateChecksum is a deterministic hash of the table layout.
type StateChecksum struct {
	Hash    string // SHA-256 of the canonical representation
	Cards   int
	Version int
}

// Checksum hashes every zone's cards and slots. The session id, undo depth
// and hints are left out so an undo that restores the table exactly
// yields the checksum taken before the move.
func (v *GameView) Checksum() StateChecksum {
	sum := sha256.Sum256([]byte(v.canonical()))
	return StateChecksum{
		Hash:    hex.EncodeToString(sum[:]),
		Cards:   len(v.Playfield) + len(v.Reserve) + len(v.Base),
		Version: 1,
	}
}

// canonical renders zones in their own order: playfield by z-order, stacks
// bottom to top.
func (v *GameView) canonical() string {
	var buf bytes.Buffer
	write := func(zone string, views []CardView) {
		buf.WriteString(zone)
		buf.WriteString(":\n")
		for _, c := range views {
			fmt.Fprintf(&buf, "  %d|%d|%d|%.3f|%.3f|%d|%t|%d|%t|%t\n",
				c.ID,
				c.Rank,
				c.Suit,
				c.Position.X,
				c.Position.Y,
				c.ZOrder,
				c.Visible,
				c.Opacity,
				c.FaceUp,
				c.Removed,
			)
		}
	}
	write("PLAYFIELD", v.Playfield)
	write("RESERVE", v.Reserve)
	write("BASE", v.Base)
	return buf.String()
}

// Checksum hashes the engine's current table.
func (e *Engine) Checksum() StateChecksum { return e.View().Checksum() }
