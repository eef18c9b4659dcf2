package game

import "time"

// Frame is one recorded table state.
type Frame struct {
	Index    int
	Label    string
	View     *GameView
	Checksum string
	At       time.Time
}

// Replay holds the table after every command of one session, oldest first.
// With a limit set the oldest frames are dropped once it is exceeded.
type Replay struct {
	SessionID    string
	Frames       []Frame
	CurrentIndex int
	limit        int
	recorded     int
}

// NewReplay creates an empty replay. A limit of zero or less keeps every
// frame.
func NewReplay(sessionID string, limit int) *Replay {
	return &Replay{
		SessionID: sessionID,
		Frames:    make([]Frame, 0),
		limit:     limit,
	}
}

// RecordFrame appends the view under label.
func (r *Replay) RecordFrame(label string, view *GameView) {
	r.Frames = append(r.Frames, Frame{
		Index:    r.recorded,
		Label:    label,
		View:     view,
		Checksum: view.Checksum().Hash,
		At:       time.Now(),
	})
	r.recorded++

	if r.limit > 0 && len(r.Frames) > r.limit {
		drop := len(r.Frames) - r.limit
		r.Frames = append(r.Frames[:0], r.Frames[drop:]...)
		r.CurrentIndex -= drop
		if r.CurrentIndex < 0 {
			r.CurrentIndex = 0
		}
	}
}

// Start rewinds playback to the first frame.
func (r *Replay) Start() {
	r.CurrentIndex = 0
}

// Next returns the frame at the cursor and advances it.
func (r *Replay) Next() (Frame, bool) {
	if r.CurrentIndex < len(r.Frames) {
		f := r.Frames[r.CurrentIndex]
		r.CurrentIndex++
		return f, true
	}
	return Frame{}, false
}

// Previous moves the cursor back and returns that frame.
func (r *Replay) Previous() (Frame, bool) {
	if r.CurrentIndex > 0 {
		r.CurrentIndex--
		return r.Frames[r.CurrentIndex], true
	}
	return Frame{}, false
}

// Skip moves the cursor by count frames, clamped to the recorded range.
func (r *Replay) Skip(count int) (Frame, bool) {
	newIndex := r.CurrentIndex + count
	if newIndex >= len(r.Frames) {
		newIndex = len(r.Frames) - 1
	}
	if newIndex < 0 {
		newIndex = 0
	}

	r.CurrentIndex = newIndex
	if r.CurrentIndex < len(r.Frames) {
		return r.Frames[r.CurrentIndex], true
	}
	return Frame{}, false
}

// Size returns the number of frames held.
func (r *Replay) Size() int { return len(r.Frames) }

// FrameAt returns the frame at index.
func (r *Replay) FrameAt(index int) (Frame, bool) {
	if index >= 0 && index < len(r.Frames) {
		return r.Frames[index], true
	}
	return Frame{}, false
}

// Last returns the most recent frame.
func (r *Replay) Last() (Frame, bool) { return r.FrameAt(len(r.Frames) - 1) }
