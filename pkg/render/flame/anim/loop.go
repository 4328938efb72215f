package anim

import "time"

// LoopState is the scheduling state of a [Loop].
type LoopState int

const (
	Idle LoopState = iota
	Running
)

func (s LoopState) String() string {
	if s == Running {
		return "running"
	}
	return "idle"
}

// Loop is the frame scheduler owned by one renderer. It holds no timer of
// its own: the host calls the renderer's Frame while the loop is running,
// at whatever cadence it paints.
type Loop struct {
	state  LoopState
	last   time.Time
	frames int
}

// Start moves an idle loop to Running with now as the previous frame time.
// It returns true when the loop was idle, meaning the host must schedule a
// frame; false when frames are already being scheduled.
func (l *Loop) Start(now time.Time) bool {
	if l.state == Running {
		return false
	}
	l.state = Running
	l.last = now
	l.frames = 0
	return true
}

// Advance records a frame at now and returns the seconds elapsed since the
// previous one. ok is false when the loop is idle. A clock that goes
// backwards yields dt 0.
func (l *Loop) Advance(now time.Time) (dt float64, ok bool) {
	if l.state != Running {
		return 0, false
	}
	dt = max(0, now.Sub(l.last).Seconds())
	l.last = now
	l.frames++
	return dt, true
}

// Stop moves the loop to Idle. Stopping an idle loop is a no-op.
func (l *Loop) Stop() { l.state = Idle }

// State returns the current state.
func (l *Loop) State() LoopState { return l.state }

// Running reports whether frames are being scheduled.
func (l *Loop) Running() bool { return l.state == Running }

// Frames returns the number of frames advanced since the last Start.
func (l *Loop) Frames() int { return l.frames }
