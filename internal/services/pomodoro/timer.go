// Package pomodoro implements the work/break countdown and its tick sources
package pomodoro

import (
	"fmt"
	"time"
)

// Mode is the current phase of the countdown
type Mode string

const (
	ModeWork  Mode = "work"
	ModeBreak Mode = "break"
)

// Default phase lengths
const (
	DefaultWork  = 25 * time.Minute
	DefaultBreak = 5 * time.Minute
)

// Valid reports whether m is a known mode
func (m Mode) Valid() bool {
	return m == ModeWork || m == ModeBreak
}

// Label returns a human-readable label
func (m Mode) Label() string {
	switch m {
	case ModeWork:
		return "Focus"
	case ModeBreak:
		return "Break"
	default:
		return "Unknown"
	}
}

// Event is raised by Tick when a phase ends
type Event struct {
	// Mode is the phase that just finished
	Mode Mode
	// Sessions is the completed work session count after the event
	Sessions int
}

// Timer is a pure work/break state machine counted in whole seconds.
// It owns no goroutines; a tick source calls Tick once per second.
type Timer struct {
	work     int
	brk      int
	mode     Mode
	remain   int
	active   bool
	sessions int
}

// NewTimer creates a paused timer in work mode. Durations are truncated
// to whole seconds; anything under one second falls back to the default.
func NewTimer(work, brk time.Duration) *Timer {
	t := &Timer{
		work: seconds(work, DefaultWork),
		brk:  seconds(brk, DefaultBreak),
		mode: ModeWork,
	}
	t.remain = t.work
	return t
}

func seconds(d, fallback time.Duration) int {
	s := int(d / time.Second)
	if s < 1 {
		return int(fallback / time.Second)
	}
	return s
}

// Tick advances the countdown by one second. It returns an event only when
// a work phase finishes. Either roll-over leaves the timer paused.
func (t *Timer) Tick() (Event, bool) {
	if !t.active || t.remain <= 0 {
		return Event{}, false
	}

	t.remain--
	if t.remain > 0 {
		return Event{}, false
	}

	t.active = false
	if t.mode == ModeWork {
		t.sessions++
		t.mode = ModeBreak
		t.remain = t.brk
		return Event{Mode: ModeWork, Sessions: t.sessions}, true
	}

	t.mode = ModeWork
	t.remain = t.work
	return Event{}, false
}

// Toggle starts or pauses without touching the remaining time or mode
func (t *Timer) Toggle() {
	t.active = !t.active
}

// Start resumes the countdown
func (t *Timer) Start() { t.active = true }

// Pause stops the countdown
func (t *Timer) Pause() { t.active = false }

// Reset pauses and restores the full duration of the current mode
func (t *Timer) Reset() {
	t.active = false
	t.remain = t.Duration(t.mode)
}

// SwitchMode pauses and loads the full duration of mode.
// Unknown modes are ignored.
func (t *Timer) SwitchMode(mode Mode) {
	if !mode.Valid() {
		return
	}
	t.active = false
	t.mode = mode
	t.remain = t.Duration(mode)
}

// SetDurations changes the phase lengths. A paused timer reloads the full
// length of its mode; a running one keeps counting, clamped to the new length.
func (t *Timer) SetDurations(work, brk time.Duration) {
	t.work = seconds(work, DefaultWork)
	t.brk = seconds(brk, DefaultBreak)
	if !t.active {
		t.remain = t.Duration(t.mode)
		return
	}
	t.remain = min(t.remain, t.Duration(t.mode))
}

// Duration returns the configured length of a mode in seconds
func (t *Timer) Duration(mode Mode) int {
	if mode == ModeBreak {
		return t.brk
	}
	return t.work
}

// Progress returns elapsed over total for the current mode, in [0,1]
func (t *Timer) Progress() float64 {
	total := t.Duration(t.mode)
	if total <= 0 {
		return 0
	}
	p := float64(total-t.remain) / float64(total)
	switch {
	case p < 0:
		return 0
	case p > 1:
		return 1
	}
	return p
}

// Remaining returns the seconds left in the current phase
func (t *Timer) Remaining() int { return t.remain }

// Mode returns the current phase
func (t *Timer) Mode() Mode { return t.mode }

// Active reports whether the countdown is running
func (t *Timer) Active() bool { return t.active }

// Sessions returns the number of completed work phases
func (t *Timer) Sessions() int { return t.sessions }

// Format renders the remaining time as MM:SS
func (t *Timer) Format() string {
	return FormatClock(t.remain)
}

// FormatClock renders seconds as MM:SS; minutes may exceed two digits
func FormatClock(secs int) string {
	if secs < 0 {
		secs = 0
	}
	return fmt.Sprintf("%02d:%02d", secs/60, secs%60)
}
