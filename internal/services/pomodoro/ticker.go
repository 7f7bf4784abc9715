package pomodoro

import (
	"context"
	"log/slog"
	"sync"
	"time"
)

// State is a point-in-time copy of a timer
type State struct {
	Mode      Mode
	Remaining int
	Active    bool
	Sessions  int
	Progress  float64
}

// Clock renders the remaining time as MM:SS
func (s State) Clock() string {
	return FormatClock(s.Remaining)
}

func snapshot(t *Timer) State {
	return State{
		Mode:      t.Mode(),
		Remaining: t.Remaining(),
		Active:    t.Active(),
		Sessions:  t.Sessions(),
		Progress:  t.Progress(),
	}
}

// TickerOption configures a Ticker
type TickerOption func(*Ticker)

// WithInterval overrides the one second tick period
func WithInterval(d time.Duration) TickerOption {
	return func(tk *Ticker) {
		if d > 0 {
			tk.interval = d
		}
	}
}

// WithOnTick registers a callback run after every tick
func WithOnTick(fn func(State)) TickerOption {
	return func(tk *Ticker) { tk.onTick = fn }
}

// WithOnComplete registers a callback run when a work phase finishes
func WithOnComplete(fn func(Event)) TickerOption {
	return func(tk *Ticker) { tk.onComplete = fn }
}

// WithLogger sets the logger
func WithLogger(l *slog.Logger) TickerOption {
	return func(tk *Ticker) {
		if l != nil {
			tk.logger = l
		}
	}
}

// Ticker drives a Timer from a background goroutine. At most one goroutine
// ticks at a time, and it exits on Stop, on context cancellation, or when
// the timer pauses itself at the end of a phase.
//
// Callbacks run on the ticking goroutine and must not call Stop.
type Ticker struct {
	mu      sync.Mutex
	timer   *Timer
	running bool
	runCtx  context.Context
	cancel  context.CancelFunc
	wg      sync.WaitGroup

	interval   time.Duration
	onTick     func(State)
	onComplete func(Event)
	logger     *slog.Logger
}

// NewTicker wraps timer. The Ticker takes ownership; callers should not
// touch the Timer directly afterwards.
func NewTicker(timer *Timer, opts ...TickerOption) *Ticker {
	tk := &Ticker{
		timer:    timer,
		interval: time.Second,
		logger:   slog.Default(),
	}
	for _, opt := range opts {
		opt(tk)
	}
	return tk
}

// Start activates the timer and begins ticking. Calling Start while
// already running does nothing.
func (tk *Ticker) Start(ctx context.Context) {
	tk.mu.Lock()
	defer tk.mu.Unlock()

	// a run whose context is already done is on its way out
	if tk.running && tk.runCtx.Err() == nil {
		return
	}

	tickCtx, cancel := context.WithCancel(ctx)
	tk.runCtx = tickCtx
	tk.cancel = cancel
	tk.running = true
	tk.timer.Start()

	tk.wg.Add(1)
	go tk.run(tickCtx)
	tk.logger.Debug("timer started", "mode", tk.timer.Mode(), "remaining", tk.timer.Remaining())
}

// Stop pauses the timer and waits for the ticking goroutine to exit.
// No callback fires after Stop returns.
func (tk *Ticker) Stop() {
	tk.mu.Lock()
	cancel := tk.cancel
	tk.cancel = nil
	tk.runCtx = nil
	tk.running = false
	tk.timer.Pause()
	tk.mu.Unlock()

	if cancel != nil {
		cancel()
	}
	tk.wg.Wait()
}

// Wait blocks until the ticking goroutine exits
func (tk *Ticker) Wait() {
	tk.wg.Wait()
}

// Toggle starts a paused timer or stops a running one
func (tk *Ticker) Toggle(ctx context.Context) {
	if tk.Running() {
		tk.Stop()
		return
	}
	tk.Start(ctx)
}

// Reset stops ticking and restores the current mode's full duration
func (tk *Ticker) Reset() {
	tk.Stop()
	tk.mu.Lock()
	tk.timer.Reset()
	tk.mu.Unlock()
}

// SwitchMode stops ticking and loads the given mode
func (tk *Ticker) SwitchMode(mode Mode) {
	tk.Stop()
	tk.mu.Lock()
	tk.timer.SwitchMode(mode)
	tk.mu.Unlock()
}

// Running reports whether a ticking goroutine is live
func (tk *Ticker) Running() bool {
	tk.mu.Lock()
	defer tk.mu.Unlock()
	return tk.running
}

// State returns a snapshot of the timer
func (tk *Ticker) State() State {
	tk.mu.Lock()
	defer tk.mu.Unlock()
	return snapshot(tk.timer)
}

func (tk *Ticker) run(ctx context.Context) {
	defer tk.wg.Done()

	ticker := time.NewTicker(tk.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			tk.halt(ctx)
			return
		case <-ticker.C:
			tk.mu.Lock()
			// Stop may have won the race with this tick
			if ctx.Err() != nil {
				tk.mu.Unlock()
				tk.halt(ctx)
				return
			}
			ev, completed := tk.timer.Tick()
			state := snapshot(tk.timer)
			if !state.Active {
				tk.clear()
			}
			tk.mu.Unlock()

			if tk.onTick != nil {
				tk.onTick(state)
			}
			if completed {
				tk.logger.Info("work session completed", "sessions", ev.Sessions)
				if tk.onComplete != nil {
					tk.onComplete(ev)
				}
			}
			if !state.Active {
				return
			}
		}
	}
}

// halt pauses the timer after ctx ends, unless a newer run owns the ticker
func (tk *Ticker) halt(ctx context.Context) {
	tk.mu.Lock()
	defer tk.mu.Unlock()

	if !tk.running || tk.runCtx != ctx {
		return
	}
	tk.timer.Pause()
	tk.clear()
	tk.logger.Debug("timer halted", "reason", context.Cause(ctx), "remaining", tk.timer.Remaining())
}

// clear drops the current run. Callers hold tk.mu.
func (tk *Ticker) clear() {
	tk.running = false
	if tk.cancel != nil {
		tk.cancel()
		tk.cancel = nil
	}
	tk.runCtx = nil
}
