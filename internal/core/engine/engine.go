package engine

import (
	"sync"
	"time"

	"stillness/internal/core/model"
)

// Options contains runtime options for the Engine.
type Options struct {
	// TickInterval is the evaluation frequency while running. It only
	// affects display smoothness, never the accounted time.
	TickInterval time.Duration
	Clock        Clock
	OnComplete   func()
	OnTick       func(remainingSeconds int)
}

// Engine is the countdown state machine for a single meditation session.
// Commands invoked from a state they do not apply to are silent no-ops;
// callers consult the Can* guards instead of handling errors.
type Engine struct {
	mu          sync.Mutex
	config      model.SessionConfig
	options     Options
	clock       Clock
	state       State
	total       int
	remaining   int
	runStart    time.Time
	accumulated time.Duration
	stopCh      chan struct{}
	autoReset   Timer
	events      []chan Event
	closed      bool
}

// New creates an Engine in the ready state with the configured duration.
func New(config model.SessionConfig, options Options) *Engine {
	if options.TickInterval <= 0 {
		options.TickInterval = 200 * time.Millisecond
	}
	clock := options.Clock
	if clock == nil {
		clock = SystemClock
	}
	config.InitialMinutes = model.ClampMinutes(config.InitialMinutes)
	if config.AutoResetDelay <= 0 {
		config.AutoResetDelay = model.DefaultSessionConfig().AutoResetDelay
	}

	total := config.InitialMinutes * 60
	return &Engine{
		config:    config,
		options:   options,
		clock:     clock,
		state:     StateReady,
		total:     total,
		remaining: total,
	}
}

// Subscribe registers a new observer channel.
func (eng *Engine) Subscribe(buffer int) <-chan Event {
	if buffer <= 0 {
		buffer = 1
	}
	ch := make(chan Event, buffer)
	eng.mu.Lock()
	eng.events = append(eng.events, ch)
	eng.mu.Unlock()
	return ch
}

// Start begins a session from ready, or resumes a paused one. The paused
// interval never counts toward elapsed time: resuming re-anchors the run
// timestamp and keeps only the time banked before the pause.
func (eng *Engine) Start() {
	eng.mu.Lock()
	switch eng.state {
	case StateReady:
		if eng.remaining == 0 {
			eng.mu.Unlock()
			return
		}
		eng.accumulated = 0
	case StatePaused:
	default:
		eng.mu.Unlock()
		return
	}
	eng.runStart = eng.clock.Now()
	eng.state = StateRunning
	eng.beginEvaluationLocked()
	eng.emitLocked(Event{
		Type:      EventStateChange,
		State:     StateRunning,
		Remaining: eng.remaining,
		Progress:  progressPercent(eng.remaining, eng.total),
		At:        eng.runStart,
	})
	eng.mu.Unlock()
}

// Pause freezes a running session, banking the elapsed time so far.
func (eng *Engine) Pause() {
	eng.mu.Lock()
	if eng.state != StateRunning {
		eng.mu.Unlock()
		return
	}
	now := eng.clock.Now()
	eng.cancelEvaluationLocked()
	eng.accumulated += now.Sub(eng.runStart)
	eng.remaining = clampRemaining(eng.total, eng.accumulated)
	eng.state = StatePaused
	eng.emitLocked(Event{
		Type:      EventStateChange,
		State:     StatePaused,
		Remaining: eng.remaining,
		Progress:  progressPercent(eng.remaining, eng.total),
		At:        now,
	})
	eng.mu.Unlock()
}

// Stop abandons a running or paused session and returns to ready.
func (eng *Engine) Stop() {
	eng.mu.Lock()
	if eng.state != StateRunning && eng.state != StatePaused {
		eng.mu.Unlock()
		return
	}
	eng.toReadyLocked()
	eng.mu.Unlock()
}

// Reset returns to ready from any non-ready state, cancelling a pending
// auto-reset so a user action never races the grace timer.
func (eng *Engine) Reset() {
	eng.mu.Lock()
	if eng.state == StateReady {
		eng.mu.Unlock()
		return
	}
	eng.toReadyLocked()
	eng.mu.Unlock()
}

// SetDuration changes the planned session length, in minutes. Only applies
// while ready; the value is clamped, never rejected.
func (eng *Engine) SetDuration(minutes int) {
	eng.mu.Lock()
	if eng.state != StateReady {
		eng.mu.Unlock()
		return
	}
	eng.total = model.ClampMinutes(minutes) * 60
	eng.remaining = eng.total
	eng.emitLocked(Event{
		Type:      EventProgress,
		State:     StateReady,
		Remaining: eng.remaining,
		Progress:  0,
		At:        eng.clock.Now(),
	})
	eng.mu.Unlock()
}

// Close releases the evaluation source and any pending grace timer, and
// closes all observer channels. The engine must not be used afterwards.
func (eng *Engine) Close() {
	eng.mu.Lock()
	if eng.closed {
		eng.mu.Unlock()
		return
	}
	eng.closed = true
	eng.cancelEvaluationLocked()
	eng.cancelAutoResetLocked()
	events := eng.events
	eng.events = nil
	eng.mu.Unlock()

	for _, ch := range events {
		close(ch)
	}
}

// State returns the current engine phase.
func (eng *Engine) State() State {
	eng.mu.Lock()
	defer eng.mu.Unlock()
	return eng.state
}

// Display returns the render-ready view of the countdown.
func (eng *Engine) Display() Display {
	eng.mu.Lock()
	defer eng.mu.Unlock()
	return deriveDisplay(eng.remaining, eng.total)
}

// RemainingSeconds returns the current remaining time.
func (eng *Engine) RemainingSeconds() int {
	eng.mu.Lock()
	defer eng.mu.Unlock()
	return eng.remaining
}

// TotalSeconds returns the planned session length.
func (eng *Engine) TotalSeconds() int {
	eng.mu.Lock()
	defer eng.mu.Unlock()
	return eng.total
}

// CanStart reports whether Start would do anything.
func (eng *Engine) CanStart() bool {
	eng.mu.Lock()
	defer eng.mu.Unlock()
	return (eng.state == StateReady && eng.remaining > 0) || eng.state == StatePaused
}

// CanPause reports whether Pause would do anything.
func (eng *Engine) CanPause() bool {
	eng.mu.Lock()
	defer eng.mu.Unlock()
	return eng.state == StateRunning
}

// CanStop reports whether Stop would do anything.
func (eng *Engine) CanStop() bool {
	eng.mu.Lock()
	defer eng.mu.Unlock()
	return eng.state == StateRunning || eng.state == StatePaused
}

// CanReset reports whether Reset would do anything.
func (eng *Engine) CanReset() bool {
	eng.mu.Lock()
	defer eng.mu.Unlock()
	return eng.state != StateReady
}

// beginEvaluationLocked launches the periodic evaluation loop. At most one
// loop is ever live: any previous source is cancelled first.
func (eng *Engine) beginEvaluationLocked() {
	eng.cancelEvaluationLocked()
	stop := make(chan struct{})
	eng.stopCh = stop
	go eng.run(stop)
}

// cancelEvaluationLocked releases the evaluation source if one is live.
// Every transition away from running calls this before any other mutation.
func (eng *Engine) cancelEvaluationLocked() {
	if eng.stopCh != nil {
		close(eng.stopCh)
		eng.stopCh = nil
	}
}

func (eng *Engine) cancelAutoResetLocked() {
	if eng.autoReset != nil {
		eng.autoReset.Stop()
		eng.autoReset = nil
	}
}

func (eng *Engine) toReadyLocked() {
	eng.cancelEvaluationLocked()
	eng.cancelAutoResetLocked()
	eng.remaining = eng.total
	eng.accumulated = 0
	eng.runStart = time.Time{}
	eng.state = StateReady
	eng.emitLocked(Event{
		Type:      EventStateChange,
		State:     StateReady,
		Remaining: eng.remaining,
		Progress:  0,
		At:        eng.clock.Now(),
	})
}

func (eng *Engine) run(stop chan struct{}) {
	ticker := time.NewTicker(eng.options.TickInterval)
	defer ticker.Stop()

	for {
		select {
		case <-stop:
			return
		case <-ticker.C:
			eng.evaluate()
		}
	}
}

// evaluate re-derives remaining time from the wall clock. The anchor delta,
// not a tick count, is authoritative: a delayed or coalesced tick still lands
// on the correct value.
func (eng *Engine) evaluate() {
	eng.mu.Lock()
	if eng.state != StateRunning || eng.closed {
		// A cancelled loop, or a closed engine, may have one tick in
		// flight; it must not advance anything.
		eng.mu.Unlock()
		return
	}

	now := eng.clock.Now()
	elapsed := now.Sub(eng.runStart) + eng.accumulated
	eng.remaining = clampRemaining(eng.total, elapsed)
	onTick := eng.options.OnTick
	remaining := eng.remaining

	if remaining > 0 {
		eng.emitLocked(Event{
			Type:      EventProgress,
			State:     StateRunning,
			Remaining: remaining,
			Progress:  progressPercent(remaining, eng.total),
			At:        now,
		})
		eng.mu.Unlock()
		if onTick != nil {
			onTick(remaining)
		}
		return
	}

	eng.cancelEvaluationLocked()
	eng.state = StateCompleted
	onComplete := eng.options.OnComplete
	if eng.config.AutoReset {
		eng.autoReset = eng.clock.AfterFunc(eng.config.AutoResetDelay, eng.handleAutoReset)
	}
	eng.emitLocked(Event{
		Type:      EventCompleted,
		State:     StateCompleted,
		Remaining: 0,
		Progress:  100,
		At:        now,
	})
	eng.mu.Unlock()

	if onTick != nil {
		onTick(0)
	}
	if onComplete != nil {
		onComplete()
	}
}

// handleAutoReset fires after the completion grace delay. A manual Reset in
// the window cancels the timer, so the engine never transitions twice.
func (eng *Engine) handleAutoReset() {
	eng.mu.Lock()
	if eng.state != StateCompleted || eng.closed {
		eng.mu.Unlock()
		return
	}
	eng.autoReset = nil
	eng.toReadyLocked()
	eng.mu.Unlock()
}

func (eng *Engine) emitLocked(event Event) {
	for _, ch := range eng.events {
		select {
		case ch <- event:
		default:
		}
	}
}

func clampRemaining(total int, elapsed time.Duration) int {
	remaining := total - int(elapsed/time.Second)
	if remaining < 0 {
		return 0
	}
	if remaining > total {
		return total
	}
	return remaining
}
