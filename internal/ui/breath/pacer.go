package breath

import (
	"context"
	"math"
	"sync"
	"time"
)

// Config contains breathing pacer timing values.
type Config struct {
	CycleDuration time.Duration
	FrameInterval time.Duration
	MinScale      float64
	MaxScale      float64
}

// DefaultConfig returns a slow box-free breathing rhythm: four seconds in,
// four seconds out.
func DefaultConfig() Config {
	return Config{
		CycleDuration: 8 * time.Second,
		FrameInterval: 50 * time.Millisecond,
		MinScale:      0.55,
		MaxScale:      1.0,
	}
}

// Pacer emits a smooth inhale/exhale scale value while a session runs.
// At most one emitting loop is live at a time.
type Pacer struct {
	mu     sync.Mutex
	config Config
	update func(scale float64)
	cancel context.CancelFunc
}

// New creates a pacer that reports scale values through the update callback.
// The callback runs on the pacer goroutine; callers marshal to the UI thread
// themselves.
func New(config Config, update func(scale float64)) *Pacer {
	if config.CycleDuration <= 0 {
		config.CycleDuration = DefaultConfig().CycleDuration
	}
	if config.FrameInterval <= 0 {
		config.FrameInterval = DefaultConfig().FrameInterval
	}
	return &Pacer{config: config, update: update}
}

// Start begins emitting, replacing any previous loop.
func (pacer *Pacer) Start() {
	pacer.mu.Lock()
	if pacer.cancel != nil {
		pacer.cancel()
	}
	ctx, cancel := context.WithCancel(context.Background())
	pacer.cancel = cancel
	pacer.mu.Unlock()

	go pacer.run(ctx)
}

// Stop cancels the emitting loop if one is live.
func (pacer *Pacer) Stop() {
	pacer.mu.Lock()
	if pacer.cancel != nil {
		pacer.cancel()
		pacer.cancel = nil
	}
	pacer.mu.Unlock()
}

func (pacer *Pacer) run(ctx context.Context) {
	ticker := time.NewTicker(pacer.config.FrameInterval)
	defer ticker.Stop()

	start := time.Now()
	for {
		select {
		case <-ctx.Done():
			return
		case now := <-ticker.C:
			if pacer.update != nil {
				pacer.update(scaleAt(pacer.config, now.Sub(start)))
			}
		}
	}
}

// scaleAt returns the disc scale for a point in the breathing cycle: a cosine
// ease from MinScale up to MaxScale over the first half, back down over the
// second.
func scaleAt(config Config, elapsed time.Duration) float64 {
	cycle := config.CycleDuration
	phase := float64(elapsed%cycle) / float64(cycle)
	eased := 0.5 - 0.5*math.Cos(2*math.Pi*phase)
	return config.MinScale + (config.MaxScale-config.MinScale)*eased
}
