package breath

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestScaleStaysWithinBounds(t *testing.T) {
	config := DefaultConfig()

	for elapsed := time.Duration(0); elapsed <= 2*config.CycleDuration; elapsed += 100 * time.Millisecond {
		scale := scaleAt(config, elapsed)
		assert.GreaterOrEqual(t, scale, config.MinScale)
		assert.LessOrEqual(t, scale, config.MaxScale)
	}
}

func TestScaleCycleShape(t *testing.T) {
	config := DefaultConfig()

	assert.InDelta(t, config.MinScale, scaleAt(config, 0), 1e-9)
	assert.InDelta(t, config.MaxScale, scaleAt(config, config.CycleDuration/2), 1e-9)
	assert.InDelta(t, config.MinScale, scaleAt(config, config.CycleDuration), 1e-9)

	// Inhale rises, exhale falls.
	quarter := scaleAt(config, config.CycleDuration/4)
	threeQuarter := scaleAt(config, 3*config.CycleDuration/4)
	assert.Greater(t, quarter, config.MinScale)
	assert.Less(t, quarter, config.MaxScale)
	assert.InDelta(t, quarter, threeQuarter, 1e-9)
}

func TestStartReplacesPreviousLoop(t *testing.T) {
	updates := make(chan float64, 64)
	pacer := New(Config{
		CycleDuration: 200 * time.Millisecond,
		FrameInterval: 10 * time.Millisecond,
		MinScale:      0.5,
		MaxScale:      1.0,
	}, func(scale float64) {
		select {
		case updates <- scale:
		default:
		}
	})

	pacer.Start()
	pacer.Start()
	defer pacer.Stop()

	select {
	case <-updates:
	case <-time.After(time.Second):
		t.Fatal("pacer emitted no updates")
	}
}

func TestStopIsIdempotent(t *testing.T) {
	pacer := New(DefaultConfig(), nil)

	pacer.Start()
	pacer.Stop()
	pacer.Stop()
}
