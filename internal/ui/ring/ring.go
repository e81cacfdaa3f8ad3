package ring

import (
	"image/color"
	"math"
	"sync"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/widget"
)

const segmentCount = 60

var (
	elapsedColor = color.NRGBA{R: 232, G: 190, B: 66, A: 255}
	idleColor    = color.NRGBA{R: 70, G: 74, B: 82, A: 255}
	discColor    = color.NRGBA{R: 46, G: 66, B: 82, A: 140}
)

// Ring is a circular progress indicator drawn as sixty tick segments, with a
// breathing disc in the middle. Progress fills clockwise from the top.
type Ring struct {
	widget.BaseWidget
	mu       sync.Mutex
	fraction float64
	pulse    float64
}

// New creates an empty ring.
func New() *Ring {
	ring := &Ring{pulse: 0.6}
	ring.ExtendBaseWidget(ring)
	return ring
}

// SetProgress updates the elapsed fraction, clamped to [0,1].
func (ring *Ring) SetProgress(fraction float64) {
	ring.mu.Lock()
	ring.fraction = clampUnit(fraction)
	ring.mu.Unlock()
	ring.Refresh()
}

// SetPulse updates the breathing disc scale, clamped to [0,1].
func (ring *Ring) SetPulse(scale float64) {
	ring.mu.Lock()
	ring.pulse = clampUnit(scale)
	ring.mu.Unlock()
	ring.Refresh()
}

// Progress returns the current elapsed fraction.
func (ring *Ring) Progress() float64 {
	ring.mu.Lock()
	defer ring.mu.Unlock()
	return ring.fraction
}

func (ring *Ring) snapshot() (fraction, pulse float64) {
	ring.mu.Lock()
	defer ring.mu.Unlock()
	return ring.fraction, ring.pulse
}

// CreateRenderer builds the canvas objects for the ring.
func (ring *Ring) CreateRenderer() fyne.WidgetRenderer {
	segments := make([]*canvas.Line, segmentCount)
	objects := make([]fyne.CanvasObject, 0, segmentCount+1)

	disc := canvas.NewCircle(discColor)
	objects = append(objects, disc)

	for i := range segments {
		line := canvas.NewLine(idleColor)
		line.StrokeWidth = 3
		segments[i] = line
		objects = append(objects, line)
	}

	return &ringRenderer{
		ring:     ring,
		segments: segments,
		disc:     disc,
		objects:  objects,
	}
}

type ringRenderer struct {
	ring     *Ring
	segments []*canvas.Line
	disc     *canvas.Circle
	objects  []fyne.CanvasObject
	size     fyne.Size
}

func (renderer *ringRenderer) Layout(size fyne.Size) {
	renderer.size = size
	_, pulse := renderer.ring.snapshot()

	centerX := size.Width / 2
	centerY := size.Height / 2
	outer := float64(fyne.Min(size.Width, size.Height))/2 - 4
	inner := outer - 12
	if inner < 0 {
		inner = 0
	}

	for i, line := range renderer.segments {
		angle := 2*math.Pi*float64(i)/segmentCount - math.Pi/2
		sin, cos := math.Sin(angle), math.Cos(angle)
		line.Position1 = fyne.NewPos(centerX+float32(inner*cos), centerY+float32(inner*sin))
		line.Position2 = fyne.NewPos(centerX+float32(outer*cos), centerY+float32(outer*sin))
	}

	discRadius := float32((inner - 14) * pulse)
	if discRadius < 0 {
		discRadius = 0
	}
	renderer.disc.Position1 = fyne.NewPos(centerX-discRadius, centerY-discRadius)
	renderer.disc.Position2 = fyne.NewPos(centerX+discRadius, centerY+discRadius)
}

func (renderer *ringRenderer) MinSize() fyne.Size {
	return fyne.NewSize(220, 220)
}

func (renderer *ringRenderer) Refresh() {
	fraction, _ := renderer.ring.snapshot()
	filled := filledSegments(fraction)

	for i, line := range renderer.segments {
		if i < filled {
			line.StrokeColor = elapsedColor
		} else {
			line.StrokeColor = idleColor
		}
	}
	renderer.Layout(renderer.size)
	for _, object := range renderer.objects {
		canvas.Refresh(object)
	}
}

func (renderer *ringRenderer) Objects() []fyne.CanvasObject {
	return renderer.objects
}

func (renderer *ringRenderer) Destroy() {}

// filledSegments maps an elapsed fraction to a number of lit segments.
func filledSegments(fraction float64) int {
	filled := int(math.Round(clampUnit(fraction) * segmentCount))
	if filled > segmentCount {
		filled = segmentCount
	}
	return filled
}

func clampUnit(value float64) float64 {
	if value < 0 {
		return 0
	}
	if value > 1 {
		return 1
	}
	return value
}
