package session

import (
	"image/color"
	"log"
	"strconv"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/layout"
	"fyne.io/fyne/v2/theme"
	"fyne.io/fyne/v2/widget"

	"stillness/internal/core/engine"
	"stillness/internal/ui/breath"
	"stillness/internal/ui/preferences"
	"stillness/internal/ui/ring"
	"stillness/internal/ui/sound"
)

var (
	timeColor   = color.NRGBA{R: 232, G: 190, B: 66, A: 255}
	statusColor = color.NRGBA{R: 210, G: 214, B: 220, A: 255}
)

// Window is the main session widget: countdown, ring, duration entry and
// transport controls. It renders engine state and forwards user actions; all
// timing decisions stay in the engine.
type Window struct {
	window   fyne.Window
	eng      *engine.Engine
	settings preferences.Settings

	timeText     *canvas.Text
	statusText   *canvas.Text
	progressRing *ring.Ring
	pacer        *breath.Pacer
	pacing       bool

	durationEntry *widget.Entry
	minusButton   *widget.Button
	plusButton    *widget.Button
	startButton   *widget.Button
	stopButton    *widget.Button
	resetButton   *widget.Button
}

// New creates the session window and begins consuming engine events.
func New(app fyne.App, eng *engine.Engine, settings preferences.Settings) *Window {
	window := app.NewWindow("Stillness")

	sessionWindow := &Window{
		window:   window,
		eng:      eng,
		settings: settings,
	}

	sessionWindow.timeText = canvas.NewText(eng.Display().Formatted, timeColor)
	sessionWindow.timeText.TextStyle = fyne.TextStyle{Bold: true, Monospace: true}
	sessionWindow.timeText.TextSize = 44
	sessionWindow.timeText.Alignment = fyne.TextAlignCenter

	sessionWindow.statusText = canvas.NewText("Ready when you are", statusColor)
	sessionWindow.statusText.TextSize = 15
	sessionWindow.statusText.Alignment = fyne.TextAlignCenter

	sessionWindow.progressRing = ring.New()
	sessionWindow.pacer = breath.New(breath.DefaultConfig(), func(scale float64) {
		fyne.Do(func() {
			sessionWindow.progressRing.SetPulse(scale)
		})
	})

	sessionWindow.durationEntry = widget.NewEntry()
	sessionWindow.durationEntry.SetText(strconv.Itoa(eng.TotalSeconds() / 60))
	sessionWindow.durationEntry.OnSubmitted = func(string) {
		sessionWindow.applyDurationEntry()
	}

	sessionWindow.minusButton = widget.NewButtonWithIcon("", theme.ContentRemoveIcon(), func() {
		sessionWindow.stepDuration(-1)
	})
	sessionWindow.plusButton = widget.NewButtonWithIcon("", theme.ContentAddIcon(), func() {
		sessionWindow.stepDuration(1)
	})

	sessionWindow.startButton = widget.NewButtonWithIcon("Begin", theme.MediaPlayIcon(), func() {
		sessionWindow.toggleStartPause()
	})
	sessionWindow.startButton.Importance = widget.HighImportance

	sessionWindow.stopButton = widget.NewButtonWithIcon("Stop", theme.MediaStopIcon(), func() {
		eng.Stop()
		sessionWindow.refresh()
	})

	sessionWindow.resetButton = widget.NewButtonWithIcon("Reset", theme.MediaReplayIcon(), func() {
		eng.Reset()
		sessionWindow.refresh()
	})

	center := container.NewMax(
		sessionWindow.progressRing,
		container.NewCenter(sessionWindow.timeText),
	)

	durationRow := container.NewHBox(
		layout.NewSpacer(),
		sessionWindow.minusButton,
		container.NewGridWrap(fyne.NewSize(64, 36), sessionWindow.durationEntry),
		sessionWindow.plusButton,
		widget.NewLabel("min"),
		layout.NewSpacer(),
	)

	controls := container.NewHBox(
		layout.NewSpacer(),
		sessionWindow.startButton,
		sessionWindow.stopButton,
		sessionWindow.resetButton,
		layout.NewSpacer(),
	)

	content := container.NewVBox(
		container.NewCenter(sessionWindow.statusText),
		center,
		durationRow,
		controls,
	)

	window.SetContent(container.NewPadded(content))
	window.Resize(fyne.NewSize(380, 440))

	events := eng.Subscribe(8)
	go sessionWindow.consume(events)

	sessionWindow.refresh()
	return sessionWindow
}

// Show displays the session window.
func (sessionWindow *Window) Show() {
	sessionWindow.window.Show()
}

// Window exposes the underlying fyne window for host wiring.
func (sessionWindow *Window) Window() fyne.Window {
	return sessionWindow.window
}

// UpdateSettings applies edited preferences. The default duration only takes
// effect while the engine is ready.
func (sessionWindow *Window) UpdateSettings(settings preferences.Settings) {
	sessionWindow.settings = settings
	sessionWindow.eng.SetDuration(settings.SessionMinutes)
	sessionWindow.syncDurationEntry()
	sessionWindow.refresh()
}

func (sessionWindow *Window) consume(events <-chan engine.Event) {
	for event := range events {
		received := event
		fyne.Do(func() {
			sessionWindow.apply(received)
		})
	}
}

func (sessionWindow *Window) apply(event engine.Event) {
	sessionWindow.refresh()
	if event.Type == engine.EventCompleted && sessionWindow.settings.ChimeEnabled {
		if err := sound.Chime(); err != nil {
			log.Printf("chime: %v", err)
		}
	}
}

func (sessionWindow *Window) toggleStartPause() {
	if sessionWindow.eng.CanPause() {
		sessionWindow.eng.Pause()
	} else {
		sessionWindow.eng.Start()
	}
	sessionWindow.refresh()
}

func (sessionWindow *Window) stepDuration(delta int) {
	minutes, err := strconv.Atoi(sessionWindow.durationEntry.Text)
	if err != nil {
		minutes = sessionWindow.eng.TotalSeconds() / 60
	}
	sessionWindow.eng.SetDuration(minutes + delta)
	sessionWindow.syncDurationEntry()
	sessionWindow.refresh()
}

func (sessionWindow *Window) applyDurationEntry() {
	minutes, err := strconv.Atoi(sessionWindow.durationEntry.Text)
	if err != nil {
		sessionWindow.syncDurationEntry()
		return
	}
	sessionWindow.eng.SetDuration(minutes)
	sessionWindow.syncDurationEntry()
	sessionWindow.refresh()
}

// syncDurationEntry rewrites the entry from the engine, so clamped values
// show what actually applied.
func (sessionWindow *Window) syncDurationEntry() {
	sessionWindow.durationEntry.SetText(strconv.Itoa(sessionWindow.eng.TotalSeconds() / 60))
}

func (sessionWindow *Window) refresh() {
	display := sessionWindow.eng.Display()
	state := sessionWindow.eng.State()

	sessionWindow.timeText.Text = display.Formatted
	canvas.Refresh(sessionWindow.timeText)
	sessionWindow.progressRing.SetProgress(display.Progress / 100)

	switch state {
	case engine.StateRunning:
		sessionWindow.statusText.Text = "In session"
	case engine.StatePaused:
		sessionWindow.statusText.Text = "Paused"
	case engine.StateCompleted:
		sessionWindow.statusText.Text = "Session complete"
	default:
		sessionWindow.statusText.Text = "Ready when you are"
	}
	canvas.Refresh(sessionWindow.statusText)

	if sessionWindow.eng.CanPause() {
		sessionWindow.startButton.SetText("Pause")
		sessionWindow.startButton.SetIcon(theme.MediaPauseIcon())
	} else if state == engine.StatePaused {
		sessionWindow.startButton.SetText("Resume")
		sessionWindow.startButton.SetIcon(theme.MediaPlayIcon())
	} else {
		sessionWindow.startButton.SetText("Begin")
		sessionWindow.startButton.SetIcon(theme.MediaPlayIcon())
	}

	setEnabled(sessionWindow.startButton, sessionWindow.eng.CanStart() || sessionWindow.eng.CanPause())
	setEnabled(sessionWindow.stopButton, sessionWindow.eng.CanStop())
	setEnabled(sessionWindow.resetButton, sessionWindow.eng.CanReset())

	editable := state == engine.StateReady
	setEnabled(sessionWindow.minusButton, editable)
	setEnabled(sessionWindow.plusButton, editable)
	if editable {
		sessionWindow.durationEntry.Enable()
	} else {
		sessionWindow.durationEntry.Disable()
	}

	sessionWindow.syncPacer(state)
}

// syncPacer keeps exactly one breathing loop alive while running.
func (sessionWindow *Window) syncPacer(state engine.State) {
	shouldPace := sessionWindow.settings.BreathingGuide && state == engine.StateRunning
	if shouldPace && !sessionWindow.pacing {
		sessionWindow.pacer.Start()
		sessionWindow.pacing = true
	}
	if !shouldPace && sessionWindow.pacing {
		sessionWindow.pacer.Stop()
		sessionWindow.pacing = false
		sessionWindow.progressRing.SetPulse(0.6)
	}
}

func setEnabled(button *widget.Button, enabled bool) {
	if enabled {
		button.Enable()
	} else {
		button.Disable()
	}
}
