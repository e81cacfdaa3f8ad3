package main

import (
	"log"
	"time"

	"stillness/internal/core/engine"
	"stillness/internal/platform"
	"stillness/internal/storage"
	"stillness/internal/ui/preferences"
	"stillness/internal/ui/session"
	"stillness/internal/ui/tray"
	"stillness/resources"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/app"
	"fyne.io/fyne/v2/driver/desktop"
	"fyne.io/fyne/v2/widget"
)

const appName = "Stillness"

func main() {
	guard, err := platform.AcquireSingleInstance(appName)
	if err != nil {
		log.Printf("single instance: %v", err)
		return
	}
	defer func() {
		_ = guard.Release()
	}()

	fyneApp := app.NewWithID("com.stillness.app")
	fyneApp.SetIcon(resources.MustIcon("icon.png"))

	settings, err := storage.LoadSettings(appName)
	if err != nil {
		log.Printf("load settings: %v", err)
	}

	timer := engine.New(settings.SessionConfig(), engine.Options{
		TickInterval: 200 * time.Millisecond,
	})
	defer timer.Close()

	sessionWindow := session.New(fyneApp, timer, settings)
	sessionWindow.Window().SetMaster()

	prefsWindow := preferences.New(fyneApp, settings, func(updated preferences.Settings) {
		settings = updated
		if err := storage.SaveSettings(appName, updated); err != nil {
			log.Printf("save settings: %v", err)
		}
		sessionWindow.UpdateSettings(updated)
	})

	var trayManager *tray.Manager
	if desktopApp, ok := fyneApp.(desktop.App); ok {
		trayManager = tray.New(desktopApp, tray.Callbacks{
			OnShow: sessionWindow.Show,
			OnStartPause: func() {
				togglePrimary(timer)
			},
			OnStop:        timer.Stop,
			OnPreferences: prefsWindow.Show,
			OnQuit: func() {
				timer.Close()
				fyneApp.Quit()
			},
		})
		desktopApp.SetSystemTrayIcon(resources.MustIcon("icon.png"))
	}

	events := timer.Subscribe(5)
	go func() {
		for event := range events {
			if trayManager == nil {
				continue
			}
			received := event
			fyne.Do(func() {
				updateTray(trayManager, timer, received)
			})
		}
	}()

	bindShortcuts(sessionWindow.Window(), timer)

	sessionWindow.Show()
	fyneApp.Run()
}

// togglePrimary maps the primary action onto the engine: pause when running,
// start or resume otherwise. The engine ignores the call when neither
// applies.
func togglePrimary(timer *engine.Engine) {
	if timer.CanPause() {
		timer.Pause()
	} else {
		timer.Start()
	}
}

// bindShortcuts maps Space, Escape and R to the transport controls. Keys are
// ignored while a text field is focused so typing a duration never drives
// the timer.
func bindShortcuts(window fyne.Window, timer *engine.Engine) {
	window.Canvas().SetOnTypedKey(func(event *fyne.KeyEvent) {
		if _, ok := window.Canvas().Focused().(*widget.Entry); ok {
			return
		}
		switch event.Name {
		case fyne.KeySpace:
			togglePrimary(timer)
		case fyne.KeyEscape:
			timer.Stop()
		case fyne.KeyR:
			timer.Reset()
		}
	})
}

func updateTray(trayManager *tray.Manager, timer *engine.Engine, event engine.Event) {
	switch event.State {
	case engine.StateRunning:
		withHours := timer.TotalSeconds() >= 3600
		trayManager.SetStatus("in session · " + engine.FormatClock(event.Remaining, withHours))
		trayManager.SetRunning(true)
	case engine.StatePaused:
		trayManager.SetStatus("paused")
		trayManager.SetRunning(false)
	case engine.StateCompleted:
		trayManager.SetStatus("session complete")
		trayManager.SetRunning(false)
	default:
		trayManager.SetStatus("ready")
		trayManager.SetRunning(false)
	}
}
