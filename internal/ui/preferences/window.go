package preferences

import (
	"fmt"
	"strconv"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/layout"
	"fyne.io/fyne/v2/widget"

	"stillness/internal/core/model"
)

// Window handles the preferences UI.
type Window struct {
	window    fyne.Window
	settings  Settings
	onSave    func(Settings)
	minutes   *widget.Entry
	autoReset *widget.Check
	chime     *widget.Check
	breathing *widget.Check
}

// New creates a preferences window.
func New(app fyne.App, settings Settings, onSave func(Settings)) *Window {
	window := app.NewWindow("Stillness Settings")

	minutes := widget.NewEntry()
	minutes.SetText(fmt.Sprintf("%d", settings.SessionMinutes))

	autoReset := widget.NewCheck("Return to ready after a finished session", nil)
	autoReset.SetChecked(settings.AutoReset)

	chime := widget.NewCheck("Play chime on completion", nil)
	chime.SetChecked(settings.ChimeEnabled)

	breathing := widget.NewCheck("Show breathing guide", nil)
	breathing.SetChecked(settings.BreathingGuide)

	form := container.NewVBox(
		widget.NewLabelWithStyle("Session", fyne.TextAlignLeading, fyne.TextStyle{Bold: true}),
		container.NewHBox(widget.NewLabel("Default length"), minutes, widget.NewLabel("min")),
		autoReset,
		chime,
		breathing,
	)

	saveButton := widget.NewButton("Save", nil)
	cancelButton := widget.NewButton("Cancel", nil)
	buttons := container.NewHBox(saveButton, layout.NewSpacer(), cancelButton)

	content := container.NewBorder(nil, buttons, nil, nil, form)
	window.SetContent(content)
	window.Resize(fyne.NewSize(380, 280))
	window.SetCloseIntercept(func() {
		window.Hide()
	})

	prefs := &Window{
		window:    window,
		settings:  settings,
		onSave:    onSave,
		minutes:   minutes,
		autoReset: autoReset,
		chime:     chime,
		breathing: breathing,
	}

	saveButton.OnTapped = prefs.handleSave
	cancelButton.OnTapped = func() {
		prefs.UpdateSettings(prefs.settings)
		window.Hide()
	}

	return prefs
}

// Show displays the preferences window.
func (prefs *Window) Show() {
	prefs.window.Show()
	prefs.window.RequestFocus()
}

// UpdateSettings replaces window values.
func (prefs *Window) UpdateSettings(settings Settings) {
	prefs.settings = settings
	prefs.minutes.SetText(fmt.Sprintf("%d", settings.SessionMinutes))
	prefs.autoReset.SetChecked(settings.AutoReset)
	prefs.chime.SetChecked(settings.ChimeEnabled)
	prefs.breathing.SetChecked(settings.BreathingGuide)
}

// handleSave clamps entered values, never rejects them.
func (prefs *Window) handleSave() {
	updated := prefs.settings
	if minutes, err := strconv.Atoi(prefs.minutes.Text); err == nil {
		updated.SessionMinutes = model.ClampMinutes(minutes)
	}
	updated.AutoReset = prefs.autoReset.Checked
	updated.ChimeEnabled = prefs.chime.Checked
	updated.BreathingGuide = prefs.breathing.Checked

	prefs.settings = updated
	prefs.UpdateSettings(updated)
	prefs.window.Hide()

	if prefs.onSave != nil {
		prefs.onSave(updated)
	}
}
