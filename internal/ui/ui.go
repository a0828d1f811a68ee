package ui

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"strings"
	"sync"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/widget"
	"github.com/tartampluch/go-datepicker/internal/calendar"
	"github.com/tartampluch/go-datepicker/internal/config"
	"github.com/tartampluch/go-datepicker/internal/engine"
	"github.com/tartampluch/go-datepicker/internal/feed"
	"github.com/tartampluch/go-datepicker/internal/labels"
	"github.com/tartampluch/go-datepicker/internal/picker"
)

// Options carries the command line choices into the UI.
type Options struct {
	Mode        string // config.ModeDate, config.ModeTime or config.ModeText
	Lunar       bool
	Lang        string
	VCard       string // File or http(s) URL, empty to skip the import
	TextOptions string // JSON cascade file, empty for the built-in tree
}

// PickerApp encapsulates the UI state, preferences, and background logic.
type PickerApp struct {
	App         fyne.App
	Window      fyne.Window
	Preferences fyne.Preferences
	Ctx         context.Context
	Opts        Options

	Labels  *labels.Cache
	Catalog *labels.Catalog

	Importer *engine.Importer
	Clock    engine.Clock // Injected clock for testability
	// ExportDir receives the iCalendar export; the user cache dir when empty.
	ExportDir string
	// Feed, when set, also serves every export over HTTP.
	Feed *feed.Server

	Animator picker.Animator
	Date     *picker.DatePicker
	Time     *picker.TimePicker
	Text     *picker.TextPicker
	View     *PickerView

	valueLabel    *widget.Label
	lunarCheck    *widget.Check
	hour24Check   *widget.Check
	langLabel     *widget.Label
	langSelect    *widget.Select
	contactLabel  *widget.Label
	contactSelect *widget.Select
	exportButton  *widget.Button

	// Contacts State
	contactsMut sync.RWMutex
	contacts    []engine.Contact
	selected    *engine.Contact
}

// NewPickerApp constructs the application and wires dependencies.
func NewPickerApp(a fyne.App, ctx context.Context, opts Options, fetcher engine.VCardFetcher) *PickerApp {
	if opts.Mode == "" {
		opts.Mode = config.ModeDate
	}
	return &PickerApp{
		App:         a,
		Preferences: a.Preferences(),
		Ctx:         ctx,
		Opts:        opts,
		Labels:      labels.Shared(),
		Importer:    &engine.Importer{Fetcher: fetcher},
		Clock:       engine.RealClock{}, // Default to real clock in production
		Animator:    FyneAnimator{},
	}
}

// Run launches the background import and the main UI loop.
func (app *PickerApp) Run() error {
	content, err := app.Build()
	if err != nil {
		return err
	}

	app.Window = app.App.NewWindow(app.Catalog.Msg(config.TKeyWinTitle, nil))
	app.Window.SetContent(content)
	app.Window.Resize(fyne.NewSize(config.WindowWidth, config.WindowHeight))
	app.Window.SetOnClosed(app.saveState)

	if app.Date != nil && app.Opts.VCard != "" {
		go app.importContacts()
	}

	app.Window.ShowAndRun()
	return nil
}

// Build creates the picker selected by Opts.Mode and the controls around it.
func (app *PickerApp) Build() (fyne.CanvasObject, error) {
	lang := app.Opts.Lang
	if lang == "" {
		lang = app.Preferences.StringWithFallback(config.PrefLanguage, config.DefaultLanguage)
	}
	app.Catalog = app.Labels.Get(lang)

	driver, err := app.buildPicker()
	if err != nil {
		return nil, err
	}

	app.View = NewPickerView(driver)
	app.valueLabel = widget.NewLabel("")
	app.valueLabel.Alignment = fyne.TextAlignCenter
	controls := app.buildControls()
	app.refreshTexts()

	return container.NewBorder(nil, container.NewVBox(app.valueLabel, controls), nil, nil, app.View), nil
}

func (app *PickerApp) buildPicker() (Driver, error) {
	now := app.Clock.Now()

	switch app.Opts.Mode {
	case config.ModeDate:
		app.Date = picker.NewDatePicker(picker.DateOptions{
			Selected: calendar.FromTime(now),
			Lunar:    app.Opts.Lunar || app.Preferences.Bool(config.PrefLunar),
			Measurer: TextMeasurer{},
			Labels:   app.Catalog,
			Animator: app.Animator,
		})
		app.restoreState()
		app.Date.OnChange(app.onChange)
		return app.Date, nil

	case config.ModeTime:
		app.Time = picker.NewTimePicker(picker.TimeOptions{
			Selected: picker.TimeValue{Hour: now.Hour(), Minute: now.Minute()},
			Hour24:   app.Preferences.BoolWithFallback(config.PrefHour24, true),
			Measurer: TextMeasurer{},
			Labels:   app.Catalog,
			Animator: app.Animator,
		})
		app.Time.OnChange(app.onChange)
		return app.Time, nil

	case config.ModeText:
		tree, err := loadTextOptions(app.Opts.TextOptions)
		if err != nil {
			return nil, err
		}
		app.Text = picker.NewTextPicker(picker.TextOptionsSet{
			Cascade:  tree,
			Measurer: TextMeasurer{},
			Animator: app.Animator,
		})
		app.Text.OnChange(app.onChange)
		return app.Text, nil
	}
	return nil, fmt.Errorf("%s: %q", config.ErrModeUnsupport, app.Opts.Mode)
}

// buildControls returns the mode-specific controls shown under the picker.
func (app *PickerApp) buildControls() fyne.CanvasObject {
	app.langLabel = widget.NewLabel("")
	langs := app.Labels.Languages()
	app.langSelect = widget.NewSelect(langs, nil)
	app.langSelect.SetSelected(app.Catalog.Tag().String())
	app.langSelect.OnChanged = app.SetLanguage

	rows := []fyne.CanvasObject{container.NewHBox(app.langLabel, app.langSelect)}

	switch {
	case app.Date != nil:
		app.lunarCheck = widget.NewCheck("", nil)
		app.lunarCheck.SetChecked(app.Date.IsLunar())
		app.lunarCheck.OnChanged = app.SetLunar

		app.contactLabel = widget.NewLabel("")
		app.contactSelect = widget.NewSelect(nil, app.SelectContact)
		app.contactSelect.Disable()

		app.exportButton = widget.NewButton("", func() {
			go app.export()
		})

		rows = append(rows,
			app.lunarCheck,
			container.NewHBox(app.contactLabel, app.contactSelect),
			app.exportButton,
		)
	case app.Time != nil:
		app.hour24Check = widget.NewCheck("", nil)
		app.hour24Check.SetChecked(app.Time.Hour24())
		app.hour24Check.OnChanged = app.SetHour24
		rows = append(rows, app.hour24Check)
	}
	return container.NewVBox(rows...)
}

// loadTextOptions reads a cascade tree from path, or the built-in one.
func loadTextOptions(path string) ([]picker.CascadeOption, error) {
	data := []byte(config.DefaultTextOptions)
	if path != "" {
		var err error
		if data, err = os.ReadFile(path); err != nil {
			return nil, fmt.Errorf("%s: %w", config.ErrOptionsLoad, err)
		}
	}
	var tree []picker.CascadeOption
	if err := json.Unmarshal(data, &tree); err != nil {
		return nil, fmt.Errorf("%s: %w", config.ErrOptionsLoad, err)
	}
	return tree, nil
}

// -----------------------------------------------------------------------------
// Picker events
// -----------------------------------------------------------------------------

// onChange receives every picker event on the UI thread.
func (app *PickerApp) onChange(ev picker.ChangeEvent) {
	if ev.Status == picker.StatusSelected {
		if data, err := ev.JSON(); err == nil {
			slog.Debug(config.MsgPickerChanged,
				config.LogKeyComponent, config.CompUI,
				config.LogKeyValue, string(data))
		}
	}
	app.updateValue(ev)
}

func (app *PickerApp) currentEvent() picker.ChangeEvent {
	switch {
	case app.Date != nil:
		return app.Date.Event(picker.StatusSelected)
	case app.Time != nil:
		return app.Time.Event(picker.StatusSelected)
	case app.Text != nil:
		return app.Text.Event(picker.StatusSelected)
	}
	return picker.ChangeEvent{}
}

func (app *PickerApp) updateValue(ev picker.ChangeEvent) {
	if app.valueLabel == nil {
		return
	}
	var parts []string
	for _, t := range ev.Texts {
		if t != "" {
			parts = append(parts, t)
		}
	}
	app.valueLabel.SetText(app.Catalog.Msg(config.TKeyLblSelected, map[string]any{
		"Value": strings.Join(parts, " "),
	}))
}

// refreshTexts re-applies every localized string.
func (app *PickerApp) refreshTexts() {
	if app.Window != nil {
		app.Window.SetTitle(app.Catalog.Msg(config.TKeyWinTitle, nil))
	}
	app.langLabel.SetText(app.Catalog.Msg(config.TKeyLblLanguage, nil))
	if app.lunarCheck != nil {
		app.lunarCheck.Text = app.Catalog.Msg(config.TKeyLblLunar, nil)
		app.lunarCheck.Refresh()
	}
	if app.hour24Check != nil {
		app.hour24Check.Text = app.Catalog.Msg(config.TKeyLblHour24, nil)
		app.hour24Check.Refresh()
	}
	if app.contactLabel != nil {
		app.contactLabel.SetText(app.Catalog.Msg(config.TKeyLblContact, nil))
	}
	if app.exportButton != nil {
		app.exportButton.SetText(app.Catalog.Msg(config.TKeyBtnExport, nil))
	}
	app.updateValue(app.currentEvent())
}

// -----------------------------------------------------------------------------
// Settings
// -----------------------------------------------------------------------------

// SetLanguage switches the UI and the option labels to lang.
func (app *PickerApp) SetLanguage(lang string) {
	cat := app.Labels.Get(lang)
	if cat == app.Catalog {
		return
	}
	app.Catalog = cat
	app.Preferences.SetString(config.PrefLanguage, lang)
	slog.Info(config.MsgLangChanged,
		config.LogKeyComponent, config.CompUI,
		config.LogKeyLang, cat.Tag().String())

	switch {
	case app.Date != nil:
		app.Date.SetLabels(cat)
	case app.Time != nil:
		app.Time.SetLabels(cat)
	}
	app.View.Refresh()
	app.refreshTexts()
}

// SetLunar toggles the lunar display of the date picker.
func (app *PickerApp) SetLunar(on bool) {
	if app.Date == nil {
		return
	}
	app.Date.Stop()
	app.Date.SetLunar(on)
	app.Preferences.SetBool(config.PrefLunar, on)
	app.View.Refresh()
	app.updateValue(app.currentEvent())
}

// SetHour24 toggles the clock format of the time picker.
func (app *PickerApp) SetHour24(on bool) {
	if app.Time == nil {
		return
	}
	app.Time.SetHour24(on)
	app.Preferences.SetBool(config.PrefHour24, on)
	app.View.Refresh()
	app.updateValue(app.currentEvent())
}

// restoreState reloads the last date picker state saved in preferences.
func (app *PickerApp) restoreState() {
	data := app.Preferences.String(config.PrefPickerState)
	if data == "" {
		return
	}
	if err := app.Date.RestoreState([]byte(data)); err != nil {
		slog.Warn(config.ErrRestoreState,
			config.LogKeyComponent, config.CompUI,
			config.LogKeyError, err)
		return
	}
	// A command line choice wins over the saved display mode.
	if app.Opts.Lunar {
		app.Date.SetLunar(true)
	}
}

// saveState persists the date picker so the next run starts where this one ended.
func (app *PickerApp) saveState() {
	if app.Date == nil {
		return
	}
	data, err := app.Date.SaveState()
	if err != nil {
		slog.Warn(config.ErrSaveState,
			config.LogKeyComponent, config.CompUI,
			config.LogKeyError, err)
		return
	}
	app.Preferences.SetString(config.PrefPickerState, string(data))
}
