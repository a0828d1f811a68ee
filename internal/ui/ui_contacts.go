package ui

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"fyne.io/fyne/v2"
	"github.com/tartampluch/go-datepicker/internal/config"
	"github.com/tartampluch/go-datepicker/internal/engine"
)

// importContacts loads the vCard source off the UI thread and hands the
// result back to it.
func (app *PickerApp) importContacts() {
	contacts, err := app.Importer.Import(app.Ctx, app.Opts.VCard)
	if err != nil {
		slog.Error(config.ErrImport,
			config.LogKeyComponent, config.CompUI,
			config.LogKeyError, err)
		return
	}
	fyne.Do(func() { app.applyContacts(contacts) })
}

// applyContacts fills the contact selector, sorted by name.
func (app *PickerApp) applyContacts(contacts []engine.Contact) {
	sorted := make([]engine.Contact, len(contacts))
	copy(sorted, contacts)
	sort.SliceStable(sorted, func(i, j int) bool {
		return strings.ToLower(sorted[i].Name) < strings.ToLower(sorted[j].Name)
	})

	app.contactsMut.Lock()
	app.contacts = sorted
	app.selected = nil
	app.contactsMut.Unlock()

	if app.contactSelect == nil {
		return
	}
	names := make([]string, len(sorted))
	for i, c := range sorted {
		names[i] = c.Name
	}
	app.contactSelect.Options = names
	app.contactSelect.ClearSelected()
	if len(names) > 0 {
		app.contactSelect.Enable()
	} else {
		app.contactSelect.Disable()
	}
	app.contactSelect.Refresh()
}

// Contacts returns a copy of the imported contacts.
func (app *PickerApp) Contacts() []engine.Contact {
	app.contactsMut.RLock()
	defer app.contactsMut.RUnlock()
	out := make([]engine.Contact, len(app.contacts))
	copy(out, app.contacts)
	return out
}

// SelectContact moves the date picker to the birthday of the named contact.
func (app *PickerApp) SelectContact(name string) {
	if app.Date == nil {
		return
	}
	app.contactsMut.Lock()
	var found *engine.Contact
	for i := range app.contacts {
		if app.contacts[i].Name == name {
			found = &app.contacts[i]
			break
		}
	}
	app.selected = found
	app.contactsMut.Unlock()

	if found == nil {
		return
	}
	app.Date.Stop()
	app.Date.SetSelectedDate(found.Birthday)
	app.View.Refresh()
	app.updateValue(app.currentEvent())
}

// anniversary describes what the export button writes: the selected
// contact's birthday, or the picked date when no contact is chosen.
func (app *PickerApp) anniversary() engine.Anniversary {
	app.contactsMut.RLock()
	c := app.selected
	app.contactsMut.RUnlock()

	lunar := app.Date.IsLunar()
	if c != nil && c.Birthday == app.Date.SelectedDate() {
		return engine.FromContact(*c, lunar)
	}

	picked := app.Date.SelectedDate()
	return engine.Anniversary{
		UID:       picked.String(),
		Origin:    picked,
		YearKnown: true,
		Lunar:     lunar,
	}
}

// export writes the anniversary feed and notifies the user. It runs off the
// UI thread; only the notification goes through the driver.
func (app *PickerApp) export() {
	var item engine.Anniversary
	var cat summaryCatalog
	fyne.DoAndWait(func() {
		item = app.anniversary()
		cat = app.Catalog
	})

	path, err := app.writeExport(item, cat)
	if err != nil {
		slog.Error(config.ErrExportWrite,
			config.LogKeyComponent, config.CompUI,
			config.LogKeyError, err)
		app.App.SendNotification(fyne.NewNotification(config.AppName, cat.Msg(config.TKeyNotifErr, nil)))
		return
	}
	app.App.SendNotification(fyne.NewNotification(config.AppName,
		cat.Msg(config.TKeyNotifExport, map[string]any{"Path": path})))
}

// writeExport renders item and stores it in the export directory.
func (app *PickerApp) writeExport(item engine.Anniversary, cat summaryCatalog) (string, error) {
	exporter := &engine.Exporter{
		Clock:         app.Clock,
		FormatSummary: buildSummaryFormatter(cat),
	}
	data, err := exporter.Export(app.Ctx, item)
	if err != nil {
		return "", err
	}

	dir, err := app.exportDir()
	if err != nil {
		return "", err
	}
	path := filepath.Join(dir, config.ExportFileName)
	if err := engine.WriteFile(path, data); err != nil {
		return "", err
	}
	if app.Feed != nil {
		app.Feed.Publish(data)
	}
	return path, nil
}

func (app *PickerApp) exportDir() (string, error) {
	if app.ExportDir != "" {
		return app.ExportDir, nil
	}
	cacheDir, err := os.UserCacheDir()
	if err != nil {
		return "", fmt.Errorf("%s: %w", config.ErrCacheDir, err)
	}
	dir := filepath.Join(cacheDir, config.AppID)
	if err := os.MkdirAll(dir, config.DirPermUserRWX); err != nil {
		return "", fmt.Errorf("%s: %w", config.ErrCreateDir, err)
	}
	return dir, nil
}

// summaryCatalog is the slice of labels.Catalog the summary needs.
type summaryCatalog interface {
	Msg(key string, data map[string]any) string
}

// buildSummaryFormatter returns a closure that localizes the event summary.
func buildSummaryFormatter(cat summaryCatalog) func(name string, count int, yearKnown bool) string {
	return func(name string, _ int, _ bool) string {
		if name == "" {
			return cat.Msg(config.TKeyEvtAnniv, nil)
		}
		return cat.Msg(config.TKeyEvtSummary, map[string]any{"Name": name})
	}
}
