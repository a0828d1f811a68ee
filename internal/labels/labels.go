// Package labels turns picker values into localized option strings.
package labels

import (
	"embed"
	"encoding/json"
	"fmt"
	"log/slog"
	"strings"
	"sync"

	"github.com/nicksnyder/go-i18n/v2/i18n"
	"github.com/tartampluch/go-datepicker/internal/config"
	"golang.org/x/text/language"
)

//go:embed locales/*.json
var localeFS embed.FS

// LoadBundle builds the translation bundle from the embedded locale files and
// returns the language codes it found.
func LoadBundle() (*i18n.Bundle, []string, error) {
	bundle := i18n.NewBundle(language.English)
	bundle.RegisterUnmarshalFunc("json", json.Unmarshal)

	entries, err := localeFS.ReadDir("locales")
	if err != nil {
		return nil, nil, fmt.Errorf("%s: %w", config.ErrLocalesAccess, err)
	}

	var langs []string
	for _, entry := range entries {
		name := entry.Name()
		if !strings.HasPrefix(name, "active.") || !strings.HasSuffix(name, ".json") {
			slog.Debug(config.MsgLocaleSkip,
				config.LogKeyComponent, config.CompLabels,
				config.LogKeyFile, name,
			)
			continue
		}

		langCode := strings.TrimSuffix(strings.TrimPrefix(name, "active."), ".json")
		if langCode == "" {
			slog.Warn(config.MsgLocaleBadName,
				config.LogKeyComponent, config.CompLabels,
				config.LogKeyFile, name,
			)
			continue
		}

		if _, err := bundle.LoadMessageFileFS(localeFS, "locales/"+name); err != nil {
			slog.Error(config.ErrLocaleLoad,
				config.LogKeyComponent, config.CompLabels,
				config.LogKeyFile, name,
				config.LogKeyError, err,
			)
			continue
		}
		langs = append(langs, langCode)
		slog.Debug(config.MsgLocaleLoaded,
			config.LogKeyComponent, config.CompLabels,
			config.LogKeyLang, langCode,
			config.LogKeyFile, name,
		)
	}
	return bundle, langs, nil
}

// Catalog renders labels for one language. Rendered strings are memoized,
// a catalog is dropped as a whole when the locale changes.
type Catalog struct {
	tag       language.Tag
	localizer *i18n.Localizer

	mu   sync.Mutex
	memo map[string]string
}

// NewCatalog returns a catalog for tag. A nil bundle yields the message keys.
func NewCatalog(bundle *i18n.Bundle, tag language.Tag) *Catalog {
	c := &Catalog{tag: tag, memo: make(map[string]string)}
	if bundle != nil {
		c.localizer = i18n.NewLocalizer(bundle, tag.String())
	}
	return c
}

// Tag returns the catalog language.
func (c *Catalog) Tag() language.Tag { return c.tag }

// Msg translates a key. Missing keys fall back to the key itself.
func (c *Catalog) Msg(key string, data map[string]any) string {
	memoKey := key
	if len(data) > 0 {
		memoKey = fmt.Sprint(key, data)
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	if s, ok := c.memo[memoKey]; ok {
		return s
	}

	msg := key
	if c.localizer != nil {
		out, err := c.localizer.Localize(&i18n.LocalizeConfig{MessageID: key, TemplateData: data})
		if err != nil {
			slog.Debug(config.MsgTransMissing,
				config.LogKeyComponent, config.CompLabels,
				config.LogKeyKey, key,
				config.LogKeyError, err,
			)
		} else {
			msg = out
		}
	}
	c.memo[memoKey] = msg
	return msg
}

func (c *Catalog) Year(year int) string {
	return c.Msg(config.TKeyYear, map[string]any{"Year": year})
}

func (c *Catalog) SolarMonth(month int) string {
	return c.Msg(fmt.Sprintf(config.TKeySolarMonthFmt, month), nil)
}

func (c *Catalog) SolarDay(day int) string {
	return c.Msg(config.TKeyDay, map[string]any{"Day": day})
}

func (c *Catalog) LunarYear(year int) string {
	return c.Msg(config.TKeyLunarYear, map[string]any{"Year": year})
}

// LunarMonth names a lunar month; a leap month wraps the name of its base month.
func (c *Catalog) LunarMonth(month int, leap bool) string {
	name := c.Msg(fmt.Sprintf(config.TKeyLunarMonthFmt, month), nil)
	if !leap {
		return name
	}
	return c.Msg(config.TKeyLunarLeapMonth, map[string]any{"Month": name})
}

func (c *Catalog) LunarDay(day int) string {
	return c.Msg(fmt.Sprintf(config.TKeyLunarDayFmt, day), nil)
}

func (c *Catalog) Hour(hour int) string     { return fmt.Sprintf(config.TimeFormatUnit, hour) }
func (c *Catalog) Minute(minute int) string { return fmt.Sprintf(config.TimeFormatUnit, minute) }
func (c *Catalog) Second(second int) string { return fmt.Sprintf(config.TimeFormatUnit, second) }

func (c *Catalog) AmPm(pm bool) string {
	if pm {
		return c.Msg(config.TKeyPM, nil)
	}
	return c.Msg(config.TKeyAM, nil)
}
