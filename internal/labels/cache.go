package labels

import (
	"log/slog"
	"sync"

	"github.com/nicksnyder/go-i18n/v2/i18n"
	"github.com/tartampluch/go-datepicker/internal/config"
	"golang.org/x/text/language"
)

// Cache hands out one Catalog per language and loads the bundle lazily.
type Cache struct {
	mu       sync.Mutex
	bundle   *i18n.Bundle
	langs    []string
	tags     []language.Tag
	matcher  language.Matcher
	catalogs map[language.Tag]*Catalog
}

var (
	sharedOnce  sync.Once
	sharedCache *Cache
)

// Shared returns the process-wide cache.
func Shared() *Cache {
	sharedOnce.Do(func() {
		sharedCache = NewCache()
	})
	return sharedCache
}

// NewCache returns an empty cache.
func NewCache() *Cache {
	return &Cache{catalogs: make(map[language.Tag]*Catalog)}
}

// load must be called with mu held.
func (c *Cache) load() {
	if c.bundle != nil {
		return
	}
	bundle, langs, err := LoadBundle()
	if err != nil {
		slog.Error(config.ErrLocalesAccess,
			config.LogKeyComponent, config.CompLabels,
			config.LogKeyError, err,
		)
		bundle = i18n.NewBundle(language.English)
	}
	c.bundle = bundle
	c.langs = langs
	c.tags = c.tags[:0]
	for _, l := range langs {
		c.tags = append(c.tags, language.Make(l))
	}
	if len(c.tags) == 0 {
		c.tags = []language.Tag{language.Make(config.DefaultLanguage)}
	}
	c.matcher = language.NewMatcher(c.tags)
}

// Languages returns the language codes with a locale file.
func (c *Cache) Languages() []string {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.load()
	return append([]string(nil), c.langs...)
}

// Get returns the catalog best matching lang. Unknown or malformed codes get
// the default language.
func (c *Cache) Get(lang string) *Catalog {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.load()

	requested, err := language.Parse(lang)
	if err != nil {
		requested = language.Make(config.DefaultLanguage)
	}
	_, idx, confidence := c.matcher.Match(requested)
	tag := c.tags[idx]
	if confidence == language.No {
		tag = language.Make(config.DefaultLanguage)
	}

	if cat, ok := c.catalogs[tag]; ok {
		return cat
	}
	cat := NewCatalog(c.bundle, tag)
	c.catalogs[tag] = cat
	return cat
}

// Invalidate drops every catalog, e.g. after a locale change. Catalogs already
// handed out keep working but are no longer shared.
func (c *Cache) Invalidate() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.catalogs = make(map[language.Tag]*Catalog)
	slog.Debug(config.MsgLabelsReset, config.LogKeyComponent, config.CompLabels)
}
