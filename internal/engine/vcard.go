package engine

import (
	"context"
	"crypto/sha256"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/emersion/go-vcard"
	"github.com/tartampluch/go-datepicker/internal/calendar"
	"github.com/tartampluch/go-datepicker/internal/config"
)

// Importer reads birthdays from a local vCard file or a remote address book.
type Importer struct {
	Fetcher VCardFetcher // Used for http(s) locations only.
}

// Import opens location (a path or an http(s) URL) and returns every contact
// with a usable birthday. Malformed cards are skipped, not fatal.
func (im *Importer) Import(ctx context.Context, location string) ([]Contact, error) {
	start := time.Now()

	rc, err := im.open(ctx, location)
	if err != nil {
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}
		return nil, err
	}
	defer func() { _ = rc.Close() }()

	contacts, err := DecodeContacts(ctx, rc)
	if err != nil {
		return nil, err
	}
	if len(contacts) == 0 {
		return nil, errors.New(config.ErrNoBirthdays)
	}

	slog.Info(config.MsgImportDone,
		config.LogKeyComponent, config.CompEngine,
		config.LogKeyCount, len(contacts),
		config.LogKeyDuration, time.Since(start).Milliseconds(),
	)
	return contacts, nil
}

func (im *Importer) open(ctx context.Context, location string) (io.ReadCloser, error) {
	if isRemote(location) {
		fetcher := im.Fetcher
		if fetcher == nil {
			fetcher = NewHTTPFetcher()
		}
		return fetcher.Fetch(ctx, location)
	}
	f, err := os.Open(location)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", config.ErrVCardOpen, err)
	}
	return f, nil
}

func isRemote(location string) bool {
	lower := strings.ToLower(location)
	return strings.HasPrefix(lower, config.SchemeHTTP+"://") || strings.HasPrefix(lower, config.SchemeHTTPS+"://")
}

// DecodeContacts parses a vCard stream. Cards without a birthday are ignored.
func DecodeContacts(ctx context.Context, r io.Reader) ([]Contact, error) {
	decoder := vcard.NewDecoder(r)
	var contacts []Contact

	for {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		card, err := decoder.Decode()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			// Log error but continue to next card to maximize data recovery
			slog.Warn(config.MsgSkippedCard,
				config.LogKeyComponent, config.CompEngine,
				config.LogKeyError, err)
			continue
		}

		bday := card.Get(config.VCardBDAY)
		if bday == nil || bday.Value == "" {
			continue
		}

		birthday, yearKnown, err := parseDate(bday.Value)
		if err != nil {
			slog.Debug(config.MsgSkippedDate,
				config.LogKeyComponent, config.CompEngine,
				config.LogKeyValue, bday.Value)
			continue
		}

		// Name Strategy: FN (Formatted) > N (Structured) > Fallback
		name := config.FallbackName
		if fn := card.Get(config.VCardFN); fn != nil && fn.Value != "" {
			name = fn.Value
		} else if n := card.Get(config.VCardN); n != nil && n.Value != "" {
			name = n.Value
		}

		contacts = append(contacts, Contact{
			UID:       contactUID(name, birthday),
			Name:      name,
			Birthday:  birthday,
			YearKnown: yearKnown,
		})
	}
	return contacts, nil
}

// contactUID is deterministic so exports stay stable across imports.
func contactUID(name string, birthday calendar.Date) string {
	input := fmt.Sprintf(config.FormatHashInput, name, birthday.String(), config.UIDSalt)
	hash := sha256.Sum256([]byte(input))
	return fmt.Sprintf("%x", hash[:config.UIDHashLength])
}

// parseDate handles various vCard date formats.
func parseDate(value string) (calendar.Date, bool, error) {
	// Full dates (Year known)
	formatsWithYear := []string{
		config.DateFormatFullDash,
		config.DateFormatFullBasic,
		config.DateFormatRFC3339,
		config.DateFormatFullT,
	}
	for _, f := range formatsWithYear {
		if t, err := time.Parse(f, value); err == nil {
			return calendar.FromTime(t), true, nil
		}
	}

	// Truncated dates (Year unknown) - vCard specific
	formatsWithoutYear := []string{config.DateFormatNoYearD, config.DateFormatNoYearB}
	for _, f := range formatsWithoutYear {
		if t, err := time.Parse(f, value); err == nil {
			return calendar.Date{Year: config.DefaultLeapYear, Month: int(t.Month()), Day: t.Day()}, false, nil
		}
	}

	return calendar.Date{}, false, fmt.Errorf("%s: %q", config.ErrDateParse, value)
}
