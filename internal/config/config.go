package config

import (
	"io/fs"
	"time"
)

// -----------------------------------------------------------------------------
// Build Information
// -----------------------------------------------------------------------------

// Build variables are injected via -ldflags.
var (
	Version = "dev"
	Commit  = "none"
	Date    = "unknown"
)

// UserAgent identifies the HTTP client used for remote vCard files.
var UserAgent = "Go-DatePicker/" + Version

// -----------------------------------------------------------------------------
// Application Constants
// -----------------------------------------------------------------------------

const (
	AppName     = "Go DatePicker"
	AppID       = "com.github.tartampluch.go-datepicker"
	LogFileName = "app.log"
)

// -----------------------------------------------------------------------------
// Exit Codes
// -----------------------------------------------------------------------------

const (
	ExitCodeSuccess = 0
	ExitCodeError   = 1
)

// -----------------------------------------------------------------------------
// System & File Permissions
// -----------------------------------------------------------------------------

const (
	// FilePermUserRW represents -rw------- (Read/Write for owner only).
	FilePermUserRW fs.FileMode = 0600

	// DirPermUserRWX represents drwx------ (Read/Write/Exec for owner only).
	DirPermUserRWX fs.FileMode = 0700
)

// -----------------------------------------------------------------------------
// CLI Flags & Descriptions
// -----------------------------------------------------------------------------

const (
	FlagVersion      = "version"
	FlagDebug        = "debug"
	FlagLunar        = "lunar"
	FlagMode         = "mode"
	FlagVCard        = "vcard"
	FlagLang         = "lang"
	FlagOptions      = "options"
	FlagPort         = "port"
	FlagDescVersion  = "Show application version and exit"
	FlagDescDebug    = "Enable debug logging to stdout"
	FlagDescLunar    = "Start the date picker in lunar display"
	FlagDescMode     = "Picker to show: date, time or text"
	FlagDescVCard    = "vCard file or http(s) URL whose birthdays seed the date picker"
	FlagDescLang     = "UI language (en, zh)"
	FlagDescOptions  = "JSON file with the text picker options (cascade tree)"
	FlagDescPort     = "Serve the last anniversary export on 127.0.0.1:<port> (empty to disable)"
	MsgVersionOutput = "%s version %s (%s/%s)\n"
)

// Window layout.
const (
	WindowWidth    = 420
	WindowHeight   = 420
	ColumnMinWidth = 72
	// DividerThickness is the stroke of the two lines framing the selected row.
	DividerThickness = 1
)

// Picker modes selectable from the command line.
const (
	ModeDate = "date"
	ModeTime = "time"
	ModeText = "text"
)

// -----------------------------------------------------------------------------
// Preferences
// -----------------------------------------------------------------------------

const (
	PrefLanguage    = "language"
	PrefLunar       = "lunar"
	PrefHour24      = "hour24"
	PrefPickerState = "picker_state"
	PrefLastRun     = "last_run_version"
)

// SupportedLanguages defines the list of available UI languages (ISO 639-1).
var SupportedLanguages = []string{"en", "zh"}

const DefaultLanguage = "en"

// -----------------------------------------------------------------------------
// Picker Defaults
// -----------------------------------------------------------------------------

// Default selectable range of the date picker.
const (
	DefaultStartYear  = 1970
	DefaultStartMonth = 1
	DefaultStartDay   = 1
	DefaultEndYear    = 2100
	DefaultEndMonth   = 12
	DefaultEndDay     = 31
)

const (
	// DefaultShowCount is the row pool size in portrait: 5 visible rows plus 2 buffer rows.
	DefaultShowCount = 7
	// LandscapeShowCount is the reduced pool used in landscape layouts.
	LandscapeShowCount = 5

	DefaultOptionHeight   = 36.0
	DefaultDividerSpacing = 56.0
	DefaultGradientHeight = 36.0

	DefaultSelectedFontSize  = 20.0
	DefaultCandidateFontSize = 16.0
	DefaultDisappearFontSize = 14.0

	// DefaultLineHeightRatio converts a font size into a text line height.
	DefaultLineHeightRatio = 1.2
)

// Motion tuning for the column engine.
const (
	// MinTossVelocity is the release speed (px/s) below which no toss starts.
	MinTossVelocity = 200.0
	// TossDeceleration (px/s^2) predicts how far a toss travels.
	TossDeceleration = 2400.0
	// TossAngularFrequency and TossDampingRatio parametrise the toss spring.
	TossAngularFrequency = 9.0
	TossDampingRatio     = 1.0
	// TossMaxDuration bounds a toss that has not settled.
	TossMaxDuration = 3 * time.Second
	// TossSettleDistance and TossSettleVelocity decide when a toss is finished.
	TossSettleDistance = 0.5
	TossSettleVelocity = 5.0

	// OverscrollRatio limits how far a non-looping column can be dragged past its boundary.
	OverscrollRatio = 0.5

	ResetDuration = 200 * time.Millisecond
	ClickDuration = 300 * time.Millisecond

	// FrameInterval is the nominal frame time used when a driver reports none.
	FrameInterval = 16 * time.Millisecond
)

// -----------------------------------------------------------------------------
// Translation Keys (I18n)
// -----------------------------------------------------------------------------

const (
	// Option labels
	TKeyYear           = "picker_year"       // Requires Year
	TKeyDay            = "picker_day"        // Requires Day
	TKeySolarMonthFmt  = "solar_month_%d"    // 1..12
	TKeyLunarYear      = "lunar_year"        // Requires Year
	TKeyLunarMonthFmt  = "lunar_month_%d"    // 1..12
	TKeyLunarLeapMonth = "lunar_leap_month"  // Requires Month (already localized)
	TKeyLunarDayFmt    = "lunar_day_%d"      // 1..30
	TKeyAM             = "time_am"
	TKeyPM             = "time_pm"

	// Window
	TKeyWinTitle    = "win_title"
	TKeyLblLunar    = "lbl_lunar"
	TKeyLblHour24   = "lbl_hour24"
	TKeyLblLanguage = "lbl_language"
	TKeyLblContact  = "lbl_contact"
	TKeyLblSelected = "lbl_selected" // Requires Value
	TKeyBtnExport   = "btn_export"
	TKeyNotifExport = "notif_export" // Requires Path
	TKeyNotifErr    = "notif_err_export"
	TKeyEvtSummary  = "event_summary"     // Requires Name
	TKeyEvtAnniv    = "event_anniversary" // No name known
)

// LunarMonthsPerYear and LunarDaysPerMonth bound the lunar label tables.
const (
	LunarMonthsPerYear = 12
	LunarDaysPerMonth  = 30
)

// TimeFormatUnit formats hour, minute and second options.
const TimeFormatUnit = "%02d"

// -----------------------------------------------------------------------------
// Standards: iCalendar & vCard
// -----------------------------------------------------------------------------

const (
	ICalVersion = "2.0"
	ICalProdid  = "-//Go DatePicker//Anniversary//EN"
	ICalCalName = "Anniversaries"
	ICalMethod  = "PUBLISH"
	ICalScale   = "GREGORIAN"
	ICalDomain  = "godatepicker"

	PropUID        = "UID"
	PropSummary    = "SUMMARY"
	PropDTStart    = "DTSTART"
	PropDTStamp    = "DTSTAMP"
	PropCategories = "CATEGORIES"
	PropVersion    = "VERSION"
	PropProdid     = "PRODID"
	PropXWRCalName = "X-WR-CALNAME"
	PropCalScale   = "CALSCALE"
	PropMethod     = "METHOD"

	CategoryLunar = "LUNAR"
	CategorySolar = "SOLAR"

	VCardBDAY = "BDAY"
	VCardFN   = "FN"
	VCardN    = "N"

	// ExportYearsBefore and ExportYearsAfter frame the exported occurrences around today.
	ExportYearsBefore = 1
	ExportYearsAfter  = 10

	ExportFileName = "anniversary.ics"

	FormatUID = "%s-%d@%s"

	// Contact UIDs are truncated SHA-256 hashes of name, birthday and salt.
	UIDSalt         = "go-datepicker-v1-"
	UIDHashLength   = 16
	FormatHashInput = "%s|%s|%s"
)

// -----------------------------------------------------------------------------
// Network
// -----------------------------------------------------------------------------

const (
	HTTPTimeout         = 30 * time.Second
	MaxHTTPResponseSize = 16 * 1024 * 1024 // 16MB
	SchemeHTTP          = "http"
	SchemeHTTPS         = "https"
	HeaderUserAgent     = "User-Agent"
)

// Date layouts used for parsing vCard BDAY fields.
const (
	DateFormatFullDash  = "2006-01-02"
	DateFormatFullBasic = "20060102"
	DateFormatRFC3339   = time.RFC3339
	DateFormatFullT     = "2006-01-02T15:04:05Z"
	DateFormatNoYearD   = "--01-02"
	DateFormatNoYearB   = "--0102"

	// DefaultLeapYear keeps --02-29 representable when the year is unknown.
	DefaultLeapYear = 2000

	FallbackName = "Unknown"

	// DefaultTextOptions is the built-in cascade tree of the text picker.
	DefaultTextOptions = `[
  {"content": {"text": "Asia"}, "children": [
    {"content": {"text": "China"}, "children": [{"content": {"text": "Beijing"}}, {"content": {"text": "Shanghai"}}, {"content": {"text": "Shenzhen"}}]},
    {"content": {"text": "Japan"}, "children": [{"content": {"text": "Tokyo"}}, {"content": {"text": "Osaka"}}]}
  ]},
  {"content": {"text": "Europe"}, "children": [
    {"content": {"text": "France"}, "children": [{"content": {"text": "Paris"}}, {"content": {"text": "Lyon"}}]},
    {"content": {"text": "Germany"}, "children": [{"content": {"text": "Berlin"}}]}
  ]}
]`
)

// -----------------------------------------------------------------------------
// Anniversary Feed (HTTP)
// -----------------------------------------------------------------------------

const (
	LocalhostBindAddr = "127.0.0.1"
	RouteFeed         = "/" + ExportFileName

	ServerReadTimeout  = 5 * time.Second
	ServerWriteTimeout = 10 * time.Second
	ServerIdleTimeout  = 60 * time.Second
	ShutdownTimeout    = 5 * time.Second

	HeaderContentType     = "Content-Type"
	HeaderXContentType    = "X-Content-Type-Options"
	HeaderCacheControl    = "Cache-Control"
	HeaderETag            = "ETag"
	HeaderLastModified    = "Last-Modified"
	HeaderIfNoneMatch     = "If-None-Match"
	HeaderIfModifiedSince = "If-Modified-Since"
	HeaderAllow           = "Allow"
	HeaderRetryAfter      = "Retry-After"

	MimeTextCalendar    = "text/calendar; charset=utf-8"
	MimeNoSniff         = "nosniff"
	CacheControlPrivate = "private, no-cache"
	AllowedMethods      = "GET, HEAD"
	RetryAfterSeconds   = "60"
	FormatETag          = `"%s"`

	HTTPMsgMethodNotAll = "Method not allowed"
	HTTPMsgNoExport     = "No anniversary exported yet"
)

// -----------------------------------------------------------------------------
// Error Messages (Technical/Logs)
// -----------------------------------------------------------------------------

const (
	ErrAppFailed     = "application failed unexpectedly"
	ErrLogFile       = "failed to open log file"
	ErrCacheDir      = "could not determine user cache dir"
	ErrCreateDir     = "could not create app cache dir"
	ErrLocalesAccess = "failed to access embedded locales"
	ErrLocaleLoad    = "failed to load locale file"
	ErrRestoreState  = "failed to restore picker state"
	ErrSaveState     = "failed to save picker state"
	ErrVCardParse    = "failed to parse vCard stream"
	ErrVCardOpen     = "failed to open vCard file"
	ErrICalEncode    = "failed to encode iCalendar data"
	ErrExportWrite   = "failed to write iCalendar export"
	ErrDateParse     = "unable to parse date"
	ErrModeUnsupport = "configuration error: unsupported picker mode"
	ErrEventEncode   = "failed to encode change event"
	ErrNoBirthdays   = "no birthdays found in vCard"
	ErrNoOccurrences = "no anniversary falls inside the export window"
	ErrInvalidURL    = "invalid URL structure"
	ErrProtocol      = "unsupported protocol scheme (http/https only)"
	ErrFetch         = "network error during fetch"
	ErrHTTPStatus    = "server returned unexpected status"
	ErrOptionsLoad   = "failed to load text picker options"
	ErrFeedListen    = "failed to bind anniversary feed"
	ErrFeedShutdown  = "anniversary feed shutdown failed"
	ErrWriteResp     = "failed to write feed response"
	ErrImport        = "vCard import failed"
)

// -----------------------------------------------------------------------------
// Log Messages
// -----------------------------------------------------------------------------

const (
	MsgAppStarting   = "Starting application"
	MsgAppStop       = "Application stopped gracefully"
	MsgCtxCancel     = "Context cancelled, shutting down UI"
	MsgLogWarning    = "Warning: %s at %s: %v\n"
	MsgLocaleSkip    = "Skipping non-locale file"
	MsgLocaleBadName = "Skipping malformed locale filename"
	MsgLocaleLoaded  = "Locale loaded successfully"
	MsgTransMissing  = "Missing translation key"
	MsgLabelsReset   = "Label cache invalidated"
	MsgIndexChanged  = "Column index changed"
	MsgScrollBlocked = "Column reached its boundary"
	MsgStructural    = "Column layout inconsistent, operation skipped"
	MsgDateClamped   = "Date clamped into range"
	MsgRangeReset    = "Inverted range replaced by default range"
	MsgModeToggled   = "Display mode toggled"
	MsgTossStart     = "Toss started"
	MsgMotionStopped = "Motion interrupted"
	MsgStateRestored = "Picker state restored"
	MsgSkippedCard   = "Skipping malformed vCard"
	MsgSkippedDate   = "Skipping invalid date format"
	MsgImportDone    = "vCard import finished"
	MsgExportDone    = "Anniversary export written"
	MsgFetchStart    = "Initiating vCard download"
	MsgFetchStatus   = "Server returned error status"
	MsgLangChanged   = "UI language changed"
	MsgFeedListen    = "Anniversary feed listening"
	MsgFeedStop      = "Anniversary feed stopping"
	MsgFeedUpdated   = "Anniversary feed updated"
	MsgPickerChanged = "Picker value changed"
)

// -----------------------------------------------------------------------------
// Structured Logging Keys (slog)
// -----------------------------------------------------------------------------

const (
	LogKeyComponent = "component"
	LogKeyError     = "error"
	LogKeyFile      = "file"
	LogKeyLang      = "lang"
	LogKeyKey       = "key"
	LogKeyMode      = "mode"
	LogKeyColumn    = "column"
	LogKeyIndex     = "index"
	LogKeyOld       = "old"
	LogKeyNew       = "new"
	LogKeyValue     = "value"
	LogKeyStatus    = "status"
	LogKeyVelocity  = "velocity"
	LogKeyRows      = "rows"
	LogKeyCount     = "count"
	LogKeyDuration  = "duration_ms"
	LogKeyURL       = "url"
	LogKeyName      = "name"
	LogKeyAddr      = "addr"
	LogKeySizeBytes = "size_bytes"
	LogKeyETag      = "etag"

	// Startup Info Keys
	LogKeyBuild   = "build"
	LogKeyApp     = "app"
	LogKeyVersion = "version"
	LogKeyGoVer   = "go_version"
	LogKeyEnv     = "env"
	LogKeyOS      = "os"
	LogKeyArch    = "arch"
	LogKeyPID     = "pid"
)

// -----------------------------------------------------------------------------
// Log Components
// -----------------------------------------------------------------------------

const (
	CompMain    = "main"
	CompUI      = "ui"
	CompPicker  = "picker"
	CompColumn  = "column"
	CompLabels  = "labels"
	CompEngine  = "engine"
	CompFetcher = "fetcher"
	CompFeed    = "feed"
)
