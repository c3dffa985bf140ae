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

// UserAgent identifies the HTTP client.
var UserAgent = "Pythagore/" + Version

// -----------------------------------------------------------------------------
// Application Constants
// -----------------------------------------------------------------------------

const (
	AppName           = "Pythagore"
	AppID             = "com.github.gillesh-web.pythagore"
	KeyringService    = "com.github.gillesh-web.pythagore"
	CommandName       = "pythagore"
	EnvPrefix         = "PYTHAGORE"
	LocalhostBindAddr = "127.0.0.1"
	LogFileName       = "app.log"
	ConfigDirName     = "pythagore"
	ConfigFileName    = "config"
	ConfigFileType    = "yaml"
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
	// Used for logs and exported documents.
	FilePermUserRW fs.FileMode = 0600

	// DirPermUserRWX represents drwx------ (Read/Write/Exec for owner only).
	DirPermUserRWX fs.FileMode = 0700

	// ChannelBufferSize defines the standard buffer size for internal signaling channels.
	ChannelBufferSize = 1
)

// -----------------------------------------------------------------------------
// CLI Flags & Descriptions
// -----------------------------------------------------------------------------

const (
	FlagConfig     = "config"
	FlagDebug      = "debug"
	FlagFirstName1 = "first-name"
	FlagFirstName2 = "first-name-2"
	FlagFirstName3 = "first-name-3"
	FlagLastName   = "last-name"
	FlagLastName2  = "last-name-2"
	FlagLastName3  = "last-name-3"
	FlagBirthDate  = "birth-date"
	FlagVariant    = "variant"
	FlagTraits     = "traits"
	FlagFormat     = "format"
	FlagLang       = "lang"
	FlagOut        = "out"
	FlagPort       = "port"
	FlagReminder   = "reminder"
	FlagVCF        = "vcf"
	FlagURL        = "url"
	FlagUser       = "user"
	FlagNoValidate = "no-validate"
	FlagRemind     = "remind"
	FlagRemindUnit = "remind-unit"
	FlagRemindDir  = "remind-dir"

	FlagDescConfig     = "config file (default: $HOME/.config/pythagore/config.yaml)"
	FlagDescDebug      = "Enable debug logging"
	FlagDescFirstName1 = "First given name (required)"
	FlagDescFirstName2 = "Second given name"
	FlagDescFirstName3 = "Third given name"
	FlagDescLastName   = "Surname (required)"
	FlagDescLastName2  = "Second surname (last-names variant)"
	FlagDescLastName3  = "Third surname (last-names variant)"
	FlagDescBirthDate  = "Birth date, YYYY-MM-DD (required)"
	FlagDescVariant    = "Name aggregation: first-names or last-names"
	FlagDescTraits     = "Include health, feelings and heredity analyses"
	FlagDescFormat     = "Output format: text, json, yaml or ics"
	FlagDescLang       = "Language of labels: fr or en"
	FlagDescOut        = "Write to this file instead of stdout"
	FlagDescPort       = "HTTP port of the API server"
	FlagDescReminder   = "ISO-8601 alarm trigger for calendar events (e.g. -P1D)"
	FlagDescVCF        = "Path of a local .vcf file"
	FlagDescURL        = "CardDAV or WebDAV URL of a vCard collection"
	FlagDescUser       = "HTTP Basic Auth user (password read from the OS keyring)"
	FlagDescNoValidate = "Skip input validation"
	FlagDescRemind     = "Alarm offset value; overrides --reminder when set"
	FlagDescRemindUnit = "Alarm offset unit: d, h or m"
	FlagDescRemindDir  = "Alarm direction: before or after"

	MsgVersionOutput = "%s version %s (commit %s, built %s, %s/%s)\n"
)

// -----------------------------------------------------------------------------
// Settings Keys (viper) & Defaults
// -----------------------------------------------------------------------------

const (
	KeyLanguage         = "language"
	KeyVariant          = "variant"
	KeyTraits           = "traits"
	KeyFormat           = "format"
	KeyServerPort       = "server.port"
	KeyServerCacheTTL   = "server.cache_ttl"
	KeyCalendarReminder = "calendar.reminder"
	KeyContactsURL      = "contacts.url"
	KeyContactsUser     = "contacts.user"
	KeyContactsPath     = "contacts.path"
	KeyDebug            = "debug"
)

const (
	DefaultLanguage     = "fr"
	DefaultFormat       = FormatText
	DefaultPort         = "18080"
	DefaultCacheTTL     = 10 * time.Minute
	DefaultCacheCleanup = 30 * time.Minute
	DefaultTraits       = true
	MinPort             = 1
	MaxPort             = 65535
	MinBirthYear        = 1900
	UIDSalt             = "pythagore-v1-" // Salt for deterministic UID generation
)

// SupportedLanguages defines the list of available label languages (ISO 639-1).
var SupportedLanguages = []string{"fr", "en"}

// -----------------------------------------------------------------------------
// Output Formats
// -----------------------------------------------------------------------------

const (
	FormatText = "text"
	FormatJSON = "json"
	FormatYAML = "yaml"
	FormatICS  = "ics"
)

// SupportedFormats lists every accepted output format.
var SupportedFormats = []string{FormatText, FormatJSON, FormatYAML, FormatICS}

// -----------------------------------------------------------------------------
// Numerology Domain
// -----------------------------------------------------------------------------

const (
	VariantFirstNames = "first-names"
	VariantLastNames  = "last-names"

	// GlyphAbsent marks an inclusion grid numeral that never occurs.
	GlyphAbsent = "ô"

	LabelCycle       = "Cycle %d"
	LabelRealization = "Réalisation %d"
)

// SupportedVariants lists the name aggregation variants by name.
var SupportedVariants = []string{VariantFirstNames, VariantLastNames}

// -----------------------------------------------------------------------------
// Form Fields (validation keys & query parameters)
// -----------------------------------------------------------------------------

const (
	FieldFirstName1 = "firstName1"
	FieldFirstName2 = "firstName2"
	FieldFirstName3 = "firstName3"
	FieldLastName   = "lastName"
	FieldLastName2  = "lastName2"
	FieldLastName3  = "lastName3"
	FieldBirthDate  = "birthDate"
	FieldVariant    = "variant"
	FieldTraits     = "traits"
	FieldLang       = "lang"
)

// -----------------------------------------------------------------------------
// Translation Keys (I18n)
// -----------------------------------------------------------------------------

const (
	TKeyTitle           = "title"
	TKeyTabPillars      = "tab_pillars"
	TKeyTabCycles       = "tab_cycles"
	TKeyTabRealizations = "tab_realizations"
	TKeyTabTraits       = "tab_traits"
	TKeyLifePath        = "life_path"
	TKeyInclusionGrid   = "inclusion_grid"
	TKeyExpression      = "expression_number"
	TKeyCycle           = "cycle"       // Requires Number
	TKeyRealization     = "realization" // Requires Number
	TKeyCycleCaption    = "cycle_caption"
	TKeyHealth          = "health"
	TKeyFeelings        = "feelings"
	TKeyHeredity        = "heredity"
	TKeyDominant        = "dominant_number"
	TKeyTendencies      = "tendencies"
	TKeyAdvice          = "advice"
	TKeyAttention       = "attention"
	TKeyBornOn          = "born_on" // Requires Date
	TKeyColNumber       = "col_number"
	TKeyColCount        = "col_count"
	TKeyGeneratedOn     = "generated_on"      // Requires Date, Time
	TKeyFormatDate      = "format_date"       // Date layout (e.g. "02/01/2006")
	TKeyFormatTime      = "format_time"       // Time layout (e.g. "15:04")
	TKeyEvtPhaseStart   = "event_phase_start" // Requires Label, Value, Name
	TKeyEvtDescription  = "event_description" // Requires AgeRange

	// Validation Errors
	TKeyErrRequired   = "err_required"
	TKeyErrNameChars  = "err_name_chars"
	TKeyErrDateFormat = "err_date_format"
	TKeyErrDateFuture = "err_date_future"
	TKeyErrDateTooOld = "err_date_too_old"
	TKeyErrInvalid    = "err_invalid_input"
)

// -----------------------------------------------------------------------------
// Reminder Units & Directions (ISO-8601 durations)
// -----------------------------------------------------------------------------

const (
	UnitDays    = "d"
	UnitHours   = "h"
	UnitMinutes = "m"
	DirBefore   = "before"
	DirAfter    = "after"

	ISOPeriodPrefix   = "P"
	ISONegativePrefix = "-P"
	ISOTimePrefix     = "T"
	ISODay            = "D"
	ISOHour           = "H"
	ISOMinute         = "M"
)

// -----------------------------------------------------------------------------
// Standards: iCalendar & vCard
// -----------------------------------------------------------------------------

const (
	// iCal Properties
	ICalVersion   = "2.0"
	ICalProdid    = "-//Pythagore//Numerology//FR"
	ICalCalName   = "Pythagore"
	ICalMethod    = "PUBLISH"
	ICalScale     = "GREGORIAN"
	ICalComponent = "VALARM"
	ICalAction    = "DISPLAY"
	ICalDomain    = "pythagore"

	// iCal/vCard Fields
	PropUID         = "UID"
	PropSummary     = "SUMMARY"
	PropDTStart     = "DTSTART"
	PropDTStamp     = "DTSTAMP"
	PropAction      = "ACTION"
	PropDescription = "DESCRIPTION"
	PropTrigger     = "TRIGGER"
	PropVersion     = "VERSION"
	PropProdid      = "PRODID"
	PropXWRCalName  = "X-WR-CALNAME"
	PropCalScale    = "CALSCALE"
	PropMethod      = "METHOD"
	PropCategories  = "CATEGORIES"

	VCardBDAY = "BDAY"
	VCardFN   = "FN"

	// VCardListSep separates multiple values inside one N component.
	VCardListSep = ","

	CategoryCycle       = "CYCLE"
	CategoryRealization = "REALIZATION"
)

// -----------------------------------------------------------------------------
// Data Formats & File Extensions
// -----------------------------------------------------------------------------

const (
	// Date layouts accepted for birth dates. Every one carries a full year.
	DateFormatFullDash  = "2006-01-02"
	DateFormatFullBasic = "20060102"
	DateFormatRFC3339   = time.RFC3339
	DateFormatFullT     = "2006-01-02T15:04:05Z"

	// UID Generation
	UIDHashLength   = 16
	FormatHashInput = "%s|%s|%s"
	FormatUID       = "%s-%d@%s"

	// Cache key generation
	CacheKeyPrefix = "pythagore:v1:"

	// File Extensions
	ExtVCF = ".vcf"
	ExtICS = ".ics"
)

// -----------------------------------------------------------------------------
// Network & Timeouts
// -----------------------------------------------------------------------------

const (
	HTTPTimeout         = 30 * time.Second
	ShutdownTimeout     = 5 * time.Second
	ServerReadTimeout   = 10 * time.Second
	ServerWriteTimeout  = 30 * time.Second
	ServerIdleTimeout   = 60 * time.Second
	AllowedMethods      = "GET, HEAD"
	MaxHTTPResponseSize = 64 * 1024 * 1024 // 64MB
	SchemeHTTP          = "http"
	SchemeHTTPS         = "https"
	RouteReport         = "/api/report"
	RouteCalendar       = "/api/calendar.ics"
	RouteHealth         = "/healthz"
	QueryReminder       = "reminder"
	AddrSeparator       = ":"
	SourceModeWeb       = "web"
	SourceModeLocal     = "local"
)

// -----------------------------------------------------------------------------
// HTTP Headers & MIME Types
// -----------------------------------------------------------------------------

const (
	HeaderContentType    = "Content-Type"
	HeaderCacheControl   = "Cache-Control"
	HeaderETag           = "ETag"
	HeaderAllow          = "Allow"
	HeaderXContentType   = "X-Content-Type-Options"
	HeaderUserAgent      = "User-Agent"
	HeaderIfNoneMatch    = "If-None-Match"
	HeaderAccept         = "Accept"
	HeaderAcceptLanguage = "Accept-Language"
	HeaderContentLang    = "Content-Language"

	MimeJSON            = "application/json; charset=utf-8"
	MimeTextCalendar    = "text/calendar; charset=utf-8"
	MimeTextPlain       = "text/plain; charset=utf-8"

	// AcceptVCard prefers vCard 4.0 and 3.0 media types from CardDAV servers.
	AcceptVCard = "text/vcard, text/x-vcard;q=0.9, */*;q=0.1"
	MimeNoSniff         = "nosniff"
	CacheControlPrivate = "private, no-cache"

	// FormatETag expects a string argument.
	FormatETag = `"%s"`
)

// -----------------------------------------------------------------------------
// Error Messages (Technical/Logs)
// -----------------------------------------------------------------------------

const (
	ErrDateParse        = "unable to parse date"
	ErrInvalidBirthDate = "invalid birth date"
	ErrVariantUnknown   = "unknown name variant"
	ErrFormatUnknown    = "unknown output format"
	ErrLanguageUnknown  = "unsupported language"
	ErrLocalPathEmpty   = "configuration error: local path is empty"
	ErrWebURLEmpty      = "configuration error: web URL is empty"
	ErrFetcherMissing   = "internal error: network fetcher is not initialized"
	ErrModeUnsupport    = "configuration error: unsupported source mode"
	ErrServerStartup    = "server startup failed"
	ErrServerShutdown   = "server shutdown failed"
	ErrPortRequired     = "server port is required"
	ErrPortNumber       = "server port must be a number"
	ErrPortRange        = "server port must be between 1 and 65535"
	ErrInvalidURL       = "invalid URL structure"
	ErrProtocol         = "unsupported protocol scheme (http/https only)"
	ErrVCardParse       = "failed to parse vCard stream"
	ErrVCardTruncated   = "vCard stream truncated by a malformed card"
	ErrICalEncode       = "failed to encode iCalendar data"
	ErrEncode           = "failed to encode document"
	ErrLogFile          = "failed to open log file"
	ErrCacheDir         = "could not determine user cache dir"
	ErrCreateDir        = "could not create app cache dir"
	ErrAppFailed        = "application failed unexpectedly"
	ErrWriteResp        = "failed to write response body"
	ErrLocalesAccess    = "failed to access embedded locales"
	ErrLocaleLoad       = "failed to load locale file"
	ErrConfigRead       = "failed to read configuration"
	ErrConfigDecode     = "failed to decode configuration"
	ErrConfigExists     = "config file already exists"
	ErrConfigWrite      = "failed to write configuration"
	ErrHomeDir          = "could not determine home directory"
	ErrOutputFile       = "failed to create output file"
	ErrInvalidInput     = "invalid input"
	HTTPMsgMethodNotAll = "Method Not Allowed"
	HTTPMsgEncodeError  = `{"error":"encode_error"}`
	ErrCalculation      = "calculation failed"
	ErrKeyringGet       = "failed to read password from keyring"
	ErrKeyringSet       = "failed to store password in keyring"
	ErrNoSource         = "either --vcf or --url is required"
	ErrPassword         = "failed to read password"
	ErrUserRequired     = "--user is required"
	ErrRequest          = "failed to create request"
	ErrNetwork          = "network error during fetch"
	ErrHTTPStatus       = "server returned unexpected status"
	ErrKeyringDelete    = "failed to delete password from keyring"
)

// -----------------------------------------------------------------------------
// Messages
// -----------------------------------------------------------------------------

const (
	MsgAppStarting   = "Starting application"
	MsgAppStop       = "Application stopped gracefully"
	MsgConfigUsed    = "Using config file"
	MsgConfigCreated = "Created default configuration: %s\n"
	MsgCalcDone      = "Report computed"
	MsgSkippedCard   = "Skipping malformed vCard"
	MsgSkippedDate   = "Skipping invalid date format"
	MsgSkippedName   = "Skipping contact without name"
	MsgImportDone    = "Contact import finished"
	MsgGenSuccess    = "Calendar generation successful"
	MsgServerListen  = "HTTP server listening"
	MsgServerStop    = "Shutting down HTTP server..."
	MsgCacheHit      = "Report served from cache"
	MsgCacheStored   = "Report cached"
	MsgLocaleSkip    = "Skipping non-locale file"
	MsgLocaleBadName = "Skipping malformed locale filename"
	MsgLocaleLoaded  = "Locale loaded successfully"
	MsgTransMissing  = "Missing translation key"
	MsgPassFail      = "Password retrieval failed (might be empty)"
	MsgLogWarning    = "Warning: %s at %s: %v\n"
	MsgDocWritten    = "Document written"
	MsgHealthOK      = "ok"
	MsgBatchItem     = "Contact processed"
	MsgFetchStart    = "Initiating vCard download"
	MsgFetchStatus   = "Server returned error status"
	MsgFetchBody     = "vCards downloading"
	MsgImportStart   = "Contact import started"
	MsgPassStored    = "Password stored in keyring"
	MsgPassRemoved   = "Password removed from keyring\n"
	MsgPassPrompt    = "Password: "
	MsgSkippedInput  = "Skipping contact with invalid input"
	MsgBatchSummary  = "Processed %d contacts, skipped %d\n"
	MsgBatchPartial  = "Warning: %v; later contacts were not read\n"
	MsgConfigNone    = "No configuration file found (using defaults)\n"
	MsgConfigFile    = "Configuration file: %s\n"
)

// -----------------------------------------------------------------------------
// Fallbacks
// -----------------------------------------------------------------------------

const (
	FallbackSummary = "%s (%d) - %s"
	FallbackName    = "Unknown"

	// StubVCalendar is the minimal valid iCalendar object used when no events are produced.
	StubVCalendar = "BEGIN:VCALENDAR\r\nVERSION:2.0\r\nPRODID:" + ICalProdid + "\r\nEND:VCALENDAR\r\n"
)

// -----------------------------------------------------------------------------
// Structured Logging Keys (slog)
// -----------------------------------------------------------------------------

const (
	LogKeyComponent = "component"
	LogKeyError     = "error"
	LogKeyURL       = "url"
	LogKeyStatus    = "status_code"
	LogKeyFile      = "file"
	LogKeyLang      = "lang"
	LogKeyKey       = "key"
	LogKeyPort      = "port"
	LogKeyMode      = "mode"
	LogKeyUser      = "user"
	LogKeyValue     = "value"
	LogKeyStats     = "stats"
	LogKeyCount     = "count"
	LogKeyName      = "name"
	LogKeyDOB       = "date_of_birth"
	LogKeyDuration  = "duration_ms"
	LogKeyTotal     = "total_cards"
	LogKeyFound     = "people_found"
	LogKeyEvents    = "events"
	LogKeyFormat    = "format"
	LogKeyVariant   = "variant"
	LogKeyLifePath  = "life_path"
	LogKeySizeBytes = "size_bytes"
	LogKeyPath      = "path"
	LogKeyMethod    = "method"
	LogKeyRoute     = "route"
	LogKeyLength    = "content_length"
	LogKeyType      = "content_type"
	LogKeyTruncated = "truncated"
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
	CompMain     = "main"
	CompCLI      = "cli"
	CompServer   = "server"
	CompFetcher  = "fetcher"
	CompContacts = "contacts"
	CompCalendar = "calendar"
	CompRender   = "render"
	CompI18n     = "i18n"
)
