package transcript

import (
	"errors"
	"fmt"
	"strings"
)

// Format names accepted by Convert and GetFormatInfo.
const (
	FormatSRT  = "srt"
	FormatVTT  = "vtt"
	FormatJSON = "json"
	FormatTXT  = "txt"
	FormatCSV  = "csv"
)

// ErrUnsupportedFormat is returned when Convert is asked for a format it
// does not know.
var ErrUnsupportedFormat = errors.New("unsupported transcript format")

// SupportedFormats lists the format names Convert accepts, in display order.
func SupportedFormats() []string {
	return []string{FormatSRT, FormatVTT, FormatJSON, FormatTXT, FormatCSV}
}

// renderConfig collects the per-format knobs Convert can apply.
type renderConfig struct {
	metadata          map[string]interface{}
	text              string
	pretty            bool
	includeTimestamps bool
	includeHeader     bool
	delimiter         rune
}

// Option is a functional option for Convert. Options that do not apply to
// the requested format are ignored.
type Option func(*renderConfig)

// WithMetadata attaches metadata for the vtt and json renderers.
func WithMetadata(metadata map[string]interface{}) Option {
	return func(c *renderConfig) {
		c.metadata = metadata
	}
}

// WithText supplies the full text for the json renderer.
func WithText(text string) Option {
	return func(c *renderConfig) {
		c.text = text
	}
}

// WithPretty toggles json indentation. Defaults to true.
func WithPretty(pretty bool) Option {
	return func(c *renderConfig) {
		c.pretty = pretty
	}
}

// WithTimestamps toggles the bracketed timestamp prefix in txt output.
func WithTimestamps(include bool) Option {
	return func(c *renderConfig) {
		c.includeTimestamps = include
	}
}

// WithHeader toggles the csv header row. Defaults to true.
func WithHeader(include bool) Option {
	return func(c *renderConfig) {
		c.includeHeader = include
	}
}

// WithDelimiter overrides the csv delimiter. Defaults to a comma.
func WithDelimiter(delimiter rune) Option {
	return func(c *renderConfig) {
		c.delimiter = delimiter
	}
}

// Convert renders segments in the named format. Matching is
// case-insensitive; an unknown name yields ErrUnsupportedFormat naming the
// supported set.
func Convert(segments []Segment, format string, opts ...Option) (string, error) {
	cfg := renderConfig{
		pretty:        true,
		includeHeader: true,
		delimiter:     ',',
	}
	for _, opt := range opts {
		opt(&cfg)
	}

	switch strings.ToLower(strings.TrimSpace(format)) {
	case FormatSRT:
		return ToSRT(segments), nil
	case FormatVTT:
		return ToVTT(segments, cfg.metadata), nil
	case FormatJSON:
		return ToJSON(segments, cfg.text, cfg.metadata, cfg.pretty)
	case FormatTXT:
		return ToTXT(segments, cfg.includeTimestamps), nil
	case FormatCSV:
		return ToCSV(segments, cfg.includeHeader, cfg.delimiter)
	default:
		return "", fmt.Errorf("%w: %q (supported: %s)",
			ErrUnsupportedFormat, format, strings.Join(SupportedFormats(), ", "))
	}
}

// FormatInfo describes an output format for content negotiation and
// filename construction.
type FormatInfo struct {
	Name        string `json:"name"`
	Extension   string `json:"extension"`
	MIMEType    string `json:"mime_type"`
	Description string `json:"description"`
}

var formatCatalog = map[string]FormatInfo{
	FormatSRT: {
		Name:        "SubRip",
		Extension:   ".srt",
		MIMEType:    "application/x-subrip",
		Description: "Standard subtitle format widely supported",
	},
	FormatVTT: {
		Name:        "WebVTT",
		Extension:   ".vtt",
		MIMEType:    "text/vtt",
		Description: "Web video text tracks for HTML5",
	},
	FormatJSON: {
		Name:        "JSON",
		Extension:   ".json",
		MIMEType:    "application/json",
		Description: "Structured data with full segment information",
	},
	FormatTXT: {
		Name:        "Plain Text",
		Extension:   ".txt",
		MIMEType:    "text/plain",
		Description: "Simple text format without timestamps",
	},
	FormatCSV: {
		Name:        "CSV",
		Extension:   ".csv",
		MIMEType:    "text/csv",
		Description: "Tabular format with timestamps and text",
	},
}

// GetFormatInfo returns the catalog entry for a format name. Unknown names
// yield the zero FormatInfo rather than an error.
func GetFormatInfo(format string) FormatInfo {
	return formatCatalog[strings.ToLower(strings.TrimSpace(format))]
}
