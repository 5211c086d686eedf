package transcript

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"
)

// jsonDocument is the whisper-json wire shape. Field order is the key
// order emitted on the wire.
type jsonDocument struct {
	Format       string                 `json:"format"`
	Version      string                 `json:"version"`
	Metadata     map[string]interface{} `json:"metadata"`
	Text         string                 `json:"text"`
	SegmentCount int                    `json:"segment_count"`
	Segments     []Segment              `json:"segments"`
}

const (
	jsonFormatName    = "whisper-json"
	jsonFormatVersion = "1.0"
)

// ToJSON renders segments as a whisper-json document carrying the full
// text and metadata. Pretty output uses two-space indentation.
func ToJSON(segments []Segment, text string, metadata map[string]interface{}, pretty bool) (string, error) {
	if metadata == nil {
		metadata = map[string]interface{}{}
	}
	if segments == nil {
		segments = []Segment{}
	}

	doc := jsonDocument{
		Format:       jsonFormatName,
		Version:      jsonFormatVersion,
		Metadata:     metadata,
		Text:         text,
		SegmentCount: len(segments),
		Segments:     segments,
	}

	var buf bytes.Buffer
	encoder := json.NewEncoder(&buf)
	encoder.SetEscapeHTML(false)
	if pretty {
		encoder.SetIndent("", "  ")
	}
	if err := encoder.Encode(doc); err != nil {
		return "", fmt.Errorf("encoding transcript JSON: %w", err)
	}

	return strings.TrimSuffix(buf.String(), "\n"), nil
}

// FromJSON parses a whisper-json document back into its segments, text,
// and metadata. Missing keys default to empty values; malformed input is
// a parse error.
func FromJSON(content string) (*Document, error) {
	var doc struct {
		Metadata map[string]interface{} `json:"metadata"`
		Text     string                 `json:"text"`
		Segments []Segment              `json:"segments"`
	}
	if err := json.Unmarshal([]byte(content), &doc); err != nil {
		return nil, fmt.Errorf("invalid transcript JSON: %w", err)
	}

	result := &Document{
		Segments: doc.Segments,
		Text:     doc.Text,
		Metadata: doc.Metadata,
	}
	if result.Segments == nil {
		result.Segments = []Segment{}
	}
	if result.Metadata == nil {
		result.Metadata = map[string]interface{}{}
	}
	return result, nil
}
