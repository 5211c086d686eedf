package transcript

import (
	"errors"
	"strings"
	"testing"
)

func TestConvertDispatch(t *testing.T) {
	segments := sampleSegments()

	tests := []struct {
		format   string
		contains string
	}{
		{"srt", "00:00:00,000 --> 00:00:05,500"},
		{"SRT", "00:00:00,000 --> 00:00:05,500"},
		{"vtt", "WEBVTT"},
		{"json", "\"whisper-json\""},
		{"txt", "Hello\nWorld"},
		{"csv", "index,start,end,duration,text"},
		{"  Csv  ", "index,start,end,duration,text"},
	}

	for _, tt := range tests {
		got, err := Convert(segments, tt.format)
		if err != nil {
			t.Errorf("Convert(%q) failed: %v", tt.format, err)
			continue
		}
		if !strings.Contains(got, tt.contains) {
			t.Errorf("Convert(%q) output missing %q:\n%s", tt.format, tt.contains, got)
		}
	}
}

func TestConvertUnsupportedFormat(t *testing.T) {
	_, err := Convert(sampleSegments(), "docx")
	if err == nil {
		t.Fatal("Expected error for unsupported format")
	}
	if !errors.Is(err, ErrUnsupportedFormat) {
		t.Errorf("Expected ErrUnsupportedFormat, got %v", err)
	}
	for _, name := range SupportedFormats() {
		if !strings.Contains(err.Error(), name) {
			t.Errorf("Error should list supported format %q: %v", name, err)
		}
	}
}

func TestConvertOptions(t *testing.T) {
	segments := sampleSegments()

	vtt, err := Convert(segments, "vtt", WithMetadata(map[string]interface{}{"language": "en"}))
	if err != nil {
		t.Fatalf("Convert vtt failed: %v", err)
	}
	if !strings.Contains(vtt, "Language: en") {
		t.Errorf("Expected language header, got:\n%s", vtt)
	}

	txt, err := Convert(segments, "txt", WithTimestamps(true))
	if err != nil {
		t.Fatalf("Convert txt failed: %v", err)
	}
	if !strings.HasPrefix(txt, "[00:00] Hello") {
		t.Errorf("Expected timestamp prefix, got %q", txt)
	}

	csvOut, err := Convert(segments, "csv", WithHeader(false), WithDelimiter('\t'))
	if err != nil {
		t.Fatalf("Convert csv failed: %v", err)
	}
	if strings.Contains(csvOut, "index") {
		t.Errorf("Header should be suppressed, got %q", csvOut)
	}
	if !strings.Contains(csvOut, "\t") {
		t.Errorf("Expected tab delimiter, got %q", csvOut)
	}

	compact, err := Convert(segments, "json", WithPretty(false))
	if err != nil {
		t.Fatalf("Convert json failed: %v", err)
	}
	if strings.Contains(compact, "\n") {
		t.Errorf("Compact JSON should be a single line, got %q", compact)
	}
}

func TestJSONRoundTrip(t *testing.T) {
	segments := sampleSegments()
	metadata := map[string]interface{}{"language": "en", "job_id": "abc-123"}

	encoded, err := ToJSON(segments, "Hello World", metadata, true)
	if err != nil {
		t.Fatalf("ToJSON failed: %v", err)
	}

	doc, err := FromJSON(encoded)
	if err != nil {
		t.Fatalf("FromJSON failed: %v", err)
	}

	if len(doc.Segments) != len(segments) {
		t.Fatalf("Expected %d segments, got %d", len(segments), len(doc.Segments))
	}
	for i, seg := range segments {
		if doc.Segments[i] != seg {
			t.Errorf("Segment %d mismatch: got %+v, want %+v", i, doc.Segments[i], seg)
		}
	}
	if doc.Text != "Hello World" {
		t.Errorf("Text mismatch: %q", doc.Text)
	}
	if doc.Metadata["language"] != "en" || doc.Metadata["job_id"] != "abc-123" {
		t.Errorf("Metadata mismatch: %+v", doc.Metadata)
	}
}

func TestFromJSONDefaults(t *testing.T) {
	doc, err := FromJSON(`{"format":"whisper-json"}`)
	if err != nil {
		t.Fatalf("FromJSON failed: %v", err)
	}
	if doc.Segments == nil || len(doc.Segments) != 0 {
		t.Errorf("Expected empty segments, got %+v", doc.Segments)
	}
	if doc.Text != "" {
		t.Errorf("Expected empty text, got %q", doc.Text)
	}
	if doc.Metadata == nil {
		t.Error("Expected non-nil metadata map")
	}
}

func TestFromJSONMalformed(t *testing.T) {
	if _, err := FromJSON("{not json"); err == nil {
		t.Fatal("Expected parse error for malformed JSON")
	}
}

func TestToJSONDoesNotEscapeHTML(t *testing.T) {
	segments := []Segment{{Start: 0, End: 1, Text: "AT&T <b>announcement</b>"}}

	encoded, err := ToJSON(segments, "", nil, false)
	if err != nil {
		t.Fatalf("ToJSON failed: %v", err)
	}
	if !strings.Contains(encoded, "AT&T <b>announcement</b>") {
		t.Errorf("HTML characters should pass through unescaped: %q", encoded)
	}
}

func TestValidateSegments(t *testing.T) {
	tests := []struct {
		name     string
		segments []Segment
		want     bool
	}{
		{"valid", sampleSegments(), true},
		{"empty", nil, true},
		{"negative start", []Segment{{Start: -1, End: 2, Text: "x"}}, false},
		{"negative end", []Segment{{Start: 0, End: -2, Text: "x"}}, false},
		{"end before start", []Segment{{Start: 5, End: 3, Text: "x"}}, false},
		{"zero duration", []Segment{{Start: 3, End: 3, Text: "x"}}, true},
	}

	for _, tt := range tests {
		if got := ValidateSegments(tt.segments); got != tt.want {
			t.Errorf("ValidateSegments(%s) = %v, want %v", tt.name, got, tt.want)
		}
	}
}

func TestNewSegment(t *testing.T) {
	seg, err := NewSegment(1.5, 3.25, "ok")
	if err != nil {
		t.Fatalf("NewSegment failed: %v", err)
	}
	if seg.Duration() != 1.75 {
		t.Errorf("Duration = %v, want 1.75", seg.Duration())
	}

	if _, err := NewSegment(-0.1, 1, "x"); err == nil {
		t.Error("Expected error for negative start")
	}
	if _, err := NewSegment(2, 1, "x"); err == nil {
		t.Error("Expected error for end before start")
	}
}

func TestGetFormatInfo(t *testing.T) {
	info := GetFormatInfo("SRT")
	if info.Name != "SubRip" || info.Extension != ".srt" || info.MIMEType != "application/x-subrip" {
		t.Errorf("Unexpected srt info: %+v", info)
	}

	if unknown := GetFormatInfo("docx"); unknown != (FormatInfo{}) {
		t.Errorf("Expected zero FormatInfo for unknown format, got %+v", unknown)
	}
}
