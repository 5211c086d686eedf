package transcript

import (
	"strings"
	"testing"
)

func sampleSegments() []Segment {
	return []Segment{
		{Start: 0.0, End: 5.5, Text: "Hello"},
		{Start: 5.5, End: 12.0, Text: "World"},
	}
}

func TestToSRT(t *testing.T) {
	got := ToSRT(sampleSegments())
	want := "1\n00:00:00,000 --> 00:00:05,500\nHello\n\n2\n00:00:05,500 --> 00:00:12,000\nWorld\n"

	if got != want {
		t.Errorf("SRT output mismatch:\ngot:\n%q\nwant:\n%q", got, want)
	}
}

func TestToSRTSkipsEmptyTextWithoutNumberGaps(t *testing.T) {
	segments := []Segment{
		{Start: 0, End: 1, Text: "First"},
		{Start: 1, End: 2, Text: "   "},
		{Start: 2, End: 3, Text: "Third"},
	}

	got := ToSRT(segments)

	if strings.Contains(got, "   ") {
		t.Errorf("Blank segment should be skipped, got:\n%s", got)
	}
	if !strings.Contains(got, "2\n00:00:02,000 --> 00:00:03,000\nThird") {
		t.Errorf("Emitted blocks should renumber contiguously, got:\n%s", got)
	}
	if strings.Contains(got, "\n3\n") {
		t.Errorf("No block should carry index 3, got:\n%s", got)
	}
}

func TestToSRTEmpty(t *testing.T) {
	if got := ToSRT(nil); got != "" {
		t.Errorf("Expected empty string for no segments, got %q", got)
	}
}

func TestToVTT(t *testing.T) {
	got := ToVTT(sampleSegments(), nil)
	want := "WEBVTT\n\n00:00:00.000 --> 00:00:05.500\nHello\n\n00:00:05.500 --> 00:00:12.000\nWorld\n"

	if got != want {
		t.Errorf("VTT output mismatch:\ngot:\n%q\nwant:\n%q", got, want)
	}
}

func TestToVTTWithMetadata(t *testing.T) {
	metadata := map[string]interface{}{"language": "en", "title": "Meeting"}
	got := ToVTT(sampleSegments(), metadata)

	if !strings.HasPrefix(got, "WEBVTT\nLanguage: en\nTitle: Meeting\n\n") {
		t.Errorf("Expected metadata header lines, got:\n%s", got)
	}
}

func TestToVTTEmpty(t *testing.T) {
	if got := ToVTT(nil, map[string]interface{}{"language": "en"}); got != "WEBVTT\n\n" {
		t.Errorf("Expected bare WEBVTT header for no segments, got %q", got)
	}
}

func TestTimestampFormatting(t *testing.T) {
	tests := []struct {
		seconds float64
		srt     string
		vtt     string
	}{
		{0, "00:00:00,000", "00:00:00.000"},
		{5.5, "00:00:05,500", "00:00:05.500"},
		{12.0, "00:00:12,000", "00:00:12.000"},
		{61.25, "00:01:01,250", "00:01:01.250"},
		{3661.001, "01:01:01,001", "01:01:01.001"},
		{7325.999, "02:02:05,999", "02:02:05.999"},
	}

	for _, tt := range tests {
		if got := srtTimestamp(tt.seconds); got != tt.srt {
			t.Errorf("srtTimestamp(%v) = %s, want %s", tt.seconds, got, tt.srt)
		}
		if got := vttTimestamp(tt.seconds); got != tt.vtt {
			t.Errorf("vttTimestamp(%v) = %s, want %s", tt.seconds, got, tt.vtt)
		}
	}
}

func TestToTXT(t *testing.T) {
	got := ToTXT(sampleSegments(), false)
	want := "Hello\nWorld"

	if got != want {
		t.Errorf("TXT output mismatch: got %q, want %q", got, want)
	}
}

func TestToTXTWithTimestamps(t *testing.T) {
	segments := []Segment{
		{Start: 5.5, End: 12.0, Text: "Early"},
		{Start: 3661, End: 3670, Text: "Late"},
	}

	got := ToTXT(segments, true)
	want := "[00:05] Early\n[01:01:01] Late"

	if got != want {
		t.Errorf("Timestamped TXT mismatch: got %q, want %q", got, want)
	}
}

func TestToCSV(t *testing.T) {
	got, err := ToCSV(sampleSegments(), true, ',')
	if err != nil {
		t.Fatalf("ToCSV failed: %v", err)
	}

	want := "index,start,end,duration,text\n1,0.000,5.500,5.500,Hello\n2,5.500,12.000,6.500,World\n"
	if got != want {
		t.Errorf("CSV output mismatch:\ngot:\n%q\nwant:\n%q", got, want)
	}
}

func TestToCSVQuotesTextContainingDelimiter(t *testing.T) {
	segments := []Segment{{Start: 0, End: 1, Text: "Hello, world"}}

	got, err := ToCSV(segments, false, ',')
	if err != nil {
		t.Fatalf("ToCSV failed: %v", err)
	}

	want := "1,0.000,1.000,1.000,\"Hello, world\"\n"
	if got != want {
		t.Errorf("Quoted CSV mismatch: got %q, want %q", got, want)
	}
}

func TestToCSVCustomDelimiter(t *testing.T) {
	got, err := ToCSV(sampleSegments(), true, ';')
	if err != nil {
		t.Fatalf("ToCSV failed: %v", err)
	}

	if !strings.HasPrefix(got, "index;start;end;duration;text\n") {
		t.Errorf("Expected semicolon header, got %q", got)
	}
}

func TestToCSVEmpty(t *testing.T) {
	got, err := ToCSV(nil, true, ',')
	if err != nil {
		t.Fatalf("ToCSV failed: %v", err)
	}
	if got != "" {
		t.Errorf("Expected empty output even with header requested, got %q", got)
	}
}
