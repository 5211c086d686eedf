package transcript

import (
	"testing"
)

func TestParseSRT(t *testing.T) {
	content := `1
00:00:00,000 --> 00:00:03,000
Welcome to the recording.

2
00:00:03,000 --> 00:00:06,500
Today we cover transcript versioning.

3
00:00:06,500 --> 00:00:10,000
Let's get started.`

	doc := ParseSRT(content)

	if len(doc.Segments) != 3 {
		t.Fatalf("Expected 3 segments, got %d", len(doc.Segments))
	}
	if doc.Segments[0].Text != "Welcome to the recording." {
		t.Errorf("First segment text mismatch: %q", doc.Segments[0].Text)
	}
	if doc.Segments[1].End != 6.5 {
		t.Errorf("Second segment end = %v, want 6.5", doc.Segments[1].End)
	}
	if doc.Duration() != 10 {
		t.Errorf("Duration = %v, want 10", doc.Duration())
	}
	if doc.Text != "Welcome to the recording. Today we cover transcript versioning. Let's get started." {
		t.Errorf("Joined text mismatch: %q", doc.Text)
	}
}

func TestParseSRTMultilineCue(t *testing.T) {
	content := `1
00:00:00,000 --> 00:00:03,000
First line
second line

2
00:00:03,000 --> 00:00:05,000
Next cue`

	doc := ParseSRT(content)

	if len(doc.Segments) != 2 {
		t.Fatalf("Expected 2 segments, got %d", len(doc.Segments))
	}
	if doc.Segments[0].Text != "First line second line" {
		t.Errorf("Multi-line cue should join with spaces: %q", doc.Segments[0].Text)
	}
}

func TestParseVTT(t *testing.T) {
	content := `WEBVTT
Language: en

NOTE internal comment

00:00:00.000 --> 00:00:03.000
<v Speaker>Welcome to the recording.</v>

00:00:03.000 --> 00:00:06.000
Today we cover <i>versioning</i>.`

	doc := ParseVTT(content)

	if len(doc.Segments) != 2 {
		t.Fatalf("Expected 2 segments, got %d", len(doc.Segments))
	}
	if doc.Segments[0].Text != "Welcome to the recording." {
		t.Errorf("Voice tags should be stripped: %q", doc.Segments[0].Text)
	}
	if doc.Segments[1].Text != "Today we cover versioning." {
		t.Errorf("Styling tags should be stripped: %q", doc.Segments[1].Text)
	}
}

func TestRenderParseRoundTrip(t *testing.T) {
	segments := []Segment{
		{Start: 0, End: 5.5, Text: "Hello"},
		{Start: 5.5, End: 12, Text: "World"},
	}

	srtDoc := ParseSRT(ToSRT(segments))
	if len(srtDoc.Segments) != 2 {
		t.Fatalf("SRT round trip lost segments: %d", len(srtDoc.Segments))
	}
	for i, seg := range segments {
		if srtDoc.Segments[i] != seg {
			t.Errorf("SRT round trip segment %d = %+v, want %+v", i, srtDoc.Segments[i], seg)
		}
	}

	vttDoc := ParseVTT(ToVTT(segments, nil))
	if len(vttDoc.Segments) != 2 {
		t.Fatalf("VTT round trip lost segments: %d", len(vttDoc.Segments))
	}
	for i, seg := range segments {
		if vttDoc.Segments[i] != seg {
			t.Errorf("VTT round trip segment %d = %+v, want %+v", i, vttDoc.Segments[i], seg)
		}
	}
}

func TestParseDispatch(t *testing.T) {
	doc, err := Parse("1\n00:00:00,000 --> 00:00:01,000\nHi\n", "SRT")
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}
	if len(doc.Segments) != 1 {
		t.Errorf("Expected 1 segment, got %d", len(doc.Segments))
	}

	if _, err := Parse("whatever", "csv"); err == nil {
		t.Error("Expected error for non-parseable format")
	}
}

func TestDetectFormat(t *testing.T) {
	tests := []struct {
		filename string
		content  string
		want     string
	}{
		{"meeting.srt", "", FormatSRT},
		{"meeting.vtt", "", FormatVTT},
		{"meeting.json", "", FormatJSON},
		{"upload", "WEBVTT\n\n00:00:00.000 --> 00:00:03.000", FormatVTT},
		{"upload", "1\n00:00:00,000 --> 00:00:03,000\nHi", FormatSRT},
		{"upload", `{"format":"whisper-json"}`, FormatJSON},
		{"upload", "just words", ""},
	}

	for _, tt := range tests {
		if got := DetectFormat(tt.filename, tt.content); got != tt.want {
			t.Errorf("DetectFormat(%q, %.20q) = %q, want %q", tt.filename, tt.content, got, tt.want)
		}
	}
}
