// Package transcript renders transcription segments to subtitle and text
// formats, parses them back, and computes version diff statistics.
package transcript

import (
	"fmt"
	"strings"
)

// Segment is a single timed span of transcribed speech. Timestamps are
// seconds from the start of the audio.
type Segment struct {
	Start float64 `json:"start"`
	End   float64 `json:"end"`
	Text  string  `json:"text"`
}

// NewSegment builds a Segment, rejecting negative or inverted timestamps.
func NewSegment(start, end float64, text string) (Segment, error) {
	if start < 0 {
		return Segment{}, fmt.Errorf("segment start %f is negative", start)
	}
	if end < 0 {
		return Segment{}, fmt.Errorf("segment end %f is negative", end)
	}
	if end < start {
		return Segment{}, fmt.Errorf("segment end %f precedes start %f", end, start)
	}
	return Segment{Start: start, End: end, Text: text}, nil
}

// Duration returns the span length in seconds.
func (s Segment) Duration() float64 {
	return s.End - s.Start
}

// ValidateSegments reports whether every segment has non-negative
// timestamps with end at or after start. It never returns an error; an
// empty list is valid.
func ValidateSegments(segments []Segment) bool {
	for _, seg := range segments {
		if seg.Start < 0 || seg.End < 0 || seg.End < seg.Start {
			return false
		}
	}
	return true
}

// Document is a parsed transcript: its segments, the joined text, and any
// metadata carried by the source format.
type Document struct {
	Segments []Segment
	Text     string
	Metadata map[string]interface{}
}

// Duration returns the end timestamp of the last segment, or 0 when the
// document has none.
func (d *Document) Duration() float64 {
	if len(d.Segments) == 0 {
		return 0
	}
	return d.Segments[len(d.Segments)-1].End
}

// JoinText concatenates segment texts with single spaces, skipping
// segments that are empty after trimming.
func JoinText(segments []Segment) string {
	parts := make([]string, 0, len(segments))
	for _, seg := range segments {
		text := strings.TrimSpace(seg.Text)
		if text == "" {
			continue
		}
		parts = append(parts, text)
	}
	return strings.Join(parts, " ")
}
