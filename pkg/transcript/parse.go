package transcript

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

var (
	srtTimestampLine = regexp.MustCompile(`(\d{2}:\d{2}:\d{2},\d{3})\s*-->\s*(\d{2}:\d{2}:\d{2},\d{3})`)
	vttTimestampLine = regexp.MustCompile(`(\d{2}:\d{2}:\d{2}\.\d{3})\s*-->\s*(\d{2}:\d{2}:\d{2}\.\d{3})`)
	sequenceLine     = regexp.MustCompile(`^\d+$`)
	voiceTag         = regexp.MustCompile(`<v[^>]*>`)
)

// Parse parses subtitle or transcript content in the named format.
// Supported: srt, vtt, json (whisper-json).
func Parse(content, format string) (*Document, error) {
	switch strings.ToLower(strings.TrimSpace(format)) {
	case FormatSRT:
		return ParseSRT(content), nil
	case FormatVTT:
		return ParseVTT(content), nil
	case FormatJSON:
		return FromJSON(content)
	default:
		return nil, fmt.Errorf("%w: %q (parseable: srt, vtt, json)", ErrUnsupportedFormat, format)
	}
}

// ParseSRT extracts segments from SubRip content. Sequence numbers are
// ignored; multi-line cue text is joined with spaces.
func ParseSRT(content string) *Document {
	doc := &Document{Segments: []Segment{}, Metadata: map[string]interface{}{}}

	var current *Segment
	var textBuilder strings.Builder
	inText := false

	flush := func() {
		if current != nil && textBuilder.Len() > 0 {
			current.Text = strings.TrimSpace(textBuilder.String())
			doc.Segments = append(doc.Segments, *current)
		}
		textBuilder.Reset()
		current = nil
		inText = false
	}

	for _, line := range strings.Split(content, "\n") {
		line = strings.TrimSpace(line)

		if line == "" {
			flush()
			continue
		}
		if sequenceLine.MatchString(line) && !inText {
			continue
		}

		if matches := srtTimestampLine.FindStringSubmatch(line); matches != nil {
			flush()
			current = &Segment{
				Start: parseClockTimestamp(matches[1]),
				End:   parseClockTimestamp(matches[2]),
			}
			inText = true
			continue
		}

		if inText && current != nil {
			if textBuilder.Len() > 0 {
				textBuilder.WriteString(" ")
			}
			textBuilder.WriteString(line)
		}
	}
	flush()

	doc.Text = JoinText(doc.Segments)
	return doc
}

// ParseVTT extracts segments from WebVTT content. Header lines, NOTE
// blocks, and cue styling tags are dropped.
func ParseVTT(content string) *Document {
	doc := &Document{Segments: []Segment{}, Metadata: map[string]interface{}{}}

	var current *Segment
	var textBuilder strings.Builder

	flush := func() {
		if current != nil && textBuilder.Len() > 0 {
			current.Text = strings.TrimSpace(textBuilder.String())
			doc.Segments = append(doc.Segments, *current)
		}
		textBuilder.Reset()
		current = nil
	}

	for _, line := range strings.Split(content, "\n") {
		line = strings.TrimSpace(line)

		if line == "" || strings.HasPrefix(line, "WEBVTT") || strings.HasPrefix(line, "NOTE") {
			continue
		}

		if matches := vttTimestampLine.FindStringSubmatch(line); matches != nil {
			flush()
			current = &Segment{
				Start: parseClockTimestamp(matches[1]),
				End:   parseClockTimestamp(matches[2]),
			}
			continue
		}

		if current != nil && !strings.Contains(line, "-->") {
			if textBuilder.Len() > 0 {
				textBuilder.WriteString(" ")
			}
			textBuilder.WriteString(stripVTTTags(line))
		}
	}
	flush()

	doc.Text = JoinText(doc.Segments)
	return doc
}

// DetectFormat guesses a transcript format from a filename and the content
// itself. Returns an empty string when nothing recognizable is found.
func DetectFormat(filename, content string) string {
	lower := strings.ToLower(filename)
	switch {
	case strings.HasSuffix(lower, ".srt"):
		return FormatSRT
	case strings.HasSuffix(lower, ".vtt"):
		return FormatVTT
	case strings.HasSuffix(lower, ".json"):
		return FormatJSON
	}

	head := strings.TrimSpace(content)
	if len(head) > 1000 {
		head = head[:1000]
	}
	switch {
	case strings.HasPrefix(head, "WEBVTT"):
		return FormatVTT
	case strings.Contains(head, "-->"):
		return FormatSRT
	case strings.HasPrefix(head, "{") || strings.HasPrefix(head, "["):
		return FormatJSON
	}
	return ""
}

// parseClockTimestamp converts HH:MM:SS,mmm or HH:MM:SS.mmm to seconds.
// The input already matched a timestamp regexp, so parse errors collapse
// to zero components.
func parseClockTimestamp(ts string) float64 {
	ts = strings.Replace(ts, ",", ".", 1)
	parts := strings.Split(ts, ":")
	if len(parts) != 3 {
		return 0
	}

	hours, _ := strconv.Atoi(parts[0])
	minutes, _ := strconv.Atoi(parts[1])
	seconds, _ := strconv.ParseFloat(parts[2], 64)

	return float64(hours)*3600 + float64(minutes)*60 + seconds
}

// stripVTTTags removes cue styling like <v Speaker>, <i>, and <b>.
func stripVTTTags(text string) string {
	text = voiceTag.ReplaceAllString(text, "")
	for _, tag := range []string{"</v>", "<i>", "</i>", "<b>", "</b>", "<u>", "</u>"} {
		text = strings.ReplaceAll(text, tag, "")
	}
	return strings.TrimSpace(text)
}
