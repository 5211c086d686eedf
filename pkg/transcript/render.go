package transcript

import (
	"encoding/csv"
	"fmt"
	"math"
	"strconv"
	"strings"
)

// timestampParts splits seconds into clock components. Milliseconds are
// rounded from the fractional part; the other components use integer
// division so every renderer slices time identically.
func timestampParts(seconds float64) (hours, minutes, secs, millis int) {
	total := int(seconds)
	hours = total / 3600
	minutes = (total % 3600) / 60
	secs = total % 60
	millis = int(math.Round(math.Mod(seconds, 1) * 1000))
	return hours, minutes, secs, millis
}

// srtTimestamp formats seconds as HH:MM:SS,mmm.
func srtTimestamp(seconds float64) string {
	h, m, s, ms := timestampParts(seconds)
	return fmt.Sprintf("%02d:%02d:%02d,%03d", h, m, s, ms)
}

// vttTimestamp formats seconds as HH:MM:SS.mmm.
func vttTimestamp(seconds float64) string {
	h, m, s, ms := timestampParts(seconds)
	return fmt.Sprintf("%02d:%02d:%02d.%03d", h, m, s, ms)
}

// humanTimestamp formats seconds as MM:SS, or HH:MM:SS once the hour is
// non-zero.
func humanTimestamp(seconds float64) string {
	h, m, s, _ := timestampParts(seconds)
	if h > 0 {
		return fmt.Sprintf("%02d:%02d:%02d", h, m, s)
	}
	return fmt.Sprintf("%02d:%02d", m, s)
}

// ToSRT renders segments as SubRip subtitles: sequence number, timestamp
// line, text, blank separator. Segments whose text is empty after trimming
// are skipped and do not consume a sequence number.
func ToSRT(segments []Segment) string {
	if len(segments) == 0 {
		return ""
	}

	var lines []string
	index := 1
	for _, seg := range segments {
		text := strings.TrimSpace(seg.Text)
		if text == "" {
			continue
		}
		lines = append(lines,
			strconv.Itoa(index),
			srtTimestamp(seg.Start)+" --> "+srtTimestamp(seg.End),
			text,
			"",
		)
		index++
	}

	return strings.Join(lines, "\n")
}

// ToVTT renders segments as WebVTT. Metadata may contribute optional
// Language and Title header lines. Cues carry no sequence numbers. An
// empty segment list still yields the bare header.
func ToVTT(segments []Segment, metadata map[string]interface{}) string {
	if len(segments) == 0 {
		return "WEBVTT\n\n"
	}

	lines := []string{"WEBVTT"}
	if metadata != nil {
		if language, ok := metadata["language"]; ok {
			lines = append(lines, fmt.Sprintf("Language: %v", language))
		}
		if title, ok := metadata["title"]; ok {
			lines = append(lines, fmt.Sprintf("Title: %v", title))
		}
	}
	lines = append(lines, "")

	for _, seg := range segments {
		text := strings.TrimSpace(seg.Text)
		if text == "" {
			continue
		}
		lines = append(lines,
			vttTimestamp(seg.Start)+" --> "+vttTimestamp(seg.End),
			text,
			"",
		)
	}

	return strings.Join(lines, "\n")
}

// ToTXT renders segment texts one per line. With timestamps enabled each
// line is prefixed "[MM:SS] " (or "[HH:MM:SS] " past the first hour).
func ToTXT(segments []Segment, includeTimestamps bool) string {
	if len(segments) == 0 {
		return ""
	}

	var lines []string
	for _, seg := range segments {
		text := strings.TrimSpace(seg.Text)
		if text == "" {
			continue
		}
		if includeTimestamps {
			lines = append(lines, fmt.Sprintf("[%s] %s", humanTimestamp(seg.Start), text))
		} else {
			lines = append(lines, text)
		}
	}

	return strings.Join(lines, "\n")
}

// ToCSV renders segments as index,start,end,duration,text rows with
// three-decimal timestamps and minimal quoting. Skipped (empty-text)
// segments do not consume an index. An empty segment list yields an empty
// string even when the header is requested.
func ToCSV(segments []Segment, includeHeader bool, delimiter rune) (string, error) {
	if len(segments) == 0 {
		return "", nil
	}

	var buf strings.Builder
	writer := csv.NewWriter(&buf)
	if delimiter != 0 {
		writer.Comma = delimiter
	}

	if includeHeader {
		if err := writer.Write([]string{"index", "start", "end", "duration", "text"}); err != nil {
			return "", fmt.Errorf("writing CSV header: %w", err)
		}
	}

	index := 1
	for _, seg := range segments {
		text := strings.TrimSpace(seg.Text)
		if text == "" {
			continue
		}
		record := []string{
			strconv.Itoa(index),
			fmt.Sprintf("%.3f", seg.Start),
			fmt.Sprintf("%.3f", seg.End),
			fmt.Sprintf("%.3f", seg.End-seg.Start),
			text,
		}
		if err := writer.Write(record); err != nil {
			return "", fmt.Errorf("writing CSV row %d: %w", index, err)
		}
		index++
	}

	writer.Flush()
	if err := writer.Error(); err != nil {
		return "", fmt.Errorf("flushing CSV output: %w", err)
	}

	return buf.String(), nil
}
