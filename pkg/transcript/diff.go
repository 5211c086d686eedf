package transcript

import (
	"strings"
	"unicode/utf8"
)

// TextDiff summarizes how two transcript texts differ. Lengths count
// characters, word counts come from whitespace splitting, and
// EstimatedChanges is the absolute word-count delta. It is a coarse
// heuristic, deliberately not an edit distance.
type TextDiff struct {
	OldLength        int `json:"old_length"`
	NewLength        int `json:"new_length"`
	CharDiff         int `json:"char_diff"`
	OldWordCount     int `json:"old_word_count"`
	NewWordCount     int `json:"new_word_count"`
	WordDiff         int `json:"word_diff"`
	EstimatedChanges int `json:"estimated_changes"`
}

// SegmentDiff summarizes how two segment lists differ. Durations are the
// end timestamp of each list's last segment. Segments match only on an
// exact (start, text) pair; any timing or text drift counts both sides as
// changed.
type SegmentDiff struct {
	OldSegmentCount   int     `json:"old_segment_count"`
	NewSegmentCount   int     `json:"new_segment_count"`
	SegmentCountDiff  int     `json:"segment_diff"`
	OldDuration       float64 `json:"old_duration"`
	NewDuration       float64 `json:"new_duration"`
	DurationDiff      float64 `json:"duration_diff"`
	MatchingSegments  int     `json:"matching_segments"`
	ChangedSegments   int     `json:"changed_segments"`
	SimilarityPercent float64 `json:"similarity_percent"`
}

// DiffText computes text-level statistics between two transcript versions.
func DiffText(oldText, newText string) TextDiff {
	oldWords := countWords(oldText)
	newWords := countWords(newText)
	oldChars := utf8.RuneCountInString(oldText)
	newChars := utf8.RuneCountInString(newText)

	wordDiff := newWords - oldWords
	estimated := wordDiff
	if estimated < 0 {
		estimated = -estimated
	}

	return TextDiff{
		OldLength:        oldChars,
		NewLength:        newChars,
		CharDiff:         newChars - oldChars,
		OldWordCount:     oldWords,
		NewWordCount:     newWords,
		WordDiff:         wordDiff,
		EstimatedChanges: estimated,
	}
}

// segmentKey identifies a segment for matching purposes.
type segmentKey struct {
	start float64
	text  string
}

// DiffSegments computes segment-level statistics between two versions.
func DiffSegments(oldSegments, newSegments []Segment) SegmentDiff {
	oldCount := len(oldSegments)
	newCount := len(newSegments)

	var oldDuration, newDuration float64
	if oldCount > 0 {
		oldDuration = oldSegments[oldCount-1].End
	}
	if newCount > 0 {
		newDuration = newSegments[newCount-1].End
	}

	oldKeys := make(map[segmentKey]struct{}, oldCount)
	for _, seg := range oldSegments {
		oldKeys[segmentKey{seg.Start, seg.Text}] = struct{}{}
	}

	matching := 0
	seen := make(map[segmentKey]struct{}, newCount)
	for _, seg := range newSegments {
		key := segmentKey{seg.Start, seg.Text}
		if _, dup := seen[key]; dup {
			continue
		}
		seen[key] = struct{}{}
		if _, ok := oldKeys[key]; ok {
			matching++
		}
	}

	similarity := 0.0
	if larger := maxInt(oldCount, newCount); larger > 0 {
		similarity = float64(matching) / float64(larger) * 100
	}

	return SegmentDiff{
		OldSegmentCount:   oldCount,
		NewSegmentCount:   newCount,
		SegmentCountDiff:  newCount - oldCount,
		OldDuration:       oldDuration,
		NewDuration:       newDuration,
		DurationDiff:      newDuration - oldDuration,
		MatchingSegments:  matching,
		ChangedSegments:   oldCount + newCount - 2*matching,
		SimilarityPercent: similarity,
	}
}

// countWords counts whitespace-separated words.
func countWords(text string) int {
	return len(strings.Fields(text))
}

func maxInt(a, b int) int {
	if a > b {
		return a
	}
	return b
}
