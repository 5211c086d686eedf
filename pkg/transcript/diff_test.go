package transcript

import "testing"

func TestDiffText(t *testing.T) {
	diff := DiffText("A B C", "A B C D E")

	if diff.OldWordCount != 3 || diff.NewWordCount != 5 {
		t.Errorf("Word counts = %d/%d, want 3/5", diff.OldWordCount, diff.NewWordCount)
	}
	if diff.WordDiff != 2 {
		t.Errorf("WordDiff = %d, want 2", diff.WordDiff)
	}
	if diff.EstimatedChanges != 2 {
		t.Errorf("EstimatedChanges = %d, want 2", diff.EstimatedChanges)
	}
	if diff.OldLength != 5 || diff.NewLength != 9 || diff.CharDiff != 4 {
		t.Errorf("Char stats = %d/%d/%d, want 5/9/4", diff.OldLength, diff.NewLength, diff.CharDiff)
	}
}

func TestDiffTextShrinking(t *testing.T) {
	diff := DiffText("one two three four", "one")

	if diff.WordDiff != -3 {
		t.Errorf("WordDiff = %d, want -3", diff.WordDiff)
	}
	if diff.EstimatedChanges != 3 {
		t.Errorf("EstimatedChanges = %d, want 3", diff.EstimatedChanges)
	}
}

func TestDiffTextCountsRunesNotBytes(t *testing.T) {
	diff := DiffText("héllo", "héllo!")

	if diff.OldLength != 5 {
		t.Errorf("OldLength = %d, want 5 (rune count)", diff.OldLength)
	}
	if diff.CharDiff != 1 {
		t.Errorf("CharDiff = %d, want 1", diff.CharDiff)
	}
}

func TestDiffSegmentsIdentical(t *testing.T) {
	segments := sampleSegments()
	diff := DiffSegments(segments, segments)

	if diff.MatchingSegments != 2 {
		t.Errorf("MatchingSegments = %d, want 2", diff.MatchingSegments)
	}
	if diff.ChangedSegments != 0 {
		t.Errorf("ChangedSegments = %d, want 0", diff.ChangedSegments)
	}
	if diff.SimilarityPercent != 100 {
		t.Errorf("SimilarityPercent = %v, want 100", diff.SimilarityPercent)
	}
	if diff.OldDuration != 12.0 || diff.NewDuration != 12.0 || diff.DurationDiff != 0 {
		t.Errorf("Durations = %v/%v/%v, want 12/12/0", diff.OldDuration, diff.NewDuration, diff.DurationDiff)
	}
}

func TestDiffSegmentsPartialOverlap(t *testing.T) {
	oldSegments := []Segment{
		{Start: 0, End: 5, Text: "Hello"},
		{Start: 5, End: 10, Text: "World"},
		{Start: 10, End: 15, Text: "Goodbye"},
	}
	newSegments := []Segment{
		{Start: 0, End: 5, Text: "Hello"},
		{Start: 5, End: 10, Text: "Everyone"},
	}

	diff := DiffSegments(oldSegments, newSegments)

	if diff.MatchingSegments != 1 {
		t.Errorf("MatchingSegments = %d, want 1", diff.MatchingSegments)
	}
	// 3 + 2 - 2*1
	if diff.ChangedSegments != 3 {
		t.Errorf("ChangedSegments = %d, want 3", diff.ChangedSegments)
	}
	if diff.SegmentCountDiff != -1 {
		t.Errorf("SegmentCountDiff = %d, want -1", diff.SegmentCountDiff)
	}
	// 1/3 * 100
	if diff.SimilarityPercent < 33.3 || diff.SimilarityPercent > 33.4 {
		t.Errorf("SimilarityPercent = %v, want ~33.33", diff.SimilarityPercent)
	}
	if diff.OldDuration != 15 || diff.NewDuration != 10 || diff.DurationDiff != -5 {
		t.Errorf("Durations = %v/%v/%v, want 15/10/-5", diff.OldDuration, diff.NewDuration, diff.DurationDiff)
	}
}

func TestDiffSegmentsTimingShiftBreaksMatch(t *testing.T) {
	oldSegments := []Segment{{Start: 0, End: 5, Text: "Hello"}}
	newSegments := []Segment{{Start: 0.001, End: 5, Text: "Hello"}}

	diff := DiffSegments(oldSegments, newSegments)

	if diff.MatchingSegments != 0 {
		t.Errorf("Shifted start must not match, got %d matching", diff.MatchingSegments)
	}
	if diff.ChangedSegments != 2 {
		t.Errorf("ChangedSegments = %d, want 2", diff.ChangedSegments)
	}
}

func TestDiffSegmentsBothEmpty(t *testing.T) {
	diff := DiffSegments(nil, nil)

	if diff.SimilarityPercent != 0 {
		t.Errorf("SimilarityPercent = %v, want 0", diff.SimilarityPercent)
	}
	if diff.OldDuration != 0 || diff.NewDuration != 0 {
		t.Errorf("Durations should be 0, got %v/%v", diff.OldDuration, diff.NewDuration)
	}
	if diff.ChangedSegments != 0 {
		t.Errorf("ChangedSegments = %d, want 0", diff.ChangedSegments)
	}
}
