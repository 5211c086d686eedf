package whisper

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/scribeworks/scribe-api/pkg/transcript"
)

// StubEngine produces deterministic transcripts without loading a model.
// It lets the full pipeline run on machines with no python runtime.
type StubEngine struct{}

// NewStubEngine returns an Engine that generates placeholder transcripts
func NewStubEngine() *StubEngine {
	return &StubEngine{}
}

// Name returns the engine identifier
func (e *StubEngine) Name() string {
	return EngineStub
}

// Transcribe fabricates two segments spanning an estimated duration
func (e *StubEngine) Transcribe(ctx context.Context, req Request) (*Result, error) {
	info, err := os.Stat(req.AudioPath)
	if err != nil {
		return nil, fmt.Errorf("audio file: %w", err)
	}

	model := req.Model
	if model == "" {
		model = "stub"
	}
	language := req.Language
	if language == "" {
		language = "en"
	}

	// Duration estimate assumes 16 kHz mono 16-bit PCM, the format the
	// pipeline feeds engines.
	duration := float64(info.Size()) / 32000.0
	if duration < 1 {
		duration = 1
	}

	half := duration / 2
	segments := []transcript.Segment{
		{Start: 0, End: half, Text: fmt.Sprintf("[stub:%s] transcribed %s", model, filepath.Base(req.AudioPath))},
		{Start: half, End: duration, Text: fmt.Sprintf("[stub:%s] %d bytes of audio", model, info.Size())},
	}

	return &Result{
		Language:            language,
		LanguageProbability: 1.0,
		DurationSeconds:     duration,
		Segments:            segments,
	}, nil
}
