// Package whisper abstracts the speech-to-text engine behind a small
// interface so workers can run real transcriptions in production and a
// deterministic stub in development and tests.
package whisper

import (
	"context"
	"fmt"
	"time"

	"github.com/scribeworks/scribe-api/pkg/transcript"
)

// Engine names accepted by the factory
const (
	EngineFasterWhisper = "faster-whisper"
	EngineStub          = "stub"
)

// Config holds engine settings. Zero values fall back to sensible
// defaults in the engine constructors.
type Config struct {
	Engine      string
	PythonPath  string
	Model       string
	ModelDir    string
	Device      string
	ComputeType string
	BeamSize    int
	Language    string
	Timeout     time.Duration
}

// Request describes one transcription run. Empty fields fall back to the
// engine's configured defaults.
type Request struct {
	AudioPath   string
	Model       string
	Task        string // "transcribe" keeps the spoken language, "translate" targets English
	Language    string // empty means auto-detect
	Device      string
	ComputeType string
	BeamSize    int
}

// Result is what an engine run produces
type Result struct {
	Language            string               `json:"language"`
	LanguageProbability float64              `json:"language_probability"`
	DurationSeconds     float64              `json:"duration_seconds"`
	Segments            []transcript.Segment `json:"segments"`
}

// Engine runs speech-to-text over a prepared audio file
type Engine interface {
	Transcribe(ctx context.Context, req Request) (*Result, error)
	Name() string
}

// NewEngine returns the engine implementation named by the config
func NewEngine(cfg Config) (Engine, error) {
	switch cfg.Engine {
	case "", EngineFasterWhisper:
		return NewFasterWhisperEngine(cfg), nil
	case EngineStub:
		return NewStubEngine(), nil
	default:
		return nil, fmt.Errorf("unknown engine %q (available: %s, %s)", cfg.Engine, EngineFasterWhisper, EngineStub)
	}
}
