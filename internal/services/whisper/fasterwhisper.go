package whisper

import (
	"context"
	_ "embed"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"os"
	"os/exec"
	"strconv"
	"strings"

	"github.com/scribeworks/scribe-api/pkg/transcript"
)

//go:embed assets/faster_whisper.py
var helperScript []byte

// FasterWhisperEngine shells out to a python helper that drives
// faster-whisper. The helper is embedded in the binary and written to a
// temp file per invocation, so deployments need a python runtime but no
// extra files.
type FasterWhisperEngine struct {
	cfg Config
}

// NewFasterWhisperEngine creates the engine, filling config defaults
func NewFasterWhisperEngine(cfg Config) *FasterWhisperEngine {
	if cfg.PythonPath == "" {
		cfg.PythonPath = "python3"
	}
	if cfg.Model == "" {
		cfg.Model = "base"
	}
	if cfg.Device == "" {
		cfg.Device = "auto"
	}
	if cfg.ComputeType == "" {
		cfg.ComputeType = "float16"
	}
	if cfg.BeamSize <= 0 {
		cfg.BeamSize = 5
	}
	return &FasterWhisperEngine{cfg: cfg}
}

// Name returns the engine identifier
func (e *FasterWhisperEngine) Name() string {
	return EngineFasterWhisper
}

// helperOutput mirrors the JSON document the python bridge prints
type helperOutput struct {
	Language            string  `json:"language"`
	LanguageProbability float64 `json:"language_probability"`
	Duration            float64 `json:"duration"`
	Segments            []struct {
		Start float64 `json:"start"`
		End   float64 `json:"end"`
		Text  string  `json:"text"`
	} `json:"segments"`
}

// Transcribe runs the helper and parses its JSON output
func (e *FasterWhisperEngine) Transcribe(ctx context.Context, req Request) (*Result, error) {
	if _, err := os.Stat(req.AudioPath); err != nil {
		return nil, fmt.Errorf("audio file: %w", err)
	}

	// Each invocation gets its own copy so concurrent workers cannot
	// remove a script another run is still loading.
	script, err := os.CreateTemp("", "scribe_faster_whisper_*.py")
	if err != nil {
		return nil, fmt.Errorf("write helper script: %w", err)
	}
	scriptPath := script.Name()
	defer os.Remove(scriptPath)

	_, err = script.Write(helperScript)
	if closeErr := script.Close(); err == nil {
		err = closeErr
	}
	if err != nil {
		return nil, fmt.Errorf("write helper script: %w", err)
	}

	if e.cfg.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, e.cfg.Timeout)
		defer cancel()
	}

	args := e.buildArgs(scriptPath, req)
	log.Printf("[DEBUG] Running faster-whisper on %s (model %s)", req.AudioPath, argValue(args, "--model"))

	cmd := exec.CommandContext(ctx, e.cfg.PythonPath, args...)
	out, err := cmd.Output()
	if err != nil {
		if errors.Is(ctx.Err(), context.DeadlineExceeded) {
			return nil, fmt.Errorf("engine timed out after %s", e.cfg.Timeout)
		}
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			return nil, fmt.Errorf("faster-whisper exited with %d: %s",
				exitErr.ExitCode(), strings.TrimSpace(string(exitErr.Stderr)))
		}
		return nil, fmt.Errorf("run helper: %w", err)
	}

	var parsed helperOutput
	if err := json.Unmarshal(out, &parsed); err != nil {
		return nil, fmt.Errorf("parse helper output: %w", err)
	}

	result := &Result{
		Language:            parsed.Language,
		LanguageProbability: parsed.LanguageProbability,
		DurationSeconds:     parsed.Duration,
	}
	for _, s := range parsed.Segments {
		text := strings.TrimSpace(s.Text)
		if text == "" {
			continue
		}
		result.Segments = append(result.Segments, transcript.Segment{
			Start: s.Start,
			End:   s.End,
			Text:  text,
		})
	}
	return result, nil
}

// buildArgs merges per-request values over the configured defaults
func (e *FasterWhisperEngine) buildArgs(scriptPath string, req Request) []string {
	model := req.Model
	if model == "" {
		model = e.cfg.Model
	}
	task := req.Task
	if task == "" {
		task = "transcribe"
	}
	device := req.Device
	if device == "" {
		device = e.cfg.Device
	}
	computeType := req.ComputeType
	if computeType == "" {
		computeType = e.cfg.ComputeType
	}
	beamSize := req.BeamSize
	if beamSize <= 0 {
		beamSize = e.cfg.BeamSize
	}
	language := req.Language
	if language == "" {
		language = e.cfg.Language
	}

	args := []string{
		scriptPath,
		"--audio", req.AudioPath,
		"--model", model,
		"--task", task,
		"--device", device,
		"--compute-type", computeType,
		"--beam-size", strconv.Itoa(beamSize),
	}
	if language != "" {
		args = append(args, "--language", language)
	}
	if e.cfg.ModelDir != "" {
		args = append(args, "--model-dir", e.cfg.ModelDir)
	}
	return args
}

// argValue finds the value following a flag in an argument list
func argValue(args []string, flag string) string {
	for i, arg := range args {
		if arg == flag && i+1 < len(args) {
			return args[i+1]
		}
	}
	return ""
}
