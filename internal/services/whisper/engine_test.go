package whisper

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/scribeworks/scribe-api/pkg/transcript"
)

func TestNewEngine(t *testing.T) {
	engine, err := NewEngine(Config{})
	require.NoError(t, err)
	assert.Equal(t, EngineFasterWhisper, engine.Name(), "empty engine name selects the real engine")

	engine, err = NewEngine(Config{Engine: EngineStub})
	require.NoError(t, err)
	assert.Equal(t, EngineStub, engine.Name())

	_, err = NewEngine(Config{Engine: "whisper-x"})
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "whisper-x")
}

func writeAudioFixture(t *testing.T, size int) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), "clip.wav")
	require.NoError(t, os.WriteFile(path, make([]byte, size), 0o644))
	return path
}

func TestStubEngine_Transcribe(t *testing.T) {
	engine := NewStubEngine()

	// 64000 bytes of 16 kHz mono 16-bit PCM is two seconds
	audioPath := writeAudioFixture(t, 64000)

	result, err := engine.Transcribe(context.Background(), Request{AudioPath: audioPath, Model: "base"})
	require.NoError(t, err)

	assert.Equal(t, "en", result.Language)
	assert.InDelta(t, 2.0, result.DurationSeconds, 0.001)
	require.Len(t, result.Segments, 2)
	assert.True(t, transcript.ValidateSegments(result.Segments))
	assert.Contains(t, result.Segments[0].Text, "clip.wav")
	assert.Contains(t, result.Segments[0].Text, "base")
}

func TestStubEngine_LanguageHint(t *testing.T) {
	engine := NewStubEngine()
	audioPath := writeAudioFixture(t, 1000)

	result, err := engine.Transcribe(context.Background(), Request{AudioPath: audioPath, Language: "it"})
	require.NoError(t, err)
	assert.Equal(t, "it", result.Language)
}

func TestStubEngine_MissingAudio(t *testing.T) {
	engine := NewStubEngine()

	_, err := engine.Transcribe(context.Background(), Request{AudioPath: filepath.Join(t.TempDir(), "gone.wav")})
	assert.Error(t, err)
}

// fakeInterpreter stands in for python3: it ignores its arguments and
// behaves per the inlined shell body.
func fakeInterpreter(t *testing.T, body string) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), "fake-python")
	require.NoError(t, os.WriteFile(path, []byte("#!/bin/sh\n"+body+"\n"), 0o755))
	return path
}

func TestFasterWhisperEngine_Transcribe(t *testing.T) {
	audioPath := writeAudioFixture(t, 1000)

	payload := `{"language":"en","language_probability":0.97,"duration":5.5,` +
		`"segments":[{"start":0,"end":3,"text":"  Hello there  "},` +
		`{"start":3,"end":4.2,"text":"   "},` +
		`{"start":4.2,"end":5.5,"text":"General Kenobi"}]}`

	engine := NewFasterWhisperEngine(Config{
		PythonPath: fakeInterpreter(t, "echo '"+payload+"'"),
	})

	result, err := engine.Transcribe(context.Background(), Request{AudioPath: audioPath})
	require.NoError(t, err)

	assert.Equal(t, "en", result.Language)
	assert.InDelta(t, 0.97, result.LanguageProbability, 0.001)
	assert.InDelta(t, 5.5, result.DurationSeconds, 0.001)

	// Whitespace-only segments are dropped, text is trimmed
	require.Len(t, result.Segments, 2)
	assert.Equal(t, "Hello there", result.Segments[0].Text)
	assert.Equal(t, "General Kenobi", result.Segments[1].Text)
}

func TestFasterWhisperEngine_HelperFailure(t *testing.T) {
	audioPath := writeAudioFixture(t, 1000)

	engine := NewFasterWhisperEngine(Config{
		PythonPath: fakeInterpreter(t, `echo "CUDA out of memory" >&2; exit 7`),
	})

	_, err := engine.Transcribe(context.Background(), Request{AudioPath: audioPath})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "CUDA out of memory")
	assert.Contains(t, err.Error(), "7")
}

func TestFasterWhisperEngine_BadOutput(t *testing.T) {
	audioPath := writeAudioFixture(t, 1000)

	engine := NewFasterWhisperEngine(Config{
		PythonPath: fakeInterpreter(t, `echo "not json"`),
	})

	_, err := engine.Transcribe(context.Background(), Request{AudioPath: audioPath})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "parse helper output")
}

func TestFasterWhisperEngine_MissingAudio(t *testing.T) {
	engine := NewFasterWhisperEngine(Config{})

	_, err := engine.Transcribe(context.Background(), Request{AudioPath: filepath.Join(t.TempDir(), "gone.wav")})
	assert.Error(t, err)
}

func TestFasterWhisperEngine_BuildArgs(t *testing.T) {
	t.Run("config defaults", func(t *testing.T) {
		engine := NewFasterWhisperEngine(Config{})
		args := engine.buildArgs("/tmp/helper.py", Request{AudioPath: "a.wav"})

		joined := strings.Join(args, " ")
		assert.Contains(t, joined, "--model base")
		assert.Contains(t, joined, "--task transcribe")
		assert.Contains(t, joined, "--device auto")
		assert.Contains(t, joined, "--compute-type float16")
		assert.Contains(t, joined, "--beam-size 5")
		assert.NotContains(t, joined, "--language")
		assert.NotContains(t, joined, "--model-dir")
	})

	t.Run("request overrides", func(t *testing.T) {
		engine := NewFasterWhisperEngine(Config{
			Model:    "small",
			Language: "it",
			ModelDir: "/opt/models",
		})
		args := engine.buildArgs("/tmp/helper.py", Request{
			AudioPath: "a.wav",
			Model:     "large-v3",
			Task:      "translate",
			BeamSize:  2,
		})

		joined := strings.Join(args, " ")
		assert.Contains(t, joined, "--model large-v3")
		assert.Contains(t, joined, "--task translate")
		assert.Contains(t, joined, "--beam-size 2")
		assert.Contains(t, joined, "--language it")
		assert.Contains(t, joined, "--model-dir /opt/models")
	})
}
