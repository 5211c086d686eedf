package cmd

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/scribeworks/scribe-api/internal/services/whisper"
	"github.com/scribeworks/scribe-api/pkg/config"
	"github.com/scribeworks/scribe-api/pkg/download"
	apperrors "github.com/scribeworks/scribe-api/pkg/errors"
	"github.com/scribeworks/scribe-api/pkg/ffmpeg"
	"github.com/scribeworks/scribe-api/pkg/transcript"
)

var (
	transcribeModel      string
	transcribeLanguage   string
	transcribeTask       string
	transcribeFormat     string
	transcribeOutput     string
	transcribeTimestamps bool
	transcribePretty     bool
)

// transcribeCmd runs one transcription end to end without the server or
// the job queue
var transcribeCmd = &cobra.Command{
	Use:   "transcribe [audio file or URL]",
	Short: "Transcribe an audio file from the command line",
	Long: `Transcribe a single audio file and print the result.

Runs the same pipeline as the server's job queue, synchronously and
without touching the database: probe the audio, convert it for the
engine when needed, transcribe, and render the requested format.
The argument may be a local path or an http(s) URL; remote audio is
fetched to a temporary file and removed afterwards.

Example:
  scribe-api transcribe interview.mp3
  scribe-api transcribe interview.mp3 --format srt --output interview.srt
  scribe-api transcribe https://example.com/episode.mp3 --model small
  scribe-api transcribe lecture.wav --task translate --format vtt`,
	Args: cobra.ExactArgs(1),
	RunE: runTranscribe,
}

func init() {
	rootCmd.AddCommand(transcribeCmd)

	transcribeCmd.Flags().StringVar(&transcribeModel, "model", "", "whisper model (overrides config)")
	transcribeCmd.Flags().StringVar(&transcribeLanguage, "language", "", "source language code, empty for auto-detect")
	transcribeCmd.Flags().StringVar(&transcribeTask, "task", "transcribe", "\"transcribe\" keeps the spoken language, \"translate\" targets English")
	transcribeCmd.Flags().StringVarP(&transcribeFormat, "format", "f", "txt", "output format: srt, vtt, json, txt, csv")
	transcribeCmd.Flags().StringVarP(&transcribeOutput, "output", "o", "", "write to a file instead of stdout")
	transcribeCmd.Flags().BoolVar(&transcribeTimestamps, "timestamps", false, "include timestamps in txt output")
	transcribeCmd.Flags().BoolVar(&transcribePretty, "pretty", true, "indent json output")
}

func runTranscribe(cmd *cobra.Command, args []string) error {
	cfg, err := config.GetConfig()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	task := strings.ToLower(strings.TrimSpace(transcribeTask))
	if task != "transcribe" && task != "translate" {
		return apperrors.ValidationError("task", fmt.Sprintf("%q is not \"transcribe\" or \"translate\"", transcribeTask))
	}

	format := strings.ToLower(strings.TrimSpace(transcribeFormat))
	if transcript.GetFormatInfo(format).Name == "" {
		return apperrors.UnsupportedFormatError(format, transcript.SupportedFormats())
	}

	model := transcribeModel
	if model == "" {
		model = cfg.Whisper.Model
	}
	if model == "" {
		model = "base"
	}
	manifest, err := whisper.LoadManifest(cfg.Whisper.ManifestPath)
	if err != nil {
		return fmt.Errorf("failed to load model manifest: %w", err)
	}
	if err := manifest.Validate(model); err != nil {
		return err
	}

	// Ctrl-C reaches the engine subprocess through this context
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	audioPath := args[0]
	if isRemoteURL(audioPath) {
		opts := download.DefaultOptions()
		if cfg.Storage.TempDir != "" {
			opts.TempDir = cfg.Storage.TempDir
		}
		if cfg.Storage.MaxFileSize > 0 {
			opts.MaxSize = cfg.Storage.MaxFileSize
		}

		result, err := download.NewDownloader(opts).DownloadToTemp(ctx, audioPath)
		if err != nil {
			return apperrors.Wrapf(err, apperrors.ErrCodeAudioProcessing, "downloading %s failed", audioPath)
		}
		defer func() {
			if err := download.CleanupTempFile(result.FilePath); err != nil {
				log.Printf("[WARNING] Failed to remove downloaded audio %s: %v", result.FilePath, err)
			}
		}()
		audioPath = result.FilePath
	} else if _, err := os.Stat(audioPath); err != nil {
		return apperrors.NotFound("audio file", audioPath).WithCause(err)
	}

	prober := ffmpeg.New(cfg.Processing.FFmpegPath, cfg.Processing.FFprobePath, cfg.Processing.FFmpegTimeout)

	metadata, err := prober.GetMetadata(ctx, audioPath)
	if err != nil {
		return apperrors.Wrapf(err, apperrors.ErrCodeAudioProcessing, "probing %s failed", filepath.Base(audioPath))
	}

	enginePath := audioPath
	if !ffmpeg.IsEngineFormat(metadata) {
		scratch, err := os.MkdirTemp(cfg.Storage.TempDir, "transcribe_*")
		if err != nil {
			return fmt.Errorf("creating scratch dir: %w", err)
		}
		defer func() {
			if err := os.RemoveAll(scratch); err != nil {
				log.Printf("[WARNING] Failed to remove converted audio dir %s: %v", scratch, err)
			}
		}()

		converted, err := prober.ConvertToWAV(ctx, audioPath, scratch)
		if err != nil {
			return apperrors.Wrapf(err, apperrors.ErrCodeAudioProcessing, "converting %s for the engine failed", filepath.Base(audioPath))
		}
		enginePath = converted

		log.Printf("[DEBUG] Converted %s (%s, %d Hz) for engine input",
			filepath.Base(audioPath), metadata.Codec, metadata.SampleRate)
	}

	engineCfg := whisper.Config{
		Engine:      cfg.Whisper.Engine,
		PythonPath:  cfg.Whisper.PythonPath,
		Model:       model,
		ModelDir:    cfg.Whisper.ModelDir,
		Device:      cfg.Whisper.Device,
		ComputeType: cfg.Whisper.ComputeType,
		BeamSize:    cfg.Whisper.BeamSize,
		Language:    cfg.Whisper.Language,
		Timeout:     cfg.Whisper.Timeout,
	}
	engine, err := whisper.NewEngine(engineCfg)
	if err != nil {
		return err
	}

	language := transcribeLanguage
	if language == "" {
		language = cfg.Whisper.Language
	}

	log.Printf("[INFO] Transcribing %s with %s (model %s, %.1fs audio)",
		filepath.Base(args[0]), engine.Name(), model, metadata.Duration)
	started := time.Now()

	result, err := engine.Transcribe(ctx, whisper.Request{
		AudioPath: enginePath,
		Model:     model,
		Task:      task,
		Language:  language,
	})
	if err != nil {
		return apperrors.Wrapf(err, apperrors.ErrCodeEngineFailed, "%s engine failed on %s", engine.Name(), filepath.Base(args[0]))
	}

	content, err := renderResult(result, format, model)
	if err != nil {
		return err
	}

	if transcribeOutput != "" {
		if err := os.WriteFile(transcribeOutput, []byte(content), 0o644); err != nil {
			return fmt.Errorf("writing %s: %w", transcribeOutput, err)
		}
		log.Printf("[INFO] Wrote %s transcript to %s", format, transcribeOutput)
	} else {
		fmt.Fprint(cmd.OutOrStdout(), content)
	}

	log.Printf("[INFO] Transcribed %s: %d segments, language %s (%.0f%%), %.1fs audio in %.1fs",
		filepath.Base(args[0]), len(result.Segments), result.Language,
		result.LanguageProbability*100, metadata.Duration, time.Since(started).Seconds())

	return nil
}

// renderResult mirrors the server's export conventions: vtt and json carry
// metadata, json carries the full text too
func renderResult(result *whisper.Result, format, model string) (string, error) {
	opts := make([]transcript.Option, 0, 3)
	switch format {
	case transcript.FormatVTT:
		opts = append(opts, transcript.WithMetadata(resultMetadata(result, model)))
	case transcript.FormatJSON:
		opts = append(opts,
			transcript.WithMetadata(resultMetadata(result, model)),
			transcript.WithText(transcript.JoinText(result.Segments)),
			transcript.WithPretty(transcribePretty))
	case transcript.FormatTXT:
		opts = append(opts, transcript.WithTimestamps(transcribeTimestamps))
	}

	return transcript.Convert(result.Segments, format, opts...)
}

func resultMetadata(result *whisper.Result, model string) map[string]interface{} {
	return map[string]interface{}{
		"language":         result.Language,
		"model":            model,
		"duration_seconds": result.DurationSeconds,
	}
}

func isRemoteURL(arg string) bool {
	return strings.HasPrefix(arg, "http://") || strings.HasPrefix(arg, "https://")
}
