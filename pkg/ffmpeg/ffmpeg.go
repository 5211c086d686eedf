package ffmpeg

import (
	"bytes"
	"context"
	"fmt"
	"log"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"time"
)

// FFmpeg wraps ffmpeg and ffprobe functionality
type FFmpeg struct {
	ffmpegPath  string
	ffprobePath string
	timeout     time.Duration
}

// New creates a new FFmpeg instance
func New(ffmpegPath, ffprobePath string, timeout time.Duration) *FFmpeg {
	return &FFmpeg{
		ffmpegPath:  ffmpegPath,
		ffprobePath: ffprobePath,
		timeout:     timeout,
	}
}

// ValidateBinaries checks if ffmpeg and ffprobe are available
func (f *FFmpeg) ValidateBinaries() error {
	// Check ffmpeg
	if _, err := exec.LookPath(f.ffmpegPath); err != nil {
		return fmt.Errorf("%w: %s", ErrFFmpegNotFound, f.ffmpegPath)
	}

	// Check ffprobe
	if _, err := exec.LookPath(f.ffprobePath); err != nil {
		return fmt.Errorf("%w: %s", ErrFFprobeNotFound, f.ffprobePath)
	}

	return nil
}

// ConvertToWAV transcodes an audio file to 16 kHz mono 16-bit PCM WAV and
// returns the path of the converted file. The output lands in outputDir,
// or next to the input when outputDir is empty. Files already in the
// engine format should be detected with IsEngineFormat and skipped; this
// always transcodes.
func (f *FFmpeg) ConvertToWAV(ctx context.Context, inputPath, outputDir string) (string, error) {
	if _, err := os.Stat(inputPath); err != nil {
		return "", NewProcessingError("wav_conversion", inputPath, err, "")
	}

	if outputDir == "" {
		outputDir = filepath.Dir(inputPath)
	} else if err := os.MkdirAll(outputDir, 0o755); err != nil {
		return "", NewProcessingError("wav_conversion", inputPath, err, "")
	}

	stem := strings.TrimSuffix(filepath.Base(inputPath), filepath.Ext(inputPath))
	outputPath := filepath.Join(outputDir, stem+".wav")
	if outputPath == inputPath {
		// Never transcode onto the input
		outputPath = filepath.Join(outputDir, stem+"_16k.wav")
	}

	if f.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, f.timeout)
		defer cancel()
	}

	args := []string{
		"-i", inputPath,
		"-ar", fmt.Sprintf("%d", TargetSampleRate),
		"-ac", fmt.Sprintf("%d", TargetChannels),
		"-c:a", TargetCodec,
		"-y", // Overwrite output
		outputPath,
	}

	log.Printf("[DEBUG] Converting %s to %s", inputPath, outputPath)

	cmd := exec.CommandContext(ctx, f.ffmpegPath, args...)
	var stderr bytes.Buffer
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		// A failed run can leave a truncated output file behind
		if removeErr := os.Remove(outputPath); removeErr != nil && !os.IsNotExist(removeErr) {
			log.Printf("[WARNING] Failed to remove partial output %s: %v", outputPath, removeErr)
		}
		return "", NewProcessingError("wav_conversion", inputPath, err, stderr.String())
	}

	return outputPath, nil
}
