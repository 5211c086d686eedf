// Package download fetches remote audio into temporary storage so the
// transcription pipeline can treat URLs and local files the same way.
package download

import (
	"context"
	"fmt"
	"io"
	"log"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"time"
)

// ProgressFunc receives cumulative download progress in bytes.
type ProgressFunc func(downloaded, total int64)

// DownloadOptions configures how remote audio is fetched.
type DownloadOptions struct {
	TempDir       string        // destination directory for scratch files
	MaxSize       int64         // reject bodies larger than this, 0 disables the cap
	Timeout       time.Duration // whole-request timeout
	ProgressFunc  ProgressFunc  // invoked as bytes arrive, may be nil
	UserAgent     string        // sent on every request
	ValidateAudio bool          // require an audio content type
}

// DefaultOptions returns the settings used when the caller has no config.
func DefaultOptions() DownloadOptions {
	return DownloadOptions{
		TempDir:       os.TempDir(),
		MaxSize:       500 * 1024 * 1024,
		Timeout:       5 * time.Minute,
		UserAgent:     "ScribeAPI/1.0",
		ValidateAudio: true,
	}
}

// DownloadResult describes a completed fetch.
type DownloadResult struct {
	FilePath      string    // where the body was written
	ContentType   string    // Content-Type reported by the server
	ContentLength int64     // bytes actually written
	ETag          string    // ETag header, if the server sent one
	LastModified  time.Time // parsed Last-Modified, zero when absent
}

// Downloader streams remote audio into the scratch directory.
type Downloader struct {
	client  *http.Client
	options DownloadOptions
}

// NewDownloader builds a Downloader with a client tuned for large
// streaming bodies.
func NewDownloader(options DownloadOptions) *Downloader {
	transport := &http.Transport{
		MaxIdleConns:        10,
		IdleConnTimeout:     30 * time.Second,
		TLSHandshakeTimeout: 10 * time.Second,
		DisableCompression:  true, // audio payloads are already compressed
	}
	return &Downloader{
		client: &http.Client{
			Timeout:   options.Timeout,
			Transport: transport,
		},
		options: options,
	}
}

// DownloadToTemp streams the URL into a fresh temp file and reports what
// the server said about the content. The caller owns the returned file.
func (d *Downloader) DownloadToTemp(ctx context.Context, url string) (*DownloadResult, error) {
	log.Printf("[DEBUG] Fetching remote audio from %s", url)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("building request: %w", err)
	}
	req.Header.Set("User-Agent", d.options.UserAgent)
	req.Header.Set("Accept", "audio/*,*/*")

	resp, err := d.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to download: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK && resp.StatusCode != http.StatusPartialContent {
		return nil, fmt.Errorf("server returned status %d", resp.StatusCode)
	}

	contentType := resp.Header.Get("Content-Type")
	if d.options.ValidateAudio && !isAudioContentType(contentType) {
		return nil, fmt.Errorf("invalid content type: %s", contentType)
	}

	// Reject early when the server declares an oversized body.
	if d.options.MaxSize > 0 && resp.ContentLength > d.options.MaxSize {
		return nil, fmt.Errorf("file too large: %d bytes (max %d)", resp.ContentLength, d.options.MaxSize)
	}

	tempFile, err := d.createTempFile(url)
	if err != nil {
		return nil, fmt.Errorf("creating temp file: %w", err)
	}
	tempPath := tempFile.Name()

	written, err := d.streamBody(resp.Body, tempFile, resp.ContentLength)
	if closeErr := tempFile.Close(); err == nil {
		err = closeErr
	}
	if err != nil {
		os.Remove(tempPath)
		return nil, fmt.Errorf("writing download: %w", err)
	}

	log.Printf("[DEBUG] Wrote %d bytes to %s", written, tempPath)

	result := &DownloadResult{
		FilePath:      tempPath,
		ContentType:   contentType,
		ContentLength: written,
		ETag:          resp.Header.Get("ETag"),
	}
	if lastMod := resp.Header.Get("Last-Modified"); lastMod != "" {
		if t, parseErr := http.ParseTime(lastMod); parseErr == nil {
			result.LastModified = t
		}
	}
	return result, nil
}

// createTempFile opens a remote_* scratch file whose extension matches
// the URL when the URL names a known audio format.
func (d *Downloader) createTempFile(url string) (*os.File, error) {
	return os.CreateTemp(d.options.TempDir, "remote_*"+extensionFromURL(url))
}

// extensionFromURL guesses the audio extension from a URL, falling back
// to .mp3 when the path gives no usable hint.
func extensionFromURL(rawURL string) string {
	trimmed := rawURL
	if idx := strings.IndexAny(trimmed, "?#"); idx >= 0 {
		trimmed = trimmed[:idx]
	}
	dot := strings.LastIndex(trimmed, ".")
	if dot < 0 {
		return ".mp3"
	}
	if ext := trimmed[dot+1:]; isValidAudioExtension(ext) {
		return "." + strings.ToLower(ext)
	}
	return ".mp3"
}

// streamBody copies the response into dst, feeding the progress callback
// when the server declared a length. The copy is capped one byte past
// MaxSize: anything above the cap fails instead of truncating.
func (d *Downloader) streamBody(body io.Reader, dst *os.File, declared int64) (int64, error) {
	src := body
	if d.options.ProgressFunc != nil && declared > 0 {
		src = &countingReader{reader: src, total: declared, report: d.options.ProgressFunc}
	}
	if d.options.MaxSize > 0 {
		src = io.LimitReader(src, d.options.MaxSize+1)
	}

	written, err := io.Copy(dst, src)
	if err != nil {
		return written, err
	}
	if d.options.MaxSize > 0 && written > d.options.MaxSize {
		return written, fmt.Errorf("file too large: exceeded %d bytes", d.options.MaxSize)
	}
	return written, nil
}

// CleanupTempFile deletes a downloaded file. An empty path is a no-op.
func CleanupTempFile(path string) error {
	if path == "" {
		return nil
	}
	log.Printf("[DEBUG] Removing temp file %s", path)
	return os.Remove(path)
}

// CleanupOldTempFiles removes remote_* scratch files older than maxAge.
// Files that vanish mid-sweep are skipped.
func CleanupOldTempFiles(tempDir string, maxAge time.Duration) error {
	matches, err := filepath.Glob(filepath.Join(tempDir, "remote_*"))
	if err != nil {
		return err
	}

	cutoff := time.Now().Add(-maxAge)
	removed := 0
	for _, path := range matches {
		info, statErr := os.Stat(path)
		if statErr != nil || !info.ModTime().Before(cutoff) {
			continue
		}
		if os.Remove(path) == nil {
			removed++
		}
	}
	if removed > 0 {
		log.Printf("[DEBUG] Removed %d stale download files from %s", removed, tempDir)
	}
	return nil
}

func isAudioContentType(contentType string) bool {
	ct := strings.ToLower(strings.TrimSpace(contentType))
	if strings.HasPrefix(ct, "audio/") {
		return true
	}
	// Some hosts serve audio as a generic byte stream.
	return ct == "application/octet-stream"
}

var audioExtensions = map[string]struct{}{
	"mp3": {}, "m4a": {}, "aac": {}, "ogg": {},
	"wav": {}, "flac": {}, "opus": {}, "webm": {},
}

func isValidAudioExtension(ext string) bool {
	_, ok := audioExtensions[strings.ToLower(ext)]
	return ok
}

// countingReader reports cumulative progress as bytes flow through it.
type countingReader struct {
	reader io.Reader
	total  int64
	seen   int64
	report ProgressFunc
}

func (c *countingReader) Read(p []byte) (int, error) {
	n, err := c.reader.Read(p)
	if n > 0 {
		c.seen += int64(n)
		c.report(c.seen, c.total)
	}
	return n, err
}
