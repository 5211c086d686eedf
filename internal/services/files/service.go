package files

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"log"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/scribeworks/scribe-api/internal/models"
)

// DefaultListLimit is the number of files returned when no limit is given
const DefaultListLimit = 50

// Config holds the storage settings the service enforces. Zero values for
// MaxFileSize and QuotaBytes disable the respective limit; an empty
// AllowedFormats list accepts any extension.
type Config struct {
	UploadDir        string
	TempDir          string
	MaxFileSize      int64
	QuotaBytes       int64
	WarningThreshold float64
	AllowedFormats   []string
}

type service struct {
	repo Repository
	cfg  Config
}

// NewService creates a new file service
func NewService(repo Repository, cfg Config) Service {
	if cfg.TempDir == "" {
		cfg.TempDir = os.TempDir()
	}
	return &service{
		repo: repo,
		cfg:  cfg,
	}
}

// StoreUpload spools an uploaded stream to disk, hashing as it goes, then
// files it into managed storage. The stream is read exactly once.
func (s *service) StoreUpload(ctx context.Context, r io.Reader, originalName string) (*models.AudioFile, bool, error) {
	format, err := s.validateFormat(originalName)
	if err != nil {
		return nil, false, err
	}

	if err := os.MkdirAll(s.cfg.TempDir, 0o755); err != nil {
		return nil, false, fmt.Errorf("creating temp directory: %w", err)
	}
	tmp, err := os.CreateTemp(s.cfg.TempDir, "upload-*")
	if err != nil {
		return nil, false, fmt.Errorf("creating temp file: %w", err)
	}
	tmpPath := tmp.Name()
	defer os.Remove(tmpPath)

	// One extra byte of budget makes an oversized stream detectable
	// without spooling all of it.
	limited := r
	if s.cfg.MaxFileSize > 0 {
		limited = io.LimitReader(r, s.cfg.MaxFileSize+1)
	}

	hasher := sha256.New()
	written, err := io.Copy(io.MultiWriter(tmp, hasher), limited)
	if closeErr := tmp.Close(); err == nil {
		err = closeErr
	}
	if err != nil {
		return nil, false, fmt.Errorf("spooling upload: %w", err)
	}
	if written == 0 {
		return nil, false, fmt.Errorf("%w: %s", ErrFileEmpty, filepath.Base(originalName))
	}
	if s.cfg.MaxFileSize > 0 && written > s.cfg.MaxFileSize {
		return nil, false, fmt.Errorf("%w: limit is %d bytes", ErrFileTooLarge, s.cfg.MaxFileSize)
	}

	hash := hex.EncodeToString(hasher.Sum(nil))
	return s.ingest(ctx, tmpPath, originalName, format, written, hash, true)
}

// RegisterFile copies an existing file on disk into managed storage.
// The source is left untouched.
func (s *service) RegisterFile(ctx context.Context, sourcePath string) (*models.AudioFile, bool, error) {
	info, err := os.Stat(sourcePath)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, false, fmt.Errorf("%w: %s", ErrFileNotFound, sourcePath)
		}
		return nil, false, fmt.Errorf("reading source file: %w", err)
	}
	if info.IsDir() {
		return nil, false, fmt.Errorf("%w: %s is a directory", ErrUnsupportedFormat, sourcePath)
	}

	format, err := s.validateFormat(sourcePath)
	if err != nil {
		return nil, false, err
	}
	if info.Size() == 0 {
		return nil, false, fmt.Errorf("%w: %s", ErrFileEmpty, sourcePath)
	}
	if s.cfg.MaxFileSize > 0 && info.Size() > s.cfg.MaxFileSize {
		return nil, false, fmt.Errorf("%w: %d bytes, limit is %d", ErrFileTooLarge, info.Size(), s.cfg.MaxFileSize)
	}

	hash, size, err := hashFile(sourcePath)
	if err != nil {
		return nil, false, fmt.Errorf("hashing source file: %w", err)
	}

	return s.ingest(ctx, sourcePath, sourcePath, format, size, hash, false)
}

// ingest files a fully hashed source into managed storage and records it.
// A hash already on record wins over the new bytes.
func (s *service) ingest(ctx context.Context, srcPath, originalName, format string, size int64, hash string, move bool) (*models.AudioFile, bool, error) {
	existing, err := s.repo.GetFileByHash(ctx, hash)
	if err == nil {
		log.Printf("[DEBUG] %s already stored as file %d, reusing existing copy", filepath.Base(originalName), existing.ID)
		if touchErr := s.repo.TouchFile(ctx, existing.ID); touchErr != nil {
			log.Printf("[WARNING] Failed to touch file %d: %v", existing.ID, touchErr)
		}
		return existing, false, nil
	}
	if !errors.Is(err, ErrFileNotFound) {
		return nil, false, fmt.Errorf("checking for duplicate: %w", err)
	}

	if err := s.checkQuota(ctx, size); err != nil {
		return nil, false, err
	}

	destPath := s.storagePath(hash, format)
	if err := os.MkdirAll(filepath.Dir(destPath), 0o755); err != nil {
		return nil, false, fmt.Errorf("creating storage directory: %w", err)
	}

	if move {
		// Rename is atomic on the same filesystem; fall back to a copy
		// when the temp dir lives elsewhere.
		if err := os.Rename(srcPath, destPath); err != nil {
			if err := copyFile(srcPath, destPath); err != nil {
				return nil, false, fmt.Errorf("storing file: %w", err)
			}
		}
	} else {
		if err := copyFile(srcPath, destPath); err != nil {
			return nil, false, fmt.Errorf("storing file: %w", err)
		}
	}

	file := &models.AudioFile{
		SHA256:       hash,
		OriginalName: filepath.Base(originalName),
		Path:         destPath,
		SizeBytes:    size,
		Format:       format,
	}
	if err := s.repo.CreateFile(ctx, file); err != nil {
		if rmErr := os.Remove(destPath); rmErr != nil {
			log.Printf("[WARNING] Failed to remove %s after database error: %v", destPath, rmErr)
		}
		return nil, false, fmt.Errorf("recording file: %w", err)
	}

	log.Printf("[INFO] Stored %s as file %d (%s, %d bytes)", file.OriginalName, file.ID, format, size)
	return file, true, nil
}

func (s *service) GetFile(ctx context.Context, fileID uint) (*models.AudioFile, error) {
	file, err := s.repo.GetFile(ctx, fileID)
	if err != nil {
		if errors.Is(err, ErrFileNotFound) {
			return nil, err
		}
		return nil, fmt.Errorf("getting file: %w", err)
	}
	return file, nil
}

func (s *service) GetFileByHash(ctx context.Context, sha256Hash string) (*models.AudioFile, error) {
	file, err := s.repo.GetFileByHash(ctx, sha256Hash)
	if err != nil {
		if errors.Is(err, ErrFileNotFound) {
			return nil, err
		}
		return nil, fmt.Errorf("getting file by hash: %w", err)
	}
	return file, nil
}

func (s *service) ListFiles(ctx context.Context, limit, offset int) ([]*models.AudioFile, error) {
	if limit <= 0 {
		limit = DefaultListLimit
	}

	files, err := s.repo.ListFiles(ctx, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("listing files: %w", err)
	}
	return files, nil
}

func (s *service) UpdateProbeData(ctx context.Context, fileID uint, durationSeconds float64, sampleRate int) error {
	if err := s.repo.UpdateProbeData(ctx, fileID, durationSeconds, sampleRate); err != nil {
		if errors.Is(err, ErrFileNotFound) {
			return err
		}
		return fmt.Errorf("updating probe data: %w", err)
	}

	log.Printf("[DEBUG] File %d probed: %.1fs at %d Hz", fileID, durationSeconds, sampleRate)
	return nil
}

func (s *service) TouchFile(ctx context.Context, fileID uint) error {
	if err := s.repo.TouchFile(ctx, fileID); err != nil {
		if errors.Is(err, ErrFileNotFound) {
			return err
		}
		return fmt.Errorf("touching file: %w", err)
	}
	return nil
}

// DeleteFile removes the stored bytes and the record. Files still named by
// job payloads are protected unless force is set.
func (s *service) DeleteFile(ctx context.Context, fileID uint, force bool) error {
	file, err := s.repo.GetFile(ctx, fileID)
	if err != nil {
		if errors.Is(err, ErrFileNotFound) {
			return err
		}
		return fmt.Errorf("getting file: %w", err)
	}

	refs, err := s.repo.CountJobReferences(ctx, fileID)
	if err != nil {
		return fmt.Errorf("counting job references: %w", err)
	}
	if refs > 0 {
		if !force {
			return fmt.Errorf("%w: %d jobs reference file %d", ErrFileInUse, refs, fileID)
		}
		log.Printf("[WARNING] Force deleting file %d still referenced by %d jobs", fileID, refs)
	}

	if err := os.Remove(file.Path); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("removing stored bytes: %w", err)
	}
	if err := s.repo.DeleteFile(ctx, fileID); err != nil {
		return fmt.Errorf("deleting file record: %w", err)
	}

	log.Printf("[INFO] Deleted file %d (%s, %d bytes)", fileID, file.OriginalName, file.SizeBytes)
	return nil
}

// CleanupOrphans removes files older than maxAge that no job references
func (s *service) CleanupOrphans(ctx context.Context, maxAge time.Duration) (int64, error) {
	if maxAge <= 0 {
		return 0, fmt.Errorf("max age must be positive, got %v", maxAge)
	}

	cutoff := time.Now().UTC().Add(-maxAge)
	orphans, err := s.repo.GetOrphanedFiles(ctx, cutoff)
	if err != nil {
		return 0, fmt.Errorf("finding orphaned files: %w", err)
	}

	var removed int64
	for _, file := range orphans {
		if err := os.Remove(file.Path); err != nil && !errors.Is(err, fs.ErrNotExist) {
			log.Printf("[WARNING] Failed to remove orphaned file %s: %v", file.Path, err)
			continue
		}
		if err := s.repo.DeleteFile(ctx, file.ID); err != nil {
			log.Printf("[WARNING] Failed to delete record for orphaned file %d: %v", file.ID, err)
			continue
		}
		removed++
	}

	if removed > 0 {
		log.Printf("[INFO] Removed %d orphaned files", removed)
	}
	return removed, nil
}

func (s *service) Stats(ctx context.Context) (*StorageStats, error) {
	stats, err := s.repo.Stats(ctx)
	if err != nil {
		return nil, fmt.Errorf("getting storage stats: %w", err)
	}

	stats.QuotaBytes = s.cfg.QuotaBytes
	if s.cfg.QuotaBytes > 0 {
		stats.UsagePercent = float64(stats.TotalSizeBytes) / float64(s.cfg.QuotaBytes) * 100
	}
	return stats, nil
}

// validateFormat extracts the extension and checks it against the allowed
// list. Returns the normalized format (lowercase, no dot).
func (s *service) validateFormat(name string) (string, error) {
	format := strings.ToLower(strings.TrimPrefix(filepath.Ext(name), "."))
	if format == "" {
		return "", fmt.Errorf("%w: %s has no extension", ErrUnsupportedFormat, filepath.Base(name))
	}
	if len(s.cfg.AllowedFormats) == 0 {
		return format, nil
	}
	for _, allowed := range s.cfg.AllowedFormats {
		if strings.EqualFold(allowed, format) {
			return format, nil
		}
	}
	return "", fmt.Errorf("%w: .%s (allowed: %s)", ErrUnsupportedFormat, format, strings.Join(s.cfg.AllowedFormats, ", "))
}

// checkQuota rejects writes that would push usage past the quota and logs
// once usage crosses the warning threshold
func (s *service) checkQuota(ctx context.Context, additional int64) error {
	if s.cfg.QuotaBytes <= 0 {
		return nil
	}

	usage, err := s.repo.TotalSize(ctx)
	if err != nil {
		return fmt.Errorf("checking storage usage: %w", err)
	}

	projected := usage + additional
	if projected > s.cfg.QuotaBytes {
		return fmt.Errorf("%w: %d of %d bytes used, %d more requested",
			ErrQuotaExceeded, usage, s.cfg.QuotaBytes, additional)
	}
	if s.cfg.WarningThreshold > 0 && float64(projected) >= float64(s.cfg.QuotaBytes)*s.cfg.WarningThreshold {
		log.Printf("[WARNING] Storage usage at %.1f%% of quota (%d of %d bytes)",
			float64(projected)/float64(s.cfg.QuotaBytes)*100, projected, s.cfg.QuotaBytes)
	}
	return nil
}

// storagePath lays files out as <upload_dir>/<year>/<month>/<hash>.<format>
// so directories stay small and paths are derivable from content alone
func (s *service) storagePath(hash, format string) string {
	now := time.Now().UTC()
	name := hash
	if format != "" {
		name = hash + "." + format
	}
	return filepath.Join(s.cfg.UploadDir,
		fmt.Sprintf("%04d", now.Year()),
		fmt.Sprintf("%02d", int(now.Month())),
		name)
}

// hashFile streams a file through SHA256 without loading it into memory
func hashFile(path string) (string, int64, error) {
	f, err := os.Open(path)
	if err != nil {
		return "", 0, err
	}
	defer f.Close()

	hasher := sha256.New()
	n, err := io.Copy(hasher, f)
	if err != nil {
		return "", 0, err
	}
	return hex.EncodeToString(hasher.Sum(nil)), n, nil
}

func copyFile(src, dst string) error {
	in, err := os.Open(src)
	if err != nil {
		return err
	}
	defer in.Close()

	out, err := os.Create(dst)
	if err != nil {
		return err
	}

	if _, err := io.Copy(out, in); err != nil {
		out.Close()
		os.Remove(dst)
		return err
	}
	return out.Close()
}
