package files

import (
	"context"
	"strconv"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/scribeworks/scribe-api/internal/models"
)

func setupTestDB(t *testing.T) *gorm.DB {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)

	// Jobs are migrated too: reference counting and orphan detection
	// query the jobs table.
	err = db.AutoMigrate(&models.AudioFile{}, &models.Job{})
	require.NoError(t, err)

	return db
}

func createFile(t *testing.T, repo Repository, hash, name string, size int64) *models.AudioFile {
	t.Helper()

	file := &models.AudioFile{
		SHA256:       hash,
		OriginalName: name,
		Path:         "/data/uploads/2026/08/" + hash + ".mp3",
		SizeBytes:    size,
		Format:       "mp3",
	}
	require.NoError(t, repo.CreateFile(context.Background(), file))
	return file
}

func createReferencingJob(t *testing.T, db *gorm.DB, fileID interface{}) *models.Job {
	t.Helper()

	job := &models.Job{
		UUID:    uuid.New().String(),
		Type:    models.JobTypeTranscription,
		Status:  models.JobStatusPending,
		Payload: models.JobPayload{"file_id": fileID, "model": "base"},
	}
	require.NoError(t, db.Create(job).Error)
	return job
}

func TestRepository_CreateAndGetFile(t *testing.T) {
	db := setupTestDB(t)
	repo := NewRepository(db)

	file := createFile(t, repo, "hash-one", "interview.mp3", 2048)
	require.NotZero(t, file.ID)

	byID, err := repo.GetFile(context.Background(), file.ID)
	require.NoError(t, err)
	assert.Equal(t, "hash-one", byID.SHA256)
	assert.Equal(t, "interview.mp3", byID.OriginalName)
	assert.Equal(t, int64(2048), byID.SizeBytes)
	assert.False(t, byID.LastAccessedAt.IsZero(), "create hook fills last_accessed_at")

	byHash, err := repo.GetFileByHash(context.Background(), "hash-one")
	require.NoError(t, err)
	assert.Equal(t, file.ID, byHash.ID)
}

func TestRepository_GetFile_NotFound(t *testing.T) {
	db := setupTestDB(t)
	repo := NewRepository(db)

	_, err := repo.GetFile(context.Background(), 999999)
	assert.ErrorIs(t, err, ErrFileNotFound)

	_, err = repo.GetFileByHash(context.Background(), "no-such-hash")
	assert.ErrorIs(t, err, ErrFileNotFound)
}

func TestRepository_ListFiles(t *testing.T) {
	db := setupTestDB(t)
	repo := NewRepository(db)

	first := createFile(t, repo, "hash-one", "a.mp3", 100)
	createFile(t, repo, "hash-two", "b.mp3", 200)
	third := createFile(t, repo, "hash-three", "c.mp3", 300)

	files, err := repo.ListFiles(context.Background(), 0, 0)
	require.NoError(t, err)
	require.Len(t, files, 3)
	assert.Equal(t, third.ID, files[0].ID, "most recent first")
	assert.Equal(t, first.ID, files[2].ID)

	limited, err := repo.ListFiles(context.Background(), 2, 0)
	require.NoError(t, err)
	require.Len(t, limited, 2)
	assert.Equal(t, third.ID, limited[0].ID)

	paged, err := repo.ListFiles(context.Background(), 2, 2)
	require.NoError(t, err)
	require.Len(t, paged, 1)
	assert.Equal(t, first.ID, paged[0].ID)
}

func TestRepository_UpdateProbeData(t *testing.T) {
	db := setupTestDB(t)
	repo := NewRepository(db)

	file := createFile(t, repo, "hash-one", "a.mp3", 100)

	err := repo.UpdateProbeData(context.Background(), file.ID, 123.5, 44100)
	require.NoError(t, err)

	updated, err := repo.GetFile(context.Background(), file.ID)
	require.NoError(t, err)
	assert.Equal(t, 123.5, updated.DurationSeconds)
	assert.Equal(t, 44100, updated.SampleRate)

	err = repo.UpdateProbeData(context.Background(), 999999, 1.0, 16000)
	assert.ErrorIs(t, err, ErrFileNotFound)
}

func TestRepository_TouchFile(t *testing.T) {
	db := setupTestDB(t)
	repo := NewRepository(db)

	file := createFile(t, repo, "hash-one", "a.mp3", 100)

	// Backdate so the touch is observable
	old := time.Now().UTC().Add(-24 * time.Hour)
	require.NoError(t, db.Model(&models.AudioFile{}).
		Where("id = ?", file.ID).
		Update("last_accessed_at", old).Error)

	require.NoError(t, repo.TouchFile(context.Background(), file.ID))

	touched, err := repo.GetFile(context.Background(), file.ID)
	require.NoError(t, err)
	assert.True(t, touched.LastAccessedAt.After(old.Add(time.Hour)))

	err = repo.TouchFile(context.Background(), 999999)
	assert.ErrorIs(t, err, ErrFileNotFound)
}

func TestRepository_CountJobReferences(t *testing.T) {
	db := setupTestDB(t)
	repo := NewRepository(db)

	file := createFile(t, repo, "hash-one", "a.mp3", 100)
	other := createFile(t, repo, "hash-two", "b.mp3", 100)

	createReferencingJob(t, db, file.ID)
	job2 := createReferencingJob(t, db, file.ID)
	createReferencingJob(t, db, other.ID)

	count, err := repo.CountJobReferences(context.Background(), file.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(2), count)

	// Payloads that carried the id as a JSON string still count
	stringRef := createFile(t, repo, "hash-three", "c.mp3", 100)
	createReferencingJob(t, db, strconv.Itoa(int(stringRef.ID)))
	count, err = repo.CountJobReferences(context.Background(), stringRef.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(1), count)

	// Soft-deleted jobs no longer hold a reference
	require.NoError(t, db.Delete(&models.Job{}, job2.ID).Error)
	count, err = repo.CountJobReferences(context.Background(), file.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(1), count)
}

func TestRepository_DeleteFile(t *testing.T) {
	db := setupTestDB(t)
	repo := NewRepository(db)

	file := createFile(t, repo, "hash-one", "a.mp3", 100)

	require.NoError(t, repo.DeleteFile(context.Background(), file.ID))

	_, err := repo.GetFile(context.Background(), file.ID)
	assert.ErrorIs(t, err, ErrFileNotFound)

	err = repo.DeleteFile(context.Background(), file.ID)
	assert.ErrorIs(t, err, ErrFileNotFound)
}

func TestRepository_GetOrphanedFiles(t *testing.T) {
	db := setupTestDB(t)
	repo := NewRepository(db)

	referenced := createFile(t, repo, "hash-one", "a.mp3", 100)
	orphanOld := createFile(t, repo, "hash-two", "b.mp3", 100)
	createFile(t, repo, "hash-three", "c.mp3", 100)

	job := createReferencingJob(t, db, referenced.ID)

	// Age the first two files past the cutoff
	old := time.Now().UTC().Add(-48 * time.Hour)
	for _, id := range []uint{referenced.ID, orphanOld.ID} {
		require.NoError(t, db.Model(&models.AudioFile{}).
			Where("id = ?", id).
			Update("created_at", old).Error)
	}

	cutoff := time.Now().UTC().Add(-24 * time.Hour)
	orphans, err := repo.GetOrphanedFiles(context.Background(), cutoff)
	require.NoError(t, err)
	require.Len(t, orphans, 1)
	assert.Equal(t, orphanOld.ID, orphans[0].ID)

	// Once the referencing job is gone, the aged file becomes an orphan too
	require.NoError(t, db.Delete(&models.Job{}, job.ID).Error)
	orphans, err = repo.GetOrphanedFiles(context.Background(), cutoff)
	require.NoError(t, err)
	require.Len(t, orphans, 2)
	assert.Equal(t, referenced.ID, orphans[0].ID, "oldest first, id breaks the tie")
}

func TestRepository_TotalSizeAndStats(t *testing.T) {
	db := setupTestDB(t)
	repo := NewRepository(db)

	t.Run("empty store", func(t *testing.T) {
		total, err := repo.TotalSize(context.Background())
		require.NoError(t, err)
		assert.Zero(t, total)

		stats, err := repo.Stats(context.Background())
		require.NoError(t, err)
		assert.Zero(t, stats.TotalFiles)
		assert.Zero(t, stats.TotalSizeBytes)
	})

	first := createFile(t, repo, "hash-one", "a.mp3", 1000)
	second := createFile(t, repo, "hash-two", "b.mp3", 2500)
	require.NoError(t, repo.UpdateProbeData(context.Background(), first.ID, 60.5, 44100))
	require.NoError(t, repo.UpdateProbeData(context.Background(), second.ID, 39.5, 16000))

	total, err := repo.TotalSize(context.Background())
	require.NoError(t, err)
	assert.Equal(t, int64(3500), total)

	stats, err := repo.Stats(context.Background())
	require.NoError(t, err)
	assert.Equal(t, int64(2), stats.TotalFiles)
	assert.Equal(t, int64(3500), stats.TotalSizeBytes)
	assert.InDelta(t, 100.0, stats.TotalDurationSeconds, 0.001)
}
