package system

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/scribeworks/scribe-api/api/types"
	"github.com/scribeworks/scribe-api/internal/database"
	"github.com/scribeworks/scribe-api/internal/models"
	"github.com/scribeworks/scribe-api/internal/services/files"
	"github.com/scribeworks/scribe-api/internal/services/jobs"
	"github.com/scribeworks/scribe-api/internal/services/transcripts"
	"github.com/scribeworks/scribe-api/pkg/transcript"
)

func setupDeps(t *testing.T) *types.Dependencies {
	t.Helper()

	db, err := database.Initialize(":memory:", false)
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	require.NoError(t, db.AutoMigrate(
		&models.Transcript{}, &models.TranscriptVersion{}, &models.ExportRecord{},
		&models.Job{}, &models.AudioFile{},
	))

	return &types.Dependencies{
		DB:                db,
		TranscriptService: transcripts.NewService(transcripts.NewRepository(db.DB)),
		JobService:        jobs.NewService(jobs.NewRepository(db.DB)),
		FileService: files.NewService(files.NewRepository(db.DB), files.Config{
			UploadDir: t.TempDir(),
			TempDir:   t.TempDir(),
		}),
		EngineName: "faster-whisper",
	}
}

func serve(t *testing.T, deps *types.Dependencies, path string) *httptest.ResponseRecorder {
	t.Helper()
	gin.SetMode(gin.TestMode)

	engine := gin.New()
	RegisterRoutes(engine.Group("/api/v1/system"), deps)

	req := httptest.NewRequest(http.MethodGet, path, nil)
	w := httptest.NewRecorder()
	engine.ServeHTTP(w, req)
	return w
}

func TestGetStatus(t *testing.T) {
	deps := setupDeps(t)

	_, err := deps.JobService.EnqueueJob(context.Background(), models.JobTypeTranscription,
		models.JobPayload{"file_id": 1})
	require.NoError(t, err)

	w := serve(t, deps, "/api/v1/system/status")
	require.Equal(t, http.StatusOK, w.Code)

	var resp map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "ok", resp["status"])
	assert.Equal(t, "faster-whisper", resp["engine"])

	db, ok := resp["database"].(map[string]any)
	require.True(t, ok)
	assert.Equal(t, "healthy", db["status"])

	queue, ok := resp["queue"].(map[string]any)
	require.True(t, ok)
	assert.Equal(t, float64(1), queue["pending"])
	assert.Equal(t, float64(0), queue["processing"])
}

func TestGetStatus_NoDatabase(t *testing.T) {
	w := serve(t, &types.Dependencies{}, "/api/v1/system/status")
	require.Equal(t, http.StatusOK, w.Code)

	var resp map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))

	db, ok := resp["database"].(map[string]any)
	require.True(t, ok)
	assert.Equal(t, "not configured", db["status"])
	assert.NotContains(t, resp, "queue")
}

func TestGetStatistics(t *testing.T) {
	deps := setupDeps(t)
	ctx := context.Background()

	_, err := deps.TranscriptService.SaveTranscript(ctx, "job-sys", "Hello system",
		[]transcript.Segment{{Start: 0, End: 2, Text: "Hello system"}})
	require.NoError(t, err)
	_, err = deps.JobService.EnqueueJob(ctx, models.JobTypeTranscription, models.JobPayload{"file_id": 1})
	require.NoError(t, err)
	_, _, err = deps.FileService.StoreUpload(ctx, strings.NewReader("audio bytes"), "sys.mp3")
	require.NoError(t, err)

	w := serve(t, deps, "/api/v1/system/statistics")
	require.Equal(t, http.StatusOK, w.Code)

	var resp struct {
		Transcripts transcripts.Statistics `json:"transcripts"`
		Jobs        jobs.Statistics        `json:"jobs"`
		Storage     files.StorageStats     `json:"storage"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, int64(1), resp.Transcripts.TotalTranscripts)
	assert.Equal(t, int64(1), resp.Jobs.TotalJobs)
	assert.Equal(t, int64(1), resp.Storage.TotalFiles)
}

func TestGetStatistics_NoServices(t *testing.T) {
	w := serve(t, &types.Dependencies{}, "/api/v1/system/statistics")
	assert.Equal(t, http.StatusServiceUnavailable, w.Code)
}
