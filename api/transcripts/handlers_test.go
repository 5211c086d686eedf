package transcripts

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/scribeworks/scribe-api/api/types"
	"github.com/scribeworks/scribe-api/internal/models"
	"github.com/scribeworks/scribe-api/internal/services/transcripts"
	"github.com/scribeworks/scribe-api/pkg/transcript"
)

func setupRouter(t *testing.T) (*gin.Engine, transcripts.Service) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&models.Transcript{}, &models.TranscriptVersion{}, &models.ExportRecord{}))

	svc := transcripts.NewService(transcripts.NewRepository(db))
	deps := &types.Dependencies{TranscriptService: svc}

	engine := gin.New()
	RegisterRoutes(engine.Group("/api/v1/transcripts"), deps)
	return engine, svc
}

func seedTranscript(t *testing.T, svc transcripts.Service, jobID string) uint {
	t.Helper()

	id, err := svc.SaveTranscript(context.Background(), jobID, "Hello World",
		[]transcript.Segment{
			{Start: 0, End: 5.5, Text: "Hello"},
			{Start: 5.5, End: 12, Text: "World"},
		},
		transcripts.WithLanguage("en"))
	require.NoError(t, err)
	return id
}

func doRequest(t *testing.T, engine *gin.Engine, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()

	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(data)
	}
	req := httptest.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	w := httptest.NewRecorder()
	engine.ServeHTTP(w, req)
	return w
}

func TestGet(t *testing.T) {
	engine, svc := setupRouter(t)
	id := seedTranscript(t, svc, "job-get")

	w := doRequest(t, engine, http.MethodGet, fmt.Sprintf("/api/v1/transcripts/%d", id), nil)
	require.Equal(t, http.StatusOK, w.Code)

	var record transcripts.TranscriptRecord
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &record))
	assert.Equal(t, id, record.TranscriptID)
	assert.Equal(t, "job-get", record.JobID)
	assert.Equal(t, "en", record.Language)
	assert.Equal(t, "Hello World", record.Text)
	assert.Equal(t, 1, record.VersionNumber)
	assert.True(t, record.IsCurrent)
	assert.Len(t, record.Segments, 2)
}

func TestGet_SpecificVersion(t *testing.T) {
	engine, svc := setupRouter(t)
	id := seedTranscript(t, svc, "job-versions")

	_, err := svc.UpdateTranscript(context.Background(), id, "Hello corrected World",
		[]transcript.Segment{{Start: 0, End: 12, Text: "Hello corrected World"}})
	require.NoError(t, err)

	w := doRequest(t, engine, http.MethodGet, fmt.Sprintf("/api/v1/transcripts/%d?version=1", id), nil)
	require.Equal(t, http.StatusOK, w.Code)

	var record transcripts.TranscriptRecord
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &record))
	assert.Equal(t, 1, record.VersionNumber)
	assert.Equal(t, "Hello World", record.Text)
	assert.False(t, record.IsCurrent)
}

func TestGet_Errors(t *testing.T) {
	engine, svc := setupRouter(t)
	id := seedTranscript(t, svc, "job-get-errors")

	tests := []struct {
		name string
		path string
		code int
	}{
		{"unknown transcript", "/api/v1/transcripts/99999", http.StatusNotFound},
		{"invalid id", "/api/v1/transcripts/abc", http.StatusBadRequest},
		{"invalid version", fmt.Sprintf("/api/v1/transcripts/%d?version=zero", id), http.StatusBadRequest},
		{"zero version", fmt.Sprintf("/api/v1/transcripts/%d?version=0", id), http.StatusBadRequest},
		{"unknown version", fmt.Sprintf("/api/v1/transcripts/%d?version=42", id), http.StatusNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := doRequest(t, engine, http.MethodGet, tt.path, nil)
			assert.Equal(t, tt.code, w.Code)
		})
	}
}

func TestGetByJob(t *testing.T) {
	engine, svc := setupRouter(t)
	seedTranscript(t, svc, "job-lookup")

	w := doRequest(t, engine, http.MethodGet, "/api/v1/transcripts/by-job/job-lookup", nil)
	require.Equal(t, http.StatusOK, w.Code)

	var record transcripts.TranscriptRecord
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &record))
	assert.Equal(t, "job-lookup", record.JobID)
	assert.True(t, record.IsCurrent)

	w = doRequest(t, engine, http.MethodGet, "/api/v1/transcripts/by-job/no-such-job", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestUpdate(t *testing.T) {
	engine, svc := setupRouter(t)
	id := seedTranscript(t, svc, "job-update")

	body := UpdateTranscriptRequest{
		Text: "Hello brave new World",
		Segments: []transcript.Segment{
			{Start: 0, End: 6, Text: "Hello brave"},
			{Start: 6, End: 12, Text: "new World"},
		},
		CreatedBy:  "editor@example.com",
		ChangeNote: "Caught a missed phrase",
	}
	w := doRequest(t, engine, http.MethodPut, fmt.Sprintf("/api/v1/transcripts/%d", id), body)
	require.Equal(t, http.StatusOK, w.Code)

	var resp VersionResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, id, resp.TranscriptID)
	assert.Equal(t, 2, resp.VersionNumber)

	record, err := svc.GetTranscript(context.Background(), id, 0)
	require.NoError(t, err)
	assert.Equal(t, "Hello brave new World", record.Text)
	assert.Equal(t, "editor@example.com", record.CreatedBy)
	assert.Equal(t, "Caught a missed phrase", record.ChangeNote)
}

func TestUpdate_Errors(t *testing.T) {
	engine, svc := setupRouter(t)
	id := seedTranscript(t, svc, "job-update-errors")

	t.Run("missing text", func(t *testing.T) {
		w := doRequest(t, engine, http.MethodPut, fmt.Sprintf("/api/v1/transcripts/%d", id),
			map[string]any{"segments": []transcript.Segment{}})
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("segment ends before it starts", func(t *testing.T) {
		w := doRequest(t, engine, http.MethodPut, fmt.Sprintf("/api/v1/transcripts/%d", id),
			UpdateTranscriptRequest{
				Text:     "Broken timing",
				Segments: []transcript.Segment{{Start: 8, End: 2, Text: "Broken timing"}},
			})
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("unknown transcript", func(t *testing.T) {
		w := doRequest(t, engine, http.MethodPut, "/api/v1/transcripts/99999",
			UpdateTranscriptRequest{Text: "Orphan edit"})
		assert.Equal(t, http.StatusNotFound, w.Code)
	})
}

func TestImport(t *testing.T) {
	engine, svc := setupRouter(t)
	id := seedTranscript(t, svc, "job-import")

	srt := "1\n00:00:00,000 --> 00:00:02,000\nFirst line\n\n2\n00:00:02,000 --> 00:00:04,000\nSecond line\n"
	w := doRequest(t, engine, http.MethodPost, fmt.Sprintf("/api/v1/transcripts/%d/import", id),
		ImportRequest{Content: srt, Format: "srt", CreatedBy: "editor@example.com"})
	require.Equal(t, http.StatusOK, w.Code)

	var resp VersionResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, 2, resp.VersionNumber)

	record, err := svc.GetTranscript(context.Background(), id, 0)
	require.NoError(t, err)
	assert.Equal(t, 2, record.SegmentCount)
	assert.Contains(t, record.Text, "First line")
	assert.Contains(t, record.Text, "Second line")
}

func TestImport_Errors(t *testing.T) {
	engine, svc := setupRouter(t)
	id := seedTranscript(t, svc, "job-import-errors")

	tests := []struct {
		name string
		body any
		code int
	}{
		{"missing format", map[string]any{"content": "some text"}, http.StatusBadRequest},
		{"unsupported format", ImportRequest{Content: "x", Format: "docx"}, http.StatusBadRequest},
		{"malformed json content", ImportRequest{Content: "{not json", Format: "json"}, http.StatusBadRequest},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := doRequest(t, engine, http.MethodPost, fmt.Sprintf("/api/v1/transcripts/%d/import", id), tt.body)
			assert.Equal(t, tt.code, w.Code)
		})
	}

	t.Run("unknown transcript", func(t *testing.T) {
		w := doRequest(t, engine, http.MethodPost, "/api/v1/transcripts/99999/import",
			ImportRequest{Content: "1\n00:00:00,000 --> 00:00:01,000\nHi\n", Format: "srt"})
		assert.Equal(t, http.StatusNotFound, w.Code)
	})
}

func TestCompare(t *testing.T) {
	engine, svc := setupRouter(t)
	id := seedTranscript(t, svc, "job-compare")

	_, err := svc.UpdateTranscript(context.Background(), id, "Hello brave World",
		[]transcript.Segment{
			{Start: 0, End: 5.5, Text: "Hello brave"},
			{Start: 5.5, End: 12, Text: "World"},
		})
	require.NoError(t, err)

	w := doRequest(t, engine, http.MethodGet, fmt.Sprintf("/api/v1/transcripts/%d/compare?from=1&to=2", id), nil)
	require.Equal(t, http.StatusOK, w.Code)

	var comparison transcripts.VersionComparison
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &comparison))
	assert.Equal(t, id, comparison.TranscriptID)
	assert.Equal(t, 1, comparison.Version1.VersionNumber)
	assert.Equal(t, 2, comparison.Version2.VersionNumber)
}

func TestCompare_Errors(t *testing.T) {
	engine, svc := setupRouter(t)
	id := seedTranscript(t, svc, "job-compare-errors")

	tests := []struct {
		name  string
		query string
		code  int
	}{
		{"missing from", "to=1", http.StatusBadRequest},
		{"missing to", "from=1", http.StatusBadRequest},
		{"non-numeric from", "from=one&to=1", http.StatusBadRequest},
		{"zero to", "from=1&to=0", http.StatusBadRequest},
		{"unknown version", "from=1&to=42", http.StatusNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := doRequest(t, engine, http.MethodGet,
				fmt.Sprintf("/api/v1/transcripts/%d/compare?%s", id, tt.query), nil)
			assert.Equal(t, tt.code, w.Code)
		})
	}
}

func TestRollback(t *testing.T) {
	engine, svc := setupRouter(t)
	id := seedTranscript(t, svc, "job-rollback")

	_, err := svc.UpdateTranscript(context.Background(), id, "A bad automatic correction",
		[]transcript.Segment{{Start: 0, End: 12, Text: "A bad automatic correction"}})
	require.NoError(t, err)

	w := doRequest(t, engine, http.MethodPost, fmt.Sprintf("/api/v1/transcripts/%d/rollback", id),
		RollbackRequest{Version: 1, CreatedBy: "editor@example.com"})
	require.Equal(t, http.StatusOK, w.Code)

	var resp VersionResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, 3, resp.VersionNumber)

	record, err := svc.GetTranscript(context.Background(), id, 0)
	require.NoError(t, err)
	assert.Equal(t, "Hello World", record.Text)
	assert.Equal(t, 3, record.VersionNumber)
}

func TestRollback_Errors(t *testing.T) {
	engine, svc := setupRouter(t)
	id := seedTranscript(t, svc, "job-rollback-errors")

	tests := []struct {
		name string
		path string
		body any
		code int
	}{
		{"unknown version", fmt.Sprintf("/api/v1/transcripts/%d/rollback", id), RollbackRequest{Version: 42}, http.StatusNotFound},
		{"zero version rejected by validation", fmt.Sprintf("/api/v1/transcripts/%d/rollback", id), map[string]any{"version": 0}, http.StatusBadRequest},
		{"missing body", fmt.Sprintf("/api/v1/transcripts/%d/rollback", id), nil, http.StatusBadRequest},
		{"unknown transcript", "/api/v1/transcripts/99999/rollback", RollbackRequest{Version: 1}, http.StatusNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := doRequest(t, engine, http.MethodPost, tt.path, tt.body)
			assert.Equal(t, tt.code, w.Code)
		})
	}
}

func TestExport(t *testing.T) {
	engine, svc := setupRouter(t)
	id := seedTranscript(t, svc, "job-export")

	t.Run("default format is srt", func(t *testing.T) {
		w := doRequest(t, engine, http.MethodGet, fmt.Sprintf("/api/v1/transcripts/%d/export", id), nil)
		require.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, "application/x-subrip", w.Header().Get("Content-Type"))
		assert.Contains(t, w.Body.String(), "-->")
		assert.Contains(t, w.Body.String(), "Hello")
	})

	t.Run("vtt", func(t *testing.T) {
		w := doRequest(t, engine, http.MethodGet, fmt.Sprintf("/api/v1/transcripts/%d/export?format=vtt", id), nil)
		require.Equal(t, http.StatusOK, w.Code)
		assert.True(t, strings.HasPrefix(w.Body.String(), "WEBVTT"))
	})

	t.Run("json carries metadata and text", func(t *testing.T) {
		w := doRequest(t, engine, http.MethodGet, fmt.Sprintf("/api/v1/transcripts/%d/export?format=json&pretty=true", id), nil)
		require.Equal(t, http.StatusOK, w.Code)

		var payload map[string]any
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &payload))
		assert.Contains(t, payload, "segments")
		assert.Contains(t, payload, "metadata")
		assert.Contains(t, payload, "text")
	})

	t.Run("txt with timestamps", func(t *testing.T) {
		w := doRequest(t, engine, http.MethodGet,
			fmt.Sprintf("/api/v1/transcripts/%d/export?format=txt&timestamps=true", id), nil)
		require.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Body.String(), "Hello")
		assert.Contains(t, w.Body.String(), "[")
	})

	t.Run("download disposition", func(t *testing.T) {
		w := doRequest(t, engine, http.MethodGet,
			fmt.Sprintf("/api/v1/transcripts/%d/export?format=vtt&download=true", id), nil)
		require.Equal(t, http.StatusOK, w.Code)
		disposition := w.Header().Get("Content-Disposition")
		assert.Contains(t, disposition, "attachment")
		assert.Contains(t, disposition, fmt.Sprintf("transcript_%d.vtt", id))
	})

	t.Run("unknown format", func(t *testing.T) {
		w := doRequest(t, engine, http.MethodGet, fmt.Sprintf("/api/v1/transcripts/%d/export?format=docx", id), nil)
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("unknown transcript", func(t *testing.T) {
		w := doRequest(t, engine, http.MethodGet, "/api/v1/transcripts/99999/export", nil)
		assert.Equal(t, http.StatusNotFound, w.Code)
	})
}

func TestCreateExport(t *testing.T) {
	engine, svc := setupRouter(t)
	id := seedTranscript(t, svc, "job-file-export")

	w := doRequest(t, engine, http.MethodPost, fmt.Sprintf("/api/v1/transcripts/%d/export", id),
		ExportRequest{Format: "vtt", ExportedBy: "tester@example.com"})
	require.Equal(t, http.StatusCreated, w.Code)

	var resp map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "vtt", resp["format"])

	path, _ := resp["path"].(string)
	require.NotEmpty(t, path)
	t.Cleanup(func() { os.Remove(path) })

	content, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(string(content), "WEBVTT"))

	// The export shows up in the audit trail.
	history, err := svc.GetVersionHistory(context.Background(), id)
	require.NoError(t, err)
	require.Len(t, history.Exports, 1)
	assert.Equal(t, "vtt", history.Exports[0].Format)
	assert.Equal(t, "tester@example.com", history.Exports[0].ExportedBy)
}

func TestCreateExport_Errors(t *testing.T) {
	engine, svc := setupRouter(t)
	id := seedTranscript(t, svc, "job-file-export-errors")

	tests := []struct {
		name string
		path string
		body any
		code int
	}{
		{"missing format", fmt.Sprintf("/api/v1/transcripts/%d/export", id), map[string]any{}, http.StatusBadRequest},
		{"unsupported format", fmt.Sprintf("/api/v1/transcripts/%d/export", id), ExportRequest{Format: "docx"}, http.StatusBadRequest},
		{"negative version", fmt.Sprintf("/api/v1/transcripts/%d/export", id), ExportRequest{Format: "srt", Version: -1}, http.StatusBadRequest},
		{"unknown version", fmt.Sprintf("/api/v1/transcripts/%d/export", id), ExportRequest{Format: "srt", Version: 42}, http.StatusNotFound},
		{"unknown transcript", "/api/v1/transcripts/99999/export", ExportRequest{Format: "srt"}, http.StatusNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := doRequest(t, engine, http.MethodPost, tt.path, tt.body)
			assert.Equal(t, tt.code, w.Code)
		})
	}
}

func TestPruneVersions(t *testing.T) {
	engine, svc := setupRouter(t)
	id := seedTranscript(t, svc, "job-prune")

	for i := 2; i <= 4; i++ {
		_, err := svc.UpdateTranscript(context.Background(), id, fmt.Sprintf("Revision %d", i),
			[]transcript.Segment{{Start: 0, End: 12, Text: fmt.Sprintf("Revision %d", i)}})
		require.NoError(t, err)
	}

	w := doRequest(t, engine, http.MethodDelete, fmt.Sprintf("/api/v1/transcripts/%d/versions?keep=2", id), nil)
	require.Equal(t, http.StatusOK, w.Code)

	var resp map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, float64(2), resp["deleted"])

	versions, err := svc.GetVersions(context.Background(), id)
	require.NoError(t, err)
	assert.Len(t, versions, 2)
}

func TestPruneVersions_Errors(t *testing.T) {
	engine, svc := setupRouter(t)
	id := seedTranscript(t, svc, "job-prune-errors")

	tests := []struct {
		name string
		path string
		code int
	}{
		{"missing keep", fmt.Sprintf("/api/v1/transcripts/%d/versions", id), http.StatusBadRequest},
		{"non-numeric keep", fmt.Sprintf("/api/v1/transcripts/%d/versions?keep=two", id), http.StatusBadRequest},
		{"zero keep", fmt.Sprintf("/api/v1/transcripts/%d/versions?keep=0", id), http.StatusBadRequest},
		{"unknown transcript", "/api/v1/transcripts/99999/versions?keep=2", http.StatusNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := doRequest(t, engine, http.MethodDelete, tt.path, nil)
			assert.Equal(t, tt.code, w.Code)
		})
	}
}

func TestGetVersions(t *testing.T) {
	engine, svc := setupRouter(t)
	id := seedTranscript(t, svc, "job-list-versions")

	_, err := svc.UpdateTranscript(context.Background(), id, "Hello again",
		[]transcript.Segment{{Start: 0, End: 12, Text: "Hello again"}})
	require.NoError(t, err)

	w := doRequest(t, engine, http.MethodGet, fmt.Sprintf("/api/v1/transcripts/%d/versions", id), nil)
	require.Equal(t, http.StatusOK, w.Code)

	var resp struct {
		TranscriptID uint                      `json:"transcript_id"`
		Versions     []transcripts.VersionInfo `json:"versions"`
		Count        int                       `json:"count"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, id, resp.TranscriptID)
	assert.Equal(t, 2, resp.Count)
	require.Len(t, resp.Versions, 2)
	assert.Equal(t, 2, resp.Versions[0].VersionNumber)
	assert.True(t, resp.Versions[0].IsCurrent)
	assert.False(t, resp.Versions[1].IsCurrent)
}

func TestGetHistory(t *testing.T) {
	engine, svc := setupRouter(t)
	id := seedTranscript(t, svc, "job-history")

	_, err := svc.UpdateTranscript(context.Background(), id, "Hello history",
		[]transcript.Segment{{Start: 0, End: 12, Text: "Hello history"}})
	require.NoError(t, err)

	w := doRequest(t, engine, http.MethodGet, fmt.Sprintf("/api/v1/transcripts/%d/history", id), nil)
	require.Equal(t, http.StatusOK, w.Code)

	var history transcripts.VersionHistory
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &history))
	assert.Equal(t, id, history.TranscriptID)
	assert.Equal(t, "job-history", history.JobID)
	assert.Equal(t, 2, history.CurrentVersion)
	assert.Len(t, history.Versions, 2)
	assert.Empty(t, history.Exports)
}

func TestGetStats(t *testing.T) {
	engine, svc := setupRouter(t)
	first := seedTranscript(t, svc, "job-stats-1")
	seedTranscript(t, svc, "job-stats-2")

	_, err := svc.UpdateTranscript(context.Background(), first, "Hello stats",
		[]transcript.Segment{{Start: 0, End: 12, Text: "Hello stats"}})
	require.NoError(t, err)

	w := doRequest(t, engine, http.MethodGet, "/api/v1/transcripts/stats", nil)
	require.Equal(t, http.StatusOK, w.Code)

	var stats transcripts.Statistics
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &stats))
	assert.Equal(t, int64(2), stats.TotalTranscripts)
	assert.Equal(t, int64(3), stats.TotalVersions)
	assert.Equal(t, int64(2), stats.MaxVersionsPerTranscript)
	assert.InDelta(t, 1.5, stats.AvgVersionsPerTranscript, 0.001)
}
