package models

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/scribeworks/scribe-api/api/types"
	"github.com/scribeworks/scribe-api/internal/services/whisper"
)

func TestList(t *testing.T) {
	gin.SetMode(gin.TestMode)

	engine := gin.New()
	RegisterRoutes(engine.Group("/api/v1/models"), &types.Dependencies{
		ModelManifest: whisper.DefaultManifest(),
	})

	req := httptest.NewRequest(http.MethodGet, "/api/v1/models", nil)
	w := httptest.NewRecorder()
	engine.ServeHTTP(w, req)
	require.Equal(t, http.StatusOK, w.Code)

	var resp struct {
		Models       []ModelEntry `json:"models"`
		Count        int          `json:"count"`
		DefaultModel string       `json:"default_model"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))

	require.Equal(t, 7, resp.Count)
	assert.Equal(t, "base", resp.DefaultModel)

	// Built-in ordering runs smallest to largest.
	assert.Equal(t, "tiny", resp.Models[0].Name)
	assert.Equal(t, "large-v3", resp.Models[6].Name)

	var defaults int
	for _, entry := range resp.Models {
		if entry.Default {
			defaults++
			assert.Equal(t, "base", entry.Name)
		}
	}
	assert.Equal(t, 1, defaults)
}

func TestList_CustomManifest(t *testing.T) {
	gin.SetMode(gin.TestMode)

	manifest := &whisper.Manifest{Models: map[string]whisper.ModelInfo{
		"base":        {VRAMGB: 1, Speed: "fast"},
		"distil-v3":   {VRAMGB: 4, Speed: "fast", Description: "Distilled large"},
		"house-tuned": {Path: "/models/house.bin"},
	}}

	engine := gin.New()
	RegisterRoutes(engine.Group("/api/v1/models"), &types.Dependencies{ModelManifest: manifest})

	req := httptest.NewRequest(http.MethodGet, "/api/v1/models", nil)
	w := httptest.NewRecorder()
	engine.ServeHTTP(w, req)
	require.Equal(t, http.StatusOK, w.Code)

	var resp struct {
		Models []ModelEntry `json:"models"`
		Count  int          `json:"count"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.Equal(t, 3, resp.Count)

	// Known names keep the built-in order, extras follow alphabetically.
	assert.Equal(t, "base", resp.Models[0].Name)
	assert.Equal(t, "distil-v3", resp.Models[1].Name)
	assert.Equal(t, "house-tuned", resp.Models[2].Name)
}
