// Package models exposes the whisper model manifest so clients can discover
// what they may ask for before queueing a job.
package models

import (
	"github.com/gin-gonic/gin"

	"github.com/scribeworks/scribe-api/api/types"
	"github.com/scribeworks/scribe-api/internal/services/whisper"
	"github.com/scribeworks/scribe-api/pkg/config"
)

// ModelEntry describes one selectable whisper model
type ModelEntry struct {
	Name        string  `json:"name"`
	VRAMGB      float64 `json:"vram_gb,omitempty"`
	Speed       string  `json:"speed,omitempty"`
	Description string  `json:"description,omitempty"`
	Default     bool    `json:"default,omitempty"`
}

// List returns the models jobs may request
// @Summary List whisper models
// @Description Lists the models in the manifest, smallest first, with resource needs and which one is the default.
// @Tags models
// @Produce json
// @Success 200 {object} map[string]interface{}
// @Router /api/v1/models [get]
func List(deps *types.Dependencies) gin.HandlerFunc {
	return func(c *gin.Context) {
		manifest := deps.ModelManifest
		if manifest == nil {
			manifest = whisper.DefaultManifest()
		}
		defaultModel := defaultModelName()

		names := manifest.Names()
		entries := make([]ModelEntry, 0, len(names))
		for _, name := range names {
			info, _ := manifest.Resolve(name)
			entries = append(entries, ModelEntry{
				Name:        name,
				VRAMGB:      info.VRAMGB,
				Speed:       info.Speed,
				Description: info.Description,
				Default:     name == defaultModel,
			})
		}

		c.JSON(200, gin.H{
			"models":        entries,
			"count":         len(entries),
			"default_model": defaultModel,
		})
	}
}

func defaultModelName() string {
	if config.IsInitialized() {
		if cfg, err := config.GetConfig(); err == nil && cfg.Whisper.Model != "" {
			return cfg.Whisper.Model
		}
	}
	return "base"
}
