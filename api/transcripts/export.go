package transcripts

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/scribeworks/scribe-api/api/types"
	"github.com/scribeworks/scribe-api/internal/services/transcripts"
	"github.com/scribeworks/scribe-api/pkg/config"
	"github.com/scribeworks/scribe-api/pkg/transcript"
)

// Export renders a transcript version and returns it in the response body
// @Summary Export a transcript
// @Description Renders a version in the requested format and returns the raw content. No file is written and no audit row is recorded.
// @Tags transcripts
// @Produce plain
// @Param id path int true "Transcript ID"
// @Param format query string false "Output format: srt, vtt, json, txt or csv (default srt)"
// @Param version query int false "Version number; omit for current"
// @Param timestamps query bool false "Prefix txt lines with timestamps"
// @Param pretty query bool false "Indent json output"
// @Param download query bool false "Set a Content-Disposition attachment header"
// @Success 200 {string} string "Rendered transcript"
// @Failure 400 {object} types.ErrorResponse
// @Failure 404 {object} types.ErrorResponse
// @Failure 500 {object} types.ErrorResponse
// @Router /api/v1/transcripts/{id}/export [get]
func Export(deps *types.Dependencies) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := types.ParseUintParam(c, "id")
		if !ok {
			return
		}

		format := normalizedFormatName(c.Query("format"))
		if format == "" {
			format = defaultExportFormat()
		}

		opts := []transcripts.Option{}
		if raw := c.Query("version"); raw != "" {
			version, err := strconv.Atoi(raw)
			if err != nil || version < 1 {
				types.SendBadRequest(c, "version must be a positive integer")
				return
			}
			opts = append(opts, transcripts.WithVersion(version))
		}
		includeTimestamps := defaultIncludeTimestamps()
		if raw := c.Query("timestamps"); raw != "" {
			includeTimestamps = raw == "true"
		}
		opts = append(opts, transcripts.WithFormatOptions(renderOptions(
			includeTimestamps,
			c.Query("pretty") == "true",
		)...))

		content, err := deps.TranscriptService.ExportTranscript(c.Request.Context(), id, format, opts...)
		if err != nil {
			respondServiceError(c, "export transcript", err)
			return
		}

		info := transcript.GetFormatInfo(format)
		contentType := info.MIMEType
		if contentType == "" {
			contentType = "text/plain; charset=utf-8"
		}
		if c.Query("download") == "true" {
			filename := fmt.Sprintf("transcript_%d%s", id, info.Extension)
			c.Header("Content-Disposition", `attachment; filename="`+filename+`"`)
		}

		c.Data(200, contentType, []byte(content))
	}
}

// CreateExport renders a version to a file under the export directory
// @Summary Export a transcript to a file
// @Description Renders a version, writes it under the configured export directory and records an export audit row on the transcript.
// @Tags transcripts
// @Accept json
// @Produce json
// @Param id path int true "Transcript ID"
// @Param request body ExportRequest true "Export parameters"
// @Success 201 {object} map[string]interface{}
// @Failure 400 {object} types.ErrorResponse
// @Failure 404 {object} types.ErrorResponse
// @Failure 500 {object} types.ErrorResponse
// @Router /api/v1/transcripts/{id}/export [post]
func CreateExport(deps *types.Dependencies) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := types.ParseUintParam(c, "id")
		if !ok {
			return
		}

		var req ExportRequest
		if !types.BindJSONOrError(c, &req) {
			return
		}
		if req.Version < 0 {
			types.SendBadRequest(c, "version must not be negative")
			return
		}

		format := normalizedFormatName(req.Format)
		info := transcript.GetFormatInfo(format)
		if info.Name == "" {
			types.SendBadRequest(c, "Format must be one of: "+strings.Join(transcript.SupportedFormats(), ", "))
			return
		}

		outputPath := filepath.Join(exportDir(), exportFilename(id, info.Extension))
		opts := []transcripts.Option{
			transcripts.WithOutputPath(outputPath),
			transcripts.WithCreatedBy(req.ExportedBy),
			transcripts.WithFormatOptions(renderOptions(req.IncludeTimestamps, req.Pretty)...),
		}
		if req.Version > 0 {
			opts = append(opts, transcripts.WithVersion(req.Version))
		}

		content, err := deps.TranscriptService.ExportTranscript(c.Request.Context(), id, format, opts...)
		if err != nil {
			respondServiceError(c, "export transcript", err)
			return
		}

		response := gin.H{
			"transcript_id": id,
			"format":        format,
			"path":          outputPath,
			"size_bytes":    len(content),
		}
		if req.Version > 0 {
			response["version"] = req.Version
		}
		c.JSON(201, response)
	}
}

func renderOptions(includeTimestamps, pretty bool) []transcript.Option {
	opts := []transcript.Option{}
	if includeTimestamps {
		opts = append(opts, transcript.WithTimestamps(true))
	}
	if pretty {
		opts = append(opts, transcript.WithPretty(true))
	}
	return opts
}

func defaultExportFormat() string {
	if cfg := loadedConfig(); cfg != nil {
		if format := normalizedFormatName(cfg.Export.DefaultFormat); format != "" {
			return format
		}
	}
	return transcript.FormatSRT
}

func defaultIncludeTimestamps() bool {
	if cfg := loadedConfig(); cfg != nil {
		return cfg.Export.IncludeTimestamps
	}
	return false
}

func exportDir() string {
	if cfg := loadedConfig(); cfg != nil && cfg.Storage.ExportDir != "" {
		return cfg.Storage.ExportDir
	}
	return os.TempDir()
}

// loadedConfig returns the process config, or nil when none was initialized.
// Handlers fall back to built-in defaults so tests can run without settings.
func loadedConfig() *config.Config {
	if !config.IsInitialized() {
		return nil
	}
	cfg, err := config.GetConfig()
	if err != nil {
		return nil
	}
	return cfg
}

// exportFilename keeps server-side export names unique per transcript and
// second. Collisions within a second overwrite, which is acceptable for an
// idempotent rendering.
func exportFilename(id uint, extension string) string {
	return fmt.Sprintf("transcript_%d_%s%s", id, time.Now().UTC().Format("20060102T150405Z"), extension)
}
