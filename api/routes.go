package api

import (
	"fmt"
	"sync"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	"github.com/scribeworks/scribe-api/api/files"
	"github.com/scribeworks/scribe-api/api/health"
	"github.com/scribeworks/scribe-api/api/jobs"
	"github.com/scribeworks/scribe-api/api/models"
	"github.com/scribeworks/scribe-api/api/system"
	"github.com/scribeworks/scribe-api/api/transcripts"
	"github.com/scribeworks/scribe-api/api/types"
	"github.com/scribeworks/scribe-api/api/version"
	_ "github.com/scribeworks/scribe-api/docs/swagger"
	"github.com/scribeworks/scribe-api/internal/services/auth"
	filesService "github.com/scribeworks/scribe-api/internal/services/files"
	jobsService "github.com/scribeworks/scribe-api/internal/services/jobs"
	transcriptsService "github.com/scribeworks/scribe-api/internal/services/transcripts"
	"github.com/scribeworks/scribe-api/internal/services/whisper"
	"github.com/scribeworks/scribe-api/pkg/config"
)

// uploadOverheadBytes covers multipart framing so a file exactly at the
// configured maximum still fits in the request body.
const uploadOverheadBytes = 1 << 20

// RegisterRoutes registers all API routes
func RegisterRoutes(engine *gin.Engine, deps *types.Dependencies, rateLimiters *sync.Map, cleanupStop chan struct{}, cleanupInitialized *sync.Once) error {
	// Public routes (no rate limiting, no auth)
	health.RegisterRoutes(engine, deps)
	version.RegisterRoutes(engine, deps)

	// Swagger documentation
	engine.GET("/docs", func(c *gin.Context) {
		c.Redirect(301, "/docs/index.html")
	})
	docsGroup := engine.Group("/docs")
	docsGroup.GET("/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	engine.NoRoute(NotFoundHandler())

	// An uninitialized config unmarshals to zero values, which disables
	// auth and rate limiting; tests rely on that.
	cfg, err := config.GetConfig()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	if deps == nil {
		deps = &types.Dependencies{}
	}

	if deps.ModelManifest == nil {
		manifest, err := whisper.LoadManifest(cfg.Whisper.ManifestPath)
		if err != nil {
			return fmt.Errorf("failed to load model manifest: %w", err)
		}
		deps.ModelManifest = manifest
	}
	if deps.EngineName == "" {
		deps.EngineName = cfg.Whisper.Engine
	}

	v1 := engine.Group("/api/v1")

	if cfg.Auth.Enabled {
		if deps.AuthService == nil {
			authService, err := auth.NewService(cfg.Auth.JWTSecret, cfg.Auth.Issuer)
			if err != nil {
				return fmt.Errorf("failed to initialize auth: %w", err)
			}
			deps.AuthService = authService
		}
		v1.Use(BearerAuth(deps.AuthService))
	}

	limiter := func(name string) gin.HandlerFunc {
		perMinute := endpointRateLimit(cfg, name)
		return PerClientRateLimit(rateLimiters, cleanupStop, cleanupInitialized, perMinute, burstFor(perMinute))
	}

	// Model discovery and operational endpoints work without a database.
	modelsGroup := v1.Group("/models")
	models.RegisterRoutes(modelsGroup, deps)

	systemGroup := v1.Group("/system")
	system.RegisterRoutes(systemGroup, deps)

	if deps.DB != nil && deps.DB.DB != nil {
		if deps.TranscriptService == nil {
			initializeTranscriptService(deps)
		}
		if deps.JobService == nil {
			initializeJobService(deps)
		}
		if deps.FileService == nil {
			initializeFileService(deps, cfg)
		}

		// Transcript routes; exports get their own, usually tighter, budget
		transcriptsGroup := v1.Group("/transcripts")
		transcriptsGroup.Use(RequestSizeLimit())
		var exportMiddleware []gin.HandlerFunc
		if cfg.RateLimiting.Enabled {
			transcriptsGroup.Use(limiter("transcripts"))
			exportMiddleware = append(exportMiddleware, limiter("export"))
		}
		transcripts.RegisterRoutes(transcriptsGroup, deps, exportMiddleware...)

		jobsGroup := v1.Group("/jobs")
		jobsGroup.Use(RequestSizeLimit())
		if cfg.RateLimiting.Enabled {
			jobsGroup.Use(limiter("jobs"))
		}
		jobs.RegisterRoutes(jobsGroup, deps)

		// Uploads need room for the file itself, not the JSON body cap
		filesGroup := v1.Group("/files")
		if cfg.Storage.MaxFileSize > 0 {
			filesGroup.Use(RequestSizeLimitWithSize(cfg.Storage.MaxFileSize + uploadOverheadBytes))
		}
		if cfg.RateLimiting.Enabled {
			filesGroup.Use(limiter("files"))
		}
		files.RegisterRoutes(filesGroup, deps)
	}

	return nil
}

// initializeTranscriptService wires the versioned transcript store
func initializeTranscriptService(deps *types.Dependencies) {
	deps.TranscriptService = transcriptsService.NewService(transcriptsService.NewRepository(deps.DB.DB))
}

// initializeJobService wires the job queue
func initializeJobService(deps *types.Dependencies) {
	deps.JobService = jobsService.NewService(jobsService.NewRepository(deps.DB.DB))
}

// initializeFileService wires content-addressed upload storage
func initializeFileService(deps *types.Dependencies, cfg *config.Config) {
	deps.FileService = filesService.NewService(filesService.NewRepository(deps.DB.DB), filesService.Config{
		UploadDir:        cfg.Storage.UploadDir,
		TempDir:          cfg.Storage.TempDir,
		MaxFileSize:      cfg.Storage.MaxFileSize,
		QuotaBytes:       cfg.Storage.QuotaBytes,
		WarningThreshold: cfg.Storage.WarningThreshold,
		AllowedFormats:   cfg.Storage.AllowedFormats,
	})
}

// endpointRateLimit returns the per-minute request budget for a named
// endpoint group, falling back to the "default" entry, then to 120.
func endpointRateLimit(cfg *config.Config, name string) int {
	if limit, ok := cfg.RateLimiting.Endpoints[name]; ok && limit > 0 {
		return limit
	}
	if limit, ok := cfg.RateLimiting.Endpoints["default"]; ok && limit > 0 {
		return limit
	}
	return 120
}

// burstFor sizes the burst at a quarter of the per-minute budget, floored
// at 5 so tight budgets still absorb small spikes.
func burstFor(perMinute int) int {
	burst := perMinute / 4
	if burst < 5 {
		burst = 5
	}
	return burst
}

// NotFoundHandler handles requests to unknown endpoints
func NotFoundHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.JSON(404, gin.H{
			"status":  "error",
			"message": "The requested endpoint was not found",
			"path":    c.Request.URL.Path,
		})
	}
}
