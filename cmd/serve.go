package cmd

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/scribeworks/scribe-api/api"
	"github.com/scribeworks/scribe-api/api/types"
	"github.com/scribeworks/scribe-api/internal/database"
	filesService "github.com/scribeworks/scribe-api/internal/services/files"
	jobsService "github.com/scribeworks/scribe-api/internal/services/jobs"
	transcriptsService "github.com/scribeworks/scribe-api/internal/services/transcripts"
	"github.com/scribeworks/scribe-api/internal/services/whisper"
	"github.com/scribeworks/scribe-api/internal/services/workers"
	"github.com/scribeworks/scribe-api/pkg/config"
	"github.com/scribeworks/scribe-api/pkg/ffmpeg"
)

var (
	serverHost string
	serverPort int
	noWorkers  bool
)

// serveCmd represents the serve command
var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the API server",
	Long: `Start the Scribe API server with the configured settings.

The server accepts audio uploads and transcript edits over HTTP while a
background worker pool drains the transcription job queue. When retention
is enabled, a sweeper prunes old versions, finished jobs, and orphaned
audio on an interval.

Example:
  scribe-api serve
  scribe-api serve --port 9090
  scribe-api serve --host 0.0.0.0 --port 8080 --no-workers`,
	RunE: runServer,
}

func init() {
	rootCmd.AddCommand(serveCmd)

	// Server flags
	serveCmd.Flags().StringVar(&serverHost, "host", "", "server host (overrides config)")
	serveCmd.Flags().IntVar(&serverPort, "port", 0, "server port (overrides config)")
	serveCmd.Flags().BoolVar(&noWorkers, "no-workers", false, "serve HTTP only, without the transcription worker pool")
}

func runServer(cmd *cobra.Command, args []string) error {
	// Config was initialized by the root command hook
	cfg, err := config.GetConfig()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	// Use config values if flags not provided
	if serverHost == "" {
		serverHost = cfg.Server.Host
	}
	if serverPort == 0 {
		serverPort = cfg.Server.Port
	}

	db, err := database.InitializeWithMigrations()
	if err != nil {
		return fmt.Errorf("failed to initialize database: %w", err)
	}
	defer db.Close()

	transcriptSvc := transcriptsService.NewService(transcriptsService.NewRepository(db.DB))
	jobSvc := jobsService.NewService(jobsService.NewRepository(db.DB))
	fileSvc := filesService.NewService(filesService.NewRepository(db.DB), filesService.Config{
		UploadDir:        cfg.Storage.UploadDir,
		TempDir:          cfg.Storage.TempDir,
		MaxFileSize:      cfg.Storage.MaxFileSize,
		QuotaBytes:       cfg.Storage.QuotaBytes,
		WarningThreshold: cfg.Storage.WarningThreshold,
		AllowedFormats:   cfg.Storage.AllowedFormats,
	})

	manifest, err := whisper.LoadManifest(cfg.Whisper.ManifestPath)
	if err != nil {
		return fmt.Errorf("failed to load model manifest: %w", err)
	}

	deps := &types.Dependencies{
		DB:                db,
		TranscriptService: transcriptSvc,
		JobService:        jobSvc,
		FileService:       fileSvc,
		ModelManifest:     manifest,
		EngineName:        cfg.Whisper.Engine,
	}

	// Background machinery shares one cancellable context so shutdown
	// reaches a worker mid-transcription
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	if !noWorkers && cfg.Processing.Workers > 0 {
		engine, err := whisper.NewEngine(whisper.Config{
			Engine:      cfg.Whisper.Engine,
			PythonPath:  cfg.Whisper.PythonPath,
			Model:       cfg.Whisper.Model,
			ModelDir:    cfg.Whisper.ModelDir,
			Device:      cfg.Whisper.Device,
			ComputeType: cfg.Whisper.ComputeType,
			BeamSize:    cfg.Whisper.BeamSize,
			Language:    cfg.Whisper.Language,
			Timeout:     cfg.Whisper.Timeout,
		})
		if err != nil {
			return fmt.Errorf("failed to initialize transcription engine: %w", err)
		}

		prober := ffmpeg.New(cfg.Processing.FFmpegPath, cfg.Processing.FFprobePath, cfg.Processing.FFmpegTimeout)

		processor := workers.NewTranscriptionProcessor(jobSvc, transcriptSvc, fileSvc, engine, prober, workers.ProcessorConfig{
			TempDir:      cfg.Storage.TempDir,
			ExportDir:    cfg.Storage.ExportDir,
			DefaultModel: cfg.Whisper.Model,
		})

		pool := workers.NewWorkerPool(jobSvc, cfg.Processing.Workers, cfg.Processing.PollInterval)
		pool.RegisterProcessor(processor)
		if err := pool.Start(ctx); err != nil {
			return fmt.Errorf("failed to start worker pool: %w", err)
		}
		defer pool.Stop()
	} else {
		log.Println("[INFO] Worker pool disabled; jobs will queue until a worker drains them")
	}

	if cfg.Retention.Enabled {
		sweeper := workers.NewRetentionSweeper(jobSvc, transcriptSvc, fileSvc,
			cfg.Retention.SweepInterval, cfg.Retention.KeepVersions, cfg.Retention.JobMaxAgeDays)
		sweeper.Start(ctx)
		defer sweeper.Stop()
	}

	srv := api.NewServerWithConfig(fmt.Sprintf("%s:%d", serverHost, serverPort), cfg.Server)
	srv.SetDependencies(deps)
	if err := srv.Initialize(); err != nil {
		return fmt.Errorf("failed to initialize server: %w", err)
	}

	// Channel to receive server errors
	serverErr := make(chan error, 1)
	go func() {
		serverErr <- srv.Start()
	}()

	log.Printf("[INFO] Scribe API listening on %s:%d (engine: %s)", serverHost, serverPort, cfg.Whisper.Engine)

	// Wait for interrupt signal or server error
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)

	select {
	case <-stop:
		log.Println("[INFO] Shutting down")
	case err := <-serverErr:
		if err != nil {
			return err
		}
		log.Println("[INFO] Server closed; shutting down")
	}

	shutdownCtx, cancelShutdown := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancelShutdown()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("server forced to shutdown: %w", err)
	}

	log.Println("[INFO] Server gracefully stopped")
	return nil
}
