package cmd

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/scribeworks/scribe-api/internal/database"
	filesService "github.com/scribeworks/scribe-api/internal/services/files"
	jobsService "github.com/scribeworks/scribe-api/internal/services/jobs"
	transcriptsService "github.com/scribeworks/scribe-api/internal/services/transcripts"
	"github.com/scribeworks/scribe-api/pkg/config"
)

// statsCmd prints store-wide counters straight from the database
var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Show store statistics",
	Long: `Print aggregate counters for transcripts, jobs, and audio storage.

Reads the configured database directly; the server does not need to be
running.`,
	RunE: runStats,
}

func init() {
	rootCmd.AddCommand(statsCmd)
}

func runStats(cmd *cobra.Command, args []string) error {
	cfg, err := config.GetConfig()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	if cfg.Database.Path == "" {
		return fmt.Errorf("database path is not configured")
	}

	db, err := database.InitializeWithConfig(cfg.Database)
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}
	defer db.Close()

	ctx := cmd.Context()
	out := cmd.OutOrStdout()

	transcriptStats, err := transcriptsService.NewService(transcriptsService.NewRepository(db.DB)).GetStatistics(ctx)
	if err != nil {
		return fmt.Errorf("loading transcript statistics: %w", err)
	}

	jobStats, err := jobsService.NewService(jobsService.NewRepository(db.DB)).Stats(ctx)
	if err != nil {
		return fmt.Errorf("loading job statistics: %w", err)
	}

	fileSvc := filesService.NewService(filesService.NewRepository(db.DB), filesService.Config{
		UploadDir:  cfg.Storage.UploadDir,
		QuotaBytes: cfg.Storage.QuotaBytes,
	})
	storageStats, err := fileSvc.Stats(ctx)
	if err != nil {
		return fmt.Errorf("loading storage statistics: %w", err)
	}

	fmt.Fprintln(out, "Transcripts")
	fmt.Fprintln(out, strings.Repeat("-", 40))
	fmt.Fprintf(out, "  %-28s %d\n", "total", transcriptStats.TotalTranscripts)
	fmt.Fprintf(out, "  %-28s %d\n", "versions", transcriptStats.TotalVersions)
	fmt.Fprintf(out, "  %-28s %.1f\n", "avg versions per transcript", transcriptStats.AvgVersionsPerTranscript)
	fmt.Fprintf(out, "  %-28s %d\n", "max versions", transcriptStats.MaxVersionsPerTranscript)
	fmt.Fprintf(out, "  %-28s %d\n", "exports", transcriptStats.TotalExports)
	if len(transcriptStats.ExportsByFormat) > 0 {
		fmt.Fprintf(out, "  %-28s %s\n", "exports by format", formatCounts(transcriptStats.ExportsByFormat))
	}

	fmt.Fprintln(out)
	fmt.Fprintln(out, "Jobs")
	fmt.Fprintln(out, strings.Repeat("-", 40))
	fmt.Fprintf(out, "  %-28s %d\n", "total", jobStats.TotalJobs)
	fmt.Fprintf(out, "  %-28s %d\n", "pending", jobStats.PendingJobs)
	fmt.Fprintf(out, "  %-28s %d\n", "processing", jobStats.ProcessingJobs)
	fmt.Fprintf(out, "  %-28s %d\n", "completed", jobStats.CompletedJobs)
	fmt.Fprintf(out, "  %-28s %d\n", "failed", jobStats.FailedJobs)
	fmt.Fprintf(out, "  %-28s %d\n", "permanently failed", jobStats.PermanentlyFailedJobs)
	fmt.Fprintf(out, "  %-28s %d\n", "cancelled", jobStats.CancelledJobs)
	if jobStats.AvgProcessingSeconds > 0 {
		fmt.Fprintf(out, "  %-28s %.1fs\n", "avg processing time", jobStats.AvgProcessingSeconds)
	}

	fmt.Fprintln(out)
	fmt.Fprintln(out, "Storage")
	fmt.Fprintln(out, strings.Repeat("-", 40))
	fmt.Fprintf(out, "  %-28s %d\n", "audio files", storageStats.TotalFiles)
	fmt.Fprintf(out, "  %-28s %s\n", "size", formatBytes(storageStats.TotalSizeBytes))
	if storageStats.TotalDurationSeconds > 0 {
		duration := time.Duration(storageStats.TotalDurationSeconds * float64(time.Second)).Round(time.Second)
		fmt.Fprintf(out, "  %-28s %s\n", "audio duration", duration)
	}
	if storageStats.QuotaBytes > 0 {
		fmt.Fprintf(out, "  %-28s %s (%.1f%% used)\n", "quota", formatBytes(storageStats.QuotaBytes), storageStats.UsagePercent)
	} else {
		fmt.Fprintf(out, "  %-28s unlimited\n", "quota")
	}

	return nil
}

// formatCounts renders a count map as "srt=3, vtt=1" with stable ordering
func formatCounts(counts map[string]int64) string {
	keys := make([]string, 0, len(counts))
	for key := range counts {
		keys = append(keys, key)
	}
	sort.Strings(keys)

	parts := make([]string, 0, len(keys))
	for _, key := range keys {
		parts = append(parts, fmt.Sprintf("%s=%d", key, counts[key]))
	}
	return strings.Join(parts, ", ")
}

// formatBytes formats byte count as human-readable string
func formatBytes(bytes int64) string {
	const unit = 1024
	if bytes < unit {
		return fmt.Sprintf("%d B", bytes)
	}
	div, exp := int64(unit), 0
	for n := bytes / unit; n >= unit; n /= unit {
		div *= unit
		exp++
	}
	return fmt.Sprintf("%.1f %cB", float64(bytes)/float64(div), "KMGTPE"[exp])
}
