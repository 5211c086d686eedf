package cmd

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/scribeworks/scribe-api/internal/database"
	transcriptsService "github.com/scribeworks/scribe-api/internal/services/transcripts"
	"github.com/scribeworks/scribe-api/pkg/config"
	apperrors "github.com/scribeworks/scribe-api/pkg/errors"
	"github.com/scribeworks/scribe-api/pkg/transcript"
)

var (
	exportFormat  string
	exportVersion int
	exportOutput  string
)

// exportCmd renders a stored transcript without going through the HTTP API
var exportCmd = &cobra.Command{
	Use:   "export [transcript id]",
	Short: "Export a stored transcript",
	Long: `Render a stored transcript in one of the supported formats.

Reads the transcript from the configured database and prints the rendering
to stdout, or writes it to a file with --output. A specific version can be
selected with --version; the default is the current one. File exports are
recorded in the export audit log.

Example:
  scribe-api export 42 --format srt
  scribe-api export 42 --format json --version 3
  scribe-api export 42 --format vtt --output captions.vtt`,
	Args: cobra.ExactArgs(1),
	RunE: runExport,
}

func init() {
	rootCmd.AddCommand(exportCmd)

	exportCmd.Flags().StringVarP(&exportFormat, "format", "f", "", "output format: srt, vtt, json, txt, csv (defaults to the configured format)")
	exportCmd.Flags().IntVar(&exportVersion, "version", 0, "version to export, 0 for current")
	exportCmd.Flags().StringVarP(&exportOutput, "output", "o", "", "write to a file instead of stdout")
}

func runExport(cmd *cobra.Command, args []string) error {
	id, err := strconv.ParseUint(args[0], 10, 32)
	if err != nil {
		return apperrors.ValidationError("transcript id", fmt.Sprintf("%q is not a positive integer", args[0]))
	}

	cfg, err := config.GetConfig()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	format := strings.ToLower(strings.TrimSpace(exportFormat))
	if format == "" {
		format = cfg.Export.DefaultFormat
	}
	if format == "" {
		format = transcript.FormatSRT
	}
	if transcript.GetFormatInfo(format).Name == "" {
		return apperrors.UnsupportedFormatError(format, transcript.SupportedFormats())
	}

	if cfg.Database.Path == "" {
		return fmt.Errorf("database path is not configured")
	}
	db, err := database.InitializeWithConfig(cfg.Database)
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}
	defer db.Close()

	svc := transcriptsService.NewService(transcriptsService.NewRepository(db.DB))

	opts := []transcriptsService.Option{transcriptsService.WithCreatedBy("cli")}
	if exportVersion > 0 {
		opts = append(opts, transcriptsService.WithVersion(exportVersion))
	}
	if exportOutput != "" {
		opts = append(opts, transcriptsService.WithOutputPath(exportOutput))
	}
	if format == transcript.FormatTXT && cfg.Export.IncludeTimestamps {
		opts = append(opts, transcriptsService.WithFormatOptions(transcript.WithTimestamps(true)))
	}

	content, err := svc.ExportTranscript(cmd.Context(), uint(id), format, opts...)
	if err != nil {
		switch {
		case errors.Is(err, transcriptsService.ErrTranscriptNotFound):
			return apperrors.NotFound("transcript", id)
		case errors.Is(err, transcriptsService.ErrVersionNotFound):
			return apperrors.NotFound("version", exportVersion)
		}
		return err
	}

	if exportOutput == "" {
		fmt.Fprint(cmd.OutOrStdout(), content)
	}

	return nil
}
