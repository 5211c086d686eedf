package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/scribeworks/scribe-api/internal/database"
	"github.com/scribeworks/scribe-api/internal/models"
	"github.com/scribeworks/scribe-api/pkg/config"
)

// migrateCmd represents the migrate command
var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Run database migrations",
	Long: `Manage the database schema for the Scribe API.

The schema is managed additively through GORM auto-migration: "up" creates
missing tables, columns, and indexes for the current model set, and "status"
reports which tables exist. Auto-migration never drops columns or tables.

Available subcommands:
  up      - Create or update the schema for all models
  status  - Show which tables exist`,
}

// migrateUpCmd applies the schema
var migrateUpCmd = &cobra.Command{
	Use:   "up",
	Short: "Create or update the schema",
	Long: `Bring the database schema up to date.

Opens the configured database and auto-migrates every model, creating
missing tables, columns, and indexes.`,
	RunE: runMigrateUp,
}

// migrateStatusCmd shows migration status
var migrateStatusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show schema status",
	Long: `Display which model tables exist in the configured database.

Tables reported as missing are created by "migrate up".`,
	RunE: runMigrateStatus,
}

func init() {
	rootCmd.AddCommand(migrateCmd)
	migrateCmd.AddCommand(migrateUpCmd)
	migrateCmd.AddCommand(migrateStatusCmd)
}

func runMigrateUp(cmd *cobra.Command, args []string) error {
	db, err := database.InitializeWithMigrations()
	if err != nil {
		return fmt.Errorf("migration failed: %w", err)
	}
	defer db.Close()

	out := cmd.OutOrStdout()
	fmt.Fprintln(out, "Schema is up to date")
	for _, table := range schemaTables() {
		fmt.Fprintf(out, "  %s\n", table.name)
	}

	return nil
}

func runMigrateStatus(cmd *cobra.Command, args []string) error {
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

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "Database: %s\n", cfg.Database.Path)
	fmt.Fprintln(out, strings.Repeat("-", 40))

	missing := 0
	for _, table := range schemaTables() {
		state := "ok"
		if !db.Migrator().HasTable(table.model) {
			state = "missing"
			missing++
		}
		fmt.Fprintf(out, "  %-22s %s\n", table.name, state)
	}

	if missing > 0 {
		fmt.Fprintf(out, "\n%d table(s) missing; run \"scribe-api migrate up\"\n", missing)
	}

	return nil
}

type schemaTable struct {
	name  string
	model any
}

// schemaTables lists every model the schema carries, in creation order
func schemaTables() []schemaTable {
	return []schemaTable{
		{"transcripts", &models.Transcript{}},
		{"transcript_versions", &models.TranscriptVersion{}},
		{"export_records", &models.ExportRecord{}},
		{"jobs", &models.Job{}},
		{"audio_files", &models.AudioFile{}},
	}
}
