package cmd

import (
	"bytes"
	"context"
	"path/filepath"
	"strconv"
	"strings"
	"testing"

	"github.com/scribeworks/scribe-api/internal/database"
	transcriptsService "github.com/scribeworks/scribe-api/internal/services/transcripts"
	"github.com/scribeworks/scribe-api/pkg/transcript"
)

func TestExportCommandValidation(t *testing.T) {
	tests := []struct {
		name        string
		args        []string
		errContains string
	}{
		{
			name:        "export command with non-numeric id",
			args:        []string{"export", "abc", "--format", "srt"},
			errContains: "transcript id",
		},
		{
			name:        "export command with unsupported format",
			args:        []string{"export", "1", "--format", "yaml"},
			errContains: "unsupported format",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cmd := NewRootCmd()
			buf := new(bytes.Buffer)
			cmd.SetOut(buf)
			cmd.SetErr(buf)
			cmd.SetArgs(tt.args)

			err := cmd.Execute()
			if err == nil {
				t.Fatal("Expected an error, got nil")
			}
			if !strings.Contains(err.Error(), tt.errContains) {
				t.Errorf("Expected error to contain %q, got %q", tt.errContains, err.Error())
			}
		})
	}
}

func TestExportCommandRendersStoredTranscript(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "export_test.db")
	t.Setenv("SCRIBE_DATABASE_PATH", dbPath)

	db, err := database.InitializeWithMigrations()
	if err != nil {
		t.Fatalf("Failed to initialize database: %v", err)
	}

	segments := []transcript.Segment{
		{Start: 0, End: 2.5, Text: "Hello there."},
		{Start: 2.5, End: 5, Text: "Welcome to the show."},
	}
	svc := transcriptsService.NewService(transcriptsService.NewRepository(db.DB))
	id, err := svc.SaveTranscript(context.Background(), "job-export-cli", transcript.JoinText(segments), segments)
	if err != nil {
		t.Fatalf("Failed to seed transcript: %v", err)
	}
	if err := db.Close(); err != nil {
		t.Fatalf("Failed to close database: %v", err)
	}

	cmd := NewRootCmd()
	buf := new(bytes.Buffer)
	cmd.SetOut(buf)
	cmd.SetErr(buf)
	cmd.SetArgs([]string{"export", strconv.FormatUint(uint64(id), 10), "--format", "srt"})

	if err := cmd.Execute(); err != nil {
		t.Fatalf("export failed: %v", err)
	}

	output := buf.String()
	if !strings.Contains(output, "Hello there.") {
		t.Errorf("Expected SRT output to contain the first segment, got %q", output)
	}
	if !strings.Contains(output, "-->") {
		t.Errorf("Expected SRT timing lines, got %q", output)
	}

	// Unknown transcript id maps to a not-found error
	cmd.SetArgs([]string{"export", "9999", "--format", "srt"})
	err = cmd.Execute()
	if err == nil {
		t.Fatal("Expected an error for an unknown transcript, got nil")
	}
	if !strings.Contains(err.Error(), "transcript not found") {
		t.Errorf("Expected a not-found error, got %q", err.Error())
	}
}
