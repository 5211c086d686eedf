package types

import (
	"github.com/scribeworks/scribe-api/internal/database"
	"github.com/scribeworks/scribe-api/internal/services/auth"
	"github.com/scribeworks/scribe-api/internal/services/files"
	"github.com/scribeworks/scribe-api/internal/services/jobs"
	"github.com/scribeworks/scribe-api/internal/services/transcripts"
	"github.com/scribeworks/scribe-api/internal/services/whisper"
)

// Dependencies holds all the dependencies needed by handlers
type Dependencies struct {
	DB                *database.DB
	TranscriptService transcripts.Service
	JobService        jobs.Service
	FileService       files.Service
	AuthService       *auth.Service
	ModelManifest     *whisper.Manifest
	EngineName        string
}
