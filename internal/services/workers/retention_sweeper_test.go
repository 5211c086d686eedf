package workers

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/scribeworks/scribe-api/internal/models"
	"github.com/scribeworks/scribe-api/internal/services/files"
	"github.com/scribeworks/scribe-api/pkg/transcript"
)

func TestRetentionSweeper_Defaults(t *testing.T) {
	s := NewRetentionSweeper(nil, nil, nil, 0, 0, 0)

	assert.Equal(t, time.Hour, s.interval)
	assert.Equal(t, 10, s.keepVersions)
	assert.Equal(t, 30, s.jobMaxAgeDays)
}

func TestRetentionSweeper_StartRunsInitialSweep(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	segments := []transcript.Segment{{Start: 0, End: 2, Text: "retained"}}

	transcriptID, err := env.transcriptService.SaveTranscript(ctx, "job-ret-1", "v1", segments)
	require.NoError(t, err)
	_, err = env.transcriptService.UpdateTranscript(ctx, transcriptID, "v2", segments)
	require.NoError(t, err)
	_, err = env.transcriptService.UpdateTranscript(ctx, transcriptID, "v3", segments)
	require.NoError(t, err)

	// Two equally old files; a pending job keeps one of them referenced
	orphan := env.storeFile(t, "orphan.wav")
	protected := env.storeFile(t, "protected.wav")
	_, err = env.jobService.EnqueueJob(ctx, models.JobTypeTranscription, models.JobPayload{"file_id": int(protected.ID)})
	require.NoError(t, err)

	backdate := time.Now().UTC().AddDate(0, 0, -45)
	for _, id := range []uint{orphan.ID, protected.ID} {
		require.NoError(t, env.db.Model(&models.AudioFile{}).Where("id = ?", id).
			UpdateColumns(map[string]interface{}{"created_at": backdate}).Error)
	}

	sweeper := NewRetentionSweeper(env.jobService, env.transcriptService, env.fileService,
		time.Hour, 2, 30)

	// Start applies the policy once before the ticker takes over, so the
	// assertions below need no polling.
	sweeper.Start(ctx)
	defer sweeper.Stop()

	versions, err := env.transcriptService.GetVersions(ctx, transcriptID)
	require.NoError(t, err)
	require.Len(t, versions, 2)
	assert.Equal(t, 3, versions[0].VersionNumber)
	assert.Equal(t, 2, versions[1].VersionNumber)

	_, err = env.fileService.GetFile(ctx, orphan.ID)
	assert.ErrorIs(t, err, files.ErrFileNotFound)
	_, statErr := os.Stat(orphan.Path)
	assert.True(t, os.IsNotExist(statErr))

	kept, err := env.fileService.GetFile(ctx, protected.ID)
	require.NoError(t, err, "a referenced file must survive the orphan sweep")
	assert.Equal(t, protected.SHA256, kept.SHA256)
	_, statErr = os.Stat(protected.Path)
	assert.NoError(t, statErr)
}
