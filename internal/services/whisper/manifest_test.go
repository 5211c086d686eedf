package whisper

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadManifest(t *testing.T) {
	path := filepath.Join(t.TempDir(), "models.yaml")
	content := `models:
  base:
    vram_gb: 1
    speed: fast
  custom-finetune:
    path: /opt/models/finetune
    vram_gb: 6
    description: Domain-adapted medium
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	manifest, err := LoadManifest(path)
	require.NoError(t, err)
	require.Len(t, manifest.Models, 2)

	info, ok := manifest.Resolve("custom-finetune")
	require.True(t, ok)
	assert.Equal(t, "/opt/models/finetune", info.Path)
	assert.InDelta(t, 6.0, info.VRAMGB, 0.001)

	_, ok = manifest.Resolve("tiny")
	assert.False(t, ok, "manifest replaces the defaults, it does not extend them")
}

func TestLoadManifest_MissingFileFallsBack(t *testing.T) {
	manifest, err := LoadManifest(filepath.Join(t.TempDir(), "absent.yaml"))
	require.NoError(t, err)

	for _, name := range []string{"tiny", "base", "small", "medium", "large", "large-v2", "large-v3"} {
		_, ok := manifest.Resolve(name)
		assert.True(t, ok, "default manifest must list %s", name)
	}
}

func TestLoadManifest_Invalid(t *testing.T) {
	path := filepath.Join(t.TempDir(), "models.yaml")
	require.NoError(t, os.WriteFile(path, []byte("models: [broken"), 0o644))

	_, err := LoadManifest(path)
	assert.Error(t, err)
}

func TestLoadManifest_Empty(t *testing.T) {
	path := filepath.Join(t.TempDir(), "models.yaml")
	require.NoError(t, os.WriteFile(path, []byte("models: {}\n"), 0o644))

	_, err := LoadManifest(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no models")
}

func TestManifest_Names(t *testing.T) {
	manifest := &Manifest{Models: map[string]ModelInfo{
		"large-v3": {},
		"zz-extra": {},
		"tiny":     {},
		"aa-extra": {},
	}}

	assert.Equal(t, []string{"tiny", "large-v3", "aa-extra", "zz-extra"}, manifest.Names(),
		"built-in order first, extras alphabetical")
}

func TestManifest_Validate(t *testing.T) {
	manifest := DefaultManifest()

	assert.NoError(t, manifest.Validate("base"))

	err := manifest.Validate("enormous-v9")
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrUnknownModel)
	assert.Contains(t, err.Error(), "enormous-v9")
}
