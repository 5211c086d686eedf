package whisper

import (
	"errors"
	"fmt"
	"io/fs"
	"log"
	"os"
	"sort"
	"strings"

	"gopkg.in/yaml.v3"
)

// ErrUnknownModel is returned when a model name is not in the manifest
var ErrUnknownModel = errors.New("unknown model")

// defaultModelOrder lists the built-in models smallest first
var defaultModelOrder = []string{"tiny", "base", "small", "medium", "large", "large-v2", "large-v3"}

// ModelInfo describes one whisper model variant
type ModelInfo struct {
	Path        string  `yaml:"path,omitempty" json:"path,omitempty"`
	VRAMGB      float64 `yaml:"vram_gb,omitempty" json:"vram_gb,omitempty"`
	Speed       string  `yaml:"speed,omitempty" json:"speed,omitempty"`
	Description string  `yaml:"description,omitempty" json:"description,omitempty"`
}

// Manifest maps model names to local paths and resource needs. Job
// submission validates the requested model against it.
type Manifest struct {
	Models map[string]ModelInfo `yaml:"models" json:"models"`
}

// DefaultManifest covers the standard faster-whisper model set
func DefaultManifest() *Manifest {
	return &Manifest{Models: map[string]ModelInfo{
		"tiny":     {VRAMGB: 1, Speed: "fastest", Description: "Lowest accuracy, quickest turnaround"},
		"base":     {VRAMGB: 1, Speed: "fast", Description: "Good default for drafts"},
		"small":    {VRAMGB: 2, Speed: "medium", Description: "Balanced accuracy and speed"},
		"medium":   {VRAMGB: 5, Speed: "slow", Description: "High accuracy"},
		"large":    {VRAMGB: 10, Speed: "slowest", Description: "Original large model"},
		"large-v2": {VRAMGB: 10, Speed: "slowest", Description: "Improved large model"},
		"large-v3": {VRAMGB: 10, Speed: "slowest", Description: "Best accuracy"},
	}}
}

// LoadManifest reads a model manifest from disk. A missing file is not an
// error: the built-in defaults cover the standard model set.
func LoadManifest(path string) (*Manifest, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			log.Printf("[DEBUG] No model manifest at %s, using built-in defaults", path)
			return DefaultManifest(), nil
		}
		return nil, fmt.Errorf("reading model manifest: %w", err)
	}

	var manifest Manifest
	if err := yaml.Unmarshal(data, &manifest); err != nil {
		return nil, fmt.Errorf("parsing model manifest: %w", err)
	}
	if len(manifest.Models) == 0 {
		return nil, fmt.Errorf("model manifest %s declares no models", path)
	}
	return &manifest, nil
}

// Resolve returns the info recorded for a model name
func (m *Manifest) Resolve(name string) (ModelInfo, bool) {
	info, ok := m.Models[name]
	return info, ok
}

// Validate reports ErrUnknownModel for names outside the manifest
func (m *Manifest) Validate(name string) error {
	if _, ok := m.Models[name]; !ok {
		return fmt.Errorf("%w: %q (available: %s)", ErrUnknownModel, name, strings.Join(m.Names(), ", "))
	}
	return nil
}

// Names returns model names with the built-in ordering first (smallest to
// largest), then any extras alphabetically
func (m *Manifest) Names() []string {
	names := make([]string, 0, len(m.Models))
	seen := make(map[string]bool, len(m.Models))
	for _, name := range defaultModelOrder {
		if _, ok := m.Models[name]; ok {
			names = append(names, name)
			seen[name] = true
		}
	}

	var extras []string
	for name := range m.Models {
		if !seen[name] {
			extras = append(extras, name)
		}
	}
	sort.Strings(extras)

	return append(names, extras...)
}
