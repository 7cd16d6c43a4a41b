package registry

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

// Store keeps model manifests as JSON files under baseDir/manifests.
type Store struct {
	baseDir string
}

// NewStore creates a Store rooted at baseDir.
func NewStore(baseDir string) *Store {
	return &Store{baseDir: baseDir}
}

// ManifestsDir returns the directory where model manifests are stored.
func (s *Store) ManifestsDir() string { return filepath.Join(s.baseDir, "manifests") }

// EnsureDirs creates the required directory structure if it does not exist.
func (s *Store) EnsureDirs() error {
	return os.MkdirAll(s.ManifestsDir(), 0o755)
}

func (s *Store) manifestPath(name string) (string, error) {
	if name == "" || strings.ContainsAny(name, `/\`) || name == "." || name == ".." {
		return "", fmt.Errorf("invalid model name %q", name)
	}
	return filepath.Join(s.ManifestsDir(), name+".json"), nil
}

// SaveManifest writes a model manifest to disk as JSON.
func (s *Store) SaveManifest(m *ModelManifest) error {
	path, err := s.manifestPath(m.Name)
	if err != nil {
		return err
	}
	data, err := json.MarshalIndent(m, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0o644)
}

// LoadManifest reads a model manifest from disk by name.
func (s *Store) LoadManifest(name string) (*ModelManifest, error) {
	path, err := s.manifestPath(name)
	if err != nil {
		return nil, err
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var m ModelManifest
	if err := json.Unmarshal(data, &m); err != nil {
		return nil, fmt.Errorf("decode manifest %s: %w", name, err)
	}
	return &m, nil
}

// ListManifests returns all readable manifests sorted by name.
func (s *Store) ListManifests() ([]ModelManifest, error) {
	entries, err := os.ReadDir(s.ManifestsDir())
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, err
	}
	var manifests []ModelManifest
	for _, e := range entries {
		name, ok := strings.CutSuffix(e.Name(), ".json")
		if !ok || e.IsDir() {
			continue
		}
		m, err := s.LoadManifest(name)
		if err != nil {
			continue
		}
		manifests = append(manifests, *m)
	}
	sort.Slice(manifests, func(i, j int) bool { return manifests[i].Name < manifests[j].Name })
	return manifests, nil
}

// DeleteManifest removes a model manifest from disk.
func (s *Store) DeleteManifest(name string) error {
	path, err := s.manifestPath(name)
	if err != nil {
		return err
	}
	return os.Remove(path)
}
