package registry

import (
	"fmt"
	"os"
	"path/filepath"
	"time"
)

// ModelManager provides high-level operations for managing local models.
type ModelManager struct {
	store *Store
}

// NewModelManager creates a ModelManager and ensures the storage directories exist.
func NewModelManager(baseDir string) (*ModelManager, error) {
	store := NewStore(baseDir)
	if err := store.EnsureDirs(); err != nil {
		return nil, err
	}
	return &ModelManager{store: store}, nil
}

// DefaultBaseDir returns the default base directory (~/.inference-services).
func DefaultBaseDir() string {
	home, _ := os.UserHomeDir()
	return filepath.Join(home, ".inference-services")
}

// AddLocalModel registers an existing model artifact under name.
func (m *ModelManager) AddLocalModel(name, path string, kind Kind) (*ModelManifest, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, err
	}
	info, err := os.Stat(abs)
	if err != nil {
		return nil, fmt.Errorf("model file not found: %w", err)
	}
	if info.IsDir() {
		return nil, fmt.Errorf("model path %s is a directory", abs)
	}
	manifest := &ModelManifest{
		Name:    name,
		Kind:    kind,
		Path:    abs,
		Size:    info.Size(),
		AddedAt: time.Now(),
	}
	if err := m.store.SaveManifest(manifest); err != nil {
		return nil, err
	}
	return manifest, nil
}

// GetModel retrieves a model manifest by name.
func (m *ModelManager) GetModel(name string) (*ModelManifest, error) {
	return m.store.LoadManifest(name)
}

// ListModels returns all registered model manifests.
func (m *ModelManager) ListModels() ([]ModelManifest, error) {
	return m.store.ListManifests()
}

// RemoveModel deletes a model's manifest from the registry.
func (m *ModelManager) RemoveModel(name string) error {
	return m.store.DeleteManifest(name)
}

// ResolveModelPath resolves a model name or file path to an absolute file path.
// If nameOrPath is an existing file, it is returned directly.
// Otherwise, the registry is consulted for a model of the given kind.
func (m *ModelManager) ResolveModelPath(nameOrPath string, kind Kind) (string, error) {
	if info, err := os.Stat(nameOrPath); err == nil && !info.IsDir() {
		abs, err := filepath.Abs(nameOrPath)
		if err != nil {
			return nameOrPath, nil
		}
		return abs, nil
	}
	manifest, err := m.store.LoadManifest(nameOrPath)
	if err != nil {
		return "", fmt.Errorf("model '%s' not found locally and not a valid path", nameOrPath)
	}
	if manifest.Kind != kind {
		return "", fmt.Errorf("model '%s' is a %s model, not %s", nameOrPath, manifest.Kind, kind)
	}
	return manifest.Path, nil
}
