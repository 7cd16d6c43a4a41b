package engine

import (
	"fmt"
	"path/filepath"
	"strings"
	"time"
)

// Generator is a loaded causal language model. Implementations are not
// required to be safe for concurrent use.
type Generator interface {
	Generate(prompt string, opts GenerateOptions) (string, error)
}

// Engine wraps a Generator backend and provides a higher-level interface
// for model loading and text generation.
type Engine struct {
	gen       Generator
	name      string
	modelPath string
	device    Device
	loaded    bool
}

// New creates an Engine bound to the given device. DeviceAuto is resolved
// immediately.
func New(device Device) *Engine {
	return &Engine{device: SelectDevice(device)}
}

// LoadModel loads a local n-gram model artifact into the engine. The model
// is named after the artifact, or after the file when the artifact has no
// name.
func (e *Engine) LoadModel(path string, seed int64) error {
	local, err := LoadLocal(path, seed)
	if err != nil {
		return fmt.Errorf("load model: %w", err)
	}
	name := local.Name()
	if name == "" {
		name = strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	}
	e.UseGenerator(local, name)
	e.modelPath = path
	return nil
}

// UseRemote points the engine at a remote inference server.
func (e *Engine) UseRemote(baseURL string, timeout time.Duration) {
	e.UseGenerator(NewRemote(baseURL, timeout), baseURL)
	e.modelPath = baseURL
}

// UseGenerator installs an arbitrary backend under the given name.
func (e *Engine) UseGenerator(gen Generator, name string) {
	e.gen = gen
	e.name = name
	e.modelPath = ""
	e.loaded = true
}

// Generate validates opts and runs non-streaming generation, returning the
// prompt followed by the generated continuation.
func (e *Engine) Generate(prompt string, opts GenerateOptions) (string, error) {
	if !e.loaded {
		return "", ErrNoModel
	}
	if err := opts.Validate(); err != nil {
		return "", err
	}
	return e.gen.Generate(prompt, opts)
}

// IsLoaded returns whether a model is currently loaded.
func (e *Engine) IsLoaded() bool { return e.loaded }

// ModelName returns the name of the currently loaded model.
func (e *Engine) ModelName() string { return e.name }

// ModelPath returns the path (or URL) of the currently loaded model.
func (e *Engine) ModelPath() string { return e.modelPath }

// Device returns the device inference runs on.
func (e *Engine) Device() Device { return e.device }

// Close releases the loaded model.
func (e *Engine) Close() {
	e.gen = nil
	e.loaded = false
}
