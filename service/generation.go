// Package service serializes calls into models that are not safe for
// concurrent use. Every call holds a per-service mutex for exactly the
// duration of one model invocation.
package service

import (
	"sync"

	"github.com/cloudchase/inference-services/engine"
)

// Generator is the model contract the generation service drives.
// *engine.Engine satisfies it.
type Generator interface {
	Generate(prompt string, opts engine.GenerateOptions) (string, error)
}

// Generation runs text continuation against a shared Generator.
type Generation struct {
	gen  Generator
	opts engine.GenerateOptions
	mu   sync.Mutex // guards gen
}

// NewGeneration wraps gen with the default sampling options.
func NewGeneration(gen Generator) *Generation {
	return &Generation{gen: gen, opts: engine.DefaultOptions()}
}

// Predict continues text by up to maxNewTokens tokens using the fixed
// sampling setup. Errors from the model are returned unchanged.
func (s *Generation) Predict(text string, maxNewTokens int) (string, error) {
	opts := s.opts
	opts.MaxNewTokens = maxNewTokens

	s.mu.Lock()
	defer s.mu.Unlock()

	return s.gen.Generate(text, opts)
}
