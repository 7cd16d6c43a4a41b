package service

import (
	"fmt"
	"sync"

	"github.com/cloudchase/inference-services/classifier"
)

// Spam runs single-text spam detection against a shared classifier.
type Spam struct {
	model classifier.Predictor
	mu    sync.Mutex // guards model
}

// NewSpam wraps model.
func NewSpam(model classifier.Predictor) *Spam {
	return &Spam{model: model}
}

// Detect classifies text as a one-element batch. Any non-zero label is spam.
func (s *Spam) Detect(text string) (bool, error) {
	labels, err := s.predict(text)
	if err != nil {
		return false, err
	}
	if len(labels) == 0 {
		return false, fmt.Errorf("classifier returned no prediction")
	}
	return labels[0] != 0, nil
}

func (s *Spam) predict(text string) ([]int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.model.Predict([]string{text})
}
