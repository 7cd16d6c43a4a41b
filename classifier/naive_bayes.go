// Package classifier loads pretrained text classifiers and runs batch
// predictions over them.
package classifier

import (
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"os"
	"regexp"
	"strings"
)

// DefaultTokenPattern matches runs of two or more word characters.
const DefaultTokenPattern = `[\pL\pN_]{2,}`

// ErrInvalidModel is returned when a serialized model is inconsistent.
var ErrInvalidModel = errors.New("invalid model")

// Predictor classifies a batch of texts, returning one label per input.
// Implementations are not required to be safe for concurrent use.
type Predictor interface {
	Predict(texts []string) ([]int, error)
}

// Artifact is the on-disk JSON layout of a multinomial naive Bayes model
// over word counts.
//
// Vocabulary maps a term to its feature index. ClassLogPrior holds one log
// prior per entry of Classes and FeatureLogProb one row of len(Vocabulary)
// log probabilities per class. Terms are extracted with TokenPattern
// (DefaultTokenPattern when empty), after lowercasing when Lowercase is set.
type Artifact struct {
	Classes        []int          `json:"classes"`
	ClassLogPrior  []float64      `json:"class_log_prior"`
	FeatureLogProb [][]float64    `json:"feature_log_prob"`
	Vocabulary     map[string]int `json:"vocabulary"`
	Lowercase      bool           `json:"lowercase"`
	TokenPattern   string         `json:"token_pattern,omitempty"`
}

// NaiveBayes is a validated, read-only naive Bayes model.
type NaiveBayes struct {
	a       Artifact
	tokenRE *regexp.Regexp
}

// Load reads a JSON-serialized model from path.
func Load(path string) (*NaiveBayes, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var a Artifact
	if err := json.Unmarshal(data, &a); err != nil {
		return nil, fmt.Errorf("%w: decode %s: %v", ErrInvalidModel, path, err)
	}
	return New(a)
}

// New validates a and builds a model from it.
func New(a Artifact) (*NaiveBayes, error) {
	nClasses := len(a.Classes)
	if nClasses < 2 {
		return nil, fmt.Errorf("%w: need at least two classes, got %d", ErrInvalidModel, nClasses)
	}
	if len(a.ClassLogPrior) != nClasses || len(a.FeatureLogProb) != nClasses {
		return nil, fmt.Errorf("%w: %d classes but %d priors and %d feature rows",
			ErrInvalidModel, nClasses, len(a.ClassLogPrior), len(a.FeatureLogProb))
	}
	nFeatures := len(a.Vocabulary)
	for i, row := range a.FeatureLogProb {
		if len(row) != nFeatures {
			return nil, fmt.Errorf("%w: feature row %d has %d entries, vocabulary has %d",
				ErrInvalidModel, i, len(row), nFeatures)
		}
	}
	for term, idx := range a.Vocabulary {
		if idx < 0 || idx >= nFeatures {
			return nil, fmt.Errorf("%w: term %q has index %d", ErrInvalidModel, term, idx)
		}
	}

	pattern := a.TokenPattern
	if pattern == "" {
		pattern = DefaultTokenPattern
	}
	re, err := regexp.Compile(pattern)
	if err != nil {
		return nil, fmt.Errorf("%w: token pattern: %v", ErrInvalidModel, err)
	}
	return &NaiveBayes{a: a, tokenRE: re}, nil
}

// Predict returns the most likely class label for every text.
func (m *NaiveBayes) Predict(texts []string) ([]int, error) {
	if m.tokenRE == nil {
		return nil, fmt.Errorf("%w: model was not built with New or Load", ErrInvalidModel)
	}
	if len(texts) == 0 {
		return nil, fmt.Errorf("expected a non-empty batch")
	}

	labels := make([]int, len(texts))
	for i, text := range texts {
		labels[i] = m.a.Classes[m.best(m.counts(text))]
	}
	return labels, nil
}

func (m *NaiveBayes) counts(text string) map[int]float64 {
	if m.a.Lowercase {
		text = strings.ToLower(text)
	}
	counts := make(map[int]float64)
	for _, tok := range m.tokenRE.FindAllString(text, -1) {
		if idx, ok := m.a.Vocabulary[tok]; ok {
			counts[idx]++
		}
	}
	return counts
}

// best returns the index of the class with the highest joint log likelihood.
func (m *NaiveBayes) best(counts map[int]float64) int {
	best, bestScore := 0, math.Inf(-1)
	for c := range m.a.Classes {
		score := m.a.ClassLogPrior[c]
		for idx, n := range counts {
			score += n * m.a.FeatureLogProb[c][idx]
		}
		if score > bestScore {
			best, bestScore = c, score
		}
	}
	return best
}
