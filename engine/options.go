package engine

import "fmt"

// MaxInputTokens is the number of prompt tokens kept after encoding.
// Longer prompts are truncated from the right.
const MaxInputTokens = 512

// GenerateOptions holds generation parameters at the engine level,
// using Go-native types (float64/int) for ergonomic API usage.
type GenerateOptions struct {
	MaxNewTokens      int
	Temperature       float64
	TopK              int
	TopP              float64
	NoRepeatNGramSize int
	DoSample          bool
	MaxInputTokens    int
}

// DefaultOptions returns the sampling setup used by the prediction endpoint.
func DefaultOptions() GenerateOptions {
	return GenerateOptions{
		MaxNewTokens:      3,
		Temperature:       0.7,
		TopK:              50,
		TopP:              0.95,
		NoRepeatNGramSize: 2,
		DoSample:          true,
		MaxInputTokens:    MaxInputTokens,
	}
}

// Validate reports option values no model can honour. The returned error
// wraps ErrInvalidInput.
func (o GenerateOptions) Validate() error {
	switch {
	case o.MaxNewTokens < 1:
		return fmt.Errorf("%w: max_new_tokens must be positive, got %d", ErrInvalidInput, o.MaxNewTokens)
	case o.DoSample && o.Temperature <= 0:
		return fmt.Errorf("%w: temperature must be strictly positive, got %g", ErrInvalidInput, o.Temperature)
	case o.TopK < 0:
		return fmt.Errorf("%w: top_k must not be negative, got %d", ErrInvalidInput, o.TopK)
	case o.TopP <= 0 || o.TopP > 1:
		return fmt.Errorf("%w: top_p must be in (0, 1], got %g", ErrInvalidInput, o.TopP)
	case o.NoRepeatNGramSize < 0:
		return fmt.Errorf("%w: no_repeat_ngram_size must not be negative, got %d", ErrInvalidInput, o.NoRepeatNGramSize)
	case o.MaxInputTokens < 0:
		return fmt.Errorf("%w: max input tokens must not be negative, got %d", ErrInvalidInput, o.MaxInputTokens)
	}
	return nil
}
