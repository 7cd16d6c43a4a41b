package engine

import "fmt"

// Local runs an n-gram model in process.
type Local struct {
	tokenizer *Tokenizer
	model     *NGramModel
	sampler   *Sampler
}

// LoadLocal reads a model artifact from path. seed feeds the sampler; zero
// picks a random seed so output varies between runs.
func LoadLocal(path string, seed int64) (*Local, error) {
	mf, err := LoadModelFile(path)
	if err != nil {
		return nil, err
	}
	return NewLocal(mf, seed)
}

// NewLocal builds a local generator from an already decoded artifact.
func NewLocal(mf *ModelFile, seed int64) (*Local, error) {
	tok, err := NewTokenizer(mf.Vocab, mf.SpecialTokens, mf.EOSToken)
	if err != nil {
		return nil, fmt.Errorf("tokenizer: %w", err)
	}
	model, err := NewNGramModel(mf)
	if err != nil {
		return nil, fmt.Errorf("model: %w", err)
	}
	return &Local{tokenizer: tok, model: model, sampler: NewSampler(seed)}, nil
}

// Generate encodes prompt, extends it by up to opts.MaxNewTokens tokens and
// decodes the whole sequence, prompt included, without special tokens.
func (l *Local) Generate(prompt string, opts GenerateOptions) (string, error) {
	ids, err := l.tokenizer.Encode(prompt, opts.MaxInputTokens)
	if err != nil {
		return "", err
	}

	seq := ids
	for i := 0; i < opts.MaxNewTokens; i++ {
		next, ok := l.sampler.Next(l.model.Logits(seq), seq, opts)
		if !ok {
			break
		}
		seq = append(seq, next)
		if next == l.tokenizer.EOS() {
			break
		}
	}

	return l.tokenizer.Decode(seq, true)
}

// Name returns the model name recorded in the artifact.
func (l *Local) Name() string { return l.model.Name() }
