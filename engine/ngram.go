package engine

import (
	"encoding/json"
	"fmt"
	"math"
	"os"
	"strconv"
	"strings"
)

// ModelFile is the on-disk JSON layout of an n-gram language model.
//
// Vocab lists the token strings; a token's id is its index. EOSToken and
// every entry of SpecialTokens must be in Vocab and are dropped from decoded
// output. NGrams maps a context (space separated token ids, oldest first,
// possibly empty) to next-token counts keyed by token id. The empty context
// is the unigram distribution and must be present. Contexts hold at most
// Order-1 ids.
type ModelFile struct {
	Name          string                        `json:"name"`
	Order         int                           `json:"order"`
	Vocab         []string                      `json:"vocab"`
	SpecialTokens []string                      `json:"special_tokens,omitempty"`
	EOSToken      string                        `json:"eos_token"`
	NGrams        map[string]map[string]float64 `json:"ngrams"`
}

// NGramModel is a causal language model that scores the next token from the
// longest known context of up to Order-1 preceding tokens.
type NGramModel struct {
	name      string
	order     int
	vocabSize int
	table     map[string]map[int]float64
}

// LoadModelFile reads and decodes a model artifact from path.
func LoadModelFile(path string) (*ModelFile, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var mf ModelFile
	if err := json.Unmarshal(data, &mf); err != nil {
		return nil, fmt.Errorf("decode model %s: %w", path, err)
	}
	return &mf, nil
}

// NewNGramModel validates mf and builds the lookup table.
func NewNGramModel(mf *ModelFile) (*NGramModel, error) {
	if mf.Order < 1 {
		return nil, fmt.Errorf("model order must be at least 1, got %d", mf.Order)
	}
	if _, ok := mf.NGrams[""]; !ok {
		return nil, fmt.Errorf("model has no unigram distribution")
	}

	m := &NGramModel{
		name:      mf.Name,
		order:     mf.Order,
		vocabSize: len(mf.Vocab),
		table:     make(map[string]map[int]float64, len(mf.NGrams)),
	}
	for ctx, next := range mf.NGrams {
		fields := strings.Fields(ctx)
		if len(fields) >= mf.Order {
			return nil, fmt.Errorf("context %q longer than order %d allows", ctx, mf.Order)
		}
		ctxIDs := make([]int, len(fields))
		for i, f := range fields {
			id, err := strconv.Atoi(f)
			if err != nil || id < 0 || id >= m.vocabSize {
				return nil, fmt.Errorf("context %q: bad token id %q", ctx, f)
			}
			ctxIDs[i] = id
		}
		counts := make(map[int]float64, len(next))
		for key, c := range next {
			id, err := strconv.Atoi(key)
			if err != nil || id < 0 || id >= m.vocabSize {
				return nil, fmt.Errorf("context %q: bad token id %q", ctx, key)
			}
			if c <= 0 {
				continue
			}
			counts[id] = c
		}
		m.table[idsKey(ctxIDs)] = counts
	}
	return m, nil
}

// Name returns the model name recorded in the artifact.
func (m *NGramModel) Name() string { return m.name }

// Logits returns the log-count of every vocabulary entry following context.
// Entries never seen after the matched context are -Inf.
func (m *NGramModel) Logits(context []int) []float64 {
	logits := make([]float64, m.vocabSize)
	for i := range logits {
		logits[i] = math.Inf(-1)
	}

	n := m.order - 1
	if n > len(context) {
		n = len(context)
	}
	for ; n >= 0; n-- {
		counts, ok := m.table[idsKey(context[len(context)-n:])]
		if !ok || len(counts) == 0 {
			continue
		}
		for id, c := range counts {
			logits[id] = math.Log(c)
		}
		break
	}
	return logits
}

func idsKey(ids []int) string {
	parts := make([]string, len(ids))
	for i, id := range ids {
		parts[i] = strconv.Itoa(id)
	}
	return strings.Join(parts, " ")
}
