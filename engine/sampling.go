package engine

import (
	"math"
	"math/rand"
	"sort"
)

// Sampler picks the next token from a logit vector. It is not safe for
// concurrent use.
type Sampler struct {
	rng *rand.Rand
}

// NewSampler creates a sampler. A zero seed is replaced by a random one.
func NewSampler(seed int64) *Sampler {
	if seed == 0 {
		seed = rand.Int63()
	}
	return &Sampler{rng: rand.New(rand.NewSource(seed))}
}

// Next returns the next token given the logits for the position after seq.
// The second result is false when every candidate has been filtered out.
//
// Processing order: n-gram blocking, temperature, top-k, top-p.
func (s *Sampler) Next(logits []float64, seq []int, opts GenerateOptions) (int, bool) {
	banRepeatedNGrams(logits, seq, opts.NoRepeatNGramSize)

	if !opts.DoSample {
		return argmax(logits)
	}

	for i := range logits {
		logits[i] /= opts.Temperature
	}
	keepTopK(logits, opts.TopK)

	probs := softmax(logits)
	if probs == nil {
		return 0, false
	}
	keepTopP(probs, opts.TopP)

	return s.draw(probs)
}

// banRepeatedNGrams sets to -Inf every token that would complete an n-gram
// already present in seq.
func banRepeatedNGrams(logits []float64, seq []int, n int) {
	if n <= 0 || len(seq)+1 < n {
		return
	}
	prefix := seq[len(seq)-n+1:]
	for i := 0; i+n <= len(seq); i++ {
		// Byte fallback ids lie past the model vocabulary.
		if id := seq[i+n-1]; id < len(logits) && equalIDs(seq[i:i+n-1], prefix) {
			logits[id] = math.Inf(-1)
		}
	}
}

func equalIDs(a, b []int) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

func argmax(logits []float64) (int, bool) {
	best, found := 0, false
	for i, l := range logits {
		if math.IsInf(l, -1) {
			continue
		}
		if !found || l > logits[best] {
			best, found = i, true
		}
	}
	return best, found
}

// keepTopK masks everything below the k-th largest logit. Ties with the
// k-th value survive.
func keepTopK(logits []float64, k int) {
	if k <= 0 || k >= len(logits) {
		return
	}
	sorted := append([]float64(nil), logits...)
	sort.Sort(sort.Reverse(sort.Float64Slice(sorted)))
	threshold := sorted[k-1]
	for i, l := range logits {
		if l < threshold {
			logits[i] = math.Inf(-1)
		}
	}
}

// keepTopP zeroes the tail of probs outside the smallest set of tokens whose
// cumulative probability reaches p, then renormalizes.
func keepTopP(probs []float64, p float64) {
	if p >= 1 {
		return
	}
	order := make([]int, len(probs))
	for i := range order {
		order[i] = i
	}
	sort.SliceStable(order, func(a, b int) bool { return probs[order[a]] > probs[order[b]] })

	var cum, kept float64
	cut := len(order)
	for rank, id := range order {
		cum += probs[id]
		if cum >= p {
			cut = rank + 1
			break
		}
	}
	for _, id := range order[cut:] {
		probs[id] = 0
	}
	for _, id := range order[:cut] {
		kept += probs[id]
	}
	if kept == 0 {
		return
	}
	for _, id := range order[:cut] {
		probs[id] /= kept
	}
}

// softmax returns nil when no logit is finite.
func softmax(logits []float64) []float64 {
	maxL := math.Inf(-1)
	for _, l := range logits {
		if l > maxL {
			maxL = l
		}
	}
	if math.IsInf(maxL, -1) {
		return nil
	}
	probs := make([]float64, len(logits))
	var sum float64
	for i, l := range logits {
		if math.IsInf(l, -1) {
			continue
		}
		probs[i] = math.Exp(l - maxL)
		sum += probs[i]
	}
	for i := range probs {
		probs[i] /= sum
	}
	return probs
}

func (s *Sampler) draw(probs []float64) (int, bool) {
	r := s.rng.Float64()
	last := -1
	for i, p := range probs {
		if p == 0 {
			continue
		}
		last = i
		r -= p
		if r < 0 {
			return i, true
		}
	}
	return last, last >= 0
}
