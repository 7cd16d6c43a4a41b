package engine

import (
	"fmt"
	"regexp"
	"strings"
	"unicode/utf8"
)

// piecePattern splits text the way GPT-2 pre-tokenization does: contractions,
// letter runs, digit runs and punctuation runs each keep one leading space.
var piecePattern = regexp.MustCompile(`'s|'t|'re|'ve|'m|'ll|'d| ?\pL+| ?\pN+| ?[^\s\pL\pN]+|\s+`)

// byteTokens is the number of byte fallback ids placed after the vocabulary.
const byteTokens = 256

// Tokenizer maps text to vocabulary ids and back.
//
// Characters missing from the vocabulary are encoded as raw UTF-8 bytes:
// id len(vocab)+b stands for byte b. Byte ids never appear in model output
// but survive a round trip through Decode, so no input text is lost.
type Tokenizer struct {
	vocab   []string
	ids     map[string]int
	special map[int]bool
	eos     int
}

// NewTokenizer builds a tokenizer over vocab. The end-of-sequence token must
// be part of vocab and is always treated as special.
func NewTokenizer(vocab, special []string, eosToken string) (*Tokenizer, error) {
	if len(vocab) == 0 {
		return nil, fmt.Errorf("empty vocabulary")
	}
	t := &Tokenizer{
		vocab:   vocab,
		ids:     make(map[string]int, len(vocab)),
		special: make(map[int]bool),
	}
	for i, tok := range vocab {
		if _, dup := t.ids[tok]; dup {
			return nil, fmt.Errorf("duplicate vocabulary entry %q", tok)
		}
		t.ids[tok] = i
	}

	var ok bool
	if t.eos, ok = t.ids[eosToken]; !ok {
		return nil, fmt.Errorf("end-of-sequence token %q not in vocabulary", eosToken)
	}
	t.special[t.eos] = true
	for _, s := range special {
		id, ok := t.ids[s]
		if !ok {
			return nil, fmt.Errorf("special token %q not in vocabulary", s)
		}
		t.special[id] = true
	}
	return t, nil
}

// EOS returns the end-of-sequence token id.
func (t *Tokenizer) EOS() int { return t.eos }

// Encode converts text into token ids, keeping at most maxTokens of them
// (0 means no limit).
func (t *Tokenizer) Encode(text string, maxTokens int) ([]int, error) {
	if !utf8.ValidString(text) {
		return nil, fmt.Errorf("%w: text is not valid UTF-8", ErrInvalidInput)
	}

	var ids []int
	for _, piece := range piecePattern.FindAllString(text, -1) {
		ids = t.appendPiece(ids, piece)
		if maxTokens > 0 && len(ids) >= maxTokens {
			return ids[:maxTokens], nil
		}
	}
	if len(ids) == 0 {
		return nil, fmt.Errorf("%w: text produced no tokens", ErrInvalidInput)
	}
	return ids, nil
}

func (t *Tokenizer) appendPiece(ids []int, piece string) []int {
	if id, ok := t.ids[piece]; ok {
		return append(ids, id)
	}
	// Split a leading space off before falling back to single runes.
	if rest, found := strings.CutPrefix(piece, " "); found && rest != "" {
		if id, ok := t.ids[rest]; ok {
			return append(t.appendPiece(ids, " "), id)
		}
	}
	for _, r := range piece {
		s := string(r)
		if id, ok := t.ids[s]; ok {
			ids = append(ids, id)
			continue
		}
		for i := 0; i < len(s); i++ {
			ids = append(ids, len(t.vocab)+int(s[i]))
		}
	}
	return ids
}

// Decode turns token ids back into text. Special tokens are dropped when
// skipSpecial is set; byte fallback ids are always kept.
func (t *Tokenizer) Decode(ids []int, skipSpecial bool) (string, error) {
	var buf []byte
	for _, id := range ids {
		switch {
		case id < 0 || id >= len(t.vocab)+byteTokens:
			return "", fmt.Errorf("%w: token id %d out of range", ErrInvalidInput, id)
		case id >= len(t.vocab):
			buf = append(buf, byte(id-len(t.vocab)))
		case skipSpecial && t.special[id]:
		default:
			buf = append(buf, t.vocab[id]...)
		}
	}
	return string(buf), nil
}
