package engine

// testModelFile returns a tiny bigram model:
//
//	0 <|endoftext|>  1 <|pad|>  2 Hello  3 " world"  4 " there"  5 "!"  6 " again"  7 " "
func testModelFile() *ModelFile {
	return &ModelFile{
		Name:          "tiny",
		Order:         2,
		Vocab:         []string{"<|endoftext|>", "<|pad|>", "Hello", " world", " there", "!", " again", " "},
		SpecialTokens: []string{"<|pad|>"},
		EOSToken:      "<|endoftext|>",
		NGrams: map[string]map[string]float64{
			"":  {"2": 4, "3": 2, "4": 2, "5": 1, "6": 1},
			"2": {"3": 8, "4": 2},
			"3": {"5": 6, "6": 3},
			"4": {"5": 1},
			"5": {"0": 1},
			"6": {"5": 1},
		},
	}
}
