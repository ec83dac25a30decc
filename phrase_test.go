package fulltextindex

import "testing"

func TestPhraseMatches_ContiguousOrder(t *testing.T) {
	positionsByWord := [][]positionsEntry{
		{{path: "R1", pos: []int{0}}},
		{{path: "R1", pos: []int{1}}},
	}
	if !phraseMatches("R1", positionsByWord) {
		t.Fatal("expected contiguous positions 0,1 to match")
	}
}

func TestPhraseMatches_WrongOrderFails(t *testing.T) {
	positionsByWord := [][]positionsEntry{
		{{path: "R1", pos: []int{1}}},
		{{path: "R1", pos: []int{0}}},
	}
	if phraseMatches("R1", positionsByWord) {
		t.Fatal("expected reversed positions to not match")
	}
}

func TestPhraseMatches_MultipleOccurrencesPicksAnyValidStart(t *testing.T) {
	positionsByWord := [][]positionsEntry{
		{{path: "R1", pos: []int{0, 5}}},
		{{path: "R1", pos: []int{6}}},
	}
	if !phraseMatches("R1", positionsByWord) {
		t.Fatal("expected start=5 to satisfy the phrase")
	}
}

func TestPhraseMatches_MissingWordFails(t *testing.T) {
	positionsByWord := [][]positionsEntry{
		{{path: "R1", pos: []int{0}}},
		{{path: "R2", pos: []int{1}}},
	}
	if phraseMatches("R1", positionsByWord) {
		t.Fatal("expected missing second word for R1 to fail the match")
	}
}
