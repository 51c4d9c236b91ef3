package scoring

import (
	"fmt"
	"strings"
	"testing"
)

// plainWords builds n filler words with low uniqueness and no action vocabulary.
func plainWords(n int) string {
	words := make([]string, n)
	for i := range n {
		words[i] = []string{"thing", "very", "much", "nice"}[i%4]
	}
	return strings.Join(words, " ")
}

// richAnswer builds an answer of n words split into sentences of
// sentenceLen words, with mostly unique vocabulary and action words early.
func richAnswer(n, sentenceLen int) string {
	var b strings.Builder
	b.WriteString("I plan to start tomorrow with one clear goal. ")
	written := 9
	col := 0
	for i := 0; written < n; i++ {
		fmt.Fprintf(&b, "word%d ", i)
		written++
		col++
		if col == sentenceLen {
			b.WriteString(". ")
			col = 0
		}
	}
	b.WriteString(".")
	return b.String()
}

func TestScoreEmptyAndShort(t *testing.T) {
	s := New(DefaultConfig())

	tests := []struct {
		name   string
		answer string
	}{
		{"empty", ""},
		{"whitespace", "   \n\t"},
		{"single word", "yes"},
		{"39 words", plainWords(39)},
	}

	for _, tt := range tests {
		if got := s.Score(tt.answer); got != 0 {
			t.Errorf("%s: Score = %d, want 0", tt.name, got)
		}
	}
}

func TestScoreBaseTier(t *testing.T) {
	s := New(DefaultConfig())

	// Exactly 40 plain words with no action vocabulary: the baseline.
	if got := s.Score(plainWords(40)); got != 1 {
		t.Errorf("40 plain words: Score = %d, want 1", got)
	}
	// Length alone never escalates: 200 repetitive words stay at 1.
	if got := s.Score(plainWords(200)); got != 1 {
		t.Errorf("200 plain words: Score = %d, want 1", got)
	}
}

func TestScoreRichTier(t *testing.T) {
	s := New(DefaultConfig())

	// ~100 words, unique vocabulary, action language, below the deep cutoff.
	got := s.Score(richAnswer(100, 12))
	if got != 2 {
		t.Errorf("100-word rich answer: Score = %d, want 2", got)
	}
}

func TestScoreDeepTier(t *testing.T) {
	s := New(DefaultConfig())

	// 200 words, rich, action-laden, well-formed sentences of 12 words.
	got := s.Score(richAnswer(200, 12))
	if got != 3 {
		t.Errorf("200-word coherent answer: Score = %d, want 3", got)
	}
}

func TestScoreDeepNeedsCoherence(t *testing.T) {
	s := New(DefaultConfig())

	// 200 unique action-laden words in a single run-on sentence: average
	// sentence length blows past the ceiling, so the deep tier is refused.
	var b strings.Builder
	b.WriteString("I plan to start tomorrow ")
	for i := range 200 {
		fmt.Fprintf(&b, "word%d ", i)
	}
	b.WriteString(".")

	if got := s.Score(b.String()); got != 2 {
		t.Errorf("run-on answer: Score = %d, want 2", got)
	}
}

func TestScoreMonotoneInLength(t *testing.T) {
	s := New(DefaultConfig())

	prev := 0
	for _, n := range []int{10, 40, 100, 200} {
		got := s.Score(richAnswer(n, 12))
		if got < prev {
			t.Errorf("score decreased at %d words: %d < %d", n, got, prev)
		}
		prev = got
	}
}

func TestSentenceCount(t *testing.T) {
	tests := []struct {
		text string
		want int
	}{
		{"", 0},
		{"no terminator", 0},
		{"One. Two. Three.", 3},
		{"Really?! Yes.", 2}, // "?!" is one terminator run
		{"Trailing... dots", 1},
	}

	for _, tt := range tests {
		if got := sentenceCount(tt.text); got != tt.want {
			t.Errorf("sentenceCount(%q) = %d, want %d", tt.text, got, tt.want)
		}
	}
}

func TestActionWordsSurvivePunctuation(t *testing.T) {
	s := New(DefaultConfig())

	// "plan," and "tomorrow." must still register as action hits.
	answer := "I plan, yes plan, to write tomorrow. " + plainWords(40)
	words := fields(answer)
	hits := 0
	seen := map[string]bool{}
	for _, w := range words {
		if !seen[w] && s.actions[w] {
			hits++
		}
		seen[w] = true
	}
	if hits < 2 {
		t.Errorf("action hits = %d, want >= 2", hits)
	}
}
