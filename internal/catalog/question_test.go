package catalog

import (
	"errors"
	"testing"
)

func TestParseCategory(t *testing.T) {
	for _, c := range AllCategories() {
		got, err := ParseCategory(string(c))
		if err != nil {
			t.Errorf("ParseCategory(%q): %v", c, err)
		}
		if got != c {
			t.Errorf("ParseCategory(%q) = %q", c, got)
		}
	}

	if _, err := ParseCategory("finance"); !errors.Is(err, ErrInvalid) {
		t.Errorf("unknown category should be ErrInvalid, got %v", err)
	}
	if _, err := ParseCategory(""); !errors.Is(err, ErrInvalid) {
		t.Errorf("empty category should be ErrInvalid, got %v", err)
	}
}

func TestParseMode(t *testing.T) {
	tests := []struct {
		in    string
		valid bool
	}{
		{"morning", true},
		{"evening", true},
		{"any", true},
		{"noon", false},
		{"", false},
		{"Morning", false},
	}

	for _, tt := range tests {
		_, err := ParseMode(tt.in)
		if tt.valid && err != nil {
			t.Errorf("ParseMode(%q): %v", tt.in, err)
		}
		if !tt.valid && !errors.Is(err, ErrInvalid) {
			t.Errorf("ParseMode(%q) should be ErrInvalid, got %v", tt.in, err)
		}
	}
}

func TestQuestionValidate(t *testing.T) {
	valid := Question{
		Category:   CategoryHabit,
		Mode:       ModeAny,
		Difficulty: 3,
		Text:       "What routine carried you today?",
		Tips:       []string{"Keep it small"},
	}
	if err := valid.Validate(); err != nil {
		t.Fatalf("valid question rejected: %v", err)
	}

	tests := []struct {
		name   string
		mutate func(q *Question)
	}{
		{"bad category", func(q *Question) { q.Category = "sports" }},
		{"bad mode", func(q *Question) { q.Mode = "midday" }},
		{"difficulty too low", func(q *Question) { q.Difficulty = 0 }},
		{"difficulty too high", func(q *Question) { q.Difficulty = 6 }},
		{"empty text", func(q *Question) { q.Text = "" }},
		{"too many tips", func(q *Question) { q.Tips = make([]string, 6) }},
	}

	for _, tt := range tests {
		q := valid
		tt.mutate(&q)
		if err := q.Validate(); !errors.Is(err, ErrInvalid) {
			t.Errorf("%s: want ErrInvalid, got %v", tt.name, err)
		}
	}
}

func TestDefaultSeedIsValidAndComplete(t *testing.T) {
	seed := DefaultSeed()

	perCategoryMode := make(map[Category]map[Mode]int)
	texts := make(map[string]bool)

	for i := range seed {
		q := seed[i]
		if err := q.Validate(); err != nil {
			t.Errorf("seed[%d]: %v", i, err)
		}
		if texts[q.Text] {
			t.Errorf("duplicate seed text: %q", q.Text)
		}
		texts[q.Text] = true
		if perCategoryMode[q.Category] == nil {
			perCategoryMode[q.Category] = make(map[Mode]int)
		}
		perCategoryMode[q.Category][q.Mode]++
	}

	// Every category gets one morning and one evening starter.
	for _, c := range AllCategories() {
		if perCategoryMode[c][ModeMorning] != 1 {
			t.Errorf("category %s: want 1 morning seed, got %d", c, perCategoryMode[c][ModeMorning])
		}
		if perCategoryMode[c][ModeEvening] != 1 {
			t.Errorf("category %s: want 1 evening seed, got %d", c, perCategoryMode[c][ModeEvening])
		}
	}
}
