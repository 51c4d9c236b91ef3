// Package affinity computes per-category selection weights for a user:
// affinity from free-text interest signals, need from mastery scores, and
// a fixed time-of-day weighting. The product of the three orders categories
// for the selection search.
package affinity

import (
	"regexp"
	"strings"

	"github.com/mwelte/undo/internal/catalog"
)

// TriggerWords maps each category to the interest vocabulary that raises
// its affinity weight. Tuned by product, not derived; adjust here, not in
// the selection code.
var TriggerWords = map[catalog.Category][]string{
	catalog.CategorySelfImage:    {"confidence", "strength", "worth", "trust", "identity"},
	catalog.CategoryEmotion:      {"stress", "calm", "feelings", "anxiety", "resilience"},
	catalog.CategoryHabit:        {"routine", "discipline", "sport", "productivity"},
	catalog.CategoryRelationship: {"friend", "partner", "family", "network", "empathy"},
	catalog.CategoryMindset:      {"belief", "optimism", "doubt", "thinking"},
	catalog.CategoryVision:       {"creativity", "dream", "project", "founding"},
	catalog.CategoryFuture:       {"goal", "career", "planning", "studies"},
	catalog.CategoryBody:         {"sleep", "energy", "body", "nutrition", "movement"},
}

var wordPattern = regexp.MustCompile(`[a-zäöüß]+`)

// Tokenize splits free text into lowercase word tokens.
func Tokenize(text string) []string {
	return wordPattern.FindAllString(strings.ToLower(text), -1)
}

// Weights derives affinity weights from a user's free-text interest fields
// (motive and outlook from onboarding, concatenated by the caller). Every
// category starts at 1 and gains +2 per trigger word present, so no
// category is ever excluded by affinity alone.
func Weights(interestText string) map[catalog.Category]int {
	tokens := make(map[string]bool)
	for _, tok := range Tokenize(interestText) {
		tokens[tok] = true
	}

	w := make(map[catalog.Category]int, len(TriggerWords))
	for _, c := range catalog.AllCategories() {
		w[c] = 1
	}
	for c, words := range TriggerWords {
		for _, word := range words {
			if tokens[word] {
				w[c] += 2
			}
		}
	}
	return w
}

// NeedWeights converts mastery scores (0-100, absent = 0) into need
// weights: an untouched category has maximal need (100), a maxed-out one
// keeps a floor of 1 so exploration stays possible.
func NeedWeights(scores map[catalog.Category]int) map[catalog.Category]int {
	w := make(map[catalog.Category]int, len(scores))
	for _, c := range catalog.AllCategories() {
		need := 100 - scores[c]
		if need < 1 {
			need = 1
		}
		w[c] = need
	}
	return w
}
