// Package scoring maps a free-form journal answer to a small token reward
// using bounded text heuristics: length, vocabulary richness, action
// language, and sentence coherence. Pure computation, no I/O.
package scoring

import "strings"

// MaxReward is the highest reward Score can return.
const MaxReward = 3

// Scorer computes answer quality rewards.
type Scorer struct {
	cfg     Config
	actions map[string]bool
}

// New creates a Scorer with the given thresholds.
func New(cfg Config) *Scorer {
	actions := make(map[string]bool, len(ActionWords))
	for _, w := range ActionWords {
		actions[w] = true
	}
	return &Scorer{cfg: cfg, actions: actions}
}

// Score returns the token reward for an answer, 0 to MaxReward.
// Tiers are monotone: each escalation keeps all lower-tier conditions and
// adds a stricter word count.
func (s *Scorer) Score(answer string) int {
	words := fields(answer)
	wc := len(words)
	if wc < s.cfg.BaseWords {
		return 0
	}

	unique := make(map[string]bool, wc)
	actionHits := 0
	for _, w := range words {
		if !unique[w] {
			unique[w] = true
			if s.actions[w] {
				actionHits++
			}
		}
	}
	richness := float64(len(unique)) / float64(wc)

	sc := sentenceCount(answer)
	avgLen := 0.0
	if sc > 0 {
		avgLen = float64(wc) / float64(sc)
	}

	isRich := richness >= s.cfg.MinRichness
	hasAction := actionHits >= s.cfg.MinActionHits
	coherent := sc >= s.cfg.MinSentences &&
		avgLen >= s.cfg.MinAvgSentence && avgLen <= s.cfg.MaxAvgSentence

	score := 1
	if wc >= s.cfg.RichWords && isRich && hasAction {
		score = 2
		if wc >= s.cfg.DeepWords && coherent {
			score = 3
		}
	}
	return score
}

// fields lowercases and splits the answer into word tokens, trimming
// punctuation so "tomorrow." still counts as an action word.
func fields(text string) []string {
	raw := strings.Fields(strings.ToLower(text))
	out := raw[:0]
	for _, w := range raw {
		w = strings.Trim(w, ".,;:!?\"'()[]–—-")
		if w != "" {
			out = append(out, w)
		}
	}
	return out
}

// sentenceCount counts sentence terminators, treating runs like "?!" as one.
func sentenceCount(text string) int {
	count := 0
	inTerminator := false
	for _, r := range text {
		switch r {
		case '.', '!', '?':
			if !inTerminator {
				count++
			}
			inTerminator = true
		default:
			inTerminator = false
		}
	}
	return count
}
