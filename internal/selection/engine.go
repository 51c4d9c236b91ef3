// Package selection picks the next reflective question for a user. It
// combines the catalog, the history ledger, affinity/need weighting, and
// time-of-day intent into a tiered, randomized search that never repeats
// an answered question and avoids recently asked ones.
package selection

import (
	"context"
	"errors"
	"fmt"
	"math/rand/v2"
	"time"

	"github.com/mwelte/undo/internal/affinity"
	"github.com/mwelte/undo/internal/catalog"
	"github.com/mwelte/undo/internal/clock"
	"github.com/mwelte/undo/internal/store"
)

// ErrNoQuestions indicates an empty catalog. The caller seeds the default
// catalog and retries exactly once before surfacing "no content available".
var ErrNoQuestions = errors.New("no questions available")

// Engine selects the next question. Stateless compute over the injected
// repositories; safe for concurrent use as long as the rng is not shared
// across engines.
type Engine struct {
	questions store.QuestionRepo
	history   store.HistoryRepo
	scores    store.ScoreRepo
	clk       clock.Clock
	rng       *rand.Rand
	cfg       Config
}

// New creates an Engine. The rng must be seedable by tests; pass
// rand.New(rand.NewPCG(...)) rather than the global source.
func New(questions store.QuestionRepo, history store.HistoryRepo, scores store.ScoreRepo, clk clock.Clock, rng *rand.Rand, cfg Config) *Engine {
	return &Engine{
		questions: questions,
		history:   history,
		scores:    scores,
		clk:       clk,
		rng:       rng,
		cfg:       cfg,
	}
}

// SelectNext returns the next question for the user in the given mode.
// The search runs four escalating tiers; the first non-empty candidate
// set wins and one of its members is picked uniformly at random.
func (e *Engine) SelectNext(ctx context.Context, user *store.EconomyState, mode catalog.Mode, opts Options) (*catalog.Question, error) {
	if mode != catalog.ModeMorning && mode != catalog.ModeEvening {
		return nil, fmt.Errorf("%w: selection mode %q", catalog.ErrInvalid, mode)
	}

	windowDays := e.cfg.RecentWindowDays
	if opts.RecentWindowDays > 0 {
		windowDays = opts.RecentWindowDays
	}
	excludeCount := e.cfg.RecentExcludeCount
	if opts.RecentExcludeCount >= 0 {
		excludeCount = opts.RecentExcludeCount
	}

	hard, err := e.history.AnsweredIDs(ctx, user.UserID)
	if err != nil {
		return nil, fmt.Errorf("hard exclude: %w", err)
	}

	soft, err := e.softExclude(ctx, user.UserID, mode, opts.ExcludeAskedToday, windowDays, excludeCount)
	if err != nil {
		return nil, err
	}

	scores, err := e.scores.All(ctx, user.UserID)
	if err != nil {
		return nil, fmt.Errorf("category scores: %w", err)
	}

	ranked := affinity.RankCategories(
		affinity.Weights(user.InterestText),
		affinity.NeedWeights(scores),
		affinity.ModeWeights(mode),
	)

	modeSet := []catalog.Mode{mode, catalog.ModeAny}

	// Tier A: category priority, mode, difficulty near the personal level.
	for _, cat := range ranked {
		lvl := personalLevel(scores[cat], e.cfg.JitterChoices, e.rng)
		cand, err := e.candidates(ctx, store.QuestionFilter{
			Category:      cat,
			Modes:         modeSet,
			MinDifficulty: clampLevel(lvl - 1),
			MaxDifficulty: clampLevel(lvl + 1),
		}, hard, soft)
		if err != nil {
			return nil, err
		}
		if len(cand) > 0 {
			return e.pick(cand), nil
		}
	}

	// Tier B: drop the difficulty constraint.
	for _, cat := range ranked {
		cand, err := e.candidates(ctx, store.QuestionFilter{Category: cat, Modes: modeSet}, hard, soft)
		if err != nil {
			return nil, err
		}
		if len(cand) > 0 {
			return e.pick(cand), nil
		}
	}

	// Tier C: drop the mode constraint too.
	for _, cat := range ranked {
		cand, err := e.candidates(ctx, store.QuestionFilter{Category: cat}, hard, soft)
		if err != nil {
			return nil, err
		}
		if len(cand) > 0 {
			return e.pick(cand), nil
		}
	}

	return e.fallback(ctx, hard, soft)
}

// softExclude builds the temporary anti-repetition set: questions asked
// today in the same mode (extra-question path), plus the most recent N
// asked in the mode inside the lookback window.
func (e *Engine) softExclude(ctx context.Context, userID string, mode catalog.Mode, excludeToday bool, windowDays, excludeCount int) (map[int64]bool, error) {
	soft := make(map[int64]bool)

	if excludeToday {
		start, end := clock.DayBounds(e.clk.Now())
		ids, err := e.history.AskedBetween(ctx, userID, mode, start, end)
		if err != nil {
			return nil, fmt.Errorf("asked today: %w", err)
		}
		for _, id := range ids {
			soft[id] = true
		}
	}

	if excludeCount > 0 {
		if windowDays < 1 {
			windowDays = 1
		}
		cutoff := e.clk.Now().Add(-time.Duration(windowDays) * 24 * time.Hour)
		recent, err := e.history.RecentAsked(ctx, userID, mode, cutoff, excludeCount)
		if err != nil {
			return nil, fmt.Errorf("recent asked: %w", err)
		}
		for _, id := range recent {
			soft[id] = true
		}
	}
	return soft, nil
}

func (e *Engine) candidates(ctx context.Context, f store.QuestionFilter, hard, soft map[int64]bool) ([]catalog.Question, error) {
	qs, err := e.questions.Filter(ctx, f)
	if err != nil {
		return nil, fmt.Errorf("filter candidates: %w", err)
	}
	out := qs[:0]
	for _, q := range qs {
		if hard[q.ID] || soft[q.ID] {
			continue
		}
		out = append(out, q)
	}
	return out, nil
}

// fallback guarantees a result whenever the catalog is non-empty: try the
// catalog minus hard and soft excludes, then minus hard only, then the
// entire catalog.
func (e *Engine) fallback(ctx context.Context, hard, soft map[int64]bool) (*catalog.Question, error) {
	all, err := e.questions.All(ctx)
	if err != nil {
		return nil, fmt.Errorf("fallback: %w", err)
	}
	if len(all) == 0 {
		return nil, ErrNoQuestions
	}

	var minusBoth, minusHard []catalog.Question
	for _, q := range all {
		if hard[q.ID] {
			continue
		}
		minusHard = append(minusHard, q)
		if !soft[q.ID] {
			minusBoth = append(minusBoth, q)
		}
	}

	switch {
	case len(minusBoth) > 0:
		return e.pick(minusBoth), nil
	case len(minusHard) > 0:
		return e.pick(minusHard), nil
	default:
		return e.pick(all), nil
	}
}

func (e *Engine) pick(qs []catalog.Question) *catalog.Question {
	q := qs[e.rng.IntN(len(qs))]
	return &q
}
