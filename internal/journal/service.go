// Package journal orchestrates a reflection round end to end: pick the
// next question, record the answer, update mastery and streak state, and
// credit the earned tokens. It is the surface the delivery layer calls;
// the packages underneath stay pure.
package journal

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"math/rand/v2"
	"sync"

	"github.com/mwelte/undo/internal/catalog"
	"github.com/mwelte/undo/internal/clock"
	"github.com/mwelte/undo/internal/gate"
	"github.com/mwelte/undo/internal/scoring"
	"github.com/mwelte/undo/internal/selection"
	"github.com/mwelte/undo/internal/store"
	"github.com/mwelte/undo/internal/streak"
)

// casRetries bounds retries after losing an optimistic-concurrency race
// on the user row.
const casRetries = 3

// Service wires selection, scoring, streaks, and the feature gate over a
// single store.
type Service struct {
	questions store.QuestionRepo
	history   store.HistoryRepo
	scores    store.ScoreRepo
	economy   store.EconomyRepo
	engine    *selection.Engine
	scorer    *scoring.Scorer
	gate      *gate.Gate
	clk       clock.Clock
	log       *slog.Logger

	mu    sync.Mutex
	locks map[string]*sync.Mutex
}

// New builds the service. The rng seeds the selection engine; pass a
// seeded source in tests.
func New(s *store.Store, clk clock.Clock, rng *rand.Rand, log *slog.Logger) *Service {
	if log == nil {
		log = slog.Default()
	}
	return &Service{
		questions: s.Questions(),
		history:   s.History(),
		scores:    s.Scores(),
		economy:   s.Economy(),
		engine:    selection.New(s.Questions(), s.History(), s.Scores(), clk, rng, selection.DefaultConfig()),
		scorer:    scoring.New(scoring.DefaultConfig()),
		gate:      gate.New(s.Economy(), clk),
		clk:       clk,
		log:       log,
		locks:     make(map[string]*sync.Mutex),
	}
}

// lockUser serializes economy and history mutations per user. The store's
// compare-and-swap discipline still backs cross-process writers.
func (s *Service) lockUser(userID string) func() {
	s.mu.Lock()
	l, ok := s.locks[userID]
	if !ok {
		l = &sync.Mutex{}
		s.locks[userID] = l
	}
	s.mu.Unlock()
	l.Lock()
	return l.Unlock
}

// Prompt is a question served to the user, with the tokens it cost.
type Prompt struct {
	Question *catalog.Question
	Charged  int
}

// NextPrompt selects and records the user's next question. When extra is
// set the extra-question feature is charged first and questions already
// asked today are excluded. An empty catalog is seeded with the default
// questions once before giving up.
func (s *Service) NextPrompt(ctx context.Context, userID string, mode catalog.Mode, extra bool) (*Prompt, error) {
	unlock := s.lockUser(userID)
	defer unlock()

	user, err := s.economy.Get(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("load user %s: %w", userID, err)
	}

	charged := 0
	if extra {
		dec, err := s.gate.CheckAndCharge(ctx, userID, gate.FeatureExtraQuestion)
		if err != nil {
			return nil, err
		}
		charged = dec.Cost
	}

	opts := selection.DefaultOptions()
	opts.ExcludeAskedToday = extra

	q, err := s.engine.SelectNext(ctx, user, mode, opts)
	if errors.Is(err, selection.ErrNoQuestions) {
		n, seedErr := s.questions.SeedIfEmpty(ctx, catalog.DefaultSeed())
		if seedErr != nil {
			return nil, fmt.Errorf("seed catalog: %w", seedErr)
		}
		s.log.Info("seeded empty question catalog", "questions", n)
		q, err = s.engine.SelectNext(ctx, user, mode, opts)
	}
	if err != nil {
		return nil, err
	}

	if err := s.history.RecordAsked(ctx, userID, q.ID, mode, s.clk.Now()); err != nil {
		return nil, fmt.Errorf("record asked: %w", err)
	}
	return &Prompt{Question: q, Charged: charged}, nil
}

// Result summarizes what an answer earned.
type Result struct {
	QualityReward   int // tokens from the answer quality scorer, 0-3
	MilestoneReward int // tokens from a streak milestone, 0-3
	Streak          int // streak after today's advance (0 right after day 7)
	Tokens          int // balance after crediting
	CategoryScore   int // mastery score of the question's category
}

// SubmitAnswer records the answer and applies every side effect of a
// completed reflection: the history row flips to answered exactly once,
// the category score grows by the self rating, the streak advances, and
// milestone plus quality tokens are credited in one balance update.
// selfRating is 1-5, or 0 to accept the default of 3.
func (s *Service) SubmitAnswer(ctx context.Context, userID string, questionID int64, answer string, selfRating int) (*Result, error) {
	quality := selfRating
	if quality == 0 {
		quality = 3
	}
	if quality < 1 || quality > 5 {
		return nil, fmt.Errorf("%w: self rating %d", catalog.ErrInvalid, selfRating)
	}

	unlock := s.lockUser(userID)
	defer unlock()

	now := s.clk.Now()

	q, err := s.questions.Get(ctx, questionID)
	if err != nil {
		return nil, fmt.Errorf("load question %d: %w", questionID, err)
	}

	if err := s.history.RecordAnswered(ctx, userID, questionID, quality, now); err != nil {
		return nil, fmt.Errorf("record answered: %w", err)
	}

	catScore, err := s.scores.AddClamped(ctx, userID, q.Category, quality, now)
	if err != nil {
		return nil, fmt.Errorf("bump category score: %w", err)
	}

	reward := s.scorer.Score(answer)
	res, err := s.creditAnswer(ctx, userID, reward)
	if err != nil {
		return nil, err
	}
	res.CategoryScore = catScore

	s.log.Info("answer recorded",
		"user", userID, "question", questionID, "category", q.Category,
		"quality", quality, "reward", res.QualityReward, "milestone", res.MilestoneReward,
		"streak", res.Streak)
	return res, nil
}

// creditAnswer advances the streak and credits reward plus milestone
// tokens under the store's compare-and-swap discipline. The whole
// computation reruns on a lost race so the streak advance is applied to
// fresh state; a same-day rerun grants no second milestone.
func (s *Service) creditAnswer(ctx context.Context, userID string, reward int) (*Result, error) {
	today := clock.DateOf(s.clk.Now())

	for attempt := 0; ; attempt++ {
		st, err := s.economy.Get(ctx, userID)
		if err != nil {
			return nil, fmt.Errorf("load user %s: %w", userID, err)
		}

		pos := streak.State{Streak: st.Streak, LastActive: st.LastActive}
		grant := streak.Advance(&pos, today)

		st.Streak = pos.Streak
		st.LastActive = pos.LastActive
		st.Tokens += grant + reward

		err = s.economy.Update(ctx, st)
		if err == nil {
			return &Result{
				QualityReward:   reward,
				MilestoneReward: grant,
				Streak:          st.Streak,
				Tokens:          st.Tokens,
			}, nil
		}
		if !errors.Is(err, store.ErrConflict) || attempt >= casRetries {
			return nil, fmt.Errorf("credit answer: %w", err)
		}
	}
}
