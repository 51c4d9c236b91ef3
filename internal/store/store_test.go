package store

import (
	"context"
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mwelte/undo/internal/catalog"
	"github.com/mwelte/undo/internal/clock"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	// A named in-memory database per test keeps state isolated while the
	// connection pool shares the same underlying store.
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", strings.ReplaceAll(t.Name(), "/", "_"))
	s, err := Open(dsn)
	require.NoError(t, err, "open test store")
	t.Cleanup(func() { s.Close() })
	return s
}

func createTestUser(t *testing.T, s *Store, id string) *EconomyState {
	t.Helper()
	st := &EconomyState{UserID: id}
	require.NoError(t, s.Economy().Create(context.Background(), st))
	return st
}

func TestSeedIfEmptyIdempotent(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()
	repo := s.Questions()

	n, err := repo.SeedIfEmpty(ctx, catalog.DefaultSeed())
	require.NoError(t, err)
	assert.Equal(t, len(catalog.DefaultSeed()), n)

	// Second seed is a no-op.
	n, err = repo.SeedIfEmpty(ctx, catalog.DefaultSeed())
	require.NoError(t, err)
	assert.Zero(t, n)

	count, err := repo.Count(ctx)
	require.NoError(t, err)
	assert.Equal(t, len(catalog.DefaultSeed()), count)
}

func TestQuestionInsertGetFilter(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()
	repo := s.Questions()

	q := &catalog.Question{
		Category:   catalog.CategoryHabit,
		Mode:       catalog.ModeMorning,
		Difficulty: 3,
		Text:       "Which habit gets two minutes today?",
		Tips:       []string{"Keep it tiny", "Anchor it to coffee"},
	}
	require.NoError(t, repo.Insert(ctx, q))
	require.NotZero(t, q.ID)

	got, err := repo.Get(ctx, q.ID)
	require.NoError(t, err)
	assert.Equal(t, q.Text, got.Text)
	assert.Equal(t, q.Tips, got.Tips)

	_, err = repo.Get(ctx, 9999)
	assert.ErrorIs(t, err, ErrNotFound)

	// Filter by category + mode set + difficulty band.
	matches, err := repo.Filter(ctx, QuestionFilter{
		Category:      catalog.CategoryHabit,
		Modes:         []catalog.Mode{catalog.ModeMorning, catalog.ModeAny},
		MinDifficulty: 2,
		MaxDifficulty: 4,
	})
	require.NoError(t, err)
	require.Len(t, matches, 1)
	assert.Equal(t, q.ID, matches[0].ID)

	// Out-of-band difficulty excludes it.
	matches, err = repo.Filter(ctx, QuestionFilter{
		Category:      catalog.CategoryHabit,
		MinDifficulty: 4,
		MaxDifficulty: 5,
	})
	require.NoError(t, err)
	assert.Empty(t, matches)
}

func TestQuestionInsertRejectsInvalid(t *testing.T) {
	s := openTestStore(t)
	err := s.Questions().Insert(context.Background(), &catalog.Question{
		Category: "unknown", Mode: catalog.ModeAny, Difficulty: 1, Text: "x",
	})
	assert.ErrorIs(t, err, catalog.ErrInvalid)
}

func TestHistoryAskedAnsweredLifecycle(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()
	repo := s.History()
	now := time.Date(2025, 6, 1, 9, 0, 0, 0, time.UTC)

	require.NoError(t, repo.RecordAsked(ctx, "u1", 7, catalog.ModeMorning, now))

	// Asking again is a no-op, not an error.
	require.NoError(t, repo.RecordAsked(ctx, "u1", 7, catalog.ModeMorning, now.Add(time.Hour)))
	rec, err := repo.Get(ctx, "u1", 7)
	require.NoError(t, err)
	assert.Equal(t, now.Unix(), rec.AskedAt.Unix(), "first asked_at must survive the re-ask")
	assert.False(t, rec.Answered())

	require.NoError(t, repo.RecordAnswered(ctx, "u1", 7, 3, now.Add(2*time.Hour)))
	rec, err = repo.Get(ctx, "u1", 7)
	require.NoError(t, err)
	require.True(t, rec.Answered())
	require.NotNil(t, rec.Quality)
	assert.Equal(t, 3, *rec.Quality)

	// Second answer must be refused: rewards are granted exactly once.
	err = repo.RecordAnswered(ctx, "u1", 7, 5, now.Add(3*time.Hour))
	assert.ErrorIs(t, err, ErrConflict)

	rec, err = repo.Get(ctx, "u1", 7)
	require.NoError(t, err)
	assert.Equal(t, 3, *rec.Quality, "quality must not change on refused answer")
}

func TestHistoryRecordAnsweredWithoutAsked(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()
	repo := s.History()

	require.NoError(t, repo.RecordAnswered(ctx, "u1", 42, 4, time.Now()))
	rec, err := repo.Get(ctx, "u1", 42)
	require.NoError(t, err)
	assert.True(t, rec.Answered())
}

func TestHistoryRecordAnsweredRejectsBadQuality(t *testing.T) {
	s := openTestStore(t)
	repo := s.History()
	for _, q := range []int{0, 6, -1} {
		err := repo.RecordAnswered(context.Background(), "u1", 1, q, time.Now())
		assert.ErrorIs(t, err, catalog.ErrInvalid, "quality %d", q)
	}
}

func TestHistoryQueries(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()
	repo := s.History()
	base := time.Date(2025, 6, 10, 8, 0, 0, 0, time.UTC)

	// Three morning asks on different days, one evening ask.
	require.NoError(t, repo.RecordAsked(ctx, "u1", 1, catalog.ModeMorning, base))
	require.NoError(t, repo.RecordAsked(ctx, "u1", 2, catalog.ModeMorning, base.AddDate(0, 0, 1)))
	require.NoError(t, repo.RecordAsked(ctx, "u1", 3, catalog.ModeMorning, base.AddDate(0, 0, 2)))
	require.NoError(t, repo.RecordAsked(ctx, "u1", 4, catalog.ModeEvening, base.AddDate(0, 0, 2)))
	// Answer question 2 only.
	require.NoError(t, repo.RecordAnswered(ctx, "u1", 2, 3, base.AddDate(0, 0, 1)))

	answered, err := repo.AnsweredIDs(ctx, "u1")
	require.NoError(t, err)
	assert.Equal(t, map[int64]bool{2: true}, answered)

	// Window covering days 2 and 3, morning only.
	ids, err := repo.AskedBetween(ctx, "u1", catalog.ModeMorning,
		base.AddDate(0, 0, 1), base.AddDate(0, 0, 3))
	require.NoError(t, err)
	assert.ElementsMatch(t, []int64{2, 3}, ids)

	// Most recent 2 morning asks, newest first.
	recent, err := repo.RecentAsked(ctx, "u1", catalog.ModeMorning, base.AddDate(0, 0, -7), 2)
	require.NoError(t, err)
	assert.Equal(t, []int64{3, 2}, recent)

	// Limit 0 means no soft exclusion at all.
	recent, err = repo.RecentAsked(ctx, "u1", catalog.ModeMorning, base.AddDate(0, 0, -7), 0)
	require.NoError(t, err)
	assert.Empty(t, recent)
}

func TestScoreAddClamped(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()
	repo := s.Scores()
	now := time.Now()

	// Absent row reads as zero.
	score, err := repo.Get(ctx, "u1", catalog.CategoryEmotion)
	require.NoError(t, err)
	assert.Zero(t, score)

	score, err = repo.AddClamped(ctx, "u1", catalog.CategoryEmotion, 3, now)
	require.NoError(t, err)
	assert.Equal(t, 3, score)

	// Clamp at 100.
	score, err = repo.AddClamped(ctx, "u1", catalog.CategoryEmotion, 98, now)
	require.NoError(t, err)
	assert.Equal(t, 100, score)

	score, err = repo.AddClamped(ctx, "u1", catalog.CategoryEmotion, 5, now)
	require.NoError(t, err)
	assert.Equal(t, 100, score, "score is clamped, never exceeds 100")

	all, err := repo.All(ctx, "u1")
	require.NoError(t, err)
	assert.Equal(t, map[catalog.Category]int{catalog.CategoryEmotion: 100}, all)
}

func TestEconomyCreateGetUpdate(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()
	repo := s.Economy()

	st := createTestUser(t, s, "u1")
	st.Tokens = 5
	st.Streak = 2
	st.LastActive = clock.Date{Year: 2025, Month: time.June, Day: 1}
	st.Subscription = "free"
	require.NoError(t, repo.Update(ctx, st))

	got, err := repo.Get(ctx, "u1")
	require.NoError(t, err)
	assert.Equal(t, 5, got.Tokens)
	assert.Equal(t, 2, got.Streak)
	assert.Equal(t, st.LastActive, got.LastActive)
	assert.Equal(t, int64(1), got.Version)

	_, err = repo.Get(ctx, "missing")
	assert.ErrorIs(t, err, ErrNotFound)

	// Duplicate create conflicts.
	err = repo.Create(ctx, &EconomyState{UserID: "u1"})
	assert.ErrorIs(t, err, ErrConflict)
}

func TestEconomyUpdateCAS(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()
	repo := s.Economy()
	createTestUser(t, s, "u1")

	// Two readers race; the second writer loses.
	a, err := repo.Get(ctx, "u1")
	require.NoError(t, err)
	b, err := repo.Get(ctx, "u1")
	require.NoError(t, err)

	a.Tokens = 10
	require.NoError(t, repo.Update(ctx, a))

	b.Tokens = 99
	err = repo.Update(ctx, b)
	require.ErrorIs(t, err, ErrConflict)

	got, err := repo.Get(ctx, "u1")
	require.NoError(t, err)
	assert.Equal(t, 10, got.Tokens, "losing write must not land")
}

func TestEconomyUpdateRefusesNegativeTokens(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()
	repo := s.Economy()
	st := createTestUser(t, s, "u1")

	st.Tokens = -1
	err := repo.Update(ctx, st)
	require.Error(t, err)

	got, err := repo.Get(ctx, "u1")
	require.NoError(t, err)
	assert.Zero(t, got.Tokens)
}

func TestPromoRedeem(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	createTestUser(t, s, "u1")

	require.NoError(t, s.Promos().Insert(ctx, &PromoCode{
		Code: "WELCOME", UsesLeft: 2, Plan: "pro", Days: 30, TokenGrant: 5,
	}))

	res, err := s.Promos().Redeem(ctx, "WELCOME", "u1", now)
	require.NoError(t, err)
	assert.Equal(t, 30, res.DaysGranted)
	assert.Equal(t, 5, res.TokensGranted)
	require.NotNil(t, res.ProUntil)
	assert.Equal(t, now.AddDate(0, 0, 30).Unix(), res.ProUntil.Unix())

	st, err := s.Economy().Get(ctx, "u1")
	require.NoError(t, err)
	assert.Equal(t, 5, st.Tokens)
	assert.Equal(t, "pro", st.Subscription)
	require.NotNil(t, st.ProUntil)

	// Second use extends from the existing pro_until, not from now.
	res, err = s.Promos().Redeem(ctx, "WELCOME", "u1", now.Add(time.Hour))
	require.NoError(t, err)
	assert.Equal(t, now.AddDate(0, 0, 60).Unix(), res.ProUntil.Unix())

	// Uses exhausted.
	_, err = s.Promos().Redeem(ctx, "WELCOME", "u1", now)
	assert.ErrorIs(t, err, ErrConflict)
}

func TestPromoRedeemExpired(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	createTestUser(t, s, "u1")

	past := now.Add(-time.Hour)
	require.NoError(t, s.Promos().Insert(ctx, &PromoCode{
		Code: "OLD", UsesLeft: 1, Plan: "pro", Days: 30, ExpiresAt: &past,
	}))

	_, err := s.Promos().Redeem(ctx, "OLD", "u1", now)
	assert.ErrorIs(t, err, ErrConflict)

	_, err = s.Promos().Redeem(ctx, "NOPE", "u1", now)
	assert.ErrorIs(t, err, ErrNotFound)

	// Nothing was granted.
	st, err := s.Economy().Get(ctx, "u1")
	require.NoError(t, err)
	assert.Zero(t, st.Tokens)
	assert.Empty(t, st.Subscription)
}
