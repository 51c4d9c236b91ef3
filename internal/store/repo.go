package store

import (
	"context"
	"time"

	"github.com/mwelte/undo/internal/catalog"
	"github.com/mwelte/undo/internal/clock"
)

// QuestionFilter narrows catalog queries. Zero values mean "no constraint"
// except Category, which the tiered selection always supplies.
type QuestionFilter struct {
	Category      catalog.Category
	Modes         []catalog.Mode // question mode must be one of these
	MinDifficulty int
	MaxDifficulty int
}

// QuestionRepo provides access to the question catalog. The catalog is
// read-mostly: questions are created at seed time and never deleted.
type QuestionRepo interface {
	// Insert stores a new question and fills in its ID.
	Insert(ctx context.Context, q *catalog.Question) error

	// Get returns a question by id, or ErrNotFound.
	Get(ctx context.Context, id int64) (*catalog.Question, error)

	// All returns the entire catalog.
	All(ctx context.Context) ([]catalog.Question, error)

	// Filter returns questions matching the filter.
	Filter(ctx context.Context, f QuestionFilter) ([]catalog.Question, error)

	// Count returns the catalog size.
	Count(ctx context.Context) (int, error)

	// SeedIfEmpty inserts the given questions only when the catalog is
	// empty. Idempotent; returns the number inserted (0 if non-empty).
	SeedIfEmpty(ctx context.Context, qs []catalog.Question) (int, error)
}

// AskedRecord is one row of the per-user question history ledger.
// (user, question) is unique: once a record has answered_at set, the
// question is permanently excluded from selection for that user.
type AskedRecord struct {
	UserID     string
	QuestionID int64
	Mode       catalog.Mode
	AskedAt    time.Time
	AnsweredAt *time.Time
	Quality    *int // 1-5, set exactly once when answered
}

// Answered reports whether the record has been answered.
func (r *AskedRecord) Answered() bool { return r.AnsweredAt != nil }

// HistoryRepo is the append-only asked/answered ledger.
type HistoryRepo interface {
	// RecordAsked logs that a question was shown to the user. Re-asking a
	// question already in the ledger is a no-op.
	RecordAsked(ctx context.Context, userID string, questionID int64, mode catalog.Mode, at time.Time) error

	// RecordAnswered marks the asked record as answered with the given
	// quality, creating the record if the asked event was never logged.
	// Answering the same question a second time returns ErrConflict.
	RecordAnswered(ctx context.Context, userID string, questionID int64, quality int, at time.Time) error

	// Get returns a single ledger row, or ErrNotFound.
	Get(ctx context.Context, userID string, questionID int64) (*AskedRecord, error)

	// AnsweredIDs returns all question ids the user has ever answered,
	// across all modes. This is the permanent hard-exclude set.
	AnsweredIDs(ctx context.Context, userID string) (map[int64]bool, error)

	// AskedBetween returns ids asked in the mode within [from, to).
	AskedBetween(ctx context.Context, userID string, mode catalog.Mode, from, to time.Time) ([]int64, error)

	// RecentAsked returns up to limit ids asked in the mode since the
	// cutoff, most recent first.
	RecentAsked(ctx context.Context, userID string, mode catalog.Mode, since time.Time, limit int) ([]int64, error)
}

// ScoreRepo tracks the 0-100 mastery score per user and category.
type ScoreRepo interface {
	// Get returns the score, defaulting to 0 for an absent row.
	Get(ctx context.Context, userID string, c catalog.Category) (int, error)

	// All returns every stored score for the user.
	All(ctx context.Context, userID string) (map[catalog.Category]int, error)

	// AddClamped creates the row if absent, adds delta, clamps at 100,
	// stamps last_seen, and returns the new score.
	AddClamped(ctx context.Context, userID string, c catalog.Category, delta int, now time.Time) (int, error)
}

// EconomyState is the user's reward-economy aggregate: token balance,
// streak position, and subscription status. Version backs the
// compare-and-swap update discipline; Tokens never goes negative.
type EconomyState struct {
	UserID       string
	InterestText string // onboarding motive/outlook text, feeds affinity
	Tokens       int
	Streak       int
	LastActive   clock.Date
	Subscription string // "" | "free" | "pro"
	ProUntil     *time.Time
	Version      int64
}

// EconomyRepo persists EconomyState with optimistic concurrency: Update
// succeeds only if the row still carries the version the state was read
// at, otherwise ErrConflict and the caller retries with a fresh read.
type EconomyRepo interface {
	Create(ctx context.Context, st *EconomyState) error
	Get(ctx context.Context, userID string) (*EconomyState, error)
	Update(ctx context.Context, st *EconomyState) error
}

// PromoCode is a redeemable code granting pro time and/or tokens.
type PromoCode struct {
	Code       string
	UsesLeft   int
	Plan       string // "pro"
	Days       int
	TokenGrant int
	ExpiresAt  *time.Time
}

// RedeemResult reports what a successful redemption granted.
type RedeemResult struct {
	Plan          string
	DaysGranted   int
	TokensGranted int
	ProUntil      *time.Time
}

// PromoRepo manages promo codes. Redeem applies the whole grant (pro
// extension, token credit, uses decrement) as a single transaction.
type PromoRepo interface {
	Insert(ctx context.Context, p *PromoCode) error
	Get(ctx context.Context, code string) (*PromoCode, error)
	Redeem(ctx context.Context, code, userID string, now time.Time) (*RedeemResult, error)
}
