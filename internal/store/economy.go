package store

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/mwelte/undo/internal/clock"
)

type economyRepo struct {
	db *sql.DB
}

func (r *economyRepo) Create(ctx context.Context, st *EconomyState) error {
	if st.UserID == "" {
		return fmt.Errorf("create user: empty id")
	}
	var proUntil any
	if st.ProUntil != nil {
		proUntil = st.ProUntil.Unix()
	}
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO users (id, interest_text, tokens, streak, last_active, subscription, pro_until, version)
		VALUES (?, ?, ?, ?, ?, ?, ?, 0)`,
		st.UserID, st.InterestText, st.Tokens, st.Streak,
		lastActiveString(st.LastActive), st.Subscription, proUntil,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("user %s exists: %w", st.UserID, ErrConflict)
		}
		return fmt.Errorf("create user: %w", err)
	}
	st.Version = 0
	return nil
}

func (r *economyRepo) Get(ctx context.Context, userID string) (*EconomyState, error) {
	row := r.db.QueryRowContext(ctx, `
		SELECT id, interest_text, tokens, streak, last_active, subscription, pro_until, version
		FROM users WHERE id = ?`, userID)

	var (
		st         EconomyState
		lastActive string
		proUntil   sql.NullInt64
	)
	err := row.Scan(&st.UserID, &st.InterestText, &st.Tokens, &st.Streak,
		&lastActive, &st.Subscription, &proUntil, &st.Version)
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("user %s: %w", userID, ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("get user: %w", err)
	}

	st.LastActive, err = clock.ParseDate(lastActive)
	if err != nil {
		return nil, fmt.Errorf("user %s last_active: %w", userID, err)
	}
	if proUntil.Valid {
		t := time.Unix(proUntil.Int64, 0)
		st.ProUntil = &t
	}
	return &st, nil
}

// Update writes the state back under compare-and-swap on Version. A lost
// race returns ErrConflict and leaves the row untouched; the token
// non-negativity CHECK makes an over-debit fail the whole statement.
func (r *economyRepo) Update(ctx context.Context, st *EconomyState) error {
	if st.Tokens < 0 {
		return fmt.Errorf("tokens would go negative (%d): %w", st.Tokens, ErrConflict)
	}
	var proUntil any
	if st.ProUntil != nil {
		proUntil = st.ProUntil.Unix()
	}

	res, err := r.db.ExecContext(ctx, `
		UPDATE users
		SET interest_text = ?, tokens = ?, streak = ?, last_active = ?,
		    subscription = ?, pro_until = ?, version = version + 1
		WHERE id = ? AND version = ?`,
		st.InterestText, st.Tokens, st.Streak, lastActiveString(st.LastActive),
		st.Subscription, proUntil, st.UserID, st.Version,
	)
	if err != nil {
		return fmt.Errorf("update user: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("update user: %w", err)
	}
	if n == 0 {
		// Distinguish missing row from version race.
		var exists int
		if err := r.db.QueryRowContext(ctx,
			`SELECT COUNT(*) FROM users WHERE id = ?`, st.UserID).Scan(&exists); err == nil && exists == 0 {
			return fmt.Errorf("user %s: %w", st.UserID, ErrNotFound)
		}
		return fmt.Errorf("user %s version %d: %w", st.UserID, st.Version, ErrConflict)
	}
	st.Version++
	return nil
}

func lastActiveString(d clock.Date) string {
	if d.IsZero() {
		return ""
	}
	return d.String()
}

func isUniqueViolation(err error) bool {
	return err != nil && strings.Contains(err.Error(), "UNIQUE constraint failed")
}
