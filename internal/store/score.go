package store

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/mwelte/undo/internal/catalog"
)

type scoreRepo struct {
	db *sql.DB
}

func (r *scoreRepo) Get(ctx context.Context, userID string, c catalog.Category) (int, error) {
	var score int
	err := r.db.QueryRowContext(ctx,
		`SELECT score FROM category_scores WHERE user_id = ? AND category = ?`,
		userID, string(c),
	).Scan(&score)
	if err == sql.ErrNoRows {
		return 0, nil
	}
	if err != nil {
		return 0, fmt.Errorf("get score: %w", err)
	}
	return score, nil
}

func (r *scoreRepo) All(ctx context.Context, userID string) (map[catalog.Category]int, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT category, score FROM category_scores WHERE user_id = ?`, userID)
	if err != nil {
		return nil, fmt.Errorf("all scores: %w", err)
	}
	defer rows.Close()

	out := make(map[catalog.Category]int)
	for rows.Next() {
		var (
			cat   string
			score int
		)
		if err := rows.Scan(&cat, &score); err != nil {
			return nil, fmt.Errorf("scan score: %w", err)
		}
		out[catalog.Category(cat)] = score
	}
	return out, rows.Err()
}

func (r *scoreRepo) AddClamped(ctx context.Context, userID string, c catalog.Category, delta int, now time.Time) (int, error) {
	if delta < 0 {
		return 0, fmt.Errorf("%w: negative score delta %d", catalog.ErrInvalid, delta)
	}

	// Upsert with clamp in one statement keeps the increment atomic.
	var score int
	err := r.db.QueryRowContext(ctx, `
		INSERT INTO category_scores (user_id, category, score, last_seen)
		VALUES (?, ?, MIN(100, ?), ?)
		ON CONFLICT(user_id, category) DO UPDATE SET
			score = MIN(100, score + excluded.score),
			last_seen = excluded.last_seen
		RETURNING score`,
		userID, string(c), delta, now.Unix(),
	).Scan(&score)
	if err != nil {
		return 0, fmt.Errorf("add score: %w", err)
	}
	return score, nil
}
