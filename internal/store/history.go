package store

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/mwelte/undo/internal/catalog"
)

type historyRepo struct {
	db *sql.DB
}

func (r *historyRepo) RecordAsked(ctx context.Context, userID string, questionID int64, mode catalog.Mode, at time.Time) error {
	// (user, question) is unique; asking again leaves the first record alone.
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO question_history (user_id, question_id, mode, asked_at)
		VALUES (?, ?, ?, ?)
		ON CONFLICT(user_id, question_id) DO NOTHING`,
		userID, questionID, string(mode), at.Unix(),
	)
	if err != nil {
		return fmt.Errorf("record asked: %w", err)
	}
	return nil
}

func (r *historyRepo) RecordAnswered(ctx context.Context, userID string, questionID int64, quality int, at time.Time) error {
	if quality < 1 || quality > 5 {
		return fmt.Errorf("%w: quality %d", catalog.ErrInvalid, quality)
	}

	// Set answered_at exactly once. The WHERE clause refuses a second
	// answer so rewards can never be granted twice for one question.
	res, err := r.db.ExecContext(ctx, `
		UPDATE question_history
		SET answered_at = ?, quality = ?
		WHERE user_id = ? AND question_id = ? AND answered_at IS NULL`,
		at.Unix(), quality, userID, questionID,
	)
	if err != nil {
		return fmt.Errorf("record answered: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("record answered: %w", err)
	}
	if n > 0 {
		return nil
	}

	// Either never asked (insert directly as answered) or already answered.
	res, err = r.db.ExecContext(ctx, `
		INSERT INTO question_history (user_id, question_id, mode, asked_at, answered_at, quality)
		VALUES (?, ?, 'any', ?, ?, ?)
		ON CONFLICT(user_id, question_id) DO NOTHING`,
		userID, questionID, at.Unix(), at.Unix(), quality,
	)
	if err != nil {
		return fmt.Errorf("record answered: %w", err)
	}
	n, err = res.RowsAffected()
	if err != nil {
		return fmt.Errorf("record answered: %w", err)
	}
	if n == 0 {
		return fmt.Errorf("question %d already answered: %w", questionID, ErrConflict)
	}
	return nil
}

func (r *historyRepo) Get(ctx context.Context, userID string, questionID int64) (*AskedRecord, error) {
	row := r.db.QueryRowContext(ctx, `
		SELECT user_id, question_id, mode, asked_at, answered_at, quality
		FROM question_history WHERE user_id = ? AND question_id = ?`,
		userID, questionID,
	)

	var (
		rec        AskedRecord
		mode       string
		askedAt    int64
		answeredAt sql.NullInt64
		quality    sql.NullInt64
	)
	err := row.Scan(&rec.UserID, &rec.QuestionID, &mode, &askedAt, &answeredAt, &quality)
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("history (%s, %d): %w", userID, questionID, ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("get history: %w", err)
	}

	rec.Mode = catalog.Mode(mode)
	rec.AskedAt = time.Unix(askedAt, 0)
	if answeredAt.Valid {
		t := time.Unix(answeredAt.Int64, 0)
		rec.AnsweredAt = &t
	}
	if quality.Valid {
		q := int(quality.Int64)
		rec.Quality = &q
	}
	return &rec, nil
}

func (r *historyRepo) AnsweredIDs(ctx context.Context, userID string) (map[int64]bool, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT question_id FROM question_history
		WHERE user_id = ? AND answered_at IS NOT NULL`,
		userID,
	)
	if err != nil {
		return nil, fmt.Errorf("answered ids: %w", err)
	}
	defer rows.Close()

	ids := make(map[int64]bool)
	for rows.Next() {
		var id int64
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("scan answered id: %w", err)
		}
		ids[id] = true
	}
	return ids, rows.Err()
}

func (r *historyRepo) AskedBetween(ctx context.Context, userID string, mode catalog.Mode, from, to time.Time) ([]int64, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT question_id FROM question_history
		WHERE user_id = ? AND mode = ? AND asked_at >= ? AND asked_at < ?
		ORDER BY asked_at DESC`,
		userID, string(mode), from.Unix(), to.Unix(),
	)
	if err != nil {
		return nil, fmt.Errorf("asked between: %w", err)
	}
	defer rows.Close()
	return collectIDs(rows)
}

func (r *historyRepo) RecentAsked(ctx context.Context, userID string, mode catalog.Mode, since time.Time, limit int) ([]int64, error) {
	if limit <= 0 {
		return nil, nil
	}
	rows, err := r.db.QueryContext(ctx, `
		SELECT question_id FROM question_history
		WHERE user_id = ? AND mode = ? AND asked_at >= ?
		ORDER BY asked_at DESC
		LIMIT ?`,
		userID, string(mode), since.Unix(), limit,
	)
	if err != nil {
		return nil, fmt.Errorf("recent asked: %w", err)
	}
	defer rows.Close()
	return collectIDs(rows)
}

func collectIDs(rows *sql.Rows) ([]int64, error) {
	var ids []int64
	for rows.Next() {
		var id int64
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("scan id: %w", err)
		}
		ids = append(ids, id)
	}
	return ids, rows.Err()
}
