package store

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"github.com/mwelte/undo/internal/catalog"
)

type questionRepo struct {
	db *sql.DB
}

func (r *questionRepo) Insert(ctx context.Context, q *catalog.Question) error {
	if err := q.Validate(); err != nil {
		return err
	}
	res, err := r.db.ExecContext(ctx,
		`INSERT INTO questions (category, mode, difficulty, text, tips) VALUES (?, ?, ?, ?, ?)`,
		string(q.Category), string(q.Mode), q.Difficulty, q.Text, joinTips(q.Tips),
	)
	if err != nil {
		return fmt.Errorf("insert question: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return fmt.Errorf("insert question id: %w", err)
	}
	q.ID = id
	return nil
}

func (r *questionRepo) Get(ctx context.Context, id int64) (*catalog.Question, error) {
	row := r.db.QueryRowContext(ctx,
		`SELECT id, category, mode, difficulty, text, tips FROM questions WHERE id = ?`, id)
	q, err := scanQuestion(row)
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("question %d: %w", id, ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("get question: %w", err)
	}
	return q, nil
}

func (r *questionRepo) All(ctx context.Context) ([]catalog.Question, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT id, category, mode, difficulty, text, tips FROM questions ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("query catalog: %w", err)
	}
	defer rows.Close()
	return collectQuestions(rows)
}

func (r *questionRepo) Filter(ctx context.Context, f QuestionFilter) ([]catalog.Question, error) {
	var (
		where []string
		args  []any
	)
	if f.Category != "" {
		where = append(where, "category = ?")
		args = append(args, string(f.Category))
	}
	if len(f.Modes) > 0 {
		placeholders := strings.TrimSuffix(strings.Repeat("?,", len(f.Modes)), ",")
		where = append(where, "mode IN ("+placeholders+")")
		for _, m := range f.Modes {
			args = append(args, string(m))
		}
	}
	if f.MinDifficulty > 0 {
		where = append(where, "difficulty >= ?")
		args = append(args, f.MinDifficulty)
	}
	if f.MaxDifficulty > 0 {
		where = append(where, "difficulty <= ?")
		args = append(args, f.MaxDifficulty)
	}

	query := `SELECT id, category, mode, difficulty, text, tips FROM questions`
	if len(where) > 0 {
		query += " WHERE " + strings.Join(where, " AND ")
	}
	query += " ORDER BY id"

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("filter questions: %w", err)
	}
	defer rows.Close()
	return collectQuestions(rows)
}

func (r *questionRepo) Count(ctx context.Context) (int, error) {
	var n int
	if err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM questions`).Scan(&n); err != nil {
		return 0, fmt.Errorf("count questions: %w", err)
	}
	return n, nil
}

func (r *questionRepo) SeedIfEmpty(ctx context.Context, qs []catalog.Question) (int, error) {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, fmt.Errorf("begin seed: %w", err)
	}
	defer tx.Rollback()

	var n int
	if err := tx.QueryRowContext(ctx, `SELECT COUNT(*) FROM questions`).Scan(&n); err != nil {
		return 0, fmt.Errorf("count questions: %w", err)
	}
	if n > 0 {
		return 0, nil
	}

	inserted := 0
	for i := range qs {
		q := qs[i]
		if err := q.Validate(); err != nil {
			return 0, fmt.Errorf("seed question %d: %w", i, err)
		}
		if _, err := tx.ExecContext(ctx,
			`INSERT INTO questions (category, mode, difficulty, text, tips) VALUES (?, ?, ?, ?, ?)`,
			string(q.Category), string(q.Mode), q.Difficulty, q.Text, joinTips(q.Tips),
		); err != nil {
			return 0, fmt.Errorf("seed question %d: %w", i, err)
		}
		inserted++
	}

	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("commit seed: %w", err)
	}
	return inserted, nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanQuestion(row rowScanner) (*catalog.Question, error) {
	var (
		q    catalog.Question
		cat  string
		mode string
		tips string
	)
	if err := row.Scan(&q.ID, &cat, &mode, &q.Difficulty, &q.Text, &tips); err != nil {
		return nil, err
	}
	q.Category = catalog.Category(cat)
	q.Mode = catalog.Mode(mode)
	q.Tips = splitTips(tips)
	return &q, nil
}

func collectQuestions(rows *sql.Rows) ([]catalog.Question, error) {
	var out []catalog.Question
	for rows.Next() {
		q, err := scanQuestion(rows)
		if err != nil {
			return nil, fmt.Errorf("scan question: %w", err)
		}
		out = append(out, *q)
	}
	return out, rows.Err()
}

// Tips are stored pipe-separated, matching the catalog export format.
func joinTips(tips []string) string {
	return strings.Join(tips, "|")
}

func splitTips(s string) []string {
	if s == "" {
		return nil
	}
	parts := strings.Split(s, "|")
	out := parts[:0]
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}
