package store

import (
	"context"
	"database/sql"
	"fmt"
	"time"
)

type promoRepo struct {
	db *sql.DB
}

func (r *promoRepo) Insert(ctx context.Context, p *PromoCode) error {
	if p.Code == "" {
		return fmt.Errorf("insert promo: empty code")
	}
	var expires any
	if p.ExpiresAt != nil {
		expires = p.ExpiresAt.Unix()
	}
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO promo_codes (code, uses_left, plan, days, token_grant, expires_at)
		VALUES (?, ?, ?, ?, ?, ?)`,
		p.Code, p.UsesLeft, p.Plan, p.Days, p.TokenGrant, expires,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("promo %s exists: %w", p.Code, ErrConflict)
		}
		return fmt.Errorf("insert promo: %w", err)
	}
	return nil
}

func (r *promoRepo) Get(ctx context.Context, code string) (*PromoCode, error) {
	p, err := getPromo(ctx, r.db, code)
	if err != nil {
		return nil, err
	}
	return p, nil
}

// Redeem validates and applies a promo code in a single transaction:
// decrement uses, extend pro_until from max(now, current), credit tokens.
// A failure at any step rolls the whole grant back.
func (r *promoRepo) Redeem(ctx context.Context, code, userID string, now time.Time) (*RedeemResult, error) {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("begin redeem: %w", err)
	}
	defer tx.Rollback()

	promo, err := getPromo(ctx, tx, code)
	if err != nil {
		return nil, err
	}
	if promo.ExpiresAt != nil && promo.ExpiresAt.Before(now) {
		return nil, fmt.Errorf("promo %s expired: %w", code, ErrConflict)
	}
	if promo.UsesLeft < 1 {
		return nil, fmt.Errorf("promo %s used up: %w", code, ErrConflict)
	}

	res, err := tx.ExecContext(ctx,
		`UPDATE promo_codes SET uses_left = uses_left - 1 WHERE code = ? AND uses_left > 0`, code)
	if err != nil {
		return nil, fmt.Errorf("decrement promo: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return nil, fmt.Errorf("promo %s used up: %w", code, ErrConflict)
	}

	result := &RedeemResult{Plan: promo.Plan, TokensGranted: promo.TokenGrant}

	if promo.Plan == "pro" && promo.Days > 0 {
		var current sql.NullInt64
		if err := tx.QueryRowContext(ctx,
			`SELECT pro_until FROM users WHERE id = ?`, userID).Scan(&current); err != nil {
			if err == sql.ErrNoRows {
				return nil, fmt.Errorf("user %s: %w", userID, ErrNotFound)
			}
			return nil, fmt.Errorf("read pro_until: %w", err)
		}

		base := now
		if current.Valid {
			if t := time.Unix(current.Int64, 0); t.After(now) {
				base = t
			}
		}
		days := promo.Days
		if days < 1 {
			days = 1
		}
		until := base.AddDate(0, 0, days)
		if _, err := tx.ExecContext(ctx, `
			UPDATE users SET subscription = 'pro', pro_until = ?, version = version + 1
			WHERE id = ?`,
			until.Unix(), userID,
		); err != nil {
			return nil, fmt.Errorf("extend pro: %w", err)
		}
		result.DaysGranted = days
		result.ProUntil = &until
	}

	if promo.TokenGrant > 0 {
		res, err := tx.ExecContext(ctx, `
			UPDATE users SET tokens = tokens + ?, version = version + 1 WHERE id = ?`,
			promo.TokenGrant, userID)
		if err != nil {
			return nil, fmt.Errorf("grant tokens: %w", err)
		}
		if n, _ := res.RowsAffected(); n == 0 {
			return nil, fmt.Errorf("user %s: %w", userID, ErrNotFound)
		}
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("commit redeem: %w", err)
	}
	return result, nil
}

type queryRower interface {
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

func getPromo(ctx context.Context, q queryRower, code string) (*PromoCode, error) {
	row := q.QueryRowContext(ctx, `
		SELECT code, uses_left, plan, days, token_grant, expires_at
		FROM promo_codes WHERE code = ?`, code)

	var (
		p       PromoCode
		expires sql.NullInt64
	)
	err := row.Scan(&p.Code, &p.UsesLeft, &p.Plan, &p.Days, &p.TokenGrant, &expires)
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("promo %s: %w", code, ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("get promo: %w", err)
	}
	if expires.Valid {
		t := time.Unix(expires.Int64, 0)
		p.ExpiresAt = &t
	}
	return &p, nil
}
