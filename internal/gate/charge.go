package gate

import (
	"context"
	"errors"
	"fmt"

	"github.com/mwelte/undo/internal/clock"
	"github.com/mwelte/undo/internal/store"
)

// casRetries bounds how often a charge is retried after losing an
// optimistic-concurrency race on the user row.
const casRetries = 3

// Gate evaluates features and debits token costs atomically.
type Gate struct {
	economy store.EconomyRepo
	clk     clock.Clock
}

func New(economy store.EconomyRepo, clk clock.Clock) *Gate {
	return &Gate{economy: economy, clk: clk}
}

// SubscriptionOf extracts the gate-relevant plan state from a user row.
func SubscriptionOf(st *store.EconomyState) Subscription {
	return Subscription{Plan: st.Subscription, ProUntil: st.ProUntil}
}

// CheckAndCharge evaluates the feature for the user and, when it carries
// a cost, debits the tokens in one compare-and-swap update. Either the
// full cost is debited or nothing is: a denial or an insufficient balance
// leaves the account untouched. Lost races are retried a few times with a
// fresh read before surfacing store.ErrConflict.
func (g *Gate) CheckAndCharge(ctx context.Context, userID string, feature Feature) (Decision, error) {
	now := g.clk.Now()

	for attempt := 0; ; attempt++ {
		st, err := g.economy.Get(ctx, userID)
		if err != nil {
			return Decision{}, fmt.Errorf("load user %s: %w", userID, err)
		}

		dec, err := Evaluate(SubscriptionOf(st), feature, now)
		if err != nil {
			return Decision{}, err
		}
		if !dec.Allowed {
			return dec, &ErrProRequired{Feature: feature}
		}
		if dec.Cost == 0 {
			return dec, nil
		}

		if st.Tokens < dec.Cost {
			return dec, &ErrInsufficientTokens{Feature: feature, Need: dec.Cost, Have: st.Tokens}
		}

		st.Tokens -= dec.Cost
		err = g.economy.Update(ctx, st)
		if err == nil {
			return dec, nil
		}
		if !errors.Is(err, store.ErrConflict) || attempt >= casRetries {
			return Decision{}, fmt.Errorf("charge %d tokens for %s: %w", dec.Cost, feature, err)
		}
	}
}
