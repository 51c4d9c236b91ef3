// Package gate decides whether a user may use a premium feature and what
// it costs. Features are either reserved for pro subscribers, included in
// pro but token-priced for free users, or token-priced for everyone. The
// tables mirror the product pricing and are the single source of truth.
package gate

import (
	"fmt"
	"time"

	"github.com/mwelte/undo/internal/catalog"
)

// Feature is a gated product capability.
type Feature string

const (
	FeatureWeDo          Feature = "wedo"
	FeatureRadar         Feature = "radar"
	FeatureAnswerCompare Feature = "answer_compare"
	FeatureExtraQuestion Feature = "extra_question"
	FeatureWeeklyReport  Feature = "weekly_report"
	FeatureMonthlyReport Feature = "monthly_report"
	FeatureExtraWeDo     Feature = "extra_wedo"
)

// Policy classifies how a feature is unlocked.
type Policy string

const (
	// PolicyProOnly features are never available to free users.
	PolicyProOnly Policy = "pro_only"
	// PolicyIncludedInPro features are free for pro users and token-priced
	// for free users.
	PolicyIncludedInPro Policy = "included_in_pro"
	// PolicyPricedForEveryone features cost tokens regardless of plan.
	PolicyPricedForEveryone Policy = "priced_for_everyone"
)

// Policies maps every feature to its unlock rule. Read-only.
var Policies = map[Feature]Policy{
	FeatureWeDo:          PolicyProOnly,
	FeatureRadar:         PolicyIncludedInPro,
	FeatureWeeklyReport:  PolicyIncludedInPro,
	FeatureMonthlyReport: PolicyIncludedInPro,
	FeatureAnswerCompare: PolicyPricedForEveryone,
	FeatureExtraQuestion: PolicyPricedForEveryone,
	FeatureExtraWeDo:     PolicyPricedForEveryone,
}

// Prices is the token cost per feature for users who are not covered by
// their plan. Features absent from the map cost nothing. Read-only.
var Prices = map[Feature]int{
	FeatureRadar:         3,
	FeatureAnswerCompare: 1,
	FeatureExtraQuestion: 1,
	FeatureWeeklyReport:  2,
	FeatureMonthlyReport: 4,
	FeatureExtraWeDo:     2,
}

// ParseFeature validates a raw feature key.
func ParseFeature(s string) (Feature, error) {
	f := Feature(s)
	if _, ok := Policies[f]; !ok {
		return "", fmt.Errorf("%w: unknown feature %q", catalog.ErrInvalid, s)
	}
	return f, nil
}

// Subscription is the plan state the gate evaluates against.
type Subscription struct {
	Plan     string // "" | "free" | "pro"
	ProUntil *time.Time
}

// Active reports whether pro benefits apply: either the plan itself is
// pro, or a previously granted pro window still covers now.
func (s Subscription) Active(now time.Time) bool {
	if s.Plan == "pro" {
		return true
	}
	return s.ProUntil != nil && !s.ProUntil.Before(now)
}

// Decision is the outcome of evaluating a feature for a subscription.
// Cost is the token amount the caller must debit before granting access;
// it is zero whenever Allowed is false.
type Decision struct {
	Allowed bool
	Cost    int
	Reason  string
}

// Evaluate applies the policy and price tables to a subscription. It does
// not touch balances; CheckAndCharge layers the debit on top.
func Evaluate(sub Subscription, feature Feature, now time.Time) (Decision, error) {
	policy, ok := Policies[feature]
	if !ok {
		return Decision{}, fmt.Errorf("%w: unknown feature %q", catalog.ErrInvalid, feature)
	}

	switch policy {
	case PolicyProOnly:
		if sub.Active(now) {
			return Decision{Allowed: true, Reason: "pro feature unlocked"}, nil
		}
		return Decision{Reason: "requires a pro subscription"}, nil
	case PolicyIncludedInPro:
		if sub.Active(now) {
			return Decision{Allowed: true, Reason: "included in pro"}, nil
		}
		return Decision{Allowed: true, Cost: Prices[feature], Reason: "available for tokens"}, nil
	default:
		return Decision{Allowed: true, Cost: Prices[feature], Reason: "tokens required"}, nil
	}
}
