package gate

import "fmt"

// ErrProRequired indicates a pro-only feature was requested by a user
// without an active pro subscription. No tokens are charged.
type ErrProRequired struct {
	Feature Feature
}

func (e *ErrProRequired) Error() string {
	return fmt.Sprintf("feature %q requires a pro subscription", e.Feature)
}

// ErrInsufficientTokens indicates the balance cannot cover the feature
// cost. No tokens are charged.
type ErrInsufficientTokens struct {
	Feature Feature
	Need    int
	Have    int
}

func (e *ErrInsufficientTokens) Error() string {
	return fmt.Sprintf("feature %q costs %d tokens, balance is %d", e.Feature, e.Need, e.Have)
}
