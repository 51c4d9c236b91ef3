package selection

// Config holds the anti-repetition and difficulty knobs. The defaults are
// the product-tuned values; change them here, not inline.
type Config struct {
	// RecentWindowDays is the lookback window for soft exclusion.
	RecentWindowDays int
	// RecentExcludeCount is how many of the most recent same-mode
	// questions inside the window are avoided.
	RecentExcludeCount int
	// JitterChoices is the difficulty jitter distribution. The repeated
	// zero doubles its weight: mostly stable, occasionally nudged.
	JitterChoices []int
}

// DefaultConfig returns the production selection settings.
func DefaultConfig() Config {
	return Config{
		RecentWindowDays:   7,
		RecentExcludeCount: 3,
		JitterChoices:      []int{-1, 0, 0, 1},
	}
}

// Options adjusts a single SelectNext call. Zero values fall back to the
// engine Config.
type Options struct {
	// ExcludeAskedToday additionally skips questions already asked today
	// in the same mode. Used for the paid extra-question path.
	ExcludeAskedToday bool
	// RecentWindowDays overrides Config.RecentWindowDays when > 0.
	RecentWindowDays int
	// RecentExcludeCount overrides Config.RecentExcludeCount when >= 0.
	// -1 means "use config"; 0 disables the recent exclusion.
	RecentExcludeCount int
}

// DefaultOptions returns Options deferring everything to the Config.
func DefaultOptions() Options {
	return Options{RecentExcludeCount: -1}
}
