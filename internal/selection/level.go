package selection

import (
	"math/rand/v2"

	"github.com/mwelte/undo/internal/catalog"
)

// personalLevel derives the user's difficulty level for a category from
// its mastery score: score/20+1, clamped to [1,5], then jittered by a
// draw from the configured distribution. The double-weighted zero keeps
// the level mostly stable while still nudging it often enough to avoid
// staleness.
func personalLevel(score int, choices []int, rng *rand.Rand) int {
	base := clampLevel(score/20 + 1)
	if len(choices) == 0 {
		return base
	}
	jitter := choices[rng.IntN(len(choices))]
	return clampLevel(base + jitter)
}

func clampLevel(l int) int {
	if l < catalog.MinDifficulty {
		return catalog.MinDifficulty
	}
	if l > catalog.MaxDifficulty {
		return catalog.MaxDifficulty
	}
	return l
}
