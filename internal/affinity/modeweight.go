package affinity

import (
	"sort"

	"github.com/mwelte/undo/internal/catalog"
)

// modeWeights are the fixed time-of-day tables: mornings lean toward
// habits, goals and the body; evenings toward self-image and emotion.
// Product-tuned values, preserved as-is.
var modeWeights = map[catalog.Mode]map[catalog.Category]int{
	catalog.ModeMorning: {
		catalog.CategoryHabit:        3,
		catalog.CategoryFuture:       3,
		catalog.CategoryBody:         3,
		catalog.CategoryVision:       2,
		catalog.CategorySelfImage:    2,
		catalog.CategoryEmotion:      2,
		catalog.CategoryMindset:      2,
		catalog.CategoryRelationship: 1,
	},
	catalog.ModeEvening: {
		catalog.CategorySelfImage:    3,
		catalog.CategoryEmotion:      3,
		catalog.CategoryMindset:      2,
		catalog.CategoryRelationship: 2,
		catalog.CategoryBody:         2,
		catalog.CategoryHabit:        1,
		catalog.CategoryVision:       1,
		catalog.CategoryFuture:       1,
	},
}

// ModeWeights returns the category weights for a mode. Unknown modes
// (including ModeAny) weigh every category equally.
func ModeWeights(mode catalog.Mode) map[catalog.Category]int {
	if w, ok := modeWeights[mode]; ok {
		return w
	}
	flat := make(map[catalog.Category]int)
	for _, c := range catalog.AllCategories() {
		flat[c] = 1
	}
	return flat
}

// RankCategories orders all categories descending by
// affinity * need * modeWeight. The sort is stable over the fixed category
// order, so ties break deterministically.
func RankCategories(aff, need, mode map[catalog.Category]int) []catalog.Category {
	cats := catalog.AllCategories()
	score := make(map[catalog.Category]int, len(cats))
	for _, c := range cats {
		score[c] = weightOr1(aff, c) * weightOr1(need, c) * weightOr1(mode, c)
	}
	sort.SliceStable(cats, func(i, j int) bool {
		return score[cats[i]] > score[cats[j]]
	})
	return cats
}

func weightOr1(w map[catalog.Category]int, c catalog.Category) int {
	if v, ok := w[c]; ok && v > 0 {
		return v
	}
	return 1
}
