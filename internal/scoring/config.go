package scoring

// Config holds the quality-score thresholds. The word-count cutoffs and
// ratios were tuned against real journal entries; treat them as product
// knobs rather than derived values.
type Config struct {
	// BaseWords is the minimum word count for any reward at all.
	BaseWords int
	// RichWords is the minimum word count for the 2-unit tier.
	RichWords int
	// DeepWords is the minimum word count for the 3-unit tier.
	DeepWords int

	// MinRichness is the unique-word ratio required above the base tier.
	MinRichness float64
	// MinActionHits is how many action/future vocabulary words must appear.
	MinActionHits int

	// Coherence bounds for the 3-unit tier: at least MinSentences
	// sentences with an average length inside [MinAvgSentence, MaxAvgSentence].
	MinSentences   int
	MinAvgSentence float64
	MaxAvgSentence float64
}

// DefaultConfig returns the production thresholds.
func DefaultConfig() Config {
	return Config{
		BaseWords:      40,
		RichWords:      90,
		DeepWords:      180,
		MinRichness:    0.45,
		MinActionHits:  2,
		MinSentences:   2,
		MinAvgSentence: 6,
		MaxAvgSentence: 35,
	}
}

// ActionWords is the fixed action/future vocabulary. A hit means the
// answer commits to something rather than only describing.
var ActionWords = []string{
	"will", "plan", "tomorrow", "today", "goal", "start", "begin",
	"next", "step", "commit", "decide", "change", "try", "schedule",
	"want", "intend",
}
