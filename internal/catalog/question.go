// Package catalog defines the reflective question catalog: fixed topic
// categories, time-of-day modes, and the question records the selection
// engine draws from.
package catalog

import "fmt"

// Category is a fixed topical tag for a question.
type Category string

const (
	CategorySelfImage    Category = "selfimage"
	CategoryEmotion      Category = "emotion"
	CategoryHabit        Category = "habit"
	CategoryRelationship Category = "relationship"
	CategoryMindset      Category = "mindset"
	CategoryVision       Category = "vision"
	CategoryFuture       Category = "future"
	CategoryBody         Category = "body"
)

// AllCategories returns all categories in display order.
func AllCategories() []Category {
	return []Category{
		CategorySelfImage,
		CategoryEmotion,
		CategoryHabit,
		CategoryRelationship,
		CategoryMindset,
		CategoryVision,
		CategoryFuture,
		CategoryBody,
	}
}

// DisplayName returns a human-readable label for the category.
func (c Category) DisplayName() string {
	switch c {
	case CategorySelfImage:
		return "Self-Image & Awareness"
	case CategoryEmotion:
		return "Emotions & Regulation"
	case CategoryHabit:
		return "Habits & Decisions"
	case CategoryRelationship:
		return "Relationships & Empathy"
	case CategoryMindset:
		return "Perspective & Mindset"
	case CategoryVision:
		return "Creativity & Vision"
	case CategoryFuture:
		return "Future & Goals"
	case CategoryBody:
		return "Body & Energy"
	default:
		return string(c)
	}
}

// ParseCategory validates a raw category string.
func ParseCategory(s string) (Category, error) {
	c := Category(s)
	for _, known := range AllCategories() {
		if c == known {
			return c, nil
		}
	}
	return "", fmt.Errorf("%w: category %q", ErrInvalid, s)
}

// Mode is a time-of-day selector for a question.
type Mode string

const (
	ModeMorning Mode = "morning"
	ModeEvening Mode = "evening"
	ModeAny     Mode = "any"
)

// ParseMode validates a raw mode string. ModeAny is valid on questions but
// not as a selection mode; callers that need a concrete time of day should
// check separately.
func ParseMode(s string) (Mode, error) {
	switch Mode(s) {
	case ModeMorning, ModeEvening, ModeAny:
		return Mode(s), nil
	}
	return "", fmt.Errorf("%w: mode %q", ErrInvalid, s)
}

// Difficulty bounds for questions and personal levels.
const (
	MinDifficulty = 1
	MaxDifficulty = 5
)

// Question is a single reflective prompt. Immutable after creation.
type Question struct {
	ID         int64
	Category   Category
	Mode       Mode
	Difficulty int
	Text       string
	Tips       []string
}

// Validate checks the question's fields before insertion.
func (q *Question) Validate() error {
	if _, err := ParseCategory(string(q.Category)); err != nil {
		return err
	}
	if _, err := ParseMode(string(q.Mode)); err != nil {
		return err
	}
	if q.Difficulty < MinDifficulty || q.Difficulty > MaxDifficulty {
		return fmt.Errorf("%w: difficulty %d", ErrInvalid, q.Difficulty)
	}
	if q.Text == "" {
		return fmt.Errorf("%w: empty question text", ErrInvalid)
	}
	if len(q.Tips) > 5 {
		return fmt.Errorf("%w: %d tips (max 5)", ErrInvalid, len(q.Tips))
	}
	return nil
}
