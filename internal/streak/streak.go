// Package streak tracks consecutive-day journaling activity and converts
// milestone streaks into token grants. Pure state machine over calendar
// days; persistence and per-user locking are the caller's job.
package streak

import "github.com/mwelte/undo/internal/clock"

// Milestones maps a streak length to the tokens it grants. Evaluated on
// the streak value after the day's advance. Day 7 additionally resets the
// streak to zero, so a full cycle yields 1+2+3 = 6 tokens.
var Milestones = map[int]int{
	3: 1,
	5: 2,
	7: 3,
}

// ResetAt is the streak length that closes the cycle.
const ResetAt = 7

// State is the per-user streak position.
type State struct {
	Streak     int
	LastActive clock.Date
}

// Advance records activity on the given day and returns the tokens granted
// by any milestone reached. Calling it twice on the same day is a no-op:
// the second call changes nothing and grants nothing.
func Advance(st *State, today clock.Date) int {
	switch {
	case st.LastActive == today:
		return 0
	case !st.LastActive.IsZero() && st.LastActive.AddDays(1) == today:
		st.Streak++
	default:
		st.Streak = 1
	}
	st.LastActive = today

	granted := Milestones[st.Streak]
	if st.Streak == ResetAt {
		st.Streak = 0
	}
	return granted
}

// NextMilestone returns the next streak length that grants tokens, for
// display ("2 more days to your bonus").
func NextMilestone(current int) int {
	for _, m := range []int{3, 5, 7} {
		if m > current {
			return m
		}
	}
	return 3 // past the reset point the cycle starts over
}
