package cmd

import (
	"fmt"
	"sort"
	"strings"

	"github.com/spf13/cobra"

	"github.com/mwelte/undo/internal/catalog"
	"github.com/mwelte/undo/internal/streak"
	"github.com/mwelte/undo/internal/ui/theme"
)

var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Show streak, tokens, and category progress",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		d, err := openDeps(cmd)
		if err != nil {
			return err
		}
		defer d.Close()

		userID, err := resolveUser(cmd)
		if err != nil {
			return err
		}

		st, err := d.store.Economy().Get(ctx, userID)
		if err != nil {
			return err
		}
		scores, err := d.store.Scores().All(ctx, userID)
		if err != nil {
			return err
		}
		answered, err := d.store.History().AnsweredIDs(ctx, userID)
		if err != nil {
			return err
		}

		var b strings.Builder
		b.WriteString(theme.Title.Render("UNDO · "+userID) + "\n\n")
		plan := st.Subscription
		if plan == "" {
			plan = "free"
		}
		b.WriteString(theme.Body.Render(fmt.Sprintf("plan    %s", plan)) + "\n")
		b.WriteString(theme.Body.Render(fmt.Sprintf("tokens  %d", st.Tokens)) + "\n")
		b.WriteString(theme.Body.Render(fmt.Sprintf("streak  %d (next bonus at day %d)",
			st.Streak, streak.NextMilestone(st.Streak))) + "\n")
		b.WriteString(theme.Body.Render(fmt.Sprintf("answers %d", len(answered))) + "\n\n")

		b.WriteString(theme.Subtitle.Render("category progress") + "\n")
		cats := catalog.AllCategories()
		sort.Slice(cats, func(i, j int) bool { return scores[cats[i]] > scores[cats[j]] })
		for _, c := range cats {
			b.WriteString(theme.Body.Render(fmt.Sprintf("%-14s %s %3d",
				c.DisplayName(), progressBar(scores[c]), scores[c])) + "\n")
		}

		fmt.Println(theme.Card.Render(strings.TrimRight(b.String(), "\n")))
		return nil
	},
}

// progressBar renders a 0-100 score as a 10-cell bar.
func progressBar(score int) string {
	filled := score / 10
	return theme.Reward.Render(strings.Repeat("█", filled)) +
		theme.Subtitle.Render(strings.Repeat("░", 10-filled))
}
