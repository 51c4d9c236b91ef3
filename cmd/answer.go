package cmd

import (
	"errors"
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/mwelte/undo/internal/feedback"
	"github.com/mwelte/undo/internal/store"
	"github.com/mwelte/undo/internal/streak"
	"github.com/mwelte/undo/internal/ui/theme"
)

var answerCmd = &cobra.Command{
	Use:   "answer <question-id>",
	Short: "Record an answer to a question",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		questionID, err := strconv.ParseInt(args[0], 10, 64)
		if err != nil {
			return fmt.Errorf("question id %q is not a number", args[0])
		}

		text, _ := cmd.Flags().GetString("text")
		if text == "" {
			return fmt.Errorf("nothing to record: pass --text")
		}
		rating, _ := cmd.Flags().GetInt("rating")

		d, err := openDeps(cmd)
		if err != nil {
			return err
		}
		defer d.Close()

		userID, err := resolveUser(cmd)
		if err != nil {
			return err
		}

		res, err := d.service.SubmitAnswer(cmd.Context(), userID, questionID, text, rating)
		if errors.Is(err, store.ErrConflict) {
			return fmt.Errorf("question %d is already answered", questionID)
		}
		if err != nil {
			return err
		}

		fmt.Println(theme.Body.Render("Answer recorded."))
		if res.QualityReward > 0 {
			fmt.Println(theme.Reward.Render(fmt.Sprintf("+%d tokens for a thoughtful answer", res.QualityReward)))
		}
		if res.MilestoneReward > 0 {
			fmt.Println(theme.Reward.Render(fmt.Sprintf("+%d tokens streak bonus", res.MilestoneReward)))
		}
		fmt.Println(theme.Subtitle.Render(fmt.Sprintf("streak %d (next bonus at %d) · balance %d tokens",
			res.Streak, streak.NextMilestone(res.Streak), res.Tokens)))

		if show, _ := cmd.Flags().GetBool("feedback"); show {
			printFeedback(cmd, d, userID, questionID, text)
		}
		return nil
	},
}

func init() {
	answerCmd.Flags().String("text", "", "The answer text")
	answerCmd.Flags().Int("rating", 0, "Self rating 1-5 (default 3)")
	answerCmd.Flags().Bool("feedback", false, "Print written feedback for the answer")
}

// printFeedback is best-effort: feedback failures never fail the command.
func printFeedback(cmd *cobra.Command, d *deps, userID string, questionID int64, answer string) {
	ctx := cmd.Context()

	q, err := d.store.Questions().Get(ctx, questionID)
	if err != nil {
		d.log.Warn("feedback skipped", "error", err)
		return
	}
	user, err := d.store.Economy().Get(ctx, userID)
	if err != nil {
		d.log.Warn("feedback skipped", "error", err)
		return
	}

	var provider feedback.Provider = feedback.NewRuleProvider()
	if d.cfg.OpenAIKey != "" {
		ai, err := feedback.NewOpenAIProvider(feedback.OpenAIConfig{
			APIKey: d.cfg.OpenAIKey,
			Model:  d.cfg.FeedbackModel,
		})
		if err == nil {
			provider = feedback.WithFallback(
				feedback.WithRetry(ai, feedback.DefaultRetryConfig()),
				provider,
			)
		} else {
			d.log.Warn("AI feedback unavailable", "error", err)
		}
	}

	rec, err := d.store.History().Get(ctx, userID, questionID)
	if err != nil {
		d.log.Warn("feedback skipped", "error", err)
		return
	}

	out, err := provider.Generate(ctx, feedback.Request{
		Question: q,
		Answer:   answer,
		Motive:   user.InterestText,
		Mode:     rec.Mode,
	})
	if err != nil {
		d.log.Warn("feedback failed", "provider", provider.Name(), "error", err)
		return
	}
	fmt.Println()
	fmt.Println(theme.Card.Render(out))
}
