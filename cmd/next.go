package cmd

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/mwelte/undo/internal/catalog"
	"github.com/mwelte/undo/internal/gate"
	"github.com/mwelte/undo/internal/ui/theme"
)

var nextCmd = &cobra.Command{
	Use:   "next",
	Short: "Get the next reflection question",
	RunE: func(cmd *cobra.Command, args []string) error {
		d, err := openDeps(cmd)
		if err != nil {
			return err
		}
		defer d.Close()

		userID, err := resolveUser(cmd)
		if err != nil {
			return err
		}

		mode, err := resolveMode(cmd, d)
		if err != nil {
			return err
		}
		extra, _ := cmd.Flags().GetBool("extra")

		p, err := d.service.NextPrompt(cmd.Context(), userID, mode, extra)
		var ins *gate.ErrInsufficientTokens
		if errors.As(err, &ins) {
			return fmt.Errorf("an extra question costs %d tokens, you have %d", ins.Need, ins.Have)
		}
		if err != nil {
			return err
		}

		q := p.Question
		fmt.Println(theme.Subtitle.Render(fmt.Sprintf("%s · %s · level %d · #%d",
			q.Category.DisplayName(), mode, q.Difficulty, q.ID)))
		fmt.Println(theme.Card.Render(theme.Title.Render(q.Text)))
		for _, tip := range q.Tips {
			fmt.Println(theme.Hint.Render("tip: " + tip))
		}
		if p.Charged > 0 {
			fmt.Println(theme.Reward.Render(fmt.Sprintf("-%d tokens", p.Charged)))
		}
		fmt.Println(theme.Subtitle.Render(fmt.Sprintf("answer with: undo answer %d --text \"...\"", q.ID)))
		return nil
	},
}

func init() {
	nextCmd.Flags().String("mode", "", "morning or evening (default: by current time)")
	nextCmd.Flags().Bool("extra", false, "Request an extra question for today (costs tokens)")
}

// resolveMode uses the --mode flag, otherwise the local hour: mornings
// run until 14:00.
func resolveMode(cmd *cobra.Command, d *deps) (catalog.Mode, error) {
	if m, _ := cmd.Flags().GetString("mode"); m != "" {
		mode, err := catalog.ParseMode(m)
		if err != nil {
			return "", err
		}
		if mode == catalog.ModeAny {
			return "", fmt.Errorf("pick morning or evening")
		}
		return mode, nil
	}
	if d.clk.Now().Hour() < 14 {
		return catalog.ModeMorning, nil
	}
	return catalog.ModeEvening, nil
}
