package cmd

import (
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/mwelte/undo/internal/store"
	"github.com/mwelte/undo/internal/ui/theme"
)

var redeemCmd = &cobra.Command{
	Use:   "redeem <code>",
	Short: "Redeem a promo code",
	Args:  cobra.ExactArgs(1),
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

		res, err := d.store.Promos().Redeem(cmd.Context(), args[0], userID, d.clk.Now())
		if errors.Is(err, store.ErrNotFound) {
			return fmt.Errorf("code %q is not valid", args[0])
		}
		if errors.Is(err, store.ErrConflict) {
			return fmt.Errorf("code %q is used up or expired", args[0])
		}
		if err != nil {
			return err
		}

		if res.DaysGranted > 0 && res.ProUntil != nil {
			fmt.Println(theme.Reward.Render(fmt.Sprintf("+%d days pro (until %s)",
				res.DaysGranted, res.ProUntil.Format("2006-01-02"))))
		}
		if res.TokensGranted > 0 {
			fmt.Println(theme.Reward.Render(fmt.Sprintf("+%d tokens", res.TokensGranted)))
		}
		return nil
	},
}

var promoCmd = &cobra.Command{
	Use:   "promo",
	Short: "Manage promo codes",
}

var promoCreateCmd = &cobra.Command{
	Use:   "create",
	Short: "Create a promo code",
	RunE: func(cmd *cobra.Command, args []string) error {
		d, err := openDeps(cmd)
		if err != nil {
			return err
		}
		defer d.Close()

		code, _ := cmd.Flags().GetString("code")
		if code == "" {
			code = uuid.NewString()[:8]
		}
		days, _ := cmd.Flags().GetInt("days")
		tokens, _ := cmd.Flags().GetInt("tokens")
		uses, _ := cmd.Flags().GetInt("uses")
		validDays, _ := cmd.Flags().GetInt("valid-for")

		if days <= 0 && tokens <= 0 {
			return fmt.Errorf("a code must grant pro days or tokens")
		}

		p := &store.PromoCode{
			Code:       code,
			UsesLeft:   uses,
			Plan:       "pro",
			Days:       days,
			TokenGrant: tokens,
		}
		if validDays > 0 {
			exp := d.clk.Now().AddDate(0, 0, validDays)
			p.ExpiresAt = &exp
		}

		if err := d.store.Promos().Insert(cmd.Context(), p); err != nil {
			if errors.Is(err, store.ErrConflict) {
				return fmt.Errorf("code %q already exists", code)
			}
			return err
		}

		fmt.Println(theme.Body.Render("Created code " + code))
		if p.ExpiresAt != nil {
			fmt.Println(theme.Subtitle.Render("valid until " + p.ExpiresAt.Format(time.DateOnly)))
		}
		return nil
	},
}

func init() {
	promoCreateCmd.Flags().String("code", "", "Code string (default: random)")
	promoCreateCmd.Flags().Int("days", 0, "Pro days granted per redemption")
	promoCreateCmd.Flags().Int("tokens", 0, "Tokens granted per redemption")
	promoCreateCmd.Flags().Int("uses", 1, "How many times the code can be redeemed")
	promoCreateCmd.Flags().Int("valid-for", 0, "Days until the code expires (0 = never)")

	promoCmd.AddCommand(promoCreateCmd)
}
