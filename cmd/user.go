package cmd

import (
	"context"
	"errors"
	"fmt"
	"strconv"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/mwelte/undo/internal/store"
	"github.com/mwelte/undo/internal/ui/theme"
)

var userCmd = &cobra.Command{
	Use:   "user",
	Short: "Manage users and subscriptions",
}

var userCreateCmd = &cobra.Command{
	Use:   "create",
	Short: "Create a new user",
	RunE: func(cmd *cobra.Command, args []string) error {
		d, err := openDeps(cmd)
		if err != nil {
			return err
		}
		defer d.Close()

		id, _ := cmd.Flags().GetString("id")
		if id == "" {
			id = uuid.NewString()
		}
		interests, _ := cmd.Flags().GetString("interests")

		st := &store.EconomyState{
			UserID:       id,
			InterestText: interests,
			Subscription: "free",
		}
		if err := d.store.Economy().Create(cmd.Context(), st); err != nil {
			if errors.Is(err, store.ErrConflict) {
				return fmt.Errorf("user %q already exists", id)
			}
			return err
		}
		fmt.Println(theme.Body.Render("Created user " + id))
		fmt.Println(theme.Hint.Render("export UNDO_USER=" + id))
		return nil
	},
}

var userShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show the current user's account",
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
		st, err := d.store.Economy().Get(cmd.Context(), userID)
		if err != nil {
			return err
		}

		fmt.Println(theme.Title.Render(st.UserID))
		plan := st.Subscription
		if plan == "" {
			plan = "free"
		}
		fmt.Println(theme.Body.Render("plan:     " + plan))
		if st.ProUntil != nil {
			fmt.Println(theme.Body.Render("pro until: " + st.ProUntil.Format("2006-01-02")))
		}
		fmt.Println(theme.Body.Render(fmt.Sprintf("tokens:   %d", st.Tokens)))
		if st.InterestText != "" {
			fmt.Println(theme.Subtitle.Render("interests: " + st.InterestText))
		}
		return nil
	},
}

var userInterestsCmd = &cobra.Command{
	Use:   "interests <text>",
	Short: "Set the interests text that steers question selection",
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
		return updateUser(cmd.Context(), d, userID, func(st *store.EconomyState) {
			st.InterestText = args[0]
		})
	},
}

var userSubscribeCmd = &cobra.Command{
	Use:   "subscribe",
	Short: "Switch the current user to the pro plan",
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
		if err := updateUser(cmd.Context(), d, userID, func(st *store.EconomyState) {
			st.Subscription = "pro"
		}); err != nil {
			return err
		}
		fmt.Println(theme.Body.Render("Welcome to pro."))
		return nil
	},
}

var userCancelCmd = &cobra.Command{
	Use:   "cancel",
	Short: "Drop the current user back to the free plan",
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
		// A pro window granted by a promo code keeps running until it
		// expires on its own.
		if err := updateUser(cmd.Context(), d, userID, func(st *store.EconomyState) {
			st.Subscription = "free"
		}); err != nil {
			return err
		}
		fmt.Println(theme.Body.Render("Subscription cancelled."))
		return nil
	},
}

var userBuyTokensCmd = &cobra.Command{
	Use:   "buy-tokens <amount>",
	Short: "Credit purchased tokens to the current user",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		amount, err := strconv.Atoi(args[0])
		if err != nil || amount <= 0 {
			return fmt.Errorf("amount must be a positive number")
		}

		d, err := openDeps(cmd)
		if err != nil {
			return err
		}
		defer d.Close()

		userID, err := resolveUser(cmd)
		if err != nil {
			return err
		}
		if err := updateUser(cmd.Context(), d, userID, func(st *store.EconomyState) {
			st.Tokens += amount
		}); err != nil {
			return err
		}
		fmt.Println(theme.Reward.Render(fmt.Sprintf("+%d tokens", amount)))
		return nil
	},
}

// updateUser applies fn under the store's compare-and-swap discipline
// with a few retries.
func updateUser(ctx context.Context, d *deps, userID string, fn func(*store.EconomyState)) error {
	for attempt := 0; ; attempt++ {
		st, err := d.store.Economy().Get(ctx, userID)
		if err != nil {
			return err
		}
		fn(st)
		err = d.store.Economy().Update(ctx, st)
		if err == nil {
			return nil
		}
		if !errors.Is(err, store.ErrConflict) || attempt >= 3 {
			return err
		}
	}
}

func init() {
	userCreateCmd.Flags().String("id", "", "Explicit user id (default: random UUID)")
	userCreateCmd.Flags().String("interests", "", "Free-form interests text")

	userCmd.AddCommand(userCreateCmd)
	userCmd.AddCommand(userShowCmd)
	userCmd.AddCommand(userInterestsCmd)
	userCmd.AddCommand(userSubscribeCmd)
	userCmd.AddCommand(userCancelCmd)
	userCmd.AddCommand(userBuyTokensCmd)
}
