package cmd

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/mwelte/undo/internal/gate"
	"github.com/mwelte/undo/internal/ui/theme"
)

var gateCmd = &cobra.Command{
	Use:   "gate",
	Short: "Check or charge premium features",
}

var gateCheckCmd = &cobra.Command{
	Use:   "check <feature>",
	Short: "Show whether a feature is available and what it costs",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		feature, err := gate.ParseFeature(args[0])
		if err != nil {
			return err
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
		st, err := d.store.Economy().Get(cmd.Context(), userID)
		if err != nil {
			return err
		}

		dec, err := gate.Evaluate(gate.SubscriptionOf(st), feature, d.clk.Now())
		if err != nil {
			return err
		}
		if !dec.Allowed {
			fmt.Println(theme.Alert.Render(fmt.Sprintf("%s: %s", feature, dec.Reason)))
			return nil
		}
		if dec.Cost == 0 {
			fmt.Println(theme.Body.Render(fmt.Sprintf("%s: %s", feature, dec.Reason)))
			return nil
		}
		fmt.Println(theme.Body.Render(fmt.Sprintf("%s: %d tokens (you have %d)", feature, dec.Cost, st.Tokens)))
		return nil
	},
}

var gateChargeCmd = &cobra.Command{
	Use:   "charge <feature>",
	Short: "Unlock a feature, debiting its token cost",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		feature, err := gate.ParseFeature(args[0])
		if err != nil {
			return err
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

		g := gate.New(d.store.Economy(), d.clk)
		dec, err := g.CheckAndCharge(cmd.Context(), userID, feature)
		var pro *gate.ErrProRequired
		var ins *gate.ErrInsufficientTokens
		switch {
		case errors.As(err, &pro):
			return fmt.Errorf("%s is only available in pro", feature)
		case errors.As(err, &ins):
			return fmt.Errorf("%s costs %d tokens, you have %d", feature, ins.Need, ins.Have)
		case err != nil:
			return err
		}

		if dec.Cost > 0 {
			fmt.Println(theme.Reward.Render(fmt.Sprintf("-%d tokens", dec.Cost)))
		}
		fmt.Println(theme.Body.Render(fmt.Sprintf("%s unlocked (%s)", feature, dec.Reason)))
		return nil
	},
}

func init() {
	gateCmd.AddCommand(gateCheckCmd)
	gateCmd.AddCommand(gateChargeCmd)
}
