package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/mwelte/undo/internal/catalog"
)

var seedCmd = &cobra.Command{
	Use:   "seed",
	Short: "Load the default question catalog",
	Long:  "Inserts the built-in questions when the catalog is empty. Safe to run repeatedly.",
	RunE: func(cmd *cobra.Command, args []string) error {
		d, err := openDeps(cmd)
		if err != nil {
			return err
		}
		defer d.Close()

		n, err := d.store.Questions().SeedIfEmpty(cmd.Context(), catalog.DefaultSeed())
		if err != nil {
			return fmt.Errorf("seed catalog: %w", err)
		}
		if n == 0 {
			fmt.Println("Catalog already populated, nothing to do.")
			return nil
		}
		fmt.Printf("Seeded %d questions.\n", n)
		return nil
	},
}
