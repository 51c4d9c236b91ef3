package cmd

import (
	"fmt"
	"io"
	"log/slog"
	"math/rand/v2"
	"os"

	"github.com/spf13/cobra"

	"github.com/mwelte/undo/internal/clock"
	"github.com/mwelte/undo/internal/config"
	"github.com/mwelte/undo/internal/journal"
	"github.com/mwelte/undo/internal/store"
)

var rootCmd = &cobra.Command{
	Use:   "undo",
	Short: "Reflective journaling engine",
	Long:  "UNDO — adaptive daily reflection: personalized questions, answer rewards, and streak tokens.",
	RunE: func(cmd *cobra.Command, args []string) error {
		return cmd.Help()
	},
}

func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().String("db", "", "Path to SQLite database file (overrides UNDO_DB env var)")
	rootCmd.PersistentFlags().String("user", "", "User id to act as (overrides UNDO_USER env var)")
	rootCmd.PersistentFlags().Bool("verbose", false, "Log service activity to stderr")

	rootCmd.AddCommand(seedCmd)
	rootCmd.AddCommand(nextCmd)
	rootCmd.AddCommand(answerCmd)
	rootCmd.AddCommand(statsCmd)
	rootCmd.AddCommand(userCmd)
	rootCmd.AddCommand(gateCmd)
	rootCmd.AddCommand(promoCmd)
	rootCmd.AddCommand(redeemCmd)
	rootCmd.AddCommand(versionCmd)
}

// deps bundles everything a subcommand needs. Close the store when done.
type deps struct {
	cfg     *config.Config
	store   *store.Store
	clk     clock.Clock
	log     *slog.Logger
	service *journal.Service
}

func (d *deps) Close() { d.store.Close() }

// openDeps loads configuration and opens the store. The --db flag wins
// over UNDO_DB, which wins over the default XDG path.
func openDeps(cmd *cobra.Command) (*deps, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}

	dbPath, err := resolveDBPath(cmd, cfg)
	if err != nil {
		return nil, fmt.Errorf("resolve DB path: %w", err)
	}
	st, err := store.Open(dbPath)
	if err != nil {
		return nil, fmt.Errorf("open store: %w", err)
	}

	logWriter := io.Discard
	if v, _ := cmd.Flags().GetBool("verbose"); v {
		logWriter = os.Stderr
	}
	log := slog.New(slog.NewTextHandler(logWriter, nil))

	clk := clock.NewSystem(cfg.Location())
	svc := journal.New(st, clk, rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64())), log)

	return &deps{cfg: cfg, store: st, clk: clk, log: log, service: svc}, nil
}

func resolveDBPath(cmd *cobra.Command, cfg *config.Config) (string, error) {
	if p, _ := cmd.Flags().GetString("db"); p != "" {
		return p, store.EnsureDir(p)
	}
	if cfg.DBPath != "" {
		return cfg.DBPath, store.EnsureDir(cfg.DBPath)
	}
	return store.DefaultDBPath()
}

// resolveUser returns the acting user id: --user flag, then UNDO_USER.
func resolveUser(cmd *cobra.Command) (string, error) {
	if u, _ := cmd.Flags().GetString("user"); u != "" {
		return u, nil
	}
	if u := os.Getenv("UNDO_USER"); u != "" {
		return u, nil
	}
	return "", fmt.Errorf("no user selected: pass --user or set UNDO_USER (create one with `undo user create`)")
}
