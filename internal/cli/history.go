package cli

import (
	"context"
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"streamplay/internal/config"
	"streamplay/internal/history"
	"streamplay/internal/logging"
)

const defaultHistoryLimit = 20

// NewHistoryCmd creates the history command.
func NewHistoryCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "history",
		Short: "Manage play history",
		Long: `Manage the play history:
  list   - Show recently played streams (default)
  clear  - Delete all history entries`,
		Args: cobra.NoArgs,
		RunE: listHistory,
	}

	listCmd := &cobra.Command{
		Use:   "list",
		Short: "List recently played streams",
		RunE:  listHistory,
	}
	listCmd.Flags().IntP("limit", "n", defaultHistoryLimit, "Number of history entries to show")

	clearCmd := &cobra.Command{
		Use:   "clear",
		Short: "Delete all history entries",
		RunE:  clearHistory,
	}

	cmd.Flags().IntP("limit", "n", defaultHistoryLimit, "Number of history entries to show")
	cmd.AddCommand(listCmd)
	cmd.AddCommand(clearCmd)

	return cmd
}

func openHistory(ctx context.Context) (*history.Store, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}
	store, err := history.Open(ctx, cfg.History.Path)
	if err != nil {
		return nil, fmt.Errorf("failed to open history: %w", err)
	}
	return store, nil
}

func listHistory(cmd *cobra.Command, _ []string) error {
	ctx := historyContext()

	store, err := openHistory(ctx)
	if err != nil {
		return err
	}
	defer closeHistory(store)

	limit, _ := cmd.Flags().GetInt("limit")
	entries, err := store.Recent(ctx, limit)
	if err != nil {
		return err
	}

	if len(entries) == 0 {
		fmt.Println("No play history found.")
		return nil
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "LAST PLAYED\tPLAYS\tURL")
	for _, e := range entries {
		fmt.Fprintf(w, "%s\t%d\t%s\n", e.LastPlayedAt.Format("2006-01-02 15:04"), e.PlayCount, e.URL)
	}
	return w.Flush()
}

func clearHistory(_ *cobra.Command, _ []string) error {
	ctx := historyContext()

	store, err := openHistory(ctx)
	if err != nil {
		return err
	}
	defer closeHistory(store)

	if err := store.Clear(ctx); err != nil {
		return err
	}
	fmt.Println("Play history cleared.")
	return nil
}

func historyContext() context.Context {
	logger := logging.NewFromValues("warn", "auto")
	return logging.WithContext(context.Background(), logger)
}

func closeHistory(store *history.Store) {
	if err := store.Close(); err != nil {
		fmt.Fprintf(os.Stderr, "Warning: failed to close history database: %v\n", err)
	}
}
