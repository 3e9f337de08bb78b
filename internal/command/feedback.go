package command

import (
	"encoding/json"
	"fmt"
	"sort"

	"playground/config"
	"playground/internal/feedback"
	"playground/internal/server"

	"github.com/spf13/cobra"
)

// NewFeedbackCmd groups commands that inspect or clear stored feedback.
func NewFeedbackCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "feedback",
		Short: "Inspect or clear feedback stored on this device",
	}
	cmd.AddCommand(newFeedbackShowCmd(), newFeedbackResetCmd())
	return cmd
}

func openStore(cmd *cobra.Command) (*feedback.Store, func() error, error) {
	cfg := config.AppConfig
	st, err := server.OpenStorage(cmd.Context(), cfg)
	if err != nil {
		return nil, nil, err
	}
	return feedback.NewStore(st, cfg.Storage.Key), st.Close, nil
}

func newFeedbackShowCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "show [item-id]",
		Short: "Print the stored feedback table, or one item's record, as JSON",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			store, closeFn, err := openStore(cmd)
			if err != nil {
				return err
			}
			defer closeFn()

			var v interface{}
			if len(args) == 1 {
				v = store.GetRecord(cmd.Context(), args[0])
			} else {
				v = store.Load(cmd.Context())
			}
			out, err := json.MarshalIndent(v, "", "  ")
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), string(out))
			return nil
		},
	}
}

func newFeedbackResetCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "reset",
		Short: "Remove all stored feedback from this device",
		RunE: func(cmd *cobra.Command, args []string) error {
			force, _ := cmd.Flags().GetBool("force")
			store, closeFn, err := openStore(cmd)
			if err != nil {
				return err
			}
			defer closeFn()

			table := store.Load(cmd.Context())
			if len(table) > 0 && !force {
				ids := make([]string, 0, len(table))
				for id := range table {
					ids = append(ids, id)
				}
				sort.Strings(ids)
				return fmt.Errorf("feedback exists for %v; pass --force to remove it", ids)
			}
			if err := store.Reset(cmd.Context()); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), "Feedback cleared.")
			return nil
		},
	}
	cmd.Flags().Bool("force", false, "remove without confirmation")
	return cmd
}
