package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newSyncCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "sync",
		Short: "Push or pull the remote copy",
	}

	run := func(name string, op func(cmd *cobra.Command) error) *cobra.Command {
		return &cobra.Command{
			Use:   name,
			Short: name + " now",
			RunE: func(cmd *cobra.Command, args []string) error {
				if !app.Tracker.CanSync() {
					fmt.Fprintln(cmd.OutOrStdout(), "Sync skipped: offline, signed out or not configured")
					return nil
				}
				if err := op(cmd); err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "%s complete\n", name)
				return nil
			},
		}
	}

	cmd.AddCommand(
		run("push", func(cmd *cobra.Command) error { return app.Tracker.SyncNow(cmd.Context()) }),
		run("pull", func(cmd *cobra.Command) error { return app.Tracker.Refresh(cmd.Context()) }),
		&cobra.Command{
			Use:   "status",
			Short: "Show sync status",
			RunE: func(cmd *cobra.Command, args []string) error {
				st := app.Tracker.SyncStatus()
				out := cmd.OutOrStdout()
				fmt.Fprintf(out, "enabled: %t\nonline: %t\n", st.Enabled, st.Online)
				if st.UserID != "" {
					fmt.Fprintf(out, "user: %s\n", st.UserID)
				}
				if st.LastPush != nil {
					fmt.Fprintf(out, "last push: %s\n", st.LastPush.Format("2006-01-02 15:04:05"))
				}
				if st.LastPull != nil {
					fmt.Fprintf(out, "last pull: %s\n", st.LastPull.Format("2006-01-02 15:04:05"))
				}
				if st.LastError != "" {
					fmt.Fprintf(out, "last error: %s\n", st.LastError)
				}
				return nil
			},
		},
	)
	return cmd
}
