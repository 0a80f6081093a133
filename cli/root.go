// Package cli is the command-line front end: it serves the local HTTP API
// and exposes the common tracker operations as subcommands.
package cli

import (
	"fmt"
	"os"
	"strings"
	"time"

	"clementus360/daily-tracker/config"
	"clementus360/daily-tracker/handlers"
	"clementus360/daily-tracker/middleware"
	"clementus360/daily-tracker/session"
	"clementus360/daily-tracker/tracker"
	"clementus360/daily-tracker/types"

	"github.com/spf13/cobra"
)

// App holds everything the commands act on.
type App struct {
	Config   config.Config
	Tracker  *tracker.Tracker
	Identity session.Identity
	// Adopter is nil when no identity provider is configured.
	Adopter middleware.TokenAdopter
	Network *session.Monitor
	// Workers, when set, is the tracker's dispatcher.
	Workers *Workers
}

func (a *App) api() *handlers.API {
	return handlers.NewAPI(a.Tracker, a.Identity)
}

// NewRootCmd creates the top-level command and registers all subcommands.
func NewRootCmd(app *App) *cobra.Command {
	var token string

	root := &cobra.Command{
		Use:           config.AppName,
		Short:         "Offline-first daily habit tracker",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if token == "" {
				return nil
			}
			if app.Adopter == nil {
				return fmt.Errorf("--token given but no identity provider is configured: %w", types.ErrNotAuthenticated)
			}
			if _, err := app.Adopter.Adopt(token); err != nil {
				return err
			}
			// Let the sign-in pull land before the command mutates state.
			app.waitBackground()
			return nil
		},
	}
	root.PersistentFlags().StringVar(&token, "token", os.Getenv("TRACKER_ACCESS_TOKEN"), "Supabase access token to act as")

	root.AddCommand(
		newServeCmd(app),
		newTasksCmd(app),
		newToggleCmd(app),
		newMonthCmd(app),
		newExportCmd(app),
		newImportCmd(app),
		newBackupsCmd(app),
		newRestoreCmd(app),
		newArchiveCmd(app),
		newSyncCmd(app),
	)
	return root
}

// parseDate reads a calendar date "YYYY-MM-DD" into a 0-based-month Date.
func parseDate(s string) (types.Date, error) {
	t, err := time.ParseInLocation("2006-01-02", strings.TrimSpace(s), time.Local)
	if err != nil {
		return types.Date{}, fmt.Errorf("date %q: %w", s, types.ErrInvalidDate)
	}
	return types.DateOf(t), nil
}
