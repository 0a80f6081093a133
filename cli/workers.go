package cli

import (
	"context"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"
)

// Workers runs the tracker's background sync and lets a command wait for it,
// so a one-shot command does not exit with a push still in flight.
type Workers struct {
	g errgroup.Group
}

// Dispatch matches tracker.Options.Dispatch.
func (w *Workers) Dispatch(f func()) {
	w.g.Go(func() error {
		f()
		return nil
	})
}

// Wait blocks until every dispatched function has returned. Workers may be
// reused afterwards.
func (w *Workers) Wait() {
	_ = w.g.Wait()
}

func (a *App) waitBackground() {
	if a.Workers != nil {
		a.Workers.Wait()
	}
}

// Execute runs root and then waits for the background sync it started.
func Execute(ctx context.Context, app *App, root *cobra.Command) error {
	err := root.ExecuteContext(ctx)
	app.waitBackground()
	return err
}
