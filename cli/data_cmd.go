package cli

import (
	"fmt"
	"os"
	"strconv"
	"text/tabwriter"

	"clementus360/daily-tracker/tracker"
	"clementus360/daily-tracker/types"

	"github.com/spf13/cobra"
)

func newExportCmd(app *App) *cobra.Command {
	var out string
	var cloud bool

	cmd := &cobra.Command{
		Use:   "export",
		Short: "Write an export document",
		RunE: func(cmd *cobra.Command, args []string) error {
			if cloud {
				name, err := app.Tracker.UploadExport(cmd.Context())
				if err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Uploaded %s\n", name)
				return nil
			}

			b, err := app.Tracker.Export()
			if err != nil {
				return err
			}
			if out == "-" {
				_, err = cmd.OutOrStdout().Write(append(b, '\n'))
				return err
			}
			if out == "" {
				out = tracker.ExportFileName(app.Tracker.Today().Time())
			}
			if err := os.WriteFile(out, b, 0o644); err != nil {
				return fmt.Errorf("writing export: %w", err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Exported to %s\n", out)
			return nil
		},
	}

	cmd.Flags().StringVarP(&out, "out", "o", "", "Output file, - for stdout")
	cmd.Flags().BoolVar(&cloud, "cloud", false, "Upload to the cloud archive instead")
	return cmd
}

func newImportCmd(app *App) *cobra.Command {
	var cloud bool

	cmd := &cobra.Command{
		Use:   "import <file>",
		Short: "Replace all data with an export document",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if cloud {
				if err := app.Tracker.ImportCloud(cmd.Context(), args[0]); err != nil {
					return err
				}
			} else {
				b, err := os.ReadFile(args[0])
				if err != nil {
					return fmt.Errorf("reading import: %w", err)
				}
				if err := app.Tracker.Import(cmd.Context(), b); err != nil {
					return err
				}
			}
			fmt.Fprintln(cmd.OutOrStdout(), "Data imported successfully!")
			return nil
		},
	}

	cmd.Flags().BoolVar(&cloud, "cloud", false, "Read the named export from the cloud archive")
	return cmd
}

func newBackupsCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "backups",
		Short: "List rotating backup slots",
		RunE: func(cmd *cobra.Command, args []string) error {
			slots, err := app.Tracker.Backups(cmd.Context())
			if err != nil {
				return err
			}
			w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			fmt.Fprintln(w, "SLOT\tSTATE\tTAKEN")
			for _, s := range slots {
				state, taken := "empty", ""
				switch {
				case s.Corrupt:
					state = "corrupt"
				case s.Present:
					state = "ok"
				}
				if s.Timestamp != nil {
					taken = s.Timestamp.Format("2006-01-02 15:04:05")
				}
				fmt.Fprintf(w, "%d\t%s\t%s\n", s.Number, state, taken)
			}
			return w.Flush()
		},
	}
}

func newRestoreCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "restore <slot>",
		Short: "Restore a backup slot",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			slot, err := strconv.Atoi(args[0])
			if err != nil {
				return fmt.Errorf("slot %q: %w", args[0], types.ErrInvalidSlot)
			}
			if err := app.Tracker.Restore(cmd.Context(), slot); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Restored backup %d\n", slot)
			return nil
		},
	}
}

func newArchiveCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "archive",
		Short: "Save the current state in the local archive",
		RunE: func(cmd *cobra.Command, args []string) error {
			entry, err := app.Tracker.Archive(cmd.Context())
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Archived #%d (%d bytes)\n", entry.ID, entry.Size)
			return nil
		},
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "list",
		Short: "List archived states",
		RunE: func(cmd *cobra.Command, args []string) error {
			list, err := app.Tracker.Archives(cmd.Context())
			if err != nil {
				return err
			}
			w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			fmt.Fprintln(w, "ID\tCREATED\tSIZE")
			for _, e := range list {
				fmt.Fprintf(w, "%d\t%s\t%d\n", e.ID, e.CreatedAt.Format("2006-01-02 15:04:05"), e.Size)
			}
			return w.Flush()
		},
	}, &cobra.Command{
		Use:   "restore <id>",
		Short: "Replace all data with an archived state",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := strconv.ParseInt(args[0], 10, 64)
			if err != nil {
				return fmt.Errorf("archive id %q: %w", args[0], types.ErrValidation)
			}
			if err := app.Tracker.RestoreArchive(cmd.Context(), id); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Restored archive #%d\n", id)
			return nil
		},
	})
	return cmd
}
