package cli

import (
	"fmt"
	"text/tabwriter"

	"clementus360/daily-tracker/tracker"
	"clementus360/daily-tracker/types"

	"github.com/spf13/cobra"
)

func newTasksCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "tasks",
		Short: "List and manage tasks",
		RunE: func(cmd *cobra.Command, args []string) error {
			w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			fmt.Fprintln(w, "KEY\tLABEL\tCOLOR\tFLAGS")
			for _, t := range app.Tracker.Tasks().Tasks() {
				flags := ""
				if t.IsDefault {
					flags += "default "
				}
				if t.Hidden {
					flags += "hidden"
				}
				fmt.Fprintf(w, "%s\t%s\t%s\t%s\n", t.Key, t.Label, t.Color, flags)
			}
			return w.Flush()
		},
	}

	cmd.AddCommand(
		newTasksAddCmd(app),
		newTasksRemoveCmd(app),
		newTasksHideCmd(app),
	)
	return cmd
}

func newTasksAddCmd(app *App) *cobra.Command {
	var in tracker.NewTask
	var color, priority string

	cmd := &cobra.Command{
		Use:   "add <label>",
		Short: "Add a custom task",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			in.Label = args[0]
			in.Color = types.Color(color)
			in.Priority = types.Priority(priority)
			task, err := app.Tracker.AddTask(cmd.Context(), in)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Added %s (%s)\n", task.Label, task.Key)
			return nil
		},
	}

	cmd.Flags().StringVar(&color, "color", string(types.DefaultColor), "Background color class")
	cmd.Flags().StringVar(&in.Category, "category", "", "Category")
	cmd.Flags().StringVar(&priority, "priority", "", "Priority: low, medium or high")
	cmd.Flags().StringVar(&in.Notes, "notes", "", "Notes")
	return cmd
}

func newTasksRemoveCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "rm <key>",
		Short: "Remove a custom task and its history",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := app.Tracker.RemoveTask(cmd.Context(), args[0]); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Removed %s\n", args[0])
			return nil
		},
	}
}

func newTasksHideCmd(app *App) *cobra.Command {
	var show bool

	cmd := &cobra.Command{
		Use:   "hide <key>",
		Short: "Hide a task from the day view and analytics",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return app.Tracker.SetTaskHidden(cmd.Context(), args[0], !show)
		},
	}

	cmd.Flags().BoolVar(&show, "show", false, "Unhide instead")
	return cmd
}

func newToggleCmd(app *App) *cobra.Command {
	var dateFlag string

	cmd := &cobra.Command{
		Use:   "toggle <task>",
		Short: "Flip completion of a task for a day (default today)",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			date := app.Tracker.Today()
			if dateFlag != "" {
				var err error
				if date, err = parseDate(dateFlag); err != nil {
					return err
				}
			}
			done, err := app.Tracker.Toggle(cmd.Context(), args[0], date)
			if err != nil {
				return err
			}
			state := "not done"
			if done {
				state = "done"
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s on %s: %s (%.0f%% of the day)\n",
				args[0], date.Time().Format("2006-01-02"), state, app.Tracker.CompletionPercentage(date))
			return nil
		},
	}

	cmd.Flags().StringVar(&dateFlag, "date", "", "Day as YYYY-MM-DD")
	return cmd
}

func newMonthCmd(app *App) *cobra.Command {
	var year, month int

	cmd := &cobra.Command{
		Use:   "month",
		Short: "Summarize a month (default: the month in view)",
		RunE: func(cmd *cobra.Command, args []string) error {
			y, m := app.Tracker.ViewMonth()
			if cmd.Flags().Changed("year") {
				y = year
			}
			if cmd.Flags().Changed("month") {
				m = month - 1
			}
			sum, err := app.Tracker.MonthSummary(y, m)
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "%d-%02d: %.1f%% average, %d perfect days\n", sum.Year, sum.Month+1, sum.Average, len(sum.PerfectDays))
			w := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
			for _, t := range sum.Tasks {
				fmt.Fprintf(w, "%s\t%d\t%.1f%%\n", t.Label, t.Completed, t.Rate)
			}
			return w.Flush()
		},
	}

	cmd.Flags().IntVar(&year, "year", 0, "Year")
	cmd.Flags().IntVar(&month, "month", 0, "Month, 1-12")
	return cmd
}
