// Package reminder handles the reminder commands
package reminder

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"fjacquet/khoroch-khata/cmd/root"
	"fjacquet/khoroch-khata/internal/report"
	"fjacquet/khoroch-khata/internal/reminder"
)

var (
	date       string
	remindTime string
	once       bool
)

// Cmd represents the reminder command
var Cmd = &cobra.Command{
	Use:   "reminder",
	Short: "Manage dated reminders of the active profile",
	Long: `Manage dated reminders of the active profile. A reminder with a time of day
raises an alert at that minute while 'reminder watch' is running.`,
}

var addCmd = &cobra.Command{
	Use:   "add <task>",
	Short: "Add a reminder",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		d, err := root.ParseDate(date)
		if err != nil {
			return err
		}
		r, err := root.App.GetLedger().AddReminder(cmd.Context(), args[0], d, remindTime)
		if err != nil {
			return err
		}
		fmt.Fprintf(root.Out(cmd), "Added reminder %s for %s %s\n", r.ID, r.Date, r.RemindTime)
		return nil
	},
}

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List reminders by date and time",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		state := root.App.GetLedger().State()
		rs := report.SortReminders(report.RemindersFor(state.Reminders, root.ActiveProfileID()))
		if len(rs) == 0 {
			fmt.Fprintln(root.Out(cmd), "No reminders")
			return nil
		}
		for _, r := range rs {
			done := "[ ]"
			if r.IsCompleted {
				done = "[x]"
			}
			fmt.Fprintf(root.Out(cmd), "%s %s\t%s\t%s\t%s\n", done, r.ID, r.Date, r.RemindTime, r.Task)
		}
		return nil
	},
}

var toggleCmd = &cobra.Command{
	Use:   "toggle <id>",
	Short: "Mark a reminder done or not done",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return root.App.GetLedger().ToggleReminder(cmd.Context(), args[0])
	},
}

var deleteCmd = &cobra.Command{
	Use:   "delete <id>",
	Short: "Delete a reminder",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return root.App.GetLedger().DeleteReminder(cmd.Context(), args[0])
	},
}

var watchCmd = &cobra.Command{
	Use:   "watch",
	Short: "Print reminder alerts as they fall due until interrupted",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		out := root.Out(cmd)
		notifier := reminder.NotifierFunc(func(_ context.Context, a reminder.Alert) error {
			_, err := fmt.Fprintf(out, "%s: %s (%s)\n", a.Title, a.Reminder.Task, a.At.Format("15:04"))
			return err
		})
		sweeper := root.App.NewSweeper(notifier, reminder.WithClock(root.Now))
		if once {
			sweeper.Tick(cmd.Context(), root.Now())
			return nil
		}
		if !root.App.GetConfig().Reminders.Enabled {
			return fmt.Errorf("reminder alerts are disabled by reminders.enabled")
		}
		sweeper.Start(cmd.Context())
		<-cmd.Context().Done()
		sweeper.Stop()
		return nil
	},
}

func init() {
	addCmd.Flags().StringVar(&date, "date", "", "Date (YYYY-MM-DD, default today)")
	addCmd.Flags().StringVar(&remindTime, "time", "", "Time of day for the alert (HH:mm)")
	watchCmd.Flags().BoolVar(&once, "once", false, "Check once and exit")

	Cmd.AddCommand(addCmd, listCmd, toggleCmd, deleteCmd, watchCmd)
}
