// Package settings handles the display and notification settings commands
package settings

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"fjacquet/khoroch-khata/cmd/root"
	"fjacquet/khoroch-khata/internal/models"
)

var (
	position      string
	dailySummary  bool
	budgetAlerts  bool
	reminders     bool
	reminderSound string
	budgetSound   string
	systemSound   string
)

// Cmd represents the settings command
var Cmd = &cobra.Command{
	Use:   "settings",
	Short: "Show or change the shared display and notification settings",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		state := root.App.GetLedger().State()
		n := state.NotificationSettings
		out := root.Out(cmd)
		fmt.Fprintf(out, "theme: %s\n", state.Theme)
		fmt.Fprintf(out, "accent: %s\n", state.AccentColor)
		fmt.Fprintf(out, "currency: %s (%s)\n", state.Currency.Symbol, state.Currency.Position)
		fmt.Fprintf(out, "daily summary: %t\n", n.EnableDailySummary)
		fmt.Fprintf(out, "budget alerts: %t\n", n.EnableBudgetAlerts)
		fmt.Fprintf(out, "reminders: %t\n", n.EnableReminders)
		return nil
	},
}

var themeCmd = &cobra.Command{
	Use:   "theme [dark|light]",
	Short: "Set the theme, or toggle it when no argument is given",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		l := root.App.GetLedger()
		if len(args) == 0 {
			theme, err := l.ToggleTheme(cmd.Context())
			if err != nil {
				return err
			}
			fmt.Fprintf(root.Out(cmd), "Theme is now %s\n", theme)
			return nil
		}
		theme := strings.ToLower(args[0])
		if err := l.SetTheme(cmd.Context(), theme); err != nil {
			return err
		}
		fmt.Fprintf(root.Out(cmd), "Theme is now %s\n", theme)
		return nil
	},
}

var accentCmd = &cobra.Command{
	Use:   "accent <r, g, b>",
	Short: "Set the accent color",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return root.App.GetLedger().SetAccentColor(cmd.Context(), args[0])
	},
}

var currencyCmd = &cobra.Command{
	Use:   "currency <symbol>",
	Short: "Set the currency symbol and where it goes",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		c := models.CurrencyConfig{Symbol: args[0], Position: models.CurrencyPosition(strings.ToLower(position))}
		return root.App.GetLedger().SetCurrency(cmd.Context(), c)
	},
}

var notificationsCmd = &cobra.Command{
	Use:   "notifications",
	Short: "Change the notification toggles and sounds",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		l := root.App.GetLedger()
		n := l.State().NotificationSettings
		flags := cmd.Flags()
		if flags.Changed("daily-summary") {
			n.EnableDailySummary = dailySummary
		}
		if flags.Changed("budget-alerts") {
			n.EnableBudgetAlerts = budgetAlerts
		}
		if flags.Changed("reminders") {
			n.EnableReminders = reminders
		}
		if flags.Changed("reminder-sound") {
			n.Sounds.Reminder = reminderSound
		}
		if flags.Changed("budget-sound") {
			n.Sounds.Budget = budgetSound
		}
		if flags.Changed("system-sound") {
			n.Sounds.System = systemSound
		}
		return l.SetNotificationSettings(cmd.Context(), n)
	},
}

func init() {
	currencyCmd.Flags().StringVar(&position, "position", string(models.PositionPrefix), "Symbol position: prefix or suffix")

	notificationsCmd.Flags().BoolVar(&dailySummary, "daily-summary", false, "Enable the daily summary")
	notificationsCmd.Flags().BoolVar(&budgetAlerts, "budget-alerts", false, "Enable budget alerts")
	notificationsCmd.Flags().BoolVar(&reminders, "reminders", false, "Enable reminder alerts")
	notificationsCmd.Flags().StringVar(&reminderSound, "reminder-sound", "", "Encoded reminder sound, empty for none")
	notificationsCmd.Flags().StringVar(&budgetSound, "budget-sound", "", "Encoded budget alert sound, empty for none")
	notificationsCmd.Flags().StringVar(&systemSound, "system-sound", "", "Encoded system sound, empty for none")

	Cmd.AddCommand(themeCmd, accentCmd, currencyCmd, notificationsCmd)
}
