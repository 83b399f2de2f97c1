// Package profile handles the profile management commands
package profile

import (
	"fmt"

	"github.com/spf13/cobra"

	"fjacquet/khoroch-khata/cmd/root"
	"fjacquet/khoroch-khata/internal/ledger"
	"fjacquet/khoroch-khata/internal/models"
)

var (
	name   string
	avatar string
	color  string
	image  string
)

// Cmd represents the profile command
var Cmd = &cobra.Command{
	Use:   "profile",
	Short: "Manage profiles",
	Long: `Manage the profiles sharing this ledger. Each profile keeps its own
transactions, reminders and budgets; categories and display settings are shared.`,
}

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List profiles, marking the active one",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		state := root.App.GetLedger().State()
		if len(state.Profiles) == 0 {
			fmt.Fprintln(root.Out(cmd), "No profiles yet. Create one with 'profile add'.")
			return nil
		}
		for _, p := range state.Profiles {
			marker := " "
			if p.ID == state.ActiveProfileID {
				marker = "*"
			}
			fmt.Fprintf(root.Out(cmd), "%s %s\t%s %s\t%s\n", marker, p.ID, p.Avatar, p.Name, p.Email)
		}
		return nil
	},
}

var addCmd = &cobra.Command{
	Use:   "add",
	Short: "Create a profile and make it active",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		p, err := root.App.GetLedger().AddProfile(cmd.Context(), ledger.ProfileInput{
			Name: name, Avatar: avatar, Color: color, Image: image,
		})
		if err != nil {
			return err
		}
		fmt.Fprintf(root.Out(cmd), "Created profile %s (%s)\n", p.Name, p.ID)
		return nil
	},
}

var updateCmd = &cobra.Command{
	Use:   "update <id>",
	Short: "Change the name, avatar, color or image of a profile",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		l := root.App.GetLedger()
		current, err := find(l.State(), args[0])
		if err != nil {
			return err
		}
		in := ledger.ProfileInput{Name: current.Name, Avatar: current.Avatar, Color: current.Color, Image: current.Image}
		if cmd.Flags().Changed("name") {
			in.Name = name
		}
		if cmd.Flags().Changed("avatar") {
			in.Avatar = avatar
		}
		if cmd.Flags().Changed("color") {
			in.Color = color
		}
		if cmd.Flags().Changed("image") {
			in.Image = image
		}
		if err := l.UpdateProfile(cmd.Context(), current.ID, in); err != nil {
			return err
		}
		fmt.Fprintf(root.Out(cmd), "Updated profile %s\n", current.ID)
		return nil
	},
}

var switchCmd = &cobra.Command{
	Use:   "switch <id>",
	Short: "Make a profile active",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := root.App.GetLedger().SwitchProfile(cmd.Context(), args[0]); err != nil {
			return err
		}
		fmt.Fprintf(root.Out(cmd), "Active profile is now %s\n", args[0])
		return nil
	},
}

var emailCmd = &cobra.Command{
	Use:   "email <id> [email]",
	Short: "Set or clear the login email of a profile",
	Args:  cobra.RangeArgs(1, 2),
	RunE: func(cmd *cobra.Command, args []string) error {
		email := ""
		if len(args) == 2 {
			email = args[1]
		}
		return root.App.GetLedger().SetProfileEmail(cmd.Context(), args[0], email)
	},
}

var deleteCmd = &cobra.Command{
	Use:   "delete <id>",
	Short: "Delete a profile with its transactions and reminders",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		l := root.App.GetLedger()
		if err := l.DeleteProfile(cmd.Context(), args[0]); err != nil {
			return err
		}
		fmt.Fprintf(root.Out(cmd), "Deleted profile %s\n", args[0])
		if active := l.State().ActiveProfileID; active != "" {
			fmt.Fprintf(root.Out(cmd), "Active profile is now %s\n", active)
		}
		return nil
	},
}

func find(state models.AppState, id string) (models.Profile, error) {
	if i := state.ProfileIndex(id); i >= 0 {
		return state.Profiles[i], nil
	}
	return models.Profile{}, fmt.Errorf("%w: %s", ledger.ErrProfileNotFound, id)
}

func init() {
	for _, c := range []*cobra.Command{addCmd, updateCmd} {
		c.Flags().StringVarP(&name, "name", "n", "", "Display name")
		c.Flags().StringVarP(&avatar, "avatar", "a", "", "Avatar token, usually an emoji or initial")
		c.Flags().StringVar(&color, "color", models.DefaultAccentColor, "Display color as an \"r, g, b\" triple")
		c.Flags().StringVar(&image, "image", "", "Encoded profile image")
	}
	addCmd.MarkFlagRequired("name")

	Cmd.AddCommand(listCmd, addCmd, updateCmd, switchCmd, emailCmd, deleteCmd)
}
