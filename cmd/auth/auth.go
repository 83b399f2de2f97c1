// Package auth handles the login, signup and password recovery commands
package auth

import (
	"fmt"

	"github.com/spf13/cobra"

	"fjacquet/khoroch-khata/cmd/root"
	"fjacquet/khoroch-khata/internal/auth"
	"fjacquet/khoroch-khata/internal/models"
)

var (
	email    string
	password string
	confirm  string
	name     string
	avatar   string
	image    string
	currency string
)

// Cmd represents the auth command
var Cmd = &cobra.Command{
	Use:   "auth",
	Short: "Log in, sign up or reset a password",
	Long: `Log in to a profile by email, create a profile with credentials, or reset the
password of a profile. Logging in makes the profile active. Credentials only
gate which profile is active; the document itself is not encrypted.`,
}

var loginCmd = &cobra.Command{
	Use:   "login",
	Short: "Log in and make the profile active",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		g := root.App.NewGate()
		if err := g.Choose(auth.ModeLogin); err != nil {
			return err
		}
		if err := g.Login(cmd.Context(), email, password); err != nil {
			return err
		}
		return welcome(cmd, g)
	},
}

var signupCmd = &cobra.Command{
	Use:   "signup",
	Short: "Create a profile with credentials",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		g := root.App.NewGate()
		steps := []func() error{
			func() error { return g.Choose(auth.ModeSignup) },
			func() error { return g.SubmitSignup(email, password) },
			func() error { return g.SubmitName(name) },
			func() error { return g.SubmitAvatar(avatar, image) },
			func() error { return g.SubmitCurrency(cmd.Context(), currency) },
		}
		for _, step := range steps {
			if err := step(); err != nil {
				return err
			}
		}
		return welcome(cmd, g)
	},
}

var recoverCmd = &cobra.Command{
	Use:   "recover",
	Short: "Set a new password for the profile owning an email",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		g := root.App.NewGate()
		if err := g.Choose(auth.ModeRecovery); err != nil {
			return err
		}
		if err := g.SubmitRecoveryEmail(email); err != nil {
			return err
		}
		if err := g.SubmitNewPassword(cmd.Context(), password, confirm); err != nil {
			return err
		}
		fmt.Fprintln(root.Out(cmd), "Password updated. Log in with the new password.")
		return nil
	},
}

func welcome(cmd *cobra.Command, g *auth.Gate) error {
	p, ok := g.Profile()
	if !ok {
		return fmt.Errorf("login did not complete")
	}
	fmt.Fprintf(root.Out(cmd), "Logged in as %s (%s)\n", p.Name, p.ID)
	return nil
}

func init() {
	for _, c := range []*cobra.Command{loginCmd, signupCmd, recoverCmd} {
		c.Flags().StringVarP(&email, "email", "e", "", "Login email")
		c.Flags().StringVarP(&password, "password", "p", "", "Password")
		c.MarkFlagRequired("email")
		c.MarkFlagRequired("password")
	}
	recoverCmd.Flags().StringVar(&confirm, "confirm", "", "Password again")
	recoverCmd.MarkFlagRequired("confirm")

	signupCmd.Flags().StringVarP(&name, "name", "n", "", "Display name")
	signupCmd.Flags().StringVarP(&avatar, "avatar", "a", "", "Avatar token")
	signupCmd.Flags().StringVar(&image, "image", "", "Encoded profile image")
	signupCmd.Flags().StringVar(&currency, "currency", models.DefaultCurrencySymbol, "Currency symbol")
	signupCmd.MarkFlagRequired("name")

	Cmd.AddCommand(loginCmd, signupCmd, recoverCmd)
}
