package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/agentstation/eventhub/pkg/types"
)

var authCmd = &cobra.Command{
	Use:   "auth",
	Short: "Manage the EventHub session",
	Long: `Log in and out of EventHub and inspect the current session.

Examples:
  eventhub auth login --email you@example.com
  eventhub auth signup --username you --email you@example.com
  eventhub auth whoami
  eventhub auth logout`,
	RunE: func(cmd *cobra.Command, args []string) error {
		return whoamiCmd.RunE(cmd, args)
	},
}

var loginCmd = &cobra.Command{
	Use:   "login",
	Short: "Log in with email and password",
	RunE: func(cmd *cobra.Command, _ []string) error {
		email, _ := cmd.Flags().GetString("email")
		password, _ := cmd.Flags().GetString("password")
		if password == "" {
			var err error
			if password, err = promptPassword(cmd); err != nil {
				return err
			}
		}

		hub, err := newClient()
		if err != nil {
			return err
		}
		defer hub.Close()

		in := types.LoginInput{Email: email, Password: password}
		if _, err := hub.Auth().Login(cmd.Context(), in); err != nil {
			return fmt.Errorf("%s", hub.Auth().Session().Error)
		}

		session := hub.Auth().Session()
		fmt.Fprintf(cmd.OutOrStdout(), locale(hub).T("auth.loggedin")+"\n", session.User.Username)
		return nil
	},
}

var signupCmd = &cobra.Command{
	Use:   "signup",
	Short: "Create an account and log into it",
	RunE: func(cmd *cobra.Command, _ []string) error {
		username, _ := cmd.Flags().GetString("username")
		email, _ := cmd.Flags().GetString("email")
		password, _ := cmd.Flags().GetString("password")
		if password == "" {
			var err error
			if password, err = promptPassword(cmd); err != nil {
				return err
			}
		}

		hub, err := newClient()
		if err != nil {
			return err
		}
		defer hub.Close()

		in := types.SignupInput{Username: username, Email: email, Password: password}
		if err := hub.Auth().Register(cmd.Context(), in); err != nil {
			return fmt.Errorf("%s", hub.Auth().Session().Error)
		}

		session := hub.Auth().Session()
		fmt.Fprintf(cmd.OutOrStdout(), locale(hub).T("auth.loggedin")+"\n", session.User.Username)
		return nil
	},
}

var logoutCmd = &cobra.Command{
	Use:   "logout",
	Short: "Log out and discard the stored session",
	RunE: func(cmd *cobra.Command, _ []string) error {
		hub, err := newClient()
		if err != nil {
			return err
		}
		defer hub.Close()

		hub.Auth().Logout()
		fmt.Fprintln(cmd.OutOrStdout(), locale(hub).T("auth.loggedout"))
		return nil
	},
}

var whoamiCmd = &cobra.Command{
	Use:   "whoami",
	Short: "Show the logged-in user",
	RunE: func(cmd *cobra.Command, _ []string) error {
		hub, err := newClient()
		if err != nil {
			return err
		}
		defer hub.Close()

		user, err := hub.Auth().LoadUser(cmd.Context())
		if err != nil {
			return err
		}
		if user == nil {
			fmt.Fprintln(cmd.OutOrStdout(), locale(hub).T("auth.anonymous"))
			return nil
		}
		return formatter().Format(cmd.OutOrStdout(), user)
	},
}

// promptPassword reads the password from the terminal when it was not
// passed as a flag.
func promptPassword(cmd *cobra.Command) (string, error) {
	fmt.Fprint(cmd.OutOrStdout(), "Password: ")
	var password string
	if _, err := fmt.Fscanln(cmd.InOrStdin(), &password); err != nil {
		return "", fmt.Errorf("reading password: %w", err)
	}
	return password, nil
}

func init() {
	rootCmd.AddCommand(authCmd)
	authCmd.AddCommand(loginCmd)
	authCmd.AddCommand(signupCmd)
	authCmd.AddCommand(logoutCmd)
	authCmd.AddCommand(whoamiCmd)

	loginCmd.Flags().String("email", "", "Account email")
	loginCmd.Flags().String("password", "", "Account password (prompted when omitted)")
	_ = loginCmd.MarkFlagRequired("email")

	signupCmd.Flags().String("username", "", "Display name")
	signupCmd.Flags().String("email", "", "Account email")
	signupCmd.Flags().String("password", "", "Account password (prompted when omitted)")
	_ = signupCmd.MarkFlagRequired("username")
	_ = signupCmd.MarkFlagRequired("email")
}
