package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/s0up4200/cinemaxx/store"
)

var (
	loginEmail    string
	loginProvider string
)

// loginCmd records the user signed in by the identity provider
var loginCmd = &cobra.Command{
	Use:   "login",
	Short: "Start a session",
	Long: `Start a session for the given user. Authentication itself happens at the
identity provider; cinemaxx only keeps the signed-in user on this device.`,
	Example:     `  cinemaxx login --email ada@example.com --provider google`,
	Args:        cobra.NoArgs,
	Annotations: map[string]string{annotationSession: sessionOptional},
	RunE:        runLogin,
}

var logoutCmd = &cobra.Command{
	Use:         "logout",
	Short:       "End the session; favorites and theme are kept",
	Args:        cobra.NoArgs,
	Annotations: map[string]string{annotationSession: sessionOptional},
	RunE:        runLogout,
}

var whoamiCmd = &cobra.Command{
	Use:   "whoami",
	Short: "Show the signed-in user",
	Args:  cobra.NoArgs,
	RunE:  runWhoami,
}

func init() {
	rootCmd.AddCommand(loginCmd, logoutCmd, whoamiCmd)

	loginCmd.Flags().StringVarP(&loginEmail, "email", "e", "", "email address of the signed-in user")
	loginCmd.Flags().StringVar(&loginProvider, "provider", string(store.ProviderPassword), "identity provider (password, google)")
	loginCmd.MarkFlagRequired("email")
}

func runLogin(cmd *cobra.Command, args []string) error {
	session := store.Session{
		Email:    loginEmail,
		Provider: store.ParseProvider(loginProvider),
	}
	if err := appStore.SetSession(session); err != nil {
		return err
	}

	fmt.Fprintf(cmd.OutOrStdout(), "Welcome, %s (%s)\n", session.DisplayName(), session.Provider)
	return nil
}

func runLogout(cmd *cobra.Command, args []string) error {
	if _, ok := appStore.Session(); !ok {
		fmt.Fprintln(cmd.OutOrStdout(), "Not logged in")
		return nil
	}
	if err := appStore.ClearOnLogout(); err != nil {
		return err
	}
	fmt.Fprintln(cmd.OutOrStdout(), "Logged out")
	return nil
}

func runWhoami(cmd *cobra.Command, args []string) error {
	session, _ := appStore.Session()
	fmt.Fprintf(cmd.OutOrStdout(), "%s <%s> via %s\n", session.DisplayName(), session.Email, session.Provider)
	return nil
}
