package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/folio/folio-go/internal/model"
)

func (a *app) loginCmd() *cobra.Command {
	var email string
	cmd := &cobra.Command{
		Use:   "login",
		Short: "Sign in as a visitor",
		Long: `Sign in as a visitor. Any well-formed email works; the admin
credentials are refused here, use admin-login instead.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			email, password, err := a.credentials(cmd, email)
			if err != nil {
				return err
			}
			id, err := a.session.LoginUser(a.context(cmd), email, password)
			if err != nil {
				return fmt.Errorf("login failed: %w", err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Signed in as %s\n", id.Email)
			return nil
		},
	}
	cmd.Flags().StringVar(&email, "email", "", "Email address")
	return cmd
}

func (a *app) adminLoginCmd() *cobra.Command {
	var email string
	cmd := &cobra.Command{
		Use:   "admin-login",
		Short: "Sign in as the site admin",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			email, password, err := a.credentials(cmd, email)
			if err != nil {
				return err
			}
			id, err := a.session.LoginAdmin(a.context(cmd), email, password)
			if err != nil {
				return fmt.Errorf("admin login failed: %w", err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Signed in as admin %s\n", id.Email)
			return nil
		},
	}
	cmd.Flags().StringVar(&email, "email", "", "Admin email address")
	return cmd
}

func (a *app) credentials(cmd *cobra.Command, email string) (string, string, error) {
	var err error
	if email == "" {
		if email, err = a.prompt(cmd, "Email"); err != nil {
			return "", "", err
		}
	}
	password, err := a.promptSecret(cmd, "Password")
	if err != nil {
		return "", "", err
	}
	return email, password, nil
}

func (a *app) logoutCmd() *cobra.Command {
	var userOnly, adminOnly bool
	cmd := &cobra.Command{
		Use:   "logout",
		Short: "Sign out",
		Long:  `Sign out of both identities, or only one with --user or --admin.`,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			var err error
			switch {
			case userOnly && adminOnly:
				return fmt.Errorf("cannot use both --user and --admin")
			case userOnly:
				err = a.session.LogoutUser()
			case adminOnly:
				err = a.session.LogoutAdmin()
			default:
				err = a.session.Logout()
			}
			if err != nil {
				return fmt.Errorf("logout failed: %w", err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Now %s\n", a.session.State())
			return nil
		},
	}
	cmd.Flags().BoolVar(&userOnly, "user", false, "Sign out the visitor identity only")
	cmd.Flags().BoolVar(&adminOnly, "admin", false, "Sign out the admin identity only")
	return cmd
}

func (a *app) whoamiCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "whoami",
		Short: "Show the signed-in identities",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()
			fmt.Fprintln(out, a.session.State())
			if id, ok := a.session.Admin(); ok {
				printIdentity(cmd, id)
			}
			if id, ok := a.session.User(); ok {
				printIdentity(cmd, id)
			}
			return nil
		},
	}
}

func printIdentity(cmd *cobra.Command, id model.Identity) {
	fmt.Fprintf(cmd.OutOrStdout(), "  %-5s  %s\n", id.Role, id.Email)
}
