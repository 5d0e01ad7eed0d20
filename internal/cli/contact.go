package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/folio/folio-go/internal/model"
)

func (a *app) contactCmd() *cobra.Command {
	var req model.ContactRequest
	cmd := &cobra.Command{
		Use:   "contact",
		Short: "Send a message to the site owner",
		Long: `Send a message through the contact form. Requires a signed-in
identity; the email defaults to it.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := a.session.RequireSignedIn(); err != nil {
				return fmt.Errorf("%w: run folioctl login first", err)
			}
			if req.Email == "" {
				id, _ := a.session.Current()
				req.Email = id.Email
			}

			var err error
			if req.Name == "" {
				if req.Name, err = a.prompt(cmd, "Name"); err != nil {
					return err
				}
			}
			if req.Message == "" {
				if req.Message, err = a.prompt(cmd, "Message"); err != nil {
					return err
				}
			}

			if err := a.client.SubmitContact(a.context(cmd), req); err != nil {
				return fmt.Errorf("failed to send message: %w", err)
			}
			fmt.Fprintln(cmd.OutOrStdout(), "Message sent. Thanks for reaching out!")
			return nil
		},
	}
	cmd.Flags().StringVarP(&req.Name, "name", "n", "", "Your name")
	cmd.Flags().StringVarP(&req.Email, "email", "e", "", "Reply-to email")
	cmd.Flags().StringVarP(&req.Phone, "phone", "p", "", "Phone number")
	cmd.Flags().StringVarP(&req.Message, "message", "m", "", "Message")
	return cmd
}

func (a *app) siteCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "site",
		Short: "Show the public contact channels",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			p, err := a.client.Site(a.context(cmd))
			if err != nil {
				return fmt.Errorf("failed to load site profile: %w", err)
			}
			out := cmd.OutOrStdout()
			for _, row := range [][2]string{
				{"Email", p.Email},
				{"Phone", p.Phone},
				{"WhatsApp", p.WhatsAppLink},
				{"LinkedIn", p.LinkedIn},
				{"GitHub", p.GitHub},
			} {
				if row[1] != "" {
					fmt.Fprintf(out, "%-9s %s\n", row[0]+":", row[1])
				}
			}
			return nil
		},
	}
}

func (a *app) configCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Show or change folioctl settings",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "config:       %s\n", a.configPath)
			fmt.Fprintf(out, "server:       %s\n", a.cfg.Server)
			fmt.Fprintf(out, "session_file: %s\n", a.cfg.SessionFile)
			fmt.Fprintf(out, "log_level:    %s\n", a.cfg.LogLevel)
			return nil
		},
	}
	cmd.AddCommand(&cobra.Command{
		Use:   "set-server <url>",
		Short: "Save the API server URL",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			saved, err := LoadConfig(a.configPath)
			if err != nil {
				return err
			}
			saved.Server = args[0]
			if err := saved.Save(a.configPath); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Server set to %s\n", args[0])
			return nil
		},
	})
	return cmd
}
