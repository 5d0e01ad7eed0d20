package cli

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/folio/folio-go/internal/apiclient"
	"github.com/folio/folio-go/internal/logging"
	"github.com/folio/folio-go/internal/session"
)

// app is the state shared by every subcommand of one invocation.
type app struct {
	configPath string
	server     string
	logLevel   string

	cfg     *Config
	client  *apiclient.Client
	session *session.Session
	in      *bufio.Reader
}

// NewRootCmd builds the folioctl command tree.
func NewRootCmd() *cobra.Command {
	a := &app{}

	root := &cobra.Command{
		Use:   "folioctl",
		Short: "Manage the portfolio from the terminal",
		Long: `folioctl browses the project catalog, signs in as a visitor or admin,
edits projects and sends contact messages.

Settings are read from $XDG_CONFIG_HOME/folio/config.yaml.`,
		SilenceUsage:      true,
		PersistentPreRunE: a.setup,
	}

	root.PersistentFlags().StringVar(&a.configPath, "config", "", "Path to config file")
	root.PersistentFlags().StringVar(&a.server, "server", "", "API server URL (overrides config)")
	root.PersistentFlags().StringVar(&a.logLevel, "log-level", "", "Log level (debug, info, warn, error)")

	root.AddCommand(
		a.loginCmd(),
		a.adminLoginCmd(),
		a.logoutCmd(),
		a.whoamiCmd(),
		a.projectsCmd(),
		a.contactCmd(),
		a.siteCmd(),
		a.configCmd(),
	)
	return root
}

// Execute runs folioctl with the process arguments.
func Execute() error {
	return NewRootCmd().Execute()
}

func (a *app) setup(cmd *cobra.Command, args []string) error {
	if a.configPath == "" {
		path, err := DefaultConfigPath()
		if err != nil {
			return fmt.Errorf("failed to locate config: %w", err)
		}
		a.configPath = path
	}

	cfg, err := LoadConfig(a.configPath)
	if err != nil {
		return err
	}
	if a.server != "" {
		cfg.Server = a.server
	}
	if a.logLevel != "" {
		cfg.LogLevel = a.logLevel
	}
	a.cfg = cfg

	if _, err := logging.Setup(cfg.LogLevel, "text", cmd.ErrOrStderr()); err != nil {
		return err
	}

	client, err := apiclient.New(cfg.Server)
	if err != nil {
		return err
	}
	a.client = client

	sessionPath := cfg.SessionFile
	if sessionPath == "" {
		if sessionPath, err = session.DefaultPath(); err != nil {
			return err
		}
	}
	a.session = session.New(session.NewFileStore(sessionPath), client)
	a.session.Restore()

	a.in = bufio.NewReader(cmd.InOrStdin())
	return nil
}

func (a *app) prompt(cmd *cobra.Command, label string) (string, error) {
	fmt.Fprintf(cmd.OutOrStdout(), "%s: ", label)
	line, err := a.in.ReadString('\n')
	if err != nil && err != io.EOF {
		return "", err
	}
	return strings.TrimSpace(line), nil
}

// promptSecret reads without echo on a terminal and falls back to a plain
// line otherwise.
func (a *app) promptSecret(cmd *cobra.Command, label string) (string, error) {
	f, ok := cmd.InOrStdin().(*os.File)
	if !ok || !term.IsTerminal(int(f.Fd())) {
		return a.prompt(cmd, label)
	}

	fmt.Fprintf(cmd.OutOrStdout(), "%s: ", label)
	b, err := term.ReadPassword(int(f.Fd()))
	fmt.Fprintln(cmd.OutOrStdout())
	if err != nil {
		return "", err
	}
	return string(b), nil
}

func (a *app) context(cmd *cobra.Command) context.Context {
	if ctx := cmd.Context(); ctx != nil {
		return ctx
	}
	return context.Background()
}
