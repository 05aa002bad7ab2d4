package cmd

import (
	"fmt"
	"os"

	"github.com/annthusiaast/lexctl/cmd/lexctl/cmd/auth"
	"github.com/annthusiaast/lexctl/cmd/lexctl/cmd/cases"
	"github.com/annthusiaast/lexctl/cmd/lexctl/cmd/clients"
	"github.com/annthusiaast/lexctl/cmd/lexctl/cmd/docs"
	"github.com/annthusiaast/lexctl/cmd/lexctl/cmd/payments"
	"github.com/annthusiaast/lexctl/cmd/lexctl/cmd/tasks"
	"github.com/annthusiaast/lexctl/cmd/lexctl/internal/client"
	"github.com/annthusiaast/lexctl/cmd/lexctl/internal/config"
	"github.com/annthusiaast/lexctl/pkg/logging"
	"github.com/spf13/cobra"
)

var (
	serverURL      string
	nonInteractive bool
	logLevel       string
)

var rootCmd = &cobra.Command{
	Use:   "lexctl",
	Short: "Case management client",
	Long: `lexctl is the command-line client for the case management backend.
Use it to sign in, browse cases and tasks, and manage the client registry.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		if os.Getenv("LEXCTL_NON_INTERACTIVE") == "1" {
			nonInteractive = true
		}

		fileCfg, err := config.LoadFile()
		if err != nil {
			return err
		}
		if !cmd.Flags().Changed("server") && fileCfg.ServerURL != "" {
			serverURL = fileCfg.ServerURL
		}
		if !cmd.Flags().Changed("log-level") && fileCfg.LogLevel != "" {
			logLevel = fileCfg.LogLevel
		}

		if err := logging.Setup(logging.Options{Level: logLevel}); err != nil {
			return err
		}

		cfg := &config.GlobalConfig{
			ServerURL:      serverURL,
			NonInteractive: nonInteractive,
			Provider:       client.NewProvider(serverURL),
		}
		cmd.SetContext(config.InjectConfig(cmd.Context(), cfg))
		return nil
	},
}

// Execute runs the root command.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&serverURL, "server", "http://localhost:8080", "case management API server URL")
	rootCmd.PersistentFlags().BoolVar(&nonInteractive, "non-interactive", false, "Disable interactive prompts (also set via LEXCTL_NON_INTERACTIVE=1)")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "warn", "Log level (debug, info, warn, error)")
	rootCmd.AddCommand(auth.AuthCmd)
	rootCmd.AddCommand(cases.CasesCmd)
	rootCmd.AddCommand(tasks.TasksCmd)
	rootCmd.AddCommand(docs.DocsCmd)
	rootCmd.AddCommand(clients.ClientsCmd)
	rootCmd.AddCommand(payments.PaymentsCmd)
}
