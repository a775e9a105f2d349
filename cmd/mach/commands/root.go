// Package commands implements the CLI commands for the mach task runner.
package commands

import (
	"context"
	"fmt"
	"io"

	"github.com/mvoegeli/mach/internal/app"
	"github.com/mvoegeli/mach/internal/build"
	"github.com/mvoegeli/mach/internal/core/domain"
	"github.com/spf13/cobra"
)

// CLI represents the command line interface for mach.
type CLI struct {
	app     Application
	rootCmd *cobra.Command
}

// Application represents the application logic interface.
type Application interface {
	Run(ctx context.Context, targetNames []string) error
	List(ctx context.Context) error
	SetConfigPath(path string)
}

// compile-time check that the app satisfies the CLI's view of it.
var _ Application = (*app.App)(nil)

// New creates a new CLI instance with the given app.
func New(a Application) *CLI {
	rootCmd := &cobra.Command{
		Use:           "mach [target...]",
		Short:         "A minimal declarative task runner",
		Long: "mach runs named targets declared in " + domain.MachfileName + ".\n" +
			"Prerequisites execute before their dependents, each target at most\n" +
			"once per invocation. Without arguments mach runs the configured\n" +
			"default target, or lists the available targets.",
		Args:          cobra.ArbitraryArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		Version:       build.Version,
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.Run(cmd.Context(), args)
		},
	}

	rootCmd.SetVersionTemplate(fmt.Sprintf(
		"{{.Name}} version {{.Version}} (commit: %s, date: %s)\n",
		build.Commit,
		build.Date,
	))
	rootCmd.InitDefaultVersionFlag()
	rootCmd.Flags().Lookup("version").Usage = "Print the application version"

	rootCmd.PersistentFlags().StringP("config", "c", domain.MachfileName, "Path to the machfile")
	rootCmd.PersistentPreRunE = func(cmd *cobra.Command, _ []string) error {
		configPath, err := cmd.Flags().GetString("config")
		if err != nil {
			return err
		}
		a.SetConfigPath(configPath)
		return nil
	}

	c := &CLI{
		app:     a,
		rootCmd: rootCmd,
	}

	rootCmd.AddCommand(c.newListCmd())
	rootCmd.AddCommand(c.newVersionCmd())

	return c
}

// Execute runs the root command with the given context.
func (c *CLI) Execute(ctx context.Context) error {
	c.rootCmd.SetContext(ctx)
	return c.rootCmd.Execute()
}

// SetArgs sets the arguments for the root command. Used for testing.
func (c *CLI) SetArgs(args []string) {
	c.rootCmd.SetArgs(args)
}

// SetOutput sets the output and error streams for the root command.
func (c *CLI) SetOutput(out, err io.Writer) {
	c.rootCmd.SetOut(out)
	c.rootCmd.SetErr(err)
}
