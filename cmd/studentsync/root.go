package main

import (
	"fmt"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/yigit/studentsync/internal/bootstrap"
	"github.com/yigit/studentsync/internal/config"
)

// cliApp carries state shared by every subcommand once the root pre-run has
// loaded it.
type cliApp struct {
	configPath string
	envFiles   []string
	verbose    bool

	cfg *config.Config
	lgr zerolog.Logger
}

func newRootCmd() *cobra.Command {
	app := &cliApp{}

	cmd := &cobra.Command{
		Use:           "studentsync",
		Short:         "Turn a class roster spreadsheet into student accounts",
		Long:          "studentsync reads a student roster spreadsheet, derives login credentials and either generates a Node.js migration script or loads the students into Postgres.",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return app.load()
		},
		// Without a subcommand the configured generate pipeline runs.
		RunE: func(cmd *cobra.Command, args []string) error {
			return runGenerate(cmd.OutOrStdout(), app, sourceOptions{}, "")
		},
	}

	cmd.PersistentFlags().StringVar(&app.configPath, "config", "configs/config.yaml", "Path to the YAML config file (optional)")
	cmd.PersistentFlags().StringSliceVar(&app.envFiles, "env-file", []string{".env"}, "Env files loaded before the config (missing files are skipped)")
	cmd.PersistentFlags().BoolVarP(&app.verbose, "verbose", "v", false, "Enable debug logging")

	cmd.AddCommand(
		newGenerateCmd(app),
		newApplyCmd(app),
		newServeCmd(app),
	)

	return cmd
}

func (a *cliApp) load() error {
	if err := config.LoadDotEnv(a.envFiles...); err != nil {
		return err
	}

	cfg, err := config.LoadConfig(a.configPath)
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}

	a.cfg = cfg
	a.lgr = bootstrap.SetupLogger(cfg, a.verbose)
	return nil
}
