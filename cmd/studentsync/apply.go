package main

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/yigit/studentsync/internal/bootstrap"
	"github.com/yigit/studentsync/internal/seed"
)

func newApplyCmd(app *cliApp) *cobra.Command {
	var (
		src    sourceOptions
		dryRun bool
	)

	cmd := &cobra.Command{
		Use:   "apply",
		Short: "Replace the students stored in Postgres with the roster",
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()

			records, ok, err := readRoster(out, app, src)
			if err != nil || !ok {
				return err
			}

			if dryRun {
				fmt.Fprintf(out, "\nDry run: would clear existing %s users and create %d students in %s\n",
					app.cfg.Firebase.Role, len(records), app.cfg.Database.DBName)
				return nil
			}

			ctx := cmd.Context()
			pool, err := bootstrap.SetupDatabase(ctx, app.cfg, app.lgr)
			if err != nil {
				return err
			}
			defer pool.Close()

			deps := bootstrap.BuildDependencies(app.cfg, pool, app.lgr)
			report, err := deps.Seeder.Run(ctx, records)
			printReport(out, report)
			if err != nil {
				return fmt.Errorf("clearing existing students aborted: %w", err)
			}
			if report.Create.Failed > 0 {
				return fmt.Errorf("%d of %d students failed", report.Create.Failed, len(records))
			}
			return nil
		},
	}

	src.bind(cmd)
	cmd.Flags().BoolVar(&dryRun, "dry-run", false, "Print what would happen without touching the database")

	return cmd
}

func printReport(out io.Writer, report *seed.Report) {
	if report == nil {
		return
	}
	if report.Clear != nil {
		fmt.Fprintf(out, "\nCleared %d of %d existing students\n", report.Clear.Deleted, report.Clear.Found)
		if report.Clear.IdentityErrors > 0 {
			fmt.Fprintf(out, "Identities not deleted: %d\n", report.Clear.IdentityErrors)
		}
	}
	if report.Create == nil {
		return
	}

	fmt.Fprintf(out, "Created: %d\n", report.Create.Created)
	fmt.Fprintf(out, "Failed: %d\n", report.Create.Failed)
	for _, o := range report.Create.Outcomes {
		if !o.OK() {
			fmt.Fprintf(out, "  - %s (%s): %v\n", o.NISN, o.Name, o.Err)
		}
	}
}
