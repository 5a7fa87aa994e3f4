package main

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/yigit/studentsync/internal/app/models"
	"github.com/yigit/studentsync/internal/app/roster"
	"github.com/yigit/studentsync/internal/app/scriptgen"
	"github.com/yigit/studentsync/internal/pkg/apperrors"
)

// sourceOptions are the roster flags shared by generate and apply
type sourceOptions struct {
	source string
	sheet  string
}

func (o *sourceOptions) bind(cmd *cobra.Command) {
	cmd.Flags().StringVar(&o.source, "source", "", "Roster spreadsheet (.xlsx or .csv); overrides source.path")
	cmd.Flags().StringVar(&o.sheet, "sheet", "", "Worksheet name; overrides source.sheet")
}

func newGenerateCmd(app *cliApp) *cobra.Command {
	var (
		src    sourceOptions
		output string
	)

	cmd := &cobra.Command{
		Use:   "generate",
		Short: "Generate the Node.js script that repopulates students",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runGenerate(cmd.OutOrStdout(), app, src, output)
		},
	}

	src.bind(cmd)
	cmd.Flags().StringVarP(&output, "output", "o", "", "Generated script path; overrides output.path")

	return cmd
}

func runGenerate(out io.Writer, app *cliApp, src sourceOptions, output string) error {
	records, ok, err := readRoster(out, app, src)
	if err != nil || !ok {
		return err
	}

	if output == "" {
		output = app.cfg.Output.Path
	}

	fb := app.cfg.Firebase
	gen, err := scriptgen.NewGenerator(scriptgen.Options{
		EnvFile:        fb.EnvFile,
		ProjectIDEnv:   fb.ProjectIDEnv,
		ClientEmailEnv: fb.ClientEmailEnv,
		PrivateKeyEnv:  fb.PrivateKeyEnv,
		Collection:     fb.Collection,
		Role:           fb.Role,
	}, app.lgr)
	if err != nil {
		return err
	}

	if err := gen.Write(output, records); err != nil {
		return err
	}

	fmt.Fprintf(out, "\nScript generated: %s\n", output)
	fmt.Fprintln(out, "\nTo run the script, execute:")
	fmt.Fprintf(out, "  node %s\n", output)
	return nil
}

// readRoster extracts the roster and prints the record table. ok is false
// when there is nothing to act on; the reason has already been printed.
func readRoster(out io.Writer, app *cliApp, src sourceOptions) ([]models.StudentRecord, bool, error) {
	path := src.source
	if path == "" {
		path = app.cfg.Source.Path
	}
	sheet := src.sheet
	if sheet == "" {
		sheet = app.cfg.Source.Sheet
	}

	extractor := roster.NewExtractor(roster.Options{
		Sheet:            sheet,
		NoHeaderMarker:   app.cfg.Source.NoHeaderMarker,
		NameHeaderMarker: app.cfg.Source.NameHeaderMarker,
		EmailDomain:      app.cfg.Credentials.EmailDomain,
	}, app.lgr)

	fmt.Fprintln(out, "Reading roster file...")
	result, err := extractor.Extract(path)
	if err != nil {
		if errors.Is(err, apperrors.ErrSourceNotFound) {
			fmt.Fprintf(out, "File not found: %s\n", path)
			return nil, false, nil
		}
		return nil, false, err
	}

	if len(result.Records) == 0 {
		fmt.Fprintln(out, "No student records found")
		return nil, false, nil
	}

	printRecords(out, result)
	return result.Records, true, nil
}

func printRecords(out io.Writer, result *roster.Result) {
	separator := strings.Repeat("-", 80)

	fmt.Fprintf(out, "\nFound %d students:\n", len(result.Records))
	fmt.Fprintln(out, separator)
	for i, rec := range result.Records {
		fmt.Fprintf(out, "%d. %-30s | %-15s | Kelas: %-5s | Password: %s\n", i+1, rec.Name, rec.NISN, rec.Class, rec.Password)
	}
	fmt.Fprintln(out, separator)
	fmt.Fprintf(out, "Total: %d students, %d rows skipped\n", len(result.Records), result.Skipped)

	for _, nisn := range result.DuplicateNISNs {
		fmt.Fprintf(out, "Warning: NISN %s appears on more than one row\n", nisn)
	}
}
