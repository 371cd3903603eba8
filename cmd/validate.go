package cmd

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/hadSHOT/hooklint/cli"
	"github.com/hadSHOT/hooklint/config"
	"github.com/hadSHOT/hooklint/schema"
)

type validateReport struct {
	Path     string   `json:"path"`
	Valid    bool     `json:"valid"`
	Errors   []string `json:"errors,omitempty"`
	Warnings []string `json:"warnings,omitempty"`
}

// NewValidateCmd creates the validate command.
func NewValidateCmd() *cobra.Command {
	var quiet bool
	var strict bool

	cmd := &cobra.Command{
		Use:   "validate",
		Short: "Check the hook configuration for structural and semantic problems",
		Long: `Validates the nearest hook configuration file in two passes: first
against the JSON Schema for the format, then against semantic rules the
schema cannot express (revision pinning per repository kind, required
fields for local hooks, regex fields that must compile, known stage
names). Advisory findings such as mutable revisions are reported as
warnings.`,
		Example: `  # Validate the config above the current directory
  hooklint validate

  # Treat warnings as errors (useful in CI)
  hooklint validate --strict`,
		RunE: func(cmd *cobra.Command, args []string) error {
			opts := cli.GetOptions(cmd)

			path, err := cli.ResolveConfigPath(cmd)
			if err != nil {
				return err
			}

			report := validateConfig(path)
			if strict && len(report.Warnings) > 0 {
				report.Valid = false
				report.Errors = append(report.Errors, "warnings present and --strict is set")
			}

			if opts.JSONOutput {
				data, err := json.MarshalIndent(report, "", "  ")
				if err != nil {
					return err
				}
				fmt.Fprintln(cmd.OutOrStdout(), string(data))
			} else {
				printReport(cmd, report, quiet)
			}

			if !report.Valid {
				return fmt.Errorf("%s is not a valid hook configuration", path)
			}
			return nil
		},
	}

	cmd.Flags().BoolVarP(&quiet, "quiet", "q", false, "Only report problems")
	cmd.Flags().BoolVar(&strict, "strict", false, "Treat warnings as errors")

	return cmd
}

func validateConfig(path string) validateReport {
	report := validateReport{Path: path, Valid: true}

	data, err := config.ReadConfigFile(path)
	if err != nil {
		report.Valid = false
		report.Errors = append(report.Errors, err.Error())
		return report
	}

	cfg, err := config.Parse(data)
	if err != nil {
		report.Valid = false
		report.Errors = append(report.Errors, err.Error())
		return report
	}

	validator, err := schema.NewValidator()
	if err != nil {
		report.Valid = false
		report.Errors = append(report.Errors, err.Error())
		return report
	}
	// Schema validation runs on the raw document: typed structs drop unknown
	// keys, which are exactly what the closed schemas exist to catch.
	if err := validator.ValidateYAML(data); err != nil {
		report.Valid = false
		report.Errors = append(report.Errors, err.Error())
	}

	if err := cfg.Validate(); err != nil {
		report.Valid = false
		report.Errors = append(report.Errors, err.Error())
	}

	report.Warnings = cfg.Warnings()
	return report
}

func printReport(cmd *cobra.Command, report validateReport, quiet bool) {
	out := cmd.OutOrStdout()

	for _, msg := range report.Errors {
		fmt.Fprintf(out, "%s %s\n", cli.StatusGlyph(false), msg)
	}
	if !quiet {
		for _, msg := range report.Warnings {
			fmt.Fprintf(out, "%s %s\n", cli.WarnGlyph(), msg)
		}
	}

	if report.Valid && !quiet {
		fmt.Fprintf(out, "%s %s is valid\n", cli.StatusGlyph(true), report.Path)
	}
}
