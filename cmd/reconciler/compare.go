package main

import (
	"fmt"
	"path/filepath"

	"github.com/spf13/cobra"

	"accident-reconciliation/internal/domain"
	"accident-reconciliation/internal/report"
	"accident-reconciliation/internal/usecase"
)

func newCompareCommand(a *app) *cobra.Command {
	var (
		primary   string
		secondary string
		profile   string
		output    string
	)

	cmd := &cobra.Command{
		Use:   "compare",
		Short: "Reconcile two exports and write the comparison report",
		Example: `  reconciler compare --primary sap.xlsx --secondary powerbi.xlsx --profile PT
  reconciler compare --primary sap.csv --secondary pbi.csv --profile Schools --format csv --output schools.csv`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			format, err := report.ParseFormat(a.cfg.Format)
			if err != nil {
				return err
			}
			// An explicit output extension wins over the configured default.
			if ext := filepath.Ext(output); ext != "" && !cmd.Flags().Changed("format") {
				if f, err := report.ParseFormat(ext); err == nil {
					format = f
				}
			}

			rep, err := a.uc.Reconcile(a.context(cmd), usecase.Request{
				PrimaryPath:   primary,
				SecondaryPath: secondary,
				Profile:       profile,
			})
			if err != nil {
				return err
			}

			if output == "" {
				output = domain.DefaultReportName(rep.Profile, string(format))
			}
			if err := report.WriteFile(output, report.NewWriter(format), rep); err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			if err := report.PrintSummary(out, rep); err != nil {
				return err
			}
			fmt.Fprintf(out, "Report written to %s\n", output)
			return nil
		},
	}

	flags := cmd.Flags()
	flags.StringVar(&primary, "primary", "", "path to the SAP export (.xlsx, .xlsm or .csv)")
	flags.StringVar(&secondary, "secondary", "", "path to the Power BI export (.xlsx, .xlsm or .csv)")
	flags.StringVar(&profile, "profile", domain.ProfilePT, "category profile (PT, \"Contracts & Private Hire\", Schools)")
	flags.StringVarP(&output, "output", "o", "", "report path (default {profile}_Accidents_Comparison.{format})")
	flags.String("format", "", "report format (xlsx, csv, json)")
	_ = a.v.BindPFlag("format", flags.Lookup("format"))
	_ = cmd.MarkFlagRequired("primary")
	_ = cmd.MarkFlagRequired("secondary")
	return cmd
}
