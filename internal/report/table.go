package report

import (
	"io"

	"github.com/olekukonko/tablewriter"

	"accident-reconciliation/internal/domain"
)

// PrintSummary renders the summary block as a console table.
func PrintSummary(w io.Writer, r *domain.ReconciliationReport) error {
	table := tablewriter.NewTable(w)
	table.Header(r.Profile, Title)
	for _, row := range SummaryRows(r.Summary) {
		if err := table.Append(row[0], row[1]); err != nil {
			return err
		}
	}
	return table.Render()
}
