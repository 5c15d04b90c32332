package report

import (
	"io"

	"github.com/goccy/go-json"

	"accident-reconciliation/internal/domain"
)

// JSONWriter encodes the whole report envelope.
type JSONWriter struct {
	Indent string
}

// Write implements Writer.
func (w *JSONWriter) Write(out io.Writer, r *domain.ReconciliationReport) error {
	enc := json.NewEncoder(out)
	if w.Indent != "" {
		enc.SetIndent("", w.Indent)
	}
	return enc.Encode(r)
}
