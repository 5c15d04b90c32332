package domain

// Table is a fully materialized row set with named columns, as read from a
// primary or secondary export.
type Table struct {
	Source string     `json:"source"` // e.g., "sap_export.xlsx"
	Header []string   `json:"header"`
	Rows   [][]string `json:"rows"`
}

// Field is a cell value that may be absent. An absent field is distinct from
// a present field holding the empty string.
type Field struct {
	Value string `json:"value"`
	Valid bool   `json:"valid"`
}

// Present returns a valid Field holding v.
func Present(v string) Field {
	return Field{Value: v, Valid: true}
}

// Absent returns the missing marker.
func Absent() Field {
	return Field{}
}

// String returns the value, or "" for an absent field.
func (f Field) String() string {
	if !f.Valid {
		return ""
	}
	return f.Value
}

// PrimaryRow is one row of the source-of-record (SAP) export.
type PrimaryRow struct {
	Key          Field `json:"notification"`
	Equipment    Field `json:"equipment"`
	AccidentDate Field `json:"accident_date"`
	Category     Field `json:"responsible_operations"`
}

// SecondaryRow is one row of the reporting (Power BI) export.
type SecondaryRow struct {
	Key          Field `json:"notification_number"`
	FleetID      Field `json:"fleet_no"`
	AccidentDate Field `json:"accident_date"`
}

// NormalizedRecord is the common shape both sides converge to before joining.
// Identifier holds the equipment id on the primary side and the fleet number
// on the secondary side. Category is only ever set on the primary side.
type NormalizedRecord struct {
	Key        Field `json:"key"`
	Identifier Field `json:"identifier"`
	Date       Field `json:"date"`
	Category   Field `json:"category"`
}

// JoinedPair is one row of the full outer join on Key. Either side may be nil,
// never both.
type JoinedPair struct {
	Key       string
	Primary   *NormalizedRecord
	Secondary *NormalizedRecord
}
