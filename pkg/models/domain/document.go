package domain

// ExtractionRecord is one extracted document as supplied by the upstream
// OCR subsystem. Data is an open key/value payload and is read-only to
// the pipeline; values may be numbers or currency-formatted strings.
type ExtractionRecord struct {
	DocType string
	Data    map[string]any
	Year    int // tax year, 0 when unknown
}

// DocumentSet is the classifier output. A record may appear in more
// than one bucket (profit-and-loss statements double as tax forms);
// no record is ever dropped.
type DocumentSet struct {
	TaxForms       []ExtractionRecord
	BankStatements []ExtractionRecord
	ProfitLoss     []ExtractionRecord
	BalanceSheets  []ExtractionRecord
	RentRolls      []ExtractionRecord
	Other          []ExtractionRecord
}
