package report

import (
	"github.com/goccy/go-json"
	"github.com/tirasundara/retail-ledger/internal/domain"
)

// OutputFormatter renders a batch of customer statements into one document.
// FileExtension names the document type for report.Writer.
type OutputFormatter interface {
	Format(statements []domain.CustomerStatement) ([]byte, error)
	FileExtension() string
}

// JSONFormatter encodes statements as a JSON array, one object per customer
type JSONFormatter struct {
	PrettyPrint bool
}

// NewJSONFormatter creates a JSONFormatter; prettyPrint indents with two spaces
func NewJSONFormatter(prettyPrint bool) *JSONFormatter {
	return &JSONFormatter{
		PrettyPrint: prettyPrint,
	}
}

// Format implements the OutputFormatter interface
func (f *JSONFormatter) Format(statements []domain.CustomerStatement) ([]byte, error) {
	if f.PrettyPrint {
		return json.MarshalIndent(statements, "", "  ")
	}
	return json.Marshal(statements)
}

func (f *JSONFormatter) FileExtension() string {
	return "json"
}
