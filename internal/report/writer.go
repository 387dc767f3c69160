package report

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/tirasundara/retail-ledger/internal/domain"
)

// Writer stores rendered statements as files under Dir
type Writer struct {
	Dir       string
	Formatter OutputFormatter
}

// NewWriter creates a Writer rendering with formatter into dir
func NewWriter(dir string, formatter OutputFormatter) *Writer {
	return &Writer{
		Dir:       dir,
		Formatter: formatter,
	}
}

// Write renders the statements into Dir/name and returns the path of the file.
// The formatter's extension is added when name has none.
func (w *Writer) Write(name string, statements []domain.CustomerStatement) (string, error) {
	if name == "" {
		return "", fmt.Errorf("report name is required")
	}

	output, err := w.Formatter.Format(statements)
	if err != nil {
		return "", fmt.Errorf("formatting report: %w", err)
	}

	if err := os.MkdirAll(w.Dir, 0o755); err != nil {
		return "", fmt.Errorf("creating report directory: %w", err)
	}

	if !strings.Contains(filepath.Base(name), ".") {
		name = fmt.Sprintf("%s.%s", name, w.Formatter.FileExtension())
	}

	path := filepath.Join(w.Dir, name)
	if err := os.WriteFile(path, output, 0644); err != nil {
		return "", fmt.Errorf("writing report file: %w", err)
	}

	return path, nil
}

// StatementFileName is the default report name for a customer, e.g. "statement_12345678"
func StatementFileName(stmt domain.CustomerStatement) string {
	return "statement_" + stmt.Customer.NationalID
}
