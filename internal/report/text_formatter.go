package report

import (
	"bytes"
	"io"
	"strconv"

	"github.com/labstack/gommon/color"
	"github.com/shopspring/decimal"
	"github.com/tirasundara/retail-ledger/internal/domain"
	"github.com/valyala/fasttemplate"
)

const (
	timestampFormat = "2006-01-02 15:04:05"

	customerTemplate    = "Customer report: ${name} ${surname}\nNational ID: ${national_id}\n\n"
	accountTemplate     = "Account: ${number} (${kind})\nBalance: ${balance}\nTransactions (last ${count}):\n"
	transactionTemplate = " - ${timestamp} ${kind} ${amount}\n"
	footerTemplate      = "Generated: ${generated}\n"
)

// TextFormatter renders customer statements as plain text. Balances are
// coloured green or red when the destination is a terminal.
type TextFormatter struct {
	colorer     *color.Color
	customer    *fasttemplate.Template
	account     *fasttemplate.Template
	transaction *fasttemplate.Template
	footer      *fasttemplate.Template
}

// NewTextFormatter creates a TextFormatter; out is only used to decide whether to emit colour
func NewTextFormatter(out io.Writer) *TextFormatter {
	colorer := color.New()
	if out == nil {
		colorer.Disable()
	} else {
		colorer.SetOutput(out)
	}

	return &TextFormatter{
		colorer:     colorer,
		customer:    fasttemplate.New(customerTemplate, "${", "}"),
		account:     fasttemplate.New(accountTemplate, "${", "}"),
		transaction: fasttemplate.New(transactionTemplate, "${", "}"),
		footer:      fasttemplate.New(footerTemplate, "${", "}"),
	}
}

// Format implements the OutputFormatter interface for plain text
func (f *TextFormatter) Format(statements []domain.CustomerStatement) ([]byte, error) {
	var buf bytes.Buffer

	for i, stmt := range statements {
		if i > 0 {
			buf.WriteString("\n")
		}

		if _, err := f.customer.Execute(&buf, map[string]interface{}{
			"name":        stmt.Customer.Name,
			"surname":     stmt.Customer.Surname,
			"national_id": stmt.Customer.NationalID,
		}); err != nil {
			return nil, err
		}

		for _, acc := range stmt.Accounts {
			if _, err := f.account.Execute(&buf, map[string]interface{}{
				"number":  acc.Account.Number,
				"kind":    string(acc.Account.Kind),
				"balance": f.balance(acc.Account.Balance),
				"count":   strconv.Itoa(len(acc.Transactions)),
			}); err != nil {
				return nil, err
			}

			for _, tx := range acc.Transactions {
				if _, err := f.transaction.Execute(&buf, map[string]interface{}{
					"timestamp": tx.Timestamp.Format(timestampFormat),
					"kind":      string(tx.Kind),
					"amount":    tx.Amount.StringFixed(2),
				}); err != nil {
					return nil, err
				}
			}
			buf.WriteString("\n")
		}

		if _, err := f.footer.Execute(&buf, map[string]interface{}{
			"generated": stmt.GeneratedAt.Format(timestampFormat),
		}); err != nil {
			return nil, err
		}
	}

	return buf.Bytes(), nil
}

func (f *TextFormatter) FileExtension() string {
	return "txt"
}

func (f *TextFormatter) balance(b decimal.Decimal) string {
	s := b.StringFixed(2)
	if b.IsNegative() {
		return f.colorer.Red(s)
	}
	return f.colorer.Green(s)
}
