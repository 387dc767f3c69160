package domain

import "time"

// DefaultStatementDepth is how many recent transactions a statement shows per account
const DefaultStatementDepth = 10

// AccountStatement is one account's section of a customer statement
type AccountStatement struct {
	Account      AccountView       `json:"account"`
	Transactions []TransactionView `json:"transactions"`
}

// CustomerStatement is what the report layer renders for one customer
type CustomerStatement struct {
	Customer    CustomerView       `json:"customer"`
	Accounts    []AccountStatement `json:"accounts"`
	GeneratedAt time.Time          `json:"generated_at"`
}

// NewCustomerStatement collects the last depth transactions of each account.
// A negative depth includes the whole log.
func NewCustomerStatement(customer *Customer, accounts []Account, depth int, at time.Time) CustomerStatement {
	stmt := CustomerStatement{
		Customer:    customer.Display(),
		Accounts:    make([]AccountStatement, 0, len(accounts)),
		GeneratedAt: at,
	}

	for _, acc := range accounts {
		txns := acc.LastTransactions(depth)
		views := make([]TransactionView, len(txns))
		for i, tx := range txns {
			views[i] = tx.View()
		}

		stmt.Accounts = append(stmt.Accounts, AccountStatement{
			Account:      acc.View(),
			Transactions: views,
		})
	}

	return stmt
}
