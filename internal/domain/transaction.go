package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// TransactionKind represents the direction of a balance movement
type TransactionKind string

// Transaction kinds
const (
	Deposit    TransactionKind = "DEP"
	Withdrawal TransactionKind = "RET"
)

func (k TransactionKind) Valid() bool {
	return k == Deposit || k == Withdrawal
}

// Transaction is an immutable record of one balance movement on an account
type Transaction struct {
	id        string
	kind      TransactionKind
	amount    decimal.Decimal
	timestamp time.Time
}

// TransactionView is the rendering shape of a transaction; the id stays internal
type TransactionView struct {
	Kind      TransactionKind `json:"kind"`
	Amount    decimal.Decimal `json:"amount"`
	Timestamp time.Time       `json:"timestamp"`
}

// NewTransaction builds a transaction, rejecting unknown kinds and non-positive amounts
func NewTransaction(id string, kind TransactionKind, amount decimal.Decimal, at time.Time) (Transaction, error) {
	if !kind.Valid() {
		return Transaction{}, &ValidationError{Field: "kind", Reason: "must be DEP or RET"}
	}
	if !amount.IsPositive() {
		return Transaction{}, &ValidationError{Field: "amount", Reason: "must be greater than zero"}
	}

	return Transaction{
		id:        id,
		kind:      kind,
		amount:    amount,
		timestamp: at,
	}, nil
}

func (t Transaction) ID() string { return t.id }

func (t Transaction) Kind() TransactionKind { return t.kind }

func (t Transaction) Amount() decimal.Decimal { return t.amount }

func (t Transaction) Timestamp() time.Time { return t.timestamp }

// SignedAmount returns the amount negated for withdrawals
func (t Transaction) SignedAmount() decimal.Decimal {
	if t.kind == Withdrawal {
		return t.amount.Neg()
	}
	return t.amount
}

func (t Transaction) View() TransactionView {
	return TransactionView{
		Kind:      t.kind,
		Amount:    t.amount,
		Timestamp: t.timestamp,
	}
}
