package domain

import (
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// AccountNumberLength is the length of every generated account number
const AccountNumberLength = 8

// AccountKind represents the variant of an account
type AccountKind string

// Account kinds
const (
	SavingsKind  AccountKind = "savings"
	CheckingKind AccountKind = "checking"
)

// Account is the capability shared by every account variant. The set of
// implementations is closed: only *SavingsAccount and *CheckingAccount satisfy it.
type Account interface {
	Number() string
	Kind() AccountKind
	Balance() decimal.Decimal
	Owner() *Customer
	Deposit(amount decimal.Decimal) (Transaction, error)
	Withdraw(amount decimal.Decimal) (Transaction, error)
	Transactions() []Transaction
	LastTransactions(n int) []Transaction
	TransactionCount() int
	View() AccountView

	base() *account
}

// AccountView is the rendering shape of an account
type AccountView struct {
	Number         string           `json:"number"`
	Kind           AccountKind      `json:"kind"`
	Balance        decimal.Decimal  `json:"balance"`
	Owner          CustomerView     `json:"owner"`
	InterestRate   *decimal.Decimal `json:"interest_rate,omitempty"`
	OverdraftLimit *decimal.Decimal `json:"overdraft_limit,omitempty"`
}

// AccountOption customises how an account stamps and identifies its transactions
type AccountOption func(*account)

// WithClock sets the time source used to timestamp transactions
func WithClock(now func() time.Time) AccountOption {
	return func(a *account) {
		if now != nil {
			a.now = now
		}
	}
}

// WithTransactionIDs sets the generator used for transaction ids
func WithTransactionIDs(next func() string) AccountOption {
	return func(a *account) {
		if next != nil {
			a.nextTxID = next
		}
	}
}

// account holds the state common to all variants. Balance and log are only
// ever changed together, inside applyDeltaLocked.
type account struct {
	mu       sync.Mutex
	number   string
	owner    *Customer
	balance  decimal.Decimal
	log      []Transaction
	policy   WithdrawalPolicy
	now      func() time.Time
	nextTxID func() string
}

func (a *account) init(number string, owner *Customer, policy WithdrawalPolicy, opts []AccountOption) error {
	if len(number) != AccountNumberLength {
		return &ValidationError{Field: "account_number", Reason: "must be 8 characters long"}
	}
	if owner == nil {
		return &ValidationError{Field: "owner", Reason: "must not be nil"}
	}

	a.number = number
	a.owner = owner
	a.balance = decimal.Zero
	a.policy = policy
	a.now = time.Now
	a.nextTxID = uuid.NewString
	for _, opt := range opts {
		opt(a)
	}
	return nil
}

func (a *account) base() *account { return a }

func (a *account) Number() string { return a.number }

func (a *account) Owner() *Customer { return a.owner }

func (a *account) Balance() decimal.Decimal {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.balance
}

// Deposit adds amount to the balance and records a Deposit transaction
func (a *account) Deposit(amount decimal.Decimal) (Transaction, error) {
	return a.applyDelta(Deposit, amount)
}

// Withdraw subtracts amount from the balance if the account's policy allows it
func (a *account) Withdraw(amount decimal.Decimal) (Transaction, error) {
	return a.applyDelta(Withdrawal, amount)
}

// Transactions returns a copy of the log in chronological order
func (a *account) Transactions() []Transaction {
	a.mu.Lock()
	defer a.mu.Unlock()
	out := make([]Transaction, len(a.log))
	copy(out, a.log)
	return out
}

// LastTransactions returns a copy of the n most recent transactions, oldest first
func (a *account) LastTransactions(n int) []Transaction {
	a.mu.Lock()
	defer a.mu.Unlock()
	if n < 0 || n > len(a.log) {
		n = len(a.log)
	}
	out := make([]Transaction, n)
	copy(out, a.log[len(a.log)-n:])
	return out
}

func (a *account) TransactionCount() int {
	a.mu.Lock()
	defer a.mu.Unlock()
	return len(a.log)
}

func (a *account) applyDelta(kind TransactionKind, amount decimal.Decimal) (Transaction, error) {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.applyDeltaLocked(kind, amount)
}

// applyDeltaLocked must be called with a.mu held
func (a *account) applyDeltaLocked(kind TransactionKind, amount decimal.Decimal) (Transaction, error) {
	if !amount.IsPositive() {
		return Transaction{}, &ValidationError{Field: "amount", Reason: "must be greater than zero"}
	}

	if kind == Withdrawal {
		available := a.policy.Available(a.balance)
		if amount.GreaterThan(available) {
			return Transaction{}, &InsufficientFundsError{Requested: amount, Available: available}
		}
	}

	tx, err := NewTransaction(a.nextTxID(), kind, amount, a.now())
	if err != nil {
		return Transaction{}, err
	}

	a.balance = a.balance.Add(tx.SignedAmount())
	a.log = append(a.log, tx)
	return tx, nil
}

// SavingsAccount never overdraws and accrues flat-rate interest on demand
type SavingsAccount struct {
	account
	interestRate decimal.Decimal
}

// NewSavingsAccount creates a savings account with a non-negative interest rate
func NewSavingsAccount(number string, owner *Customer, interestRate decimal.Decimal, opts ...AccountOption) (*SavingsAccount, error) {
	if interestRate.IsNegative() {
		return nil, &ValidationError{Field: "interest_rate", Reason: "must not be negative"}
	}

	s := &SavingsAccount{interestRate: interestRate}
	if err := s.init(number, owner, NewNoOverdraftPolicy(), opts); err != nil {
		return nil, err
	}
	return s, nil
}

func (s *SavingsAccount) Kind() AccountKind { return SavingsKind }

func (s *SavingsAccount) InterestRate() decimal.Decimal { return s.interestRate }

// ApplyInterest deposits balance*rate when that amount is positive. It reports
// whether a deposit was made; a zero or negative interest leaves the account untouched.
func (s *SavingsAccount) ApplyInterest() (Transaction, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	interest := s.balance.Mul(s.interestRate)
	if !interest.IsPositive() {
		return Transaction{}, false
	}

	tx, err := s.applyDeltaLocked(Deposit, interest)
	if err != nil {
		return Transaction{}, false
	}
	return tx, true
}

func (s *SavingsAccount) View() AccountView {
	rate := s.interestRate
	return AccountView{
		Number:       s.number,
		Kind:         SavingsKind,
		Balance:      s.Balance(),
		Owner:        s.owner.Display(),
		InterestRate: &rate,
	}
}

// CheckingAccount allows withdrawals down to -OverdraftLimit
type CheckingAccount struct {
	account
	overdraftLimit decimal.Decimal
}

// NewCheckingAccount creates a checking account with a non-negative overdraft limit
func NewCheckingAccount(number string, owner *Customer, overdraftLimit decimal.Decimal, opts ...AccountOption) (*CheckingAccount, error) {
	if overdraftLimit.IsNegative() {
		return nil, &ValidationError{Field: "overdraft_limit", Reason: "must not be negative"}
	}

	c := &CheckingAccount{overdraftLimit: overdraftLimit}
	if err := c.init(number, owner, NewOverdraftPolicy(overdraftLimit), opts); err != nil {
		return nil, err
	}
	return c, nil
}

func (c *CheckingAccount) Kind() AccountKind { return CheckingKind }

func (c *CheckingAccount) OverdraftLimit() decimal.Decimal { return c.overdraftLimit }

func (c *CheckingAccount) View() AccountView {
	limit := c.overdraftLimit
	return AccountView{
		Number:         c.number,
		Kind:           CheckingKind,
		Balance:        c.Balance(),
		Owner:          c.owner.Display(),
		OverdraftLimit: &limit,
	}
}
