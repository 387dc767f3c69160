package service

import (
	"fmt"
	"io"
	"time"

	"github.com/labstack/gommon/log"
	"github.com/shopspring/decimal"
	"github.com/tirasundara/retail-ledger/internal/domain"
)

// InterestRun summarises one pass of ApplyInterestToAll
type InterestRun struct {
	AccountsCredited int
	TotalInterest    decimal.Decimal
	Transactions     []domain.Transaction
}

// LedgerService runs account operations addressed by account number and builds
// customer statements for the report layer
type LedgerService struct {
	ledger domain.Ledger
	now    func() time.Time
	logger *log.Logger
}

// NewLedgerService creates a new LedgerService
func NewLedgerService(ledger domain.Ledger, logger *log.Logger) *LedgerService {
	if logger == nil {
		logger = log.New("service")
		logger.SetOutput(io.Discard)
	}

	return &LedgerService{
		ledger: ledger,
		now:    time.Now,
		logger: logger,
	}
}

// WithClock replaces the time source used to stamp statements
func (s *LedgerService) WithClock(now func() time.Time) *LedgerService {
	s.now = now
	return s
}

// Deposit credits the account with the given number
func (s *LedgerService) Deposit(number string, amount decimal.Decimal) (domain.Transaction, error) {
	acc, err := s.ledger.FindAccountByNumber(number)
	if err != nil {
		return domain.Transaction{}, fmt.Errorf("depositing into %s: %w", number, err)
	}

	tx, err := acc.Deposit(amount)
	if err != nil {
		return domain.Transaction{}, fmt.Errorf("depositing into %s: %w", number, err)
	}

	s.logger.Infof("deposit %s into %s, balance %s", amount.StringFixed(2), number, acc.Balance().StringFixed(2))
	return tx, nil
}

// Withdraw debits the account with the given number under that account's policy
func (s *LedgerService) Withdraw(number string, amount decimal.Decimal) (domain.Transaction, error) {
	acc, err := s.ledger.FindAccountByNumber(number)
	if err != nil {
		return domain.Transaction{}, fmt.Errorf("withdrawing from %s: %w", number, err)
	}

	tx, err := acc.Withdraw(amount)
	if err != nil {
		return domain.Transaction{}, fmt.Errorf("withdrawing from %s: %w", number, err)
	}

	s.logger.Infof("withdrawal %s from %s, balance %s", amount.StringFixed(2), number, acc.Balance().StringFixed(2))
	return tx, nil
}

// ApplyInterest credits interest on a savings account. The bool is false when
// the interest came out as zero and nothing was deposited.
func (s *LedgerService) ApplyInterest(number string) (domain.Transaction, bool, error) {
	acc, err := s.ledger.FindAccountByNumber(number)
	if err != nil {
		return domain.Transaction{}, false, fmt.Errorf("applying interest to %s: %w", number, err)
	}

	savings, ok := acc.(*domain.SavingsAccount)
	if !ok {
		return domain.Transaction{}, false, fmt.Errorf("applying interest to %s: %w", number,
			&domain.ValidationError{Field: "account_type", Reason: fmt.Sprintf("%s accounts do not accrue interest", acc.Kind())})
	}

	tx, applied := savings.ApplyInterest()
	if applied {
		s.logger.Infof("interest %s credited to %s", tx.Amount().StringFixed(2), number)
	} else {
		s.logger.Debugf("no interest due on %s", number)
	}
	return tx, applied, nil
}

// ApplyInterestToAll credits interest on every savings account in the ledger
func (s *LedgerService) ApplyInterestToAll() InterestRun {
	run := InterestRun{TotalInterest: decimal.Zero}

	for _, acc := range s.ledger.ListAccounts() {
		switch a := acc.(type) {
		case *domain.SavingsAccount:
			tx, applied := a.ApplyInterest()
			if !applied {
				continue
			}
			run.AccountsCredited++
			run.TotalInterest = run.TotalInterest.Add(tx.Amount())
			run.Transactions = append(run.Transactions, tx)
		case *domain.CheckingAccount:
			// checking accounts carry no interest rate
		}
	}

	s.logger.Infof("interest run credited %d accounts, total %s", run.AccountsCredited, run.TotalInterest.StringFixed(2))
	return run
}

// CustomerStatement builds the statement of one customer, showing the last depth
// transactions of each account
func (s *LedgerService) CustomerStatement(nationalID string, depth int) (domain.CustomerStatement, error) {
	customer, err := s.ledger.FindCustomerByID(nationalID)
	if err != nil {
		return domain.CustomerStatement{}, fmt.Errorf("building statement: %w", err)
	}

	accounts := s.ledger.ListAccountsForCustomer(customer.NationalID())
	return domain.NewCustomerStatement(customer, accounts, depth, s.now()), nil
}

// Statements builds a statement for every customer in registration order
func (s *LedgerService) Statements(depth int) []domain.CustomerStatement {
	customers := s.ledger.ListCustomers()
	out := make([]domain.CustomerStatement, 0, len(customers))

	at := s.now()
	for _, customer := range customers {
		accounts := s.ledger.ListAccountsForCustomer(customer.NationalID())
		out = append(out, domain.NewCustomerStatement(customer, accounts, depth, at))
	}

	return out
}
