package repository

import (
	"io"
	"strings"
	"sync"

	backoff "github.com/cenkalti/backoff/v4"
	"github.com/labstack/gommon/log"
	"github.com/shopspring/decimal"
	"github.com/tirasundara/retail-ledger/internal/domain"
	"github.com/tirasundara/retail-ledger/internal/idgen"
)

// Options configures a MemoryLedger
type Options struct {
	DefaultInterestRate   decimal.Decimal
	DefaultOverdraftLimit decimal.Decimal

	// MaxNumberAttempts bounds how many account numbers are drawn before giving up on a collision
	MaxNumberAttempts uint64
	AccountNumbers    idgen.Generator

	// AccountOptions are passed to every account the ledger opens
	AccountOptions []domain.AccountOption
	Logger         *log.Logger
}

// DefaultOptions returns 1% savings interest, no overdraft and 8 character UUID account numbers
func DefaultOptions() Options {
	return Options{
		DefaultInterestRate:   decimal.NewFromFloat(0.01),
		DefaultOverdraftLimit: decimal.Zero,
		MaxNumberAttempts:     5,
		AccountNumbers:        idgen.NewUUID(domain.AccountNumberLength),
	}
}

// MemoryLedger implements the domain.Ledger interface in process memory.
// Customers and accounts keep insertion order. Customer keys are owned by the
// directory; mu covers the account slices and number index.
type MemoryLedger struct {
	customers        *domain.CustomerDirectory
	mu               sync.RWMutex
	accounts         []domain.Account
	accountsByNumber map[string]domain.Account
	opts             Options
	logger           *log.Logger
}

// NewMemoryLedger creates an empty ledger
func NewMemoryLedger(opts Options) *MemoryLedger {
	defaults := DefaultOptions()
	if opts.AccountNumbers == nil {
		opts.AccountNumbers = defaults.AccountNumbers
	}
	if opts.MaxNumberAttempts == 0 {
		opts.MaxNumberAttempts = defaults.MaxNumberAttempts
	}

	logger := opts.Logger
	if logger == nil {
		logger = log.New("ledger")
		logger.SetOutput(io.Discard)
	}

	return &MemoryLedger{
		customers:        domain.NewCustomerDirectory(),
		accountsByNumber: make(map[string]domain.Account),
		opts:             opts,
		logger:           logger,
	}
}

// CreateCustomer implements the domain.CustomerRepository interface
func (l *MemoryLedger) CreateCustomer(name, surname, nationalID string) (*domain.Customer, error) {
	customer, err := l.customers.Register(name, surname, nationalID)
	if err != nil {
		return nil, err
	}

	l.logger.Debugf("registered customer %s", customer.NationalID())
	return customer, nil
}

// FindCustomerByID implements the domain.CustomerRepository interface
func (l *MemoryLedger) FindCustomerByID(nationalID string) (*domain.Customer, error) {
	return l.customers.Find(nationalID)
}

// ListCustomers implements the domain.CustomerRepository interface
func (l *MemoryLedger) ListCustomers() []*domain.Customer {
	return l.customers.List()
}

// ChangeNationalID implements the domain.CustomerRepository interface
func (l *MemoryLedger) ChangeNationalID(current, next string) error {
	if err := l.customers.ChangeNationalID(current, next); err != nil {
		return err
	}

	l.logger.Infof("customer %s re-keyed to %s", strings.TrimSpace(current), strings.TrimSpace(next))
	return nil
}

// CreateSavingsAccount implements the domain.AccountRepository interface
func (l *MemoryLedger) CreateSavingsAccount(nationalID string, interestRate decimal.Decimal) (*domain.SavingsAccount, error) {
	acc, err := l.openAccount(nationalID, func(number string, owner *domain.Customer) (domain.Account, error) {
		return domain.NewSavingsAccount(number, owner, interestRate, l.opts.AccountOptions...)
	})
	if err != nil {
		return nil, err
	}
	return acc.(*domain.SavingsAccount), nil
}

// CreateDefaultSavingsAccount opens a savings account at the ledger's default rate
func (l *MemoryLedger) CreateDefaultSavingsAccount(nationalID string) (*domain.SavingsAccount, error) {
	return l.CreateSavingsAccount(nationalID, l.opts.DefaultInterestRate)
}

// CreateCheckingAccount implements the domain.AccountRepository interface
func (l *MemoryLedger) CreateCheckingAccount(nationalID string, overdraftLimit decimal.Decimal) (*domain.CheckingAccount, error) {
	acc, err := l.openAccount(nationalID, func(number string, owner *domain.Customer) (domain.Account, error) {
		return domain.NewCheckingAccount(number, owner, overdraftLimit, l.opts.AccountOptions...)
	})
	if err != nil {
		return nil, err
	}
	return acc.(*domain.CheckingAccount), nil
}

// CreateDefaultCheckingAccount opens a checking account with the ledger's default overdraft limit
func (l *MemoryLedger) CreateDefaultCheckingAccount(nationalID string) (*domain.CheckingAccount, error) {
	return l.CreateCheckingAccount(nationalID, l.opts.DefaultOverdraftLimit)
}

// FindAccountByNumber implements the domain.AccountRepository interface
func (l *MemoryLedger) FindAccountByNumber(number string) (domain.Account, error) {
	l.mu.RLock()
	defer l.mu.RUnlock()

	acc, ok := l.accountsByNumber[strings.TrimSpace(number)]
	if !ok {
		return nil, &domain.NotFoundError{Entity: "account", Key: number}
	}
	return acc, nil
}

// ListAccounts implements the domain.AccountRepository interface
func (l *MemoryLedger) ListAccounts() []domain.Account {
	l.mu.RLock()
	defer l.mu.RUnlock()

	out := make([]domain.Account, len(l.accounts))
	copy(out, l.accounts)
	return out
}

// ListAccountsForCustomer implements the domain.AccountRepository interface
func (l *MemoryLedger) ListAccountsForCustomer(nationalID string) []domain.Account {
	l.mu.RLock()
	defer l.mu.RUnlock()

	nationalID = strings.TrimSpace(nationalID)
	out := make([]domain.Account, 0)
	for _, acc := range l.accounts {
		if acc.Owner().NationalID() == nationalID {
			out = append(out, acc)
		}
	}
	return out
}

// openAccount resolves the owner, draws an unused account number and stores the
// account built by build, all under the write lock
func (l *MemoryLedger) openAccount(nationalID string, build func(number string, owner *domain.Customer) (domain.Account, error)) (domain.Account, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	owner, err := l.customers.Find(nationalID)
	if err != nil {
		return nil, err
	}

	var acc domain.Account
	operation := func() error {
		number := l.opts.AccountNumbers.Next()
		if _, taken := l.accountsByNumber[number]; taken {
			l.logger.Warnf("account number %s already in use, drawing another", number)
			return &domain.DuplicateKeyError{Entity: "account", Key: number}
		}

		built, err := build(number, owner)
		if err != nil {
			return backoff.Permanent(err)
		}
		acc = built
		return nil
	}

	if err := backoff.Retry(operation, numberBackoff(l.opts.MaxNumberAttempts)); err != nil {
		return nil, err
	}

	l.accounts = append(l.accounts, acc)
	l.accountsByNumber[acc.Number()] = acc
	l.logger.Debugf("opened %s account %s for customer %s", acc.Kind(), acc.Number(), owner.NationalID())
	return acc, nil
}
