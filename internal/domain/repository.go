package domain

import "github.com/shopspring/decimal"

// CustomerRepository defines the interface for registering and looking up customers
type CustomerRepository interface {
	// CreateCustomer registers a new customer; the national ID must not be taken
	CreateCustomer(name, surname, nationalID string) (*Customer, error)

	// FindCustomerByID returns the customer with the given national ID
	FindCustomerByID(nationalID string) (*Customer, error)

	// ListCustomers returns all customers in registration order
	ListCustomers() []*Customer

	// ChangeNationalID re-keys a registered customer
	ChangeNationalID(current, next string) error
}

// AccountRepository defines the interface for opening and looking up accounts
type AccountRepository interface {
	// CreateSavingsAccount opens a savings account for an existing customer
	CreateSavingsAccount(nationalID string, interestRate decimal.Decimal) (*SavingsAccount, error)

	// CreateCheckingAccount opens a checking account for an existing customer
	CreateCheckingAccount(nationalID string, overdraftLimit decimal.Decimal) (*CheckingAccount, error)

	// FindAccountByNumber returns the account with the given number
	FindAccountByNumber(number string) (Account, error)

	// ListAccounts returns all accounts in creation order
	ListAccounts() []Account

	// ListAccountsForCustomer returns the accounts owned by a customer, in creation order
	ListAccountsForCustomer(nationalID string) []Account
}

// Ledger is the in-process store of customers and their accounts
type Ledger interface {
	CustomerRepository
	AccountRepository
}
