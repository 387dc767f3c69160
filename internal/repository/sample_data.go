package repository

import (
	"fmt"

	"github.com/shopspring/decimal"
	"github.com/tirasundara/retail-ledger/internal/domain"
)

// SampleCustomerID is the national ID of the customer created by SeedSampleData
const SampleCustomerID = "12345678"

// SeedSampleData registers the demo customer with a savings account holding 1000
// and a checking account (500 overdraft) that saw a 500 deposit and a 200 withdrawal
func SeedSampleData(ledger domain.Ledger) error {
	customer, err := ledger.CreateCustomer("Rocio", "Jacob", SampleCustomerID)
	if err != nil {
		return fmt.Errorf("creating sample customer: %w", err)
	}

	savings, err := ledger.CreateSavingsAccount(customer.NationalID(), decimal.NewFromFloat(0.02))
	if err != nil {
		return fmt.Errorf("opening sample savings account: %w", err)
	}
	if _, err := savings.Deposit(decimal.NewFromInt(1000)); err != nil {
		return fmt.Errorf("funding sample savings account: %w", err)
	}

	checking, err := ledger.CreateCheckingAccount(customer.NationalID(), decimal.NewFromInt(500))
	if err != nil {
		return fmt.Errorf("opening sample checking account: %w", err)
	}
	if _, err := checking.Deposit(decimal.NewFromInt(500)); err != nil {
		return fmt.Errorf("funding sample checking account: %w", err)
	}
	if _, err := checking.Withdraw(decimal.NewFromInt(200)); err != nil {
		return fmt.Errorf("withdrawing from sample checking account: %w", err)
	}

	return nil
}
