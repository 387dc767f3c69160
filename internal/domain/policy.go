package domain

import "github.com/shopspring/decimal"

// WithdrawalPolicy decides how much of an account's balance can be withdrawn
type WithdrawalPolicy interface {
	Available(balance decimal.Decimal) decimal.Decimal
}

// NoOverdraftPolicy never lets the balance go below zero
type NoOverdraftPolicy struct{}

// NewNoOverdraftPolicy creates a new NoOverdraftPolicy
func NewNoOverdraftPolicy() *NoOverdraftPolicy {
	return &NoOverdraftPolicy{}
}

// Available implements the WithdrawalPolicy interface
func (p *NoOverdraftPolicy) Available(balance decimal.Decimal) decimal.Decimal {
	if balance.IsNegative() {
		return decimal.Zero
	}
	return balance
}

// OverdraftPolicy lets the balance go down to -Limit
type OverdraftPolicy struct {
	Limit decimal.Decimal
}

// NewOverdraftPolicy creates a new OverdraftPolicy with the given limit
func NewOverdraftPolicy(limit decimal.Decimal) *OverdraftPolicy {
	return &OverdraftPolicy{
		Limit: limit,
	}
}

// Available implements the WithdrawalPolicy interface
func (p *OverdraftPolicy) Available(balance decimal.Decimal) decimal.Decimal {
	return balance.Add(p.Limit)
}
