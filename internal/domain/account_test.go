package domain_test

import (
	"errors"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/tirasundara/retail-ledger/internal/domain"
)

func newTestCustomer(t *testing.T) *domain.Customer {
	t.Helper()
	customer, err := domain.NewCustomer("Rocio", "Jacob", "12345678")
	if err != nil {
		t.Fatalf("Failed to create customer: %v", err)
	}
	return customer
}

// fixedClock returns a clock that advances one second per call, starting at 2025-01-15 10:00
func fixedClock() func() time.Time {
	current := time.Date(2025, 1, 15, 10, 0, 0, 0, time.UTC)
	return func() time.Time {
		current = current.Add(time.Second)
		return current
	}
}

func sequentialIDs() func() string {
	n := 0
	return func() string {
		n++
		return fmt.Sprintf("TXN-%d", n)
	}
}

func dec(v string) decimal.Decimal {
	return decimal.RequireFromString(v)
}

func TestSavingsAccount_DepositAndWithdraw(t *testing.T) {
	acc, err := domain.NewSavingsAccount("SAV00001", newTestCustomer(t), dec("0.02"),
		domain.WithClock(fixedClock()), domain.WithTransactionIDs(sequentialIDs()))
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}

	if !acc.Balance().IsZero() {
		t.Errorf("Expected opening balance 0, got %s", acc.Balance())
	}
	if acc.Kind() != domain.SavingsKind {
		t.Errorf("Expected kind savings, got %s", acc.Kind())
	}

	tx, err := acc.Deposit(dec("1000"))
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if tx.Kind() != domain.Deposit || !tx.Amount().Equal(dec("1000")) || tx.ID() != "TXN-1" {
		t.Errorf("Unexpected deposit transaction: %s %s %s", tx.ID(), tx.Kind(), tx.Amount())
	}
	if !acc.Balance().Equal(dec("1000.00")) {
		t.Errorf("Expected balance 1000.00, got %s", acc.Balance())
	}
	if acc.TransactionCount() != 1 {
		t.Errorf("Expected 1 transaction, got %d", acc.TransactionCount())
	}

	tx, err = acc.Withdraw(dec("300"))
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if tx.Kind() != domain.Withdrawal {
		t.Errorf("Expected Withdrawal, got %s", tx.Kind())
	}
	if !acc.Balance().Equal(dec("700")) {
		t.Errorf("Expected balance 700, got %s", acc.Balance())
	}

	txns := acc.Transactions()
	if len(txns) != 2 {
		t.Fatalf("Expected 2 transactions, got %d", len(txns))
	}
	if !txns[0].Timestamp().Before(txns[1].Timestamp()) {
		t.Errorf("Expected transactions in chronological order")
	}
}

func TestSavingsAccount_WithdrawBeyondBalance(t *testing.T) {
	acc, _ := domain.NewSavingsAccount("SAV00001", newTestCustomer(t), dec("0.05"))
	if _, err := acc.Deposit(dec("100")); err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}

	_, err := acc.Withdraw(dec("200"))
	if !errors.Is(err, domain.ErrInsufficientFunds) {
		t.Fatalf("Expected insufficient funds, got %v", err)
	}
	// InsufficientFundsError is a validation failure too
	if !errors.Is(err, domain.ErrValidation) {
		t.Errorf("Expected insufficient funds to match ErrValidation")
	}

	var fundsErr *domain.InsufficientFundsError
	if !errors.As(err, &fundsErr) {
		t.Fatalf("Expected *InsufficientFundsError, got %T", err)
	}
	if !fundsErr.Available.Equal(dec("100")) || !fundsErr.Requested.Equal(dec("200")) {
		t.Errorf("Unexpected error details: %+v", fundsErr)
	}

	if !acc.Balance().Equal(dec("100")) {
		t.Errorf("Expected balance to stay 100, got %s", acc.Balance())
	}
	if acc.TransactionCount() != 1 {
		t.Errorf("Expected log length to stay 1, got %d", acc.TransactionCount())
	}

	// Withdrawing exactly the balance empties the account
	if _, err := acc.Withdraw(dec("100")); err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if !acc.Balance().IsZero() {
		t.Errorf("Expected balance 0, got %s", acc.Balance())
	}
}

func TestAccount_NonPositiveAmounts(t *testing.T) {
	customer := newTestCustomer(t)
	savings, _ := domain.NewSavingsAccount("SAV00001", customer, dec("0.01"))
	checking, _ := domain.NewCheckingAccount("CHK00001", customer, dec("500"))

	for _, acc := range []domain.Account{savings, checking} {
		if _, err := acc.Deposit(dec("50")); err != nil {
			t.Fatalf("Unexpected error: %v", err)
		}

		for _, amount := range []string{"0", "-0.01", "-100"} {
			if _, err := acc.Deposit(dec(amount)); !errors.Is(err, domain.ErrValidation) {
				t.Errorf("%s: expected validation error depositing %s, got %v", acc.Kind(), amount, err)
			}
			if _, err := acc.Withdraw(dec(amount)); !errors.Is(err, domain.ErrValidation) {
				t.Errorf("%s: expected validation error withdrawing %s, got %v", acc.Kind(), amount, err)
			}
		}

		if !acc.Balance().Equal(dec("50")) {
			t.Errorf("%s: expected balance 50, got %s", acc.Kind(), acc.Balance())
		}
		if acc.TransactionCount() != 1 {
			t.Errorf("%s: expected 1 transaction, got %d", acc.Kind(), acc.TransactionCount())
		}
	}
}

func TestSavingsAccount_BalanceNeverNegative(t *testing.T) {
	acc, _ := domain.NewSavingsAccount("SAV00001", newTestCustomer(t), dec("0.01"))

	ops := []struct {
		deposit bool
		amount  string
	}{
		{true, "100"}, {false, "30"}, {false, "80"}, {true, "5"}, {false, "75"}, {false, "0.01"}, {true, "20"}, {false, "20.01"},
	}

	successes := 0
	for _, op := range ops {
		var err error
		if op.deposit {
			_, err = acc.Deposit(dec(op.amount))
		} else {
			_, err = acc.Withdraw(dec(op.amount))
		}
		if err == nil {
			successes++
		}
		if acc.Balance().IsNegative() {
			t.Fatalf("Balance went negative: %s", acc.Balance())
		}
	}

	if acc.TransactionCount() != successes {
		t.Errorf("Expected %d transactions, got %d", successes, acc.TransactionCount())
	}
	if !acc.Balance().Equal(dec("20")) {
		t.Errorf("Expected balance 20, got %s", acc.Balance())
	}
}

func TestCheckingAccount_Overdraft(t *testing.T) {
	acc, err := domain.NewCheckingAccount("CHK00001", newTestCustomer(t), dec("500"))
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if acc.Kind() != domain.CheckingKind {
		t.Errorf("Expected kind checking, got %s", acc.Kind())
	}

	if _, err := acc.Deposit(dec("500")); err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}

	// 700 <= 500 + 500
	if _, err := acc.Withdraw(dec("700")); err != nil {
		t.Fatalf("Expected overdraft withdrawal to succeed, got %v", err)
	}
	if !acc.Balance().Equal(dec("-200.00")) {
		t.Errorf("Expected balance -200.00, got %s", acc.Balance())
	}

	// available is now -200 + 500 = 300
	_, err = acc.Withdraw(dec("400"))
	if !errors.Is(err, domain.ErrInsufficientFunds) {
		t.Fatalf("Expected insufficient funds, got %v", err)
	}
	if !acc.Balance().Equal(dec("-200")) {
		t.Errorf("Expected balance to stay -200, got %s", acc.Balance())
	}
	if acc.TransactionCount() != 2 {
		t.Errorf("Expected 2 transactions, got %d", acc.TransactionCount())
	}

	// Withdrawing exactly the remaining ceiling reaches -limit
	if _, err := acc.Withdraw(dec("300")); err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if !acc.Balance().Equal(dec("-500")) {
		t.Errorf("Expected balance -500, got %s", acc.Balance())
	}
	if _, err := acc.Withdraw(dec("0.01")); !errors.Is(err, domain.ErrInsufficientFunds) {
		t.Errorf("Expected insufficient funds at the limit, got %v", err)
	}
}

func TestCheckingAccount_WithdrawCeiling(t *testing.T) {
	tests := []struct {
		limit   string
		balance string
		amount  string
		ok      bool
	}{
		{"0", "100", "100", true},
		{"0", "100", "100.01", false},
		{"1000", "500", "1000", true},
		{"1000", "500", "1500", true},
		{"1000", "500", "1500.01", false},
		{"250.50", "0", "250.50", true},
		{"250.50", "0", "250.51", false},
	}

	for _, tt := range tests {
		t.Run(fmt.Sprintf("limit=%s balance=%s amount=%s", tt.limit, tt.balance, tt.amount), func(t *testing.T) {
			acc, _ := domain.NewCheckingAccount("CHK00001", newTestCustomer(t), dec(tt.limit))
			if b := dec(tt.balance); b.IsPositive() {
				if _, err := acc.Deposit(b); err != nil {
					t.Fatalf("Unexpected error: %v", err)
				}
			}

			before := acc.Balance()
			_, err := acc.Withdraw(dec(tt.amount))
			if (err == nil) != tt.ok {
				t.Fatalf("Expected ok=%v, got err=%v", tt.ok, err)
			}

			if tt.ok {
				want := before.Sub(dec(tt.amount))
				if !acc.Balance().Equal(want) {
					t.Errorf("Expected balance %s, got %s", want, acc.Balance())
				}
			} else if !acc.Balance().Equal(before) {
				t.Errorf("Expected balance to stay %s, got %s", before, acc.Balance())
			}

			if acc.Balance().LessThan(acc.OverdraftLimit().Neg()) {
				t.Errorf("Balance %s below -limit %s", acc.Balance(), acc.OverdraftLimit())
			}
		})
	}
}

func TestSavingsAccount_ApplyInterest(t *testing.T) {
	acc, _ := domain.NewSavingsAccount("SAV00001", newTestCustomer(t), dec("0.05"))
	if _, err := acc.Deposit(dec("1000")); err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}

	tx, applied := acc.ApplyInterest()
	if !applied {
		t.Fatalf("Expected interest to be applied")
	}
	if tx.Kind() != domain.Deposit || !tx.Amount().Equal(dec("50")) {
		t.Errorf("Expected Deposit of 50, got %s %s", tx.Kind(), tx.Amount())
	}
	if !acc.Balance().Equal(dec("1050.00")) {
		t.Errorf("Expected balance 1050.00, got %s", acc.Balance())
	}
	if acc.TransactionCount() != 2 {
		t.Errorf("Expected 2 transactions, got %d", acc.TransactionCount())
	}
}

func TestSavingsAccount_ApplyInterestNoOp(t *testing.T) {
	customer := newTestCustomer(t)

	// zero rate
	zeroRate, _ := domain.NewSavingsAccount("SAV00001", customer, decimal.Zero)
	if _, err := zeroRate.Deposit(dec("1000")); err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if _, applied := zeroRate.ApplyInterest(); applied {
		t.Errorf("Expected no interest with a zero rate")
	}
	if !zeroRate.Balance().Equal(dec("1000")) || zeroRate.TransactionCount() != 1 {
		t.Errorf("Expected account untouched, got balance %s and %d transactions",
			zeroRate.Balance(), zeroRate.TransactionCount())
	}

	// zero balance
	empty, _ := domain.NewSavingsAccount("SAV00002", customer, dec("0.05"))
	if _, applied := empty.ApplyInterest(); applied {
		t.Errorf("Expected no interest on an empty account")
	}
	if !empty.Balance().IsZero() || empty.TransactionCount() != 0 {
		t.Errorf("Expected account untouched, got balance %s and %d transactions",
			empty.Balance(), empty.TransactionCount())
	}
}

func TestAccount_TransactionsSnapshot(t *testing.T) {
	acc, _ := domain.NewCheckingAccount("CHK00001", newTestCustomer(t), dec("100"))
	acc.Deposit(dec("10"))
	acc.Withdraw(dec("50"))

	first := acc.Transactions()
	second := acc.Transactions()
	if len(first) != len(second) {
		t.Fatalf("Expected equal snapshots, got %d and %d", len(first), len(second))
	}
	for i := range first {
		if first[i] != second[i] {
			t.Errorf("Snapshot mismatch at %d", i)
		}
	}

	// Mutating a snapshot affects neither the other snapshot nor the account
	first[0] = first[1]
	if second[0].Kind() != domain.Deposit {
		t.Errorf("Expected second snapshot to be unaffected")
	}
	if acc.TransactionCount() != 2 || acc.Transactions()[0].Kind() != domain.Deposit {
		t.Errorf("Expected live log to be unaffected")
	}

	// Later mutations do not leak into an older snapshot
	acc.Deposit(dec("1"))
	if len(second) != 2 {
		t.Errorf("Expected old snapshot to keep 2 entries, got %d", len(second))
	}
}

func TestAccount_LastTransactions(t *testing.T) {
	acc, _ := domain.NewSavingsAccount("SAV00001", newTestCustomer(t), decimal.Zero,
		domain.WithTransactionIDs(sequentialIDs()))
	for i := 1; i <= 12; i++ {
		acc.Deposit(decimal.NewFromInt(int64(i)))
	}

	last := acc.LastTransactions(10)
	if len(last) != 10 {
		t.Fatalf("Expected 10 transactions, got %d", len(last))
	}
	if last[0].ID() != "TXN-3" || last[9].ID() != "TXN-12" {
		t.Errorf("Expected TXN-3..TXN-12, got %s..%s", last[0].ID(), last[9].ID())
	}

	if all := acc.LastTransactions(-1); len(all) != 12 {
		t.Errorf("Expected the whole log for a negative depth, got %d", len(all))
	}
}

func TestNewAccount_Invalid(t *testing.T) {
	customer := newTestCustomer(t)

	if _, err := domain.NewSavingsAccount("SAV00001", customer, dec("-0.01")); !errors.Is(err, domain.ErrValidation) {
		t.Errorf("Expected validation error for negative rate, got %v", err)
	}
	if _, err := domain.NewCheckingAccount("CHK00001", customer, dec("-1")); !errors.Is(err, domain.ErrValidation) {
		t.Errorf("Expected validation error for negative overdraft, got %v", err)
	}
	if _, err := domain.NewSavingsAccount("SHORT", customer, decimal.Zero); !errors.Is(err, domain.ErrValidation) {
		t.Errorf("Expected validation error for a short account number, got %v", err)
	}
	if _, err := domain.NewCheckingAccount("CHK00001", nil, decimal.Zero); !errors.Is(err, domain.ErrValidation) {
		t.Errorf("Expected validation error for a nil owner, got %v", err)
	}
}

func TestAccount_View(t *testing.T) {
	customer := newTestCustomer(t)
	savings, _ := domain.NewSavingsAccount("SAV00001", customer, dec("0.02"))
	checking, _ := domain.NewCheckingAccount("CHK00001", customer, dec("500"))
	checking.Withdraw(dec("20"))

	sv := savings.View()
	if sv.InterestRate == nil || !sv.InterestRate.Equal(dec("0.02")) || sv.OverdraftLimit != nil {
		t.Errorf("Unexpected savings view %+v", sv)
	}
	if sv.Owner.NationalID != "12345678" {
		t.Errorf("Expected owner 12345678, got %s", sv.Owner.NationalID)
	}

	cv := checking.View()
	if cv.OverdraftLimit == nil || !cv.OverdraftLimit.Equal(dec("500")) || cv.InterestRate != nil {
		t.Errorf("Unexpected checking view %+v", cv)
	}
	if !cv.Balance.Equal(dec("-20")) {
		t.Errorf("Expected balance -20, got %s", cv.Balance)
	}
}

func TestCheckingAccount_ConcurrentWithdrawals(t *testing.T) {
	acc, _ := domain.NewCheckingAccount("CHK00001", newTestCustomer(t), dec("100"))
	if _, err := acc.Deposit(dec("100")); err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}

	var wg sync.WaitGroup
	var mu sync.Mutex
	succeeded := 0
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if _, err := acc.Withdraw(dec("10")); err == nil {
				mu.Lock()
				succeeded++
				mu.Unlock()
			}
		}()
	}
	wg.Wait()

	// 100 balance + 100 overdraft allows exactly 20 withdrawals of 10
	if succeeded != 20 {
		t.Errorf("Expected 20 successful withdrawals, got %d", succeeded)
	}
	if !acc.Balance().Equal(dec("-100")) {
		t.Errorf("Expected balance -100, got %s", acc.Balance())
	}
	if acc.TransactionCount() != 21 {
		t.Errorf("Expected 21 transactions, got %d", acc.TransactionCount())
	}
}
