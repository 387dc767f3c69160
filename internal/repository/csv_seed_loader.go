package repository

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/labstack/gommon/log"
	"github.com/shopspring/decimal"
	"github.com/tirasundara/retail-ledger/internal/domain"
	"github.com/tirasundara/retail-ledger/pkg/fileutil"
)

var (
	seedRequiredFields = []string{"name", "surname", "national_id"}
	seedOptionalFields = []string{"account_type", "parameter", "opening_deposit"}
)

// SeedSummary counts what a seed run added to the ledger
type SeedSummary struct {
	Customers int
	Accounts  int
	Deposits  int
	Skipped   int
}

// CSVSeedLoader populates a ledger from a CSV file with the columns
// name,surname,national_id[,account_type,parameter,opening_deposit].
// A row without account_type only registers the customer; a row for a known
// national ID reuses the existing customer.
type CSVSeedLoader struct {
	FilePath              string
	DefaultInterestRate   decimal.Decimal
	DefaultOverdraftLimit decimal.Decimal
	logger                *log.Logger
}

// NewCSVSeedLoader creates a new CSVSeedLoader using the ledger defaults from opts
func NewCSVSeedLoader(fp string, opts Options) *CSVSeedLoader {
	logger := opts.Logger
	if logger == nil {
		logger = log.New("seed")
		logger.SetOutput(io.Discard)
	}

	return &CSVSeedLoader{
		FilePath:              fp,
		DefaultInterestRate:   opts.DefaultInterestRate,
		DefaultOverdraftLimit: opts.DefaultOverdraftLimit,
		logger:                logger,
	}
}

// Load reads the whole file into ledger. Malformed rows are logged and skipped;
// only I/O and header problems abort the load.
func (s *CSVSeedLoader) Load(ledger domain.Ledger) (SeedSummary, error) {
	reader := fileutil.NewCSVReader(s.FilePath)

	header, err := reader.ReadHeader()
	if err != nil {
		return SeedSummary{}, fmt.Errorf("reading seed header: %w", err)
	}

	columnMap, err := createHeaderMap(header, seedRequiredFields, seedOptionalFields...)
	if err != nil {
		return SeedSummary{}, fmt.Errorf("mapping CSV columns: %w", err)
	}

	var summary SeedSummary
	rowProcessorFn := func(line int, row []string) error {
		if err := s.processRow(ledger, row, columnMap, &summary); err != nil {
			s.logger.Warnf("seed line %d skipped: %v", line, err)
			summary.Skipped++
		}
		return nil
	}

	if err := reader.ReadAndProcessByRow(rowProcessorFn); err != nil {
		return summary, fmt.Errorf("processing seed rows: %w", err)
	}

	s.logger.Infof("seeded %d customers, %d accounts, %d deposits (%d rows skipped)",
		summary.Customers, summary.Accounts, summary.Deposits, summary.Skipped)
	return summary, nil
}

func (s *CSVSeedLoader) processRow(ledger domain.Ledger, row []string, columnMap map[string]int, summary *SeedSummary) error {
	nationalID := cell(row, columnMap, "national_id")

	customer, err := ledger.FindCustomerByID(nationalID)
	if errors.Is(err, domain.ErrNotFound) {
		customer, err = ledger.CreateCustomer(cell(row, columnMap, "name"), cell(row, columnMap, "surname"), nationalID)
		if err != nil {
			return fmt.Errorf("creating customer: %w", err)
		}
		summary.Customers++
	}
	if err != nil {
		return err
	}

	accountType := strings.ToLower(cell(row, columnMap, "account_type"))
	if accountType == "" {
		return nil
	}

	// Validate the numbers before opening anything so a bad row leaves no account behind
	parameter, err := parseOptionalDecimal(cell(row, columnMap, "parameter"))
	if err != nil {
		return fmt.Errorf("invalid parameter: %w", err)
	}
	deposit, err := parseOptionalDecimal(cell(row, columnMap, "opening_deposit"))
	if err != nil {
		return fmt.Errorf("invalid opening deposit: %w", err)
	}
	if deposit != nil && deposit.IsNegative() {
		return fmt.Errorf("opening deposit must not be negative")
	}

	var acc domain.Account
	switch domain.AccountKind(accountType) {
	case domain.SavingsKind:
		rate := s.DefaultInterestRate
		if parameter != nil {
			rate = *parameter
		}
		acc, err = ledger.CreateSavingsAccount(customer.NationalID(), rate)
	case domain.CheckingKind:
		limit := s.DefaultOverdraftLimit
		if parameter != nil {
			limit = *parameter
		}
		acc, err = ledger.CreateCheckingAccount(customer.NationalID(), limit)
	default:
		return fmt.Errorf("unknown account type %q", accountType)
	}
	if err != nil {
		return fmt.Errorf("opening %s account: %w", accountType, err)
	}
	summary.Accounts++

	if deposit != nil && !deposit.IsZero() {
		if _, err := acc.Deposit(*deposit); err != nil {
			return fmt.Errorf("opening deposit on %s: %w", acc.Number(), err)
		}
		summary.Deposits++
	}

	return nil
}

func parseOptionalDecimal(value string) (*decimal.Decimal, error) {
	if value == "" {
		return nil, nil
	}
	d, err := decimal.NewFromString(value)
	if err != nil {
		return nil, err
	}
	return &d, nil
}
