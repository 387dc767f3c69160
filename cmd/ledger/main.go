package main

import (
	"flag"
	"fmt"
	"os"
	"strings"

	"github.com/labstack/gommon/log"
	"github.com/shopspring/decimal"
	"github.com/tirasundara/retail-ledger/internal/domain"
	"github.com/tirasundara/retail-ledger/internal/report"
	"github.com/tirasundara/retail-ledger/internal/repository"
	"github.com/tirasundara/retail-ledger/internal/service"
)

func main() {
	// Command-line flags
	var (
		seedFile         string
		customerID       string
		applyInterest    bool
		outputFormat     string
		outputDir        string
		prettyPrint      bool
		statementDepth   int
		defaultRate      string
		defaultOverdraft string
		logLevel         string
	)

	flag.StringVar(&seedFile, "seed-file", "", "Path to a seed CSV (name,surname,national_id,account_type,parameter,opening_deposit); built-in sample data when empty")
	flag.StringVar(&customerID, "customer", "", "National ID of the customer to report on; all customers when empty")
	flag.BoolVar(&applyInterest, "apply-interest", false, "Apply interest to every savings account before reporting")
	flag.StringVar(&outputFormat, "format", "text", "Output format: json or text")
	flag.StringVar(&outputDir, "output", "", "Directory to write report files into (if empty, writes to stdout)")
	flag.BoolVar(&prettyPrint, "pretty", true, "Pretty print JSON output")
	flag.IntVar(&statementDepth, "last", domain.DefaultStatementDepth, "Number of most recent transactions shown per account (-1 for all)")
	flag.StringVar(&defaultRate, "default-rate", "0.01", "Interest rate for savings accounts seeded without one")
	flag.StringVar(&defaultOverdraft, "default-overdraft", "0", "Overdraft limit for checking accounts seeded without one")
	flag.StringVar(&logLevel, "log-level", "info", "Log level: debug, info, warn, error or off")

	flag.Parse()

	logger := log.New("ledger")
	logger.SetOutput(os.Stderr)
	logger.SetHeader("${time_rfc3339} ${level} ${prefix}")
	lvl, err := parseLogLevel(logLevel)
	if err != nil {
		exitWithError(err.Error())
	}
	logger.SetLevel(lvl)

	opts := repository.DefaultOptions()
	opts.Logger = logger
	if opts.DefaultInterestRate, err = decimal.NewFromString(defaultRate); err != nil {
		exitWithError(fmt.Sprintf("Invalid default rate: %v", err))
	}
	if opts.DefaultOverdraftLimit, err = decimal.NewFromString(defaultOverdraft); err != nil {
		exitWithError(fmt.Sprintf("Invalid default overdraft: %v", err))
	}

	ledger := repository.NewMemoryLedger(opts)

	// Load data
	if seedFile != "" {
		if _, err := repository.NewCSVSeedLoader(seedFile, opts).Load(ledger); err != nil {
			exitWithError(fmt.Sprintf("Seeding failed: %v", err))
		}
	} else {
		if err := repository.SeedSampleData(ledger); err != nil {
			exitWithError(fmt.Sprintf("Seeding sample data failed: %v", err))
		}
	}

	ledgerService := service.NewLedgerService(ledger, logger)

	if applyInterest {
		ledgerService.ApplyInterestToAll()
	}

	// Build statements
	var statements []domain.CustomerStatement
	if customerID != "" {
		stmt, err := ledgerService.CustomerStatement(customerID, statementDepth)
		if err != nil {
			exitWithError(err.Error())
		}
		statements = append(statements, stmt)
	} else {
		statements = ledgerService.Statements(statementDepth)
	}

	// Format the output
	var formatter report.OutputFormatter
	switch outputFormat {
	case "json":
		formatter = report.NewJSONFormatter(prettyPrint)
	case "text":
		if outputDir != "" {
			formatter = report.NewTextFormatter(nil)
		} else {
			formatter = report.NewTextFormatter(os.Stdout)
		}
	default:
		exitWithError(fmt.Sprintf("Unsupported output format: %s", outputFormat))
		return
	}

	if outputDir != "" {
		// One file per customer
		writer := report.NewWriter(outputDir, formatter)
		for _, stmt := range statements {
			path, err := writer.Write(report.StatementFileName(stmt), []domain.CustomerStatement{stmt})
			if err != nil {
				exitWithError(fmt.Sprintf("Failed to write report: %v", err))
			}
			logger.Infof("report written to %s", path)
		}
		return
	}

	output, err := formatter.Format(statements)
	if err != nil {
		exitWithError(fmt.Sprintf("Failed to format output: %v", err))
	}
	fmt.Println(string(output))
}

func parseLogLevel(level string) (log.Lvl, error) {
	switch strings.ToLower(level) {
	case "debug":
		return log.DEBUG, nil
	case "info":
		return log.INFO, nil
	case "warn":
		return log.WARN, nil
	case "error":
		return log.ERROR, nil
	case "off":
		return log.OFF, nil
	}
	return 0, fmt.Errorf("unknown log level %q", level)
}

func exitWithError(message string) {
	fmt.Fprintf(os.Stderr, "Error: %s\n", message)
	fmt.Fprintf(os.Stderr, "Run with -h flag for usage information.\n")
	os.Exit(1)
}
