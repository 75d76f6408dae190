// Command cli is the operator console: it authenticates a teller against the
// employee table and runs transfers and statements straight through the
// services.
package main

import (
	"bufio"
	"context"
	"fmt"
	"log/slog"
	"os"
	"strconv"
	"strings"

	"github.com/fatih/color"
	"github.com/shopspring/decimal"
	"golang.org/x/term"

	"github.com/mhgaber/branchbank/infra/initializer"
	"github.com/mhgaber/branchbank/pkg/config"
)

func main() {
	if err := run(os.Args[1:]); err != nil {
		color.Red("error: %v", err)
		os.Exit(1)
	}
}

func usage() {
	fmt.Println("Usage: cli <command> [arguments]")
	fmt.Println("Commands:")
	fmt.Println("  transfer <from_account_id> <to_account_id> <amount>")
	fmt.Println("  statement <account_id>")
}

func run(args []string) error {
	if len(args) < 1 {
		usage()
		return nil
	}

	cfg, err := config.Load(slog.Default())
	if err != nil {
		return fmt.Errorf("load configuration: %w", err)
	}
	deps, err := initializer.InitializeDependencies(cfg)
	if err != nil {
		return fmt.Errorf("initialize dependencies: %w", err)
	}

	ctx := context.Background()
	switch args[0] {
	case "transfer":
		if len(args) != 4 {
			usage()
			return fmt.Errorf("transfer needs 3 arguments")
		}
		fromID, err := strconv.ParseInt(args[1], 10, 64)
		if err != nil {
			return fmt.Errorf("invalid source account ID: %w", err)
		}
		toID, err := strconv.ParseInt(args[2], 10, 64)
		if err != nil {
			return fmt.Errorf("invalid destination account ID: %w", err)
		}
		amount, err := decimal.NewFromString(args[3])
		if err != nil {
			return fmt.Errorf("invalid amount: %w", err)
		}

		employeeID, err := authenticate(ctx, deps)
		if err != nil {
			return err
		}

		txID, err := deps.Ledger.Transfer(ctx, fromID, toID, amount, "employee-"+strconv.FormatInt(employeeID, 10))
		if err != nil {
			return err
		}
		color.Green("Transfer completed, transaction #%d", txID)
		return nil

	case "statement":
		if len(args) != 2 {
			usage()
			return fmt.Errorf("statement needs 1 argument")
		}
		accountID, err := strconv.ParseInt(args[1], 10, 64)
		if err != nil {
			return fmt.Errorf("invalid account ID: %w", err)
		}

		lines, err := deps.Ledger.Statement(ctx, accountID)
		if err != nil {
			return err
		}
		if len(lines) == 0 {
			fmt.Println("No transactions for this account.")
			return nil
		}

		fmt.Printf("%-10s %-25s %-10s %12s %14s\n", "TXN", "TIMESTAMP", "TYPE", "AMOUNT", "BALANCE")
		for _, line := range lines {
			amount := color.GreenString("%12s", line.Amount.StringFixed(2))
			if line.Amount.IsNegative() {
				amount = color.RedString("%12s", line.Amount.StringFixed(2))
			}
			fmt.Printf("%-10d %-25s %-10s %s %14s\n",
				line.TransactionID,
				line.Timestamp.Format("2006-01-02 15:04:05 MST"),
				line.Type,
				amount,
				line.RunningBalance.StringFixed(2),
			)
		}
		return nil

	default:
		usage()
		return fmt.Errorf("unknown command %q", args[0])
	}
}

// authenticate prompts for teller credentials and verifies them before any
// money moves.
func authenticate(ctx context.Context, deps *initializer.Deps) (int64, error) {
	fmt.Print("Employee ID: ")
	reader := bufio.NewReader(os.Stdin)
	idLine, err := reader.ReadString('\n')
	if err != nil {
		return 0, fmt.Errorf("read employee ID: %w", err)
	}
	employeeID, err := strconv.ParseInt(strings.TrimSpace(idLine), 10, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid employee ID: %w", err)
	}

	fmt.Print("Password: ")
	password, err := term.ReadPassword(int(os.Stdin.Fd()))
	fmt.Println()
	if err != nil {
		return 0, fmt.Errorf("read password: %w", err)
	}

	if _, err := deps.Auth.Login(ctx, employeeID, string(password)); err != nil {
		return 0, err
	}
	return employeeID, nil
}
