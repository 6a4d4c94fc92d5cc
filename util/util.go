package util

import (
	"fmt"
	"math/big"
	"os"

	"github.com/fatih/color"
	"github.com/pkg/errors"
	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"
)

var (
	// SuccessPrefix is printed in front of operator messages about completed actions.
	SuccessPrefix = color.New(color.FgGreen).Sprint("✔")
	// ErrorPrefix is printed in front of operator messages about failed or skipped actions.
	ErrorPrefix = color.New(color.FgRed).Sprint("✘")
)

// CreateUsageCommand creates a command to display help.
func CreateUsageCommand(use, short string) *cobra.Command {
	return &cobra.Command{
		Use:   use,
		Short: short,
		Run: func(cmd *cobra.Command, args []string) {
			cmd.Help()
		},
	}
}

// ParseYocto parses an amount in yoctoNEAR as returned by the RPC.
func ParseYocto(amount string) (*big.Int, error) {
	value, ok := new(big.Int).SetString(amount, 10)
	if !ok {
		return nil, errors.Errorf("invalid yoctoNEAR amount %q", amount)
	}

	return value, nil
}

// DisplayValueWithUnit returns the display format for given yoctoNEAR value.
func DisplayValueWithUnit(yocto *big.Int) string {
	if big.NewInt(1_000_000).Cmp(yocto) > 0 {
		return fmt.Sprintf("%v yoctoNEAR", yocto)
	}

	near := decimal.NewFromBigInt(yocto, -24)
	if big.NewInt(1_000_000_000_000_000_000).Cmp(yocto) > 0 {
		return fmt.Sprintf("%v NEAR", near)
	}

	return fmt.Sprintf("%v NEAR", near.Truncate(6))
}

// OsExitIfErr prints error msg and exit
func OsExitIfErr(err error, format string, a ...interface{}) {
	if err != nil {
		fmt.Printf(format, a...)
		fmt.Printf("--- error: %v", err.Error())
		fmt.Println()
		os.Exit(1)
	}
}

// OsExit prints msg and exit
func OsExit(format string, a ...interface{}) {
	fmt.Printf(format, a...)
	fmt.Println()
	os.Exit(1)
}

// Successf prints an operator message prefixed with SuccessPrefix.
func Successf(format string, a ...interface{}) {
	fmt.Printf("%v %v\n", SuccessPrefix, fmt.Sprintf(format, a...))
}

// Failf prints an operator message prefixed with ErrorPrefix.
func Failf(format string, a ...interface{}) {
	fmt.Printf("%v %v\n", ErrorPrefix, fmt.Sprintf(format, a...))
}
