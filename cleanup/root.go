package cleanup

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"time"

	"github.com/nearkit/near-cleaner/account"
	"github.com/nearkit/near-cleaner/config"
	"github.com/nearkit/near-cleaner/prompt"
	"github.com/nearkit/near-cleaner/rpc"
	"github.com/nearkit/near-cleaner/util"
	"github.com/pkg/errors"
	"github.com/spf13/cobra"
)

var (
	rootCmd = &cobra.Command{
		Use:   "cleanup",
		Short: "Delete subaccounts with local key files and send their balance to a beneficiary",
		Run:   doCleanup,
	}

	// command flags
	beneficiary  string
	master       string
	pollInterval time.Duration
	pollTimeout  time.Duration
)

func init() {
	rpc.AddURLVar(rootCmd)
	account.AddNetworkVar(rootCmd)
	account.AddCredentialsHomeVar(rootCmd)

	rootCmd.PersistentFlags().StringVar(&beneficiary, "beneficiary", "", "Account that receives the remaining balance, asked if not specified")
	rootCmd.PersistentFlags().StringVar(&master, "master", "", "Only delete this account and its subaccounts, '*' for all accounts, asked if not specified")
	rootCmd.PersistentFlags().DurationVar(&pollInterval, "poll-interval", 0, "Interval to poll transaction status (default $POLL_INTERVAL or 2s)")
	rootCmd.PersistentFlags().DurationVar(&pollTimeout, "poll-timeout", 0, "Time limit for the transaction to be recognized (default $POLL_TIMEOUT or 60s)")
}

// SetParent sets parent command
func SetParent(parent *cobra.Command) {
	parent.AddCommand(rootCmd)
}

func doCleanup(cmd *cobra.Command, args []string) {
	survey := prompt.NewSurvey()

	program, err := mustCreateBuilder(survey).Build()
	util.OsExitIfErr(err, "Failed to setup cleanup")

	store := account.NewStore(account.CredentialsHome(), program.Network)
	fmt.Printf("Key files: %v\n", store.Dir())

	// broadcast is never retried
	client := rpc.CreateClientWithRetry(program.Network, 0)

	interval, timeout := resolvePolling()
	orchestrator := NewOrchestrator(client, survey, store, interval, timeout)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	run := NewRun(*program, store, survey, orchestrator)
	err = run.Execute(ctx)

	fmt.Printf("Cleanup summary:\n%v", run.Summary())

	if errors.Is(err, ErrAborted) {
		fmt.Println("Aborted.")
		return
	}

	util.OsExitIfErr(err, "Cleanup failed")
}

func mustCreateBuilder(prompter Prompter) *Builder {
	builder := NewBuilder(prompter)

	if name := account.NetworkName(); name != "" {
		network, err := account.ParseNetwork(name)
		util.OsExitIfErr(err, "Invalid network")
		builder.WithNetwork(network)
	}

	if beneficiary != "" {
		id, err := account.ParseID(beneficiary)
		util.OsExitIfErr(err, "Invalid beneficiary")
		builder.WithBeneficiary(id)
	}

	if master != "" {
		filter, err := ParseFilter(master)
		util.OsExitIfErr(err, "Invalid master account")
		builder.WithFilter(filter)
	}

	return builder
}

func resolvePolling() (time.Duration, time.Duration) {
	interval, timeout := pollInterval, pollTimeout

	if interval <= 0 {
		interval = config.Get().PollInterval
	}

	if timeout <= 0 {
		timeout = config.Get().PollTimeout
	}

	return interval, timeout
}
