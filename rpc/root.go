package rpc

import (
	"github.com/nearkit/near-cleaner/account"
	"github.com/nearkit/near-cleaner/util"
	"github.com/spf13/cobra"
)

var (
	accountID string
	publicKey string
	hash      string
	data      string

	rootCmd = util.CreateUsageCommand("rpc", "RPC subcommand")
)

func init() {
	AddURLVar(rootCmd)
	account.AddNetworkVar(rootCmd)
}

// SetParent sets parent command
func SetParent(parent *cobra.Command) {
	parent.AddCommand(rootCmd)
}
