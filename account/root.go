package account

import (
	"github.com/nearkit/near-cleaner/util"
	"github.com/spf13/cobra"
)

var rootCmd = util.CreateUsageCommand("account", "Local key file subcommand")

func init() {
	AddNetworkVar(rootCmd)
	AddCredentialsHomeVar(rootCmd)
}

// SetParent sets parent command
func SetParent(parent *cobra.Command) {
	parent.AddCommand(rootCmd)
}
