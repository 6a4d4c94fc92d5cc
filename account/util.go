package account

import (
	"fmt"
	"os"
	"strconv"

	"github.com/nearkit/near-cleaner/config"
	"github.com/nearkit/near-cleaner/util"
	"github.com/spf13/cobra"
)

var (
	account         string
	networkName     string
	credentialsHome string
)

// AddNetworkVar adds network variable for specified command.
func AddNetworkVar(cmd *cobra.Command) {
	cmd.PersistentFlags().StringVar(&networkName, "network", "", "NEAR network, mainnet or testnet (default $NEAR_ENV)")
}

// AddCredentialsHomeVar adds credentials home variable for specified command.
func AddCredentialsHomeVar(cmd *cobra.Command) {
	cmd.PersistentFlags().StringVar(&credentialsHome, "credentials-home", "", "Directory of key files (default $NEAR_CREDENTIALS_HOME or ~/.near-credentials)")
}

// AddAccountVar adds account variable for specified command.
func AddAccountVar(cmd *cobra.Command) {
	cmd.PersistentFlags().StringVar(&account, "account", "", "Account ID or key file index number")
	cmd.MarkPersistentFlagRequired("account")
}

// NetworkName returns the network from command line, or from environment if not specified.
func NetworkName() string {
	if networkName != "" {
		return networkName
	}
	return config.Get().Network
}

// CredentialsHome returns the key files home directory from command line, or from environment if not specified.
func CredentialsHome() string {
	if credentialsHome != "" {
		return credentialsHome
	}
	return config.Get().CredentialsHome
}

// MustParseNetwork parses network from input parameter.
func MustParseNetwork() Network {
	name := NetworkName()
	if name == "" {
		util.OsExit("Network not specified, use --network or NEAR_ENV")
	}

	network, err := ParseNetwork(name)
	util.OsExitIfErr(err, "Failed to parse network")

	return network
}

// MustOpenStore opens the key file store of the network from input parameter.
func MustOpenStore() *Store {
	return NewStore(CredentialsHome(), MustParseNetwork())
}

// MustParseAccount parse account from input parameter.
func MustParseAccount(store *Store) Entry {
	accountIndex, err := strconv.Atoi(account)
	if err != nil {
		id, err := ParseID(account)
		util.OsExitIfErr(err, "Invalid account")

		entry, err := store.Find(id)
		util.OsExitIfErr(err, "Failed to find key file")

		return entry
	}

	entries, err := store.List()
	util.OsExitIfErr(err, "Failed to list key files")

	if len(entries) == 0 {
		fmt.Println("No account found!")
		os.Exit(1)
	}

	if accountIndex < 0 || accountIndex >= len(entries) {
		fmt.Println("Invalid account index, it should be between 0 and", len(entries)-1)
		os.Exit(1)
	}

	fmt.Println("Account:", entries[accountIndex].ID)

	return entries[accountIndex]
}
