package account

import (
	"fmt"

	"github.com/nearkit/near-cleaner/util"
	"github.com/spf13/cobra"
)

func init() {
	showCmd := &cobra.Command{
		Use:   "show",
		Short: "Show the account and public key of a key file",
		Run:   showKey,
	}

	AddAccountVar(showCmd)

	rootCmd.AddCommand(showCmd)
}

func showKey(cmd *cobra.Command, args []string) {
	store := MustOpenStore()
	entry := MustParseAccount(store)

	cred, err := store.Load(entry)
	util.OsExitIfErr(err, "Failed to load key file")

	fmt.Println("Key file:", entry.Path)
	fmt.Println("Account:", cred.AccountID)
	fmt.Println("Public key:", cred.PublicKey)
}
