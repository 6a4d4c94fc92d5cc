package account

import (
	"fmt"

	"github.com/AlecAivazis/survey/v2"
	"github.com/nearkit/near-cleaner/util"
	"github.com/spf13/cobra"
)

var assumeYes bool

func init() {
	deleteCmd := &cobra.Command{
		Use:   "delete",
		Short: "Delete a local key file, the on-chain account is not touched",
		Run:   deleteAccount,
	}

	AddAccountVar(deleteCmd)
	deleteCmd.PersistentFlags().BoolVarP(&assumeYes, "yes", "y", false, "Do not ask for confirmation")

	rootCmd.AddCommand(deleteCmd)
}

func deleteAccount(cmd *cobra.Command, args []string) {
	store := MustOpenStore()
	entry := MustParseAccount(store)

	if !assumeYes {
		fmt.Println("WARNING: the private key can not be recovered after deletion!")

		confirmed := false
		err := survey.AskOne(&survey.Confirm{
			Message: fmt.Sprintf("Delete private key of '%v' ?", entry.ID),
		}, &confirmed)
		util.OsExitIfErr(err, "Failed to confirm")

		if !confirmed {
			fmt.Println("Aborted.")
			return
		}
	}

	if err := store.Remove(entry); err != nil {
		util.Failf("Failed to delete key file: %v", err)
		return
	}

	util.Successf("Private key of %v deleted!", entry.ID)
}
