package account

import (
	"fmt"

	"github.com/nearkit/near-cleaner/util"
	"github.com/spf13/cobra"
)

func init() {
	rootCmd.AddCommand(&cobra.Command{
		Use:   "list",
		Short: "List key files in ASC order",
		Run:   listAccounts,
	})
}

func listAccounts(cmd *cobra.Command, args []string) {
	store := MustOpenStore()

	entries, err := store.List()
	util.OsExitIfErr(err, "Failed to list key files")

	if len(entries) == 0 {
		fmt.Println("No account found in", store.Dir())
		return
	}

	for i, entry := range entries {
		fmt.Printf("[%v]\t%v\n", i, entry.ID)
	}

	fmt.Printf("Totally %v accounts found.\n", len(entries))
}
