package rpc

import (
	"context"
	"fmt"

	"github.com/emirpasic/gods/maps/linkedhashmap"
	"github.com/nearkit/near-cleaner/util"
	"github.com/spf13/cobra"
)

func init() {
	accountCmd := &cobra.Command{
		Use:   "account",
		Short: "Get account info",
		Run:   getAccountInfo,
	}

	accountCmd.PersistentFlags().StringVar(&accountID, "account", "", "Account ID")
	accountCmd.MarkPersistentFlagRequired("account")

	rootCmd.AddCommand(accountCmd)
}

func getAccountInfo(cmd *cobra.Command, args []string) {
	id := mustParseAccountID()
	client := MustCreateClient()

	info, err := client.ViewAccount(context.Background(), id)
	if err != nil {
		fmt.Println("Failed to get account info:", err.Error())
		return
	}

	prettyPrintAccount(info)
}

func displayBalance(amount string) string {
	value, err := util.ParseYocto(amount)
	if err != nil {
		return amount
	}

	return util.DisplayValueWithUnit(value)
}

func prettyPrintAccount(info *AccountView) {
	m := linkedhashmap.New()

	m.Put("balance", displayBalance(info.Amount))
	m.Put("locked", displayBalance(info.Locked))
	m.Put("codeHash", info.CodeHash)
	m.Put("storageUsage", info.StorageUsage)
	m.Put("blockHeight", info.BlockHeight)
	m.Put("blockHash", info.BlockHash)

	content, err := toIndentJSON(m)
	if err != nil {
		fmt.Println(err.Error())
	} else {
		fmt.Println(content)
	}
}
