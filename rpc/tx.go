package rpc

import (
	"context"
	"fmt"

	"github.com/nearkit/near-cleaner/util"
	"github.com/spf13/cobra"
)

func init() {
	txCmd := &cobra.Command{
		Use:   "tx",
		Short: "Get transaction status",
		Run:   getTxStatus,
	}

	txCmd.PersistentFlags().StringVar(&hash, "hash", "", "Transaction hash in base58 format")
	txCmd.MarkPersistentFlagRequired("hash")
	txCmd.PersistentFlags().StringVar(&accountID, "sender", "", "Account ID of the transaction signer")
	txCmd.MarkPersistentFlagRequired("sender")

	rootCmd.AddCommand(txCmd)
}

func getTxStatus(cmd *cobra.Command, args []string) {
	_, err := util.DecodeHash(hash)
	util.OsExitIfErr(err, "Invalid transaction hash")

	sender := mustParseAccountID()
	client := MustCreateClient()

	outcome, err := client.TxStatus(context.Background(), hash, sender)
	if err != nil {
		if IsTransient(err) {
			fmt.Println("Transaction result is not available yet:", err.Error())
			return
		}
		fmt.Println("Failed to get transaction status:", err.Error())
		return
	}

	content, err := FormatOutcome(outcome)
	util.OsExitIfErr(err, "Failed to format transaction outcome")

	fmt.Println(content)
}
