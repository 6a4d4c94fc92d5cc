package rpc

import (
	"context"
	"encoding/base64"
	"fmt"
	"strings"

	"github.com/nearkit/near-cleaner/transaction"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

func init() {
	sendCmd := &cobra.Command{
		Use:   "send-raw",
		Short: "Send signed transaction",
		Run:   sendRaw,
	}

	sendCmd.PersistentFlags().StringVar(&data, "raw", "", "Borsh encoded signed transaction in base64 format")
	sendCmd.MarkPersistentFlagRequired("raw")

	rootCmd.AddCommand(sendCmd)
}

func sendRaw(cmd *cobra.Command, args []string) {
	data = strings.TrimSpace(data)

	rawData, err := base64.StdEncoding.DecodeString(data)
	if err != nil {
		fmt.Println("Failed to decode raw data in base64 format:", err.Error())
		return
	}

	if stx, err := transaction.DecodeSignedTransaction(rawData); err != nil {
		logrus.WithError(err).Warn("Failed to decode signed transaction, send it anyway")
	} else {
		fmt.Printf("Signer: %v, nonce: %v\n", stx.Transaction.SignerID, stx.Transaction.Nonce)
	}

	client := MustCreateClient()

	txHash, err := client.SendRaw(context.Background(), data)
	if err != nil {
		fmt.Println("Failed to send raw transaction:", err.Error())
		return
	}

	fmt.Println("Transaction sent:", txHash)
}
