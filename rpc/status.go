package rpc

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

func init() {
	rootCmd.AddCommand(&cobra.Command{
		Use:   "status",
		Short: "Get node status",
		Run:   getStatus,
	})
}

func getStatus(cmd *cobra.Command, args []string) {
	client := MustCreateClient()

	status, err := client.Status(context.Background())
	if err != nil {
		fmt.Println("Failed to get node status:", err.Error())
		os.Exit(1)
	}

	fmt.Printf("Node              : %v\n", client.URL())
	fmt.Printf("Chain             : %v\n", status.ChainID)
	fmt.Printf("Version           : %v (%v)\n", status.Version.Version, status.Version.Build)
	fmt.Printf("Latest block      : %v\n", status.SyncInfo.LatestBlockHeight)
	fmt.Printf("Latest block hash : %v\n", status.SyncInfo.LatestBlockHash)
	fmt.Printf("Latest block time : %v\n", status.SyncInfo.LatestBlockTime)
	fmt.Printf("Syncing           : %v\n", status.SyncInfo.Syncing)
}
