package rpc

import (
	"time"

	"github.com/nearkit/near-cleaner/account"
	"github.com/nearkit/near-cleaner/config"
	"github.com/nearkit/near-cleaner/util"
	"github.com/spf13/cobra"
)

var url string

// AddURLVar adds URL variable for specified command
func AddURLVar(cmd *cobra.Command) {
	cmd.PersistentFlags().StringVar(&url, "url", "", "NEAR RPC URL (default $NEAR_RPC_URL or the public endpoint of the network)")
}

// ResolveURL returns the URL from command line, environment or the public endpoint of network in order.
func ResolveURL(network account.Network) string {
	if url != "" {
		return url
	}

	if cfgURL := config.Get().RPCURL; cfgURL != "" {
		return cfgURL
	}

	return network.RPCURL()
}

// CreateClient creates a client to the node at the resolved URL of network.
func CreateClient(network account.Network) *Client {
	return CreateClientWithRetry(network, 3)
}

// CreateClientWithRetry creates a client that retries transport failures retryCount times.
func CreateClientWithRetry(network account.Network, retryCount int) *Client {
	return NewClient(ResolveURL(network), ClientOption{
		RetryCount:     retryCount,
		RetryInterval:  time.Second,
		RequestTimeout: config.Get().RequestTimeout,
	})
}

// MustCreateClient creates a client to the node of the network from input parameter.
func MustCreateClient() *Client {
	return CreateClient(account.MustParseNetwork())
}

func mustParseAccountID() account.ID {
	id, err := account.ParseID(accountID)
	util.OsExitIfErr(err, "Invalid account")
	return id
}
