package rpc

import (
	"context"
	"fmt"

	"github.com/emirpasic/gods/maps/linkedhashmap"
	"github.com/nearkit/near-cleaner/account"
	"github.com/nearkit/near-cleaner/keys"
	"github.com/nearkit/near-cleaner/util"
	"github.com/spf13/cobra"
)

func init() {
	accessKeyCmd := &cobra.Command{
		Use:   "access-key",
		Short: "Get access key info, the nonce and permission",
		Run:   getAccessKey,
	}

	accessKeyCmd.PersistentFlags().StringVar(&accountID, "account", "", "Account ID")
	accessKeyCmd.MarkPersistentFlagRequired("account")
	accessKeyCmd.PersistentFlags().StringVar(&publicKey, "public-key", "", "Public key, loaded from the local key file if not specified")
	account.AddCredentialsHomeVar(accessKeyCmd)

	rootCmd.AddCommand(accessKeyCmd)
}

func getAccessKey(cmd *cobra.Command, args []string) {
	network := account.MustParseNetwork()
	id := mustParseAccountID()
	pk := mustResolvePublicKey(network, id)

	client := CreateClient(network)

	view, err := client.ViewAccessKey(context.Background(), id, pk)
	if err != nil {
		if IsUnknownAccessKey(err) {
			fmt.Printf("Access key %v not found on account %v\n", pk, id)
			return
		}
		fmt.Println("Failed to get access key:", err.Error())
		return
	}

	prettyPrintAccessKey(pk, view)
}

func mustResolvePublicKey(network account.Network, id account.ID) keys.PublicKey {
	if publicKey != "" {
		pk, err := keys.ParsePublicKey(publicKey)
		util.OsExitIfErr(err, "Invalid public key")
		return pk
	}

	store := account.NewStore(account.CredentialsHome(), network)

	entry, err := store.Find(id)
	util.OsExitIfErr(err, "Failed to find key file, specify --public-key instead")

	cred, err := store.Load(entry)
	util.OsExitIfErr(err, "Failed to load key file")

	return cred.PublicKey
}

func prettyPrintAccessKey(pk keys.PublicKey, view *AccessKeyView) {
	m := linkedhashmap.New()

	m.Put("publicKey", pk.String())
	m.Put("nonce", view.Nonce)
	m.Put("permission", view.Permission)
	m.Put("blockHeight", view.BlockHeight)
	m.Put("blockHash", view.BlockHash)

	content, err := toIndentJSON(m)
	if err != nil {
		fmt.Println(err.Error())
	} else {
		fmt.Println(content)
	}
}
