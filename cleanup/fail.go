package cleanup

import (
	"encoding/json"
	"fmt"

	"github.com/nearkit/near-cleaner/account"
)

// ======= Fail Message =======
func failLoadKey(id account.ID, err error) string {
	return fmt.Sprintf("Account %v failed, Failed type: %v, Error Info: %v", id, "load key file", err)
}

func failQueryKey(id account.ID, err error) string {
	return fmt.Sprintf("Account %v failed, Failed type: %v, Error Info: %v", id, "query access key", err)
}

func failGetTxStatus(id account.ID, hash string, err error) string {
	return fmt.Sprintf("Account %v failed, Failed type: %v, Tx: %v, Error Info: %v", id, "get tx status", hash, err)
}

func failExecuteTx(id account.ID, hash string, failure json.RawMessage) string {
	return fmt.Sprintf("Account %v failed, Failed type: %v, Tx: %v, Error Info: %s", id, "tx execute failed", hash, failure)
}

func failTimeout(id account.ID, hash string) string {
	return fmt.Sprintf("Account %v failed, Failed type: %v, Tx: %v", id, "tx status timeout", hash)
}

func failFatal(id account.ID, err error) string {
	return fmt.Sprintf("Account %v failed, Failed type: %v, Error Info: %v", id, "fatal", err)
}
