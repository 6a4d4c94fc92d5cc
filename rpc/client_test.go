package rpc

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/nearkit/near-cleaner/account"
	"github.com/nearkit/near-cleaner/keys"
	"github.com/nearkit/near-cleaner/transaction"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type capturedRequest struct {
	JSONRPC string          `json:"jsonrpc"`
	Method  string          `json:"method"`
	Params  json.RawMessage `json:"params"`
}

// newTestServer replies with body and records the last request.
func newTestServer(t *testing.T, status int, body string) (*Client, *capturedRequest) {
	var captured capturedRequest

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		content, err := io.ReadAll(r.Body)
		require.NoError(t, err)
		require.NoError(t, json.Unmarshal(content, &captured))

		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		io.WriteString(w, body)
	}))
	t.Cleanup(server.Close)

	return NewClient(server.URL, ClientOption{}), &captured
}

func mustGenerateKey(t *testing.T) keys.PrivateKey {
	sk, err := keys.GeneratePrivateKey()
	require.NoError(t, err)
	return sk
}

func TestViewAccessKey(t *testing.T) {
	client, captured := newTestServer(t, http.StatusOK, `{"jsonrpc":"2.0","id":"1","result":{
		"nonce":85,"permission":"FullAccess","block_height":19884918,
		"block_hash":"GGJQ8yjmo7aEoj8ZpAhGehnq9BSWFx4xswHYzDwwAP2n"}}`)

	sk := mustGenerateKey(t)
	view, err := client.ViewAccessKey(context.Background(), "bob.alice.testnet", sk.PublicKey())
	require.NoError(t, err)

	assert.Equal(t, "2.0", captured.JSONRPC)
	assert.Equal(t, "query", captured.Method)

	var params map[string]string
	require.NoError(t, json.Unmarshal(captured.Params, &params))
	assert.Equal(t, map[string]string{
		"request_type": "view_access_key",
		"finality":     "optimistic",
		"account_id":   "bob.alice.testnet",
		"public_key":   sk.PublicKey().String(),
	}, params)

	assert.Equal(t, uint64(85), view.Nonce)
	assert.Equal(t, uint64(19884918), view.BlockHeight)

	blockHash, err := view.DecodeBlockHash()
	require.NoError(t, err)
	assert.NotEqual(t, [32]byte{}, blockHash)
}

func TestViewAccessKeyUnknown(t *testing.T) {
	client, _ := newTestServer(t, http.StatusOK, `{"jsonrpc":"2.0","id":"1","error":{
		"name":"HANDLER_ERROR",
		"cause":{"name":"UNKNOWN_ACCESS_KEY","info":{"public_key":"ed25519:xx","block_height":1,"block_hash":"h"}},
		"code":-32000,"message":"Server error","data":"Access key for public key ed25519:xx does not exist"}}`)

	_, err := client.ViewAccessKey(context.Background(), "carol.testnet", mustGenerateKey(t).PublicKey())
	require.Error(t, err)
	assert.True(t, IsUnknownAccessKey(err))
	assert.False(t, IsTransient(err))
	assert.Contains(t, err.Error(), "UNKNOWN_ACCESS_KEY")

	var rpcErr *Error
	require.True(t, errors.As(err, &rpcErr))
	assert.Equal(t, -32000, rpcErr.Code)
}

func TestViewAccessKeyLegacyError(t *testing.T) {
	client, _ := newTestServer(t, http.StatusOK, `{"jsonrpc":"2.0","id":"1","result":{
		"error":"access key ed25519:xx does not exist while viewing","logs":[],
		"block_height":1,"block_hash":"GGJQ8yjmo7aEoj8ZpAhGehnq9BSWFx4xswHYzDwwAP2n"}}`)

	_, err := client.ViewAccessKey(context.Background(), "carol.testnet", mustGenerateKey(t).PublicKey())
	assert.True(t, IsUnknownAccessKey(err))
}

func TestErrorOnHTTPFailureStatus(t *testing.T) {
	client, _ := newTestServer(t, http.StatusRequestTimeout, `{"jsonrpc":"2.0","id":"1","error":{
		"name":"HANDLER_ERROR","cause":{"name":"TIMEOUT_ERROR"},"code":-32000,"message":"Server error"}}`)

	_, err := client.TxStatus(context.Background(), "hash", "carol.testnet")
	assert.True(t, IsTransient(err))
}

func TestUndecodableResponse(t *testing.T) {
	client, _ := newTestServer(t, http.StatusBadGateway, `<html>bad gateway</html>`)

	_, err := client.Status(context.Background())
	require.Error(t, err)
	assert.False(t, IsTransient(err))
	assert.False(t, IsUnknownAccessKey(err))
}

func TestBroadcastTxAsync(t *testing.T) {
	client, captured := newTestServer(t, http.StatusOK, `{"jsonrpc":"2.0","id":"1","result":"6zgh2u9DqHHiXzdy9ouTP7oGky2T4nugqzqt9wJZwNFm"}`)

	sk := mustGenerateKey(t)
	tx := transaction.NewDeleteAccount("carol.testnet", sk.PublicKey(), 2, [32]byte{1}, "alice.testnet")
	stx, _, err := tx.Sign(sk)
	require.NoError(t, err)

	hash, err := client.BroadcastTxAsync(context.Background(), stx)
	require.NoError(t, err)
	assert.Equal(t, "6zgh2u9DqHHiXzdy9ouTP7oGky2T4nugqzqt9wJZwNFm", hash)

	assert.Equal(t, "broadcast_tx_async", captured.Method)

	var params []string
	require.NoError(t, json.Unmarshal(captured.Params, &params))
	require.Len(t, params, 1)

	encoded, err := stx.Encode()
	require.NoError(t, err)
	assert.Equal(t, base64.StdEncoding.EncodeToString(encoded), params[0])
}

func TestTxStatus(t *testing.T) {
	client, captured := newTestServer(t, http.StatusOK, `{"jsonrpc":"2.0","id":"1","result":{
		"status":{"SuccessValue":""},
		"transaction":{"signer_id":"carol.testnet","receiver_id":"carol.testnet","nonce":3,"hash":"h1","actions":[{"DeleteAccount":{"beneficiary_id":"alice.testnet"}}]},
		"transaction_outcome":{"id":"h1","outcome":{"logs":[],"receipt_ids":["r1"],"gas_burnt":100,"tokens_burnt":"10","executor_id":"carol.testnet","status":{"SuccessReceiptId":"r1"}}},
		"receipts_outcome":[{"id":"r1","outcome":{"logs":["bye"],"receipt_ids":[],"gas_burnt":200,"tokens_burnt":"20","executor_id":"carol.testnet","status":{"SuccessValue":""}}}]}}`)

	outcome, err := client.TxStatus(context.Background(), "h1", account.MustParseID("carol.testnet"))
	require.NoError(t, err)

	var params []string
	require.NoError(t, json.Unmarshal(captured.Params, &params))
	assert.Equal(t, []string{"h1", "carol.testnet"}, params)

	assert.True(t, outcome.Status.IsFinal())
	assert.True(t, outcome.Status.IsSuccess())
	assert.Empty(t, outcome.Status.SuccessValue)
	assert.Equal(t, StatusSuccessReceiptID, outcome.TransactionOutcome.Outcome.Status.Kind)
	assert.Equal(t, "r1", outcome.TransactionOutcome.Outcome.Status.SuccessReceiptID)

	content, err := FormatOutcome(outcome)
	require.NoError(t, err)
	assert.Contains(t, content, `"gasBurnt": 300`)
	assert.Contains(t, content, `"bye"`)
	assert.Less(t, strings.Index(content, `"hash"`), strings.Index(content, `"status"`))
}

func TestStatus(t *testing.T) {
	client, captured := newTestServer(t, http.StatusOK, `{"jsonrpc":"2.0","id":"1","result":{
		"chain_id":"testnet","version":{"version":"1.35.0","build":"abc"},
		"sync_info":{"latest_block_hash":"h","latest_block_height":42,"latest_block_time":"t","syncing":false}}}`)

	status, err := client.Status(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "status", captured.Method)
	assert.Equal(t, "testnet", status.ChainID)
	assert.Equal(t, uint64(42), status.SyncInfo.LatestBlockHeight)
}

func TestViewAccount(t *testing.T) {
	client, _ := newTestServer(t, http.StatusOK, `{"jsonrpc":"2.0","id":"1","result":{
		"amount":"1000000000000000000000000","locked":"0","code_hash":"11111111111111111111111111111111",
		"storage_usage":182,"block_height":1,"block_hash":"h"}}`)

	view, err := client.ViewAccount(context.Background(), "alice.testnet")
	require.NoError(t, err)
	assert.Equal(t, "1 NEAR", displayBalance(view.Amount))
	assert.Equal(t, "0 yoctoNEAR", displayBalance(view.Locked))
}
