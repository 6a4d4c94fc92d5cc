package rpc

import (
	"context"
	"encoding/json"
	"strconv"
	"sync/atomic"
	"time"

	"github.com/go-resty/resty/v2"
	"github.com/nearkit/near-cleaner/account"
	"github.com/nearkit/near-cleaner/keys"
	"github.com/nearkit/near-cleaner/transaction"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
)

const jsonrpcVersion = "2.0"

// ClientOption is the option of Client.
type ClientOption struct {
	RetryCount     int
	RetryInterval  time.Duration
	RequestTimeout time.Duration
}

// Client is a JSON-RPC client of a NEAR node.
type Client struct {
	url    string
	client *resty.Client
	nextID uint64
}

type request struct {
	JSONRPC string      `json:"jsonrpc"`
	ID      string      `json:"id"`
	Method  string      `json:"method"`
	Params  interface{} `json:"params"`
}

type response struct {
	JSONRPC string          `json:"jsonrpc"`
	ID      string          `json:"id"`
	Result  json.RawMessage `json:"result"`
	Error   *Error          `json:"error"`
}

// NewClient creates a client of the node at url.
// Only transport failures are retried, RPC errors are returned to the caller.
func NewClient(url string, option ClientOption) *Client {
	client := resty.New().
		SetHostURL(url).
		SetHeader("Content-Type", "application/json").
		SetRetryCount(option.RetryCount)

	if option.RetryInterval > 0 {
		client.SetRetryWaitTime(option.RetryInterval)
	}

	if option.RequestTimeout > 0 {
		client.SetTimeout(option.RequestTimeout)
	}

	return &Client{url: url, client: client}
}

// URL returns the node URL.
func (c *Client) URL() string {
	return c.url
}

func (c *Client) call(ctx context.Context, method string, params, result interface{}) error {
	req := request{
		JSONRPC: jsonrpcVersion,
		ID:      strconv.FormatUint(atomic.AddUint64(&c.nextID, 1), 10),
		Method:  method,
		Params:  params,
	}

	logger := logrus.WithFields(logrus.Fields{
		"method": method,
		"id":     req.ID,
	})
	logger.WithField("params", params).Debug("RPC request")

	resp, err := c.client.R().SetContext(ctx).SetBody(req).Post("")
	if err != nil {
		return errors.Wrapf(err, "failed to call %v", method)
	}

	logger.WithFields(logrus.Fields{
		"status": resp.StatusCode(),
		"body":   string(resp.Body()),
	}).Debug("RPC response")

	var body response
	if err = json.Unmarshal(resp.Body(), &body); err != nil {
		return errors.Wrapf(err, "failed to decode %v response, HTTP status %v", method, resp.Status())
	}

	if body.Error != nil {
		return body.Error
	}

	if result == nil {
		return nil
	}

	if err = json.Unmarshal(body.Result, result); err != nil {
		return errors.Wrapf(err, "failed to unmarshal %v result", method)
	}

	return nil
}

// ViewAccessKey returns the access key pk of account id at the latest block.
func (c *Client) ViewAccessKey(ctx context.Context, id account.ID, pk keys.PublicKey) (*AccessKeyView, error) {
	params := map[string]string{
		"request_type": "view_access_key",
		"finality":     FinalityOptimistic,
		"account_id":   id.String(),
		"public_key":   pk.String(),
	}

	var view AccessKeyView
	if err := c.call(ctx, "query", params, &view); err != nil {
		return nil, err
	}

	if view.Error != "" {
		return nil, newQueryResultError(view.Error)
	}

	return &view, nil
}

// ViewAccount returns the state of account id at the latest block.
func (c *Client) ViewAccount(ctx context.Context, id account.ID) (*AccountView, error) {
	params := map[string]string{
		"request_type": "view_account",
		"finality":     FinalityOptimistic,
		"account_id":   id.String(),
	}

	var view AccountView
	if err := c.call(ctx, "query", params, &view); err != nil {
		return nil, err
	}

	if view.Error != "" {
		return nil, newQueryResultError(view.Error)
	}

	return &view, nil
}

// BroadcastTxAsync submits stx without waiting for it to be included, and returns the transaction hash.
func (c *Client) BroadcastTxAsync(ctx context.Context, stx *transaction.SignedTransaction) (string, error) {
	encoded, err := stx.Base64()
	if err != nil {
		return "", err
	}

	return c.SendRaw(ctx, encoded)
}

// SendRaw submits a base64 encoded signed transaction without waiting for it to be included.
func (c *Client) SendRaw(ctx context.Context, encoded string) (string, error) {
	var hash string
	if err := c.call(ctx, "broadcast_tx_async", []string{encoded}, &hash); err != nil {
		return "", err
	}

	return hash, nil
}

// TxStatus returns the final outcome of transaction hash sent by sender.
// An UNKNOWN_TRANSACTION or TIMEOUT_ERROR error is returned if the node has no result yet.
func (c *Client) TxStatus(ctx context.Context, hash string, sender account.ID) (*FinalExecutionOutcome, error) {
	var outcome FinalExecutionOutcome
	if err := c.call(ctx, "tx", []string{hash, sender.String()}, &outcome); err != nil {
		return nil, err
	}

	return &outcome, nil
}

// Status returns the node status.
func (c *Client) Status(ctx context.Context) (*StatusView, error) {
	var status StatusView
	if err := c.call(ctx, "status", []interface{}{}, &status); err != nil {
		return nil, err
	}

	return &status, nil
}
