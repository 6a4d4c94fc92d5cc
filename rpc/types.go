package rpc

import (
	"bytes"
	"encoding/base64"
	"encoding/json"

	"github.com/nearkit/near-cleaner/util"
	"github.com/pkg/errors"
)

// FinalityOptimistic is the finality of query requests.
const FinalityOptimistic = "optimistic"

// Execution status kinds.
const (
	StatusNotStarted       = "NotStarted"
	StatusStarted          = "Started"
	StatusSuccessValue     = "SuccessValue"
	StatusSuccessReceiptID = "SuccessReceiptId"
	StatusFailure          = "Failure"
)

// AccessKeyView is the result of a view_access_key query.
type AccessKeyView struct {
	Nonce       uint64          `json:"nonce"`
	Permission  json.RawMessage `json:"permission"`
	BlockHeight uint64          `json:"block_height"`
	BlockHash   string          `json:"block_hash"`
	Error       string          `json:"error,omitempty"`
}

// DecodeBlockHash decodes the hash of the block the query was executed at.
func (v *AccessKeyView) DecodeBlockHash() ([util.HashLen]byte, error) {
	return util.DecodeHash(v.BlockHash)
}

// AccountView is the result of a view_account query.
type AccountView struct {
	Amount        string `json:"amount"`
	Locked        string `json:"locked"`
	CodeHash      string `json:"code_hash"`
	StorageUsage  uint64 `json:"storage_usage"`
	StoragePaidAt uint64 `json:"storage_paid_at"`
	BlockHeight   uint64 `json:"block_height"`
	BlockHash     string `json:"block_hash"`
	Error         string `json:"error,omitempty"`
}

// ExecutionStatus is either a bare kind, e.g. "Started", or a single key object, e.g. {"SuccessValue": ""}.
type ExecutionStatus struct {
	Kind             string
	SuccessValue     []byte
	SuccessReceiptID string
	Failure          json.RawMessage
}

// UnmarshalJSON implements the json.Unmarshaler interface.
func (s *ExecutionStatus) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)

	if len(data) > 0 && data[0] == '"' {
		*s = ExecutionStatus{}
		return json.Unmarshal(data, &s.Kind)
	}

	var fields map[string]json.RawMessage
	if err := json.Unmarshal(data, &fields); err != nil {
		return errors.Wrap(err, "failed to unmarshal execution status")
	}

	if len(fields) != 1 {
		return errors.Errorf("execution status should have exactly one kind, got %s", data)
	}

	var status ExecutionStatus
	for kind, value := range fields {
		status.Kind = kind

		switch kind {
		case StatusSuccessValue:
			var encoded string
			if err := json.Unmarshal(value, &encoded); err != nil {
				return errors.Wrap(err, "failed to unmarshal success value")
			}

			decoded, err := base64.StdEncoding.DecodeString(encoded)
			if err != nil {
				return errors.Wrap(err, "failed to decode success value")
			}
			status.SuccessValue = decoded
		case StatusSuccessReceiptID:
			if err := json.Unmarshal(value, &status.SuccessReceiptID); err != nil {
				return errors.Wrap(err, "failed to unmarshal receipt id")
			}
		case StatusFailure:
			status.Failure = value
		default:
			return errors.Errorf("unknown execution status %v", kind)
		}
	}

	*s = status

	return nil
}

// MarshalJSON implements the json.Marshaler interface.
func (s ExecutionStatus) MarshalJSON() ([]byte, error) {
	switch s.Kind {
	case StatusSuccessValue:
		return json.Marshal(map[string]string{
			StatusSuccessValue: base64.StdEncoding.EncodeToString(s.SuccessValue),
		})
	case StatusSuccessReceiptID:
		return json.Marshal(map[string]string{StatusSuccessReceiptID: s.SuccessReceiptID})
	case StatusFailure:
		return json.Marshal(map[string]json.RawMessage{StatusFailure: s.Failure})
	default:
		return json.Marshal(s.Kind)
	}
}

// IsFinal reports whether the transaction finished, successfully or not.
func (s *ExecutionStatus) IsFinal() bool {
	return s.IsSuccess() || s.IsFailure()
}

// IsSuccess reports whether the transaction finished with a returned value.
func (s *ExecutionStatus) IsSuccess() bool {
	return s.Kind == StatusSuccessValue
}

// IsFailure reports whether the transaction was executed but failed.
func (s *ExecutionStatus) IsFailure() bool {
	return s.Kind == StatusFailure
}

// ExecutionOutcome is the outcome of a transaction or a receipt.
type ExecutionOutcome struct {
	Logs        []string        `json:"logs"`
	ReceiptIDs  []string        `json:"receipt_ids"`
	GasBurnt    uint64          `json:"gas_burnt"`
	TokensBurnt string          `json:"tokens_burnt"`
	ExecutorID  string          `json:"executor_id"`
	Status      ExecutionStatus `json:"status"`
}

// ExecutionOutcomeWithID is an outcome with the id of the transaction or receipt it belongs to.
type ExecutionOutcomeWithID struct {
	ID        string           `json:"id"`
	BlockHash string           `json:"block_hash"`
	Outcome   ExecutionOutcome `json:"outcome"`
}

// TransactionView is a transaction as returned by the tx method.
type TransactionView struct {
	SignerID   string            `json:"signer_id"`
	PublicKey  string            `json:"public_key"`
	Nonce      uint64            `json:"nonce"`
	ReceiverID string            `json:"receiver_id"`
	Actions    []json.RawMessage `json:"actions"`
	Signature  string            `json:"signature"`
	Hash       string            `json:"hash"`
}

// FinalExecutionOutcome is the result of the tx method.
type FinalExecutionOutcome struct {
	Status             ExecutionStatus          `json:"status"`
	Transaction        TransactionView          `json:"transaction"`
	TransactionOutcome ExecutionOutcomeWithID   `json:"transaction_outcome"`
	ReceiptsOutcome    []ExecutionOutcomeWithID `json:"receipts_outcome"`
}

// StatusView is the result of the status method.
type StatusView struct {
	ChainID  string `json:"chain_id"`
	Version  struct {
		Version string `json:"version"`
		Build   string `json:"build"`
	} `json:"version"`
	SyncInfo struct {
		LatestBlockHash   string `json:"latest_block_hash"`
		LatestBlockHeight uint64 `json:"latest_block_height"`
		LatestBlockTime   string `json:"latest_block_time"`
		Syncing           bool   `json:"syncing"`
	} `json:"sync_info"`
}
