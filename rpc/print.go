package rpc

import (
	"bytes"
	"encoding/json"

	"github.com/emirpasic/gods/maps/linkedhashmap"
	"github.com/pkg/errors"
)

// FormatOutcome formats the final execution outcome as indented JSON with stable key order.
func FormatOutcome(outcome *FinalExecutionOutcome) (string, error) {
	m := linkedhashmap.New()

	m.Put("hash", outcome.Transaction.Hash)
	m.Put("signer", outcome.Transaction.SignerID)
	m.Put("receiver", outcome.Transaction.ReceiverID)
	m.Put("nonce", outcome.Transaction.Nonce)
	m.Put("status", outcome.Status)

	var gasBurnt uint64
	logs := []string{}
	receipts := []string{}

	gasBurnt += outcome.TransactionOutcome.Outcome.GasBurnt
	logs = append(logs, outcome.TransactionOutcome.Outcome.Logs...)

	for _, receipt := range outcome.ReceiptsOutcome {
		gasBurnt += receipt.Outcome.GasBurnt
		logs = append(logs, receipt.Outcome.Logs...)
		receipts = append(receipts, receipt.ID)
	}

	m.Put("gasBurnt", gasBurnt)
	m.Put("tokensBurnt", outcome.TransactionOutcome.Outcome.TokensBurnt)
	m.Put("receipts", receipts)
	m.Put("logs", logs)

	return toIndentJSON(m)
}

func toIndentJSON(m *linkedhashmap.Map) (string, error) {
	content, err := m.ToJSON()
	if err != nil {
		return "", errors.Wrap(err, "failed to marshal data to JSON")
	}

	var buf bytes.Buffer
	if err = json.Indent(&buf, content, "", "  "); err != nil {
		return "", errors.Wrap(err, "failed to indent JSON")
	}

	return buf.String(), nil
}
