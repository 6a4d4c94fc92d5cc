package cleanup

import (
	"bytes"
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/nearkit/near-cleaner/account"
	"github.com/nearkit/near-cleaner/keys"
	"github.com/nearkit/near-cleaner/rpc"
	"github.com/nearkit/near-cleaner/transaction"
	"github.com/nearkit/near-cleaner/util"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const beneficiaryID account.ID = "alice.testnet"

type orchestratorTest struct {
	store *account.Store
	entry account.Entry
	cred  *account.Credential
	chain *fakeChain
	gate  *fakeGate
	clock *fakeClock
	out   bytes.Buffer
	o     *Orchestrator
}

func newOrchestratorTest(t *testing.T, answers map[string]bool, statuses ...statusReply) *orchestratorTest {
	ot := &orchestratorTest{
		store: newTestStore(t),
		gate:  newFakeGate(t, answers),
		clock: newFakeClock(),
	}

	ot.entry, ot.cred = writeKeyFile(t, ot.store, "bob.alice.testnet")

	ot.chain = &fakeChain{
		view: &rpc.AccessKeyView{
			Nonce:     41,
			BlockHash: util.EncodeHash([32]byte{1, 2, 3}),
		},
		statuses: statuses,
	}

	ot.o = NewOrchestrator(ot.chain, ot.gate, ot.store, 2*time.Second, 60*time.Second,
		WithClock(ot.clock.Now, ot.clock.Sleep),
		WithOutput(&ot.out),
	)

	return ot
}

func (ot *orchestratorTest) delete() (Result, error) {
	return ot.o.Delete(context.Background(), Request{Beneficiary: beneficiaryID, Entry: ot.entry})
}

func TestDeleteRemoved(t *testing.T) {
	ot := newOrchestratorTest(t, nil, successReply(""))

	result, err := ot.delete()
	require.NoError(t, err)
	assert.Equal(t, Removed, result.Outcome)
	assert.True(t, result.KeyRemoved)
	assert.False(t, fileExists(ot.entry.Path))
	assert.Contains(t, ot.out.String(), "Account successfully removed")

	require.Len(t, ot.chain.sent, 1)
	stx := ot.chain.sent[0]
	assert.Equal(t, uint64(42), stx.Transaction.Nonce)
	assert.Equal(t, "bob.alice.testnet", stx.Transaction.SignerID)
	assert.Equal(t, "bob.alice.testnet", stx.Transaction.ReceiverID)
	assert.Equal(t, [32]byte{1, 2, 3}, stx.Transaction.BlockHash)
	require.Len(t, stx.Transaction.Actions, 1)
	assert.Equal(t, transaction.ActionDeleteAccount, stx.Transaction.Actions[0].Enum)
	assert.Equal(t, "alice.testnet", stx.Transaction.Actions[0].DeleteAccount.BeneficiaryID)

	hash, err := stx.Transaction.Hash()
	require.NoError(t, err)
	assert.Equal(t, hash.String(), result.TxHash)
	assert.True(t, keys.Verify(hash[:], ot.cred.PublicKey, stx.Signature.Data))

	assert.Empty(t, ot.gate.asked)
	assert.Empty(t, ot.clock.sleeps)
}

func TestDeleteRefusedOnChain(t *testing.T) {
	ot := newOrchestratorTest(t, nil, successReply("false"))

	result, err := ot.delete()
	require.NoError(t, err)
	assert.Equal(t, RefusedOnChain, result.Outcome)
	assert.False(t, result.KeyRemoved)
	assert.True(t, fileExists(ot.entry.Path))
	assert.Contains(t, ot.out.String(), "Account wasn't removed")
}

func TestDeleteUnknownAccessKey(t *testing.T) {
	for _, approve := range []bool{true, false} {
		ot := newOrchestratorTest(t, map[string]bool{unknownAccessKeyPrompt: approve})
		ot.chain.viewErr = &rpc.Error{Name: "HANDLER_ERROR", Cause: rpc.ErrorCause{Name: rpc.CauseUnknownAccessKey}}

		result, err := ot.delete()
		require.NoError(t, err)
		assert.Equal(t, LocalKeyMissingRemotely, result.Outcome)
		assert.Equal(t, approve, result.KeyRemoved)
		assert.Equal(t, !approve, fileExists(ot.entry.Path))
		assert.Equal(t, 1, ot.gate.count(unknownAccessKeyPrompt))
		assert.Empty(t, ot.chain.sent)
		assert.Contains(t, ot.out.String(), "UNKNOWN_ACCESS_KEY")
	}
}

func TestDeleteQueryError(t *testing.T) {
	ot := newOrchestratorTest(t, map[string]bool{unknownPrompt: true})
	ot.chain.viewErr = errors.New("connection refused")

	result, err := ot.delete()
	require.NoError(t, err)
	assert.Equal(t, Failed, result.Outcome)
	assert.Contains(t, result.Detail, "query access key")
	assert.True(t, fileExists(ot.entry.Path))
	assert.Empty(t, ot.chain.sent)
	assert.Contains(t, ot.out.String(), "connection refused")

	ot = newOrchestratorTest(t, map[string]bool{unknownPrompt: false})
	ot.chain.viewErr = errors.New("connection refused")

	result, err = ot.delete()
	assert.True(t, errors.Is(err, ErrAborted))
	assert.Equal(t, Failed, result.Outcome)
	assert.True(t, fileExists(ot.entry.Path))
}

func TestDeleteRetriesTransientErrors(t *testing.T) {
	ot := newOrchestratorTest(t, nil,
		causeReply(rpc.CauseUnknownTransaction),
		causeReply(rpc.CauseTimeoutError),
		statusKindReply(rpc.StatusStarted),
		successReply(""),
	)

	result, err := ot.delete()
	require.NoError(t, err)
	assert.Equal(t, Removed, result.Outcome)
	assert.Equal(t, 4, ot.chain.statusCalls)
	assert.Equal(t, []time.Duration{2 * time.Second, 2 * time.Second, 2 * time.Second}, ot.clock.sleeps)
	assert.False(t, fileExists(ot.entry.Path))
}

func TestDeleteTimeLimitExceeded(t *testing.T) {
	ot := newOrchestratorTest(t, nil, causeReply(rpc.CauseUnknownTransaction))

	result, err := ot.delete()
	assert.True(t, errors.Is(err, ErrTimeLimitExceeded))
	assert.Equal(t, TimedOut, result.Outcome)
	assert.True(t, fileExists(ot.entry.Path))

	// polls at 0s, 2s, ..., 62s
	assert.Equal(t, 32, ot.chain.statusCalls)
	assert.Len(t, ot.clock.sleeps, 31)
	for _, d := range ot.clock.sleeps {
		assert.Equal(t, 2*time.Second, d)
	}
	assert.Empty(t, ot.gate.asked)
}

func TestDeleteFinalOutcomeAfterBudget(t *testing.T) {
	failure := statusReply{outcome: &rpc.FinalExecutionOutcome{Status: rpc.ExecutionStatus{
		Kind:    rpc.StatusFailure,
		Failure: json.RawMessage(`{"ActionError":{"index":0}}`),
	}}}

	for _, final := range []statusReply{successReply(""), failure} {
		statuses := make([]statusReply, 0, 32)
		for i := 0; i < 31; i++ {
			statuses = append(statuses, causeReply(rpc.CauseTimeoutError))
		}
		statuses = append(statuses, final)

		ot := newOrchestratorTest(t, nil, statuses...)

		// the final outcome arrives at 62s, past the budget
		result, err := ot.delete()
		assert.True(t, errors.Is(err, ErrTimeLimitExceeded))
		assert.Equal(t, TimedOut, result.Outcome)
		assert.False(t, result.KeyRemoved)
		assert.True(t, fileExists(ot.entry.Path))
		assert.Equal(t, 32, ot.chain.statusCalls)
		assert.Empty(t, ot.gate.asked)
		assert.NotContains(t, ot.out.String(), "Account successfully removed")
	}
}

func TestDeletePollsAsSigner(t *testing.T) {
	ot := newOrchestratorTest(t, nil, causeReply(rpc.CauseUnknownTransaction), successReply(""))
	ot.entry, ot.cred = writeKeyFileAs(t, ot.store, "copy.alice.testnet", "real.alice.testnet")

	result, err := ot.delete()
	require.NoError(t, err)
	assert.Equal(t, Removed, result.Outcome)
	assert.Equal(t, account.ID("copy.alice.testnet"), result.Account)

	require.Len(t, ot.chain.sent, 1)
	assert.Equal(t, "real.alice.testnet", ot.chain.sent[0].Transaction.SignerID)
	assert.Equal(t, []account.ID{"real.alice.testnet", "real.alice.testnet"}, ot.chain.senders)
	assert.False(t, fileExists(ot.entry.Path))
}

func TestDeleteInterrupted(t *testing.T) {
	ot := newOrchestratorTest(t, nil, successReply(""))

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	ot.chain.afterBroadcast = cancel

	result, err := ot.o.Delete(ctx, Request{Beneficiary: beneficiaryID, Entry: ot.entry})
	assert.True(t, errors.Is(err, context.Canceled))
	assert.False(t, errors.Is(err, ErrAborted))
	assert.Equal(t, Unknown, result.Outcome)
	assert.Equal(t, 1, ot.chain.statusCalls)
	assert.Empty(t, ot.gate.asked)
	assert.True(t, fileExists(ot.entry.Path))
}

func TestDeleteExecutionFailure(t *testing.T) {
	failure := statusReply{outcome: &rpc.FinalExecutionOutcome{Status: rpc.ExecutionStatus{
		Kind:    rpc.StatusFailure,
		Failure: json.RawMessage(`{"ActionError":{"index":0,"kind":{"DeleteAccountStaking":{"account_id":"bob.alice.testnet"}}}}`),
	}}}

	ot := newOrchestratorTest(t, map[string]bool{continuePrompt: true}, failure)

	result, err := ot.delete()
	require.NoError(t, err)
	assert.Equal(t, Failed, result.Outcome)
	assert.Contains(t, result.Detail, "DeleteAccountStaking")
	assert.Contains(t, ot.out.String(), "Removing the account failed")
	assert.True(t, fileExists(ot.entry.Path))

	ot = newOrchestratorTest(t, map[string]bool{continuePrompt: false}, failure)

	_, err = ot.delete()
	assert.True(t, errors.Is(err, ErrAborted))
}

func TestDeleteUnclassifiedPollError(t *testing.T) {
	ot := newOrchestratorTest(t, map[string]bool{unknownPrompt: false}, causeReply("INVALID_TRANSACTION"))

	result, err := ot.delete()
	assert.True(t, errors.Is(err, ErrAborted))
	assert.Equal(t, Failed, result.Outcome)
	assert.Equal(t, 1, ot.chain.statusCalls)
	assert.True(t, fileExists(ot.entry.Path))

	ot = newOrchestratorTest(t, map[string]bool{unknownPrompt: true}, causeReply("INVALID_TRANSACTION"))

	result, err = ot.delete()
	require.NoError(t, err)
	assert.Equal(t, Failed, result.Outcome)
}

func TestDeleteBroadcastError(t *testing.T) {
	ot := newOrchestratorTest(t, nil, successReply(""))
	ot.chain.broadcastErr = errors.New("503 Service Unavailable")

	result, err := ot.delete()
	require.Error(t, err)
	assert.False(t, errors.Is(err, ErrAborted))
	assert.Equal(t, Unknown, result.Outcome)
	assert.Equal(t, 0, ot.chain.statusCalls)
	assert.True(t, fileExists(ot.entry.Path))
}

func TestDeleteInvalidKeyFile(t *testing.T) {
	ot := newOrchestratorTest(t, map[string]bool{unknownPrompt: true})
	ot.entry.Path = ot.entry.Path + ".missing"

	result, err := ot.delete()
	require.NoError(t, err)
	assert.Equal(t, Failed, result.Outcome)
	assert.Contains(t, result.Detail, "load key file")
}
