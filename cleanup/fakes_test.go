package cleanup

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/nearkit/near-cleaner/account"
	"github.com/nearkit/near-cleaner/keys"
	"github.com/nearkit/near-cleaner/rpc"
	"github.com/nearkit/near-cleaner/transaction"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/require"
)

// fakeGate answers questions by message prefix, unexpected questions fail the test.
type fakeGate struct {
	t       *testing.T
	answers map[string]bool
	asked   []string
}

func newFakeGate(t *testing.T, answers map[string]bool) *fakeGate {
	return &fakeGate{t: t, answers: answers}
}

func (g *fakeGate) Approve(message string, defaultYes bool) (bool, error) {
	g.asked = append(g.asked, message)

	for prefix, answer := range g.answers {
		if strings.HasPrefix(message, prefix) {
			return answer, nil
		}
	}

	g.t.Fatalf("unexpected question %q", message)
	return false, nil
}

func (g *fakeGate) count(prefix string) int {
	n := 0
	for _, message := range g.asked {
		if strings.HasPrefix(message, prefix) {
			n++
		}
	}
	return n
}

type statusReply struct {
	outcome *rpc.FinalExecutionOutcome
	err     error
}

// fakeChain replies statuses in order, the last one repeats.
type fakeChain struct {
	view         *rpc.AccessKeyView
	viewErr      error
	broadcastErr error
	statuses     []statusReply

	// afterBroadcast runs once the transaction is accepted.
	afterBroadcast func()

	sent        []*transaction.SignedTransaction
	senders     []account.ID
	statusCalls int
}

func (c *fakeChain) ViewAccessKey(ctx context.Context, id account.ID, pk keys.PublicKey) (*rpc.AccessKeyView, error) {
	return c.view, c.viewErr
}

func (c *fakeChain) BroadcastTxAsync(ctx context.Context, stx *transaction.SignedTransaction) (string, error) {
	if c.broadcastErr != nil {
		return "", c.broadcastErr
	}

	c.sent = append(c.sent, stx)
	if c.afterBroadcast != nil {
		c.afterBroadcast()
	}

	hash, err := stx.Transaction.Hash()
	if err != nil {
		return "", err
	}

	return hash.String(), nil
}

func (c *fakeChain) TxStatus(ctx context.Context, hash string, sender account.ID) (*rpc.FinalExecutionOutcome, error) {
	c.senders = append(c.senders, sender)

	if err := ctx.Err(); err != nil {
		c.statusCalls++
		return nil, errors.WithMessage(err, "Post \"http://127.0.0.1:3030\"")
	}

	reply := c.statuses[len(c.statuses)-1]
	if c.statusCalls < len(c.statuses) {
		reply = c.statuses[c.statusCalls]
	}

	c.statusCalls++

	return reply.outcome, reply.err
}

func successReply(value string) statusReply {
	return statusReply{outcome: &rpc.FinalExecutionOutcome{
		Status: rpc.ExecutionStatus{Kind: rpc.StatusSuccessValue, SuccessValue: []byte(value)},
	}}
}

func statusKindReply(kind string) statusReply {
	return statusReply{outcome: &rpc.FinalExecutionOutcome{Status: rpc.ExecutionStatus{Kind: kind}}}
}

func causeReply(cause string) statusReply {
	return statusReply{err: &rpc.Error{Name: "HANDLER_ERROR", Cause: rpc.ErrorCause{Name: cause}, Message: "Server error"}}
}

// fakeClock advances only when sleeping.
type fakeClock struct {
	now    time.Time
	sleeps []time.Duration
}

func newFakeClock() *fakeClock {
	return &fakeClock{now: time.Date(2023, 1, 1, 0, 0, 0, 0, time.UTC)}
}

func (c *fakeClock) Now() time.Time {
	return c.now
}

func (c *fakeClock) Sleep(ctx context.Context, d time.Duration) error {
	c.sleeps = append(c.sleeps, d)
	c.now = c.now.Add(d)
	return nil
}

func newTestStore(t *testing.T) *account.Store {
	store := account.NewStore(t.TempDir(), account.Testnet)
	require.NoError(t, os.MkdirAll(store.Dir(), 0700))
	return store
}

func writeKeyFile(t *testing.T, store *account.Store, id account.ID) (account.Entry, *account.Credential) {
	return writeKeyFileAs(t, store, id, id)
}

// writeKeyFileAs writes the key of signer into the key file of id.
func writeKeyFileAs(t *testing.T, store *account.Store, id, signer account.ID) (account.Entry, *account.Credential) {
	sk, err := keys.GeneratePrivateKey()
	require.NoError(t, err)

	cred := &account.Credential{AccountID: signer, PublicKey: sk.PublicKey(), PrivateKey: sk}
	content, err := cred.Marshal()
	require.NoError(t, err)

	path := filepath.Join(store.Dir(), id.String()+account.CredentialExt)
	require.NoError(t, os.WriteFile(path, content, 0600))

	return account.Entry{ID: id, Path: path}, cred
}

func fileExists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}
