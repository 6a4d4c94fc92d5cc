package cleanup

import (
	"context"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/nearkit/near-cleaner/account"
	"github.com/nearkit/near-cleaner/keys"
	"github.com/nearkit/near-cleaner/rpc"
	"github.com/nearkit/near-cleaner/transaction"
	"github.com/nearkit/near-cleaner/util"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
)

const (
	continuePrompt         = "Do you want to continue?"
	unknownPrompt          = "An unhandled error occurred. Do you want to continue?"
	unknownAccessKeyPrompt = "It seems that the account with this key has already been deleted. Do you want to delete this private key from your keystore?"
)

// Chain is the node API used to delete accounts.
type Chain interface {
	ViewAccessKey(ctx context.Context, id account.ID, pk keys.PublicKey) (*rpc.AccessKeyView, error)
	BroadcastTxAsync(ctx context.Context, stx *transaction.SignedTransaction) (string, error)
	TxStatus(ctx context.Context, hash string, sender account.ID) (*rpc.FinalExecutionOutcome, error)
}

// Gate asks the operator a yes/no question.
type Gate interface {
	Approve(message string, defaultYes bool) (bool, error)
}

// KeyStore loads and removes local key files.
type KeyStore interface {
	Load(entry account.Entry) (*account.Credential, error)
	Remove(entry account.Entry) error
}

// Request is a request to delete the account of Entry and send its balance to Beneficiary.
type Request struct {
	Beneficiary account.ID
	Entry       account.Entry
}

// Orchestrator drives accounts through query, sign, broadcast and poll, one at a time.
type Orchestrator struct {
	chain        Chain
	gate         Gate
	store        KeyStore
	pollInterval time.Duration
	pollTimeout  time.Duration

	now   func() time.Time
	sleep func(ctx context.Context, d time.Duration) error
	out   io.Writer
}

// Option configures an Orchestrator.
type Option func(*Orchestrator)

// WithClock replaces the wall clock and the sleep between polls.
func WithClock(now func() time.Time, sleep func(ctx context.Context, d time.Duration) error) Option {
	return func(o *Orchestrator) {
		o.now = now
		o.sleep = sleep
	}
}

// WithOutput sets the writer of operator messages, os.Stdout by default.
func WithOutput(w io.Writer) Option {
	return func(o *Orchestrator) {
		o.out = w
	}
}

// NewOrchestrator creates an Orchestrator. Transaction status is polled every pollInterval,
// until pollTimeout elapsed since the transaction was sent.
func NewOrchestrator(chain Chain, gate Gate, store KeyStore, pollInterval, pollTimeout time.Duration, opts ...Option) *Orchestrator {
	o := &Orchestrator{
		chain:        chain,
		gate:         gate,
		store:        store,
		pollInterval: pollInterval,
		pollTimeout:  pollTimeout,
		now:          time.Now,
		sleep:        sleepContext,
		out:          os.Stdout,
	}

	for _, opt := range opts {
		opt(o)
	}

	return o
}

func sleepContext(ctx context.Context, d time.Duration) error {
	timer := time.NewTimer(d)
	defer timer.Stop()

	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}

// Delete deletes the account of req and removes its local key file once the chain confirms.
//
// ErrAborted is returned if the operator declines to continue after an error,
// ErrTimeLimitExceeded if the transaction result is not available in time.
// Any other error is fatal to the run as well.
func (o *Orchestrator) Delete(ctx context.Context, req Request) (Result, error) {
	result := Result{Account: req.Entry.ID}

	cred, err := o.store.Load(req.Entry)
	if err != nil {
		result.Detail = failLoadKey(req.Entry.ID, err)
		return o.askContinue(result, unknownPrompt, err)
	}

	logger := logrus.WithFields(logrus.Fields{
		"account":     cred.AccountID,
		"beneficiary": req.Beneficiary,
	})

	// QueryingKey
	view, err := o.chain.ViewAccessKey(ctx, cred.AccountID, cred.PublicKey)
	if err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			result.Detail = failFatal(cred.AccountID, ctxErr)
			return result, errors.WithMessagef(ctxErr, "interrupted while querying access key of %v", cred.AccountID)
		}

		if rpc.IsUnknownAccessKey(err) {
			return o.purgeMissingKey(result, req.Entry, err)
		}

		result.Detail = failQueryKey(cred.AccountID, err)
		return o.askContinue(result, unknownPrompt, err)
	}

	blockHash, err := view.DecodeBlockHash()
	if err != nil {
		result.Detail = failQueryKey(cred.AccountID, err)
		return o.askContinue(result, unknownPrompt, err)
	}

	logger.WithField("nonce", view.Nonce).Debug("Access key queried")

	// Signing
	tx := transaction.NewDeleteAccount(cred.AccountID, cred.PublicKey, view.Nonce+1, blockHash, req.Beneficiary)

	stx, hash, err := tx.Sign(cred.PrivateKey)
	if err != nil {
		result.Detail = failFatal(cred.AccountID, err)
		return result, errors.WithMessagef(err, "failed to sign transaction of %v", cred.AccountID)
	}

	// Broadcasting
	sentAt := o.now()

	txHash, err := o.chain.BroadcastTxAsync(ctx, stx)
	if err != nil {
		result.Detail = failFatal(cred.AccountID, err)
		return result, errors.WithMessagef(err, "failed to send transaction of %v", cred.AccountID)
	}

	if txHash != hash.String() {
		logger.WithFields(logrus.Fields{
			"expected": hash,
			"actual":   txHash,
		}).Warn("Transaction hash returned by node differs from local hash")
	}

	result.TxHash = txHash
	logger.WithField("hash", txHash).Debug("Transaction sent")

	return o.poll(ctx, result, req.Entry, cred.AccountID, sentAt)
}

// poll waits for the final outcome of the transaction sent by signer at sentAt.
// The time budget is checked after every status request, before its reply is looked at.
func (o *Orchestrator) poll(ctx context.Context, result Result, entry account.Entry, signer account.ID, sentAt time.Time) (Result, error) {
	for {
		outcome, err := o.chain.TxStatus(ctx, result.TxHash, signer)

		if ctxErr := ctx.Err(); ctxErr != nil {
			result.Detail = failFatal(result.Account, ctxErr)
			return result, errors.WithMessagef(ctxErr, "interrupted while waiting for transaction %v", result.TxHash)
		}

		if elapsed := o.now().Sub(sentAt); elapsed > o.pollTimeout {
			result.Outcome = TimedOut
			result.Detail = failTimeout(result.Account, result.TxHash)
			return result, errors.WithMessagef(ErrTimeLimitExceeded, "transaction %v of %v, %v elapsed", result.TxHash, signer, elapsed)
		}

		if err == nil && outcome.Status.IsFinal() {
			if outcome.Status.IsSuccess() {
				return o.onSuccess(result, entry, outcome), nil
			}

			fmt.Fprintf(o.out, "%s\n", outcome.Status.Failure)
			fmt.Fprintln(o.out, util.ErrorPrefix, "Removing the account failed, check above for full logs")

			result.Detail = failExecuteTx(result.Account, result.TxHash, outcome.Status.Failure)
			return o.askContinue(result, continuePrompt, nil)
		}

		if err != nil && !rpc.IsTransient(err) {
			result.Detail = failGetTxStatus(result.Account, result.TxHash, err)
			return o.askContinue(result, unknownPrompt, err)
		}

		logrus.WithFields(logrus.Fields{
			"hash":  result.TxHash,
			"error": err,
		}).Debug("Transaction result not available yet")

		if err = o.sleep(ctx, o.pollInterval); err != nil {
			return result, errors.WithMessagef(err, "interrupted while waiting for transaction %v", result.TxHash)
		}
	}
}

func (o *Orchestrator) onSuccess(result Result, entry account.Entry, outcome *rpc.FinalExecutionOutcome) Result {
	if string(outcome.Status.SuccessValue) == "false" {
		fmt.Fprintln(o.out, "Account wasn't removed")
		result.Outcome = RefusedOnChain
		return result
	}

	if content, err := rpc.FormatOutcome(outcome); err != nil {
		logrus.WithError(err).Warn("Failed to format transaction outcome")
	} else {
		fmt.Fprintln(o.out, content)
	}

	fmt.Fprintln(o.out, util.SuccessPrefix, "Account successfully removed")

	result.Outcome = Removed
	result.KeyRemoved = o.removeKey(entry)

	return result
}

func (o *Orchestrator) purgeMissingKey(result Result, entry account.Entry, cause error) (Result, error) {
	fmt.Fprintln(o.out, util.ErrorPrefix, cause)

	result.Outcome = LocalKeyMissingRemotely

	approved, err := o.gate.Approve(unknownAccessKeyPrompt, false)
	if err != nil {
		return result, err
	}

	if approved {
		result.KeyRemoved = o.removeKey(entry)
	}

	return result, nil
}

func (o *Orchestrator) removeKey(entry account.Entry) bool {
	if err := o.store.Remove(entry); err != nil {
		logrus.WithError(err).WithField("file", entry.Path).Debug("Failed to remove key file")
		fmt.Fprintln(o.out, util.ErrorPrefix, "Can't remove private key for this account:", err)
		return false
	}

	fmt.Fprintln(o.out, util.SuccessPrefix, "Private key was removed for this account")

	return true
}

// askContinue reports cause and asks the operator whether to continue the run.
// The candidate is marked Failed either way.
func (o *Orchestrator) askContinue(result Result, message string, cause error) (Result, error) {
	if cause != nil {
		fmt.Fprintln(o.out, util.ErrorPrefix, cause)
	}

	result.Outcome = Failed

	approved, err := o.gate.Approve(message, false)
	if err != nil {
		return result, err
	}

	if !approved {
		return result, ErrAborted
	}

	return result, nil
}
