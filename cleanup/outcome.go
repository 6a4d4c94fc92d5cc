package cleanup

import (
	"fmt"

	"github.com/nearkit/near-cleaner/account"
	"github.com/pkg/errors"
)

var (
	// ErrAborted is returned when the operator declines to continue after an error.
	ErrAborted = errors.New("aborted by operator")
	// ErrTimeLimitExceeded is returned when a transaction result is not available within the polling budget.
	ErrTimeLimitExceeded = errors.New("time limit exceeded for the transaction to be recognized")
)

// Outcome is the terminal state of an account deletion.
type Outcome int

const (
	// Unknown means no terminal state was reached, e.g. the transaction could not be sent.
	Unknown Outcome = iota
	Removed
	RefusedOnChain
	Failed
	TimedOut
	LocalKeyMissingRemotely
)

var outcomeNames = map[Outcome]string{
	Unknown:                 "Unknown",
	Removed:                 "Removed",
	RefusedOnChain:          "RefusedOnChain",
	Failed:                  "Failed",
	TimedOut:                "TimedOut",
	LocalKeyMissingRemotely: "LocalKeyMissingRemotely",
}

func (o Outcome) String() string {
	if name, ok := outcomeNames[o]; ok {
		return name
	}
	return fmt.Sprintf("Outcome(%d)", int(o))
}

// Result is the result of an account deletion.
type Result struct {
	Account account.ID
	Outcome Outcome
	TxHash  string
	// Detail describes why the deletion failed.
	Detail string
	// KeyRemoved is true if the local key file was deleted.
	KeyRemoved bool
}
