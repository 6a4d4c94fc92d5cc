package cleanup

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/nearkit/near-cleaner/account"
	"github.com/nearkit/near-cleaner/util"
	"github.com/pkg/errors"
)

const (
	removePrompt      = "Are you sure to remove: '%v' ?"
	showSkippedPrompt = "Show skipped accounts?"
)

// Program is what a run deletes, and where the balances go.
type Program struct {
	Network     account.Network
	Beneficiary account.ID
	Filter      Filter
}

// Lister enumerates local key files.
type Lister interface {
	List() ([]account.Entry, error)
}

// Deleter deletes one account.
type Deleter interface {
	Delete(ctx context.Context, req Request) (Result, error)
}

type showSkipped int

const (
	showSkippedUnknown showSkipped = iota
	showSkippedYes
	showSkippedNo
)

// Run walks the candidates of a program, asking the operator before each deletion.
type Run struct {
	program Program
	store   Lister
	gate    Gate
	deleter Deleter
	out     io.Writer

	showSkipped showSkipped
	summary     *Summary
}

// NewRun creates a run of program.
func NewRun(program Program, store Lister, gate Gate, deleter Deleter) *Run {
	return &Run{
		program: program,
		store:   store,
		gate:    gate,
		deleter: deleter,
		out:     os.Stdout,
		summary: newSummary(),
	}
}

// SetOutput sets the writer of operator messages.
func (r *Run) SetOutput(w io.Writer) {
	r.out = w
}

// Summary returns the results recorded so far.
func (r *Run) Summary() *Summary {
	return r.summary
}

// Execute deletes the approved candidates one by one. It stops at the first error,
// ErrAborted if the operator declined to continue.
func (r *Run) Execute(ctx context.Context) error {
	entries, err := r.store.List()
	if err != nil {
		return errors.WithMessage(err, "failed to list key files")
	}

	for _, candidate := range Select(entries, r.program.Beneficiary, r.program.Filter) {
		if !candidate.Included {
			if err = r.reportSkipped(candidate.ID); err != nil {
				return err
			}
			continue
		}

		approved, err := r.gate.Approve(fmt.Sprintf(removePrompt, candidate.ID), false)
		if err != nil {
			return err
		}

		if !approved {
			r.summary.declined++
			continue
		}

		result, err := r.deleter.Delete(ctx, Request{
			Beneficiary: r.program.Beneficiary,
			Entry:       candidate.Entry,
		})
		r.summary.Add(result)

		if err != nil {
			return err
		}
	}

	return nil
}

func (r *Run) reportSkipped(id account.ID) error {
	r.summary.skipped++

	if r.showSkipped == showSkippedUnknown {
		show, err := r.gate.Approve(showSkippedPrompt, false)
		if err != nil {
			return err
		}

		if show {
			r.showSkipped = showSkippedYes
		} else {
			r.showSkipped = showSkippedNo
		}
	}

	if r.showSkipped == showSkippedYes {
		fmt.Fprintln(r.out, util.ErrorPrefix, "Skip account:", id)
	}

	return nil
}
