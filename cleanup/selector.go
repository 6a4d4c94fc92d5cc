package cleanup

import (
	"github.com/nearkit/near-cleaner/account"
	"github.com/nearkit/near-cleaner/prompt"
	"github.com/samber/lo"
)

// FilterKind is how the master filter narrows candidates.
type FilterKind int

const (
	// NoFilter means the operator declined to narrow, it behaves as WildcardFilter.
	NoFilter FilterKind = iota
	WildcardFilter
	MasterFilter
)

// Filter narrows candidates to a master account and its subaccounts.
type Filter struct {
	Kind   FilterKind
	Master account.ID
}

// ParseFilter parses a master filter: empty for none, "*" for all accounts, or an account ID.
func ParseFilter(s string) (Filter, error) {
	switch s {
	case "":
		return Filter{Kind: NoFilter}, nil
	case prompt.Wildcard:
		return Filter{Kind: WildcardFilter}, nil
	}

	master, err := account.ParseID(s)
	if err != nil {
		return Filter{}, err
	}

	return Filter{Kind: MasterFilter, Master: master}, nil
}

// Match reports whether id passes the filter.
func (f Filter) Match(id account.ID) bool {
	if f.Kind != MasterFilter {
		return true
	}

	return id == f.Master || id.IsSubaccountOf(f.Master)
}

func (f Filter) String() string {
	switch f.Kind {
	case MasterFilter:
		return f.Master.String()
	case WildcardFilter:
		return prompt.Wildcard
	default:
		return "none"
	}
}

// Candidate is a key file offered for deletion, or reported as skipped if not Included.
type Candidate struct {
	account.Entry
	Included bool
}

// Select returns the candidates of entries in the same order. The beneficiary is never a candidate.
func Select(entries []account.Entry, beneficiary account.ID, filter Filter) []Candidate {
	return lo.FilterMap(entries, func(entry account.Entry, _ int) (Candidate, bool) {
		if entry.ID == beneficiary {
			return Candidate{}, false
		}

		return Candidate{Entry: entry, Included: filter.Match(entry.ID)}, true
	})
}
