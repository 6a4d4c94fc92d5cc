package cleanup

import (
	"fmt"
	"strings"
)

// Summary counts the results of a run.
type Summary struct {
	total       int
	skipped     int
	declined    int
	outcomes    map[Outcome]int
	keysRemoved int
	failInfos   []string
}

func newSummary() *Summary {
	return &Summary{outcomes: make(map[Outcome]int)}
}

// Add records the result of a deletion.
func (s *Summary) Add(result Result) {
	s.total++
	s.outcomes[result.Outcome]++

	if result.KeyRemoved {
		s.keysRemoved++
	}

	if result.Detail != "" {
		s.failInfos = append(s.failInfos, result.Detail)
	}
}

// Count returns the number of deletions that ended with outcome.
func (s *Summary) Count(outcome Outcome) int {
	return s.outcomes[outcome]
}

// Skipped returns the number of candidates filtered out by the master filter.
func (s *Summary) Skipped() int {
	return s.skipped
}

// Declined returns the number of candidates the operator did not approve.
func (s *Summary) Declined() int {
	return s.declined
}

// KeysRemoved returns the number of deleted local key files.
func (s *Summary) KeysRemoved() int {
	return s.keysRemoved
}

func (s *Summary) GetTotalFailCount() int {
	return s.outcomes[Failed] + s.outcomes[TimedOut] + s.outcomes[Unknown]
}

func (s *Summary) String() string {
	result := fmt.Sprintf("- Total: %v\n- Skipped: %v\n- Declined: %v\n- Removed: %v\n- Refused on chain: %v\n- Key missing on chain: %v\n- Failed: %v\n- Private keys removed: %v\n",
		s.total, s.skipped, s.declined, s.outcomes[Removed], s.outcomes[RefusedOnChain],
		s.outcomes[LocalKeyMissingRemotely], s.GetTotalFailCount(), s.keysRemoved)
	if len(s.failInfos) > 0 {
		result += fmt.Sprintf("- Fail infos:\n%v\n", strings.Join(s.failInfos, "\n"))
	}
	return result
}
