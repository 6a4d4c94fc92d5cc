package account

import (
	"strings"

	"github.com/pkg/errors"
)

const (
	MinIDLen = 2
	MaxIDLen = 64

	implicitIDLen = 64
)

// ErrInvalidID is returned for malformed account names.
var ErrInvalidID = errors.New("invalid account ID")

// ID is a validated NEAR account name, e.g. "bob.alice.testnet".
type ID string

// ParseID validates the account name and returns it as ID.
func ParseID(s string) (ID, error) {
	if len(s) < MinIDLen || len(s) > MaxIDLen {
		return "", errors.WithMessagef(ErrInvalidID, "%q should be %v to %v characters long", s, MinIDLen, MaxIDLen)
	}

	lastSeparator := true
	for i := 0; i < len(s); i++ {
		switch c := s[i]; {
		case c >= 'a' && c <= 'z', c >= '0' && c <= '9':
			lastSeparator = false
		case c == '-' || c == '_' || c == '.':
			if lastSeparator {
				return "", errors.WithMessagef(ErrInvalidID, "%q has a redundant separator at %v", s, i)
			}
			lastSeparator = true
		default:
			return "", errors.WithMessagef(ErrInvalidID, "%q has invalid character %q at %v", s, c, i)
		}
	}

	if lastSeparator {
		return "", errors.WithMessagef(ErrInvalidID, "%q ends with a separator", s)
	}

	return ID(s), nil
}

// MustParseID is like ParseID but panics on malformed input.
func MustParseID(s string) ID {
	id, err := ParseID(s)
	if err != nil {
		panic(err)
	}
	return id
}

func (id ID) String() string {
	return string(id)
}

// IsImplicit reports whether id is an implicit account, i.e. a hex encoded public key.
func (id ID) IsImplicit() bool {
	if len(id) != implicitIDLen {
		return false
	}

	for i := 0; i < len(id); i++ {
		if c := id[i]; !(c >= '0' && c <= '9' || c >= 'a' && c <= 'f') {
			return false
		}
	}

	return true
}

// IsSubaccountOf reports whether id is a direct or indirect subaccount of parent.
func (id ID) IsSubaccountOf(parent ID) bool {
	return strings.HasSuffix(string(id), "."+string(parent))
}

// ValidateForNetwork checks that a named account belongs to the top level account of network.
// Implicit accounts exist on every network.
func (id ID) ValidateForNetwork(network Network) error {
	if id.IsImplicit() {
		return nil
	}

	if tla := network.TopLevelAccount(); !id.IsSubaccountOf(tla) {
		return errors.WithMessagef(ErrInvalidID, "%v is not a %v account, it should end with .%v", id, network, tla)
	}

	return nil
}
