package account

import (
	"fmt"
	"strings"

	"github.com/pkg/errors"
)

// Network selects the NEAR network the tool operates on.
type Network int

const (
	Mainnet Network = iota
	Testnet
)

var networkNames = []string{"mainnet", "testnet"}

// Networks returns the names of all supported networks in menu order.
func Networks() []string {
	return append([]string(nil), networkNames...)
}

// ParseNetwork parses network name, e.g. "testnet".
func ParseNetwork(name string) (Network, error) {
	for i, v := range networkNames {
		if strings.EqualFold(v, strings.TrimSpace(name)) {
			return Network(i), nil
		}
	}

	return 0, errors.Errorf("unknown network %q, should be one of %v", name, strings.Join(networkNames, ", "))
}

func (n Network) String() string {
	if n < 0 || int(n) >= len(networkNames) {
		return fmt.Sprintf("network(%d)", int(n))
	}
	return networkNames[n]
}

// RPCURL returns the public RPC endpoint of the network.
func (n Network) RPCURL() string {
	return fmt.Sprintf("https://rpc.%v.near.org", n)
}

// TopLevelAccount returns the registrar account that named accounts of the network end with.
func (n Network) TopLevelAccount() ID {
	if n == Mainnet {
		return "near"
	}
	return "testnet"
}
