package cleanup

import (
	"fmt"

	"github.com/nearkit/near-cleaner/account"
	"github.com/nearkit/near-cleaner/prompt"
	"github.com/pkg/errors"
)

const (
	chooseNetworkPrompt  = "Chose your NEAR network"
	setupBenefitPrompt   = "Setup beneficiary account"
	setupMasterPrompt    = "Setup master account or `*` for show all accounts"
	confirmAccountPrompt = "Is the account entered correctly: '%v' ?"
	findSubaccountPrompt = "Find subaccounts for: '%v' ?"
)

// Prompter asks the operator for the program settings.
type Prompter interface {
	Gate
	InputAccount(message string, network account.Network, allowWildcard bool) (string, error)
	SelectNetwork(message string) (account.Network, error)
}

// Builder builds a Program, asking the operator for the settings not given on the command line.
type Builder struct {
	prompter Prompter

	network     *account.Network
	beneficiary *account.ID
	filter      *Filter
}

// NewBuilder creates a Builder that asks with prompter.
func NewBuilder(prompter Prompter) *Builder {
	return &Builder{prompter: prompter}
}

// WithNetwork presets the network.
func (b *Builder) WithNetwork(network account.Network) *Builder {
	b.network = &network
	return b
}

// WithBeneficiary presets the beneficiary, it is validated against the network in Build.
func (b *Builder) WithBeneficiary(beneficiary account.ID) *Builder {
	b.beneficiary = &beneficiary
	return b
}

// WithFilter presets the master filter.
func (b *Builder) WithFilter(filter Filter) *Builder {
	b.filter = &filter
	return b
}

// Build asks for the missing settings in order: network, beneficiary, master filter.
func (b *Builder) Build() (*Program, error) {
	network, err := b.buildNetwork()
	if err != nil {
		return nil, err
	}

	beneficiary, err := b.buildBeneficiary(network)
	if err != nil {
		return nil, err
	}

	filter, err := b.buildFilter(network, beneficiary)
	if err != nil {
		return nil, err
	}

	return &Program{
		Network:     network,
		Beneficiary: beneficiary,
		Filter:      filter,
	}, nil
}

func (b *Builder) buildNetwork() (account.Network, error) {
	if b.network != nil {
		return *b.network, nil
	}

	return b.prompter.SelectNetwork(chooseNetworkPrompt)
}

func (b *Builder) buildBeneficiary(network account.Network) (account.ID, error) {
	if b.beneficiary != nil {
		if err := b.beneficiary.ValidateForNetwork(network); err != nil {
			return "", errors.WithMessage(err, "invalid beneficiary")
		}
		return *b.beneficiary, nil
	}

	for {
		id, confirmed, err := b.inputAccount(setupBenefitPrompt, network, false)
		if err != nil {
			return "", err
		}

		if confirmed {
			return id, nil
		}
	}
}

func (b *Builder) buildFilter(network account.Network, beneficiary account.ID) (Filter, error) {
	if b.filter != nil {
		if b.filter.Kind == MasterFilter {
			if err := b.filter.Master.ValidateForNetwork(network); err != nil {
				return Filter{}, errors.WithMessage(err, "invalid master account")
			}
		}
		return *b.filter, nil
	}

	for {
		sameAsBeneficiary, err := b.prompter.Approve(fmt.Sprintf(findSubaccountPrompt, beneficiary), true)
		if err != nil {
			return Filter{}, err
		}

		if sameAsBeneficiary {
			return Filter{Kind: MasterFilter, Master: beneficiary}, nil
		}

		master, confirmed, err := b.inputAccount(setupMasterPrompt, network, true)
		if err != nil {
			return Filter{}, err
		}

		if master == prompt.Wildcard {
			return Filter{Kind: WildcardFilter}, nil
		}

		if confirmed {
			return Filter{Kind: MasterFilter, Master: master}, nil
		}
	}
}

// inputAccount asks for an account and then asks the operator to confirm it.
// The wildcard is returned unconfirmed.
func (b *Builder) inputAccount(message string, network account.Network, allowWildcard bool) (account.ID, bool, error) {
	input, err := b.prompter.InputAccount(message, network, allowWildcard)
	if err != nil {
		return "", false, err
	}

	if allowWildcard && input == prompt.Wildcard {
		return prompt.Wildcard, false, nil
	}

	id, err := account.ParseID(input)
	if err != nil {
		return "", false, err
	}

	confirmed, err := b.prompter.Approve(fmt.Sprintf(confirmAccountPrompt, id), true)
	if err != nil {
		return "", false, err
	}

	return id, confirmed, nil
}
