package prompt

import (
	"strings"

	"github.com/AlecAivazis/survey/v2"
	"github.com/nearkit/near-cleaner/account"
	"github.com/pkg/errors"
)

// Wildcard is the answer that matches all accounts.
const Wildcard = "*"

var networkOptions = []string{"Mainnet", "Testnet"}

// Survey asks questions on the terminal.
type Survey struct {
	opts []survey.AskOpt
}

// NewSurvey creates a Survey, opts are passed to every question, e.g. survey.WithStdio.
func NewSurvey(opts ...survey.AskOpt) *Survey {
	return &Survey{opts: opts}
}

// Approve asks a yes/no question.
func (s *Survey) Approve(message string, defaultYes bool) (bool, error) {
	approved := false

	err := survey.AskOne(&survey.Confirm{
		Message: message,
		Default: defaultYes,
	}, &approved, s.opts...)
	if err != nil {
		return false, errors.Wrapf(err, "failed to ask %q", message)
	}

	return approved, nil
}

// InputAccount asks for an account of network, the answer is re-asked until it is valid.
// Wildcard is accepted as answer if allowWildcard is true.
func (s *Survey) InputAccount(message string, network account.Network, allowWildcard bool) (string, error) {
	var answer string

	opts := append([]survey.AskOpt{survey.WithValidator(ValidateAccount(network, allowWildcard))}, s.opts...)

	err := survey.AskOne(&survey.Input{Message: message}, &answer, opts...)
	if err != nil {
		return "", errors.Wrapf(err, "failed to ask %q", message)
	}

	return strings.TrimSpace(answer), nil
}

// SelectNetwork asks for the network to operate on.
func (s *Survey) SelectNetwork(message string) (account.Network, error) {
	var index int

	err := survey.AskOne(&survey.Select{
		Message: message,
		Options: networkOptions,
		Default: networkOptions[0],
	}, &index, s.opts...)
	if err != nil {
		return 0, errors.Wrapf(err, "failed to ask %q", message)
	}

	return account.ParseNetwork(networkOptions[index])
}

// ValidateAccount returns a validator that accepts account IDs of network.
func ValidateAccount(network account.Network, allowWildcard bool) survey.Validator {
	return func(ans interface{}) error {
		input, ok := ans.(string)
		if !ok {
			return errors.Errorf("unexpected answer type %T", ans)
		}

		input = strings.TrimSpace(input)
		if allowWildcard && input == Wildcard {
			return nil
		}

		id, err := account.ParseID(input)
		if err != nil {
			return errors.New("not a valid account")
		}

		return id.ValidateForNetwork(network)
	}
}
