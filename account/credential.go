package account

import (
	"encoding/json"
	"os"

	"github.com/nearkit/near-cleaner/keys"
	"github.com/pkg/errors"
)

// ErrKeyMismatch is returned when the public key stored in a credential file is not derived from its private key.
var ErrKeyMismatch = errors.New("public key does not match private key")

// Credential is an account ID with the key pair that signs transactions on its behalf.
type Credential struct {
	AccountID  ID
	PublicKey  keys.PublicKey
	PrivateKey keys.PrivateKey
}

type credentialFile struct {
	AccountID  string `json:"account_id"`
	PublicKey  string `json:"public_key"`
	PrivateKey string `json:"private_key"`
	SecretKey  string `json:"secret_key,omitempty"`
}

// LoadCredential reads the key file at path.
func LoadCredential(path string) (*Credential, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to read credential file %v", path)
	}

	return ParseCredential(content)
}

// ParseCredential decodes the JSON key file format written by near-cli.
func ParseCredential(content []byte) (*Credential, error) {
	var file credentialFile
	if err := json.Unmarshal(content, &file); err != nil {
		return nil, errors.Wrap(err, "failed to unmarshal credential")
	}

	accountID, err := ParseID(file.AccountID)
	if err != nil {
		return nil, err
	}

	encodedKey := file.PrivateKey
	if encodedKey == "" {
		encodedKey = file.SecretKey
	}

	privateKey, err := keys.ParsePrivateKey(encodedKey)
	if err != nil {
		return nil, errors.WithMessagef(err, "invalid private key of %v", accountID)
	}

	publicKey := privateKey.PublicKey()
	if file.PublicKey != "" {
		declared, err := keys.ParsePublicKey(file.PublicKey)
		if err != nil {
			return nil, errors.WithMessagef(err, "invalid public key of %v", accountID)
		}

		if declared != publicKey {
			return nil, errors.WithMessagef(ErrKeyMismatch, "credential of %v", accountID)
		}
	}

	return &Credential{
		AccountID:  accountID,
		PublicKey:  publicKey,
		PrivateKey: privateKey,
	}, nil
}

// Marshal encodes the credential in the near-cli key file format.
func (c *Credential) Marshal() ([]byte, error) {
	return json.Marshal(credentialFile{
		AccountID:  c.AccountID.String(),
		PublicKey:  c.PublicKey.String(),
		PrivateKey: c.PrivateKey.String(),
	})
}
