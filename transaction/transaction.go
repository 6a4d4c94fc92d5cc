package transaction

import (
	"crypto/sha256"
	"encoding/base64"

	"github.com/mr-tron/base58"
	"github.com/near/borsh-go"
	"github.com/nearkit/near-cleaner/account"
	"github.com/nearkit/near-cleaner/keys"
	"github.com/pkg/errors"
)

// ErrInvalidSignature is returned if a freshly produced signature does not verify against the signer key.
var ErrInvalidSignature = errors.New("invalid signature")

// Hash is the sha256 digest of a borsh encoded transaction.
type Hash [sha256.Size]byte

func (h Hash) String() string {
	return base58.Encode(h[:])
}

// Transaction is the unsigned transaction in its borsh layout.
type Transaction struct {
	SignerID   string
	PublicKey  PublicKey
	Nonce      uint64
	ReceiverID string
	BlockHash  [32]byte
	Actions    []Action
}

// SignedTransaction is a transaction with the signature of its hash.
type SignedTransaction struct {
	Transaction Transaction
	Signature   Signature
}

// NewDeleteAccount creates a transaction that deletes signer and sends the remaining balance to beneficiary.
// The transaction is signed by the access key pk, nonce should be the next nonce of that key.
func NewDeleteAccount(signer account.ID, pk keys.PublicKey, nonce uint64, blockHash [32]byte, beneficiary account.ID) *Transaction {
	return &Transaction{
		SignerID:   signer.String(),
		PublicKey:  newPublicKey(pk),
		Nonce:      nonce,
		ReceiverID: signer.String(),
		BlockHash:  blockHash,
		Actions:    []Action{NewDeleteAccountAction(beneficiary.String())},
	}
}

// Encode returns the borsh encoding of tx.
func (tx *Transaction) Encode() ([]byte, error) {
	encoded, err := borsh.Serialize(*tx)
	if err != nil {
		return nil, errors.Wrap(err, "failed to encode transaction")
	}

	return encoded, nil
}

// Hash returns the hash of tx, which is also the message to sign.
func (tx *Transaction) Hash() (Hash, error) {
	encoded, err := tx.Encode()
	if err != nil {
		return Hash{}, err
	}

	return sha256.Sum256(encoded), nil
}

// Sign signs tx with sk and verifies the result against the public key of tx.
func (tx *Transaction) Sign(sk keys.PrivateKey) (*SignedTransaction, Hash, error) {
	hash, err := tx.Hash()
	if err != nil {
		return nil, Hash{}, err
	}

	sig := keys.Sign(hash[:], sk)
	if !keys.Verify(hash[:], tx.PublicKey.Data, sig) {
		return nil, Hash{}, errors.WithMessagef(ErrInvalidSignature, "private key does not match %v", tx.PublicKey.Data)
	}

	return &SignedTransaction{
		Transaction: *tx,
		Signature:   Signature{KeyType: uint8(keys.ED25519), Data: sig},
	}, hash, nil
}

// Encode returns the borsh encoding of the signed transaction.
func (stx *SignedTransaction) Encode() ([]byte, error) {
	encoded, err := borsh.Serialize(*stx)
	if err != nil {
		return nil, errors.Wrap(err, "failed to encode signed transaction")
	}

	return encoded, nil
}

// Base64 returns the signed transaction in the format accepted by broadcast RPC methods.
func (stx *SignedTransaction) Base64() (string, error) {
	encoded, err := stx.Encode()
	if err != nil {
		return "", err
	}

	return base64.StdEncoding.EncodeToString(encoded), nil
}

// DecodeSignedTransaction decodes a borsh encoded signed transaction.
func DecodeSignedTransaction(encoded []byte) (*SignedTransaction, error) {
	var stx SignedTransaction
	if err := borsh.Deserialize(&stx, encoded); err != nil {
		return nil, errors.Wrap(err, "failed to decode signed transaction")
	}

	return &stx, nil
}
