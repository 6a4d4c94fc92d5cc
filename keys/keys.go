package keys

import (
	"crypto/ed25519"
	"strings"

	"github.com/hdevalence/ed25519consensus"
	"github.com/mr-tron/base58"
	"github.com/pkg/errors"
)

// KeyType is the curve tag used by NEAR in front of encoded keys and signatures.
type KeyType uint8

// ED25519 is the only key type accepted in credential files.
const ED25519 KeyType = 0

const (
	PublicKeyLen  = ed25519.PublicKeySize
	PrivateKeyLen = ed25519.PrivateKeySize
	// PrivateKeySeedLen is the length of the seed part of a PrivateKey,
	// which is formatted as seed|publicKey.
	PrivateKeySeedLen = ed25519.SeedSize
	SignatureLen      = ed25519.SignatureSize

	ed25519Prefix = "ed25519:"
)

var (
	ErrUnsupportedKeyType = errors.New("unsupported key type")
	ErrInvalidKeyLength   = errors.New("invalid key length")
)

type (
	PublicKey  [PublicKeyLen]byte
	PrivateKey [PrivateKeyLen]byte
	Signature  [SignatureLen]byte
)

// ParsePublicKey parses a public key in the `ed25519:<base58>` format.
func ParsePublicKey(encoded string) (PublicKey, error) {
	var pk PublicKey

	raw, err := decode(encoded)
	if err != nil {
		return pk, err
	}

	if len(raw) != PublicKeyLen {
		return pk, errors.WithMessagef(ErrInvalidKeyLength, "public key has %v bytes", len(raw))
	}

	copy(pk[:], raw)

	return pk, nil
}

// ParsePrivateKey parses a private key in the `ed25519:<base58>` format.
// Both the 64 byte seed|publicKey form and the bare 32 byte seed are accepted.
func ParsePrivateKey(encoded string) (PrivateKey, error) {
	var sk PrivateKey

	raw, err := decode(encoded)
	if err != nil {
		return sk, err
	}

	switch len(raw) {
	case PrivateKeyLen:
		copy(sk[:], raw)
	case PrivateKeySeedLen:
		copy(sk[:], ed25519.NewKeyFromSeed(raw))
	default:
		return sk, errors.WithMessagef(ErrInvalidKeyLength, "private key has %v bytes", len(raw))
	}

	return sk, nil
}

func decode(encoded string) ([]byte, error) {
	encoded = strings.TrimSpace(encoded)

	if idx := strings.Index(encoded, ":"); idx >= 0 {
		if encoded[:idx+1] != ed25519Prefix {
			return nil, errors.WithMessagef(ErrUnsupportedKeyType, "key %v", encoded[:idx])
		}
		encoded = encoded[idx+1:]
	}

	raw, err := base58.Decode(encoded)
	if err != nil {
		return nil, errors.Wrap(err, "failed to decode base58 key")
	}

	return raw, nil
}

// GeneratePrivateKey returns a new ed25519 PrivateKey.
func GeneratePrivateKey() (PrivateKey, error) {
	_, k, err := ed25519.GenerateKey(nil)
	if err != nil {
		return PrivateKey{}, err
	}
	return PrivateKey(k), nil
}

// PublicKey returns the PublicKey associated with p, the last 32 bytes of p.
func (p PrivateKey) PublicKey() PublicKey {
	return PublicKey(p[PrivateKeySeedLen:])
}

func (p PrivateKey) String() string {
	return ed25519Prefix + base58.Encode(p[:])
}

func (p PublicKey) String() string {
	return ed25519Prefix + base58.Encode(p[:])
}

func (s Signature) String() string {
	return ed25519Prefix + base58.Encode(s[:])
}

// Sign returns a signature for msg using sk.
func Sign(msg []byte, sk PrivateKey) Signature {
	return Signature(ed25519.Sign(sk[:], msg))
}

// Verify returns whether s is a valid signature of msg by p.
func Verify(msg []byte, p PublicKey, s Signature) bool {
	return ed25519consensus.Verify(p[:], msg, s[:])
}
