package util

import (
	"github.com/mr-tron/base58"
	"github.com/pkg/errors"
)

// HashLen is the length of block and transaction hashes.
const HashLen = 32

// DecodeHash decodes a base58 encoded block or transaction hash.
func DecodeHash(encoded string) ([HashLen]byte, error) {
	var hash [HashLen]byte

	decoded, err := base58.Decode(encoded)
	if err != nil {
		return hash, errors.Wrapf(err, "failed to decode hash %v", encoded)
	}

	if len(decoded) != HashLen {
		return hash, errors.Errorf("invalid hash length %v, expected %v", len(decoded), HashLen)
	}

	copy(hash[:], decoded)

	return hash, nil
}

// EncodeHash encodes hash in base58 format.
func EncodeHash(hash [HashLen]byte) string {
	return base58.Encode(hash[:])
}
