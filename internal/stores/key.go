package stores

import (
	"context"
	"crypto/ecdsa"
	"errors"
	"fmt"

	"tron/sweeper/internal/constants"
	"tron/sweeper/internal/utils/address"

	"github.com/ethereum/go-ethereum/crypto"
)

var ErrInvalidPrivateKey = errors.New("invalid private key")

type KeyStore interface {
	Address() string
	SignHash(ctx context.Context, hash []byte) ([]byte, error)
}

// PrivateKeyStore holds the single master key for the lifetime of a run
type PrivateKeyStore struct {
	key     *ecdsa.PrivateKey
	address string
}

func NewPrivateKeyStore(hexKey string) (*PrivateKeyStore, error) {
	if len(hexKey) != constants.PrivateKeyHexLength {
		return nil, fmt.Errorf("%w: expected %d hex characters, got %d", ErrInvalidPrivateKey, constants.PrivateKeyHexLength, len(hexKey))
	}
	key, err := crypto.HexToECDSA(hexKey)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidPrivateKey, err)
	}
	return &PrivateKeyStore{
		key:     key,
		address: address.FromPublicKey(key.PublicKey),
	}, nil
}

func (s *PrivateKeyStore) Address() string {
	return s.address
}

// SignHash returns a 65 byte [R || S || V] secp256k1 signature over hash
func (s *PrivateKeyStore) SignHash(ctx context.Context, hash []byte) ([]byte, error) {
	if len(hash) != 32 {
		return nil, fmt.Errorf("hash must be 32 bytes, got %d", len(hash))
	}
	sig, err := crypto.Sign(hash, s.key)
	if err != nil {
		return nil, err
	}
	return sig, nil
}
