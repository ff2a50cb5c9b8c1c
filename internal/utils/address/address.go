package address

import (
	"crypto/ecdsa"
	"encoding/hex"
	"fmt"

	"github.com/btcsuite/btcutil/base58"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/crypto"
)

// TRON account addresses are the 20-byte EVM address prefixed with 0x41
const Prefix byte = 0x41

// FromPublicKey returns the base58check address of an account key
func FromPublicKey(pub ecdsa.PublicKey) string {
	return FromEVM(crypto.PubkeyToAddress(pub))
}

func FromEVM(addr common.Address) string {
	return base58.CheckEncode(addr.Bytes(), Prefix)
}

// ToHex validates a base58check address and returns its hex form, 41 prefix included.
// NOTE: the slave address is passed to nodes as given; this is only used for display
func ToHex(addr string) (string, error) {
	payload, version, err := base58.CheckDecode(addr)
	if err != nil {
		return "", fmt.Errorf("invalid address %s: %w", addr, err)
	}
	if version != Prefix || len(payload) != common.AddressLength {
		return "", fmt.Errorf("invalid address: %s", addr)
	}
	return hex.EncodeToString(append([]byte{version}, payload...)), nil
}
