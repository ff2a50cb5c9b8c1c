package tron

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"strings"

	"github.com/ethereum/go-ethereum/common/hexutil"
)

// TxID returns the transaction id for the protobuf-encoded raw data, sha256(raw_data)
func TxID(rawDataHex string) (string, error) {
	if rawDataHex == "" {
		return "", fmt.Errorf("empty raw data")
	}
	b, err := hexutil.Decode("0x" + strings.TrimPrefix(rawDataHex, "0x"))
	if err != nil {
		return "", fmt.Errorf("decode raw data: %w", err)
	}
	sum := sha256.Sum256(b)
	return hex.EncodeToString(sum[:]), nil
}

// VerifyTxID checks that a node-supplied txID matches its raw data
func VerifyTxID(txID string, rawDataHex string) error {
	want, err := TxID(rawDataHex)
	if err != nil {
		return err
	}
	if !strings.EqualFold(want, txID) {
		return fmt.Errorf("txID mismatch: got %s, raw data hashes to %s", txID, want)
	}
	return nil
}
