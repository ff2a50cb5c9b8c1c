package models

import "encoding/json"

// Transaction is an unsigned transfer as built by a node. RawData is kept
// verbatim so the node receives exactly what it produced.
type Transaction struct {
	Visible    bool            `json:"visible"`
	TxID       string          `json:"txID"`
	RawData    json.RawMessage `json:"raw_data"`
	RawDataHex string          `json:"raw_data_hex"`
}

type SignedTransaction struct {
	Visible    bool            `json:"visible"`
	TxID       string          `json:"txID"`
	RawData    json.RawMessage `json:"raw_data"`
	RawDataHex string          `json:"raw_data_hex"`
	Signature  []string        `json:"signature"`
}

type BroadcastResult struct {
	Result  bool   `json:"result"`
	TxID    string `json:"txid"`
	Code    string `json:"code,omitempty"`
	Message string `json:"message,omitempty"`
}

// TransferResult carries the transaction id of a successful transfer; the
// zero value means the transfer failed.
type TransferResult struct {
	TxID     string
	Endpoint string
	Amount   Balance
}

func (r TransferResult) OK() bool { return r.TxID != "" }
