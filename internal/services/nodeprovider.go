package services

import (
	"context"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"tron/sweeper/internal/clients"
	"tron/sweeper/internal/constants"
	"tron/sweeper/internal/models"
	"tron/sweeper/internal/stores"
	"tron/sweeper/internal/utils/tron"
)

var (
	ErrEndpointUnavailable = errors.New("endpoint unavailable")
	ErrAccountNotFound     = errors.New("account not found on-chain")
	ErrMissingTxID         = errors.New("response has no transaction id")
	ErrRejectedTransaction = errors.New("rejected transaction")
)

type INodeProvider interface {
	WithEndpoint(ep models.Endpoint) NodeCtx
}

// NodeCtx is the node API used by the agent, bound to one endpoint
type NodeCtx interface {
	// Liveness probe, GET on the node info path
	Ping(ctx context.Context) error
	GetAccountBalance(ctx context.Context, address string) (models.Balance, error)
	// Builds an unsigned transfer of `amount` sun from `fromAddr` to `toAddr`
	BuildTransfer(ctx context.Context, fromAddr string, toAddr string, amount models.Balance) (*models.Transaction, error)
	Sign(ctx context.Context, tx *models.Transaction) (*models.SignedTransaction, error)
	Broadcast(ctx context.Context, tx *models.SignedTransaction) (*models.BroadcastResult, error)
}

type NodeProvider struct {
	ks             stores.KeyStore
	probeTimeout   time.Duration
	requestTimeout time.Duration
}

func NewNodeProvider(ks stores.KeyStore) *NodeProvider {
	return &NodeProvider{
		ks:             ks,
		probeTimeout:   constants.ProbeTimeout,
		requestTimeout: constants.RequestTimeout,
	}
}

func (np *NodeProvider) WithEndpoint(ep models.Endpoint) NodeCtx {
	return &TronCtx{
		np:       np,
		endpoint: ep,
		probe:    clients.NewHttpClient(ep.URL, ep.Headers(), np.probeTimeout),
		client:   clients.NewHttpClient(ep.URL, ep.Headers(), np.requestTimeout),
	}
}

type TronCtx struct {
	np       *NodeProvider
	endpoint models.Endpoint
	probe    *clients.HttpClient
	client   *clients.HttpClient
}

func (c *TronCtx) Ping(ctx context.Context) error {
	if _, err := c.probe.Get(ctx, constants.NodeInfoPath); err != nil {
		return fmt.Errorf("%w: %v", ErrEndpointUnavailable, err)
	}
	return nil
}

type accountResponse struct {
	Address string `json:"address"`
	Balance int64  `json:"balance"`
	Error   string `json:"Error"`
}

func (c *TronCtx) GetAccountBalance(ctx context.Context, address string) (models.Balance, error) {
	resp, err := c.client.Post(ctx, constants.GetAccountPath, map[string]any{
		"address": address,
		"visible": true,
	})
	if err != nil {
		return 0, err
	}

	var acct accountResponse
	if err := json.Unmarshal(resp, &acct); err != nil {
		return 0, fmt.Errorf("unmarshalling account: %w", err)
	}
	if acct.Error != "" {
		return 0, fmt.Errorf("getaccount: %s", acct.Error)
	}
	// unactivated accounts come back as an empty object
	if acct.Address == "" {
		return 0, fmt.Errorf("%w: %s", ErrAccountNotFound, address)
	}
	if acct.Balance < 0 {
		return 0, fmt.Errorf("negative balance %d for %s", acct.Balance, address)
	}
	return models.Balance(acct.Balance), nil
}

type transactionResponse struct {
	models.Transaction
	Error string `json:"Error"`
}

func (c *TronCtx) BuildTransfer(ctx context.Context, fromAddr string, toAddr string, amount models.Balance) (*models.Transaction, error) {
	if amount <= 0 {
		return nil, fmt.Errorf("transfer amount must be positive, got %d sun", amount)
	}

	resp, err := c.client.Post(ctx, constants.CreateTransferPath, map[string]any{
		"owner_address": fromAddr,
		"to_address":    toAddr,
		"amount":        amount.Sun(),
		"visible":       true,
	})
	if err != nil {
		return nil, err
	}

	var tx transactionResponse
	if err := json.Unmarshal(resp, &tx); err != nil {
		return nil, fmt.Errorf("unmarshalling transaction: %w", err)
	}
	if tx.Error != "" {
		return nil, fmt.Errorf("createtransaction: %s", tx.Error)
	}
	if tx.TxID == "" {
		return nil, fmt.Errorf("createtransaction: %w: %s", ErrMissingTxID, string(resp))
	}
	if err := tron.VerifyTxID(tx.TxID, tx.RawDataHex); err != nil {
		return nil, fmt.Errorf("createtransaction: %w", err)
	}

	return &tx.Transaction, nil
}

// Sign signs the transaction id with the master key
func (c *TronCtx) Sign(ctx context.Context, tx *models.Transaction) (*models.SignedTransaction, error) {
	hash, err := hex.DecodeString(tx.TxID)
	if err != nil {
		return nil, fmt.Errorf("decoding txID: %w", err)
	}

	sig, err := c.np.ks.SignHash(ctx, hash)
	if err != nil {
		return nil, fmt.Errorf("SignHash: %w", err)
	}

	return &models.SignedTransaction{
		Visible:    tx.Visible,
		TxID:       tx.TxID,
		RawData:    tx.RawData,
		RawDataHex: tx.RawDataHex,
		Signature:  []string{hex.EncodeToString(sig)},
	}, nil
}

func (c *TronCtx) Broadcast(ctx context.Context, tx *models.SignedTransaction) (*models.BroadcastResult, error) {
	resp, err := c.client.Post(ctx, constants.BroadcastPath, tx)
	if err != nil {
		return nil, err
	}

	var result models.BroadcastResult
	if err := json.Unmarshal(resp, &result); err != nil {
		return nil, fmt.Errorf("unmarshalling broadcast result: %w", err)
	}
	if !result.Result {
		return nil, fmt.Errorf("%w: %s %s", ErrRejectedTransaction, result.Code, decodeMessage(result.Message))
	}
	if result.TxID == "" {
		return nil, fmt.Errorf("broadcast: %w: %s", ErrMissingTxID, string(resp))
	}
	return &result, nil
}

// nodes hex-encode broadcast error messages
func decodeMessage(msg string) string {
	b, err := hex.DecodeString(msg)
	if err != nil {
		return msg
	}
	return string(b)
}
