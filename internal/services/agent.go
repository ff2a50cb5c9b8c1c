package services

import (
	"context"
	"errors"
	"time"

	"tron/sweeper/internal/config"
	"tron/sweeper/internal/constants"
	"tron/sweeper/internal/models"
	"tron/sweeper/internal/stores"

	"github.com/rs/zerolog"
)

var (
	ErrInsufficientFunds     = errors.New("insufficient funds for transfer")
	ErrAllEndpointsExhausted = errors.New("all endpoints exhausted")
)

// TransferAgent sweeps the slave account's surplus TRX to the master account.
// Every node call walks the endpoint list in order and the first success wins.
type TransferAgent struct {
	nodes     INodeProvider
	journal   stores.Journal
	log       zerolog.Logger
	endpoints []models.Endpoint

	network    string
	masterAddr string
	slaveAddr  string

	reserve      models.Balance
	threshold    models.Balance
	confirmDelay time.Duration
	sleep        func(ctx context.Context, d time.Duration) error
	now          func() time.Time
}

// NewTransferAgent wires an agent for one run. journal may be nil.
func NewTransferAgent(cfg *config.Config, ks stores.KeyStore, nodes INodeProvider, journal stores.Journal, log zerolog.Logger) *TransferAgent {
	endpoints := make([]models.Endpoint, len(cfg.Endpoints))
	copy(endpoints, cfg.Endpoints)

	return &TransferAgent{
		nodes:        nodes,
		journal:      journal,
		log:          log,
		endpoints:    endpoints,
		network:      cfg.Network,
		masterAddr:   ks.Address(),
		slaveAddr:    cfg.SlaveAddress,
		reserve:      constants.ReserveSun,
		threshold:    constants.TransferThresholdSun,
		confirmDelay: cfg.ConfirmDelay,
		sleep:        sleepContext,
		now:          time.Now,
	}
}

// TransferAmount is what a sweep of balance would send; it may be non-positive
func (a *TransferAgent) TransferAmount(balance models.Balance) models.Balance {
	return balance - a.reserve
}

// GetBalance returns the balance of address from the first live endpoint that
// answers. ok is false when every endpoint failed.
func (a *TransferAgent) GetBalance(ctx context.Context, address string) (balance models.Balance, ok bool) {
	for _, ep := range a.endpoints {
		if ctx.Err() != nil {
			a.log.Warn().Err(ctx.Err()).Msg("balance query cancelled")
			return 0, false
		}

		log := a.log.With().Str("endpoint", ep.URL).Logger()
		node := a.nodes.WithEndpoint(ep)

		log.Debug().Msg("probing endpoint")
		if err := node.Ping(ctx); err != nil {
			log.Warn().Err(err).Msg("endpoint unavailable, skipping")
			continue
		}

		log.Debug().Str("address", address).Msg("querying balance")
		b, err := node.GetAccountBalance(ctx, address)
		if err != nil {
			log.Error().Err(err).Msg("balance query failed")
			continue
		}

		log.Info().Str("address", address).Str("trx", b.String()).Msg("balance received")
		return b, true
	}

	a.log.Error().Err(ErrAllEndpointsExhausted).Str("address", address).Msg("could not get balance")
	return 0, false
}

// Transfer sends balance minus the reserve from the slave to the master
// account. No node is contacted when nothing would be left to send.
func (a *TransferAgent) Transfer(ctx context.Context, balance models.Balance) models.TransferResult {
	amount := a.TransferAmount(balance)
	if amount <= 0 {
		a.log.Error().Err(ErrInsufficientFunds).Str("balance_trx", balance.String()).Msg("nothing to transfer")
		return models.TransferResult{}
	}

	a.log.Info().
		Str("amount_trx", amount.String()).
		Str("reserve_trx", a.reserve.String()).
		Str("from", a.slaveAddr).
		Str("to", a.masterAddr).
		Msg("transferring")

	for _, ep := range a.endpoints {
		if ctx.Err() != nil {
			a.log.Warn().Err(ctx.Err()).Msg("transfer cancelled")
			return models.TransferResult{}
		}

		log := a.log.With().Str("endpoint", ep.URL).Logger()
		txID, err := a.transferVia(ctx, a.nodes.WithEndpoint(ep), amount)
		if err != nil {
			if errors.Is(err, ErrEndpointUnavailable) {
				log.Warn().Err(err).Msg("endpoint unavailable for transactions, skipping")
			} else {
				log.Error().Err(err).Msg("transfer attempt failed")
			}
			continue
		}

		log.Info().
			Str("txid", txID).
			Str("amount_trx", amount.String()).
			Str("explorer", constants.ExplorerTxURL+txID).
			Msg("transaction broadcast")
		return models.TransferResult{TxID: txID, Endpoint: ep.URL, Amount: amount}
	}

	a.log.Error().Err(ErrAllEndpointsExhausted).Msg("transfer failed on every endpoint")
	return models.TransferResult{}
}

func (a *TransferAgent) transferVia(ctx context.Context, node NodeCtx, amount models.Balance) (string, error) {
	if err := node.Ping(ctx); err != nil {
		return "", err
	}

	tx, err := node.BuildTransfer(ctx, a.slaveAddr, a.masterAddr, amount)
	if err != nil {
		return "", err
	}

	signed, err := node.Sign(ctx, tx)
	if err != nil {
		return "", err
	}

	result, err := node.Broadcast(ctx, signed)
	if err != nil {
		return "", err
	}
	if result == nil || result.TxID == "" {
		return "", ErrMissingTxID
	}
	return result.TxID, nil
}

// CheckAndTransfer runs one sweep: read the slave balance, transfer the
// surplus when it is above the threshold, then re-read the balance for the
// log. Reports whether the run succeeded; a balance at or below the
// threshold is a success.
func (a *TransferAgent) CheckAndTransfer(ctx context.Context) bool {
	rec := &models.RunRecord{
		Network:    a.network,
		SlaveAddr:  a.slaveAddr,
		MasterAddr: a.masterAddr,
		State:      models.StateInit,
		CreatedAt:  a.now().UTC(),
	}
	defer a.record(ctx, rec)

	a.log.Info().Str("network", a.network).Str("master", a.masterAddr).Str("slave", a.slaveAddr).Msg("starting check")

	rec.State = models.StateBalanceCheck
	balance, ok := a.GetBalance(ctx, a.slaveAddr)
	if !ok {
		rec.State = models.StateFailed
		rec.Error = "could not get slave balance"
		a.log.Error().Msg("could not get slave balance")
		return false
	}
	rec.BalanceSun = balance.Sun()
	a.log.Info().Str("trx", balance.String()).Msg("slave balance")

	if balance <= a.threshold {
		rec.State = models.StateNoTransferNeeded
		a.log.Info().
			Str("threshold_trx", a.threshold.String()).
			Str("reserve_trx", a.reserve.String()).
			Msg("balance below threshold, no transfer needed")
		return true
	}

	rec.State = models.StateTransferring
	rec.AmountSun = a.TransferAmount(balance).Sun()
	a.log.Info().Str("amount_trx", a.TransferAmount(balance).String()).Msg("balance allows transfer")

	result := a.Transfer(ctx, balance)
	if !result.OK() {
		rec.State = models.StateFailed
		rec.Error = "transfer failed"
		a.log.Error().Msg("transfer failed")
		return false
	}
	rec.State = models.StateConfirmed
	rec.TxID = result.TxID
	rec.Endpoint = result.Endpoint

	// the re-query is informational; its outcome never changes the result
	a.log.Info().Dur("delay", a.confirmDelay).Msg("waiting for confirmation")
	if err := a.sleep(ctx, a.confirmDelay); err != nil {
		a.log.Warn().Err(err).Msg("confirmation wait interrupted")
		return true
	}
	if newBalance, ok := a.GetBalance(ctx, a.slaveAddr); ok {
		sun := newBalance.Sun()
		rec.NewBalanceSun = &sun
		a.log.Info().Str("trx", newBalance.String()).Msg("new slave balance")
	}
	return true
}

func (a *TransferAgent) record(ctx context.Context, rec *models.RunRecord) {
	if a.journal == nil {
		return
	}
	rec.UpdatedAt = a.now().UTC()
	// a cancelled run is still journaled
	if err := a.journal.Append(context.WithoutCancel(ctx), rec); err != nil {
		a.log.Warn().Err(err).Msg("failed to journal run")
	}
}

func sleepContext(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return nil
	}
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}
