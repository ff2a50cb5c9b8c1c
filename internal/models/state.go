package models

import "time"

type RunState string

const (
	StateInit             RunState = "INIT"
	StateBalanceCheck     RunState = "BALANCE_CHECK"
	StateNoTransferNeeded RunState = "NO_TRANSFER_NEEDED"
	StateTransferring     RunState = "TRANSFERRING"
	StateConfirmed        RunState = "CONFIRMED"
	StateFailed           RunState = "FAILED"
)

// RunRecord is one invocation of the sweeper as written to the journal.
type RunRecord struct {
	ID            string    `json:"id"` // start time, RFC3339Nano
	Network       string    `json:"network"`
	SlaveAddr     string    `json:"slave_addr"`
	MasterAddr    string    `json:"master_addr"`
	State         RunState  `json:"state"`
	BalanceSun    int64     `json:"balance_sun"`
	AmountSun     int64     `json:"amount_sun"`
	NewBalanceSun *int64    `json:"new_balance_sun,omitempty"`
	TxID          string    `json:"tx_id,omitempty"`
	Endpoint      string    `json:"endpoint,omitempty"`
	Error         string    `json:"error,omitempty"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}

func (r *RunRecord) Succeeded() bool {
	return r.State == StateConfirmed || r.State == StateNoTransferNeeded
}
