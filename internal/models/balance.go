package models

import (
	"github.com/shopspring/decimal"

	"tron/sweeper/internal/constants"
)

var sunPerTRX = decimal.NewFromInt(constants.SunPerTRX)

// Balance is an amount in sun.
type Balance int64

func BalanceFromTRX(trx decimal.Decimal) Balance {
	return Balance(trx.Mul(sunPerTRX).IntPart())
}

func (b Balance) Sun() int64 { return int64(b) }

func (b Balance) TRX() decimal.Decimal {
	return decimal.NewFromInt(int64(b)).DivRound(sunPerTRX, 6)
}

// String formats the balance in TRX with six decimals
func (b Balance) String() string {
	return b.TRX().StringFixed(6)
}
