package constants

import "time"

const (
	NetworkMainnet = "mainnet"
	NetworkTestnet = "testnet"

	// the api key header is only sent to endpoints of ApiKeyProvider
	ApiKeyHeader   = "TRON-PRO-API-KEY"
	ApiKeyProvider = "trongrid"

	NodeInfoPath         = "/wallet/getnodeinfo"
	GetAccountPath       = "/wallet/getaccount"
	CreateTransferPath   = "/wallet/createtransaction"
	BroadcastPath        = "/wallet/broadcasttransaction"
	ExplorerTxURL        = "https://tronscan.org/#/transaction/"
	ProbeTimeout         = 10 * time.Second
	RequestTimeout       = 10 * time.Second
	DefaultConfirmDelay  = 5 * time.Second
	DefaultLogLevel      = "info"
	PrivateKeyHexLength  = 64
	SunPerTRX            = 1_000_000
	ReserveSun           = 810_000   // 0.81 TRX left on the slave account
	TransferThresholdSun = 2_000_000 // sweep only above 2 TRX
)

var (
	MainnetEndpoints = []string{
		"https://api.trongrid.io",
		"https://api.tronstack.io",
		"https://api.trongrid.io",
		"https://tron-rpc.publicnode.com",
		"https://tron.mytokenpocket.vip",
	}
	TestnetEndpoints = []string{
		"https://api.trongrid.io",
		"https://api.tronstack.io",
		"https://api.shasta.trongrid.io",
		"https://tron-rpc.publicnode.com",
		"https://tron.mytokenpocket.vip",
	}
)
