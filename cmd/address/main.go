package main

import (
	"fmt"
	"os"

	"tron/sweeper/internal/stores"
	"tron/sweeper/internal/utils/address"
	"tron/sweeper/internal/utils/logger"

	"github.com/joho/godotenv"
)

// prints the master address derived from MASTER_PRIVATE_KEY
func main() {
	log := logger.New("info")
	_ = godotenv.Load()

	ks, err := stores.NewPrivateKeyStore(os.Getenv("MASTER_PRIVATE_KEY"))
	if err != nil {
		log.Fatal().Err(err).Msg("MASTER_PRIVATE_KEY")
	}

	hexAddr, err := address.ToHex(ks.Address())
	if err != nil {
		log.Fatal().Err(err).Msg("derived an invalid address")
	}
	fmt.Printf("%s %s\n", ks.Address(), hexAddr)
}
