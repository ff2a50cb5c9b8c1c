package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"tron/sweeper/internal/config"
	"tron/sweeper/internal/services"
	"tron/sweeper/internal/stores"
	"tron/sweeper/internal/utils/logger"
)

func main() {
	os.Exit(run())
}

func run() (code int) {
	cfg, err := config.Load()
	if err != nil {
		log := logger.New("info")
		var cfgErr *config.ConfigError
		if errors.As(err, &cfgErr) {
			log.Error().Str("var", cfgErr.Var).Msg(cfgErr.Reason)
		} else {
			log.Error().Err(err).Msg("failed to load config")
		}
		return 1
	}
	log := logger.New(cfg.LogLevel)

	ks, err := stores.NewPrivateKeyStore(cfg.MasterPrivateKey)
	if err != nil {
		log.Error().Err(err).Msg("failed to load master key")
		return 1
	}

	var journal stores.Journal
	if cfg.JournalPath != "" {
		j, err := stores.NewLocalJournal(cfg.JournalPath)
		if err != nil {
			log.Error().Err(err).Str("path", cfg.JournalPath).Msg("failed to open journal")
			return 1
		}
		defer j.Close()
		journal = j
	}

	agent := services.NewTransferAgent(cfg, ks, services.NewNodeProvider(ks), journal, log)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	sigch := make(chan os.Signal, 1)
	signal.Notify(sigch, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		<-sigch
		log.Warn().Msg("stopping")
		cancel()
	}()

	defer func() {
		if r := recover(); r != nil {
			log.Error().Str("panic", fmt.Sprint(r)).Msg("unexpected error")
			code = 1
		}
	}()

	if !agent.CheckAndTransfer(ctx) {
		log.Error().Msg("run finished with errors")
		return 1
	}
	log.Info().Msg("run finished successfully")
	return 0
}
