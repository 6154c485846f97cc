package main

import (
	"context"
	"net/http"
	"os"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"retail-ledger/internal/adapters/web"
	"retail-ledger/internal/app"
	"retail-ledger/internal/config"
	"retail-ledger/internal/core"
	"retail-ledger/internal/db"
	"retail-ledger/internal/store/memory"
	"retail-ledger/internal/store/postgres"
)

// receiptSink logs finalized transactions; a real deployment would hand them
// to a receipt printer or reporting pipeline.
type receiptSink struct{}

func (receiptSink) TransactionFinalized(tx core.FinalizedTransaction) {
	log.Info().
		Str("transaction_id", tx.ID).
		Str("method", string(tx.PaymentMethod)).
		Str("total", tx.Total.StringFixed(2)).
		Msg("transaction finalized")
}

func main() {
	_ = godotenv.Load()
	zerolog.TimeFieldFormat = zerolog.TimeFormatUnix
	if os.Getenv("LOG_PRETTY") != "" {
		log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})
	}

	cfg := config.Load()
	ctx := context.Background()

	var store core.Store
	if cfg.DatabaseURL != "" {
		pool, err := db.NewPool(ctx, cfg.DatabaseURL)
		if err != nil {
			log.Fatal().Err(err).Msg("database")
		}
		defer pool.Close()
		if err := postgres.Migrate(ctx, pool); err != nil {
			log.Fatal().Err(err).Msg("migrate")
		}
		store = postgres.New(pool)
		log.Info().Msg("using postgres store")
	} else {
		store = memory.New()
		log.Warn().Msg("DATABASE_URL not set, using in-memory store")
	}

	userService := core.NewUserService(store)
	ledgerService := core.NewLedgerService(store, store)
	settlementService := core.NewSettlementService(store)
	requestService := core.NewRequestService(store, store, settlementService, receiptSink{})
	reportingService := core.NewReportingService(store, store, store)

	svc := app.NewAppService(userService, store, ledgerService, requestService, settlementService, reportingService)
	handler := web.NewHandler(svc, cfg.AllowedOrigins, cfg.JWTSecret)

	log.Info().Str("port", cfg.Port).Msg("server starting")
	if err := http.ListenAndServe(":"+cfg.Port, handler); err != nil {
		log.Fatal().Err(err).Msg("server")
	}
}
