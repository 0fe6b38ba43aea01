package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	httpadp "bank-ledger/internal/adapter/http"
	"bank-ledger/internal/adapter/middleware"
	"bank-ledger/internal/adapter/notifier"
	"bank-ledger/internal/adapter/repository/gormrepo"
	"bank-ledger/internal/config"
	"bank-ledger/internal/domain/notification"
	"bank-ledger/internal/infrastructure/cache"
	"bank-ledger/internal/infrastructure/db"
	"bank-ledger/internal/infrastructure/logging"
	"bank-ledger/internal/usecase/loan"
	"bank-ledger/internal/usecase/registry"
	"bank-ledger/internal/usecase/transfer"
)

func main() {
	if err := run(); err != nil {
		slog.Error("exit", "err", err)
		os.Exit(1)
	}
}

func run() error {
	boot := logging.New(logging.Options{})
	cfg, err := config.Load(boot)
	if err != nil {
		return err
	}
	if err := cfg.Validate(); err != nil {
		return err
	}
	log := logging.New(logging.Options{
		Level:      cfg.Log.Level,
		Format:     cfg.Log.Format,
		Prefix:     cfg.Log.Prefix,
		TimeFormat: cfg.Log.TimeFormat,
	})
	slog.SetDefault(log)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	gdb, err := db.OpenGorm(cfg.DBDriver, cfg.DSN(), log)
	if err != nil {
		return fmt.Errorf("open db: %w", err)
	}
	sqlDB, err := gdb.DB()
	if err != nil {
		return err
	}
	defer sqlDB.Close()
	if err := db.Migrate(gdb); err != nil {
		return fmt.Errorf("migrate: %w", err)
	}

	rdb, err := cache.OpenRedis(ctx, cfg.RedisAddr, cfg.RedisDB, log)
	if err != nil {
		return err
	}
	defer rdb.Close()

	messages := gormrepo.NewMessageRepository(gdb)
	sinks := notifier.Fanout{notifier.NewStore(messages)}
	if cfg.NotifyStream != "" {
		sinks = append(sinks, notifier.NewRedisStream(rdb, cfg.NotifyStream))
	}
	if len(cfg.NotifyKafkaBrokers) > 0 {
		k := notifier.NewKafka(cfg.NotifyKafkaBrokers, cfg.NotifyKafkaTopic)
		defer k.Close()
		sinks = append(sinks, k)
	}
	var sink notification.Sink = sinks

	tx := gormrepo.NewGormUoW(gdb, gormrepo.WithTimeout(cfg.StoreTimeout))
	accounts := gormrepo.NewAccountRepository(gdb)
	regUC := registry.NewUsecase(tx, gormrepo.NewUserRepository(gdb), accounts,
		registry.WithPolicy(registry.Policy{
			SingleAccountPerUser: cfg.SingleAccountPerUser,
			MaxNumberAttempts:    cfg.AccountNumberAttempts,
		}),
		registry.WithLogger(log),
	)
	transferUC := transfer.NewUsecase(tx, gormrepo.NewTransactionRepository(gdb), transfer.WithLogger(log))
	loanUC := loan.NewUsecase(tx, gormrepo.NewLoanRepository(gdb), loan.WithSink(sink), loan.WithLogger(log))

	e := httpadp.NewServer(log, httpadp.ServerOptions{
		RateLimit:      cfg.RateLimitRPS,
		RequestTimeout: 2 * cfg.StoreTimeout,
	})
	httpadp.Register(e, httpadp.Routes{
		Health: httpadp.NewHandler(func(ctx context.Context) error {
			if err := sqlDB.PingContext(ctx); err != nil {
				return fmt.Errorf("db: %w", err)
			}
			return rdb.Ping(ctx).Err()
		}),
		Accounts:     httpadp.NewAccountHandler(regUC),
		Transactions: httpadp.NewTransactionHandler(transferUC),
		Loans:        httpadp.NewLoanHandler(loanUC),
		Approvals:    httpadp.NewApprovalHandler(loanUC),
		Messages:     httpadp.NewMessageHandler(messages),
		Idempotency:  middleware.IdempotencyMiddleware(rdb, cfg.IdempotencyTTL(), log),
	})

	errc := make(chan error, 1)
	go func() {
		addr := ":" + cfg.AppPort
		log.Info("listening", "addr", addr)
		if err := e.Start(addr); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errc <- err
		}
		close(errc)
	}()

	select {
	case err := <-errc:
		return err
	case <-ctx.Done():
	}
	log.Info("shutting down")
	sctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	return e.Shutdown(sctx)
}
