package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"go.uber.org/zap"

	"github.com/storekit/ecomm-api/internal/config"
	"github.com/storekit/ecomm-api/internal/httpx"
	kafkax "github.com/storekit/ecomm-api/internal/kafka"
	"github.com/storekit/ecomm-api/internal/postgres"
	"github.com/storekit/ecomm-api/internal/redisx"
	"github.com/storekit/ecomm-api/internal/shop"
)

func main() {
	_ = godotenv.Load()

	cfg := config.Load()
	logger, err := newLogger(cfg.Env)
	if err != nil {
		log.Fatalf("logger: %v", err)
	}
	defer func() { _ = logger.Sync() }()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// DB
	db, err := postgres.Connect(ctx, cfg.PostgresDSN)
	if err != nil {
		logger.Fatal("db connect", zap.Error(err))
	}
	defer db.Close()
	if err := postgres.Migrate(ctx, db); err != nil {
		logger.Fatal("db migrate", zap.Error(err))
	}

	// Redis
	rdb := redisx.New(cfg.RedisAddr)
	defer rdb.Close()

	// Kafka producers, one per lifecycle topic
	pPlaced := kafkax.NewProducer(cfg.KafkaBrokers, shop.TopicOrderPlaced, 1024, logger)
	pPlaced.Start(ctx)
	pCanceled := kafkax.NewProducer(cfg.KafkaBrokers, shop.TopicOrderCanceled, 1024, logger)
	pCanceled.Start(ctx)
	pRestocked := kafkax.NewProducer(cfg.KafkaBrokers, shop.TopicProductsRestocked, 1024, logger)
	pRestocked.Start(ctx)

	// Repos & handlers
	router := httpx.NewRouter(logger)
	(&httpx.CustomersHandler{
		Store: &shop.CustomerRepo{DB: db},
		Log:   logger,
	}).Register(router)
	(&httpx.AccountsHandler{
		Store: &shop.AccountRepo{DB: db},
		Log:   logger,
	}).Register(router)
	(&httpx.ProductsHandler{
		Store:    &shop.ProductRepo{DB: db},
		Lock:     redisx.Locker{C: rdb},
		Producer: pRestocked,
		Service:  cfg.ServiceName,
		Log:      logger,
	}).Register(router)
	(&httpx.OrdersHandler{
		Store:    &shop.OrderRepo{DB: db},
		Placed:   pPlaced,
		Canceled: pCanceled,
		Service:  cfg.ServiceName,
		Log:      logger,
	}).Register(router)

	// HTTP server
	srv := &http.Server{Addr: cfg.HTTPAddr, Handler: router}

	go func() {
		logger.Info("HTTP listening", zap.String("addr", cfg.HTTPAddr))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal("listen", zap.Error(err))
		}
	}()

	// wait signal
	sig := make(chan os.Signal, 1)
	signal.Notify(sig, syscall.SIGINT, syscall.SIGTERM)
	<-sig
	logger.Info("shutting down")

	ctx2, cancel2 := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel2()
	_ = srv.Shutdown(ctx2)

	// flush producers, then stop their loops
	pPlaced.Close()
	pCanceled.Close()
	pRestocked.Close()
	cancel()
	pPlaced.WaitClosed()
	pCanceled.WaitClosed()
	pRestocked.WaitClosed()
}

func newLogger(env string) (*zap.Logger, error) {
	if env == "production" || env == "prod" {
		return zap.NewProduction()
	}
	return zap.NewDevelopment()
}
