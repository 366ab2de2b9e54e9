package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"greenledger/internal/commission"
	"greenledger/internal/config"
	"greenledger/internal/db"
	"greenledger/internal/httpserver"
	orderrepo "greenledger/internal/repository/order"
	paymentrepo "greenledger/internal/repository/payment"
	productrepo "greenledger/internal/repository/product"
	ordersvc "greenledger/internal/service/order"
	productsvc "greenledger/internal/service/product"
)

func main() {
	cfg := config.FromEnv()
	logger := log.New(os.Stdout, "[api] ", log.LstdFlags|log.LUTC|log.Lshortfile)

	ctx := context.Background()
	dbpool, err := db.Connect(ctx, cfg.DBConnString, cfg.DBMaxConns)
	if err != nil {
		logger.Fatalf("connect to db: %v", err)
	}
	defer dbpool.Close()

	productRepo := productrepo.NewPostgres(dbpool, logger)
	orderRepo := orderrepo.NewPostgres(dbpool, logger)
	paymentRepo := paymentrepo.NewPostgres(dbpool, logger)
	rates := commission.NewHTTPClient(cfg.CommissionRateURL, cfg.CommissionTimeout)

	productService := productsvc.New(productRepo)
	orderService := ordersvc.New(orderRepo, productRepo, paymentRepo, rates)

	srv, err := httpserver.New(cfg.HTTPAddr, logger, dbpool, httpserver.Deps{
		OrderSvc:   orderService,
		ProductSvc: productService,
	})
	if err != nil {
		logger.Fatalf("init server: %v", err)
	}

	serverErr := make(chan error, 1)
	go func() {
		logger.Printf("starting http server on %s", cfg.HTTPAddr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErr <- err
		}
	}()

	stopCh := make(chan os.Signal, 1)
	signal.Notify(stopCh, syscall.SIGINT, syscall.SIGTERM)

	select {
	case sig := <-stopCh:
		logger.Printf("received signal %s, shutting down", sig)
	case err := <-serverErr:
		logger.Printf("server error: %v", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		logger.Printf("graceful shutdown failed: %v", err)
	} else {
		logger.Printf("server stopped")
	}
}
