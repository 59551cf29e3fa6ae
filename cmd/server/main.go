package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/akoikkara/adu-shertu-backend/internal/httpapi"
	"github.com/akoikkara/adu-shertu-backend/internal/hub"
	"github.com/akoikkara/adu-shertu-backend/internal/store"
)

func main() {
	_ = godotenv.Load()

	log, err := zap.NewProduction()
	if err != nil {
		panic(err)
	}
	defer log.Sync()

	addr := os.Getenv("ADDR")
	if addr == "" {
		addr = ":8080"
	}

	var ledger *store.Ledger
	if dsn := os.Getenv("DATABASE_URL"); dsn != "" {
		ledger, err = store.Open(dsn)
		if err != nil {
			log.Fatal("okalu ledger unavailable", zap.Error(err))
		}
		log.Info("okalu ledger connected")
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	h := hub.NewHub(ctx, ledger, log)
	srv := &http.Server{
		Addr:    addr,
		Handler: httpapi.SetupRoutes(h, log),
	}

	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		log.Info("listening", zap.String("addr", addr))
		if err := srv.ListenAndServe(); !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		<-ctx.Done()
		h.Inbox() <- hub.ShutdownHub{}
		return srv.Shutdown(context.Background())
	})

	if err := g.Wait(); err != nil {
		log.Fatal("server stopped", zap.Error(err))
	}
}
