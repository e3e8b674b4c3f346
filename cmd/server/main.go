package main

import (
	"context"
	"errors"
	"io/fs"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"
	"go.uber.org/zap"

	"dashboard/internal/auth"
	"dashboard/internal/cache"
	"dashboard/internal/config"
	"dashboard/internal/customer"
	"dashboard/internal/infrastructure/logger"
	"dashboard/internal/infrastructure/mysql"
	"dashboard/internal/invoice"
	"dashboard/internal/overview"
	"dashboard/internal/product"
	"dashboard/internal/query"
	"dashboard/internal/server"
	"dashboard/internal/web"
)

func main() {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		log.Fatalf("loading .env: %v", err)
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("loading config: %v", err)
	}

	zapLogger, err := logger.New(cfg.Log)
	if err != nil {
		log.Fatalf("creating logger: %v", err)
	}
	defer zapLogger.Sync()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	db, err := mysql.NewConnection(ctx, cfg.Database)
	if err != nil {
		zapLogger.Fatal("connecting to database", zap.Error(err))
	}
	defer db.Close()
	zapLogger.Info("database connected")

	renderer, err := web.NewRenderer(zapLogger)
	if err != nil {
		zapLogger.Fatal("parsing templates", zap.Error(err))
	}
	pages := cache.NewPages(cfg.Cache.TTL, zapLogger)

	authModule := auth.NewModule(db, cfg, renderer, zapLogger)
	productModule := product.NewModule(db, cfg, pages, renderer, zapLogger)

	router := server.NewRouter(server.Handlers{
		Session:        authModule.Session,
		Overview:       overview.NewModule(db, renderer, zapLogger),
		Invoices:       invoice.NewModule(db, pages, renderer, zapLogger),
		Customers:      customer.NewModule(db, renderer, zapLogger),
		ProductAPI:     productModule.API,
		ProductPages:   productModule.Pages,
		Query:          query.NewModule(db, cfg, zapLogger),
		RequireSession: auth.RequireSession(authModule.Verifier, zapLogger),
		RequireBearer:  auth.RequireBearer(authModule.Verifier, zapLogger),
	}, zapLogger)

	srv := server.New(cfg.Server, router, zapLogger)

	if err := srv.ListenAndRun(ctx); err != nil {
		zapLogger.Error("server error", zap.Error(err))
		os.Exit(1)
	}

	zapLogger.Info("server stopped gracefully")
}
