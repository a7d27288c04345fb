package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/velmart/storefront/internal/config"
	"github.com/velmart/storefront/internal/events"
	"github.com/velmart/storefront/internal/httpserver"
	"github.com/velmart/storefront/internal/logging"
	"github.com/velmart/storefront/internal/policy"
	"github.com/velmart/storefront/internal/repo"
	"github.com/velmart/storefront/internal/search"
	"github.com/velmart/storefront/internal/service"
	"github.com/velmart/storefront/internal/token"
	"github.com/velmart/storefront/internal/upload"
)

const productIndex = "products"

func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatal(err)
	}

	logger := logging.New(cfg.LOG_LEVEL)

	db, err := config.InitDB(cfg)
	if err != nil {
		log.Fatalf("db init error: %v", err)
	}

	producer := events.NewProducer([]string{cfg.KAFKA_ADDRESS})

	esClient, err := search.NewClient(cfg)
	if err != nil {
		log.Fatalf("elasticsearch init error: %v", err)
	}

	store, err := upload.NewStore(cfg.UPLOAD_DIR)
	if err != nil {
		log.Fatal(err)
	}

	repository := repo.New(db)
	tokens := &token.Service{Secret: []byte(cfg.JWT_SECRET)}

	authSvc := &service.AuthService{Repo: repository, Tokens: tokens, Producer: producer}
	catalogSvc := &service.CatalogService{Repo: repository, Producer: producer, ES: esClient, Index: productIndex}
	orderSvc := &service.OrderService{Repo: repository, Producer: producer}

	e := echo.New()
	e.HideBanner = true

	httpserver.Register(e, &httpserver.Deps{
		APIRoot:    cfg.API_URL,
		Tokens:     tokens,
		Policy:     policy.New(cfg.API_URL),
		Users:      &httpserver.UserHandler{Svc: authSvc},
		Products:   &httpserver.ProductHandler{Svc: catalogSvc, ES: esClient, Index: productIndex},
		Categories: &httpserver.CategoryHandler{Svc: catalogSvc},
		Orders:     &httpserver.OrderHandler{Svc: orderSvc},
		Uploads:    &httpserver.UploadHandler{Store: store},
		UploadDir:  cfg.UPLOAD_DIR,
		Logger:     logger,
	})

	srv := &http.Server{
		Addr:         ":" + cfg.PORT,
		Handler:      e,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Printf("http server error: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Println("shutting down...")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Printf("server shutdown error: %v", err)
	}

	if sqlDB, err := db.DB(); err == nil {
		if err := sqlDB.Close(); err != nil {
			log.Printf("db close error: %v", err)
		}
	}

	if err := producer.Close(); err != nil {
		log.Printf("kafka close error: %v", err)
	}

	log.Println("shutdown complete")
}
