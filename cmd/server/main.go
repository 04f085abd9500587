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
	"github.com/labstack/echo/v4/middleware"

	"github.com/jammission/backend/internal/config"
	"github.com/jammission/backend/internal/es"
	"github.com/jammission/backend/internal/handlers"
	"github.com/jammission/backend/internal/handlers/cart"
	"github.com/jammission/backend/internal/logging"
	"github.com/jammission/backend/internal/mykafka"
	"github.com/jammission/backend/internal/notify"
	"github.com/jammission/backend/internal/service/token"
	"github.com/jammission/backend/internal/session"
	httpserver "github.com/jammission/backend/internal/transport/http"
)

func main() {
	configuration, err := config.LoadConfig()
	if err != nil {
		log.Fatal(err)
	}

	logger := logging.New(configuration.LOG_LEVEL)

	db, err := config.InitDB(configuration)
	if err != nil {
		log.Fatalf("database init error: %v", err)
	}

	rdb, err := config.InitRedis(configuration)
	if err != nil {
		log.Fatalf("redis init error: %v", err)
	}

	prod := mykafka.NewProducer([]string{configuration.KAFKA_ADDRESS})

	esClient, err := es.NewClient(configuration)
	if err != nil {
		log.Fatalf("elasticsearch init error: %v", err)
	}

	mailer := notify.NewSMTPMailer(
		configuration.SMTP_HOST,
		configuration.SMTP_PORT,
		configuration.SMTP_USER,
		configuration.SMTP_PASSWORD,
		configuration.SMTP_FROM,
	)
	dispatcher := notify.NewDispatcher(mailer, configuration.NOTIFY_EMAILS, logger)

	jwtSecret := []byte(configuration.JWT_SECRET)
	refreshSecret := []byte(configuration.REFRESH_SECRET)

	e := echo.New()
	e.Pre(middleware.RemoveTrailingSlash())
	e.Use(middleware.Recover(), middleware.RequestID())

	deps := httpserver.Deps{
		DB:                 db,
		AuthHandler:        &handlers.AuthHandler{DB: db, JWTSecret: jwtSecret, RefreshSecret: refreshSecret, BootstrapToken: configuration.BOOTSTRAP_TOKEN, Producer: prod},
		ProductHandler:     &handlers.ProductHandler{DB: db, Producer: prod, ES: esClient},
		ServiceHandler:     &handlers.ServiceHandler{DB: db, Producer: prod},
		EventHandler:       &handlers.EventHandler{DB: db, Producer: prod},
		BookingHandler:     &handlers.BookingHandler{DB: db, Producer: prod, Notifier: dispatcher},
		OrderHandler:       &handlers.OrderHandler{DB: db, Producer: prod, Notifier: dispatcher},
		ContactHandler:     &handlers.ContactHandler{DB: db, Producer: prod, Notifier: dispatcher},
		ApplicationHandler: &handlers.ApplicationHandler{DB: db, Producer: prod, Notifier: dispatcher},
		NewsletterHandler:  &handlers.NewsletterHandler{DB: db, Producer: prod},
		BlogHandler:        &handlers.BlogHandler{DB: db, Producer: prod},
		DashboardHandler:   &handlers.DashboardHandler{DB: db},
		SearchHandler:      &handlers.SearchHandler{ES: esClient},
		CartHandler:        &cart.CartHandler{DB: db, Store: session.NewRedisCartStore(rdb), Producer: prod, Notifier: dispatcher},
		TokenService:       &token.TokenService{DB: db, JWTSecret: jwtSecret, RefreshSecret: refreshSecret},
	}

	httpserver.Register(e, &deps)

	srv := &http.Server{
		Addr:         ":8080",
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
	if err := rdb.Close(); err != nil {
		log.Printf("redis close error: %v", err)
	}
	if err := prod.Close(); err != nil {
		log.Printf("kafka close error: %v", err)
	}

	log.Println("shutdown complete")
}
