package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/lia-xyz/to-do-list-app/internal/app/handlers"
	"github.com/lia-xyz/to-do-list-app/internal/app/repositories"
	"github.com/lia-xyz/to-do-list-app/internal/app/services"
	"github.com/lia-xyz/to-do-list-app/internal/config"
	"github.com/lia-xyz/to-do-list-app/internal/kafka"
	"github.com/lia-xyz/to-do-list-app/web"
	"github.com/redis/go-redis/v9"
)

func main() {
	cfg, err := config.Load("config")
	if err != nil {
		log.Fatal(err)
	}
	if err := cfg.Validate(); err != nil {
		log.Fatal(err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	repo, err := repositories.NewPostgresTaskRepo(cfg.DBDriver, cfg.DSN())
	if err != nil {
		log.Fatal(err)
	}
	defer repo.Close()

	if err := repo.Migrate(ctx); err != nil {
		log.Fatal(err)
	}

	var opts []services.Option

	if cfg.CacheEnabled() {
		rdb := redis.NewClient(&redis.Options{
			Addr:     cfg.RedisAddr,
			Password: cfg.RedisPassword,
			DB:       cfg.RedisDB,
		})
		defer rdb.Close()

		if err := rdb.Ping(ctx).Err(); err != nil {
			log.Printf("redis %s unreachable, serving without cache until it recovers: %v", cfg.RedisAddr, err)
		}
		opts = append(opts, services.WithCache(repositories.NewRedisTaskCache(rdb), cfg.CacheTTL))
		log.Printf("Caching reads in redis %s (ttl %s)", cfg.RedisAddr, cfg.CacheTTL)
	}

	if cfg.EventsEnabled() {
		producer := kafka.NewProducer(cfg.KafkaBroker, cfg.KafkaTopic)
		defer producer.Close()

		opts = append(opts, services.WithEvents(producer))
		log.Printf("Publishing task events to %s/%s", cfg.KafkaBroker, cfg.KafkaTopic)
	}

	service := services.NewTaskService(repo, opts...)

	router := handlers.NewRouter(service, handlers.RouterConfig{
		AllowedOrigins: cfg.CORSOrigins,
		Assets:         web.Assets,
	})

	srv := &http.Server{
		Addr:    ":" + cfg.APIPort,
		Handler: router,
	}

	go func() {
		log.Printf("API started on :%s", cfg.APIPort)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal(err)
		}
	}()

	<-ctx.Done()
	log.Println("Shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Printf("shutdown: %v", err)
	}
}
