package main

import (
	"context"
	"flag"
	"log"
	"time"

	"github.com/lia-xyz/to-do-list-app/internal/app/repositories"
	"github.com/lia-xyz/to-do-list-app/internal/config"
)

func main() {
	reset := flag.Bool("reset", false, "empty the tasks table and restart ids (test environment only)")
	flag.Parse()

	cfg, err := config.Load("config")
	if err != nil {
		log.Fatal(err)
	}
	if err := cfg.Validate(); err != nil {
		log.Fatal(err)
	}
	if *reset && cfg.Env != config.EnvTest {
		log.Fatalf("-reset refused: CHECKLIST_ENV is %q, want %q", cfg.Env, config.EnvTest)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	repo, err := repositories.NewPostgresTaskRepo(cfg.DBDriver, cfg.DSN())
	if err != nil {
		log.Fatal(err)
	}
	defer repo.Close()

	if err := repo.Migrate(ctx); err != nil {
		log.Fatal(err)
	}
	log.Printf("Schema applied to %s on %s:%d", cfg.DBDatabase, cfg.DBHost, cfg.DBPort)

	if *reset {
		if err := repo.Reset(ctx); err != nil {
			log.Fatal(err)
		}
		log.Println("Tasks table reset")
	}
}
