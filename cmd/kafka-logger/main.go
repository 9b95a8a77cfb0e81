package main

import (
	"context"
	"errors"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/lia-xyz/to-do-list-app/internal/config"
	"github.com/lia-xyz/to-do-list-app/internal/kafka"
)

const groupID = "todo-event-logger"

func main() {
	cfg, err := config.Load("config")
	if err != nil {
		log.Fatal(err)
	}

	if !cfg.EventsEnabled() || cfg.KafkaLogFile == "" {
		log.Fatal("kafka_broker, kafka_topic or kafka_log_file is not configured")
	}

	file, err := os.OpenFile(cfg.KafkaLogFile, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
	if err != nil {
		log.Fatalf("failed to open log file: %v", err)
	}
	defer file.Close()

	logger := log.New(file, "", log.LstdFlags)
	logger.Println("Kafka Logger started")

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	consumer := kafka.NewConsumer(cfg.KafkaBroker, cfg.KafkaTopic, groupID)
	defer consumer.Close()

	for {
		line, err := consumer.Next(ctx)
		if err != nil {
			if errors.Is(err, context.Canceled) || ctx.Err() != nil {
				logger.Println("Kafka Logger stopped")
				return
			}
			logger.Printf("error reading message: %v", err)
			continue
		}

		logger.Println(line)
	}
}
