package main

import (
	"context"
	"encoding/json"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	amqp "github.com/rabbitmq/amqp091-go"
	"github.com/sirupsen/logrus"

	"github.com/yourplaces/backend/config"
	"github.com/yourplaces/backend/internal/infrastructure/media"
	"github.com/yourplaces/backend/pkg/helpers"
)

// The cleanup worker drains the media-cleanup queue and deletes the
// referenced objects from the bucket. Failed deletes are requeued once by
// the broker; permanently bad references are dropped.
func main() {
	_ = godotenv.Load()

	cfg := config.Load()
	logger := helpers.NewLogger(cfg.AppName+"-cleanup", cfg.Env)

	ctx := context.Background()

	gcsClient, err := helpers.NewGCSClient(ctx, cfg.GCSCredentialsJSONPath)
	if err != nil {
		log.Fatalf("failed to init GCS client: %v", err)
	}
	defer func() { _ = gcsClient.Close() }()
	store := media.NewStore(gcsClient, cfg.GCSBucket)

	conn, err := amqp.Dial(cfg.RabbitMQURL)
	if err != nil {
		log.Fatalf("failed to connect to rabbitmq: %v", err)
	}
	defer func() { _ = conn.Close() }()

	ch, err := conn.Channel()
	if err != nil {
		log.Fatalf("failed to open channel: %v", err)
	}
	defer func() { _ = ch.Close() }()

	if _, err := ch.QueueDeclare(cfg.RabbitMQCleanupQueue, true, false, false, false, nil); err != nil {
		log.Fatalf("failed to declare queue: %v", err)
	}
	if err := ch.Qos(16, 0, false); err != nil {
		log.Fatalf("failed to set qos: %v", err)
	}

	deliveries, err := ch.Consume(cfg.RabbitMQCleanupQueue, "", false, false, false, false, nil)
	if err != nil {
		log.Fatalf("failed to start consumer: %v", err)
	}

	logger.Infof("cleanup worker consuming from %s", cfg.RabbitMQCleanupQueue)

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	for {
		select {
		case <-quit:
			logger.Info("cleanup worker shutting down")
			return
		case d, ok := <-deliveries:
			if !ok {
				logger.Warn("delivery channel closed, exiting")
				return
			}
			handle(store, logger, d)
		}
	}
}

func handle(store *media.Store, logger *logrus.Logger, d amqp.Delivery) {
	var job media.CleanupJob
	if err := json.Unmarshal(d.Body, &job); err != nil {
		logger.Warnf("dropping malformed cleanup job: %v", err)
		_ = d.Nack(false, false)
		return
	}
	if job.Ref == "" {
		_ = d.Ack(false)
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := store.Delete(ctx, job.Ref); err != nil {
		// Requeue once; redelivered failures are dropped so a bad
		// reference cannot wedge the queue.
		if d.Redelivered {
			logger.Warnf("dropping cleanup job after retry ref=%s: %v", job.Ref, err)
			_ = d.Nack(false, false)
		} else {
			logger.Warnf("cleanup failed, requeueing ref=%s: %v", job.Ref, err)
			_ = d.Nack(false, true)
		}
		return
	}
	logger.Infof("deleted media object ref=%s", job.Ref)
	_ = d.Ack(false)
}
