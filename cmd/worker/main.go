package main

// The worker consumes ticket.purchased events and appends them to the
// purchases audit log. It runs as a separate process so the HTTP server
// stays free of background work.

import (
	"os"

	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"

	"github.com/sovarares/standup-tickets/internal/queue"
)

func main() {
	_ = godotenv.Load()

	logrus.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
	logrus.Info("purchase consumer starting")

	if err := queue.StartPurchaseConsumer(os.Getenv("RABBITMQ_URL")); err != nil {
		logrus.Fatalf("consumer stopped: %v", err)
	}
}
