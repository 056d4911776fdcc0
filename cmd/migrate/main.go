package main

import (
	"context"

	"github.com/Tarakeshp07/livekit-server/internal/config" // Configuration
	"github.com/Tarakeshp07/livekit-server/internal/db"     // MongoDB connection and indexes

	"github.com/sirupsen/logrus" // Structured logging
)

// Standalone index sync: creates the unique username/email indexes and the
// institutionName/createdAt indexes without starting the server
func main() {
	cfg, err := config.LoadConfig() // Load configuration
	if err != nil {
		logrus.Fatalf("invalid configuration: %v", err)
	}
	ctx := context.Background()
	database, err := db.Connect(ctx, cfg.MongoURI, cfg.MongoDatabase)
	if err != nil {
		logrus.Fatalf("failed to connect to MongoDB: %v", err)
	}
	if err := db.EnsureIndexes(ctx, database); err != nil {
		logrus.Fatalf("index creation failed: %v", err)
	}
	logrus.Info("Indexes created.")
}
