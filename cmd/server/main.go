package main

import (
	"context"

	"github.com/Tarakeshp07/livekit-server/internal/api"        // API handlers
	"github.com/Tarakeshp07/livekit-server/internal/config"     // Configuration
	"github.com/Tarakeshp07/livekit-server/internal/db"         // MongoDB connection and indexes
	"github.com/Tarakeshp07/livekit-server/internal/middleware" // Request logging
	"github.com/Tarakeshp07/livekit-server/internal/store"      // User store
	"github.com/Tarakeshp07/livekit-server/internal/utils"      // Cache helper

	"github.com/gin-contrib/cors"  // CORS middleware
	"github.com/gin-gonic/gin"     // Gin web framework
	"github.com/redis/go-redis/v9" // Redis client
	"github.com/sirupsen/logrus"   // Logrus for structured logging
)

// Main function to set up and run the server
func main() {
	cfg, err := config.LoadConfig() // Load configuration, fails closed in production
	if err != nil {
		logrus.Fatalf("invalid configuration: %v", err)
	}

	// Setup logger
	logrus.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})

	// Connect to MongoDB and make sure the unique indexes exist before
	// serving any traffic
	ctx := context.Background()
	database, err := db.Connect(ctx, cfg.MongoURI, cfg.MongoDatabase)
	if err != nil {
		logrus.Fatalf("failed to connect to MongoDB: %v", err)
	}
	if err := db.EnsureIndexes(ctx, database); err != nil {
		logrus.Fatalf("failed to create indexes: %v", err)
	}
	logrus.Info("Connected to database")

	// Setup optional Redis client for stats caching
	var redisClient *redis.Client
	if cfg.RedisAddr != "" {
		redisClient = redis.NewClient(&redis.Options{
			Addr:     cfg.RedisAddr, // Redis server address
			Password: cfg.RedisPass, // Redis password
			DB:       cfg.RedisDB,   // Redis database number
		})
		if _, err := redisClient.Ping(ctx).Result(); err != nil {
			logrus.Fatalf("failed to connect to Redis: %v", err)
		}
	}
	cache := utils.NewCache(redisClient) // Nil when Redis is not configured

	// Set Mode to Release if in production
	if cfg.IsProd {
		gin.SetMode(gin.ReleaseMode)
	}

	// Setup Gin
	r := gin.New()
	r.Use(middleware.RequestLogger(), gin.Recovery(), cors.Default())

	// Set trusted proxies for Gin
	if err := r.SetTrustedProxies([]string{"127.0.0.1"}); err != nil {
		logrus.Fatalf("failed to set trusted proxies: %v", err)
	}

	users := store.NewMongoUserStore(database) // User store over the users collection

	// Index and LiveKit grant routes
	r.GET("/", api.IndexHandler())
	r.GET("/token", api.TokenHandler(cfg.LiveKitAPIKey, cfg.LiveKitAPISecret))

	// User routes
	userGroup := r.Group("/api/users")
	userGroup.GET("", api.ListUsersHandler(users))                            // List with pagination and filters
	userGroup.GET("/search", api.SearchUsersHandler(users))                   // Substring search
	userGroup.GET("/stats", api.UserStatsHandler(users, cache))               // Aggregated counters
	userGroup.GET("/:id", api.GetUserHandler(users))                          // Get by id
	userGroup.POST("/signup", api.SignupHandler(users, cache, cfg.JWTSecret)) // Signup endpoint
	userGroup.POST("/login", api.LoginHandler(users, cfg.JWTSecret))          // Login endpoint
	userGroup.PUT("/:id", api.UpdateUserHandler(users, cache))                // Partial update
	userGroup.DELETE("/:id", api.DeleteUserHandler(users, cache))             // Delete

	logrus.Info("Server running on " + cfg.AppPort) // Log server start
	if err := r.Run(":" + cfg.AppPort); err != nil {
		logrus.Fatalf("server stopped: %v", err)
	}
}
