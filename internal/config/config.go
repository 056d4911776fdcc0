package config

import (
	"fmt"
	"os"      // For environment variables
	"strconv" // For string to int conversion

	"github.com/joho/godotenv" // For loading .env files
)

// Config holds the application configuration
type Config struct {
	AppPort          string // Application port
	MongoURI         string // MongoDB connection string
	MongoDatabase    string // MongoDB database name
	JWTSecret        string // JWT secret key for bearer tokens
	LiveKitAPIKey    string // LiveKit API key for room grants
	LiveKitAPISecret string // LiveKit API secret for room grants
	RedisAddr        string // Redis server address (empty disables caching)
	RedisPass        string // Redis password
	RedisDB          int    // Redis database number
	IsProd           bool   // Is production environment
}

// Development fallbacks. Insecure on purpose; production refuses to start
// without real values.
const (
	devJWTSecret        = "dev-secret-key"
	devLiveKitAPIKey    = "devkey"
	devLiveKitAPISecret = "dev-livekit-secret"
	devMongoURI         = "mongodb://localhost:27017"
	devMongoDatabase    = "livekit_users"
	devAppPort          = "3000"
)

// LoadConfig loads configuration from environment variables. In production
// (IS_PROD=true) it fails closed: any missing secret or connection string is
// a startup error instead of a silent insecure default.
func LoadConfig() (*Config, error) {
	_ = godotenv.Load() // Load .env file if present
	redisDB, _ := strconv.Atoi(os.Getenv("REDIS_DB"))
	cfg := &Config{
		AppPort:          getEnv("APP_PORT", devAppPort),
		MongoURI:         os.Getenv("MONGODB_URI"),
		MongoDatabase:    getEnv("MONGODB_DATABASE", devMongoDatabase),
		JWTSecret:        os.Getenv("JWT_SECRET"),
		LiveKitAPIKey:    os.Getenv("LK_API_KEY"),
		LiveKitAPISecret: os.Getenv("LK_API_SECRET"),
		RedisAddr:        os.Getenv("REDIS_ADDR"),
		RedisPass:        os.Getenv("REDIS_PASS"),
		RedisDB:          redisDB,
		IsProd:           os.Getenv("IS_PROD") == "true",
	}
	if cfg.IsProd {
		// Fail closed: no hardcoded credential fallbacks in production
		for name, value := range map[string]string{
			"MONGODB_URI":   cfg.MongoURI,
			"JWT_SECRET":    cfg.JWTSecret,
			"LK_API_KEY":    cfg.LiveKitAPIKey,
			"LK_API_SECRET": cfg.LiveKitAPISecret,
		} {
			if value == "" {
				return nil, fmt.Errorf("config: %s must be set when IS_PROD=true", name)
			}
		}
		return cfg, nil
	}
	// Development fallbacks
	if cfg.MongoURI == "" {
		cfg.MongoURI = devMongoURI
	}
	if cfg.JWTSecret == "" {
		cfg.JWTSecret = devJWTSecret
	}
	if cfg.LiveKitAPIKey == "" {
		cfg.LiveKitAPIKey = devLiveKitAPIKey
	}
	if cfg.LiveKitAPISecret == "" {
		cfg.LiveKitAPISecret = devLiveKitAPISecret
	}
	return cfg, nil
}

// getEnv reads an environment variable with a fallback
func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
