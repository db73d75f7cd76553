package config

import (
	"log"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// Config holds all configuration for the application
type Config struct {
	TelegramToken string
	MongoURI      string
	MongoDB       string
	ChatID        int64
	CacheFile     string
	SaveDebounce  time.Duration
}

// Load loads configuration from environment variables
func Load() *Config {
	err := godotenv.Load()
	if err != nil {
		log.Println("No .env file found or error loading it.")
	}

	chatIDStr := os.Getenv("TELEGRAM_CHAT_ID")
	chatID, err := strconv.ParseInt(chatIDStr, 10, 64)
	if err != nil {
		log.Fatal("Invalid TELEGRAM_CHAT_ID:", err)
	}

	config := &Config{
		TelegramToken: os.Getenv("TELEGRAM_BOT_TOKEN"),
		MongoURI:      os.Getenv("MONGODB_URI"),
		MongoDB:       os.Getenv("MONGODB_DB"),
		ChatID:        chatID,
		CacheFile:     envOrDefault("CACHE_FILE", "checkmate_cache.json"),
		SaveDebounce:  1500 * time.Millisecond,
	}

	if ms := os.Getenv("SAVE_DEBOUNCE_MS"); ms != "" {
		n, err := strconv.Atoi(ms)
		if err != nil || n < 0 {
			log.Fatal("Invalid SAVE_DEBOUNCE_MS:", ms)
		}
		config.SaveDebounce = time.Duration(n) * time.Millisecond
	}

	// Validate required fields
	if config.TelegramToken == "" {
		log.Fatal("TELEGRAM_BOT_TOKEN not set")
	}
	if config.MongoURI == "" {
		log.Fatal("MONGODB_URI not set")
	}
	if config.MongoDB == "" {
		log.Fatal("MONGODB_DB not set")
	}
	if config.ChatID == 0 {
		log.Fatal("TELEGRAM_CHAT_ID not set")
	}

	return config
}

// IsAuthorizedChat checks whether a message comes from the configured group
func (c *Config) IsAuthorizedChat(chatID int64) bool {
	return chatID == c.ChatID
}

func envOrDefault(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
