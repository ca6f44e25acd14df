package config

import (
	"fmt"
	"os"
	"strconv"
)

// Config holds the configuration for the application.
type Config struct {
	// GeminiAPIKey is only needed when a plan is generated; replaying a
	// stored plan works without it.
	GeminiAPIKey string

	// Telegram delivery (optional; the CLI prints the list when unset)
	TelegramBotToken string
	TelegramChatID   int64

	DatabasePath      string
	RecipeStoragePath string
	OptionsPath       string
}

// NewFromEnv creates a new Config object from environment variables.
func NewFromEnv() (*Config, error) {
	telegramBotToken := os.Getenv("TELEGRAM_BOT_TOKEN")
	var telegramChatID int64
	if s := os.Getenv("TELEGRAM_CHAT_ID"); s != "" {
		id, err := strconv.ParseInt(s, 10, 64)
		if err != nil {
			return nil, fmt.Errorf("TELEGRAM_CHAT_ID is not a number: %w", err)
		}
		telegramChatID = id
	}

	databasePath := os.Getenv("DATABASE_PATH")
	if databasePath == "" {
		databasePath = "./mealbot.db"
	}

	recipeStoragePath := os.Getenv("RECIPE_STORAGE_PATH")
	if recipeStoragePath == "" {
		recipeStoragePath = "./recipes"
	}

	return &Config{
		GeminiAPIKey:      os.Getenv("GEMINI_API_KEY"),
		TelegramBotToken:  telegramBotToken,
		TelegramChatID:    telegramChatID,
		DatabasePath:      databasePath,
		RecipeStoragePath: recipeStoragePath,
		OptionsPath:       os.Getenv("OPTIONS_PATH"),
	}, nil
}

// RequireGeminiKey checks the Gemini credential is present. Callers on
// the generation path invoke it before creating the LLM client.
func (c *Config) RequireGeminiKey() error {
	if c.GeminiAPIKey == "" {
		return fmt.Errorf("GEMINI_API_KEY environment variable not set")
	}
	return nil
}
