package config

import (
	"log"
	"os"
)

type Config struct {
	Port string

	RosterBaseURL string
	RosterTerm    string
	SchoolID      string
	CourseBaseURL string

	Generator    string
	OpenAIAPIKey string
	OpenAIModel  string
	ImageModel   string
	GeminiAPIKey string
	GeminiModel  string

	// Optional integrations; empty means disabled.
	DatabaseURL      string
	TelegramBotToken string
	TelegramChatID   string

	DataDir             string
	AssetsDir           string
	VocabDir            string
	ITokenDir           string
	BlueprintConfigPath string
}

func mustEnv(k string) string {
	v := os.Getenv(k)
	if v == "" {
		log.Fatalf("missing required env %s", k)
	}
	return v
}

func getEnv(k, def string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return def
}

func Load() *Config {
	cfg := &Config{
		Port: getEnv("PORT", "8000"),

		RosterBaseURL: mustEnv("ROSTER_BASE_URL"),
		RosterTerm:    getEnv("ROSTER_TERM", "sem19"),
		SchoolID:      getEnv("SCHOOL_ID", "school1"),
		CourseBaseURL: mustEnv("COURSE_BASE_URL"),

		Generator:    getEnv("GENERATOR", "openai"),
		OpenAIAPIKey: mustEnv("OPENAI_API_KEY"),
		OpenAIModel:  getEnv("OPENAI_MODEL", "gpt-4o"),
		ImageModel:   getEnv("OPENAI_IMAGE_MODEL", "dall-e-3"),
		GeminiAPIKey: getEnv("GEMINI_API_KEY", ""),
		GeminiModel:  getEnv("GEMINI_MODEL", "gemini-2.5-flash"),

		DatabaseURL:      getEnv("DATABASE_URL", ""),
		TelegramBotToken: getEnv("TELEGRAM_BOT_TOKEN", ""),
		TelegramChatID:   getEnv("TELEGRAM_CHAT_ID", ""),

		DataDir:             getEnv("DATA_DIR", "data"),
		AssetsDir:           getEnv("ASSETS_DIR", "assets"),
		VocabDir:            getEnv("VOCAB_DIR", "assets/voc_local_db"),
		ITokenDir:           getEnv("ITOKEN_DIR", "assets/itoken_local_db"),
		BlueprintConfigPath: getEnv("BLUEPRINT_CONFIG", "config/build_activity_blueprint/config.json"),
	}
	if cfg.Generator == "gemini" && cfg.GeminiAPIKey == "" {
		log.Fatal("GENERATOR=gemini requires GEMINI_API_KEY")
	}
	return cfg
}
