package main

import (
	"context"
	"database/sql"
	"log"
	"math/rand"
	"net/http"
	"time"

	_ "github.com/jackc/pgx/v5/stdlib" // pgx driver
	"go.uber.org/zap"

	"lottie-studio/api/internal/activity"
	"lottie-studio/api/internal/config"
	"lottie-studio/api/internal/course"
	"lottie-studio/api/internal/genagent"
	"lottie-studio/api/internal/genagent/gemini"
	"lottie-studio/api/internal/genagent/openai"
	"lottie-studio/api/internal/handle"
	"lottie-studio/api/internal/itoken"
	"lottie-studio/api/internal/notify"
	"lottie-studio/api/internal/roster"
	"lottie-studio/api/internal/store"
)

func main() {
	cfg := config.Load()

	logger, err := zap.NewProduction()
	if err != nil {
		log.Fatalf("zap: %v", err)
	}
	defer logger.Sync()

	// --- resolvers over the external services ---
	rosters := roster.NewResolver(roster.NewClient(cfg.RosterBaseURL, cfg.RosterTerm, cfg.SchoolID), logger)
	vocab := course.NewVocabStore(cfg.VocabDir)
	courses := course.NewResolver(course.NewClient(cfg.CourseBaseURL), vocab, logger)
	tokens := itoken.NewStore(cfg.ITokenDir)

	// --- generation engines ---
	engines := &genagent.Engines{
		Default: cfg.Generator,
		OpenAI:  openai.New(cfg.OpenAIAPIKey, cfg.OpenAIModel),
		Gemini:  gemini.New(cfg.GeminiAPIKey, cfg.GeminiModel),
		Image:   openai.NewImage(cfg.OpenAIAPIKey, cfg.ImageModel),
	}
	gen, err := engines.Get(cfg.Generator)
	if err != nil {
		logger.Fatal("generator", zap.Error(err))
	}

	// --- persistence ---
	files, err := store.NewFileStore(cfg.DataDir)
	if err != nil {
		logger.Fatal("file store", zap.Error(err))
	}
	var history activity.HistoryRecorder
	if cfg.DatabaseURL != "" {
		db, err := sql.Open("pgx", cfg.DatabaseURL)
		if err != nil {
			logger.Fatal("sql.Open", zap.Error(err))
		}
		db.SetMaxOpenConns(5)
		db.SetMaxIdleConns(5)
		db.SetConnMaxLifetime(1 * time.Hour)

		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		if err := db.PingContext(ctx); err != nil {
			logger.Fatal("db.Ping", zap.Error(err))
		}
		cancel()
		history = store.NewHistoryRepo(db)
		logger.Info("history mirror enabled")
	}

	// --- operator channel ---
	var notifier notify.Notifier = notify.Nop{}
	if cfg.TelegramBotToken != "" && cfg.TelegramChatID != "" {
		tg, err := notify.NewTelegram(cfg.TelegramBotToken, cfg.TelegramChatID, logger)
		if err != nil {
			logger.Fatal("telegram notifier", zap.Error(err))
		}
		notifier = tg
		logger.Info("operator notifications enabled")
	}

	rng := rand.New(rand.NewSource(time.Now().UnixNano()))

	h := &handle.Handle{
		Blueprints: &activity.BlueprintService{
			ConfigPath: cfg.BlueprintConfigPath,
			Rosters:    rosters,
			Courses:    courses,
			Tokens:     tokens,
			Gen:        gen,
			Store:      files,
			Rand:       rng,
			Log:        logger,
		},
		Activities: &activity.Service{
			Builder: activity.NewBuilder(engines.Image, logger),
			Store:   files,
			History: history,
			Log:     logger,
		},
		Rosters:   rosters,
		Courses:   courses,
		Notifier:  notifier,
		DataDir:   cfg.DataDir,
		AssetsDir: cfg.AssetsDir,
		Log:       logger,
	}

	mux := http.NewServeMux()
	h.Register(mux)

	addr := ":" + cfg.Port
	logger.Info("lottie-studio listening", zap.String("addr", addr))
	logger.Fatal("server", zap.Error(http.ListenAndServe(addr, mux)))
}
