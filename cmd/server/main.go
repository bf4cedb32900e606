package main

import (
	"log"
	"log/slog"
	"net/http"
	"os"
	"time"

	"github.com/joho/godotenv"

	"moodmate/internal/app"
	"moodmate/internal/config"
	"moodmate/internal/ratelimit"
	"moodmate/internal/server"
	"moodmate/internal/util"
	"moodmate/pkg/sentiment"
	"moodmate/pkg/storage"
	"moodmate/pkg/voice"
)

func main() {
	// Load .env if present; absence is not an error.
	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		log.Printf("warning: could not load .env: %v", err)
	}

	cfg, err := config.Load(config.ConfigPath)
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}
	sessionTTL, err := config.ParseSessionTTL(cfg.SessionTTL)
	if err != nil {
		log.Fatalf("failed to parse session TTL: %v", err)
	}

	logger := util.InitLogger(cfg.LogLevel)

	analyzer := sentiment.NewHTTPAnalyzer(cfg.SentimentURL, cfg.SentimentAPIKey)
	synthesizer := voice.NewElevenLabsSynthesizer(cfg.VoiceURL, cfg.VoiceAPIKey, cfg.VoiceID, cfg.VoiceModel)

	var archive storage.ObjectStore
	if cfg.AudioArchiveEndpoint != "" {
		minioStore, err := storage.NewMinioStore(
			cfg.AudioArchiveEndpoint,
			cfg.AudioArchiveAccessKey,
			cfg.AudioArchiveSecretKey,
			cfg.AudioArchiveBucket,
			cfg.AudioArchiveUseSSL,
		)
		if err != nil {
			log.Fatalf("failed to init audio archive: %v", err)
		}
		archive = minioStore
	}

	appCore, err := app.New(app.Config{
		DatabaseURL:   cfg.DatabaseURL,
		RedisAddr:     cfg.RedisAddr,
		RedisPassword: cfg.RedisPassword,
		JWTSecret:     cfg.JWTSecret,
		SessionTTL:    sessionTTL,
		Analyzer:      analyzer,
		Synthesizer:   synthesizer,
		Archive:       archive,
	})
	if err != nil {
		log.Fatalf("failed to init app: %v", err)
	}

	registerLimiter := newLimiter(cfg, "register", cfg.RegisterRateLimitPerMinute)
	loginLimiter := newLimiter(cfg, "login", cfg.LoginRateLimitPerMinute)

	httpServer := server.New(server.Config{
		App:             appCore,
		RegisterLimiter: registerLimiter,
		LoginLimiter:    loginLimiter,
		TrustProxy:      cfg.TrustProxy,
	})

	addr := ":" + cfg.Port
	srv := &http.Server{
		Addr:         addr,
		Handler:      httpServer.Router(),
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 60 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	slog.Info("moodmate server listening", "addr", addr)
	if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		logger.Error("server error", "err", err)
	}
}

func newLimiter(cfg config.FileConfig, name string, perMinute int) *ratelimit.FixedWindowLimiter {
	if perMinute <= 0 {
		return nil
	}
	limiter, err := ratelimit.NewRedisFixedWindowLimiter(
		cfg.RedisAddr,
		cfg.RedisPassword,
		"moodmate:ratelimit:"+name,
		perMinute,
		time.Minute,
	)
	if err != nil {
		log.Fatalf("failed to init %s rate limiter: %v", name, err)
	}
	return limiter
}
