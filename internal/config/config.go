package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"time"

	"gopkg.in/yaml.v3"
)

// ConfigPath is the default config file location.
const ConfigPath = "config.yaml"

// FileConfig represents configuration loaded from YAML. Secrets and
// connection settings can be overridden from the environment.
type FileConfig struct {
	Port          string `yaml:"port"`
	LogLevel      string `yaml:"logLevel"`
	DatabaseURL   string `yaml:"databaseURL"`
	RedisAddr     string `yaml:"redisAddr"`
	RedisPassword string `yaml:"redisPassword"`

	JWTSecret  string `yaml:"jwtSecret"`
	SessionTTL string `yaml:"sessionTTL"`

	SentimentURL    string `yaml:"sentimentURL"`
	SentimentAPIKey string `yaml:"sentimentAPIKey"`

	VoiceURL    string `yaml:"voiceURL"`
	VoiceAPIKey string `yaml:"voiceAPIKey"`
	VoiceID     string `yaml:"voiceID"`
	VoiceModel  string `yaml:"voiceModel"`

	AudioArchiveEndpoint  string `yaml:"audioArchiveEndpoint"`
	AudioArchiveAccessKey string `yaml:"audioArchiveAccessKey"`
	AudioArchiveSecretKey string `yaml:"audioArchiveSecretKey"`
	AudioArchiveBucket    string `yaml:"audioArchiveBucket"`
	AudioArchiveUseSSL    bool   `yaml:"audioArchiveUseSSL"`

	TrustProxy                 bool `yaml:"trustProxy"`
	RegisterRateLimitPerMinute int  `yaml:"registerRateLimitPerMinute"`
	LoginRateLimitPerMinute    int  `yaml:"loginRateLimitPerMinute"`
}

// Load reads config from path (defaults to config.yaml).
func Load(path string) (FileConfig, error) {
	cfg := FileConfig{}
	if path == "" {
		path = ConfigPath
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, fmt.Errorf("read config: %w", err)
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("parse config: %w", err)
	}
	// Override with environment variables
	if v := os.Getenv("DATABASE_URL"); v != "" {
		cfg.DatabaseURL = v
	}
	if v := os.Getenv("REDIS_ADDR"); v != "" {
		cfg.RedisAddr = v
	}
	if v := os.Getenv("REDIS_PASSWORD"); v != "" {
		cfg.RedisPassword = v
	}
	if v := os.Getenv("JWT_SECRET_KEY"); v != "" {
		cfg.JWTSecret = v
	}
	if v := os.Getenv("SESSION_TTL"); v != "" {
		cfg.SessionTTL = v
	}
	if v := os.Getenv("SENTIMENT_URL"); v != "" {
		cfg.SentimentURL = v
	}
	if v := os.Getenv("SENTIMENT_API_KEY"); v != "" {
		cfg.SentimentAPIKey = v
	}
	if v := os.Getenv("VOICE_URL"); v != "" {
		cfg.VoiceURL = v
	}
	if v := os.Getenv("ELEVENLABS_API_KEY"); v != "" {
		cfg.VoiceAPIKey = v
	}
	if v := os.Getenv("VOICE_ID"); v != "" {
		cfg.VoiceID = v
	}
	if v := os.Getenv("VOICE_MODEL"); v != "" {
		cfg.VoiceModel = v
	}
	if v := os.Getenv("AUDIO_ARCHIVE_ENDPOINT"); v != "" {
		cfg.AudioArchiveEndpoint = v
	}
	if v := os.Getenv("AUDIO_ARCHIVE_ACCESS_KEY"); v != "" {
		cfg.AudioArchiveAccessKey = v
	}
	if v := os.Getenv("AUDIO_ARCHIVE_SECRET_KEY"); v != "" {
		cfg.AudioArchiveSecretKey = v
	}
	if v := os.Getenv("AUDIO_ARCHIVE_BUCKET"); v != "" {
		cfg.AudioArchiveBucket = v
	}
	if v := os.Getenv("REGISTER_RATE_LIMIT_PER_MINUTE"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			cfg.RegisterRateLimitPerMinute = n
		}
	}
	if v := os.Getenv("LOGIN_RATE_LIMIT_PER_MINUTE"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			cfg.LoginRateLimitPerMinute = n
		}
	}
	applyDefaults(&cfg)
	if err := validateConfig(cfg); err != nil {
		return cfg, err
	}
	return cfg, nil
}

func applyDefaults(cfg *FileConfig) {
	if cfg.VoiceID == "" {
		cfg.VoiceID = "Rachel"
	}
	if cfg.VoiceModel == "" {
		cfg.VoiceModel = "eleven_monolingual_v1"
	}
}

func validateConfig(cfg FileConfig) error {
	if cfg.Port == "" {
		return errors.New("config: port is required (set in config.yaml)")
	}
	if cfg.DatabaseURL == "" {
		return errors.New("config: databaseURL is required (set DATABASE_URL)")
	}
	if cfg.JWTSecret == "" {
		return errors.New("config: jwtSecret is required (set JWT_SECRET_KEY)")
	}
	if cfg.SentimentURL == "" {
		return errors.New("config: sentimentURL is required (set SENTIMENT_URL)")
	}
	if cfg.VoiceAPIKey == "" {
		return errors.New("config: voiceAPIKey is required (set ELEVENLABS_API_KEY)")
	}
	if cfg.RegisterRateLimitPerMinute < 0 || cfg.LoginRateLimitPerMinute < 0 {
		return errors.New("config: rate limits must be >= 0")
	}
	if (cfg.RegisterRateLimitPerMinute > 0 || cfg.LoginRateLimitPerMinute > 0) && cfg.RedisAddr == "" {
		return errors.New("config: redisAddr is required when rate limits are enabled")
	}
	if cfg.AudioArchiveEndpoint != "" && cfg.AudioArchiveBucket == "" {
		return errors.New("config: audioArchiveBucket is required when audioArchiveEndpoint is set")
	}
	return nil
}

// ParseSessionTTL parses optional session TTL duration string.
func ParseSessionTTL(ttlStr string) (time.Duration, error) {
	if ttlStr == "" {
		return 0, nil
	}
	dur, err := time.ParseDuration(ttlStr)
	if err != nil {
		return 0, fmt.Errorf("invalid sessionTTL duration: %w", err)
	}
	return dur, nil
}
