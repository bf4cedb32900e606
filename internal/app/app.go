package app

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"moodmate/internal/util"
	"moodmate/pkg/auth"
	"moodmate/pkg/domain"
	"moodmate/pkg/mood"
	"moodmate/pkg/sentiment"
	"moodmate/pkg/storage"
	"moodmate/pkg/store"
	"moodmate/pkg/voice"
)

// Config holds runtime configuration for the core application.
type Config struct {
	DatabaseURL   string
	RedisAddr     string
	RedisPassword string
	JWTSecret     string
	SessionTTL    time.Duration

	Store       store.Store
	Sessions    store.SessionStore
	Analyzer    sentiment.Analyzer
	Synthesizer voice.Synthesizer
	Archive     storage.ObjectStore
}

// App is the core application service wiring together storage, auth,
// and the external mood capabilities.
type App struct {
	store       store.Store
	sessions    store.SessionStore
	analyzer    sentiment.Analyzer
	synthesizer voice.Synthesizer
	archive     storage.ObjectStore
}

// New constructs the application with database storage and session management.
func New(cfg Config) (*App, error) {
	if cfg.SessionTTL == 0 {
		cfg.SessionTTL = time.Hour
	}
	if cfg.Analyzer == nil {
		return nil, fmt.Errorf("sentiment analyzer required")
	}
	if cfg.Synthesizer == nil {
		return nil, fmt.Errorf("voice synthesizer required")
	}

	dataStore := cfg.Store
	if dataStore == nil {
		if cfg.DatabaseURL == "" {
			return nil, fmt.Errorf("database URL required")
		}
		var err error
		dataStore, err = store.NewGormStore(cfg.DatabaseURL)
		if err != nil {
			return nil, fmt.Errorf("init postgres store: %w", err)
		}
	}

	sessionStore := cfg.Sessions
	if sessionStore == nil {
		var revoker store.TokenRevoker
		if strings.TrimSpace(cfg.RedisAddr) != "" {
			revoker = store.NewRedisTokenRevoker(cfg.RedisAddr, cfg.RedisPassword)
		}
		jwtStore, err := store.NewJWTSessionStore(cfg.JWTSecret, cfg.SessionTTL, revoker, store.JWTOptions{})
		if err != nil {
			return nil, fmt.Errorf("init jwt session store: %w", err)
		}
		sessionStore = jwtStore
	}

	return &App{
		store:       dataStore,
		sessions:    sessionStore,
		analyzer:    cfg.Analyzer,
		synthesizer: cfg.Synthesizer,
		archive:     cfg.Archive,
	}, nil
}

// Register creates a new user with a hashed password.
func (a *App) Register(username, password string) (domain.User, error) {
	username = strings.TrimSpace(username)
	if username == "" || password == "" {
		return domain.User{}, ErrUsernameAndPasswordRequired
	}
	_, exists, err := a.store.GetUserByUsername(username)
	if err != nil {
		return domain.User{}, fmt.Errorf("check username: %w", err)
	}
	if exists {
		return domain.User{}, ErrUsernameAlreadyExists
	}
	passwordHash, err := auth.HashPassword(password)
	if err != nil {
		return domain.User{}, fmt.Errorf("hash password: %w", err)
	}
	user := domain.User{
		ID:           uuid.NewString(),
		Username:     username,
		PasswordHash: passwordHash,
		CreatedAt:    time.Now().UTC(),
	}
	if err := a.store.SaveUser(user); err != nil {
		// The unique index closes the check-then-insert race: a
		// concurrent insert surfaces here as a duplicate.
		if errors.Is(err, store.ErrDuplicateUsername) {
			return domain.User{}, ErrUsernameAlreadyExists
		}
		return domain.User{}, fmt.Errorf("save user: %w", err)
	}
	return user, nil
}

// Login validates credentials and issues a session token.
func (a *App) Login(username, password string) (domain.User, string, error) {
	username = strings.TrimSpace(username)
	user, ok, err := a.store.GetUserByUsername(username)
	if err != nil {
		return domain.User{}, "", fmt.Errorf("fetch user: %w", err)
	}
	if !ok {
		return domain.User{}, "", ErrInvalidCredentials
	}
	if !auth.CheckPassword(password, user.PasswordHash) {
		return domain.User{}, "", ErrInvalidCredentials
	}
	token, err := a.sessions.NewSession(user.ID)
	if err != nil {
		return domain.User{}, "", fmt.Errorf("issue access token: %w", err)
	}
	return user, token, nil
}

// UserFromToken resolves a user from a session token.
func (a *App) UserFromToken(token string) (domain.User, bool) {
	uid, ok, err := a.sessions.GetUserIDByToken(token)
	if err != nil || !ok {
		return domain.User{}, false
	}
	user, found, err := a.store.GetUserByID(uid)
	if err != nil || !found {
		return domain.User{}, false
	}
	return user, true
}

// Logout invalidates the access token until its natural expiry.
func (a *App) Logout(token string) error {
	return a.sessions.DeleteSession(token)
}

// CheckInResult is the full outcome of one emotional check-in.
type CheckInResult struct {
	MoodScore    float64
	ResponseText string
	Audio        []byte
}

// CheckIn scores the message, records the session, and synthesizes the
// spoken supportive response. The record is persisted before synthesis,
// so a synthesis failure still leaves the check-in in history.
func (a *App) CheckIn(ctx context.Context, userID, message string) (CheckInResult, error) {
	if strings.TrimSpace(message) == "" {
		return CheckInResult{}, ErrMessageRequired
	}
	score, err := a.analyzer.Polarity(ctx, message)
	if err != nil {
		return CheckInResult{}, fmt.Errorf("analyze sentiment: %w", err)
	}
	response := mood.Classify(score)

	record := domain.CheckIn{
		ID:           uuid.NewString(),
		UserID:       userID,
		MoodScore:    score,
		Transcript:   message,
		ExerciseType: response.Exercise,
		Timestamp:    time.Now().UTC(),
	}
	if a.archive != nil {
		record.AudioKey = audioKey(record.ID)
	}
	if err := a.store.SaveCheckIn(record); err != nil {
		return CheckInResult{}, fmt.Errorf("save check-in: %w", err)
	}

	audio, err := a.synthesizer.Synthesize(ctx, response.Text)
	if err != nil {
		return CheckInResult{}, fmt.Errorf("synthesize response: %w", err)
	}
	a.archiveAudio(ctx, record, audio)

	return CheckInResult{
		MoodScore:    score,
		ResponseText: response.Text,
		Audio:        audio,
	}, nil
}

// archiveAudio uploads the clip best-effort; archive failures are logged
// and do not fail the check-in.
func (a *App) archiveAudio(ctx context.Context, record domain.CheckIn, audio []byte) {
	if a.archive == nil {
		return
	}
	err := a.archive.Put(ctx, record.AudioKey, bytes.NewReader(audio), int64(len(audio)), "audio/mpeg")
	if err != nil {
		util.LoggerFromContext(ctx).Warn("archive audio failed",
			"check_in_id", record.ID, "err", err)
	}
}

// HistoryEntry is one row of a user's check-in history.
type HistoryEntry struct {
	Timestamp    time.Time           `json:"timestamp"`
	MoodScore    float64             `json:"mood_score"`
	ExerciseType domain.ExerciseType `json:"exercise_type,omitempty"`
}

// History returns the user's check-ins, newest first.
func (a *App) History(userID string) ([]HistoryEntry, error) {
	records, err := a.store.ListCheckInsByUser(userID)
	if err != nil {
		return nil, fmt.Errorf("list check-ins: %w", err)
	}
	out := make([]HistoryEntry, 0, len(records))
	for _, r := range records {
		out = append(out, HistoryEntry{
			Timestamp:    r.Timestamp,
			MoodScore:    r.MoodScore,
			ExerciseType: r.ExerciseType,
		})
	}
	return out, nil
}

// Exercises returns the static self-help exercise catalog.
func (a *App) Exercises() []domain.Exercise {
	return mood.Exercises()
}

func audioKey(checkInID string) string {
	return "checkins/" + checkInID + ".mp3"
}
