package store

import (
	"errors"
	"fmt"
	"log"
	"os"
	"time"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"moodmate/pkg/domain"
)

// GormStore implements Store using GORM + Postgres.
type GormStore struct {
	db *gorm.DB
}

// NewGormStore opens the DB and runs auto-migrations.
func NewGormStore(dsn string) (*GormStore, error) {
	gormLog := gormlogger.New(
		log.New(os.Stdout, "\r\n", log.LstdFlags),
		gormlogger.Config{
			SlowThreshold:             time.Second,
			LogLevel:                  gormlogger.Warn,
			IgnoreRecordNotFoundError: true,
			Colorful:                  false,
		},
	)
	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{
		Logger:         gormLog,
		TranslateError: true,
	})
	if err != nil {
		return nil, fmt.Errorf("open db: %w", err)
	}
	if err := db.AutoMigrate(&UserModel{}, &CheckInModel{}); err != nil {
		return nil, fmt.Errorf("auto migrate: %w", err)
	}
	return &GormStore{db: db}, nil
}

// SaveUser inserts a user. The unique index on username makes duplicate
// registration lose the race at the store, not just at the pre-check.
func (s *GormStore) SaveUser(u domain.User) error {
	model := UserModel{
		ID:           u.ID,
		Username:     u.Username,
		PasswordHash: u.PasswordHash,
		CreatedAt:    u.CreatedAt,
	}
	if err := s.db.Create(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return ErrDuplicateUsername
		}
		return fmt.Errorf("save user: %w", err)
	}
	return nil
}

// GetUserByUsername returns the user with the exact username, if any.
func (s *GormStore) GetUserByUsername(username string) (domain.User, bool, error) {
	var model UserModel
	err := s.db.Where("username = ?", username).First(&model).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return domain.User{}, false, nil
	}
	if err != nil {
		return domain.User{}, false, fmt.Errorf("get user by username: %w", err)
	}
	return userFromModel(model), true, nil
}

// GetUserByID returns the user with the given ID, if any.
func (s *GormStore) GetUserByID(id string) (domain.User, bool, error) {
	var model UserModel
	err := s.db.First(&model, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return domain.User{}, false, nil
	}
	if err != nil {
		return domain.User{}, false, fmt.Errorf("get user by id: %w", err)
	}
	return userFromModel(model), true, nil
}

// SaveCheckIn appends a check-in record.
func (s *GormStore) SaveCheckIn(c domain.CheckIn) error {
	model := CheckInModel{
		ID:           c.ID,
		UserID:       c.UserID,
		MoodScore:    c.MoodScore,
		Transcript:   c.Transcript,
		ExerciseType: string(c.ExerciseType),
		AudioKey:     c.AudioKey,
		Timestamp:    c.Timestamp,
	}
	if err := s.db.Create(&model).Error; err != nil {
		return fmt.Errorf("save check-in: %w", err)
	}
	return nil
}

// ListCheckInsByUser returns the user's check-ins, newest first.
func (s *GormStore) ListCheckInsByUser(userID string) ([]domain.CheckIn, error) {
	var models []CheckInModel
	if err := s.db.Where("user_id = ?", userID).Order("timestamp DESC").Find(&models).Error; err != nil {
		return nil, fmt.Errorf("list check-ins: %w", err)
	}
	out := make([]domain.CheckIn, 0, len(models))
	for _, m := range models {
		out = append(out, checkInFromModel(m))
	}
	return out, nil
}

func userFromModel(m UserModel) domain.User {
	return domain.User{
		ID:           m.ID,
		Username:     m.Username,
		PasswordHash: m.PasswordHash,
		CreatedAt:    m.CreatedAt,
	}
}

func checkInFromModel(m CheckInModel) domain.CheckIn {
	return domain.CheckIn{
		ID:           m.ID,
		UserID:       m.UserID,
		MoodScore:    m.MoodScore,
		Transcript:   m.Transcript,
		ExerciseType: domain.ExerciseType(m.ExerciseType),
		AudioKey:     m.AudioKey,
		Timestamp:    m.Timestamp,
	}
}
