package session

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/unlockedcoding/backend/internal/model"
)

type sqlStore struct {
	db *gorm.DB
}

// NewSQLStore keeps sessions in the application database. Expiry is enforced
// on resolve; stale rows are purged opportunistically on create.
func NewSQLStore(db *gorm.DB) Store {
	return &sqlStore{db: db}
}

func (s *sqlStore) Create(ctx context.Context, userID uuid.UUID, ttl time.Duration) (string, error) {
	token, err := newToken()
	if err != nil {
		return "", err
	}

	record := model.Session{
		Token:     token,
		UserID:    userID,
		ExpiresAt: time.Now().Add(ttl),
	}
	if err := s.db.WithContext(ctx).Create(&record).Error; err != nil {
		return "", err
	}

	// There is no background sweeper; expired rows are purged here.
	s.db.WithContext(ctx).
		Where("expires_at < ?", time.Now()).
		Delete(&model.Session{})

	return token, nil
}

func (s *sqlStore) Resolve(ctx context.Context, token string) (uuid.UUID, error) {
	var record model.Session
	if err := s.db.WithContext(ctx).
		Where("token = ?", token).
		First(&record).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return uuid.Nil, ErrNotFound
		}
		return uuid.Nil, err
	}

	if time.Now().After(record.ExpiresAt) {
		s.db.WithContext(ctx).Delete(&record)
		return uuid.Nil, ErrNotFound
	}

	return record.UserID, nil
}

func (s *sqlStore) Destroy(ctx context.Context, token string) error {
	return s.db.WithContext(ctx).
		Where("token = ?", token).
		Delete(&model.Session{}).Error
}
