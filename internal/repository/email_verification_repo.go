package repository

import (
	"context"
	"errors"
	"time"

	"dealerdesk/internal/entity"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type EmailVerificationRepository interface {
	Create(ctx context.Context, verification *entity.EmailVerification) error
	FindValid(ctx context.Context, tokenHash string) (*entity.EmailVerification, error)
	// Consume marks the token used and reports whether this call was the one
	// that consumed it. A second call for the same token returns false.
	Consume(ctx context.Context, id uuid.UUID) (bool, error)
}

type emailVerificationRepository struct {
	db *gorm.DB
}

func NewEmailVerificationRepository(db *gorm.DB) EmailVerificationRepository {
	return &emailVerificationRepository{db: db}
}

func (r *emailVerificationRepository) Create(ctx context.Context, v *entity.EmailVerification) error {
	return r.db.WithContext(ctx).Create(v).Error
}

func (r *emailVerificationRepository) FindValid(ctx context.Context, tokenHash string) (*entity.EmailVerification, error) {
	var verification entity.EmailVerification
	err := r.db.WithContext(ctx).
		Where("token_hash = ? AND consumed_at IS NULL AND expires_at > NOW()", tokenHash).
		First(&verification).Error

	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &verification, err
}

func (r *emailVerificationRepository) Consume(ctx context.Context, id uuid.UUID) (bool, error) {
	now := time.Now()
	result := r.db.WithContext(ctx).
		Model(&entity.EmailVerification{}).
		Where("id = ? AND consumed_at IS NULL", id).
		Update("consumed_at", &now)
	if result.Error != nil {
		return false, result.Error
	}
	return result.RowsAffected == 1, nil
}
