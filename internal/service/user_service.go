package service

import (
	"context"

	"dealerdesk/internal/dto"
	"dealerdesk/internal/entity"
	"dealerdesk/internal/repository"
	"dealerdesk/internal/utils"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
)

// UserService covers the admin-side account operations: listing accounts,
// creating users with an explicit role, and role changes.
type UserService struct {
	users        repository.UserRepository
	auditLogs    repository.AuditLogRepository
	passwordHash PasswordHasher
	validate     *validator.Validate
}

func NewUserService(
	users repository.UserRepository,
	auditLogs repository.AuditLogRepository,
	passwordHash PasswordHasher,
	validate *validator.Validate,
) *UserService {
	return &UserService{
		users:        users,
		auditLogs:    auditLogs,
		passwordHash: passwordHash,
		validate:     validate,
	}
}

func (s *UserService) List(ctx context.Context, limit, offset int) ([]entity.User, error) {
	return s.users.List(ctx, limit, offset)
}

// Create provisions an account on behalf of an admin. Admin-created accounts
// skip email verification and start active.
func (s *UserService) Create(ctx context.Context, input dto.CreateUserRequest) (*entity.User, error) {
	if err := s.validate.Struct(input); err != nil {
		return nil, &ValidationError{Fields: dto.FieldErrors(err)}
	}

	email := utils.NormalizeEmail(input.Email)
	existing, err := s.users.FindByEmail(ctx, email)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, ErrEmailAlreadyRegistered
	}

	hash, err := s.passwordHash.Hash(input.Password)
	if err != nil {
		return nil, err
	}

	user := &entity.User{
		Email:         email,
		Name:          input.Name,
		PasswordHash:  hash,
		Role:          entity.UserRole(input.Role),
		Status:        entity.UserStatusActive,
		EmailVerified: true,
	}
	if err := s.users.Create(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}

func (s *UserService) ChangeRole(ctx context.Context, userID uuid.UUID, role entity.UserRole) error {
	switch role {
	case entity.UserRoleAdmin, entity.UserRoleEmployee, entity.UserRoleViewer:
	default:
		return &ValidationError{Fields: map[string]string{"role": "must be one of: admin employee viewer"}}
	}

	user, err := s.users.FindByID(ctx, userID)
	if err != nil {
		return err
	}
	if user == nil {
		return ErrUserNotFound
	}

	if err := s.users.UpdateRole(ctx, userID, role); err != nil {
		return err
	}
	if s.auditLogs != nil {
		_ = s.auditLogs.Log(ctx, &entity.AuditLog{
			UserID: &userID,
			Action: entity.RoleChanged,
		})
	}
	return nil
}
