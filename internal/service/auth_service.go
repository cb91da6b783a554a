package service

import (
	"context"
	"encoding/json"
	"strings"
	"time"

	"dealerdesk/internal/dto"
	"dealerdesk/internal/entity"
	"dealerdesk/internal/guard"
	"dealerdesk/internal/repository"
	"dealerdesk/internal/utils"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"gorm.io/datatypes"
)

const dummyPasswordHash = "$2a$10$CwTycUXWue0Thq9StjUM0uJ8yQbWc1x9uxw2sQ2sXUNx5x9xJ9F2S"

type AuthService struct {
	users         repository.UserRepository
	verifications repository.EmailVerificationRepository
	auditLogs     repository.AuditLogRepository

	registrationGuard *guard.Guard
	validate          *validator.Validate
	emailSender       EmailSender
	passwordHash      PasswordHasher
	accessTokens      AccessTokenIssuer
	clock             Clock
	logger            logrus.FieldLogger
	config            Config
}

func NewAuthService(
	users repository.UserRepository,
	verifications repository.EmailVerificationRepository,
	auditLogs repository.AuditLogRepository,
	registrationGuard *guard.Guard,
	validate *validator.Validate,
	emailSender EmailSender,
	passwordHash PasswordHasher,
	accessTokens AccessTokenIssuer,
	clock Clock,
	logger logrus.FieldLogger,
	config Config,
) *AuthService {
	return &AuthService{
		users:             users,
		verifications:     verifications,
		auditLogs:         auditLogs,
		registrationGuard: registrationGuard,
		validate:          validate,
		emailSender:       emailSender,
		passwordHash:      passwordHash,
		accessTokens:      accessTokens,
		clock:             clock,
		logger:            logger,
		config:            config,
	}
}

type RegisterInput struct {
	Name     string
	Email    string
	Password string
}

type RegisterResult struct {
	Email string
}

type LoginInput struct {
	Email    string
	Password string
}

type LoginResult struct {
	AccessToken string
	ExpiresIn   int64
	User        *entity.User
}

// Register runs the registration guard in order: blacklist, rate limit,
// payload validation, duplicate check, then account and token creation.
// A blacklisted IP is rejected before any counter is touched. Email dispatch
// is best effort; registration succeeds once the account and token exist.
func (s *AuthService) Register(ctx context.Context, clientIP string, input RegisterInput) (*RegisterResult, error) {
	if s.registrationGuard != nil {
		decision, err := s.registrationGuard.Check(ctx, clientIP)
		if err != nil {
			return nil, err
		}
		if !decision.Allowed {
			switch decision.Reason {
			case guard.ReasonBlacklisted:
				_ = s.audit(ctx, nil, &clientIP, entity.RegistrationBlocked, map[string]any{"email": input.Email})
				return nil, ErrIPBlocked
			case guard.ReasonRateLimited:
				_ = s.audit(ctx, nil, &clientIP, entity.RegistrationRateLimited, nil)
				return nil, &RateLimitedError{ResetAt: decision.ResetAt}
			}
		}
	}

	request := dto.RegisterRequest{Name: input.Name, Email: input.Email, Password: input.Password}
	if err := s.validate.Struct(request); err != nil {
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

	// Public registrants always start as viewers pending verification; roles
	// are granted by an admin afterwards.
	user := &entity.User{
		Email:         email,
		Name:          strings.TrimSpace(input.Name),
		PasswordHash:  hash,
		Role:          entity.UserRoleViewer,
		Status:        entity.UserStatusPendingVerification,
		EmailVerified: false,
		RegisteredIP:  &clientIP,
	}
	if err := s.users.Create(ctx, user); err != nil {
		return nil, err
	}

	token, err := s.issueVerificationToken(ctx, user, clientIP)
	if err != nil {
		return nil, err
	}

	if s.emailSender != nil {
		if err := s.emailSender.SendVerificationEmail(ctx, user.Email, user.Name, token); err != nil {
			s.log().WithError(err).WithField("email", user.Email).Error("verification email dispatch failed")
		}
	}

	_ = s.audit(ctx, &user.ID, &clientIP, entity.RegistrationSuccess, map[string]any{"email": user.Email})
	return &RegisterResult{Email: user.Email}, nil
}

// VerifyEmail consumes a verification token exactly once and activates the
// account. Expired or already consumed tokens are rejected.
func (s *AuthService) VerifyEmail(ctx context.Context, token string) error {
	if strings.TrimSpace(token) == "" {
		return ErrInvalidInput
	}

	verification, err := s.verifications.FindValid(ctx, utils.HashToken(token))
	if err != nil {
		return err
	}
	if verification == nil {
		return ErrInvalidToken
	}
	if s.now().After(verification.ExpiresAt) {
		return ErrInvalidToken
	}

	consumed, err := s.verifications.Consume(ctx, verification.ID)
	if err != nil {
		return err
	}
	if !consumed {
		return ErrInvalidToken
	}

	if err := s.users.MarkVerified(ctx, verification.UserID); err != nil {
		return err
	}

	_ = s.audit(ctx, &verification.UserID, verification.IPAddress, entity.EmailVerified, map[string]any{"email": verification.Email})
	return nil
}

func (s *AuthService) Login(ctx context.Context, clientIP string, input LoginInput) (*LoginResult, error) {
	if strings.TrimSpace(input.Email) == "" || strings.TrimSpace(input.Password) == "" {
		return nil, ErrInvalidInput
	}

	email := utils.NormalizeEmail(input.Email)
	user, err := s.users.FindByEmail(ctx, email)
	if err != nil {
		return nil, err
	}
	if user == nil {
		_ = s.passwordHash.Verify(dummyPasswordHash, input.Password)
		_ = s.audit(ctx, nil, &clientIP, entity.LoginFailed, map[string]any{"email": email})
		return nil, ErrInvalidCredentials
	}

	if !s.passwordHash.Verify(user.PasswordHash, input.Password) {
		_ = s.audit(ctx, &user.ID, &clientIP, entity.LoginFailed, map[string]any{"email": email})
		return nil, ErrInvalidCredentials
	}

	if user.Status == entity.UserStatusSuspended {
		return nil, ErrAccountSuspended
	}
	if !user.EmailVerified {
		return nil, ErrEmailNotVerified
	}

	accessToken, expiresIn, err := s.accessTokens.IssueAccessToken(user.ID.String(), string(user.Role))
	if err != nil {
		return nil, err
	}

	_ = s.audit(ctx, &user.ID, &clientIP, entity.LoginSuccess, nil)
	return &LoginResult{
		AccessToken: accessToken,
		ExpiresIn:   int64(expiresIn.Seconds()),
		User:        user,
	}, nil
}

func (s *AuthService) GetCurrentUser(ctx context.Context, userID uuid.UUID) (*entity.User, error) {
	return s.users.FindByID(ctx, userID)
}

func (s *AuthService) issueVerificationToken(ctx context.Context, user *entity.User, clientIP string) (string, error) {
	rawToken, err := utils.GenerateRandomToken(32)
	if err != nil {
		return "", err
	}

	verification := &entity.EmailVerification{
		UserID:    user.ID,
		TokenHash: utils.HashToken(rawToken),
		Email:     user.Email,
		IPAddress: &clientIP,
		ExpiresAt: s.now().Add(s.verificationTokenTTL()),
	}
	if err := s.verifications.Create(ctx, verification); err != nil {
		return "", err
	}
	return rawToken, nil
}

func (s *AuthService) audit(
	ctx context.Context,
	userID *uuid.UUID,
	ipAddress *string,
	action entity.AuditAction,
	metadata map[string]any,
) error {
	if s.auditLogs == nil {
		return nil
	}
	var payload datatypes.JSON
	if metadata != nil {
		bytes, err := json.Marshal(metadata)
		if err != nil {
			return err
		}
		payload = datatypes.JSON(bytes)
	}

	log := &entity.AuditLog{
		UserID:    userID,
		IPAddress: ipAddress,
		Action:    action,
		Metadata:  payload,
	}
	return s.auditLogs.Log(ctx, log)
}

func (s *AuthService) log() logrus.FieldLogger {
	if s.logger == nil {
		return logrus.StandardLogger()
	}
	return s.logger
}

func (s *AuthService) now() time.Time {
	if s.clock == nil {
		return time.Now()
	}
	return s.clock.Now()
}

func (s *AuthService) verificationTokenTTL() time.Duration {
	if s.config.VerificationTokenTTL > 0 {
		return s.config.VerificationTokenTTL
	}
	return 24 * time.Hour
}
