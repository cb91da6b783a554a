package dto

import (
	"time"

	"dealerdesk/internal/entity"
	"dealerdesk/internal/permission"
)

type RegisterRequest struct {
	Name     string `json:"name" validate:"required,min=2,max=100"`
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,password"`
}

type RegisterResponse struct {
	Message string `json:"message"`
	Email   string `json:"email"`
}

type VerifyEmailRequest struct {
	Token string `json:"token" validate:"required"`
}

type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type LoginResponse struct {
	AccessToken string       `json:"access_token"`
	ExpiresIn   int64        `json:"expires_in"`
	User        UserResponse `json:"user"`
}

type PermissionsResponse struct {
	Role        string          `json:"role"`
	RoleLabel   string          `json:"role_label"`
	Permissions map[string]bool `json:"permissions"`
}

func PermissionsResponseForRole(role entity.UserRole) PermissionsResponse {
	capabilities := permission.ForRole(role)
	permissions := make(map[string]bool, len(capabilities))
	for capability, allowed := range capabilities {
		permissions[string(capability)] = allowed
	}
	return PermissionsResponse{
		Role:        string(role),
		RoleLabel:   permission.RoleLabel(role),
		Permissions: permissions,
	}
}

type UserResponse struct {
	ID            string    `json:"id"`
	Email         string    `json:"email"`
	Name          string    `json:"name"`
	Role          string    `json:"role"`
	Status        string    `json:"status"`
	EmailVerified bool      `json:"email_verified"`
	CreatedAt     time.Time `json:"created_at"`
}

func UserResponseFromEntity(user *entity.User) UserResponse {
	return UserResponse{
		ID:            user.ID.String(),
		Email:         user.Email,
		Name:          user.Name,
		Role:          string(user.Role),
		Status:        string(user.Status),
		EmailVerified: user.EmailVerified,
		CreatedAt:     user.CreatedAt,
	}
}

func UserResponsesFromEntities(users []entity.User) []UserResponse {
	responses := make([]UserResponse, 0, len(users))
	for i := range users {
		responses = append(responses, UserResponseFromEntity(&users[i]))
	}
	return responses
}
