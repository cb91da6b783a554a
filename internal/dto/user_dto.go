package dto

type CreateUserRequest struct {
	Name     string `json:"name" validate:"required,min=2,max=100"`
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,password"`
	Role     string `json:"role" validate:"required,oneof=admin employee viewer"`
}

type UpdateUserRoleRequest struct {
	Role string `json:"role" validate:"required,oneof=admin employee viewer"`
}
