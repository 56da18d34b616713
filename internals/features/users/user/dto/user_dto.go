package dto

import (
	"time"

	"github.com/google/uuid"

	"collegeaccounts_backend/internals/features/users/user/model"
)

type ListQuery struct {
	Search string `query:"search"`
	Role   string `query:"role" validate:"omitempty,oneof=admin accountant"`
	Active string `query:"active" validate:"omitempty,oneof=true false"`
}

// ActiveFilter: "" = semua, selain itu true/false.
func (q ListQuery) ActiveFilter() *bool {
	if q.Active == "" {
		return nil
	}
	v := q.Active == "true"
	return &v
}

// UpdateAccessRequest: field kosong (null) = tidak diubah.
type UpdateAccessRequest struct {
	Role     *string `json:"role" validate:"omitempty,oneof=admin accountant"`
	IsActive *bool   `json:"is_active"`
}

type ResetPasswordRequest struct {
	NewPassword string `json:"new_password" validate:"required,min=8,max=72"`
}

type UserResponse struct {
	ID        uuid.UUID `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	Role      string    `json:"role"`
	IsActive  bool      `json:"is_active"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func ToUserResponse(u model.UserModel) UserResponse {
	return UserResponse{
		ID:        u.ID,
		Name:      u.Name,
		Email:     u.Email,
		Role:      u.Role,
		IsActive:  u.IsActive,
		CreatedAt: u.CreatedAt,
		UpdatedAt: u.UpdatedAt,
	}
}

func ToUserResponses(rows []model.UserModel) []UserResponse {
	out := make([]UserResponse, 0, len(rows))
	for _, u := range rows {
		out = append(out, ToUserResponse(u))
	}
	return out
}
