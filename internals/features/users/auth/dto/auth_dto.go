package dto

import (
	"strings"
	"time"

	"github.com/google/uuid"

	userModel "absensiku_backend/internals/features/users/user/model"
)

/* =======================================================
   REQUEST DTOs
   ======================================================= */

// RegisterRequest — pendaftaran karyawan baru
type RegisterRequest struct {
	FullName    string  `json:"full_name" validate:"required,min=3,max=100"`
	Email       string  `json:"email" validate:"required,email,max=255"`
	Password    string  `json:"password" validate:"required,min=8"`
	CompanyName string  `json:"company_name" validate:"required,min=2,max=150"`
	Department  *string `json:"department,omitempty" validate:"omitempty,max=100"`
	Position    *string `json:"position,omitempty" validate:"omitempty,max=100"`
}

// Normalize — trim & normalisasi dasar
func (r *RegisterRequest) Normalize() {
	r.FullName = strings.TrimSpace(r.FullName)
	r.Email = strings.TrimSpace(strings.ToLower(r.Email))
	r.CompanyName = strings.TrimSpace(r.CompanyName)
	if r.Department != nil {
		v := strings.TrimSpace(*r.Department)
		r.Department = &v
	}
	if r.Position != nil {
		v := strings.TrimSpace(*r.Position)
		r.Position = &v
	}
}

type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

func (r *LoginRequest) Normalize() {
	r.Email = strings.TrimSpace(strings.ToLower(r.Email))
}

// UpdateProfileRequest — partial update (pointer agar bisa bedakan omit vs null)
type UpdateProfileRequest struct {
	FullName   *string `json:"full_name,omitempty" validate:"omitempty,min=3,max=100"`
	Department *string `json:"department,omitempty" validate:"omitempty,max=100"`
	Position   *string `json:"position,omitempty" validate:"omitempty,max=100"`
}

func (r *UpdateProfileRequest) Normalize() {
	if r.FullName != nil {
		v := strings.TrimSpace(*r.FullName)
		r.FullName = &v
	}
	if r.Department != nil {
		v := strings.TrimSpace(*r.Department)
		r.Department = &v
	}
	if r.Position != nil {
		v := strings.TrimSpace(*r.Position)
		r.Position = &v
	}
}

/* =======================================================
   RESPONSE DTOs
   ======================================================= */

type UserResponse struct {
	ID         uuid.UUID `json:"id"`
	FullName   string    `json:"full_name"`
	Email      string    `json:"email"`
	Role       string    `json:"role"`
	CompanyID  uuid.UUID `json:"company_id"`
	Department *string   `json:"department,omitempty"`
	Position   *string   `json:"position,omitempty"`
	CreatedAt  time.Time `json:"created_at"`
}

func FromModel(u *userModel.UserModel) UserResponse {
	return UserResponse{
		ID:         u.ID,
		FullName:   u.FullName,
		Email:      u.Email,
		Role:       u.Role,
		CompanyID:  u.CompanyID,
		Department: u.Department,
		Position:   u.Position,
		CreatedAt:  u.CreatedAt,
	}
}

type AuthResponse struct {
	Token string       `json:"token"`
	User  UserResponse `json:"user"`
}
