package model

import (
	"errors"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
)

// Validator instance
var validate = validator.New()

// UserModel merepresentasikan tabel users di database
type UserModel struct {
	ID         uuid.UUID `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	FullName   string    `gorm:"size:100;not null" json:"full_name" validate:"required,min=3,max=100"`
	Email      string    `gorm:"size:255;unique;not null" json:"email" validate:"required,email"`
	Password   string    `gorm:"not null" json:"-" validate:"required,min=8"`
	Role       string    `gorm:"type:varchar(20);not null;default:'employee'" json:"role" validate:"omitempty,oneof=employee manager admin"`
	CompanyID  uuid.UUID `gorm:"type:uuid;not null;index" json:"company_id"`
	Department *string   `gorm:"size:100" json:"department,omitempty"`
	Position   *string   `gorm:"size:100" json:"position,omitempty"`
	IsActive   bool      `gorm:"not null;default:true" json:"is_active"`
	CreatedAt  time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt  time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}

// TableName memastikan nama tabel sesuai dengan skema database
func (UserModel) TableName() string {
	return "users"
}

// SetDefaultValues memastikan nilai default sebelum validasi
func (u *UserModel) SetDefaultValues() {
	if u.Role == "" {
		u.Role = "employee"
	}
}

// Validate memeriksa apakah input sesuai aturan yang telah didefinisikan
func (u *UserModel) Validate() error {
	u.SetDefaultValues()

	if err := validate.Struct(u); err != nil {
		if ve, ok := err.(validator.ValidationErrors); ok {
			msg := ""
			for _, fe := range ve {
				msg += fe.Field() + ": " + fe.Tag() + "\n"
			}
			return errors.New(msg)
		}
		return err
	}
	return nil
}
