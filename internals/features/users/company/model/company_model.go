package model

import (
	"time"

	"github.com/google/uuid"
)

// CompanyModel merepresentasikan tabel companies (tenant).
type CompanyModel struct {
	ID        uuid.UUID `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	Name      string    `gorm:"size:150;unique;not null" json:"name"`
	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}

func (CompanyModel) TableName() string {
	return "companies"
}
