package repository

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"absensiku_backend/internals/features/users/user/model"
)

// UserRepository: akses data user untuk kebutuhan lintas-fitur
// (gate kepemilikan riwayat, cakupan laporan & statistik perusahaan).
type UserRepository interface {
	// FindByID mengembalikan (nil, nil) bila user tidak ada.
	FindByID(ctx context.Context, id uuid.UUID) (*model.UserModel, error)

	// ListActiveByCompany: user aktif satu company, opsional difilter
	// departemen (string kosong = tanpa filter), urut nama lalu id
	// supaya output laporan stabil antar-pemanggilan.
	ListActiveByCompany(ctx context.Context, companyID uuid.UUID, department string) ([]model.UserModel, error)
}

/* ==========================
   GORM implementation
========================== */

type gormUserRepository struct {
	db *gorm.DB
}

func NewUserRepository(db *gorm.DB) UserRepository {
	return &gormUserRepository{db: db}
}

func (r *gormUserRepository) FindByID(ctx context.Context, id uuid.UUID) (*model.UserModel, error) {
	var u model.UserModel
	err := r.db.WithContext(ctx).First(&u, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &u, nil
}

func (r *gormUserRepository) ListActiveByCompany(ctx context.Context, companyID uuid.UUID, department string) ([]model.UserModel, error) {
	var users []model.UserModel
	tx := r.db.WithContext(ctx).Where("company_id = ? AND is_active = true", companyID)
	if department != "" {
		tx = tx.Where("department = ?", department)
	}
	if err := tx.Order("full_name ASC, id ASC").Find(&users).Error; err != nil {
		return nil, err
	}
	return users, nil
}
