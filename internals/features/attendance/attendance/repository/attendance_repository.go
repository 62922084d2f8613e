package repository

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"absensiku_backend/internals/features/attendance/attendance/model"
)

// ErrDuplicateOpenSession: insert sesi terbuka kedua utk (user, hari) yang sama,
// ditolak index unik parsial di DB.
var ErrDuplicateOpenSession = errors.New("sesi terbuka sudah ada untuk hari ini")

// SessionRepository adalah kontrak penyimpanan sesi absensi.
// Lapisan service tidak peduli teknologi storage-nya; implementasi GORM
// untuk produksi, implementasi memory untuk test.
type SessionRepository interface {
	// WithTx menjalankan fn dalam satu transaksi; repo yang diterima fn
	// terikat ke transaksi tsb.
	WithTx(ctx context.Context, fn func(SessionRepository) error) error

	Create(ctx context.Context, s *model.AttendanceSessionModel) error
	Update(ctx context.Context, s *model.AttendanceSessionModel) error

	// FindOpenByUserAndDay mencari sesi terbuka milik user pada bucket hari
	// [day, day+24h). Mengembalikan (nil, nil) bila tidak ada.
	FindOpenByUserAndDay(ctx context.Context, userID uuid.UUID, day time.Time) (*model.AttendanceSessionModel, error)

	// ListByUser: sesi user dalam [start, endExclusive), terbaru dulu.
	// limit <= 0 berarti tanpa batas.
	ListByUser(ctx context.Context, userID uuid.UUID, start, endExclusive time.Time, limit, offset int) ([]model.AttendanceSessionModel, error)

	// CountByUser: jumlah sesi user dalam [start, endExclusive).
	CountByUser(ctx context.Context, userID uuid.UUID, start, endExclusive time.Time) (int64, error)

	// ListByUsers: sesi beberapa user sekaligus (laporan perusahaan/statistik),
	// urut check-in naik supaya agregasi deterministik.
	ListByUsers(ctx context.Context, userIDs []uuid.UUID, start, endExclusive time.Time) ([]model.AttendanceSessionModel, error)
}

/* ==========================
   GORM implementation
========================== */

type gormSessionRepository struct {
	db *gorm.DB
}

func NewSessionRepository(db *gorm.DB) SessionRepository {
	return &gormSessionRepository{db: db}
}

func (r *gormSessionRepository) WithTx(ctx context.Context, fn func(SessionRepository) error) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(&gormSessionRepository{db: tx})
	})
}

func (r *gormSessionRepository) Create(ctx context.Context, s *model.AttendanceSessionModel) error {
	if err := r.db.WithContext(ctx).Create(s).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return ErrDuplicateOpenSession
		}
		return err
	}
	return nil
}

func (r *gormSessionRepository) Update(ctx context.Context, s *model.AttendanceSessionModel) error {
	return r.db.WithContext(ctx).Save(s).Error
}

func (r *gormSessionRepository) FindOpenByUserAndDay(ctx context.Context, userID uuid.UUID, day time.Time) (*model.AttendanceSessionModel, error) {
	var s model.AttendanceSessionModel
	err := r.db.WithContext(ctx).
		Where("user_id = ? AND check_out_time IS NULL", userID).
		Where("check_in_time >= ? AND check_in_time < ?", day, day.Add(24*time.Hour)).
		First(&s).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &s, nil
}

func (r *gormSessionRepository) ListByUser(ctx context.Context, userID uuid.UUID, start, endExclusive time.Time, limit, offset int) ([]model.AttendanceSessionModel, error) {
	var out []model.AttendanceSessionModel
	tx := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Where("check_in_time >= ? AND check_in_time < ?", start, endExclusive).
		Order("check_in_time DESC")
	if limit > 0 {
		tx = tx.Limit(limit).Offset(offset)
	}
	err := tx.Find(&out).Error
	return out, err
}

func (r *gormSessionRepository) CountByUser(ctx context.Context, userID uuid.UUID, start, endExclusive time.Time) (int64, error) {
	var total int64
	err := r.db.WithContext(ctx).
		Model(&model.AttendanceSessionModel{}).
		Where("user_id = ?", userID).
		Where("check_in_time >= ? AND check_in_time < ?", start, endExclusive).
		Count(&total).Error
	return total, err
}

func (r *gormSessionRepository) ListByUsers(ctx context.Context, userIDs []uuid.UUID, start, endExclusive time.Time) ([]model.AttendanceSessionModel, error) {
	if len(userIDs) == 0 {
		return nil, nil
	}
	var out []model.AttendanceSessionModel
	err := r.db.WithContext(ctx).
		Where("user_id IN ?", userIDs).
		Where("check_in_time >= ? AND check_in_time < ?", start, endExclusive).
		Order("check_in_time ASC").
		Find(&out).Error
	return out, err
}
