package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

// Status klasifikasi harian.
const (
	StatusPresent = "present"
	StatusLate    = "late"
	StatusAbsent  = "absent"
)

// GeoPoint: koordinat lokasi saat absen (opsional).
type GeoPoint struct {
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
}

// AttendanceSessionModel merepresentasikan satu hari kehadiran satu user:
// dibuat saat check-in, dimutasi sekali saat check-out, setelah itu immutable.
//
// Invariant: maksimal satu sesi TERBUKA (check_out_time IS NULL) per
// (user, hari lokal) — dijaga index unik parsial uq_attendance_open_session
// plus lock per-user di service sebagai jalur utama.
type AttendanceSessionModel struct {
	ID        uuid.UUID `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	UserID    uuid.UUID `gorm:"type:uuid;not null;index:idx_attendance_user_checkin,priority:1;uniqueIndex:uq_attendance_open_session,priority:1" json:"user_id"`
	CompanyID uuid.UUID `gorm:"type:uuid;not null;index" json:"company_id"`

	// CheckInDay: tengah-malam lokal hari check-in, bucket hari kalender.
	CheckInDay  time.Time  `gorm:"type:date;not null;uniqueIndex:uq_attendance_open_session,priority:2,where:check_out_time IS NULL" json:"check_in_day"`
	CheckInTime time.Time  `gorm:"not null;index:idx_attendance_user_checkin,priority:2" json:"check_in_time"`
	CheckOutTime *time.Time `json:"check_out_time,omitempty"`

	CheckInLocation  *datatypes.JSONType[GeoPoint] `gorm:"type:jsonb" json:"check_in_location,omitempty"`
	CheckOutLocation *datatypes.JSONType[GeoPoint] `gorm:"type:jsonb" json:"check_out_location,omitempty"`

	Notes string `gorm:"type:text" json:"notes,omitempty"`

	// TotalHours: jam kerja pecahan, baru terisi setelah check-out.
	TotalHours *float64 `json:"total_hours,omitempty"`
	Status     string   `gorm:"type:varchar(20);not null;default:'present'" json:"status"`

	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}

func (AttendanceSessionModel) TableName() string {
	return "attendance_sessions"
}

// IsOpen: sudah check-in, belum check-out.
func (s *AttendanceSessionModel) IsOpen() bool {
	return s.CheckOutTime == nil
}

// WorkedHours: kontribusi jam kerja sesi ini; sesi terbuka menyumbang 0.
func (s *AttendanceSessionModel) WorkedHours() float64 {
	if s.CheckOutTime == nil {
		return 0
	}
	h := s.CheckOutTime.Sub(s.CheckInTime).Hours()
	if h < 0 {
		return 0
	}
	return h
}
