package dto

import (
	"strings"
	"time"

	"github.com/google/uuid"

	"absensiku_backend/internals/features/attendance/attendance/model"
	userModel "absensiku_backend/internals/features/users/user/model"
)

/* =======================================================
   REQUEST DTOs
   ======================================================= */

// PunchRequest dipakai check-in maupun check-out:
// koordinat opsional (absen dari kantor bisa tanpa lokasi), notes opsional.
type PunchRequest struct {
	Latitude  *float64 `json:"latitude" validate:"omitempty,gte=-90,lte=90"`
	Longitude *float64 `json:"longitude" validate:"omitempty,gte=-180,lte=180"`
	Notes     string   `json:"notes" validate:"omitempty,max=1000"`
}

func (r *PunchRequest) Normalize() {
	r.Notes = strings.TrimSpace(r.Notes)
}

// Location menghasilkan GeoPoint bila kedua koordinat terisi.
func (r *PunchRequest) Location() *model.GeoPoint {
	if r.Latitude == nil || r.Longitude == nil {
		return nil
	}
	return &model.GeoPoint{Latitude: *r.Latitude, Longitude: *r.Longitude}
}

/* =======================================================
   RESPONSE DTOs
   ======================================================= */

type SessionResponse struct {
	ID               uuid.UUID       `json:"id"`
	UserID           uuid.UUID       `json:"user_id"`
	CompanyID        uuid.UUID       `json:"company_id"`
	CheckInTime      time.Time       `json:"check_in_time"`
	CheckOutTime     *time.Time      `json:"check_out_time,omitempty"`
	CheckInLocation  *model.GeoPoint `json:"check_in_location,omitempty"`
	CheckOutLocation *model.GeoPoint `json:"check_out_location,omitempty"`
	Notes            string          `json:"notes,omitempty"`
	TotalHours       *float64        `json:"total_hours,omitempty"`
	Status           string          `json:"status"`
	Open             bool            `json:"open"`
}

func FromModel(s *model.AttendanceSessionModel) SessionResponse {
	resp := SessionResponse{
		ID:           s.ID,
		UserID:       s.UserID,
		CompanyID:    s.CompanyID,
		CheckInTime:  s.CheckInTime,
		CheckOutTime: s.CheckOutTime,
		Notes:        s.Notes,
		TotalHours:   s.TotalHours,
		Status:       s.Status,
		Open:         s.IsOpen(),
	}
	if s.CheckInLocation != nil {
		p := s.CheckInLocation.Data()
		resp.CheckInLocation = &p
	}
	if s.CheckOutLocation != nil {
		p := s.CheckOutLocation.Data()
		resp.CheckOutLocation = &p
	}
	return resp
}

func FromModelList(list []model.AttendanceSessionModel) []SessionResponse {
	out := make([]SessionResponse, 0, len(list))
	for i := range list {
		out = append(out, FromModel(&list[i]))
	}
	return out
}

// SessionWithUserResponse: baris laporan perusahaan, sesi + identitas user.
type SessionWithUserResponse struct {
	SessionResponse
	UserFullName   string  `json:"user_full_name"`
	UserEmail      string  `json:"user_email"`
	UserDepartment *string `json:"user_department,omitempty"`
	UserPosition   *string `json:"user_position,omitempty"`
}

func WithUsers(list []model.AttendanceSessionModel, users map[uuid.UUID]*userModel.UserModel) []SessionWithUserResponse {
	out := make([]SessionWithUserResponse, 0, len(list))
	for i := range list {
		row := SessionWithUserResponse{SessionResponse: FromModel(&list[i])}
		if u, ok := users[list[i].UserID]; ok && u != nil {
			row.UserFullName = u.FullName
			row.UserEmail = u.Email
			row.UserDepartment = u.Department
			row.UserPosition = u.Position
		}
		out = append(out, row)
	}
	return out
}
