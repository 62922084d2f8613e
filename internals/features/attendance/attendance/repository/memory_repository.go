package repository

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"

	"absensiku_backend/internals/features/attendance/attendance/model"
)

// MemorySessionRepository: implementasi in-memory utk test & dev lokal.
// Mutex tunggal sudah cukup; atomisitas per-key di produksi ada di DB.
type MemorySessionRepository struct {
	mu       sync.Mutex
	sessions map[uuid.UUID]model.AttendanceSessionModel
}

func NewMemorySessionRepository() *MemorySessionRepository {
	return &MemorySessionRepository{
		sessions: make(map[uuid.UUID]model.AttendanceSessionModel),
	}
}

func (r *MemorySessionRepository) WithTx(ctx context.Context, fn func(SessionRepository) error) error {
	// tidak ada transaksi sungguhan di memory; jalankan langsung
	return fn(r)
}

func (r *MemorySessionRepository) Create(ctx context.Context, s *model.AttendanceSessionModel) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	// tiru index unik parsial (user_id, check_in_day) where check_out_time IS NULL
	if s.CheckOutTime == nil {
		for _, existing := range r.sessions {
			if existing.UserID == s.UserID && existing.CheckOutTime == nil && existing.CheckInDay.Equal(s.CheckInDay) {
				return ErrDuplicateOpenSession
			}
		}
	}

	if s.ID == uuid.Nil {
		s.ID = uuid.New()
	}
	now := time.Now()
	s.CreatedAt = now
	s.UpdatedAt = now
	r.sessions[s.ID] = *s
	return nil
}

func (r *MemorySessionRepository) Update(ctx context.Context, s *model.AttendanceSessionModel) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	s.UpdatedAt = time.Now()
	r.sessions[s.ID] = *s
	return nil
}

func (r *MemorySessionRepository) FindOpenByUserAndDay(ctx context.Context, userID uuid.UUID, day time.Time) (*model.AttendanceSessionModel, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	dayEnd := day.Add(24 * time.Hour)
	for _, s := range r.sessions {
		if s.UserID == userID && s.CheckOutTime == nil &&
			!s.CheckInTime.Before(day) && s.CheckInTime.Before(dayEnd) {
			out := s
			return &out, nil
		}
	}
	return nil, nil
}

func (r *MemorySessionRepository) ListByUser(ctx context.Context, userID uuid.UUID, start, endExclusive time.Time, limit, offset int) ([]model.AttendanceSessionModel, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []model.AttendanceSessionModel
	for _, s := range r.sessions {
		if s.UserID == userID && !s.CheckInTime.Before(start) && s.CheckInTime.Before(endExclusive) {
			out = append(out, s)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CheckInTime.After(out[j].CheckInTime) })
	if limit > 0 {
		if offset >= len(out) {
			return nil, nil
		}
		out = out[offset:]
		if len(out) > limit {
			out = out[:limit]
		}
	}
	return out, nil
}

func (r *MemorySessionRepository) CountByUser(ctx context.Context, userID uuid.UUID, start, endExclusive time.Time) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var total int64
	for _, s := range r.sessions {
		if s.UserID == userID && !s.CheckInTime.Before(start) && s.CheckInTime.Before(endExclusive) {
			total++
		}
	}
	return total, nil
}

func (r *MemorySessionRepository) ListByUsers(ctx context.Context, userIDs []uuid.UUID, start, endExclusive time.Time) ([]model.AttendanceSessionModel, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	want := make(map[uuid.UUID]struct{}, len(userIDs))
	for _, id := range userIDs {
		want[id] = struct{}{}
	}
	var out []model.AttendanceSessionModel
	for _, s := range r.sessions {
		if _, ok := want[s.UserID]; !ok {
			continue
		}
		if !s.CheckInTime.Before(start) && s.CheckInTime.Before(endExclusive) {
			out = append(out, s)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CheckInTime.Before(out[j].CheckInTime) })
	return out, nil
}
