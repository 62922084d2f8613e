package service

import (
	"context"
	"errors"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"

	"absensiku_backend/internals/features/attendance/attendance/model"
	"absensiku_backend/internals/features/attendance/attendance/repository"
)

// Error lifecycle — dibedakan di controller jadi status HTTP.
var (
	// ErrAlreadyCheckedIn: masih ada sesi terbuka hari ini.
	// CheckIn tetap mengembalikan sesi lama itu supaya caller bisa
	// menampilkannya (konflik yang bisa dikoreksi user, bukan hard failure).
	ErrAlreadyCheckedIn = errors.New("sudah melakukan absen masuk hari ini")

	// ErrNoOpenSession: check-out tanpa sesi terbuka.
	ErrNoOpenSession = errors.New("belum ada absen masuk hari ini")
)

// LifecycleService menjaga invariant satu-sesi-terbuka-per-user-per-hari.
// Serialisasi per user pakai keyed mutex; index unik parsial di DB jadi
// pengaman kedua kalau ada dua instance aplikasi.
type LifecycleService struct {
	repo  repository.SessionRepository
	cal   *BusinessCalendar
	locks sync.Map // uuid.UUID → *sync.Mutex
}

func NewLifecycleService(repo repository.SessionRepository, cal *BusinessCalendar) *LifecycleService {
	return &LifecycleService{repo: repo, cal: cal}
}

func (s *LifecycleService) userLock(id uuid.UUID) *sync.Mutex {
	v, _ := s.locks.LoadOrStore(id, &sync.Mutex{})
	return v.(*sync.Mutex)
}

type CheckInInput struct {
	UserID    uuid.UUID
	CompanyID uuid.UUID
	At        time.Time // jam dari boundary request, bukan dibaca di sini
	Location  *model.GeoPoint
	Notes     string
}

type CheckOutInput struct {
	UserID   uuid.UUID
	At       time.Time
	Location *model.GeoPoint
	Notes    string
}

// CheckIn membuat sesi baru untuk hari kalender dari in.At.
// Bila masih ada sesi terbuka hari itu: kembalikan sesi tsb + ErrAlreadyCheckedIn.
func (s *LifecycleService) CheckIn(ctx context.Context, in CheckInInput) (*model.AttendanceSessionModel, error) {
	lock := s.userLock(in.UserID)
	lock.Lock()
	defer lock.Unlock()

	day := s.cal.DayStart(in.At)

	var result *model.AttendanceSessionModel
	err := s.repo.WithTx(ctx, func(tx repository.SessionRepository) error {
		existing, err := tx.FindOpenByUserAndDay(ctx, in.UserID, day)
		if err != nil {
			return err
		}
		if existing != nil {
			result = existing
			return ErrAlreadyCheckedIn
		}

		session := &model.AttendanceSessionModel{
			UserID:      in.UserID,
			CompanyID:   in.CompanyID,
			CheckInDay:  day,
			CheckInTime: in.At,
			Notes:       strings.TrimSpace(in.Notes),
			Status:      ClassifyCheckIn(s.cal, in.At),
		}
		if in.Location != nil {
			session.CheckInLocation = jsonPoint(*in.Location)
		}

		if err := tx.Create(ctx, session); err != nil {
			if errors.Is(err, repository.ErrDuplicateOpenSession) {
				// kalah balapan dengan instance lain; ambil sesi pemenangnya
				if winner, ferr := tx.FindOpenByUserAndDay(ctx, in.UserID, day); ferr == nil && winner != nil {
					result = winner
				}
				return ErrAlreadyCheckedIn
			}
			return err
		}
		result = session
		return nil
	})
	if err != nil && !errors.Is(err, ErrAlreadyCheckedIn) {
		return nil, err
	}
	return result, err
}

// CheckOut menutup sesi terbuka pada hari kalender dari in.At:
// set check-out time, hitung total jam (pecahan, tidak dibulatkan),
// gabungkan notes. Sesi immutable setelah ini.
func (s *LifecycleService) CheckOut(ctx context.Context, in CheckOutInput) (*model.AttendanceSessionModel, error) {
	lock := s.userLock(in.UserID)
	lock.Lock()
	defer lock.Unlock()

	day := s.cal.DayStart(in.At)

	var result *model.AttendanceSessionModel
	err := s.repo.WithTx(ctx, func(tx repository.SessionRepository) error {
		session, err := tx.FindOpenByUserAndDay(ctx, in.UserID, day)
		if err != nil {
			return err
		}
		if session == nil {
			return ErrNoOpenSession
		}

		out := in.At
		session.CheckOutTime = &out

		hours := out.Sub(session.CheckInTime).Hours()
		if hours < 0 {
			hours = 0
		}
		session.TotalHours = &hours

		session.Notes = MergeNotes(session.Notes, in.Notes)
		if in.Location != nil {
			session.CheckOutLocation = jsonPoint(*in.Location)
		}

		if err := tx.Update(ctx, session); err != nil {
			return err
		}
		result = session
		return nil
	})
	if err != nil {
		return nil, err
	}
	return result, nil
}

// MergeNotes menggabungkan catatan check-in dan check-out:
// keduanya terisi → disambung newline; selain itu ambil yang ada.
func MergeNotes(oldNotes, newNotes string) string {
	oldNotes = strings.TrimSpace(oldNotes)
	newNotes = strings.TrimSpace(newNotes)
	switch {
	case oldNotes == "":
		return newNotes
	case newNotes == "":
		return oldNotes
	default:
		return oldNotes + "\n" + newNotes
	}
}

func jsonPoint(p model.GeoPoint) *datatypes.JSONType[model.GeoPoint] {
	v := datatypes.NewJSONType(p)
	return &v
}
