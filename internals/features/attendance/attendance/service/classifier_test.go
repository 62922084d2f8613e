package service

import (
	"testing"
	"time"

	"github.com/google/uuid"

	"absensiku_backend/internals/features/attendance/attendance/model"
)

func sessionAt(checkIn time.Time, checkOut *time.Time) model.AttendanceSessionModel {
	return model.AttendanceSessionModel{
		ID:           uuid.New(),
		UserID:       uuid.New(),
		CheckInDay:   time.Date(checkIn.Year(), checkIn.Month(), checkIn.Day(), 0, 0, 0, 0, checkIn.Location()),
		CheckInTime:  checkIn,
		CheckOutTime: checkOut,
	}
}

func ptrTime(t time.Time) *time.Time { return &t }

// ============================================================
// Check-in classification (expected start 07:30)
// ============================================================

func TestClassifyCheckInOnTime(t *testing.T) {
	cal := newTestCalendar(t)

	// 07:00 → present
	if got := ClassifyCheckIn(cal, date(2025, 6, 2, 7, 0)); got != model.StatusPresent {
		t.Errorf("expected present, got %s", got)
	}
	// tepat 07:30 → masih present (batasnya "strictly after")
	if got := ClassifyCheckIn(cal, date(2025, 6, 2, 7, 30)); got != model.StatusPresent {
		t.Errorf("expected present, got %s", got)
	}
}

func TestClassifyCheckInLate(t *testing.T) {
	cal := newTestCalendar(t)
	if got := ClassifyCheckIn(cal, date(2025, 6, 2, 8, 0)); got != model.StatusLate {
		t.Errorf("expected late, got %s", got)
	}
}

// ============================================================
// Day classification
// ============================================================

func TestClassifyDayAbsentOnWorkdayWithoutSession(t *testing.T) {
	cal := newTestCalendar(t)
	res, ok := ClassifyDay(cal, date(2025, 6, 2, 0, 0), nil)
	if !ok {
		t.Fatal("hari kerja harus terklasifikasi")
	}
	if res.Status != model.StatusAbsent || res.WorkedHours != 0 {
		t.Errorf("unexpected: %+v", res)
	}
}

func TestClassifyDaySkipsRestDay(t *testing.T) {
	cal := newTestCalendar(t)
	// Minggu: bukan present, late, ataupun absent
	if _, ok := ClassifyDay(cal, date(2025, 6, 1, 0, 0), nil); ok {
		t.Error("hari libur tidak boleh diklasifikasikan")
	}
	// bahkan dengan sesi pun hari libur tetap dikecualikan
	s := sessionAt(date(2025, 6, 1, 9, 0), ptrTime(date(2025, 6, 1, 17, 0)))
	if _, ok := ClassifyDay(cal, date(2025, 6, 1, 0, 0), []model.AttendanceSessionModel{s}); ok {
		t.Error("hari libur dengan sesi tetap dikecualikan")
	}
}

func TestClassifyDayWorkedHours(t *testing.T) {
	cal := newTestCalendar(t)
	// 09:00–17:00 → 8 jam
	s := sessionAt(date(2025, 6, 2, 9, 0), ptrTime(date(2025, 6, 2, 17, 0)))
	res, ok := ClassifyDay(cal, date(2025, 6, 2, 0, 0), []model.AttendanceSessionModel{s})
	if !ok {
		t.Fatal("hari kerja harus terklasifikasi")
	}
	if res.WorkedHours != 8.0 {
		t.Errorf("expected 8.0, got %v", res.WorkedHours)
	}
	if res.Status != model.StatusLate {
		t.Errorf("check-in 09:00 seharusnya late, got %s", res.Status)
	}
}

func TestClassifyDayOpenSessionContributesZeroHours(t *testing.T) {
	cal := newTestCalendar(t)
	// sesi terbuka: klasifikasi tetap dari jam check-in, jam kerja 0
	s := sessionAt(date(2025, 6, 2, 7, 0), nil)
	res, ok := ClassifyDay(cal, date(2025, 6, 2, 0, 0), []model.AttendanceSessionModel{s})
	if !ok {
		t.Fatal("hari kerja harus terklasifikasi")
	}
	if res.Status != model.StatusPresent {
		t.Errorf("expected present, got %s", res.Status)
	}
	if res.WorkedHours != 0 {
		t.Errorf("sesi terbuka harus menyumbang 0 jam, got %v", res.WorkedHours)
	}
}

func TestClassifyDayUsesEarliestCheckIn(t *testing.T) {
	cal := newTestCalendar(t)
	late := sessionAt(date(2025, 6, 2, 13, 0), ptrTime(date(2025, 6, 2, 17, 0)))
	early := sessionAt(date(2025, 6, 2, 7, 15), ptrTime(date(2025, 6, 2, 12, 0)))
	res, ok := ClassifyDay(cal, date(2025, 6, 2, 0, 0), []model.AttendanceSessionModel{late, early})
	if !ok {
		t.Fatal("hari kerja harus terklasifikasi")
	}
	if res.Status != model.StatusPresent {
		t.Errorf("status harus dari check-in paling awal, got %s", res.Status)
	}
	// 4.75 + 4 jam
	if res.WorkedHours != 8.75 {
		t.Errorf("expected 8.75, got %v", res.WorkedHours)
	}
}

func TestBucketSessionsByDay(t *testing.T) {
	cal := newTestCalendar(t)
	s1 := sessionAt(date(2025, 6, 2, 9, 0), nil)
	s2 := sessionAt(date(2025, 6, 3, 9, 0), nil)
	s3 := sessionAt(date(2025, 6, 2, 7, 0), nil)

	buckets := BucketSessionsByDay(cal, []model.AttendanceSessionModel{s1, s2, s3})
	if len(buckets) != 2 {
		t.Fatalf("expected 2 buckets, got %d", len(buckets))
	}
	day2 := buckets[date(2025, 6, 2, 0, 0).Unix()]
	if len(day2) != 2 {
		t.Fatalf("expected 2 sesi di 2 Juni, got %d", len(day2))
	}
	// bucket diurutkan naik
	if !day2[0].CheckInTime.Before(day2[1].CheckInTime) {
		t.Error("bucket harus urut check-in naik")
	}
}
