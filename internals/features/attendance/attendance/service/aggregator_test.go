package service

import (
	"reflect"
	"testing"
	"time"

	"github.com/google/uuid"

	"absensiku_backend/internals/features/attendance/attendance/model"
	userModel "absensiku_backend/internals/features/users/user/model"
)

func testUser(name string) userModel.UserModel {
	return userModel.UserModel{
		ID:       uuid.New(),
		FullName: name,
		Email:    name + "@contoh.co.id",
		Role:     "employee",
	}
}

// buildMonthSessions membuat sesi on-time 07:00–16:00 utk semua hari kerja Juni 2025.
func buildMonthSessions(t *testing.T, cal *BusinessCalendar, userID uuid.UUID) []model.AttendanceSessionModel {
	t.Helper()
	var out []model.AttendanceSessionModel
	for d := date(2025, 6, 1, 0, 0); !d.After(date(2025, 6, 30, 0, 0)); d = d.AddDate(0, 0, 1) {
		if !cal.IsWorkday(d) {
			continue
		}
		in := d.Add(7 * time.Hour)
		outAt := d.Add(16 * time.Hour)
		hours := 9.0
		out = append(out, model.AttendanceSessionModel{
			ID:           uuid.New(),
			UserID:       userID,
			CheckInDay:   d,
			CheckInTime:  in,
			CheckOutTime: &outAt,
			TotalHours:   &hours,
			Status:       model.StatusPresent,
		})
	}
	return out
}

// ============================================================
// Per-user aggregation
// ============================================================

func TestAggregateFullMonthOnTime(t *testing.T) {
	cal := newTestCalendar(t)
	u := testUser("Budi Santoso")
	sessions := buildMonthSessions(t, cal, u.ID)

	records := Aggregate(cal, []userModel.UserModel{u}, sessions,
		date(2025, 6, 1, 0, 0), date(2025, 6, 30, 0, 0))
	if len(records) != 1 {
		t.Fatalf("expected 1 record, got %d", len(records))
	}
	rec := records[0]

	// semua hari kerja (termasuk Sabtu) hadir on-time
	if rec.Workdays != 25 {
		t.Errorf("workdays: expected 25, got %d", rec.Workdays)
	}
	if rec.Present != 25 || rec.Late != 0 || rec.Absent != 0 {
		t.Errorf("unexpected counts: %+v", rec)
	}
	if rec.TotalHours != 25*9.0 {
		t.Errorf("total hours: expected %v, got %v", 25*9.0, rec.TotalHours)
	}
	if rec.ExpectedHours != 25*9.0 {
		t.Errorf("expected hours: expected %v, got %v", 25*9.0, rec.ExpectedHours)
	}
	if rec.AttendanceRate != 1.0 {
		t.Errorf("attendance rate: expected 1.0, got %v", rec.AttendanceRate)
	}
}

func TestAggregateCountsSumToWorkdays(t *testing.T) {
	cal := newTestCalendar(t)
	u := testUser("Siti Aminah")

	// hanya dua hari: satu on-time, satu telat; sisanya absen
	in1 := date(2025, 6, 2, 7, 0)
	out1 := date(2025, 6, 2, 16, 0)
	in2 := date(2025, 6, 3, 9, 30)
	out2 := date(2025, 6, 3, 16, 0)
	sessions := []model.AttendanceSessionModel{
		sessionAt(in1, &out1),
		sessionAt(in2, &out2),
	}
	for i := range sessions {
		sessions[i].UserID = u.ID
	}

	records := Aggregate(cal, []userModel.UserModel{u}, sessions,
		date(2025, 6, 1, 0, 0), date(2025, 6, 30, 0, 0))
	rec := records[0]

	if rec.Present != 1 || rec.Late != 1 {
		t.Errorf("expected 1 present + 1 late, got %+v", rec)
	}
	if rec.Present+rec.Late+rec.Absent != rec.Workdays {
		t.Errorf("present+late+absent (%d) != workdays (%d)",
			rec.Present+rec.Late+rec.Absent, rec.Workdays)
	}
}

func TestAggregateAbsentClampedAtZero(t *testing.T) {
	cal := newTestCalendar(t)
	u := testUser("Joko Widodo")

	// periode satu hari dengan dua sesi tertutup (data miring):
	// present tidak boleh bikin absent negatif
	out1 := date(2025, 6, 2, 12, 0)
	out2 := date(2025, 6, 2, 16, 0)
	sessions := []model.AttendanceSessionModel{
		sessionAt(date(2025, 6, 2, 7, 0), &out1),
		sessionAt(date(2025, 6, 2, 13, 0), &out2),
	}
	for i := range sessions {
		sessions[i].UserID = u.ID
	}

	records := Aggregate(cal, []userModel.UserModel{u}, sessions,
		date(2025, 6, 2, 0, 0), date(2025, 6, 2, 0, 0))
	rec := records[0]
	if rec.Absent < 0 {
		t.Errorf("absent harus >= 0, got %d", rec.Absent)
	}
}

func TestAggregateIsPure(t *testing.T) {
	cal := newTestCalendar(t)
	u := testUser("Dewi Lestari")
	sessions := buildMonthSessions(t, cal, u.ID)
	users := []userModel.UserModel{u}
	start, end := date(2025, 6, 1, 0, 0), date(2025, 6, 30, 0, 0)

	first := Aggregate(cal, users, sessions, start, end)
	second := Aggregate(cal, users, sessions, start, end)
	if !reflect.DeepEqual(first, second) {
		t.Error("agregasi harus deterministik utk input identik")
	}
}

func TestAggregateUserWithoutSessions(t *testing.T) {
	cal := newTestCalendar(t)
	u := testUser("Rina Marlina")

	records := Aggregate(cal, []userModel.UserModel{u}, nil,
		date(2025, 6, 1, 0, 0), date(2025, 6, 30, 0, 0))
	rec := records[0]
	if rec.Absent != 25 || rec.Present != 0 || rec.Late != 0 || rec.TotalHours != 0 {
		t.Errorf("user tanpa sesi harus full absent: %+v", rec)
	}
	if rec.AttendanceRate != 0 {
		t.Errorf("attendance rate harus 0, got %v", rec.AttendanceRate)
	}
}

// ============================================================
// Group totals
// ============================================================

func TestGroupTotalsPlainSum(t *testing.T) {
	records := []StatisticsRecord{
		{Present: 10, Absent: 2, Late: 1, TotalHours: 80, ExpectedHours: 90},
		{Present: 8, Absent: 5, Late: 0, TotalHours: 64, ExpectedHours: 90},
	}
	g := GroupTotals(records)
	if g.Present != 18 || g.Absent != 7 || g.Late != 1 {
		t.Errorf("unexpected: %+v", g)
	}
	if g.TotalHours != 144 || g.ExpectedHours != 180 {
		t.Errorf("unexpected hours: %+v", g)
	}
}

func TestGroupTotalsEmpty(t *testing.T) {
	g := GroupTotals(nil)
	if g != (GroupStatistics{}) {
		t.Errorf("expected zero value, got %+v", g)
	}
}
