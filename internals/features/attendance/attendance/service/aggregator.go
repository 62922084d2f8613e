package service

import (
	"time"

	"github.com/google/uuid"

	"absensiku_backend/internals/features/attendance/attendance/model"
	userModel "absensiku_backend/internals/features/users/user/model"
)

// StatisticsRecord: agregat kehadiran satu user dalam satu periode.
// Bukan data persisten — murni fungsi dari (sesi, periode, kalender),
// dihitung ulang setiap kali diminta.
type StatisticsRecord struct {
	UserID         uuid.UUID `json:"user_id"`
	FullName       string    `json:"full_name"`
	Department     *string   `json:"department,omitempty"`
	Present        int       `json:"present"`
	Absent         int       `json:"absent"`
	Late           int       `json:"late"`
	TotalHours     float64   `json:"total_hours"`
	Workdays       int       `json:"workdays"`
	ExpectedHours  float64   `json:"expected_total_hours"`
	AttendanceRate float64   `json:"attendance_rate"`
}

// GroupStatistics: penjumlahan polos lintas user (laporan perusahaan/departemen),
// tanpa pembobotan.
type GroupStatistics struct {
	Present       int     `json:"present"`
	Absent        int     `json:"absent"`
	Late          int     `json:"late"`
	TotalHours    float64 `json:"total_hours"`
	ExpectedHours float64 `json:"expected_total_hours"`
}

// Aggregate menghitung statistik per user utk periode [periodStart, periodEnd]
// inklusif. Deterministik: urutan output mengikuti urutan slice users,
// tidak ada pembacaan jam sistem di sini.
func Aggregate(cal *BusinessCalendar, users []userModel.UserModel, sessions []model.AttendanceSessionModel, periodStart, periodEnd time.Time) []StatisticsRecord {
	workdays := cal.WorkdaysInRange(periodStart, periodEnd)
	expectedHours := float64(workdays) * cal.ExpectedDailyHours()

	// bucket sesi per user per hari lokal
	byUser := make(map[uuid.UUID][]model.AttendanceSessionModel)
	for i := range sessions {
		byUser[sessions[i].UserID] = append(byUser[sessions[i].UserID], sessions[i])
	}

	first := cal.DayStart(periodStart)
	last := cal.DayStart(periodEnd)

	records := make([]StatisticsRecord, 0, len(users))
	for i := range users {
		u := &users[i]
		buckets := BucketSessionsByDay(cal, byUser[u.ID])

		rec := StatisticsRecord{
			UserID:        u.ID,
			FullName:      u.FullName,
			Department:    u.Department,
			Workdays:      workdays,
			ExpectedHours: expectedHours,
		}

		for d := first; !d.After(last); d = d.AddDate(0, 0, 1) {
			res, ok := ClassifyDay(cal, d, buckets[d.Unix()])
			if !ok {
				continue // hari libur
			}
			switch res.Status {
			case model.StatusPresent:
				rec.Present++
			case model.StatusLate:
				rec.Late++
			}
			rec.TotalHours += res.WorkedHours
		}

		// absent diturunkan dari hari kerja, clamp 0 sebagai pengaman
		// bila data miring (mis. sesi ganda menggelembungkan present).
		rec.Absent = workdays - rec.Present - rec.Late
		if rec.Absent < 0 {
			rec.Absent = 0
		}

		if expectedHours > 0 {
			rec.AttendanceRate = rec.TotalHours / expectedHours
		}

		records = append(records, rec)
	}
	return records
}

// GroupTotals menjumlahkan record per-user menjadi satu angka grup.
func GroupTotals(records []StatisticsRecord) GroupStatistics {
	var g GroupStatistics
	for i := range records {
		g.Present += records[i].Present
		g.Absent += records[i].Absent
		g.Late += records[i].Late
		g.TotalHours += records[i].TotalHours
		g.ExpectedHours += records[i].ExpectedHours
	}
	return g
}
