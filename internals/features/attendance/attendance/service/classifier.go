package service

import (
	"sort"
	"time"

	"absensiku_backend/internals/features/attendance/attendance/model"
)

// DayResult: hasil klasifikasi satu hari kalender untuk satu user.
type DayResult struct {
	Status      string // present | late | absent
	WorkedHours float64
}

// ClassifyCheckIn menentukan status dari jam check-in:
// di atau sebelum jam masuk yang diharapkan → present, setelahnya → late.
func ClassifyCheckIn(cal *BusinessCalendar, checkIn time.Time) string {
	expected := cal.ExpectedStartOn(checkIn)
	if checkIn.After(expected) {
		return model.StatusLate
	}
	return model.StatusPresent
}

// ClassifyDay mengklasifikasikan satu hari kalender.
// ok=false bila hari libur: hari libur dikecualikan total dari klasifikasi
// (bukan present, late, maupun absent).
//
// Aturan:
//   - hari kerja tanpa sesi → absent, 0 jam
//   - ada sesi → status dari check-in PALING AWAL hari itu;
//     sesi terbuka tetap diklasifikasikan dari jam check-in, tapi
//     menyumbang 0 jam sampai ditutup
//   - jam kerja = Σ max(0, checkOut−checkIn) semua sesi hari itu
func ClassifyDay(cal *BusinessCalendar, day time.Time, sessions []model.AttendanceSessionModel) (DayResult, bool) {
	if !cal.IsWorkday(day) {
		return DayResult{}, false
	}
	if len(sessions) == 0 {
		return DayResult{Status: model.StatusAbsent}, true
	}

	earliest := sessions[0].CheckInTime
	var hours float64
	for i := range sessions {
		if sessions[i].CheckInTime.Before(earliest) {
			earliest = sessions[i].CheckInTime
		}
		hours += sessions[i].WorkedHours()
	}

	return DayResult{
		Status:      ClassifyCheckIn(cal, earliest),
		WorkedHours: hours,
	}, true
}

// BucketSessionsByDay mengelompokkan sesi ke bucket hari lokal check-in-nya.
// Kunci map: unix detik tengah malam lokal. Tiap bucket diurutkan naik
// supaya hasil hilir deterministik.
func BucketSessionsByDay(cal *BusinessCalendar, sessions []model.AttendanceSessionModel) map[int64][]model.AttendanceSessionModel {
	buckets := make(map[int64][]model.AttendanceSessionModel)
	for i := range sessions {
		key := cal.DayStart(sessions[i].CheckInTime).Unix()
		buckets[key] = append(buckets[key], sessions[i])
	}
	for key := range buckets {
		b := buckets[key]
		sort.Slice(b, func(i, j int) bool { return b[i].CheckInTime.Before(b[j].CheckInTime) })
	}
	return buckets
}
