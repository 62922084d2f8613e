package service

import (
	"fmt"
	"strings"
	"time"

	"absensiku_backend/internals/configs"
)

// BusinessCalendar mendefinisikan kebijakan hari kerja:
// hari libur mingguan + jendela jam kerja yang diharapkan.
// Semua perhitungan pakai timezone referensi, tanpa membaca jam sistem.
type BusinessCalendar struct {
	RestDays     map[time.Weekday]bool
	StartMinutes int // menit sejak 00:00 lokal, mis. 08:00 → 480
	EndMinutes   int
	Loc          *time.Location
}

// NewBusinessCalendar membangun kalender; start/end dalam menit sejak tengah malam.
func NewBusinessCalendar(restDays []time.Weekday, startMinutes, endMinutes int, loc *time.Location) *BusinessCalendar {
	rest := make(map[time.Weekday]bool, len(restDays))
	for _, d := range restDays {
		rest[d] = true
	}
	if loc == nil {
		loc = time.UTC
	}
	return &BusinessCalendar{
		RestDays:     rest,
		StartMinutes: startMinutes,
		EndMinutes:   endMinutes,
		Loc:          loc,
	}
}

// NewBusinessCalendarFromEnv membaca WORK_REST_DAY (default Sunday, boleh
// daftar dipisah koma), WORK_START / WORK_END (HH:MM), dan APP_TIMEZONE.
func NewBusinessCalendarFromEnv() (*BusinessCalendar, error) {
	restDays, err := parseRestDays(configs.GetEnv("WORK_REST_DAY", "Sunday"))
	if err != nil {
		return nil, err
	}
	start, err := parseClock(configs.GetEnv("WORK_START", "08:00"))
	if err != nil {
		return nil, fmt.Errorf("WORK_START: %w", err)
	}
	end, err := parseClock(configs.GetEnv("WORK_END", "17:00"))
	if err != nil {
		return nil, fmt.Errorf("WORK_END: %w", err)
	}
	return NewBusinessCalendar(restDays, start, end, configs.AppLocation()), nil
}

// IsWorkday: true kecuali jatuh pada hari libur mingguan.
// Default satu hari libur berarti minggu kerja 6 hari (Sabtu ikut kerja).
func (cal *BusinessCalendar) IsWorkday(t time.Time) bool {
	return !cal.RestDays[t.In(cal.Loc).Weekday()]
}

// ExpectedDailyHours: lama jam kerja harian dari jendela start–end.
// Jendela yang "terbalik" (end < start) dianggap melewati tengah malam,
// jadi durasinya ditambah 24 jam, tidak pernah negatif.
func (cal *BusinessCalendar) ExpectedDailyHours() float64 {
	minutes := cal.EndMinutes - cal.StartMinutes
	if minutes < 0 {
		minutes += 24 * 60
	}
	return float64(minutes) / 60.0
}

// DayStart: tengah malam lokal dari t (bucket hari kalender).
func (cal *BusinessCalendar) DayStart(t time.Time) time.Time {
	tl := t.In(cal.Loc)
	return time.Date(tl.Year(), tl.Month(), tl.Day(), 0, 0, 0, 0, cal.Loc)
}

// ExpectedStartOn: jam masuk yang diharapkan pada hari tsb (batas telat).
func (cal *BusinessCalendar) ExpectedStartOn(day time.Time) time.Time {
	return cal.DayStart(day).Add(time.Duration(cal.StartMinutes) * time.Minute)
}

// WorkdaysInRange menghitung hari kerja dalam [start, end] INKLUSIF.
// Iterasi per hari kalender, bukan pembagian detik, supaya aman terhadap DST.
func (cal *BusinessCalendar) WorkdaysInRange(start, end time.Time) int {
	first := cal.DayStart(start)
	last := cal.DayStart(end)
	if last.Before(first) {
		return 0
	}
	count := 0
	for d := first; !d.After(last); d = d.AddDate(0, 0, 1) {
		if cal.IsWorkday(d) {
			count++
		}
	}
	return count
}

// ExpectedHoursForPeriod: hari kerja × jam harian (penyebut attendance rate).
func (cal *BusinessCalendar) ExpectedHoursForPeriod(start, end time.Time) float64 {
	return float64(cal.WorkdaysInRange(start, end)) * cal.ExpectedDailyHours()
}

/* ==========================
   Parsers
========================== */

var weekdayNames = map[string]time.Weekday{
	"sunday":    time.Sunday,
	"monday":    time.Monday,
	"tuesday":   time.Tuesday,
	"wednesday": time.Wednesday,
	"thursday":  time.Thursday,
	"friday":    time.Friday,
	"saturday":  time.Saturday,
}

func parseRestDays(raw string) ([]time.Weekday, error) {
	var out []time.Weekday
	for _, part := range strings.Split(raw, ",") {
		name := strings.ToLower(strings.TrimSpace(part))
		if name == "" {
			continue
		}
		d, ok := weekdayNames[name]
		if !ok {
			return nil, fmt.Errorf("WORK_REST_DAY: hari %q tidak dikenal", part)
		}
		out = append(out, d)
	}
	return out, nil
}

// parseClock: "HH:MM" → menit sejak tengah malam.
func parseClock(raw string) (int, error) {
	t, err := time.Parse("15:04", strings.TrimSpace(raw))
	if err != nil {
		return 0, fmt.Errorf("format jam %q salah (harus HH:MM)", raw)
	}
	return t.Hour()*60 + t.Minute(), nil
}
