// file: internals/helpers/date_range.go
package helper

import (
	"errors"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
)

// ErrInvalidRange dikembalikan saat format tanggal salah atau rentang terbalik.
// Rentang yang hanya kosong bukan error: dipakai default bulan berjalan.
var ErrInvalidRange = errors.New("rentang tanggal tidak valid")

// DateRange merepresentasikan periode laporan.
// Start dan End adalah tengah-malam lokal; End bersifat INKLUSIF sebagai hari,
// query ke DB memakai EndExclusive() supaya batasnya half-open [Start, End+1d).
type DateRange struct {
	Start time.Time
	End   time.Time
}

func (r DateRange) EndExclusive() time.Time {
	return r.End.AddDate(0, 0, 1)
}

// Contains melaporkan apakah t jatuh di dalam periode.
func (r DateRange) Contains(t time.Time) bool {
	return !t.Before(r.Start) && t.Before(r.EndExclusive())
}

const dateLayout = "2006-01-02"

// ResolveDateRange membaca ?start_date= & ?end_date= (alias lama: startDate/endDate).
// Keduanya kosong → default bulan kalender berjalan.
// Salah format atau end < start → ErrInvalidRange.
func ResolveDateRange(c *fiber.Ctx, loc *time.Location, now time.Time) (DateRange, error) {
	startStr := firstNonEmpty(c.Query("start_date"), c.Query("startDate"))
	endStr := firstNonEmpty(c.Query("end_date"), c.Query("endDate"))

	if startStr == "" && endStr == "" {
		return CurrentMonthRange(loc, now), nil
	}

	nowLocal := now.In(loc)

	start := dayStart(nowLocal, loc)
	if startStr != "" {
		t, err := time.ParseInLocation(dateLayout, startStr, loc)
		if err != nil {
			return DateRange{}, ErrInvalidRange
		}
		start = t
	}

	end := dayStart(nowLocal, loc)
	if endStr != "" {
		t, err := time.ParseInLocation(dateLayout, endStr, loc)
		if err != nil {
			return DateRange{}, ErrInvalidRange
		}
		end = t
	}

	if end.Before(start) {
		return DateRange{}, ErrInvalidRange
	}
	return DateRange{Start: start, End: end}, nil
}

// CurrentMonthRange: tanggal 1 s.d. akhir bulan berjalan (perilaku default laporan).
func CurrentMonthRange(loc *time.Location, now time.Time) DateRange {
	nowLocal := now.In(loc)
	first := time.Date(nowLocal.Year(), nowLocal.Month(), 1, 0, 0, 0, 0, loc)
	last := first.AddDate(0, 1, -1)
	return DateRange{Start: first, End: last}
}

func dayStart(t time.Time, loc *time.Location) time.Time {
	tl := t.In(loc)
	return time.Date(tl.Year(), tl.Month(), tl.Day(), 0, 0, 0, 0, loc)
}

func firstNonEmpty(a, b string) string {
	if strings.TrimSpace(a) != "" {
		return strings.TrimSpace(a)
	}
	return strings.TrimSpace(b)
}
