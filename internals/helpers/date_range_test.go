package helper

import (
	"errors"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
)

// resolveVia menjalankan ResolveDateRange di dalam handler Fiber sungguhan
// supaya parsing query-nya ikut teruji.
func resolveVia(t *testing.T, target string, now time.Time) (DateRange, error) {
	t.Helper()
	app := fiber.New()

	var rng DateRange
	var rerr error
	app.Get("/x", func(c *fiber.Ctx) error {
		rng, rerr = ResolveDateRange(c, time.UTC, now)
		return c.SendString("ok")
	})

	resp, err := app.Test(httptest.NewRequest("GET", target, nil))
	if err != nil {
		t.Fatalf("app.Test: %v", err)
	}
	resp.Body.Close()
	return rng, rerr
}

func TestResolveDateRangeDefaultsToCurrentMonth(t *testing.T) {
	now := time.Date(2025, 6, 15, 10, 0, 0, 0, time.UTC)
	rng, err := resolveVia(t, "/x", now)
	if err != nil {
		t.Fatal(err)
	}
	if !rng.Start.Equal(time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)) {
		t.Errorf("start: got %v", rng.Start)
	}
	if !rng.End.Equal(time.Date(2025, 6, 30, 0, 0, 0, 0, time.UTC)) {
		t.Errorf("end: got %v", rng.End)
	}
}

func TestResolveDateRangeExplicit(t *testing.T) {
	now := time.Date(2025, 6, 15, 10, 0, 0, 0, time.UTC)
	rng, err := resolveVia(t, "/x?start_date=2025-06-02&end_date=2025-06-10", now)
	if err != nil {
		t.Fatal(err)
	}
	if !rng.Start.Equal(time.Date(2025, 6, 2, 0, 0, 0, 0, time.UTC)) {
		t.Errorf("start: got %v", rng.Start)
	}
	// End inklusif; batas query half-open di End+1d
	if !rng.EndExclusive().Equal(time.Date(2025, 6, 11, 0, 0, 0, 0, time.UTC)) {
		t.Errorf("end exclusive: got %v", rng.EndExclusive())
	}
}

func TestResolveDateRangeLegacyAlias(t *testing.T) {
	now := time.Date(2025, 6, 15, 10, 0, 0, 0, time.UTC)
	rng, err := resolveVia(t, "/x?startDate=2025-06-02&endDate=2025-06-03", now)
	if err != nil {
		t.Fatal(err)
	}
	if !rng.Start.Equal(time.Date(2025, 6, 2, 0, 0, 0, 0, time.UTC)) {
		t.Errorf("alias camelCase harus didukung, got %v", rng.Start)
	}
}

func TestResolveDateRangeInverted(t *testing.T) {
	now := time.Date(2025, 6, 15, 10, 0, 0, 0, time.UTC)
	_, err := resolveVia(t, "/x?start_date=2025-06-10&end_date=2025-06-02", now)
	if !errors.Is(err, ErrInvalidRange) {
		t.Fatalf("rentang terbalik harus ErrInvalidRange, got %v", err)
	}
}

func TestResolveDateRangeMalformed(t *testing.T) {
	now := time.Date(2025, 6, 15, 10, 0, 0, 0, time.UTC)
	_, err := resolveVia(t, "/x?start_date=02-06-2025", now)
	if !errors.Is(err, ErrInvalidRange) {
		t.Fatalf("format salah harus ErrInvalidRange, got %v", err)
	}
}

func TestResolveDateRangeOnlyStart(t *testing.T) {
	// hanya start → end default hari ini
	now := time.Date(2025, 6, 15, 10, 0, 0, 0, time.UTC)
	rng, err := resolveVia(t, "/x?start_date=2025-06-01", now)
	if err != nil {
		t.Fatal(err)
	}
	if !rng.End.Equal(time.Date(2025, 6, 15, 0, 0, 0, 0, time.UTC)) {
		t.Errorf("end default hari ini, got %v", rng.End)
	}
}

func TestDateRangeContains(t *testing.T) {
	rng := DateRange{
		Start: time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC),
		End:   time.Date(2025, 6, 30, 0, 0, 0, 0, time.UTC),
	}
	// akhir hari terakhir masih masuk (End inklusif sebagai hari)
	if !rng.Contains(time.Date(2025, 6, 30, 23, 59, 0, 0, time.UTC)) {
		t.Error("23:59 di hari terakhir harus masuk periode")
	}
	if rng.Contains(time.Date(2025, 7, 1, 0, 0, 0, 0, time.UTC)) {
		t.Error("tengah malam setelah periode harus di luar")
	}
}

func TestCurrentMonthRangeDecember(t *testing.T) {
	// guard rollover tahun
	now := time.Date(2025, 12, 20, 8, 0, 0, 0, time.UTC)
	rng := CurrentMonthRange(time.UTC, now)
	if !rng.End.Equal(time.Date(2025, 12, 31, 0, 0, 0, 0, time.UTC)) {
		t.Errorf("akhir Desember: got %v", rng.End)
	}
}
