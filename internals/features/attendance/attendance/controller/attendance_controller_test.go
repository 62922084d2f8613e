package controller

import (
	"context"
	"encoding/json"
	"math"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"absensiku_backend/internals/features/attendance/attendance/model"
	"absensiku_backend/internals/features/attendance/attendance/repository"
	"absensiku_backend/internals/features/attendance/attendance/service"
	userModel "absensiku_backend/internals/features/users/user/model"
	userRepository "absensiku_backend/internals/features/users/user/repository"
)

type testEnv struct {
	app      *fiber.App
	sessions *repository.MemorySessionRepository
	users    *userRepository.MemoryUserRepository
	cal      *service.BusinessCalendar
}

// newTestEnv merakit controller di atas repo in-memory, dengan middleware
// pengganti yang menaruh identitas actor dari header test ke Locals
// (bentuk yang sama dengan hasil AuthMiddleware).
func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	cal := service.NewBusinessCalendar([]time.Weekday{time.Sunday}, 8*60, 17*60, time.UTC)
	sessions := repository.NewMemorySessionRepository()
	users := userRepository.NewMemoryUserRepository()

	ctrl := &AttendanceController{
		Repo:      sessions,
		Users:     users,
		Lifecycle: service.NewLifecycleService(sessions, cal),
		Cal:       cal,
	}

	app := fiber.New()
	api := app.Group("/api/attendance", func(c *fiber.Ctx) error {
		c.Locals("user_id", c.Get("X-Test-User"))
		c.Locals("company_id", c.Get("X-Test-Company"))
		c.Locals("role", c.Get("X-Test-Role"))
		return c.Next()
	})
	api.Get("/history", ctrl.History)
	api.Get("/company", ctrl.CompanyReport)
	api.Get("/statistics", ctrl.Statistics)

	return &testEnv{app: app, sessions: sessions, users: users, cal: cal}
}

func (e *testEnv) get(t *testing.T, target string, as userModel.UserModel) *http.Response {
	t.Helper()
	req := httptest.NewRequest("GET", target, nil)
	req.Header.Set("X-Test-User", as.ID.String())
	req.Header.Set("X-Test-Company", as.CompanyID.String())
	req.Header.Set("X-Test-Role", as.Role)
	resp, err := e.app.Test(req)
	if err != nil {
		t.Fatalf("app.Test: %v", err)
	}
	return resp
}

func seedUser(t *testing.T, env *testEnv, name, role string, companyID uuid.UUID, department string) userModel.UserModel {
	t.Helper()
	u := userModel.UserModel{
		ID:        uuid.New(),
		FullName:  name,
		Email:     strings.ToLower(strings.ReplaceAll(name, " ", ".")) + "@contoh.co.id",
		Role:      role,
		CompanyID: companyID,
		IsActive:  true,
	}
	if department != "" {
		u.Department = &department
	}
	env.users.Put(u)
	return u
}

func seedClosedSession(t *testing.T, env *testEnv, u userModel.UserModel, checkIn, checkOut time.Time) {
	t.Helper()
	out := checkOut
	hours := checkOut.Sub(checkIn).Hours()
	s := model.AttendanceSessionModel{
		UserID:       u.ID,
		CompanyID:    u.CompanyID,
		CheckInDay:   env.cal.DayStart(checkIn),
		CheckInTime:  checkIn,
		CheckOutTime: &out,
		TotalHours:   &hours,
		Status:       service.ClassifyCheckIn(env.cal, checkIn),
	}
	if err := env.sessions.Create(context.Background(), &s); err != nil {
		t.Fatal(err)
	}
}

// ============================================================
// Statistics: filter departemen
// ============================================================

type statisticsBody struct {
	Success bool `json:"success"`
	Data    struct {
		TotalWorkdays int                       `json:"total_workdays"`
		Statistics    []service.StatisticsRecord `json:"statistics"`
		Totals        service.GroupStatistics    `json:"totals"`
	} `json:"data"`
}

func decodeStatistics(t *testing.T, resp *http.Response) statisticsBody {
	t.Helper()
	defer resp.Body.Close()
	var body statisticsBody
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		t.Fatalf("decode: %v", err)
	}
	return body
}

func TestStatisticsDepartmentFilterNarrowsUsersAndTotals(t *testing.T) {
	env := newTestEnv(t)
	companyID := uuid.New()

	manager := seedUser(t, env, "Mega Manajer", "manager", companyID, "")
	eng1 := seedUser(t, env, "Andi Engineering", "employee", companyID, "Engineering")
	eng2 := seedUser(t, env, "Budi Engineering", "employee", companyID, "Engineering")
	sales := seedUser(t, env, "Citra Sales", "employee", companyID, "Sales")

	// minggu kerja penuh Senin 2025-06-02 s.d. Sabtu 2025-06-07 (Minggu libur)
	seedClosedSession(t, env, eng1,
		time.Date(2025, 6, 2, 8, 0, 0, 0, time.UTC),
		time.Date(2025, 6, 2, 17, 0, 0, 0, time.UTC)) // 9 jam, present
	seedClosedSession(t, env, eng2,
		time.Date(2025, 6, 3, 9, 0, 0, 0, time.UTC),
		time.Date(2025, 6, 3, 17, 0, 0, 0, time.UTC)) // 8 jam, late
	seedClosedSession(t, env, sales,
		time.Date(2025, 6, 2, 8, 0, 0, 0, time.UTC),
		time.Date(2025, 6, 2, 17, 0, 0, 0, time.UTC))

	const period = "start_date=2025-06-02&end_date=2025-06-07"

	// tanpa filter: seluruh karyawan aktif company ikut
	resp := env.get(t, "/api/attendance/statistics?"+period, manager)
	if resp.StatusCode != fiber.StatusOK {
		t.Fatalf("status tanpa filter: got %d", resp.StatusCode)
	}
	all := decodeStatistics(t, resp)
	if len(all.Data.Statistics) != 4 {
		t.Fatalf("tanpa filter harus 4 user, got %d", len(all.Data.Statistics))
	}

	// dengan filter: hanya Engineering
	resp = env.get(t, "/api/attendance/statistics?"+period+"&department=Engineering", manager)
	if resp.StatusCode != fiber.StatusOK {
		t.Fatalf("status dgn filter: got %d", resp.StatusCode)
	}
	filtered := decodeStatistics(t, resp)

	if len(filtered.Data.Statistics) != 2 {
		t.Fatalf("filter Engineering harus 2 user, got %d", len(filtered.Data.Statistics))
	}
	for _, rec := range filtered.Data.Statistics {
		if rec.Department == nil || *rec.Department != "Engineering" {
			t.Errorf("record %s bukan Engineering: %v", rec.FullName, rec.Department)
		}
	}
	if filtered.Data.TotalWorkdays != 6 {
		t.Errorf("workdays Senin-Sabtu harus 6, got %d", filtered.Data.TotalWorkdays)
	}

	// totals hanya dari Engineering: 9 + 8 jam, 1 present + 1 late,
	// absent = 2 user x 6 hari kerja - 2 hari hadir
	tot := filtered.Data.Totals
	if tot.Present != 1 || tot.Late != 1 || tot.Absent != 10 {
		t.Errorf("totals present/late/absent: got %d/%d/%d", tot.Present, tot.Late, tot.Absent)
	}
	if math.Abs(tot.TotalHours-17.0) > 1e-9 {
		t.Errorf("total hours Engineering harus 17, got %v", tot.TotalHours)
	}
	if math.Abs(tot.ExpectedHours-2*6*9.0) > 1e-9 {
		t.Errorf("expected hours harus 108, got %v", tot.ExpectedHours)
	}
	if math.Abs(tot.TotalHours-all.Data.Totals.TotalHours) < 1e-9 {
		t.Error("filter departemen seharusnya mengecilkan total jam grup")
	}
}

// ============================================================
// History: gate kepemilikan & cakupan company
// ============================================================

func TestHistoryOwnershipGate(t *testing.T) {
	env := newTestEnv(t)
	companyA := uuid.New()
	companyB := uuid.New()

	manager := seedUser(t, env, "Mira Manajer", "manager", companyA, "")
	alice := seedUser(t, env, "Alice Karyawan", "employee", companyA, "")
	bob := seedUser(t, env, "Bob Lain Company", "employee", companyB, "")

	cases := []struct {
		name   string
		as     userModel.UserModel
		target uuid.UUID
		want   int
	}{
		{"karyawan melihat riwayat sendiri", alice, alice.ID, fiber.StatusOK},
		{"karyawan meminta user lain ditolak", alice, bob.ID, fiber.StatusForbidden},
		{"manager melihat user company sendiri", manager, alice.ID, fiber.StatusOK},
		{"manager lintas company ditolak", manager, bob.ID, fiber.StatusForbidden},
		{"manager meminta user tak dikenal", manager, uuid.New(), fiber.StatusNotFound},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			resp := env.get(t, "/api/attendance/history?user_id="+tc.target.String(), tc.as)
			resp.Body.Close()
			if resp.StatusCode != tc.want {
				t.Errorf("status: got %d, want %d", resp.StatusCode, tc.want)
			}
		})
	}
}
