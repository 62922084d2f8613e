package controller

import (
	"errors"
	"log"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"absensiku_backend/internals/constants"
	attendanceDTO "absensiku_backend/internals/features/attendance/attendance/dto"
	"absensiku_backend/internals/features/attendance/attendance/repository"
	"absensiku_backend/internals/features/attendance/attendance/service"
	userModel "absensiku_backend/internals/features/users/user/model"
	userRepository "absensiku_backend/internals/features/users/user/repository"
	helper "absensiku_backend/internals/helpers"
)

var validate = validator.New()

type AttendanceController struct {
	DB        *gorm.DB
	Repo      repository.SessionRepository
	Users     userRepository.UserRepository
	Lifecycle *service.LifecycleService
	Cal       *service.BusinessCalendar
}

func NewAttendanceController(db *gorm.DB, cal *service.BusinessCalendar) *AttendanceController {
	repo := repository.NewSessionRepository(db)
	return &AttendanceController{
		DB:        db,
		Repo:      repo,
		Users:     userRepository.NewUserRepository(db),
		Lifecycle: service.NewLifecycleService(repo, cal),
		Cal:       cal,
	}
}

/* ==========================
   Actor context
========================== */

type actor struct {
	UserID    uuid.UUID
	CompanyID uuid.UUID
	Role      string
}

func actorFromLocals(c *fiber.Ctx) (actor, error) {
	userIDStr, _ := c.Locals("user_id").(string)
	companyIDStr, _ := c.Locals("company_id").(string)
	role, _ := c.Locals("role").(string)

	userID, err := uuid.Parse(userIDStr)
	if err != nil {
		return actor{}, fiber.NewError(fiber.StatusUnauthorized, "Invalid user ID in context")
	}
	companyID, err := uuid.Parse(companyIDStr)
	if err != nil {
		return actor{}, fiber.NewError(fiber.StatusUnauthorized, "Invalid company ID in context")
	}
	return actor{UserID: userID, CompanyID: companyID, Role: role}, nil
}

func (a actor) isManagerial() bool {
	return a.Role == constants.RoleManager || a.Role == constants.RoleAdmin
}

/* ==========================
   CHECK-IN / CHECK-OUT
========================== */

// POST /api/attendance/check-in
func (ac *AttendanceController) CheckIn(c *fiber.Ctx) error {
	act, err := actorFromLocals(c)
	if err != nil {
		return err
	}

	// body boleh kosong: lokasi & notes opsional
	var req attendanceDTO.PunchRequest
	if len(c.Body()) > 0 {
		if err := c.BodyParser(&req); err != nil {
			return helper.JsonError(c, fiber.StatusBadRequest, "Invalid request format")
		}
	}
	req.Normalize()
	if err := validate.Struct(&req); err != nil {
		return helper.JsonValidationError(c, err)
	}

	session, err := ac.Lifecycle.CheckIn(c.UserContext(), service.CheckInInput{
		UserID:    act.UserID,
		CompanyID: act.CompanyID,
		At:        time.Now().In(ac.Cal.Loc),
		Location:  req.Location(),
		Notes:     req.Notes,
	})
	if err != nil {
		if errors.Is(err, service.ErrAlreadyCheckedIn) {
			var data any
			if session != nil {
				data = attendanceDTO.FromModel(session)
			}
			return helper.JsonErrorWithData(c, fiber.StatusConflict,
				"Anda sudah absen masuk hari ini", data)
		}
		log.Println("[ERROR] CheckIn:", err)
		return helper.JsonError(c, fiber.StatusInternalServerError, "Gagal mencatat absen masuk")
	}

	return helper.JsonCreated(c, "Absen masuk berhasil dicatat", attendanceDTO.FromModel(session))
}

// POST /api/attendance/check-out
func (ac *AttendanceController) CheckOut(c *fiber.Ctx) error {
	act, err := actorFromLocals(c)
	if err != nil {
		return err
	}

	// body boleh kosong: lokasi & notes opsional
	var req attendanceDTO.PunchRequest
	if len(c.Body()) > 0 {
		if err := c.BodyParser(&req); err != nil {
			return helper.JsonError(c, fiber.StatusBadRequest, "Invalid request format")
		}
	}
	req.Normalize()
	if err := validate.Struct(&req); err != nil {
		return helper.JsonValidationError(c, err)
	}

	session, err := ac.Lifecycle.CheckOut(c.UserContext(), service.CheckOutInput{
		UserID:   act.UserID,
		At:       time.Now().In(ac.Cal.Loc),
		Location: req.Location(),
		Notes:    req.Notes,
	})
	if err != nil {
		if errors.Is(err, service.ErrNoOpenSession) {
			return helper.JsonError(c, fiber.StatusNotFound,
				"Tidak ada absen masuk yang bisa ditutup hari ini")
		}
		log.Println("[ERROR] CheckOut:", err)
		return helper.JsonError(c, fiber.StatusInternalServerError, "Gagal mencatat absen pulang")
	}

	return helper.JsonUpdated(c, "Absen pulang berhasil dicatat", attendanceDTO.FromModel(session))
}

/* ==========================
   HISTORY
========================== */

// GET /api/attendance/history?start_date=&end_date=[&user_id=]
// Karyawan hanya boleh melihat riwayatnya sendiri; user_id utk manager/admin.
func (ac *AttendanceController) History(c *fiber.Ctx) error {
	act, err := actorFromLocals(c)
	if err != nil {
		return err
	}

	targetID := act.UserID
	if raw := strings.TrimSpace(firstQuery(c, "user_id", "userId")); raw != "" {
		parsed, err := uuid.Parse(raw)
		if err != nil {
			return helper.JsonError(c, fiber.StatusBadRequest, "user_id tidak valid")
		}
		if parsed != act.UserID {
			if !act.isManagerial() {
				return helper.JsonError(c, fiber.StatusForbidden, "Akses tidak diizinkan")
			}
			// manager hanya boleh lintas user di company-nya sendiri
			target, err := ac.Users.FindByID(c.UserContext(), parsed)
			if err != nil {
				log.Println("[ERROR] History target:", err)
				return helper.JsonError(c, fiber.StatusInternalServerError, "Gagal mengambil riwayat absensi")
			}
			if target == nil {
				return helper.JsonError(c, fiber.StatusNotFound, "User tidak ditemukan")
			}
			if target.CompanyID != act.CompanyID {
				return helper.JsonError(c, fiber.StatusForbidden, "Akses tidak diizinkan")
			}
		}
		targetID = parsed
	}

	rng, err := helper.ResolveDateRange(c, ac.Cal.Loc, time.Now())
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, err.Error())
	}
	paging := helper.ResolvePaging(c, 31, 100)

	total, err := ac.Repo.CountByUser(c.UserContext(), targetID, rng.Start, rng.EndExclusive())
	if err != nil {
		log.Println("[ERROR] History count:", err)
		return helper.JsonError(c, fiber.StatusInternalServerError, "Gagal mengambil riwayat absensi")
	}

	sessions, err := ac.Repo.ListByUser(c.UserContext(), targetID, rng.Start, rng.EndExclusive(), paging.Limit, paging.Offset)
	if err != nil {
		log.Println("[ERROR] History:", err)
		return helper.JsonError(c, fiber.StatusInternalServerError, "Gagal mengambil riwayat absensi")
	}

	return helper.JsonList(c, "Riwayat absensi berhasil diambil", fiber.Map{
		"period":     fiber.Map{"start": rng.Start, "end": rng.End},
		"attendance": attendanceDTO.FromModelList(sessions),
	}, helper.BuildPagination(total, paging))
}

/* ==========================
   COMPANY REPORT
========================== */

// GET /api/attendance/company?start_date=&end_date=&department=
// Manager/admin: sesi mentah seluruh perusahaan (opsional difilter departemen).
func (ac *AttendanceController) CompanyReport(c *fiber.Ctx) error {
	act, err := actorFromLocals(c)
	if err != nil {
		return err
	}

	rng, err := helper.ResolveDateRange(c, ac.Cal.Loc, time.Now())
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, err.Error())
	}

	users, err := ac.Users.ListActiveByCompany(c.UserContext(), act.CompanyID, strings.TrimSpace(c.Query("department")))
	if err != nil {
		log.Println("[ERROR] CompanyReport users:", err)
		return helper.JsonError(c, fiber.StatusInternalServerError, "Gagal mengambil data karyawan")
	}

	userIDs := make([]uuid.UUID, 0, len(users))
	userByID := make(map[uuid.UUID]*userModel.UserModel, len(users))
	for i := range users {
		userIDs = append(userIDs, users[i].ID)
		userByID[users[i].ID] = &users[i]
	}

	sessions, err := ac.Repo.ListByUsers(c.UserContext(), userIDs, rng.Start, rng.EndExclusive())
	if err != nil {
		log.Println("[ERROR] CompanyReport sessions:", err)
		return helper.JsonError(c, fiber.StatusInternalServerError, "Gagal mengambil data absensi")
	}

	return helper.JsonOK(c, "Laporan absensi perusahaan berhasil diambil", fiber.Map{
		"period":     fiber.Map{"start": rng.Start, "end": rng.End},
		"total":      len(sessions),
		"attendance": attendanceDTO.WithUsers(sessions, userByID),
	})
}

/* ==========================
   STATISTICS
========================== */

// GET /api/attendance/statistics?start_date=&end_date=&department=
// Manager/admin: agregat per user + total grup. Tanpa rentang → bulan berjalan.
func (ac *AttendanceController) Statistics(c *fiber.Ctx) error {
	act, err := actorFromLocals(c)
	if err != nil {
		return err
	}

	rng, err := helper.ResolveDateRange(c, ac.Cal.Loc, time.Now())
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, err.Error())
	}

	users, err := ac.Users.ListActiveByCompany(c.UserContext(), act.CompanyID, strings.TrimSpace(c.Query("department")))
	if err != nil {
		log.Println("[ERROR] Statistics users:", err)
		return helper.JsonError(c, fiber.StatusInternalServerError, "Gagal mengambil data karyawan")
	}

	userIDs := make([]uuid.UUID, 0, len(users))
	for i := range users {
		userIDs = append(userIDs, users[i].ID)
	}

	sessions, err := ac.Repo.ListByUsers(c.UserContext(), userIDs, rng.Start, rng.EndExclusive())
	if err != nil {
		log.Println("[ERROR] Statistics sessions:", err)
		return helper.JsonError(c, fiber.StatusInternalServerError, "Gagal mengambil data absensi")
	}

	records := service.Aggregate(ac.Cal, users, sessions, rng.Start, rng.End)

	return helper.JsonOK(c, "Statistik absensi berhasil dihitung", fiber.Map{
		"period":         fiber.Map{"start": rng.Start, "end": rng.End},
		"total_workdays": ac.Cal.WorkdaysInRange(rng.Start, rng.End),
		"statistics":     records,
		"totals":         service.GroupTotals(records),
	})
}

/* ==========================
   Helpers
========================== */

func firstQuery(c *fiber.Ctx, names ...string) string {
	for _, n := range names {
		if v := c.Query(n); v != "" {
			return v
		}
	}
	return ""
}
