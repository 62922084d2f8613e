package route

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"absensiku_backend/internals/features/attendance/attendance/controller"
	"absensiku_backend/internals/features/attendance/attendance/service"
	authMiddleware "absensiku_backend/internals/middlewares/auth"
)

// AttendanceRoutes mendaftarkan endpoint absensi.
// Semua endpoint butuh JWT; laporan & statistik khusus manager/admin.
func AttendanceRoutes(api fiber.Router, db *gorm.DB, cal *service.BusinessCalendar) {
	ctrl := controller.NewAttendanceController(db, cal)

	api.Post("/check-in", ctrl.CheckIn)
	api.Post("/check-out", ctrl.CheckOut)
	api.Get("/history", ctrl.History)

	api.Get("/company", authMiddleware.ManagerOnly("laporan perusahaan"), ctrl.CompanyReport)
	api.Get("/statistics", authMiddleware.ManagerOnly("statistik absensi"), ctrl.Statistics)
}
