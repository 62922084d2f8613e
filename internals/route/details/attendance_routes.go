package details

import (
	"log"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	attendanceRoute "absensiku_backend/internals/features/attendance/attendance/route"
	"absensiku_backend/internals/features/attendance/attendance/service"
	authMiddleware "absensiku_backend/internals/middlewares/auth"
)

func AttendanceRoutes(app *fiber.App, db *gorm.DB) {
	cal, err := service.NewBusinessCalendarFromEnv()
	if err != nil {
		// kebijakan kalender salah konfigurasi = salah deploy; hentikan startup
		log.Fatalf("❌ Konfigurasi kalender kerja tidak valid: %v", err)
	}

	api := app.Group("/api/attendance", authMiddleware.AuthMiddleware(db))
	attendanceRoute.AttendanceRoutes(api, db, cal)
}
