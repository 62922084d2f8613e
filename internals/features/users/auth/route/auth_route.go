package route

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"absensiku_backend/internals/features/users/auth/controller"
	"absensiku_backend/internals/middlewares"
	authMiddleware "absensiku_backend/internals/middlewares/auth"
)

// AuthRoutes mendaftarkan endpoint auth:
// publik (register/login, dgn limiter ketat) + profil (butuh JWT).
func AuthRoutes(app *fiber.App, db *gorm.DB) {
	ctrl := controller.NewAuthController(db)

	public := app.Group("/api/auth")
	public.Post("/register", middlewares.RegisterRateLimiter(), ctrl.Register)
	public.Post("/login", middlewares.LoginRateLimiter(), ctrl.Login)

	private := app.Group("/api/auth", authMiddleware.AuthMiddleware(db))
	private.Get("/profile", ctrl.Me)
	private.Put("/profile", ctrl.UpdateProfile)
}
