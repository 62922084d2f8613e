package auth

import (
	"github.com/gofiber/fiber/v2"

	"absensiku_backend/internals/constants"
	helper "absensiku_backend/internals/helpers"
)

// RequireRoles menolak request bila role di Locals tidak termasuk daftar.
// Dipasang SETELAH AuthMiddleware.
func RequireRoles(feature string, roles ...string) fiber.Handler {
	allowed := make(map[string]struct{}, len(roles))
	for _, r := range roles {
		allowed[r] = struct{}{}
	}
	return func(c *fiber.Ctx) error {
		role, _ := c.Locals("role").(string)
		if _, ok := allowed[role]; !ok {
			return helper.JsonError(c, fiber.StatusForbidden, constants.RoleErrorManager(feature))
		}
		return c.Next()
	}
}

// ManagerOnly: khusus endpoint laporan/statistik perusahaan.
func ManagerOnly(feature string) fiber.Handler {
	return RequireRoles(feature, constants.ManagerAndUp...)
}
