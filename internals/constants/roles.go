package constants

import "fmt"

// Role yang dikenal sistem (disalurkan lewat klaim JWT).
const (
	RoleEmployee = "employee"
	RoleManager  = "manager"
	RoleAdmin    = "admin"
)

// Template pesan error role
const (
	ErrOnlyManagersCanAccess = "❌ Hanya manager atau admin yang boleh mengakses fitur %s."
)

// Fungsi helper untuk menghasilkan pesan error dinamis
func RoleErrorManager(feature string) string {
	return fmt.Sprintf(ErrOnlyManagersCanAccess, feature)
}

// ==========================
// ✅ Grouped Role Slices
// ==========================
var (
	ManagerAndUp = []string{RoleManager, RoleAdmin}
)
