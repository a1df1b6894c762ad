package uploads

import "github.com/mshoaibkhan0786/Mess-Site/internal/auth"

// Actor is the authenticated admin driving an upload.
type Actor struct {
	Email  string
	Name   string
	Role   string
	MessID string
}

// MayManage reports whether the actor can update the given mess: a
// super admin can update any, a mess admin only their own.
func (a Actor) MayManage(messID string) bool {
	if a.Role == auth.RoleSuperAdmin {
		return true
	}
	return a.Role == auth.RoleMessAdmin && a.MessID != "" && a.MessID == messID
}
