package auth

const (
	RoleStaff = "staff"
	RoleUser  = "user"
)

var Permissions = map[string][]string{
	RoleStaff: {
		"users:read",
		"notifications:broadcast",
	},
	RoleUser: {
		"users:read",
	},
}

// RoleForStaff maps the user's staff flag onto a token role.
func RoleForStaff(isStaff bool) string {
	if isStaff {
		return RoleStaff
	}
	return RoleUser
}

func HasPermission(role, permission string) bool {
	for _, p := range Permissions[role] {
		if p == permission {
			return true
		}
	}
	return false
}
