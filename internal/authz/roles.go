package authz

const (
	RoleViewer = 30
	RoleAdmin  = 50
)

func RoleName(roleID int) string {
	switch roleID {
	case RoleAdmin:
		return "admin"
	case RoleViewer:
		return "viewer"
	}
	return "unknown"
}

func IsReadOnly(roleID int) bool {
	return roleID == RoleViewer
}
