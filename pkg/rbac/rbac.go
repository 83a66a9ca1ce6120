package rbac

import "slices"

// 权限常量
const (
	// 用户管理
	PermissionCreateUser = "user.create"
	PermissionReadUser   = "user.read"
	PermissionUpdateUser = "user.update"
	PermissionDeleteUser = "user.delete"

	// 项目
	PermissionCreateProject = "project.create"
	PermissionReadProject   = "project.read"
	PermissionUpdateProject = "project.update"
	PermissionDeleteProject = "project.delete"

	// 管理后台
	PermissionAdminConfig      = "admin.config"
	PermissionAdminUsers       = "admin.users"
	PermissionAdminDepartments = "admin.departments"
	PermissionAdminFiscal      = "admin.fiscal"
)

// 角色常量
const (
	RoleAdmin      = "Admin"
	RoleManager    = "Manager"
	RoleTeamMember = "Team Member"
)

// 角色权限映射
var rolePermissions = map[string][]string{
	RoleAdmin: {
		PermissionCreateUser,
		PermissionReadUser,
		PermissionUpdateUser,
		PermissionDeleteUser,
		PermissionCreateProject,
		PermissionReadProject,
		PermissionUpdateProject,
		PermissionDeleteProject,
		PermissionAdminConfig,
		PermissionAdminUsers,
		PermissionAdminDepartments,
		PermissionAdminFiscal,
	},
	RoleManager: {
		PermissionCreateProject,
		PermissionReadProject,
		PermissionUpdateProject,
		PermissionReadUser,
	},
	RoleTeamMember: {
		PermissionReadProject,
		PermissionUpdateProject,
	},
}

// Permissions 返回角色的权限列表副本，未知角色返回空列表
func Permissions(role string) []string {
	return slices.Clone(rolePermissions[role])
}

// HasPermission 检查角色是否有指定权限
func HasPermission(role, permission string) bool {
	return slices.Contains(rolePermissions[role], permission)
}

// HasRole 检查角色是否匹配
func HasRole(role, want string) bool {
	return role == want
}

// CheckPermission 检查角色是否有指定权限（返回错误而不是布尔值，便于处理）
func CheckPermission(userID, role, permission string) error {
	if !HasPermission(role, permission) {
		return &PermissionDeniedError{
			UserID:     userID,
			Role:       role,
			Permission: permission,
		}
	}
	return nil
}

// PermissionDeniedError 表示权限不足的错误
type PermissionDeniedError struct {
	UserID     string
	Role       string
	Permission string
}

func (e *PermissionDeniedError) Error() string {
	return "insufficient permissions"
}
