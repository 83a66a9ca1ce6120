package auth

import (
	"portfoliohub/internal/model"
	"portfoliohub/pkg/rbac"
)

// DemoDirectory 内置登录账号，所有账号共用演示密码
func DemoDirectory() []model.AuthUser {
	users := []model.AuthUser{
		{ID: "1", Name: "Admin User", Email: "admin@company.com", Role: model.RoleAdmin, Department: "IT"},
		{ID: "2", Name: "Manager User", Email: "manager@company.com", Role: model.RoleManager, Department: "Engineering"},
		{ID: "3", Name: "Team Member", Email: "member@company.com", Role: model.RoleTeamMember, Department: "Engineering"},
	}
	for i := range users {
		users[i].Permissions = rbac.Permissions(string(users[i].Role))
	}
	return users
}
