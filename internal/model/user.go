package model

import "time"

type Role string

const (
	RoleAdmin      Role = "Admin"
	RoleManager    Role = "Manager"
	RoleTeamMember Role = "Team Member"
)

func (r Role) Valid() bool {
	switch r {
	case RoleAdmin, RoleManager, RoleTeamMember:
		return true
	}
	return false
}

// User 系统中维护的用户（与登录目录分开管理）
type User struct {
	ID                 string     `json:"id"`
	Name               string     `json:"name"`
	Email              string     `json:"email"`
	Role               Role       `json:"role"`
	Department         string     `json:"department"`
	IsActive           bool       `json:"is_active"`
	CreatedAt          time.Time  `json:"created_at"`
	LastLogin          *time.Time `json:"last_login,omitempty"`
	NeedsPasswordReset bool       `json:"needs_password_reset"`
	IsFirstLogin       bool       `json:"is_first_login"`
}

func (u User) Clone() User {
	cp := u
	if u.LastLogin != nil {
		t := *u.LastLogin
		cp.LastLogin = &t
	}
	return cp
}

type UserInput struct {
	Name       string `json:"name"`
	Email      string `json:"email"`
	Role       Role   `json:"role"`
	Department string `json:"department"`
	IsActive   bool   `json:"is_active"`
}

type UserPatch struct {
	Name       *string `json:"name"`
	Email      *string `json:"email"`
	Role       *Role   `json:"role"`
	Department *string `json:"department"`
	IsActive   *bool   `json:"is_active"`
}

// AuthUser 登录目录中的用户，带权限列表
type AuthUser struct {
	ID          string   `json:"id"`
	Name        string   `json:"name"`
	Email       string   `json:"email"`
	Role        Role     `json:"role"`
	Department  string   `json:"department"`
	Permissions []string `json:"permissions"`
}
