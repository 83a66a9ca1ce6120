package service

import (
	"context"
	"strings"

	"portfoliohub/internal/events"
	"portfoliohub/internal/model"
	"portfoliohub/internal/store"

	"go.uber.org/zap"
)

// DirectoryService 用户和部门管理
type DirectoryService struct {
	recorder
	store *store.Store
}

func NewDirectoryService(st *store.Store, notifier *events.Notifier, logger *zap.Logger) *DirectoryService {
	return &DirectoryService{
		recorder: recorder{notifier: notifier, logger: logger},
		store:    st,
	}
}

func (s *DirectoryService) Users() []model.User {
	return s.store.Users()
}

func (s *DirectoryService) User(id string) (model.User, error) {
	return s.store.User(id)
}

func (s *DirectoryService) CreateUser(ctx context.Context, actor string, in model.UserInput) (model.User, error) {
	v := newValidator()
	v.required("name", in.Name)
	checkEmail(v, in.Email)
	v.check(in.Role.Valid(), "role", "must be one of Admin, Manager, Team Member")
	v.required("department", in.Department)
	if err := v.err(); err != nil {
		return model.User{}, err
	}

	in.Email = strings.TrimSpace(in.Email)
	u := s.store.CreateUser(in)
	s.record(ctx, "user", "create", events.UserCreated, u.ID, actor, u)
	return u, nil
}

func (s *DirectoryService) UpdateUser(ctx context.Context, actor, id string, patch model.UserPatch) (model.User, error) {
	v := newValidator()
	if patch.Name != nil {
		v.required("name", *patch.Name)
	}
	if patch.Email != nil {
		checkEmail(v, *patch.Email)
		trimmed := strings.TrimSpace(*patch.Email)
		patch.Email = &trimmed
	}
	if patch.Role != nil {
		v.check(patch.Role.Valid(), "role", "must be one of Admin, Manager, Team Member")
	}
	if patch.Department != nil {
		v.required("department", *patch.Department)
	}
	if err := v.err(); err != nil {
		return model.User{}, err
	}

	u, err := s.store.UpdateUser(id, patch)
	if err != nil {
		return model.User{}, err
	}
	s.record(ctx, "user", "update", events.UserUpdated, u.ID, actor, u)
	return u, nil
}

func (s *DirectoryService) DeleteUser(ctx context.Context, actor, id string) error {
	if err := s.store.DeleteUser(id); err != nil {
		return err
	}
	s.record(ctx, "user", "delete", events.UserDeleted, id, actor, nil)
	return nil
}

// ResetPassword 标记用户下次登录需要重置密码
func (s *DirectoryService) ResetPassword(ctx context.Context, actor, id string) (model.User, error) {
	u, err := s.store.ResetUserPassword(id)
	if err != nil {
		return model.User{}, err
	}
	s.record(ctx, "user", "reset_password", events.UserPasswordReset, u.ID, actor, u)
	return u, nil
}

func (s *DirectoryService) Departments() []model.Department {
	return s.store.Departments()
}

func (s *DirectoryService) CreateDepartment(ctx context.Context, actor string, in model.DepartmentInput) (model.Department, error) {
	v := newValidator()
	v.required("name", in.Name)
	if err := v.err(); err != nil {
		return model.Department{}, err
	}

	d := s.store.CreateDepartment(in)
	s.record(ctx, "department", "create", events.DepartmentCreated, d.ID, actor, d)
	return d, nil
}

func (s *DirectoryService) UpdateDepartment(ctx context.Context, actor, id string, patch model.DepartmentPatch) (model.Department, error) {
	if patch.Name != nil {
		v := newValidator()
		v.required("name", *patch.Name)
		if err := v.err(); err != nil {
			return model.Department{}, err
		}
	}

	d, err := s.store.UpdateDepartment(id, patch)
	if err != nil {
		return model.Department{}, err
	}
	s.record(ctx, "department", "update", events.DepartmentUpdated, d.ID, actor, d)
	return d, nil
}

// DeleteDepartment 不级联：引用该部门的项目和用户保持原值
func (s *DirectoryService) DeleteDepartment(ctx context.Context, actor, id string) error {
	if err := s.store.DeleteDepartment(id); err != nil {
		return err
	}
	s.record(ctx, "department", "delete", events.DepartmentDeleted, id, actor, nil)
	return nil
}

func checkEmail(v *validator, email string) {
	email = strings.TrimSpace(email)
	if email == "" {
		v.add("email", "is required")
		return
	}
	v.check(emailPattern.MatchString(email), "email", "must be a valid email address")
}
