package store

import (
	"fmt"
	"strings"
	"time"

	"portfoliohub/internal/model"
)

// CreateUser 新建用户，首次登录和重置密码标志强制为 true
func (s *Store) CreateUser(in model.UserInput) model.User {
	s.mu.Lock()
	defer s.mu.Unlock()

	u := model.User{
		ID:                 s.newID(),
		Name:               in.Name,
		Email:              in.Email,
		Role:               in.Role,
		Department:         in.Department,
		IsActive:           in.IsActive,
		CreatedAt:          s.timestamp(),
		NeedsPasswordReset: true,
		IsFirstLogin:       true,
	}
	s.users = append(s.users, u)
	return u.Clone()
}

func (s *Store) UpdateUser(id string, patch model.UserPatch) (model.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	i := s.indexOfUser(id)
	if i < 0 {
		return model.User{}, fmt.Errorf("user %s: %w", id, ErrNotFound)
	}

	u := s.users[i].Clone()
	setString(&u.Name, patch.Name)
	setString(&u.Email, patch.Email)
	if patch.Role != nil {
		u.Role = *patch.Role
	}
	setString(&u.Department, patch.Department)
	if patch.IsActive != nil {
		u.IsActive = *patch.IsActive
	}

	s.users[i] = u
	return u.Clone(), nil
}

func (s *Store) DeleteUser(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	i := s.indexOfUser(id)
	if i < 0 {
		return fmt.Errorf("user %s: %w", id, ErrNotFound)
	}
	s.users = append(s.users[:i], s.users[i+1:]...)
	return nil
}

// ResetUserPassword 标记需要重置密码，不论之前状态如何
func (s *Store) ResetUserPassword(id string) (model.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	i := s.indexOfUser(id)
	if i < 0 {
		return model.User{}, fmt.Errorf("user %s: %w", id, ErrNotFound)
	}
	s.users[i].NeedsPasswordReset = true
	s.users[i].IsFirstLogin = false
	return s.users[i].Clone(), nil
}

// TouchLogin 按邮箱（忽略大小写）记录最近登录时间
func (s *Store) TouchLogin(email string, at time.Time) (model.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range s.users {
		if strings.EqualFold(s.users[i].Email, email) {
			t := at.UTC()
			s.users[i].LastLogin = &t
			return s.users[i].Clone(), nil
		}
	}
	return model.User{}, fmt.Errorf("user %s: %w", email, ErrNotFound)
}

func (s *Store) User(id string) (model.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	i := s.indexOfUser(id)
	if i < 0 {
		return model.User{}, fmt.Errorf("user %s: %w", id, ErrNotFound)
	}
	return s.users[i].Clone(), nil
}

func (s *Store) Users() []model.User {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]model.User, len(s.users))
	for i, u := range s.users {
		out[i] = u.Clone()
	}
	return out
}

func (s *Store) indexOfUser(id string) int {
	for i := range s.users {
		if s.users[i].ID == id {
			return i
		}
	}
	return -1
}
