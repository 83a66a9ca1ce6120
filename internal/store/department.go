package store

import (
	"fmt"

	"portfoliohub/internal/model"
)

func (s *Store) CreateDepartment(in model.DepartmentInput) model.Department {
	s.mu.Lock()
	defer s.mu.Unlock()

	d := model.Department{
		ID:          s.newID(),
		Name:        in.Name,
		Description: in.Description,
		IsActive:    in.IsActive,
		CreatedAt:   s.timestamp(),
	}
	s.departments = append(s.departments, d)
	return d
}

// UpdateDepartment 只改部门本身。项目和用户按名称引用部门，改名不会级联。
func (s *Store) UpdateDepartment(id string, patch model.DepartmentPatch) (model.Department, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	i := s.indexOfDepartment(id)
	if i < 0 {
		return model.Department{}, fmt.Errorf("department %s: %w", id, ErrNotFound)
	}

	d := s.departments[i]
	setString(&d.Name, patch.Name)
	setString(&d.Description, patch.Description)
	if patch.IsActive != nil {
		d.IsActive = *patch.IsActive
	}
	s.departments[i] = d
	return d, nil
}

func (s *Store) DeleteDepartment(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	i := s.indexOfDepartment(id)
	if i < 0 {
		return fmt.Errorf("department %s: %w", id, ErrNotFound)
	}
	s.departments = append(s.departments[:i], s.departments[i+1:]...)
	return nil
}

func (s *Store) Department(id string) (model.Department, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	i := s.indexOfDepartment(id)
	if i < 0 {
		return model.Department{}, fmt.Errorf("department %s: %w", id, ErrNotFound)
	}
	return s.departments[i], nil
}

func (s *Store) Departments() []model.Department {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]model.Department{}, s.departments...)
}

func (s *Store) indexOfDepartment(id string) int {
	for i := range s.departments {
		if s.departments[i].ID == id {
			return i
		}
	}
	return -1
}
