package store

import "portfoliohub/internal/model"

// 配置类集合整体替换，调用方负责提供完整且一致的新值（例如重新编号后的 order）

func (s *Store) ProjectPhases() []model.ProjectPhase {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]model.ProjectPhase{}, s.phases...)
}

func (s *Store) UpdateProjectPhases(phases []model.ProjectPhase) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.phases = append([]model.ProjectPhase{}, phases...)
}

func (s *Store) ColumnConfig() []model.ColumnConfig {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]model.ColumnConfig{}, s.columns...)
}

func (s *Store) UpdateColumnConfig(columns []model.ColumnConfig) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.columns = append([]model.ColumnConfig{}, columns...)
}

func (s *Store) FiscalConfig() model.FiscalConfig {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.fiscal
}

func (s *Store) UpdateFiscalConfig(cfg model.FiscalConfig) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.fiscal = cfg
}

// MutateProjectPhases 在同一把写锁内读取、修改并写回执行阶段。
// fn 拿到的是副本；返回 changed=false 或错误时不写回。
func (s *Store) MutateProjectPhases(fn func([]model.ProjectPhase) ([]model.ProjectPhase, bool, error)) ([]model.ProjectPhase, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	out, changed, err := fn(append([]model.ProjectPhase{}, s.phases...))
	if err != nil || !changed {
		return append([]model.ProjectPhase{}, s.phases...), false, err
	}
	s.phases = append([]model.ProjectPhase{}, out...)
	return append([]model.ProjectPhase{}, s.phases...), true, nil
}

// MutateColumnConfig 同 MutateProjectPhases，作用于列配置
func (s *Store) MutateColumnConfig(fn func([]model.ColumnConfig) ([]model.ColumnConfig, bool, error)) ([]model.ColumnConfig, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	out, changed, err := fn(append([]model.ColumnConfig{}, s.columns...))
	if err != nil || !changed {
		return append([]model.ColumnConfig{}, s.columns...), false, err
	}
	s.columns = append([]model.ColumnConfig{}, out...)
	return append([]model.ColumnConfig{}, s.columns...), true, nil
}

// MutateFiscalConfig 在写锁内基于当前财年配置计算新值并写回，fn 返回错误时不写回
func (s *Store) MutateFiscalConfig(fn func(model.FiscalConfig) (model.FiscalConfig, error)) (model.FiscalConfig, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	cfg, err := fn(s.fiscal)
	if err != nil {
		return s.fiscal, err
	}
	s.fiscal = cfg
	return cfg, nil
}

// Settings 管理员配置的一致快照
func (s *Store) Settings() model.Settings {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return model.Settings{
		Departments:   append([]model.Department{}, s.departments...),
		ProjectPhases: append([]model.ProjectPhase{}, s.phases...),
		ColumnConfig:  append([]model.ColumnConfig{}, s.columns...),
		FiscalConfig:  s.fiscal,
	}
}
