package store

import (
	"fmt"

	"portfoliohub/internal/model"
)

// CreateProject 新建项目：分配 id 和时间戳，补全 CAPEX/OPEX 默认拆分并计算派生字段
func (s *Store) CreateProject(in model.ProjectInput, createdBy string) model.Project {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.timestamp()
	capex, opex := defaultSplit(in.BudgetApproved, in.CapexAllocated, in.OpexAllocated)

	p := model.Project{
		ID:                    s.newID(),
		AssetID:               in.AssetID,
		ProjectName:           in.ProjectName,
		AssetApprovalDate:     in.AssetApprovalDate,
		ExecutionPhase:        in.ExecutionPhase,
		Department:            in.Department,
		Status:                in.Status,
		BudgetApproved:        in.BudgetApproved,
		BudgetSpentYTD:        in.BudgetSpentYTD,
		CapexAllocated:        capex,
		OpexAllocated:         opex,
		CapexSpent:            valueOr(in.CapexSpent),
		OpexSpent:             valueOr(in.OpexSpent),
		TargetLaunchDate:      in.TargetLaunchDate,
		TargetLaunchQuarter:   in.TargetLaunchQuarter,
		ProductManager:        in.ProductManager,
		EngineeringManager:    in.EngineeringManager,
		ProjectManager:        in.ProjectManager,
		Employees:             in.Employees,
		Contractors:           in.Contractors,
		PreviousMonthProgress: in.PreviousMonthProgress,
		UpcomingMonthPlan:     in.UpcomingMonthPlan,
		ExecutiveGuidance:     in.ExecutiveGuidance,
		StatusJustification:   in.StatusJustification,
		Risks:                 s.withRiskIDs(in.Risks),
		CreatedBy:             createdBy,
		CreatedAt:             now,
		UpdatedAt:             now,
	}
	recomputeDerived(&p)

	s.projects = append(s.projects, p)
	s.revision++
	return p.Clone()
}

// UpdateProject 合并部分字段并刷新 UpdatedAt；id 不存在时返回 ErrNotFound
func (s *Store) UpdateProject(id string, patch model.ProjectPatch) (model.Project, error) {
	return s.UpdateProjectChecked(id, patch, nil)
}

// UpdateProjectChecked 与 UpdateProject 相同，但在写锁内先用 check 校验当前记录，
// check 返回错误时集合保持不变
func (s *Store) UpdateProjectChecked(id string, patch model.ProjectPatch, check func(current model.Project) error) (model.Project, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	i := s.indexOfProject(id)
	if i < 0 {
		return model.Project{}, fmt.Errorf("project %s: %w", id, ErrNotFound)
	}
	if check != nil {
		if err := check(s.projects[i].Clone()); err != nil {
			return model.Project{}, err
		}
	}

	p := s.projects[i].Clone()
	s.applyProjectPatch(&p, patch)
	p.UpdatedAt = s.timestamp()
	recomputeDerived(&p)

	s.projects[i] = p
	s.revision++
	return p.Clone(), nil
}

// DeleteProject 删除项目；如果该项目正被选中，选中状态一并清除
func (s *Store) DeleteProject(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	i := s.indexOfProject(id)
	if i < 0 {
		return fmt.Errorf("project %s: %w", id, ErrNotFound)
	}

	s.projects = append(s.projects[:i], s.projects[i+1:]...)
	for owner, selected := range s.selections {
		if selected == id {
			delete(s.selections, owner)
		}
	}
	s.revision++
	return nil
}

func (s *Store) Project(id string) (model.Project, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	i := s.indexOfProject(id)
	if i < 0 {
		return model.Project{}, fmt.Errorf("project %s: %w", id, ErrNotFound)
	}
	return s.projects[i].Clone(), nil
}

// Projects 返回全部项目的快照，保持插入顺序
func (s *Store) Projects() []model.Project {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]model.Project, len(s.projects))
	for i, p := range s.projects {
		out[i] = p.Clone()
	}
	return out
}

// ProjectsWithRevision 在同一把读锁内返回快照和版本号
func (s *Store) ProjectsWithRevision() ([]model.Project, uint64) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]model.Project, len(s.projects))
	for i, p := range s.projects {
		out[i] = p.Clone()
	}
	return out, s.revision
}

// SelectProject 记录 owner 当前查看的项目。
// 只保存 id，读取时再解析，因此更新后通过选中状态看到的总是最新数据。
func (s *Store) SelectProject(owner, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.indexOfProject(id) < 0 {
		return fmt.Errorf("project %s: %w", id, ErrNotFound)
	}
	s.selections[owner] = id
	return nil
}

func (s *Store) SelectedProject(owner string) (model.Project, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	id, ok := s.selections[owner]
	if !ok {
		return model.Project{}, false
	}
	i := s.indexOfProject(id)
	if i < 0 {
		return model.Project{}, false
	}
	return s.projects[i].Clone(), true
}

func (s *Store) ClearSelection(owner string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.selections, owner)
}

func (s *Store) indexOfProject(id string) int {
	for i := range s.projects {
		if s.projects[i].ID == id {
			return i
		}
	}
	return -1
}

func (s *Store) withRiskIDs(risks []model.Risk) []model.Risk {
	out := make([]model.Risk, len(risks))
	copy(out, risks)
	for i := range out {
		if out[i].ID == "" {
			out[i].ID = s.newID()
		}
	}
	return out
}

func (s *Store) applyProjectPatch(p *model.Project, patch model.ProjectPatch) {
	setString(&p.AssetID, patch.AssetID)
	setString(&p.ProjectName, patch.ProjectName)
	setString(&p.AssetApprovalDate, patch.AssetApprovalDate)
	setString(&p.ExecutionPhase, patch.ExecutionPhase)
	setString(&p.Department, patch.Department)
	if patch.Status != nil {
		p.Status = *patch.Status
	}

	setAmount(&p.BudgetApproved, patch.BudgetApproved)
	setAmount(&p.BudgetSpentYTD, patch.BudgetSpentYTD)
	setAmount(&p.CapexAllocated, patch.CapexAllocated)
	setAmount(&p.OpexAllocated, patch.OpexAllocated)
	setAmount(&p.CapexSpent, patch.CapexSpent)
	setAmount(&p.OpexSpent, patch.OpexSpent)

	setString(&p.TargetLaunchDate, patch.TargetLaunchDate)
	setString(&p.TargetLaunchQuarter, patch.TargetLaunchQuarter)
	setString(&p.ProductManager, patch.ProductManager)
	setString(&p.EngineeringManager, patch.EngineeringManager)
	setString(&p.ProjectManager, patch.ProjectManager)

	if patch.Employees != nil {
		p.Employees = *patch.Employees
	}
	if patch.Contractors != nil {
		p.Contractors = *patch.Contractors
	}

	setString(&p.PreviousMonthProgress, patch.PreviousMonthProgress)
	setString(&p.UpcomingMonthPlan, patch.UpcomingMonthPlan)
	setString(&p.ExecutiveGuidance, patch.ExecutiveGuidance)
	setString(&p.StatusJustification, patch.StatusJustification)

	if patch.Risks != nil {
		p.Risks = s.withRiskIDs(*patch.Risks)
	}
}

func setString(dst *string, v *string) {
	if v != nil {
		*dst = *v
	}
}

func setAmount(dst *model.Amount, v *model.Amount) {
	if v != nil {
		*dst = *v
	}
}
