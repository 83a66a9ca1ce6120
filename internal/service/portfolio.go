package service

import (
	"context"
	"fmt"

	"portfoliohub/internal/events"
	"portfoliohub/internal/fiscal"
	"portfoliohub/internal/model"
	"portfoliohub/internal/rollup"
	"portfoliohub/internal/store"
	"portfoliohub/pkg/metrics"

	"github.com/samber/lo"
	"go.uber.org/zap"
)

// PortfolioService 项目的增删改查、选中项目和汇总视图
type PortfolioService struct {
	recorder
	store *store.Store
	memo  *rollup.Memo
}

func NewPortfolioService(st *store.Store, notifier *events.Notifier, logger *zap.Logger) *PortfolioService {
	memo := &rollup.Memo{
		OnRecompute: func(snap rollup.Snapshot) {
			metrics.RecordRollup(
				int64(snap.Budget.TotalBudget),
				int64(snap.Budget.ActualSpend),
				snap.Workforce.Employees,
				snap.Workforce.Contractors,
			)
			logger.Debug("Rollups recomputed", zap.Uint64("revision", snap.Revision))
		},
	}
	return &PortfolioService{
		recorder: recorder{notifier: notifier, logger: logger},
		store:    st,
		memo:     memo,
	}
}

// CreateProject 校验输入后新建项目，未填写上线季度时按目标上线日期推算
func (s *PortfolioService) CreateProject(ctx context.Context, actor string, in model.ProjectInput) (model.Project, error) {
	v := newValidator()
	v.required("project_name", in.ProjectName)
	v.check(in.Status.Valid(), "status", "must be one of Green, Amber, Red")
	if in.Status.NeedsJustification() {
		v.required("status_justification", in.StatusJustification)
	}
	v.check(in.BudgetApproved >= 0, "budget_approved", "must not be negative")
	v.check(in.BudgetSpentYTD >= 0, "budget_spent_ytd", "must not be negative")
	checkOptionalAmount(v, "capex_allocated", in.CapexAllocated)
	checkOptionalAmount(v, "opex_allocated", in.OpexAllocated)
	checkOptionalAmount(v, "capex_spent", in.CapexSpent)
	checkOptionalAmount(v, "opex_spent", in.OpexSpent)
	v.check(in.Employees >= 0, "employees", "must not be negative")
	v.check(in.Contractors >= 0, "contractors", "must not be negative")
	v.date("asset_approval_date", in.AssetApprovalDate)
	v.date("target_launch_date", in.TargetLaunchDate)
	s.checkReferences(v, in.Department, in.ExecutionPhase)
	checkRisks(v, in.Risks)
	if err := v.err(); err != nil {
		return model.Project{}, err
	}

	if in.TargetLaunchQuarter == "" && in.TargetLaunchDate != "" {
		in.TargetLaunchQuarter = s.quarterOf(in.TargetLaunchDate)
	}

	p := s.store.CreateProject(in, actor)
	s.record(ctx, "project", "create", events.ProjectCreated, p.ID, actor, p)
	return p, nil
}

// UpdateProject 部分更新。状态与说明的组合按合并后的结果校验
func (s *PortfolioService) UpdateProject(ctx context.Context, actor, id string, patch model.ProjectPatch) (model.Project, error) {
	v := newValidator()
	if patch.ProjectName != nil {
		v.required("project_name", *patch.ProjectName)
	}
	if patch.Status != nil {
		v.check(patch.Status.Valid(), "status", "must be one of Green, Amber, Red")
	}
	checkOptionalAmount(v, "budget_approved", patch.BudgetApproved)
	checkOptionalAmount(v, "budget_spent_ytd", patch.BudgetSpentYTD)
	checkOptionalAmount(v, "capex_allocated", patch.CapexAllocated)
	checkOptionalAmount(v, "opex_allocated", patch.OpexAllocated)
	checkOptionalAmount(v, "capex_spent", patch.CapexSpent)
	checkOptionalAmount(v, "opex_spent", patch.OpexSpent)
	if patch.Employees != nil {
		v.check(*patch.Employees >= 0, "employees", "must not be negative")
	}
	if patch.Contractors != nil {
		v.check(*patch.Contractors >= 0, "contractors", "must not be negative")
	}
	v.date("asset_approval_date", lo.FromPtr(patch.AssetApprovalDate))
	v.date("target_launch_date", lo.FromPtr(patch.TargetLaunchDate))
	s.checkReferences(v, lo.FromPtr(patch.Department), lo.FromPtr(patch.ExecutionPhase))
	if patch.Risks != nil {
		checkRisks(v, *patch.Risks)
	}
	if err := v.err(); err != nil {
		return model.Project{}, err
	}

	if patch.TargetLaunchDate != nil && *patch.TargetLaunchDate != "" && patch.TargetLaunchQuarter == nil {
		patch.TargetLaunchQuarter = lo.ToPtr(s.quarterOf(*patch.TargetLaunchDate))
	}

	// 状态与说明依赖当前记录，在写锁内与写入一起完成
	p, err := s.store.UpdateProjectChecked(id, patch, func(current model.Project) error {
		status := lo.FromPtrOr(patch.Status, current.Status)
		justification := lo.FromPtrOr(patch.StatusJustification, current.StatusJustification)
		cv := newValidator()
		if status.NeedsJustification() {
			cv.required("status_justification", justification)
		}
		return cv.err()
	})
	if err != nil {
		return model.Project{}, err
	}
	s.record(ctx, "project", "update", events.ProjectUpdated, p.ID, actor, p)
	return p, nil
}

func (s *PortfolioService) DeleteProject(ctx context.Context, actor, id string) error {
	if err := s.store.DeleteProject(id); err != nil {
		return err
	}
	s.record(ctx, "project", "delete", events.ProjectDeleted, id, actor, nil)
	return nil
}

func (s *PortfolioService) Project(id string) (model.Project, error) {
	return s.store.Project(id)
}

// SelectProject 记录用户当前查看的项目
func (s *PortfolioService) SelectProject(owner, id string) error {
	if id == "" {
		s.store.ClearSelection(owner)
		return nil
	}
	return s.store.SelectProject(owner, id)
}

func (s *PortfolioService) SelectedProject(owner string) (model.Project, bool) {
	return s.store.SelectedProject(owner)
}

// Budget 预算汇总，项目集合未变化时返回缓存结果
func (s *PortfolioService) Budget() rollup.BudgetRollup {
	return s.memo.Get(s.store).Budget
}

func (s *PortfolioService) Workforce() rollup.WorkforceRollup {
	return s.memo.Get(s.store).Workforce
}

// Metrics 依赖财年配置，每次请求重新计算
func (s *PortfolioService) Metrics() rollup.Metrics {
	return rollup.Summarize(s.store.Projects(), s.store.FiscalConfig())
}

func (s *PortfolioService) quarterOf(date string) string {
	label, err := fiscal.QuarterOf(s.store.FiscalConfig(), date)
	if err != nil {
		return ""
	}
	return label
}

// checkReferences 部门和阶段按名称引用，非空时必须存在
func (s *PortfolioService) checkReferences(v *validator, department, phase string) {
	if department != "" {
		_, ok := lo.Find(s.store.Departments(), func(d model.Department) bool { return d.Name == department })
		v.check(ok, "department", fmt.Sprintf("unknown department %q", department))
	}
	if phase != "" {
		_, ok := lo.Find(s.store.ProjectPhases(), func(p model.ProjectPhase) bool { return p.Name == phase })
		v.check(ok, "execution_phase", fmt.Sprintf("unknown execution phase %q", phase))
	}
}

func checkOptionalAmount(v *validator, field string, a *model.Amount) {
	if a != nil {
		v.check(*a >= 0, field, "must not be negative")
	}
}

func checkRisks(v *validator, risks []model.Risk) {
	for i, r := range risks {
		prefix := fmt.Sprintf("risks[%d].", i)
		v.required(prefix+"description", r.Description)
		v.check(r.Impact.Valid(), prefix+"impact", "must be one of Low, Medium, High")
		v.check(r.Status.Valid(), prefix+"status", "must be one of Open, In Progress, Resolved")
		v.date(prefix+"resolution_timeline", r.ResolutionTimeline)
	}
}
