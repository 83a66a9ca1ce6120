package service

import (
	"context"
	"testing"

	"portfoliohub/internal/events"
	"portfoliohub/internal/model"
	"portfoliohub/internal/store"

	"github.com/samber/lo"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validInput() model.ProjectInput {
	return model.ProjectInput{
		ProjectName:    "Payments Revamp",
		Department:     "Engineering",
		ExecutionPhase: "Planning",
		Status:         model.StatusGreen,
		BudgetApproved: 1_000_000,
		Employees:      4,
		Contractors:    1,
	}
}

func TestCreateProject(t *testing.T) {
	env := newTestEnv(t, store.DemoSeed())

	in := validInput()
	in.TargetLaunchDate = "2024-08-01"
	p, err := env.portfolio.CreateProject(context.Background(), "1", in)
	require.NoError(t, err)

	assert.Equal(t, "1", p.CreatedBy)
	assert.Equal(t, model.Amount(700_000), p.CapexAllocated)
	assert.Equal(t, model.Amount(300_000), p.OpexAllocated)
	assert.Equal(t, "Q3 2024", p.TargetLaunchQuarter)
	assert.Equal(t, []string{events.ProjectCreated}, env.pub.keys)

	stored, err := env.portfolio.Project(p.ID)
	require.NoError(t, err)
	assert.Equal(t, p, stored)
}

func TestCreateProject_KeepsExplicitQuarter(t *testing.T) {
	env := newTestEnv(t, store.DemoSeed())

	in := validInput()
	in.TargetLaunchDate = "2024-08-01"
	in.TargetLaunchQuarter = "Q4 2024"
	p, err := env.portfolio.CreateProject(context.Background(), "1", in)
	require.NoError(t, err)
	assert.Equal(t, "Q4 2024", p.TargetLaunchQuarter)
}

func TestCreateProject_Validation(t *testing.T) {
	testCases := []struct {
		name   string
		mutate func(in *model.ProjectInput)
		fields []string
	}{
		{"missing name", func(in *model.ProjectInput) { in.ProjectName = "  " }, []string{"project_name"}},
		{"unknown status", func(in *model.ProjectInput) { in.Status = "Blue" }, []string{"status"}},
		{"amber without justification", func(in *model.ProjectInput) { in.Status = model.StatusAmber }, []string{"status_justification"}},
		{"red without justification", func(in *model.ProjectInput) { in.Status = model.StatusRed }, []string{"status_justification"}},
		{"negative budget", func(in *model.ProjectInput) { in.BudgetApproved = -1 }, []string{"budget_approved"}},
		{"negative capex", func(in *model.ProjectInput) { in.CapexAllocated = model.Amount(-5).Ptr() }, []string{"capex_allocated"}},
		{"negative staffing", func(in *model.ProjectInput) { in.Employees, in.Contractors = -1, -2 }, []string{"employees", "contractors"}},
		{"bad date", func(in *model.ProjectInput) { in.TargetLaunchDate = "30/06/2024" }, []string{"target_launch_date"}},
		{"unknown department", func(in *model.ProjectInput) { in.Department = "engineering" }, []string{"department"}},
		{"unknown phase", func(in *model.ProjectInput) { in.ExecutionPhase = "Dreaming" }, []string{"execution_phase"}},
		{"bad risk", func(in *model.ProjectInput) {
			in.Risks = []model.Risk{{Description: "", Impact: "Huge", Status: model.RiskOpen}}
		}, []string{"risks[0].description", "risks[0].impact"}},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			env := newTestEnv(t, store.DemoSeed())
			in := validInput()
			tc.mutate(&in)

			_, err := env.portfolio.CreateProject(context.Background(), "1", in)
			requireFields(t, err, tc.fields...)

			// 校验失败不写入、不发事件
			assert.Len(t, env.store.Projects(), 3)
			assert.Empty(t, env.pub.keys)
		})
	}
}

func TestCreateProject_AmberWithJustification(t *testing.T) {
	env := newTestEnv(t, store.DemoSeed())
	in := validInput()
	in.Status = model.StatusAmber
	in.StatusJustification = "Vendor delays"

	_, err := env.portfolio.CreateProject(context.Background(), "1", in)
	assert.NoError(t, err)
}

func TestUpdateProject(t *testing.T) {
	env := newTestEnv(t, store.DemoSeed())
	ctx := context.Background()

	p, err := env.portfolio.UpdateProject(ctx, "1", "2", model.ProjectPatch{
		BudgetSpentYTD:   model.Amount(1_500_000).Ptr(),
		TargetLaunchDate: lo.ToPtr("2024-11-20"),
	})
	require.NoError(t, err)
	assert.Equal(t, model.Amount(2_300_000), p.BudgetRemaining)
	assert.Equal(t, "Q4 2024", p.TargetLaunchQuarter)
	assert.Equal(t, []string{events.ProjectUpdated}, env.pub.keys)
}

func TestUpdateProject_StatusNeedsJustification(t *testing.T) {
	env := newTestEnv(t, store.DemoSeed())
	ctx := context.Background()

	// 项目 1 为 Green 且没有说明
	_, err := env.portfolio.UpdateProject(ctx, "1", "1", model.ProjectPatch{Status: lo.ToPtr(model.StatusRed)})
	requireFields(t, err, "status_justification")

	p, err := env.portfolio.UpdateProject(ctx, "1", "1", model.ProjectPatch{
		Status:              lo.ToPtr(model.StatusRed),
		StatusJustification: lo.ToPtr("Critical dependency slipped"),
	})
	require.NoError(t, err)
	assert.Equal(t, model.StatusRed, p.Status)
}

func TestUpdateProject_UnknownID(t *testing.T) {
	env := newTestEnv(t, store.DemoSeed())
	before := env.store.Projects()

	_, err := env.portfolio.UpdateProject(context.Background(), "1", "missing", model.ProjectPatch{ProjectName: lo.ToPtr("x")})
	assert.ErrorIs(t, err, store.ErrNotFound)
	assert.Equal(t, before, env.store.Projects())
	assert.Empty(t, env.pub.keys)
}

func TestDeleteProject(t *testing.T) {
	env := newTestEnv(t, store.DemoSeed())
	ctx := context.Background()

	require.NoError(t, env.portfolio.SelectProject("1", "3"))
	require.NoError(t, env.portfolio.DeleteProject(ctx, "1", "3"))

	_, ok := env.portfolio.SelectedProject("1")
	assert.False(t, ok)
	assert.ErrorIs(t, env.portfolio.DeleteProject(ctx, "1", "3"), store.ErrNotFound)
	assert.Equal(t, []string{events.ProjectDeleted}, env.pub.keys)
}

func TestSelection_SeesUpdates(t *testing.T) {
	env := newTestEnv(t, store.DemoSeed())
	ctx := context.Background()

	require.NoError(t, env.portfolio.SelectProject("2", "1"))
	_, err := env.portfolio.UpdateProject(ctx, "2", "1", model.ProjectPatch{ProjectName: lo.ToPtr("Mobile Platform v2")})
	require.NoError(t, err)

	sel, ok := env.portfolio.SelectedProject("2")
	require.True(t, ok)
	assert.Equal(t, "Mobile Platform v2", sel.ProjectName)

	// 空 id 清除选中
	require.NoError(t, env.portfolio.SelectProject("2", ""))
	_, ok = env.portfolio.SelectedProject("2")
	assert.False(t, ok)

	assert.ErrorIs(t, env.portfolio.SelectProject("2", "missing"), store.ErrNotFound)
}

func TestRollups_FollowMutations(t *testing.T) {
	env := newTestEnv(t, store.BaseSeed())
	ctx := context.Background()

	assert.Empty(t, env.portfolio.Budget().DepartmentBreakdown)

	env.store.CreateDepartment(model.DepartmentInput{Name: "Eng", IsActive: true})

	in := validInput()
	in.Department = "Eng"
	p, err := env.portfolio.CreateProject(ctx, "1", in)
	require.NoError(t, err)

	_, err = env.portfolio.UpdateProject(ctx, "1", p.ID, model.ProjectPatch{BudgetSpentYTD: model.Amount(400_000).Ptr()})
	require.NoError(t, err)

	budget := env.portfolio.Budget()
	assert.Equal(t, model.Amount(1_000_000), budget.TotalBudget)
	assert.Equal(t, model.Amount(400_000), budget.ActualSpend)
	assert.Equal(t, budget, env.portfolio.Budget())

	wf := env.portfolio.Workforce()
	assert.Equal(t, 4, wf.Employees)
	assert.Equal(t, 1, wf.Contractors)
}

func TestMetrics(t *testing.T) {
	env := newTestEnv(t, store.DemoSeed())

	m := env.portfolio.Metrics()
	assert.Equal(t, 3, m.ActiveProjects)
	assert.Equal(t, 2, m.StatusCounts.Green)
	assert.Equal(t, 1, m.StatusCounts.Amber)
	assert.Equal(t, "Q1 2024", m.CurrentQuarter)
	assert.Zero(t, m.CurrentQuarterLaunches)

	_, err := env.settings.ReplaceFiscal(context.Background(), "1", func() model.FiscalConfig {
		cfg := store.DefaultFiscalConfig()
		cfg.CurrentQuarter = 2
		return cfg
	}())
	require.NoError(t, err)
	assert.Equal(t, 2, env.portfolio.Metrics().CurrentQuarterLaunches)
}
