package store

import (
	"strconv"
	"time"

	"portfoliohub/internal/model"
)

// Seed 启动时加载的初始数据
type Seed struct {
	Projects      []model.Project
	Users         []model.User
	Departments   []model.Department
	ProjectPhases []model.ProjectPhase
	ColumnConfig  []model.ColumnConfig
	FiscalConfig  model.FiscalConfig
}

// DefaultFiscalConfig FY2024，按自然季度划分
func DefaultFiscalConfig() model.FiscalConfig {
	return model.FiscalConfig{
		FiscalYear:     2024,
		CurrentQuarter: 1,
		Quarters: model.Quarters{
			Q1: model.QuarterRange{Start: "2024-01-01", End: "2024-03-31"},
			Q2: model.QuarterRange{Start: "2024-04-01", End: "2024-06-30"},
			Q3: model.QuarterRange{Start: "2024-07-01", End: "2024-09-30"},
			Q4: model.QuarterRange{Start: "2024-10-01", End: "2024-12-31"},
		},
	}
}

// BaseSeed 只有配置、没有业务数据的初始状态
func BaseSeed() Seed {
	return Seed{
		ProjectPhases: defaultPhases(),
		ColumnConfig:  defaultColumns(),
		FiscalConfig:  DefaultFiscalConfig(),
	}
}

// DemoSeed 演示数据：3 个项目、3 个用户、4 个部门
func DemoSeed() Seed {
	seed := BaseSeed()
	seed.Departments = []model.Department{
		{ID: "1", Name: "Engineering", Description: "Software development and technical implementation", IsActive: true, CreatedAt: ts("2024-01-01T00:00:00Z")},
		{ID: "2", Name: "Infrastructure", Description: "IT infrastructure and cloud services", IsActive: true, CreatedAt: ts("2024-01-01T00:00:00Z")},
		{ID: "3", Name: "Product", Description: "Product management and strategy", IsActive: true, CreatedAt: ts("2024-01-01T00:00:00Z")},
		{ID: "4", Name: "Data Science", Description: "Data analysis and machine learning", IsActive: true, CreatedAt: ts("2024-01-01T00:00:00Z")},
	}
	seed.Users = []model.User{
		{ID: "1", Name: "John Smith", Email: "john.smith@company.com", Role: model.RoleAdmin, Department: "IT", IsActive: true, CreatedAt: ts("2024-01-01T00:00:00Z"), LastLogin: tsPtr("2024-03-01T10:30:00Z")},
		{ID: "2", Name: "Sarah Johnson", Email: "sarah.johnson@company.com", Role: model.RoleManager, Department: "Engineering", IsActive: true, CreatedAt: ts("2024-01-15T00:00:00Z"), LastLogin: tsPtr("2024-02-28T14:20:00Z")},
		{ID: "3", Name: "Mike Chen", Email: "mike.chen@company.com", Role: model.RoleTeamMember, Department: "Engineering", IsActive: true, CreatedAt: ts("2024-02-01T00:00:00Z"), LastLogin: tsPtr("2024-03-01T09:15:00Z")},
	}
	seed.Projects = []model.Project{
		{
			ID:                    "1",
			AssetID:               "AST-2024-001",
			ProjectName:           "Next-Gen Mobile Platform",
			AssetApprovalDate:     "2024-01-15",
			ExecutionPhase:        "Development",
			BudgetApproved:        2500000,
			BudgetSpentYTD:        1250000,
			CapexAllocated:        1750000,
			OpexAllocated:         750000,
			CapexSpent:            875000,
			OpexSpent:             375000,
			TargetLaunchDate:      "2024-06-30",
			TargetLaunchQuarter:   "Q2 2024",
			Status:                model.StatusGreen,
			Department:            "Engineering",
			ProductManager:        "Sarah Johnson",
			EngineeringManager:    "Mike Chen",
			ProjectManager:        "Lisa Rodriguez",
			Employees:             8,
			Contractors:           4,
			PreviousMonthProgress: "Completed API integration and user authentication modules. Performance testing showed 40% improvement.",
			UpcomingMonthPlan:     "Focus on UI/UX implementation and beta testing preparation.",
			ExecutiveGuidance:     "Need additional QA resources for comprehensive testing.",
			CreatedBy:             "1",
			CreatedAt:             ts("2024-01-01T00:00:00Z"),
			UpdatedAt:             ts("2024-03-01T00:00:00Z"),
			Risks: []model.Risk{{
				ID:                 "1",
				Description:        "Third-party API rate limiting may impact performance",
				Owner:              "Mike Chen",
				Impact:             model.ImpactMedium,
				ResolutionTimeline: "2024-03-15",
				Status:             model.RiskInProgress,
			}},
		},
		{
			ID:                    "2",
			AssetID:               "AST-2024-002",
			ProjectName:           "Cloud Infrastructure Modernization",
			AssetApprovalDate:     "2024-02-01",
			ExecutionPhase:        "Planning",
			BudgetApproved:        3800000,
			BudgetSpentYTD:        950000,
			CapexAllocated:        2660000,
			OpexAllocated:         1140000,
			CapexSpent:            665000,
			OpexSpent:             285000,
			TargetLaunchDate:      "2024-09-15",
			TargetLaunchQuarter:   "Q3 2024",
			Status:                model.StatusAmber,
			Department:            "Infrastructure",
			ProductManager:        "David Kim",
			EngineeringManager:    "Jennifer Walsh",
			ProjectManager:        "Carlos Martinez",
			Employees:             6,
			Contractors:           2,
			PreviousMonthProgress: "Completed initial architecture review and vendor selection process.",
			UpcomingMonthPlan:     "Begin migration planning and security audit preparation.",
			ExecutiveGuidance:     "Require budget approval for additional security tools.",
			StatusJustification:   "Delayed due to extended vendor evaluation process and security compliance requirements.",
			CreatedBy:             "2",
			CreatedAt:             ts("2024-01-15T00:00:00Z"),
			UpdatedAt:             ts("2024-03-01T00:00:00Z"),
			Risks: []model.Risk{{
				ID:                 "2",
				Description:        "Potential data migration challenges with legacy systems",
				Owner:              "Jennifer Walsh",
				Impact:             model.ImpactHigh,
				ResolutionTimeline: "2024-04-01",
				Status:             model.RiskOpen,
			}},
		},
		{
			ID:                    "3",
			AssetID:               "AST-2024-003",
			ProjectName:           "Customer Analytics Platform",
			AssetApprovalDate:     "2024-01-20",
			ExecutionPhase:        "Testing",
			BudgetApproved:        1800000,
			BudgetSpentYTD:        1620000,
			CapexAllocated:        1260000,
			OpexAllocated:         540000,
			CapexSpent:            1134000,
			OpexSpent:             486000,
			TargetLaunchDate:      "2024-04-15",
			TargetLaunchQuarter:   "Q2 2024",
			Status:                model.StatusGreen,
			Department:            "Data Science",
			ProductManager:        "Emily Zhang",
			EngineeringManager:    "Robert Taylor",
			ProjectManager:        "Maria Santos",
			Employees:             5,
			Contractors:           3,
			PreviousMonthProgress: "Completed data pipeline optimization and machine learning model training.",
			UpcomingMonthPlan:     "Final user acceptance testing and deployment preparation.",
			ExecutiveGuidance:     "Support needed for stakeholder training sessions.",
			CreatedBy:             "1",
			CreatedAt:             ts("2024-01-20T00:00:00Z"),
			UpdatedAt:             ts("2024-03-01T00:00:00Z"),
			Risks:                 []model.Risk{},
		},
	}
	return seed
}

func defaultPhases() []model.ProjectPhase {
	names := []string{"Planning", "Design", "Development", "Testing", "Implementation", "Deployment", "Maintenance"}
	phases := make([]model.ProjectPhase, len(names))
	for i, name := range names {
		phases[i] = model.ProjectPhase{ID: strconv.Itoa(i + 1), Name: name, Order: i + 1, IsActive: true}
	}
	return phases
}

func defaultColumns() []model.ColumnConfig {
	return []model.ColumnConfig{
		{Key: "project_name", Label: "Project Name", Visible: true, Order: 1},
		{Key: "department", Label: "Department", Visible: true, Order: 2},
		{Key: "execution_phase", Label: "Execution Phase", Visible: true, Order: 3},
		{Key: "budget_approved", Label: "Budget", Visible: true, Order: 4},
		{Key: "target_launch_date", Label: "Target Launch", Visible: true, Order: 5},
		{Key: "status", Label: "Status", Visible: true, Order: 6},
		{Key: "actions", Label: "Actions", Visible: true, Order: 7},
		{Key: "asset_id", Label: "Asset ID", Visible: false, Order: 8},
		{Key: "asset_approval_date", Label: "Approval Date", Visible: false, Order: 9},
		{Key: "leadership", Label: "Leadership", Visible: false, Order: 10},
	}
}

func ts(s string) time.Time {
	t, err := time.Parse(time.RFC3339, s)
	if err != nil {
		panic(err)
	}
	return t
}

func tsPtr(s string) *time.Time {
	t := ts(s)
	return &t
}
