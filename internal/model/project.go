package model

import "time"

// ProjectStatus 项目健康状态（红黄绿灯）
type ProjectStatus string

const (
	StatusGreen ProjectStatus = "Green"
	StatusAmber ProjectStatus = "Amber"
	StatusRed   ProjectStatus = "Red"
)

// Valid 判断状态是否为已知取值
func (s ProjectStatus) Valid() bool {
	switch s {
	case StatusGreen, StatusAmber, StatusRed:
		return true
	}
	return false
}

// NeedsJustification Amber/Red 状态需要填写说明
func (s ProjectStatus) NeedsJustification() bool {
	return s == StatusAmber || s == StatusRed
}

type Project struct {
	ID                string        `json:"id"`
	AssetID           string        `json:"asset_id"`
	ProjectName       string        `json:"project_name"`
	AssetApprovalDate string        `json:"asset_approval_date"`
	ExecutionPhase    string        `json:"execution_phase"`
	Department        string        `json:"department"`
	Status            ProjectStatus `json:"status"`

	BudgetApproved  Amount `json:"budget_approved"`
	BudgetSpentYTD  Amount `json:"budget_spent_ytd"`
	BudgetRemaining Amount `json:"budget_remaining"`
	CapexAllocated  Amount `json:"capex_allocated"`
	OpexAllocated   Amount `json:"opex_allocated"`
	CapexSpent      Amount `json:"capex_spent"`
	OpexSpent       Amount `json:"opex_spent"`
	CapexRemaining  Amount `json:"capex_remaining"`
	OpexRemaining   Amount `json:"opex_remaining"`

	TargetLaunchDate    string `json:"target_launch_date"`
	TargetLaunchQuarter string `json:"target_launch_quarter"`

	ProductManager     string `json:"product_manager"`
	EngineeringManager string `json:"engineering_manager"`
	ProjectManager     string `json:"project_manager"`

	Employees   int `json:"employees"`
	Contractors int `json:"contractors"`

	PreviousMonthProgress string `json:"previous_month_progress"`
	UpcomingMonthPlan     string `json:"upcoming_month_plan"`
	ExecutiveGuidance     string `json:"executive_guidance"`
	StatusJustification   string `json:"status_justification,omitempty"`

	Risks []Risk `json:"risks"`

	CreatedBy string    `json:"created_by"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// Clone 返回深拷贝，Risks 切片不共享底层数组
func (p Project) Clone() Project {
	cp := p
	cp.Risks = make([]Risk, len(p.Risks))
	copy(cp.Risks, p.Risks)
	return cp
}

// ProjectInput 创建项目的输入，不含 id 和时间戳
// CAPEX/OPEX 字段为指针：nil 表示调用方未提供
type ProjectInput struct {
	AssetID           string        `json:"asset_id"`
	ProjectName       string        `json:"project_name"`
	AssetApprovalDate string        `json:"asset_approval_date"`
	ExecutionPhase    string        `json:"execution_phase"`
	Department        string        `json:"department"`
	Status            ProjectStatus `json:"status"`

	BudgetApproved Amount  `json:"budget_approved"`
	BudgetSpentYTD Amount  `json:"budget_spent_ytd"`
	CapexAllocated *Amount `json:"capex_allocated"`
	OpexAllocated  *Amount `json:"opex_allocated"`
	CapexSpent     *Amount `json:"capex_spent"`
	OpexSpent      *Amount `json:"opex_spent"`

	TargetLaunchDate    string `json:"target_launch_date"`
	TargetLaunchQuarter string `json:"target_launch_quarter"`

	ProductManager     string `json:"product_manager"`
	EngineeringManager string `json:"engineering_manager"`
	ProjectManager     string `json:"project_manager"`

	Employees   int `json:"employees"`
	Contractors int `json:"contractors"`

	PreviousMonthProgress string `json:"previous_month_progress"`
	UpcomingMonthPlan     string `json:"upcoming_month_plan"`
	ExecutiveGuidance     string `json:"executive_guidance"`
	StatusJustification   string `json:"status_justification"`

	Risks []Risk `json:"risks"`
}

// ProjectPatch 部分更新，nil 字段表示不修改
type ProjectPatch struct {
	AssetID           *string        `json:"asset_id"`
	ProjectName       *string        `json:"project_name"`
	AssetApprovalDate *string        `json:"asset_approval_date"`
	ExecutionPhase    *string        `json:"execution_phase"`
	Department        *string        `json:"department"`
	Status            *ProjectStatus `json:"status"`

	BudgetApproved *Amount `json:"budget_approved"`
	BudgetSpentYTD *Amount `json:"budget_spent_ytd"`
	CapexAllocated *Amount `json:"capex_allocated"`
	OpexAllocated  *Amount `json:"opex_allocated"`
	CapexSpent     *Amount `json:"capex_spent"`
	OpexSpent      *Amount `json:"opex_spent"`

	TargetLaunchDate    *string `json:"target_launch_date"`
	TargetLaunchQuarter *string `json:"target_launch_quarter"`

	ProductManager     *string `json:"product_manager"`
	EngineeringManager *string `json:"engineering_manager"`
	ProjectManager     *string `json:"project_manager"`

	Employees   *int `json:"employees"`
	Contractors *int `json:"contractors"`

	PreviousMonthProgress *string `json:"previous_month_progress"`
	UpcomingMonthPlan     *string `json:"upcoming_month_plan"`
	ExecutiveGuidance     *string `json:"executive_guidance"`
	StatusJustification   *string `json:"status_justification"`

	Risks *[]Risk `json:"risks"`
}

// TouchesBudget 是否修改了总预算相关字段
func (p ProjectPatch) TouchesBudget() bool {
	return p.BudgetApproved != nil || p.BudgetSpentYTD != nil
}
