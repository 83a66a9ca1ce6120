// Package rollup 根据项目列表计算全局汇总视图。
// 所有函数都是纯函数：不修改输入，每次从头计算。
package rollup

import "portfoliohub/internal/model"

// DepartmentBudget 单个部门的预算汇总
type DepartmentBudget struct {
	Department string       `json:"department"`
	Allocated  model.Amount `json:"allocated"`
	Spent      model.Amount `json:"spent"`
	Remaining  model.Amount `json:"remaining"`
	Projects   int          `json:"projects"`
}

// BudgetRollup 预算汇总
type BudgetRollup struct {
	TotalBudget         model.Amount       `json:"total_budget"`
	ActualSpend         model.Amount       `json:"actual_spend"`
	Capex               model.Amount       `json:"capex"`
	Opex                model.Amount       `json:"opex"`
	CapexSpent          model.Amount       `json:"capex_spent"`
	OpexSpent           model.Amount       `json:"opex_spent"`
	DepartmentBreakdown []DepartmentBudget `json:"department_breakdown"`
}

// Budget 单次遍历累加总额，并按部门名称（区分大小写）分组，部门按首次出现的顺序输出
func Budget(projects []model.Project) BudgetRollup {
	out := BudgetRollup{DepartmentBreakdown: []DepartmentBudget{}}
	groups := newOrderedGroups[DepartmentBudget]()

	for _, p := range projects {
		out.TotalBudget += p.BudgetApproved
		out.ActualSpend += p.BudgetSpentYTD
		out.Capex += p.CapexAllocated
		out.Opex += p.OpexAllocated
		out.CapexSpent += p.CapexSpent
		out.OpexSpent += p.OpexSpent

		acc := groups.get(p.Department)
		acc.Allocated += p.BudgetApproved
		acc.Spent += p.BudgetSpentYTD
		acc.Projects++
	}

	for _, key := range groups.keys {
		acc := groups.items[key]
		out.DepartmentBreakdown = append(out.DepartmentBreakdown, DepartmentBudget{
			Department: key,
			Allocated:  acc.Allocated,
			Spent:      acc.Spent,
			Remaining:  acc.Allocated - acc.Spent,
			Projects:   acc.Projects,
		})
	}
	return out
}
