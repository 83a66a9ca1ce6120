package rollup

import "portfoliohub/internal/model"

type DepartmentWorkforce struct {
	Department  string `json:"department"`
	Employees   int    `json:"employees"`
	Contractors int    `json:"contractors"`
}

// WorkforceRollup 人力汇总
type WorkforceRollup struct {
	Employees           int                   `json:"employees"`
	Contractors         int                   `json:"contractors"`
	DepartmentBreakdown []DepartmentWorkforce `json:"department_breakdown"`
}

// Workforce 与 Budget 使用相同的分组规则
func Workforce(projects []model.Project) WorkforceRollup {
	out := WorkforceRollup{DepartmentBreakdown: []DepartmentWorkforce{}}
	groups := newOrderedGroups[DepartmentWorkforce]()

	for _, p := range projects {
		out.Employees += p.Employees
		out.Contractors += p.Contractors

		acc := groups.get(p.Department)
		acc.Employees += p.Employees
		acc.Contractors += p.Contractors
	}

	for _, key := range groups.keys {
		acc := groups.items[key]
		acc.Department = key
		out.DepartmentBreakdown = append(out.DepartmentBreakdown, *acc)
	}
	return out
}
