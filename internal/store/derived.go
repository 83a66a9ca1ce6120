package store

import (
	"portfoliohub/internal/model"

	"github.com/shopspring/decimal"
)

var (
	defaultCapexShare = decimal.RequireFromString("0.7")
	defaultOpexShare  = decimal.RequireFromString("0.3")
)

// recomputeDerived 重新计算项目的派生字段。每次写入后统一调用，保证
// remaining = allocated - spent 在任何时刻成立，员工/外包人数不为负。
func recomputeDerived(p *model.Project) {
	p.BudgetRemaining = p.BudgetApproved - p.BudgetSpentYTD
	p.CapexRemaining = p.CapexAllocated - p.CapexSpent
	p.OpexRemaining = p.OpexAllocated - p.OpexSpent

	if p.Employees < 0 {
		p.Employees = 0
	}
	if p.Contractors < 0 {
		p.Contractors = 0
	}
}

// defaultSplit 未提供 CAPEX/OPEX 时按 70/30 拆分总预算
func defaultSplit(approved model.Amount, capex, opex *model.Amount) (model.Amount, model.Amount) {
	c := approved.Percent(defaultCapexShare)
	if capex != nil {
		c = *capex
	}
	o := approved.Percent(defaultOpexShare)
	if opex != nil {
		o = *opex
	}
	return c, o
}

func valueOr(v *model.Amount) model.Amount {
	if v == nil {
		return 0
	}
	return *v
}
