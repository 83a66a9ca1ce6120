package rollup

import (
	"sync"

	"portfoliohub/internal/model"
)

// Source 提供项目快照和版本号，store.Store 实现了该接口
type Source interface {
	Revision() uint64
	ProjectsWithRevision() ([]model.Project, uint64)
}

// Snapshot 某个版本下的两个汇总视图
type Snapshot struct {
	Revision  uint64          `json:"revision"`
	Budget    BudgetRollup    `json:"budget"`
	Workforce WorkforceRollup `json:"workforce"`
}

// Memo 按项目集合版本号缓存汇总结果。版本号变化时整体重算，不做增量累加。
type Memo struct {
	mu    sync.Mutex
	valid bool
	snap  Snapshot

	// 每次重算后回调，可为 nil
	OnRecompute func(Snapshot)
}

func (m *Memo) Get(src Source) Snapshot {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.valid && src.Revision() == m.snap.Revision {
		return m.snap.clone()
	}

	projects, rev := src.ProjectsWithRevision()
	m.snap = Snapshot{
		Revision:  rev,
		Budget:    Budget(projects),
		Workforce: Workforce(projects),
	}
	m.valid = true
	if m.OnRecompute != nil {
		m.OnRecompute(m.snap.clone())
	}
	return m.snap.clone()
}

func (s Snapshot) clone() Snapshot {
	cp := s
	cp.Budget.DepartmentBreakdown = append([]DepartmentBudget{}, s.Budget.DepartmentBreakdown...)
	cp.Workforce.DepartmentBreakdown = append([]DepartmentWorkforce{}, s.Workforce.DepartmentBreakdown...)
	return cp
}
