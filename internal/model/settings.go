package model

// ProjectPhase 执行阶段，Order 决定展示顺序和推进顺序
type ProjectPhase struct {
	ID       string `json:"id" yaml:"id"`
	Name     string `json:"name" yaml:"name"`
	Order    int    `json:"order" yaml:"order"`
	IsActive bool   `json:"is_active" yaml:"is_active"`
}

// ColumnConfig 项目列表的列配置
type ColumnConfig struct {
	Key     string `json:"key" yaml:"key"`
	Label   string `json:"label" yaml:"label"`
	Visible bool   `json:"visible" yaml:"visible"`
	Order   int    `json:"order" yaml:"order"`
}

// QuarterRange 季度起止日期，ISO 格式 YYYY-MM-DD
type QuarterRange struct {
	Start string `json:"start" yaml:"start"`
	End   string `json:"end" yaml:"end"`
}

type Quarters struct {
	Q1 QuarterRange `json:"q1" yaml:"q1"`
	Q2 QuarterRange `json:"q2" yaml:"q2"`
	Q3 QuarterRange `json:"q3" yaml:"q3"`
	Q4 QuarterRange `json:"q4" yaml:"q4"`
}

// Get 按序号（1-4）取季度
func (q Quarters) Get(n int) (QuarterRange, bool) {
	switch n {
	case 1:
		return q.Q1, true
	case 2:
		return q.Q2, true
	case 3:
		return q.Q3, true
	case 4:
		return q.Q4, true
	}
	return QuarterRange{}, false
}

// Set 按序号（1-4）写入季度，序号越界返回 false
func (q *Quarters) Set(n int, r QuarterRange) bool {
	switch n {
	case 1:
		q.Q1 = r
	case 2:
		q.Q2 = r
	case 3:
		q.Q3 = r
	case 4:
		q.Q4 = r
	default:
		return false
	}
	return true
}

// FiscalConfig 财年配置
type FiscalConfig struct {
	FiscalYear     int      `json:"fiscal_year" yaml:"fiscal_year"`
	CurrentQuarter int      `json:"current_quarter" yaml:"current_quarter"`
	Quarters       Quarters `json:"quarters" yaml:"quarters"`
}

// Settings 管理员配置快照
type Settings struct {
	Departments   []Department   `json:"departments"`
	ProjectPhases []ProjectPhase `json:"project_phases"`
	ColumnConfig  []ColumnConfig `json:"column_config"`
	FiscalConfig  FiscalConfig   `json:"fiscal_config"`
}
