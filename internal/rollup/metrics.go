package rollup

import (
	"math"

	"portfoliohub/internal/fiscal"
	"portfoliohub/internal/model"

	"github.com/samber/lo"
)

type StatusCounts struct {
	Green int `json:"green"`
	Amber int `json:"amber"`
	Red   int `json:"red"`
}

// Metrics 仪表盘上的项目指标
type Metrics struct {
	ActiveProjects         int          `json:"active_projects"`
	StatusCounts           StatusCounts `json:"status_counts"`
	CurrentQuarter         string       `json:"current_quarter"`
	CurrentQuarterLaunches int          `json:"current_quarter_launches"`
	TotalWorkforce         int          `json:"total_workforce"`
	ContractorPercentage   int          `json:"contractor_percentage"`
}

// Summarize 计算项目状态分布、本季度上线数量和外包占比
func Summarize(projects []model.Project, cfg model.FiscalConfig) Metrics {
	counts := lo.CountValuesBy(projects, func(p model.Project) model.ProjectStatus { return p.Status })
	label := fiscal.CurrentLabel(cfg)
	workforce := Workforce(projects)
	total := workforce.Employees + workforce.Contractors

	m := Metrics{
		ActiveProjects: len(projects),
		StatusCounts: StatusCounts{
			Green: counts[model.StatusGreen],
			Amber: counts[model.StatusAmber],
			Red:   counts[model.StatusRed],
		},
		CurrentQuarter: label,
		CurrentQuarterLaunches: lo.CountBy(projects, func(p model.Project) bool {
			return p.TargetLaunchQuarter == label
		}),
		TotalWorkforce: total,
	}
	// 没有人力数据时占比为 0
	if total > 0 {
		m.ContractorPercentage = int(math.Round(float64(workforce.Contractors) / float64(total) * 100))
	}
	return m
}
