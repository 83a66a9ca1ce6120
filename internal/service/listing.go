package service

import (
	"cmp"
	"slices"
	"strings"

	"portfoliohub/internal/fiscal"
	"portfoliohub/internal/model"

	"github.com/samber/lo"
)

const (
	DefaultPageSize = 25
	MaxPageSize     = 100

	// FilterAll 状态和部门筛选中表示不过滤
	FilterAll = "All"
)

// ListQuery 项目列表查询条件
type ListQuery struct {
	Search     string
	Status     string
	Department string
	SortBy     string
	Desc       bool
	Page       int
	PageSize   int
}

// ProjectPage 分页后的项目列表
type ProjectPage struct {
	Items      []model.Project `json:"items"`
	Total      int             `json:"total"`
	Page       int             `json:"page"`
	PageSize   int             `json:"page_size"`
	TotalPages int             `json:"total_pages"`
}

type sortKind int

const (
	sortText sortKind = iota
	sortDate
	sortNumber
)

type sortField struct {
	kind  sortKind
	value func(p model.Project) string
	num   func(p model.Project) int64
}

// 可排序的列，key 与列配置一致
var sortFields = map[string]sortField{
	"asset_id":            {kind: sortText, value: func(p model.Project) string { return p.AssetID }},
	"project_name":        {kind: sortText, value: func(p model.Project) string { return p.ProjectName }},
	"department":          {kind: sortText, value: func(p model.Project) string { return p.Department }},
	"execution_phase":     {kind: sortText, value: func(p model.Project) string { return p.ExecutionPhase }},
	"status":              {kind: sortText, value: func(p model.Project) string { return string(p.Status) }},
	"asset_approval_date": {kind: sortDate, value: func(p model.Project) string { return p.AssetApprovalDate }},
	"target_launch_date":  {kind: sortDate, value: func(p model.Project) string { return p.TargetLaunchDate }},
	"budget_approved":     {kind: sortNumber, num: func(p model.Project) int64 { return int64(p.BudgetApproved) }},
}

// ListProjects 搜索、筛选、排序后分页。页码超出范围时回到第一页
func (s *PortfolioService) ListProjects(q ListQuery) (ProjectPage, error) {
	if q.SortBy == "" {
		q.SortBy = "project_name"
	}
	field, ok := sortFields[q.SortBy]
	if !ok {
		return ProjectPage{}, &ValidationError{Fields: map[string]string{"sort": "unknown sort column " + q.SortBy}}
	}
	if q.Status != "" && q.Status != FilterAll && !model.ProjectStatus(q.Status).Valid() {
		return ProjectPage{}, &ValidationError{Fields: map[string]string{"status": "must be All, Green, Amber or Red"}}
	}
	if q.PageSize <= 0 {
		q.PageSize = DefaultPageSize
	}
	q.PageSize = min(q.PageSize, MaxPageSize)

	search := strings.ToLower(strings.TrimSpace(q.Search))
	items := lo.Filter(s.store.Projects(), func(p model.Project, _ int) bool {
		return matchesSearch(p, search) &&
			matchesFilter(string(p.Status), q.Status) &&
			matchesFilter(p.Department, q.Department)
	})

	slices.SortStableFunc(items, func(a, b model.Project) int {
		if q.Desc {
			return compareBy(field, b, a)
		}
		return compareBy(field, a, b)
	})

	total := len(items)
	totalPages := (total + q.PageSize - 1) / q.PageSize
	if q.Page < 1 || q.Page > totalPages {
		q.Page = 1
	}

	start := (q.Page - 1) * q.PageSize
	end := min(start+q.PageSize, total)
	return ProjectPage{
		Items:      items[min(start, total):end],
		Total:      total,
		Page:       q.Page,
		PageSize:   q.PageSize,
		TotalPages: totalPages,
	}, nil
}

func matchesSearch(p model.Project, search string) bool {
	if search == "" {
		return true
	}
	return lo.SomeBy([]string{
		p.ProjectName,
		p.AssetID,
		p.Department,
		p.ProductManager,
		p.EngineeringManager,
		p.ProjectManager,
	}, func(v string) bool {
		return strings.Contains(strings.ToLower(v), search)
	})
}

func matchesFilter(value, filter string) bool {
	return filter == "" || filter == FilterAll || value == filter
}

func compareBy(f sortField, a, b model.Project) int {
	switch f.kind {
	case sortNumber:
		return cmp.Compare(f.num(a), f.num(b))
	case sortDate:
		return compareDate(f.value(a), f.value(b))
	default:
		return strings.Compare(strings.ToLower(f.value(a)), strings.ToLower(f.value(b)))
	}
}

// compareDate 无法解析的日期排在最前
func compareDate(a, b string) int {
	ta, errA := fiscal.ParseDate(a)
	tb, errB := fiscal.ParseDate(b)
	switch {
	case errA != nil && errB != nil:
		return 0
	case errA != nil:
		return -1
	case errB != nil:
		return 1
	}
	return ta.Compare(tb)
}
