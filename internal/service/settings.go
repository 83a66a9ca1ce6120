package service

import (
	"cmp"
	"context"
	"fmt"
	"slices"
	"strings"

	"portfoliohub/internal/events"
	"portfoliohub/internal/fiscal"
	"portfoliohub/internal/model"
	"portfoliohub/internal/store"

	"github.com/samber/lo"
	"go.uber.org/zap"
)

// 移动方向
const (
	MoveUp   = "up"
	MoveDown = "down"
)

// SettingsService 执行阶段、列配置和财年配置
type SettingsService struct {
	recorder
	store *store.Store
}

func NewSettingsService(st *store.Store, notifier *events.Notifier, logger *zap.Logger) *SettingsService {
	return &SettingsService{
		recorder: recorder{notifier: notifier, logger: logger},
		store:    st,
	}
}

func (s *SettingsService) Settings() model.Settings {
	return s.store.Settings()
}

// VisibleColumns 可见列，按 order 排序
func (s *SettingsService) VisibleColumns() []model.ColumnConfig {
	cols := lo.Filter(s.store.ColumnConfig(), func(c model.ColumnConfig, _ int) bool { return c.Visible })
	slices.SortStableFunc(cols, func(a, b model.ColumnConfig) int { return cmp.Compare(a.Order, b.Order) })
	return cols
}

// ReplacePhases 整体替换执行阶段，按给定顺序重新编号
func (s *SettingsService) ReplacePhases(ctx context.Context, actor string, phases []model.ProjectPhase) ([]model.ProjectPhase, error) {
	v := newValidator()
	seen := map[string]bool{}
	for i, p := range phases {
		prefix := fmt.Sprintf("phases[%d].", i)
		v.required(prefix+"id", p.ID)
		v.required(prefix+"name", p.Name)
		v.check(!seen[p.ID], prefix+"id", "duplicate phase id "+p.ID)
		seen[p.ID] = true
	}
	if err := v.err(); err != nil {
		return nil, err
	}

	out := renumberPhases(slices.Clone(phases))
	s.store.UpdateProjectPhases(out)
	s.record(ctx, "settings", "update", events.SettingsUpdated, "phases", actor, events.SettingsChange{Section: "phases"})
	return out, nil
}

// ReplaceColumns 整体替换列配置，按给定顺序重新编号
func (s *SettingsService) ReplaceColumns(ctx context.Context, actor string, columns []model.ColumnConfig) ([]model.ColumnConfig, error) {
	v := newValidator()
	seen := map[string]bool{}
	for i, c := range columns {
		prefix := fmt.Sprintf("columns[%d].", i)
		v.required(prefix+"key", c.Key)
		v.required(prefix+"label", c.Label)
		v.check(!seen[c.Key], prefix+"key", "duplicate column key "+c.Key)
		seen[c.Key] = true
	}
	if err := v.err(); err != nil {
		return nil, err
	}

	out := renumberColumns(slices.Clone(columns))
	s.store.UpdateColumnConfig(out)
	s.record(ctx, "settings", "update", events.SettingsUpdated, "columns", actor, events.SettingsChange{Section: "columns"})
	return out, nil
}

// MovePhase 与相邻阶段交换位置；已在边界时不做修改
func (s *SettingsService) MovePhase(ctx context.Context, actor, id, direction string) ([]model.ProjectPhase, error) {
	out, changed, err := s.store.MutateProjectPhases(func(phases []model.ProjectPhase) ([]model.ProjectPhase, bool, error) {
		i := slices.IndexFunc(phases, func(p model.ProjectPhase) bool { return p.ID == id })
		if i < 0 {
			return nil, false, fmt.Errorf("phase %s: %w", id, store.ErrNotFound)
		}
		moved, changed, err := swapAdjacent(phases, i, direction)
		if err != nil || !changed {
			return nil, false, err
		}
		return renumberPhases(moved), true, nil
	})
	if err != nil {
		return nil, err
	}
	if changed {
		s.record(ctx, "settings", "update", events.SettingsUpdated, "phases", actor, events.SettingsChange{Section: "phases"})
	}
	return out, nil
}

// MoveColumn 与相邻列交换位置；已在边界时不做修改
func (s *SettingsService) MoveColumn(ctx context.Context, actor, key, direction string) ([]model.ColumnConfig, error) {
	out, changed, err := s.store.MutateColumnConfig(func(columns []model.ColumnConfig) ([]model.ColumnConfig, bool, error) {
		i, err := indexOfColumn(columns, key)
		if err != nil {
			return nil, false, err
		}
		moved, changed, err := swapAdjacent(columns, i, direction)
		if err != nil || !changed {
			return nil, false, err
		}
		return renumberColumns(moved), true, nil
	})
	if err != nil {
		return nil, err
	}
	if changed {
		s.record(ctx, "settings", "update", events.SettingsUpdated, "columns", actor, events.SettingsChange{Section: "columns"})
	}
	return out, nil
}

// ToggleColumn 切换列的可见性
func (s *SettingsService) ToggleColumn(ctx context.Context, actor, key string) ([]model.ColumnConfig, error) {
	out, _, err := s.store.MutateColumnConfig(func(columns []model.ColumnConfig) ([]model.ColumnConfig, bool, error) {
		i, err := indexOfColumn(columns, key)
		if err != nil {
			return nil, false, err
		}
		columns[i].Visible = !columns[i].Visible
		return columns, true, nil
	})
	if err != nil {
		return nil, err
	}
	s.record(ctx, "settings", "update", events.SettingsUpdated, "columns", actor, events.SettingsChange{Section: "columns"})
	return out, nil
}

// ReplaceFiscal 整体替换财年配置
func (s *SettingsService) ReplaceFiscal(ctx context.Context, actor string, cfg model.FiscalConfig) (model.FiscalConfig, error) {
	if err := fiscal.Validate(cfg); err != nil {
		return model.FiscalConfig{}, &ValidationError{Fields: map[string]string{"fiscal_config": err.Error()}}
	}
	s.store.UpdateFiscalConfig(cfg)
	s.recordFiscal(ctx, actor)
	return cfg, nil
}

// SetQuarterStart 修改季度开始日期，之后的季度依次顺延
func (s *SettingsService) SetQuarterStart(ctx context.Context, actor string, quarter int, start string) (model.FiscalConfig, error) {
	return s.mutateFiscal(ctx, actor, "start", func(cfg model.FiscalConfig) (model.FiscalConfig, error) {
		return fiscal.CascadeStart(cfg, quarter, start)
	})
}

// SetQuarterEnd 手动修改季度结束日期，不影响其他季度
func (s *SettingsService) SetQuarterEnd(ctx context.Context, actor string, quarter int, end string) (model.FiscalConfig, error) {
	return s.mutateFiscal(ctx, actor, "end", func(cfg model.FiscalConfig) (model.FiscalConfig, error) {
		return fiscal.SetEnd(cfg, quarter, end)
	})
}

// mutateFiscal 基于最新配置计算并写回，计算失败时报告在 field 上
func (s *SettingsService) mutateFiscal(ctx context.Context, actor, field string, apply func(model.FiscalConfig) (model.FiscalConfig, error)) (model.FiscalConfig, error) {
	cfg, err := s.store.MutateFiscalConfig(func(current model.FiscalConfig) (model.FiscalConfig, error) {
		next, err := apply(current)
		if err != nil {
			return current, &ValidationError{Fields: map[string]string{field: err.Error()}}
		}
		return next, nil
	})
	if err != nil {
		return model.FiscalConfig{}, err
	}
	s.recordFiscal(ctx, actor)
	return cfg, nil
}

func (s *SettingsService) recordFiscal(ctx context.Context, actor string) {
	s.record(ctx, "settings", "update", events.SettingsUpdated, "fiscal", actor, events.SettingsChange{Section: "fiscal"})
}

func indexOfColumn(columns []model.ColumnConfig, key string) (int, error) {
	i := slices.IndexFunc(columns, func(c model.ColumnConfig) bool { return c.Key == key })
	if i < 0 {
		return -1, fmt.Errorf("column %s: %w", key, store.ErrNotFound)
	}
	return i, nil
}

func swapAdjacent[T any](items []T, i int, direction string) ([]T, bool, error) {
	var target int
	switch strings.ToLower(direction) {
	case MoveUp:
		target = i - 1
	case MoveDown:
		target = i + 1
	default:
		return nil, false, &ValidationError{Fields: map[string]string{"direction": "must be up or down"}}
	}
	if target < 0 || target >= len(items) {
		return items, false, nil
	}
	items[i], items[target] = items[target], items[i]
	return items, true, nil
}

func renumberPhases(phases []model.ProjectPhase) []model.ProjectPhase {
	for i := range phases {
		phases[i].Order = i + 1
	}
	return phases
}

func renumberColumns(columns []model.ColumnConfig) []model.ColumnConfig {
	for i := range columns {
		columns[i].Order = i + 1
	}
	return columns
}
