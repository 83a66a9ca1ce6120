// Package fiscal 财年季度计算：季度级联、标签和日期归属
package fiscal

import (
	"errors"
	"fmt"
	"time"

	"portfoliohub/internal/model"
)

// DateLayout 配置和项目中使用的日期格式
const DateLayout = "2006-01-02"

var ErrInvalidQuarter = errors.New("quarter must be between 1 and 4")

// ParseDate 解析 YYYY-MM-DD，返回 UTC 零点
func ParseDate(s string) (time.Time, error) {
	t, err := time.ParseInLocation(DateLayout, s, time.UTC)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid date %q: expected YYYY-MM-DD", s)
	}
	return t, nil
}

func formatDate(t time.Time) string {
	return t.Format(DateLayout)
}

// quarterEnd 季度结束日：开始日加三个月再减一天
func quarterEnd(start time.Time) time.Time {
	return start.AddDate(0, 3, -1)
}

// CascadeStart 修改某季度的开始日期，并重新推算该季度及之后所有季度的起止日期。
// 之前的季度保持不变。
func CascadeStart(cfg model.FiscalConfig, quarter int, start string) (model.FiscalConfig, error) {
	if quarter < 1 || quarter > 4 {
		return cfg, ErrInvalidQuarter
	}
	begin, err := ParseDate(start)
	if err != nil {
		return cfg, err
	}

	out := cfg
	for q := quarter; q <= 4; q++ {
		end := quarterEnd(begin)
		out.Quarters.Set(q, model.QuarterRange{Start: formatDate(begin), End: formatDate(end)})
		begin = end.AddDate(0, 0, 1)
	}
	return out, nil
}

// SetEnd 手动修改季度结束日期，不级联
func SetEnd(cfg model.FiscalConfig, quarter int, end string) (model.FiscalConfig, error) {
	r, ok := cfg.Quarters.Get(quarter)
	if !ok {
		return cfg, ErrInvalidQuarter
	}
	if _, err := ParseDate(end); err != nil {
		return cfg, err
	}

	out := cfg
	r.End = end
	out.Quarters.Set(quarter, r)
	return out, nil
}

// Label 季度标签，例如 "Q2 2024"
func Label(quarter, year int) string {
	return fmt.Sprintf("Q%d %d", quarter, year)
}

func CurrentLabel(cfg model.FiscalConfig) string {
	return Label(cfg.CurrentQuarter, cfg.FiscalYear)
}

// QuarterOf 返回日期所属季度的标签。
// 落在配置的财年季度内时使用财年年份；否则退回到该日期所在年份的自然季度。
func QuarterOf(cfg model.FiscalConfig, date string) (string, error) {
	d, err := ParseDate(date)
	if err != nil {
		return "", err
	}

	for q := 1; q <= 4; q++ {
		r, _ := cfg.Quarters.Get(q)
		start, err := ParseDate(r.Start)
		if err != nil {
			continue
		}
		end, err := ParseDate(r.End)
		if err != nil {
			continue
		}
		if !d.Before(start) && !d.After(end) {
			return Label(q, cfg.FiscalYear), nil
		}
	}
	return Label((int(d.Month())-1)/3+1, d.Year()), nil
}

// Validate 检查当前季度范围和每个季度的日期
func Validate(cfg model.FiscalConfig) error {
	if cfg.CurrentQuarter < 1 || cfg.CurrentQuarter > 4 {
		return ErrInvalidQuarter
	}
	if cfg.FiscalYear <= 0 {
		return fmt.Errorf("invalid fiscal year %d", cfg.FiscalYear)
	}

	var errs []error
	for q := 1; q <= 4; q++ {
		r, _ := cfg.Quarters.Get(q)
		start, err := ParseDate(r.Start)
		if err != nil {
			errs = append(errs, fmt.Errorf("q%d start: %w", q, err))
			continue
		}
		end, err := ParseDate(r.End)
		if err != nil {
			errs = append(errs, fmt.Errorf("q%d end: %w", q, err))
			continue
		}
		if end.Before(start) {
			errs = append(errs, fmt.Errorf("q%d ends before it starts", q))
		}
	}
	return errors.Join(errs...)
}
