package service

import (
	"fmt"
	"regexp"
	"slices"
	"strings"

	"portfoliohub/internal/fiscal"
)

// ValidationError 输入校验失败，Fields 为字段名到错误信息的映射
type ValidationError struct {
	Fields map[string]string
}

func (e *ValidationError) Error() string {
	keys := make([]string, 0, len(e.Fields))
	for k := range e.Fields {
		keys = append(keys, k)
	}
	slices.Sort(keys)

	parts := make([]string, 0, len(keys))
	for _, k := range keys {
		parts = append(parts, fmt.Sprintf("%s: %s", k, e.Fields[k]))
	}
	return "validation failed: " + strings.Join(parts, "; ")
}

var emailPattern = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

// validator 收集字段错误，同一字段只保留第一条
type validator struct {
	fields map[string]string
}

func newValidator() *validator {
	return &validator{fields: map[string]string{}}
}

func (v *validator) add(field, msg string) {
	if _, ok := v.fields[field]; !ok {
		v.fields[field] = msg
	}
}

func (v *validator) check(ok bool, field, msg string) {
	if !ok {
		v.add(field, msg)
	}
}

func (v *validator) required(field, value string) {
	v.check(strings.TrimSpace(value) != "", field, "is required")
}

// date 空字符串视为未填写
func (v *validator) date(field, value string) {
	if value == "" {
		return
	}
	if _, err := fiscal.ParseDate(value); err != nil {
		v.add(field, "must be a date in YYYY-MM-DD format")
	}
}

func (v *validator) err() error {
	if len(v.fields) == 0 {
		return nil
	}
	return &ValidationError{Fields: v.fields}
}
