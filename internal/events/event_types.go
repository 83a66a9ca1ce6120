package events

import "time"

// 路由键
const (
	ProjectCreated = "project.created"
	ProjectUpdated = "project.updated"
	ProjectDeleted = "project.deleted"

	UserCreated       = "user.created"
	UserUpdated       = "user.updated"
	UserDeleted       = "user.deleted"
	UserPasswordReset = "user.password_reset"

	DepartmentCreated = "department.created"
	DepartmentUpdated = "department.updated"
	DepartmentDeleted = "department.deleted"

	SettingsUpdated = "settings.updated"
)

// Event 发布到 events exchange 的通用消息体
type Event struct {
	Type       string    `json:"type"`
	EntityID   string    `json:"entity_id,omitempty"`
	Actor      string    `json:"actor,omitempty"`
	TraceID    string    `json:"trace_id,omitempty"`
	OccurredAt time.Time `json:"occurred_at"`
	Data       any       `json:"data,omitempty"`
}

// SettingsChange settings.updated 的 payload
type SettingsChange struct {
	Section string `json:"section"` // phases, columns, fiscal
}
