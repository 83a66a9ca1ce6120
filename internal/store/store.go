package store

import (
	"errors"
	"sync"
	"time"

	"portfoliohub/internal/model"

	"github.com/google/uuid"
)

// ErrNotFound 目标记录不存在，集合保持不变
var ErrNotFound = errors.New("record not found")

// Store 内存中的权威数据集合。
// 所有读写都经过同一把锁，读操作返回深拷贝，调用方拿到的数据不会与存储共享内存。
type Store struct {
	mu sync.RWMutex

	projects    []model.Project
	users       []model.User
	departments []model.Department
	phases      []model.ProjectPhase
	columns     []model.ColumnConfig
	fiscal      model.FiscalConfig

	// owner -> project id
	selections map[string]string

	// 项目集合每次变化加一，用于汇总结果的缓存失效
	revision uint64

	now   func() time.Time
	newID func() string
}

type Option func(*Store)

// WithClock 替换时间来源（测试用）
func WithClock(now func() time.Time) Option {
	return func(s *Store) { s.now = now }
}

// WithIDGenerator 替换 id 生成方式（测试用）
func WithIDGenerator(newID func() string) Option {
	return func(s *Store) { s.newID = newID }
}

// WithSeed 使用初始数据填充集合
func WithSeed(seed Seed) Option {
	return func(s *Store) { s.load(seed) }
}

func New(opts ...Option) *Store {
	s := &Store{
		selections: make(map[string]string),
		now:        time.Now,
		newID:      uuid.NewString,
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.projects == nil {
		s.projects = []model.Project{}
	}
	if s.users == nil {
		s.users = []model.User{}
	}
	if s.departments == nil {
		s.departments = []model.Department{}
	}
	return s
}

// Revision 当前项目集合的版本号
func (s *Store) Revision() uint64 {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.revision
}

func (s *Store) load(seed Seed) {
	s.projects = make([]model.Project, 0, len(seed.Projects))
	for _, p := range seed.Projects {
		p = p.Clone()
		recomputeDerived(&p)
		s.projects = append(s.projects, p)
	}
	s.users = make([]model.User, 0, len(seed.Users))
	for _, u := range seed.Users {
		s.users = append(s.users, u.Clone())
	}
	s.departments = append([]model.Department{}, seed.Departments...)
	s.phases = append([]model.ProjectPhase{}, seed.ProjectPhases...)
	s.columns = append([]model.ColumnConfig{}, seed.ColumnConfig...)
	s.fiscal = seed.FiscalConfig
	s.revision++
}

func (s *Store) timestamp() time.Time {
	return s.now().UTC()
}
