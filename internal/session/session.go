// Package session 管理已注销 token 的吊销记录，按 jti 保存到 token 过期为止
package session

import (
	"context"
	"sync"
	"time"
)

// Revoker 记录并查询被吊销的 token
type Revoker interface {
	Revoke(ctx context.Context, jti string, until time.Time) error
	IsRevoked(ctx context.Context, jti string) bool
}

// MemoryRevoker 单进程内的吊销表，未配置 Redis 时使用
type MemoryRevoker struct {
	mu      sync.Mutex
	revoked map[string]time.Time
	now     func() time.Time
}

func NewMemoryRevoker() *MemoryRevoker {
	return &MemoryRevoker{
		revoked: make(map[string]time.Time),
		now:     time.Now,
	}
}

func (m *MemoryRevoker) Revoke(_ context.Context, jti string, until time.Time) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.purge()
	if until.After(m.now()) {
		m.revoked[jti] = until
	}
	return nil
}

func (m *MemoryRevoker) IsRevoked(_ context.Context, jti string) bool {
	m.mu.Lock()
	defer m.mu.Unlock()

	until, ok := m.revoked[jti]
	return ok && until.After(m.now())
}

// purge 清理已过期的记录
func (m *MemoryRevoker) purge() {
	now := m.now()
	for jti, until := range m.revoked {
		if !until.After(now) {
			delete(m.revoked, jti)
		}
	}
}
