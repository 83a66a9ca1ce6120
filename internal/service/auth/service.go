// Package auth 内置账号登录、token 签发校验和注销
package auth

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"portfoliohub/internal/model"
	"portfoliohub/internal/session"
	"portfoliohub/internal/store"
	"portfoliohub/pkg/logger"
	"portfoliohub/pkg/rbac"
	"portfoliohub/pkg/util"

	"go.uber.org/zap"
)

var (
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrTokenRevoked       = errors.New("token has been revoked")
	ErrUnknownAccount     = errors.New("account no longer exists")
)

type Config struct {
	JWTSecret    string
	TokenTTL     time.Duration
	DemoPassword string
}

type account struct {
	user         model.AuthUser
	passwordHash string
}

type Service struct {
	byEmail map[string]account
	byID    map[string]account

	jwtSecret string
	ttl       time.Duration
	revoker   session.Revoker
	store     *store.Store
	logger    *zap.Logger
	now       func() time.Time
}

// NewService 用演示目录初始化账号表，密码以 bcrypt 哈希保存
func NewService(cfg Config, users []model.AuthUser, st *store.Store, revoker session.Revoker, logger *zap.Logger) (*Service, error) {
	if cfg.JWTSecret == "" {
		return nil, errors.New("jwt secret is required")
	}
	hash, err := util.HashPassword(cfg.DemoPassword)
	if err != nil {
		return nil, fmt.Errorf("hash demo password: %w", err)
	}

	s := &Service{
		byEmail:   make(map[string]account, len(users)),
		byID:      make(map[string]account, len(users)),
		jwtSecret: cfg.JWTSecret,
		ttl:       cfg.TokenTTL,
		revoker:   revoker,
		store:     st,
		logger:    logger,
		now:       time.Now,
	}
	for _, u := range users {
		acc := account{user: u, passwordHash: hash}
		s.byEmail[normalizeEmail(u.Email)] = acc
		s.byID[u.ID] = acc
	}
	return s, nil
}

// Login checks credentials and returns a signed JWT with the user profile.
func (s *Service) Login(ctx context.Context, email, password string) (string, model.AuthUser, error) {
	log := logger.WithTrace(ctx, s.logger)

	acc, ok := s.byEmail[normalizeEmail(email)]
	if !ok || !util.CheckPassword(password, acc.passwordHash) {
		log.Info("Login rejected", zap.String("email", email))
		return "", model.AuthUser{}, ErrInvalidCredentials
	}

	token, _, err := util.GenerateJWT(acc.user.ID, string(acc.user.Role), s.jwtSecret, s.ttl)
	if err != nil {
		return "", model.AuthUser{}, fmt.Errorf("sign token: %w", err)
	}

	// 同邮箱的受管用户记录最近登录时间，没有对应记录时忽略
	if s.store != nil {
		if _, err := s.store.TouchLogin(acc.user.Email, s.now()); err != nil && !errors.Is(err, store.ErrNotFound) {
			log.Warn("Failed to record last login", zap.String("email", acc.user.Email), zap.Error(err))
		}
	}

	log.Info("User logged in", zap.String("user_id", acc.user.ID), zap.String("role", string(acc.user.Role)))
	return token, cloneUser(acc.user), nil
}

// Authenticate 校验 token 签名、有效期和吊销状态
func (s *Service) Authenticate(ctx context.Context, token string) (*util.Claims, error) {
	claims, err := util.ParseJWT(token, s.jwtSecret)
	if err != nil {
		return nil, err
	}
	if s.revoker != nil && s.revoker.IsRevoked(ctx, claims.ID) {
		return nil, ErrTokenRevoked
	}
	return claims, nil
}

// Logout 吊销 token 直到其过期
func (s *Service) Logout(ctx context.Context, claims *util.Claims) error {
	if s.revoker == nil || claims == nil {
		return nil
	}
	until := s.now().Add(util.DefaultTokenTTL)
	if claims.ExpiresAt != nil {
		until = claims.ExpiresAt.Time
	}
	if err := s.revoker.Revoke(ctx, claims.ID, until); err != nil {
		return err
	}
	logger.WithTrace(ctx, s.logger).Info("User logged out", zap.String("user_id", claims.UserID))
	return nil
}

// Me 返回 token 对应的账号信息
func (s *Service) Me(claims *util.Claims) (model.AuthUser, error) {
	acc, ok := s.byID[claims.UserID]
	if !ok {
		return model.AuthUser{}, ErrUnknownAccount
	}
	return cloneUser(acc.user), nil
}

// HasRole 检查 token 中的角色
func HasRole(claims *util.Claims, role model.Role) bool {
	return rbac.HasRole(claims.Role, string(role))
}

func cloneUser(u model.AuthUser) model.AuthUser {
	u.Permissions = append([]string(nil), u.Permissions...)
	return u
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
