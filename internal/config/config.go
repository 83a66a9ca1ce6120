package config

import (
	"fmt"
	"strings"
	"time"

	"portfoliohub/pkg/config"
)

type Config struct {
	Server config.ServerConfig `yaml:"server"`
	JWT    config.JWTConfig    `yaml:"jwt"`
	Auth   config.AuthConfig   `yaml:"auth"`
	MQ     config.MQConfig     `yaml:"mq"`
	Redis  config.RedisConfig  `yaml:"redis"`
	Log    config.LogConfig    `yaml:"log"`
	Seed   struct {
		Demo bool `yaml:"demo"`
	} `yaml:"seed"`
}

// Load 使用 CONFIG_ENV / CONFIG_DIR 指定的配置目录
func Load() (*Config, error) {
	return LoadFrom(config.GetConfigEnv(), config.GetConfigDir())
}

// LoadFrom 合并 base.yaml 与环境配置，再用环境变量覆盖（优先级最高）
func LoadFrom(env, dir string) (*Config, error) {
	tree, err := config.LoadConfig(env, dir)
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}

	cfg := defaults()
	if err := config.Decode(tree, cfg); err != nil {
		return nil, fmt.Errorf("failed to decode config: %w", err)
	}

	config.OverrideServerFromEnv(&cfg.Server)
	config.OverrideJWTFromEnv(&cfg.JWT)
	config.OverrideAuthFromEnv(&cfg.Auth)
	config.OverrideMQFromEnv(&cfg.MQ)
	config.OverrideRedisFromEnv(&cfg.Redis)

	// 未解析的占位符视为未配置
	if cfg.JWT.Secret == "" || strings.Contains(cfg.JWT.Secret, "${") {
		return nil, fmt.Errorf("jwt.secret is required")
	}
	return cfg, nil
}

func defaults() *Config {
	cfg := &Config{}
	cfg.Server.Port = ":8080"
	cfg.Server.ShutdownTimeout = 30 * time.Second
	cfg.JWT.TTL = 24 * time.Hour
	cfg.Auth.DemoPassword = "password"
	cfg.Seed.Demo = true
	return cfg
}
