package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config 全局配置
type Config struct {
	Server    ServerConfig    `mapstructure:"server"`
	Database  DatabaseConfig  `mapstructure:"database"`
	Session   SessionConfig   `mapstructure:"session"`
	Redis     RedisConfig     `mapstructure:"redis"`
	RateLimit RateLimitConfig `mapstructure:"ratelimit"`
	Log       LogConfig       `mapstructure:"log"`
}

// ServerConfig 服务配置
type ServerConfig struct {
	Name         string        `mapstructure:"name"`
	Host         string        `mapstructure:"host"`
	Port         int           `mapstructure:"port"`
	Mode         string        `mapstructure:"mode"` // debug, release, test
	ReadTimeout  time.Duration `mapstructure:"read_timeout"`
	WriteTimeout time.Duration `mapstructure:"write_timeout"`
}

// Addr 监听地址
func (c *ServerConfig) Addr() string {
	return fmt.Sprintf("%s:%d", c.Host, c.Port)
}

// DatabaseConfig 数据库配置
type DatabaseConfig struct {
	Driver          string `mapstructure:"driver"` // mysql, sqlite
	Host            string `mapstructure:"host"`
	Port            int    `mapstructure:"port"`
	Database        string `mapstructure:"database"`
	Username        string `mapstructure:"username"`
	Password        string `mapstructure:"password"`
	Charset         string `mapstructure:"charset"`
	Path            string `mapstructure:"path"` // sqlite 文件路径, ":memory:" 为内存库
	MaxIdleConns    int    `mapstructure:"max_idle_conns"`
	MaxOpenConns    int    `mapstructure:"max_open_conns"`
	ConnMaxLifetime int    `mapstructure:"conn_max_lifetime"` // 秒
	AutoMigrate     bool   `mapstructure:"auto_migrate"`
	LogLevel        string `mapstructure:"log_level"` // silent/error/warn/info
}

// SessionConfig 会话 cookie 与签名配置
type SessionConfig struct {
	Secret     string `mapstructure:"secret"`
	CookieName string `mapstructure:"cookie_name"`
	MaxAge     int    `mapstructure:"max_age"` // 秒
	Secure     bool   `mapstructure:"secure"`
}

// TTL 会话有效期
func (c *SessionConfig) TTL() time.Duration {
	return time.Duration(c.MaxAge) * time.Second
}

// RedisConfig 会话吊销表, 未启用时登出只清除 cookie
type RedisConfig struct {
	Enabled bool   `mapstructure:"enabled"`
	URL     string `mapstructure:"url"`
}

// RateLimitConfig 登录/注册限流
type RateLimitConfig struct {
	Enabled   bool `mapstructure:"enabled"`
	PerMinute int  `mapstructure:"per_minute"`
	Burst     int  `mapstructure:"burst"`
}

// LogConfig 日志配置
type LogConfig struct {
	Level    string `mapstructure:"level"`  // debug, info, warn, error
	Format   string `mapstructure:"format"` // json, console
	Output   string `mapstructure:"output"` // stdout, file
	FilePath string `mapstructure:"file_path"`
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("server.name", "taskboard")
	v.SetDefault("server.host", "0.0.0.0")
	v.SetDefault("server.port", 8080)
	v.SetDefault("server.mode", "release")
	v.SetDefault("server.read_timeout", 15*time.Second)
	v.SetDefault("server.write_timeout", 15*time.Second)

	v.SetDefault("database.driver", "sqlite")
	v.SetDefault("database.path", "taskboard.db")
	v.SetDefault("database.charset", "utf8mb4")
	v.SetDefault("database.port", 3306)
	v.SetDefault("database.max_idle_conns", 10)
	v.SetDefault("database.max_open_conns", 50)
	v.SetDefault("database.conn_max_lifetime", 3600)
	v.SetDefault("database.auto_migrate", true)
	v.SetDefault("database.log_level", "silent")

	v.SetDefault("session.secret", "")
	v.SetDefault("session.cookie_name", "session")
	v.SetDefault("session.max_age", 30*24*60*60)
	v.SetDefault("session.secure", false)

	v.SetDefault("redis.enabled", false)
	v.SetDefault("redis.url", "redis://localhost:6379/0")

	v.SetDefault("ratelimit.enabled", true)
	v.SetDefault("ratelimit.per_minute", 20)
	v.SetDefault("ratelimit.burst", 5)

	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "console")
	v.SetDefault("log.output", "stdout")
}

// Load 加载并校验配置
func Load(configPath string) (*Config, error) {
	config, err := Read(configPath)
	if err != nil {
		return nil, err
	}
	if err := config.Validate(); err != nil {
		return nil, err
	}
	return config, nil
}

// Read 只加载不校验, 供不需要会话配置的命令行工具使用.
// configPath 为空时按默认路径查找, 找不到文件则只使用默认值与环境变量.
func Read(configPath string) (*Config, error) {
	v := viper.New()
	setDefaults(v)

	if configPath != "" {
		v.SetConfigFile(configPath)
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		v.AddConfigPath("./configs")
		v.AddConfigPath(".")
	}

	// TASKBOARD_SESSION_SECRET 覆盖 session.secret
	v.SetEnvPrefix("taskboard")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if configPath != "" || !errors.As(err, &notFound) {
			return nil, fmt.Errorf("read config: %w", err)
		}
	}

	config := &Config{}
	if err := v.Unmarshal(config); err != nil {
		return nil, fmt.Errorf("decode config: %w", err)
	}
	return config, nil
}

// Validate 校验必填项
func (c *Config) Validate() error {
	if c.Session.Secret == "" {
		return errors.New("session.secret is required")
	}
	if c.Session.MaxAge <= 0 {
		return errors.New("session.max_age must be positive")
	}
	switch c.Database.Driver {
	case "mysql", "sqlite":
	default:
		return fmt.Errorf("unsupported database driver %q", c.Database.Driver)
	}
	return nil
}

// GetDSN 获取 MySQL DSN
func (c *DatabaseConfig) GetDSN() string {
	return fmt.Sprintf("%s:%s@tcp(%s:%d)/%s?charset=%s&parseTime=True&loc=Local",
		c.Username,
		c.Password,
		c.Host,
		c.Port,
		c.Database,
		c.Charset,
	)
}
