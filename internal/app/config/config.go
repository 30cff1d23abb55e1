package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config 应用配置
type Config struct {
	App    AppConfig    `mapstructure:"app"`
	Server ServerConfig `mapstructure:"server"`
	MySQL  MySQLConfig  `mapstructure:"mysql"`
	Redis  RedisConfig  `mapstructure:"redis"`
	Lmstfy LmstfyConfig `mapstructure:"lmstfy"`
	Notify NotifyConfig `mapstructure:"notify"`
}

type AppConfig struct {
	Name      string `mapstructure:"name"`
	Env       string `mapstructure:"env"`
	LogLevel  string `mapstructure:"log_level"`
	MachineID int64  `mapstructure:"machine_id"`
}

type ServerConfig struct {
	Port string `mapstructure:"port"`
}

type MySQLConfig struct {
	DSN         string `mapstructure:"dsn"`
	AutoMigrate bool   `mapstructure:"auto_migrate"`
}

type RedisConfig struct {
	Addr          string `mapstructure:"addr"`
	Password      string `mapstructure:"password"`
	DB            int    `mapstructure:"db"`
	StatusChannel string `mapstructure:"status_channel"`
}

type LmstfyConfig struct {
	Host      string `mapstructure:"host"`
	Port      int    `mapstructure:"port"`
	Namespace string `mapstructure:"namespace"`
	Token     string `mapstructure:"token"`
}

// NotifyConfig 用户状态通知队列
type NotifyConfig struct {
	Queue        string        `mapstructure:"queue"`
	TTL          uint32        `mapstructure:"ttl"`   // 消息存活时间（秒）
	Tries        uint16        `mapstructure:"tries"` // 最大投递次数
	Timeout      time.Duration `mapstructure:"timeout"`
	TTR          time.Duration `mapstructure:"ttr"`
	PollInterval time.Duration `mapstructure:"poll_interval"`
}

// Load 从配置文件加载配置，STOREFRONT_ 前缀的环境变量可覆盖同名配置
func Load(configPath string) (*Config, error) {
	v := viper.New()
	v.SetConfigFile(configPath)
	v.SetConfigType("yaml")
	v.SetEnvPrefix("storefront")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	setDefaults(v)

	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("read config failed: %w", err)
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unmarshal config failed: %w", err)
	}

	return &cfg, nil
}

// LoadDefault 加载默认配置文件路径
func LoadDefault() (*Config, error) {
	return Load("config/config.yaml")
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("app.name", "storefront")
	v.SetDefault("app.log_level", "info")
	v.SetDefault("app.machine_id", 1)
	v.SetDefault("server.port", "8080")
	v.SetDefault("redis.status_channel", "order:status")
	v.SetDefault("notify.queue", "order_status_notify")
	v.SetDefault("notify.ttl", 86400)
	v.SetDefault("notify.tries", 3)
	v.SetDefault("notify.timeout", "3s")
	v.SetDefault("notify.ttr", "30s")
	v.SetDefault("notify.poll_interval", "1s")
}

// Validate 验证配置完整性
func (c *Config) Validate() error {
	if c.MySQL.DSN == "" {
		return fmt.Errorf("mysql dsn is required")
	}
	if c.Redis.Addr == "" {
		return fmt.Errorf("redis addr is required")
	}
	if c.Lmstfy.Host == "" {
		return fmt.Errorf("lmstfy host is required")
	}
	if c.Lmstfy.Token == "" {
		return fmt.Errorf("lmstfy token is required")
	}
	if c.Notify.Queue == "" {
		return fmt.Errorf("notify queue is required")
	}
	return nil
}
