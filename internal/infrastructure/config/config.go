package config

import (
	"fmt"
	"net/url"
	"time"

	"github.com/spf13/viper"
)

// Config 全局配置结构
// 设计说明：使用Viper管理配置，支持YAML文件、环境变量覆盖
type Config struct {
	Server    ServerConfig    `mapstructure:"server"`
	Database  DatabaseConfig  `mapstructure:"database"`
	Redis     RedisConfig     `mapstructure:"redis"`
	Mail      MailConfig      `mapstructure:"mail"`
	Scheduler SchedulerConfig `mapstructure:"scheduler"`
	Log       LogConfig       `mapstructure:"log"`
}

type ServerConfig struct {
	Port         int           `mapstructure:"port"`
	Mode         string        `mapstructure:"mode"` // debug | release | test
	ReadTimeout  time.Duration `mapstructure:"read_timeout"`
	WriteTimeout time.Duration `mapstructure:"write_timeout"`
}

type DatabaseConfig struct {
	Host            string        `mapstructure:"host"`
	Port            int           `mapstructure:"port"`
	User            string        `mapstructure:"user"`
	Password        string        `mapstructure:"password"`
	DBName          string        `mapstructure:"dbname"`
	Charset         string        `mapstructure:"charset"`
	ParseTime       bool          `mapstructure:"parse_time"`
	Loc             string        `mapstructure:"loc"`
	MaxOpenConns    int           `mapstructure:"max_open_conns"`
	MaxIdleConns    int           `mapstructure:"max_idle_conns"`
	ConnMaxLifetime time.Duration `mapstructure:"conn_max_lifetime"`
}

// DSN 生成MySQL连接字符串
// 格式：user:password@tcp(host:port)/dbname?charset=utf8mb4&parseTime=True&loc=Local
// 注意：loc参数需要URL编码（Asia/Shanghai → Asia%2FShanghai）
func (d DatabaseConfig) DSN() string {
	loc := url.QueryEscape(d.Loc)
	return fmt.Sprintf("%s:%s@tcp(%s:%d)/%s?charset=%s&parseTime=%t&loc=%s",
		d.User, d.Password, d.Host, d.Port, d.DBName, d.Charset, d.ParseTime, loc)
}

type RedisConfig struct {
	Host          string        `mapstructure:"host"`
	Port          int           `mapstructure:"port"`
	Password      string        `mapstructure:"password"`
	DB            int           `mapstructure:"db"`
	PoolSize      int           `mapstructure:"pool_size"`
	MinIdleConns  int           `mapstructure:"min_idle_conns"`
	DialTimeout   time.Duration `mapstructure:"dial_timeout"`
	ReadTimeout   time.Duration `mapstructure:"read_timeout"`
	WriteTimeout  time.Duration `mapstructure:"write_timeout"`
	BookDetailTTL time.Duration `mapstructure:"book_detail_ttl"` // 图书详情缓存TTL
}

// Addr 返回Redis地址
func (r RedisConfig) Addr() string {
	return fmt.Sprintf("%s:%d", r.Host, r.Port)
}

// MailConfig 邮件服务配置（SMTP）
// 用于逾期借阅提醒邮件发送
type MailConfig struct {
	Host     string `mapstructure:"host"`
	Port     int    `mapstructure:"port"`
	Username string `mapstructure:"username"`
	Password string `mapstructure:"password"`
	From     string `mapstructure:"from"`    // 发件人地址
	Subject  string `mapstructure:"subject"` // 逾期提醒邮件主题
	Message  string `mapstructure:"message"` // 逾期提醒邮件正文
}

// SchedulerConfig 定时任务配置
// OverdueCron使用标准5段cron表达式，默认每天0点执行一次逾期检查
type SchedulerConfig struct {
	OverdueCron string `mapstructure:"overdue_cron"` // 逾期检查cron表达式
	GraceDays   int    `mapstructure:"grace_days"`   // 借阅宽限天数
}

type LogConfig struct {
	Level        string `mapstructure:"level"`  // debug | info | warn | error
	Format       string `mapstructure:"format"` // console | json
	Output       string `mapstructure:"output"` // stdout | stderr | /path/to/file
	EnableCaller bool   `mapstructure:"enable_caller"`
}

// Load 加载配置文件
// 支持：
// 1. 默认加载config/config.yaml
// 2. 通过环境变量LIBRARY_ENV指定环境（如config.prod.yaml）
// 3. 环境变量覆盖（如LIBRARY_DATABASE_PASSWORD）
func Load() (*Config, error) {
	v := viper.New()

	// 设置配置文件路径
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath("./config")
	v.AddConfigPath(".")

	// 环境特定配置（如config.prod.yaml）
	if env := viper.GetString("env"); env != "" {
		v.SetConfigName("config." + env)
	}

	// 默认值
	setDefaults(v)

	// 读取配置文件
	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("读取配置文件失败: %w", err)
	}

	// 环境变量绑定（自动转换，如LIBRARY_DATABASE_PASSWORD → database.password）
	v.SetEnvPrefix("LIBRARY")
	v.AutomaticEnv()

	// 解析到结构体
	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("解析配置失败: %w", err)
	}

	// 配置验证
	if err := validate(&cfg); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// setDefaults 设置配置默认值
// 宽限天数默认4天，与逾期判定规则保持一致
func setDefaults(v *viper.Viper) {
	v.SetDefault("scheduler.overdue_cron", "0 0 * * *") // 每天0点
	v.SetDefault("scheduler.grace_days", 4)
	v.SetDefault("mail.subject", "图书逾期提醒")
	v.SetDefault("mail.message", "您借阅的图书已逾期，请尽快归还！")
	v.SetDefault("redis.book_detail_ttl", time.Hour)
}

// validate 配置校验
func validate(cfg *Config) error {
	if cfg.Server.Port <= 0 || cfg.Server.Port > 65535 {
		return fmt.Errorf("无效的服务端口: %d", cfg.Server.Port)
	}

	if cfg.Scheduler.GraceDays < 0 {
		return fmt.Errorf("无效的借阅宽限天数: %d", cfg.Scheduler.GraceDays)
	}

	if cfg.Mail.Host != "" && cfg.Mail.From == "" {
		return fmt.Errorf("配置了邮件服务但未配置发件人地址")
	}

	return nil
}
