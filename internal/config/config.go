package config

import (
	"fmt"
	"os"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	AppPort string

	// 全局访问密码，均为空时不启用
	BasicAuthUser string
	BasicAuthPass string

	// SourceURL 默认的新闻归档页
	SourceURL       string
	// DestinationPath 导出的 xlsx 文件，每次整体覆盖
	DestinationPath string
	SheetName       string
	// BaseURL 非空时用于把相对链接拼成绝对链接，为空则原样保留
	BaseURL         string

	UserAgent      string
	RequestTimeout time.Duration

	// CronSpec 与 CronCount 同时配置时，api 服务按计划自动导出
	CronSpec  string
	CronCount string

	LogLevel string
}

func Load() (*Config, error) {
	// .env 不存在时忽略
	_ = godotenv.Load()

	timeout, err := time.ParseDuration(getEnv("REQUEST_TIMEOUT", "10s"))
	if err != nil {
		return nil, fmt.Errorf("invalid REQUEST_TIMEOUT: %w", err)
	}

	cfg := &Config{
		AppPort:         getEnv("APP_PORT", "9000"),
		BasicAuthUser:   getEnv("APP_BASIC_USER", ""),
		BasicAuthPass:   getEnv("APP_BASIC_PASS", ""),
		SourceURL:       getEnv("SOURCE_URL", "https://rtvi.com/news/"),
		DestinationPath: getEnv("DESTINATION_PATH", "rtvi.xlsx"),
		SheetName:       getEnv("SHEET_NAME", "Новости"),
		BaseURL:         getEnv("BASE_URL", ""),
		UserAgent:       getEnv("USER_AGENT", "RTVINewsBot/1.0"),
		RequestTimeout:  timeout,
		CronSpec:        getEnv("CRON_SPEC", ""),
		CronCount:       getEnv("CRON_COUNT", ""),
		LogLevel:        getEnv("LOG_LEVEL", "info"),
	}
	return cfg, nil
}

// ScheduleEnabled 只有计划表达式和数量都配置了才启用定时导出
func (c *Config) ScheduleEnabled() bool {
	return c.CronSpec != "" && c.CronCount != ""
}

func getEnv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}
