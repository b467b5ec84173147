package logger

import (
	"os"
	"strings"

	"github.com/rs/zerolog"
)

// New 创建控制台输出的 zerolog 日志器
func New(level string) zerolog.Logger {
	zerolog.SetGlobalLevel(parseLevel(level))

	return zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr}).
		With().
		Timestamp().
		Logger()
}

func parseLevel(level string) zerolog.Level {
	switch strings.ToLower(strings.TrimSpace(level)) {
	case "debug":
		return zerolog.DebugLevel
	case "warn", "warning":
		return zerolog.WarnLevel
	case "error":
		return zerolog.ErrorLevel
	default:
		return zerolog.InfoLevel
	}
}
