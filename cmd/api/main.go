package main

import (
	"crypto/subtle"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/LJTian/RTVINews/internal/api"
	"github.com/LJTian/RTVINews/internal/collector"
	"github.com/LJTian/RTVINews/internal/config"
	"github.com/LJTian/RTVINews/internal/export"
	"github.com/LJTian/RTVINews/internal/logger"
	"github.com/LJTian/RTVINews/internal/processor"
	"github.com/LJTian/RTVINews/internal/render"
	"github.com/LJTian/RTVINews/internal/scheduler"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("load config failed: " + err.Error())
	}
	log := logger.New(cfg.LogLevel)

	fetcher := collector.NewArchiveFetcher(cfg.UserAgent, cfg.RequestTimeout, log)
	s := scheduler.New(
		fetcher,
		processor.NewSimpleProcessor(cfg.BaseURL),
		export.NewExporter(cfg.SheetName, log),
		render.NewDisplay(),
		cfg.DestinationPath,
		log,
	)

	// 配置了 CRON_SPEC 与 CRON_COUNT 时定期覆盖导出文件
	if cfg.ScheduleEnabled() {
		if err := s.Start(cfg.CronSpec, cfg.SourceURL, cfg.CronCount); err != nil {
			log.Fatal().Err(err).Msg("init scheduler failed")
		}
		defer s.Stop()
	}

	r := gin.Default()
	// 若配置了全局访问密码，则启用 Basic Auth 保护（/health 仍然免认证）
	if cfg.BasicAuthUser != "" && cfg.BasicAuthPass != "" {
		r.Use(basicAuthMiddleware(cfg.BasicAuthUser, cfg.BasicAuthPass))
	}

	api.NewServer(s, cfg.SourceURL, log).RegisterRoutes(r)

	addr := ":" + cfg.AppPort
	log.Info().Str("addr", addr).Str("source", cfg.SourceURL).Msg("starting api server")
	if err := r.Run(addr); err != nil {
		log.Fatal().Err(err).Msg("server exit")
	}
}

// basicAuthMiddleware 为整个站点增加一个简单的 Basic Auth 访问密码。
// /health 不做认证，便于健康检查。
func basicAuthMiddleware(user, pass string) gin.HandlerFunc {
	const realm = "Restricted"
	uBytes := []byte(user)
	pBytes := []byte(pass)

	return func(c *gin.Context) {
		if c.Request.URL.Path == "/health" {
			c.Next()
			return
		}
		u, p, ok := c.Request.BasicAuth()
		if !ok ||
			subtle.ConstantTimeCompare([]byte(u), uBytes) != 1 ||
			subtle.ConstantTimeCompare([]byte(p), pBytes) != 1 {
			c.Header("WWW-Authenticate", `Basic realm="`+realm+`"`)
			c.AbortWithStatus(http.StatusUnauthorized)
			return
		}
		c.Next()
	}
}
