package api

import (
	"net/http"
	"os"
	"path/filepath"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/LJTian/RTVINews/internal/scheduler"
)

type Server struct {
	scheduler *scheduler.Scheduler
	sourceURL string
	logger    zerolog.Logger
}

func NewServer(s *scheduler.Scheduler, sourceURL string, logger zerolog.Logger) *Server {
	return &Server{scheduler: s, sourceURL: sourceURL, logger: logger}
}

func (s *Server) RegisterRoutes(r *gin.Engine) {
	r.GET("/health", s.health)
	r.GET("/", s.display)

	v1 := r.Group("/api/v1")
	{
		v1.POST("/news", s.collectNews)
		v1.GET("/export", s.downloadExport)
	}
}

func (s *Server) health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

// display 返回当前展示的文本，等同于原来窗口里的文本框
func (s *Server) display(c *gin.Context) {
	c.String(http.StatusOK, s.scheduler.Display().Text())
}

type collectRequest struct {
	URL   string `json:"url"`
	Count string `json:"count"`
}

func (s *Server) collectNews(c *gin.Context) {
	var req collectRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"code":    "invalid_request",
			"message": "invalid json",
		})
		return
	}

	url := strings.TrimSpace(req.URL)
	if url == "" {
		url = s.sourceURL
	}

	res, err := s.scheduler.Run(url, req.Count)
	if err != nil {
		if ve, ok := scheduler.IsValidationError(err); ok {
			c.JSON(http.StatusBadRequest, gin.H{
				"code":    ve.Code(),
				"message": ve.Error(),
			})
			return
		}
		s.logger.Error().Err(err).Str("url", url).Msg("collect news failed")
		c.JSON(http.StatusBadGateway, gin.H{
			"code":    "fetch_failed",
			"message": err.Error(),
		})
		return
	}

	data := gin.H{
		"items":      res.Items,
		"text":       res.Text,
		"exportPath": res.ExportPath,
	}
	if res.ExportErr != nil {
		c.JSON(http.StatusOK, gin.H{
			"code":    "export_failed",
			"message": res.ExportErr.Error(),
			"data":    data,
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"code":    "ok",
		"message": "success",
		"data":    data,
	})
}

func (s *Server) downloadExport(c *gin.Context) {
	dest := s.scheduler.Destination()
	if _, err := os.Stat(dest); err != nil {
		c.JSON(http.StatusNotFound, gin.H{
			"code":    "not_found",
			"message": "no export yet",
		})
		return
	}
	c.FileAttachment(dest, filepath.Base(dest))
}
