package collector

import (
	"fmt"
	"time"

	"github.com/gocolly/colly/v2"
	"github.com/rs/zerolog"
)

const defaultRequestTimeout = 10 * time.Second

// ArchiveFetcher 通过一次 GET 抓取新闻归档页的第一页
type ArchiveFetcher struct {
	Selectors Selectors
	UserAgent string
	Timeout   time.Duration
	Logger    zerolog.Logger
}

// NewArchiveFetcher 使用 RTVI 默认选择器
func NewArchiveFetcher(userAgent string, timeout time.Duration, logger zerolog.Logger) *ArchiveFetcher {
	return &ArchiveFetcher{
		Selectors: DefaultSelectors(),
		UserAgent: userAgent,
		Timeout:   timeout,
		Logger:    logger,
	}
}

func (a *ArchiveFetcher) Name() string {
	return "rtvi_archive"
}

func (a *ArchiveFetcher) Fetch(url string, limit int) ([]News, error) {
	a.Logger.Info().Str("url", url).Int("limit", limit).Msg("fetch news archive")

	body, err := a.download(url)
	if err != nil {
		a.Logger.Error().Err(err).Str("url", url).Msg("fetch news archive failed")
		return nil, err
	}

	items, err := Extract(body, limit, a.Selectors)
	if err != nil {
		return nil, err
	}
	if len(items) == 0 {
		a.Logger.Warn().Str("url", url).Msg("news archive got 0 items")
	}
	return items, nil
}

func (a *ArchiveFetcher) download(url string) (string, error) {
	opts := []colly.CollectorOption{}
	if a.UserAgent != "" {
		opts = append(opts, colly.UserAgent(a.UserAgent))
	}
	c := colly.NewCollector(opts...)

	timeout := a.Timeout
	if timeout <= 0 {
		timeout = defaultRequestTimeout
	}
	c.SetRequestTimeout(timeout)

	var body []byte
	c.OnResponse(func(r *colly.Response) {
		body = r.Body
	})

	// 非 2xx 状态码由 colly 直接返回错误
	if err := c.Visit(url); err != nil {
		return "", fmt.Errorf("collector: fetch %s: %w", url, err)
	}
	c.Wait()

	return string(body), nil
}
