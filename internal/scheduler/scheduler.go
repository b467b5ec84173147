package scheduler

import (
	"errors"
	"fmt"
	"sync"

	"github.com/robfig/cron/v3"
	"github.com/rs/zerolog"

	"github.com/LJTian/RTVINews/internal/collector"
	"github.com/LJTian/RTVINews/internal/export"
	"github.com/LJTian/RTVINews/internal/processor"
	"github.com/LJTian/RTVINews/internal/render"
	"github.com/LJTian/RTVINews/internal/validator"
)

// Result 一次操作的产物：展示文本和导出结果相互独立
type Result struct {
	Items      []collector.News
	Text       string
	ExportPath string
	// ExportErr 导出失败时不回滚已更新的展示
	ExportErr error
}

type Scheduler struct {
	cron      *cron.Cron
	fetcher   collector.Fetcher
	processor *processor.SimpleProcessor
	exporter  *export.Exporter
	display   *render.Display
	dest      string
	logger    zerolog.Logger

	// 同一时间只允许一次操作
	mu sync.Mutex
}

func New(f collector.Fetcher, p *processor.SimpleProcessor, e *export.Exporter, d *render.Display, dest string, logger zerolog.Logger) *Scheduler {
	if d == nil {
		d = render.NewDisplay()
	}
	return &Scheduler{
		cron:      cron.New(),
		fetcher:   f,
		processor: p,
		exporter:  e,
		display:   d,
		dest:      dest,
		logger:    logger,
	}
}

func (s *Scheduler) Display() *render.Display {
	return s.display
}

func (s *Scheduler) Destination() string {
	return s.dest
}

// Run 校验数量 -> 抓取解析 -> 展示 -> 导出。
// 校验失败时不会发起网络请求，也不会写文件。
func (s *Scheduler) Run(sourceURL, rawCount string) (*Result, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	limit, err := validator.ValidateCount(rawCount)
	if err != nil {
		s.display.ShowError(err)
		s.logger.Warn().Str("count", rawCount).Err(err).Msg("invalid news count")
		return nil, err
	}

	items, err := s.fetcher.Fetch(sourceURL, limit)
	if err != nil {
		s.display.Replace(fmt.Sprintf("Ошибка загрузки: %v", err))
		return nil, err
	}
	items = s.processor.Process(items)

	res := &Result{Items: items, ExportPath: s.dest}
	s.display.Show(items)
	res.Text = s.display.Text()

	if err := s.exporter.Export(items, s.dest); err != nil {
		s.logger.Error().Err(err).Str("path", s.dest).Msg("export failed")
		res.ExportErr = err
	}

	s.logger.Info().
		Str("source", s.fetcher.Name()).
		Int("fetched", len(items)).
		Bool("exported", res.ExportErr == nil).
		Msg("collect job done")
	return res, nil
}

// Start 按 cron 表达式定时执行 Run，用于无人值守的定期导出
func (s *Scheduler) Start(spec, sourceURL, rawCount string) error {
	if _, err := validator.ValidateCount(rawCount); err != nil {
		return fmt.Errorf("scheduler: invalid count %q: %w", rawCount, err)
	}
	if _, err := s.cron.AddFunc(spec, func() {
		if _, err := s.Run(sourceURL, rawCount); err != nil {
			s.logger.Error().Err(err).Msg("scheduled collect failed")
		}
	}); err != nil {
		return fmt.Errorf("scheduler: add cron %q: %w", spec, err)
	}
	s.cron.Start()
	s.logger.Info().Str("spec", spec).Msg("scheduled export started")
	return nil
}

func (s *Scheduler) Stop() {
	<-s.cron.Stop().Done()
}

// IsValidationError 区分输入错误与抓取错误
func IsValidationError(err error) (*validator.ValidationError, bool) {
	var ve *validator.ValidationError
	if errors.As(err, &ve) {
		return ve, true
	}
	return nil, false
}
