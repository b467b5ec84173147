package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/LJTian/RTVINews/internal/collector"
	"github.com/LJTian/RTVINews/internal/config"
	"github.com/LJTian/RTVINews/internal/export"
	"github.com/LJTian/RTVINews/internal/logger"
	"github.com/LJTian/RTVINews/internal/processor"
	"github.com/LJTian/RTVINews/internal/render"
	"github.com/LJTian/RTVINews/internal/scheduler"
)

// 执行一次抓取与导出的命令行入口，结果打印到标准输出
func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "load config failed: %v\n", err)
		os.Exit(1)
	}
	log := logger.New(cfg.LogLevel)

	var sourceURL, count string
	flag.StringVar(&sourceURL, "url", cfg.SourceURL, "news archive url")
	flag.StringVar(&count, "count", "", "number of news to fetch (1-10)")
	flag.Parse()

	fetcher := collector.NewArchiveFetcher(cfg.UserAgent, cfg.RequestTimeout, log)
	s := scheduler.New(
		fetcher,
		processor.NewSimpleProcessor(cfg.BaseURL),
		export.NewExporter(cfg.SheetName, log),
		render.NewDisplay(),
		cfg.DestinationPath,
		log,
	)

	res, err := s.Run(sourceURL, count)
	if err != nil {
		fmt.Println(s.Display().Text())
		if _, ok := scheduler.IsValidationError(err); ok {
			os.Exit(2)
		}
		os.Exit(1)
	}

	fmt.Print(res.Text)
	if res.ExportErr != nil {
		log.Error().Err(res.ExportErr).Msg("export failed")
		os.Exit(1)
	}
	log.Info().Str("path", res.ExportPath).Int("items", len(res.Items)).Msg("saved")
}
