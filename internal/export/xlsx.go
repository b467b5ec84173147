package export

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/rs/zerolog"
	"github.com/xuri/excelize/v2"

	"github.com/LJTian/RTVINews/internal/collector"
)

const (
	DefaultSheetName = "Новости"
	DefaultPath      = "rtvi.xlsx"
)

// Headers 表头固定为三列
var Headers = []string{"Заголовок", "Дата и время", "Ссылка"}

// 列宽：标题 / 时间 / 链接
var columnWidths = []struct {
	col   string
	width float64
}{
	{"A", 105},
	{"B", 20},
	{"C", 125},
}

// Exporter 把新闻写入带格式的 xlsx 文件
type Exporter struct {
	SheetName string
	Logger    zerolog.Logger
}

func NewExporter(sheetName string, logger zerolog.Logger) *Exporter {
	if sheetName == "" {
		sheetName = DefaultSheetName
	}
	return &Exporter{SheetName: sheetName, Logger: logger}
}

// Export 整体覆盖 dest：先写同目录临时文件再 rename，失败时不会留下半个文件
func (e *Exporter) Export(items []collector.News, dest string) error {
	if dest == "" {
		dest = DefaultPath
	}

	f, err := e.build(items)
	if err != nil {
		return fmt.Errorf("export: build %s: %w", dest, err)
	}
	defer f.Close()

	tmp, err := os.CreateTemp(filepath.Dir(dest), ".export-*.xlsx")
	if err != nil {
		return fmt.Errorf("export: create temp file for %s: %w", dest, err)
	}
	tmpName := tmp.Name()

	if err := f.Write(tmp); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return fmt.Errorf("export: write %s: %w", dest, err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("export: close %s: %w", dest, err)
	}
	if err := os.Chmod(tmpName, 0o644); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("export: chmod %s: %w", dest, err)
	}
	if err := os.Rename(tmpName, dest); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("export: replace %s: %w", dest, err)
	}

	e.Logger.Info().Str("path", dest).Int("rows", len(items)).Msg("export done")
	return nil
}

func (e *Exporter) build(items []collector.News) (*excelize.File, error) {
	f := excelize.NewFile()
	sheet := e.SheetName
	if sheet == "" {
		sheet = DefaultSheetName
	}
	if err := f.SetSheetName(f.GetSheetName(0), sheet); err != nil {
		f.Close()
		return nil, err
	}

	if err := writeHeader(f, sheet); err != nil {
		f.Close()
		return nil, err
	}
	if err := writeRows(f, sheet, items); err != nil {
		f.Close()
		return nil, err
	}

	for _, cw := range columnWidths {
		if err := f.SetColWidth(sheet, cw.col, cw.col, cw.width); err != nil {
			f.Close()
			return nil, err
		}
	}
	return f, nil
}

func writeHeader(f *excelize.File, sheet string) error {
	style, err := f.NewStyle(&excelize.Style{
		Font:      &excelize.Font{Bold: true},
		Alignment: &excelize.Alignment{Horizontal: "center", Vertical: "center"},
	})
	if err != nil {
		return err
	}

	for i, h := range Headers {
		cell, err := excelize.CoordinatesToCellName(i+1, 1)
		if err != nil {
			return err
		}
		if err := f.SetCellValue(sheet, cell, h); err != nil {
			return err
		}
		if err := f.SetCellStyle(sheet, cell, cell, style); err != nil {
			return err
		}
	}
	return nil
}

func writeRows(f *excelize.File, sheet string, items []collector.News) error {
	linkStyle, err := f.NewStyle(&excelize.Style{
		Font:      &excelize.Font{Color: "0000FF", Underline: "single"},
		Alignment: &excelize.Alignment{Horizontal: "left", Vertical: "center"},
	})
	if err != nil {
		return err
	}

	for i, it := range items {
		row := i + 2
		if err := f.SetSheetRow(sheet, fmt.Sprintf("A%d", row), &[]any{it.Title, it.Timestamp, it.Link}); err != nil {
			return err
		}

		linkCell := fmt.Sprintf("C%d", row)
		if err := f.SetCellStyle(sheet, linkCell, linkCell, linkStyle); err != nil {
			return err
		}
		// 空链接只写文本
		if it.Link == "" {
			continue
		}
		if err := f.SetCellHyperLink(sheet, linkCell, it.Link, "External"); err != nil {
			return err
		}
	}
	return nil
}
