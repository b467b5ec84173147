package collector

import (
	"fmt"
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// Selectors 描述归档页的 DOM 结构
type Selectors struct {
	Block string
	Title string
	Date  string
	Link  string
}

// DefaultSelectors 对应 rtvi.com/news/ 当前的页面结构
func DefaultSelectors() Selectors {
	return Selectors{
		Block: "div.arch-block",
		Title: "h2.arch-title",
		Date:  "div.date",
		Link:  "a[href]",
	}
}

// Extract 从 HTML 中按文档顺序取前 limit 个归档块并解析为新闻。
// 缺少标题、日期或链接的块会被跳过，但仍计入 limit。
func Extract(document string, limit int, sel Selectors) ([]News, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(document))
	if err != nil {
		return nil, fmt.Errorf("collector: parse html: %w", err)
	}

	results := make([]News, 0, max(limit, 0))
	if limit <= 0 {
		return results, nil
	}

	doc.Find(sel.Block).EachWithBreak(func(i int, block *goquery.Selection) bool {
		if i >= limit {
			return false
		}
		if item, ok := extractBlock(block, sel); ok {
			results = append(results, item)
		}
		return true
	})

	return results, nil
}

func extractBlock(block *goquery.Selection, sel Selectors) (News, bool) {
	titleSel := block.Find(sel.Title).First()
	if titleSel.Length() == 0 {
		return News{}, false
	}
	title := strings.TrimSpace(titleSel.Text())
	if title == "" {
		return News{}, false
	}

	dateSel := block.Find(sel.Date).First()
	if dateSel.Length() == 0 {
		return News{}, false
	}

	href, exists := block.Find(sel.Link).First().Attr("href")
	if !exists {
		return News{}, false
	}

	return News{
		Title:     title,
		Timestamp: strings.TrimSpace(dateSel.Text()),
		Link:      href,
	}, true
}
