package processor

import (
	"net/url"
	"strings"

	"github.com/LJTian/RTVINews/internal/collector"
)

// SimpleProcessor 做最基础的数据清洗：去空白、按需补全相对链接。
// 不去重，保持原有顺序。
type SimpleProcessor struct {
	base *url.URL
}

// NewSimpleProcessor baseURL 为空时链接原样保留
func NewSimpleProcessor(baseURL string) *SimpleProcessor {
	p := &SimpleProcessor{}
	if baseURL == "" {
		return p
	}
	if u, err := url.Parse(baseURL); err == nil && u.IsAbs() {
		p.base = u
	}
	return p
}

func (p *SimpleProcessor) Process(items []collector.News) []collector.News {
	out := make([]collector.News, 0, len(items))
	for _, it := range items {
		out = append(out, collector.News{
			Title:     strings.TrimSpace(it.Title),
			Timestamp: strings.TrimSpace(it.Timestamp),
			Link:      p.resolve(strings.TrimSpace(it.Link)),
		})
	}
	return out
}

func (p *SimpleProcessor) resolve(link string) string {
	if p.base == nil || link == "" {
		return link
	}
	ref, err := url.Parse(link)
	if err != nil || ref.IsAbs() {
		return link
	}
	return p.base.ResolveReference(ref).String()
}
