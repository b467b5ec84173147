package render

import (
	"fmt"
	"strings"
	"sync"

	"github.com/LJTian/RTVINews/internal/collector"
)

// Render 每条新闻一段：序号. 时间 - 标题 (链接)，段与段之间空一行
func Render(items []collector.News) string {
	var b strings.Builder
	for i, it := range items {
		fmt.Fprintf(&b, "%d. %s - %s (%s)\n\n", i+1, it.Timestamp, it.Title, it.Link)
	}
	return b.String()
}

// Display 保存当前展示的文本，每次更新都整体替换
type Display struct {
	mu   sync.RWMutex
	text string
}

func NewDisplay() *Display {
	return &Display{}
}

func (d *Display) Show(items []collector.News) {
	d.Replace(Render(items))
}

func (d *Display) ShowError(err error) {
	d.Replace(err.Error())
}

func (d *Display) Replace(text string) {
	d.mu.Lock()
	d.text = text
	d.mu.Unlock()
}

func (d *Display) Text() string {
	d.mu.RLock()
	defer d.mu.RUnlock()
	return d.text
}
