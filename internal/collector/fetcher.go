package collector

// News 归档页中的一条新闻
type News struct {
	Title     string `json:"title"`
	Timestamp string `json:"timestamp"` // 站点原始格式，不做解析
	Link      string `json:"link"`
}

// Fetcher 抽象新闻归档页数据源
type Fetcher interface {
	Name() string
	Fetch(url string, limit int) ([]News, error)
}
