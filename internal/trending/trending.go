// Package trending 采集各平台热榜，为内容创作提供选题。
// 百度、头条、B站的公开榜单接口都不需要 API Key。
package trending

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/jogholy/xhs-publisher/internal/config"
	"github.com/jogholy/xhs-publisher/internal/utils"

	"github.com/imroc/req/v3"
	"github.com/tidwall/gjson"
)

const (
	baiduURL    = "https://top.baidu.com/api/board?platform=wise&tab=realtime"
	toutiaoURL  = "https://www.toutiao.com/hot-event/hot-board/?origin=toutiao_pc"
	bilibiliURL = "https://app.bilibili.com/x/v2/search/trending/ranking"

	fetchUA      = "Mozilla/5.0 (X11; Linux x86_64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/131.0.0.0 Safari/537.36"
	fetchTimeout = 15 * time.Second
	cacheTTL     = 5 * time.Minute
)

// Item 一条热榜条目
type Item struct {
	Rank  int    `json:"rank"`
	Title string `json:"title"`
	URL   string `json:"url,omitempty"`
	Hot   string `json:"hot,omitempty"`
	IsTop bool   `json:"is_top,omitempty"`
}

// Board 单个数据源的榜单
type Board struct {
	Source    string `json:"source"`
	Name      string `json:"name"`
	Emoji     string `json:"emoji"`
	Items     []Item `json:"items"`
	Total     int    `json:"total"`
	Error     string `json:"error,omitempty"`
	FetchedAt string `json:"fetched_at"`
}

// Topic 去重后的热门话题
type Topic struct {
	Title  string `json:"title"`
	Source string `json:"source"`
	Rank   int    `json:"rank"`
}

type sourceInfo struct {
	name  string
	emoji string
	fetch func(*Client) ([]Item, error)
}

// 数据源顺序固定，聚合去重时百度优先
var sourceOrder = []string{"baidu", "toutiao", "bilibili"}

var sources = map[string]sourceInfo{
	"baidu":    {name: "百度热搜", emoji: "🔍", fetch: (*Client).fetchBaidu},
	"toutiao":  {name: "头条热榜", emoji: "📰", fetch: (*Client).fetchToutiao},
	"bilibili": {name: "B站热搜", emoji: "📺", fetch: (*Client).fetchBilibili},
}

// Sources 返回支持的数据源列表
func Sources() []string {
	return sourceOrder
}

// SourceName 返回数据源展示名
func SourceName(key string) string {
	if info, ok := sources[key]; ok {
		return fmt.Sprintf("%s %s", info.emoji, info.name)
	}
	return key
}

// Client 热榜采集客户端
type Client struct {
	http     *req.Client
	cacheDir string
}

// NewClient 创建采集客户端，缓存写在内容目录下
func NewClient() *Client {
	cacheDir := filepath.Join(config.Config.ContentPath, "trending")
	_ = os.MkdirAll(cacheDir, 0755)
	return &Client{
		http: req.C().
			SetCommonHeader("User-Agent", fetchUA).
			SetTimeout(fetchTimeout),
		cacheDir: cacheDir,
	}
}

// Fetch 采集指定数据源，sources 为空时采集全部
// 单源失败不影响其他源，错误记录在对应 Board 上
func (c *Client) Fetch(names []string, limit int) []Board {
	if len(names) == 0 {
		names = sourceOrder
	}

	boards := make([]Board, 0, len(names))
	for _, key := range names {
		info, ok := sources[key]
		if !ok {
			boards = append(boards, Board{Source: key, Error: fmt.Sprintf("不支持的数据源: %s", key)})
			continue
		}

		board := Board{
			Source:    key,
			Name:      info.name,
			Emoji:     info.emoji,
			FetchedAt: time.Now().Format(time.RFC3339),
		}
		items, err := info.fetch(c)
		if err != nil {
			board.Error = err.Error()
			utils.Warn(fmt.Sprintf("热榜采集失败 [%s]: %v", info.name, err))
		} else {
			board.Total = len(items)
			if len(items) > limit {
				items = items[:limit]
			}
			board.Items = items
		}
		boards = append(boards, board)
	}
	return boards
}

// cachePayload 缓存文件结构
type cachePayload struct {
	CachedAt int64   `json:"_cached_at"`
	Boards   []Board `json:"boards"`
}

// FetchAll 采集全部数据源，5 分钟内命中缓存不重复请求
func (c *Client) FetchAll(limit int) []Board {
	cacheFile := filepath.Join(c.cacheDir, "latest.json")

	if data, err := os.ReadFile(cacheFile); err == nil {
		var cached cachePayload
		if err := json.Unmarshal(data, &cached); err == nil &&
			time.Since(time.Unix(cached.CachedAt, 0)) < cacheTTL {
			utils.Debug("热榜命中缓存")
			return cached.Boards
		}
	}

	boards := c.Fetch(nil, limit)
	payload := cachePayload{CachedAt: time.Now().Unix(), Boards: boards}
	if data, err := json.MarshalIndent(payload, "", "  "); err == nil {
		_ = os.WriteFile(cacheFile, data, 0644)
	}
	return boards
}

// TopTopics 从全部榜单提取去重后的热门话题
func (c *Client) TopTopics(limit int) []Topic {
	boards := c.FetchAll(50)
	return dedupeTopics(boards, limit)
}

// dedupeTopics 跨榜单按标题去重，保留首次出现的来源
func dedupeTopics(boards []Board, limit int) []Topic {
	seen := map[string]bool{}
	var topics []Topic
	for _, board := range boards {
		if board.Error != "" {
			continue
		}
		for _, item := range board.Items {
			title := strings.TrimSpace(item.Title)
			if title == "" || seen[title] {
				continue
			}
			seen[title] = true
			topics = append(topics, Topic{Title: title, Source: board.Name, Rank: item.Rank})
		}
	}
	if len(topics) > limit {
		topics = topics[:limit]
	}
	return topics
}

// fetchBaidu 百度热搜，接口嵌套两层 content
func (c *Client) fetchBaidu() ([]Item, error) {
	body, err := c.get(baiduURL)
	if err != nil {
		return nil, err
	}
	return parseBaidu(body), nil
}

func parseBaidu(body []byte) []Item {
	topContent := gjson.GetBytes(body, "data.cards.0.content")

	entries := topContent.Array()
	if len(entries) > 0 && entries[0].Get("content").Exists() {
		entries = entries[0].Get("content").Array()
	}

	var items []Item
	for i, entry := range entries {
		word := entry.Get("word").String()
		if word == "" {
			word = entry.Get("query").String()
		}
		if word == "" {
			continue
		}
		rank := i + 1
		if entry.Get("isTop").Bool() {
			rank = 0 // 置顶
		} else if idx := entry.Get("index"); idx.Exists() {
			rank = int(idx.Int()) + 1
		}
		items = append(items, Item{
			Rank:  rank,
			Title: word,
			URL:   entry.Get("url").String(),
			Hot:   entry.Get("hotScore").String(),
			IsTop: entry.Get("isTop").Bool(),
		})
	}
	return items
}

// fetchToutiao 头条热榜
func (c *Client) fetchToutiao() ([]Item, error) {
	body, err := c.get(toutiaoURL)
	if err != nil {
		return nil, err
	}
	return parseToutiao(body), nil
}

func parseToutiao(body []byte) []Item {
	var items []Item
	for i, entry := range gjson.GetBytes(body, "data").Array() {
		title := entry.Get("Title").String()
		if title == "" {
			continue
		}
		items = append(items, Item{
			Rank:  i + 1,
			Title: title,
			URL:   entry.Get("Url").String(),
			Hot:   entry.Get("HotValue").String(),
		})
	}
	return items
}

// fetchBilibili B站热搜
func (c *Client) fetchBilibili() ([]Item, error) {
	body, err := c.get(bilibiliURL)
	if err != nil {
		return nil, err
	}
	return parseBilibili(body), nil
}

func parseBilibili(body []byte) []Item {
	var items []Item
	for i, entry := range gjson.GetBytes(body, "data.list").Array() {
		keyword := entry.Get("keyword").String()
		if keyword == "" {
			continue
		}
		items = append(items, Item{Rank: i + 1, Title: keyword})
	}
	return items
}

func (c *Client) get(url string) ([]byte, error) {
	resp, err := c.http.R().Get(url)
	if err != nil {
		return nil, err
	}
	if resp.IsErrorState() {
		return nil, fmt.Errorf("接口返回状态码 %d", resp.StatusCode)
	}
	return resp.Bytes(), nil
}

// FormatText 渲染榜单为可读文本
func FormatText(boards []Board, limit int) string {
	var b strings.Builder
	for _, board := range boards {
		if board.Error != "" {
			fmt.Fprintf(&b, "%s %s：获取失败 (%s)\n", board.Emoji, board.Name, board.Error)
			continue
		}
		fmt.Fprintf(&b, "\n%s %s（共 %d 条）\n", board.Emoji, board.Name, board.Total)
		items := board.Items
		if len(items) > limit {
			items = items[:limit]
		}
		for _, item := range items {
			prefix := fmt.Sprintf("  %d.", item.Rank)
			if item.IsTop {
				prefix = "  📌"
			}
			hot := ""
			if item.Hot != "" {
				hot = fmt.Sprintf("  🔥%s", item.Hot)
			}
			fmt.Fprintf(&b, "%s %s%s\n", prefix, item.Title, hot)
		}
	}
	return strings.TrimSpace(b.String())
}
