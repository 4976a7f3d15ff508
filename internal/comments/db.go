package comments

import (
	"encoding/json"
	"os"
	"path/filepath"

	"github.com/jogholy/xhs-publisher/internal/config"
)

// 已回复记录只保最近这么多条，防止文件无限膨胀
const repliedCap = 2000

type replyStats struct {
	TotalFetched int `json:"total_fetched"`
	TotalReplied int `json:"total_replied"`
}

type replyDB struct {
	Replied []string   `json:"replied"`
	Stats   replyStats `json:"stats"`
}

// Store 已回复评论的本地账本，防止重复回复同一条评论
type Store struct {
	path string
}

// NewStore 账本放在数据目录下
func NewStore() *Store {
	return NewStoreAt(filepath.Join(config.Config.DataPath, "comments.json"))
}

// NewStoreAt 指定文件位置创建账本
func NewStoreAt(path string) *Store {
	return &Store{path: path}
}

// load 容忍文件缺席或损坏，都从空账本开始
func (s *Store) load() *replyDB {
	db := &replyDB{Replied: []string{}}
	data, err := os.ReadFile(s.path)
	if err != nil {
		return db
	}
	if err := json.Unmarshal(data, db); err != nil {
		return &replyDB{Replied: []string{}}
	}
	return db
}

func (s *Store) save(db *replyDB) error {
	data, err := json.MarshalIndent(db, "", "  ")
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(s.path), 0755); err != nil {
		return err
	}
	return os.WriteFile(s.path, data, 0644)
}

// alreadyReplied 该评论是否已经回复过
func (s *Store) alreadyReplied(id string) bool {
	for _, replied := range s.load().Replied {
		if replied == id {
			return true
		}
	}
	return false
}

// markReplied 记录一条已回复的评论
func (s *Store) markReplied(id string) error {
	db := s.load()

	exists := false
	for _, replied := range db.Replied {
		if replied == id {
			exists = true
			break
		}
	}
	if !exists {
		db.Replied = append(db.Replied, id)
		if len(db.Replied) > repliedCap {
			db.Replied = db.Replied[len(db.Replied)-repliedCap:]
		}
	}
	db.Stats.TotalReplied++
	return s.save(db)
}

// addFetched 累计抓取计数
func (s *Store) addFetched(n int) error {
	db := s.load()
	db.Stats.TotalFetched += n
	return s.save(db)
}

// Stats 回复统计
type Stats struct {
	TotalReplied    int `json:"total_replied"`
	TotalFetched    int `json:"total_fetched"`
	TrackedComments int `json:"tracked_comments"`
}

// Summary 返回账本的统计摘要
func (s *Store) Summary() Stats {
	db := s.load()
	return Stats{
		TotalReplied:    db.Stats.TotalReplied,
		TotalFetched:    db.Stats.TotalFetched,
		TrackedComments: len(db.Replied),
	}
}
