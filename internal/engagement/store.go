package engagement

import (
	"encoding/json"
	"os"
	"path/filepath"
	"time"

	"github.com/jogholy/xhs-publisher/internal/config"
)

// 快照只保最近这么多份
const snapshotCap = 60

// Snapshot 一次抓取的完整结果
type Snapshot struct {
	Time  string `json:"time"`
	Count int    `json:"count"`
	Notes []Note `json:"notes"`
}

// noteRecord 单篇笔记的最新数据
type noteRecord struct {
	Note
	LastUpdated string `json:"last_updated"`
}

type engagementDB struct {
	Notes     map[string]noteRecord `json:"notes"`
	Snapshots []Snapshot            `json:"snapshots"`
}

// Store 互动数据快照库
type Store struct {
	path string
}

// NewStore 快照库放在数据目录下
func NewStore() *Store {
	return NewStoreAt(filepath.Join(config.Config.DataPath, "engagement.json"))
}

// NewStoreAt 指定文件位置创建快照库
func NewStoreAt(path string) *Store {
	return &Store{path: path}
}

func (s *Store) load() *engagementDB {
	db := &engagementDB{Notes: map[string]noteRecord{}}
	data, err := os.ReadFile(s.path)
	if err != nil {
		return db
	}
	if err := json.Unmarshal(data, db); err != nil {
		return &engagementDB{Notes: map[string]noteRecord{}}
	}
	if db.Notes == nil {
		db.Notes = map[string]noteRecord{}
	}
	return db
}

func (s *Store) save(db *engagementDB) error {
	data, err := json.MarshalIndent(db, "", "  ")
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(s.path), 0755); err != nil {
		return err
	}
	return os.WriteFile(s.path, data, 0644)
}

// Record 追加一次抓取快照并刷新每篇笔记的最新数据
func (s *Store) Record(notes []Note) error {
	db := s.load()
	now := time.Now().Format(time.RFC3339)

	db.Snapshots = append(db.Snapshots, Snapshot{
		Time:  now,
		Count: len(notes),
		Notes: notes,
	})
	if len(db.Snapshots) > snapshotCap {
		db.Snapshots = db.Snapshots[len(db.Snapshots)-snapshotCap:]
	}

	for _, note := range notes {
		db.Notes[note.Title] = noteRecord{Note: note, LastUpdated: now}
	}
	return s.save(db)
}

// Latest 返回最近一次快照，没有任何快照时 ok 为 false
func (s *Store) Latest() (Snapshot, bool) {
	db := s.load()
	if len(db.Snapshots) == 0 {
		return Snapshot{}, false
	}
	return db.Snapshots[len(db.Snapshots)-1], true
}
