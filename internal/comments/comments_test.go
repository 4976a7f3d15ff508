package comments

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestCommentID(t *testing.T) {
	a := commentID("这个教程太实用了！")
	b := commentID("这个教程太实用了！")
	c := commentID("请问用的什么相机？")

	if a != b {
		t.Error("同一内容应得到相同 ID")
	}
	if a == c {
		t.Error("不同内容不应得到相同 ID")
	}
	if len(a) != 12 {
		t.Errorf("ID 长度应为12，实际%d", len(a))
	}
}

func TestCleanReply(t *testing.T) {
	t.Run("去掉首尾引号", func(t *testing.T) {
		if got := cleanReply(`"谢谢支持！"`); got != "谢谢支持！" {
			t.Errorf("引号未去除: %q", got)
		}
		if got := cleanReply("  '好的呀'  "); got != "好的呀" {
			t.Errorf("空白和引号未去除: %q", got)
		}
	})

	t.Run("超长按字符截断", func(t *testing.T) {
		long := strings.Repeat("谢", 120)
		got := cleanReply(long)
		runes := []rune(got)
		if len(runes) != 100 {
			t.Fatalf("截断后应为100字符，实际%d", len(runes))
		}
		if !strings.HasSuffix(got, "...") {
			t.Error("截断应以省略号结尾")
		}
		if string(runes[:97]) != strings.Repeat("谢", 97) {
			t.Error("截断不应破坏多字节字符")
		}
	})

	t.Run("短回复原样保留", func(t *testing.T) {
		if got := cleanReply("谢谢！"); got != "谢谢！" {
			t.Errorf("短回复被改动: %q", got)
		}
	})
}

func TestBuildReplyPrompt(t *testing.T) {
	c := Comment{
		Author:    "小红薯123",
		Content:   "请问这家店在哪里？",
		NoteTitle: "周末探店",
	}

	prompt := buildReplyPrompt(c, "professional")
	for _, want := range []string{"周末探店", "小红薯123", "请问这家店在哪里？", "专业有深度"} {
		if !strings.Contains(prompt, want) {
			t.Errorf("提示词缺少 %q", want)
		}
	}

	t.Run("未知风格回退到友好", func(t *testing.T) {
		prompt := buildReplyPrompt(c, "不存在的风格")
		if !strings.Contains(prompt, styleDescriptions["friendly"]) {
			t.Error("未知风格应使用友好风格")
		}
	})

	t.Run("匿名和未知标题占位", func(t *testing.T) {
		prompt := buildReplyPrompt(Comment{Content: "赞"}, "friendly")
		if !strings.Contains(prompt, "(匿名)") || !strings.Contains(prompt, "(未知)") {
			t.Error("缺席的昵称和标题应使用占位文本")
		}
	})
}

func newTestStore(t *testing.T) *Store {
	t.Helper()
	return NewStoreAt(filepath.Join(t.TempDir(), "comments.json"))
}

func TestStoreMarkReplied(t *testing.T) {
	store := newTestStore(t)

	if store.alreadyReplied("abc") {
		t.Error("空账本不应有记录")
	}
	if err := store.markReplied("abc"); err != nil {
		t.Fatal(err)
	}
	if !store.alreadyReplied("abc") {
		t.Error("标记后应能查到")
	}

	summary := store.Summary()
	if summary.TotalReplied != 1 || summary.TrackedComments != 1 {
		t.Errorf("统计不符: %+v", summary)
	}
}

func TestStoreRepliedCap(t *testing.T) {
	store := newTestStore(t)

	// 直接操作账本填满，逐条写太慢
	db := store.load()
	for i := 0; i < repliedCap; i++ {
		db.Replied = append(db.Replied, fmt.Sprintf("id_%d", i))
	}
	if err := store.save(db); err != nil {
		t.Fatal(err)
	}

	if err := store.markReplied("最新的一条"); err != nil {
		t.Fatal(err)
	}

	db = store.load()
	if len(db.Replied) != repliedCap {
		t.Errorf("账本应封顶%d条，实际%d条", repliedCap, len(db.Replied))
	}
	if !store.alreadyReplied("最新的一条") {
		t.Error("最新记录应保留")
	}
	if store.alreadyReplied("id_0") {
		t.Error("最老的记录应被淘汰")
	}
}

func TestStoreCorruptFile(t *testing.T) {
	store := newTestStore(t)
	if err := os.MkdirAll(filepath.Dir(store.path), 0755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(store.path, []byte("{损坏的JSON"), 0644); err != nil {
		t.Fatal(err)
	}

	if store.alreadyReplied("x") {
		t.Error("损坏文件应视为空账本")
	}
	if err := store.markReplied("x"); err != nil {
		t.Fatalf("损坏文件后仍应可写: %v", err)
	}
}

// fakeReplier 固定回复或固定报错
type fakeReplier struct {
	reply string
	err   error
	calls int
}

func (r *fakeReplier) Complete(ctx context.Context, prompt string) (string, error) {
	r.calls++
	if r.err != nil {
		return "", r.err
	}
	return r.reply, nil
}

func TestProcessCommentsDryRun(t *testing.T) {
	store := newTestStore(t)
	if err := store.markReplied("已回复ID"); err != nil {
		t.Fatal(err)
	}

	fetched := []Comment{
		{ID: "已回复ID", Content: "老评论", ItemIndex: 0},
		{ID: "新评论ID", Author: "粉丝", Content: "新评论", ItemIndex: 1},
	}
	replier := &fakeReplier{reply: "谢谢关注！"}

	// 试运行不触碰页面，page 传 nil 也必须安全
	results := processComments(context.Background(), nil, fetched, replier, store, "friendly", true)

	if results.Total != 2 || results.Skipped != 1 || results.Replied != 1 || results.Failed != 0 {
		t.Fatalf("结果计数不符: %+v", results)
	}
	if replier.calls != 1 {
		t.Errorf("已回复的评论不应再生成回复，实际调用%d次", replier.calls)
	}
	if len(results.Details) != 1 || results.Details[0].Status != "dry_run" {
		t.Errorf("明细不符: %+v", results.Details)
	}
	if store.alreadyReplied("新评论ID") {
		t.Error("试运行不应写入账本")
	}
}

func TestProcessCommentsAIFailure(t *testing.T) {
	store := newTestStore(t)
	fetched := []Comment{{ID: "id1", Content: "评论内容"}}
	replier := &fakeReplier{err: errors.New("接口超时")}

	results := processComments(context.Background(), nil, fetched, replier, store, "friendly", true)

	if results.Failed != 1 || results.Replied != 0 {
		t.Fatalf("生成失败应计入失败: %+v", results)
	}
	if results.Details[0].Status != "ai_failed" {
		t.Errorf("明细状态不符: %s", results.Details[0].Status)
	}
}

func TestFormatResults(t *testing.T) {
	results := &Results{
		Total: 2, Replied: 1, Failed: 1,
		Details: []Detail{
			{Author: "粉丝A", Comment: "好棒", Reply: "谢谢！", Status: "sent"},
			{Comment: "在吗", Status: "ai_failed"},
		},
	}

	text := FormatResults(results)
	for _, want := range []string{"评论互动结果", "总计: 2 条", "✅ [粉丝A] 好棒", "↳ 谢谢！", "⚠️ [匿名] 在吗"} {
		if !strings.Contains(text, want) {
			t.Errorf("格式化输出缺少 %q", want)
		}
	}
}
