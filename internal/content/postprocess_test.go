package content

import (
	"strings"
	"testing"
)

func TestExtractJSON(t *testing.T) {
	// 测试1: 裸 JSON 直接通过
	t.Run("plain_json", func(t *testing.T) {
		out, err := extractJSON(`{"title": "测试"}`)
		if err != nil {
			t.Fatalf("裸 JSON 解析失败: %v", err)
		}
		if out != `{"title": "测试"}` {
			t.Errorf("输出不符: %s", out)
		}
	})

	// 测试2: markdown code block 包裹
	t.Run("code_block", func(t *testing.T) {
		raw := "```json\n{\"title\": \"测试\"}\n```"
		out, err := extractJSON(raw)
		if err != nil {
			t.Fatalf("code block 解析失败: %v", err)
		}
		if !strings.Contains(out, "测试") {
			t.Errorf("输出不符: %s", out)
		}
	})

	// 测试3: JSON 前后混杂说明文字
	t.Run("surrounding_text", func(t *testing.T) {
		raw := "好的，以下是生成结果：\n{\"title\": \"测试\"}\n希望你喜欢！"
		out, err := extractJSON(raw)
		if err != nil {
			t.Fatalf("混杂文字解析失败: %v", err)
		}
		if !strings.Contains(out, "测试") {
			t.Errorf("输出不符: %s", out)
		}
	})

	// 测试4: 完全不是 JSON 时报错
	t.Run("not_json", func(t *testing.T) {
		if _, err := extractJSON("抱歉，我无法生成内容。"); err == nil {
			t.Error("非 JSON 输入应报错")
		}
	})
}

func TestParseNote(t *testing.T) {
	// 字段别名兼容：full_content / hashtags
	t.Run("field_aliases", func(t *testing.T) {
		note := parseNote(`{"title":"t","full_content":"正文","hashtags":["#美食","生活 "]}`)
		if note.Content != "正文" {
			t.Errorf("full_content 别名未生效: %s", note.Content)
		}
		if len(note.Tags) != 2 || note.Tags[0] != "美食" || note.Tags[1] != "生活" {
			t.Errorf("标签清理不符: %v", note.Tags)
		}
	})

	t.Run("standard_fields", func(t *testing.T) {
		note := parseNote(`{"title":"t","content":"c","tags":["a"],"call_to_action":"评论区见"}`)
		if note.Title != "t" || note.Content != "c" || note.CallToAction != "评论区见" {
			t.Errorf("标准字段解析不符: %+v", note)
		}
	})
}

func TestCleanTags(t *testing.T) {
	got := CleanTags([]string{"#美食", "  ##生活", "", "   ", "旅行"})
	want := []string{"美食", "生活", "旅行"}
	if len(got) != len(want) {
		t.Fatalf("标签数量不符: %v", got)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("标签[%d] = %q，期望 %q", i, got[i], want[i])
		}
	}
}

func TestTruncateTitle(t *testing.T) {
	// 测试1: 短标题原样返回
	t.Run("short_unchanged", func(t *testing.T) {
		if got := TruncateTitle("短标题"); got != "短标题" {
			t.Errorf("短标题不应改动: %s", got)
		}
	})

	// 测试2: 恰好20字不截断
	t.Run("exactly_twenty", func(t *testing.T) {
		title := strings.Repeat("字", 20)
		if got := TruncateTitle(title); got != title {
			t.Errorf("恰好20字不应截断: %s", got)
		}
	})

	// 测试3: 超长且20字内有标点，在标点处截断
	t.Run("break_at_punctuation", func(t *testing.T) {
		title := "这是一个很长很长的标题，后面还有很多很多字"
		got := TruncateTitle(title)
		if len([]rune(got)) > 20 {
			t.Fatalf("截断后仍超长: %d字", len([]rune(got)))
		}
		if strings.HasSuffix(got, "，") {
			t.Errorf("截断不应保留末尾标点: %s", got)
		}
		if got != "这是一个很长很长的标题" {
			t.Errorf("应在标点前截断，实际: %s", got)
		}
	})

	// 测试4: 20字内无标点时硬截断到20字
	t.Run("hard_cut", func(t *testing.T) {
		title := strings.Repeat("字", 30)
		got := TruncateTitle(title)
		if len([]rune(got)) != 20 {
			t.Errorf("无标点应硬截断到20字，实际%d字", len([]rune(got)))
		}
	})
}

func TestAppendAIFooter(t *testing.T) {
	// 测试1: 正常追加
	t.Run("appended", func(t *testing.T) {
		got := AppendAIFooter("正文内容")
		if !strings.HasSuffix(got, aiFooter) {
			t.Errorf("应追加声明: %s", got)
		}
	})

	// 测试2: 已有声明不重复
	t.Run("no_duplicate", func(t *testing.T) {
		content := "正文内容\n\n📝 本文由 AI 辅助创作"
		got := AppendAIFooter(content)
		if strings.Count(got, "AI 辅助创作") != 1 {
			t.Errorf("声明不应重复: %s", got)
		}
	})

	// 测试3: 空正文不处理
	t.Run("empty", func(t *testing.T) {
		if got := AppendAIFooter(""); got != "" {
			t.Errorf("空正文不应追加: %s", got)
		}
	})
}

func TestSplitOverflow(t *testing.T) {
	// 测试1: 短正文不拆分
	t.Run("short_no_split", func(t *testing.T) {
		editor, overflow := SplitOverflow("短正文")
		if editor != "短正文" || overflow != "" {
			t.Errorf("短正文不应拆分: editor=%q overflow=%q", editor, overflow)
		}
	})

	// 测试2: 超长正文在段落边界拆分
	t.Run("split_at_paragraph", func(t *testing.T) {
		para1 := strings.Repeat("一", 600)
		para2 := strings.Repeat("二", 600)
		content := para1 + "\n\n" + para2

		editor, overflow := SplitOverflow(content)
		if overflow == "" {
			t.Fatal("超长正文应产生溢出")
		}
		if !strings.Contains(editor, para1) {
			t.Error("第一段应留在编辑器文本中")
		}
		if strings.Contains(editor, "二二") {
			t.Error("第二段应整体进入溢出文本")
		}
		if !strings.HasPrefix(overflow, "二") {
			t.Errorf("溢出文本应从第二段开始: %s", overflow[:12])
		}
	})

	// 测试3: 编辑器文本带引导语和声明
	t.Run("editor_has_hint_and_footer", func(t *testing.T) {
		content := strings.Repeat("字", 1200)
		editor, _ := SplitOverflow(content)
		if !strings.Contains(editor, overflowHint) {
			t.Error("编辑器文本应包含更多内容引导语")
		}
		if !strings.HasSuffix(editor, aiFooter) {
			t.Error("编辑器文本末尾应有 AI 声明")
		}
	})

	// 测试4: 溢出文本中去掉重复声明
	t.Run("overflow_footer_stripped", func(t *testing.T) {
		content := strings.Repeat("字", 1100) + "\n\n" + aiFooter
		_, overflow := SplitOverflow(content)
		if strings.Contains(overflow, aiFooter) {
			t.Error("溢出文本不应带声明")
		}
	})

	// 测试5: 无段落边界时按行边界拆分
	t.Run("split_at_line", func(t *testing.T) {
		content := strings.Repeat("一", 700) + "\n" + strings.Repeat("二", 700)
		editor, overflow := SplitOverflow(content)
		if overflow == "" {
			t.Fatal("超长正文应产生溢出")
		}
		if strings.Contains(editor, "二二") {
			t.Error("行边界后内容应进入溢出文本")
		}
	})
}

func TestLastIndexRunes(t *testing.T) {
	cases := []struct {
		s, sep string
		want   int
	}{
		{"abcabc", "bc", 4},
		{"一二三一二", "一二", 3},
		{"abc", "xyz", -1},
		{"", "a", -1},
		{"abc", "", -1},
	}
	for _, c := range cases {
		if got := lastIndexRunes([]rune(c.s), []rune(c.sep)); got != c.want {
			t.Errorf("lastIndexRunes(%q, %q) = %d，期望 %d", c.s, c.sep, got, c.want)
		}
	}
}

func TestLoadTemplate(t *testing.T) {
	t.Run("known_style", func(t *testing.T) {
		tpl, err := LoadTemplate("tutorial")
		if err != nil {
			t.Fatalf("内置风格加载失败: %v", err)
		}
		if !strings.Contains(tpl.UserPrompt, "{topic}") {
			t.Error("模板应包含 {topic} 占位符")
		}
	})

	t.Run("unknown_style", func(t *testing.T) {
		if _, err := LoadTemplate("nonexistent"); err == nil {
			t.Error("未知风格应报错")
		}
	})

	t.Run("list_has_default", func(t *testing.T) {
		found := false
		for _, tpl := range ListTemplates() {
			if tpl.ID == "default" {
				found = true
			}
		}
		if !found {
			t.Error("内置风格应包含 default")
		}
	})
}
