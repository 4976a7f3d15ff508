package content

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/tidwall/gjson"
)

// 平台硬性限制与合规处理
// 标题 20 字、编辑器正文约 1000 字（留余量按 950 截断），超出部分转为文字图片

const (
	titleMaxRunes  = 20
	maxEditorRunes = 950
	// 截断时优先保留语义完整，在此范围内回退寻找标点
	titleBreakFloor = 15

	aiFooter     = "📝 本文由 AI 辅助创作"
	aiFooterTail = "AI辅助创作"
	overflowHint = "👉 更多内容见图片"
)

const titleBreakRunes = "，。！？、·~…—|,!? "

var jsonBlockRe = regexp.MustCompile(`\{[\s\S]*\}`)

// extractJSON 从 LLM 输出中提取 JSON 文本
// 兼容 markdown code block 包裹以及 JSON 前后混杂说明文字的情况
func extractJSON(raw string) (string, error) {
	text := strings.TrimSpace(raw)
	text = strings.TrimPrefix(text, "```json")
	text = strings.TrimPrefix(text, "```")
	text = strings.TrimSuffix(strings.TrimSpace(text), "```")
	text = strings.TrimSpace(text)

	if gjson.Valid(text) {
		return text, nil
	}
	if match := jsonBlockRe.FindString(text); match != "" && gjson.Valid(match) {
		return match, nil
	}

	preview := []rune(text)
	if len(preview) > 200 {
		preview = preview[:200]
	}
	return "", fmt.Errorf("无法从模型输出中提取 JSON: %s", string(preview))
}

// parseNote 从 JSON 文本解析生成结果，兼容字段别名
func parseNote(jsonText string) *GeneratedNote {
	doc := gjson.Parse(jsonText)

	content := doc.Get("content").String()
	if content == "" {
		content = doc.Get("full_content").String()
	}

	tagsField := doc.Get("tags")
	if !tagsField.Exists() {
		tagsField = doc.Get("hashtags")
	}
	var tags []string
	for _, t := range tagsField.Array() {
		tags = append(tags, t.String())
	}

	return &GeneratedNote{
		Title:        doc.Get("title").String(),
		Content:      content,
		Tags:         CleanTags(tags),
		CallToAction: doc.Get("call_to_action").String(),
	}
}

// CleanTags 去掉 # 前缀和空白，过滤空标签
func CleanTags(tags []string) []string {
	cleaned := make([]string, 0, len(tags))
	for _, t := range tags {
		t = strings.TrimSpace(strings.TrimLeft(strings.TrimSpace(t), "#"))
		if t != "" {
			cleaned = append(cleaned, t)
		}
	}
	return cleaned
}

// TruncateTitle 把标题压到 20 字以内
// 截断时从第 20 字往回找标点或空格，保持语义完整
func TruncateTitle(title string) string {
	r := []rune(title)
	if len(r) <= titleMaxRunes {
		return title
	}
	t := r[:titleMaxRunes]
	for i := titleMaxRunes - 1; i > titleBreakFloor-1; i-- {
		if strings.ContainsRune(titleBreakRunes, t[i]) {
			t = t[:i]
			break
		}
	}
	return string(t)
}

// AppendAIFooter 在正文末尾追加 AI 辅助创作声明（合规要求）
func AppendAIFooter(content string) string {
	if content == "" {
		return content
	}
	trimmed := strings.TrimRight(content, " \t\n")
	if strings.HasSuffix(trimmed, aiFooterTail) {
		return trimmed
	}
	return trimmed + "\n\n" + aiFooter
}

// SplitOverflow 把超长正文拆成编辑器文本与溢出文本
// 在 950 字内优先找段落边界（需落在 500 字之后），其次行边界，最后硬截断。
// 编辑器文本末尾追加"更多内容见图片"引导与声明；溢出文本去掉重复声明，
// 由文字图片上的水印代替。
func SplitOverflow(content string) (editor string, overflow string) {
	r := []rune(content)
	if len(r) <= maxEditorRunes {
		return content, ""
	}

	cut := r[:maxEditorRunes]
	cutPos := maxEditorRunes
	if p := lastIndexRunes(cut, []rune("\n\n")); p > 500 {
		cutPos = p
	} else if p := lastIndexRunes(cut, []rune("\n")); p > 500 {
		cutPos = p
	}

	editor = strings.TrimRight(string(r[:cutPos]), " \t\n")
	overflow = strings.TrimSpace(string(r[cutPos:]))

	if !strings.HasSuffix(editor, aiFooterTail) {
		editor = editor + "\n\n" + overflowHint + "\n\n" + aiFooter
	}
	overflow = strings.TrimSpace(strings.ReplaceAll(overflow, aiFooter, ""))
	return editor, overflow
}

// lastIndexRunes 返回 sep 在 s 中最后一次出现的字符下标，未找到返回 -1
func lastIndexRunes(s, sep []rune) int {
	if len(sep) == 0 || len(s) < len(sep) {
		return -1
	}
	for i := len(s) - len(sep); i >= 0; i-- {
		match := true
		for j := range sep {
			if s[i+j] != sep[j] {
				match = false
				break
			}
		}
		if match {
			return i
		}
	}
	return -1
}
