package comments

import (
	"context"
	"fmt"
	"strings"
)

// Replier 生成回复文本，content.Generator 是生产实现
type Replier interface {
	Complete(ctx context.Context, prompt string) (string, error)
}

// 回复风格描述，喂给提示词
var styleDescriptions = map[string]string{
	"friendly":     "友好亲切、有温度，像朋友聊天一样",
	"professional": "专业有深度，体现知识储备",
	"humorous":     "幽默风趣，适当用网络流行语和 emoji",
	"brief":        "简短精炼，一两句话回复",
}

// ReplyStyles 可用的回复风格
func ReplyStyles() []string {
	return []string{"friendly", "professional", "humorous", "brief"}
}

const (
	replyMaxRunes  = 100
	replyCutRunes  = 97
	defaultStyle   = "friendly"
	replyPromptFmt = `你是一个小红书博主，需要回复粉丝的评论。

笔记标题：%s
粉丝昵称：%s
评论内容：%s

回复风格要求：%s

规则：
1. 回复要自然、真诚，不要太官方
2. 长度控制在 10-80 字
3. 可以适当用 emoji，但不要过多（1-2个）
4. 如果评论是提问，认真回答
5. 如果评论是夸赞，真诚感谢
6. 如果评论是负面的，礼貌回应不要对抗
7. 不要用"亲"、"宝"等过于商业化的称呼
8. 直接输出回复内容，不要加引号或前缀

回复：`
)

// buildReplyPrompt 组装回复提示词，未知风格回退到友好
func buildReplyPrompt(c Comment, style string) string {
	desc, ok := styleDescriptions[style]
	if !ok {
		desc = styleDescriptions[defaultStyle]
	}

	title := c.NoteTitle
	if title == "" {
		title = "(未知)"
	}
	author := c.Author
	if author == "" {
		author = "(匿名)"
	}
	return fmt.Sprintf(replyPromptFmt, title, author, c.Content, desc)
}

// cleanReply 清洗模型输出：去掉首尾引号，超长截断
func cleanReply(raw string) string {
	reply := strings.Trim(strings.TrimSpace(raw), `"'`)
	runes := []rune(reply)
	if len(runes) > replyMaxRunes {
		reply = string(runes[:replyCutRunes]) + "..."
	}
	return reply
}

// GenerateReply 用 AI 生成一条评论回复
func GenerateReply(ctx context.Context, r Replier, c Comment, style string) (string, error) {
	raw, err := r.Complete(ctx, buildReplyPrompt(c, style))
	if err != nil {
		return "", fmt.Errorf("失败: 生成评论回复 - %w", err)
	}
	reply := cleanReply(raw)
	if reply == "" {
		return "", fmt.Errorf("失败: 生成评论回复 - 模型返回为空")
	}
	return reply, nil
}
