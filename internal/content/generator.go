package content

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/jogholy/xhs-publisher/internal/config"
	"github.com/jogholy/xhs-publisher/internal/types"
	"github.com/jogholy/xhs-publisher/internal/utils"
	"github.com/jogholy/xhs-publisher/internal/utils/retry"

	"github.com/openai/openai-go"
	"github.com/openai/openai-go/option"
)

// GeneratedNote 一次内容生成的完整结果
type GeneratedNote struct {
	Title        string   `json:"title"`
	Content      string   `json:"content"`
	OverflowText string   `json:"overflow_text,omitempty"`
	Tags         []string `json:"tags"`
	CallToAction string   `json:"call_to_action,omitempty"`
	Style        string   `json:"style"`
	Topic        string   `json:"topic"`
	Model        string   `json:"model"`
	GeneratedAt  string   `json:"generated_at"`
}

// ToTask 转换为发布任务
func (n *GeneratedNote) ToTask() *types.NoteTask {
	return &types.NoteTask{
		Title:        n.Title,
		Content:      n.Content,
		OverflowText: n.OverflowText,
		Tags:         n.Tags,
	}
}

// Generator 调用 OpenAI 兼容接口生成小红书笔记
type Generator struct {
	client openai.Client
	model  string
}

// NewGenerator 根据全局配置创建生成器
func NewGenerator() (*Generator, error) {
	cfg := config.Config.LLM
	if cfg.APIKey == "" {
		return nil, fmt.Errorf("未配置 LLM API Key（设置 XHS_LLM_API_KEY 或 DASHSCOPE_API_KEY）")
	}
	opts := []option.RequestOption{option.WithAPIKey(cfg.APIKey)}
	if cfg.BaseURL != "" {
		opts = append(opts, option.WithBaseURL(cfg.BaseURL))
	}
	return &Generator{
		client: openai.NewClient(opts...),
		model:  cfg.Model,
	}, nil
}

// Generate 按主题和风格生成一篇笔记
// 生成后执行合规后处理：标题截断、AI 声明、超长正文拆分
func (g *Generator) Generate(ctx context.Context, topic, style, extra string) (*GeneratedNote, error) {
	template, err := LoadTemplate(style)
	if err != nil {
		utils.Warn(fmt.Sprintf("未找到文案风格 '%s'，使用默认风格", style))
		template, _ = LoadTemplate("default")
	}

	userPrompt := strings.ReplaceAll(template.UserPrompt, "{topic}", topic)
	if extra != "" {
		userPrompt += fmt.Sprintf("\n\n额外要求：%s", extra)
	}

	utils.Info(fmt.Sprintf("开始生成内容: 主题=%s 风格=%s 模型=%s", topic, template.Name, g.model))

	raw, err := g.complete(ctx, template.System, userPrompt)
	if err != nil {
		return nil, fmt.Errorf("失败: 调用内容生成接口 - %w", err)
	}

	jsonText, err := extractJSON(raw)
	if err != nil {
		return nil, fmt.Errorf("失败: 解析生成结果 - %w", err)
	}

	note := parseNote(jsonText)
	note.Style = template.ID
	note.Topic = topic
	note.Model = g.model
	note.GeneratedAt = time.Now().Format(time.RFC3339)

	if truncated := TruncateTitle(note.Title); truncated != note.Title {
		note.Title = truncated
		utils.Warn(fmt.Sprintf("标题超长已截断: %s", note.Title))
	}

	note.Content = AppendAIFooter(note.Content)
	editor, overflow := SplitOverflow(note.Content)
	if overflow != "" {
		utils.Info(fmt.Sprintf("正文超长: 编辑器 %d 字 + 溢出 %d 字（将生成文字图片）",
			len([]rune(editor)), len([]rune(overflow))))
	}
	note.Content = editor
	note.OverflowText = overflow

	return note, nil
}

// Complete 单轮纯文本补全
// 评论回复等轻量场景复用同一客户端，不走笔记的 JSON 后处理
func (g *Generator) Complete(ctx context.Context, prompt string) (string, error) {
	return g.complete(ctx, "", prompt)
}

// complete 发起一次 chat completion，限流时退避重试
func (g *Generator) complete(ctx context.Context, system, user string) (string, error) {
	return retry.DoWithResult(ctx, &retry.Config{
		MaxAttempts:   3,
		InitialDelay:  15 * time.Second,
		MaxDelay:      60 * time.Second,
		BackoffFactor: 2.0,
		Strategy:      retry.ExponentialBackoff,
		Condition: func(err error) bool {
			// 免费额度接口常见 429，其余错误不重试
			return strings.Contains(err.Error(), "429")
		},
		OnRetry: func(attempt int, delay time.Duration, err error) {
			utils.Warn(fmt.Sprintf("内容生成接口限流，%s 后重试（第%d次）: %v", delay, attempt, err))
		},
	}, func() (string, error) {
		messages := make([]openai.ChatCompletionMessageParamUnion, 0, 2)
		if system != "" {
			messages = append(messages, openai.SystemMessage(system))
		}
		messages = append(messages, openai.UserMessage(user))

		resp, err := g.client.Chat.Completions.New(ctx, openai.ChatCompletionNewParams{
			Model:       openai.ChatModel(g.model),
			Messages:    messages,
			Temperature: openai.Float(0.8),
			MaxTokens:   openai.Int(4096),
		})
		if err != nil {
			return "", err
		}
		if len(resp.Choices) == 0 {
			return "", fmt.Errorf("接口未返回任何候选")
		}
		return resp.Choices[0].Message.Content, nil
	})
}

// Save 把生成结果保存为 JSON 文件，返回文件路径
func (n *GeneratedNote) Save() (string, error) {
	data, err := json.MarshalIndent(n, "", "  ")
	if err != nil {
		return "", err
	}
	path := filepath.Join(
		config.Config.ContentPath,
		fmt.Sprintf("gen_%s.json", time.Now().Format("20060102_150405")),
	)
	if err := os.WriteFile(path, data, 0644); err != nil {
		return "", fmt.Errorf("失败: 保存生成内容 - %w", err)
	}
	return path, nil
}

// LoadNote 从 JSON 文件读取之前保存的生成结果
func LoadNote(path string) (*GeneratedNote, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("失败: 读取内容文件 - %w", err)
	}
	var note GeneratedNote
	if err := json.Unmarshal(data, &note); err != nil {
		return nil, fmt.Errorf("失败: 解析内容文件 - %w", err)
	}
	return &note, nil
}
