package imagegen

import (
	"context"
	"fmt"
	"path/filepath"
	"time"

	"github.com/jogholy/xhs-publisher/internal/config"
	"github.com/jogholy/xhs-publisher/internal/cover"
	"github.com/jogholy/xhs-publisher/internal/utils"

	"github.com/imroc/req/v3"
	"github.com/tidwall/gjson"
)

// 通义万相文生图是异步接口：先提交任务拿 task_id，再轮询直到出结果
const (
	submitPath   = "/api/v1/services/aigc/text2image/image-synthesis"
	taskPathFmt  = "/api/v1/tasks/%s"
	pollInterval = 3 * time.Second
)

// Client 通义万相文生图客户端
type Client struct {
	http    *req.Client
	baseURL string
	model   string
}

// NewClient 根据全局配置创建客户端
func NewClient() (*Client, error) {
	cfg := config.Config.Image
	if cfg.APIKey == "" {
		return nil, fmt.Errorf("未配置图片生成 API Key（设置 DASHSCOPE_API_KEY）")
	}
	client := req.C().
		SetCommonBearerAuthToken(cfg.APIKey).
		SetTimeout(30 * time.Second)
	return &Client{
		http:    client,
		baseURL: cfg.BaseURL,
		model:   cfg.Model,
	}, nil
}

// Generate 按描述生成一张图片保存到 outputPath，完成后加 AI 水印
func (c *Client) Generate(ctx context.Context, prompt, outputPath string) error {
	taskID, err := c.submitTask(ctx, prompt)
	if err != nil {
		return fmt.Errorf("失败: 提交图片生成任务 - %w", err)
	}
	utils.Info(fmt.Sprintf("图片生成任务已提交: %s", taskID))

	imageURL, err := c.waitTask(ctx, taskID)
	if err != nil {
		return fmt.Errorf("失败: 等待图片生成 - %w", err)
	}

	if err := c.download(ctx, imageURL, outputPath); err != nil {
		return fmt.Errorf("失败: 下载生成图片 - %w", err)
	}

	// 合规：AI 生成的图片必须带标识
	if err := cover.AddAIWatermark(outputPath); err != nil {
		utils.Warn(fmt.Sprintf("AI 水印添加失败（不影响发布）: %v", err))
	}
	utils.Success(fmt.Sprintf("图片生成完成: %s", outputPath))
	return nil
}

// GenerateCover 根据笔记标题和正文自动生成配图
// 用标题加正文前 100 字构造描述
func (c *Client) GenerateCover(ctx context.Context, title, content string) (string, error) {
	summary := []rune(content)
	if len(summary) > 100 {
		summary = summary[:100]
	}
	prompt := fmt.Sprintf(
		"为小红书笔记生成一张精美配图。笔记标题：%s。内容摘要：%s。"+
			"要求：高质量、吸引眼球、适合社交媒体、色彩鲜明、3:4竖版构图",
		title, string(summary))

	path := filepath.Join(
		config.Config.ContentPath,
		fmt.Sprintf("ai_cover_%s.png", time.Now().Format("20060102_150405")),
	)
	if err := c.Generate(ctx, prompt, path); err != nil {
		return "", err
	}
	return path, nil
}

// submitTask 提交异步生成任务，返回 task_id
func (c *Client) submitTask(ctx context.Context, prompt string) (string, error) {
	body := map[string]any{
		"model": c.model,
		"input": map[string]any{"prompt": prompt},
		"parameters": map[string]any{
			"size": "1024*1024",
			"n":    1,
		},
	}

	resp, err := c.http.R().
		SetContext(ctx).
		SetHeader("X-DashScope-Async", "enable").
		SetBodyJsonMarshal(body).
		Post(c.baseURL + submitPath)
	if err != nil {
		return "", err
	}

	respBody := resp.Bytes()
	taskID := gjson.GetBytes(respBody, "output.task_id").String()
	if taskID == "" {
		code := gjson.GetBytes(respBody, "code").String()
		message := gjson.GetBytes(respBody, "message").String()
		return "", fmt.Errorf("接口返回错误: code=%s, message=%s", code, message)
	}
	return taskID, nil
}

// waitTask 轮询任务直到成功、失败或上下文取消，成功时返回图片 URL
func (c *Client) waitTask(ctx context.Context, taskID string) (string, error) {
	ticker := time.NewTicker(pollInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return "", fmt.Errorf("生成超时或被取消: %w", ctx.Err())
		case <-ticker.C:
		}

		resp, err := c.http.R().
			SetContext(ctx).
			Get(c.baseURL + fmt.Sprintf(taskPathFmt, taskID))
		if err != nil {
			utils.Warn(fmt.Sprintf("查询生成任务失败，继续轮询: %v", err))
			continue
		}

		respBody := resp.Bytes()
		status := gjson.GetBytes(respBody, "output.task_status").String()
		switch status {
		case "SUCCEEDED":
			url := gjson.GetBytes(respBody, "output.results.0.url").String()
			if url == "" {
				return "", fmt.Errorf("任务成功但未返回图片 URL")
			}
			return url, nil
		case "FAILED", "CANCELED":
			code := gjson.GetBytes(respBody, "output.code").String()
			message := gjson.GetBytes(respBody, "output.message").String()
			return "", fmt.Errorf("任务失败: status=%s, code=%s, message=%s", status, code, message)
		default:
			utils.Debug(fmt.Sprintf("生成任务进行中: %s", status))
		}
	}
}

// download 把生成的图片下载到本地
func (c *Client) download(ctx context.Context, url, outputPath string) error {
	resp, err := c.http.R().
		SetContext(ctx).
		SetOutputFile(outputPath).
		Get(url)
	if err != nil {
		return err
	}
	if resp.IsErrorState() {
		return fmt.Errorf("下载返回状态码 %d", resp.StatusCode)
	}
	return nil
}
