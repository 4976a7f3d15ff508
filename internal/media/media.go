// Package media 组装笔记配图能力：AI 文生图可用时优先，
// 不可用时退化到本地渲染。
package media

import (
	"context"
	"fmt"

	"github.com/jogholy/xhs-publisher/internal/cover"
	"github.com/jogholy/xhs-publisher/internal/imagegen"
	"github.com/jogholy/xhs-publisher/internal/utils"
)

// Studio 实现 publisher.MediaGenerator
type Studio struct {
	ai *imagegen.Client
}

// NewStudio 创建配图工作台
// 未配置图片生成 API Key 时 AI 配图不可用，只剩本地渲染
func NewStudio() *Studio {
	client, err := imagegen.NewClient()
	if err != nil {
		utils.Warn(fmt.Sprintf("AI 配图不可用: %v", err))
		client = nil
	}
	return &Studio{ai: client}
}

func (s *Studio) GenerateCover(ctx context.Context, title, content string) (string, error) {
	if s.ai == nil {
		return "", fmt.Errorf("图片生成接口未配置")
	}
	return s.ai.GenerateCover(ctx, title, content)
}

func (s *Studio) RenderTextPages(text, title string, maxPages int) ([]string, error) {
	return cover.RenderTextPages(text, title, maxPages)
}

func (s *Studio) DefaultCover(title string) (string, error) {
	return cover.DefaultCover(title)
}
