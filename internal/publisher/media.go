package publisher

import (
	"context"
	"fmt"
	"os"

	"github.com/jogholy/xhs-publisher/internal/types"
	"github.com/jogholy/xhs-publisher/internal/utils"
)

// resolveMedia 确定最终上传的图片列表
// 规则：
//   - 调用方提供了图片则原样使用（过滤不存在的文件）
//   - 没有图片时生成一张 AI 封面，生成失败降级为默认封面
//   - 存在溢出长文时在封面之后拼接文字图片
//   - 总数不超过图片上限
func (p *Publisher) resolveMedia(ctx context.Context, note *types.NoteTask, opts Options) []string {
	maxImages := p.cfg.MaxImages
	if opts.MaxImages > 0 && opts.MaxImages < maxImages {
		maxImages = opts.MaxImages
	}

	images := make([]string, 0, maxImages)
	for _, path := range note.Images {
		if _, err := os.Stat(path); err != nil {
			utils.WarnWithPlatform(p.platform, fmt.Sprintf("图片不存在，已跳过: %s", path))
			continue
		}
		images = append(images, path)
	}

	if len(images) == 0 {
		if cover := p.coverImage(ctx, note, opts); cover != "" {
			images = append(images, cover)
		}
	}

	if note.OverflowText != "" && len(images) < maxImages {
		pages, err := p.media.RenderTextPages(note.OverflowText, note.Title, maxImages-len(images))
		if err != nil {
			utils.WarnWithPlatform(p.platform, fmt.Sprintf("失败: 渲染文字图片 - %v", err))
		} else {
			images = append(images, pages...)
			utils.InfoWithPlatform(p.platform, fmt.Sprintf("溢出正文已渲染为 %d 张文字图片", len(pages)))
		}
	}

	if len(images) > maxImages {
		images = images[:maxImages]
	}
	return images
}

// coverImage 生成封面：优先 AI 配图，失败降级为默认封面
func (p *Publisher) coverImage(ctx context.Context, note *types.NoteTask, opts Options) string {
	if opts.AutoImage {
		utils.InfoWithPlatform(p.platform, "未提供图片，自动生成 AI 配图...")

		genCtx, cancel := context.WithTimeout(ctx, p.cfg.GenerationTimeout)
		defer cancel()

		path, err := p.media.GenerateCover(genCtx, note.Title, note.Content)
		if err == nil {
			utils.InfoWithPlatform(p.platform, fmt.Sprintf("AI 配图生成成功: %s", path))
			return path
		}
		utils.WarnWithPlatform(p.platform, fmt.Sprintf("AI 配图生成失败，使用默认封面: %v", err))
	}

	path, err := p.media.DefaultCover(note.Title)
	if err != nil {
		utils.WarnWithPlatform(p.platform, fmt.Sprintf("失败: 生成默认封面 - %v", err))
		return ""
	}
	return path
}
