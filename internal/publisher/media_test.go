package publisher

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"testing"

	"github.com/jogholy/xhs-publisher/internal/types"
)

// fakeGenerator 测试用配图生成器
type fakeGenerator struct {
	coverErr   error
	pagesErr   error
	defaultErr error
	coverCalls int
}

func (g *fakeGenerator) GenerateCover(ctx context.Context, title, content string) (string, error) {
	g.coverCalls++
	if g.coverErr != nil {
		return "", g.coverErr
	}
	return "/tmp/ai_cover.png", nil
}

func (g *fakeGenerator) RenderTextPages(text, title string, maxPages int) ([]string, error) {
	if g.pagesErr != nil {
		return nil, g.pagesErr
	}
	// 按需求渲染满页数
	pages := make([]string, maxPages)
	for i := range pages {
		pages[i] = fmt.Sprintf("/tmp/text_page_%d.png", i+1)
	}
	return pages, nil
}

func (g *fakeGenerator) DefaultCover(title string) (string, error) {
	if g.defaultErr != nil {
		return "", g.defaultErr
	}
	return "/tmp/default_cover.png", nil
}

func newTestPublisher(gen MediaGenerator) *Publisher {
	return NewWithConfig(nil, gen, DefaultConfig())
}

func TestResolveMedia(t *testing.T) {
	ctx := context.Background()

	// 测试1: 无图片无溢出时恰好附带一张图（AI 封面）
	t.Run("zero_supplied_exactly_one", func(t *testing.T) {
		gen := &fakeGenerator{}
		p := newTestPublisher(gen)

		images := p.resolveMedia(ctx, &types.NoteTask{Title: "t", Content: "c"}, Options{AutoImage: true})
		if len(images) != 1 {
			t.Fatalf("期望恰好1张图片，实际%d张", len(images))
		}
		if images[0] != "/tmp/ai_cover.png" {
			t.Errorf("期望 AI 封面，实际: %s", images[0])
		}
	})

	// 测试2: AI 生成失败降级为默认封面，仍然恰好一张
	t.Run("cover_failure_fallback", func(t *testing.T) {
		gen := &fakeGenerator{coverErr: errors.New("接口超时")}
		p := newTestPublisher(gen)

		images := p.resolveMedia(ctx, &types.NoteTask{Title: "t"}, Options{AutoImage: true})
		if len(images) != 1 {
			t.Fatalf("期望恰好1张图片，实际%d张", len(images))
		}
		if images[0] != "/tmp/default_cover.png" {
			t.Errorf("期望默认封面，实际: %s", images[0])
		}
	})

	// 测试3: 禁用自动配图时直接使用默认封面，不调用生成接口
	t.Run("auto_image_disabled", func(t *testing.T) {
		gen := &fakeGenerator{}
		p := newTestPublisher(gen)

		images := p.resolveMedia(ctx, &types.NoteTask{Title: "t"}, Options{AutoImage: false})
		if gen.coverCalls != 0 {
			t.Errorf("禁用自动配图不应调用生成接口，实际调用%d次", gen.coverCalls)
		}
		if len(images) != 1 || images[0] != "/tmp/default_cover.png" {
			t.Errorf("期望默认封面，实际: %v", images)
		}
	})

	// 测试4: 溢出长文时封面在前、文字图片在后，总数不超上限
	t.Run("overflow_cover_first_capped", func(t *testing.T) {
		gen := &fakeGenerator{}
		p := newTestPublisher(gen)

		note := &types.NoteTask{Title: "t", Content: "c", OverflowText: "很长的溢出内容"}
		images := p.resolveMedia(ctx, note, Options{AutoImage: true})

		if len(images) > p.cfg.MaxImages {
			t.Fatalf("图片总数%d超过上限%d", len(images), p.cfg.MaxImages)
		}
		if images[0] != "/tmp/ai_cover.png" {
			t.Errorf("封面应排在第一位，实际: %s", images[0])
		}
		for _, img := range images[1:] {
			if img == "/tmp/ai_cover.png" {
				t.Error("封面不应重复出现")
			}
		}
	})

	// 测试5: 期望图片数量上限生效
	t.Run("max_images_option", func(t *testing.T) {
		gen := &fakeGenerator{}
		p := newTestPublisher(gen)

		note := &types.NoteTask{Title: "t", OverflowText: "溢出"}
		images := p.resolveMedia(ctx, note, Options{AutoImage: true, MaxImages: 3})
		if len(images) > 3 {
			t.Errorf("期望不超过3张，实际%d张", len(images))
		}
	})

	// 测试6: 提供的图片过滤掉不存在的文件
	t.Run("supplied_images_filtered", func(t *testing.T) {
		dir := t.TempDir()
		exists := filepath.Join(dir, "a.png")
		if err := os.WriteFile(exists, []byte("png"), 0644); err != nil {
			t.Fatal(err)
		}

		gen := &fakeGenerator{}
		p := newTestPublisher(gen)

		note := &types.NoteTask{Images: []string{exists, filepath.Join(dir, "missing.png")}}
		images := p.resolveMedia(ctx, note, Options{AutoImage: true})
		if len(images) != 1 || images[0] != exists {
			t.Errorf("应只保留存在的文件，实际: %v", images)
		}
		if gen.coverCalls != 0 {
			t.Error("已有图片时不应生成封面")
		}
	})

	// 测试7: 渲染文字图片失败时只保留封面，不中断
	t.Run("text_pages_failure_degrades", func(t *testing.T) {
		gen := &fakeGenerator{pagesErr: errors.New("字体缺失")}
		p := newTestPublisher(gen)

		note := &types.NoteTask{Title: "t", OverflowText: "溢出"}
		images := p.resolveMedia(ctx, note, Options{AutoImage: true})
		if len(images) != 1 {
			t.Errorf("渲染失败应只保留封面，实际%d张", len(images))
		}
	})
}
