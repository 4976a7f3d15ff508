package publisher

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jogholy/xhs-publisher/internal/browser"
	"github.com/jogholy/xhs-publisher/internal/types"
	"github.com/jogholy/xhs-publisher/internal/utils"

	"github.com/playwright-community/playwright-go"
)

// PageSource 提供已认证的交互页面，browser.Session 是生产实现
type PageSource interface {
	Page() (playwright.Page, error)
}

// 页面元素定位
// UI 没有稳定契约，全部按内容或宽松属性匹配，任一元素都可能合法缺席
const (
	imageTextTabText     = "上传图文"
	titleSelector        = `input[placeholder*="标题"]`
	bodySelector         = `div.ProseMirror[contenteditable="true"]`
	bodyFallback         = `[contenteditable="true"]`
	fileInputSelector    = `input[type="file"]`
	submitButtonSelector = `button:has-text("发布")`
)

// MediaGenerator 配图生成协作方
// 调用可能很慢（最长约120秒）且可能失败；失败降级为默认封面，不中断工作流
type MediaGenerator interface {
	// GenerateCover 按笔记标题和正文生成一张 AI 封面，返回图片路径
	GenerateCover(ctx context.Context, title, content string) (string, error)
	// RenderTextPages 把溢出长文渲染为文字图片，最多 maxPages 张
	RenderTextPages(text, title string, maxPages int) ([]string, error)
	// DefaultCover 生成兜底封面
	DefaultCover(title string) (string, error)
}

// Options 单次发布选项
type Options struct {
	DryRun    bool // 试运行：完成全部填写但不点击发布
	AutoImage bool // 无图片时自动生成 AI 配图
	MaxImages int  // 期望的图片数量上限（1-9），0 使用默认值
}

// Publisher 图文笔记发布器
// 驱动一个已认证页面走完发布状态机
type Publisher struct {
	session  PageSource
	cfg      Config
	media    MediaGenerator
	platform string
}

// New 创建发布器
func New(session PageSource, media MediaGenerator) *Publisher {
	return NewWithConfig(session, media, DefaultConfig())
}

// NewWithConfig 以指定配置创建发布器
func NewWithConfig(session PageSource, media MediaGenerator, cfg Config) *Publisher {
	return &Publisher{
		session:  session,
		cfg:      cfg,
		media:    media,
		platform: "xiaohongshu",
	}
}

// Publish 执行发布工作流
// 步骤1（导航）重试耗尽即终止；步骤2-7尽力而为，失败只记录不中断；
// 提交是唯一带外层重试、唯一可能产出 Failure/Indeterminate 的步骤
// 会话创建之后的所有路径都返回结果值，不向上抛错
func (p *Publisher) Publish(ctx context.Context, note *types.NoteTask, opts Options) *types.PublishResult {
	utils.InfoWithPlatform(p.platform, fmt.Sprintf("开始发布笔记: %s", note.Title))

	result := &types.PublishResult{Title: note.Title, DryRun: opts.DryRun}

	page, err := p.session.Page()
	if err != nil {
		result.Outcome = types.PublishOutcome{
			Status: types.OutcomeFailure,
			Reason: fmt.Sprintf("获取页面失败: %v", err),
		}
		return result
	}

	// 1. 导航到发布页（致命步骤）
	if err := browser.SafeNavigate(page, p.cfg.ComposerURL, p.cfg.NavTimeout, p.cfg.NavRetries); err != nil {
		utils.ErrorWithPlatform(p.platform, fmt.Sprintf("失败: 打开发布页 - %v", err))
		result.Outcome = types.PublishOutcome{
			Status:     types.OutcomeFailure,
			Reason:     fmt.Sprintf("导航发布页失败: %v", err),
			Screenshot: screenshotOf(err),
		}
		return result
	}
	time.Sleep(p.cfg.ComposerSettleWait)

	// 2. 切换到图文模式（可能已在图文模式，容忍缺席）
	p.selectImageTextMode(page)

	// 3. 上传图片（调用失败只记录，平台可能自动补占位图）
	images := p.resolveMedia(ctx, note, opts)
	p.uploadImages(page, images)

	// 4. 填写标题（截断到平台上限）
	title := truncateRunes(note.Title, p.cfg.TitleMaxLength)
	if browser.SafeFill(page, titleSelector, title, p.cfg.ElementWaitTimeout, 2) {
		utils.InfoWithPlatform(p.platform, fmt.Sprintf("标题已填写: %s", title))
	} else {
		utils.WarnWithPlatform(p.platform, "失败: 填写标题 - 未找到标题输入框")
	}
	time.Sleep(500 * time.Millisecond)

	// 5. 填写正文
	p.fillContent(page, truncateRunes(note.Content, p.cfg.ContentMaxLength))

	// 6. 添加标签
	if len(note.Tags) > 0 {
		p.attachTags(page, note.Tags)
	}

	// 7. 声明 AI 生成内容（合规尽力而为，不是提交的前置条件）
	p.declareAIGenerated(page)

	// 8. 提交前截图（试运行同样保留，作为审计依据）
	preShot, _ := utils.Screenshot(page, "pre_publish")
	result.Screenshot = preShot

	// 9. 试运行到此为止，不触碰发布按钮
	if opts.DryRun {
		utils.InfoWithPlatform(p.platform, "[试运行] 跳过发布")
		result.Outcome = types.PublishOutcome{
			Status:     types.OutcomeSuccess,
			Screenshot: preShot,
		}
		return result
	}

	// 10. 提交并判定结果
	preSubmitURL := page.URL()
	outcome, attempts := p.submitAndClassify(page, preSubmitURL)
	result.Outcome = outcome
	result.Attempts = attempts

	switch outcome.Status {
	case types.OutcomeSuccess:
		utils.SuccessWithPlatform(p.platform, "发布成功")
	case types.OutcomeFailure:
		utils.ErrorWithPlatform(p.platform, fmt.Sprintf("发布失败: %s", outcome.Reason))
	case types.OutcomeIndeterminate:
		utils.WarnWithPlatform(p.platform, "发布结果无法确认，需人工核实")
	}
	return result
}

// selectImageTextMode 用 JS 文本匹配点击「上传图文」TAB
// 避免视口外点击失败；TAB 缺席说明可能已在图文模式
func (p *Publisher) selectImageTextMode(page playwright.Page) {
	script := fmt.Sprintf(`() => {
		const all = document.querySelectorAll('*');
		for (const el of all) {
			if (el.children.length === 0 && el.textContent.trim() === '%s') {
				el.click();
				return true;
			}
		}
		return false;
	}`, imageTextTabText)

	result, err := page.Evaluate(script)
	if err != nil {
		utils.WarnWithPlatform(p.platform, fmt.Sprintf("失败: 切换图文模式 - %v", err))
		return
	}
	if clicked, ok := result.(bool); ok && clicked {
		utils.InfoWithPlatform(p.platform, "已切换到图文模式")
	} else {
		utils.InfoWithPlatform(p.platform, "未找到图文TAB，可能已在图文模式")
	}
	time.Sleep(p.cfg.ModeSwitchWait)
}

// uploadImages 通过文件输入框上传图片
func (p *Publisher) uploadImages(page playwright.Page, images []string) {
	if len(images) == 0 {
		return
	}

	input := page.Locator(fileInputSelector).First()
	if err := input.WaitFor(playwright.LocatorWaitForOptions{
		Timeout: playwright.Float(float64(p.cfg.ElementWaitTimeout.Milliseconds())),
	}); err != nil {
		utils.WarnWithPlatform(p.platform, fmt.Sprintf("失败: 上传图片 - 未找到文件输入框: %v", err))
		return
	}

	if err := input.SetInputFiles(images); err != nil {
		utils.WarnWithPlatform(p.platform, fmt.Sprintf("失败: 上传图片 - %v", err))
		return
	}

	utils.InfoWithPlatform(p.platform, fmt.Sprintf("已上传 %d 张图片", len(images)))
	time.Sleep(p.cfg.UploadWait)
}

// fillContent 填写正文（tiptap ProseMirror 编辑器）
func (p *Publisher) fillContent(page playwright.Page, content string) {
	editor := page.Locator(bodySelector).First()
	if visible, _ := editor.IsVisible(); !visible {
		editor = page.Locator(bodyFallback).First()
	}

	if err := editor.Click(); err != nil {
		utils.WarnWithPlatform(p.platform, fmt.Sprintf("失败: 填写正文 - 点击编辑器失败: %v", err))
		return
	}

	if err := page.Keyboard().Type(content, playwright.KeyboardTypeOptions{
		Delay: playwright.Float(20),
	}); err != nil {
		utils.WarnWithPlatform(p.platform, fmt.Sprintf("失败: 填写正文 - %v", err))
		return
	}

	utils.InfoWithPlatform(p.platform, fmt.Sprintf("正文已填写（%d字）", len([]rune(content))))
	time.Sleep(500 * time.Millisecond)
}

// submitAndClassify 提交步骤的外层重试循环
// 与原语级重试相互独立：每次尝试先检查页面健康并在异常时恢复，
// 点击发布后交给结果判定；Failure/Indeterminate 且还有剩余次数时
// 重试整个提交判定步骤（不回退更早的步骤），耗尽后返回最后一次结果
func (p *Publisher) submitAndClassify(page playwright.Page, preSubmitURL string) (types.PublishOutcome, int) {
	var outcome types.PublishOutcome

	for attempt := 1; attempt <= p.cfg.MaxSubmitRetries; attempt++ {
		if health := browser.CheckPageHealth(page); !health.OK {
			utils.WarnWithPlatform(p.platform, fmt.Sprintf("提交前页面异常: %s，尝试恢复", health.Err))
			if !browser.RecoverPage(page, p.cfg.ComposerURL) {
				outcome = types.PublishOutcome{
					Status: types.OutcomeFailure,
					Reason: "页面恢复失败",
				}
				continue
			}
		}

		// 页面可能同时存在「发布」和「定时发布」，取最后一个
		button := page.Locator(submitButtonSelector).Last()
		if err := button.Click(); err != nil {
			utils.WarnWithPlatform(p.platform, fmt.Sprintf("失败: 点击发布按钮 (第%d次) - %v", attempt, err))
		} else {
			utils.InfoWithPlatform(p.platform, "已点击发布按钮")
		}
		time.Sleep(p.cfg.SubmitWait)

		outcome = p.Classify(page, preSubmitURL)
		if outcome.Status == types.OutcomeSuccess {
			return outcome, attempt
		}

		if attempt < p.cfg.MaxSubmitRetries {
			utils.WarnWithPlatform(p.platform, fmt.Sprintf("提交结果: %s，第%d次重试...", outcome.Status, attempt))
			time.Sleep(p.cfg.SubmitRetryWait)
		}
	}

	return outcome, p.cfg.MaxSubmitRetries
}

// truncateRunes 按字符截断到平台显示上限
func truncateRunes(s string, max int) string {
	runes := []rune(s)
	if len(runes) <= max {
		return s
	}
	return string(runes[:max])
}

// screenshotOf 取出导航错误携带的现场截图路径
func screenshotOf(err error) string {
	var opErr *types.OpError
	if errors.As(err, &opErr) {
		return opErr.Screenshot
	}
	return ""
}
