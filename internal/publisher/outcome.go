package publisher

import (
	"time"

	"github.com/jogholy/xhs-publisher/internal/types"
	"github.com/jogholy/xhs-publisher/internal/utils"

	"github.com/playwright-community/playwright-go"
)

// 结果判定
// 平台没有结构化的成功信号，只能按页面信号按序推断：
//  1. URL 离开发布页 → 成功
//  2. 页面出现成功文案 → 成功
//  3. 页面出现失败文案 → 失败（附匹配文本）
//  4. 宽限延迟后复查 URL 仍未变化 → 无法判定
// 无法判定是独立的非错误结果，调用方必须显式处理，不得当作成功

const reasonMaxRunes = 50

// Classify 判定一次提交的结果
// 无论走到哪个分支都附带判定后的现场截图
func (p *Publisher) Classify(page playwright.Page, preSubmitURL string) types.PublishOutcome {
	outcome := p.classifyOnce(page, preSubmitURL)

	if outcome.Status == types.OutcomeIndeterminate {
		// 页面可能只是渲染慢，宽限后复查一次
		time.Sleep(p.cfg.GraceDelay)
		outcome = p.classifyOnce(page, preSubmitURL)
	}

	if shot, err := utils.Screenshot(page, "post_submit"); err == nil {
		outcome.Screenshot = shot
	}
	return outcome
}

// classifyOnce 单轮判定，在同一宽限窗口内结果幂等
func (p *Publisher) classifyOnce(page playwright.Page, preSubmitURL string) types.PublishOutcome {
	currentURL := page.URL()
	successHit := p.findMarker(page, p.cfg.SuccessMarkers)
	failureHit := p.findMarker(page, p.cfg.FailureMarkers)

	return decideOutcome(currentURL, preSubmitURL, successHit != "", failureHit)
}

// decideOutcome 纯判定逻辑，与页面检查分离
func decideOutcome(currentURL, preSubmitURL string, successHit bool, failureHit string) types.PublishOutcome {
	if currentURL != preSubmitURL {
		return types.PublishOutcome{Status: types.OutcomeSuccess}
	}
	if successHit {
		return types.PublishOutcome{Status: types.OutcomeSuccess}
	}
	if failureHit != "" {
		return types.PublishOutcome{
			Status: types.OutcomeFailure,
			Reason: truncateRunes(failureHit, reasonMaxRunes),
		}
	}
	return types.PublishOutcome{Status: types.OutcomeIndeterminate}
}

// findMarker 在页面上查找首个可见的文本标记
func (p *Publisher) findMarker(page playwright.Page, markers []string) string {
	for _, marker := range markers {
		el := page.GetByText(marker).First()
		count, err := el.Count()
		if err != nil || count == 0 {
			continue
		}
		if visible, _ := el.IsVisible(); visible {
			return marker
		}
	}
	return ""
}
