package publisher

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/jogholy/xhs-publisher/internal/config"
	"github.com/jogholy/xhs-publisher/internal/types"

	"github.com/playwright-community/playwright-go"
)

// fakeSession 固定返回一个测试页面
type fakeSession struct {
	page playwright.Page
}

func (s *fakeSession) Page() (playwright.Page, error) {
	return s.page, nil
}

// fakePage 记录式测试页面：交互全部成功，点击按选择器计数
// 只实现工作流触碰的方法，其余方法走到即崩、测试即失败
type fakePage struct {
	playwright.Page

	mu        sync.Mutex
	gotoErr   error
	gotoCalls int
	evalCalls int
	clicks    map[string]int
	url       string
}

func newFakePage() *fakePage {
	return &fakePage{
		clicks: map[string]int{},
		url:    "about:newtab",
	}
}

func (p *fakePage) Goto(url string, options ...playwright.PageGotoOptions) (playwright.Response, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.gotoCalls++
	if p.gotoErr != nil {
		return nil, p.gotoErr
	}
	p.url = url
	return nil, nil
}

func (p *fakePage) Reload(options ...playwright.PageReloadOptions) (playwright.Response, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.gotoErr != nil {
		return nil, p.gotoErr
	}
	return nil, nil
}

func (p *fakePage) URL() string {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.url
}

func (p *fakePage) Evaluate(expression string, arg ...interface{}) (interface{}, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.evalCalls++
	if strings.Contains(expression, "readyState") {
		return "complete", nil
	}
	return true, nil
}

func (p *fakePage) Locator(selector string, options ...playwright.PageLocatorOptions) playwright.Locator {
	return &fakeLocator{page: p, selector: selector}
}

func (p *fakePage) GetByText(text interface{}, options ...playwright.PageGetByTextOptions) playwright.Locator {
	return &fakeLocator{page: p, selector: fmt.Sprintf("text=%v", text)}
}

func (p *fakePage) Keyboard() playwright.Keyboard {
	return fakeKeyboard{}
}

func (p *fakePage) Screenshot(options ...playwright.PageScreenshotOptions) ([]byte, error) {
	return []byte("png"), nil
}

func (p *fakePage) clickCount(selector string) int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.clicks[selector]
}

func (p *fakePage) evalCount() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.evalCalls
}

// locatorIface 别名让嵌入字段名不与 Locator 方法冲突
type locatorIface = playwright.Locator

type fakeLocator struct {
	locatorIface
	page     *fakePage
	selector string
}

func (l *fakeLocator) Locator(selectorOrLocator interface{}, options ...playwright.LocatorLocatorOptions) playwright.Locator {
	return &fakeLocator{page: l.page, selector: fmt.Sprintf("%s >> %v", l.selector, selectorOrLocator)}
}

func (l *fakeLocator) First() playwright.Locator { return l }
func (l *fakeLocator) Last() playwright.Locator  { return l }

func (l *fakeLocator) WaitFor(options ...playwright.LocatorWaitForOptions) error { return nil }

func (l *fakeLocator) Click(options ...playwright.LocatorClickOptions) error {
	l.page.mu.Lock()
	defer l.page.mu.Unlock()
	l.page.clicks[l.selector]++
	return nil
}

func (l *fakeLocator) Fill(value string, options ...playwright.LocatorFillOptions) error {
	return nil
}

func (l *fakeLocator) IsVisible(options ...playwright.LocatorIsVisibleOptions) (bool, error) {
	return true, nil
}

// Count 固定为 0：页面上没有任何成功/失败文案标记
func (l *fakeLocator) Count() (int, error) { return 0, nil }

type fakeKeyboard struct {
	playwright.Keyboard
}

func (fakeKeyboard) Type(text string, options ...playwright.KeyboardTypeOptions) error {
	return nil
}

// workflowConfig 把所有等待压到最小，测试关注状态机而不是页面节奏
func workflowConfig() Config {
	cfg := DefaultConfig()
	cfg.NavTimeout = 50 * time.Millisecond
	cfg.ComposerSettleWait = time.Millisecond
	cfg.ModeSwitchWait = time.Millisecond
	cfg.ElementWaitTimeout = 50 * time.Millisecond
	cfg.UploadWait = time.Millisecond
	cfg.GenerationTimeout = time.Second
	cfg.SubmitWait = time.Millisecond
	cfg.SubmitRetryWait = time.Millisecond
	cfg.GraceDelay = time.Millisecond
	return cfg
}

func workflowPublisher(t *testing.T, page playwright.Page) *Publisher {
	t.Helper()
	if err := config.InitWithBaseDir(t.TempDir()); err != nil {
		t.Fatalf("初始化配置失败: %v", err)
	}
	// 封面全部失败：工作流测试不走图片上传分支
	gen := &fakeGenerator{coverErr: errors.New("未配置"), defaultErr: errors.New("未配置")}
	return NewWithConfig(&fakeSession{page: page}, gen, workflowConfig())
}

func TestPublishDryRunNeverSubmits(t *testing.T) {
	page := newFakePage()
	p := workflowPublisher(t, page)

	note := &types.NoteTask{Title: "测试标题", Content: "测试正文"}
	result := p.Publish(context.Background(), note, Options{DryRun: true})

	if result.Outcome.Status != types.OutcomeSuccess {
		t.Errorf("试运行应返回成功，实际: %s（%s）", result.Outcome.Status, result.Outcome.Reason)
	}
	if !result.DryRun {
		t.Error("结果应标记为试运行")
	}
	if n := page.clickCount(submitButtonSelector); n != 0 {
		t.Errorf("试运行不应触碰发布按钮，实际点击%d次", n)
	}
	if result.Screenshot == "" {
		t.Error("试运行同样应保留提交前截图")
	}
}

func TestPublishNavigationFailureAborts(t *testing.T) {
	page := newFakePage()
	page.gotoErr = errors.New("net::ERR_CONNECTION_RESET")
	p := workflowPublisher(t, page)

	note := &types.NoteTask{Title: "标题", Content: "正文"}
	result := p.Publish(context.Background(), note, Options{})

	if result.Outcome.Status != types.OutcomeFailure {
		t.Fatalf("导航耗尽应返回失败，实际: %s", result.Outcome.Status)
	}
	if page.gotoCalls != p.cfg.NavRetries {
		t.Errorf("导航应重试%d次，实际%d次", p.cfg.NavRetries, page.gotoCalls)
	}
	// 导航失败后不得尝试任何后续步骤
	if n := page.evalCount(); n != 0 {
		t.Errorf("导航失败后不应再操作页面，实际执行了%d次脚本", n)
	}
	if n := page.clickCount(submitButtonSelector); n != 0 {
		t.Errorf("导航失败后不应触碰发布按钮，实际点击%d次", n)
	}
}

func TestPublishSubmitRetriesOnIndeterminate(t *testing.T) {
	page := newFakePage()
	p := workflowPublisher(t, page)

	// 页面上既没有成功/失败文案，URL 也始终停在发布页：每次判定都是无法确认
	note := &types.NoteTask{Title: "标题", Content: "正文"}
	result := p.Publish(context.Background(), note, Options{})

	if result.Outcome.Status != types.OutcomeIndeterminate {
		t.Fatalf("无信号时应返回无法判定，实际: %s", result.Outcome.Status)
	}
	if result.Attempts != p.cfg.MaxSubmitRetries {
		t.Errorf("结果应携带尝试次数%d，实际%d", p.cfg.MaxSubmitRetries, result.Attempts)
	}
	if n := page.clickCount(submitButtonSelector); n != p.cfg.MaxSubmitRetries {
		t.Errorf("发布按钮应点击%d次，实际%d次", p.cfg.MaxSubmitRetries, n)
	}
}
