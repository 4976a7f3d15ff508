package types

// NoteTask 图文笔记任务
// 发布工作流的不可变输入
type NoteTask struct {
	Title        string   `json:"title"`                  // 标题（平台限制20字）
	Content      string   `json:"content"`                // 正文（平台限制1000字）
	Tags         []string `json:"tags"`                   // 标签，最多使用前10个
	Images       []string `json:"images"`                 // 本地图片路径，按顺序上传
	OverflowText string   `json:"overflow_text,omitempty"` // 超出正文限制的长文，渲染为文字图片
}

// OutcomeStatus 发布结果状态
type OutcomeStatus string

const (
	// OutcomeSuccess 确认发布成功
	OutcomeSuccess OutcomeStatus = "success"
	// OutcomeFailure 页面出现明确的失败提示
	OutcomeFailure OutcomeStatus = "failure"
	// OutcomeIndeterminate 平台未给出任何信号，需人工核实
	// 不等同于成功，也不等同于失败
	OutcomeIndeterminate OutcomeStatus = "indeterminate"
)

// PublishOutcome 提交结果判定
type PublishOutcome struct {
	Status     OutcomeStatus `json:"status"`
	Reason     string        `json:"reason,omitempty"`     // 失败时为页面匹配到的提示文本
	Screenshot string        `json:"screenshot,omitempty"` // 判定后的现场截图
}

// PublishResult 一次发布工作流的最终结果
// 工作流总是返回值而不是抛错，调用方得到统一的结果形态
type PublishResult struct {
	Outcome    PublishOutcome `json:"outcome"`
	Title      string         `json:"title"`
	Attempts   int            `json:"attempts"` // 提交步骤实际尝试次数
	DryRun     bool           `json:"dry_run,omitempty"`
	Screenshot string         `json:"screenshot,omitempty"` // 提交前截图
}

// Success 是否确认成功（试运行视为成功）
func (r *PublishResult) Success() bool {
	return r.Outcome.Status == OutcomeSuccess
}
