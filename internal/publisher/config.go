package publisher

import "time"

// Config 发布工作流配置
type Config struct {
	ComposerURL string // 发布页 URL

	TitleMaxLength   int // 标题字数上限（平台显示单位）
	ContentMaxLength int // 正文字数上限
	MaxTags          int // 最多使用的标签数
	MaxImages        int // 单篇笔记图片上限

	NavTimeout         time.Duration // 导航超时
	NavRetries         int           // 导航重试次数
	ComposerSettleWait time.Duration // 进入发布页后的渲染等待
	ModeSwitchWait     time.Duration // 切换图文模式后的等待
	ElementWaitTimeout time.Duration // 元素等待超时
	UploadWait         time.Duration // 图片上传后的渲染等待
	GenerationTimeout  time.Duration // 外部生成调用（配图/文字图）预算

	MaxSubmitRetries int           // 提交步骤外层重试次数
	SubmitWait       time.Duration // 点击发布后到判定前的等待
	SubmitRetryWait  time.Duration // 两次提交尝试之间的等待
	GraceDelay       time.Duration // 判定无信号时的宽限延迟

	// 结果判定的文本标记是数据而不是逻辑：平台文案会漂移，
	// 更新标记不应触碰状态机
	SuccessMarkers []string
	FailureMarkers []string
}

var defaultConfig = Config{
	ComposerURL: "https://creator.xiaohongshu.com/publish/publish",

	TitleMaxLength:   20,
	ContentMaxLength: 1000,
	MaxTags:          10,
	MaxImages:        9,

	NavTimeout:         15 * time.Second,
	NavRetries:         3,
	ComposerSettleWait: 5 * time.Second,
	ModeSwitchWait:     3 * time.Second,
	ElementWaitTimeout: 5 * time.Second,
	UploadWait:         8 * time.Second,
	GenerationTimeout:  120 * time.Second,

	MaxSubmitRetries: 3,
	SubmitWait:       5 * time.Second,
	SubmitRetryWait:  3 * time.Second,
	GraceDelay:       3 * time.Second,

	SuccessMarkers: []string{
		"发布成功",
		"笔记发布成功",
		"发布完成",
	},
	FailureMarkers: []string{
		"发布失败",
		"内容违规",
		"违反社区规范",
		"审核未通过",
		"字数超出限制",
		"图片不符合规范",
		"操作过于频繁",
		"请稍后再试",
	},
}

// DefaultConfig 默认工作流配置
func DefaultConfig() Config {
	return defaultConfig
}
