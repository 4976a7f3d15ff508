package config

const (
	DefaultBrowserDataPath = "browser_data"
	DefaultContentPath     = "content"
	DefaultScreenshotPath  = "screenshots"
	DefaultLogPath         = "logs"
	DefaultDataPath        = "data"
	DefaultKeystorePath    = "storage/keystore.bin"

	ConfigFileName = "config.yaml"

	// 默认模型是通义系，LLM 接口默认走 DashScope 的 OpenAI 兼容端点
	DefaultLLMModel     = "qwen-plus"
	DefaultLLMBaseURL   = "https://dashscope.aliyuncs.com/compatible-mode/v1"
	DefaultImageBaseURL = "https://dashscope.aliyuncs.com"
	DefaultImageModel   = "wanx2.1-t2i-turbo"
)
