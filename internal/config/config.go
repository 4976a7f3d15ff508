package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// LLMConfig 内容生成使用的 LLM 接口配置（OpenAI 兼容）
type LLMConfig struct {
	BaseURL string `yaml:"base_url"`
	APIKey  string `yaml:"api_key"`
	Model   string `yaml:"model"`
}

// ImageConfig 配图生成接口配置（通义万相）
type ImageConfig struct {
	BaseURL string `yaml:"base_url"`
	APIKey  string `yaml:"api_key"`
	Model   string `yaml:"model"`
}

// AppConfig 应用全局配置
// 启动时解析一次，之后各模块显式读取，不做运行时热更新
type AppConfig struct {
	BrowserDataPath string `yaml:"browser_data_path"` // 持久化浏览器会话目录
	ContentPath     string `yaml:"content_path"`      // 生成内容与配图目录
	ScreenshotPath  string `yaml:"screenshot_path"`   // 截图目录
	LogPath         string `yaml:"log_path"`          // 日志与发布报告目录
	DataPath        string `yaml:"data_path"`         // 互动数据目录（评论库、笔记数据快照）
	KeystorePath    string `yaml:"keystore_path"`     // 加密凭据文件路径

	DebugMode bool `yaml:"debug"`    // 调试模式开关
	Headless  bool `yaml:"headless"` // 浏览器无头模式开关

	LLM   LLMConfig   `yaml:"llm"`
	Image ImageConfig `yaml:"image"`
}

var Config *AppConfig

// Init 初始化全局配置
// 目录基于可执行文件所在位置；可选的 config.yaml 覆盖默认值，
// 环境变量优先级最高
func Init() error {
	exePath, err := os.Executable()
	if err != nil {
		return err
	}
	return InitWithBaseDir(filepath.Dir(exePath))
}

// InitWithBaseDir 以指定基础目录初始化（测试用）
func InitWithBaseDir(baseDir string) error {
	Config = &AppConfig{
		BrowserDataPath: filepath.Join(baseDir, DefaultBrowserDataPath),
		ContentPath:     filepath.Join(baseDir, DefaultContentPath),
		ScreenshotPath:  filepath.Join(baseDir, DefaultScreenshotPath),
		LogPath:         filepath.Join(baseDir, DefaultLogPath),
		DataPath:        filepath.Join(baseDir, DefaultDataPath),
		KeystorePath:    filepath.Join(baseDir, DefaultKeystorePath),
		LLM: LLMConfig{
			BaseURL: DefaultLLMBaseURL,
			Model:   DefaultLLMModel,
		},
		Image: ImageConfig{
			BaseURL: DefaultImageBaseURL,
			Model:   DefaultImageModel,
		},
	}

	// 可选配置文件
	configFile := filepath.Join(baseDir, ConfigFileName)
	if data, err := os.ReadFile(configFile); err == nil {
		if err := yaml.Unmarshal(data, Config); err != nil {
			return fmt.Errorf("解析配置文件失败: %w", err)
		}
	}

	// 环境变量覆盖
	if v := os.Getenv("XHS_DEBUG"); v != "" {
		Config.DebugMode = v == "true"
	}
	if v := os.Getenv("XHS_HEADLESS"); v != "" {
		Config.Headless = v == "true"
	}
	if v := os.Getenv("XHS_LLM_API_KEY"); v != "" {
		Config.LLM.APIKey = v
	}
	if v := os.Getenv("XHS_LLM_BASE_URL"); v != "" {
		Config.LLM.BaseURL = v
	}
	// 通义系共用一把 Key：DASHSCOPE_API_KEY 同时兜底 LLM 接口
	if v := os.Getenv("DASHSCOPE_API_KEY"); v != "" {
		Config.Image.APIKey = v
		if Config.LLM.APIKey == "" {
			Config.LLM.APIKey = v
		}
	}

	// 创建目录
	dirs := []string{
		Config.BrowserDataPath,
		Config.ContentPath,
		Config.ScreenshotPath,
		Config.LogPath,
		Config.DataPath,
	}
	for _, dir := range dirs {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("create directory %s failed: %w", dir, err)
		}
	}

	return nil
}
