package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestDefaults(t *testing.T) {
	t.Setenv("XHS_LLM_API_KEY", "")
	t.Setenv("DASHSCOPE_API_KEY", "")

	if err := InitWithBaseDir(t.TempDir()); err != nil {
		t.Fatalf("初始化失败: %v", err)
	}

	if Config.LLM.Model != "qwen-plus" {
		t.Errorf("默认 LLM 模型不符: %s", Config.LLM.Model)
	}
	// 默认模型是通义系，base_url 必须指向 DashScope 兼容端点，
	// 留空会打到 api.openai.com 上
	if Config.LLM.BaseURL != DefaultLLMBaseURL {
		t.Errorf("默认 LLM base_url 不符: %s", Config.LLM.BaseURL)
	}
	if Config.Image.BaseURL != DefaultImageBaseURL {
		t.Errorf("默认图片接口 base_url 不符: %s", Config.Image.BaseURL)
	}
}

func TestDashScopeKeyFallsBackToLLM(t *testing.T) {
	t.Setenv("XHS_LLM_API_KEY", "")
	t.Setenv("DASHSCOPE_API_KEY", "sk-dash")

	if err := InitWithBaseDir(t.TempDir()); err != nil {
		t.Fatal(err)
	}
	if Config.Image.APIKey != "sk-dash" {
		t.Errorf("图片接口 Key 不符: %s", Config.Image.APIKey)
	}
	if Config.LLM.APIKey != "sk-dash" {
		t.Errorf("DASHSCOPE_API_KEY 应兜底 LLM Key: %s", Config.LLM.APIKey)
	}
}

func TestExplicitLLMKeyWins(t *testing.T) {
	t.Setenv("XHS_LLM_API_KEY", "sk-llm")
	t.Setenv("DASHSCOPE_API_KEY", "sk-dash")

	if err := InitWithBaseDir(t.TempDir()); err != nil {
		t.Fatal(err)
	}
	if Config.LLM.APIKey != "sk-llm" {
		t.Errorf("显式 LLM Key 应优先: %s", Config.LLM.APIKey)
	}
	if Config.Image.APIKey != "sk-dash" {
		t.Errorf("图片接口 Key 不符: %s", Config.Image.APIKey)
	}
}

func TestEnvToggles(t *testing.T) {
	t.Setenv("XHS_DEBUG", "true")
	t.Setenv("XHS_HEADLESS", "true")

	if err := InitWithBaseDir(t.TempDir()); err != nil {
		t.Fatal(err)
	}
	if !Config.DebugMode || !Config.Headless {
		t.Errorf("环境变量开关未生效: debug=%v headless=%v", Config.DebugMode, Config.Headless)
	}
}

func TestYAMLOverride(t *testing.T) {
	t.Setenv("XHS_HEADLESS", "")
	dir := t.TempDir()
	yaml := "headless: true\nllm:\n  model: qwen-max\n"
	if err := os.WriteFile(filepath.Join(dir, ConfigFileName), []byte(yaml), 0644); err != nil {
		t.Fatal(err)
	}

	if err := InitWithBaseDir(dir); err != nil {
		t.Fatal(err)
	}
	if !Config.Headless {
		t.Error("配置文件 headless 未生效")
	}
	if Config.LLM.Model != "qwen-max" {
		t.Errorf("配置文件模型未生效: %s", Config.LLM.Model)
	}
}

func TestDirsCreated(t *testing.T) {
	dir := t.TempDir()
	if err := InitWithBaseDir(dir); err != nil {
		t.Fatal(err)
	}
	for _, sub := range []string{DefaultContentPath, DefaultLogPath, DefaultDataPath} {
		if _, err := os.Stat(filepath.Join(dir, sub)); err != nil {
			t.Errorf("目录未创建: %s", sub)
		}
	}
}
