package utils

import (
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/jogholy/xhs-publisher/internal/config"
	"github.com/jogholy/xhs-publisher/internal/types"
)

type Logger struct {
	file  *os.File
	mutex sync.Mutex
}

var defaultLogger *Logger

func InitLogger() error {
	// 配置未初始化时只输出到控制台
	if config.Config == nil {
		defaultLogger = &Logger{}
		return nil
	}
	logPath := filepath.Join(config.Config.LogPath, fmt.Sprintf("xhs_%s.log", time.Now().Format("20060102")))
	file, err := os.OpenFile(logPath, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0666)
	if err != nil {
		return err
	}
	defaultLogger = &Logger{file: file}
	return nil
}

func GetLogger() *Logger {
	if defaultLogger == nil {
		if err := InitLogger(); err != nil {
			defaultLogger = &Logger{}
		}
	}
	return defaultLogger
}

// log 内部日志记录方法，同时写文件和标准错误输出
func (l *Logger) log(level types.LogLevel, platform, msg string) {
	timestamp := time.Now().Format("2006-01-02 15:04:05")

	var line string
	if platform != "" {
		line = fmt.Sprintf("[%s] [%s] [%s] %s\n", timestamp, level, platform, msg)
	} else {
		line = fmt.Sprintf("[%s] [%s] %s\n", timestamp, level, msg)
	}

	l.mutex.Lock()
	defer l.mutex.Unlock()

	if l.file != nil {
		_, _ = l.file.WriteString(line)
	}
	_, _ = fmt.Fprint(os.Stderr, line)
}

// ========== 基础日志函数（不带平台）==========

func (l *Logger) Info(msg string)    { l.log(types.LogLevelInfo, "", msg) }
func (l *Logger) Error(msg string)   { l.log(types.LogLevelError, "", msg) }
func (l *Logger) Warn(msg string)    { l.log(types.LogLevelWarn, "", msg) }
func (l *Logger) Success(msg string) { l.log(types.LogLevelSuccess, "", msg) }

func (l *Logger) Debug(msg string) {
	if config.Config != nil && !config.Config.DebugMode {
		return
	}
	l.log(types.LogLevelDebug, "", msg)
}

// ========== 带平台的日志函数 ==========

func (l *Logger) InfoWithPlatform(platform, msg string)    { l.log(types.LogLevelInfo, platform, msg) }
func (l *Logger) ErrorWithPlatform(platform, msg string)   { l.log(types.LogLevelError, platform, msg) }
func (l *Logger) WarnWithPlatform(platform, msg string)    { l.log(types.LogLevelWarn, platform, msg) }
func (l *Logger) SuccessWithPlatform(platform, msg string) { l.log(types.LogLevelSuccess, platform, msg) }

// ========== 全局便捷函数 ==========

func Info(msg string)    { GetLogger().Info(msg) }
func Error(msg string)   { GetLogger().Error(msg) }
func Warn(msg string)    { GetLogger().Warn(msg) }
func Debug(msg string)   { GetLogger().Debug(msg) }
func Success(msg string) { GetLogger().Success(msg) }

func InfoWithPlatform(platform, msg string)    { GetLogger().InfoWithPlatform(platform, msg) }
func ErrorWithPlatform(platform, msg string)   { GetLogger().ErrorWithPlatform(platform, msg) }
func WarnWithPlatform(platform, msg string)    { GetLogger().WarnWithPlatform(platform, msg) }
func SuccessWithPlatform(platform, msg string) { GetLogger().SuccessWithPlatform(platform, msg) }
