package types

import (
	"errors"
	"fmt"
)

// ErrorKind 错误类别
type ErrorKind string

const (
	// ErrSetup 会话创建失败（浏览器无法启动、会话目录被占用）
	// 不重试，直接上浮
	ErrSetup ErrorKind = "setup"
	// ErrNavigation 导航重试耗尽
	ErrNavigation ErrorKind = "navigation"
	// ErrTimeout 操作超时，恢复层视为可重试
	ErrTimeout ErrorKind = "timeout"
	// ErrNetwork 网络请求失败
	ErrNetwork ErrorKind = "network"
)

// OpError 带类别和操作名的错误
type OpError struct {
	Kind       ErrorKind
	Op         string
	Screenshot string // 错误现场截图路径，可能为空
	Err        error
}

func (e *OpError) Error() string {
	if e.Err == nil {
		return fmt.Sprintf("%s: %s", e.Kind, e.Op)
	}
	return fmt.Sprintf("%s: %s: %v", e.Kind, e.Op, e.Err)
}

func (e *OpError) Unwrap() error { return e.Err }

// NewSetupError 会话级致命错误
func NewSetupError(op string, err error) *OpError {
	return &OpError{Kind: ErrSetup, Op: op, Err: err}
}

// NewNavigationError 导航失败（附带错误截图）
func NewNavigationError(op, screenshot string, err error) *OpError {
	return &OpError{Kind: ErrNavigation, Op: op, Screenshot: screenshot, Err: err}
}

// NewTimeoutError 超时错误
func NewTimeoutError(op string, err error) *OpError {
	return &OpError{Kind: ErrTimeout, Op: op, Err: err}
}

// NewNetworkError 网络错误
func NewNetworkError(op string, err error) *OpError {
	return &OpError{Kind: ErrNetwork, Op: op, Err: err}
}

// IsKind 判断错误链上是否存在指定类别
func IsKind(err error, kind ErrorKind) bool {
	var opErr *OpError
	if errors.As(err, &opErr) {
		return opErr.Kind == kind
	}
	return false
}
