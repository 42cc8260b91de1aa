// Package logx 提供模拟核心使用的最小结构化日志接口及其 zap 实现
package logx

import "go.uber.org/zap"

// Logger 是各系统共用的最小日志接口。
//
// 约束：
// - 保持 API 极简，只承载结构化字段
// - 系统在构造时注入 Logger，nil 时使用 Nop()
type Logger interface {
	Debug(msg string, fields ...zap.Field)
	Info(msg string, fields ...zap.Field)
	Warn(msg string, fields ...zap.Field)
	Error(msg string, fields ...zap.Field)
	With(fields ...zap.Field) Logger
}

// Nop 返回丢弃所有日志的 Logger
func Nop() Logger {
	return NewZapLogger(nil)
}

// OrNop 在 l 为 nil 时返回 Nop()
func OrNop(l Logger) Logger {
	if l == nil {
		return Nop()
	}
	return l
}
