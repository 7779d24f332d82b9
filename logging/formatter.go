package logging

import (
	"runtime"
	"time"
)

// TimestampFormat 简单布局与列布局使用的时间格式
const TimestampFormat = "2006-01-02 15:04:05"

// Event 一次日志调用的内容，写入期间不可变
type Event struct {
	Message   string
	Level     Level
	Exception error
	Timestamp time.Time
}

// ExceptionMessage 返回异常信息，没有异常时为空串
func (e Event) ExceptionMessage() string {
	if e.Exception == nil {
		return ""
	}
	return e.Exception.Error()
}

// Field 日志附加字段
type Field func(*Event)

// Exception 附加异常
func Exception(err error) Field {
	return func(e *Event) {
		e.Exception = err
	}
}

// At 指定日志时间，不指定时使用当前时间
func At(t time.Time) Field {
	return func(e *Event) {
		e.Timestamp = t
	}
}

// Entry 布局输出
// 文本布局填充 Line，列布局填充 Values
type Entry struct {
	Line   string
	Values []any
}

// Layout 日志布局接口
type Layout interface {
	// Kind 布局类型
	Kind() LayoutKind
	// HasRequiredParams 必需参数是否齐全
	HasRequiredParams() bool
	// Format 格式化日志事件
	Format(e Event) (Entry, error)
}

// lineEnding 平台换行符
func lineEnding() string {
	if runtime.GOOS == "windows" {
		return "\r\n"
	}
	return "\n"
}
