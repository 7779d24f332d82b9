package logging

import "slices"

// Appender 日志追加器接口
type Appender interface {
	// Kind 追加器类型
	Kind() AppenderKind
	// HasRequiredParams 必需参数是否齐全且非空
	HasRequiredParams() bool
	// SupportsLayout 是否支持指定布局
	SupportsLayout(kind LayoutKind) bool
	// SetLevel 设置阈值
	SetLevel(level Level)
	// OverLogThreshold 指定级别是否需要输出
	OverLogThreshold(level Level) bool
	// Write 写入一条格式化后的日志
	Write(entry Entry) error
	// Close 释放底层资源，可重复调用
	Close() error
}

// appenderBase 各追加器共用的参数与阈值
type appenderBase struct {
	kind             AppenderKind
	params           Params
	level            Level
	requiredParams   []string
	supportedLayouts []LayoutKind
}

func (a *appenderBase) Kind() AppenderKind {
	return a.kind
}

func (a *appenderBase) HasRequiredParams() bool {
	if a.params == nil {
		return false
	}
	return a.params.HasAll(a.requiredParams...)
}

func (a *appenderBase) SupportsLayout(kind LayoutKind) bool {
	return slices.Contains(a.supportedLayouts, kind)
}

func (a *appenderBase) SetLevel(level Level) {
	a.level = level
}

func (a *appenderBase) OverLogThreshold(level Level) bool {
	return passesThreshold(level, a.level)
}
