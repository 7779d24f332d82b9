package logging

import "fmt"

// ConfigurationError 追加器或布局配置无效
// 在首次写日志时返回，之后同一 Logger 的每次调用都返回同一个错误
type ConfigurationError struct {
	Component string // "Appender" 或 "Layout"
	Type      string
	Reason    string
}

func (e *ConfigurationError) Error() string {
	return fmt.Sprintf("%s %s %s", e.Component, e.Type, e.Reason)
}

func missingParamsError(component, typ string) *ConfigurationError {
	return &ConfigurationError{Component: component, Type: typ, Reason: "does not have the required parameters"}
}

func unsupportedLayoutError(appender AppenderKind, layout LayoutKind) *ConfigurationError {
	return &ConfigurationError{
		Component: "Appender",
		Type:      string(appender),
		Reason:    fmt.Sprintf("does not support %s layout", layout),
	}
}

// StructuralMismatchError 列名数量与值数量不一致
type StructuralMismatchError struct {
	Columns []string
	Values  int
}

func (e *StructuralMismatchError) Error() string {
	return fmt.Sprintf("columns and data values do not match: %d columns %v, %d values",
		len(e.Columns), e.Columns, e.Values)
}

// SinkUnavailableError 目标表无法确认或创建
// 表追加器吞掉该错误并丢弃本次写入
type SinkUnavailableError struct {
	Target string
	Err    error
}

func (e *SinkUnavailableError) Error() string {
	return fmt.Sprintf("log table %s unavailable: %v", e.Target, e.Err)
}

func (e *SinkUnavailableError) Unwrap() error {
	return e.Err
}
