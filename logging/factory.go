package logging

import "fmt"

// NewAppender 按类型创建追加器，类型集合是封闭的
func NewAppender(kind AppenderKind, params Params) (Appender, error) {
	switch kind {
	case AppenderFile:
		return NewFileAppender(params), nil
	case AppenderTable, AppenderWordPress:
		return NewTableAppender(kind, params), nil
	default:
		return nil, &ConfigurationError{
			Component: "Appender",
			Type:      string(kind),
			Reason:    "is an unknown appender type",
		}
	}
}

// NewLayout 按类型创建布局
func NewLayout(kind LayoutKind, params Params) (Layout, error) {
	switch kind {
	case LayoutSimple:
		return NewSimpleLayout(params), nil
	case LayoutPattern:
		layout, err := NewPatternLayout(params)
		if err != nil {
			return nil, &ConfigurationError{Component: "Layout", Type: string(kind), Reason: fmt.Sprintf("is invalid: %v", err)}
		}
		return layout, nil
	case LayoutColumn:
		return NewColumnLayout(params), nil
	default:
		return nil, &ConfigurationError{
			Component: "Layout",
			Type:      string(kind),
			Reason:    "is an unknown layout type",
		}
	}
}
