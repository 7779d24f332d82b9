package logging

import (
	"fmt"
	"strings"
)

// DefaultDateFormat %date 占位符的默认格式
const DefaultDateFormat = TimestampFormat

// PatternConverter 模式转换函数，对模式串做一次替换并返回结果
type PatternConverter func(pattern string, e Event) string

// PatternLayout 模式布局
//
// 自定义转换函数先执行，随后依次执行内置的 date、level、exception、newline、message。
// 每个内置占位符支持长短两种写法，长写法先替换。
type PatternLayout struct {
	params     Params
	converters []PatternConverter
}

// NewPatternLayout 创建模式布局
func NewPatternLayout(params Params) (*PatternLayout, error) {
	custom, err := customConverters(params[ParamCustomCallbacks])
	if err != nil {
		return nil, err
	}

	l := &PatternLayout{params: params}
	l.converters = append(custom,
		l.datePattern,
		levelPattern,
		exceptionPattern,
		newlinePattern,
		messagePattern,
	)
	return l, nil
}

func (l *PatternLayout) Kind() LayoutKind {
	return LayoutPattern
}

// HasRequiredParams 需要非空的 pattern 参数
func (l *PatternLayout) HasRequiredParams() bool {
	return l.params.Has(ParamPattern)
}

// Format 依次应用转换函数
func (l *PatternLayout) Format(e Event) (Entry, error) {
	pattern := l.params.String(ParamPattern)
	for _, convert := range l.converters {
		pattern = convert(pattern, e)
	}
	return Entry{Line: pattern}, nil
}

func (l *PatternLayout) datePattern(pattern string, e Event) string {
	format := l.params.String(ParamDateFormat)
	if format == "" {
		format = DefaultDateFormat
	}
	date := e.Timestamp.Format(format)
	return replaceToken(pattern, "%date", "%d", date)
}

func levelPattern(pattern string, e Event) string {
	return replaceToken(pattern, "%level", "%l", e.Level.String())
}

func exceptionPattern(pattern string, e Event) string {
	return replaceToken(pattern, "%exception", "%e", e.ExceptionMessage())
}

func newlinePattern(pattern string, _ Event) string {
	return replaceToken(pattern, "%newline", "%n", lineEnding())
}

func messagePattern(pattern string, e Event) string {
	return replaceToken(pattern, "%message", "%m", e.Message)
}

func replaceToken(pattern, long, short, value string) string {
	pattern = strings.ReplaceAll(pattern, long, value)
	return strings.ReplaceAll(pattern, short, value)
}

// customConverters 解析 custom_pattern_callbacks 参数
func customConverters(v any) ([]PatternConverter, error) {
	switch cb := v.(type) {
	case nil:
		return nil, nil
	case PatternConverter:
		return []PatternConverter{cb}, nil
	case func(string, Event) string:
		return []PatternConverter{cb}, nil
	case func(string) string:
		return []PatternConverter{stringConverter(cb)}, nil
	case []PatternConverter:
		return append([]PatternConverter(nil), cb...), nil
	case []func(string) string:
		out := make([]PatternConverter, 0, len(cb))
		for _, fn := range cb {
			out = append(out, stringConverter(fn))
		}
		return out, nil
	case []any:
		out := make([]PatternConverter, 0, len(cb))
		for _, item := range cb {
			converted, err := customConverters(item)
			if err != nil {
				return nil, err
			}
			out = append(out, converted...)
		}
		return out, nil
	default:
		return nil, fmt.Errorf("param %s: unsupported callback type %T", ParamCustomCallbacks, v)
	}
}

func stringConverter(fn func(string) string) PatternConverter {
	return func(pattern string, _ Event) string {
		return fn(pattern)
	}
}
