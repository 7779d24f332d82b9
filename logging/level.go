package logging

import (
	"encoding/json"
	"fmt"
	"strings"

	"gopkg.in/yaml.v3"
)

// Level 日志级别
// 零值表示未设置，由配置默认值（INFO）替换
type Level int

const (
	LevelTrace Level = iota + 1
	LevelDebug
	LevelInfo
	LevelWarn
	LevelFatal
)

// DefaultLevel 配置未指定级别时使用的阈值
const DefaultLevel = LevelInfo

// alwaysEmitIndex 索引大于该值的级别（WARN、FATAL）不受阈值限制
const alwaysEmitIndex = 2

// String 返回日志级别的字符串表示
func (l Level) String() string {
	switch l {
	case LevelTrace:
		return "TRACE"
	case LevelDebug:
		return "DEBUG"
	case LevelInfo:
		return "INFO"
	case LevelWarn:
		return "WARN"
	case LevelFatal:
		return "FATAL"
	default:
		return "UNKNOWN"
	}
}

// Index 返回级别的序号，TRACE=0 ... FATAL=4
// 未知级别按 TRACE 处理
func (l Level) Index() int {
	if l < LevelTrace || l > LevelFatal {
		return 0
	}
	return int(l - LevelTrace)
}

// IsValid 判断是否为已知级别
func (l Level) IsValid() bool {
	return l >= LevelTrace && l <= LevelFatal
}

// ParseLevel 解析级别名称（不区分大小写）
func ParseLevel(s string) (Level, error) {
	switch strings.ToUpper(strings.TrimSpace(s)) {
	case "TRACE":
		return LevelTrace, nil
	case "DEBUG":
		return LevelDebug, nil
	case "INFO":
		return LevelInfo, nil
	case "WARN", "WARNING":
		return LevelWarn, nil
	case "FATAL":
		return LevelFatal, nil
	default:
		return 0, fmt.Errorf("invalid log level: %q", s)
	}
}

// MarshalText 实现 encoding.TextMarshaler
func (l Level) MarshalText() ([]byte, error) {
	if l == 0 {
		return []byte{}, nil
	}
	return []byte(l.String()), nil
}

// UnmarshalText 实现 encoding.TextUnmarshaler，空字符串表示未设置
func (l *Level) UnmarshalText(text []byte) error {
	if len(text) == 0 {
		*l = 0
		return nil
	}
	parsed, err := ParseLevel(string(text))
	if err != nil {
		return err
	}
	*l = parsed
	return nil
}

// UnmarshalJSON 只接受级别名称，数字会被拒绝
func (l *Level) UnmarshalJSON(data []byte) error {
	var name *string
	if err := json.Unmarshal(data, &name); err != nil {
		return fmt.Errorf("invalid log level %s: must be a level name", data)
	}
	if name == nil {
		return nil
	}
	return l.UnmarshalText([]byte(*name))
}

// UnmarshalYAML 只接受级别名称，数字会被拒绝
func (l *Level) UnmarshalYAML(value *yaml.Node) error {
	switch {
	case value.Kind == yaml.ScalarNode && value.ShortTag() == "!!null":
		return nil
	case value.Kind == yaml.ScalarNode && value.ShortTag() == "!!str":
		return l.UnmarshalText([]byte(value.Value))
	default:
		return fmt.Errorf("invalid log level %q: must be a level name", value.Value)
	}
}

// passesThreshold 判断 level 在 threshold 下是否需要输出
// WARN 与 FATAL 总是输出
func passesThreshold(level, threshold Level) bool {
	idx := level.Index()
	if idx > alwaysEmitIndex {
		return true
	}
	return idx >= threshold.Index()
}
