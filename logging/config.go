package logging

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

// AppenderKind 追加器类型
type AppenderKind string

const (
	AppenderFile  AppenderKind = "file"
	AppenderTable AppenderKind = "table"
	// AppenderWordPress 表追加器的别名
	AppenderWordPress AppenderKind = "wordpress"
)

// LayoutKind 布局类型
type LayoutKind string

const (
	LayoutSimple  LayoutKind = "simple"
	LayoutPattern LayoutKind = "pattern"
	LayoutColumn  LayoutKind = "column"
)

// DefaultTarget 未配置追加器时文件追加器写入的路径
const DefaultTarget = "default.log"

// 参数名
const (
	ParamTarget          = "target"
	ParamRollPeriod      = "roll_period"
	ParamRollSize        = "roll_size"
	ParamColumns         = "columns"
	ParamTableDef        = "table_def"
	ParamStore           = "store"
	ParamErrorHandler    = "error_handler"
	ParamContext         = "context"
	ParamPattern         = "pattern"
	ParamDateFormat      = "date_format"
	ParamCustomCallbacks = "custom_pattern_callbacks"
)

// Config Logger 配置，每个 Logger 独占一份
type Config struct {
	Appender     AppenderConfig `json:"appender" yaml:"appender"`
	Layout       LayoutConfig   `json:"layout" yaml:"layout"`
	LoggingLevel Level          `json:"logging_level" yaml:"logging_level"`
}

// AppenderConfig 追加器配置
type AppenderConfig struct {
	Type   AppenderKind `json:"type" yaml:"type"`
	Params Params       `json:"params" yaml:"params"`
}

// LayoutConfig 布局配置
type LayoutConfig struct {
	Type   LayoutKind `json:"type" yaml:"type"`
	Params Params     `json:"params" yaml:"params"`
}

// withDefaults 返回补全默认值后的副本，参数表会被复制
func (c Config) withDefaults() Config {
	out := c
	if out.Appender.Type == "" {
		out.Appender = AppenderConfig{
			Type:   AppenderFile,
			Params: Params{ParamTarget: DefaultTarget},
		}
	}
	if out.Layout.Type == "" {
		out.Layout = LayoutConfig{Type: LayoutSimple}
	}
	out.Appender.Params = out.Appender.Params.Clone()
	out.Layout.Params = out.Layout.Params.Clone()
	if out.LoggingLevel == 0 {
		out.LoggingLevel = DefaultLevel
	}
	return out
}

// Params 追加器或布局的参数
// 值可以来自 Go 代码，也可以来自 JSON/YAML 解码结果
type Params map[string]any

// Clone 浅拷贝参数表
func (p Params) Clone() Params {
	out := make(Params, len(p))
	for k, v := range p {
		out[k] = v
	}
	return out
}

// Has 判断参数存在且非空
func (p Params) Has(key string) bool {
	v, ok := p[key]
	if !ok || v == nil {
		return false
	}
	switch val := v.(type) {
	case string:
		return val != ""
	case []string:
		return len(val) > 0
	case []any:
		return len(val) > 0
	}
	return true
}

// HasAll 判断所有参数存在且非空
func (p Params) HasAll(keys ...string) bool {
	for _, k := range keys {
		if !p.Has(k) {
			return false
		}
	}
	return true
}

// String 读取字符串参数
func (p Params) String(key string) string {
	switch v := p[key].(type) {
	case nil:
		return ""
	case string:
		return v
	case fmt.Stringer:
		return v.String()
	default:
		return fmt.Sprintf("%v", v)
	}
}

// Int64 读取整数参数，支持数字与数字字符串
func (p Params) Int64(key string) (int64, bool, error) {
	v, ok := p[key]
	if !ok || v == nil {
		return 0, false, nil
	}
	switch n := v.(type) {
	case int:
		return int64(n), true, nil
	case int32:
		return int64(n), true, nil
	case int64:
		return n, true, nil
	case uint:
		return uintToInt64(key, uint64(n))
	case uint32:
		return int64(n), true, nil
	case uint64:
		return uintToInt64(key, n)
	case float32:
		return floatToInt64(key, float64(n))
	case float64:
		return floatToInt64(key, n)
	case string:
		if strings.TrimSpace(n) == "" {
			return 0, false, nil
		}
		i, err := strconv.ParseInt(strings.TrimSpace(n), 10, 64)
		if err != nil {
			return 0, true, fmt.Errorf("param %s: %w", key, err)
		}
		return i, true, nil
	default:
		return 0, true, fmt.Errorf("param %s: cannot convert %T to int", key, v)
	}
}

func uintToInt64(key string, n uint64) (int64, bool, error) {
	if n > math.MaxInt64 {
		return 0, true, fmt.Errorf("param %s: %d overflows int64", key, n)
	}
	return int64(n), true, nil
}

// floatToInt64 超出 int64 范围或非有限值时报错
func floatToInt64(key string, f float64) (int64, bool, error) {
	if math.IsNaN(f) || f >= math.MaxInt64 || f < math.MinInt64 {
		return 0, true, fmt.Errorf("param %s: %v overflows int64", key, f)
	}
	return int64(f), true, nil
}

// Strings 读取字符串列表参数
// 支持 []string、[]any 以及逗号分隔的字符串
func (p Params) Strings(key string) []string {
	switch v := p[key].(type) {
	case []string:
		return append([]string(nil), v...)
	case []any:
		out := make([]string, 0, len(v))
		for _, item := range v {
			out = append(out, fmt.Sprintf("%v", item))
		}
		return out
	case string:
		if v == "" {
			return nil
		}
		parts := strings.Split(v, ",")
		out := make([]string, 0, len(parts))
		for _, part := range parts {
			if part = strings.TrimSpace(part); part != "" {
				out = append(out, part)
			}
		}
		return out
	default:
		return nil
	}
}
