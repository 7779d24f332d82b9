package logging

import (
	"context"
	"errors"
	"fmt"
	"time"
)

// TableStore 表追加器使用的关系型存储
// 连接的生命周期由宿主负责，追加器不会关闭它
type TableStore interface {
	// HasTable 判断表是否存在
	HasTable(ctx context.Context, table string) (bool, error)
	// CreateTable 建表；ddl 为空时使用存储自带的默认表结构
	CreateTable(ctx context.Context, table, ddl string) error
	// Insert 插入一行，columns 与 values 按位置对应
	Insert(ctx context.Context, table string, columns []string, values []Value) error
}

// ValueFormat 列值的存储格式
type ValueFormat int

const (
	FormatText ValueFormat = iota
	FormatNumeric
)

func (f ValueFormat) String() string {
	if f == FormatNumeric {
		return "%d"
	}
	return "%s"
}

// Value 带存储格式的列值
type Value struct {
	Data   any
	Format ValueFormat
}

// NewValue 根据值的运行时类型推断存储格式
// 数字与数字字符串按数值存储，时间按 TimestampFormat 存为文本，其余存为文本
func NewValue(v any) Value {
	switch n := v.(type) {
	case int, int8, int16, int32, int64, uint, uint8, uint16, uint32, uint64, float32, float64:
		return Value{Data: n, Format: FormatNumeric}
	case bool:
		if n {
			return Value{Data: 1, Format: FormatNumeric}
		}
		return Value{Data: 0, Format: FormatNumeric}
	case time.Time:
		return Value{Data: n.Format(TimestampFormat), Format: FormatText}
	case string:
		if isNumeric(n) {
			return Value{Data: n, Format: FormatNumeric}
		}
		return Value{Data: n, Format: FormatText}
	case nil:
		return Value{Data: "", Format: FormatText}
	default:
		return Value{Data: fmt.Sprintf("%v", n), Format: FormatText}
	}
}

// TableAppender 表追加器，配合列布局使用
//
// 写入前确认目标表存在，不存在则建表；确认或建表失败时丢弃本次写入且不返回错误。
type TableAppender struct {
	appenderBase
	dropped bool
}

// NewTableAppender 创建表追加器
func NewTableAppender(kind AppenderKind, params Params) *TableAppender {
	return &TableAppender{
		appenderBase: appenderBase{
			kind:             kind,
			params:           params,
			level:            LevelTrace,
			requiredParams:   []string{ParamTarget, ParamColumns, ParamStore},
			supportedLayouts: []LayoutKind{LayoutColumn},
		},
	}
}

// HasRequiredParams store 参数必须实现 TableStore
func (a *TableAppender) HasRequiredParams() bool {
	if !a.appenderBase.HasRequiredParams() {
		return false
	}
	_, ok := a.params[ParamStore].(TableStore)
	return ok
}

// Target 目标表名
func (a *TableAppender) Target() string {
	return a.params.String(ParamTarget)
}

// Columns 目标列名
func (a *TableAppender) Columns() []string {
	return a.params.Strings(ParamColumns)
}

// Write 写入一行
func (a *TableAppender) Write(entry Entry) error {
	a.dropped = false
	if !a.HasRequiredParams() {
		return errors.New("table appender: missing required params")
	}

	ctx := a.context()
	store := a.params[ParamStore].(TableStore)
	target := a.Target()

	if err := a.ensureTarget(ctx, store, target); err != nil {
		a.dropped = true
		a.reportDrop(&SinkUnavailableError{Target: target, Err: err})
		return nil
	}

	columns := a.Columns()
	if len(columns) != len(entry.Values) {
		return &StructuralMismatchError{Columns: columns, Values: len(entry.Values)}
	}

	values := make([]Value, 0, len(entry.Values))
	for _, v := range entry.Values {
		values = append(values, NewValue(v))
	}

	if err := store.Insert(ctx, target, columns, values); err != nil {
		return fmt.Errorf("insert log row into %s: %w", target, err)
	}
	return nil
}

// takeDropped 返回上一次 Write 是否丢弃了日志，并清除标记
func (a *TableAppender) takeDropped() bool {
	dropped := a.dropped
	a.dropped = false
	return dropped
}

// Close 连接归宿主所有，这里什么也不做
func (a *TableAppender) Close() error {
	return nil
}

func (a *TableAppender) ensureTarget(ctx context.Context, store TableStore, target string) error {
	exists, err := store.HasTable(ctx, target)
	if err != nil {
		return err
	}
	if exists {
		return nil
	}
	return store.CreateTable(ctx, target, a.params.String(ParamTableDef))
}

func (a *TableAppender) context() context.Context {
	if ctx, ok := a.params[ParamContext].(context.Context); ok && ctx != nil {
		return ctx
	}
	return context.Background()
}

func (a *TableAppender) reportDrop(err error) {
	if handler, ok := a.params[ParamErrorHandler].(func(error)); ok && handler != nil {
		handler(err)
	}
}

func isNumeric(s string) bool {
	if s == "" {
		return false
	}
	dot := false
	for i, c := range s {
		switch {
		case c >= '0' && c <= '9':
		case (c == '-' || c == '+') && i == 0 && len(s) > 1:
		case c == '.' && !dot:
			dot = true
		default:
			return false
		}
	}
	return s != "." && s != "-." && s != "+."
}
