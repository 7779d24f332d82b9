package logging

// ColumnLayout 列布局，输出与目标表列顺序对应的值
// 顺序固定为：消息、级别、异常信息、时间
type ColumnLayout struct {
	params Params
}

// NewColumnLayout 创建列布局
func NewColumnLayout(params Params) *ColumnLayout {
	return &ColumnLayout{params: params}
}

func (l *ColumnLayout) Kind() LayoutKind {
	return LayoutColumn
}

// HasRequiredParams columns 由追加器使用，这里只校验存在
func (l *ColumnLayout) HasRequiredParams() bool {
	return l.params.Has(ParamColumns)
}

// Format 格式化日志
func (l *ColumnLayout) Format(e Event) (Entry, error) {
	return Entry{Values: []any{
		e.Message,
		e.Level.String(),
		e.ExceptionMessage(),
		e.Timestamp,
	}}, nil
}
