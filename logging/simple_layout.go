package logging

// SimpleLayout 简单布局："<时间> <级别> <消息>"，忽略异常
type SimpleLayout struct {
	params Params
}

// NewSimpleLayout 创建简单布局
func NewSimpleLayout(params Params) *SimpleLayout {
	return &SimpleLayout{params: params}
}

func (l *SimpleLayout) Kind() LayoutKind {
	return LayoutSimple
}

// HasRequiredParams 简单布局没有必需参数
func (l *SimpleLayout) HasRequiredParams() bool {
	return true
}

// Format 格式化日志
func (l *SimpleLayout) Format(e Event) (Entry, error) {
	buffer := bufferPool.Get()
	defer bufferPool.Put(buffer)

	buffer.WriteString(e.Timestamp.Format(TimestampFormat))
	buffer.WriteByte(' ')
	buffer.WriteString(e.Level.String())
	buffer.WriteByte(' ')
	buffer.WriteString(e.Message)

	return Entry{Line: buffer.String()}, nil
}
