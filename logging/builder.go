package logging

// LoggingBuilder 以链式调用组装 Config
type LoggingBuilder struct {
	config Config
}

// NewLoggingBuilder 创建日志构建器
func NewLoggingBuilder() *LoggingBuilder {
	return &LoggingBuilder{}
}

// SetMinimumLevel 设置最小日志级别
func (b *LoggingBuilder) SetMinimumLevel(level Level) *LoggingBuilder {
	b.config.LoggingLevel = level
	return b
}

// AddFile 使用文件追加器，extra 中可以放 roll_period、roll_size 等参数
func (b *LoggingBuilder) AddFile(target string, extra ...Params) *LoggingBuilder {
	params := Params{ParamTarget: target}
	for _, p := range extra {
		for k, v := range p {
			params[k] = v
		}
	}
	b.config.Appender = AppenderConfig{Type: AppenderFile, Params: params}
	return b
}

// AddTable 使用表追加器，同时切换为列布局
func (b *LoggingBuilder) AddTable(table string, columns []string, store TableStore) *LoggingBuilder {
	b.config.Appender = AppenderConfig{
		Type: AppenderTable,
		Params: Params{
			ParamTarget:  table,
			ParamColumns: columns,
			ParamStore:   store,
		},
	}
	return b.UseColumnLayout(columns)
}

// WithAppenderParam 设置追加器参数
func (b *LoggingBuilder) WithAppenderParam(key string, value any) *LoggingBuilder {
	if b.config.Appender.Params == nil {
		b.config.Appender.Params = Params{}
	}
	b.config.Appender.Params[key] = value
	return b
}

// WithLayoutParam 设置布局参数
func (b *LoggingBuilder) WithLayoutParam(key string, value any) *LoggingBuilder {
	if b.config.Layout.Params == nil {
		b.config.Layout.Params = Params{}
	}
	b.config.Layout.Params[key] = value
	return b
}

// UseSimpleLayout 使用简单布局
func (b *LoggingBuilder) UseSimpleLayout() *LoggingBuilder {
	b.config.Layout = LayoutConfig{Type: LayoutSimple, Params: Params{}}
	return b
}

// UsePatternLayout 使用模式布局，converters 在内置占位符之前执行
func (b *LoggingBuilder) UsePatternLayout(pattern string, converters ...PatternConverter) *LoggingBuilder {
	params := Params{ParamPattern: pattern}
	if len(converters) > 0 {
		params[ParamCustomCallbacks] = converters
	}
	b.config.Layout = LayoutConfig{Type: LayoutPattern, Params: params}
	return b
}

// UseColumnLayout 使用列布局
func (b *LoggingBuilder) UseColumnLayout(columns []string) *LoggingBuilder {
	b.config.Layout = LayoutConfig{Type: LayoutColumn, Params: Params{ParamColumns: columns}}
	return b
}

// Config 返回当前配置的副本
func (b *LoggingBuilder) Config() Config {
	out := b.config
	out.Appender.Params = b.config.Appender.Params.Clone()
	out.Layout.Params = b.config.Layout.Params.Clone()
	return out
}

// Build 构建 Logger
func (b *LoggingBuilder) Build(opts ...LoggerOption) *Logger {
	return New(b.Config(), opts...)
}
