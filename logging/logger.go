package logging

import (
	"sync"
	"time"
)

// Logger 日志记录器
//
// 每个 Logger 独占自己的配置、追加器和布局，不依赖任何全局状态。
// 追加器与布局在首次写日志时才创建并校验，且只创建一次；校验失败的错误同样被缓存。
type Logger struct {
	config  Config
	now     func() time.Time
	metrics *Metrics

	mu sync.Mutex

	appender         Appender
	appenderErr      error
	appenderResolved bool

	layout         Layout
	layoutErr      error
	layoutResolved bool
}

// dropper 由会静默丢弃日志的追加器实现
type dropper interface {
	takeDropped() bool
}

// LoggerOption Logger 选项
type LoggerOption func(*Logger)

// WithClock 设置时钟，用于默认时间戳和文件滚动判断
func WithClock(now func() time.Time) LoggerOption {
	return func(l *Logger) {
		if now != nil {
			l.now = now
		}
	}
}

// New 创建 Logger，不会失败；配置错误在首次写日志时返回
func New(cfg Config, opts ...LoggerOption) *Logger {
	l := &Logger{
		config: cfg.withDefaults(),
		now:    time.Now,
	}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

// Config 返回补全默认值后的配置
func (l *Logger) Config() Config {
	return l.config
}

func (l *Logger) Trace(msg string, fields ...Field) error {
	return l.Log(LevelTrace, msg, fields...)
}

func (l *Logger) Debug(msg string, fields ...Field) error {
	return l.Log(LevelDebug, msg, fields...)
}

func (l *Logger) Info(msg string, fields ...Field) error {
	return l.Log(LevelInfo, msg, fields...)
}

func (l *Logger) Warn(msg string, fields ...Field) error {
	return l.Log(LevelWarn, msg, fields...)
}

// Fatal 记录 FATAL 级别日志，不会退出进程
func (l *Logger) Fatal(msg string, fields ...Field) error {
	return l.Log(LevelFatal, msg, fields...)
}

// Log 过滤、格式化并写入一条日志
func (l *Logger) Log(level Level, msg string, fields ...Field) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	outcome, err := l.emit(level, msg, fields)
	l.metrics.observe(level, outcome)
	return err
}

func (l *Logger) emit(level Level, msg string, fields []Field) (string, error) {
	appender, err := l.getAppender()
	if err != nil {
		return OutcomeFailed, err
	}
	if !appender.OverLogThreshold(level) {
		return OutcomeFiltered, nil
	}

	layout, err := l.getLayout()
	if err != nil {
		return OutcomeFailed, err
	}

	event := Event{Message: msg, Level: level}
	for _, field := range fields {
		field(&event)
	}
	if event.Timestamp.IsZero() {
		event.Timestamp = l.now()
	}

	entry, err := layout.Format(event)
	if err != nil {
		return OutcomeFailed, err
	}
	if err := appender.Write(entry); err != nil {
		return OutcomeFailed, err
	}
	if d, ok := appender.(dropper); ok && d.takeDropped() {
		return OutcomeDropped, nil
	}
	return OutcomeWritten, nil
}

// Close 释放追加器持有的资源，可重复调用
func (l *Logger) Close() error {
	l.mu.Lock()
	defer l.mu.Unlock()

	if l.appender == nil {
		return nil
	}
	return l.appender.Close()
}

// getAppender 首次调用时创建并校验追加器
func (l *Logger) getAppender() (Appender, error) {
	if l.appenderResolved {
		return l.appender, l.appenderErr
	}
	l.appenderResolved = true

	cfg := l.config.Appender
	appender, err := NewAppender(cfg.Type, cfg.Params)
	if err != nil {
		l.appenderErr = err
		return nil, err
	}
	if clocked, ok := appender.(interface{ SetClock(func() time.Time) }); ok {
		clocked.SetClock(l.now)
	}
	appender.SetLevel(l.config.LoggingLevel)

	if !appender.HasRequiredParams() {
		l.appenderErr = missingParamsError("Appender", string(cfg.Type))
		return nil, l.appenderErr
	}
	if !appender.SupportsLayout(l.config.Layout.Type) {
		l.appenderErr = unsupportedLayoutError(cfg.Type, l.config.Layout.Type)
		return nil, l.appenderErr
	}

	l.appender = appender
	return appender, nil
}

// getLayout 首次调用时创建并校验布局
func (l *Logger) getLayout() (Layout, error) {
	if l.layoutResolved {
		return l.layout, l.layoutErr
	}
	l.layoutResolved = true

	cfg := l.config.Layout
	layout, err := NewLayout(cfg.Type, cfg.Params)
	if err != nil {
		l.layoutErr = err
		return nil, err
	}
	if !layout.HasRequiredParams() {
		l.layoutErr = missingParamsError("Layout", string(cfg.Type))
		return nil, l.layoutErr
	}

	l.layout = layout
	return layout, nil
}
