package logging

import (
	"fmt"

	"github.com/prometheus/client_golang/prometheus"
)

// 写入结果
const (
	OutcomeWritten  = "written"
	OutcomeFiltered = "filtered"
	OutcomeFailed   = "failed"
	// OutcomeDropped 目标不可用，日志被丢弃但调用方收到 nil
	OutcomeDropped = "dropped"
)

// Metrics 按级别和结果统计日志条数，可被多个 Logger 共享
type Metrics struct {
	entries *prometheus.CounterVec
}

// NewMetrics 创建并注册计数器
func NewMetrics(reg prometheus.Registerer) (*Metrics, error) {
	entries := prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "logkit",
			Name:      "entries_total",
			Help:      "Total number of log entries by level and outcome",
		},
		[]string{"level", "outcome"},
	)

	if reg != nil {
		if err := reg.Register(entries); err != nil {
			return nil, fmt.Errorf("register logkit metrics: %w", err)
		}
	}
	return &Metrics{entries: entries}, nil
}

// WithMetrics 为 Logger 启用计数
func WithMetrics(m *Metrics) LoggerOption {
	return func(l *Logger) {
		l.metrics = m
	}
}

func (m *Metrics) observe(level Level, outcome string) {
	if m == nil {
		return
	}
	m.entries.WithLabelValues(level.String(), outcome).Inc()
}
