package config

import (
	"fmt"

	"github.com/gocrud/logkit/logging"
	"github.com/ilyakaznacheev/cleanenv"
)

// LoggerSettings 从环境变量读取的日志默认值
type LoggerSettings struct {
	Level string `env:"LOGKIT_LEVEL" env-default:"INFO" env-description:"default logging level"`
}

// ReadLoggerSettings 读取环境变量中的日志默认值
func ReadLoggerSettings() (LoggerSettings, error) {
	var settings LoggerSettings
	if err := cleanenv.ReadEnv(&settings); err != nil {
		return settings, fmt.Errorf("config: failed to read logger env: %w", err)
	}
	return settings, nil
}

// LoggerConfig 将配置节绑定为 logging.Config
// 配置节未给出 logging_level 时使用 LOGKIT_LEVEL
func LoggerConfig(cfg Configuration, section string) (logging.Config, error) {
	sub := cfg.GetSection(section)
	if len(sub.GetAll()) == 0 {
		return logging.Config{}, fmt.Errorf("config: logger section '%s' is missing or empty", section)
	}

	lc, err := Load[logging.Config](sub, "")
	if err != nil {
		return logging.Config{}, fmt.Errorf("config: failed to bind section '%s': %w", section, err)
	}

	if sub.Get("logging_level") == "" {
		settings, err := ReadLoggerSettings()
		if err != nil {
			return logging.Config{}, err
		}
		level, err := logging.ParseLevel(settings.Level)
		if err != nil {
			return logging.Config{}, fmt.Errorf("config: LOGKIT_LEVEL: %w", err)
		}
		lc.LoggingLevel = level
	}

	return lc, nil
}

// NewLogger 绑定配置节并创建 Logger
func NewLogger(cfg Configuration, section string, opts ...logging.LoggerOption) (*logging.Logger, error) {
	lc, err := LoggerConfig(cfg, section)
	if err != nil {
		return nil, err
	}
	return logging.New(lc, opts...), nil
}
