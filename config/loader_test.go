package config

import (
	"path/filepath"
	"strconv"
	"testing"

	"github.com/gocrud/logkit/logging"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoggerConfig_FromYAML(t *testing.T) {
	path := writeFile(t, "logging.yaml", `
logging:
  appender:
    type: file
    params:
      target: app.log
      roll_period: monthly
      roll_size: 1048576
  layout:
    type: pattern
    params:
      pattern: "%d %l %m"
  logging_level: debug
`)

	cfg, err := NewConfigurationBuilder().AddYamlFile(path).Build()
	require.NoError(t, err)

	lc, err := LoggerConfig(cfg, "logging")
	require.NoError(t, err)

	assert.Equal(t, logging.AppenderFile, lc.Appender.Type)
	assert.Equal(t, "app.log", lc.Appender.Params.String(logging.ParamTarget))
	size, ok, err := lc.Appender.Params.Int64(logging.ParamRollSize)
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, int64(1048576), size)
	assert.Equal(t, logging.LayoutPattern, lc.Layout.Type)
	assert.Equal(t, "%d %l %m", lc.Layout.Params.String(logging.ParamPattern))
	assert.Equal(t, logging.LevelDebug, lc.LoggingLevel)
}

func TestLoggerConfig_LevelFromEnvironment(t *testing.T) {
	cfg, err := NewConfigurationBuilder().
		AddInMemory(map[string]any{
			"logging": map[string]any{
				"appender": map[string]any{"type": "file"},
			},
		}).
		Build()
	require.NoError(t, err)

	t.Setenv("LOGKIT_LEVEL", "warning")
	lc, err := LoggerConfig(cfg, "logging")
	require.NoError(t, err)
	assert.Equal(t, logging.LevelWarn, lc.LoggingLevel)

	t.Setenv("LOGKIT_LEVEL", "loud")
	_, err = LoggerConfig(cfg, "logging")
	assert.Error(t, err)
}

func TestLoggerConfig_DefaultLevel(t *testing.T) {
	cfg, err := NewConfigurationBuilder().
		AddInMemory(map[string]any{"logging": map[string]any{
			"layout": map[string]any{"type": "simple"},
		}}).
		Build()
	require.NoError(t, err)

	lc, err := LoggerConfig(cfg, "logging")
	require.NoError(t, err)
	assert.Equal(t, logging.LevelInfo, lc.LoggingLevel)
}

func TestLoggerConfig_EmptySection(t *testing.T) {
	cfg, err := NewConfigurationBuilder().
		AddInMemory(map[string]any{"logging": map[string]any{}, "name": "logkit"}).
		Build()
	require.NoError(t, err)

	for _, section := range []string{"logging", "missing", "name"} {
		_, err := LoggerConfig(cfg, section)
		require.Error(t, err, section)
		assert.Contains(t, err.Error(), "missing or empty")
	}
}

func TestLoggerConfig_FromEnvironmentKeepsStrings(t *testing.T) {
	t.Setenv("LKCFG_LOGGING__APPENDER__TYPE", "file")
	t.Setenv("LKCFG_LOGGING__APPENDER__PARAMS__TARGET", "007")
	t.Setenv("LKCFG_LOGGING__APPENDER__PARAMS__ROLL_SIZE", "2048")
	t.Setenv("LKCFG_LOGGING__LOGGING_LEVEL", "debug")

	cfg, err := NewConfigurationBuilder().AddEnvironmentVariables("LKCFG_").Build()
	require.NoError(t, err)

	lc, err := LoggerConfig(cfg, "logging")
	require.NoError(t, err)
	assert.Equal(t, "007", lc.Appender.Params.String(logging.ParamTarget))
	size, ok, err := lc.Appender.Params.Int64(logging.ParamRollSize)
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, int64(2048), size)
	assert.Equal(t, logging.LevelDebug, lc.LoggingLevel)
}

func TestLoggerConfig_Errors(t *testing.T) {
	cfg, err := NewConfigurationBuilder().
		AddInMemory(map[string]any{"logging": map[string]any{"logging_level": "loud"}}).
		Build()
	require.NoError(t, err)

	_, err = LoggerConfig(cfg, "logging")
	assert.Error(t, err)
}

func TestLoggerConfig_RejectsNumericLevel(t *testing.T) {
	cfg, err := NewConfigurationBuilder().
		AddInMemory(map[string]any{"logging": map[string]any{"logging_level": 3}}).
		Build()
	require.NoError(t, err)

	_, err = LoggerConfig(cfg, "logging")
	assert.Error(t, err)
}

func TestNewLogger_FromJSON(t *testing.T) {
	target := filepath.Join(t.TempDir(), "app.log")
	path := writeFile(t, "logging.json", `{"logging": {
		"appender": {"type": "file", "params": {"target": `+strconv.Quote(target)+`}},
		"layout": {"type": "pattern", "params": {"pattern": "%l:%m"}},
		"logging_level": "TRACE"
	}}`)

	cfg, err := NewConfigurationBuilder().AddJsonFile(path).Build()
	require.NoError(t, err)

	logger, err := NewLogger(cfg, "logging")
	require.NoError(t, err)
	defer logger.Close()

	require.NoError(t, logger.Trace("hello"))
	assert.FileExists(t, target)
}
