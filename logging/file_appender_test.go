package logging

import (
	"math"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// clockAt 固定时钟
func clockAt(t time.Time) func() time.Time {
	return func() time.Time { return t }
}

func rollingLogger(t *testing.T, params Params, now time.Time) (*Logger, string) {
	t.Helper()
	target := filepath.Join(t.TempDir(), "default.log")
	params[ParamTarget] = target

	logger := New(Config{
		Appender: AppenderConfig{Type: AppenderFile, Params: params},
		Layout:   LayoutConfig{Type: LayoutPattern, Params: Params{ParamPattern: "%message"}},
	}, WithClock(clockAt(now)))
	t.Cleanup(func() { _ = logger.Close() })
	return logger, target
}

func touch(t *testing.T, path string, mtime time.Time) {
	t.Helper()
	require.NoError(t, os.Chtimes(path, mtime, mtime))
}

func TestFileAppender_RollDaily(t *testing.T) {
	now := time.Date(2026, 10, 18, 12, 0, 0, 0, time.Local)
	logger, target := rollingLogger(t, Params{ParamRollPeriod: RollDaily}, now)

	require.NoError(t, logger.Info("first"))
	touch(t, target, now.AddDate(0, 0, -1))
	require.NoError(t, logger.Info("second"))

	rolled := filepath.Join(filepath.Dir(target), "default_20261018.log")
	require.FileExists(t, rolled)
	assert.Equal(t, "first"+lineEnding(), readFile(t, rolled))
	assert.Equal(t, "second"+lineEnding(), readFile(t, target))
}

func TestFileAppender_RollMonthly(t *testing.T) {
	now := time.Date(2026, 10, 18, 12, 0, 0, 0, time.Local)
	logger, target := rollingLogger(t, Params{ParamRollPeriod: RollMonthly}, now)

	require.NoError(t, logger.Info("first"))
	touch(t, target, now.AddDate(0, -1, 0))
	require.NoError(t, logger.Info("second"))

	assert.FileExists(t, filepath.Join(filepath.Dir(target), "default_20261018.log"))
}

func TestFileAppender_NoRollWhenMonthlyAndOneDayOld(t *testing.T) {
	now := time.Date(2026, 10, 18, 12, 0, 0, 0, time.Local)
	logger, target := rollingLogger(t, Params{ParamRollPeriod: RollMonthly}, now)

	require.NoError(t, logger.Info("first"))
	touch(t, target, now.AddDate(0, 0, -1))
	require.NoError(t, logger.Info("second"))

	assert.NoFileExists(t, filepath.Join(filepath.Dir(target), "default_20261018.log"))
	assert.Equal(t, "first"+lineEnding()+"second"+lineEnding(), readFile(t, target))
}

func TestFileAppender_RollYearly(t *testing.T) {
	now := time.Date(2026, 1, 3, 12, 0, 0, 0, time.Local)
	logger, target := rollingLogger(t, Params{ParamRollPeriod: RollYearly}, now)

	require.NoError(t, logger.Info("first"))
	touch(t, target, now.AddDate(-1, 0, 0))
	require.NoError(t, logger.Info("second"))

	assert.FileExists(t, filepath.Join(filepath.Dir(target), "default_20260103.log"))
}

func TestFileAppender_NoRollYearlyWithinSameYear(t *testing.T) {
	now := time.Date(2026, 12, 31, 12, 0, 0, 0, time.Local)
	logger, target := rollingLogger(t, Params{ParamRollPeriod: RollYearly}, now)

	require.NoError(t, logger.Info("first"))
	touch(t, target, time.Date(2026, 1, 1, 0, 0, 0, 0, time.Local))
	require.NoError(t, logger.Info("second"))

	assert.NoFileExists(t, filepath.Join(filepath.Dir(target), "default_20261231.log"))
}

func TestFileAppender_RollDailyAcrossMonthBoundary(t *testing.T) {
	now := time.Date(2026, 11, 1, 0, 30, 0, 0, time.Local)
	logger, target := rollingLogger(t, Params{ParamRollPeriod: RollDaily}, now)

	require.NoError(t, logger.Info("first"))
	touch(t, target, time.Date(2026, 10, 31, 23, 50, 0, 0, time.Local))
	require.NoError(t, logger.Info("second"))

	assert.FileExists(t, filepath.Join(filepath.Dir(target), "default_20261101.log"))
}

func TestFileAppender_EmptyRollPeriodRollsDaily(t *testing.T) {
	now := time.Date(2026, 10, 18, 12, 0, 0, 0, time.Local)
	logger, target := rollingLogger(t, Params{ParamRollPeriod: ""}, now)

	require.NoError(t, logger.Info("first"))
	touch(t, target, now.AddDate(0, 0, -1))
	require.NoError(t, logger.Info("second"))

	assert.FileExists(t, filepath.Join(filepath.Dir(target), "default_20261018.log"))
	assert.Equal(t, "second"+lineEnding(), readFile(t, target))
}

func TestFileAppender_NilRollPeriodIsUnset(t *testing.T) {
	now := time.Date(2026, 10, 18, 12, 0, 0, 0, time.Local)
	logger, target := rollingLogger(t, Params{ParamRollPeriod: nil}, now)

	require.NoError(t, logger.Info("first"))
	touch(t, target, now.AddDate(0, 0, -1))
	require.NoError(t, logger.Info("second"))

	assert.NoFileExists(t, filepath.Join(filepath.Dir(target), "default_20261018.log"))
}

func TestFileAppender_RollSizeOverflow(t *testing.T) {
	for _, limit := range []any{float64(1e19), uint64(math.MaxUint64), math.Inf(1), math.NaN()} {
		logger, target := rollingLogger(t, Params{ParamRollSize: limit}, time.Now())

		require.NoError(t, logger.Info("first"))
		assert.Error(t, logger.Info("second"), "%v", limit)
		assert.NoFileExists(t, filepath.Join(filepath.Dir(target), "default_roll1.log"))
	}
}

func TestFileAppender_RollSize(t *testing.T) {
	for _, limit := range []any{1000, int64(1000), float64(1000), "1000"} {
		logger, target := rollingLogger(t, Params{ParamRollSize: limit}, time.Now())

		require.NoError(t, logger.Info(strings.Repeat("@", 2000)))
		require.NoError(t, logger.Info("test file appender"))

		rolled := filepath.Join(filepath.Dir(target), "default_roll1.log")
		require.FileExists(t, rolled)
		assert.Equal(t, "test file appender"+lineEnding(), readFile(t, target))
	}
}

func TestFileAppender_RollSizeNumbering(t *testing.T) {
	logger, target := rollingLogger(t, Params{ParamRollSize: 10}, time.Now())
	dir := filepath.Dir(target)

	for i := 0; i < 4; i++ {
		require.NoError(t, logger.Info("this line is longer than ten bytes"))
	}

	assert.FileExists(t, filepath.Join(dir, "default_roll1.log"))
	assert.FileExists(t, filepath.Join(dir, "default_roll2.log"))
	assert.FileExists(t, filepath.Join(dir, "default_roll3.log"))
	assert.NoFileExists(t, filepath.Join(dir, "default_roll4.log"))
}

func TestFileAppender_NoRollUnderSize(t *testing.T) {
	logger, target := rollingLogger(t, Params{ParamRollSize: 1000}, time.Now())

	require.NoError(t, logger.Info("short"))
	require.NoError(t, logger.Info("short"))

	assert.NoFileExists(t, filepath.Join(filepath.Dir(target), "default_roll1.log"))
}

func TestFileAppender_InvalidRollSize(t *testing.T) {
	logger, _ := rollingLogger(t, Params{ParamRollSize: "big"}, time.Now())

	require.NoError(t, logger.Info("first"))
	assert.Error(t, logger.Info("second"))
}

func TestFileAppender_CreatesParentDirectory(t *testing.T) {
	target := filepath.Join(t.TempDir(), "nested", "logs", "app.log")
	a := NewFileAppender(Params{ParamTarget: target})

	require.NoError(t, a.Write(Entry{Line: "hello"}))
	require.NoError(t, a.Close())
	assert.Equal(t, "hello"+lineEnding(), readFile(t, target))
}

func TestFileAppender_CloseTwice(t *testing.T) {
	a := NewFileAppender(Params{ParamTarget: filepath.Join(t.TempDir(), "app.log")})
	require.NoError(t, a.Write(Entry{Line: "hello"}))

	assert.NoError(t, a.Close())
	assert.NoError(t, a.Close())
}

func TestFileAppender_Contract(t *testing.T) {
	a := NewFileAppender(Params{})
	assert.False(t, a.HasRequiredParams())
	assert.Error(t, a.Write(Entry{Line: "x"}))

	assert.True(t, a.SupportsLayout(LayoutSimple))
	assert.True(t, a.SupportsLayout(LayoutPattern))
	assert.False(t, a.SupportsLayout(LayoutColumn))
}

func TestRolledNames(t *testing.T) {
	dir := t.TempDir()
	now := time.Date(2026, 3, 9, 0, 0, 0, 0, time.UTC)

	assert.Equal(t, filepath.Join(dir, "app_20260309.log"), datedName(filepath.Join(dir, "app.log"), now))
	assert.Equal(t, filepath.Join(dir, "app_20260309"), datedName(filepath.Join(dir, "app"), now))

	name, err := nextRollName(filepath.Join(dir, "app.log"))
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "app_roll1.log"), name)

	require.NoError(t, os.WriteFile(filepath.Join(dir, "app_roll1.log"), nil, 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "other_roll1.log"), nil, 0o644))

	name, err = nextRollName(filepath.Join(dir, "app.log"))
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "app_roll2.log"), name)
}

func TestPeriodAfter(t *testing.T) {
	now := time.Date(2026, 10, 18, 12, 0, 0, 0, time.UTC)

	tests := []struct {
		period string
		mtime  time.Time
		want   bool
	}{
		{RollDaily, now.Add(-time.Hour), false},
		{RollDaily, now.AddDate(0, 0, -1), true},
		{"", now.AddDate(0, 0, -1), true},
		{"weekly", now.AddDate(0, 0, -1), true},
		{RollMonthly, now.AddDate(0, 0, -1), false},
		{RollMonthly, now.AddDate(0, -1, 0), true},
		{RollYearly, now.AddDate(0, -1, 0), false},
		{RollYearly, now.AddDate(-1, 0, 0), true},
		{RollDaily, now.Add(time.Hour * 24), false},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, periodAfter(now, tt.mtime, tt.period), "%s %v", tt.period, tt.mtime)
	}
}
