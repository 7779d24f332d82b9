package logging

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"time"
)

// 按时间滚动的周期
const (
	RollDaily   = "daily"
	RollMonthly = "monthly"
	RollYearly  = "yearly"
)

// FileAppender 文件追加器
//
// 每次写入前先检查是否需要按周期滚动（重命名为 <name>_<YYYYMMDD>.<ext>），
// 再检查是否需要按大小滚动（重命名为 <name>_roll<N>.<ext>），最后以追加模式写入。
// 滚动出的文件不会被删除。同一个目标文件只允许一个写入者。
type FileAppender struct {
	appenderBase
	file *os.File
	now  func() time.Time
}

// NewFileAppender 创建文件追加器，文件在首次写入时才打开
func NewFileAppender(params Params) *FileAppender {
	return &FileAppender{
		appenderBase: appenderBase{
			kind:             AppenderFile,
			params:           params,
			level:            LevelTrace,
			requiredParams:   []string{ParamTarget},
			supportedLayouts: []LayoutKind{LayoutSimple, LayoutPattern},
		},
		now: time.Now,
	}
}

// SetClock 设置滚动判断使用的时钟
func (a *FileAppender) SetClock(now func() time.Time) {
	if now != nil {
		a.now = now
	}
}

// Target 目标文件路径
func (a *FileAppender) Target() string {
	return a.params.String(ParamTarget)
}

// Write 写入一行日志
func (a *FileAppender) Write(entry Entry) error {
	if !a.HasRequiredParams() {
		return errors.New("file appender: missing required params")
	}

	if err := a.rollIfNeeded(); err != nil {
		return err
	}

	f, err := a.handle()
	if err != nil {
		return err
	}

	buffer := bufferPool.Get()
	defer bufferPool.Put(buffer)
	buffer.WriteString(entry.Line)
	buffer.WriteString(lineEnding())

	if _, err := f.Write(buffer.Bytes()); err != nil {
		return fmt.Errorf("write log file %s: %w", a.Target(), err)
	}
	return nil
}

// Close 关闭文件句柄，可重复调用
func (a *FileAppender) Close() error {
	if a.file == nil {
		return nil
	}
	err := a.file.Close()
	a.file = nil
	return err
}

func (a *FileAppender) rollIfNeeded() error {
	target := a.Target()

	info, err := os.Stat(target)
	if errors.Is(err, fs.ErrNotExist) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("stat log file %s: %w", target, err)
	}

	// roll_period 只要出现就生效，空值和未知值按天滚动
	if period, ok := a.params[ParamRollPeriod]; ok && period != nil {
		now := a.now()
		if periodAfter(now, info.ModTime(), a.params.String(ParamRollPeriod)) {
			if err := a.rename(target, datedName(target, now)); err != nil {
				return err
			}
			// 已滚动，目标文件不存在，无需再检查大小
			return nil
		}
	}

	if a.params.Has(ParamRollSize) {
		limit, _, err := a.params.Int64(ParamRollSize)
		if err != nil {
			return fmt.Errorf("file appender: %w", err)
		}
		if info.Size() > limit {
			name, err := nextRollName(target)
			if err != nil {
				return err
			}
			if err := a.rename(target, name); err != nil {
				return err
			}
		}
	}

	return nil
}

func (a *FileAppender) rename(from, to string) error {
	if err := a.Close(); err != nil {
		return fmt.Errorf("close log file %s: %w", from, err)
	}
	if err := os.Rename(from, to); err != nil {
		return fmt.Errorf("roll log file %s: %w", from, err)
	}
	return nil
}

func (a *FileAppender) handle() (*os.File, error) {
	if a.file != nil {
		return a.file, nil
	}

	target := a.Target()
	if dir := filepath.Dir(target); dir != "" && dir != "." {
		if err := os.MkdirAll(dir, 0o750); err != nil {
			return nil, fmt.Errorf("create log directory %s: %w", dir, err)
		}
	}

	f, err := os.OpenFile(target, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return nil, fmt.Errorf("open log file %s: %w", target, err)
	}
	a.file = f
	return f, nil
}

// periodAfter 判断 now 所在的日历周期是否晚于 mtime 所在的周期
// 未知的周期名按天处理
func periodAfter(now, mtime time.Time, period string) bool {
	mtime = mtime.In(now.Location())
	switch strings.ToLower(period) {
	case RollYearly:
		return now.Year() > mtime.Year()
	case RollMonthly:
		return monthStart(now).After(monthStart(mtime))
	default:
		return dayStart(now).After(dayStart(mtime))
	}
}

func dayStart(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}

func monthStart(t time.Time) time.Time {
	y, m, _ := t.Date()
	return time.Date(y, m, 1, 0, 0, 0, 0, t.Location())
}

// splitTarget 拆分为目录、不含扩展名的文件名和扩展名（含点）
func splitTarget(target string) (dir, name, ext string) {
	dir = filepath.Dir(target)
	base := filepath.Base(target)
	ext = filepath.Ext(base)
	name = strings.TrimSuffix(base, ext)
	return dir, name, ext
}

// datedName 按日期滚动后的文件名，使用滚动当天的日期
func datedName(target string, now time.Time) string {
	dir, name, ext := splitTarget(target)
	return filepath.Join(dir, name+"_"+now.Format("20060102")+ext)
}

// nextRollName 按大小滚动后的文件名，序号由目录中已有的 <name>_roll* 文件数推出
func nextRollName(target string) (string, error) {
	dir, name, ext := splitTarget(target)
	previous, err := filepath.Glob(filepath.Join(dir, globEscape(name)+"_roll*"))
	if err != nil {
		return "", fmt.Errorf("list rolled log files: %w", err)
	}
	return filepath.Join(dir, fmt.Sprintf("%s_roll%d%s", name, len(previous)+1, ext)), nil
}

func globEscape(s string) string {
	r := strings.NewReplacer(`\`, `\\`, "*", `\*`, "?", `\?`, "[", `\[`)
	return r.Replace(s)
}
