package database

import (
	"fmt"
	"sync"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// DatabaseOptions 数据库配置选项
type DatabaseOptions struct {
	Name         string
	Dialector    gorm.Dialector
	GormConfig   *gorm.Config
	MaxIdleConns int
	MaxOpenConns int
	MaxLifetime  time.Duration
}

// NewDefaultOptions 创建默认配置
// gorm 自身的 SQL 日志默认关闭，避免日志表的写入再被打印
func NewDefaultOptions(name string, dialector gorm.Dialector) *DatabaseOptions {
	return &DatabaseOptions{
		Name:      name,
		Dialector: dialector,
		GormConfig: &gorm.Config{
			Logger: logger.Default.LogMode(logger.Silent),
		},
		MaxIdleConns: 2,
		MaxOpenConns: 10,
		MaxLifetime:  time.Hour,
	}
}

// Validate 验证配置
func (o *DatabaseOptions) Validate() error {
	if o.Name == "" {
		return fmt.Errorf("database name is required")
	}
	if o.Dialector == nil {
		return fmt.Errorf("database dialector is required")
	}
	return nil
}

// DatabaseFactory 宿主持有的数据库连接集合
// 表追加器只借用连接，关闭由宿主通过 Close 完成
type DatabaseFactory struct {
	dbs map[string]*gorm.DB
	mu  sync.RWMutex
}

// NewDatabaseFactory 创建数据库工厂
func NewDatabaseFactory() *DatabaseFactory {
	return &DatabaseFactory{
		dbs: make(map[string]*gorm.DB),
	}
}

// Register 打开并注册数据库连接
func (f *DatabaseFactory) Register(opts DatabaseOptions) error {
	if err := opts.Validate(); err != nil {
		return err
	}

	f.mu.Lock()
	defer f.mu.Unlock()

	if _, exists := f.dbs[opts.Name]; exists {
		return fmt.Errorf("database '%s' already registered", opts.Name)
	}

	gormConfig := opts.GormConfig
	if gormConfig == nil {
		gormConfig = &gorm.Config{}
	}

	db, err := gorm.Open(opts.Dialector, gormConfig)
	if err != nil {
		return fmt.Errorf("failed to open database '%s': %w", opts.Name, err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return fmt.Errorf("failed to get sql.DB for '%s': %w", opts.Name, err)
	}

	sqlDB.SetMaxIdleConns(opts.MaxIdleConns)
	sqlDB.SetMaxOpenConns(opts.MaxOpenConns)
	sqlDB.SetConnMaxLifetime(opts.MaxLifetime)

	f.dbs[opts.Name] = db
	return nil
}

// Get 获取已注册的连接
func (f *DatabaseFactory) Get(name string) (*gorm.DB, bool) {
	f.mu.RLock()
	defer f.mu.RUnlock()

	db, ok := f.dbs[name]
	return db, ok
}

// Store 以 TableStore 形式返回已注册的连接
func (f *DatabaseFactory) Store(name string) (*GormStore, error) {
	db, ok := f.Get(name)
	if !ok {
		return nil, fmt.Errorf("database '%s' not registered", name)
	}
	return NewGormStore(db), nil
}

// Each 遍历所有数据库实例
func (f *DatabaseFactory) Each(fn func(name string, db *gorm.DB)) {
	f.mu.RLock()
	defer f.mu.RUnlock()

	for name, db := range f.dbs {
		fn(name, db)
	}
}

// Close 关闭所有数据库连接
func (f *DatabaseFactory) Close() error {
	f.mu.Lock()
	defer f.mu.Unlock()

	var errs []error
	for name, db := range f.dbs {
		sqlDB, err := db.DB()
		if err != nil {
			errs = append(errs, fmt.Errorf("failed to get sql.DB for '%s': %w", name, err))
			continue
		}
		if err := sqlDB.Close(); err != nil {
			errs = append(errs, fmt.Errorf("failed to close database '%s': %w", name, err))
		}
	}

	f.dbs = make(map[string]*gorm.DB)

	if len(errs) > 0 {
		return fmt.Errorf("errors closing databases: %v", errs)
	}
	return nil
}
