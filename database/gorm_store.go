package database

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/gocrud/logkit/logging"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// Record 日志表的默认结构
type Record struct {
	ID               uint      `gorm:"column:ID;primaryKey;autoIncrement"`
	Message          string    `gorm:"column:message;type:text;not null"`
	ExceptionMessage string    `gorm:"column:exception_message;type:text;not null"`
	DateTime         time.Time `gorm:"column:date_time;not null"`
	Level            string    `gorm:"column:level;type:text;not null"`
}

// DefaultColumns 与列布局输出顺序一致的默认列名
var DefaultColumns = []string{"message", "level", "exception_message", "date_time"}

// GormStore 基于 gorm 的 TableStore，适用于任意 gorm 驱动
type GormStore struct {
	db *gorm.DB
}

var _ logging.TableStore = (*GormStore)(nil)

// NewGormStore 创建 GormStore，连接由调用方管理
func NewGormStore(db *gorm.DB) *GormStore {
	return &GormStore{db: db}
}

// HasTable 判断表是否存在
func (s *GormStore) HasTable(ctx context.Context, table string) (bool, error) {
	return s.db.WithContext(ctx).Migrator().HasTable(table), nil
}

// CreateTable 建表；ddl 为空时按 Record 建表并添加唯一索引 <TABLE>_ID
func (s *GormStore) CreateTable(ctx context.Context, table, ddl string) error {
	db := s.db.WithContext(ctx)
	if ddl != "" {
		return db.Exec(ddl).Error
	}

	if err := db.Table(table).Migrator().CreateTable(&Record{}); err != nil {
		return fmt.Errorf("create log table %s: %w", table, err)
	}

	index := strings.ToUpper(table) + "_ID"
	err := db.Exec("CREATE UNIQUE INDEX ? ON ? (?)",
		clause.Table{Name: index}, clause.Table{Name: table}, clause.Column{Name: "ID"}).Error
	if err != nil {
		return fmt.Errorf("create index %s: %w", index, err)
	}
	return nil
}

// Insert 插入一行
func (s *GormStore) Insert(ctx context.Context, table string, columns []string, values []logging.Value) error {
	if len(columns) != len(values) {
		return &logging.StructuralMismatchError{Columns: columns, Values: len(values)}
	}

	row := make(map[string]any, len(columns))
	for i, column := range columns {
		row[column] = values[i].Data
	}
	return s.db.WithContext(ctx).Table(table).Create(row).Error
}
