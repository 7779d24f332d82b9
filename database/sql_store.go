package database

import (
	"context"
	"database/sql"
	"fmt"
	"strconv"
	"strings"

	"github.com/gocrud/logkit/logging"

	// SQL Server 驱动
	_ "github.com/denisenkom/go-mssqldb"
)

const hasTableQuery = "SELECT COUNT(*) FROM INFORMATION_SCHEMA.TABLES WHERE TABLE_NAME = @p1"

// SQLStore 基于 database/sql 的 TableStore，语句使用 SQL Server 语法
type SQLStore struct {
	db *sql.DB
}

var _ logging.TableStore = (*SQLStore)(nil)

// NewSQLStore 创建 SQLStore，连接由调用方管理
func NewSQLStore(db *sql.DB) *SQLStore {
	return &SQLStore{db: db}
}

// OpenSQLServer 打开 SQL Server 连接并检查可用性
func OpenSQLServer(ctx context.Context, dsn string) (*sql.DB, error) {
	db, err := sql.Open("sqlserver", dsn)
	if err != nil {
		return nil, fmt.Errorf("open sqlserver: %w", err)
	}
	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("ping sqlserver: %w", err)
	}
	return db, nil
}

// HasTable 判断表是否存在
func (s *SQLStore) HasTable(ctx context.Context, table string) (bool, error) {
	var n int
	if err := s.db.QueryRowContext(ctx, hasTableQuery, table).Scan(&n); err != nil {
		return false, fmt.Errorf("lookup table %s: %w", table, err)
	}
	return n > 0, nil
}

// CreateTable 建表；ddl 为空时使用默认表结构
func (s *SQLStore) CreateTable(ctx context.Context, table, ddl string) error {
	if ddl == "" {
		ddl = defaultSchema(table)
	}
	if _, err := s.db.ExecContext(ctx, ddl); err != nil {
		return fmt.Errorf("create log table %s: %w", table, err)
	}
	return nil
}

// Insert 插入一行，数值格式的字符串按数字绑定
func (s *SQLStore) Insert(ctx context.Context, table string, columns []string, values []logging.Value) error {
	if len(columns) != len(values) {
		return &logging.StructuralMismatchError{Columns: columns, Values: len(values)}
	}

	args := make([]any, 0, len(values))
	for _, v := range values {
		args = append(args, bindValue(v))
	}

	if _, err := s.db.ExecContext(ctx, insertStatement(table, columns), args...); err != nil {
		return fmt.Errorf("insert into %s: %w", table, err)
	}
	return nil
}

func defaultSchema(table string) string {
	return fmt.Sprintf("CREATE TABLE %s ("+
		"ID int IDENTITY(1,1) NOT NULL, "+
		"message nvarchar(max) NOT NULL, "+
		"exception_message nvarchar(max) NOT NULL, "+
		"date_time datetime2 NOT NULL, "+
		"level nvarchar(16) NOT NULL, "+
		"CONSTRAINT %s UNIQUE (ID))",
		quoteIdent(table), quoteIdent(strings.ToUpper(table)+"_ID"))
}

func insertStatement(table string, columns []string) string {
	names := make([]string, 0, len(columns))
	placeholders := make([]string, 0, len(columns))
	for i, column := range columns {
		names = append(names, quoteIdent(column))
		placeholders = append(placeholders, "@p"+strconv.Itoa(i+1))
	}
	return fmt.Sprintf("INSERT INTO %s (%s) VALUES (%s)",
		quoteIdent(table), strings.Join(names, ", "), strings.Join(placeholders, ", "))
}

func bindValue(v logging.Value) any {
	s, ok := v.Data.(string)
	if !ok || v.Format != logging.FormatNumeric {
		return v.Data
	}
	if i, err := strconv.ParseInt(s, 10, 64); err == nil {
		return i
	}
	if f, err := strconv.ParseFloat(s, 64); err == nil {
		return f
	}
	return s
}

func quoteIdent(name string) string {
	return "[" + strings.ReplaceAll(name, "]", "]]") + "]"
}
