package database

import (
	"context"
	"fmt"
	"time"

	"github.com/gocrud/logkit/logging"
	"github.com/redis/go-redis/v9"
)

// DefaultStreamGroup 建流时创建的默认消费组
const DefaultStreamGroup = "logkit"

// RedisOptions Redis 连接配置
type RedisOptions struct {
	Addr         string
	Password     string
	DB           int
	DialTimeout  time.Duration
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
	PoolSize     int
	MinIdleConns int
	MaxRetries   int
}

// NewDefaultRedisOptions 创建默认配置
func NewDefaultRedisOptions(addr string) *RedisOptions {
	return &RedisOptions{
		Addr:         addr,
		DialTimeout:  5 * time.Second,
		ReadTimeout:  3 * time.Second,
		WriteTimeout: 3 * time.Second,
		PoolSize:     10,
		MinIdleConns: 1,
		MaxRetries:   3,
	}
}

// Validate 验证配置
func (o *RedisOptions) Validate() error {
	if o.Addr == "" {
		return fmt.Errorf("redis address is required")
	}
	if o.DB < 0 {
		return fmt.Errorf("redis database number must be non-negative")
	}
	if o.DialTimeout <= 0 {
		return fmt.Errorf("redis dial timeout must be positive")
	}
	return nil
}

// OpenRedis 创建 Redis 客户端并检查连接
func OpenRedis(ctx context.Context, opts RedisOptions) (*redis.Client, error) {
	if err := opts.Validate(); err != nil {
		return nil, err
	}

	client := redis.NewClient(&redis.Options{
		Addr:         opts.Addr,
		Password:     opts.Password,
		DB:           opts.DB,
		DialTimeout:  opts.DialTimeout,
		ReadTimeout:  opts.ReadTimeout,
		WriteTimeout: opts.WriteTimeout,
		PoolSize:     opts.PoolSize,
		MinIdleConns: opts.MinIdleConns,
		MaxRetries:   opts.MaxRetries,
	})

	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("failed to connect to redis: %w", err)
	}
	return client, nil
}

// RedisStore 把每张表映射为一个 Redis Stream，每行日志是一条消息
type RedisStore struct {
	client redis.UniversalClient
	maxLen int64
}

var _ logging.TableStore = (*RedisStore)(nil)

// NewRedisStore 创建 RedisStore；maxLen 大于 0 时按近似长度裁剪流
func NewRedisStore(client redis.UniversalClient, maxLen int64) *RedisStore {
	return &RedisStore{client: client, maxLen: maxLen}
}

// HasTable 判断流是否存在
func (s *RedisStore) HasTable(ctx context.Context, table string) (bool, error) {
	n, err := s.client.Exists(ctx, table).Result()
	if err != nil {
		return false, fmt.Errorf("lookup stream %s: %w", table, err)
	}
	return n > 0, nil
}

// CreateTable 创建空流和消费组，ddl 非空时作为消费组名
func (s *RedisStore) CreateTable(ctx context.Context, table, ddl string) error {
	group := ddl
	if group == "" {
		group = DefaultStreamGroup
	}
	if err := s.client.XGroupCreateMkStream(ctx, table, group, "$").Err(); err != nil {
		return fmt.Errorf("create stream %s: %w", table, err)
	}
	return nil
}

// Insert 追加一条消息，字段顺序与列一致
func (s *RedisStore) Insert(ctx context.Context, table string, columns []string, values []logging.Value) error {
	if len(columns) != len(values) {
		return &logging.StructuralMismatchError{Columns: columns, Values: len(values)}
	}

	fields := make([]any, 0, len(columns)*2)
	for i, column := range columns {
		fields = append(fields, column, values[i].Data)
	}

	args := &redis.XAddArgs{Stream: table, Values: fields}
	if s.maxLen > 0 {
		args.MaxLen = s.maxLen
		args.Approx = true
	}
	if err := s.client.XAdd(ctx, args).Err(); err != nil {
		return fmt.Errorf("append to stream %s: %w", table, err)
	}
	return nil
}
