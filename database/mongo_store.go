package database

import (
	"context"
	"fmt"
	"time"

	"github.com/gocrud/logkit/logging"
	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"
)

// MongoOptions MongoDB 连接配置
type MongoOptions struct {
	URI         string
	Username    string
	Password    string
	MaxPoolSize uint64
	MinPoolSize uint64
	Timeout     time.Duration
}

// NewDefaultMongoOptions 创建默认配置
func NewDefaultMongoOptions(uri string) *MongoOptions {
	return &MongoOptions{
		URI:         uri,
		MaxPoolSize: 100,
		MinPoolSize: 1,
		Timeout:     10 * time.Second,
	}
}

// Validate 验证配置
func (o *MongoOptions) Validate() error {
	if o.URI == "" {
		return fmt.Errorf("mongo uri is required")
	}
	return nil
}

// ClientOptions 转换为驱动的客户端选项
func (o *MongoOptions) ClientOptions() *options.ClientOptions {
	clientOpts := options.Client().ApplyURI(o.URI)
	if o.Username != "" || o.Password != "" {
		clientOpts.SetAuth(options.Credential{
			Username: o.Username,
			Password: o.Password,
		})
	}
	if o.MaxPoolSize > 0 {
		clientOpts.SetMaxPoolSize(o.MaxPoolSize)
	}
	if o.MinPoolSize > 0 {
		clientOpts.SetMinPoolSize(o.MinPoolSize)
	}
	if o.Timeout > 0 {
		clientOpts.SetConnectTimeout(o.Timeout)
	}
	return clientOpts
}

// OpenMongo 连接 MongoDB 并检查可用性
func OpenMongo(ctx context.Context, opts MongoOptions) (*mongo.Client, error) {
	if err := opts.Validate(); err != nil {
		return nil, err
	}

	client, err := mongo.Connect(opts.ClientOptions())
	if err != nil {
		return nil, fmt.Errorf("failed to create mongo client: %w", err)
	}
	if err := client.Ping(ctx, nil); err != nil {
		_ = client.Disconnect(context.Background())
		return nil, fmt.Errorf("failed to connect to mongo: %w", err)
	}
	return client, nil
}

// MongoStore 把每张表映射为一个集合，每行日志是一个文档
type MongoStore struct {
	db *mongo.Database
}

var _ logging.TableStore = (*MongoStore)(nil)

// NewMongoStore 创建 MongoStore，客户端由调用方管理
func NewMongoStore(db *mongo.Database) *MongoStore {
	return &MongoStore{db: db}
}

// HasTable 判断集合是否存在
func (s *MongoStore) HasTable(ctx context.Context, table string) (bool, error) {
	names, err := s.db.ListCollectionNames(ctx, bson.D{{Key: "name", Value: table}})
	if err != nil {
		return false, fmt.Errorf("lookup collection %s: %w", table, err)
	}
	return len(names) > 0, nil
}

// CreateTable 创建集合；ddl 非空时按扩展 JSON 解析为文档校验规则
func (s *MongoStore) CreateTable(ctx context.Context, table, ddl string) error {
	opts := options.CreateCollection()
	if ddl != "" {
		validator, err := parseValidator(ddl)
		if err != nil {
			return err
		}
		opts.SetValidator(validator)
	}

	if err := s.db.CreateCollection(ctx, table, opts); err != nil {
		return fmt.Errorf("create collection %s: %w", table, err)
	}
	return nil
}

// Insert 插入一个文档
func (s *MongoStore) Insert(ctx context.Context, table string, columns []string, values []logging.Value) error {
	doc, err := document(columns, values)
	if err != nil {
		return err
	}
	if _, err := s.db.Collection(table).InsertOne(ctx, doc); err != nil {
		return fmt.Errorf("insert into %s: %w", table, err)
	}
	return nil
}

// document 按列顺序构造文档
func document(columns []string, values []logging.Value) (bson.D, error) {
	if len(columns) != len(values) {
		return nil, &logging.StructuralMismatchError{Columns: columns, Values: len(values)}
	}

	doc := make(bson.D, 0, len(columns))
	for i, column := range columns {
		doc = append(doc, bson.E{Key: column, Value: values[i].Data})
	}
	return doc, nil
}

func parseValidator(ddl string) (bson.M, error) {
	var validator bson.M
	if err := bson.UnmarshalExtJSON([]byte(ddl), false, &validator); err != nil {
		return nil, fmt.Errorf("invalid collection validator: %w", err)
	}
	return validator, nil
}
