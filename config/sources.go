package config

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	clientv3 "go.etcd.io/etcd/client/v3"
	"gopkg.in/yaml.v3"
)

// FileFormat 配置文件格式
type FileFormat string

const (
	FormatJSON FileFormat = "json"
	FormatYAML FileFormat = "yaml"
)

func formatOf(path string) FileFormat {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return FormatYAML
	default:
		return FormatJSON
	}
}

// FileSource JSON 或 YAML 文件配置源
type FileSource struct {
	Path     string
	Format   FileFormat
	Optional bool
}

func (s *FileSource) Name() string {
	return fmt.Sprintf("File(%s)", s.Path)
}

func (s *FileSource) Load() (map[string]any, error) {
	data, err := os.ReadFile(s.Path)
	if err != nil {
		if s.Optional && os.IsNotExist(err) {
			return make(map[string]any), nil
		}
		return nil, err
	}

	result := make(map[string]any)
	switch s.Format {
	case FormatYAML:
		err = yaml.Unmarshal(data, &result)
	default:
		err = json.Unmarshal(data, &result)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", s.Format, err)
	}
	return result, nil
}

// EnvironmentVariableSource 环境变量配置源
// 键去掉前缀后转小写，双下划线表示层级：LOGKIT_LOGGING__LOGGING_LEVEL -> logging:logging_level
// 值一律保持字符串，由绑定目标自行解析
type EnvironmentVariableSource struct {
	Prefix string
}

func (s *EnvironmentVariableSource) Name() string {
	return fmt.Sprintf("EnvironmentVariables(%s)", s.Prefix)
}

func (s *EnvironmentVariableSource) Load() (map[string]any, error) {
	result := make(map[string]any)

	for _, env := range os.Environ() {
		key, value, ok := strings.Cut(env, "=")
		if !ok {
			continue
		}
		if s.Prefix != "" {
			if !strings.HasPrefix(key, s.Prefix) {
				continue
			}
			key = strings.TrimPrefix(key, s.Prefix)
		}
		if key == "" {
			continue
		}

		key = strings.ReplaceAll(strings.ToLower(key), "__", ":")
		setNestedValue(result, key, value)
	}

	return result, nil
}

// InMemorySource 内存配置源
type InMemorySource struct {
	Data map[string]any
}

func (s *InMemorySource) Name() string {
	return "InMemory"
}

func (s *InMemorySource) Load() (map[string]any, error) {
	return cloneMap(s.Data), nil
}

// EtcdOptions etcd 配置选项
type EtcdOptions struct {
	Endpoints   []string
	Username    string
	Password    string
	Prefix      string        // 键前缀
	Timeout     time.Duration // 读取超时，默认 5 秒
	DialTimeout time.Duration // 拨号超时，默认 5 秒
}

// EtcdSource etcd 配置源，键中的 / 表示层级
type EtcdSource struct {
	Options EtcdOptions
}

func (s *EtcdSource) Name() string {
	return fmt.Sprintf("Etcd(%v)", s.Options.Endpoints)
}

func (s *EtcdSource) Load() (map[string]any, error) {
	cli, err := clientv3.New(clientv3.Config{
		Endpoints:   s.Options.Endpoints,
		Username:    s.Options.Username,
		Password:    s.Options.Password,
		DialTimeout: s.Options.DialTimeout,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create etcd client: %w", err)
	}
	defer cli.Close()

	ctx, cancel := context.WithTimeout(context.Background(), s.Options.Timeout)
	defer cancel()

	prefix := s.Options.Prefix
	if prefix == "" {
		prefix = "/"
	}

	resp, err := cli.Get(ctx, prefix, clientv3.WithPrefix())
	if err != nil {
		return nil, fmt.Errorf("failed to get config from etcd: %w", err)
	}

	result := make(map[string]any)
	for _, kv := range resp.Kvs {
		putEtcdValue(result, s.Options.Prefix, string(kv.Key), kv.Value)
	}
	return result, nil
}

// putEtcdValue 把一个 etcd 键值写入 result，值依次尝试 JSON、YAML，最后按字符串处理
func putEtcdValue(result map[string]any, prefix, key string, raw []byte) {
	key = strings.TrimPrefix(strings.TrimPrefix(key, prefix), "/")
	if key == "" {
		return
	}
	key = strings.ReplaceAll(key, "/", ":")

	var value any
	if err := json.Unmarshal(raw, &value); err == nil {
		setNestedValue(result, key, value)
		return
	}
	if err := yaml.Unmarshal(raw, &value); err == nil {
		setNestedValue(result, key, value)
		return
	}
	setNestedValue(result, key, string(raw))
}

// setNestedValue 按 : 分隔的路径写入值
func setNestedValue(data map[string]any, path string, value any) {
	parts := strings.Split(path, ":")
	current := data

	for _, part := range parts[:len(parts)-1] {
		if _, exists := current[part]; !exists {
			current[part] = make(map[string]any)
		}
		m, ok := current[part].(map[string]any)
		if !ok {
			return
		}
		current = m
	}

	current[parts[len(parts)-1]] = value
}
