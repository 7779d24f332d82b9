package config

import (
	"encoding/json"
	"fmt"
	"sync"
	"time"
)

// Configuration 分层合并后的只读配置
type Configuration interface {
	// Get 读取标量值，键支持 "a:b" 或 "a.b"，不存在时返回空串
	Get(key string) string
	// GetSection 返回子节，不存在或不是对象时返回空节
	GetSection(key string) Configuration
	// Bind 通过 JSON 把 key 对应的值绑定到 target，key 为空时绑定整个配置
	Bind(key string, target any) error
	// GetAll 返回配置的深拷贝
	GetAll() map[string]any
}

// ConfigurationSource 配置源
type ConfigurationSource interface {
	Load() (map[string]any, error)
	Name() string
}

// ConfigurationBuilder 按添加顺序合并配置源，后添加的覆盖先添加的
type ConfigurationBuilder struct {
	sources []ConfigurationSource
	mu      sync.RWMutex
}

// NewConfigurationBuilder 创建配置构建器
func NewConfigurationBuilder() *ConfigurationBuilder {
	return &ConfigurationBuilder{}
}

// Add 添加配置源
func (b *ConfigurationBuilder) Add(source ConfigurationSource) *ConfigurationBuilder {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.sources = append(b.sources, source)
	return b
}

// AddJsonFile 添加 JSON 文件配置源
func (b *ConfigurationBuilder) AddJsonFile(path string, optional ...bool) *ConfigurationBuilder {
	return b.Add(&FileSource{Path: path, Format: FormatJSON, Optional: len(optional) > 0 && optional[0]})
}

// AddYamlFile 添加 YAML 文件配置源
func (b *ConfigurationBuilder) AddYamlFile(path string, optional ...bool) *ConfigurationBuilder {
	return b.Add(&FileSource{Path: path, Format: FormatYAML, Optional: len(optional) > 0 && optional[0]})
}

// AddFile 按扩展名选择 JSON 或 YAML 文件配置源
func (b *ConfigurationBuilder) AddFile(path string, optional ...bool) *ConfigurationBuilder {
	return b.Add(&FileSource{Path: path, Format: formatOf(path), Optional: len(optional) > 0 && optional[0]})
}

// AddEnvironmentVariables 添加环境变量配置源
func (b *ConfigurationBuilder) AddEnvironmentVariables(prefix string) *ConfigurationBuilder {
	return b.Add(&EnvironmentVariableSource{Prefix: prefix})
}

// AddInMemory 添加内存配置源，data 不会被修改
func (b *ConfigurationBuilder) AddInMemory(data map[string]any) *ConfigurationBuilder {
	return b.Add(&InMemorySource{Data: data})
}

// AddEtcd 添加 etcd 配置源
func (b *ConfigurationBuilder) AddEtcd(opts EtcdOptions) *ConfigurationBuilder {
	if opts.Timeout == 0 {
		opts.Timeout = 5 * time.Second
	}
	if opts.DialTimeout == 0 {
		opts.DialTimeout = 5 * time.Second
	}
	return b.Add(&EtcdSource{Options: opts})
}

// Build 依次加载并合并所有配置源，每次调用得到独立的结果
func (b *ConfigurationBuilder) Build() (Configuration, error) {
	b.mu.RLock()
	defer b.mu.RUnlock()

	data := make(map[string]any)
	for _, source := range b.sources {
		loaded, err := source.Load()
		if err != nil {
			return nil, fmt.Errorf("failed to load config source %s: %w", source.Name(), err)
		}
		mergeMaps(data, loaded)
	}

	return &configuration{data: data}, nil
}

// configuration 构建后不再修改，读取无需加锁
type configuration struct {
	data map[string]any
}

func (c *configuration) Get(key string) string {
	switch v := c.getByPath(key).(type) {
	case nil:
		return ""
	case string:
		return v
	case map[string]any, []any:
		return ""
	default:
		return fmt.Sprint(v)
	}
}

func (c *configuration) GetSection(key string) Configuration {
	if m, ok := c.getByPath(key).(map[string]any); ok {
		return &configuration{data: m}
	}
	return &configuration{data: map[string]any{}}
}

func (c *configuration) Bind(key string, target any) error {
	data := c.getByPath(key)
	if data == nil {
		return fmt.Errorf("key %s not found", key)
	}

	raw, err := json.Marshal(data)
	if err != nil {
		return fmt.Errorf("failed to marshal data: %w", err)
	}
	if err := json.Unmarshal(raw, target); err != nil {
		return fmt.Errorf("failed to unmarshal data: %w", err)
	}
	return nil
}

func (c *configuration) GetAll() map[string]any {
	return cloneMap(c.data)
}

// getByPath 按 "a:b:c" 或 "a.b.c" 查找值
func (c *configuration) getByPath(path string) any {
	if path == "" {
		return c.data
	}

	current := any(c.data)
	for _, part := range keyPaths.segments(path) {
		m, ok := current.(map[string]any)
		if !ok {
			return nil
		}
		current = m[part]
	}
	return current
}

// mergeMaps 把 src 合并进 dst，嵌套对象递归合并
// dst 中不会留下 src 的任何 map 引用
func mergeMaps(dst, src map[string]any) {
	for k, v := range src {
		srcMap, ok := v.(map[string]any)
		if !ok {
			dst[k] = v
			continue
		}
		dstMap, ok := dst[k].(map[string]any)
		if !ok {
			dstMap = make(map[string]any, len(srcMap))
			dst[k] = dstMap
		}
		mergeMaps(dstMap, srcMap)
	}
}

// cloneMap 深拷贝嵌套对象
func cloneMap(src map[string]any) map[string]any {
	out := make(map[string]any, len(src))
	mergeMaps(out, src)
	return out
}
