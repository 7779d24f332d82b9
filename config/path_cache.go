package config

import (
	"strings"
	"sync"
)

// pathCache 缓存配置键的分段结果
type pathCache struct {
	cache sync.Map
}

// segments 按 : 和 . 拆分键
func (c *pathCache) segments(path string) []string {
	if v, ok := c.cache.Load(path); ok {
		return v.([]string)
	}

	parts := strings.Split(strings.ReplaceAll(path, ":", "."), ".")
	c.cache.Store(path, parts)
	return parts
}

var keyPaths = &pathCache{}
