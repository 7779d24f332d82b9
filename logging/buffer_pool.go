package logging

import (
	"bytes"
	"sync"
)

// BufferPool 字节缓冲池，布局与文件追加器用它拼接单行日志
type BufferPool struct {
	pool sync.Pool
}

// NewBufferPool 创建新的缓冲池
func NewBufferPool() *BufferPool {
	return &BufferPool{
		pool: sync.Pool{
			New: func() interface{} {
				return new(bytes.Buffer)
			},
		},
	}
}

// Get 获取一个 buffer
func (p *BufferPool) Get() *bytes.Buffer {
	return p.pool.Get().(*bytes.Buffer)
}

// Put 归还一个 buffer
func (p *BufferPool) Put(b *bytes.Buffer) {
	b.Reset()
	p.pool.Put(b)
}

// bufferPool 只缓存空 buffer，不持有任何 Logger 状态
var bufferPool = NewBufferPool()
