package logging

// Default 使用全部默认配置创建 Logger（文件追加器写入 default.log，简单布局，INFO 级别）
func Default() *Logger {
	return New(Config{})
}
