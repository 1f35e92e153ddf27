package cfmt

import (
	"log/slog"
	"sync"
)

// Console 是直通的 Sink：每个字符直接交给已注册的消费函数，
// 通常是串口或终端的写函数。未注册时字符被丢弃，计数照常增长。
//
// Console 不做同步。多个 goroutine 同时格式化，或在格式化期间注册，
// 调用方需要自行加锁，或者使用 LockedConsole。
type Console struct {
	putc   func(c byte)
	logger *slog.Logger
}

// Default 是包级 Register、Printf、Vprintf 使用的全局控制台
var Default = &Console{}

// Register 将 putc 设为消费函数并返回之前的那个，首次注册返回 nil。
// putc 为 nil 表示取消注册
func (c *Console) Register(putc func(c byte)) (prev func(c byte)) {
	prev, c.putc = c.putc, putc
	return prev
}

// SetLogger 设置日志，调用提前结束时记录一条 debug 日志
func (c *Console) SetLogger(l *slog.Logger) {
	c.logger = l
}

// PutByte implements Sink.
func (c *Console) PutByte(b byte) {
	if c.putc != nil {
		c.putc(b)
	}
}

// Printf 格式化输出到控制台，返回产生的字符数
func (c *Console) Printf(format string, args ...any) int {
	return c.Vprintf(format, NewArgs(args...))
}

// Vprintf 同 Printf，从游标读取参数
func (c *Console) Vprintf(format string, args *Args) int {
	if args == nil {
		args = NewArgs()
	}
	n := Vfprintf(c, format, args)
	if err := args.Err(); err != nil && c.logger != nil {
		c.logger.Debug("console output stopped early",
			"format", format,
			"count", n,
			"error", err)
	}
	return n
}

// Register 在 Default 控制台上注册 putc
func Register(putc func(c byte)) (prev func(c byte)) {
	return Default.Register(putc)
}

// Printf 格式化输出到 Default 控制台
func Printf(format string, args ...any) int {
	return Default.Printf(format, args...)
}

// Vprintf 从游标读取参数，格式化输出到 Default 控制台
func Vprintf(format string, args *Args) int {
	return Default.Vprintf(format, args)
}

// LockedConsole 用互斥锁串行化注册和输出的 Console。
// 每次调用整体是原子的，并发 Printf 的输出不会交错
type LockedConsole struct {
	mu sync.Mutex
	c  Console
}

// Register 注册 putc 并返回之前的消费函数
func (l *LockedConsole) Register(putc func(c byte)) (prev func(c byte)) {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.c.Register(putc)
}

// SetLogger 同 Console.SetLogger
func (l *LockedConsole) SetLogger(lg *slog.Logger) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.c.SetLogger(lg)
}

// Printf 格式化输出到控制台
func (l *LockedConsole) Printf(format string, args ...any) int {
	return l.Vprintf(format, NewArgs(args...))
}

// Vprintf 从游标读取参数，格式化输出到控制台
func (l *LockedConsole) Vprintf(format string, args *Args) int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.c.Vprintf(format, args)
}
