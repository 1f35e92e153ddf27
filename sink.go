package cfmt

// Sink 逐个字符接收格式化输出
type Sink interface {
	PutByte(c byte)
}

// SinkFunc 将函数适配为 Sink
type SinkFunc func(c byte)

// PutByte implements Sink.
func (f SinkFunc) PutByte(c byte) { f(c) }

// Discard 丢弃所有字符，格式化到它仍会返回输出应有的长度
var Discard Sink = discard{}

type discard struct{}

func (discard) PutByte(byte) {}

// counter 是每次调用写入时使用的句柄：Sink 加上引擎尝试输出的字符计数
type counter struct {
	sink Sink
	n    int
}

func (c *counter) put(b byte) {
	if c.sink != nil {
		c.sink.PutByte(b)
	}
	c.n++
}

func (c *counter) pad(b byte, n int) {
	for ; n > 0; n-- {
		c.put(b)
	}
}

func (c *counter) str(s string) {
	for i := 0; i < len(s); i++ {
		c.put(s[i])
	}
}

// CappedBuffer 是定长数组上的 Sink，最多保存 len(buf)-1 个字符，
// 保证 Terminate 总有位置写入 NUL，其余字符静默丢弃
type CappedBuffer struct {
	buf []byte
	pos int
}

// NewCappedBuffer 返回写入 buf 的 CappedBuffer
func NewCappedBuffer(buf []byte) *CappedBuffer {
	return &CappedBuffer{buf: buf}
}

// PutByte implements Sink.
func (b *CappedBuffer) PutByte(c byte) {
	if b.pos < len(b.buf)-1 {
		b.buf[b.pos] = c
	}
	b.pos++
}

// Terminate 在已保存的字符之后写入 NUL，不计数
func (b *CappedBuffer) Terminate() {
	if len(b.buf) == 0 {
		return
	}
	b.buf[b.stored()] = 0
}

// Bytes 返回已保存的字符，不含 NUL
func (b *CappedBuffer) Bytes() []byte {
	return b.buf[:b.stored()]
}

// Truncated 报告是否有字符被丢弃
func (b *CappedBuffer) Truncated() bool {
	return b.pos > b.stored()
}

func (b *CappedBuffer) stored() int {
	if n := len(b.buf) - 1; b.pos > n {
		if n < 0 {
			return 0
		}
		return n
	}
	return b.pos
}

// GrowBuffer 是追加到字节切片的 Sink
type GrowBuffer struct {
	buf []byte
}

// PutByte implements Sink.
func (b *GrowBuffer) PutByte(c byte) { b.buf = append(b.buf, c) }

// Bytes 返回累积的输出
func (b *GrowBuffer) Bytes() []byte { return b.buf }

// String 以字符串返回累积的输出
func (b *GrowBuffer) String() string { return string(b.buf) }

// Reset 清空缓冲区，保留底层存储
func (b *GrowBuffer) Reset() { b.buf = b.buf[:0] }

// Unbounded 是调用方保证足够大的输出目标。
// 只能通过 AssumeLargeEnough 获得，每处无界写入在调用点都清晰可见
type Unbounded struct {
	buf []byte
}

// AssumeLargeEnough 将 buf 标记为 Unbounded 目标。
// 不做任何检查，写过 buf 末尾会因下标越界而 panic
func AssumeLargeEnough(buf []byte) Unbounded {
	return Unbounded{buf: buf}
}

type unboundedSink struct {
	buf []byte
	pos int
}

func (u *unboundedSink) PutByte(c byte) {
	u.buf[u.pos] = c
	u.pos++
}
