package cfmt_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"code.gopub.tech/cfmt"
)

func TestSnprintfTruncates(t *testing.T) {
	buf := make([]byte, 8)
	n := cfmt.Snprintf(buf, "%s", "hello world")
	assert.Equal(t, 11, n, "count is the would-be length")
	assert.Equal(t, "hello w\x00", string(buf))
}

func TestSnprintfExactFit(t *testing.T) {
	buf := []byte("XXXXXXXX")
	n := cfmt.Snprintf(buf[:6], "hello")
	assert.Equal(t, 5, n)
	assert.Equal(t, "hello\x00XX", string(buf))
}

func TestSnprintfTinyBuffers(t *testing.T) {
	assert.Equal(t, 3, cfmt.Snprintf(nil, "abc"))

	one := []byte{'X'}
	assert.Equal(t, 3, cfmt.Snprintf(one, "abc"))
	assert.Equal(t, byte(0), one[0])
}

// 无论容量多大，保存的文本都是完整输出的前缀，NUL 紧随其后
func TestSnprintfPrefix(t *testing.T) {
	const format = "%-6s|%+05d|%#x|%.2f"
	full := cfmt.Sprintf(format, "ab", 42, 255, 3.5)
	for size := 1; size <= len(full)+2; size++ {
		buf := make([]byte, size)
		for i := range buf {
			buf[i] = 0xff
		}
		n := cfmt.Snprintf(buf, format, "ab", 42, 255, 3.5)
		require.Equal(t, len(full), n, "size %d", size)

		stored := size - 1
		if stored > len(full) {
			stored = len(full)
		}
		assert.Equal(t, full[:stored], string(buf[:stored]), "size %d", size)
		assert.Equal(t, byte(0), buf[stored], "size %d", size)
	}
}

func TestCappedBuffer(t *testing.T) {
	b := cfmt.NewCappedBuffer(make([]byte, 4))
	counts := make([]int, 0, 6)
	for i := 0; i < 6; i++ {
		counts = append(counts, cfmt.Fprintf(b, "%c", 'a'+i))
	}
	assert.Equal(t, []int{1, 1, 1, 1, 1, 1}, counts)
	assert.Equal(t, "abc", string(b.Bytes()))
	assert.True(t, b.Truncated())

	b.Terminate()
	assert.Equal(t, "abc", string(b.Bytes()))

	fits := cfmt.NewCappedBuffer(make([]byte, 4))
	cfmt.Fprintf(fits, "ab")
	assert.False(t, fits.Truncated())
}

func TestSinkFunc(t *testing.T) {
	var got []byte
	s := cfmt.SinkFunc(func(c byte) { got = append(got, c) })
	n := cfmt.Fprintf(s, "%03d", 7)
	assert.Equal(t, 3, n)
	assert.Equal(t, "007", string(got))
}

func TestGrowBufferReset(t *testing.T) {
	var b cfmt.GrowBuffer
	cfmt.Fprintf(&b, "first")
	b.Reset()
	cfmt.Fprintf(&b, "2nd")
	assert.Equal(t, "2nd", b.String())
}

func TestUnsafeSprintf(t *testing.T) {
	buf := make([]byte, 8)
	n := cfmt.UnsafeSprintf(cfmt.AssumeLargeEnough(buf), "%d-%s", 1, "ab")
	assert.Equal(t, 4, n)
	assert.Equal(t, "1-ab\x00", string(buf[:5]))

	assert.Panics(t, func() {
		cfmt.UnsafeSprintf(cfmt.AssumeLargeEnough(make([]byte, 2)), "abc")
	})
}
