package cfmt

import (
	"math/big"
	"strconv"
	"strings"

	"code.gopub.tech/cfmt/render"
)

// scratchSize 是数值字段转换前复制到的固定缓冲区大小，也是读取数值字段的最大长度
const scratchSize = 64

// Field 是扫描格式字符串中的一个 % 单元
type Field struct {
	// Verb 是转换字符，扫描集为 '['
	Verb byte
	// Length 是长度修饰符，决定保存的位宽
	Length Length
	// Width 是字段最多读取的字符数，未设置时为 -1
	Width int
	// Suppress 由前导 '*' 设置：读取字段但不保存
	Suppress bool
	// Set 和 Negate 描述 [...] 扫描集
	Set    string
	Negate bool
}

// member 报告 c 是否属于扫描集
func (f *Field) member(c byte) bool {
	return (strings.IndexByte(f.Set, c) >= 0) != f.Negate
}

// counts 报告保存的字段是否计入匹配总数
func (f *Field) counts() bool {
	return f.Verb != '[' && f.Verb != 'n'
}

// parseField 解析 '%' 位于 format[i] 之前的字段
func parseField(format string, i int) (f Field, next int, err error) {
	f = Field{Width: -1}
	if i < len(format) && format[i] == '*' {
		f.Suppress = true
		i++
	}
	if w, j, ok := digitRun(format, i); ok {
		f.Width, i = w, j
	}
	f.Length, i = lengthAt(format, i)
	if i >= len(format) {
		return f, i, ErrMalformed
	}
	f.Verb = format[i]
	i++
	switch f.Verb {
	case 'd', 'i', 'u', 'o', 'x', 'X', 'p', 'n', 's', 'c', '%',
		'a', 'A', 'e', 'E', 'f', 'F', 'g', 'G':
		return f, i, nil
	case '[':
		if i < len(format) && format[i] == '^' {
			f.Negate = true
			i++
		}
		start := i
		if i < len(format) && format[i] == ']' {
			// 开头的 ']' 是成员而不是结束
			i++
		}
		for i < len(format) && format[i] != ']' {
			i++
		}
		if i >= len(format) {
			return f, i, ErrMalformed
		}
		f.Set = format[start:i]
		return f, i + 1, nil
	}
	return f, i, ErrMalformed
}

// Fields 列出扫描格式字符串中的字段
func Fields(format string) ([]Field, error) {
	var list []Field
	for i := 0; i < len(format); {
		if format[i] != '%' {
			i++
			continue
		}
		f, next, err := parseField(format, i+1)
		if err != nil {
			return list, stopf(1, "scanf", i, format[i:next], err)
		}
		list = append(list, f)
		i = next
	}
	return list, nil
}

// Sscanf 按 format 从 input 中读取值，通过 outs 中的指针保存，返回保存的字段数
func Sscanf(input, format string, outs ...any) int {
	return Vsscanf(input, format, NewArgs(outs...))
}

// Vsscanf 同 Sscanf，从游标取输出槽。
//
// 格式中的字面字符必须与输入逐个相等。
// 除 %[ 外的所有转换（包括 %c）都先跳过前导空白。
// 遇到字面字符不匹配、字段无可转换字符、输入结束或输出槽类型不符时停止，
// 返回已保存的字段数，原因保存在 outs 上。
// 扫描集、%n 和被抑制的字段都不计入总数。
func Vsscanf(input, format string, outs *Args) int {
	if outs == nil {
		outs = NewArgs()
	}
	m := matcher{in: input, outs: outs}
	m.run(format)
	return m.count
}

type matcher struct {
	in    string
	pos   int
	outs  *Args
	count int
}

func (m *matcher) run(format string) {
	for i := 0; i < len(format); {
		c := format[i]
		if c != '%' {
			if err := m.literal(c); err != nil {
				m.outs.stop(2, "scanf", i, format[i:i+1], err)
				return
			}
			i++
			continue
		}
		f, next, err := parseField(format, i+1)
		if err == nil {
			err = m.field(&f)
		}
		if err != nil {
			m.outs.stop(2, "scanf", i, format[i:next], err)
			return
		}
		i = next
	}
}

func (m *matcher) literal(c byte) error {
	if m.pos >= len(m.in) {
		return ErrInputEnd
	}
	if m.in[m.pos] != c {
		return ErrMismatch
	}
	m.pos++
	return nil
}

func isSpace(c byte) bool {
	switch c {
	case ' ', '\t', '\n', '\v', '\f', '\r':
		return true
	}
	return false
}

func (m *matcher) skipSpace() {
	for m.pos < len(m.in) && isSpace(m.in[m.pos]) {
		m.pos++
	}
}

// limit 返回当前字段不能到达的下标
func (m *matcher) limit(f *Field, max int) int {
	lim := len(m.in)
	if f.Width > 0 && m.pos+f.Width < lim {
		lim = m.pos + f.Width
	}
	if max > 0 && m.pos+max < lim {
		lim = m.pos + max
	}
	return lim
}

// field 匹配、转换并保存一个字段
func (m *matcher) field(f *Field) error {
	switch f.Verb {
	case '%':
		return m.literal('%')
	case 'n':
		if f.Suppress {
			return nil
		}
		return m.store(f, func(dst any) bool {
			return storeInteger(dst, truncStore(uint64(m.pos), f.Length))
		})
	case '[':
		return m.set(f)
	}

	m.skipSpace()
	if m.pos >= len(m.in) {
		return ErrInputEnd
	}

	switch f.Verb {
	case 's':
		lim := m.limit(f, 0)
		end := m.pos
		for end < lim && !isSpace(m.in[end]) {
			end++
		}
		tok := m.take(end)
		return m.store(f, func(dst any) bool { return storeText(dst, tok) })

	case 'c':
		n := f.Width
		if n <= 0 {
			n = 1
		}
		if m.pos+n > len(m.in) {
			return ErrInputEnd
		}
		tok := m.take(m.pos + n)
		return m.store(f, func(dst any) bool {
			if storeText(dst, tok) {
				return true
			}
			return n == 1 && storeInteger(dst, uint64(tok[0]))
		})

	case 'a', 'A', 'e', 'E', 'f', 'F', 'g', 'G':
		return m.float(f)
	}
	return m.integer(f)
}

// take 读取到 end 为止的输入并返回
func (m *matcher) take(end int) string {
	tok := m.in[m.pos:end]
	m.pos = end
	return tok
}

// store 将下一个输出槽交给 put，被抑制的字段除外
func (m *matcher) store(f *Field, put func(dst any) bool) error {
	if f.Suppress {
		return nil
	}
	dst, err := m.outs.pull()
	if err != nil {
		return err
	}
	if !put(dst) {
		return ErrStoreType
	}
	if f.counts() {
		m.count++
	}
	return nil
}

func (m *matcher) set(f *Field) error {
	if m.pos >= len(m.in) {
		return ErrInputEnd
	}
	lim := m.limit(f, 0)
	end := m.pos
	for end < lim && f.member(m.in[end]) {
		end++
	}
	if end == m.pos {
		return ErrEmptyField
	}
	tok := m.take(end)
	return m.store(f, func(dst any) bool { return storeText(dst, tok) })
}

// integer 界定并转换 d i u o x X p 字段
func (m *matcher) integer(f *Field) error {
	lim := m.limit(f, scratchSize)
	p := m.pos
	if p < lim && (m.in[p] == '+' || m.in[p] == '-') {
		p++
	}

	base := 10
	switch f.Verb {
	case 'o':
		base = 8
	case 'x', 'X':
		base = 16
		if b, skip := render.DetectBase(m.in[p:lim]); b == 16 {
			p += skip
		}
	case 'i', 'p':
		b, skip := render.DetectBase(m.in[p:lim])
		if b == 10 && f.Verb == 'p' {
			b = 16
		}
		base = b
		p += skip
	}

	digits := p
	for p < lim && render.DigitValue(m.in[p]) < base {
		p++
	}
	if p == digits {
		return ErrEmptyField
	}

	var scratch [scratchSize]byte
	n := copy(scratch[:], m.take(p))
	v, ok := render.ParseUint(string(scratch[:n]), base, 64)
	if !ok {
		return ErrEmptyField
	}
	return m.store(f, func(dst any) bool {
		return storeInteger(dst, truncStore(v, f.Length))
	})
}

// float 界定 [sign]digits[.digits][(e|E)[sign]digits] 并转换
func (m *matcher) float(f *Field) error {
	lim := m.limit(f, scratchSize)
	p := m.pos
	if p < lim && (m.in[p] == '+' || m.in[p] == '-') {
		p++
	}
	mant := 0
	for p < lim && isDigit(m.in[p]) {
		p++
		mant++
	}
	if p < lim && m.in[p] == '.' {
		p++
		for p < lim && isDigit(m.in[p]) {
			p++
			mant++
		}
	}
	if mant == 0 {
		return ErrEmptyField
	}
	if p < lim && (m.in[p] == 'e' || m.in[p] == 'E') {
		q := p + 1
		if q < lim && (m.in[q] == '+' || m.in[q] == '-') {
			q++
		}
		if q < lim && isDigit(m.in[q]) {
			for q < lim && isDigit(m.in[q]) {
				q++
			}
			p = q
		}
	}

	var scratch [scratchSize]byte
	n := copy(scratch[:], m.take(p))
	tok := string(scratch[:n])
	v, err := strconv.ParseFloat(tok, 64)
	if err != nil && !isRangeErr(err) {
		return ErrEmptyField
	}
	return m.store(f, func(dst any) bool {
		if bf, ok := dst.(*big.Float); ok && bf != nil && f.Length == LenLongDouble {
			_, ok := bf.SetString(tok)
			return ok
		}
		return storeFloat(dst, v)
	})
}

func isDigit(c byte) bool { return '0' <= c && c <= '9' }

func isRangeErr(err error) bool {
	ne, ok := err.(*strconv.NumError)
	return ok && ne.Err == strconv.ErrRange
}

// truncStore 将 v 截断为长度修饰符的位宽，有符号槽做符号扩展
func truncStore(v uint64, l Length) uint64 {
	bits := l.Bits()
	if bits == 0 {
		return v
	}
	return uint64(render.SignExtend(render.Truncate(v, bits), bits))
}
