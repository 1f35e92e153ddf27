package cfmt

import (
	"unsafe"

	"code.gopub.tech/cfmt/render"
)

// ptrSize 是指针的字节数，%p 补齐到它的两倍位
const ptrSize = int(unsafe.Sizeof(uintptr(0)))

// defaultFloatPrec 是未指定精度时的小数位数
const defaultFloatPrec = 6

// Fprintf 按 format 格式化输出到 s，返回产生的字符数
func Fprintf(s Sink, format string, args ...any) int {
	return Vfprintf(s, format, NewArgs(args...))
}

// Vfprintf 同 Fprintf，从游标读取参数。
//
// 遇到不完整或无法识别的转换说明符、缺少参数或参数类型不符时停止，
// 返回已产生的字符数，原因保存在 args 上，见 Args.Err
func Vfprintf(s Sink, format string, args *Args) int {
	if args == nil {
		args = NewArgs()
	}
	c := counter{sink: s}
	printf(&c, format, args)
	return c.n
}

// Sprintf 格式化为新字符串
func Sprintf(format string, args ...any) string {
	var b GrowBuffer
	Vfprintf(&b, format, NewArgs(args...))
	return b.String()
}

// Appendf 格式化并将结果追加到 dst
func Appendf(dst []byte, format string, args ...any) []byte {
	b := GrowBuffer{buf: dst}
	Vfprintf(&b, format, NewArgs(args...))
	return b.Bytes()
}

// Snprintf 格式化到 buf，最多保存 len(buf)-1 个字符，之后写入 NUL。
// 返回完整输出应有的长度，结果不小于 len(buf) 表示输出被截断
func Snprintf(buf []byte, format string, args ...any) int {
	return Vsnprintf(buf, format, NewArgs(args...))
}

// Vsnprintf 同 Snprintf，从游标读取参数
func Vsnprintf(buf []byte, format string, args *Args) int {
	b := NewCappedBuffer(buf)
	n := Vfprintf(b, format, args)
	b.Terminate()
	return n
}

// UnsafeSprintf 不检查容量，格式化到 dst 并追加 NUL。
// 仅为沿用旧的无界接口的代码保留，应优先使用 Snprintf。写越界会 panic
func UnsafeSprintf(dst Unbounded, format string, args ...any) int {
	return UnsafeVsprintf(dst, format, NewArgs(args...))
}

// UnsafeVsprintf 同 UnsafeSprintf，从游标读取参数
func UnsafeVsprintf(dst Unbounded, format string, args *Args) int {
	u := &unboundedSink{buf: dst.buf}
	n := Vfprintf(u, format, args)
	u.PutByte(0)
	return n
}

func printf(c *counter, format string, args *Args) {
	for i := 0; i < len(format); {
		if format[i] != '%' {
			c.put(format[i])
			i++
			continue
		}
		d, next, err := parseDirective(format, i+1, args)
		if err == nil {
			err = c.emit(&d, args)
		}
		if err != nil {
			args.stop(2, "printf", i, format[i:next], err)
			return
		}
		i = next
	}
}

// emit 渲染一个转换说明符，从 args 取参数
func (c *counter) emit(d *Directive, args *Args) error {
	if d.Kind == KindPercent {
		c.put('%')
		return nil
	}
	v, err := args.pull()
	if err != nil {
		return err
	}

	switch d.Kind {
	case KindChar:
		u, _, _, ok := integer(v)
		if !ok {
			return ErrArgType
		}
		b := byte(u)
		if d.Length == LenLong {
			b = narrow(rune(u))
		}
		c.field(d, 1, func() { c.put(b) })

	case KindString:
		s, ok := text(v, d.Length == LenLong)
		if !ok {
			return ErrArgType
		}
		if d.Prec >= 0 && len(s) > d.Prec {
			s = s[:d.Prec]
		}
		c.field(d, len(s), func() { c.str(s) })

	case KindInt, KindUint, KindOctal, KindHex, KindHexUpper, KindBinary:
		u, signed, bits, ok := integer(v)
		if !ok {
			return ErrArgType
		}
		if b := d.Length.Bits(); b != 0 {
			// 显式的长度修饰符按其位宽重新解释参数
			bits, signed = b, d.Kind == KindInt
		}
		o := d.options()
		if d.Kind != KindInt {
			// 只有有符号转换才为正数输出符号
			signed, o.ForceSign, o.SpaceSign = false, false, false
		}
		r := render.RenderInteger(u, signed, bits, o)
		c.integer(d, &r)

	case KindPointer:
		u, ok := pointer(v)
		if !ok {
			return ErrArgType
		}
		dd := *d
		if dd.Width < 0 {
			dd.Width = 2 * ptrSize
			dd.ZeroPad = !dd.LeftAlign
		}
		r := render.RenderInteger(u, false, 64, dd.options())
		c.integer(&dd, &r)

	case KindCount:
		return c.count(d, v)

	case KindFloat:
		f, ok := float(v)
		if !ok {
			return ErrArgType
		}
		r := render.RenderFloat(f, d.options())
		c.float(d, &r)
	}
	return nil
}

// field 用空格将 body 写出的 n 个字符补齐到字段宽度
func (c *counter) field(d *Directive, n int, body func()) {
	pad := d.Width - n
	if !d.LeftAlign {
		c.pad(' ', pad)
	}
	body()
	if d.LeftAlign {
		c.pad(' ', pad)
	}
}

func (c *counter) decoration(r *render.Result) {
	if r.Sign != 0 {
		c.put(r.Sign)
	}
	c.str(r.Prefix)
}

func decorationLen(r *render.Result) int {
	n := len(r.Prefix)
	if r.Sign != 0 {
		n++
	}
	return n
}

// integer 排版渲染好的整数。精度是最少数字位数，并取消补零
func (c *counter) integer(d *Directive, r *render.Result) {
	digits := r.Digits()
	zeros := 0
	if d.Prec > len(digits) {
		zeros = d.Prec - len(digits)
	}
	pad := d.Width - (decorationLen(r) + zeros + len(digits))

	switch {
	case d.LeftAlign:
		c.decoration(r)
		c.pad('0', zeros)
		c.str(string(digits))
		c.pad(' ', pad)
	case d.ZeroPad && d.Prec < 0:
		c.decoration(r)
		c.pad('0', pad)
		c.str(string(digits))
	default:
		c.pad(' ', pad)
		c.decoration(r)
		c.pad('0', zeros)
		c.str(string(digits))
	}
}

// float 将渲染好的浮点数排版为定点展开，所有浮点转换都走这里。
// 超出精度的数字直接截断，不做舍入
func (c *counter) float(d *Directive, r *render.Result) {
	if r.Special != "" {
		c.field(d, decorationLen(r)+len(r.Special), func() {
			c.decoration(r)
			c.str(r.Special)
		})
		return
	}

	prec := d.Prec
	if prec < 0 {
		prec = defaultFloatPrec
	}
	intLen := r.Decpt
	if intLen < 1 {
		intLen = 1
	}
	point := prec > 0 || d.Alternate
	n := decorationLen(r) + intLen + prec
	if point {
		n++
	}

	pad := d.Width - n
	if !d.LeftAlign && !d.ZeroPad {
		c.pad(' ', pad)
	}
	c.decoration(r)
	if d.ZeroPad && !d.LeftAlign {
		c.pad('0', pad)
	}
	if r.Decpt <= 0 {
		c.put('0')
	} else {
		for k := 0; k < r.Decpt; k++ {
			c.put(r.Digit(k))
		}
	}
	if point {
		c.put('.')
	}
	for i := 0; i < prec; i++ {
		c.put(r.Digit(r.Decpt + i))
	}
	if d.LeftAlign {
		c.pad(' ', pad)
	}
}

// count 将当前计数按长度修饰符的位宽写入 %n 参数，%Ln 需要浮点槽
func (c *counter) count(d *Directive, dst any) error {
	if d.Length == LenLongDouble {
		if !storeFloat(dst, float64(c.n)) {
			return ErrArgType
		}
		return nil
	}
	v := render.Truncate(uint64(c.n), d.Length.Bits())
	if bits := d.Length.Bits(); bits != 0 {
		v = uint64(render.SignExtend(v, bits))
	}
	if !storeInteger(dst, v) {
		return ErrArgType
	}
	return nil
}
