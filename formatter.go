package cfmt

import (
	"fmt"
	"io"

	"code.gopub.tech/cfmt/fmtfwd"
)

// Formattable 是可以交给标准库 fmt 打印、但由本包引擎渲染的值
type Formattable interface {
	fmt.Formatter
	Value() any
}

// C 将一个值包装为 fmt.Formatter。
// 在 fmt.Printf 中使用时，当前的标志、宽度、精度会被还原为 C 风格的转换说明符，
// 再由本包的引擎渲染，例如浮点数不做舍入、%#x 总是带前缀。
//
// %v 按值的类型选择转换：有符号整数 %d，无符号整数 %u，浮点 %f，
// 字符串 %s，指针 %p。
func C(v any) Formattable {
	return &value{v}
}

var _ Formattable = (*value)(nil)

type value struct {
	v any
}

func (x *value) Value() any { return x.v }

// Format implements fmt.Formatter.
func (x *value) Format(s fmt.State, verb rune) {
	conv, ok := convFor(verb, x.v)
	if !ok {
		// 不支持的格式化动词
		fmt.Fprintf(s, "%%!%c(%T)", verb, x.v)
		return
	}
	plain, format := fmtfwd.MakeFormat(s, conv)
	if plain && conv == 's' {
		// 常见情况，直接输出
		str, _ := text(x.v, false)
		io.WriteString(s, str)
		return
	}
	var b GrowBuffer
	args := NewArgs(x.v)
	Vfprintf(&b, format, args)
	if err := args.Err(); err != nil {
		fmt.Fprintf(s, "%%!%c(%T)", verb, x.v)
		return
	}
	s.Write(b.Bytes())
}

// convFor 选择与 Go 格式化动词对应的 C 转换字符
func convFor(verb rune, v any) (byte, bool) {
	if verb == 'v' {
		return naturalConv(v)
	}
	if verb >= 0x80 {
		return 0, false
	}
	switch c := byte(verb); kindOf(c) {
	case KindInvalid, KindCount, KindPercent:
		return 0, false
	default:
		return c, true
	}
}

func naturalConv(v any) (byte, bool) {
	if _, signed, _, ok := integer(v); ok {
		if signed {
			return 'd', true
		}
		return 'u', true
	}
	if _, ok := float(v); ok {
		return 'f', true
	}
	if _, ok := text(v, false); ok {
		return 's', true
	}
	if _, ok := pointer(v); ok {
		return 'p', true
	}
	return 0, false
}
