package cfmt

import (
	"strconv"
	"strings"

	"code.gopub.tech/cfmt/render"
)

// Length 是转换说明符的长度修饰符，决定参数或输出槽的位宽
type Length uint8

const (
	LenNone       Length = iota
	LenHalfHalf          // hh
	LenHalf              // h
	LenLong              // l
	LenLongLong          // ll
	LenMax               // j
	LenSize              // z
	LenPtrdiff           // t
	LenLongDouble        // L
)

var lengthText = [...]string{"", "hh", "h", "l", "ll", "j", "z", "t", "L"}

func (l Length) String() string {
	if int(l) < len(lengthText) {
		return lengthText[l]
	}
	return "?"
}

// Bits 返回 l 选定的整数位宽，参数保持自身位宽时返回 0
func (l Length) Bits() int {
	switch l {
	case LenHalfHalf:
		return 8
	case LenHalf:
		return 16
	case LenNone:
		return 0
	}
	return 64
}

// Kind 是转换说明符执行的转换类别
type Kind uint8

const (
	KindInvalid Kind = iota
	KindChar         // c
	KindString       // s
	KindInt          // d i
	KindUint         // u
	KindOctal        // o
	KindHex          // x
	KindHexUpper     // X
	KindBinary       // b B
	KindPointer      // p
	KindCount        // n
	KindFloat        // a A e E f F g G
	KindPercent      // %
)

// kindOf 返回转换字符对应的类别
func kindOf(c byte) Kind {
	switch c {
	case 'c':
		return KindChar
	case 's':
		return KindString
	case 'd', 'i':
		return KindInt
	case 'u':
		return KindUint
	case 'o':
		return KindOctal
	case 'x':
		return KindHex
	case 'X':
		return KindHexUpper
	case 'b', 'B':
		return KindBinary
	case 'p':
		return KindPointer
	case 'n':
		return KindCount
	case 'a', 'A', 'e', 'E', 'f', 'F', 'g', 'G':
		return KindFloat
	case '%':
		return KindPercent
	}
	return KindInvalid
}

// Directive 是输出格式字符串中解析出的一个 % 单元
type Directive struct {
	LeftAlign bool
	ForceSign bool
	SpaceSign bool
	Alternate bool
	ZeroPad   bool

	// Width 是最小字段宽度，未设置时为 -1
	Width int
	// Prec 是精度，未设置时为 -1
	Prec int
	// WidthFromArg 和 PrecFromArg 记录格式字符串中的 '*'
	WidthFromArg bool
	PrecFromArg  bool

	Length Length
	Kind   Kind
	// Base 是整数类别的进制：2、8、10 或 16
	Base int
	// Verb 是格式字符串中原样的转换字符
	Verb byte
}

// SetLeftAlign 打开左对齐，同时取消补零
func (d *Directive) SetLeftAlign() {
	d.LeftAlign = true
	d.ZeroPad = false
}

// Upper 报告转换字符是否要求大写输出
func (d *Directive) Upper() bool {
	return 'A' <= d.Verb && d.Verb <= 'Z'
}

func (d *Directive) options() render.Options {
	return render.Options{
		Base:      d.Base,
		Upper:     d.Upper(),
		ForceSign: d.ForceSign,
		SpaceSign: d.SpaceSign,
		Alternate: d.Alternate,
	}
}

// String 还原 d 的规范文本
func (d Directive) String() string {
	var f strings.Builder
	f.WriteByte('%')
	if d.LeftAlign {
		f.WriteByte('-')
	}
	if d.ForceSign {
		f.WriteByte('+')
	}
	if d.SpaceSign {
		f.WriteByte(' ')
	}
	if d.Alternate {
		f.WriteByte('#')
	}
	if d.ZeroPad {
		f.WriteByte('0')
	}
	switch {
	case d.WidthFromArg:
		f.WriteByte('*')
	case d.Width >= 0:
		f.WriteString(strconv.Itoa(d.Width))
	}
	switch {
	case d.PrecFromArg:
		f.WriteString(".*")
	case d.Prec >= 0:
		f.WriteByte('.')
		f.WriteString(strconv.Itoa(d.Prec))
	}
	f.WriteString(d.Length.String())
	f.WriteByte(d.Verb)
	return f.String()
}

// maxWidth 限制宽度和精度的数字串，防止溢出
const maxWidth = 1 << 30

// digitRun 从 format[i] 开始读取一个十进制数
func digitRun(format string, i int) (n, next int, ok bool) {
	start := i
	for i < len(format) && '0' <= format[i] && format[i] <= '9' {
		if n < maxWidth {
			n = n*10 + int(format[i]-'0')
		}
		i++
	}
	if n > maxWidth {
		n = maxWidth
	}
	return n, i, i > start
}

// lengthAt 从 format[i] 开始读取可选的长度修饰符，
// 连续两个 h 或 l 作为 hh 或 ll 读取
func lengthAt(format string, i int) (Length, int) {
	if i >= len(format) {
		return LenNone, i
	}
	double := i+1 < len(format) && format[i+1] == format[i]
	switch format[i] {
	case 'h':
		if double {
			return LenHalfHalf, i + 2
		}
		return LenHalf, i + 1
	case 'l':
		if double {
			return LenLongLong, i + 2
		}
		return LenLong, i + 1
	case 'j':
		return LenMax, i + 1
	case 'z':
		return LenSize, i + 1
	case 't':
		return LenPtrdiff, i + 1
	case 'L':
		return LenLongDouble, i + 1
	}
	return LenNone, i
}

// parseDirective 解析 '%' 位于 format[i] 之前的转换说明符。
// '*' 宽度或精度从 args 取出，args 为 nil 时只做记录。
// 返回的 next 是转换字符之后的下标，或解析放弃的位置
func parseDirective(format string, i int, args *Args) (d Directive, next int, err error) {
	d = Directive{Width: -1, Prec: -1, Base: 10}

flags:
	for ; i < len(format); i++ {
		switch format[i] {
		case '-':
			d.SetLeftAlign()
		case '+':
			d.ForceSign = true
		case ' ':
			d.SpaceSign = true
		case '#':
			d.Alternate = true
		case '0':
			if !d.LeftAlign {
				d.ZeroPad = true
			}
		default:
			break flags
		}
	}

	if i < len(format) && format[i] == '*' {
		i++
		d.WidthFromArg = true
		if args != nil {
			w, err := args.int()
			if err != nil {
				return d, i, err
			}
			if w < 0 {
				d.SetLeftAlign()
				if w = -w; w < 0 {
					w = maxWidth
				}
			}
			d.Width = clampWidth(w)
		}
	} else if w, j, ok := digitRun(format, i); ok {
		d.Width, i = w, j
	}

	if i < len(format) && format[i] == '.' {
		i++
		if i < len(format) && format[i] == '*' {
			i++
			d.PrecFromArg = true
			if args != nil {
				p, err := args.int()
				if err != nil {
					return d, i, err
				}
				if p < 0 {
					p = 0
				}
				d.Prec = clampWidth(p)
			}
		} else {
			// 单独的 '.' 表示精度为 0
			d.Prec, i, _ = digitRun(format, i)
		}
	}

	d.Length, i = lengthAt(format, i)

	if i >= len(format) {
		return d, i, ErrMalformed
	}
	d.Verb = format[i]
	d.Kind = kindOf(d.Verb)
	i++
	switch d.Kind {
	case KindInvalid:
		return d, i, ErrMalformed
	case KindOctal:
		d.Base = 8
	case KindHex, KindHexUpper, KindPointer:
		d.Base = 16
	case KindBinary:
		d.Base = 2
	}
	return d, i, nil
}

func clampWidth(n int64) int {
	if n > maxWidth {
		return maxWidth
	}
	return int(n)
}

// Directives 列出输出格式字符串中的转换说明符，不取任何参数。
// 遇到不完整或无法识别的转换说明符时返回 ErrMalformed
func Directives(format string) ([]Directive, error) {
	var list []Directive
	for i := 0; i < len(format); {
		if format[i] != '%' {
			i++
			continue
		}
		d, next, err := parseDirective(format, i+1, nil)
		if err != nil {
			return list, stopf(1, "printf", i, format[i:next], err)
		}
		list = append(list, d)
		i = next
	}
	return list, nil
}
