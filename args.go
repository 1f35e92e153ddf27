package cfmt

import (
	"fmt"
	"math"
	"math/big"
	"reflect"
	"strconv"
	"unsafe"

	"code.gopub.tech/cfmt/render"
)

// Args 是参数列表上的一次性游标。
// printf 和 scanf 系列函数从左到右依次读取参数（或输出槽），不能回退，
// 再次格式化需要新建游标。
//
// 调用提前结束时游标保留第一个原因，见 Err。
type Args struct {
	list []any
	next int
	err  error
}

// NewArgs 返回指向 list 第一个元素的游标
func NewArgs(list ...any) *Args {
	return &Args{list: list}
}

// Remaining 返回尚未消费的参数个数
func (a *Args) Remaining() int {
	return len(a.list) - a.next
}

// Err 返回使最近一次调用提前结束的 *StopError，没有则为 nil
func (a *Args) Err() error {
	return a.err
}

// stop 记录本次调用结束的原因，只保留第一个
func (a *Args) stop(skip int, op string, offset int, directive string, err error) {
	if a.err == nil {
		a.err = stopf(skip+1, op, offset, directive, err)
	}
}

func (a *Args) pull() (any, error) {
	if a.next >= len(a.list) {
		return nil, ErrArgsExhausted
	}
	v := a.list[a.next]
	a.next++
	return v, nil
}

// int 取出一个整数参数，用于 '*' 宽度和精度
func (a *Args) int() (int64, error) {
	v, err := a.pull()
	if err != nil {
		return 0, err
	}
	u, signed, bits, ok := integer(v)
	if !ok {
		return 0, ErrArgType
	}
	if signed {
		return render.SignExtend(u, bits), nil
	}
	if u > math.MaxInt64 {
		return math.MaxInt64, nil
	}
	return int64(u), nil
}

// integer 返回整数参数的位模式、Go 类型是否有符号以及位宽
func integer(v any) (u uint64, signed bool, bits int, ok bool) {
	switch x := v.(type) {
	case int:
		return uint64(x), true, strconv.IntSize, true
	case int8:
		return uint64(x), true, 8, true
	case int16:
		return uint64(x), true, 16, true
	case int32:
		return uint64(x), true, 32, true
	case int64:
		return uint64(x), true, 64, true
	case uint:
		return uint64(x), false, strconv.IntSize, true
	case uint8:
		return uint64(x), false, 8, true
	case uint16:
		return uint64(x), false, 16, true
	case uint32:
		return uint64(x), false, 32, true
	case uint64:
		return x, false, 64, true
	case uintptr:
		return uint64(x), false, 64, true
	case nil:
		return 0, false, 0, false
	}
	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return uint64(rv.Int()), true, rv.Type().Bits(), true
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr:
		return rv.Uint(), false, rv.Type().Bits(), true
	}
	return 0, false, 0, false
}

// float 返回浮点参数的值
func float(v any) (float64, bool) {
	switch x := v.(type) {
	case float64:
		return x, true
	case float32:
		return float64(x), true
	case *big.Float:
		if x == nil {
			return 0, false
		}
		f, _ := x.Float64()
		return f, true
	case nil:
		return 0, false
	}
	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Float32, reflect.Float64:
		return rv.Float(), true
	}
	return 0, false
}

// text 返回 %s 参数要输出的字节。
// wide 为 true 时每个字符都收窄为单字节形式，nil 指针输出 (null)
func text(v any, wide bool) (string, bool) {
	var s string
	switch x := v.(type) {
	case string:
		s = x
	case []byte:
		s = string(x)
	case []rune:
		return narrowRunes(x), true
	case error:
		if isNilPointer(v) {
			return "(null)", true
		}
		s = x.Error()
	case fmt.Stringer:
		if isNilPointer(v) {
			return "(null)", true
		}
		s = x.String()
	case nil:
		return "(null)", true
	default:
		rv := reflect.ValueOf(v)
		if rv.Kind() != reflect.String {
			return "", false
		}
		s = rv.String()
	}
	if wide {
		return narrowRunes([]rune(s)), true
	}
	return s, true
}

func isNilPointer(v any) bool {
	rv := reflect.ValueOf(v)
	return rv.Kind() == reflect.Pointer && rv.IsNil()
}

// pointer 返回 %p 参数持有的地址
func pointer(v any) (uint64, bool) {
	switch x := v.(type) {
	case nil:
		return 0, true
	case uintptr:
		return uint64(x), true
	case unsafe.Pointer:
		return uint64(uintptr(x)), true
	}
	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Pointer, reflect.Map, reflect.Chan, reflect.Func, reflect.Slice, reflect.UnsafePointer:
		return uint64(rv.Pointer()), true
	}
	return 0, false
}

func set[T any](p *T, v T) bool {
	if p == nil {
		return false
	}
	*p = v
	return true
}

// storeInteger 将补码位模式 v 写入任意整数指针，按指向类型的位宽截断
func storeInteger(dst any, v uint64) bool {
	switch p := dst.(type) {
	case *int:
		return set(p, int(v))
	case *int8:
		return set(p, int8(v))
	case *int16:
		return set(p, int16(v))
	case *int32:
		return set(p, int32(v))
	case *int64:
		return set(p, int64(v))
	case *uint:
		return set(p, uint(v))
	case *uint8:
		return set(p, uint8(v))
	case *uint16:
		return set(p, uint16(v))
	case *uint32:
		return set(p, uint32(v))
	case *uint64:
		return set(p, v)
	case *uintptr:
		return set(p, uintptr(v))
	case nil:
		return false
	}
	rv := reflect.ValueOf(dst)
	if rv.Kind() != reflect.Pointer || rv.IsNil() {
		return false
	}
	elem := rv.Elem()
	switch elem.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		elem.SetInt(int64(v))
		return true
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr:
		elem.SetUint(v)
		return true
	}
	return false
}

// storeFloat 将 f 写入 *float64、*float32 或 *big.Float
func storeFloat(dst any, f float64) bool {
	switch p := dst.(type) {
	case *float64:
		return set(p, f)
	case *float32:
		return set(p, float32(f))
	case *big.Float:
		if p == nil || math.IsNaN(f) {
			return false
		}
		p.SetFloat64(f)
		return true
	}
	return false
}

// storeText 将 s 写入 *string 或 *[]byte
func storeText(dst any, s string) bool {
	switch p := dst.(type) {
	case *string:
		return set(p, s)
	case *[]byte:
		return set(p, []byte(s))
	}
	return false
}
