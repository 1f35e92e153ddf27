package cfmt

import (
	"errors"
	"fmt"
	"io"
	"strconv"
)

// 提前结束的原因。
// 格式化和扫描函数只返回计数，这些错误通过 Args.Err 取得。
var (
	// ErrArgsExhausted 参数列表已用完
	ErrArgsExhausted = errors.New("argument list exhausted")
	// ErrArgType 参数类型与转换说明符不符
	ErrArgType = errors.New("argument type does not fit the directive")
	// ErrMalformed 格式字符串中的转换说明符不完整或无法识别
	ErrMalformed = errors.New("malformed directive")
	// ErrMismatch 输入与格式字符串中的字面字符不一致
	ErrMismatch = errors.New("input does not match format")
	// ErrEmptyField 输入中没有可以转换的字符
	ErrEmptyField = errors.New("empty input field")
	// ErrInputEnd 输入在格式字符串结束前用完
	ErrInputEnd = errors.New("input exhausted")
	// ErrStoreType 输出槽的类型无法保存该字段
	ErrStoreType = errors.New("output slot cannot hold the field")
)

// Is 等同于标准库 errors.Is
func Is(err, target error) bool { return errors.Is(err, target) }

// StopError 记录一次格式化或扫描调用在哪里、因为什么提前结束，带堆栈
type StopError struct {
	// Op 是 "printf" 或 "scanf"
	Op string
	// Offset 是转换说明符在格式字符串中的字节偏移
	Offset int
	// Directive 是出问题的转换说明符原文
	Directive string
	// Err 是上面定义的某个哨兵错误
	Err error

	*stack
}

var _ error = (*StopError)(nil)
var _ fmt.Formatter = (*StopError)(nil)

func (e *StopError) Error() string {
	msg := e.Op + ": stopped at offset " + strconv.Itoa(e.Offset)
	if e.Directive != "" {
		msg += " (" + strconv.Quote(e.Directive) + ")"
	}
	return msg + ": " + e.Err.Error()
}

func (e *StopError) Cause() error  { return e.Err }
func (e *StopError) Unwrap() error { return e.Err }

// Format implements fmt.Formatter.
// %+v 在错误信息之后输出堆栈
func (e *StopError) Format(s fmt.State, verb rune) {
	switch {
	case verb == 'v' && s.Flag('+'):
		io.WriteString(s, e.Error())
		if st := e.StackTrace(); len(st) > 0 {
			io.WriteString(s, "\n-- stack trace:")
			io.WriteString(s, StackDetail(st))
		}
	case verb == 'v' || verb == 's':
		io.WriteString(s, e.Error())
	case verb == 'q':
		io.WriteString(s, strconv.Quote(e.Error()))
	default:
		// 不支持的格式化动词
		fmt.Fprintf(s, "%%!%c(%T)", verb, e)
	}
}

// Detail 使用 %+v 将错误格式化为字符串
func Detail(err error) string {
	return fmt.Sprintf("%+v", err)
}

// stopf 新建一个 StopError，skip 为需要跳过的调用层数
func stopf(skip int, op string, offset int, directive string, err error) *StopError {
	return &StopError{
		Op:        op,
		Offset:    offset,
		Directive: directive,
		Err:       err,
		stack:     callers(skip + 1),
	}
}
