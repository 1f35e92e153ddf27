package cfmt

import (
	"runtime"
	"strconv"
	"strings"
)

// callers 获取调用者的堆栈信息
// skip 为 0 时第一帧是 callers 的调用者
func callers(skip int) *stack {
	const numFrames = 32
	var pcs [numFrames]uintptr
	n := runtime.Callers(skip+2, pcs[:])
	var st stack = pcs[0:n]
	return &st
}

// stack 堆栈信息
type stack []uintptr

// StackTrace 返回堆栈的副本
func (s *stack) StackTrace() []uintptr {
	if s == nil {
		return nil
	}
	f := make([]uintptr, len(*s))
	copy(f, *s)
	return f
}

// StackDetail 获取堆栈详情
func StackDetail(st []uintptr) string {
	var sb strings.Builder
	for _, f := range st {
		sb.WriteString("\n")
		pc := f - 1
		fn := runtime.FuncForPC(pc)
		if fn != nil {
			sb.WriteString(fn.Name())
			sb.WriteString("\n\t")
			file, line := fn.FileLine(pc)
			sb.WriteString(file)
			sb.WriteString(":")
			sb.WriteString(strconv.Itoa(line))
		} else {
			sb.WriteString("unknown\n\tunknown:0")
		}
	}
	return sb.String()
}
