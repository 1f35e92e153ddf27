// Package cfmt 是一个 C 风格的格式化输入输出引擎。
//
// printf 系列按格式字符串中的 % 转换说明符（标志、宽度、精度、长度修饰符、转换字符）
// 渲染参数，逐个字符写入 Sink，返回产生的字符数。
// scanf 系列与之相反：按格式字符串匹配输入，并通过指针保存转换后的字段。
//
// 两个系列都不返回 error。无法继续的调用会停下并返回已有的计数，
// 原因保存在参数游标上，见 Args.Err 和 StopError。
//
// 所有浮点转换都输出为定点展开，末位直接截断，不做舍入。
package cfmt
