package cfmt

import "golang.org/x/text/encoding/charmap"

// narrow 将宽字符转换为单字节形式，Latin-1 之外的字符变为 '?'
func narrow(r rune) byte {
	if b, ok := charmap.ISO8859_1.EncodeRune(r); ok {
		return b
	}
	return '?'
}

func narrowRunes(rs []rune) string {
	b := make([]byte, len(rs))
	for i, r := range rs {
		b[i] = narrow(r)
	}
	return string(b)
}
