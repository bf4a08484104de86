package utils

import (
	"bytes"
	"io"
	"reflect"
	"strings"
	"unicode/utf8"
	"unsafe"

	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/transform"
)

func B2S(b []byte) string {
	return *(*string)(unsafe.Pointer(&b))
}

func S2B(s string) []byte {
	const MaxInt32 = 1<<31 - 1
	return (*[MaxInt32]byte)(unsafe.Pointer((*reflect.StringHeader)(
		unsafe.Pointer(&s)).Data))[: len(s)&MaxInt32 : len(s)&MaxInt32]
}

// Latin-1 转 UTF-8（IGN矢量数据属性常见编码）
func Latin1ToUtf8(s []byte) (d []byte, e error) {
	reader := transform.NewReader(bytes.NewReader(s), charmap.ISO8859_1.NewDecoder())
	d, e = io.ReadAll(reader)
	return
}

// UTF-8 转 Latin-1
func Utf8ToLatin1(s []byte) (d []byte, e error) {
	reader := transform.NewReader(bytes.NewReader(s), charmap.ISO8859_1.NewEncoder())
	d, e = io.ReadAll(reader)
	return
}

// Latin-1 string 转 UTF-8
func Latin1StrToUtf8(s string) (d string, e error) {
	reader := transform.NewReader(strings.NewReader(s), charmap.ISO8859_1.NewDecoder())
	t, e := io.ReadAll(reader)
	if e != nil {
		return
	}
	d = B2S(t)
	return
}

// 若字段文本非合法UTF-8，则按Latin-1重新解码
func NormalizeFieldText(s string) string {
	if utf8.ValidString(s) {
		return s
	}
	if d, e := Latin1StrToUtf8(s); e == nil {
		return d
	}
	return PurifyForUtf8(s)
}

func PurifyForUtf8(s string) string {
	return strings.ToValidUTF8(strings.ReplaceAll(s, "\x00", ""), "")
}
