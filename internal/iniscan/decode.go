package iniscan

import (
	"strings"
	"unicode/utf8"

	"golang.org/x/text/encoding/unicode"
)

var utf16Decoder = unicode.UTF16(unicode.LittleEndian, unicode.UseBOM)

// Decode converts raw configuration bytes to text on a best-effort basis.
// Valid UTF-8 is returned as-is. Otherwise, an even byte count is decoded as
// UTF-16 little-endian (a BOM, when present, is honored and stripped; invalid
// code units become the Unicode replacement character). Anything else falls
// back to lossy UTF-8 substitution. Decode never fails.
func Decode(data []byte) string {
	if len(data) == 0 {
		return ""
	}
	if utf8.Valid(data) {
		return string(data)
	}
	if len(data)%2 == 0 {
		if out, err := utf16Decoder.NewDecoder().Bytes(data); err == nil {
			return string(out)
		}
	}
	return strings.ToValidUTF8(string(data), string(utf8.RuneError))
}
