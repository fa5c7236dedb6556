package tokenizer

import (
	"strings"
	"unicode/utf8"
)

// DecodeAction decodes a raw action field permissively. Invalid byte
// sequences are replaced with U+FFFD instead of failing the record; clean
// reports whether the input was already valid UTF-8.
//
// Bad bytes in the action text must never drop the line, only degrade it.
func DecodeAction(raw string) (action string, clean bool) {
	if utf8.ValidString(raw) {
		return raw, true
	}
	return strings.ToValidUTF8(raw, string(utf8.RuneError)), false
}
