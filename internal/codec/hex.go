package codec

import (
	"encoding/hex"
	"strings"
	"unicode/utf8"
)

// StringToHex returns the lowercase hex encoding of the UTF-8 bytes of s
func StringToHex(s string) string {
	return hex.EncodeToString([]byte(s))
}

// HexToString decodes hex encoded UTF-8 text. ok is false on malformed input.
func HexToString(h string) (string, bool) {
	b, err := hex.DecodeString(strings.TrimPrefix(strings.TrimSpace(h), "0x"))
	if err != nil || !utf8.Valid(b) {
		return "", false
	}
	return string(b), true
}
