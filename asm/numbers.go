package asm

import (
	"fmt"
	"strconv"
	"strings"
)

// parseSignedInt parses a decimal integer with an optional leading
// sign, used for the offset component of a ComOpr token.
func parseSignedInt(s string) (int64, error) {
	return strconv.ParseInt(s, 10, 64)
}

// parseIntegerToken decodes the raw text of a TokInteger token: hex
// (0x...), signed decimal, or a char literal ('c' with the escapes
// accepted by decodeString/decodeCharLiteral).
func parseIntegerToken(text string) (uint32, error) {
	if strings.HasPrefix(text, "'") {
		b, err := decodeCharLiteral(text)
		if err != nil {
			return 0, err
		}
		return uint32(b), nil
	}
	if strings.HasPrefix(text, "0x") || strings.HasPrefix(text, "0X") {
		v, err := strconv.ParseUint(text[2:], 16, 32)
		if err != nil {
			return 0, fmt.Errorf("invalid hex literal %q: %w", text, err)
		}
		return uint32(v), nil
	}
	v, err := strconv.ParseInt(text, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid integer literal %q: %w", text, err)
	}
	return uint32(int32(v)), nil
}
