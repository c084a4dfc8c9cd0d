package texast

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"unicode"
	"unicode/utf8"
)

// ErrInvalidEscape is returned by Unescape for malformed escape sequences.
var ErrInvalidEscape = errors.New("invalid escape sequence")

const hexDigits = "0123456789abcdef"

// Escape converts raw text into a printable form that embeds safely as a
// plain string value. The scheme:
//
//	\\ \' \"      backslash and quote characters
//	\n \r \t      newline, carriage return, tab
//	\xHH          any other byte below 0x20, 0x7f, or a byte that is not
//	              part of valid UTF-8
//	\uHHHH        a non-printable rune up to U+FFFF
//	\UHHHHHHHH    a non-printable rune above U+FFFF
//
// Printable runes are copied unchanged. Unescape(Escape(s)) == s for every s.
func Escape(raw string) string {
	var b strings.Builder
	b.Grow(len(raw))

	for i := 0; i < len(raw); {
		r, size := utf8.DecodeRuneInString(raw[i:])

		switch {
		case r == utf8.RuneError && size == 1:
			writeByteEscape(&b, raw[i])
		case r == '\\':
			b.WriteString(`\\`)
		case r == '\'':
			b.WriteString(`\'`)
		case r == '"':
			b.WriteString(`\"`)
		case r == '\n':
			b.WriteString(`\n`)
		case r == '\r':
			b.WriteString(`\r`)
		case r == '\t':
			b.WriteString(`\t`)
		case r < 0x20 || r == 0x7f:
			writeByteEscape(&b, byte(r))
		case unicode.IsPrint(r):
			b.WriteString(raw[i : i+size])
		case r <= 0xffff:
			fmt.Fprintf(&b, `\u%04x`, r)
		default:
			fmt.Fprintf(&b, `\U%08x`, r)
		}

		i += size
	}

	return b.String()
}

func writeByteEscape(b *strings.Builder, c byte) {
	b.WriteString(`\x`)
	b.WriteByte(hexDigits[c>>4])
	b.WriteByte(hexDigits[c&0x0f])
}

// Unescape reverses Escape.
func Unescape(escaped string) (string, error) {
	if !strings.Contains(escaped, `\`) {
		return escaped, nil
	}

	var b strings.Builder
	b.Grow(len(escaped))

	for i := 0; i < len(escaped); i++ {
		c := escaped[i]
		if c != '\\' {
			b.WriteByte(c)
			continue
		}

		if i+1 >= len(escaped) {
			return "", fmt.Errorf("%w: trailing backslash", ErrInvalidEscape)
		}
		i++

		switch escaped[i] {
		case '\\', '\'', '"':
			b.WriteByte(escaped[i])
		case 'n':
			b.WriteByte('\n')
		case 'r':
			b.WriteByte('\r')
		case 't':
			b.WriteByte('\t')
		case 'x':
			value, err := parseHex(escaped, i+1, 2)
			if err != nil {
				return "", err
			}
			b.WriteByte(byte(value))
			i += 2
		case 'u', 'U':
			width := 4
			if escaped[i] == 'U' {
				width = 8
			}
			value, err := parseHex(escaped, i+1, width)
			if err != nil {
				return "", err
			}
			r := rune(value)
			if !utf8.ValidRune(r) {
				return "", fmt.Errorf("%w: rune %#x out of range", ErrInvalidEscape, value)
			}
			b.WriteRune(r)
			i += width
		default:
			return "", fmt.Errorf("%w: \\%c", ErrInvalidEscape, escaped[i])
		}
	}

	return b.String(), nil
}

func parseHex(s string, start, width int) (uint64, error) {
	if start+width > len(s) {
		return 0, fmt.Errorf("%w: truncated hex escape", ErrInvalidEscape)
	}
	value, err := strconv.ParseUint(s[start:start+width], 16, 32)
	if err != nil {
		return 0, fmt.Errorf("%w: %q", ErrInvalidEscape, s[start:start+width])
	}
	return value, nil
}
