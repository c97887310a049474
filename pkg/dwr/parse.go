package dwr

import (
	"errors"
	"fmt"
	"html"
	"strconv"
	"strings"
	"unicode"
	"unicode/utf16"
)

// ErrNoObjects is returned when a reply does not carry an object array.
var ErrNoObjects = errors.New("dwr reply contains no objects")

// ErrMissingKey is returned when an object does not define a key or defines it as null.
var ErrMissingKey = errors.New("dwr object key missing")

// Object is a decoded DWR object. String values are unescaped; other values
// keep their literal text. Keys whose value is null are absent.
type Object map[string]string

// Has reports whether key is present with a non-null value.
func (o Object) Has(key string) bool {
	_, ok := o[key]
	return ok
}

// String returns the value of key.
func (o Object) String(key string) (string, bool) {
	v, ok := o[key]
	return v, ok
}

// Int returns the value of key as an integer. Floating point literals are truncated.
func (o Object) Int(key string) (int, error) {
	v, ok := o[key]
	if !ok {
		return 0, fmt.Errorf("%w: %s", ErrMissingKey, key)
	}
	if n, err := strconv.Atoi(v); err == nil {
		return n, nil
	}
	f, err := strconv.ParseFloat(v, 64)
	if err != nil {
		return 0, fmt.Errorf("key %s: invalid number %q", key, v)
	}
	return int(f), nil
}

// Parse extracts the object array from a DWR reply.
func Parse(reply string) ([]Object, error) {
	start := strings.Index(reply, "[{")
	end := strings.LastIndex(reply, "}]")
	if start < 0 || end < start {
		return nil, ErrNoObjects
	}

	s := &scanner{src: reply[start+1 : end+1]}
	return s.objects()
}

// FormatText turns a DWR text value into display text: line breaks become
// newlines, " / " separators become commas and HTML entities are decoded.
func FormatText(s string) string {
	s = strings.NewReplacer("<br>", "\n", "<br/>", "\n", "<br />", "\n", "<BR>", "\n").Replace(s)
	s = strings.ReplaceAll(s, " / ", ", ")
	s = strings.TrimSpace(s)
	return html.UnescapeString(s)
}

type scanner struct {
	src string
	pos int
}

func (s *scanner) errorf(format string, args ...any) error {
	return fmt.Errorf("dwr: offset %d: %s", s.pos, fmt.Sprintf(format, args...))
}

func (s *scanner) eof() bool {
	return s.pos >= len(s.src)
}

func (s *scanner) peek() byte {
	if s.eof() {
		return 0
	}
	return s.src[s.pos]
}

func (s *scanner) consume(c byte) bool {
	if s.peek() == c && !s.eof() {
		s.pos++
		return true
	}
	return false
}

func (s *scanner) skipSpace() {
	for !s.eof() {
		switch s.src[s.pos] {
		case ' ', '\t', '\r', '\n':
			s.pos++
		default:
			return
		}
	}
}

func (s *scanner) objects() ([]Object, error) {
	var objs []Object
	for {
		s.skipSpace()
		obj, err := s.object()
		if err != nil {
			return nil, err
		}
		objs = append(objs, obj)

		s.skipSpace()
		if s.eof() {
			return objs, nil
		}
		if !s.consume(',') {
			return nil, s.errorf("expected ',' between objects, found %q", s.peek())
		}
	}
}

func (s *scanner) object() (Object, error) {
	if !s.consume('{') {
		return nil, s.errorf("expected '{'")
	}

	obj := Object{}
	s.skipSpace()
	if s.consume('}') {
		return obj, nil
	}

	for {
		s.skipSpace()
		key, err := s.key()
		if err != nil {
			return nil, err
		}

		s.skipSpace()
		if !s.consume(':') {
			return nil, s.errorf("expected ':' after key %q", key)
		}

		s.skipSpace()
		val, null, err := s.value()
		if err != nil {
			return nil, fmt.Errorf("key %s: %w", key, err)
		}
		if !null {
			obj[key] = val
		}

		s.skipSpace()
		switch {
		case s.consume(','):
		case s.consume('}'):
			return obj, nil
		default:
			return nil, s.errorf("expected ',' or '}' after value of %q", key)
		}
	}
}

func (s *scanner) key() (string, error) {
	if c := s.peek(); c == '"' || c == '\'' {
		return s.str()
	}

	start := s.pos
	for !s.eof() && isIdent(s.src[s.pos]) {
		s.pos++
	}
	if start == s.pos {
		return "", s.errorf("expected key")
	}
	return s.src[start:s.pos], nil
}

func isIdent(c byte) bool {
	return c == '_' || c == '$' ||
		('a' <= c && c <= 'z') || ('A' <= c && c <= 'Z') || ('0' <= c && c <= '9')
}

// value reads a string literal or a bare literal up to the next top level
// ',' or closing bracket. Nested arrays and objects are kept verbatim.
func (s *scanner) value() (string, bool, error) {
	if c := s.peek(); c == '"' || c == '\'' {
		v, err := s.str()
		return v, false, err
	}

	start := s.pos
	depth := 0
loop:
	for !s.eof() {
		switch s.src[s.pos] {
		case '"', '\'':
			if _, err := s.str(); err != nil {
				return "", false, err
			}
			continue
		case '{', '[':
			depth++
		case '}', ']':
			if depth == 0 {
				break loop
			}
			depth--
		case ',':
			if depth == 0 {
				break loop
			}
		}
		s.pos++
	}

	raw := strings.TrimSpace(s.src[start:s.pos])
	switch raw {
	case "":
		return "", false, s.errorf("expected value")
	case "null", "undefined":
		return "", true, nil
	}
	return raw, false, nil
}

// str reads a quoted JavaScript string literal and returns its decoded value.
func (s *scanner) str() (string, error) {
	quote := s.src[s.pos]
	s.pos++

	var b strings.Builder
	for !s.eof() {
		c := s.src[s.pos]
		switch {
		case c == quote:
			s.pos++
			return b.String(), nil
		case c == '\\':
			if err := s.escape(&b); err != nil {
				return "", err
			}
		default:
			b.WriteByte(c)
			s.pos++
		}
	}
	return "", s.errorf("unterminated string")
}

func (s *scanner) escape(b *strings.Builder) error {
	s.pos++ // backslash
	if s.eof() {
		return s.errorf("unterminated escape")
	}

	c := s.src[s.pos]
	s.pos++
	switch c {
	case 'n':
		b.WriteByte('\n')
	case 't':
		b.WriteByte('\t')
	case 'r':
		b.WriteByte('\r')
	case 'b':
		b.WriteByte('\b')
	case 'f':
		b.WriteByte('\f')
	case 'v':
		b.WriteByte('\v')
	case '0':
		b.WriteByte(0)
	case 'x':
		n, err := s.hex(2)
		if err != nil {
			return err
		}
		b.WriteRune(rune(n))
	case 'u':
		n, err := s.hex(4)
		if err != nil {
			return err
		}
		r := rune(n)
		if utf16.IsSurrogate(r) && strings.HasPrefix(s.src[s.pos:], `\u`) {
			save := s.pos
			s.pos += 2
			if low, err := s.hex(4); err == nil {
				if pair := utf16.DecodeRune(r, rune(low)); pair != unicode.ReplacementChar {
					b.WriteRune(pair)
					return nil
				}
			}
			s.pos = save
		}
		b.WriteRune(r)
	default:
		// \" \' \\ \/ and any other escaped character stand for themselves.
		b.WriteByte(c)
	}
	return nil
}

func (s *scanner) hex(digits int) (int, error) {
	if s.pos+digits > len(s.src) {
		return 0, s.errorf("short hex escape")
	}
	n, err := strconv.ParseUint(s.src[s.pos:s.pos+digits], 16, 32)
	if err != nil {
		return 0, s.errorf("invalid hex escape %q", s.src[s.pos:s.pos+digits])
	}
	s.pos += digits
	return int(n), nil
}
