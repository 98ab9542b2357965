package metadata

import (
	"regexp"
	"strconv"
	"strings"
	"unicode"
	"unicode/utf8"
)

// exportedMetadataDecl matches the declaration head of an exported metadata
// object, e.g. `export const metadata = {` or `export const metadata: Meta = {`.
var exportedMetadataDecl = regexp.MustCompile(`(?m)^\s*export\s+(?:const|let|var)\s+metadata\b\s*(?::[^=\n]*)?=\s*\{`)

// ExportedObject locates the first exported `metadata` object literal in src and
// decodes it. Only string, number, boolean and flat array-of-those values are
// accepted; any other shape (nested objects, identifiers, calls, spreads,
// template substitutions) or a syntax error yields ok == false.
func ExportedObject(src string) (fields map[string]any, ok bool) {
	loc := exportedMetadataDecl.FindStringIndex(src)
	if loc == nil {
		return nil, false
	}
	p := &literalParser{src: src, pos: loc[1] - 1}
	fields, ok = p.object()
	if !ok {
		return nil, false
	}
	return fields, true
}

// literalParser is a restricted recursive-descent reader for JavaScript object
// literals. It never evaluates anything.
type literalParser struct {
	src string
	pos int
}

func (p *literalParser) object() (map[string]any, bool) {
	if !p.consume('{') {
		return nil, false
	}
	fields := map[string]any{}
	for {
		p.skipSpace()
		if p.consume('}') {
			return fields, true
		}
		key, ok := p.key()
		if !ok {
			return nil, false
		}
		p.skipSpace()
		if !p.consume(':') {
			return nil, false
		}
		p.skipSpace()
		value, ok := p.value(true)
		if !ok {
			return nil, false
		}
		fields[key] = value
		p.skipSpace()
		if p.consume(',') {
			continue
		}
		p.skipSpace()
		if p.consume('}') {
			return fields, true
		}
		return nil, false
	}
}

func (p *literalParser) key() (string, bool) {
	if p.eof() {
		return "", false
	}
	switch c := p.src[p.pos]; {
	case c == '"' || c == '\'':
		return p.quoted()
	case isIdentStart(rune(c)):
		return p.ident(), true
	default:
		return "", false
	}
}

func (p *literalParser) value(allowArray bool) (any, bool) {
	if p.eof() {
		return nil, false
	}
	c := p.src[p.pos]
	switch {
	case c == '"' || c == '\'' || c == '`':
		return p.quoted()
	case c == '-' || c == '+' || c == '.' || (c >= '0' && c <= '9'):
		return p.number()
	case c == '[' && allowArray:
		return p.array()
	case isIdentStart(rune(c)):
		switch p.ident() {
		case "true":
			return true, true
		case "false":
			return false, true
		}
	}
	return nil, false
}

func (p *literalParser) array() ([]any, bool) {
	p.pos++ // '['
	out := []any{}
	for {
		p.skipSpace()
		if p.consume(']') {
			return out, true
		}
		v, ok := p.value(false)
		if !ok {
			return nil, false
		}
		out = append(out, v)
		p.skipSpace()
		if p.consume(',') {
			continue
		}
		p.skipSpace()
		if p.consume(']') {
			return out, true
		}
		return nil, false
	}
}

func (p *literalParser) quoted() (string, bool) {
	quote := p.src[p.pos]
	p.pos++
	var b strings.Builder
	for !p.eof() {
		c := p.src[p.pos]
		switch {
		case c == quote:
			p.pos++
			return b.String(), true
		case c == '\n' && quote != '`':
			return "", false
		case c == '$' && quote == '`' && p.peek(1) == '{':
			return "", false // substitutions need evaluation
		case c == '\\':
			r, ok := p.escape()
			if !ok {
				return "", false
			}
			b.WriteString(r)
		default:
			b.WriteByte(c)
			p.pos++
		}
	}
	return "", false
}

func (p *literalParser) escape() (string, bool) {
	p.pos++ // backslash
	if p.eof() {
		return "", false
	}
	c := p.src[p.pos]
	p.pos++
	switch c {
	case 'n':
		return "\n", true
	case 't':
		return "\t", true
	case 'r':
		return "\r", true
	case 'b':
		return "\b", true
	case 'f':
		return "\f", true
	case 'v':
		return "\v", true
	case '0':
		return "\x00", true
	case '\n':
		return "", true // line continuation
	case 'u':
		if p.pos+4 > len(p.src) {
			return "", false
		}
		n, err := strconv.ParseUint(p.src[p.pos:p.pos+4], 16, 32)
		if err != nil {
			return "", false
		}
		p.pos += 4
		return string(rune(n)), true
	default:
		return string(c), true
	}
}

func (p *literalParser) number() (float64, bool) {
	start := p.pos
	for !p.eof() {
		c := p.src[p.pos]
		if (c >= '0' && c <= '9') || c == '.' || c == 'e' || c == 'E' || c == '-' || c == '+' {
			p.pos++
			continue
		}
		break
	}
	f, err := strconv.ParseFloat(p.src[start:p.pos], 64)
	if err != nil {
		return 0, false
	}
	return f, true
}

func (p *literalParser) ident() string {
	start := p.pos
	for !p.eof() {
		r, size := utf8.DecodeRuneInString(p.src[p.pos:])
		if !isIdentPart(r) {
			break
		}
		p.pos += size
	}
	return p.src[start:p.pos]
}

// skipSpace skips whitespace plus line and block comments.
func (p *literalParser) skipSpace() {
	for !p.eof() {
		c := p.src[p.pos]
		switch {
		case c == ' ' || c == '\t' || c == '\n' || c == '\r':
			p.pos++
		case c == '/' && p.peek(1) == '/':
			for !p.eof() && p.src[p.pos] != '\n' {
				p.pos++
			}
		case c == '/' && p.peek(1) == '*':
			end := strings.Index(p.src[p.pos+2:], "*/")
			if end < 0 {
				p.pos = len(p.src)
				return
			}
			p.pos += 2 + end + 2
		default:
			return
		}
	}
}

func (p *literalParser) consume(c byte) bool {
	if !p.eof() && p.src[p.pos] == c {
		p.pos++
		return true
	}
	return false
}

func (p *literalParser) peek(offset int) byte {
	if p.pos+offset < len(p.src) {
		return p.src[p.pos+offset]
	}
	return 0
}

func (p *literalParser) eof() bool { return p.pos >= len(p.src) }

func isIdentStart(r rune) bool {
	return r == '_' || r == '$' || unicode.IsLetter(r)
}

func isIdentPart(r rune) bool {
	return isIdentStart(r) || unicode.IsDigit(r)
}
