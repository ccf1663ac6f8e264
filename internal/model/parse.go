package model

import (
	"fmt"
	"strconv"
	"strings"
)

// splitStatements breaks STEP source into ';'-terminated statements, keeping
// quoted strings intact. Comments (/* ... */) are stripped.
func splitStatements(src string) []string {
	var (
		out      []string
		buf      strings.Builder
		inStr    bool
		inComm   bool
		prevRune rune
	)
	runes := []rune(src)
	for i := 0; i < len(runes); i++ {
		c := runes[i]
		if inComm {
			if prevRune == '*' && c == '/' {
				inComm = false
			}
			prevRune = c
			continue
		}
		if !inStr && c == '/' && i+1 < len(runes) && runes[i+1] == '*' {
			inComm = true
			prevRune = 0
			i++
			continue
		}
		if c == '\'' {
			inStr = !inStr
		}
		if c == ';' && !inStr {
			out = append(out, buf.String())
			buf.Reset()
			continue
		}
		buf.WriteRune(c)
		prevRune = c
	}
	if s := strings.TrimSpace(buf.String()); s != "" {
		out = append(out, s)
	}
	return out
}

func firstQuoted(s string) string {
	start := strings.IndexByte(s, '\'')
	if start < 0 {
		return ""
	}
	end := strings.IndexByte(s[start+1:], '\'')
	if end < 0 {
		return ""
	}
	return s[start+1 : start+1+end]
}

// parseInstance parses "#12=IFCDOOR('guid',$,'Name',...)".
func parseInstance(stmt string) (*Entity, error) {
	eq := strings.IndexByte(stmt, '=')
	if eq < 0 {
		return nil, fmt.Errorf("malformed instance %q", truncate(stmt))
	}
	idPart := strings.TrimSpace(stmt[:eq])
	id, err := strconv.ParseInt(strings.TrimPrefix(idPart, "#"), 10, 64)
	if err != nil {
		return nil, fmt.Errorf("malformed instance id %q", idPart)
	}

	rest := strings.TrimSpace(stmt[eq+1:])
	open := strings.IndexByte(rest, '(')
	if open < 0 || !strings.HasSuffix(rest, ")") {
		return nil, fmt.Errorf("malformed instance #%d", id)
	}
	typeName := strings.ToUpper(strings.TrimSpace(rest[:open]))
	if typeName == "" {
		return nil, fmt.Errorf("instance #%d has no type name", id)
	}

	p := &paramParser{src: rest[open+1 : len(rest)-1]}
	args, err := p.parseArgs()
	if err != nil {
		return nil, fmt.Errorf("instance #%d: %w", id, err)
	}
	return &Entity{ID: id, Type: typeName, Args: args}, nil
}

type paramParser struct {
	src string
	pos int
}

func (p *paramParser) parseArgs() ([]any, error) {
	var args []any
	p.skipSpace()
	if p.pos >= len(p.src) {
		return args, nil
	}
	for {
		v, err := p.parseValue()
		if err != nil {
			return nil, err
		}
		args = append(args, v)
		p.skipSpace()
		if p.pos >= len(p.src) {
			return args, nil
		}
		if p.src[p.pos] != ',' {
			return nil, fmt.Errorf("unexpected %q at offset %d", p.src[p.pos], p.pos)
		}
		p.pos++
	}
}

func (p *paramParser) parseValue() (any, error) {
	p.skipSpace()
	if p.pos >= len(p.src) {
		return nil, fmt.Errorf("unexpected end of parameter list")
	}
	switch c := p.src[p.pos]; {
	case c == '$' || c == '*':
		p.pos++
		return nil, nil
	case c == '\'':
		return p.parseString()
	case c == '#':
		p.pos++
		start := p.pos
		for p.pos < len(p.src) && isDigit(p.src[p.pos]) {
			p.pos++
		}
		id, err := strconv.ParseInt(p.src[start:p.pos], 10, 64)
		if err != nil {
			return nil, fmt.Errorf("bad reference at offset %d", start)
		}
		return Ref(id), nil
	case c == '.':
		p.pos++
		start := p.pos
		for p.pos < len(p.src) && p.src[p.pos] != '.' {
			p.pos++
		}
		if p.pos >= len(p.src) {
			return nil, fmt.Errorf("unterminated enumeration at offset %d", start)
		}
		val := Enum(p.src[start:p.pos])
		p.pos++
		return val, nil
	case c == '(':
		p.pos++
		var list []any
		p.skipSpace()
		if p.pos < len(p.src) && p.src[p.pos] == ')' {
			p.pos++
			return list, nil
		}
		for {
			v, err := p.parseValue()
			if err != nil {
				return nil, err
			}
			list = append(list, v)
			p.skipSpace()
			if p.pos >= len(p.src) {
				return nil, fmt.Errorf("unterminated aggregate")
			}
			switch p.src[p.pos] {
			case ',':
				p.pos++
			case ')':
				p.pos++
				return list, nil
			default:
				return nil, fmt.Errorf("unexpected %q in aggregate at offset %d", p.src[p.pos], p.pos)
			}
		}
	case isDigit(c) || c == '-' || c == '+':
		start := p.pos
		p.pos++
		for p.pos < len(p.src) && isNumberByte(p.src[p.pos]) {
			p.pos++
		}
		f, err := strconv.ParseFloat(p.src[start:p.pos], 64)
		if err != nil {
			return nil, fmt.Errorf("bad number %q at offset %d", p.src[start:p.pos], start)
		}
		return f, nil
	case isAlpha(c):
		// Typed simple value, e.g. IFCLABEL('F60').
		start := p.pos
		for p.pos < len(p.src) && (isAlpha(p.src[p.pos]) || isDigit(p.src[p.pos]) || p.src[p.pos] == '_') {
			p.pos++
		}
		name := strings.ToUpper(p.src[start:p.pos])
		p.skipSpace()
		if p.pos >= len(p.src) || p.src[p.pos] != '(' {
			return nil, fmt.Errorf("expected '(' after %s at offset %d", name, p.pos)
		}
		p.pos++
		inner, err := p.parseValue()
		if err != nil {
			return nil, err
		}
		p.skipSpace()
		if p.pos >= len(p.src) || p.src[p.pos] != ')' {
			return nil, fmt.Errorf("unterminated typed value %s", name)
		}
		p.pos++
		return Typed{Type: name, Value: inner}, nil
	default:
		return nil, fmt.Errorf("unexpected %q at offset %d", c, p.pos)
	}
}

func (p *paramParser) parseString() (string, error) {
	p.pos++ // opening quote
	var b strings.Builder
	for p.pos < len(p.src) {
		c := p.src[p.pos]
		if c == '\'' {
			// '' is an escaped quote inside a string literal.
			if p.pos+1 < len(p.src) && p.src[p.pos+1] == '\'' {
				b.WriteByte('\'')
				p.pos += 2
				continue
			}
			p.pos++
			return b.String(), nil
		}
		b.WriteByte(c)
		p.pos++
	}
	return "", fmt.Errorf("unterminated string literal")
}

func (p *paramParser) skipSpace() {
	for p.pos < len(p.src) {
		switch p.src[p.pos] {
		case ' ', '\t', '\r', '\n':
			p.pos++
		default:
			return
		}
	}
}

func isDigit(c byte) bool { return c >= '0' && c <= '9' }
func isAlpha(c byte) bool { return (c >= 'A' && c <= 'Z') || (c >= 'a' && c <= 'z') }
func isNumberByte(c byte) bool {
	return isDigit(c) || c == '.' || c == 'e' || c == 'E' || c == '-' || c == '+'
}

func truncate(s string) string {
	if len(s) > 60 {
		return s[:60] + "..."
	}
	return s
}
