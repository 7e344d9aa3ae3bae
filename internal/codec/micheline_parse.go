package codec

import (
	"encoding/hex"
	"encoding/json"
	"fmt"
	"math/big"
	"strings"

	"blockwatch.cc/tzgo/micheline"

	"github.com/representatives-dao/repms/internal/domain/models"
)

// ParseMicheline parses Michelson code written in Micheline text notation or
// Micheline JSON. Unknown primitives and syntax errors yield ErrInvalidCode.
func ParseMicheline(src string) (micheline.Prim, error) {
	trimmed := strings.TrimSpace(src)
	if trimmed == "" {
		return micheline.Prim{}, models.NewValidationError(models.CodeInvalidCode, "invalid michelson code: empty input")
	}

	if looksLikeJSON(trimmed) {
		prim, err := parseMichelineJSON(trimmed)
		if err != nil {
			return micheline.Prim{}, invalidCode(err)
		}
		return prim, nil
	}

	p := &michelineParser{lexer: newLexer(trimmed)}
	if err := p.advance(); err != nil {
		return micheline.Prim{}, invalidCode(err)
	}
	prim, err := p.parseApplication()
	if err != nil {
		return micheline.Prim{}, invalidCode(err)
	}
	if p.tok.kind != tokEOF {
		return micheline.Prim{}, invalidCode(fmt.Errorf("unexpected %s at offset %d", p.tok, p.tok.pos))
	}
	return prim, nil
}

func invalidCode(err error) error {
	return models.NewValidationError(models.CodeInvalidCode, "invalid michelson code: %v", err)
}

// looksLikeJSON tells Micheline JSON apart from text notation, where "{}" is an empty sequence
func looksLikeJSON(s string) bool {
	if strings.HasPrefix(s, "[") {
		return true
	}
	if !strings.HasPrefix(s, "{") || !json.Valid([]byte(s)) {
		return false
	}
	for _, key := range []string{`"prim"`, `"int"`, `"string"`, `"bytes"`} {
		if strings.Contains(s, key) {
			return true
		}
	}
	return false
}

type tokenKind int

const (
	tokEOF tokenKind = iota
	tokInt
	tokString
	tokBytes
	tokIdent
	tokAnnot
	tokLBrace
	tokRBrace
	tokLParen
	tokRParen
	tokSemi
)

type token struct {
	kind  tokenKind
	text  string
	value string
	pos   int
}

func (t token) String() string {
	if t.kind == tokEOF {
		return "end of input"
	}
	return fmt.Sprintf("%q", t.text)
}

type lexer struct {
	src string
	pos int
}

func newLexer(src string) *lexer {
	return &lexer{src: src}
}

func (l *lexer) next() (token, error) {
	l.skipSpaceAndComments()
	if l.pos >= len(l.src) {
		return token{kind: tokEOF, pos: l.pos}, nil
	}

	start := l.pos
	c := l.src[l.pos]
	switch {
	case c == '{':
		l.pos++
		return token{kind: tokLBrace, text: "{", pos: start}, nil
	case c == '}':
		l.pos++
		return token{kind: tokRBrace, text: "}", pos: start}, nil
	case c == '(':
		l.pos++
		return token{kind: tokLParen, text: "(", pos: start}, nil
	case c == ')':
		l.pos++
		return token{kind: tokRParen, text: ")", pos: start}, nil
	case c == ';':
		l.pos++
		return token{kind: tokSemi, text: ";", pos: start}, nil
	case c == '"':
		return l.lexString()
	case c == '0' && l.pos+1 < len(l.src) && l.src[l.pos+1] == 'x':
		l.pos += 2
		for l.pos < len(l.src) && isHexDigit(l.src[l.pos]) {
			l.pos++
		}
		text := l.src[start:l.pos]
		if (len(text)-2)%2 != 0 {
			return token{}, fmt.Errorf("odd length bytes literal %s at offset %d", text, start)
		}
		return token{kind: tokBytes, text: text, value: text[2:], pos: start}, nil
	case c == '-' || isDigit(c):
		l.pos++
		for l.pos < len(l.src) && isDigit(l.src[l.pos]) {
			l.pos++
		}
		text := l.src[start:l.pos]
		if text == "-" {
			return token{}, fmt.Errorf("invalid number at offset %d", start)
		}
		return token{kind: tokInt, text: text, value: text, pos: start}, nil
	case c == '@' || c == ':' || c == '%':
		l.pos++
		for l.pos < len(l.src) && isAnnotChar(l.src[l.pos]) {
			l.pos++
		}
		text := l.src[start:l.pos]
		return token{kind: tokAnnot, text: text, value: text, pos: start}, nil
	case isIdentStart(c):
		for l.pos < len(l.src) && isIdentChar(l.src[l.pos]) {
			l.pos++
		}
		text := l.src[start:l.pos]
		return token{kind: tokIdent, text: text, value: text, pos: start}, nil
	}
	return token{}, fmt.Errorf("unexpected character %q at offset %d", c, start)
}

func (l *lexer) lexString() (token, error) {
	start := l.pos
	l.pos++
	var b strings.Builder
	for l.pos < len(l.src) {
		c := l.src[l.pos]
		switch c {
		case '"':
			l.pos++
			return token{kind: tokString, text: l.src[start:l.pos], value: b.String(), pos: start}, nil
		case '\\':
			if l.pos+1 >= len(l.src) {
				return token{}, fmt.Errorf("unterminated string at offset %d", start)
			}
			switch esc := l.src[l.pos+1]; esc {
			case 'n':
				b.WriteByte('\n')
			case 't':
				b.WriteByte('\t')
			case 'r':
				b.WriteByte('\r')
			case '"', '\\':
				b.WriteByte(esc)
			default:
				return token{}, fmt.Errorf("invalid escape \\%c at offset %d", esc, l.pos)
			}
			l.pos += 2
		case '\n':
			return token{}, fmt.Errorf("newline in string at offset %d", l.pos)
		default:
			b.WriteByte(c)
			l.pos++
		}
	}
	return token{}, fmt.Errorf("unterminated string at offset %d", start)
}

func (l *lexer) skipSpaceAndComments() {
	for l.pos < len(l.src) {
		c := l.src[l.pos]
		switch {
		case c == ' ' || c == '\t' || c == '\n' || c == '\r':
			l.pos++
		case c == '#':
			for l.pos < len(l.src) && l.src[l.pos] != '\n' {
				l.pos++
			}
		case c == '/' && l.pos+1 < len(l.src) && l.src[l.pos+1] == '*':
			end := strings.Index(l.src[l.pos+2:], "*/")
			if end < 0 {
				l.pos = len(l.src)
				return
			}
			l.pos += end + 4
		default:
			return
		}
	}
}

func isDigit(c byte) bool      { return c >= '0' && c <= '9' }
func isHexDigit(c byte) bool   { return isDigit(c) || (c >= 'a' && c <= 'f') || (c >= 'A' && c <= 'F') }
func isIdentStart(c byte) bool { return (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z') || c == '_' }
func isIdentChar(c byte) bool  { return isIdentStart(c) || isDigit(c) }
func isAnnotChar(c byte) bool  { return isIdentChar(c) || c == '.' || c == '%' || c == '@' }

type michelineParser struct {
	lexer *lexer
	tok   token
}

func (p *michelineParser) advance() error {
	tok, err := p.lexer.next()
	if err != nil {
		return err
	}
	p.tok = tok
	return nil
}

// parseApplication parses a primitive with its annotations and arguments, or a single atom.
func (p *michelineParser) parseApplication() (micheline.Prim, error) {
	if p.tok.kind != tokIdent {
		return p.parseAtom()
	}

	name := p.tok
	if err := p.advance(); err != nil {
		return micheline.Prim{}, err
	}

	var annots []string
	for p.tok.kind == tokAnnot {
		annots = append(annots, p.tok.value)
		if err := p.advance(); err != nil {
			return micheline.Prim{}, err
		}
	}

	var args []micheline.Prim
	for p.startsAtom() {
		arg, err := p.parseAtom()
		if err != nil {
			return micheline.Prim{}, err
		}
		args = append(args, arg)
	}
	return newApplication(name, annots, args)
}

func (p *michelineParser) startsAtom() bool {
	switch p.tok.kind {
	case tokInt, tokString, tokBytes, tokIdent, tokLBrace, tokLParen:
		return true
	}
	return false
}

func (p *michelineParser) parseAtom() (micheline.Prim, error) {
	tok := p.tok
	switch tok.kind {
	case tokInt:
		n, ok := new(big.Int).SetString(tok.value, 10)
		if !ok {
			return micheline.Prim{}, fmt.Errorf("invalid number %s", tok.text)
		}
		return micheline.Prim{Type: micheline.PrimInt, Int: n}, p.advance()
	case tokString:
		return micheline.Prim{Type: micheline.PrimString, String: tok.value}, p.advance()
	case tokBytes:
		b, err := hex.DecodeString(tok.value)
		if err != nil {
			return micheline.Prim{}, fmt.Errorf("invalid bytes %s", tok.text)
		}
		return micheline.Prim{Type: micheline.PrimBytes, Bytes: b}, p.advance()
	case tokIdent:
		if err := p.advance(); err != nil {
			return micheline.Prim{}, err
		}
		return newApplication(tok, nil, nil)
	case tokLBrace:
		return p.parseSequence()
	case tokLParen:
		if err := p.advance(); err != nil {
			return micheline.Prim{}, err
		}
		prim, err := p.parseApplication()
		if err != nil {
			return micheline.Prim{}, err
		}
		if p.tok.kind != tokRParen {
			return micheline.Prim{}, fmt.Errorf("expected \")\" but found %s at offset %d", p.tok, p.tok.pos)
		}
		return prim, p.advance()
	}
	return micheline.Prim{}, fmt.Errorf("unexpected %s at offset %d", tok, tok.pos)
}

func (p *michelineParser) parseSequence() (micheline.Prim, error) {
	if err := p.advance(); err != nil {
		return micheline.Prim{}, err
	}

	args := []micheline.Prim{}
	for p.tok.kind != tokRBrace {
		if p.tok.kind == tokEOF {
			return micheline.Prim{}, fmt.Errorf("unterminated sequence")
		}
		elem, err := p.parseApplication()
		if err != nil {
			return micheline.Prim{}, err
		}
		args = append(args, elem)

		switch p.tok.kind {
		case tokSemi:
			if err := p.advance(); err != nil {
				return micheline.Prim{}, err
			}
		case tokRBrace:
		default:
			return micheline.Prim{}, fmt.Errorf("expected \";\" or \"}\" but found %s at offset %d", p.tok, p.tok.pos)
		}
	}
	return micheline.Prim{Type: micheline.PrimSequence, Args: args}, p.advance()
}

func newApplication(name token, annots []string, args []micheline.Prim) (micheline.Prim, error) {
	op, err := micheline.ParseOpCode(name.value)
	if err != nil {
		return micheline.Prim{}, fmt.Errorf("unknown primitive %s at offset %d", name.text, name.pos)
	}
	return newPrim(op, annots, args...), nil
}

// newPrim picks the primitive encoding from its argument count and annotations
func newPrim(op micheline.OpCode, annots []string, args ...micheline.Prim) micheline.Prim {
	prim := micheline.Prim{OpCode: op, Anno: annots}
	if len(args) > 0 {
		prim.Args = args
	}
	hasAnno := len(annots) > 0
	switch len(args) {
	case 0:
		prim.Type = micheline.PrimNullary
		if hasAnno {
			prim.Type = micheline.PrimNullaryAnno
		}
	case 1:
		prim.Type = micheline.PrimUnary
		if hasAnno {
			prim.Type = micheline.PrimUnaryAnno
		}
	case 2:
		prim.Type = micheline.PrimBinary
		if hasAnno {
			prim.Type = micheline.PrimBinaryAnno
		}
	default:
		prim.Type = micheline.PrimVariadicAnno
	}
	return prim
}
