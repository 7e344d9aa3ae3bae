package codec

import (
	"encoding/hex"
	"strings"

	"blockwatch.cc/tzgo/micheline"
	"blockwatch.cc/tzgo/tezos"
)

// EmitOptions controls Micheline text rendering
type EmitOptions struct {
	// Indent switches to multi-line output when set
	Indent string
	// ShowAddresses renders 22 byte address literals as quoted address strings
	ShowAddresses bool
}

// DisplayOptions is the layout used to show lambda code to users
var DisplayOptions = EmitOptions{Indent: "    ", ShowAddresses: true}

// EmitMicheline renders a Micheline node in text notation
func EmitMicheline(p micheline.Prim, opts EmitOptions) string {
	e := &emitter{opts: opts}
	if opts.Indent == "" {
		e.inline(&e.buf, p, false)
	} else {
		e.block(p, 0, false)
	}
	return e.buf.String()
}

type emitter struct {
	opts EmitOptions
	buf  strings.Builder
}

func (e *emitter) inline(b *strings.Builder, p micheline.Prim, nested bool) {
	switch p.Type {
	case micheline.PrimInt:
		if p.Int == nil {
			b.WriteString("0")
			return
		}
		b.WriteString(p.Int.String())
	case micheline.PrimString:
		b.WriteString(quoteMicheline(p.String))
	case micheline.PrimBytes:
		b.WriteString(e.bytes(p.Bytes))
	case micheline.PrimSequence:
		if len(p.Args) == 0 {
			b.WriteString("{}")
			return
		}
		b.WriteString("{ ")
		for i, arg := range p.Args {
			if i > 0 {
				b.WriteString(" ; ")
			}
			e.inline(b, arg, false)
		}
		b.WriteString(" }")
	default:
		wrap := nested && (len(p.Args) > 0 || len(p.Anno) > 0)
		if wrap {
			b.WriteString("(")
		}
		b.WriteString(p.OpCode.String())
		for _, anno := range p.Anno {
			b.WriteString(" ")
			b.WriteString(anno)
		}
		for _, arg := range p.Args {
			b.WriteString(" ")
			e.inline(b, arg, true)
		}
		if wrap {
			b.WriteString(")")
		}
	}
}

// block writes p starting at the current position; depth is used for continuation lines
func (e *emitter) block(p micheline.Prim, depth int, nested bool) {
	if !containsSequence(p) {
		e.inline(&e.buf, p, nested)
		return
	}

	if p.Type == micheline.PrimSequence {
		e.buf.WriteString("{")
		for i, arg := range p.Args {
			if i > 0 {
				e.buf.WriteString(" ;")
			}
			e.newline(depth + 1)
			e.block(arg, depth+1, false)
		}
		e.newline(depth)
		e.buf.WriteString("}")
		return
	}

	wrap := nested && (len(p.Args) > 0 || len(p.Anno) > 0)
	if wrap {
		e.buf.WriteString("(")
	}
	e.buf.WriteString(p.OpCode.String())
	for _, anno := range p.Anno {
		e.buf.WriteString(" ")
		e.buf.WriteString(anno)
	}
	for _, arg := range p.Args {
		if arg.Type == micheline.PrimSequence {
			e.newline(depth + 1)
			e.block(arg, depth+1, true)
			continue
		}
		e.buf.WriteString(" ")
		e.block(arg, depth+1, true)
	}
	if wrap {
		e.buf.WriteString(")")
	}
}

func (e *emitter) newline(depth int) {
	e.buf.WriteString("\n")
	e.buf.WriteString(strings.Repeat(e.opts.Indent, depth))
}

func (e *emitter) bytes(b []byte) string {
	if e.opts.ShowAddresses {
		if addr, ok := addressFromBytes(b); ok {
			return quoteMicheline(addr)
		}
	}
	return "0x" + hex.EncodeToString(b)
}

// addressFromBytes decodes the 22 byte binary form of an address. The first
// byte is the address tag, so only values 0 to 3 are tried.
func addressFromBytes(b []byte) (string, bool) {
	if len(b) != 22 || b[0] > 3 {
		return "", false
	}
	var addr tezos.Address
	if err := addr.UnmarshalBinary(b); err != nil || !addr.IsValid() {
		return "", false
	}
	return addr.String(), true
}

func containsSequence(p micheline.Prim) bool {
	if p.Type == micheline.PrimSequence && len(p.Args) > 0 {
		return true
	}
	for _, arg := range p.Args {
		if containsSequence(arg) {
			return true
		}
	}
	return false
}

func quoteMicheline(s string) string {
	var b strings.Builder
	b.WriteByte('"')
	for i := 0; i < len(s); i++ {
		switch c := s[i]; c {
		case '"':
			b.WriteString(`\"`)
		case '\\':
			b.WriteString(`\\`)
		case '\n':
			b.WriteString(`\n`)
		case '\r':
			b.WriteString(`\r`)
		case '\t':
			b.WriteString(`\t`)
		default:
			b.WriteByte(c)
		}
	}
	b.WriteByte('"')
	return b.String()
}
