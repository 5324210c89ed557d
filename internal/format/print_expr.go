package format

import (
	"fmt"
	"strings"

	"errcode/internal/ast"
)

// printExpr рендерит синтетический узел; обычные узлы печатаются из
// исходника по их span.
func (p *printer) printExpr(id ast.ExprID) error {
	exprs := p.builder.Exprs
	e := exprs.Get(id)
	if e == nil {
		return fmt.Errorf("format: unknown expression %d", id)
	}
	if !e.Synthetic() {
		return p.printRange(e.Span, true)
	}

	switch e.Kind {
	case ast.ExprIdent:
		d, _ := exprs.Ident(id)
		p.writer.WriteString(p.builder.Name(d.Name))

	case ast.ExprLit:
		d, _ := exprs.Literal(id)
		if d.Kind == ast.ExprLitString {
			p.writer.WriteString(QuoteString(p.builder.Name(d.Value)))
		} else {
			p.writer.WriteString(p.builder.Name(d.Value))
		}

	case ast.ExprMember:
		d := *must(exprs.Member(id))
		if err := p.printExpr(d.Object); err != nil {
			return err
		}
		switch {
		case d.Computed:
			p.writer.WriteString(optional(d.Optional, "?.") + "[")
			if err := p.printExpr(d.Property); err != nil {
				return err
			}
			p.writer.WriteString("]")
		case d.Optional:
			p.writer.WriteString("?.")
			if err := p.printExpr(d.Property); err != nil {
				return err
			}
		default:
			p.writer.WriteString(".")
			if err := p.printExpr(d.Property); err != nil {
				return err
			}
		}

	case ast.ExprCall:
		d := *must(exprs.Call(id))
		if err := p.printExpr(d.Callee); err != nil {
			return err
		}
		p.writer.WriteString(optional(d.Optional, "?.") + "(")
		if err := p.printList(d.Args); err != nil {
			return err
		}
		p.writer.WriteString(")")

	case ast.ExprObject:
		d, _ := exprs.Object(id)
		return p.printObject(d.Props)

	default:
		return fmt.Errorf("format: cannot render synthetic %s expression", e.Kind)
	}
	return nil
}

func (p *printer) printList(ids []ast.ExprID) error {
	for i, arg := range ids {
		if i > 0 {
			p.writer.WriteString(", ")
		}
		if err := p.printExpr(arg); err != nil {
			return err
		}
	}
	return nil
}

// printObject: { key: value, ... } в одну строку.
func (p *printer) printObject(props []ast.ObjectProp) error {
	if len(props) == 0 {
		p.writer.WriteString("{}")
		return nil
	}
	p.writer.WriteString("{ ")
	for i, prop := range props {
		if i > 0 {
			p.writer.WriteString(", ")
		}
		if prop.Kind != ast.PropInit {
			return fmt.Errorf("format: cannot render synthetic object property of kind %d", prop.Kind)
		}
		if prop.Computed {
			p.writer.WriteString("[")
		}
		if err := p.printExpr(prop.Key); err != nil {
			return err
		}
		if prop.Computed {
			p.writer.WriteString("]")
		}
		p.writer.WriteString(": ")
		if err := p.printExpr(prop.Value); err != nil {
			return err
		}
	}
	p.writer.WriteString(" }")
	return nil
}

func optional(cond bool, s string) string {
	if cond {
		return s
	}
	return ""
}

// QuoteString renders s as a double-quoted ECMAScript string literal.
func QuoteString(s string) string {
	var sb strings.Builder
	sb.Grow(len(s) + 2)
	sb.WriteByte('"')
	for _, r := range s {
		switch r {
		case '"':
			sb.WriteString(`\"`)
		case '\\':
			sb.WriteString(`\\`)
		case '\n':
			sb.WriteString(`\n`)
		case '\r':
			sb.WriteString(`\r`)
		case '\t':
			sb.WriteString(`\t`)
		case '\u2028', '\u2029':
			fmt.Fprintf(&sb, `\u%04x`, r)
		default:
			if r < 0x20 {
				fmt.Fprintf(&sb, `\u%04x`, r)
				continue
			}
			sb.WriteRune(r)
		}
	}
	sb.WriteByte('"')
	return sb.String()
}

func must[T any](v *T, ok bool) *T {
	if !ok {
		panic("format: payload kind mismatch")
	}
	return v
}
