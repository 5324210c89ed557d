package errcode

import (
	"strings"

	"errcode/internal/ast"
	"errcode/internal/source"
)

// Placeholder stands for any sub-expression whose value is not known
// statically.
const Placeholder = "%s"

// Stringify renders an error message argument as a template: string
// literals give their value, untagged templates their raw chunks with
// every substitution stringified recursively, binary expressions the
// concatenation of both sides (whatever the operator), and everything
// else Placeholder. Stringify never fails.
func Stringify(exprs *ast.Exprs, strs *source.Interner, id ast.ExprID) string {
	var sb strings.Builder
	stringifyTo(&sb, exprs, strs, id)
	return sb.String()
}

func stringifyTo(sb *strings.Builder, exprs *ast.Exprs, strs *source.Interner, id ast.ExprID) {
	e := exprs.Get(id)
	if e == nil {
		sb.WriteString(Placeholder)
		return
	}
	switch e.Kind {
	case ast.ExprLit:
		lit, _ := exprs.Literal(id)
		if lit.Kind != ast.ExprLitString {
			break
		}
		s, _ := strs.Lookup(lit.Value)
		sb.WriteString(s)
		return

	case ast.ExprTemplate:
		tpl := *must(exprs.Template(id))
		if tpl.Tag.IsValid() {
			break
		}
		for i, q := range tpl.Quasis {
			raw, _ := strs.Lookup(q.Raw)
			sb.WriteString(raw)
			if i < len(tpl.Exprs) {
				stringifyTo(sb, exprs, strs, tpl.Exprs[i])
			}
		}
		return

	case ast.ExprBinary:
		bin := *must(exprs.Binary(id))
		stringifyTo(sb, exprs, strs, bin.Left)
		stringifyTo(sb, exprs, strs, bin.Right)
		return
	}
	sb.WriteString(Placeholder)
}

func must[T any](v *T, ok bool) *T {
	if !ok {
		panic("errcode: payload kind mismatch")
	}
	return v
}
