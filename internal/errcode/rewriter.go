package errcode

import (
	"strconv"

	"errcode/internal/ast"
	"errcode/internal/source"
	"errcode/internal/trace"
)

// CodeProperty is the property the code is attached under.
const CodeProperty = "__NEXT_ERROR_CODE"

// errorConstructor is the only callee the pass matches.
const errorConstructor = "Error"

type RewriteOptions struct {
	// Tracer receives a ScopeNode point event per rewritten site.
	Tracer trace.Tracer
	// ParentSpan is the trace span of the unit, 0 if none.
	ParentSpan uint64
}

// Site is one rewritten error construction.
type Site struct {
	Span source.Span
	Issue
}

type Stats struct {
	Sites []Site
	// Skipped counts constructions already wrapped by an earlier run.
	Skipped int
}

// Rewriter walks one file and rewrites every new Error(msg, ...) in place.
type Rewriter struct {
	b    *ast.Builder
	gen  *Generator
	opts RewriteOptions
}

func NewRewriter(b *ast.Builder, gen *Generator, opts RewriteOptions) *Rewriter {
	if opts.Tracer == nil {
		opts.Tracer = trace.Nop
	}
	return &Rewriter{b: b, gen: gen, opts: opts}
}

// RewriteFile rewrites the file post-order. The first error aborts the walk
// and is returned with the stats gathered so far; the tree is then only
// partially rewritten and must not be printed.
func (r *Rewriter) RewriteFile(fid ast.FileID) (Stats, error) {
	var stats Stats
	wrapped := r.collectWrapped(fid)
	err := ast.WalkFile(r.b, fid, func(id ast.ExprID) error {
		if !IsErrorConstruction(r.b, id) {
			return nil
		}
		template := r.message(id)
		if _, ok := wrapped[id]; ok {
			// уже переписан прошлым запуском: номер вхождения всё равно занят
			r.gen.skip(template)
			stats.Skipped++
			return nil
		}
		span := r.b.Exprs.Get(id).Span
		is, err := r.gen.Issue(template)
		if err != nil {
			return err
		}
		Wrap(r.b, id, is.Code)
		stats.Sites = append(stats.Sites, Site{Span: span, Issue: is})
		r.traceSite(span, is)
		return nil
	})
	return stats, err
}

// message stringifies the first argument; a spread argument is looked through.
func (r *Rewriter) message(id ast.ExprID) string {
	ex := r.b.Exprs
	n, _ := ex.New(id)
	arg := n.Args[0]
	if sp, ok := ex.Spread(arg); ok {
		arg = sp.Value
	}
	return Stringify(ex, r.b.Strings, arg)
}

// collectWrapped находит new Error(...), уже обёрнутые в
// Object.assign(..., { __NEXT_ERROR_CODE: ... }).
func (r *Rewriter) collectWrapped(fid ast.FileID) map[ast.ExprID]struct{} {
	wrapped := make(map[ast.ExprID]struct{})
	_ = ast.WalkFile(r.b, fid, func(id ast.ExprID) error {
		if inner, ok := WrappedConstruction(r.b, id); ok {
			wrapped[inner] = struct{}{}
		}
		return nil
	})
	return wrapped
}

func (r *Rewriter) traceSite(span source.Span, is Issue) {
	t := r.opts.Tracer
	if !t.Enabled() {
		return
	}
	trace.Point(t, trace.ScopeNode, "rewrite", r.opts.ParentSpan, map[string]string{
		"code":    is.Code,
		"message": is.Record.ErrorMessage,
		"count":   strconv.Itoa(is.Record.OccurrenceCount),
		"offset":  strconv.FormatUint(uint64(span.Start), 10),
	})
}

// IsErrorConstruction reports whether id is new Error(arg, ...) with the
// bare identifier Error as callee and at least one argument.
func IsErrorConstruction(b *ast.Builder, id ast.ExprID) bool {
	n, ok := b.Exprs.New(id)
	if !ok || len(n.Args) == 0 {
		return false
	}
	callee, ok := b.Exprs.Ident(n.Callee)
	return ok && b.Name(callee.Name) == errorConstructor
}

// WrappedConstruction reports whether id is
// Object.assign(new Error(...), { __NEXT_ERROR_CODE: ... }) and returns the
// inner construction.
func WrappedConstruction(b *ast.Builder, id ast.ExprID) (ast.ExprID, bool) {
	ex := b.Exprs
	call, ok := ex.Call(id)
	if !ok || call.Optional || len(call.Args) != 2 {
		return ast.NoExprID, false
	}
	m, ok := ex.Member(call.Callee)
	if !ok || m.Computed || m.Optional || !isIdent(b, m.Object, "Object") || !isIdent(b, m.Property, "assign") {
		return ast.NoExprID, false
	}
	if !IsErrorConstruction(b, call.Args[0]) {
		return ast.NoExprID, false
	}
	obj, ok := ex.Object(call.Args[1])
	if !ok {
		return ast.NoExprID, false
	}
	for _, p := range obj.Props {
		if p.Kind == ast.PropInit && !p.Computed && isIdent(b, p.Key, CodeProperty) {
			return call.Args[0], true
		}
	}
	return ast.NoExprID, false
}

func isIdent(b *ast.Builder, id ast.ExprID, name string) bool {
	d, ok := b.Exprs.Ident(id)
	return ok && b.Name(d.Name) == name
}

// Wrap replaces id in place with Object.assign(<id>, { __NEXT_ERROR_CODE: code }).
// The original node moves to a fresh slot, which is returned; parents keep
// pointing at id and so see the wrapper. Every new node is synthetic; the
// wrapper keeps the span of the original.
func Wrap(b *ast.Builder, id ast.ExprID, code string) ast.ExprID {
	ex := b.Exprs
	strs := b.Strings
	span := ex.Get(id).Span
	orig := ex.Move(id)

	var none source.Span
	object := ex.NewIdent(none, strs.Intern("Object"))
	assign := ex.NewIdent(none, strs.Intern("assign"))
	callee := ex.NewMember(none, object, assign, false, false)
	key := ex.NewIdent(none, strs.Intern(CodeProperty))
	value := ex.NewLiteral(none, ast.ExprLitString, strs.Intern(code))
	meta := ex.NewObject(none, []ast.ObjectProp{{Kind: ast.PropInit, Key: key, Value: value}})
	call := ex.NewCall(span, callee, []ast.ExprID{orig, meta}, false)

	ex.Set(id, *ex.Get(call))
	for _, s := range []ast.ExprID{object, assign, callee, key, value, meta, id} {
		ex.MarkSynthetic(s)
	}
	return orig
}
