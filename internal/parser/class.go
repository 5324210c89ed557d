package parser

import (
	"errcode/internal/ast"
	"errcode/internal/diag"
	"errcode/internal/token"
)

// parseClass: class [Name] [extends Expr] { members }; используется и для
// объявлений, и для выражений.
func (p *Parser) parseClass() (ast.ExprID, bool) {
	classTok := p.advance()
	data := ast.ExprClassData{Name: ast.NoExprID, Super: ast.NoExprID}

	if tok := p.lx.Peek(); tok.Kind == token.Ident || tok.Kind == token.KwYield || tok.Kind == token.KwAwait || tok.Kind == token.KwLet {
		p.advance()
		data.Name = p.arenas.Exprs.NewIdent(tok.Span, p.intern(tok))
	}
	if p.at(token.KwExtends) {
		p.advance()
		super, ok := p.parseLeftHandSide()
		if !ok {
			return ast.NoExprID, false
		}
		data.Super = super
	}

	open, ok := p.expect(token.LBrace, diag.SynUnexpectedToken, "expected '{' to start class body")
	if !ok {
		return ast.NoExprID, false
	}
	restore := p.allowIn()
	defer restore()
	for !p.at(token.RBrace) && !p.at(token.EOF) {
		if p.at(token.Semicolon) {
			p.advance()
			continue
		}
		m, ok := p.parseClassMember()
		if !ok {
			return ast.NoExprID, false
		}
		data.Members = append(data.Members, m)
	}
	if !p.expectClose(token.RBrace, open.Span, diag.SynUnclosedBrace, "expected '}' after class body") {
		return ast.NoExprID, false
	}
	return p.arenas.Exprs.NewClass(p.spanFrom(classTok.Span), data), true
}

func (p *Parser) parseClassMember() (ast.ClassMember, bool) {
	first := p.lx.Peek()
	m := ast.ClassMember{Span: first.Span, Key: ast.NoExprID, Value: ast.NoExprID, Body: ast.NoStmtID}

	if first.IsContextual("static") {
		next := p.peek2()
		switch {
		case next.Kind == token.LBrace:
			p.advance()
			body, ok := p.parseBlock()
			if !ok {
				return m, false
			}
			m.Kind, m.Static, m.Body = ast.ClassStaticBlock, true, body
			m.Span = p.spanFrom(first.Span)
			return m, true
		case p.modifierApplies():
			p.advance()
			m.Static = true
		}
	}

	m.Kind = ast.ClassField
	async, generator := false, false
	tok := p.lx.Peek()
	switch {
	case (tok.IsContextual("get") || tok.IsContextual("set")) && p.modifierApplies():
		p.advance()
		m.Kind = ast.ClassGetter
		if tok.Text == "set" {
			m.Kind = ast.ClassSetter
		}
	case tok.IsContextual("async") && p.modifierApplies() && !p.peek2().NewlineBefore():
		p.advance()
		m.Kind, async = ast.ClassMethod, true
	}
	if p.at(token.Star) {
		p.advance()
		m.Kind, generator = ast.ClassMethod, true
	}

	key, computed, ok := p.parsePropertyKey(true)
	if !ok {
		return m, false
	}
	m.Key, m.Computed = key, computed

	if m.Kind == ast.ClassField && p.at(token.LParen) {
		m.Kind = ast.ClassMethod
	}
	if m.Kind != ast.ClassField {
		fn, ok := p.parseMethod(async, generator)
		if !ok {
			return m, false
		}
		m.Value = fn
		m.Span = p.spanFrom(first.Span)
		return m, true
	}

	if p.at(token.Assign) {
		p.advance()
		init, ok := p.parseAssign()
		if !ok {
			return m, false
		}
		m.Value = init
	}
	m.Span = p.spanFrom(first.Span)
	if next := p.lx.Peek(); next.Kind != token.Semicolon && next.Kind != token.RBrace && !next.NewlineBefore() {
		p.err(diag.SynBadClassMember, "expected ';' after class field")
		return m, false
	}
	if p.at(token.Semicolon) {
		p.advance()
	}
	return m, true
}
