package parser

import (
	"errcode/internal/ast"
	"errcode/internal/diag"
	"errcode/internal/token"
)

// parseImportDecl: import-объявления не содержат выражений и хранятся как
// непрозрачный span: import x from "m", import {a as b} from "m",
// import * as ns from "m", import "m" [with {...}].
func (p *Parser) parseImportDecl() (ast.StmtID, bool) {
	importTok := p.advance()
	if !p.skipModuleClause() {
		return ast.NoStmtID, false
	}
	if !p.consumeSemicolon() {
		return ast.NoStmtID, false
	}
	return p.arenas.Stmts.NewImport(p.spanFrom(importTok.Span)), true
}

// skipModuleClause съедает токены до строки-спецификатора модуля на
// верхнем уровне (строки внутри {}: это имена) и необязательные атрибуты.
// Для export {a, b} без from спецификатора нет: останавливаемся на '}'.
func (p *Parser) skipModuleClause() bool {
	depth := 0
	for {
		tok := p.lx.Peek()
		switch {
		case tok.Kind == token.EOF:
			p.err(diag.SynUnexpectedEOF, "unexpected end of file in module declaration")
			return false
		case tok.Kind == token.LBrace:
			depth++
		case tok.Kind == token.RBrace:
			if depth == 0 {
				p.err(diag.SynUnexpectedToken, "unexpected '}' in module declaration")
				return false
			}
			depth--
			p.advance()
			if depth == 0 && !p.atWord("from") {
				// export { a, b }; без from
				return true
			}
			continue
		case tok.Kind == token.StringLit && depth == 0:
			p.advance()
			p.skipImportAttributes()
			return true
		case tok.Kind == token.Semicolon && depth == 0:
			p.err(diag.SynUnexpectedToken, "expected module specifier")
			return false
		}
		p.advance()
	}
}

// skipImportAttributes: with { type: "json" } или устаревший assert { ... }.
func (p *Parser) skipImportAttributes() {
	tok := p.lx.Peek()
	if tok.NewlineBefore() || !(tok.Kind == token.KwWith || tok.IsContextual("assert")) {
		return
	}
	if p.peek2().Kind != token.LBrace {
		return
	}
	p.advance()
	open := p.advance()
	for !p.at(token.RBrace) && !p.at(token.EOF) {
		p.advance()
	}
	p.expectClose(token.RBrace, open.Span, diag.SynUnclosedBrace, "expected '}' after import attributes")
}

// parseExport: export default ..., export <declaration>,
// export {a as b} [from "m"], export * [as ns] from "m".
func (p *Parser) parseExport() (ast.StmtID, bool) {
	st := p.arenas.Stmts
	exportTok := p.advance()
	tok := p.lx.Peek()

	switch {
	case tok.Kind == token.KwDefault:
		p.advance()
		next := p.lx.Peek()
		isAsyncFn := next.IsContextual("async") && p.peek2().Kind == token.KwFunction && !p.peek2().NewlineBefore()
		if next.Kind == token.KwFunction || next.Kind == token.KwClass || isAsyncFn {
			decl, ok := p.parseStatement()
			if !ok {
				return ast.NoStmtID, false
			}
			return st.NewExport(p.spanFrom(exportTok.Span), decl, ast.NoExprID), true
		}
		restore := p.allowIn()
		value, ok := p.parseAssign()
		restore()
		if !ok {
			return ast.NoStmtID, false
		}
		if !p.consumeSemicolon() {
			return ast.NoStmtID, false
		}
		return st.NewExport(p.spanFrom(exportTok.Span), ast.NoStmtID, value), true

	case tok.Kind == token.LBrace, tok.Kind == token.Star:
		if !p.skipModuleClause() {
			return ast.NoStmtID, false
		}
		if !p.consumeSemicolon() {
			return ast.NoStmtID, false
		}
		return st.NewExport(p.spanFrom(exportTok.Span), ast.NoStmtID, ast.NoExprID), true

	case tok.Kind == token.KwVar, tok.Kind == token.KwLet, tok.Kind == token.KwConst,
		tok.Kind == token.KwFunction, tok.Kind == token.KwClass, tok.IsContextual("async"):
		decl, ok := p.parseStatement()
		if !ok {
			return ast.NoStmtID, false
		}
		return st.NewExport(p.spanFrom(exportTok.Span), decl, ast.NoExprID), true
	}

	p.err(diag.SynUnexpectedToken, "expected declaration, 'default', '{' or '*' after 'export'")
	return ast.NoStmtID, false
}
