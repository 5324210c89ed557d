package parser

import (
	"errcode/internal/ast"
	"errcode/internal/diag"
	"errcode/internal/source"
	"errcode/internal/token"
)

// parseFunctionExpr: function [*] [name] (params) { body }; текущий токен
// 'function', start указывает на 'async' или на 'function'.
func (p *Parser) parseFunctionExpr(start source.Span, async bool) (ast.ExprID, bool) {
	p.advance() // 'function'
	data := ast.ExprFunctionData{
		Name:     ast.NoExprID,
		Body:     ast.NoStmtID,
		ExprBody: ast.NoExprID,
		Async:    async,
	}
	if p.at(token.Star) {
		p.advance()
		data.Generator = true
	}
	if tok := p.lx.Peek(); tok.Kind != token.LParen && tok.IsWord() {
		p.advance()
		data.Name = p.arenas.Exprs.NewIdent(tok.Span, p.intern(tok))
	}
	if !p.at(token.LParen) {
		p.err(diag.SynUnexpectedToken, "expected '(' after function name")
		return ast.NoExprID, false
	}
	params, ok := p.parseParams()
	if !ok {
		return ast.NoExprID, false
	}
	data.Params = params
	body, ok := p.parseFunctionBody()
	if !ok {
		return ast.NoExprID, false
	}
	data.Body = body
	return p.arenas.Exprs.NewFunction(p.spanFrom(start), data), true
}

// parseMethod: (params) { body } у методов объектов и классов.
func (p *Parser) parseMethod(async, generator bool) (ast.ExprID, bool) {
	start := p.lx.Peek().Span
	if !p.at(token.LParen) {
		p.err(diag.SynUnexpectedToken, "expected '(' for method parameters")
		return ast.NoExprID, false
	}
	params, ok := p.parseParams()
	if !ok {
		return ast.NoExprID, false
	}
	body, ok := p.parseFunctionBody()
	if !ok {
		return ast.NoExprID, false
	}
	return p.arenas.Exprs.NewFunction(p.spanFrom(start), ast.ExprFunctionData{
		Name:      ast.NoExprID,
		Params:    params,
		Body:      body,
		ExprBody:  ast.NoExprID,
		Async:     async,
		Generator: generator,
	}), true
}

// parseParams: список параметров. Параметры разбираются как выражения
// (идентификатор, паттерн, a = default, ...rest).
func (p *Parser) parseParams() ([]ast.ExprID, bool) {
	open := p.advance() // '('
	restore := p.allowIn()
	defer restore()

	var params []ast.ExprID
	for !p.at(token.RParen) && !p.at(token.EOF) {
		param, ok := p.parseElement()
		if !ok {
			return nil, false
		}
		params = append(params, param)
		if !p.at(token.Comma) {
			break
		}
		p.advance()
	}
	if !p.expectClose(token.RParen, open.Span, diag.SynUnclosedParen, "expected ')' after parameters") {
		return nil, false
	}
	return params, true
}

func (p *Parser) parseFunctionBody() (ast.StmtID, bool) {
	if !p.at(token.LBrace) {
		p.err(diag.SynExpectFunctionBody, "expected '{' to start function body")
		return ast.NoStmtID, false
	}
	restore := p.allowIn()
	defer restore()
	return p.parseBlock()
}
