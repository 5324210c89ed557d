package parser

import (
	"errcode/internal/ast"
	"errcode/internal/diag"
	"errcode/internal/token"
)

// parseExpr - главная точка входа для парсинга выражений: Expression
// (последовательность через запятую).
// Возвращает ExprID и флаг успеха
func (p *Parser) parseExpr() (ast.ExprID, bool) {
	first, ok := p.parseAssign()
	if !ok || !p.at(token.Comma) {
		return first, ok
	}
	exprs := []ast.ExprID{first}
	for p.at(token.Comma) {
		p.advance()
		next, ok := p.parseAssign()
		if !ok {
			return ast.NoExprID, false
		}
		exprs = append(exprs, next)
	}
	return p.arenas.Exprs.NewSequence(p.spanFrom(p.exprSpan(first)), exprs), true
}

// allowIn снимает запрет на 'in' внутри скобок заголовка for.
func (p *Parser) allowIn() (restore func()) {
	prev := p.noIn
	p.noIn = false
	return func() { p.noIn = prev }
}

// parseAssign: AssignmentExpression: стрелочные функции, yield,
// присваивания (правоассоциативно) и условный оператор.
func (p *Parser) parseAssign() (ast.ExprID, bool) {
	if p.at(token.KwYield) {
		return p.parseYield()
	}
	if id, ok, matched := p.tryArrow(); matched {
		return id, ok
	}

	left, ok := p.parseConditional()
	if !ok {
		return left, false
	}
	opTok := p.lx.Peek()
	if !opTok.Kind.IsAssign() {
		return left, true
	}
	p.checkAssignTarget(left, opTok)
	p.advance()

	right, ok := p.parseAssign()
	if !ok {
		return ast.NoExprID, false
	}
	span := p.spanFrom(p.exprSpan(left))
	return p.arenas.Exprs.NewAssign(span, ast.ExprAssignOp(opTok.Text), left, right), true
}

func (p *Parser) checkAssignTarget(target ast.ExprID, opTok token.Token) {
	e := p.arenas.Exprs.Get(target)
	if e == nil {
		return
	}
	switch e.Kind {
	case ast.ExprIdent, ast.ExprMember, ast.ExprInvalid:
		return
	case ast.ExprArray, ast.ExprObject:
		// деструктуризация допустима только для '='
		if opTok.Kind == token.Assign {
			return
		}
	case ast.ExprGroup:
		g, _ := p.arenas.Exprs.Group(target)
		p.checkAssignTarget(g.Inner, opTok)
		return
	}
	p.report(diag.SynBadAssignTarget, diag.SevError, e.Span, "invalid assignment target")
}

func (p *Parser) parseYield() (ast.ExprID, bool) {
	yieldTok := p.advance()
	delegate := false
	if p.at(token.Star) && !p.lx.Peek().NewlineBefore() {
		p.advance()
		delegate = true
	}
	value := ast.NoExprID
	if p.startsOperand() {
		v, ok := p.parseAssign()
		if !ok {
			return ast.NoExprID, false
		}
		value = v
	}
	return p.arenas.Exprs.NewYield(p.spanFrom(yieldTok.Span), value, delegate), true
}

// startsOperand: может ли текущий токен на той же строке начинать операнд.
func (p *Parser) startsOperand() bool {
	tok := p.lx.Peek()
	if tok.NewlineBefore() {
		return false
	}
	switch tok.Kind {
	case token.RParen, token.RBracket, token.RBrace, token.Comma, token.Semicolon,
		token.Colon, token.EOF, token.TemplateMiddle, token.TemplateTail:
		return false
	}
	return !tok.Kind.IsAssign() || tok.Kind == token.SlashAssign
}

// parseConditional: cond ? a : b
func (p *Parser) parseConditional() (ast.ExprID, bool) {
	cond, ok := p.parseBinaryExpr(precNullish)
	if !ok || !p.at(token.Question) {
		return cond, ok
	}
	p.advance()

	restore := p.allowIn()
	then, ok := p.parseAssign()
	restore()
	if !ok {
		return ast.NoExprID, false
	}
	if _, ok := p.expect(token.Colon, diag.SynExpectColon, "expected ':' in conditional expression"); !ok {
		return ast.NoExprID, false
	}
	els, ok := p.parseAssign()
	if !ok {
		return ast.NoExprID, false
	}
	span := p.spanFrom(p.exprSpan(cond))
	return p.arenas.Exprs.NewConditional(span, cond, then, els), true
}

// parseBinaryExpr реализует Pratt parsing для бинарных операторов
// minPrec - минимальный приоритет для текущего уровня
func (p *Parser) parseBinaryExpr(minPrec int) (ast.ExprID, bool) {
	left, ok := p.parseUnaryExpr()
	if !ok {
		return ast.NoExprID, false
	}

	for {
		tok := p.lx.Peek()

		prec, isRightAssoc := p.getBinaryOperatorPrec(tok.Kind)
		if prec < minPrec {
			break // приоритет слишком низкий
		}

		opTok := p.advance()

		nextMinPrec := prec + 1
		if isRightAssoc {
			nextMinPrec = prec
		}

		right, ok := p.parseBinaryExpr(nextMinPrec)
		if !ok {
			return ast.NoExprID, false
		}

		op := p.tokenKindToBinaryOp(opTok.Kind)
		finalSpan := p.exprSpan(left).Cover(p.exprSpan(right))
		left = p.arenas.Exprs.NewBinary(finalSpan, op, left, right)
	}

	return left, true
}

// parseUnaryExpr обрабатывает префиксные операторы и await
func (p *Parser) parseUnaryExpr() (ast.ExprID, bool) {
	tok := p.lx.Peek()

	if op, ok := p.getUnaryOperator(tok.Kind); ok {
		p.advance()
		operand, ok := p.parseUnaryExpr()
		if !ok {
			return ast.NoExprID, false
		}
		return p.arenas.Exprs.NewUnary(p.spanFrom(tok.Span), op, operand), true
	}

	if tok.Kind == token.KwAwait {
		p.advance()
		operand, ok := p.parseUnaryExpr()
		if !ok {
			return ast.NoExprID, false
		}
		return p.arenas.Exprs.NewAwait(p.spanFrom(tok.Span), operand), true
	}

	return p.parsePostfixExpr()
}

// parsePostfixExpr: a++ / a-- (без перевода строки перед оператором)
func (p *Parser) parsePostfixExpr() (ast.ExprID, bool) {
	expr, ok := p.parseLeftHandSide()
	if !ok {
		return ast.NoExprID, false
	}
	tok := p.lx.Peek()
	if (tok.Kind == token.PlusPlus || tok.Kind == token.MinusMinus) && !tok.NewlineBefore() {
		p.advance()
		op := ast.ExprUnaryPostInc
		if tok.Kind == token.MinusMinus {
			op = ast.ExprUnaryPostDec
		}
		return p.arenas.Exprs.NewUnary(p.spanFrom(p.exprSpan(expr)), op, expr), true
	}
	return expr, true
}
