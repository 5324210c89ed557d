package parser

import (
	"errcode/internal/ast"
	"errcode/internal/diag"
	"errcode/internal/token"
)

// parseLeftHandSide: primary или new, затем цепочка вызовов, обращений к
// членам, опциональных цепочек и тегированных шаблонов.
func (p *Parser) parseLeftHandSide() (ast.ExprID, bool) {
	var (
		expr ast.ExprID
		ok   bool
	)
	if p.at(token.KwNew) {
		expr, ok = p.parseNew()
	} else {
		expr, ok = p.parsePrimary()
	}
	if !ok {
		return ast.NoExprID, false
	}
	return p.parseCallTail(expr, true)
}

// parseCallTail: постфиксная цепочка; calls=false для callee внутри new.
func (p *Parser) parseCallTail(expr ast.ExprID, calls bool) (ast.ExprID, bool) {
	ex := p.arenas.Exprs
	for {
		start := p.exprSpan(expr)
		tok := p.lx.Peek()
		switch tok.Kind {
		case token.Dot:
			p.advance()
			prop, ok := p.parseMemberName()
			if !ok {
				return ast.NoExprID, false
			}
			expr = ex.NewMember(p.spanFrom(start), expr, prop, false, false)

		case token.QuestionDot:
			if !calls {
				return expr, true
			}
			p.advance()
			switch {
			case p.at(token.LParen):
				args, ok := p.parseArguments()
				if !ok {
					return ast.NoExprID, false
				}
				expr = ex.NewCall(p.spanFrom(start), expr, args, true)
			case p.at(token.LBracket):
				prop, ok := p.parseComputedMember()
				if !ok {
					return ast.NoExprID, false
				}
				expr = ex.NewMember(p.spanFrom(start), expr, prop, true, true)
			default:
				prop, ok := p.parseMemberName()
				if !ok {
					return ast.NoExprID, false
				}
				expr = ex.NewMember(p.spanFrom(start), expr, prop, false, true)
			}

		case token.LBracket:
			prop, ok := p.parseComputedMember()
			if !ok {
				return ast.NoExprID, false
			}
			expr = ex.NewMember(p.spanFrom(start), expr, prop, true, false)

		case token.LParen:
			if !calls {
				return expr, true
			}
			args, ok := p.parseArguments()
			if !ok {
				return ast.NoExprID, false
			}
			expr = ex.NewCall(p.spanFrom(start), expr, args, false)

		case token.TemplateFull, token.TemplateHead:
			tpl, ok := p.parseTemplate(expr, start)
			if !ok {
				return ast.NoExprID, false
			}
			expr = tpl

		default:
			return expr, true
		}
	}
}

// parseMemberName: имя после '.' или '?.': любое слово или #private.
func (p *Parser) parseMemberName() (ast.ExprID, bool) {
	tok := p.lx.Peek()
	switch {
	case tok.IsWord():
		p.advance()
		return p.arenas.Exprs.NewIdent(tok.Span, p.intern(tok)), true
	case tok.Kind == token.PrivateName:
		p.advance()
		return p.arenas.Exprs.NewPrivateName(tok.Span, p.intern(tok)), true
	}
	p.err(diag.SynExpectIdentifier, "expected property name after '.'")
	return ast.NoExprID, false
}

func (p *Parser) parseComputedMember() (ast.ExprID, bool) {
	open := p.advance() // '['
	restore := p.allowIn()
	prop, ok := p.parseExpr()
	restore()
	if !ok {
		return ast.NoExprID, false
	}
	if !p.expectClose(token.RBracket, open.Span, diag.SynUnclosedBracket, "expected ']'") {
		return ast.NoExprID, false
	}
	return prop, true
}

// parseNew: new X, new X(args), new new X()(), new.target
func (p *Parser) parseNew() (ast.ExprID, bool) {
	newTok := p.advance()

	if p.at(token.Dot) {
		p.advance()
		prop := p.lx.Peek()
		if !prop.IsContextual("target") {
			p.err(diag.SynUnexpectedToken, "expected 'target' after 'new.'")
			return ast.NoExprID, false
		}
		p.advance()
		strs := p.arenas.Strings
		return p.arenas.Exprs.NewMeta(p.spanFrom(newTok.Span), strs.Intern("new"), strs.Intern("target")), true
	}

	var (
		callee ast.ExprID
		ok     bool
	)
	if p.at(token.KwNew) {
		callee, ok = p.parseNew()
	} else {
		callee, ok = p.parsePrimary()
	}
	if !ok {
		return ast.NoExprID, false
	}
	callee, ok = p.parseCallTail(callee, false)
	if !ok {
		return ast.NoExprID, false
	}

	var args []ast.ExprID
	hasArgs := p.at(token.LParen)
	if hasArgs {
		args, ok = p.parseArguments()
		if !ok {
			return ast.NoExprID, false
		}
	}
	return p.arenas.Exprs.NewNew(p.spanFrom(newTok.Span), callee, args, hasArgs), true
}

// parseArguments: '(' [AssignmentExpression | ...spread] {',' ...} [','] ')'
func (p *Parser) parseArguments() ([]ast.ExprID, bool) {
	open := p.advance() // '('
	restore := p.allowIn()
	defer restore()

	args := make([]ast.ExprID, 0, 2)
	for !p.at(token.RParen) && !p.at(token.EOF) {
		arg, ok := p.parseElement()
		if !ok {
			return nil, false
		}
		args = append(args, arg)
		if !p.at(token.Comma) {
			break
		}
		p.advance()
	}
	if !p.expectClose(token.RParen, open.Span, diag.SynUnclosedParen, "expected ')' after arguments") {
		return nil, false
	}
	return args, true
}

// parseElement: AssignmentExpression или ...spread.
func (p *Parser) parseElement() (ast.ExprID, bool) {
	if !p.at(token.DotDotDot) {
		return p.parseAssign()
	}
	dots := p.advance()
	value, ok := p.parseAssign()
	if !ok {
		return ast.NoExprID, false
	}
	return p.arenas.Exprs.NewSpread(p.spanFrom(dots.Span), value), true
}
