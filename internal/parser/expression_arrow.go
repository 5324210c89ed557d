package parser

import (
	"errcode/internal/ast"
	"errcode/internal/diag"
	"errcode/internal/source"
	"errcode/internal/token"
)

// tryArrow распознаёт стрелочную функцию в начале AssignmentExpression:
// x => ..., (a, b) => ..., async x => ..., async (a) => ...
// matched=false означает, что стрелки здесь нет и лексер не сдвинут.
func (p *Parser) tryArrow() (id ast.ExprID, ok, matched bool) {
	tok := p.lx.Peek()
	switch tok.Kind {
	case token.Ident:
		if tok.IsContextual("async") {
			next := p.peek2()
			if !next.NewlineBefore() && (next.Kind == token.Ident || next.Kind == token.LParen) && p.arrowAhead(1) {
				p.advance()
				id, ok = p.parseArrow(tok.Span, true)
				return id, ok, true
			}
		}
		if next := p.peek2(); next.Kind == token.Arrow && !next.NewlineBefore() {
			id, ok = p.parseArrow(tok.Span, false)
			return id, ok, true
		}
	case token.LParen:
		if p.arrowAhead(0) {
			id, ok = p.parseArrow(tok.Span, false)
			return id, ok, true
		}
	}
	return ast.NoExprID, false, false
}

// arrowAhead пробует пропустить skip токенов, затем идентификатор или
// сбалансированный список параметров, и проверяет "=>" на той же строке.
// Позиция лексера восстанавливается, диагностика подавлена.
func (p *Parser) arrowAhead(skip int) bool {
	st := p.lx.Save()
	unmute := p.lx.Mute()
	defer func() {
		unmute()
		p.lx.Restore(st)
	}()

	for range skip {
		p.lx.Next()
	}
	if p.lx.Peek().Kind == token.LParen {
		if !p.skipBalanced() {
			return false
		}
	} else {
		p.lx.Next()
	}
	next := p.lx.Peek()
	return next.Kind == token.Arrow && !next.NewlineBefore()
}

// skipBalanced съедает группу от открывающей скобки до парной закрывающей,
// включая вложенные шаблоны. Возвращает false на EOF или непарной скобке.
func (p *Parser) skipBalanced() bool {
	const tpl = token.TemplateHead
	var stack []token.Kind
	prev := token.Invalid
	for {
		tok := p.lx.Next()
		switch tok.Kind {
		case token.EOF:
			return false
		case token.LParen, token.LBracket, token.LBrace, token.TemplateHead:
			stack = append(stack, tok.Kind)
		case token.RParen, token.RBracket:
			if len(stack) == 0 || stack[len(stack)-1] != opener(tok.Kind) {
				return false
			}
			stack = stack[:len(stack)-1]
		case token.RBrace:
			if len(stack) == 0 {
				return false
			}
			top := stack[len(stack)-1]
			if top == tpl {
				tok = p.lx.ReScanTemplate(tok)
				if tok.Kind != token.TemplateMiddle {
					stack = stack[:len(stack)-1]
				}
			} else if top == token.LBrace {
				stack = stack[:len(stack)-1]
			} else {
				return false
			}
		case token.Slash, token.SlashAssign:
			if !endsOperand(prev) {
				tok = p.lx.ReScanRegExp(tok)
			}
		}
		prev = tok.Kind
		if len(stack) == 0 {
			return true
		}
	}
}

func opener(k token.Kind) token.Kind {
	if k == token.RParen {
		return token.LParen
	}
	return token.LBracket
}

// endsOperand: после такого токена '/' означает деление, а не regexp.
func endsOperand(k token.Kind) bool {
	switch k {
	case token.Ident, token.PrivateName, token.NumberLit, token.BigIntLit, token.StringLit,
		token.RegExpLit, token.TemplateFull, token.TemplateTail,
		token.RParen, token.RBracket, token.RBrace,
		token.KwThis, token.KwSuper, token.KwNull, token.KwTrue, token.KwFalse,
		token.PlusPlus, token.MinusMinus:
		return true
	}
	return false
}

// parseArrow: параметры, "=>" и тело (блок или выражение).
func (p *Parser) parseArrow(start source.Span, async bool) (ast.ExprID, bool) {
	data := ast.ExprFunctionData{
		Name:     ast.NoExprID,
		Body:     ast.NoStmtID,
		ExprBody: ast.NoExprID,
		Async:    async,
		Arrow:    true,
	}
	if p.at(token.LParen) {
		params, ok := p.parseParams()
		if !ok {
			return ast.NoExprID, false
		}
		data.Params = params
	} else {
		tok := p.advance()
		data.Params = []ast.ExprID{p.arenas.Exprs.NewIdent(tok.Span, p.intern(tok))}
	}
	if _, ok := p.expect(token.Arrow, diag.SynUnexpectedToken, "expected '=>'"); !ok {
		return ast.NoExprID, false
	}
	if p.at(token.LBrace) {
		body, ok := p.parseFunctionBody()
		if !ok {
			return ast.NoExprID, false
		}
		data.Body = body
	} else {
		body, ok := p.parseAssign()
		if !ok {
			return ast.NoExprID, false
		}
		data.ExprBody = body
	}
	return p.arenas.Exprs.NewFunction(p.spanFrom(start), data), true
}
