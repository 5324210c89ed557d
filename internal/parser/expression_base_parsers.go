package parser

import (
	"errcode/internal/ast"
	"errcode/internal/diag"
	"errcode/internal/lexer"
	"errcode/internal/source"
	"errcode/internal/token"
)

// parsePrimary: PrimaryExpression: идентификаторы, литералы, скобки,
// массивы, объекты, function/class выражения, import(...) и import.meta.
func (p *Parser) parsePrimary() (ast.ExprID, bool) {
	ex := p.arenas.Exprs
	tok := p.lx.Peek()

	switch tok.Kind {
	case token.Ident:
		if tok.IsContextual("async") {
			if next := p.peek2(); next.Kind == token.KwFunction && !next.NewlineBefore() {
				p.advance()
				return p.parseFunctionExpr(tok.Span, true)
			}
		}
		p.advance()
		return ex.NewIdent(tok.Span, p.intern(tok)), true

	case token.KwLet:
		// в нестрогом коде let остаётся обычным идентификатором
		p.advance()
		return ex.NewIdent(tok.Span, p.intern(tok)), true

	case token.PrivateName:
		// #x in obj
		p.advance()
		return ex.NewPrivateName(tok.Span, p.intern(tok)), true

	case token.KwThis:
		p.advance()
		return ex.NewThis(tok.Span), true

	case token.KwSuper:
		p.advance()
		return ex.NewSuper(tok.Span), true

	case token.KwNull:
		p.advance()
		return p.literal(tok, ast.ExprLitNull, tok.Text), true
	case token.KwTrue:
		p.advance()
		return p.literal(tok, ast.ExprLitTrue, tok.Text), true
	case token.KwFalse:
		p.advance()
		return p.literal(tok, ast.ExprLitFalse, tok.Text), true

	case token.NumberLit:
		p.advance()
		return p.literal(tok, ast.ExprLitNumber, tok.Text), true
	case token.BigIntLit:
		p.advance()
		return p.literal(tok, ast.ExprLitBigInt, tok.Text), true

	case token.StringLit:
		p.advance()
		value, err := lexer.Unquote(tok.Text)
		if err != nil {
			p.report(diag.LexBadEscape, diag.SevError, tok.Span, "invalid escape sequence in string literal")
			value = tok.Text
		}
		return p.literal(tok, ast.ExprLitString, value), true

	case token.Slash, token.SlashAssign:
		re := p.consumed(p.lx.ReScanRegExp(tok))
		if re.Kind != token.RegExpLit {
			return ex.NewInvalid(re.Span), false
		}
		return p.literal(re, ast.ExprLitRegExp, re.Text), true

	case token.TemplateFull, token.TemplateHead:
		return p.parseTemplate(ast.NoExprID, tok.Span)

	case token.LParen:
		return p.parseGroup()

	case token.LBracket:
		return p.parseArrayLiteral()

	case token.LBrace:
		return p.parseObjectLiteral()

	case token.KwFunction:
		return p.parseFunctionExpr(tok.Span, false)

	case token.KwClass:
		return p.parseClass()

	case token.KwImport:
		p.advance()
		if p.at(token.Dot) {
			p.advance()
			prop := p.lx.Peek()
			if !prop.IsContextual("meta") {
				p.err(diag.SynUnexpectedToken, "expected 'meta' after 'import.'")
				return ast.NoExprID, false
			}
			p.advance()
			strs := p.arenas.Strings
			return ex.NewMeta(p.spanFrom(tok.Span), strs.Intern("import"), strs.Intern("meta")), true
		}
		if !p.at(token.LParen) {
			p.err(diag.SynUnexpectedToken, "expected '(' or '.' after 'import'")
			return ast.NoExprID, false
		}
		return ex.NewImport(tok.Span), true

	case token.EOF:
		p.err(diag.SynUnexpectedEOF, "unexpected end of file, expected expression")
		return ast.NoExprID, false
	}

	p.err(diag.SynExpectExpression, "expected expression, got \""+tok.Text+"\"")
	return ast.NoExprID, false
}

func (p *Parser) literal(tok token.Token, kind ast.ExprLitKind, value string) ast.ExprID {
	return p.arenas.Exprs.NewLiteral(tok.Span, kind, p.arenas.Strings.Intern(value))
}

// parseGroup: ( Expression ). Стрелочные функции сюда не доходят: их
// распознаёт tryArrow до разбора условного выражения.
func (p *Parser) parseGroup() (ast.ExprID, bool) {
	open := p.advance()
	if p.at(token.RParen) {
		p.err(diag.SynExpectExpression, "expected expression inside parentheses")
		return ast.NoExprID, false
	}
	restore := p.allowIn()
	inner, ok := p.parseExpr()
	restore()
	if !ok {
		return ast.NoExprID, false
	}
	if !p.expectClose(token.RParen, open.Span, diag.SynUnclosedParen, "expected ')'") {
		return ast.NoExprID, false
	}
	return p.arenas.Exprs.NewGroup(p.spanFrom(open.Span), inner), true
}

// parseTemplate разбирает шаблон начиная с текущего TemplateFull/TemplateHead.
// tag: выражение тега или NoExprID; start: начало всего выражения.
func (p *Parser) parseTemplate(tag ast.ExprID, start source.Span) (ast.ExprID, bool) {
	chunk := p.advance()
	quasis := []ast.TemplateQuasi{p.quasi(chunk, tag != ast.NoExprID)}
	var exprs []ast.ExprID

	for chunk.Kind == token.TemplateHead || chunk.Kind == token.TemplateMiddle {
		restore := p.allowIn()
		e, ok := p.parseExpr()
		restore()
		if !ok {
			return ast.NoExprID, false
		}
		exprs = append(exprs, e)
		if !p.at(token.RBrace) {
			p.err(diag.SynBadTemplate, "expected '}' after template substitution")
			return ast.NoExprID, false
		}
		chunk = p.consumed(p.lx.ReScanTemplate(p.lx.Peek()))
		quasis = append(quasis, p.quasi(chunk, tag != ast.NoExprID))
	}
	return p.arenas.Exprs.NewTemplate(p.spanFrom(start), tag, quasis, exprs), true
}

func (p *Parser) quasi(chunk token.Token, tagged bool) ast.TemplateQuasi {
	strs := p.arenas.Strings
	q := ast.TemplateQuasi{
		Span: chunk.Span,
		Raw:  strs.Intern(lexer.TemplateRaw(chunk.Text)),
	}
	cooked, ok := lexer.TemplateCooked(chunk.Text)
	if ok {
		q.Cooked, q.HasCooked = strs.Intern(cooked), true
	} else if !tagged {
		p.report(diag.LexBadEscape, diag.SevError, chunk.Span, "invalid escape sequence in template literal")
	}
	return q
}

// parseArrayLiteral: [a, , ...b]; дырки хранятся как NoExprID.
func (p *Parser) parseArrayLiteral() (ast.ExprID, bool) {
	open := p.advance()
	restore := p.allowIn()
	defer restore()

	var elems []ast.ExprID
	for !p.at(token.RBracket) && !p.at(token.EOF) {
		if p.at(token.Comma) {
			p.advance()
			elems = append(elems, ast.NoExprID)
			continue
		}
		el, ok := p.parseElement()
		if !ok {
			return ast.NoExprID, false
		}
		elems = append(elems, el)
		if !p.at(token.Comma) {
			break
		}
		p.advance()
	}
	if !p.expectClose(token.RBracket, open.Span, diag.SynUnclosedBracket, "expected ']' after array elements") {
		return ast.NoExprID, false
	}
	return p.arenas.Exprs.NewArray(p.spanFrom(open.Span), elems), true
}

// parseObjectLiteral: { key: v, short, ...spread, get x() {}, m() {}, [k]: v }
func (p *Parser) parseObjectLiteral() (ast.ExprID, bool) {
	open := p.advance()
	restore := p.allowIn()
	defer restore()

	var props []ast.ObjectProp
	for !p.at(token.RBrace) && !p.at(token.EOF) {
		prop, ok := p.parseObjectMember()
		if !ok {
			return ast.NoExprID, false
		}
		props = append(props, prop)
		if !p.at(token.Comma) {
			break
		}
		p.advance()
	}
	if !p.expectClose(token.RBrace, open.Span, diag.SynUnclosedBrace, "expected '}' after object properties") {
		return ast.NoExprID, false
	}
	return p.arenas.Exprs.NewObject(p.spanFrom(open.Span), props), true
}

func (p *Parser) parseObjectMember() (ast.ObjectProp, bool) {
	ex := p.arenas.Exprs
	first := p.lx.Peek()
	start := first.Span

	if first.Kind == token.DotDotDot {
		p.advance()
		value, ok := p.parseAssign()
		if !ok {
			return ast.ObjectProp{}, false
		}
		return ast.ObjectProp{Kind: ast.PropSpread, Span: p.spanFrom(start), Key: ast.NoExprID, Value: value}, true
	}

	kind := ast.PropInit
	async, generator := false, false
	switch {
	case (first.IsContextual("get") || first.IsContextual("set")) && p.modifierApplies():
		p.advance()
		kind = ast.PropGetter
		if first.Text == "set" {
			kind = ast.PropSetter
		}
	case first.IsContextual("async") && p.modifierApplies() && !p.peek2().NewlineBefore():
		p.advance()
		kind, async = ast.PropMethod, true
	}
	if p.at(token.Star) {
		p.advance()
		kind, generator = ast.PropMethod, true
	}

	keyTok := p.lx.Peek()
	key, computed, ok := p.parsePropertyKey(false)
	if !ok {
		return ast.ObjectProp{}, false
	}

	if kind == ast.PropInit && p.at(token.LParen) {
		kind = ast.PropMethod
	}
	if kind != ast.PropInit {
		fn, ok := p.parseMethod(async, generator)
		if !ok {
			return ast.ObjectProp{}, false
		}
		return ast.ObjectProp{Kind: kind, Span: p.spanFrom(start), Key: key, Computed: computed, Value: fn}, true
	}

	switch {
	case p.at(token.Colon):
		p.advance()
		value, ok := p.parseAssign()
		if !ok {
			return ast.ObjectProp{}, false
		}
		return ast.ObjectProp{Kind: ast.PropInit, Span: p.spanFrom(start), Key: key, Computed: computed, Value: value}, true

	case computed || keyTok.Kind != token.Ident:
		p.err(diag.SynExpectColon, "expected ':' after property key")
		return ast.ObjectProp{}, false

	case p.at(token.Assign):
		// {a = 1} встречается только в деструктуризации
		p.advance()
		def, ok := p.parseAssign()
		if !ok {
			return ast.ObjectProp{}, false
		}
		value := ex.NewAssign(p.spanFrom(start), ast.ExprAssignOp("="), key, def)
		return ast.ObjectProp{Kind: ast.PropShorthand, Span: p.spanFrom(start), Key: key, Value: value}, true
	}
	return ast.ObjectProp{Kind: ast.PropShorthand, Span: p.exprSpan(key), Key: key, Value: key}, true
}

// modifierApplies: за get/set/async/static следует ключ, а не
// "(", ":", "=", ",", "}" или ";" (тогда это само имя свойства).
func (p *Parser) modifierApplies() bool {
	next := p.peek2()
	switch next.Kind {
	case token.LParen, token.Colon, token.Assign, token.Comma, token.RBrace, token.Semicolon, token.EOF:
		return false
	}
	return true
}

// parsePropertyKey: имя, строка, число, [вычисляемый] или #private (в классах).
func (p *Parser) parsePropertyKey(allowPrivate bool) (key ast.ExprID, computed, ok bool) {
	ex := p.arenas.Exprs
	tok := p.lx.Peek()
	switch {
	case tok.IsWord():
		p.advance()
		return ex.NewIdent(tok.Span, p.intern(tok)), false, true
	case tok.Kind == token.StringLit:
		p.advance()
		value, err := lexer.Unquote(tok.Text)
		if err != nil {
			p.report(diag.LexBadEscape, diag.SevError, tok.Span, "invalid escape sequence in string literal")
			value = tok.Text
		}
		return p.literal(tok, ast.ExprLitString, value), false, true
	case tok.Kind == token.NumberLit:
		p.advance()
		return p.literal(tok, ast.ExprLitNumber, tok.Text), false, true
	case tok.Kind == token.BigIntLit:
		p.advance()
		return p.literal(tok, ast.ExprLitBigInt, tok.Text), false, true
	case tok.Kind == token.PrivateName && allowPrivate:
		p.advance()
		return ex.NewPrivateName(tok.Span, p.intern(tok)), false, true
	case tok.Kind == token.LBracket:
		key, ok := p.parseComputedMember()
		return key, true, ok
	}
	p.err(diag.SynExpectIdentifier, "expected property name, got \""+tok.Text+"\"")
	return ast.NoExprID, false, false
}
