package parser

import (
	"errcode/internal/ast"
	"errcode/internal/diag"
	"errcode/internal/source"
	"errcode/internal/token"
)

// parseStatement: диспетчер по первому токену инструкции.
func (p *Parser) parseStatement() (ast.StmtID, bool) {
	st := p.arenas.Stmts
	tok := p.lx.Peek()

	switch tok.Kind {
	case token.LBrace:
		return p.parseBlock()
	case token.Semicolon:
		p.advance()
		return st.NewEmpty(tok.Span), true
	case token.KwVar, token.KwConst:
		return p.parseVarStatement()
	case token.KwLet:
		if p.letStartsDecl() {
			return p.parseVarStatement()
		}
	case token.KwFunction:
		return p.parseFunctionDecl(tok.Span, false)
	case token.KwClass:
		class, ok := p.parseClass()
		if !ok {
			return ast.NoStmtID, false
		}
		return st.NewClass(p.spanFrom(tok.Span), class), true
	case token.KwIf:
		return p.parseIf()
	case token.KwFor:
		return p.parseFor()
	case token.KwWhile:
		return p.parseWhile()
	case token.KwDo:
		return p.parseDoWhile()
	case token.KwReturn:
		return p.parseReturn()
	case token.KwThrow:
		return p.parseThrow()
	case token.KwBreak, token.KwContinue:
		return p.parseJump()
	case token.KwSwitch:
		return p.parseSwitch()
	case token.KwTry:
		return p.parseTry()
	case token.KwDebugger:
		p.advance()
		if !p.consumeSemicolon() {
			return ast.NoStmtID, false
		}
		return st.NewDebugger(p.spanFrom(tok.Span)), true
	case token.KwImport:
		if next := p.peek2(); next.Kind != token.LParen && next.Kind != token.Dot {
			return p.parseImportDecl()
		}
	case token.KwExport:
		return p.parseExport()
	case token.KwWith:
		p.err(diag.SynUnsupportedSyntax, "'with' statements are not supported")
		return ast.NoStmtID, false
	case token.Ident:
		if tok.IsContextual("async") {
			if next := p.peek2(); next.Kind == token.KwFunction && !next.NewlineBefore() {
				p.advance()
				return p.parseFunctionDecl(tok.Span, true)
			}
		}
		if p.peek2().Kind == token.Colon {
			return p.parseLabeled()
		}
	}
	return p.parseExprStatement()
}

// letStartsDecl: let x, let [a], let {a}; иначе let: идентификатор.
func (p *Parser) letStartsDecl() bool {
	next := p.peek2()
	switch next.Kind {
	case token.Ident, token.LBracket, token.LBrace, token.KwYield, token.KwAwait, token.KwLet:
		return true
	}
	return false
}

func (p *Parser) parseExprStatement() (ast.StmtID, bool) {
	start := p.lx.Peek().Span
	expr, ok := p.parseExpr()
	if !ok {
		return ast.NoStmtID, false
	}
	if !p.consumeSemicolon() {
		return ast.NoStmtID, false
	}
	return p.arenas.Stmts.NewExpr(p.spanFrom(start), expr), true
}

// parseBlock: { StatementList }
func (p *Parser) parseBlock() (ast.StmtID, bool) {
	open, ok := p.expect(token.LBrace, diag.SynUnexpectedToken, "expected '{'")
	if !ok {
		return ast.NoStmtID, false
	}
	stmts, ok := p.parseStatementsUntil(token.RBrace)
	if !ok {
		return ast.NoStmtID, false
	}
	if !p.expectClose(token.RBrace, open.Span, diag.SynUnclosedBrace, "expected '}' to close block") {
		return ast.NoStmtID, false
	}
	return p.arenas.Stmts.NewBlock(p.spanFrom(open.Span), stmts), true
}

// parseStatementsUntil читает инструкции до одного из стоп-токенов или EOF,
// восстанавливаясь после ошибок. ok=false если продолжать бессмысленно.
func (p *Parser) parseStatementsUntil(stop ...token.Kind) ([]ast.StmtID, bool) {
	var stmts []ast.StmtID
	for !p.atOr(stop...) && !p.at(token.EOF) {
		if p.opts.Enough() {
			return stmts, false
		}
		stmt, ok := p.parseStatement()
		if !ok {
			p.resyncStatement()
			continue
		}
		stmts = append(stmts, stmt)
	}
	return stmts, true
}

// parseVarStatement: var/let/const с точкой с запятой.
func (p *Parser) parseVarStatement() (ast.StmtID, bool) {
	start := p.lx.Peek().Span
	kind, decls, ok := p.parseVarDecls()
	if !ok {
		return ast.NoStmtID, false
	}
	if !p.consumeSemicolon() {
		return ast.NoStmtID, false
	}
	return p.arenas.Stmts.NewVar(p.spanFrom(start), kind, decls), true
}

func (p *Parser) parseVarDecls() (ast.VarKind, []ast.VarDecl, bool) {
	kw := p.advance()
	kind := ast.VarVar
	switch kw.Kind {
	case token.KwLet:
		kind = ast.VarLet
	case token.KwConst:
		kind = ast.VarConst
	}

	var decls []ast.VarDecl
	for {
		target, ok := p.parseBindingTarget()
		if !ok {
			return kind, nil, false
		}
		decl := ast.VarDecl{Target: target, Init: ast.NoExprID}
		if p.at(token.Assign) {
			p.advance()
			init, ok := p.parseAssign()
			if !ok {
				return kind, nil, false
			}
			decl.Init = init
		}
		decl.Span = p.spanFrom(p.exprSpan(target))
		decls = append(decls, decl)
		if !p.at(token.Comma) {
			break
		}
		p.advance()
	}
	return kind, decls, true
}

// parseBindingTarget: идентификатор или паттерн деструктуризации.
func (p *Parser) parseBindingTarget() (ast.ExprID, bool) {
	tok := p.lx.Peek()
	switch tok.Kind {
	case token.LBracket:
		return p.parseArrayLiteral()
	case token.LBrace:
		return p.parseObjectLiteral()
	case token.Ident, token.KwYield, token.KwAwait, token.KwLet:
		p.advance()
		return p.arenas.Exprs.NewIdent(tok.Span, p.intern(tok)), true
	}
	p.err(diag.SynExpectIdentifier, "expected variable name, got \""+tok.Text+"\"")
	return ast.NoExprID, false
}

func (p *Parser) parseFunctionDecl(start source.Span, async bool) (ast.StmtID, bool) {
	fn, ok := p.parseFunctionExpr(start, async)
	if !ok {
		return ast.NoStmtID, false
	}
	return p.arenas.Stmts.NewFunction(p.spanFrom(start), fn), true
}

// parseParenExpr: ( Expression ) в заголовках if/while/switch.
func (p *Parser) parseParenExpr() (ast.ExprID, bool) {
	open, ok := p.expect(token.LParen, diag.SynUnexpectedToken, "expected '('")
	if !ok {
		return ast.NoExprID, false
	}
	restore := p.allowIn()
	expr, ok := p.parseExpr()
	restore()
	if !ok {
		return ast.NoExprID, false
	}
	if !p.expectClose(token.RParen, open.Span, diag.SynUnclosedParen, "expected ')'") {
		return ast.NoExprID, false
	}
	return expr, true
}

func (p *Parser) parseIf() (ast.StmtID, bool) {
	ifTok := p.advance()
	cond, ok := p.parseParenExpr()
	if !ok {
		return ast.NoStmtID, false
	}
	then, ok := p.parseStatement()
	if !ok {
		return ast.NoStmtID, false
	}
	els := ast.NoStmtID
	if p.at(token.KwElse) {
		p.advance()
		els, ok = p.parseStatement()
		if !ok {
			return ast.NoStmtID, false
		}
	}
	return p.arenas.Stmts.NewIf(p.spanFrom(ifTok.Span), cond, then, els), true
}

// parseFor: for (;;), for (x in y), for (x of y), for await (x of y)
func (p *Parser) parseFor() (ast.StmtID, bool) {
	st := p.arenas.Stmts
	forTok := p.advance()
	await := false
	if p.at(token.KwAwait) {
		p.advance()
		await = true
	}
	open, ok := p.expect(token.LParen, diag.SynUnexpectedToken, "expected '(' after 'for'")
	if !ok {
		return ast.NoStmtID, false
	}

	init := ast.NoStmtID
	if !p.at(token.Semicolon) {
		prev := p.noIn
		p.noIn = true
		init, ok = p.parseForInit()
		p.noIn = prev
		if !ok {
			return ast.NoStmtID, false
		}
	}

	if p.at(token.KwIn) || p.atWord("of") {
		of := p.atWord("of")
		p.advance()
		if init == ast.NoStmtID {
			p.err(diag.SynForBadHeader, "missing left-hand side in for-in/of")
			return ast.NoStmtID, false
		}
		restore := p.allowIn()
		var right ast.ExprID
		if of {
			right, ok = p.parseAssign()
		} else {
			right, ok = p.parseExpr()
		}
		restore()
		if !ok {
			return ast.NoStmtID, false
		}
		if !p.expectClose(token.RParen, open.Span, diag.SynUnclosedParen, "expected ')' after for header") {
			return ast.NoStmtID, false
		}
		body, ok := p.parseStatement()
		if !ok {
			return ast.NoStmtID, false
		}
		return st.NewForIn(p.spanFrom(forTok.Span), ast.StmtForInData{
			Left: init, Right: right, Body: body, Of: of, Await: await,
		}), true
	}

	if await {
		p.err(diag.SynForBadHeader, "'for await' requires an 'of' loop")
		return ast.NoStmtID, false
	}
	if _, ok := p.expect(token.Semicolon, diag.SynForBadHeader, "expected ';' in for header"); !ok {
		return ast.NoStmtID, false
	}
	restore := p.allowIn()
	defer restore()
	test := ast.NoExprID
	if !p.at(token.Semicolon) {
		if test, ok = p.parseExpr(); !ok {
			return ast.NoStmtID, false
		}
	}
	if _, ok := p.expect(token.Semicolon, diag.SynForBadHeader, "expected ';' in for header"); !ok {
		return ast.NoStmtID, false
	}
	update := ast.NoExprID
	if !p.at(token.RParen) {
		if update, ok = p.parseExpr(); !ok {
			return ast.NoStmtID, false
		}
	}
	if !p.expectClose(token.RParen, open.Span, diag.SynUnclosedParen, "expected ')' after for header") {
		return ast.NoStmtID, false
	}
	body, ok := p.parseStatement()
	if !ok {
		return ast.NoStmtID, false
	}
	return st.NewFor(p.spanFrom(forTok.Span), ast.StmtForData{
		Init: init, Test: test, Update: update, Body: body,
	}), true
}

// parseForInit: объявление или выражение в заголовке for, без ';'.
func (p *Parser) parseForInit() (ast.StmtID, bool) {
	start := p.lx.Peek().Span
	if p.atOr(token.KwVar, token.KwConst) || (p.at(token.KwLet) && p.letStartsDecl()) {
		kind, decls, ok := p.parseVarDecls()
		if !ok {
			return ast.NoStmtID, false
		}
		return p.arenas.Stmts.NewVar(p.spanFrom(start), kind, decls), true
	}
	expr, ok := p.parseExpr()
	if !ok {
		return ast.NoStmtID, false
	}
	return p.arenas.Stmts.NewExpr(p.spanFrom(start), expr), true
}

func (p *Parser) parseWhile() (ast.StmtID, bool) {
	whileTok := p.advance()
	cond, ok := p.parseParenExpr()
	if !ok {
		return ast.NoStmtID, false
	}
	body, ok := p.parseStatement()
	if !ok {
		return ast.NoStmtID, false
	}
	return p.arenas.Stmts.NewWhile(p.spanFrom(whileTok.Span), cond, body), true
}

func (p *Parser) parseDoWhile() (ast.StmtID, bool) {
	doTok := p.advance()
	body, ok := p.parseStatement()
	if !ok {
		return ast.NoStmtID, false
	}
	if _, ok := p.expect(token.KwWhile, diag.SynUnexpectedToken, "expected 'while' after do body"); !ok {
		return ast.NoStmtID, false
	}
	cond, ok := p.parseParenExpr()
	if !ok {
		return ast.NoStmtID, false
	}
	// после do-while точка с запятой вставляется всегда
	if p.at(token.Semicolon) {
		p.advance()
	}
	return p.arenas.Stmts.NewDoWhile(p.spanFrom(doTok.Span), cond, body), true
}

func (p *Parser) parseReturn() (ast.StmtID, bool) {
	retTok := p.advance()
	value := ast.NoExprID
	if next := p.lx.Peek(); !next.NewlineBefore() && !p.atOr(token.Semicolon, token.RBrace, token.EOF) {
		v, ok := p.parseExpr()
		if !ok {
			return ast.NoStmtID, false
		}
		value = v
	}
	if !p.consumeSemicolon() {
		return ast.NoStmtID, false
	}
	return p.arenas.Stmts.NewReturn(p.spanFrom(retTok.Span), value), true
}

func (p *Parser) parseThrow() (ast.StmtID, bool) {
	throwTok := p.advance()
	if p.lx.Peek().NewlineBefore() {
		p.err(diag.SynRestrictedNewline, "line break is not allowed after 'throw'")
		return ast.NoStmtID, false
	}
	value, ok := p.parseExpr()
	if !ok {
		return ast.NoStmtID, false
	}
	if !p.consumeSemicolon() {
		return ast.NoStmtID, false
	}
	return p.arenas.Stmts.NewThrow(p.spanFrom(throwTok.Span), value), true
}

// parseJump: break/continue с необязательной меткой на той же строке.
func (p *Parser) parseJump() (ast.StmtID, bool) {
	kw := p.advance()
	label := source.NoStringID
	if tok := p.lx.Peek(); tok.Kind == token.Ident && !tok.NewlineBefore() {
		p.advance()
		label = p.intern(tok)
	}
	if !p.consumeSemicolon() {
		return ast.NoStmtID, false
	}
	if kw.Kind == token.KwBreak {
		return p.arenas.Stmts.NewBreak(p.spanFrom(kw.Span), label), true
	}
	return p.arenas.Stmts.NewContinue(p.spanFrom(kw.Span), label), true
}

func (p *Parser) parseSwitch() (ast.StmtID, bool) {
	switchTok := p.advance()
	disc, ok := p.parseParenExpr()
	if !ok {
		return ast.NoStmtID, false
	}
	open, ok := p.expect(token.LBrace, diag.SynUnexpectedToken, "expected '{' after switch discriminant")
	if !ok {
		return ast.NoStmtID, false
	}

	var cases []ast.SwitchCase
	seenDefault := false
	for !p.at(token.RBrace) && !p.at(token.EOF) {
		caseTok := p.lx.Peek()
		c := ast.SwitchCase{Test: ast.NoExprID}
		switch caseTok.Kind {
		case token.KwCase:
			p.advance()
			restore := p.allowIn()
			test, ok := p.parseExpr()
			restore()
			if !ok {
				return ast.NoStmtID, false
			}
			c.Test = test
		case token.KwDefault:
			p.advance()
			if seenDefault {
				p.report(diag.SynDuplicateDefault, diag.SevError, caseTok.Span, "more than one 'default' clause in switch")
			}
			seenDefault = true
		default:
			p.err(diag.SynUnexpectedToken, "expected 'case' or 'default'")
			return ast.NoStmtID, false
		}
		if _, ok := p.expect(token.Colon, diag.SynExpectColon, "expected ':' after case"); !ok {
			return ast.NoStmtID, false
		}
		body, ok := p.parseStatementsUntil(token.KwCase, token.KwDefault, token.RBrace)
		if !ok {
			return ast.NoStmtID, false
		}
		c.Body = body
		c.Span = p.spanFrom(caseTok.Span)
		cases = append(cases, c)
	}
	if !p.expectClose(token.RBrace, open.Span, diag.SynUnclosedBrace, "expected '}' after switch cases") {
		return ast.NoStmtID, false
	}
	return p.arenas.Stmts.NewSwitch(p.spanFrom(switchTok.Span), disc, cases), true
}

func (p *Parser) parseTry() (ast.StmtID, bool) {
	tryTok := p.advance()
	data := ast.StmtTryData{Param: ast.NoExprID, Handler: ast.NoStmtID, Finalizer: ast.NoStmtID}
	var ok bool
	if data.Block, ok = p.parseBlock(); !ok {
		return ast.NoStmtID, false
	}
	if p.at(token.KwCatch) {
		p.advance()
		if p.at(token.LParen) {
			open := p.advance()
			if data.Param, ok = p.parseBindingTarget(); !ok {
				return ast.NoStmtID, false
			}
			if !p.expectClose(token.RParen, open.Span, diag.SynUnclosedParen, "expected ')' after catch parameter") {
				return ast.NoStmtID, false
			}
		}
		if data.Handler, ok = p.parseBlock(); !ok {
			return ast.NoStmtID, false
		}
	}
	if p.at(token.KwFinally) {
		p.advance()
		if data.Finalizer, ok = p.parseBlock(); !ok {
			return ast.NoStmtID, false
		}
	}
	if data.Handler == ast.NoStmtID && data.Finalizer == ast.NoStmtID {
		p.err(diag.SynCatchOrFinally, "missing catch or finally after try")
		return ast.NoStmtID, false
	}
	return p.arenas.Stmts.NewTry(p.spanFrom(tryTok.Span), data), true
}

func (p *Parser) parseLabeled() (ast.StmtID, bool) {
	labelTok := p.advance()
	p.advance() // ':'
	body, ok := p.parseStatement()
	if !ok {
		return ast.NoStmtID, false
	}
	return p.arenas.Stmts.NewLabeled(p.spanFrom(labelTok.Span), p.intern(labelTok), body), true
}
