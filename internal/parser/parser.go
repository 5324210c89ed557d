package parser

import (
	"fmt"
	"slices"

	"errcode/internal/ast"
	"errcode/internal/diag"
	"errcode/internal/lexer"
	"errcode/internal/source"
	"errcode/internal/token"

	"fortio.org/safecast"
)

type Options struct {
	MaxErrors     uint
	CurrentErrors uint
	Reporter      diag.Reporter
}

// Enough - проверить, достигли ли мы максимального количества ошибок
func (o *Options) Enough() bool {
	if o.MaxErrors == 0 {
		return false
	}
	return o.CurrentErrors >= o.MaxErrors
}

type Result struct {
	File ast.FileID
	// Errors is the number of error diagnostics reported while parsing,
	// lexer errors excluded.
	Errors uint
}

// Parser: состояние парсера на один файл
type Parser struct {
	lx       *lexer.Lexer // поток токенов (Peek/Next + пересканирование)
	arenas   *ast.Builder // построитель аренных узлов
	file     ast.FileID   // текущий FileID (в AST)
	opts     Options
	lastSpan source.Span // span последнего съеденного токена для лучшей диагностики
	noIn     bool        // запрет оператора in в заголовке for
}

// ParseFile: входная точка для разбора одного файла (Script или Module).
// Требует уже созданный lexer (на основе source.File).
func ParseFile(lx *lexer.Lexer, arenas *ast.Builder, opts Options) Result {
	f := lx.File()
	end, err := safecast.Conv[uint32](len(f.Content))
	if err != nil {
		panic(fmt.Errorf("file too large: %w", err))
	}
	full := source.Span{File: f.ID, Start: 0, End: end}
	p := Parser{
		lx:       lx,
		arenas:   arenas,
		file:     arenas.NewFile(full),
		opts:     opts,
		lastSpan: source.Span{File: f.ID},
	}
	p.parseProgram()
	return Result{File: p.file, Errors: p.opts.CurrentErrors}
}

func (p *Parser) at(k token.Kind) bool {
	return p.lx.Peek().Kind == k
}

func (p *Parser) atOr(kinds ...token.Kind) bool {
	return slices.Contains(kinds, p.lx.Peek().Kind)
}

// atWord: текущий токен это идентификатор word (контекстное слово вроде of/async/get).
func (p *Parser) atWord(word string) bool {
	return p.lx.Peek().IsContextual(word)
}

func (p *Parser) IsError() bool {
	return p.opts.CurrentErrors != 0
}

// parseProgram: основной цикл верхнего уровня: пока не EOF: parseStatement.
func (p *Parser) parseProgram() {
	for !p.at(token.EOF) && !p.opts.Enough() {
		if p.at(token.RBrace) {
			p.err(diag.SynUnexpectedToken, "unexpected '}'")
			p.advance()
			continue
		}
		stmt, ok := p.parseStatement()
		if !ok {
			p.resyncStatement()
			continue
		}
		p.arenas.PushStmt(p.file, stmt)
	}
	if p.opts.Enough() && p.opts.Reporter != nil {
		p.opts.Reporter.Report(diag.SynTooManyErrors, diag.SevError, p.lx.Peek().Span, "too many errors, giving up on this file", nil)
	}
}

// resyncStatement: восстановление после ошибки: прокручиваем до ';'
// (съедаем), до '}' или до токена с переводом строки перед ним.
// Гарантирует продвижение хотя бы на один токен.
func (p *Parser) resyncStatement() {
	first := true
	for !p.at(token.EOF) {
		tok := p.lx.Peek()
		if tok.Kind == token.Semicolon {
			p.advance()
			return
		}
		if tok.Kind == token.RBrace || (!first && tok.NewlineBefore()) {
			return
		}
		p.advance()
		first = false
	}
}
