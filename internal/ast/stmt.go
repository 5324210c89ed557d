package ast

import (
	"errcode/internal/source"
)

type StmtKind uint8

const (
	StmtEmpty StmtKind = iota
	StmtDebugger
	StmtBlock
	StmtExpr
	StmtVar
	StmtFunction
	StmtClass
	StmtReturn
	StmtThrow
	StmtIf
	StmtFor
	// StmtForIn covers for-in, for-of and for-await-of.
	StmtForIn
	StmtWhile
	StmtDoWhile
	StmtBreak
	StmtContinue
	StmtSwitch
	StmtTry
	StmtLabeled
	// StmtImport is kept as an opaque span: import declarations hold no expressions.
	StmtImport
	// StmtExport wraps an exported declaration or default expression; a bare
	// export clause (export {a as b} from "x") has neither and stays opaque.
	StmtExport
)

type Stmt struct {
	Kind    StmtKind
	Span    source.Span
	Payload PayloadID
}

type VarKind uint8

const (
	VarVar VarKind = iota
	VarLet
	VarConst
)

func (k VarKind) String() string {
	switch k {
	case VarLet:
		return "let"
	case VarConst:
		return "const"
	default:
		return "var"
	}
}

type VarDecl struct {
	Span source.Span
	// Target is an identifier or a destructuring pattern parsed as an
	// array/object expression.
	Target ExprID
	Init   ExprID
}

type StmtBlockData struct {
	Stmts []StmtID
}

type StmtExprData struct {
	Expr ExprID
}

type StmtVarData struct {
	Kind  VarKind
	Decls []VarDecl
}

// StmtDeclData holds the function or class expression of a declaration.
type StmtDeclData struct {
	Decl ExprID
}

type StmtValueData struct {
	Value ExprID
}

type StmtIfData struct {
	Cond ExprID
	Then StmtID
	Else StmtID
}

type StmtForData struct {
	Init   StmtID // StmtVar or StmtExpr, may be NoStmtID
	Test   ExprID
	Update ExprID
	Body   StmtID
}

type StmtForInData struct {
	Left  StmtID // StmtVar without initializer or StmtExpr with the target
	Right ExprID
	Body  StmtID
	Of    bool
	Await bool
}

type StmtLoopData struct {
	Cond ExprID
	Body StmtID
}

type StmtJumpData struct {
	Label source.StringID
}

// SwitchCase: Test is NoExprID for default.
type SwitchCase struct {
	Span source.Span
	Test ExprID
	Body []StmtID
}

type StmtSwitchData struct {
	Disc  ExprID
	Cases []SwitchCase
}

type StmtTryData struct {
	Block     StmtID
	Param     ExprID // may be NoExprID: catch {}
	Handler   StmtID
	Finalizer StmtID
}

type StmtLabeledData struct {
	Label source.StringID
	Body  StmtID
}

type StmtExportData struct {
	Decl    StmtID
	Default ExprID
}

type Stmts struct {
	Arena    *Arena[Stmt]
	Blocks   *Arena[StmtBlockData]
	Exprs    *Arena[StmtExprData]
	Vars     *Arena[StmtVarData]
	Decls    *Arena[StmtDeclData]
	Values   *Arena[StmtValueData]
	Ifs      *Arena[StmtIfData]
	Fors     *Arena[StmtForData]
	ForIns   *Arena[StmtForInData]
	Loops    *Arena[StmtLoopData]
	Jumps    *Arena[StmtJumpData]
	Switches *Arena[StmtSwitchData]
	Tries    *Arena[StmtTryData]
	Labels   *Arena[StmtLabeledData]
	Exports  *Arena[StmtExportData]
}

func NewStmts(capHint uint) *Stmts {
	if capHint == 0 {
		capHint = 1 << 8
	}
	small := capHint/4 + 1
	return &Stmts{
		Arena:    NewArena[Stmt](capHint),
		Blocks:   NewArena[StmtBlockData](capHint),
		Exprs:    NewArena[StmtExprData](capHint),
		Vars:     NewArena[StmtVarData](small),
		Decls:    NewArena[StmtDeclData](small),
		Values:   NewArena[StmtValueData](small),
		Ifs:      NewArena[StmtIfData](small),
		Fors:     NewArena[StmtForData](small),
		ForIns:   NewArena[StmtForInData](small),
		Loops:    NewArena[StmtLoopData](small),
		Jumps:    NewArena[StmtJumpData](small),
		Switches: NewArena[StmtSwitchData](small),
		Tries:    NewArena[StmtTryData](small),
		Labels:   NewArena[StmtLabeledData](small),
		Exports:  NewArena[StmtExportData](small),
	}
}

func (s *Stmts) new(kind StmtKind, span source.Span, payload PayloadID) StmtID {
	return StmtID(s.Arena.Allocate(Stmt{
		Kind:    kind,
		Span:    span,
		Payload: payload,
	}))
}

func (s *Stmts) Get(id StmtID) *Stmt {
	return s.Arena.Get(uint32(id))
}

func (s *Stmts) payload(id StmtID, kinds ...StmtKind) (uint32, bool) {
	stmt := s.Get(id)
	if stmt == nil {
		return 0, false
	}
	for _, k := range kinds {
		if stmt.Kind == k {
			return uint32(stmt.Payload), true
		}
	}
	return 0, false
}

func (s *Stmts) NewEmpty(span source.Span) StmtID {
	return s.new(StmtEmpty, span, NoPayloadID)
}

func (s *Stmts) NewDebugger(span source.Span) StmtID {
	return s.new(StmtDebugger, span, NoPayloadID)
}

func (s *Stmts) NewImport(span source.Span) StmtID {
	return s.new(StmtImport, span, NoPayloadID)
}

func (s *Stmts) NewBlock(span source.Span, stmts []StmtID) StmtID {
	payload := s.Blocks.Allocate(StmtBlockData{Stmts: stmts})
	return s.new(StmtBlock, span, PayloadID(payload))
}

func (s *Stmts) NewExpr(span source.Span, expr ExprID) StmtID {
	payload := s.Exprs.Allocate(StmtExprData{Expr: expr})
	return s.new(StmtExpr, span, PayloadID(payload))
}

func (s *Stmts) NewVar(span source.Span, kind VarKind, decls []VarDecl) StmtID {
	payload := s.Vars.Allocate(StmtVarData{Kind: kind, Decls: decls})
	return s.new(StmtVar, span, PayloadID(payload))
}

func (s *Stmts) NewFunction(span source.Span, fn ExprID) StmtID {
	payload := s.Decls.Allocate(StmtDeclData{Decl: fn})
	return s.new(StmtFunction, span, PayloadID(payload))
}

func (s *Stmts) NewClass(span source.Span, class ExprID) StmtID {
	payload := s.Decls.Allocate(StmtDeclData{Decl: class})
	return s.new(StmtClass, span, PayloadID(payload))
}

func (s *Stmts) NewReturn(span source.Span, value ExprID) StmtID {
	payload := s.Values.Allocate(StmtValueData{Value: value})
	return s.new(StmtReturn, span, PayloadID(payload))
}

func (s *Stmts) NewThrow(span source.Span, value ExprID) StmtID {
	payload := s.Values.Allocate(StmtValueData{Value: value})
	return s.new(StmtThrow, span, PayloadID(payload))
}

func (s *Stmts) NewIf(span source.Span, cond ExprID, then, els StmtID) StmtID {
	payload := s.Ifs.Allocate(StmtIfData{Cond: cond, Then: then, Else: els})
	return s.new(StmtIf, span, PayloadID(payload))
}

func (s *Stmts) NewFor(span source.Span, data StmtForData) StmtID {
	payload := s.Fors.Allocate(data)
	return s.new(StmtFor, span, PayloadID(payload))
}

func (s *Stmts) NewForIn(span source.Span, data StmtForInData) StmtID {
	payload := s.ForIns.Allocate(data)
	return s.new(StmtForIn, span, PayloadID(payload))
}

func (s *Stmts) NewWhile(span source.Span, cond ExprID, body StmtID) StmtID {
	payload := s.Loops.Allocate(StmtLoopData{Cond: cond, Body: body})
	return s.new(StmtWhile, span, PayloadID(payload))
}

func (s *Stmts) NewDoWhile(span source.Span, cond ExprID, body StmtID) StmtID {
	payload := s.Loops.Allocate(StmtLoopData{Cond: cond, Body: body})
	return s.new(StmtDoWhile, span, PayloadID(payload))
}

func (s *Stmts) NewBreak(span source.Span, label source.StringID) StmtID {
	payload := s.Jumps.Allocate(StmtJumpData{Label: label})
	return s.new(StmtBreak, span, PayloadID(payload))
}

func (s *Stmts) NewContinue(span source.Span, label source.StringID) StmtID {
	payload := s.Jumps.Allocate(StmtJumpData{Label: label})
	return s.new(StmtContinue, span, PayloadID(payload))
}

func (s *Stmts) NewSwitch(span source.Span, disc ExprID, cases []SwitchCase) StmtID {
	payload := s.Switches.Allocate(StmtSwitchData{Disc: disc, Cases: cases})
	return s.new(StmtSwitch, span, PayloadID(payload))
}

func (s *Stmts) NewTry(span source.Span, data StmtTryData) StmtID {
	payload := s.Tries.Allocate(data)
	return s.new(StmtTry, span, PayloadID(payload))
}

func (s *Stmts) NewLabeled(span source.Span, label source.StringID, body StmtID) StmtID {
	payload := s.Labels.Allocate(StmtLabeledData{Label: label, Body: body})
	return s.new(StmtLabeled, span, PayloadID(payload))
}

func (s *Stmts) NewExport(span source.Span, decl StmtID, def ExprID) StmtID {
	payload := s.Exports.Allocate(StmtExportData{Decl: decl, Default: def})
	return s.new(StmtExport, span, PayloadID(payload))
}

func (s *Stmts) Block(id StmtID) (*StmtBlockData, bool) {
	p, ok := s.payload(id, StmtBlock)
	if !ok {
		return nil, false
	}
	return s.Blocks.Get(p), true
}

func (s *Stmts) Expr(id StmtID) (*StmtExprData, bool) {
	p, ok := s.payload(id, StmtExpr)
	if !ok {
		return nil, false
	}
	return s.Exprs.Get(p), true
}

func (s *Stmts) Var(id StmtID) (*StmtVarData, bool) {
	p, ok := s.payload(id, StmtVar)
	if !ok {
		return nil, false
	}
	return s.Vars.Get(p), true
}

// Decl returns the payload shared by Function, Class.
func (s *Stmts) Decl(id StmtID) (*StmtDeclData, bool) {
	p, ok := s.payload(id, StmtFunction, StmtClass)
	if !ok {
		return nil, false
	}
	return s.Decls.Get(p), true
}

// Value returns the payload shared by Return, Throw.
func (s *Stmts) Value(id StmtID) (*StmtValueData, bool) {
	p, ok := s.payload(id, StmtReturn, StmtThrow)
	if !ok {
		return nil, false
	}
	return s.Values.Get(p), true
}

func (s *Stmts) If(id StmtID) (*StmtIfData, bool) {
	p, ok := s.payload(id, StmtIf)
	if !ok {
		return nil, false
	}
	return s.Ifs.Get(p), true
}

func (s *Stmts) For(id StmtID) (*StmtForData, bool) {
	p, ok := s.payload(id, StmtFor)
	if !ok {
		return nil, false
	}
	return s.Fors.Get(p), true
}

func (s *Stmts) ForIn(id StmtID) (*StmtForInData, bool) {
	p, ok := s.payload(id, StmtForIn)
	if !ok {
		return nil, false
	}
	return s.ForIns.Get(p), true
}

// Loop returns the payload shared by While, DoWhile.
func (s *Stmts) Loop(id StmtID) (*StmtLoopData, bool) {
	p, ok := s.payload(id, StmtWhile, StmtDoWhile)
	if !ok {
		return nil, false
	}
	return s.Loops.Get(p), true
}

// Jump returns the payload shared by Break, Continue.
func (s *Stmts) Jump(id StmtID) (*StmtJumpData, bool) {
	p, ok := s.payload(id, StmtBreak, StmtContinue)
	if !ok {
		return nil, false
	}
	return s.Jumps.Get(p), true
}

func (s *Stmts) Switch(id StmtID) (*StmtSwitchData, bool) {
	p, ok := s.payload(id, StmtSwitch)
	if !ok {
		return nil, false
	}
	return s.Switches.Get(p), true
}

func (s *Stmts) Try(id StmtID) (*StmtTryData, bool) {
	p, ok := s.payload(id, StmtTry)
	if !ok {
		return nil, false
	}
	return s.Tries.Get(p), true
}

func (s *Stmts) Labeled(id StmtID) (*StmtLabeledData, bool) {
	p, ok := s.payload(id, StmtLabeled)
	if !ok {
		return nil, false
	}
	return s.Labels.Get(p), true
}

func (s *Stmts) Export(id StmtID) (*StmtExportData, bool) {
	p, ok := s.payload(id, StmtExport)
	if !ok {
		return nil, false
	}
	return s.Exports.Get(p), true
}
