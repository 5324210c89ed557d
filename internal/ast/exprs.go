package ast

import (
	"fmt"

	"errcode/internal/source"
)

// Exprs manages allocation of expressions.
type Exprs struct {
	Arena        *Arena[Expr]
	Idents       *Arena[ExprIdentData]
	Literals     *Arena[ExprLiteralData]
	Metas        *Arena[ExprMetaData]
	Templates    *Arena[ExprTemplateData]
	Arrays       *Arena[ExprArrayData]
	Objects      *Arena[ExprObjectData]
	Functions    *Arena[ExprFunctionData]
	Classes      *Arena[ExprClassData]
	Unaries      *Arena[ExprUnaryData]
	Binaries     *Arena[ExprBinaryData]
	Assigns      *Arena[ExprAssignData]
	Conditionals *Arena[ExprConditionalData]
	Calls        *Arena[ExprCallData]
	News         *Arena[ExprNewData]
	Members      *Arena[ExprMemberData]
	Groups       *Arena[ExprGroupData]
	Sequences    *Arena[ExprSequenceData]
	Spreads      *Arena[ExprSpreadData]
	Awaits       *Arena[ExprAwaitData]
	Yields       *Arena[ExprYieldData]
}

// NewExprs creates a new Exprs with per-kind arenas preallocated using capHint as the initial capacity.
func NewExprs(capHint uint) *Exprs {
	if capHint == 0 {
		capHint = 1 << 8
	}
	// payload-арены заметно меньше основной
	small := capHint/4 + 1
	return &Exprs{
		Arena:        NewArena[Expr](capHint),
		Idents:       NewArena[ExprIdentData](capHint),
		Literals:     NewArena[ExprLiteralData](capHint),
		Metas:        NewArena[ExprMetaData](small),
		Templates:    NewArena[ExprTemplateData](small),
		Arrays:       NewArena[ExprArrayData](small),
		Objects:      NewArena[ExprObjectData](small),
		Functions:    NewArena[ExprFunctionData](small),
		Classes:      NewArena[ExprClassData](small),
		Unaries:      NewArena[ExprUnaryData](small),
		Binaries:     NewArena[ExprBinaryData](small),
		Assigns:      NewArena[ExprAssignData](small),
		Conditionals: NewArena[ExprConditionalData](small),
		Calls:        NewArena[ExprCallData](capHint),
		News:         NewArena[ExprNewData](small),
		Members:      NewArena[ExprMemberData](capHint),
		Groups:       NewArena[ExprGroupData](small),
		Sequences:    NewArena[ExprSequenceData](small),
		Spreads:      NewArena[ExprSpreadData](small),
		Awaits:       NewArena[ExprAwaitData](small),
		Yields:       NewArena[ExprYieldData](small),
	}
}

func (e *Exprs) new(kind ExprKind, span source.Span, payload PayloadID) ExprID {
	return ExprID(e.Arena.Allocate(Expr{
		Kind:    kind,
		Span:    span,
		Payload: payload,
	}))
}

// Get returns the expression with the given ID.
func (e *Exprs) Get(id ExprID) *Expr {
	return e.Arena.Get(uint32(id))
}

func (e *Exprs) payload(id ExprID, kind ExprKind) (uint32, bool) {
	expr := e.Get(id)
	if expr == nil || expr.Kind != kind {
		return 0, false
	}
	return uint32(expr.Payload), true
}

// NewInvalid creates a placeholder for an operand that failed to parse.
func (e *Exprs) NewInvalid(span source.Span) ExprID {
	return e.new(ExprInvalid, span, NoPayloadID)
}

func (e *Exprs) NewThis(span source.Span) ExprID {
	return e.new(ExprThis, span, NoPayloadID)
}

func (e *Exprs) NewSuper(span source.Span) ExprID {
	return e.new(ExprSuper, span, NoPayloadID)
}

func (e *Exprs) NewImport(span source.Span) ExprID {
	return e.new(ExprImport, span, NoPayloadID)
}

// NewIdent creates a new identifier expression.
func (e *Exprs) NewIdent(span source.Span, name source.StringID) ExprID {
	payload := e.Idents.Allocate(ExprIdentData{Name: name})
	return e.new(ExprIdent, span, PayloadID(payload))
}

// Ident returns the ident data for the given expression ID.
func (e *Exprs) Ident(id ExprID) (*ExprIdentData, bool) {
	p, ok := e.payload(id, ExprIdent)
	if !ok {
		return nil, false
	}
	return e.Idents.Get(p), true
}

func (e *Exprs) NewPrivateName(span source.Span, name source.StringID) ExprID {
	payload := e.Idents.Allocate(ExprIdentData{Name: name})
	return e.new(ExprPrivateName, span, PayloadID(payload))
}

func (e *Exprs) PrivateName(id ExprID) (*ExprIdentData, bool) {
	p, ok := e.payload(id, ExprPrivateName)
	if !ok {
		return nil, false
	}
	return e.Idents.Get(p), true
}

// NewLiteral creates a new literal expression.
func (e *Exprs) NewLiteral(span source.Span, kind ExprLitKind, value source.StringID) ExprID {
	payload := e.Literals.Allocate(ExprLiteralData{Kind: kind, Value: value})
	return e.new(ExprLit, span, PayloadID(payload))
}

// Literal returns the literal data for the given expression ID.
func (e *Exprs) Literal(id ExprID) (*ExprLiteralData, bool) {
	p, ok := e.payload(id, ExprLit)
	if !ok {
		return nil, false
	}
	return e.Literals.Get(p), true
}

func (e *Exprs) NewMeta(span source.Span, meta, property source.StringID) ExprID {
	payload := e.Metas.Allocate(ExprMetaData{Meta: meta, Property: property})
	return e.new(ExprMeta, span, PayloadID(payload))
}

func (e *Exprs) Meta(id ExprID) (*ExprMetaData, bool) {
	p, ok := e.payload(id, ExprMeta)
	if !ok {
		return nil, false
	}
	return e.Metas.Get(p), true
}

// NewTemplate creates a template literal; tag is NoExprID for untagged ones.
func (e *Exprs) NewTemplate(span source.Span, tag ExprID, quasis []TemplateQuasi, exprs []ExprID) ExprID {
	payload := e.Templates.Allocate(ExprTemplateData{Tag: tag, Quasis: quasis, Exprs: exprs})
	return e.new(ExprTemplate, span, PayloadID(payload))
}

// Template returns the template data for the given expression ID.
func (e *Exprs) Template(id ExprID) (*ExprTemplateData, bool) {
	p, ok := e.payload(id, ExprTemplate)
	if !ok {
		return nil, false
	}
	return e.Templates.Get(p), true
}

func (e *Exprs) NewArray(span source.Span, elems []ExprID) ExprID {
	payload := e.Arrays.Allocate(ExprArrayData{Elems: elems})
	return e.new(ExprArray, span, PayloadID(payload))
}

func (e *Exprs) Array(id ExprID) (*ExprArrayData, bool) {
	p, ok := e.payload(id, ExprArray)
	if !ok {
		return nil, false
	}
	return e.Arrays.Get(p), true
}

func (e *Exprs) NewObject(span source.Span, props []ObjectProp) ExprID {
	payload := e.Objects.Allocate(ExprObjectData{Props: props})
	return e.new(ExprObject, span, PayloadID(payload))
}

func (e *Exprs) Object(id ExprID) (*ExprObjectData, bool) {
	p, ok := e.payload(id, ExprObject)
	if !ok {
		return nil, false
	}
	return e.Objects.Get(p), true
}

func (e *Exprs) NewFunction(span source.Span, data ExprFunctionData) ExprID {
	payload := e.Functions.Allocate(data)
	return e.new(ExprFunction, span, PayloadID(payload))
}

func (e *Exprs) Function(id ExprID) (*ExprFunctionData, bool) {
	p, ok := e.payload(id, ExprFunction)
	if !ok {
		return nil, false
	}
	return e.Functions.Get(p), true
}

func (e *Exprs) NewClass(span source.Span, data ExprClassData) ExprID {
	payload := e.Classes.Allocate(data)
	return e.new(ExprClass, span, PayloadID(payload))
}

func (e *Exprs) Class(id ExprID) (*ExprClassData, bool) {
	p, ok := e.payload(id, ExprClass)
	if !ok {
		return nil, false
	}
	return e.Classes.Get(p), true
}

func (e *Exprs) NewUnary(span source.Span, op ExprUnaryOp, operand ExprID) ExprID {
	payload := e.Unaries.Allocate(ExprUnaryData{Op: op, Operand: operand})
	return e.new(ExprUnary, span, PayloadID(payload))
}

func (e *Exprs) Unary(id ExprID) (*ExprUnaryData, bool) {
	p, ok := e.payload(id, ExprUnary)
	if !ok {
		return nil, false
	}
	return e.Unaries.Get(p), true
}

// NewBinary creates a new binary expression.
func (e *Exprs) NewBinary(span source.Span, op ExprBinaryOp, left, right ExprID) ExprID {
	payload := e.Binaries.Allocate(ExprBinaryData{Op: op, Left: left, Right: right})
	return e.new(ExprBinary, span, PayloadID(payload))
}

func (e *Exprs) Binary(id ExprID) (*ExprBinaryData, bool) {
	p, ok := e.payload(id, ExprBinary)
	if !ok {
		return nil, false
	}
	return e.Binaries.Get(p), true
}

func (e *Exprs) NewAssign(span source.Span, op ExprAssignOp, target, value ExprID) ExprID {
	payload := e.Assigns.Allocate(ExprAssignData{Op: op, Target: target, Value: value})
	return e.new(ExprAssign, span, PayloadID(payload))
}

func (e *Exprs) Assign(id ExprID) (*ExprAssignData, bool) {
	p, ok := e.payload(id, ExprAssign)
	if !ok {
		return nil, false
	}
	return e.Assigns.Get(p), true
}

func (e *Exprs) NewConditional(span source.Span, cond, then, els ExprID) ExprID {
	payload := e.Conditionals.Allocate(ExprConditionalData{Cond: cond, Then: then, Else: els})
	return e.new(ExprConditional, span, PayloadID(payload))
}

func (e *Exprs) Conditional(id ExprID) (*ExprConditionalData, bool) {
	p, ok := e.payload(id, ExprConditional)
	if !ok {
		return nil, false
	}
	return e.Conditionals.Get(p), true
}

// NewCall creates a new call expression.
func (e *Exprs) NewCall(span source.Span, callee ExprID, args []ExprID, optional bool) ExprID {
	payload := e.Calls.Allocate(ExprCallData{Callee: callee, Args: args, Optional: optional})
	return e.new(ExprCall, span, PayloadID(payload))
}

// Call returns the call data for the given expression ID.
func (e *Exprs) Call(id ExprID) (*ExprCallData, bool) {
	p, ok := e.payload(id, ExprCall)
	if !ok {
		return nil, false
	}
	return e.Calls.Get(p), true
}

// NewNew creates a `new callee(args)` expression.
func (e *Exprs) NewNew(span source.Span, callee ExprID, args []ExprID, hasArgs bool) ExprID {
	payload := e.News.Allocate(ExprNewData{Callee: callee, Args: args, HasArgs: hasArgs})
	return e.new(ExprNew, span, PayloadID(payload))
}

// New returns the new data for the given expression ID.
func (e *Exprs) New(id ExprID) (*ExprNewData, bool) {
	p, ok := e.payload(id, ExprNew)
	if !ok {
		return nil, false
	}
	return e.News.Get(p), true
}

func (e *Exprs) NewMember(span source.Span, object, property ExprID, computed, optional bool) ExprID {
	payload := e.Members.Allocate(ExprMemberData{Object: object, Property: property, Computed: computed, Optional: optional})
	return e.new(ExprMember, span, PayloadID(payload))
}

func (e *Exprs) Member(id ExprID) (*ExprMemberData, bool) {
	p, ok := e.payload(id, ExprMember)
	if !ok {
		return nil, false
	}
	return e.Members.Get(p), true
}

func (e *Exprs) NewGroup(span source.Span, inner ExprID) ExprID {
	payload := e.Groups.Allocate(ExprGroupData{Inner: inner})
	return e.new(ExprGroup, span, PayloadID(payload))
}

func (e *Exprs) Group(id ExprID) (*ExprGroupData, bool) {
	p, ok := e.payload(id, ExprGroup)
	if !ok {
		return nil, false
	}
	return e.Groups.Get(p), true
}

func (e *Exprs) NewSequence(span source.Span, exprs []ExprID) ExprID {
	payload := e.Sequences.Allocate(ExprSequenceData{Exprs: exprs})
	return e.new(ExprSequence, span, PayloadID(payload))
}

func (e *Exprs) Sequence(id ExprID) (*ExprSequenceData, bool) {
	p, ok := e.payload(id, ExprSequence)
	if !ok {
		return nil, false
	}
	return e.Sequences.Get(p), true
}

func (e *Exprs) NewSpread(span source.Span, value ExprID) ExprID {
	payload := e.Spreads.Allocate(ExprSpreadData{Value: value})
	return e.new(ExprSpread, span, PayloadID(payload))
}

func (e *Exprs) Spread(id ExprID) (*ExprSpreadData, bool) {
	p, ok := e.payload(id, ExprSpread)
	if !ok {
		return nil, false
	}
	return e.Spreads.Get(p), true
}

func (e *Exprs) NewAwait(span source.Span, value ExprID) ExprID {
	payload := e.Awaits.Allocate(ExprAwaitData{Value: value})
	return e.new(ExprAwait, span, PayloadID(payload))
}

func (e *Exprs) Await(id ExprID) (*ExprAwaitData, bool) {
	p, ok := e.payload(id, ExprAwait)
	if !ok {
		return nil, false
	}
	return e.Awaits.Get(p), true
}

func (e *Exprs) NewYield(span source.Span, value ExprID, delegate bool) ExprID {
	payload := e.Yields.Allocate(ExprYieldData{Value: value, Delegate: delegate})
	return e.new(ExprYield, span, PayloadID(payload))
}

func (e *Exprs) Yield(id ExprID) (*ExprYieldData, bool) {
	p, ok := e.payload(id, ExprYield)
	if !ok {
		return nil, false
	}
	return e.Yields.Get(p), true
}

// Move copies the header of id into a fresh slot and returns the new id.
// The payload is shared, so the moved node and the original slot describe
// the same subtree until the original slot is overwritten with Set.
func (e *Exprs) Move(id ExprID) ExprID {
	expr := e.Get(id)
	if expr == nil {
		panic(fmt.Sprintf("ast: move of unknown expr %d", id))
	}
	return ExprID(e.Arena.Allocate(*expr))
}

// Set overwrites the header stored at id. Parents that refer to id observe
// the new node, which is how rewrites replace a node in place.
func (e *Exprs) Set(id ExprID, expr Expr) {
	slot := e.Get(id)
	if slot == nil {
		panic(fmt.Sprintf("ast: set of unknown expr %d", id))
	}
	*slot = expr
}

// MarkSynthetic flags id as created by a rewrite.
func (e *Exprs) MarkSynthetic(id ExprID) {
	if expr := e.Get(id); expr != nil {
		expr.Flags |= ExprSynthetic
	}
}
