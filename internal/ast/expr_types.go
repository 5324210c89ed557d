package ast

import (
	"errcode/internal/source"
)

type ExprIdentData struct {
	Name source.StringID
}

// ExprLiteralData хранит значение литерала: для строк, готовое (cooked)
// значение, для остальных, исходный текст.
type ExprLiteralData struct {
	Kind  ExprLitKind
	Value source.StringID
}

// ExprMetaData is new.target or import.meta.
type ExprMetaData struct {
	Meta     source.StringID
	Property source.StringID
}

type TemplateQuasi struct {
	Span source.Span
	// Raw is the chunk text exactly as written, escapes untouched.
	Raw source.StringID
	// Cooked is the chunk value; NoStringID with HasCooked=false when the
	// chunk carries an escape only tagged templates accept.
	Cooked    source.StringID
	HasCooked bool
}

// ExprTemplateData: len(Quasis) == len(Exprs)+1.
type ExprTemplateData struct {
	Tag    ExprID
	Quasis []TemplateQuasi
	Exprs  []ExprID
}

// ExprArrayData: NoExprID marks a hole.
type ExprArrayData struct {
	Elems []ExprID
}

type PropKind uint8

const (
	// PropInit is key: value.
	PropInit PropKind = iota
	// PropShorthand is {key}; Value is the same ident as Key.
	PropShorthand
	// PropSpread is {...value}; Key is NoExprID.
	PropSpread
	PropMethod
	PropGetter
	PropSetter
)

type ObjectProp struct {
	Kind     PropKind
	Span     source.Span
	Key      ExprID
	Computed bool
	Value    ExprID
}

type ExprObjectData struct {
	Props []ObjectProp
}

type ExprFunctionData struct {
	Name      ExprID
	Params    []ExprID
	Body      StmtID // block body
	ExprBody  ExprID // concise arrow body
	Async     bool
	Generator bool
	Arrow     bool
}

type ClassMemberKind uint8

const (
	ClassMethod ClassMemberKind = iota
	ClassGetter
	ClassSetter
	ClassField
	// ClassStaticBlock is static { ... }; Body holds the block.
	ClassStaticBlock
)

type ClassMember struct {
	Kind     ClassMemberKind
	Span     source.Span
	Static   bool
	Key      ExprID
	Computed bool
	// Value is the method function or the field initializer (may be NoExprID).
	Value ExprID
	Body  StmtID
}

type ExprClassData struct {
	Name    ExprID
	Super   ExprID
	Members []ClassMember
}

type ExprUnaryData struct {
	Op      ExprUnaryOp
	Operand ExprID
}

type ExprBinaryData struct {
	Op    ExprBinaryOp
	Left  ExprID
	Right ExprID
}

type ExprAssignData struct {
	Op     ExprAssignOp
	Target ExprID
	Value  ExprID
}

type ExprConditionalData struct {
	Cond ExprID
	Then ExprID
	Else ExprID
}

type ExprCallData struct {
	Callee   ExprID
	Args     []ExprID
	Optional bool // callee?.()
}

// ExprNewData: HasArgs is false for `new Foo` without parentheses.
type ExprNewData struct {
	Callee  ExprID
	Args    []ExprID
	HasArgs bool
}

// ExprMemberData: for a.b Property is an ExprIdent with the name, for
// a[b] the computed expression, for a.#b an ExprPrivateName.
type ExprMemberData struct {
	Object   ExprID
	Property ExprID
	Computed bool
	Optional bool // a?.b, a?.[b]
}

type ExprGroupData struct {
	Inner ExprID
}

type ExprSequenceData struct {
	Exprs []ExprID
}

type ExprSpreadData struct {
	Value ExprID
}

type ExprAwaitData struct {
	Value ExprID
}

type ExprYieldData struct {
	Value    ExprID
	Delegate bool
}
