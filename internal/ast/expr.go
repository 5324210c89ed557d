package ast

import (
	"errcode/internal/source"
)

// ExprKind enumerates the different kinds of expressions.
type ExprKind uint8

const (
	// ExprInvalid is produced by error recovery; it stands for a broken operand.
	ExprInvalid ExprKind = iota
	// ExprIdent represents an identifier expression.
	ExprIdent
	// ExprPrivateName represents #name in `#name in obj`.
	ExprPrivateName
	// ExprLit represents a literal expression.
	ExprLit
	ExprThis
	ExprSuper
	// ExprImport is the `import` callee of a dynamic import call.
	ExprImport
	// ExprMeta represents new.target and import.meta.
	ExprMeta
	// ExprTemplate represents a template literal, tagged or not.
	ExprTemplate
	ExprArray
	ExprObject
	// ExprFunction covers function expressions, declarations' bodies, methods and arrows.
	ExprFunction
	ExprClass
	ExprUnary
	ExprBinary
	// ExprAssign represents `=` and every compound assignment.
	ExprAssign
	ExprConditional
	ExprCall
	ExprNew
	ExprMember
	// ExprGroup represents a parenthesized expression.
	ExprGroup
	ExprSequence
	ExprSpread
	ExprAwait
	ExprYield
)

var exprKindNames = [...]string{
	ExprInvalid:     "Invalid",
	ExprIdent:       "Ident",
	ExprPrivateName: "PrivateName",
	ExprLit:         "Lit",
	ExprThis:        "This",
	ExprSuper:       "Super",
	ExprImport:      "Import",
	ExprMeta:        "Meta",
	ExprTemplate:    "Template",
	ExprArray:       "Array",
	ExprObject:      "Object",
	ExprFunction:    "Function",
	ExprClass:       "Class",
	ExprUnary:       "Unary",
	ExprBinary:      "Binary",
	ExprAssign:      "Assign",
	ExprConditional: "Conditional",
	ExprCall:        "Call",
	ExprNew:         "New",
	ExprMember:      "Member",
	ExprGroup:       "Group",
	ExprSequence:    "Sequence",
	ExprSpread:      "Spread",
	ExprAwait:       "Await",
	ExprYield:       "Yield",
}

func (k ExprKind) String() string {
	if int(k) < len(exprKindNames) {
		return exprKindNames[k]
	}
	return "Expr(?)"
}

// ExprFlags carries per-node bits that are not part of the payload.
type ExprFlags uint8

const (
	// ExprSynthetic marks nodes created by a rewrite. They have no source text
	// of their own and are rendered by the printer. A synthetic node that
	// replaced a parsed one keeps the replaced node's span.
	ExprSynthetic ExprFlags = 1 << iota
)

// Expr represents an expression node in the AST.
type Expr struct {
	Kind    ExprKind
	Flags   ExprFlags
	Span    source.Span
	Payload PayloadID
}

func (e *Expr) Synthetic() bool { return e.Flags&ExprSynthetic != 0 }

// ExprBinaryOp enumerates binary operator kinds.
type ExprBinaryOp uint8

const (
	// Арифметические

	// ExprBinaryAdd represents the addition operator (+).
	ExprBinaryAdd ExprBinaryOp = iota
	ExprBinarySub
	ExprBinaryMul
	ExprBinaryDiv
	ExprBinaryMod
	// ExprBinaryExp represents the exponent operator (**).
	ExprBinaryExp

	// Битовые

	ExprBinaryBitAnd
	ExprBinaryBitOr
	ExprBinaryBitXor
	ExprBinaryShiftLeft
	ExprBinaryShiftRight
	// ExprBinaryShiftRightUnsigned represents >>>.
	ExprBinaryShiftRightUnsigned

	// Логические

	ExprBinaryLogicalAnd
	ExprBinaryLogicalOr
	// ExprBinaryNullCoalescing represents the null coalescing operator (??).
	ExprBinaryNullCoalescing

	// Сравнения

	ExprBinaryEq
	ExprBinaryNotEq
	ExprBinaryStrictEq
	ExprBinaryStrictNotEq
	ExprBinaryLess
	ExprBinaryLessEq
	ExprBinaryGreater
	ExprBinaryGreaterEq
	ExprBinaryIn
	ExprBinaryInstanceof
)

var binaryOpNames = [...]string{
	ExprBinaryAdd:                "+",
	ExprBinarySub:                "-",
	ExprBinaryMul:                "*",
	ExprBinaryDiv:                "/",
	ExprBinaryMod:                "%",
	ExprBinaryExp:                "**",
	ExprBinaryBitAnd:             "&",
	ExprBinaryBitOr:              "|",
	ExprBinaryBitXor:             "^",
	ExprBinaryShiftLeft:          "<<",
	ExprBinaryShiftRight:         ">>",
	ExprBinaryShiftRightUnsigned: ">>>",
	ExprBinaryLogicalAnd:         "&&",
	ExprBinaryLogicalOr:          "||",
	ExprBinaryNullCoalescing:     "??",
	ExprBinaryEq:                 "==",
	ExprBinaryNotEq:              "!=",
	ExprBinaryStrictEq:           "===",
	ExprBinaryStrictNotEq:        "!==",
	ExprBinaryLess:               "<",
	ExprBinaryLessEq:             "<=",
	ExprBinaryGreater:            ">",
	ExprBinaryGreaterEq:          ">=",
	ExprBinaryIn:                 "in",
	ExprBinaryInstanceof:         "instanceof",
}

// String returns the symbol representation of a binary operator.
func (op ExprBinaryOp) String() string {
	if int(op) < len(binaryOpNames) {
		return binaryOpNames[op]
	}
	return "?"
}

// ExprUnaryOp enumerates unary and update operator kinds.
type ExprUnaryOp uint8

const (
	ExprUnaryPlus ExprUnaryOp = iota
	ExprUnaryMinus
	ExprUnaryNot
	ExprUnaryBitNot
	ExprUnaryTypeof
	ExprUnaryVoid
	ExprUnaryDelete
	ExprUnaryPreInc
	ExprUnaryPreDec
	ExprUnaryPostInc
	ExprUnaryPostDec
)

func (op ExprUnaryOp) String() string {
	switch op {
	case ExprUnaryPlus:
		return "+"
	case ExprUnaryMinus:
		return "-"
	case ExprUnaryNot:
		return "!"
	case ExprUnaryBitNot:
		return "~"
	case ExprUnaryTypeof:
		return "typeof"
	case ExprUnaryVoid:
		return "void"
	case ExprUnaryDelete:
		return "delete"
	case ExprUnaryPreInc, ExprUnaryPostInc:
		return "++"
	case ExprUnaryPreDec, ExprUnaryPostDec:
		return "--"
	default:
		return "?"
	}
}

// Postfix reports whether the operator follows its operand.
func (op ExprUnaryOp) Postfix() bool {
	return op == ExprUnaryPostInc || op == ExprUnaryPostDec
}

// ExprAssignOp keeps the operator spelling: "=", "+=", "??=" ...
type ExprAssignOp string

// ExprLitKind enumerates literal kinds.
type ExprLitKind uint8

const (
	ExprLitString ExprLitKind = iota
	ExprLitNumber
	ExprLitBigInt
	ExprLitRegExp
	ExprLitTrue
	ExprLitFalse
	ExprLitNull
)

func (k ExprLitKind) String() string {
	switch k {
	case ExprLitString:
		return "string"
	case ExprLitNumber:
		return "number"
	case ExprLitBigInt:
		return "bigint"
	case ExprLitRegExp:
		return "regexp"
	case ExprLitTrue:
		return "true"
	case ExprLitFalse:
		return "false"
	case ExprLitNull:
		return "null"
	default:
		return "?"
	}
}
