package parser

import (
	"errcode/internal/ast"
	"errcode/internal/token"
)

// Таблица приоритетов для бинарных операторов
// Чем больше число, тем выше приоритет
const (
	precNullish        = 1  // ??
	precLogicalOr      = 2  // ||
	precLogicalAnd     = 3  // &&
	precBitwiseOr      = 4  // |
	precBitwiseXor     = 5  // ^
	precBitwiseAnd     = 6  // &
	precEquality       = 7  // == != === !==
	precRelational     = 8  // < <= > >= in instanceof
	precShift          = 9  // << >> >>>
	precAdditive       = 10 // + -
	precMultiplicative = 11 // * / %
	precExponent       = 12 // **
)

// getBinaryOperatorPrec возвращает приоритет и ассоциативность оператора
// Возвращает (приоритет, правоассоциативный)
func (p *Parser) getBinaryOperatorPrec(kind token.Kind) (int, bool) {
	switch kind {
	case token.QuestionQuestion:
		return precNullish, false
	case token.OrOr:
		return precLogicalOr, false
	case token.AndAnd:
		return precLogicalAnd, false
	case token.Pipe:
		return precBitwiseOr, false
	case token.Caret:
		return precBitwiseXor, false
	case token.Amp:
		return precBitwiseAnd, false
	case token.EqEq, token.BangEq, token.EqEqEq, token.BangEqEq:
		return precEquality, false
	case token.Lt, token.LtEq, token.Gt, token.GtEq, token.KwInstanceof:
		return precRelational, false
	case token.KwIn:
		if p.noIn {
			return -1, false
		}
		return precRelational, false
	case token.Shl, token.Shr, token.UShr:
		return precShift, false
	case token.Plus, token.Minus:
		return precAdditive, false
	case token.Star, token.Slash, token.Percent:
		return precMultiplicative, false
	case token.StarStar:
		return precExponent, true
	default:
		return -1, false // не бинарный оператор
	}
}

var binaryOps = map[token.Kind]ast.ExprBinaryOp{
	token.Plus:             ast.ExprBinaryAdd,
	token.Minus:            ast.ExprBinarySub,
	token.Star:             ast.ExprBinaryMul,
	token.Slash:            ast.ExprBinaryDiv,
	token.Percent:          ast.ExprBinaryMod,
	token.StarStar:         ast.ExprBinaryExp,
	token.Amp:              ast.ExprBinaryBitAnd,
	token.Pipe:             ast.ExprBinaryBitOr,
	token.Caret:            ast.ExprBinaryBitXor,
	token.Shl:              ast.ExprBinaryShiftLeft,
	token.Shr:              ast.ExprBinaryShiftRight,
	token.UShr:             ast.ExprBinaryShiftRightUnsigned,
	token.AndAnd:           ast.ExprBinaryLogicalAnd,
	token.OrOr:             ast.ExprBinaryLogicalOr,
	token.QuestionQuestion: ast.ExprBinaryNullCoalescing,
	token.EqEq:             ast.ExprBinaryEq,
	token.BangEq:           ast.ExprBinaryNotEq,
	token.EqEqEq:           ast.ExprBinaryStrictEq,
	token.BangEqEq:         ast.ExprBinaryStrictNotEq,
	token.Lt:               ast.ExprBinaryLess,
	token.LtEq:             ast.ExprBinaryLessEq,
	token.Gt:               ast.ExprBinaryGreater,
	token.GtEq:             ast.ExprBinaryGreaterEq,
	token.KwIn:             ast.ExprBinaryIn,
	token.KwInstanceof:     ast.ExprBinaryInstanceof,
}

// tokenKindToBinaryOp преобразует токен в тип бинарного оператора
func (p *Parser) tokenKindToBinaryOp(kind token.Kind) ast.ExprBinaryOp {
	return binaryOps[kind]
}

// getUnaryOperator: префиксные операторы
func (p *Parser) getUnaryOperator(kind token.Kind) (ast.ExprUnaryOp, bool) {
	switch kind {
	case token.Plus:
		return ast.ExprUnaryPlus, true
	case token.Minus:
		return ast.ExprUnaryMinus, true
	case token.Bang:
		return ast.ExprUnaryNot, true
	case token.Tilde:
		return ast.ExprUnaryBitNot, true
	case token.KwTypeof:
		return ast.ExprUnaryTypeof, true
	case token.KwVoid:
		return ast.ExprUnaryVoid, true
	case token.KwDelete:
		return ast.ExprUnaryDelete, true
	case token.PlusPlus:
		return ast.ExprUnaryPreInc, true
	case token.MinusMinus:
		return ast.ExprUnaryPreDec, true
	default:
		return 0, false
	}
}
