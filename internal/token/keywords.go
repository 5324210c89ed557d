package token

var keywords = map[string]Kind{
	"var":        KwVar,
	"let":        KwLet,
	"const":      KwConst,
	"function":   KwFunction,
	"return":     KwReturn,
	"if":         KwIf,
	"else":       KwElse,
	"for":        KwFor,
	"while":      KwWhile,
	"do":         KwDo,
	"break":      KwBreak,
	"continue":   KwContinue,
	"throw":      KwThrow,
	"try":        KwTry,
	"catch":      KwCatch,
	"finally":    KwFinally,
	"new":        KwNew,
	"delete":     KwDelete,
	"typeof":     KwTypeof,
	"void":       KwVoid,
	"instanceof": KwInstanceof,
	"in":         KwIn,
	"class":      KwClass,
	"extends":    KwExtends,
	"super":      KwSuper,
	"this":       KwThis,
	"null":       KwNull,
	"true":       KwTrue,
	"false":      KwFalse,
	"switch":     KwSwitch,
	"case":       KwCase,
	"default":    KwDefault,
	"import":     KwImport,
	"export":     KwExport,
	"await":      KwAwait,
	"yield":      KwYield,
	"debugger":   KwDebugger,
	"with":       KwWith,
}

// spelling maps keyword and punctuation kinds back to source text.
var spelling = func() map[Kind]string {
	m := map[Kind]string{
		LParen: "(", RParen: ")", LBrace: "{", RBrace: "}", LBracket: "[", RBracket: "]",
		Semicolon: ";", Comma: ",", Dot: ".", DotDotDot: "...", Colon: ":", Question: "?",
		QuestionDot: "?.", Arrow: "=>",
		Plus: "+", Minus: "-", Star: "*", StarStar: "**", Slash: "/", Percent: "%",
		PlusPlus: "++", MinusMinus: "--", Lt: "<", Gt: ">", LtEq: "<=", GtEq: ">=",
		EqEq: "==", BangEq: "!=", EqEqEq: "===", BangEqEq: "!==",
		Shl: "<<", Shr: ">>", UShr: ">>>", Amp: "&", Pipe: "|", Caret: "^",
		Bang: "!", Tilde: "~", AndAnd: "&&", OrOr: "||", QuestionQuestion: "??",
		Assign: "=", PlusAssign: "+=", MinusAssign: "-=", StarAssign: "*=", StarStarAssign: "**=",
		SlashAssign: "/=", PercentAssign: "%=", ShlAssign: "<<=", ShrAssign: ">>=", UShrAssign: ">>>=",
		AmpAssign: "&=", PipeAssign: "|=", CaretAssign: "^=", AndAndAssign: "&&=", OrOrAssign: "||=",
		QuestionQuestionAssign: "??=",
	}
	for word, k := range keywords {
		m[k] = word
	}
	return m
}()

// punctByText is the reverse of spelling for punctuation, longest match is
// done by the lexer.
var punctByText = func() map[string]Kind {
	m := make(map[string]Kind, len(spelling))
	for k, s := range spelling {
		if !k.IsKeyword() {
			m[s] = k
		}
	}
	return m
}()

// LookupKeyword возвращает тип и bool если это зарезервированное слово.
func LookupKeyword(ident string) (Kind, bool) {
	k, ok := keywords[ident]
	return k, ok
}

// LookupPunct возвращает тип пунктуации для точного текста.
func LookupPunct(text string) (Kind, bool) {
	k, ok := punctByText[text]
	return k, ok
}
