package token

// Kind represents the category of a source token.
type Kind uint8

const (
	// Invalid indicates an erroneous token.
	Invalid Kind = iota
	// EOF marks the end of the source input.
	EOF

	// Ident represents an identifier token (including contextual keywords).
	Ident
	// PrivateName represents a class private name such as #field.
	PrivateName

	// Литералы

	NumberLit
	BigIntLit
	StringLit
	RegExpLit
	// TemplateFull is a template without substitutions: `text`.
	TemplateFull
	// TemplateHead is the opening chunk: `text${
	TemplateHead
	// TemplateMiddle is a chunk between substitutions: }text${
	TemplateMiddle
	// TemplateTail is the closing chunk: }text`
	TemplateTail

	// Ключевые слова

	KwVar
	KwLet
	KwConst
	KwFunction
	KwReturn
	KwIf
	KwElse
	KwFor
	KwWhile
	KwDo
	KwBreak
	KwContinue
	KwThrow
	KwTry
	KwCatch
	KwFinally
	KwNew
	KwDelete
	KwTypeof
	KwVoid
	KwInstanceof
	KwIn
	KwClass
	KwExtends
	KwSuper
	KwThis
	KwNull
	KwTrue
	KwFalse
	KwSwitch
	KwCase
	KwDefault
	KwImport
	KwExport
	KwAwait
	KwYield
	KwDebugger
	KwWith

	// Пунктуация

	LParen    // (
	RParen    // )
	LBrace    // {
	RBrace    // }
	LBracket  // [
	RBracket  // ]
	Semicolon // ;
	Comma     // ,
	Dot       // .
	DotDotDot // ...
	Colon     // :
	Question  // ?
	// QuestionDot is the optional chaining token ?.
	QuestionDot
	Arrow // =>

	// Операторы

	Plus       // +
	Minus      // -
	Star       // *
	StarStar   // **
	Slash      // /
	Percent    // %
	PlusPlus   // ++
	MinusMinus // --
	Lt         // <
	Gt         // >
	LtEq       // <=
	GtEq       // >=
	EqEq       // ==
	BangEq     // !=
	EqEqEq     // ===
	BangEqEq   // !==
	Shl        // <<
	Shr        // >>
	UShr       // >>>
	Amp        // &
	Pipe       // |
	Caret      // ^
	Bang       // !
	Tilde      // ~
	AndAnd     // &&
	OrOr       // ||
	// QuestionQuestion is the nullish coalescing operator ??.
	QuestionQuestion

	// Присваивание

	Assign                 // =
	PlusAssign             // +=
	MinusAssign            // -=
	StarAssign             // *=
	StarStarAssign         // **=
	SlashAssign            // /=
	PercentAssign          // %=
	ShlAssign              // <<=
	ShrAssign              // >>=
	UShrAssign             // >>>=
	AmpAssign              // &=
	PipeAssign             // |=
	CaretAssign            // ^=
	AndAndAssign           // &&=
	OrOrAssign             // ||=
	QuestionQuestionAssign // ??=

	kindCount
)

var kindNames = [...]string{
	Invalid:        "Invalid",
	EOF:            "EOF",
	Ident:          "Ident",
	PrivateName:    "PrivateName",
	NumberLit:      "NumberLit",
	BigIntLit:      "BigIntLit",
	StringLit:      "StringLit",
	RegExpLit:      "RegExpLit",
	TemplateFull:   "TemplateFull",
	TemplateHead:   "TemplateHead",
	TemplateMiddle: "TemplateMiddle",
	TemplateTail:   "TemplateTail",
}

// String returns a stable name for k: keyword and punctuation kinds render
// as their source spelling.
func (k Kind) String() string {
	if int(k) < len(kindNames) && kindNames[k] != "" {
		return kindNames[k]
	}
	if s, ok := spelling[k]; ok {
		return s
	}
	return "Kind(?)"
}

// IsKeyword reports whether k is a reserved word.
func (k Kind) IsKeyword() bool {
	return k >= KwVar && k <= KwWith
}

// IsAssign reports whether k is '=' or a compound assignment.
func (k Kind) IsAssign() bool {
	return k >= Assign && k <= QuestionQuestionAssign
}

// IsTemplate reports whether k is one of the template chunk kinds.
func (k Kind) IsTemplate() bool {
	return k >= TemplateFull && k <= TemplateTail
}
