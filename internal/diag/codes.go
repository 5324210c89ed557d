package diag

import (
	"fmt"
)

type Code uint16

const (
	UnknownCode Code = 0

	// Лексические
	LexInfo                     Code = 1000
	LexUnknownChar              Code = 1001
	LexUnterminatedString       Code = 1002
	LexUnterminatedBlockComment Code = 1003
	LexBadNumber                Code = 1004
	LexUnterminatedTemplate     Code = 1005
	LexUnterminatedRegExp       Code = 1006
	LexBadEscape                Code = 1007

	// Синтаксические
	SynInfo               Code = 2000
	SynUnexpectedToken    Code = 2001
	SynExpectSemicolon    Code = 2002
	SynExpectIdentifier   Code = 2003
	SynExpectExpression   Code = 2004
	SynUnclosedParen      Code = 2005
	SynUnclosedBrace      Code = 2006
	SynUnclosedBracket    Code = 2007
	SynExpectColon        Code = 2008
	SynBadAssignTarget    Code = 2009
	SynUnexpectedEOF      Code = 2010
	SynUnsupportedSyntax  Code = 2011
	SynBadTemplate        Code = 2012
	SynCatchOrFinally     Code = 2013
	SynForBadHeader       Code = 2014
	SynRestrictedNewline  Code = 2015
	SynBadClassMember     Code = 2016
	SynDuplicateDefault   Code = 2017
	SynExpectFunctionBody Code = 2018
	SynTooManyErrors      Code = 2099

	// Ввод-вывод
	IOLoadFileError  Code = 4001
	IOWriteFileError Code = 4002

	// Проект
	ProjInfo            Code = 5000
	ProjManifestInvalid Code = 5001
	ProjNoSources       Code = 5002
)

var codeTitles = map[Code]string{
	UnknownCode:                 "Unknown error",
	LexInfo:                     "Lexical information",
	LexUnknownChar:              "Unknown character",
	LexUnterminatedString:       "Unterminated string literal",
	LexUnterminatedBlockComment: "Unterminated block comment",
	LexBadNumber:                "Invalid numeric literal",
	LexUnterminatedTemplate:     "Unterminated template literal",
	LexUnterminatedRegExp:       "Unterminated regular expression",
	LexBadEscape:                "Invalid escape sequence",
	SynInfo:                     "Syntax information",
	SynUnexpectedToken:          "Unexpected token",
	SynExpectSemicolon:          "Missing semicolon",
	SynExpectIdentifier:         "Expected identifier",
	SynExpectExpression:         "Expected expression",
	SynUnclosedParen:            "Unclosed parenthesis",
	SynUnclosedBrace:            "Unclosed brace",
	SynUnclosedBracket:          "Unclosed bracket",
	SynExpectColon:              "Expected colon",
	SynBadAssignTarget:          "Invalid assignment target",
	SynUnexpectedEOF:            "Unexpected end of file",
	SynUnsupportedSyntax:        "Unsupported syntax",
	SynBadTemplate:              "Malformed template literal",
	SynCatchOrFinally:           "Missing catch or finally",
	SynForBadHeader:             "Invalid for statement header",
	SynRestrictedNewline:        "Line break not allowed here",
	SynBadClassMember:           "Invalid class member",
	SynDuplicateDefault:         "Duplicate default clause",
	SynExpectFunctionBody:       "Expected function body",
	SynTooManyErrors:            "Too many errors",
	IOLoadFileError:             "Failed to load file",
	IOWriteFileError:            "Failed to write file",
	ProjInfo:                    "Project information",
	ProjManifestInvalid:         "Invalid manifest",
	ProjNoSources:               "No source files",
}

// ID returns the stable textual identifier, for example SYN2001.
func (c Code) ID() string {
	switch ic := int(c); {
	case ic >= 1000 && ic < 2000:
		return fmt.Sprintf("LEX%04d", ic)
	case ic >= 2000 && ic < 3000:
		return fmt.Sprintf("SYN%04d", ic)
	case ic >= 4000 && ic < 5000:
		return fmt.Sprintf("IO%04d", ic)
	case ic >= 5000 && ic < 6000:
		return fmt.Sprintf("PRJ%04d", ic)
	}
	return "E0000"
}

func (c Code) Title() string {
	if t, ok := codeTitles[c]; ok {
		return t
	}
	return codeTitles[UnknownCode]
}

func (c Code) String() string {
	return fmt.Sprintf("[%s]: %s", c.ID(), c.Title())
}
