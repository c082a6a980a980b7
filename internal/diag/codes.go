package diag

import (
	"fmt"
)

// Code identifies the rule a diagnostic reports on.
type Code uint16

const (
	UnknownCode Code = 0

	// Lexical
	LexInfo                     Code = 1000
	LexUnknownChar              Code = 1001
	LexUnterminatedString       Code = 1002
	LexUnterminatedBlockComment Code = 1003
	LexBadNumber                Code = 1004
	LexUnterminatedChar         Code = 1005

	// Syntax and statement structure
	SynInfo                  Code = 2000
	SynUnexpectedToken       Code = 2001
	SynExpectSemicolon       Code = 2002
	SynExpectIdentifier      Code = 2003
	SynExpectExpression      Code = 2004
	SynUnexpectedTopLevel    Code = 2005
	SynInvalidStmt           Code = 2006
	SynRedefinition          Code = 2007
	SynExprWithoutSideEffect Code = 2008
	SynUnclosedBrace         Code = 2009

	// I/O
	IOLoadFailed Code = 4001

	// Project / manifest
	ProjManifestInvalid    Code = 5001
	ProjCompilerConstraint Code = 5002
	ProjNoInputFiles       Code = 5003

	// Observability
	ObsInfo    Code = 6000
	ObsTimings Code = 6001
)

var codeDescription = map[Code]string{
	UnknownCode:                 "Unknown error",
	LexInfo:                     "Lexical information",
	LexUnknownChar:              "Unknown character",
	LexUnterminatedString:       "Unterminated string",
	LexUnterminatedBlockComment: "Unterminated block comment",
	LexBadNumber:                "Bad number",
	LexUnterminatedChar:         "Unterminated character constant",
	SynInfo:                     "Syntax information",
	SynUnexpectedToken:          "Unexpected token",
	SynExpectSemicolon:          "Expect semicolon",
	SynExpectIdentifier:         "Expect identifier",
	SynExpectExpression:         "Expect expression",
	SynUnexpectedTopLevel:       "Unexpected top level",
	SynInvalidStmt:              "Statement outside its enclosing construct",
	SynRedefinition:             "Redefinition",
	SynExprWithoutSideEffect:    "Expression without side effect",
	SynUnclosedBrace:            "Unclosed brace",
	IOLoadFailed:                "Failed to load source file",
	ProjManifestInvalid:         "Invalid project manifest",
	ProjCompilerConstraint:      "Compiler version does not satisfy manifest",
	ProjNoInputFiles:            "No input files",
	ObsInfo:                     "Observability information",
	ObsTimings:                  "Pipeline timings",
}

// ID returns the stable textual id, e.g. SYN2006.
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
	case ic >= 6000 && ic < 7000:
		return fmt.Sprintf("OBS%04d", ic)
	}
	return "E0000"
}

func (c Code) Title() string {
	desc, ok := codeDescription[c]
	if !ok {
		return codeDescription[UnknownCode]
	}
	return desc
}

func (c Code) String() string {
	return fmt.Sprintf("[%s]: %s", c.ID(), c.Title())
}
