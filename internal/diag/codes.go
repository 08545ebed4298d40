package diag

import (
	"fmt"
)

// Code is a compact numeric diagnostic identifier. The code space is
// partitioned per phase so renderers can group findings without parsing
// messages.
type Code uint16

const (
	UnknownCode Code = 0

	// Lexical (1000-1999)
	LexUnknownChar        Code = 1001
	LexUnterminatedString Code = 1002
	LexBadNumber          Code = 1003

	// Syntax (2000-2999)
	ParseUnexpectedToken Code = 2001
	ParseExpectedItem    Code = 2002
	ParseExpectedName    Code = 2003
	ParseExpectedType    Code = 2004
	ParseExpectedToken   Code = 2005
	ParseBadField        Code = 2006

	// Semantic (3000-3999)
	SemaDuplicateName      Code = 3001
	SemaUnresolvedType     Code = 3002
	SemaInvalidAliasTarget Code = 3003
	SemaUnresolvedName     Code = 3004
	SemaNotCallable        Code = 3005
	SemaArgCountMismatch   Code = 3006
	SemaTypeMismatch       Code = 3007
	SemaUnreachableCode    Code = 3008

	// Driver / IO (4000-4999)
	IOReadFailed  Code = 4001
	IOCacheFailed Code = 4002
)

var codeDescription = map[Code]string{
	UnknownCode: "unknown error",

	LexUnknownChar:        "unknown character",
	LexUnterminatedString: "unterminated string literal",
	LexBadNumber:          "malformed numeric literal",

	ParseUnexpectedToken: "unexpected token",
	ParseExpectedItem:    "expected a top-level item",
	ParseExpectedName:    "expected a name",
	ParseExpectedType:    "expected a type",
	ParseExpectedToken:   "expected token",
	ParseBadField:        "malformed struct field",

	SemaDuplicateName:      "the name is already defined in this module",
	SemaUnresolvedType:     "cannot resolve type",
	SemaInvalidAliasTarget: "type alias target is not a type",
	SemaUnresolvedName:     "cannot resolve name",
	SemaNotCallable:        "expression is not callable",
	SemaArgCountMismatch:   "wrong number of arguments",
	SemaTypeMismatch:       "mismatched types",
	SemaUnreachableCode:    "unreachable code",

	IOReadFailed:  "failed to read source file",
	IOCacheFailed: "failed to access the diagnostics cache",
}

func (c Code) ID() string {
	switch ic := int(c); {
	case ic >= 1000 && ic < 2000:
		return fmt.Sprintf("LEX%04d", ic)
	case ic >= 2000 && ic < 3000:
		return fmt.Sprintf("SYN%04d", ic)
	case ic >= 3000 && ic < 4000:
		return fmt.Sprintf("SEM%04d", ic)
	case ic >= 4000 && ic < 5000:
		return fmt.Sprintf("IO%04d", ic)
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
