package token

// Kind represents the category of a source token.
type Kind uint8

const (
	EOF Kind = iota
	Ident

	// Literals
	IntLit
	FloatLit
	StringLit

	// Keywords
	KwFn
	KwStruct
	KwType
	KwPub
	KwExtern
	KwLet
	KwReturn
	KwTrue
	KwFalse

	// Punctuation
	LParen
	RParen
	LBrace
	RBrace
	Colon
	Comma
	Semi
	Arrow  // ->
	Assign // =
)

func (k Kind) String() string {
	switch k {
	case EOF:
		return "eof"
	case Ident:
		return "identifier"
	case IntLit:
		return "integer literal"
	case FloatLit:
		return "float literal"
	case StringLit:
		return "string literal"
	case KwFn:
		return "'fn'"
	case KwStruct:
		return "'struct'"
	case KwType:
		return "'type'"
	case KwPub:
		return "'pub'"
	case KwExtern:
		return "'extern'"
	case KwLet:
		return "'let'"
	case KwReturn:
		return "'return'"
	case KwTrue:
		return "'true'"
	case KwFalse:
		return "'false'"
	case LParen:
		return "'('"
	case RParen:
		return "')'"
	case LBrace:
		return "'{'"
	case RBrace:
		return "'}'"
	case Colon:
		return "':'"
	case Comma:
		return "','"
	case Semi:
		return "';'"
	case Arrow:
		return "'->'"
	case Assign:
		return "'='"
	default:
		return "unknown"
	}
}

// IsItemStart reports whether the kind can begin a top-level item. The
// parser uses it as a recovery anchor.
func (k Kind) IsItemStart() bool {
	switch k {
	case KwFn, KwStruct, KwType, KwPub, KwExtern:
		return true
	default:
		return false
	}
}
