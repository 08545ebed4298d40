package token

var keywords = map[string]Kind{
	"fn":     KwFn,
	"struct": KwStruct,
	"type":   KwType,
	"pub":    KwPub,
	"extern": KwExtern,
	"let":    KwLet,
	"return": KwReturn,
	"true":   KwTrue,
	"false":  KwFalse,
}

// LookupKeyword returns the keyword kind for the identifier, if any.
// Keywords are case-sensitive: only lowercase forms are recognized.
func LookupKeyword(ident string) (Kind, bool) {
	k, ok := keywords[ident]
	return k, ok
}
