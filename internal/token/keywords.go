package token

var keywords = map[string]Kind{
	"struct":        KwStruct,
	"union":         KwUnion,
	"enum":          KwEnum,
	"typedef":       KwTypedef,
	"const":         KwConst,
	"volatile":      KwVolatile,
	"signed":        KwSigned,
	"unsigned":      KwUnsigned,
	"__attribute__": KwAttribute,
}

// LookupKeyword возвращает тип и bool если это ключевое слово.
func LookupKeyword(ident string) (Kind, bool) {
	k, ok := keywords[ident]
	return k, ok
}
