package service

import (
	"strings"
	"unicode"
)

// prefixMarker turns a tsquery lexeme into a prefix match.
const prefixMarker = ":*"

// searchTokens lower-cases the input and splits it on anything that is not a
// letter or a digit.
func searchTokens(text string) []string {
	return strings.FieldsFunc(strings.ToLower(text), func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsDigit(r)
	})
}

// BuildPrefixQuery converts free text into a postgres tsquery where every
// token is a prefix match and all tokens must match, e.g. "Egg Mil" becomes
// "egg:* & mil:*". It returns "" when the input has no tokens.
func BuildPrefixQuery(text string) string {
	tokens := searchTokens(text)
	for i, tok := range tokens {
		tokens[i] = tok + prefixMarker
	}
	return strings.Join(tokens, " & ")
}

// isBrowseSentinel reports whether the search text means "no search term".
func isBrowseSentinel(text string) bool {
	text = strings.TrimSpace(text)
	return text == "" || text == "%" || strings.EqualFold(text, "all")
}

// isMatchAll reports whether a tag or meal type filter matches everything.
func isMatchAll(tag string) bool {
	return strings.EqualFold(strings.TrimSpace(tag), "all")
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

// escapeLike escapes LIKE wildcards so the input matches literally.
func escapeLike(s string) string {
	return likeEscaper.Replace(s)
}
