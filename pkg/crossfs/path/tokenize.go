package path

// NoSep marks a token that was not terminated by a separator.
const NoSep byte = 0

// Token is one segment of a tokenized path: the component text and the
// separator character that terminated it, or NoSep.
type Token struct {
	Text string
	Sep  byte
}

// String returns the token text followed by its separator, if any.
func (t Token) String() string {
	if t.Sep == NoSep {
		return t.Text
	}
	return t.Text + string(t.Sep)
}

// Tokenize calls fn once per segment of p, left to right. The first call
// always carries the drive prefix (empty for relative paths) with NoSep.
// Every following call carries one component and the separator that ended
// it. Runs of separators are collapsed, so no component is ever empty.
//
//	"/usr/bin/"            -> ("/", 0) ("usr", '/') ("bin", '/')
//	"C:\Windows\/System32" -> ("C:\", 0) ("Windows", '\') ("System32", 0)
func Tokenize(p string, fn func(Token)) {
	i := DriveLen(p)
	fn(Token{Text: p[:i]})

	for i < len(p) {
		for i < len(p) && IsSep(p[i]) {
			i++
		}
		if i == len(p) {
			return
		}

		j := i
		for j < len(p) && !IsSep(p[j]) {
			j++
		}

		t := Token{Text: p[i:j]}
		if j < len(p) {
			t.Sep = p[j]
		}
		fn(t)
		i = j
	}
}

// Tokens returns the segments Tokenize would emit, drive first.
func Tokens(p string) []Token {
	var tokens []Token
	Tokenize(p, func(t Token) {
		tokens = append(tokens, t)
	})
	return tokens
}

// Components returns the component names of p without the drive prefix.
func Components(p string) []string {
	tokens := Tokens(p)[1:]
	names := make([]string, len(tokens))
	for i, t := range tokens {
		names[i] = t.Text
	}
	return names
}
