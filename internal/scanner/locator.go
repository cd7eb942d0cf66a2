package scanner

// Signature matching is a deterministic line-prefix scan, not a grammar.
// A line begins a function definition when, after optional leading
// whitespace, it carries an optional run of modifiers in one fixed order -
// "pub", then "async", then "unsafe", each followed by whitespace - and
// then "fn", whitespace, and an identifier.
//
// Modifiers out of that order ("unsafe async fn") and scoped visibility
// ("pub(crate) fn") are deliberately not recognized. That is the contract,
// not an oversight: the gate favors a predictable matcher over grammar
// coverage.

// signatureModifiers is the fixed recognition order.
var signatureModifiers = []string{"pub", "async", "unsafe"}

// MatchSignature reports whether line begins a function definition and, if
// so, returns the function's bare identifier name. No structural validation
// beyond the prefix pattern is performed.
func MatchSignature(line string) (string, bool) {
	pos := skipSpaces(line, 0)

	for _, mod := range signatureModifiers {
		if next, ok := consumeWord(line, pos, mod); ok {
			pos = next
		}
	}

	pos, ok := consumeWord(line, pos, "fn")
	if !ok {
		return "", false
	}

	name := readIdentifier(line, pos)
	if name == "" {
		return "", false
	}
	return name, true
}

// skipSpaces advances past spaces and tabs starting at pos.
func skipSpaces(line string, pos int) int {
	for pos < len(line) && (line[pos] == ' ' || line[pos] == '\t') {
		pos++
	}
	return pos
}

// consumeWord matches word at pos followed by at least one whitespace
// character, returning the position after that whitespace. A word
// immediately followed by anything else (an identifier character, a '(' as
// in "pub(crate)") does not match.
func consumeWord(line string, pos int, word string) (int, bool) {
	end := pos + len(word)
	if end >= len(line) || line[pos:end] != word {
		return pos, false
	}
	if line[end] != ' ' && line[end] != '\t' {
		return pos, false
	}
	return skipSpaces(line, end), true
}

// readIdentifier reads an identifier ([A-Za-z_][A-Za-z0-9_]*) at pos.
// Returns "" when pos does not start an identifier.
func readIdentifier(line string, pos int) string {
	start := pos
	for pos < len(line) && isIdentChar(line[pos], pos == start) {
		pos++
	}
	return line[start:pos]
}

// isIdentChar reports whether c may appear in an identifier. Digits are
// excluded at the first position.
func isIdentChar(c byte, first bool) bool {
	switch {
	case c >= 'a' && c <= 'z', c >= 'A' && c <= 'Z', c == '_':
		return true
	case c >= '0' && c <= '9':
		return !first
	default:
		return false
	}
}
