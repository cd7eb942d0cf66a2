package scanner

// Extent measurement is a brace-depth count that ignores braces inside
// string and character literals. Literals are assumed not to span lines,
// so the literal state resets at the start of every line. Comments are not
// understood; a brace inside a comment still counts. That approximation is
// accepted: the scanner is a gate, not a parser.

// lineBraces counts the structural opening and closing braces on one line,
// i.e. braces encountered while the scan is not inside a double-quoted or
// character literal. Escape handling applies inside both literal kinds.
func lineBraces(line string) (opens, closes int) {
	var st literalState
	for i := 0; i < len(line); i++ {
		c := line[i]
		switch {
		case st.escapePending:
			st.escapePending = false
		case c == '\\':
			st.escapePending = true
		case st.inDouble:
			if c == '"' {
				st.inDouble = false
			}
		case st.inChar:
			if c == '\'' {
				st.inChar = false
			}
		case c == '"':
			st.inDouble = true
		case c == '\'':
			st.inChar = true
		case c == '{':
			opens++
		case c == '}':
			closes++
		}
	}
	return opens, closes
}

// MeasureExtent returns the number of lines a function spans, from the
// signature at startIdx (0-based) through the line where brace depth
// returns to zero after the body's opening brace has been seen.
//
// A signature whose body never closes before end of file (or never opens
// at all) measures to the last line of the file: a silent false positive.
// The scanner never fails on malformed input.
func MeasureExtent(lines []string, startIdx int) int {
	depth := 0
	opened := false

	for i := startIdx; i < len(lines); i++ {
		opens, closes := lineBraces(lines[i])
		if opens > 0 {
			opened = true
		}
		depth += opens - closes
		if opened && depth <= 0 {
			return i - startIdx + 1
		}
	}
	return len(lines) - startIdx
}
