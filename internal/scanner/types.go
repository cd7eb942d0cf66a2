package scanner

// FunctionRecord describes one function definition found in a source file.
type FunctionRecord struct {
	// Path is the file's path relative to the scanned root, slash-separated.
	Path string

	// Name is the bare identifier from the signature line.
	Name string

	// StartLine is the 1-based line number of the signature.
	StartLine int

	// Length is the physical line extent, counted inclusively from the
	// signature line through the line where brace depth returns to zero.
	// Always >= 1.
	Length int
}

// Key returns the "path:name" form used for allowlist lookups.
func (r FunctionRecord) Key() string {
	return r.Path + ":" + r.Name
}

// literalState tracks the per-line lexical scan state. At most one of
// inDouble/inChar is set at a time; escapePending is cleared after
// consuming exactly one following character.
type literalState struct {
	inDouble      bool
	inChar        bool
	escapePending bool
}
