package scanner

import "testing"

// TestMatchSignature verifies the fixed-order modifier matching contract.
func TestMatchSignature(t *testing.T) {
	tests := []struct {
		name     string
		line     string
		wantName string
		wantOK   bool
	}{
		{"plain fn", "fn parse() {", "parse", true},
		{"indented fn", "    fn parse(input: &str) -> Result<(), Error> {", "parse", true},
		{"tab indented", "\tfn handle() {", "handle", true},
		{"pub fn", "pub fn parse() {", "parse", true},
		{"pub async fn", "pub async fn fetch() {", "fetch", true},
		{"pub async unsafe fn", "pub async unsafe fn poke() {", "poke", true},
		{"async fn", "async fn fetch() {", "fetch", true},
		{"unsafe fn", "unsafe fn poke() {", "poke", true},
		{"async unsafe fn", "async unsafe fn poke() {", "poke", true},
		{"underscore name", "fn _internal() {", "_internal", true},
		{"digits in name", "fn sha256_digest() {", "sha256_digest", true},
		{"extra spacing", "pub  async   fn   fetch() {", "fetch", true},

		// Unsupported orderings and forms are not recognized. The matcher
		// requires pub, then async, then unsafe; anything else falls through.
		{"unsafe before async", "unsafe async fn poke() {", "", false},
		{"async before pub", "async pub fn fetch() {", "", false},
		{"scoped visibility", "pub(crate) fn parse() {", "", false},
		{"const fn", "const fn tiny() {", "", false},

		{"fn with no name", "fn () {", "", false},
		{"fn glued to name gap", "fn", "", false},
		{"prefix of identifier", "fnord()", "", false},
		{"call not definition", "parse(fn_ptr)", "", false},
		{"digit-leading name", "fn 9lives() {", "", false},
		{"empty line", "", "", false},
		{"comment-ish line", "// fn parse() {", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			name, ok := MatchSignature(tt.line)
			if ok != tt.wantOK {
				t.Fatalf("MatchSignature(%q) ok = %v, want %v", tt.line, ok, tt.wantOK)
			}
			if name != tt.wantName {
				t.Errorf("MatchSignature(%q) name = %q, want %q", tt.line, name, tt.wantName)
			}
		})
	}
}
