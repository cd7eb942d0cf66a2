package scanner

import (
	"fmt"
	"testing"
)

// syntheticFunction builds a signature line plus bodyLines lines, the last
// of which closes the body.
func syntheticFunction(bodyLines int) []string {
	lines := []string{"fn synthetic() {"}
	for i := 0; i < bodyLines-1; i++ {
		lines = append(lines, fmt.Sprintf("    work_%d();", i))
	}
	lines = append(lines, "}")
	return lines
}

// TestMeasureExtentSyntheticLengths checks that a body of L lines measures
// to exactly L+1 (signature plus body).
func TestMeasureExtentSyntheticLengths(t *testing.T) {
	for _, bodyLines := range []int{1, 2, 10, 99, 100, 105} {
		lines := syntheticFunction(bodyLines)
		got := MeasureExtent(lines, 0)
		want := bodyLines + 1
		if got != want {
			t.Errorf("body of %d lines: MeasureExtent = %d, want %d", bodyLines, got, want)
		}
	}
}

// TestMeasureExtentLiteralBraces verifies that braces inside string and
// character literals are not counted as structural.
func TestMeasureExtentLiteralBraces(t *testing.T) {
	tests := []struct {
		name  string
		lines []string
		want  int
	}{
		{
			name: "open brace in string",
			lines: []string{
				`fn emit() {`,
				`    print("{");`,
				`}`,
			},
			want: 3,
		},
		{
			name: "close brace in string",
			lines: []string{
				`fn emit() {`,
				`    print("}");`,
				`}`,
			},
			want: 3,
		},
		{
			name: "brace in char literal",
			lines: []string{
				`fn emit() {`,
				`    let c = '{';`,
				`    let d = '}';`,
				`}`,
			},
			want: 4,
		},
		{
			name: "escaped quote keeps literal open",
			lines: []string{
				`fn emit() {`,
				`    print("\"{");`,
				`}`,
			},
			want: 3,
		},
		{
			name: "quote character literal",
			lines: []string{
				`fn emit() {`,
				`    let q = '\'';`,
				`    let open = '{';`,
				`}`,
			},
			want: 4,
		},
		{
			name: "structural brace after literal closes",
			lines: []string{
				`fn emit() {`,
				`    if check("{") {`,
				`        act();`,
				`    }`,
				`}`,
			},
			want: 5,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := MeasureExtent(tt.lines, 0); got != tt.want {
				t.Errorf("MeasureExtent = %d, want %d", got, tt.want)
			}
		})
	}
}

// TestMeasureExtentDegraded covers the accepted false-positive paths:
// bodies that never open or never close measure to end of file instead of
// failing.
func TestMeasureExtentDegraded(t *testing.T) {
	t.Run("signature without body runs to EOF", func(t *testing.T) {
		lines := []string{
			"fn declared();",
			"const X: i32 = 1;",
			"const Y: i32 = 2;",
		}
		if got := MeasureExtent(lines, 0); got != 3 {
			t.Errorf("MeasureExtent = %d, want 3", got)
		}
	})

	t.Run("unclosed body runs to EOF", func(t *testing.T) {
		lines := []string{
			"fn broken() {",
			"    work();",
		}
		if got := MeasureExtent(lines, 0); got != 2 {
			t.Errorf("MeasureExtent = %d, want 2", got)
		}
	})

	t.Run("signature on last line", func(t *testing.T) {
		lines := []string{
			"const X: i32 = 1;",
			"fn trailing()",
		}
		if got := MeasureExtent(lines, 1); got != 1 {
			t.Errorf("MeasureExtent = %d, want 1", got)
		}
	})

	t.Run("single line function", func(t *testing.T) {
		lines := []string{"fn short() { a(); }"}
		if got := MeasureExtent(lines, 0); got != 1 {
			t.Errorf("MeasureExtent = %d, want 1", got)
		}
	})
}

// TestLineBraces exercises the per-line literal scan directly.
func TestLineBraces(t *testing.T) {
	tests := []struct {
		line       string
		wantOpens  int
		wantCloses int
	}{
		{`{`, 1, 0},
		{`}`, 0, 1},
		{`{}{}`, 2, 2},
		{`"{"`, 0, 0},
		{`"}"`, 0, 0},
		{`'{'`, 0, 0},
		{`"\"" {`, 1, 0},
		{`let s = "a{b}c"; {`, 1, 0},
		{`no braces here`, 0, 0},
		{`"unterminated {`, 0, 0},
	}

	for _, tt := range tests {
		opens, closes := lineBraces(tt.line)
		if opens != tt.wantOpens || closes != tt.wantCloses {
			t.Errorf("lineBraces(%q) = (%d, %d), want (%d, %d)",
				tt.line, opens, closes, tt.wantOpens, tt.wantCloses)
		}
	}
}
