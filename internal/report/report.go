// Package report evaluates scanned function records against a line
// threshold and an allowlist, and formats the resulting violations.
package report

import (
	"fmt"
	"io"
	"sort"

	"github.com/harrison/fngate/internal/scanner"
)

// DefaultThreshold is the line limit applied when none is configured.
const DefaultThreshold = 100

// Allowlist is a set of "path:function" keys permanently exempted from the
// threshold check. Entries referencing functions that no longer exist, or
// that are no longer over the threshold, are tolerated without warning.
type Allowlist map[string]struct{}

// NewAllowlist builds an Allowlist from its entry strings.
func NewAllowlist(entries []string) Allowlist {
	al := make(Allowlist, len(entries))
	for _, e := range entries {
		al[e] = struct{}{}
	}
	return al
}

// Contains reports whether key is exempted.
func (al Allowlist) Contains(key string) bool {
	_, ok := al[key]
	return ok
}

// Violation is a function record over the threshold and not allowlisted.
type Violation struct {
	scanner.FunctionRecord
	Threshold int
}

// Report is the outcome of evaluating one scan.
type Report struct {
	Violations []Violation
	Threshold  int
}

// Passed reports whether the gate should let the build through.
func (r Report) Passed() bool {
	return len(r.Violations) == 0
}

// Evaluate filters records down to reportable violations. A record is a
// candidate iff its length exceeds threshold; a candidate is suppressed
// iff its key is in the allowlist. Violations are sorted by path, then by
// start line, so output is deterministic regardless of scan order.
func Evaluate(records []scanner.FunctionRecord, threshold int, allowlist Allowlist) Report {
	rep := Report{Threshold: threshold}
	for _, rec := range records {
		if rec.Length <= threshold {
			continue
		}
		if allowlist.Contains(rec.Key()) {
			continue
		}
		rep.Violations = append(rep.Violations, Violation{FunctionRecord: rec, Threshold: threshold})
	}

	sort.Slice(rep.Violations, func(i, j int) bool {
		if rep.Violations[i].Path != rep.Violations[j].Path {
			return rep.Violations[i].Path < rep.Violations[j].Path
		}
		return rep.Violations[i].StartLine < rep.Violations[j].StartLine
	})

	return rep
}

// String formats a violation in the fixed diagnostic form consumed by CI.
func (v Violation) String() string {
	return fmt.Sprintf("ERROR: %s:%s (line %d) has %d lines (>%d)",
		v.Path, v.Name, v.StartLine, v.Length, v.Threshold)
}

// Write prints every violation to w, followed by the guidance lines when
// at least one violation was printed. A passing report writes nothing.
func Write(w io.Writer, rep Report, colorize bool) error {
	if rep.Passed() {
		return nil
	}

	for _, v := range rep.Violations {
		line := v.String()
		if colorize {
			line = errorPrefixColor.Sprint("ERROR:") + line[len("ERROR:"):]
		}
		if _, err := fmt.Fprintln(w, line); err != nil {
			return err
		}
	}

	fmt.Fprintf(w, "Functions must stay within %d lines; split the bodies above into smaller helpers.\n", rep.Threshold)
	fmt.Fprintf(w, "Intentional exceptions can be recorded in the allowlist as 'path:function' entries.\n")
	return nil
}
