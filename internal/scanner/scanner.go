// Package scanner locates function definitions in source files and
// measures their physical line extent using a literal-aware brace-depth
// scan.
package scanner

import (
	"fmt"
	"os"
	"strings"
)

// ScanLines scans a file's line sequence and returns a record for every
// function definition found, in source order. relPath is carried through
// unchanged into the records.
func ScanLines(relPath string, lines []string) []FunctionRecord {
	var records []FunctionRecord
	for i, line := range lines {
		name, ok := MatchSignature(line)
		if !ok {
			continue
		}
		records = append(records, FunctionRecord{
			Path:      relPath,
			Name:      name,
			StartLine: i + 1,
			Length:    MeasureExtent(lines, i),
		})
	}
	return records
}

// ScanFile reads the file at absPath and scans it. The file is read in
// full and released before returning; a read failure is fatal to the scan.
func ScanFile(relPath, absPath string) ([]FunctionRecord, error) {
	data, err := os.ReadFile(absPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", absPath, err)
	}
	return ScanLines(relPath, SplitLines(string(data))), nil
}

// SplitLines splits file content into lines, tolerating CRLF endings and
// dropping the empty trailer after a final newline.
func SplitLines(content string) []string {
	content = strings.ReplaceAll(content, "\r\n", "\n")
	lines := strings.Split(content, "\n")
	if n := len(lines); n > 0 && lines[n-1] == "" {
		lines = lines[:n-1]
	}
	return lines
}
