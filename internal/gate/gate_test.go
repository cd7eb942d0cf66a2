package gate

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// writeSource writes a source file, creating parent directories.
func writeSource(t *testing.T, path, content string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
}

// longFunction renders a function whose body has bodyLines lines.
func longFunction(name string, bodyLines int) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "fn %s() {\n", name)
	for i := 0; i < bodyLines-1; i++ {
		fmt.Fprintf(&sb, "    step_%d();\n", i)
	}
	sb.WriteString("}\n")
	return sb.String()
}

// TestRunEndToEnd covers the full scenario: a short function passes, a
// 105-line-body function violates at the default threshold with the exact
// message format.
func TestRunEndToEnd(t *testing.T) {
	root := t.TempDir()
	writeSource(t, filepath.Join(root, "src", "short.rs"),
		"fn short() {\n    a();\n}\n")
	writeSource(t, filepath.Join(root, "src", "long.rs"),
		longFunction("sprawl", 105))

	rep, stats, err := Run(context.Background(), Options{
		Roots:     []string{root},
		Extension: ".rs",
		Threshold: 100,
	})
	require.NoError(t, err)

	assert.Equal(t, 2, stats.FilesScanned)
	assert.Equal(t, 2, stats.FunctionsFound)

	require.Len(t, rep.Violations, 1)
	assert.False(t, rep.Passed())
	assert.Equal(t,
		"ERROR: src/long.rs:sprawl (line 1) has 106 lines (>100)",
		rep.Violations[0].String())
}

// TestRunAllowlistSuppression verifies suppression end to end.
func TestRunAllowlistSuppression(t *testing.T) {
	root := t.TempDir()
	writeSource(t, filepath.Join(root, "big.rs"), longFunction("huge", 150))

	rep, _, err := Run(context.Background(), Options{
		Roots:     []string{root},
		Extension: ".rs",
		Threshold: 100,
		Allowlist: []string{"big.rs:huge"},
	})
	require.NoError(t, err)
	assert.True(t, rep.Passed())
	assert.Empty(t, rep.Violations)
}

// TestRunParallelMatchesSequential verifies that the worker pool produces
// the same sorted output as a sequential run.
func TestRunParallelMatchesSequential(t *testing.T) {
	root := t.TempDir()
	for i := 0; i < 12; i++ {
		writeSource(t, filepath.Join(root, fmt.Sprintf("file_%02d.rs", i)),
			longFunction(fmt.Sprintf("fn_%02d", i), 110))
	}

	seq, _, err := Run(context.Background(), Options{
		Roots: []string{root}, Extension: ".rs", Threshold: 100, Workers: 1,
	})
	require.NoError(t, err)

	par, _, err := Run(context.Background(), Options{
		Roots: []string{root}, Extension: ".rs", Threshold: 100, Workers: 8,
	})
	require.NoError(t, err)

	require.Equal(t, len(seq.Violations), len(par.Violations))
	for i := range seq.Violations {
		assert.Equal(t, seq.Violations[i], par.Violations[i])
	}
}

// TestRunMissingRoot verifies the fatal-root contract.
func TestRunMissingRoot(t *testing.T) {
	_, _, err := Run(context.Background(), Options{
		Roots:     []string{filepath.Join(t.TempDir(), "absent")},
		Extension: ".rs",
		Threshold: 100,
	})
	assert.Error(t, err)
}

// TestRunThresholdBoundary verifies 100 lines passes and 101 fails at the
// default threshold.
func TestRunThresholdBoundary(t *testing.T) {
	root := t.TempDir()
	writeSource(t, filepath.Join(root, "edge.rs"),
		longFunction("at_limit", 99)+longFunction("over_limit", 100))

	rep, _, err := Run(context.Background(), Options{
		Roots:     []string{root},
		Extension: ".rs",
		Threshold: 100,
	})
	require.NoError(t, err)

	require.Len(t, rep.Violations, 1)
	assert.Equal(t, "over_limit", rep.Violations[0].Name)
	assert.Equal(t, 101, rep.Violations[0].Length)
}
