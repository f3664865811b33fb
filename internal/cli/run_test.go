package cli

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"github.com/shinji-kodama/typefilter/internal/classify"
	"github.com/shinji-kodama/typefilter/internal/config"
	"github.com/shinji-kodama/typefilter/internal/model"
	"github.com/shinji-kodama/typefilter/internal/output"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

// newTestRunner returns a runner rooted at dir whose diagnostics are
// captured, plus the captured log entries.
func newTestRunner(dir string) (*runner, *observer.ObservedLogs) {
	core, logs := observer.New(zapcore.DebugLevel)
	r := &runner{
		workDir: dir,
		newLogger: func(bool) (*zap.Logger, error) {
			return zap.New(core), nil
		},
	}
	return r, logs
}

// writeFile creates a file under dir with the given content.
func writeFile(t *testing.T, dir, name, content string) {
	t.Helper()
	require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte(content), 0644))
}

// outputLines reads an output file and splits it into values.
func outputLines(t *testing.T, path string) []string {
	t.Helper()
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	if len(data) == 0 {
		return []string{}
	}
	return strings.Split(strings.TrimSuffix(string(data), output.LineEnding), output.LineEnding)
}

// requireExitCode asserts err is a CLIError with the given exit code.
func requireExitCode(t *testing.T, err error, code model.ExitCode) *model.CLIError {
	t.Helper()
	var cliErr *model.CLIError
	require.True(t, errors.As(err, &cliErr), "expected *model.CLIError, got %v", err)
	assert.Equal(t, code, cliErr.Code)
	return cliErr
}

// TestRun_EndToEnd runs the whole pipeline over two files with a prefix
// and short statistics.
func TestRun_EndToEnd(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "in1.txt", "Lorem ipsum dolor sit amet\n45\nПример\n3.1415\n-0.001\n")
	writeFile(t, dir, "in2.txt", "1234567890123456789\n1.528535047E-25\n100500\nНормальная форма числа с плавающей запятой\n")

	r, _ := newTestRunner(dir)
	var stdout bytes.Buffer
	err := r.run(&stdout, []string{"-s", "-p", "sample-", "in1.txt", "in2.txt"})
	require.NoError(t, err)

	assert.Equal(t, []string{"45", "1234567890123456789", "100500"},
		outputLines(t, filepath.Join(dir, "sample-integers.txt")))
	assert.Equal(t, []string{"3.1415", "-0.001", "1.528535047e-25"},
		outputLines(t, filepath.Join(dir, "sample-floats.txt")))
	assert.Equal(t, []string{"Lorem ipsum dolor sit amet", "Пример", "Нормальная форма числа с плавающей запятой"},
		outputLines(t, filepath.Join(dir, "sample-strings.txt")))

	assert.Equal(t, "Statistics\nIntegers, count: 3\nFloats, count: 3\nStrings, count: 3\n", stdout.String())
}

// TestRun_FullStatsLegacyAverage checks the [1, 2, 3] scenario: the
// reported average is last/count = 1, or 2 with -m.
func TestRun_FullStatsLegacyAverage(t *testing.T) {
	tests := []struct {
		name    string
		args    []string
		average string
	}{
		{"legacy average", []string{"-f", "-r", "text", "in.txt"}, "Integers, average: 1\n"},
		{"true mean", []string{"-f", "-m", "-r", "text", "in.txt"}, "Integers, average: 2\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dir := t.TempDir()
			writeFile(t, dir, "in.txt", "1\n2\n3\n")

			r, _ := newTestRunner(dir)
			var stdout bytes.Buffer
			require.NoError(t, r.run(&stdout, tt.args))

			assert.Contains(t, stdout.String(), tt.average)
			assert.Contains(t, stdout.String(), "Integers, min: 1\n")
			assert.Contains(t, stdout.String(), "Integers, max: 3\n")
			assert.NotContains(t, stdout.String(), "count")
		})
	}
}

// TestRun_NoStatsRequested verifies nothing is printed without -s or -f,
// while output files are still written.
func TestRun_NoStatsRequested(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "in.txt", "abc\n")

	r, _ := newTestRunner(dir)
	var stdout bytes.Buffer
	require.NoError(t, r.run(&stdout, []string{"in.txt"}))

	assert.Empty(t, stdout.String())
	assert.Equal(t, []string{"abc"}, outputLines(t, filepath.Join(dir, "strings.txt")))
	assert.Equal(t, []string{}, outputLines(t, filepath.Join(dir, "integers.txt")))
	assert.Equal(t, []string{}, outputLines(t, filepath.Join(dir, "floats.txt")))
}

// TestRun_UsageErrors verifies configuration failures abort with the usage
// exit code before any output file is created.
func TestRun_UsageErrors(t *testing.T) {
	tests := []struct {
		name string
		args []string
	}{
		{"no arguments", nil},
		{"option as last argument", []string{"in.txt", "-s"}},
		{"invalid report format", []string{"-r", "xml", "in.txt"}},
		{"missing config file", []string{"-c", "nope.toml", "in.txt"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dir := t.TempDir()
			r, _ := newTestRunner(dir)

			err := r.run(&bytes.Buffer{}, tt.args)
			requireExitCode(t, err, model.ExitUsageError)

			entries, readErr := os.ReadDir(dir)
			require.NoError(t, readErr)
			assert.Empty(t, entries, "no files may be written on a configuration error")
		})
	}
}

// TestRun_UnreadableInputIsSkipped verifies that a missing input file is
// logged and the rest of the run completes successfully.
func TestRun_UnreadableInputIsSkipped(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "good.txt", "7\n")

	r, logs := newTestRunner(dir)
	var stdout bytes.Buffer
	require.NoError(t, r.run(&stdout, []string{"-s", "-o", dir, "missing.txt", "good.txt"}))

	assert.Equal(t, []string{"7"}, outputLines(t, filepath.Join(dir, "integers.txt")))
	assert.Contains(t, stdout.String(), "Integers, count: 1")

	errLogs := logs.FilterLevelExact(zapcore.ErrorLevel).All()
	require.Len(t, errLogs, 1)
	assert.Equal(t, filepath.Join(dir, "missing.txt"), errLogs[0].ContextMap()["file"])

	skipped := logs.FilterMessage("Some input files could not be read and were skipped").All()
	require.Len(t, skipped, 1)
	assert.Equal(t, zapcore.WarnLevel, skipped[0].Level)
	assert.Equal(t, int64(1), skipped[0].ContextMap()["failed"])
	assert.Equal(t, int64(2), skipped[0].ContextMap()["files"])
}

// TestRun_WriteFailure verifies that failed outputs exit with
// ExitWriteFailed after statistics are printed.
func TestRun_WriteFailure(t *testing.T) {
	inputDir := t.TempDir()
	writeFile(t, inputDir, "in.txt", "1\n2.5\nx\n")
	missingDir := filepath.Join(t.TempDir(), "does-not-exist")

	r, logs := newTestRunner(inputDir)
	var stdout bytes.Buffer
	err := r.run(&stdout, []string{"-s", "-o", missingDir, filepath.Join(inputDir, "in.txt")})

	cliErr := requireExitCode(t, err, model.ExitWriteFailed)
	var writeErr *output.FileWriteError
	assert.True(t, errors.As(cliErr, &writeErr))

	assert.Contains(t, stdout.String(), "Strings, count: 1")
	assert.Equal(t, 3, logs.FilterMessage("Failed to write output file").Len())
}

// TestRun_AppendVersusOverwrite runs the tool twice with and without -a.
func TestRun_AppendVersusOverwrite(t *testing.T) {
	tests := []struct {
		name string
		args func(dir string) []string
		want []string
	}{
		{
			name: "append",
			args: func(dir string) []string { return []string{"-a", "-o", dir, "in.txt"} },
			want: []string{"1", "1"},
		},
		{
			name: "overwrite",
			args: func(string) []string { return []string{"in.txt"} },
			want: []string{"1"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dir := t.TempDir()
			writeFile(t, dir, "in.txt", "1\n")

			r, _ := newTestRunner(dir)
			require.NoError(t, r.run(&bytes.Buffer{}, tt.args(dir)))
			require.NoError(t, r.run(&bytes.Buffer{}, tt.args(dir)))

			assert.Equal(t, tt.want, outputLines(t, filepath.Join(dir, "integers.txt")))
		})
	}
}

// TestRun_ConfigFile verifies defaults loaded from a TOML config file,
// including a disabled category and YAML statistics.
func TestRun_ConfigFile(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "in.txt", "10\n0.5\nword\n")
	writeFile(t, dir, "typefilter.toml", `prefix = "cfg-"
stats = "full"
format = "yaml"

[suffixes]
strings = ""
`)

	r, _ := newTestRunner(dir)
	var stdout bytes.Buffer
	require.NoError(t, r.run(&stdout, []string{"-c", "typefilter.toml", "in.txt"}))

	assert.Equal(t, []string{"10"}, outputLines(t, filepath.Join(dir, "cfg-integers.txt")))
	assert.Equal(t, []string{"0.5"}, outputLines(t, filepath.Join(dir, "cfg-floats.txt")))
	_, err := os.Stat(filepath.Join(dir, "cfg-strings.txt"))
	assert.True(t, os.IsNotExist(err))

	assert.Contains(t, stdout.String(), "mode: full\n")
	assert.Contains(t, stdout.String(), "average: last/count\n")
}

// TestRun_RoundTrip feeds the tool's own output back in and expects the
// same classification.
func TestRun_RoundTrip(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "in.txt", "3\n3.0\n1e5\nabc\n-12\n")

	r, _ := newTestRunner(dir)
	require.NoError(t, r.run(&bytes.Buffer{}, []string{"-p", "first-", "in.txt"}))

	agg := classify.NewAggregator(&config.Settings{BaseDir: dir}, zap.NewNop())
	got, errs := agg.ReadAll([]string{"first-integers.txt", "first-floats.txt", "first-strings.txt"})
	require.Empty(t, errs)

	assert.Equal(t, []int64{3, -12}, got.Integers)
	assert.Equal(t, []float64{3, 1e5}, got.Floats)
	assert.Equal(t, []string{"abc"}, got.Texts)
}
