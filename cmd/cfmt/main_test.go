package main

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"code.gopub.tech/cfmt"
)

func clearEnv(t *testing.T) {
	t.Helper()
	for _, k := range []string{"CFMT_CONFIG", "CFMT_LOG_LEVEL", "CFMT_LOG_FORMAT", "CFMT_OUTPUT", "CFMT_CAPPED"} {
		t.Setenv(k, "")
	}
}

func runCLI(t *testing.T, args ...string) (stdout, stderr string, err error) {
	t.Helper()
	clearEnv(t)
	var out, log bytes.Buffer
	err = run(args, &out, &log)
	return out.String(), log.String(), err
}

func TestRunPrint(t *testing.T) {
	out, _, err := runCLI(t, "print", `%d-%s|%#x|%.2f|%c\n`, "12", "ab", "255", "1.5", "z")
	require.NoError(t, err)
	assert.Equal(t, "12-ab|0xff|1.50|z\n", out)
}

func TestRunPrintStarAndCount(t *testing.T) {
	out, log, err := runCLI(t, "-log-level", "info", "print", `%*d%n|`, "-4", "7")
	require.NoError(t, err)
	assert.Equal(t, "7   |", out)
	assert.Contains(t, log, "count stored")
}

func TestRunPrintCapped(t *testing.T) {
	out, log, err := runCLI(t, "-capped", "6", "print", "%s", "hello world")
	require.NoError(t, err)
	assert.Equal(t, "hello", out)
	assert.Contains(t, log, "output truncated")
}

func TestRunPrintStops(t *testing.T) {
	out, _, err := runCLI(t, "print", "a=%d b=%d", "1")
	assert.Equal(t, "a=1 b=", out)
	assert.ErrorIs(t, err, cfmt.ErrArgsExhausted)

	_, _, err = runCLI(t, "print", "%d", "twelve")
	assert.ErrorContains(t, err, "not an integer")

	_, _, err = runCLI(t, "print", "%y")
	assert.ErrorIs(t, err, cfmt.ErrMalformed)
}

func TestRunScan(t *testing.T) {
	out, _, err := runCLI(t, "scan", "14:05", "%d:%02d")
	require.NoError(t, err)
	assert.Equal(t, "matched 2\n0: 14\n1: 5\n", out)

	out, _, err = runCLI(t, "scan", "key=0x1f rest", "%[^=]=%i %*s%n")
	require.NoError(t, err)
	assert.Equal(t, "matched 1\n0: key\n1: 31\n2: 13\n", out)

	out, log, err := runCLI(t, "-log-level", "info", "scan", "1+2", "%d-%d")
	require.NoError(t, err)
	assert.Equal(t, "matched 1\n0: 1\n", out)
	assert.Contains(t, log, "scan stopped early")
}

func TestRunCommandErrors(t *testing.T) {
	_, _, err := runCLI(t)
	assert.ErrorContains(t, err, "missing command")

	_, _, err = runCLI(t, "frobnicate")
	assert.ErrorContains(t, err, "unknown command")

	_, _, err = runCLI(t, "-output", "printer", "print", "x")
	assert.ErrorContains(t, err, "invalid output")

	_, _, err = runCLI(t, "scan", "only-input")
	assert.ErrorContains(t, err, "want INPUT FORMAT")
}

func TestRunVersion(t *testing.T) {
	out, _, err := runCLI(t, "-version")
	require.NoError(t, err)
	assert.Equal(t, "cfmt version "+Version+"\n", out)
}

func TestPrintArgs(t *testing.T) {
	vals, err := printArgs("%s %5.*f %c %u %p %% %n %lc", []string{"x", "2", "1.25", "Q", "0x10", "ff", "65"})
	require.NoError(t, err)
	require.Len(t, vals, 8)
	assert.Equal(t, "x", vals[0])
	assert.Equal(t, int64(2), vals[1])
	assert.Equal(t, 1.25, vals[2])
	assert.Equal(t, 'Q', vals[3])
	assert.Equal(t, uint64(16), vals[4])
	assert.Equal(t, uintptr(0xff), vals[5])
	assert.IsType(t, new(int), vals[6])
	assert.Equal(t, int64(65), vals[7])
}
