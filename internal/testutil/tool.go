package testutil

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

// WriteFakeTool writes a shell script standing in for the workspace tool
// binary. Every invocation appends its arguments as one line to the returned
// log file. If failOn is non-empty, any invocation whose arguments contain
// that token exits with status 3.
func WriteFakeTool(t *testing.T, failOn string) (bin, logPath string) {
	t.Helper()
	dir := t.TempDir()
	bin = filepath.Join(dir, "wit")
	logPath = filepath.Join(dir, "calls.log")

	script := "#!/bin/sh\n" +
		"echo \"$@\" >> '" + logPath + "'\n"
	if failOn != "" {
		script += "for a in \"$@\"; do\n" +
			"  if [ \"$a\" = '" + failOn + "' ]; then exit 3; fi\n" +
			"done\n"
	}
	script += "exit 0\n"

	if err := os.WriteFile(bin, []byte(script), 0755); err != nil { //nolint:gosec // test executable
		t.Fatal(err)
	}
	return bin, logPath
}

// ToolCalls reads the fake tool's log and returns one line per invocation.
// Returns nil if the tool was never called.
func ToolCalls(t *testing.T, logPath string) []string {
	t.Helper()
	data, err := os.ReadFile(logPath) //nolint:gosec // test file
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		t.Fatal(err)
	}
	return strings.Split(strings.TrimRight(string(data), "\n"), "\n")
}
