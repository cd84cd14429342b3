// Package witcli drives the external wit binary as a black-box CLI. The
// orchestrator only needs three entry points: workspace creation, package
// registration, and the final transitive update. Exit codes pass through
// unchanged so a failing bootstrap reports the tool's own status.
package witcli

import (
	"errors"
	"fmt"
	"io"
	"os"
	"os/exec"
	"strings"
)

// Tool invokes the workspace tool binary. Env entries (for example a
// credential rewrite scope) are appended to the inherited environment on
// every call.
type Tool struct {
	Bin    string
	Env    []string
	Stdout io.Writer
	Stderr io.Writer
}

// New returns a Tool for the given binary, defaulting to "wit" on PATH.
func New(bin string) *Tool {
	if bin == "" {
		bin = "wit"
	}
	return &Tool{Bin: bin, Stdout: os.Stdout, Stderr: os.Stderr}
}

// Init creates an empty workspace at path. Re-initializing an existing
// workspace is the tool's error to raise, not ours to swallow.
func (t *Tool) Init(path string) error {
	return t.run("init", path)
}

// AddPkg registers one package spec into the workspace.
func (t *Tool) AddPkg(workspace, spec string) error {
	return t.run("-C", workspace, "add-pkg", spec)
}

// Update runs the tool's transitive resolution pass over everything
// registered so far. Single blocking call, no retries.
func (t *Tool) Update(workspace string) error {
	return t.run("-C", workspace, "update")
}

// IsInstalled returns true if the tool binary can be found.
func (t *Tool) IsInstalled() bool {
	_, err := exec.LookPath(t.Bin)
	return err == nil
}

func (t *Tool) run(args ...string) error {
	cmd := exec.Command(t.Bin, args...) //nolint:gosec // binary is caller-configured
	cmd.Env = append(os.Environ(), t.Env...)
	cmd.Stdout = t.Stdout
	cmd.Stderr = t.Stderr
	if err := cmd.Run(); err != nil {
		return fmt.Errorf("%s %s: %w", t.Bin, strings.Join(args, " "), err)
	}
	return nil
}

// ExitCode extracts the process exit code carried by err. Returns 0 for nil
// and 1 for errors that did not come from a finished process.
func ExitCode(err error) int {
	if err == nil {
		return 0
	}
	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) {
		return exitErr.ExitCode()
	}
	return 1
}
