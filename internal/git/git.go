package git

import (
	"bytes"
	"fmt"
	"io"
	"os"
	"os/exec"
	"strings"
)

// Client runs git commands with an optional URL rewrite scope applied to
// every invocation. The zero value uses no rewrite and stays quiet.
type Client struct {
	Rewrite Rewrite
	Stdout  io.Writer
	Stderr  io.Writer
}

// FetchCommit fetches one exact commit from a remote into an existing clone.
// Used when the trigger commit is not reachable from the refs captured by
// the initial registration clone.
func (c *Client) FetchCommit(repoDir, remote, commit string) error {
	if err := c.run(repoDir, "fetch", remote, commit); err != nil {
		return fmt.Errorf("fetching %s from %s: %w", commit, remote, err)
	}
	return nil
}

// HasCommit reports whether the repository already contains the commit.
// rev-parse does not always fail for a missing object, so cat-file is used.
func (c *Client) HasCommit(repoDir, commit string) bool {
	cmd := c.command(repoDir, "cat-file", "-t", commit)
	cmd.Stdout = nil
	cmd.Stderr = nil
	return cmd.Run() == nil
}

// IsGitInstalled returns true if git is available on the system PATH.
func IsGitInstalled() bool {
	_, err := exec.LookPath("git")
	return err == nil
}

// command builds a git command in dir with the rewrite scope in its
// environment. Credentials travel only in the environment, never in argv.
func (c *Client) command(dir string, args ...string) *exec.Cmd {
	cmd := exec.Command("git", args...)
	cmd.Dir = dir
	cmd.Env = append(os.Environ(), c.Rewrite.Env()...)
	cmd.Stdout = c.Stdout
	cmd.Stderr = c.Stderr
	return cmd
}

// run executes a git command, capturing stderr for the error message when
// the client has no stderr writer of its own.
func (c *Client) run(dir string, args ...string) error {
	cmd := c.command(dir, args...)
	var stderr bytes.Buffer
	if cmd.Stderr == nil {
		cmd.Stderr = &stderr
	}
	if err := cmd.Run(); err != nil {
		if stderr.Len() > 0 {
			return fmt.Errorf("git %s: %w: %s", strings.Join(args, " "), err, strings.TrimSpace(stderr.String()))
		}
		return fmt.Errorf("git %s: %w", strings.Join(args, " "), err)
	}
	return nil
}
