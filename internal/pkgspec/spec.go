package pkgspec

import (
	"fmt"
	"path"
	"regexp"
	"strings"
)

// Spec identifies one workspace package: a repository source plus a pinned
// revision. The textual form is <source>::<revision>; a missing revision
// means HEAD.
type Spec struct {
	Source   string
	Revision string
}

var (
	commitRe     = regexp.MustCompile(`^[0-9a-f]{40}$`)
	repositoryRe = regexp.MustCompile(`^[A-Za-z0-9][A-Za-z0-9._-]*/[A-Za-z0-9._-]+$`)
)

// Parse parses a single package spec. The revision is everything after the
// first "::"; when absent it defaults to HEAD.
func Parse(s string) (Spec, error) {
	source, rev, found := strings.Cut(s, "::")
	if source == "" {
		return Spec{}, fmt.Errorf("package spec %q has no repository source", s)
	}
	if !found || rev == "" {
		rev = "HEAD"
	}
	return Spec{Source: source, Revision: rev}, nil
}

// SplitList parses a whitespace-separated list of package specs. Repeated,
// leading, and trailing whitespace collapses; empty tokens are skipped.
// Duplicates are kept in input order.
func SplitList(raw string) ([]Spec, error) {
	var specs []Spec
	for _, tok := range strings.Fields(raw) {
		sp, err := Parse(tok)
		if err != nil {
			return nil, err
		}
		specs = append(specs, sp)
	}
	return specs, nil
}

// Self builds the spec for the repository that triggered the job, pinned to
// the exact trigger commit. repository must be in owner/name form and commit
// must be a full SHA, never a branch or tag.
func Self(repository, commit string) (Spec, error) {
	if !repositoryRe.MatchString(repository) {
		return Spec{}, fmt.Errorf("repository %q is not in owner/name form", repository)
	}
	if !commitRe.MatchString(commit) {
		return Spec{}, fmt.Errorf("commit %q is not a full commit hash", commit)
	}
	return Spec{
		Source:   "git@github.com:" + repository + ".git",
		Revision: commit,
	}, nil
}

// String renders the spec in its <source>::<revision> wire form.
func (s Spec) String() string {
	return s.Source + "::" + s.Revision
}

// Name derives the package name from the source: the last path element with
// any .git suffix trimmed. This matches the directory the workspace tool
// checks the package out into.
func (s Spec) Name() string {
	base := path.Base(strings.TrimSuffix(s.Source, "/"))
	// SSH-form URLs with no path component separate host and repo with ":".
	if i := strings.LastIndex(base, ":"); i >= 0 {
		base = base[i+1:]
	}
	return strings.TrimSuffix(base, ".git")
}
