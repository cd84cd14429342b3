package bootstrap

import (
	"bytes"
	"errors"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/turbofive/wit/internal/config"
)

const testCommit = "0123456789abcdef0123456789abcdef01234567"

// fakeTool records workspace tool calls and can fail selected operations.
type fakeTool struct {
	calls      []string
	failInit   error
	failAddPkg error
	failUpdate error
}

func (f *fakeTool) Init(path string) error {
	f.calls = append(f.calls, "init "+path)
	return f.failInit
}

func (f *fakeTool) AddPkg(workspace, spec string) error {
	f.calls = append(f.calls, "add-pkg "+spec)
	return f.failAddPkg
}

func (f *fakeTool) Update(workspace string) error {
	f.calls = append(f.calls, "update "+workspace)
	return f.failUpdate
}

// fakeGit simulates commit presence in the self clone.
type fakeGit struct {
	present      map[string]bool
	fetched      []string
	failFetch    error
	fetchReveals bool // fetch makes the commit visible afterwards
}

func (f *fakeGit) HasCommit(repoDir, commit string) bool {
	return f.present[commit]
}

func (f *fakeGit) FetchCommit(repoDir, remote, commit string) error {
	f.fetched = append(f.fetched, remote+" "+commit)
	if f.failFetch != nil {
		return f.failFetch
	}
	if f.fetchReveals {
		if f.present == nil {
			f.present = map[string]bool{}
		}
		f.present[commit] = true
	}
	return nil
}

func testConfig() config.Config {
	cfg := config.Default()
	cfg.Repository = "org/app"
	cfg.Commit = testCommit
	return cfg
}

func TestNewPlan(t *testing.T) {
	cfg := testConfig()
	cfg.AdditionalPackages = " git@github.com:org/env.git::1.2.3  "

	p, err := NewPlan(cfg)
	if err != nil {
		t.Fatal(err)
	}
	if p.Self.String() != "git@github.com:org/app.git::"+testCommit {
		t.Errorf("self spec = %q", p.Self.String())
	}
	if len(p.Additional) != 1 || p.Additional[0].String() != "git@github.com:org/env.git::1.2.3" {
		t.Errorf("additional = %v", p.Additional)
	}
	if !p.Rewrite.Enabled() {
		t.Error("rewrite should be enabled by default")
	}
	if got, want := p.SelfDir(), "app"; got != want {
		t.Errorf("SelfDir = %q, want %q", got, want)
	}
}

func TestNewPlan_rewriteDisabled(t *testing.T) {
	cfg := testConfig()
	cfg.ForceGitHubHTTPS = false
	cfg.HTTPAuthToken = "tok" // token alone does not enable the rewrite

	p, err := NewPlan(cfg)
	if err != nil {
		t.Fatal(err)
	}
	if p.Rewrite.Enabled() {
		t.Error("rewrite should stay disabled when force_github_https is false")
	}
	if env := p.Rewrite.Env(); env != nil {
		t.Errorf("expected no rewrite env, got %v", env)
	}
}

func TestRun_order(t *testing.T) {
	cfg := testConfig()
	cfg.AdditionalPackages = "git@github.com:org/env.git::1.2.3"
	p, err := NewPlan(cfg)
	if err != nil {
		t.Fatal(err)
	}

	tool := &fakeTool{}
	g := &fakeGit{present: map[string]bool{testCommit: true}}
	o := &Orchestrator{Tool: tool, Git: g}

	if err := o.Run(p); err != nil {
		t.Fatal(err)
	}

	want := []string{
		"init .",
		"add-pkg git@github.com:org/app.git::" + testCommit,
		"add-pkg git@github.com:org/env.git::1.2.3",
		"update .",
	}
	if diff := cmp.Diff(want, tool.calls); diff != "" {
		t.Errorf("tool calls out of order (-want +got):\n%s", diff)
	}
	if len(g.fetched) != 0 {
		t.Errorf("no fetch expected when the commit is already present: %v", g.fetched)
	}
}

func TestRun_selfOnlyScenario(t *testing.T) {
	// workspace=".", no additional packages, rewrite on with empty token.
	p, err := NewPlan(testConfig())
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(p.Rewrite.Redacted(), "https://github.com/") {
		t.Errorf("anonymous rewrite expected: %s", p.Rewrite.Redacted())
	}

	tool := &fakeTool{}
	g := &fakeGit{present: map[string]bool{testCommit: true}}
	if err := (&Orchestrator{Tool: tool, Git: g}).Run(p); err != nil {
		t.Fatal(err)
	}

	var registered, updates int
	for _, c := range tool.calls {
		if strings.HasPrefix(c, "add-pkg ") {
			registered++
		}
		if strings.HasPrefix(c, "update ") {
			updates++
		}
	}
	if registered != 1 {
		t.Errorf("registered %d specs, want only the self spec", registered)
	}
	if updates != 1 {
		t.Errorf("resolution ran %d times, want once", updates)
	}
}

func TestRun_initFailureAbortsBeforeRegistration(t *testing.T) {
	p, err := NewPlan(testConfig())
	if err != nil {
		t.Fatal(err)
	}

	tool := &fakeTool{failInit: errors.New("workspace already initialized")}
	o := &Orchestrator{Tool: tool, Git: &fakeGit{}}

	runErr := o.Run(p)
	if runErr == nil {
		t.Fatal("expected init failure to surface")
	}
	if !strings.Contains(runErr.Error(), StepInit) {
		t.Errorf("error should name the failing step: %v", runErr)
	}
	for _, c := range tool.calls {
		if strings.HasPrefix(c, "add-pkg ") {
			t.Errorf("no registration should happen after init failure: %v", tool.calls)
		}
	}
}

func TestRun_reconcileFetchesMissingCommit(t *testing.T) {
	p, err := NewPlan(testConfig())
	if err != nil {
		t.Fatal(err)
	}

	g := &fakeGit{fetchReveals: true}
	o := &Orchestrator{Tool: &fakeTool{}, Git: g}
	if err := o.Run(p); err != nil {
		t.Fatal(err)
	}

	if len(g.fetched) != 1 || g.fetched[0] != "origin "+testCommit {
		t.Errorf("fetched = %v, want one fetch of the trigger commit from origin", g.fetched)
	}
}

func TestRun_reconcileFatalWhenCommitUnreachable(t *testing.T) {
	p, err := NewPlan(testConfig())
	if err != nil {
		t.Fatal(err)
	}

	// Fetch succeeds but the commit never shows up.
	tool := &fakeTool{}
	o := &Orchestrator{Tool: tool, Git: &fakeGit{}}

	runErr := o.Run(p)
	if runErr == nil {
		t.Fatal("expected reconciliation failure")
	}
	if !strings.Contains(runErr.Error(), StepReconcile) {
		t.Errorf("error should name the reconcile step: %v", runErr)
	}
	for _, c := range tool.calls {
		if strings.HasPrefix(c, "update ") {
			t.Error("resolution must not run after reconciliation failure")
		}
	}
}

func TestRun_reconcileFetchError(t *testing.T) {
	p, err := NewPlan(testConfig())
	if err != nil {
		t.Fatal(err)
	}

	g := &fakeGit{failFetch: errors.New("remote hung up")}
	runErr := (&Orchestrator{Tool: &fakeTool{}, Git: g}).Run(p)
	if runErr == nil {
		t.Fatal("expected fetch failure to abort the run")
	}
}

func TestRun_outputNeverContainsToken(t *testing.T) {
	cfg := testConfig()
	cfg.HTTPAuthToken = "sup3r-secret"
	p, err := NewPlan(cfg)
	if err != nil {
		t.Fatal(err)
	}

	var buf bytes.Buffer
	g := &fakeGit{present: map[string]bool{testCommit: true}}
	o := &Orchestrator{Tool: &fakeTool{}, Git: g, Out: &buf}
	if err := o.Run(p); err != nil {
		t.Fatal(err)
	}

	if strings.Contains(buf.String(), "sup3r-secret") {
		t.Fatalf("token leaked into run output:\n%s", buf.String())
	}
	if !strings.Contains(buf.String(), "url rewrite:") {
		t.Errorf("credentials step should report the redacted rule:\n%s", buf.String())
	}
}
