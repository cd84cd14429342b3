// Package bootstrap sequences the workspace bootstrap pipeline: credential
// configuration, workspace initialization, self and additional package
// registration, trigger-commit reconciliation, and the final resolution
// pass. Steps run strictly in order; the first failure aborts the run with
// no rollback of completed steps.
package bootstrap

import (
	"fmt"
	"io"
	"path/filepath"

	"github.com/turbofive/wit/internal/config"
	"github.com/turbofive/wit/internal/git"
	"github.com/turbofive/wit/internal/pkgspec"
	"github.com/turbofive/wit/internal/ui"
)

// WorkspaceTool is the external workspace tool, reduced to the three calls
// the bootstrap makes.
type WorkspaceTool interface {
	Init(path string) error
	AddPkg(workspace, spec string) error
	Update(workspace string) error
}

// GitClient covers the git operations the commit reconciler needs.
type GitClient interface {
	HasCommit(repoDir, commit string) bool
	FetchCommit(repoDir, remote, commit string) error
}

// Plan is everything resolved up front from the inputs: the credential
// rewrite, the self spec pinned to the trigger commit, and the parsed
// additional specs in caller order.
type Plan struct {
	Workspace  string
	Rewrite    git.Rewrite
	Self       pkgspec.Spec
	Additional []pkgspec.Spec
}

// NewPlan resolves a validated config into a Plan.
func NewPlan(cfg config.Config) (Plan, error) {
	var rewrite git.Rewrite
	if cfg.ForceGitHubHTTPS {
		rewrite = git.GitHubRewrite(cfg.HTTPAuthUsername, cfg.HTTPAuthToken)
	}

	self, err := pkgspec.Self(cfg.Repository, cfg.Commit)
	if err != nil {
		return Plan{}, err
	}

	additional, err := pkgspec.SplitList(cfg.AdditionalPackages)
	if err != nil {
		return Plan{}, err
	}

	return Plan{
		Workspace:  cfg.Workspace,
		Rewrite:    rewrite,
		Self:       self,
		Additional: additional,
	}, nil
}

// SelfDir returns where the workspace tool checks out the self package.
func (p Plan) SelfDir() string {
	return filepath.Join(p.Workspace, p.Self.Name())
}

// Step names, in pipeline order.
const (
	StepCredentials = "configure-credentials"
	StepInit        = "init-workspace"
	StepSelf        = "register-self"
	StepAdditional  = "register-additional"
	StepReconcile   = "reconcile-commit"
	StepResolve     = "resolve"
)

type step struct {
	name string
	run  func() error
}

// Orchestrator drives the pipeline against its collaborators. Both are
// interfaces so each step can be tested against fakes.
type Orchestrator struct {
	Tool WorkspaceTool
	Git  GitClient
	Out  io.Writer
}

// Run executes the pipeline for the given plan. It returns the first step
// failure, wrapped with the step name; completed steps are not rolled back.
func (o *Orchestrator) Run(p Plan) error {
	out := o.Out
	if out == nil {
		out = io.Discard
	}

	steps := o.steps(p, ui.NewSteps(out, 6))
	for _, s := range steps {
		if err := s.run(); err != nil {
			return fmt.Errorf("%s: %w", s.name, err)
		}
	}
	return nil
}

func (o *Orchestrator) steps(p Plan, prog *ui.Steps) []step {
	done := func(name string) error {
		prog.Done(name)
		return nil
	}
	return []step{
		{StepCredentials, func() error {
			// The rewrite itself is threaded into every git and tool
			// invocation as an environment scope; this step only reports it.
			prog.Log("url rewrite: %s", p.Rewrite.Redacted())
			return done(StepCredentials)
		}},
		{StepInit, func() error {
			if err := o.Tool.Init(p.Workspace); err != nil {
				return err
			}
			return done(StepInit)
		}},
		{StepSelf, func() error {
			if err := o.Tool.AddPkg(p.Workspace, p.Self.String()); err != nil {
				return err
			}
			return done(StepSelf)
		}},
		{StepAdditional, func() error {
			for _, sp := range p.Additional {
				if err := o.Tool.AddPkg(p.Workspace, sp.String()); err != nil {
					return err
				}
			}
			return done(StepAdditional)
		}},
		{StepReconcile, func() error {
			if err := o.reconcile(p); err != nil {
				return err
			}
			return done(StepReconcile)
		}},
		{StepResolve, func() error {
			if err := o.Tool.Update(p.Workspace); err != nil {
				return err
			}
			return done(StepResolve)
		}},
	}
}

// reconcile makes sure the self clone contains the exact trigger commit.
// The registration clone may have captured an older default-branch tip, so
// the commit is fetched explicitly when absent.
func (o *Orchestrator) reconcile(p Plan) error {
	dir := p.SelfDir()
	commit := p.Self.Revision

	if o.Git.HasCommit(dir, commit) {
		return nil
	}
	if err := o.Git.FetchCommit(dir, "origin", commit); err != nil {
		return err
	}
	if !o.Git.HasCommit(dir, commit) {
		return fmt.Errorf("commit %s still missing from %s after fetch", commit, dir)
	}
	return nil
}
