package main

import (
	"bytes"
	"strings"
	"testing"
)

func TestRunPlan(t *testing.T) {
	clearEnv(t)
	t.Setenv("INPUT_HTTP_AUTH_TOKEN", "plan-secret")

	var out bytes.Buffer
	root := newRootCmd()
	root.SetArgs([]string{
		"plan",
		"--config", noConfigFile(t),
		"--repository", "org/app",
		"--commit", testCommit,
		"--additional-packages", "git@github.com:org/env.git::1.2.3",
	})
	root.SetOut(&out)
	root.SetErr(&bytes.Buffer{})

	if err := root.Execute(); err != nil {
		t.Fatal(err)
	}

	text := out.String()
	for _, want := range []string{
		"configure-credentials",
		"init-workspace",
		"register-self",
		"git@github.com:org/app.git::" + testCommit,
		"register-additional",
		"git@github.com:org/env.git::1.2.3",
		"reconcile-commit",
		"resolve",
		"x-access-token:***@",
	} {
		if !strings.Contains(text, want) {
			t.Errorf("plan output missing %q:\n%s", want, text)
		}
	}
	if strings.Contains(text, "plan-secret") {
		t.Fatalf("token leaked into plan output:\n%s", text)
	}
}

func TestRunPlan_rewriteDisabled(t *testing.T) {
	clearEnv(t)

	var out bytes.Buffer
	root := newRootCmd()
	root.SetArgs([]string{
		"plan",
		"--config", noConfigFile(t),
		"--repository", "org/app",
		"--commit", testCommit,
		"--force-github-https=false",
	})
	root.SetOut(&out)
	root.SetErr(&bytes.Buffer{})

	if err := root.Execute(); err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(out.String(), "disabled") {
		t.Errorf("plan should show the rewrite as disabled:\n%s", out.String())
	}
}

func TestRunPlan_noAdditionalPackages(t *testing.T) {
	clearEnv(t)

	var out bytes.Buffer
	root := newRootCmd()
	root.SetArgs([]string{
		"plan",
		"--config", noConfigFile(t),
		"--repository", "org/app",
		"--commit", testCommit,
	})
	root.SetOut(&out)
	root.SetErr(&bytes.Buffer{})

	if err := root.Execute(); err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(out.String(), "(none)") {
		t.Errorf("plan should mark the additional step as empty:\n%s", out.String())
	}
}
