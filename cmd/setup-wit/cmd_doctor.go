package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/turbofive/wit/internal/git"
	"github.com/turbofive/wit/internal/witcli"
)

func newDoctorCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "doctor",
		Short: "Diagnose the bootstrap environment",
		RunE:  runDoctor,
	}
	addInputFlags(cmd)
	return cmd
}

func runDoctor(cmd *cobra.Command, _ []string) error {
	cfg, err := resolveConfig(cmd)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	ok := true

	fmt.Fprint(out, "Checking git... ")
	if git.IsGitInstalled() {
		fmt.Fprintln(out, "found")
	} else {
		fmt.Fprintln(out, "NOT FOUND")
		ok = false
	}

	fmt.Fprintf(out, "Checking workspace tool (%s)... ", cfg.WitBin)
	if witcli.New(cfg.WitBin).IsInstalled() {
		fmt.Fprintln(out, "found")
	} else {
		fmt.Fprintln(out, "NOT FOUND")
		ok = false
	}

	fmt.Fprint(out, "Trigger repository... ")
	if cfg.Repository != "" {
		fmt.Fprintln(out, cfg.Repository)
	} else {
		fmt.Fprintln(out, "MISSING (set GITHUB_REPOSITORY or --repository)")
		ok = false
	}

	fmt.Fprint(out, "Trigger commit... ")
	if cfg.Commit != "" {
		fmt.Fprintln(out, cfg.Commit)
	} else {
		fmt.Fprintln(out, "MISSING (set GITHUB_SHA or --commit)")
		ok = false
	}

	// Report auth shape without ever echoing the token itself.
	fmt.Fprint(out, "HTTPS auth token... ")
	if cfg.HTTPAuthToken != "" {
		fmt.Fprintln(out, "set")
	} else {
		fmt.Fprintln(out, "empty (anonymous HTTPS, public repositories only)")
	}

	rewrite := git.Rewrite{}
	if cfg.ForceGitHubHTTPS {
		rewrite = git.GitHubRewrite(cfg.HTTPAuthUsername, cfg.HTTPAuthToken)
	}
	fmt.Fprintf(out, "URL rewrite... %s\n", rewrite.Redacted())

	if !ok {
		return fmt.Errorf("doctor checks failed")
	}
	fmt.Fprintln(out, "\nAll checks passed.")
	return nil
}
