package main

import (
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/turbofive/wit/internal/bootstrap"
	"github.com/turbofive/wit/internal/config"
	"github.com/turbofive/wit/internal/git"
	"github.com/turbofive/wit/internal/witcli"
)

func newBootstrapCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "bootstrap",
		Short: "Initialize the workspace, register packages, and resolve",
		RunE:  runBootstrap,
	}
	addInputFlags(cmd)
	return cmd
}

func runBootstrap(cmd *cobra.Command, _ []string) error {
	cfg, err := resolveConfig(cmd)
	if err != nil {
		return err
	}

	// Outside CI the trigger identity is not in the environment; ask for it
	// when there is a terminal to ask on.
	if (cfg.Repository == "" || cfg.Commit == "") && term.IsTerminal(int(os.Stdin.Fd())) {
		if err := promptTriggerIdentity(&cfg); err != nil {
			return err
		}
	}

	if err := cfg.Validate(); err != nil {
		return err
	}

	plan, err := bootstrap.NewPlan(cfg)
	if err != nil {
		return err
	}

	orch := &bootstrap.Orchestrator{
		Tool: newTool(cfg, plan.Rewrite, cmd),
		Git: &git.Client{
			Rewrite: plan.Rewrite,
			Stderr:  cmd.ErrOrStderr(),
		},
		Out: cmd.OutOrStdout(),
	}
	return orch.Run(plan)
}

// newTool wires the external workspace tool with the credential rewrite
// scope in its environment.
func newTool(cfg config.Config, rewrite git.Rewrite, cmd *cobra.Command) *witcli.Tool {
	tool := witcli.New(cfg.WitBin)
	tool.Env = rewrite.Env()
	tool.Stdout = cmd.OutOrStdout()
	tool.Stderr = cmd.ErrOrStderr()
	return tool
}
