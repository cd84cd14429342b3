package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/turbofive/wit/internal/bootstrap"
	"github.com/turbofive/wit/internal/ui"
)

func newPlanCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "plan",
		Short: "Show the bootstrap steps without running them",
		RunE:  runPlan,
	}
	addInputFlags(cmd)
	return cmd
}

func runPlan(cmd *cobra.Command, _ []string) error {
	cfg, err := resolveConfig(cmd)
	if err != nil {
		return err
	}
	if err := cfg.Validate(); err != nil {
		return err
	}

	plan, err := bootstrap.NewPlan(cfg)
	if err != nil {
		return err
	}

	tbl := ui.NewTable(cmd.OutOrStdout(), "STEP", "DETAIL")
	tbl.Row(bootstrap.StepCredentials, plan.Rewrite.Redacted())
	tbl.Row(bootstrap.StepInit, plan.Workspace)
	tbl.Row(bootstrap.StepSelf, plan.Self.String())
	if len(plan.Additional) == 0 {
		tbl.Row(bootstrap.StepAdditional, "(none)")
	}
	for _, sp := range plan.Additional {
		tbl.Row(bootstrap.StepAdditional, sp.String())
	}
	tbl.Row(bootstrap.StepReconcile, fmt.Sprintf("%s @ %s", plan.SelfDir(), plan.Self.Revision))
	tbl.Row(bootstrap.StepResolve, plan.Workspace)
	return tbl.Flush()
}
