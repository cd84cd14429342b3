package main

import (
	"github.com/spf13/cobra"

	"github.com/turbofive/wit/internal/config"
)

func newRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:           "setup-wit",
		Short:         "Bootstrap a wit workspace pinned to the triggering commit",
		Version:       version,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	cmd.PersistentFlags().String("config", config.FileName, "Path to optional YAML config file")

	cmd.AddCommand(
		newBootstrapCmd(),
		newPlanCmd(),
		newDoctorCmd(),
	)

	return cmd
}

// addInputFlags registers the caller-facing input surface on a subcommand.
// Unset flags fall back to environment variables, then the config file,
// then built-in defaults.
func addInputFlags(cmd *cobra.Command) {
	cmd.Flags().String("workspace", "", "Workspace root directory (default current directory)")
	cmd.Flags().String("additional-packages", "", "Whitespace-separated extra package specs (<git-url>::<revision>)")
	cmd.Flags().Bool("force-github-https", true, "Rewrite SSH GitHub URLs to HTTPS")
	cmd.Flags().String("http-auth-username", "", "Username for token-based HTTPS auth")
	cmd.Flags().String("http-auth-token", "", "Token for HTTPS auth (kept out of all output)")
	cmd.Flags().String("repository", "", "Triggering repository in owner/name form")
	cmd.Flags().String("commit", "", "Triggering commit hash")
	cmd.Flags().String("wit-bin", "", "Workspace tool binary")
}
