package main

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/turbofive/wit/internal/config"
)

// resolveConfig layers the input sources: defaults, then the optional config
// file, then environment variables, then explicitly set flags.
func resolveConfig(cmd *cobra.Command) (config.Config, error) {
	cfgPath, _ := cmd.Flags().GetString("config")

	fileOverlay, err := config.LoadFile(cfgPath)
	if err != nil {
		return config.Config{}, err
	}

	envOverlay, err := config.FromEnv(os.Getenv)
	if err != nil {
		return config.Config{}, err
	}

	return config.Default().
		Apply(fileOverlay).
		Apply(envOverlay).
		Apply(flagOverlay(cmd)), nil
}

// flagOverlay captures only the flags the caller actually set, so defaults
// registered on the flag set never shadow environment or file values.
func flagOverlay(cmd *cobra.Command) config.Overlay {
	var o config.Overlay
	f := cmd.Flags()

	if f.Changed("workspace") {
		v, _ := f.GetString("workspace")
		o.Workspace = &v
	}
	if f.Changed("additional-packages") {
		v, _ := f.GetString("additional-packages")
		o.AdditionalPackages = &v
	}
	if f.Changed("force-github-https") {
		v, _ := f.GetBool("force-github-https")
		o.ForceGitHubHTTPS = &v
	}
	if f.Changed("http-auth-username") {
		v, _ := f.GetString("http-auth-username")
		o.HTTPAuthUsername = &v
	}
	if f.Changed("http-auth-token") {
		v, _ := f.GetString("http-auth-token")
		o.HTTPAuthToken = &v
	}
	if f.Changed("repository") {
		v, _ := f.GetString("repository")
		o.Repository = &v
	}
	if f.Changed("commit") {
		v, _ := f.GetString("commit")
		o.Commit = &v
	}
	if f.Changed("wit-bin") {
		v, _ := f.GetString("wit-bin")
		o.WitBin = &v
	}
	return o
}
