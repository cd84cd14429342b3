package config

import (
	"fmt"
	"os"
	"strconv"

	"gopkg.in/yaml.v3"
)

// DefaultUsername is the sentinel identity used for token-based HTTPS auth
// against GitHub. The token carries the actual credential.
const DefaultUsername = "x-access-token"

// FileName is the optional per-repository config file.
const FileName = "setup-wit.yaml"

// Config is the fully resolved input set for one bootstrap run.
type Config struct {
	Workspace          string
	AdditionalPackages string
	ForceGitHubHTTPS   bool
	HTTPAuthUsername   string
	HTTPAuthToken      string
	Repository         string
	Commit             string
	WitBin             string
}

// Overlay is a partial Config; nil fields leave the layer below untouched.
type Overlay struct {
	Workspace          *string `yaml:"workspace,omitempty"`
	AdditionalPackages *string `yaml:"additional_packages,omitempty"`
	ForceGitHubHTTPS   *bool   `yaml:"force_github_https,omitempty"`
	HTTPAuthUsername   *string `yaml:"http_auth_username,omitempty"`
	HTTPAuthToken      *string `yaml:"http_auth_token,omitempty"`
	Repository         *string `yaml:"repository,omitempty"`
	Commit             *string `yaml:"commit,omitempty"`
	WitBin             *string `yaml:"wit_bin,omitempty"`
}

// Default returns the built-in defaults: workspace in the current directory,
// SSH-to-HTTPS rewriting on, anonymous token.
func Default() Config {
	return Config{
		Workspace:        ".",
		ForceGitHubHTTPS: true,
		HTTPAuthUsername: DefaultUsername,
		WitBin:           "wit",
	}
}

// Apply layers an overlay on top of c and returns the result.
func (c Config) Apply(o Overlay) Config {
	if o.Workspace != nil {
		c.Workspace = *o.Workspace
	}
	if o.AdditionalPackages != nil {
		c.AdditionalPackages = *o.AdditionalPackages
	}
	if o.ForceGitHubHTTPS != nil {
		c.ForceGitHubHTTPS = *o.ForceGitHubHTTPS
	}
	if o.HTTPAuthUsername != nil {
		c.HTTPAuthUsername = *o.HTTPAuthUsername
	}
	if o.HTTPAuthToken != nil {
		c.HTTPAuthToken = *o.HTTPAuthToken
	}
	if o.Repository != nil {
		c.Repository = *o.Repository
	}
	if o.Commit != nil {
		c.Commit = *o.Commit
	}
	if o.WitBin != nil {
		c.WitBin = *o.WitBin
	}
	return c
}

// FromEnv builds an overlay from the CI environment. Unset variables leave
// fields nil; an unparsable boolean is an error rather than a silent default.
func FromEnv(getenv func(string) string) (Overlay, error) {
	var o Overlay
	if v := getenv("INPUT_WORKSPACE"); v != "" {
		o.Workspace = &v
	}
	if v := getenv("INPUT_ADDITIONAL_PACKAGES"); v != "" {
		o.AdditionalPackages = &v
	}
	if v := getenv("INPUT_FORCE_GITHUB_HTTPS"); v != "" {
		b, err := strconv.ParseBool(v)
		if err != nil {
			return Overlay{}, fmt.Errorf("INPUT_FORCE_GITHUB_HTTPS: %w", err)
		}
		o.ForceGitHubHTTPS = &b
	}
	if v := getenv("INPUT_HTTP_AUTH_USERNAME"); v != "" {
		o.HTTPAuthUsername = &v
	}
	if v := getenv("INPUT_HTTP_AUTH_TOKEN"); v != "" {
		o.HTTPAuthToken = &v
	}
	if v := getenv("GITHUB_REPOSITORY"); v != "" {
		o.Repository = &v
	}
	if v := getenv("GITHUB_SHA"); v != "" {
		o.Commit = &v
	}
	if v := getenv("WIT_BIN"); v != "" {
		o.WitBin = &v
	}
	return o, nil
}

// LoadFile reads an overlay from a YAML config file. A missing file is not
// an error; the file is optional.
func LoadFile(path string) (Overlay, error) {
	data, err := os.ReadFile(path) //nolint:gosec // caller-provided config path
	if err != nil {
		if os.IsNotExist(err) {
			return Overlay{}, nil
		}
		return Overlay{}, fmt.Errorf("reading config: %w", err)
	}
	return ParseFile(data)
}

// ParseFile parses YAML config content into an overlay.
func ParseFile(data []byte) (Overlay, error) {
	var o Overlay
	if err := yaml.Unmarshal(data, &o); err != nil {
		return Overlay{}, fmt.Errorf("parsing config YAML: %w", err)
	}
	return o, nil
}

// Validate checks that a resolved config can drive a bootstrap. A token
// without rewriting enabled is accepted: the rewrite is gated on its own
// flag, not on token presence.
func (c Config) Validate() error {
	if c.Workspace == "" {
		return fmt.Errorf("config: workspace is required")
	}
	if c.Repository == "" {
		return fmt.Errorf("config: trigger repository is required (set GITHUB_REPOSITORY or --repository)")
	}
	if c.Commit == "" {
		return fmt.Errorf("config: trigger commit is required (set GITHUB_SHA or --commit)")
	}
	if c.WitBin == "" {
		return fmt.Errorf("config: wit binary is required")
	}
	return nil
}
