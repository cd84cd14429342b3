package git

import "strings"

const (
	sshGitHubPrefix   = "git@github.com:"
	httpsGitHubPrefix = "https://github.com/"
)

// Rewrite is a URL insteadOf substitution: any repository URL starting with
// From is used as if it started with To. The zero value is a disabled
// rewrite. Instead of mutating global git configuration, the rule is
// threaded into each git invocation as a GIT_CONFIG_* environment scope, so
// concurrent jobs sharing a git installation never observe it and the token
// never appears on a command line.
type Rewrite struct {
	From string
	To   string

	token string
}

// GitHubRewrite maps the SSH GitHub prefix to HTTPS. With a token the
// replacement embeds username:token@ credentials; without one it is the
// bare anonymous HTTPS prefix, good only for public repositories.
func GitHubRewrite(username, token string) Rewrite {
	to := httpsGitHubPrefix
	if token != "" {
		to = "https://" + username + ":" + token + "@github.com/"
	}
	return Rewrite{From: sshGitHubPrefix, To: to, token: token}
}

// Enabled reports whether the rewrite carries a rule.
func (r Rewrite) Enabled() bool {
	return r.From != ""
}

// Env returns the environment entries that apply this rule to a single git
// (or workspace tool) invocation. Empty for a disabled rewrite.
func (r Rewrite) Env() []string {
	if !r.Enabled() {
		return nil
	}
	return []string{
		"GIT_CONFIG_COUNT=1",
		"GIT_CONFIG_KEY_0=url." + r.To + ".insteadOf",
		"GIT_CONFIG_VALUE_0=" + r.From,
	}
}

// Redacted renders the rule for display with any credential masked.
func (r Rewrite) Redacted() string {
	if !r.Enabled() {
		return "disabled"
	}
	to := r.To
	if r.token != "" {
		to = strings.Replace(to, ":"+r.token+"@", ":***@", 1)
	}
	return r.From + " -> " + to
}
