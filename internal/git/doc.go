// Package git wraps the Git CLI commands the bootstrap needs: fetching an
// exact commit into an existing clone, checking commit presence, and
// applying a URL rewrite rule as a per-invocation environment scope rather
// than global configuration.
package git
