// Package config resolves the bootstrap's input surface. Inputs come from
// flags, the CI environment (INPUT_* and GITHUB_* variables), and an
// optional setup-wit.yaml file, layered in that precedence order over
// built-in defaults.
package config
