// Package pkgspec parses workspace package specifications of the form
// <git-url>::<revision>. It builds the self spec for the repository that
// triggered the current job and splits caller-supplied lists of additional
// specs.
package pkgspec
