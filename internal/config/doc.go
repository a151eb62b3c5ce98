// Package config loads the immutable season run configuration from
// environment variables (prefix LINEUP) layered over an optional YAML
// file, validates it, and derives the season-scoped input and output file
// paths from it.
package config
