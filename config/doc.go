// Package config loads and persists the towl configuration file.
//
// Configuration is layered: built-in defaults, then an optional .towl.toml
// file, then TOWL_-prefixed environment variables, each layer overriding the
// previous. Loading never fails just because the file is absent; a malformed
// file or a config path containing a parent-directory marker is fatal.
//
// [Init] bootstraps a fresh .towl.toml, autodetecting the GitHub owner and
// repository from the nearest .git/config when one exists. [Schema] exposes
// a JSON Schema for the file so editors can validate it.
package config
