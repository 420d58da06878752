// Package manifest loads the declarative list of dotfile entries.
//
// A manifest carries one top-level "dotfiles" collection whose items each
// need a source (relative to the repository root), a destination (relative
// to the home directory) and a description. YAML, TOML and XML documents
// are supported and chosen by file extension:
//
//	dotfiles:
//	  - source: zsh/zshrc
//	    destination: .zshrc
//	    description: zsh configuration
//
// Order is preserved and duplicates are kept. Incomplete entries are skipped
// with a warning; a manifest with no usable entries fails to load.
package manifest
