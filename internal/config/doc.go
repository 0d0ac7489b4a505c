// Package config loads, validates, and defaults modscout configuration.
//
// Configuration lives in a single TOML file. Load resolves the file from an
// explicit path, the default user location, or a project-local
// modscout.toml, then applies defaults, path expansion, and validation. A
// missing file is not an error: the defaults describe a working setup.
package config
