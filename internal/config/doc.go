// Package config loads and validates webmark configuration.
//
// Configuration lives in a TOML file, by default at
// ~/.config/webmark/config.toml. Load applies defaults and environment
// fallbacks before validation, so a missing file still yields a usable
// configuration. Service credentials are deliberately not required here;
// the services that need them report configuration errors when called.
package config
