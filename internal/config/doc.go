// Package config assembles runtime settings for the Bayan CLI from three
// layered sources: built-in defaults, an optional JSON file (-c/-config),
// and command-line flags. Later sources override earlier ones.
//
// Secrets (encryption secret, salt, token signing secret) live on the
// Config value constructed once at startup and are passed by reference to
// the components that need them. Keeping them out of package-level
// variables keeps the trust layer testable with swappable secrets.
package config
