// Package configs resolves securedenv's platform storage locations and
// persists user configuration.
//
// Containers live under the platform data directory, keyed by the
// project's name hash so the literal project name never appears on local
// disk:
//
//	<XDG_DATA_HOME or ~/.local/share>/securedenv/<16-hex hash>/backup.senv
//
// User configuration (install UUID, remote repository settings) is a
// TOML file in the platform config directory:
//
//	<os.UserConfigDir>/securedenv/config.toml
//
// The remote access token prefers the OS keyring; the TOML token field is
// a fallback for headless environments.
package configs
