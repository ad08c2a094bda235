// Package paths resolves per-user configuration directories.
//
// It wraps github.com/adrg/xdg for cross-platform XDG Base Directory
// compliance, so the host CLI looks for its config.yaml in the same place
// on every platform:
//
//	paths.ConfigDir("logdemo") // ~/.config/logdemo on Linux
package paths
