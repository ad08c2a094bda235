package paths

import (
	"path/filepath"

	"github.com/adrg/xdg"
)

// ConfigHome returns the XDG config home directory.
// On Linux: ~/.config
// On macOS: ~/Library/Application Support
// On Windows: %LOCALAPPDATA%
func ConfigHome() string {
	return xdg.ConfigHome
}

// ConfigDir returns the configuration directory for app: <ConfigHome>/<app>.
// Returns an empty string for an empty app name.
func ConfigDir(app string) string {
	if app == "" {
		return ""
	}
	return filepath.Join(ConfigHome(), app)
}
