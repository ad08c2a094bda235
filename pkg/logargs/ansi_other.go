//go:build !windows

package logargs

// enableANSISupport is a no-op: terminals outside Windows interpret escape
// sequences without being asked.
func enableANSISupport() error {
	return nil
}
