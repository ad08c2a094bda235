package logging

import "sync/atomic"

// installed is set once a process-wide logger has been installed.
var installed atomic.Bool

// Installed reports whether a process-wide logger has been installed.
func Installed() bool {
	return installed.Load()
}

// MarkInstalled claims the single installation a process gets. It reports
// false if the claim was already taken.
func MarkInstalled() bool {
	return installed.CompareAndSwap(false, true)
}

// ResetInstalled releases the claim so a test can install again. Programs
// never call it.
func ResetInstalled() {
	installed.Store(false)
}
