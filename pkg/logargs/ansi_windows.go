//go:build windows

package logargs

import (
	"sync"

	"github.com/cockroachdb/errors"
	"golang.org/x/sys/windows"
)

var (
	ansiOnce sync.Once
	ansiErr  error
)

// enableANSISupport turns on virtual terminal processing for the console,
// once per process.
func enableANSISupport() error {
	ansiOnce.Do(func() {
		name, err := windows.UTF16PtrFromString("CONOUT$")
		if err != nil {
			ansiErr = err
			return
		}
		console, err := windows.CreateFile(name,
			windows.GENERIC_READ|windows.GENERIC_WRITE,
			windows.FILE_SHARE_WRITE,
			nil, windows.OPEN_EXISTING, 0, 0)
		if err != nil {
			ansiErr = errors.Wrap(err, "opening console")
			return
		}
		defer windows.CloseHandle(console)

		var mode uint32
		if err := windows.GetConsoleMode(console, &mode); err != nil {
			ansiErr = errors.Wrap(err, "reading console mode")
			return
		}
		if mode&windows.ENABLE_VIRTUAL_TERMINAL_PROCESSING != 0 {
			return
		}
		if err := windows.SetConsoleMode(console, mode|windows.ENABLE_VIRTUAL_TERMINAL_PROCESSING); err != nil {
			ansiErr = errors.Wrap(err, "enabling virtual terminal processing")
		}
	})
	return ansiErr
}
