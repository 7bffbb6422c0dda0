//go:build windows

package config

import (
	"os"

	"golang.org/x/sys/windows"
	"golang.org/x/sys/windows/registry"
	"golang.org/x/term"
)

// vtProcessing is ENABLE_VIRTUAL_TERMINAL_PROCESSING console mode flag.
const vtProcessing uint32 = 0x4

// windowsMajor reads major version of the running system, 0 when unknown.
func windowsMajor() uint64 {
	k, err := registry.OpenKey(registry.LOCAL_MACHINE, `SOFTWARE\Microsoft\Windows NT\CurrentVersion`, registry.QUERY_VALUE)
	if err != nil {
		return 0
	}
	defer k.Close()

	v, _, err := k.GetIntegerValue("CurrentMajorVersionNumber")
	if err != nil {
		return 0
	}
	return v
}

// EnableColorOutput reports whether level colors may be written to stream.
// On Windows 10 and later it also switches console into VT100 mode, older
// consoles get plain output.
func EnableColorOutput(stream *os.File) bool {
	if windowsMajor() < 10 || !term.IsTerminal(int(stream.Fd())) {
		return false
	}
	h := windows.Handle(stream.Fd())
	var mode uint32
	if err := windows.GetConsoleMode(h, &mode); err != nil {
		return false
	}
	return windows.SetConsoleMode(h, mode|vtProcessing) == nil
}
