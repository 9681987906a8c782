//go:build windows

package storage

import (
	"os"

	"golang.org/x/sys/windows"
)

// lockFile acquires a shared or exclusive lock on the whole file (Windows implementation)
func lockFile(file *os.File, exclusive bool) error {
	var flags uint32
	if exclusive {
		flags = windows.LOCKFILE_EXCLUSIVE_LOCK
	}
	ol := new(windows.Overlapped)
	return windows.LockFileEx(windows.Handle(file.Fd()), flags, 0, ^uint32(0), ^uint32(0), ol)
}

// unlockFile releases the lock on the file (Windows implementation)
func unlockFile(file *os.File) error {
	ol := new(windows.Overlapped)
	return windows.UnlockFileEx(windows.Handle(file.Fd()), 0, ^uint32(0), ^uint32(0), ol)
}
