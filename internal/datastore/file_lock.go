package datastore

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/aleister1102/jsmon/internal/common"
)

// errLockHeld is returned by lockFile when another open handle holds the lock.
var errLockHeld = errors.New("lock held")

const lockAttempts = 3

// fileLock is an advisory exclusive lock on path, held through an open handle for the
// lifetime of a store. The OS drops it when the process exits, so a crashed run never
// leaves the store locked; the file content only records the owner for diagnostics.
type fileLock struct {
	path string
	file *os.File
}

func acquireFileLock(path string) (*fileLock, error) {
	for attempt := 0; attempt < lockAttempts; attempt++ {
		f, err := os.OpenFile(path, os.O_CREATE|os.O_RDWR, 0o644)
		if err != nil {
			return nil, common.WrapError(err, "failed to open lock file")
		}

		if err := lockFile(f); err != nil {
			owner := readOwner(f)
			_ = f.Close()
			if errors.Is(err, errLockHeld) {
				return nil, fmt.Errorf("%w: %s is held by %s", ErrStoreLocked, path, owner)
			}
			return nil, common.WrapError(err, "failed to lock store")
		}

		// The previous owner may have removed the file between our open and lock.
		if !isCurrentFile(f, path) {
			_ = unlockFile(f)
			_ = f.Close()
			continue
		}

		writeOwner(f)
		return &fileLock{path: path, file: f}, nil
	}
	return nil, fmt.Errorf("%w: %s keeps being replaced", ErrStoreLocked, path)
}

// release removes the lock file while still holding the lock, then unlocks.
// Where an open file cannot be removed the removal is retried after closing.
func (l *fileLock) release() error {
	if l.file == nil {
		return nil
	}
	removeErr := os.Remove(l.path)
	_ = unlockFile(l.file)
	closeErr := l.file.Close()
	l.file = nil

	if removeErr != nil && !os.IsNotExist(removeErr) {
		if err := os.Remove(l.path); err != nil && !os.IsNotExist(err) {
			return common.WrapError(err, "failed to remove lock file")
		}
	}
	return common.WrapError(closeErr, "failed to close lock file")
}

func isCurrentFile(f *os.File, path string) bool {
	held, err := f.Stat()
	if err != nil {
		return false
	}
	onDisk, err := os.Stat(path)
	return err == nil && os.SameFile(held, onDisk)
}

func writeOwner(f *os.File) {
	owner := strconv.Itoa(os.Getpid()) + " " + time.Now().UTC().Format(time.RFC3339) + "\n"
	if err := f.Truncate(0); err == nil {
		_, _ = f.WriteAt([]byte(owner), 0)
	}
}

func readOwner(f *os.File) string {
	buf := make([]byte, 64)
	n, _ := f.ReadAt(buf, 0)
	fields := strings.Fields(string(buf[:n]))
	if len(fields) == 0 {
		return "another process"
	}
	return "pid " + fields[0]
}
