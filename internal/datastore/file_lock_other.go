//go:build !unix && !windows

package datastore

import "os"

// No advisory locking on this platform; the in-process mutex is the only guard.
func lockFile(*os.File) error { return nil }

func unlockFile(*os.File) error { return nil }
