package datastore

import "errors"

var (
	// ErrBlobNotFound is returned when no blob exists for a digest.
	ErrBlobNotFound = errors.New("blob not found")
	// ErrStoreLocked is returned when another process holds the history store.
	ErrStoreLocked = errors.New("history store is locked by another process")
	// ErrInvalidDigest is returned for digests that are not well-formed fingerprints.
	ErrInvalidDigest = errors.New("invalid digest")
	// ErrStoreClosed is returned by operations on a closed store.
	ErrStoreClosed = errors.New("history store is closed")
)
