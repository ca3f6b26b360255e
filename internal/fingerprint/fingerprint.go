// Package fingerprint derives the short content digest used to key history and blobs.
package fingerprint

import (
	"crypto/md5"
	"encoding/hex"
	"strings"
)

// Length is the number of hex characters kept from the digest.
const Length = 10

// Of returns the fingerprint of content: the first Length hex characters of the MD5
// digest of the whitespace-trimmed text. Empty content is a valid version.
func Of(content string) string {
	sum := md5.Sum([]byte(strings.TrimSpace(content)))
	return hex.EncodeToString(sum[:])[:Length]
}

// IsValid reports whether s has the shape of a fingerprint, which also makes it safe as a file name.
func IsValid(s string) bool {
	if len(s) != Length {
		return false
	}
	for _, c := range s {
		if !(c >= '0' && c <= '9' || c >= 'a' && c <= 'f') {
			return false
		}
	}
	return true
}
