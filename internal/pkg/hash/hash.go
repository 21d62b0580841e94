// Package hash provides the password digest used both for storage and as the
// bearer credential returned by login.
//
// The digest is a plain MD5 hex string. It is deterministic on purpose: the
// access-control middleware and the login flow look users up by an exact
// hashed_pass equality filter, which rules out salted schemes. Not suitable
// for production password storage.
package hash

import (
	"crypto/md5"
	"encoding/hex"
)

// Digest returns the lowercase hex MD5 digest of text.
// Same input always yields the same 32-character output.
func Digest(text string) string {
	sum := md5.Sum([]byte(text))
	return hex.EncodeToString(sum[:])
}
