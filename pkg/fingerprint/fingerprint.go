// Package fingerprint computes stable content digests for staleness detection.
// A fingerprint is a pure function of the input bytes with no process-specific
// salt, so a digest recorded by one process can be compared against one
// computed by a later process over the same file.
package fingerprint

import (
	"crypto/sha256"
	"encoding/hex"
	"io"
	"os"
)

// Fingerprint is a lowercase hex digest of file content.
type Fingerprint string

// Func computes a fingerprint for a byte slice. The editor accepts any Func
// so the algorithm stays configurable; Of is the default.
type Func func(data []byte) Fingerprint

// Of returns the SHA-256 digest of data as lowercase hex.
func Of(data []byte) Fingerprint {
	sum := sha256.Sum256(data)
	return Fingerprint(hex.EncodeToString(sum[:]))
}

// OfFile streams the file at path through SHA-256 without loading it whole.
func OfFile(path string) (Fingerprint, error) {
	f, err := os.Open(path)
	if err != nil {
		return "", err
	}
	defer f.Close()

	h := sha256.New()
	if _, err := io.Copy(h, f); err != nil {
		return "", err
	}
	return Fingerprint(hex.EncodeToString(h.Sum(nil))), nil
}
