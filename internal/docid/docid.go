// Package docid provides a deterministic document ID from a file path for ingested sheets.
package docid

import (
	"crypto/sha256"
	"encoding/hex"
	"path/filepath"
)

const prefix = "sheet:"

// SheetDocID returns a stable document ID for the given absolute path.
// Same path always yields the same ID. Used to correlate re-ingests of
// the same dropped file across runs.
func SheetDocID(absolutePath string) string {
	normalized := filepath.Clean(absolutePath)
	hash := sha256.Sum256([]byte(normalized))
	return prefix + hex.EncodeToString(hash[:])
}
