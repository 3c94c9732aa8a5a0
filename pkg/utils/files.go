// Package utils holds the small amount of path plumbing shared by the
// saaamc and saaamplay commands: resolving a source path the user passed
// on the command line and reading it into the string Compile expects.
package utils

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// sourceExt is the only extension LoadSource accepts without complaint; a
// mismatched extension is not fatal, just flagged, since a bare filename
// without one is common in quick one-off scripts.
const sourceExt = ".saaam"

// LoadSource resolves relPath to an absolute path and reads it, returning
// the file contents as the source string Compile expects. warning is
// non-empty when the resolved file doesn't carry the sourceExt extension,
// for the caller to surface without treating it as a read failure.
func LoadSource(relPath string) (source string, warning string, err error) {
	fullPath, err := filepath.Abs(relPath)
	if err != nil {
		return "", "", fmt.Errorf("resolving %q: %w", relPath, err)
	}

	if !strings.EqualFold(filepath.Ext(fullPath), sourceExt) {
		warning = fmt.Sprintf("%s does not have a %s extension", fullPath, sourceExt)
	}

	data, err := os.ReadFile(fullPath)
	if err != nil {
		return "", warning, fmt.Errorf("reading %q: %w", fullPath, err)
	}

	return string(data), warning, nil
}
