package task

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// UniquePath returns path unchanged when nothing exists there. Otherwise it
// inserts an incrementing counter before the extension (name.pdf, name_1.pdf,
// name_2.pdf, ...) and returns the first free candidate. It never overwrites
// an existing file; the caller is expected to create the returned path
// promptly, which is safe because at most one task writes at a time.
func UniquePath(path string) string {
	ext := filepath.Ext(path)
	base := strings.TrimSuffix(path, ext)
	candidate := path
	for counter := 1; pathExists(candidate); counter++ {
		candidate = fmt.Sprintf("%s_%d%s", base, counter, ext)
	}
	return candidate
}

func pathExists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}
