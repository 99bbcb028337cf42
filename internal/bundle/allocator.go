package bundle

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"
)

const bundleNameTimeFormat = "20060102_150405"

// allocateBundleDir ensures outputRoot exists, derives a bundle name when
// none was supplied, and creates the bundle directory. This is the only
// pipeline step whose failure aborts a run: every later stage needs the
// destination.
func allocateBundleDir(outputRoot, bundleName string, now time.Time) (string, error) {
	if strings.TrimSpace(outputRoot) == "" {
		return "", fmt.Errorf("output root is required")
	}

	absRoot, err := filepath.Abs(outputRoot)
	if err != nil {
		return "", fmt.Errorf("resolve output root: %w", err)
	}
	if err := os.MkdirAll(absRoot, 0o755); err != nil {
		return "", fmt.Errorf("create output root: %w", err)
	}

	if bundleName == "" {
		bundleName = "Queue_" + now.Format(bundleNameTimeFormat)
	}

	dir := filepath.Join(absRoot, bundleName)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("create bundle directory: %w", err)
	}
	return dir, nil
}

// ValidateOutputRoot rejects traversal segments and unclean paths before a
// request reaches the allocator. The root itself may not exist yet; the
// allocator creates it.
func ValidateOutputRoot(dir string) error {
	if strings.TrimSpace(dir) == "" {
		return fmt.Errorf("output_root is required")
	}

	for _, part := range strings.Split(filepath.ToSlash(dir), "/") {
		if part == ".." {
			return fmt.Errorf("output_root cannot contain path traversal")
		}
	}

	cleaned := filepath.Clean(dir)
	if cleaned != dir {
		return fmt.Errorf("output_root must be a clean path")
	}

	if info, err := os.Stat(dir); err == nil && !info.IsDir() {
		return fmt.Errorf("output_root is not a directory")
	}
	return nil
}
