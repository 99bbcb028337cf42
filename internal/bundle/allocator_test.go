package bundle

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func TestAllocateBundleDir_DerivedName(t *testing.T) {
	root := t.TempDir()
	now := time.Date(2026, 3, 14, 9, 26, 53, 0, time.UTC)

	dir, err := allocateBundleDir(root, "", now)
	if err != nil {
		t.Fatalf("allocateBundleDir() error = %v", err)
	}

	if filepath.Base(dir) != "Queue_20260314_092653" {
		t.Fatalf("derived bundle name = %s, want Queue_20260314_092653", filepath.Base(dir))
	}
	if info, err := os.Stat(dir); err != nil || !info.IsDir() {
		t.Fatalf("bundle dir not created: %v", err)
	}
}

func TestAllocateBundleDir_CreatesNestedRoot(t *testing.T) {
	root := filepath.Join(t.TempDir(), "a", "b", "exports")

	dir, err := allocateBundleDir(root, "Run1", time.Now())
	if err != nil {
		t.Fatalf("allocateBundleDir() error = %v", err)
	}
	if !strings.HasSuffix(dir, filepath.Join("a", "b", "exports", "Run1")) {
		t.Fatalf("unexpected bundle path: %s", dir)
	}
}

func TestAllocateBundleDir_Idempotent(t *testing.T) {
	root := t.TempDir()

	first, err := allocateBundleDir(root, "Same", time.Now())
	if err != nil {
		t.Fatalf("first allocation error = %v", err)
	}
	second, err := allocateBundleDir(root, "Same", time.Now())
	if err != nil {
		t.Fatalf("second allocation error = %v", err)
	}
	if first != second {
		t.Fatalf("allocations differ: %s vs %s", first, second)
	}
}

func TestAllocateBundleDir_RootIsFile(t *testing.T) {
	tmp := t.TempDir()
	blocker := filepath.Join(tmp, "file")
	if err := os.WriteFile(blocker, []byte("x"), 0o644); err != nil {
		t.Fatalf("write blocker: %v", err)
	}

	if _, err := allocateBundleDir(filepath.Join(blocker, "sub"), "X", time.Now()); err == nil {
		t.Fatal("expected error when root path crosses a regular file")
	}
}

func TestValidateOutputRoot(t *testing.T) {
	tmp := t.TempDir()
	filePath := filepath.Join(tmp, "f.txt")
	if err := os.WriteFile(filePath, []byte("x"), 0o644); err != nil {
		t.Fatalf("write file: %v", err)
	}

	tests := []struct {
		name    string
		dir     string
		wantErr bool
	}{
		{name: "existing dir", dir: tmp, wantErr: false},
		{name: "missing dir is fine", dir: filepath.Join(tmp, "later"), wantErr: false},
		{name: "empty", dir: "  ", wantErr: true},
		{name: "traversal", dir: "/tmp/../etc", wantErr: true},
		{name: "unclean", dir: tmp + "//x", wantErr: true},
		{name: "regular file", dir: filePath, wantErr: true},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			err := ValidateOutputRoot(tc.dir)
			if (err != nil) != tc.wantErr {
				t.Fatalf("ValidateOutputRoot(%q) error = %v, wantErr %v", tc.dir, err, tc.wantErr)
			}
		})
	}
}
