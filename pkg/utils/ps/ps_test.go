package ps

import (
	"os"
	"path/filepath"
	"testing"
)

func TestMemoryStatus(t *testing.T) {
	m, err := MemoryStatus()
	if err != nil {
		t.Fatal(err)
	}
	if m.Total == "" || m.Used == "" {
		t.Fatalf("unhumanized memory status: %+v", m)
	}
}

func TestDirSize(t *testing.T) {
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, "a"), make([]byte, 100), 0660); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(dir, "b"), make([]byte, 28), 0660); err != nil {
		t.Fatal(err)
	}

	size, err := DirSize(dir)
	if err != nil {
		t.Fatal(err)
	}
	if size != 128 {
		t.Fatalf("size = %d, want 128", size)
	}
}
