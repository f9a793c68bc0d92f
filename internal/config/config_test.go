package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestDefaultLimits(t *testing.T) {
	l := DefaultLimits()
	if l.MaxFilterBytes != 10*1024 {
		t.Errorf("MaxFilterBytes = %d, want %d", l.MaxFilterBytes, 10*1024)
	}
	if l.ParseCacheCapacity != 100 {
		t.Errorf("ParseCacheCapacity = %d, want 100", l.ParseCacheCapacity)
	}
}

func TestLoadOverridesDefaults(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "limits.yaml")
	if err := os.WriteFile(path, []byte("max_filter_bytes: 2048\n"), 0o644); err != nil {
		t.Fatalf("failed to write test fixture: %v", err)
	}

	l, err := Load(path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if l.MaxFilterBytes != 2048 {
		t.Errorf("MaxFilterBytes = %d, want 2048", l.MaxFilterBytes)
	}
	if l.MaxVariableNameBytes != 255 {
		t.Errorf("MaxVariableNameBytes = %d, want default 255", l.MaxVariableNameBytes)
	}
}
