package tokenizer

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoadConfigMissingFileIsZeroValue(t *testing.T) {
	cfg, err := LoadConfig("")
	if err != nil {
		t.Fatalf("LoadConfig(\"\") error: %v", err)
	}
	if cfg.AsyncKeywords {
		t.Errorf("AsyncKeywords = true, want false for zero value")
	}

	cfg, err = LoadConfig(filepath.Join(t.TempDir(), "does-not-exist.yaml"))
	if err != nil {
		t.Fatalf("LoadConfig(missing) error: %v", err)
	}
	if cfg.AsyncKeywords {
		t.Errorf("AsyncKeywords = true, want false for missing file")
	}
}

func TestLoadConfigDecodesYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "grammar.yaml")
	if err := os.WriteFile(path, []byte("async_keywords: true\n"), 0644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}

	cfg, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("LoadConfig error: %v", err)
	}
	if !cfg.AsyncKeywords {
		t.Errorf("AsyncKeywords = false, want true")
	}
}
