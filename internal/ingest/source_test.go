package ingest

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestIsURL(t *testing.T) {
	tests := []struct {
		source string
		want   bool
	}{
		{"https://example.com/doc", true},
		{"http://example.com", true},
		{"/tmp/file.txt", false},
		{"file.txt", false},
		{"-", false},
		{"ftp://example.com", false},
	}

	for _, tt := range tests {
		if got := IsURL(tt.source); got != tt.want {
			t.Errorf("IsURL(%q) = %v, want %v", tt.source, got, tt.want)
		}
	}
}

func TestLoad_File(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "doc.txt")
	if err := os.WriteFile(path, []byte("file contents"), 0o644); err != nil {
		t.Fatalf("Failed to write test file: %v", err)
	}

	loader := NewLoader(nil)
	text, err := loader.Load(context.Background(), path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if text != "file contents" {
		t.Errorf("Expected file contents, got %q", text)
	}
}

func TestLoad_MissingFile(t *testing.T) {
	loader := NewLoader(nil)
	_, err := loader.Load(context.Background(), "/nonexistent/path.txt")
	if err == nil {
		t.Fatal("Expected error for missing file")
	}
}

func TestLoad_Stdin(t *testing.T) {
	loader := NewLoader(nil)
	loader.stdin = strings.NewReader("piped document")

	text, err := loader.Load(context.Background(), "-")
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if text != "piped document" {
		t.Errorf("Expected piped document, got %q", text)
	}
}

func TestLoad_URL(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/plain")
		_, _ = fmt.Fprint(w, "remote document")
	}))
	defer server.Close()

	loader := NewLoader(NewFetcher(testHTTPConfig(), nil))
	text, err := loader.Load(context.Background(), server.URL)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if text != "remote document" {
		t.Errorf("Expected remote document, got %q", text)
	}
}
