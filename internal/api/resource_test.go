package api

import (
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/ColeHoward/WebWorker/internal/types"
)

func getRequest(path string) types.Request {
	return types.Request{Method: "GET", Target: "/" + path, Path: path}
}

func TestOpenResource(t *testing.T) {
	root := t.TempDir()
	if err := os.WriteFile(filepath.Join(root, "index.html"), []byte("hello"), 0o644); err != nil {
		t.Fatalf("Failed to write fixture: %v", err)
	}
	if err := os.Mkdir(filepath.Join(root, "dir"), 0o755); err != nil {
		t.Fatalf("Failed to create dir: %v", err)
	}

	testCases := []struct {
		name   string
		req    types.Request
		exists bool
	}{
		{"regular file", getRequest("index.html"), true},
		{"missing file", getRequest("missing.html"), false},
		{"directory", getRequest("dir"), false},
		{"root", getRequest(""), false},
		{"file used as directory", getRequest("index.html/x"), false},
		{"unresolved request", types.Request{Method: "POST"}, false},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			res, err := OpenResource(root, tc.req)
			if err != nil {
				t.Fatalf("Expected no error, got %v", err)
			}
			defer res.Close()

			if res.Exists() != tc.exists {
				t.Errorf("Expected Exists() %v, got %v", tc.exists, res.Exists())
			}
		})
	}
}

// the open handle keeps serving content after the path is unlinked
func TestResourceSurvivesRemoval(t *testing.T) {
	root := t.TempDir()
	name := filepath.Join(root, "photo.png")
	if err := os.WriteFile(name, []byte("PNGDATA"), 0o644); err != nil {
		t.Fatalf("Failed to write fixture: %v", err)
	}

	res, err := OpenResource(root, getRequest("photo.png"))
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	defer res.Close()

	if err := os.Remove(name); err != nil {
		t.Fatalf("Failed to remove fixture: %v", err)
	}

	if res.Size() != 7 {
		t.Errorf("Expected size 7, got %d", res.Size())
	}
	data, err := io.ReadAll(res.Reader())
	if err != nil {
		t.Fatalf("Failed to read resource: %v", err)
	}
	if string(data) != "PNGDATA" {
		t.Errorf("Expected 'PNGDATA', got '%s'", data)
	}
}

func TestNilResource(t *testing.T) {
	var res *Resource
	if res.Exists() {
		t.Error("Expected nil resource not to exist")
	}
	if res.Size() != 0 {
		t.Errorf("Expected size 0, got %d", res.Size())
	}
	if err := res.Close(); err != nil {
		t.Errorf("Expected nil Close to succeed, got %v", err)
	}
}
