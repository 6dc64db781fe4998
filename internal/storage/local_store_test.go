package storage

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestSaveWritesFileAndReturnsPublicURL(t *testing.T) {
	t.Parallel()

	root := t.TempDir()
	store := NewLocalStore(root, "/uploads/")

	url, err := store.Save(42, "avatar.png", []byte("png-bytes"))
	if err != nil {
		t.Fatalf("Save() error = %v", err)
	}
	if !strings.HasPrefix(url, "/uploads/42/") {
		t.Fatalf("url = %q, want /uploads/42/ prefix", url)
	}
	if !strings.HasSuffix(url, "_avatar.png") {
		t.Fatalf("url = %q, want _avatar.png suffix", url)
	}

	relative := strings.TrimPrefix(url, "/uploads/")
	content, err := os.ReadFile(filepath.Join(root, filepath.FromSlash(relative)))
	if err != nil {
		t.Fatalf("read stored file: %v", err)
	}
	if string(content) != "png-bytes" {
		t.Fatalf("stored content = %q", content)
	}
}

func TestSaveRejectsEmptyContent(t *testing.T) {
	t.Parallel()

	store := NewLocalStore(t.TempDir(), "/uploads")
	if _, err := store.Save(1, "cv.pdf", nil); !errors.Is(err, ErrEmptyContent) {
		t.Fatalf("Save() error = %v, want ErrEmptyContent", err)
	}
}

func TestSaveNeverEscapesRoot(t *testing.T) {
	t.Parallel()

	root := t.TempDir()
	store := NewLocalStore(root, "/uploads")

	url, err := store.Save(7, "../../etc/passwd", []byte("data"))
	if err != nil {
		t.Fatalf("Save() error = %v", err)
	}
	if !strings.HasSuffix(url, "_passwd") {
		t.Fatalf("url = %q, want only the basename to survive", url)
	}

	entries, err := os.ReadDir(filepath.Join(root, "7"))
	if err != nil {
		t.Fatalf("read user directory: %v", err)
	}
	if len(entries) != 1 {
		t.Fatalf("user directory holds %d entries, want 1", len(entries))
	}
}

func TestSanitizeFilename(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name string
		raw  string
		want string
	}{
		{name: "plain", raw: "resume.pdf", want: "resume.pdf"},
		{name: "traversal", raw: "../../secret.txt", want: "secret.txt"},
		{name: "spaces and symbols", raw: "my resume (final).pdf", want: "my_resume__final_.pdf"},
		{name: "unicode collapses", raw: "резюме.pdf", want: "pdf"},
	}
	for _, testCase := range cases {
		testCase := testCase
		t.Run(testCase.name, func(t *testing.T) {
			t.Parallel()
			if got := sanitizeFilename(testCase.raw); got != testCase.want {
				t.Fatalf("sanitizeFilename(%q) = %q, want %q", testCase.raw, got, testCase.want)
			}
		})
	}
}

func TestSanitizeFilenameFallsBackToGeneratedName(t *testing.T) {
	t.Parallel()

	got := sanitizeFilename("....")
	if got == "" || strings.Contains(got, ".") {
		t.Fatalf("sanitizeFilename fallback = %q, want a generated dotless name", got)
	}
}
