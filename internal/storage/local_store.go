package storage

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
)

var ErrEmptyContent = errors.New("upload content is empty")

// LocalStore writes uploads under root using the `{userID}/{timestamp}_{name}`
// convention and returns the public URL recorded into the database.
type LocalStore struct {
	root          string
	publicBaseURL string
}

func NewLocalStore(root string, publicBaseURL string) *LocalStore {
	return &LocalStore{
		root:          root,
		publicBaseURL: strings.TrimRight(publicBaseURL, "/"),
	}
}

func (store *LocalStore) Save(userID uint, filename string, content []byte) (string, error) {
	if len(content) == 0 {
		return "", ErrEmptyContent
	}

	key := fmt.Sprintf("%d/%d_%s", userID, time.Now().Unix(), sanitizeFilename(filename))
	fullPath := filepath.Join(store.root, filepath.FromSlash(key))
	if err := os.MkdirAll(filepath.Dir(fullPath), 0o755); err != nil {
		return "", fmt.Errorf("create upload directory: %w", err)
	}
	if err := os.WriteFile(fullPath, content, 0o644); err != nil {
		return "", fmt.Errorf("write upload: %w", err)
	}

	return store.publicBaseURL + "/" + key, nil
}

// sanitizeFilename keeps a safe basename; anything unusable collapses into a
// generated name so the object key stays unique and path-traversal free.
func sanitizeFilename(raw string) string {
	name := filepath.Base(strings.TrimSpace(raw))
	if name == "." || name == string(filepath.Separator) || name == "" {
		return uuid.NewString()
	}

	var builder strings.Builder
	for _, char := range name {
		switch {
		case char >= 'a' && char <= 'z', char >= 'A' && char <= 'Z', char >= '0' && char <= '9':
			builder.WriteRune(char)
		case char == '.', char == '-', char == '_':
			builder.WriteRune(char)
		default:
			builder.WriteRune('_')
		}
	}

	cleaned := strings.Trim(builder.String(), "._")
	if cleaned == "" {
		return uuid.NewString()
	}
	return cleaned
}
