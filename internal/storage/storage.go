// Package storage persists generated documents and hands back retrievable
// URLs. Two drivers exist: a local directory for development and S3.
package storage

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

type Store interface {
	// Put writes the document under key and returns a retrievable URL.
	Put(ctx context.Context, key string, data []byte, contentType string) (string, error)
}

type LocalStore struct {
	baseDir   string
	publicURL string
}

func NewLocalStore(baseDir, publicURL string) *LocalStore {
	return &LocalStore{baseDir: baseDir, publicURL: strings.TrimRight(publicURL, "/")}
}

func (s *LocalStore) Put(_ context.Context, key string, data []byte, _ string) (string, error) {
	path := filepath.Join(s.baseDir, filepath.FromSlash(key))
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return "", fmt.Errorf("create document dir: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return "", fmt.Errorf("write document: %w", err)
	}
	if s.publicURL == "" {
		return "file://" + path, nil
	}
	return s.publicURL + "/" + key, nil
}
