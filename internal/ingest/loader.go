// Package ingest populates the policy collection in the vector index: load
// documents, split them into overlapping chunks, embed, upsert.
package ingest

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// Document is one policy file awaiting chunking.
type Document struct {
	Name    string
	Content string
}

// LoadDocuments reads all .txt and .md files directly under dir. The file
// name becomes the chunk source identifier.
func LoadDocuments(dir string) ([]Document, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("read policy dir: %w", err)
	}

	var docs []Document
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		ext := strings.ToLower(filepath.Ext(entry.Name()))
		if ext != ".txt" && ext != ".md" {
			continue
		}
		content, err := os.ReadFile(filepath.Join(dir, entry.Name()))
		if err != nil {
			return nil, fmt.Errorf("read %s: %w", entry.Name(), err)
		}
		docs = append(docs, Document{
			Name:    entry.Name(),
			Content: string(content),
		})
	}
	return docs, nil
}
