package database

import (
	"encoding/json"
	"log"
	"os"

	"checkmate-bot/internal/models"
)

// FileCache is the local fallback store: one JSON file holding the
// serialized document. It is written after every sync cycle regardless
// of remote success, and read at startup when the remote store misses.
type FileCache struct {
	path string
}

// NewFileCache binds the cache to a file path.
func NewFileCache(path string) *FileCache {
	return &FileCache{path: path}
}

// Read returns the cached document, or nil when the file is missing or
// unreadable. Malformed JSON is logged and treated as no data.
func (c *FileCache) Read() *models.Document {
	data, err := os.ReadFile(c.path)
	if err != nil {
		return nil
	}
	var doc models.Document
	if err := json.Unmarshal(data, &doc); err != nil {
		log.Println("Ignoring malformed cache file:", err)
		return nil
	}
	return &doc
}

// Write serializes the document to the cache file.
func (c *FileCache) Write(doc *models.Document) error {
	data, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(c.path, data, 0o644)
}
