// Package ingest reads scenario documents from disk and reduces them to
// plain text for the scenario parser. It is the upstream collaborator
// the core consumes text from; the core itself never touches files.
package ingest

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
)

// Document is one ingested file reduced to plain text.
type Document struct {
	// Name is the base filename, recorded on scenario source locations.
	Name string
	// Text is the plain-text content.
	Text string
}

// Reader loads scenario documents from files and glob patterns.
type Reader struct {
	extensions map[string]bool
	excludes   map[string]bool
	converter  *Converter
	logger     *slog.Logger
}

// NewReader creates a reader accepting the given file extensions and
// skipping the given directory names.
func NewReader(extensions, excludeDirs []string) *Reader {
	exts := make(map[string]bool, len(extensions))
	for _, ext := range extensions {
		if !strings.HasPrefix(ext, ".") {
			ext = "." + ext
		}
		exts[strings.ToLower(ext)] = true
	}
	excl := make(map[string]bool, len(excludeDirs))
	for _, dir := range excludeDirs {
		excl[dir] = true
	}
	return &Reader{
		extensions: exts,
		excludes:   excl,
		converter:  NewConverter(),
		logger:     slog.Default(),
	}
}

// SetLogger sets the logger for the reader.
func (r *Reader) SetLogger(logger *slog.Logger) {
	r.logger = logger
}

// ReadPath reads a file, a directory (recursively), or a glob pattern
// with ** support, and returns the matched documents in stable name
// order.
func (r *Reader) ReadPath(path string) ([]Document, error) {
	info, err := os.Stat(path)
	switch {
	case err == nil && info.IsDir():
		return r.readGlob(filepath.Join(path, "**", "*"))
	case err == nil:
		doc, err := r.ReadFile(path)
		if err != nil {
			return nil, err
		}
		return []Document{doc}, nil
	default:
		return r.readGlob(path)
	}
}

// readGlob expands a doublestar pattern and reads every accepted match.
func (r *Reader) readGlob(pattern string) ([]Document, error) {
	matches, err := doublestar.FilepathGlob(pattern)
	if err != nil {
		return nil, fmt.Errorf("glob %q: %w", pattern, err)
	}
	sort.Strings(matches)

	var docs []Document
	for _, match := range matches {
		info, err := os.Stat(match)
		if err != nil || info.IsDir() {
			continue
		}
		if !r.accepts(match) {
			continue
		}
		doc, err := r.ReadFile(match)
		if err != nil {
			r.logger.Warn("Skipping unreadable document", "path", match, "error", err)
			continue
		}
		docs = append(docs, doc)
	}
	if len(docs) == 0 {
		return nil, fmt.Errorf("no documents matched %q", pattern)
	}
	return docs, nil
}

// ReadFile reads one file and reduces it to plain text.
func (r *Reader) ReadFile(path string) (Document, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		return Document{}, fmt.Errorf("read document: %w", err)
	}

	text := string(content)
	ext := strings.ToLower(filepath.Ext(path))
	if ext == ".html" || ext == ".htm" {
		converted, err := r.converter.Convert(content)
		if err != nil {
			return Document{}, fmt.Errorf("extract text from %s: %w", filepath.Base(path), err)
		}
		text = converted
	}

	return Document{Name: filepath.Base(path), Text: text}, nil
}

// accepts reports whether a path passes the extension and exclude filters.
func (r *Reader) accepts(path string) bool {
	for _, part := range strings.Split(filepath.ToSlash(filepath.Dir(path)), "/") {
		if r.excludes[part] {
			return false
		}
	}
	if len(r.extensions) == 0 {
		return true
	}
	return r.extensions[strings.ToLower(filepath.Ext(path))]
}
