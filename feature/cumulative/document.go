package cumulative

import (
	"context"
	"fmt"
	"os"
	"path"
	"path/filepath"
	"sort"
	"strings"

	"matchup-model/core/storage"
)

// Document is the line stream of one cumulative sheet.
type Document struct {
	// Name identifies the source. Its leading characters may carry the year.
	Name  string
	Lines []string
}

// NewDocument splits text into a Document.
func NewDocument(name, text string) Document {
	return Document{Name: name, Lines: SplitLines(text)}
}

// SplitLines splits text on newlines and trims each line.
func SplitLines(text string) []string {
	text = strings.ReplaceAll(text, "\r\n", "\n")
	text = strings.ReplaceAll(text, "\r", "\n")
	raw := strings.Split(text, "\n")
	lines := make([]string, len(raw))
	for i, l := range raw {
		lines[i] = strings.TrimSpace(l)
	}
	return lines
}

// Empty reports whether the document has no non-blank line.
func (d Document) Empty() bool {
	for _, l := range d.Lines {
		if l != "" {
			return false
		}
	}
	return true
}

// LoadDir reads every file in dir with the given extension, sorted by name.
func LoadDir(dir, ext string) ([]Document, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("failed to read input directory %s: %w", dir, err)
	}

	var names []string
	for _, e := range entries {
		if e.IsDir() || !hasExt(e.Name(), ext) {
			continue
		}
		names = append(names, e.Name())
	}
	sort.Strings(names)

	docs := make([]Document, 0, len(names))
	for _, name := range names {
		data, err := os.ReadFile(filepath.Join(dir, name))
		if err != nil {
			return nil, fmt.Errorf("failed to read %s: %w", name, err)
		}
		docs = append(docs, NewDocument(name, string(data)))
	}
	return docs, nil
}

// LoadFromStorage reads every object under prefix with the given extension.
// Documents are named after the object's base name.
func LoadFromStorage(ctx context.Context, client storage.Client, bucket, prefix, ext string) ([]Document, error) {
	keys, err := storage.ListKeys(ctx, client, bucket, prefix, ext)
	if err != nil {
		return nil, err
	}

	docs := make([]Document, 0, len(keys))
	for _, key := range keys {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		data, err := storage.ReadObject(ctx, client, bucket, key)
		if err != nil {
			return nil, err
		}
		docs = append(docs, NewDocument(path.Base(key), string(data)))
	}
	return docs, nil
}

func hasExt(name, ext string) bool {
	return ext == "" || strings.HasSuffix(strings.ToLower(name), strings.ToLower(ext))
}
