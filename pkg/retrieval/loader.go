package retrieval

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

// LoadDocumentsFromDir reads every .md and .txt file in dir (non-recursive)
// into a Document keyed by its filename. Results are sorted by source so
// ingestion order is stable.
func LoadDocumentsFromDir(dir string) ([]Document, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("read notes directory %s: %w", dir, err)
	}

	var docs []Document
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		ext := strings.ToLower(filepath.Ext(entry.Name()))
		if ext != ".md" && ext != ".txt" {
			continue
		}

		content, err := os.ReadFile(filepath.Join(dir, entry.Name()))
		if err != nil {
			return nil, fmt.Errorf("read note %s: %w", entry.Name(), err)
		}
		if strings.TrimSpace(string(content)) == "" {
			continue
		}

		docs = append(docs, Document{
			Source:  entry.Name(),
			Content: string(content),
		})
	}

	sort.Slice(docs, func(i, j int) bool {
		return docs[i].Source < docs[j].Source
	})
	return docs, nil
}
