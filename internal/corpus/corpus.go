package corpus

import (
	"encoding/json"
	"fmt"
	"log"
	"os"
	"strings"
)

// Doc is one text of a JSONL corpus.
type Doc struct {
	ID     string `json:"id"`
	Source string `json:"source"`
	Text   string `json:"text"`
	// Line is the 1-based line of the document in its file.
	Line int `json:"-"`
}

// LoadFromJSONL loads documents from a JSONL file, skipping malformed lines
// and documents without text.
func LoadFromJSONL(path string) ([]Doc, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read file %s: %w", path, err)
	}

	var docs []Doc
	lines := strings.Split(string(data), "\n")

	for i, line := range lines {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}

		var doc Doc
		if err := json.Unmarshal([]byte(line), &doc); err != nil {
			log.Printf("Warning: skipping malformed JSON at line %d in %s: %v", i+1, path, err)
			continue
		}
		if doc.Text == "" {
			continue
		}
		doc.Line = i + 1
		if doc.Source == "" {
			doc.Source = path
		}
		docs = append(docs, doc)
	}

	if len(docs) == 0 {
		return nil, fmt.Errorf("no valid documents found in %s", path)
	}

	return docs, nil
}
