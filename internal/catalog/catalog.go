package catalog

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/rayulu7/chatbot/internal/store"
)

// Response is one canned answer: descriptive text plus an optional table.
type Response struct {
	Content string       `yaml:"content"`
	Table   *store.Table `yaml:"table"`
}

// Entry binds a lowercase topic keyword to its response.
type Entry struct {
	Keyword  string   `yaml:"keyword"`
	Response Response `yaml:",inline"`
}

// Catalog is a fixed, ordered keyword-to-response mapping with a fallback
// response for questions that match nothing. The entry order is the
// substring scan order and never changes after construction.
type Catalog struct {
	entries  []Entry
	fallback Response
}

func New(fallback Response, entries []Entry) *Catalog {
	return &Catalog{
		entries:  append([]Entry(nil), entries...),
		fallback: fallback,
	}
}

// fileSpec is the on-disk YAML layout. Entries keep document order.
type fileSpec struct {
	Default *Response `yaml:"default"`
	Entries []Entry   `yaml:"entries"`
}

// LoadFile reads a catalog definition from a YAML file at startup. The file
// must carry a default response; entries are scanned in document order.
func LoadFile(path string) (*Catalog, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read catalog file: %w", err)
	}
	var spec fileSpec
	if err := yaml.Unmarshal(b, &spec); err != nil {
		return nil, fmt.Errorf("parse catalog file: %w", err)
	}
	if spec.Default == nil || spec.Default.Content == "" {
		return nil, fmt.Errorf("catalog file %s has no default response", path)
	}
	for i, e := range spec.Entries {
		if e.Keyword == "" {
			return nil, fmt.Errorf("catalog file %s: entry %d has no keyword", path, i)
		}
	}
	return New(*spec.Default, spec.Entries), nil
}
