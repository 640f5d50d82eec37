package catalog

import (
	"strings"
	"time"

	"github.com/rayulu7/chatbot/internal/store"
)

// Resolution is the outcome of resolving a question: the matched entry's
// text and table, stamped with the resolution time.
type Resolution struct {
	Content   string
	Table     *store.Table
	Timestamp time.Time
}

// Resolve picks the response for a free-text question. The question is
// lowercased and trimmed, then matched against entries by exact keyword
// equality first, then by the first keyword contained in the question in
// catalog order, falling back to the default response. Every input resolves;
// an empty question falls through to the default.
func (c *Catalog) Resolve(question string) Resolution {
	normalized := strings.ToLower(strings.TrimSpace(question))

	resp := c.fallback
	if match, ok := c.lookup(normalized); ok {
		resp = match
	}
	return Resolution{
		Content:   resp.Content,
		Table:     cloneTable(resp.Table),
		Timestamp: time.Now().UTC(),
	}
}

func (c *Catalog) lookup(normalized string) (Response, bool) {
	for _, e := range c.entries {
		if e.Keyword == normalized {
			return e.Response, true
		}
	}
	if normalized == "" {
		return Response{}, false
	}
	for _, e := range c.entries {
		if strings.Contains(normalized, e.Keyword) {
			return e.Response, true
		}
	}
	return Response{}, false
}

// cloneTable copies the table so callers can never mutate catalog data
// through a resolved message.
func cloneTable(t *store.Table) *store.Table {
	if t == nil {
		return nil
	}
	cp := store.Table{
		Headers:     append([]string(nil), t.Headers...),
		Rows:        make([][]string, len(t.Rows)),
		Description: t.Description,
	}
	for i, row := range t.Rows {
		cp.Rows[i] = append([]string(nil), row...)
	}
	return &cp
}
