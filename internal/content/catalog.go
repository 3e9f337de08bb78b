// Package content holds the static catalog of gallery items.
package content

import (
	"bytes"
	_ "embed"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"sync"

	"playground/internal/models"
)

//go:embed posts.json
var defaultPosts []byte

var ErrNotSequence = errors.New("content: catalog is not a JSON array")

// Catalog is the ordered, read-only list of items. The list can be swapped
// by Reload; callers always get a copy.
type Catalog struct {
	mu    sync.RWMutex
	items []models.Item
	path  string
}

// Default returns the catalog built into the binary.
func Default() *Catalog {
	items, err := Parse(defaultPosts)
	if err != nil {
		panic("content: embedded catalog is broken: " + err.Error())
	}
	return &Catalog{items: items}
}

// New wraps a fixed list of items.
func New(items []models.Item) *Catalog {
	return &Catalog{items: append([]models.Item(nil), items...)}
}

// Load reads the catalog from path. An empty path means the built-in catalog.
func Load(path string) (*Catalog, error) {
	if path == "" {
		return Default(), nil
	}
	c := &Catalog{path: path}
	if err := c.Reload(); err != nil {
		return nil, err
	}
	return c, nil
}

// Path is the file the catalog was loaded from, "" for the built-in one.
func (c *Catalog) Path() string {
	return c.path
}

// Reload re-reads the catalog file. On any error the current items are kept.
func (c *Catalog) Reload() error {
	if c.path == "" {
		return nil
	}
	data, err := os.ReadFile(c.path)
	if err != nil {
		return fmt.Errorf("content: failed to read %s: %w", c.path, err)
	}
	items, err := Parse(data)
	if err != nil {
		return fmt.Errorf("content: failed to parse %s: %w", c.path, err)
	}
	c.mu.Lock()
	c.items = items
	c.mu.Unlock()
	return nil
}

func (c *Catalog) Items() []models.Item {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return append([]models.Item(nil), c.items...)
}

func (c *Catalog) Find(id string) (models.Item, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	for _, it := range c.items {
		if it.ID == id {
			return it, true
		}
	}
	return models.Item{}, false
}

// First returns the first item, used as the default selection.
func (c *Catalog) First() (models.Item, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	if len(c.items) == 0 {
		return models.Item{}, false
	}
	return c.items[0], true
}

type rawItem struct {
	ID         string          `json:"id"`
	Title      string          `json:"title"`
	Date       string          `json:"date"`
	Summary    string          `json:"summary"`
	Detail     json.RawMessage `json:"detail"`
	Tags       json.RawMessage `json:"tags"`
	VisualNote string          `json:"visualNote"`
}

// Parse decodes a JSON array of items. detail and tags that are not arrays
// of strings are treated as empty rather than rejected.
func Parse(data []byte) ([]models.Item, error) {
	data = bytes.TrimSpace(data)
	if len(data) == 0 || data[0] != '[' {
		return nil, ErrNotSequence
	}
	var raws []rawItem
	if err := json.Unmarshal(data, &raws); err != nil {
		return nil, err
	}
	items := make([]models.Item, 0, len(raws))
	for _, r := range raws {
		items = append(items, models.Item{
			ID:         r.ID,
			Title:      r.Title,
			Date:       r.Date,
			Summary:    r.Summary,
			Detail:     stringList(r.Detail),
			Tags:       stringList(r.Tags),
			VisualNote: r.VisualNote,
		})
	}
	return items, nil
}

func stringList(raw json.RawMessage) []string {
	var out []string
	if err := json.Unmarshal(raw, &out); err != nil {
		return nil
	}
	return out
}
