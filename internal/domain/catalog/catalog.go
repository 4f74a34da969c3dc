// Package catalog holds the fixed set of travel experiences the model is
// allowed to recommend. The id set is sealed at construction and is the
// single ground truth every model answer is checked against.
package catalog

import (
	"encoding/json"
	"fmt"
	"strings"
)

// Item is a single curated travel experience.
type Item struct {
	id       int
	title    string
	location string
	price    float64
	tags     []string
}

// NewItem validates and creates an item.
func NewItem(id int, title, location string, price float64, tags []string) (Item, error) {
	if id <= 0 {
		return Item{}, fmt.Errorf("item id must be positive, got %d", id)
	}
	if strings.TrimSpace(title) == "" {
		return Item{}, fmt.Errorf("item %d: title is required", id)
	}
	if strings.TrimSpace(location) == "" {
		return Item{}, fmt.Errorf("item %d: location is required", id)
	}
	if price < 0 {
		return Item{}, fmt.Errorf("item %d: price must not be negative, got %v", id, price)
	}
	return Item{
		id:       id,
		title:    title,
		location: location,
		price:    price,
		tags:     append([]string(nil), tags...),
	}, nil
}

// ID returns the item identifier.
func (i *Item) ID() int { return i.id }

// Title returns the item title.
func (i *Item) Title() string { return i.title }

// Location returns the item location.
func (i *Item) Location() string { return i.location }

// Price returns the item price in USD.
func (i *Item) Price() float64 { return i.price }

// Tags returns a copy of the item tags.
func (i *Item) Tags() []string { return append([]string(nil), i.tags...) }

// MarshalJSON serializes the item for prompt injection and API responses.
func (i Item) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		ID       int      `json:"id"`
		Title    string   `json:"title"`
		Location string   `json:"location"`
		Price    float64  `json:"price"`
		Tags     []string `json:"tags"`
	}{i.id, i.title, i.location, i.price, i.tags})
}

// Catalog is an immutable item set with an id index.
type Catalog struct {
	items []Item
	byID  map[int]Item
}

// New creates a catalog. Duplicate ids are rejected.
func New(items []Item) (*Catalog, error) {
	if len(items) == 0 {
		return nil, fmt.Errorf("catalog must not be empty")
	}
	byID := make(map[int]Item, len(items))
	for _, item := range items {
		if _, ok := byID[item.id]; ok {
			return nil, fmt.Errorf("duplicate item id %d", item.id)
		}
		byID[item.id] = item
	}
	return &Catalog{
		items: append([]Item(nil), items...),
		byID:  byID,
	}, nil
}

// Items returns a copy of all items in catalog order.
func (c *Catalog) Items() []Item { return append([]Item(nil), c.items...) }

// Get returns the item with the given id.
func (c *Catalog) Get(id int) (Item, bool) {
	item, ok := c.byID[id]
	return item, ok
}

// Has reports whether an item with the given id exists.
func (c *Catalog) Has(id int) bool {
	_, ok := c.byID[id]
	return ok
}

// Len returns the number of items.
func (c *Catalog) Len() int { return len(c.items) }

// Default returns the curated five-experience catalog.
func Default() *Catalog {
	specs := []struct {
		id       int
		title    string
		location string
		price    float64
		tags     []string
	}{
		{1, "High-Altitude Tea Trails", "Nuwara Eliya", 120, []string{"cold", "nature", "hiking"}},
		{2, "Coastal Heritage Wander", "Galle Fort", 45, []string{"history", "culture", "walking"}},
		{3, "Wild Safari Expedition", "Yala", 250, []string{"animals", "adventure", "photography"}},
		{4, "Surf & Chill Retreat", "Arugam Bay", 80, []string{"beach", "surfing", "young-vibe"}},
		{5, "Ancient City Exploration", "Sigiriya", 110, []string{"history", "climbing", "view"}},
	}

	items := make([]Item, 0, len(specs))
	for _, s := range specs {
		item, err := NewItem(s.id, s.title, s.location, s.price, s.tags)
		if err != nil {
			panic("default catalog: " + err.Error())
		}
		items = append(items, item)
	}

	cat, err := New(items)
	if err != nil {
		panic("default catalog: " + err.Error())
	}
	return cat
}
