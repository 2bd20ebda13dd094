package model

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"sort"
)

// Inventory maps an item name to the owned quantity.
// It is persisted as a JSON object in a single text column.
type Inventory map[string]int64

// Item is one inventory entry.
type Item struct {
	Name     string
	Quantity int64
}

// Add increments the quantity of name by qty, creating the entry when absent.
func (inv Inventory) Add(name string, qty int64) {
	inv[name] += qty
}

// Items returns the entries ordered by name.
func (inv Inventory) Items() []Item {
	items := make([]Item, 0, len(inv))
	for name, qty := range inv {
		items = append(items, Item{Name: name, Quantity: qty})
	}
	sort.Slice(items, func(i, j int) bool { return items[i].Name < items[j].Name })
	return items
}

// Value implements driver.Valuer.
func (inv Inventory) Value() (driver.Value, error) {
	if inv == nil {
		return "{}", nil
	}
	b, err := json.Marshal(map[string]int64(inv))
	if err != nil {
		return nil, err
	}
	return string(b), nil
}

// Scan implements sql.Scanner. NULL and empty text decode to an empty inventory.
func (inv *Inventory) Scan(src interface{}) error {
	var raw []byte
	switch v := src.(type) {
	case nil:
		*inv = Inventory{}
		return nil
	case string:
		raw = []byte(v)
	case []byte:
		raw = v
	default:
		return fmt.Errorf("cannot scan %T into Inventory", src)
	}

	decoded := Inventory{}
	if len(raw) > 0 {
		if err := json.Unmarshal(raw, &decoded); err != nil {
			return fmt.Errorf("decode inventory: %w", err)
		}
	}
	*inv = decoded
	return nil
}
