package product

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"strings"
)

// Category classifies a product. The set is closed; the zero value is Unknown.
type Category int

const (
	Unknown Category = iota
	Cloths
	Food
	Housewares
	Automotive
	Tools
)

var categoryNames = [...]string{
	Unknown:    "UNKNOWN",
	Cloths:     "CLOTHS",
	Food:       "FOOD",
	Housewares: "HOUSEWARES",
	Automotive: "AUTOMOTIVE",
	Tools:      "TOOLS",
}

// Categories returns every category in declaration order.
func Categories() []Category {
	all := make([]Category, len(categoryNames))
	for i := range categoryNames {
		all[i] = Category(i)
	}
	return all
}

// ParseCategory looks a category up by name, ignoring case.
func ParseCategory(name string) (Category, bool) {
	name = strings.ToUpper(strings.TrimSpace(name))
	for i, n := range categoryNames {
		if n == name {
			return Category(i), true
		}
	}
	return Unknown, false
}

// Valid reports whether c is one of the declared categories.
func (c Category) Valid() bool {
	return c >= 0 && int(c) < len(categoryNames)
}

func (c Category) String() string {
	if !c.Valid() {
		return fmt.Sprintf("Category(%d)", int(c))
	}
	return categoryNames[c]
}

// MarshalJSON renders the category by name.
func (c Category) MarshalJSON() ([]byte, error) {
	if !c.Valid() {
		return nil, fmt.Errorf("invalid category %d", int(c))
	}
	return json.Marshal(c.String())
}

// UnmarshalJSON accepts a category name. Unrecognized names decode to Unknown.
func (c *Category) UnmarshalJSON(data []byte) error {
	var name string
	if err := json.Unmarshal(data, &name); err != nil {
		return fmt.Errorf("category must be a string: %w", err)
	}
	*c, _ = ParseCategory(name)
	return nil
}

// Value stores the category by name.
func (c Category) Value() (driver.Value, error) {
	if !c.Valid() {
		return nil, fmt.Errorf("invalid category %d", int(c))
	}
	return c.String(), nil
}

// Scan reads a category name written by Value.
func (c *Category) Scan(src any) error {
	var name string
	switch v := src.(type) {
	case string:
		name = v
	case []byte:
		name = string(v)
	case nil:
		*c = Unknown
		return nil
	default:
		return fmt.Errorf("cannot scan %T into Category", src)
	}

	parsed, ok := ParseCategory(name)
	if !ok {
		return fmt.Errorf("unknown category %q in database", name)
	}
	*c = parsed
	return nil
}
