package product

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/shopspring/decimal"
)

// Product represents a product in the catalog.
// A zero ID means the product has not been persisted yet.
type Product struct {
	ID          int64           `gorm:"primaryKey;autoIncrement"`
	Name        string          `gorm:"size:100;not null" validate:"required,max=100"`
	Description string          `gorm:"size:250;not null" validate:"max=250"`
	Price       decimal.Decimal `gorm:"type:numeric(14,2);not null"`
	Available   bool            `gorm:"not null"`
	Category    Category        `gorm:"type:varchar(50);not null;index" validate:"category"`
}

// TableName returns the table name for Product model.
func (Product) TableName() string {
	return "products"
}

// Record is the flat key/value form of a product used on the wire.
type Record = map[string]any

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New()
	_ = v.RegisterValidation("category", func(fl validator.FieldLevel) bool {
		return Category(fl.Field().Int()).Valid()
	})
	return v
}

func (p *Product) String() string {
	id := "None"
	if p.ID != 0 {
		id = strconv.FormatInt(p.ID, 10)
	}
	return fmt.Sprintf("<Product %s id=[%s]>", p.Name, id)
}

// Serialize converts the product into a Record. The price is rendered as a
// string so no precision is lost on the way to JSON.
func (p *Product) Serialize() Record {
	var id any
	if p.ID != 0 {
		id = p.ID
	}
	return Record{
		"id":          id,
		"name":        p.Name,
		"description": p.Description,
		"price":       p.Price.String(),
		"available":   p.Available,
		"category":    p.Category.String(),
	}
}

// Deserialize populates the product from a Record and returns the same
// instance. The id key is ignored. An unrecognized category falls back to
// Unknown; every other malformed field is a DataValidationError and leaves
// the receiver untouched.
func (p *Product) Deserialize(data any) (*Product, error) {
	record, ok := data.(map[string]any)
	if !ok {
		return nil, newValidationError(badBodyMessage)
	}

	for _, key := range []string{"name", "description", "price", "available", "category"} {
		if _, present := record[key]; !present {
			return nil, newValidationError("Invalid product: missing " + key)
		}
	}

	next := *p

	name, ok := record["name"].(string)
	if !ok {
		return nil, newValidationError(fmt.Sprintf("Invalid type for string [name]: %T", record["name"]))
	}
	next.Name = name

	description, ok := record["description"].(string)
	if !ok {
		return nil, newValidationError(fmt.Sprintf("Invalid type for string [description]: %T", record["description"]))
	}
	next.Description = description

	price, err := ParsePrice(record["price"])
	if err != nil {
		return nil, err
	}
	next.Price = price.Round(PriceScale)

	available, ok := record["available"].(bool)
	if !ok {
		return nil, newValidationError(fmt.Sprintf("Invalid type for boolean [available]: %T", record["available"]))
	}
	next.Available = available

	next.Category = Unknown
	if name, ok := record["category"].(string); ok {
		next.Category, _ = ParseCategory(name)
	}

	if err := next.Validate(); err != nil {
		return nil, err
	}

	*p = next
	return p, nil
}

// Validate checks the struct-level field rules.
func (p *Product) Validate() error {
	err := validate.Struct(p)
	if err == nil {
		return nil
	}
	if fieldErrs, ok := err.(validator.ValidationErrors); ok {
		msgs := make([]string, 0, len(fieldErrs))
		for _, fe := range fieldErrs {
			msgs = append(msgs, fmt.Sprintf("field '%s' failed on '%s'", strings.ToLower(fe.Field()), fe.Tag()))
		}
		return newValidationError("Invalid product: " + strings.Join(msgs, "; "))
	}
	return &DataValidationError{Message: "Invalid product: " + err.Error(), Err: err}
}

// ParseAvailability interprets a query-string flag. "true", "yes" and "1"
// (any case) are true; everything else is false.
func ParseAvailability(s string) bool {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "true", "yes", "1":
		return true
	default:
		return false
	}
}
