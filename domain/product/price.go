package product

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
)

// PriceScale is the number of fractional digits the price column keeps.
const PriceScale = 2

// ParsePrice coerces a price given as a decimal, a JSON number, a native
// number or a numeric string. Strings may arrive wrapped in extra quote
// characters; those are stripped before parsing.
func ParsePrice(value any) (decimal.Decimal, error) {
	switch v := value.(type) {
	case decimal.Decimal:
		return v, nil
	case *decimal.Decimal:
		if v == nil {
			return decimal.Zero, newValidationError("Invalid price: null")
		}
		return *v, nil
	case json.Number:
		return parsePriceString(v.String())
	case string:
		return parsePriceString(v)
	case float64:
		return decimal.NewFromFloat(v), nil
	case float32:
		return decimal.NewFromFloat32(v), nil
	case int:
		return decimal.NewFromInt(int64(v)), nil
	case int32:
		return decimal.NewFromInt32(v), nil
	case int64:
		return decimal.NewFromInt(v), nil
	default:
		return decimal.Zero, newValidationError(fmt.Sprintf("Invalid type for decimal [price]: %T", value))
	}
}

func parsePriceString(s string) (decimal.Decimal, error) {
	trimmed := strings.Trim(strings.TrimSpace(s), `"'`)
	d, err := decimal.NewFromString(trimmed)
	if err != nil {
		return decimal.Zero, &DataValidationError{
			Message: fmt.Sprintf("Invalid price: %q is not a decimal number", s),
			Err:     err,
		}
	}
	return d, nil
}
