package product

import (
	"bytes"
	"encoding/json"
	"errors"
	"io"
)

const badBodyMessage = "Invalid product: body of request contained bad or no data"

// DecodeJSON parses a JSON document for Deserialize. Numbers are kept as
// json.Number so prices reach ParsePrice without a float round trip.
func DecodeJSON(data []byte) (any, error) {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()

	var v any
	if err := dec.Decode(&v); err != nil {
		return nil, &DataValidationError{Message: badBodyMessage, Err: err}
	}
	if _, err := dec.Token(); !errors.Is(err, io.EOF) {
		return nil, newValidationError(badBodyMessage)
	}
	return v, nil
}
