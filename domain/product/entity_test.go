package product

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func fedora() *Product {
	return &Product{
		Name:        "Fedora",
		Description: "A red hat",
		Price:       decimal.RequireFromString("12.50"),
		Available:   true,
		Category:    Cloths,
	}
}

func TestProduct_New(t *testing.T) {
	p := fedora()

	assert.Equal(t, "<Product Fedora id=[None]>", p.String())
	assert.Zero(t, p.ID)
	assert.Equal(t, "Fedora", p.Name)
	assert.Equal(t, "A red hat", p.Description)
	assert.True(t, p.Available)
	assert.True(t, p.Price.Equal(decimal.NewFromFloat(12.50)))
	assert.Equal(t, Cloths, p.Category)

	p.ID = 7
	assert.Equal(t, "<Product Fedora id=[7]>", p.String())
}

func TestProduct_Serialize(t *testing.T) {
	p := fedora()

	got := p.Serialize()
	assert.Nil(t, got["id"])
	assert.Equal(t, "Fedora", got["name"])
	assert.Equal(t, "A red hat", got["description"])
	assert.Equal(t, "12.5", got["price"])
	assert.Equal(t, true, got["available"])
	assert.Equal(t, "CLOTHS", got["category"])

	p.ID = 42
	assert.Equal(t, int64(42), p.Serialize()["id"])
}

func TestProduct_RoundTrip(t *testing.T) {
	source := fedora()
	source.ID = 99

	var copied Product
	out, err := copied.Deserialize(source.Serialize())
	require.NoError(t, err)

	assert.Same(t, &copied, out)
	assert.Zero(t, copied.ID, "id is output only")
	assert.Equal(t, source.Name, copied.Name)
	assert.Equal(t, source.Description, copied.Description)
	assert.True(t, source.Price.Equal(copied.Price))
	assert.Equal(t, source.Available, copied.Available)
	assert.Equal(t, source.Category, copied.Category)
}

func TestProduct_DeserializeKeepsExistingID(t *testing.T) {
	p := fedora()
	p.ID = 5

	record := fedora().Serialize()
	record["id"] = int64(1000)
	record["name"] = "Bowler"

	_, err := p.Deserialize(record)
	require.NoError(t, err)
	assert.Equal(t, int64(5), p.ID)
	assert.Equal(t, "Bowler", p.Name)
}

func TestProduct_DeserializeErrors(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(Record) any
		want   string
	}{
		{
			name:   "not a mapping",
			mutate: func(Record) any { return 1 },
			want:   "Invalid product: body of request contained bad or no data",
		},
		{
			name:   "nil input",
			mutate: func(Record) any { return nil },
			want:   "Invalid product: body of request contained bad or no data",
		},
		{
			name:   "available is an integer",
			mutate: func(r Record) any { r["available"] = 1; return r },
			want:   "Invalid type for boolean [available]: int",
		},
		{
			name:   "available is a string",
			mutate: func(r Record) any { r["available"] = "true"; return r },
			want:   "Invalid type for boolean [available]: string",
		},
		{
			name:   "missing price",
			mutate: func(r Record) any { delete(r, "price"); return r },
			want:   "Invalid product: missing price",
		},
		{
			name:   "missing name",
			mutate: func(r Record) any { delete(r, "name"); return r },
			want:   "Invalid product: missing name",
		},
		{
			name:   "missing category",
			mutate: func(r Record) any { delete(r, "category"); return r },
			want:   "Invalid product: missing category",
		},
		{
			name:   "price not numeric",
			mutate: func(r Record) any { r["price"] = "cheap"; return r },
			want:   `Invalid price: "cheap" is not a decimal number`,
		},
		{
			name:   "price is a boolean",
			mutate: func(r Record) any { r["price"] = true; return r },
			want:   "Invalid type for decimal [price]: bool",
		},
		{
			name:   "name not a string",
			mutate: func(r Record) any { r["name"] = 12; return r },
			want:   "Invalid type for string [name]: int",
		},
		{
			name:   "empty name",
			mutate: func(r Record) any { r["name"] = ""; return r },
			want:   "Invalid product: field 'name' failed on 'required'",
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			p := fedora()
			before := *p

			_, err := p.Deserialize(tc.mutate(fedora().Serialize()))
			require.Error(t, err)
			assert.True(t, IsValidationError(err))
			assert.Equal(t, tc.want, err.Error())
			assert.Equal(t, before.Name, p.Name, "receiver must be untouched on failure")
		})
	}
}

func TestProduct_DeserializeCategoryFallback(t *testing.T) {
	for _, value := range []any{"SPACESHIPS", "", 3, nil} {
		record := fedora().Serialize()
		record["category"] = value

		var p Product
		_, err := p.Deserialize(record)
		require.NoError(t, err, "category %v", value)
		assert.Equal(t, Unknown, p.Category)
	}
}

func TestProduct_DeserializePriceForms(t *testing.T) {
	want := decimal.RequireFromString("19.99")
	for _, value := range []any{"19.99", `"19.99"`, 19.99, decimal.RequireFromString("19.99")} {
		record := fedora().Serialize()
		record["price"] = value

		var p Product
		_, err := p.Deserialize(record)
		require.NoError(t, err, "price %v", value)
		assert.True(t, want.Equal(p.Price), "price %v decoded as %s", value, p.Price)
	}
}

func TestProduct_DeserializeRoundsPrice(t *testing.T) {
	tests := map[string]string{
		"1.005":   "1.01",
		"1.004":   "1",
		"-2.345":  "-2.35",
		"10":      "10",
		"0.12345": "0.12",
	}
	for in, want := range tests {
		record := fedora().Serialize()
		record["price"] = in

		var p Product
		_, err := p.Deserialize(record)
		require.NoError(t, err, "price %s", in)
		assert.Equal(t, want, p.Price.String(), "price %s", in)
	}
}

func TestParseAvailability(t *testing.T) {
	for _, s := range []string{"true", "True", "TRUE", "yes", "1", " true "} {
		assert.True(t, ParseAvailability(s), s)
	}
	for _, s := range []string{"false", "False", "no", "0", "", "maybe"} {
		assert.False(t, ParseAvailability(s), s)
	}
}
