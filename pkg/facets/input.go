package facets

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/matst80/slask-facets/pkg/common/jsoncompat"
)

var (
	ErrMalformedInput   = errors.New("malformed filter input")
	ErrUnsupportedInput = errors.New("unsupported filter input")
)

// FacetInput is one entry of a filter input. The concrete types are
// StringFacet, BooleanFacet, VariantFacet and PriceFacet.
type FacetInput interface {
	facetInput()
}

// StringFacet sets a single valued parameter.
type StringFacet struct {
	Key   string
	Value string
}

// BooleanFacet sets a single valued parameter to "true" or "false".
type BooleanFacet struct {
	Key   string
	Value bool
}

// VariantFacet toggles one "<name>:<value>" entry of variantOption.
type VariantFacet struct {
	Name  string
	Value string
}

// PriceFacet sets minPrice and/or maxPrice.
type PriceFacet struct {
	Min Amount
	Max Amount
}

func (StringFacet) facetInput()  {}
func (BooleanFacet) facetInput() {}
func (VariantFacet) facetInput() {}
func (PriceFacet) facetInput()   {}

func (v VariantFacet) Encoded() string {
	return v.Name + ":" + v.Value
}

// Input is an ordered filter input, in the key order of the source object.
type Input []FacetInput

// Amount is a price bound kept in its textual form. It accepts JSON numbers
// and strings. Numbers are normalized to plain decimal notation and numeric
// zero decodes to the empty amount; the string "0" stays a set bound.
type Amount string

func (a *Amount) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if bytes.Equal(data, []byte("null")) {
		*a = ""
		return nil
	}
	if len(data) > 0 && data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*a = Amount(s)
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(data, &n); err != nil {
		return err
	}
	f, err := n.Float64()
	if err != nil {
		return err
	}
	if f == 0 {
		*a = ""
		return nil
	}
	*a = Amount(strconv.FormatFloat(f, 'f', -1, 64))
	return nil
}

// IsSet reports whether the amount should be written to the URL. Only the
// empty amount leaves the parameter untouched.
func (a Amount) IsSet() bool {
	return strings.TrimSpace(string(a)) != ""
}

type rawPrice struct {
	Price *struct {
		Min Amount `json:"min"`
		Max Amount `json:"max"`
	} `json:"price"`
}

type rawVariant struct {
	Name  *string `json:"name"`
	Value string  `json:"value"`
}

// ParseInput decodes the serialized input of a filter option value.
func ParseInput(filterType FilterType, raw string) (Input, error) {
	if filterType == PriceRange {
		var p rawPrice
		if err := jsoncompat.Unmarshal([]byte(raw), &p); err != nil {
			return nil, fmt.Errorf("%w: %v", ErrMalformedInput, err)
		}
		if p.Price == nil {
			return nil, fmt.Errorf("%w: price range input without price", ErrUnsupportedInput)
		}
		return Input{PriceFacet{Min: p.Price.Min, Max: p.Price.Max}}, nil
	}

	dec := json.NewDecoder(strings.NewReader(raw))
	tok, err := dec.Token()
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedInput, err)
	}
	if delim, ok := tok.(json.Delim); !ok || delim != '{' {
		return nil, fmt.Errorf("%w: expected object", ErrMalformedInput)
	}
	result := Input{}
	for dec.More() {
		tok, err := dec.Token()
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrMalformedInput, err)
		}
		key, ok := tok.(string)
		if !ok {
			return nil, fmt.Errorf("%w: expected key", ErrMalformedInput)
		}
		var value json.RawMessage
		if err := dec.Decode(&value); err != nil {
			return nil, fmt.Errorf("%w: %v", ErrMalformedInput, err)
		}
		entry, err := parseEntry(key, value)
		if err != nil {
			return nil, err
		}
		result = append(result, entry)
	}
	if _, err := dec.Token(); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedInput, err)
	}
	if _, err := dec.Token(); !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("%w: trailing data after object", ErrMalformedInput)
	}
	return result, nil
}

func parseEntry(key string, value json.RawMessage) (FacetInput, error) {
	value = bytes.TrimSpace(value)
	if len(value) == 0 {
		return nil, fmt.Errorf("%w: %s has no value", ErrMalformedInput, key)
	}
	switch value[0] {
	case '"':
		var s string
		if err := jsoncompat.Unmarshal(value, &s); err != nil {
			return nil, fmt.Errorf("%w: %v", ErrMalformedInput, err)
		}
		return StringFacet{Key: key, Value: s}, nil
	case 't', 'f':
		var b bool
		if err := jsoncompat.Unmarshal(value, &b); err != nil {
			return nil, fmt.Errorf("%w: %v", ErrMalformedInput, err)
		}
		return BooleanFacet{Key: key, Value: b}, nil
	case '{':
		var v rawVariant
		if err := jsoncompat.Unmarshal(value, &v); err != nil || v.Name == nil {
			return nil, fmt.Errorf("%w: %s is not a name/value pair", ErrUnsupportedInput, key)
		}
		return VariantFacet{Name: *v.Name, Value: v.Value}, nil
	}
	return nil, fmt.Errorf("%w: %s has value %s", ErrUnsupportedInput, key, string(value))
}
