package catalog

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"strings"

	"github.com/shopspring/decimal"
)

var errInvalidPrice = errors.New("price must be a number")

// Price is a request price that accepts a JSON number or a numeric string.
// Null and "" leave it unset.
type Price struct {
	Value float64
	Set   bool
}

func (p *Price) UnmarshalJSON(b []byte) error {
	dec := json.NewDecoder(bytes.NewReader(b))
	dec.UseNumber()

	var raw any
	if err := dec.Decode(&raw); err != nil {
		return err
	}

	switch v := raw.(type) {
	case nil:
		*p = Price{}
		return nil
	case json.Number:
		return p.parse(v.String())
	case string:
		return p.parse(v)
	default:
		return fmt.Errorf("%s: %w", b, errInvalidPrice)
	}
}

func (p *Price) parse(s string) error {
	s = strings.TrimSpace(s)
	if s == "" {
		*p = Price{}
		return nil
	}

	d, err := decimal.NewFromString(s)
	if err != nil {
		return fmt.Errorf("%q: %w", s, errInvalidPrice)
	}

	f, _ := d.Float64()
	if math.IsInf(f, 0) || math.IsNaN(f) {
		return fmt.Errorf("%q out of range: %w", s, errInvalidPrice)
	}
	*p = Price{Value: f, Set: true}
	return nil
}
