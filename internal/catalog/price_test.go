package catalog

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPrice_UnmarshalJSON(t *testing.T) {
	cases := []struct {
		name    string
		body    string
		want    Price
		wantErr bool
	}{
		{name: "integer", body: `{"price":100}`, want: Price{Value: 100, Set: true}},
		{name: "decimal", body: `{"price":19.99}`, want: Price{Value: 19.99, Set: true}},
		{name: "numeric string", body: `{"price":"24.50"}`, want: Price{Value: 24.5, Set: true}},
		{name: "padded string", body: `{"price":" 7 "}`, want: Price{Value: 7, Set: true}},
		{name: "zero", body: `{"price":0}`, want: Price{Value: 0, Set: true}},
		{name: "null", body: `{"price":null}`, want: Price{}},
		{name: "empty string", body: `{"price":""}`, want: Price{}},
		{name: "absent", body: `{}`, want: Price{}},
		{name: "word", body: `{"price":"cheap"}`, wantErr: true},
		{name: "bool", body: `{"price":true}`, wantErr: true},
		{name: "object", body: `{"price":{"amount":1}}`, wantErr: true},
		{name: "overflowing number", body: `{"price":1e400}`, wantErr: true},
		{name: "overflowing string", body: `{"price":"-1e400"}`, wantErr: true},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			var req productReq
			err := json.Unmarshal([]byte(tc.body), &req)
			if tc.wantErr {
				assert.ErrorIs(t, err, errInvalidPrice)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tc.want, req.Price)
		})
	}
}

func TestValidator_MissingFields(t *testing.T) {
	v := newValidator()

	cases := []struct {
		name string
		req  productReq
		want []string
	}{
		{name: "complete", req: productReq{Name: "n", Price: Price{Value: 1, Set: true}, Description: "d"}, want: nil},
		{name: "only name", req: productReq{Name: "X"}, want: []string{"price", "description"}},
		{name: "zero price", req: productReq{Name: "n", Price: Price{Value: 0, Set: true}, Description: "d"}, want: []string{"price"}},
		{name: "empty", req: productReq{}, want: []string{"name", "price", "description"}},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			err := v.Struct(tc.req)
			if tc.want == nil {
				assert.NoError(t, err)
				return
			}
			assert.Equal(t, tc.want, missingFields(err))
		})
	}
}
