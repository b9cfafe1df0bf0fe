package catalog

import (
	"context"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPaginate(t *testing.T) {
	cases := []struct {
		name       string
		n          int
		req        PageRequest
		wantIDs    []int64
		totalPages int
		hasNext    bool
		hasPrev    bool
	}{
		{name: "first page", n: 5, req: PageRequest{Page: 1, Limit: 2}, wantIDs: []int64{1, 2}, totalPages: 3, hasNext: true},
		{name: "middle page", n: 5, req: PageRequest{Page: 2, Limit: 2}, wantIDs: []int64{3, 4}, totalPages: 3, hasNext: true, hasPrev: true},
		{name: "last partial page", n: 5, req: PageRequest{Page: 3, Limit: 2}, wantIDs: []int64{5}, totalPages: 3, hasPrev: true},
		{name: "past the end", n: 5, req: PageRequest{Page: 4, Limit: 2}, wantIDs: []int64{}, totalPages: 3, hasPrev: true},
		{name: "limit larger than collection", n: 3, req: PageRequest{Page: 1, Limit: 10}, wantIDs: []int64{1, 2, 3}, totalPages: 1},
		{name: "empty collection", n: 0, req: PageRequest{Page: 1, Limit: 10}, wantIDs: []int64{}, totalPages: 0},
		{name: "offset would wrap around", n: 3, req: PageRequest{Page: 1<<32 + 1, Limit: 1 << 32}, wantIDs: []int64{}, totalPages: 1, hasPrev: true},
		{name: "max limit", n: 3, req: PageRequest{Page: 1, Limit: math.MaxInt}, wantIDs: []int64{1, 2, 3}, totalPages: 1},
		{name: "max page and limit", n: 3, req: PageRequest{Page: math.MaxInt, Limit: math.MaxInt}, wantIDs: []int64{}, totalPages: 1, hasPrev: true},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			s := newTestStore(t, tc.n)

			page, err := s.Page(context.Background(), tc.req)
			require.NoError(t, err)

			ids := make([]int64, 0, len(page.Products))
			for _, p := range page.Products {
				ids = append(ids, p.ID)
			}
			assert.Equal(t, tc.wantIDs, ids)
			assert.Equal(t, tc.n, page.Total)
			assert.Equal(t, tc.totalPages, page.TotalPages)
			assert.Equal(t, tc.hasNext, page.HasNext)
			assert.Equal(t, tc.hasPrev, page.HasPrev)
		})
	}
}

func TestPaginate_SizeProperty(t *testing.T) {
	for n := 0; n <= 7; n++ {
		products := make([]Product, n)
		for i := range products {
			products[i] = Product{ID: int64(i + 1)}
		}
		for limit := 1; limit <= 4; limit++ {
			for page := 1; page <= 5; page++ {
				got, err := paginate(products, PageRequest{Page: page, Limit: limit})
				require.NoError(t, err)

				want := min(limit, max(0, n-(page-1)*limit))
				assert.Len(t, got.Products, want, "n=%d page=%d limit=%d", n, page, limit)
				assert.Equal(t, (n+limit-1)/limit, got.TotalPages, "n=%d limit=%d", n, limit)
			}
		}
	}
}

func TestPaginate_InvalidArguments(t *testing.T) {
	for _, req := range []PageRequest{{Page: 0, Limit: 1}, {Page: 1, Limit: 0}, {Page: -1, Limit: -1}} {
		_, err := paginate(nil, req)
		assert.ErrorIs(t, err, ErrInvalidArgument, "%+v", req)
	}
}
