package catalog

import (
	"fmt"
	"strings"
)

const (
	defaultPage  = 1
	defaultLimit = 10
)

func paginate(products []Product, req PageRequest) (Page, error) {
	if req.Page < 1 || req.Limit < 1 {
		return Page{}, fmt.Errorf("page=%d limit=%d: %w", req.Page, req.Limit, ErrInvalidArgument)
	}

	total := len(products)
	totalPages := total / req.Limit
	if total%req.Limit != 0 {
		totalPages++
	}

	// (Page-1)*Limit < total here, so neither bound can overflow.
	out := []Product{}
	if req.Page <= totalPages {
		start := (req.Page - 1) * req.Limit
		end := start + min(req.Limit, total-start)
		out = make([]Product, end-start)
		copy(out, products[start:end])
	}

	return Page{
		Products:   out,
		Page:       req.Page,
		Limit:      req.Limit,
		Total:      total,
		TotalPages: totalPages,
		HasNext:    req.Page < totalPages,
		HasPrev:    req.Page > 1,
	}, nil
}

func matches(p Product, needle string) bool {
	return strings.Contains(strings.ToLower(p.Name), needle) ||
		strings.Contains(strings.ToLower(p.Description), needle)
}
