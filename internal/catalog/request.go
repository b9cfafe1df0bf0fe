package catalog

import (
	"encoding/json"
	"errors"
	"io"
	"mime"
	"net/http"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
)

const maxBodyBytes = 1 << 20

var errBadBody = errors.New("invalid request body")

type productReq struct {
	Name        string `json:"name" validate:"required"`
	Price       Price  `json:"price" validate:"required"`
	Description string `json:"description" validate:"required"`
}

func (r productReq) input() ProductInput {
	return ProductInput{
		Name:        r.Name,
		Price:       r.Price.Value,
		Description: r.Description,
	}
}

// newValidator reports fields by their JSON names and treats an unset or zero
// Price as missing.
func newValidator() *validator.Validate {
	v := validator.New()
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name, _, _ := strings.Cut(f.Tag.Get("json"), ",")
		if name == "-" {
			return ""
		}
		return name
	})
	v.RegisterCustomTypeFunc(func(f reflect.Value) any {
		p, ok := f.Interface().(Price)
		if !ok || !p.Set {
			return nil
		}
		return p.Value
	}, Price{})
	return v
}

// missingFields returns the names of the fields that failed "required", or
// nil when err is not a validation error.
func missingFields(err error) []string {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return nil
	}
	out := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		out = append(out, fe.Field())
	}
	return out
}

// decodeProductRequest reads a JSON or URL-encoded product body.
func decodeProductRequest(w http.ResponseWriter, r *http.Request) (productReq, error) {
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)
	defer func() { _ = r.Body.Close() }()

	ct, _, _ := mime.ParseMediaType(r.Header.Get("Content-Type"))
	if ct == "application/x-www-form-urlencoded" {
		return decodeForm(r)
	}

	dec := json.NewDecoder(r.Body)

	var req productReq
	if err := dec.Decode(&req); err != nil {
		if errors.Is(err, io.EOF) {
			return productReq{}, nil
		}
		if errors.Is(err, errInvalidPrice) {
			return productReq{}, err
		}
		return productReq{}, errBadBody
	}
	if err := dec.Decode(&struct{}{}); err != io.EOF {
		return productReq{}, errBadBody
	}

	return req, nil
}

func decodeForm(r *http.Request) (productReq, error) {
	if err := r.ParseForm(); err != nil {
		return productReq{}, errBadBody
	}

	req := productReq{
		Name:        r.PostForm.Get("name"),
		Description: r.PostForm.Get("description"),
	}
	if err := req.Price.parse(r.PostForm.Get("price")); err != nil {
		return productReq{}, err
	}
	return req, nil
}
