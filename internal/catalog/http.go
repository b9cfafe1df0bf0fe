package catalog

import (
	"context"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"ProductAPI/pkg/kit"
)

const (
	msgNotFound       = "Product not found"
	msgRouteNotFound  = "Route not found"
	msgMissingFields  = "Please provide name, price, and description"
	msgMissingQuery   = "Please provide a search query"
	msgBadPagination  = "Page and limit must be positive integers"
	msgBadBody        = "Invalid request body"
	msgBadPrice       = "Price must be a number"
	msgCreated        = "Product created successfully"
	msgUpdated        = "Product updated successfully"
	msgDeleted        = "Product deleted successfully"
	readyCheckTimeout = 1 * time.Second
)

// Server adapts a Store to the product HTTP API. ExposeErrors adds the
// underlying error text to 500 responses.
type Server struct {
	Store        Store
	Log          *zap.Logger
	ExposeErrors bool

	validate *validator.Validate
}

func (s *Server) Routes() http.Handler {
	if s.validate == nil {
		s.validate = newValidator()
	}

	r := chi.NewRouter()
	r.NotFound(routeNotFound)
	r.MethodNotAllowed(routeNotFound)

	r.Get("/", index)
	r.Get("/healthz", func(w http.ResponseWriter, _ *http.Request) { w.WriteHeader(http.StatusOK) })
	r.Get("/readyz", s.readyz)

	r.Route("/api/products", func(r chi.Router) {
		r.Get("/", s.list)
		r.Post("/", s.create)
		r.Get("/search", s.search)

		r.Route("/{id}", func(r chi.Router) {
			r.Get("/", s.get)
			r.Put("/", s.update)
			r.Delete("/", s.delete)
		})
	})

	return r
}

func (s *Server) readyz(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), readyCheckTimeout)
	defer cancel()

	if err := s.Store.Ping(ctx); err != nil {
		s.logger().Warn("readyz failed", zap.Error(err))
		kit.WriteError(w, r, http.StatusServiceUnavailable, "Not ready")
		return
	}
	w.WriteHeader(http.StatusOK)
}

type paginationResp struct {
	Page          int  `json:"page"`
	Limit         int  `json:"limit"`
	TotalPages    int  `json:"totalPages"`
	TotalProducts int  `json:"totalProducts"`
	HasNextPage   bool `json:"hasNextPage"`
	HasPrevPage   bool `json:"hasPrevPage"`
}

func (s *Server) list(w http.ResponseWriter, r *http.Request) {
	req, paged, err := parsePageRequest(r)
	if err != nil {
		kit.WriteError(w, r, http.StatusBadRequest, msgBadPagination)
		return
	}

	if !paged {
		products, err := s.Store.List(r.Context())
		if err != nil {
			s.serverError(w, r, "list products failed", err)
			return
		}
		kit.WriteSuccess(w, http.StatusOK, products, kit.Envelope{"count": len(products)})
		return
	}

	page, err := s.Store.Page(r.Context(), req)
	if err != nil {
		if errors.Is(err, ErrInvalidArgument) {
			kit.WriteError(w, r, http.StatusBadRequest, msgBadPagination)
			return
		}
		s.serverError(w, r, "page products failed", err)
		return
	}

	kit.WriteSuccess(w, http.StatusOK, page.Products, kit.Envelope{
		"count": len(page.Products),
		"pagination": paginationResp{
			Page:          page.Page,
			Limit:         page.Limit,
			TotalPages:    page.TotalPages,
			TotalProducts: page.Total,
			HasNextPage:   page.HasNext,
			HasPrevPage:   page.HasPrev,
		},
	})
}

func (s *Server) search(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query().Get("q")

	products, err := s.Store.Search(r.Context(), q)
	if err != nil {
		if errors.Is(err, ErrValidation) {
			kit.WriteError(w, r, http.StatusBadRequest, msgMissingQuery)
			return
		}
		s.serverError(w, r, "search products failed", err, zap.String("q", q))
		return
	}

	kit.WriteSuccess(w, http.StatusOK, products, kit.Envelope{
		"count":      len(products),
		"searchTerm": q,
	})
}

func (s *Server) get(w http.ResponseWriter, r *http.Request) {
	id, ok := parseID(r)
	if !ok {
		kit.WriteError(w, r, http.StatusNotFound, msgNotFound)
		return
	}

	p, found, err := s.Store.Get(r.Context(), id)
	if err != nil {
		s.serverError(w, r, "get product failed", err, zap.Int64("id", id))
		return
	}
	if !found {
		kit.WriteError(w, r, http.StatusNotFound, msgNotFound)
		return
	}
	kit.WriteSuccess(w, http.StatusOK, p, nil)
}

func (s *Server) create(w http.ResponseWriter, r *http.Request) {
	req, ok := s.decode(w, r)
	if !ok {
		return
	}

	if err := s.validate.Struct(req); err != nil {
		if missing := missingFields(err); missing != nil {
			kit.WriteMissing(w, r, msgMissingFields, missing)
			return
		}
		s.serverError(w, r, "validate product failed", err)
		return
	}

	p, err := s.Store.Create(r.Context(), req.input())
	if err != nil {
		if errors.Is(err, ErrValidation) {
			kit.WriteError(w, r, http.StatusBadRequest, msgMissingFields)
			return
		}
		s.serverError(w, r, "create product failed", err)
		return
	}

	s.logger().Info("product created", zap.Int64("id", p.ID))
	kit.WriteSuccess(w, http.StatusCreated, p, kit.Envelope{"message": msgCreated})
}

func (s *Server) update(w http.ResponseWriter, r *http.Request) {
	id, ok := parseID(r)
	if !ok {
		kit.WriteError(w, r, http.StatusNotFound, msgNotFound)
		return
	}

	_, found, err := s.Store.Get(r.Context(), id)
	if err != nil {
		s.serverError(w, r, "get product failed", err, zap.Int64("id", id))
		return
	}
	if !found {
		kit.WriteError(w, r, http.StatusNotFound, msgNotFound)
		return
	}

	req, ok := s.decode(w, r)
	if !ok {
		return
	}

	p, err := s.Store.Update(r.Context(), id, req.input())
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			kit.WriteError(w, r, http.StatusNotFound, msgNotFound)
			return
		}
		s.serverError(w, r, "update product failed", err, zap.Int64("id", id))
		return
	}

	kit.WriteSuccess(w, http.StatusOK, p, kit.Envelope{"message": msgUpdated})
}

func (s *Server) delete(w http.ResponseWriter, r *http.Request) {
	id, ok := parseID(r)
	if !ok {
		kit.WriteError(w, r, http.StatusNotFound, msgNotFound)
		return
	}

	p, err := s.Store.Delete(r.Context(), id)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			kit.WriteError(w, r, http.StatusNotFound, msgNotFound)
			return
		}
		s.serverError(w, r, "delete product failed", err, zap.Int64("id", id))
		return
	}

	s.logger().Info("product deleted", zap.Int64("id", p.ID))
	kit.WriteSuccess(w, http.StatusOK, p, kit.Envelope{"message": msgDeleted})
}

func (s *Server) decode(w http.ResponseWriter, r *http.Request) (productReq, bool) {
	req, err := decodeProductRequest(w, r)
	switch {
	case err == nil:
		return req, true
	case errors.Is(err, errInvalidPrice):
		kit.WriteError(w, r, http.StatusBadRequest, msgBadPrice)
	default:
		kit.WriteError(w, r, http.StatusBadRequest, msgBadBody)
	}
	return productReq{}, false
}

func (s *Server) serverError(w http.ResponseWriter, r *http.Request, msg string, err error, fields ...zap.Field) {
	fields = append(fields,
		zap.Error(err),
		zap.String("request_id", chimw.GetReqID(r.Context())),
	)
	s.logger().Error(msg, fields...)
	kit.WriteServerError(w, r, "", err, s.ExposeErrors)
}

func (s *Server) logger() *zap.Logger {
	if s.Log == nil {
		return zap.NewNop()
	}
	return s.Log
}

func routeNotFound(w http.ResponseWriter, r *http.Request) {
	kit.WriteError(w, r, http.StatusNotFound, msgRouteNotFound)
}

func parseID(r *http.Request) (int64, bool) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		return 0, false
	}
	return id, true
}

// parsePageRequest reports paged=false when neither page nor limit is given.
func parsePageRequest(r *http.Request) (req PageRequest, paged bool, err error) {
	q := r.URL.Query()
	if !q.Has("page") && !q.Has("limit") {
		return PageRequest{}, false, nil
	}

	req = PageRequest{Page: defaultPage, Limit: defaultLimit}
	if v := q.Get("page"); q.Has("page") {
		if req.Page, err = strconv.Atoi(v); err != nil {
			return PageRequest{}, true, err
		}
	}
	if v := q.Get("limit"); q.Has("limit") {
		if req.Limit, err = strconv.Atoi(v); err != nil {
			return PageRequest{}, true, err
		}
	}
	return req, true, nil
}
