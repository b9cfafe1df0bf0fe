package kit

import (
	"errors"
	"math"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestWriteSuccess(t *testing.T) {
	rr := httptest.NewRecorder()

	WriteSuccess(rr, http.StatusCreated, map[string]int{"id": 1}, Envelope{"message": "ok", "success": false})

	assert.Equal(t, http.StatusCreated, rr.Code)
	assert.Equal(t, "application/json", rr.Header().Get("Content-Type"))
	assert.JSONEq(t, `{"success":true,"message":"ok","data":{"id":1}}`, rr.Body.String())
}

func TestWriteError(t *testing.T) {
	rr := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/", nil)

	WriteError(rr, req, http.StatusNotFound, "Product not found")

	assert.Equal(t, http.StatusNotFound, rr.Code)
	assert.JSONEq(t, `{"success":false,"message":"Product not found"}`, rr.Body.String())
}

func TestWriteServerError(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	err := errors.New("disk on fire")

	rr := httptest.NewRecorder()
	WriteServerError(rr, req, "", err, false)
	assert.Equal(t, http.StatusInternalServerError, rr.Code)
	assert.JSONEq(t, `{"success":false,"message":"Server Error"}`, rr.Body.String())

	rr = httptest.NewRecorder()
	WriteServerError(rr, req, "", err, true)
	assert.JSONEq(t, `{"success":false,"message":"Server Error","error":"disk on fire"}`, rr.Body.String())
}

func TestWriteJSON_UnencodableValue(t *testing.T) {
	rr := httptest.NewRecorder()

	WriteSuccess(rr, http.StatusOK, map[string]float64{"price": math.Inf(1)}, nil)

	assert.Equal(t, http.StatusInternalServerError, rr.Code)
	assert.Equal(t, "application/json", rr.Header().Get("Content-Type"))
	assert.JSONEq(t, `{"success":false,"message":"Server Error"}`, rr.Body.String())
}
