package kit

import (
	"encoding/json"
	"net/http"

	chimw "github.com/go-chi/chi/v5/middleware"
)

const msgServerError = "Server Error"

type ErrorResponse struct {
	Success   bool   `json:"success"`
	Message   string `json:"message"`
	Error     any    `json:"error,omitempty"`
	Missing   any    `json:"missing,omitempty"`
	RequestID string `json:"requestId,omitempty"`
}

// Envelope is a success body. Fields are merged next to "success" and "data".
type Envelope map[string]any

// WriteJSON marshals v before writing the status. A value that cannot be
// encoded is answered with the 500 envelope.
func WriteJSON(w http.ResponseWriter, status int, v any) {
	b, err := json.Marshal(v)
	if err != nil {
		status = http.StatusInternalServerError
		b, _ = json.Marshal(ErrorResponse{Message: msgServerError})
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_, _ = w.Write(append(b, '\n'))
}

func WriteSuccess(w http.ResponseWriter, status int, data any, fields Envelope) {
	body := make(Envelope, len(fields)+2)
	for k, v := range fields {
		body[k] = v
	}
	body["success"] = true
	body["data"] = data
	WriteJSON(w, status, body)
}

func WriteError(w http.ResponseWriter, r *http.Request, status int, msg string) {
	WriteJSON(w, status, ErrorResponse{
		Message:   msg,
		RequestID: chimw.GetReqID(r.Context()),
	})
}

func WriteMissing(w http.ResponseWriter, r *http.Request, msg string, missing []string) {
	WriteJSON(w, http.StatusBadRequest, ErrorResponse{
		Message:   msg,
		Missing:   missing,
		RequestID: chimw.GetReqID(r.Context()),
	})
}

// WriteServerError answers 500. The error text is only exposed when expose is
// set, which the service does in development mode.
func WriteServerError(w http.ResponseWriter, r *http.Request, msg string, err error, expose bool) {
	if msg == "" {
		msg = msgServerError
	}
	resp := ErrorResponse{
		Message:   msg,
		RequestID: chimw.GetReqID(r.Context()),
	}
	if expose && err != nil {
		resp.Error = err.Error()
	}
	WriteJSON(w, http.StatusInternalServerError, resp)
}
