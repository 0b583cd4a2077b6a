package http

import (
	"net/http"

	json "github.com/goccy/go-json"
)

// ── ResponseManager ──────────────────────────────────────────────────────────

// ResponseManager builds Responses that share a character encoding.
type ResponseManager struct {
	encoding string
}

// NewResponseManager creates a manager writing bodies in encoding ("UTF-8"
// when empty).
func NewResponseManager(encoding string) *ResponseManager {
	if encoding == "" {
		encoding = "UTF-8"
	}
	return &ResponseManager{encoding: encoding}
}

// Encoding returns the character encoding announced in Content-Type.
func (m *ResponseManager) Encoding() string { return m.encoding }

// For wraps w.
func (m *ResponseManager) For(w http.ResponseWriter) *Response {
	return &Response{w: w, encoding: m.encoding}
}

// ── Response ─────────────────────────────────────────────────────────────────

// Response wraps http.ResponseWriter with JSON helpers.
type Response struct {
	w        http.ResponseWriter
	encoding string
}

// JSON sends a JSON response.
//
//	res.JSON(http.StatusOK, map[string]any{"message": "ok"})
func (res *Response) JSON(status int, data any) {
	res.w.Header().Set("Content-Type", "application/json; charset="+res.encoding)
	res.w.WriteHeader(status)
	_ = json.NewEncoder(res.w).Encode(data)
}

// Success sends 200 JSON: {"data": v}
func (res *Response) Success(v any) {
	res.JSON(http.StatusOK, envelope{"data": v})
}

// Error sends a JSON error response: {"message": message}
func (res *Response) Error(status int, message string) {
	res.JSON(status, envelope{"message": message})
}

// NotFound sends 404.
func (res *Response) NotFound(message ...string) {
	res.Error(http.StatusNotFound, first(message, "Not found."))
}

// ── Helpers ──────────────────────────────────────────────────────────────────

type envelope map[string]any

func first(ss []string, fallback string) string {
	if len(ss) > 0 && ss[0] != "" {
		return ss[0]
	}
	return fallback
}
