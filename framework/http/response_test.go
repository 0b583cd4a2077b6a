package http_test

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"

	gohttp "github.com/km-arc/go-jaxon/framework/http"
)

func TestResponse_Success(t *testing.T) {
	rec := httptest.NewRecorder()
	gohttp.NewResponseManager("").For(rec).Success(map[string]any{"id": 1})

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "application/json; charset=UTF-8", rec.Header().Get("Content-Type"))
	assert.JSONEq(t, `{"data":{"id":1}}`, rec.Body.String())
}

func TestResponse_Errors(t *testing.T) {
	m := gohttp.NewResponseManager("ISO-8859-1")
	assert.Equal(t, "ISO-8859-1", m.Encoding())

	tests := []struct {
		name   string
		write  func(*gohttp.Response)
		status int
		body   string
	}{
		{"error", func(r *gohttp.Response) { r.Error(http.StatusBadRequest, "bad") }, 400, `{"message":"bad"}`},
		{"not found default", func(r *gohttp.Response) { r.NotFound() }, 404, `{"message":"Not found."}`},
		{"not found custom", func(r *gohttp.Response) { r.NotFound("no plugin") }, 404, `{"message":"no plugin"}`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := httptest.NewRecorder()
			tt.write(m.For(rec))
			assert.Equal(t, tt.status, rec.Code)
			assert.Equal(t, "application/json; charset=ISO-8859-1", rec.Header().Get("Content-Type"))
			assert.JSONEq(t, tt.body, rec.Body.String())
		})
	}
}
