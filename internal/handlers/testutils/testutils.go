package testutils

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/require"
)

// WithChiURLParams подставляет параметры пути в контекст chi запроса для тестов.
func WithChiURLParams(req *http.Request, params map[string]string) *http.Request {
	chiCtx := chi.NewRouteContext()
	for k, v := range params {
		chiCtx.URLParams.Add(k, v)
	}
	return req.WithContext(context.WithValue(req.Context(), chi.RouteCtxKey, chiCtx))
}

// WithToken добавляет cookie с токеном Procore
func WithToken(req *http.Request, cookieName, token string) *http.Request {
	req.AddCookie(&http.Cookie{Name: cookieName, Value: token})
	return req
}

// DecodeBody проверяет код ответа и разбирает JSON-тело в T
func DecodeBody[T any](t *testing.T, w *httptest.ResponseRecorder, wantStatus int) T {
	t.Helper()
	res := w.Result()
	defer res.Body.Close()

	require.Equal(t, wantStatus, res.StatusCode, "body: %s", w.Body.String())
	require.Equal(t, "application/json", res.Header.Get("Content-Type"))

	var v T
	require.NoError(t, json.NewDecoder(res.Body).Decode(&v))
	return v
}
